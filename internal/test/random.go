package test

import (
	"math/rand"
	"strings"
	"sync"
	"time"
)

const emailAlphabet = "abcdefghijklmnopqrstuvwxyz0123456789"

var (
	rngMu sync.Mutex
	rng   = rand.New(rand.NewSource(time.Now().UnixNano()))
)

// RandomEmail returns an address with a random local part of the given
// length under domain. Mixed case is used so callers exercise normalisation.
func RandomEmail(localLen int, domain string) string {
	if localLen <= 0 {
		localLen = 8
	}
	var b strings.Builder
	for i := 0; i < localLen; i++ {
		c := emailAlphabet[randomIntn(len(emailAlphabet))]
		if i%2 == 0 {
			c = strings.ToUpper(string(c))[0]
		}
		b.WriteByte(c)
	}
	return b.String() + "@" + domain
}

func randomIntn(n int) int {
	rngMu.Lock()
	defer rngMu.Unlock()
	return rng.Intn(n)
}
