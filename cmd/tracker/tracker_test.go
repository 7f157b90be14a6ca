package main

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/polkiloo/rype/internal/domain/model"
	"github.com/polkiloo/rype/internal/tracking"
)

type fakeSource struct {
	orders   []model.Order
	loggedIn bool
}

func (f *fakeSource) Login(context.Context, string, string) error {
	f.loggedIn = true
	return nil
}

func (f *fakeSource) MyOrders(context.Context) ([]model.Order, error) {
	return f.orders, nil
}

func (f *fakeSource) Order(_ context.Context, id string) (*model.Order, error) {
	for _, o := range f.orders {
		if o.ID == id {
			return &o, nil
		}
	}
	return nil, os.ErrNotExist
}

type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func useSource(t *testing.T, src orderSource) {
	t.Helper()
	original := newOrderSource
	newOrderSource = func(*trackerConfig, *slog.Logger) (orderSource, error) { return src, nil }
	t.Cleanup(func() { newOrderSource = original })
}

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestParseConfig(t *testing.T) {
	env := map[string]string{"RYPE_API_URL": "http://api:5000", "RYPE_EMAIL": "c@rype.com", "RYPE_TRACK_TICK": "2s"}
	lookup := func(k string) (string, bool) {
		v, ok := env[k]
		return v, ok
	}

	cfg, err := parseConfig([]string{"-password", "pw", "-order", "o-1"}, lookup)
	require.NoError(t, err)
	assert.Equal(t, "http://api:5000", cfg.APIURL)
	assert.Equal(t, "c@rype.com", cfg.Email)
	assert.Equal(t, "pw", cfg.Password)
	assert.Equal(t, "o-1", cfg.OrderID)
	assert.Equal(t, 2*time.Second, cfg.Tick)
	assert.True(t, strings.HasSuffix(cfg.StateFile, "tracking.json"))

	cfg, err = parseConfig([]string{"-tick", "0s"}, lookup)
	require.NoError(t, err)
	assert.Equal(t, tracking.DefaultTickInterval, cfg.Tick)

	_, err = parseConfig([]string{"-tick", "soon"}, lookup)
	require.Error(t, err)

	for _, tick := range []string{"100ms", "1.5s"} {
		_, err = parseConfig([]string{"-tick", tick}, lookup)
		require.Error(t, err, tick)
		assert.Contains(t, err.Error(), "whole seconds")
	}
}

func TestRunTracksLatestOrderUntilDelivered(t *testing.T) {
	src := &fakeSource{orders: []model.Order{{
		ID:        "o-1",
		Status:    model.OrderStatusOutForDelivery,
		CreatedAt: time.Now().Add(-14 * time.Minute),
	}}}
	useSource(t, src)

	cfg := &trackerConfig{StateFile: filepath.Join(t.TempDir(), "state.json"), Tick: time.Second}
	out := &syncBuffer{}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	err := run(ctx, cfg, out, quietLogger(), tracking.WithCompletionGrace(10*time.Millisecond))
	require.NoError(t, err)

	assert.True(t, src.loggedIn)
	assert.Contains(t, out.String(), "Out for Delivery")
	assert.Contains(t, out.String(), "Delivered")
	assert.Contains(t, out.String(), "delivery complete")
	_, statErr := os.Stat(cfg.StateFile)
	assert.True(t, os.IsNotExist(statErr), "state should be cleared after delivery")
}

func TestRunWithoutRecentOrder(t *testing.T) {
	useSource(t, &fakeSource{orders: []model.Order{{ID: "old", CreatedAt: time.Now().Add(-time.Hour)}}})

	cfg := &trackerConfig{StateFile: filepath.Join(t.TempDir(), "state.json"), Tick: time.Minute}
	err := run(context.Background(), cfg, io.Discard, quietLogger())
	require.ErrorIs(t, err, errNoActiveOrder)
}

func TestRunResumesStoredSessionWithoutLogin(t *testing.T) {
	src := &fakeSource{}
	useSource(t, src)

	path := filepath.Join(t.TempDir(), "state.json")
	store := tracking.NewFileStore(path)
	session := tracking.Resume(model.Order{ID: "o-7", Status: model.OrderStatusPreparing, CreatedAt: time.Now().Add(-3 * time.Minute)}, time.Now())
	require.NoError(t, tracking.Save(store, session, time.Now()))

	cfg := &trackerConfig{StateFile: path, Tick: time.Minute}
	out := &syncBuffer{}
	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(50 * time.Millisecond)
		cancel()
	}()

	err := run(ctx, cfg, out, quietLogger())
	require.ErrorIs(t, err, context.Canceled)
	assert.False(t, src.loggedIn)
	assert.Contains(t, out.String(), "order o-7: Preparing")

	_, statErr := os.Stat(path)
	assert.NoError(t, statErr, "state should survive an interrupted run")
}

func TestRunClear(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.json")
	require.NoError(t, os.WriteFile(path, []byte("{}"), 0o600))

	out := &syncBuffer{}
	require.NoError(t, run(context.Background(), &trackerConfig{StateFile: path, Clear: true}, out, quietLogger()))
	assert.Contains(t, out.String(), "cleared")
	_, err := os.Stat(path)
	assert.True(t, os.IsNotExist(err))
}
