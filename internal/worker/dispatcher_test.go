package worker

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/polkiloo/rype/internal/adapter/notify"
	"github.com/polkiloo/rype/internal/domain/model"
)

type recordingSender struct {
	sync.Mutex
	sent  []notify.Message
	err   error
	block chan struct{}
}

func (s *recordingSender) Send(ctx context.Context, msg notify.Message) error {
	if s.block != nil {
		select {
		case <-s.block:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	s.Lock()
	defer s.Unlock()
	s.sent = append(s.sent, msg)
	return s.err
}

func (s *recordingSender) count() int {
	s.Lock()
	defer s.Unlock()
	return len(s.sent)
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(io.Discard, nil))
}

func order(id string) model.Order {
	return model.Order{ID: id, Status: model.OrderStatusPending, Customer: model.CustomerInfo{Name: "Test Customer", Email: "customer@rype.com"}}
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.After(time.Second)
	for !cond() {
		select {
		case <-deadline:
			t.Fatal("timeout waiting for condition")
		case <-time.After(5 * time.Millisecond):
		}
	}
}

func TestNewNotificationDispatcherDefaults(t *testing.T) {
	d := NewNotificationDispatcher(&recordingSender{}, 0, 0, nil)
	if d.workers != 1 {
		t.Fatalf("expected workers default to 1, got %d", d.workers)
	}
	if cap(d.jobs) != 1 {
		t.Fatalf("expected queue size default to 1, got %d", cap(d.jobs))
	}
}

func TestNotificationDispatcherSends(t *testing.T) {
	sender := &recordingSender{}
	d := NewNotificationDispatcher(sender, 2, 8, discardLogger())
	d.Start(context.Background())
	defer d.Stop()

	d.OrderPlaced(context.Background(), order("o-1"))
	changed := order("o-1")
	changed.Status = model.OrderStatusDelivered
	d.StatusChanged(context.Background(), changed)

	waitFor(t, func() bool { return sender.count() == 2 })

	sender.Lock()
	defer sender.Unlock()
	subjects := sender.sent[0].Subject + "|" + sender.sent[1].Subject
	if !strings.Contains(subjects, "confirmed") || !strings.Contains(subjects, "delivered") {
		t.Fatalf("unexpected subjects: %s", subjects)
	}
}

func TestNotificationDispatcherDropsWhenFull(t *testing.T) {
	var buf bytes.Buffer
	d := NewNotificationDispatcher(&recordingSender{}, 1, 1, slog.New(slog.NewJSONHandler(&buf, nil)))

	d.OrderPlaced(context.Background(), order("o-1"))
	d.OrderPlaced(context.Background(), order("o-2"))

	if d.Pending() != 1 {
		t.Fatalf("expected one queued message, got %d", d.Pending())
	}
	if !strings.Contains(buf.String(), "queue full") || !strings.Contains(buf.String(), "o-2") {
		t.Fatalf("expected drop to be logged, got %s", buf.String())
	}
}

func TestNotificationDispatcherSkipsMissingRecipient(t *testing.T) {
	d := NewNotificationDispatcher(&recordingSender{}, 1, 4, discardLogger())
	d.OrderPlaced(context.Background(), model.Order{ID: "o-1"})
	if d.Pending() != 0 {
		t.Fatalf("expected nothing queued, got %d", d.Pending())
	}
}

func TestNotificationDispatcherLogsSendFailure(t *testing.T) {
	var buf syncBuffer
	sender := &recordingSender{err: errors.New("smtp down")}
	d := NewNotificationDispatcher(sender, 1, 4, slog.New(slog.NewJSONHandler(&buf, nil)))
	d.Start(context.Background())

	d.OrderPlaced(context.Background(), order("o-1"))
	waitFor(t, func() bool { return sender.count() == 1 })
	d.Stop()

	if !strings.Contains(buf.String(), "smtp down") {
		t.Fatalf("expected failure to be logged, got %s", buf.String())
	}
}

func TestNotificationDispatcherEnqueueDoesNotBlock(t *testing.T) {
	sender := &recordingSender{block: make(chan struct{})}
	d := NewNotificationDispatcher(sender, 1, 2, discardLogger())
	d.Start(context.Background())

	done := make(chan struct{})
	go func() {
		for i := 0; i < 10; i++ {
			d.OrderPlaced(context.Background(), order("o"))
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("enqueue blocked on a stalled sender")
	}

	close(sender.block)
	d.Stop()
}

func TestNotificationDispatcherStopIsIdempotent(t *testing.T) {
	d := NewNotificationDispatcher(&recordingSender{}, 1, 1, discardLogger())
	d.Start(context.Background())
	d.Start(context.Background())
	d.Stop()
	d.Stop()
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
