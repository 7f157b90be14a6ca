package worker

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/polkiloo/rype/internal/adapter/notify"
	"github.com/polkiloo/rype/internal/domain/model"
)

const sendTimeout = 15 * time.Second

// NotificationDispatcher sends order e-mails from a bounded queue using a
// fixed pool of workers. Enqueueing never blocks; when the queue is full
// the message is dropped.
type NotificationDispatcher struct {
	sender  notify.Sender
	workers int
	logger  *slog.Logger

	jobs    chan notify.Message
	wg      sync.WaitGroup
	cancel  context.CancelFunc
	mu      sync.Mutex
	started bool
}

// NewNotificationDispatcher constructs the dispatcher.
func NewNotificationDispatcher(sender notify.Sender, workers, queueSize int, logger *slog.Logger) *NotificationDispatcher {
	if workers <= 0 {
		workers = 1
	}
	if queueSize <= 0 {
		queueSize = 1
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &NotificationDispatcher{
		sender:  sender,
		workers: workers,
		logger:  logger.With("component", "notification_dispatcher"),
		jobs:    make(chan notify.Message, queueSize),
	}
}

// Start launches the workers.
func (d *NotificationDispatcher) Start(ctx context.Context) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.started {
		return
	}

	runCtx, cancel := context.WithCancel(ctx)
	d.cancel = cancel
	d.started = true

	for i := 0; i < d.workers; i++ {
		d.wg.Add(1)
		go d.worker(runCtx)
	}
}

// Stop cancels the workers and waits for them. Queued messages that were
// not picked up are discarded.
func (d *NotificationDispatcher) Stop() {
	d.mu.Lock()
	if d.cancel != nil {
		d.cancel()
		d.cancel = nil
	}
	d.started = false
	d.mu.Unlock()

	d.wg.Wait()
}

// OrderPlaced queues the order confirmation.
func (d *NotificationDispatcher) OrderPlaced(ctx context.Context, order model.Order) {
	d.enqueue(ctx, notify.OrderConfirmation(order), order.ID)
}

// StatusChanged queues the status update e-mail.
func (d *NotificationDispatcher) StatusChanged(ctx context.Context, order model.Order) {
	d.enqueue(ctx, notify.StatusUpdate(order), order.ID)
}

func (d *NotificationDispatcher) enqueue(ctx context.Context, msg notify.Message, orderID string) {
	if msg.To == "" {
		d.logger.WarnContext(ctx, "notification skipped, no recipient", "order_id", orderID)
		return
	}
	select {
	case d.jobs <- msg:
	default:
		d.logger.WarnContext(ctx, "notification queue full, message dropped", "order_id", orderID, "subject", msg.Subject)
	}
}

func (d *NotificationDispatcher) worker(ctx context.Context) {
	defer d.wg.Done()
	for {
		select {
		case <-ctx.Done():
			return
		case msg := <-d.jobs:
			d.send(ctx, msg)
		}
	}
}

func (d *NotificationDispatcher) send(ctx context.Context, msg notify.Message) {
	sendCtx, cancel := context.WithTimeout(ctx, sendTimeout)
	defer cancel()
	if err := d.sender.Send(sendCtx, msg); err != nil {
		d.logger.Error("send notification failed", slog.String("to", msg.To), slog.String("subject", msg.Subject), slog.String("error", err.Error()))
	}
}

// Pending reports the number of queued messages.
func (d *NotificationDispatcher) Pending() int {
	return len(d.jobs)
}
