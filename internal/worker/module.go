package worker

import (
	"log/slog"

	"go.uber.org/fx"

	"github.com/polkiloo/rype/internal/adapter/notify"
	"github.com/polkiloo/rype/internal/config"
	"github.com/polkiloo/rype/internal/usecase"
)

func newDispatcher(sender notify.Sender, cfg *config.Config, logger *slog.Logger) *NotificationDispatcher {
	return NewNotificationDispatcher(sender, cfg.NotifyWorkers, cfg.NotifyQueueSize, logger)
}

// Module provides the notification dispatcher, also exposed as usecase.Notifier.
var Module = fx.Provide(
	newDispatcher,
	func(d *NotificationDispatcher) usecase.Notifier { return d },
)
