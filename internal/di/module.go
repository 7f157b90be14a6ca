package di

import (
	"go.uber.org/fx"

	"github.com/polkiloo/rype/internal/adapter/notify"
	"github.com/polkiloo/rype/internal/app"
	"github.com/polkiloo/rype/internal/config"
	"github.com/polkiloo/rype/internal/logger"
	"github.com/polkiloo/rype/internal/pkg/auth"
	"github.com/polkiloo/rype/internal/server/http/router"
	"github.com/polkiloo/rype/internal/storage"
	"github.com/polkiloo/rype/internal/usecase"
	"github.com/polkiloo/rype/internal/worker"
)

// Module assembles the storefront service graph. Extra options are appended
// last so callers can replace any provided value.
func Module(opts ...fx.Option) fx.Option {
	modules := []fx.Option{
		config.Module,
		logger.Module,
		auth.Module,
		storage.Module,
		notify.Module,
		worker.Module,
		usecase.Module,
		router.Module,
		app.Module,
	}
	modules = append(modules, opts...)
	return fx.Options(modules...)
}
