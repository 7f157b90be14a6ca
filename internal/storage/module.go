package storage

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"strings"

	"go.uber.org/fx"

	"github.com/polkiloo/rype/internal/config"
	"github.com/polkiloo/rype/internal/domain/repository"
	"github.com/polkiloo/rype/internal/storage/mongodb"
	"github.com/polkiloo/rype/internal/storage/postgres"
)

// Backend is a storage implementation able to serve every repository.
type Backend interface {
	repository.Factory
	repository.HealthChecker
	Close(ctx context.Context) error
}

var (
	ErrMissingURI     = errors.New("database uri is required")
	ErrUnsupportedURI = errors.New("unsupported database uri scheme")
)

type opener func(ctx context.Context, cfg *config.Config, logger *slog.Logger) (Backend, error)

// openers is keyed by URI scheme. An empty scheme is a libpq keyword DSN.
var openers = map[string]opener{
	"":            openPostgres,
	"postgres":    openPostgres,
	"postgresql":  openPostgres,
	"mongodb":     openMongo,
	"mongodb+srv": openMongo,
}

func openPostgres(ctx context.Context, cfg *config.Config, logger *slog.Logger) (Backend, error) {
	return postgres.New(ctx, cfg.DatabaseURI, logger)
}

func openMongo(ctx context.Context, cfg *config.Config, logger *slog.Logger) (Backend, error) {
	return mongodb.New(ctx, cfg.DatabaseURI, cfg.DatabaseName, logger)
}

// Open picks the backend matching the scheme of cfg.DatabaseURI.
func Open(ctx context.Context, cfg *config.Config, logger *slog.Logger) (Backend, error) {
	if strings.TrimSpace(cfg.DatabaseURI) == "" {
		return nil, ErrMissingURI
	}

	scheme := ""
	if strings.Contains(cfg.DatabaseURI, "://") {
		u, err := url.Parse(cfg.DatabaseURI)
		if err != nil {
			return nil, fmt.Errorf("parse database uri: %w", err)
		}
		scheme = strings.ToLower(u.Scheme)
	}

	open, ok := openers[scheme]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedURI, scheme)
	}
	return open(ctx, cfg, logger)
}

// Module wires the configured storage backend and repository adapters.
var Module = fx.Options(
	fx.Provide(newBackend),
	fx.Provide(
		func(b Backend) repository.UserRepository { return b.Users() },
		func(b Backend) repository.ProductRepository { return b.Products() },
		func(b Backend) repository.OrderRepository { return b.Orders() },
		func(b Backend) repository.HealthChecker { return b },
	),
	fx.Invoke(registerLifecycle),
)

type storageParams struct {
	fx.In

	Ctx    context.Context
	Config *config.Config
	Logger *slog.Logger
}

func newBackend(p storageParams) (Backend, error) {
	return Open(p.Ctx, p.Config, p.Logger)
}

func registerLifecycle(lc fx.Lifecycle, backend Backend) {
	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			return backend.Close(ctx)
		},
	})
}
