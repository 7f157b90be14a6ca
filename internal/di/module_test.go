package di

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/fx"

	"github.com/polkiloo/rype/internal/app"
	"github.com/polkiloo/rype/internal/config"
	"github.com/polkiloo/rype/internal/server/http/handlers"
	"github.com/polkiloo/rype/internal/storage"
	"github.com/polkiloo/rype/internal/test"
	"github.com/polkiloo/rype/internal/worker"
)

type backendStub struct {
	*test.RepositoryFactoryStub
	test.HealthCheckerStub
}

func (backendStub) Close(context.Context) error { return nil }

func TestModuleComposesGraphWithReplacements(t *testing.T) {
	cfg := &config.Config{
		RunAddress:      ":0",
		DatabaseURI:     "mongodb://stub",
		DatabaseName:    "rype",
		JWTSecret:       "secret",
		TokenTTL:        time.Hour,
		ShutdownTimeout: time.Millisecond,
		NotifyWorkers:   1,
		NotifyQueueSize: 1,
	}
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	backend := backendStub{RepositoryFactoryStub: test.NewRepositoryFactoryStub()}

	var (
		facade     *app.StorefrontFacade
		surface    handlers.StorefrontFacade
		dispatcher *worker.NotificationDispatcher
		engine     *gin.Engine
	)
	fxApp := fx.New(
		fx.NopLogger,
		fx.Provide(func() context.Context { return context.Background() }),
		Module(
			fx.Replace(cfg),
			fx.Replace(logger),
			fx.Decorate(func() storage.Backend { return backend }),
		),
		fx.Populate(&facade, &surface, &dispatcher, &engine),
	)

	if err := fxApp.Err(); err != nil {
		t.Fatalf("fx app returned error: %v", err)
	}
	t.Cleanup(func() { _ = fxApp.Stop(context.Background()) })
	if facade == nil || surface == nil || dispatcher == nil {
		t.Fatal("expected storefront facade and dispatcher instances")
	}

	resp := httptest.NewRecorder()
	engine.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/api/health", nil))
	if resp.Code != http.StatusOK {
		t.Fatalf("expected healthy service, got %d", resp.Code)
	}
}
