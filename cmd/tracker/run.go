package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/polkiloo/rype/internal/adapter/storefront"
	"github.com/polkiloo/rype/internal/domain/model"
	"github.com/polkiloo/rype/internal/tracking"
)

const stopTimeout = 5 * time.Second

var errNoActiveOrder = errors.New("no active order to track")

// orderSource is the part of the storefront API the tracker needs.
type orderSource interface {
	Login(ctx context.Context, email, password string) error
	MyOrders(ctx context.Context) ([]model.Order, error)
	Order(ctx context.Context, id string) (*model.Order, error)
}

var newOrderSource = func(cfg *trackerConfig, logger *slog.Logger) (orderSource, error) {
	return storefront.NewClient(cfg.APIURL, logger)
}

func run(ctx context.Context, cfg *trackerConfig, out io.Writer, logger *slog.Logger, opts ...tracking.Option) error {
	store := tracking.NewFileStore(cfg.StateFile)
	if cfg.Clear {
		if err := store.Clear(); err != nil {
			return err
		}
		fmt.Fprintln(out, "tracking state cleared")
		return nil
	}

	done := make(chan struct{})
	var once sync.Once
	opts = append([]tracking.Option{
		tracking.WithTickInterval(cfg.Tick),
		tracking.WithTickHook(func(s tracking.Session) { render(out, s) }),
		tracking.WithClearHook(func() { once.Do(func() { close(done) }) }),
	}, opts...)
	sim := tracking.NewSimulator(store, logger, opts...)

	session, resumed, err := sim.Resume()
	if err != nil {
		return err
	}
	if !resumed || (cfg.OrderID != "" && session.Order.ID != cfg.OrderID) {
		order, err := pickOrder(ctx, cfg, logger)
		if err != nil {
			sim.Stop()
			return err
		}
		if session, err = sim.Start(*order); err != nil {
			return err
		}
	}
	logger.Debug("tracking", "order_id", session.Order.ID, "resumed", resumed)

	select {
	case <-done:
		fmt.Fprintln(out, "delivery complete, enjoy your juice!")
	case <-ctx.Done():
	}

	stopCtx, cancel := context.WithTimeout(context.Background(), stopTimeout)
	defer cancel()
	if err := sim.Shutdown(stopCtx); err != nil {
		return err
	}
	return ctx.Err()
}

func pickOrder(ctx context.Context, cfg *trackerConfig, logger *slog.Logger) (*model.Order, error) {
	source, err := newOrderSource(cfg, logger)
	if err != nil {
		return nil, err
	}
	if err := source.Login(ctx, cfg.Email, cfg.Password); err != nil {
		return nil, fmt.Errorf("login: %w", err)
	}

	if cfg.OrderID != "" {
		return source.Order(ctx, cfg.OrderID)
	}

	orders, err := source.MyOrders(ctx)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	order, ok := tracking.Latest(orders, time.Now())
	if !ok {
		return nil, errNoActiveOrder
	}
	return &order, nil
}

func render(out io.Writer, s tracking.Session) {
	fmt.Fprintf(out, "[%s] order %s: %s (%d min)\n",
		time.Now().Format("15:04:05"), s.Order.ID, s.StageName(), s.ElapsedMinutes)
	if c := s.Courier; c != nil {
		fmt.Fprintf(out, "    courier %s on %s, %s away, ETA %d min, phone %s\n",
			c.Name, c.Vehicle, c.Distance, c.ETAMinutes, c.Phone)
	}
}
