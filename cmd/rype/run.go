package main

import (
	"context"
	"fmt"
	"os"

	"go.uber.org/fx"
)

func run(ctx context.Context, app *fx.App) {
	if err := app.Start(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "rype: failed to start: %v\n", err)
		os.Exit(1)
	}

	select {
	case <-ctx.Done():
	case <-app.Done():
	}

	// The signal context is already cancelled here; give hooks a fresh one.
	if err := app.Stop(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "rype: failed to stop: %v\n", err)
		os.Exit(1)
	}
}
