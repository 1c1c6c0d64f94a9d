package main

import (
	"context"
	"fmt"
	"os"

	"go.uber.org/fx"
)

// run blocks until ctx is cancelled or the app asks to shut down, then stops it.
func run(ctx context.Context, app *fx.App) {
	if err := app.Start(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "expensetracker: start: %v\n", err)
		os.Exit(1)
	}

	select {
	case <-ctx.Done():
	case <-app.Done():
	}

	if err := app.Stop(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "expensetracker: stop: %v\n", err)
		os.Exit(1)
	}
}
