package storage

import (
	"context"
	"log/slog"

	"go.uber.org/fx"

	"github.com/polkiloo/expensetracker/internal/config"
	"github.com/polkiloo/expensetracker/internal/domain/repository"
)

// Module wires the configured storage backend and its repositories.
var Module = fx.Options(
	fx.Provide(newFactory),
	fx.Provide(
		func(f repository.Factory) repository.UserRepository { return f.Users() },
		func(f repository.Factory) repository.ExpenseRepository { return f.Expenses() },
	),
	fx.Invoke(registerLifecycle),
)

type factoryParams struct {
	fx.In

	Ctx    context.Context
	Config *config.Config
	Logger *slog.Logger
}

func newFactory(p factoryParams) (repository.Factory, error) {
	return Open(p.Ctx, p.Config.DatabaseURI, p.Logger)
}

func registerLifecycle(lc fx.Lifecycle, factory repository.Factory) {
	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			factory.Close()
			return nil
		},
	})
}
