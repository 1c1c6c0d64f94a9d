package di

import (
	"go.uber.org/fx"

	"github.com/polkiloo/expensetracker/internal/app"
	"github.com/polkiloo/expensetracker/internal/config"
	"github.com/polkiloo/expensetracker/internal/logger"
	"github.com/polkiloo/expensetracker/internal/pkg/auth"
	"github.com/polkiloo/expensetracker/internal/server/http/router"
	"github.com/polkiloo/expensetracker/internal/storage"
	"github.com/polkiloo/expensetracker/internal/usecase"
)

// Module assembles the application graph. Extra options are appended last so
// callers can replace any provided value.
func Module(opts ...fx.Option) fx.Option {
	modules := []fx.Option{
		config.Module,
		logger.Module,
		auth.Module,
		storage.Module,
		usecase.Module,
		router.Module,
		app.Module,
	}
	modules = append(modules, opts...)
	return fx.Options(modules...)
}
