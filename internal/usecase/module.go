package usecase

import (
	"time"

	"go.uber.org/fx"

	"github.com/polkiloo/expensetracker/internal/config"
)

// Module provides core business use cases to the fx container.
var Module = fx.Provide(
	newCalendar,
	NewAuthUseCase,
	NewExpenseUseCase,
	NewAnalyticsUseCase,
)

func newCalendar(cfg *config.Config) *Calendar {
	return NewCalendar(time.Now, cfg.Location)
}
