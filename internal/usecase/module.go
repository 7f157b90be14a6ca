package usecase

import (
	"go.uber.org/fx"

	"github.com/polkiloo/rype/internal/config"
	"github.com/polkiloo/rype/internal/domain/lifecycle"
)

func newTransitionPolicy(cfg *config.Config) lifecycle.Policy {
	return lifecycle.New(cfg.StrictTransitions)
}

// Module provides core business use cases to the fx container.
var Module = fx.Provide(
	newTransitionPolicy,
	NewAuthUseCase,
	NewOrderUseCase,
	NewProductUseCase,
	NewStatsUseCase,
	NewHealthUseCase,
	NewSeeder,
)
