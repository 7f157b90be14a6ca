// Package lifecycle decides which order status transitions are accepted.
package lifecycle

import (
	"fmt"

	domainErrors "github.com/polkiloo/rype/internal/domain/errors"
	"github.com/polkiloo/rype/internal/domain/model"
)

// Policy validates a transition between two statuses.
type Policy interface {
	Check(from, to model.OrderStatus) error
	Name() string
}

// Permissive accepts any transition into a known status, including moving
// backwards or out of a terminal state.
type Permissive struct{}

func (Permissive) Check(_, to model.OrderStatus) error {
	if !to.Valid() {
		return domainErrors.ErrInvalidStatus
	}
	return nil
}

func (Permissive) Name() string { return "permissive" }

// allowedTransitions maps a current status to the statuses it may move to.
var allowedTransitions = map[model.OrderStatus][]model.OrderStatus{
	model.OrderStatusPending:        {model.OrderStatusPreparing, model.OrderStatusCancelled},
	model.OrderStatusPreparing:      {model.OrderStatusQualityCheck, model.OrderStatusCancelled},
	model.OrderStatusQualityCheck:   {model.OrderStatusOutForDelivery, model.OrderStatusCancelled},
	model.OrderStatusOutForDelivery: {model.OrderStatusDelivered, model.OrderStatusCancelled},
}

// Strict only allows single forward steps, cancellation from a non-terminal
// state, and re-applying the current status.
type Strict struct{}

func (Strict) Check(from, to model.OrderStatus) error {
	if !to.Valid() {
		return domainErrors.ErrInvalidStatus
	}
	if from == to {
		return nil
	}
	for _, next := range allowedTransitions[from] {
		if next == to {
			return nil
		}
	}
	return fmt.Errorf("%w: %s -> %s", domainErrors.ErrInvalidTransition, from, to)
}

func (Strict) Name() string { return "strict" }

// New returns the strict policy when strict is set, otherwise the permissive one.
func New(strict bool) Policy {
	if strict {
		return Strict{}
	}
	return Permissive{}
}
