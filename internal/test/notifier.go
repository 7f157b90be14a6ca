package test

import (
	"context"
	"sync"

	"github.com/polkiloo/rype/internal/domain/model"
)

// NotifierStub records notifications handed over by use cases.
type NotifierStub struct {
	mu      sync.Mutex
	Placed  []model.Order
	Changed []model.Order
}

// OrderPlaced records the confirmation request.
func (n *NotifierStub) OrderPlaced(_ context.Context, order model.Order) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.Placed = append(n.Placed, order)
}

// StatusChanged records the status update request.
func (n *NotifierStub) StatusChanged(_ context.Context, order model.Order) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.Changed = append(n.Changed, order)
}

// PlacedCount returns number of recorded confirmations.
func (n *NotifierStub) PlacedCount() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return len(n.Placed)
}

// ChangedCount returns number of recorded status updates.
func (n *NotifierStub) ChangedCount() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return len(n.Changed)
}
