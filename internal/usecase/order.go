package usecase

import (
	"context"
	"errors"
	"log/slog"
	"time"

	domainErrors "github.com/polkiloo/rype/internal/domain/errors"
	"github.com/polkiloo/rype/internal/domain/lifecycle"
	"github.com/polkiloo/rype/internal/domain/model"
	"github.com/polkiloo/rype/internal/domain/repository"
	"github.com/polkiloo/rype/internal/tracking"
)

// Notifier hands order events to delivery channels. Implementations must
// not block the caller and must not report delivery failures.
type Notifier interface {
	OrderPlaced(ctx context.Context, order model.Order)
	StatusChanged(ctx context.Context, order model.Order)
}

// CreateOrderInput is an order request from an authenticated customer.
type CreateOrderInput struct {
	Items         []ItemInput
	Total         *float64
	Address       string
	PaymentMethod string
}

// OrderUseCase encapsulates order lifecycle logic.
type OrderUseCase struct {
	orders   repository.OrderRepository
	products repository.ProductRepository
	users    repository.UserRepository
	policy   lifecycle.Policy
	notifier Notifier
	logger   *slog.Logger
	now      func() time.Time
}

// NewOrderUseCase constructs OrderUseCase.
func NewOrderUseCase(
	orders repository.OrderRepository,
	products repository.ProductRepository,
	users repository.UserRepository,
	policy lifecycle.Policy,
	notifier Notifier,
	logger *slog.Logger,
) *OrderUseCase {
	if policy == nil {
		policy = lifecycle.Permissive{}
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &OrderUseCase{
		orders:   orders,
		products: products,
		users:    users,
		policy:   policy,
		notifier: notifier,
		logger:   logger.With("component", "order_usecase"),
		now:      time.Now,
	}
}

// Create validates and stores a new pending order for userID. Notification
// and popularity updates run after the insert and never fail the order.
func (u *OrderUseCase) Create(ctx context.Context, userID string, in CreateOrderInput) (*model.Order, error) {
	if len(in.Items) == 0 {
		return nil, domainErrors.ErrEmptyOrder
	}
	total, err := ValidateTotal(in.Total)
	if err != nil {
		return nil, err
	}
	payment, err := ResolvePaymentMethod(in.PaymentMethod)
	if err != nil {
		return nil, err
	}

	customer, err := u.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, domainErrors.ErrNotFound) {
			return nil, domainErrors.ErrUnauthorized
		}
		return nil, err
	}

	now := u.now()
	order, err := u.orders.Create(ctx, model.Order{
		UserID:            customer.ID,
		Items:             NormalizeItems(in.Items),
		Total:             total,
		Status:            model.OrderStatusPending,
		Address:           ResolveAddress(in.Address, customer),
		Customer:          SnapshotCustomer(customer),
		PaymentMethod:     payment,
		EstimatedDelivery: now.Add(model.DeliveryWindow),
		CreatedAt:         now,
		UpdatedAt:         now,
	})
	if err != nil {
		return nil, err
	}

	if u.notifier != nil {
		u.notifier.OrderPlaced(ctx, *order)
	}
	u.bumpPopularity(ctx, order.Items)

	u.logger.InfoContext(ctx, "order created", "order_id", order.ID, "user_id", userID, "total", order.Total, "items", order.ItemCount())
	return order, nil
}

func (u *OrderUseCase) bumpPopularity(ctx context.Context, items []model.OrderItem) {
	for _, item := range items {
		if item.ProductID == "" {
			continue
		}
		if err := u.products.IncrementPopularity(ctx, item.ProductID, item.Quantity); err != nil {
			u.logger.WarnContext(ctx, "increment product popularity", "product_id", item.ProductID, "error", err)
		}
	}
}

// Get returns the order if it belongs to userID.
func (u *OrderUseCase) Get(ctx context.Context, userID, orderID string) (*model.Order, error) {
	order, err := u.orders.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order.UserID != userID {
		return nil, domainErrors.ErrNotFound
	}
	return order, nil
}

// ListMine returns the caller's orders newest first.
func (u *OrderUseCase) ListMine(ctx context.Context, userID string) ([]model.Order, error) {
	return u.orders.ListByUser(ctx, userID)
}

// Tracking projects the delivery timeline of an owned order.
func (u *OrderUseCase) Tracking(ctx context.Context, userID, orderID string) (tracking.Session, error) {
	order, err := u.Get(ctx, userID, orderID)
	if err != nil {
		return tracking.Session{}, err
	}
	return tracking.Resume(*order, u.now()), nil
}

// SetStatus moves an order to status on behalf of an admin.
func (u *OrderUseCase) SetStatus(ctx context.Context, actorID, orderID string, status model.OrderStatus) (*model.Order, error) {
	if err := u.requireAdmin(ctx, actorID); err != nil {
		return nil, err
	}
	if !status.Valid() {
		return nil, domainErrors.ErrInvalidStatus
	}

	order, err := u.orders.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if err := u.policy.Check(order.Status, status); err != nil {
		return nil, err
	}

	previous := order.Status
	if err := order.SetStatus(status, u.now()); err != nil {
		return nil, err
	}
	change := model.StatusChange{Status: order.Status, UpdatedAt: order.UpdatedAt}
	if status == model.OrderStatusDelivered {
		change.DeliveredAt = order.DeliveredAt
	}

	updated, err := u.orders.UpdateStatus(ctx, orderID, change)
	if err != nil {
		return nil, err
	}

	if u.notifier != nil {
		u.notifier.StatusChanged(ctx, *updated)
	}
	u.logger.InfoContext(ctx, "order status changed", "order_id", orderID, "from", previous, "to", updated.Status, "policy", u.policy.Name())
	return updated, nil
}

// ListAll returns every order matching filter for an admin.
func (u *OrderUseCase) ListAll(ctx context.Context, actorID string, filter model.OrderFilter) ([]model.Order, error) {
	if err := u.requireAdmin(ctx, actorID); err != nil {
		return nil, err
	}
	if filter.Status != nil && !filter.Status.Valid() {
		return nil, domainErrors.ErrInvalidStatus
	}
	return u.orders.List(ctx, filter)
}

func (u *OrderUseCase) requireAdmin(ctx context.Context, actorID string) error {
	return requireAdmin(ctx, u.users, actorID)
}

func requireAdmin(ctx context.Context, users repository.UserRepository, actorID string) error {
	actor, err := users.GetByID(ctx, actorID)
	if err != nil {
		if errors.Is(err, domainErrors.ErrNotFound) {
			return domainErrors.ErrUnauthorized
		}
		return err
	}
	if !actor.IsAdmin() {
		return domainErrors.ErrAdminOnly
	}
	return nil
}
