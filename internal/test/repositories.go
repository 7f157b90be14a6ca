package test

import (
	"context"
	"fmt"
	"sort"
	"sync"

	domainErrors "github.com/polkiloo/rype/internal/domain/errors"
	"github.com/polkiloo/rype/internal/domain/model"
	"github.com/polkiloo/rype/internal/domain/repository"
)

// UserRepositoryStub stores users in-memory for tests.
type UserRepositoryStub struct {
	mu      sync.Mutex
	ByEmail map[string]*model.User
	ByID    map[string]*model.User
	Next    int
	Err     error
}

// NewUserRepositoryStub constructs stub repository with initialized maps.
func NewUserRepositoryStub() *UserRepositoryStub {
	return &UserRepositoryStub{
		ByEmail: make(map[string]*model.User),
		ByID:    make(map[string]*model.User),
		Next:    1,
	}
}

// Create registers user unless already exists or stub has explicit error.
func (s *UserRepositoryStub) Create(_ context.Context, user model.User) (*model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	if _, exists := s.ByEmail[user.Email]; exists {
		return nil, domainErrors.ErrAlreadyExists
	}
	if user.ID == "" {
		user.ID = fmt.Sprintf("user-%d", s.Next)
		s.Next++
	}
	stored := user
	s.ByEmail[user.Email] = &stored
	s.ByID[user.ID] = &stored
	out := stored
	return &out, nil
}

// GetByEmail fetches user by e-mail or returns not found.
func (s *UserRepositoryStub) GetByEmail(_ context.Context, email string) (*model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	if user, ok := s.ByEmail[email]; ok {
		out := *user
		return &out, nil
	}
	return nil, domainErrors.ErrNotFound
}

// GetByID fetches user by identifier or returns not found.
func (s *UserRepositoryStub) GetByID(_ context.Context, id string) (*model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	if user, ok := s.ByID[id]; ok {
		out := *user
		return &out, nil
	}
	return nil, domainErrors.ErrNotFound
}

// UpdateProfile applies the non-nil fields of update.
func (s *UserRepositoryStub) UpdateProfile(_ context.Context, id string, update model.ProfileUpdate) (*model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	user, ok := s.ByID[id]
	if !ok {
		return nil, domainErrors.ErrNotFound
	}
	if update.Name != nil {
		user.Name = *update.Name
	}
	if update.Phone != nil {
		user.Phone = *update.Phone
	}
	if update.Address != nil {
		user.Address = *update.Address
	}
	out := *user
	return &out, nil
}

// CountByRole counts stored users with role.
func (s *UserRepositoryStub) CountByRole(_ context.Context, role model.Role) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return 0, s.Err
	}
	var n int64
	for _, u := range s.ByID {
		if u.Role == role {
			n++
		}
	}
	return n, nil
}

// Count returns number of stored users.
func (s *UserRepositoryStub) Count(context.Context) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return 0, s.Err
	}
	return int64(len(s.ByID)), nil
}

// ProductRepositoryStub keeps the catalog in memory.
type ProductRepositoryStub struct {
	mu           sync.Mutex
	Products     map[string]*model.Product
	Next         int
	Err          error
	IncrementErr error
}

// NewProductRepositoryStub returns an empty catalog seeded with products.
func NewProductRepositoryStub(products ...model.Product) *ProductRepositoryStub {
	s := &ProductRepositoryStub{Products: make(map[string]*model.Product), Next: 1}
	for _, p := range products {
		_, _ = s.Create(context.Background(), p)
	}
	return s
}

// Create stores product assigning an identifier when missing.
func (s *ProductRepositoryStub) Create(_ context.Context, product model.Product) (*model.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	if s.Products == nil {
		s.Products = make(map[string]*model.Product)
	}
	if product.ID == "" {
		product.ID = fmt.Sprintf("product-%d", s.Next)
		s.Next++
	}
	stored := product
	s.Products[product.ID] = &stored
	out := stored
	return &out, nil
}

// List returns products matching filter, most popular first.
func (s *ProductRepositoryStub) List(_ context.Context, filter model.ProductFilter) ([]model.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	out := make([]model.Product, 0, len(s.Products))
	for _, p := range s.Products {
		if filter.Category != "" && p.Category != filter.Category {
			continue
		}
		if filter.FeaturedOnly && !p.Featured {
			continue
		}
		out = append(out, *p)
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Popularity != out[j].Popularity {
			return out[i].Popularity > out[j].Popularity
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

// GetByID fetches product by identifier.
func (s *ProductRepositoryStub) GetByID(_ context.Context, id string) (*model.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	if p, ok := s.Products[id]; ok {
		out := *p
		return &out, nil
	}
	return nil, domainErrors.ErrNotFound
}

// IncrementPopularity adds delta under the stub lock.
func (s *ProductRepositoryStub) IncrementPopularity(_ context.Context, id string, delta int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.IncrementErr != nil {
		return s.IncrementErr
	}
	p, ok := s.Products[id]
	if !ok {
		return domainErrors.ErrNotFound
	}
	p.Popularity += delta
	return nil
}

// Count returns number of stored products.
func (s *ProductRepositoryStub) Count(context.Context) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return 0, s.Err
	}
	return int64(len(s.Products)), nil
}

// Popularity reads the current popularity of id, or -1 when absent.
func (s *ProductRepositoryStub) Popularity(id string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	if p, ok := s.Products[id]; ok {
		return p.Popularity
	}
	return -1
}

// OrderRepositoryStub keeps orders in insertion order.
type OrderRepositoryStub struct {
	mu        sync.Mutex
	Orders    []*model.Order
	Next      int
	CreateErr error
	UpdateErr error
	Err       error
}

// NewOrderRepositoryStub constructs stub with preloaded orders.
func NewOrderRepositoryStub(orders ...model.Order) *OrderRepositoryStub {
	s := &OrderRepositoryStub{Next: 1}
	for _, o := range orders {
		o := o
		s.Orders = append(s.Orders, &o)
	}
	return s
}

// Create stores order assigning an identifier when missing.
func (s *OrderRepositoryStub) Create(_ context.Context, order model.Order) (*model.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.CreateErr != nil {
		return nil, s.CreateErr
	}
	if order.ID == "" {
		if s.Next == 0 {
			s.Next = 1
		}
		order.ID = fmt.Sprintf("order-%d", s.Next)
		s.Next++
	}
	stored := order
	s.Orders = append(s.Orders, &stored)
	out := stored
	return &out, nil
}

// GetByID fetches order by identifier.
func (s *OrderRepositoryStub) GetByID(_ context.Context, id string) (*model.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	for _, o := range s.Orders {
		if o.ID == id {
			out := *o
			return &out, nil
		}
	}
	return nil, domainErrors.ErrNotFound
}

// ListByUser returns orders of userID newest first.
func (s *OrderRepositoryStub) ListByUser(_ context.Context, userID string) ([]model.Order, error) {
	return s.filter(func(o *model.Order) bool { return o.UserID == userID })
}

// List returns orders matching filter newest first.
func (s *OrderRepositoryStub) List(_ context.Context, filter model.OrderFilter) ([]model.Order, error) {
	return s.filter(func(o *model.Order) bool {
		return filter.Status == nil || o.Status == *filter.Status
	})
}

func (s *OrderRepositoryStub) filter(keep func(*model.Order) bool) ([]model.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	out := make([]model.Order, 0, len(s.Orders))
	for i := len(s.Orders) - 1; i >= 0; i-- {
		if keep(s.Orders[i]) {
			out = append(out, *s.Orders[i])
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

// UpdateStatus applies change to the stored order.
func (s *OrderRepositoryStub) UpdateStatus(_ context.Context, id string, change model.StatusChange) (*model.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.UpdateErr != nil {
		return nil, s.UpdateErr
	}
	for _, o := range s.Orders {
		if o.ID != id {
			continue
		}
		o.Status = change.Status
		o.UpdatedAt = change.UpdatedAt
		if change.DeliveredAt != nil {
			at := *change.DeliveredAt
			o.DeliveredAt = &at
		}
		out := *o
		return &out, nil
	}
	return nil, domainErrors.ErrNotFound
}

// Count returns number of stored orders.
func (s *OrderRepositoryStub) Count(context.Context) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return 0, s.Err
	}
	return int64(len(s.Orders)), nil
}

// HealthCheckerStub returns Err from HealthCheck.
type HealthCheckerStub struct {
	Err error
}

// HealthCheck reports the configured error.
func (h HealthCheckerStub) HealthCheck(context.Context) error {
	return h.Err
}

// RepositoryFactoryStub bundles stub repositories.
type RepositoryFactoryStub struct {
	UserRepo    *UserRepositoryStub
	ProductRepo *ProductRepositoryStub
	OrderRepo   *OrderRepositoryStub
}

// NewRepositoryFactoryStub returns a factory with empty repositories.
func NewRepositoryFactoryStub() *RepositoryFactoryStub {
	return &RepositoryFactoryStub{
		UserRepo:    NewUserRepositoryStub(),
		ProductRepo: NewProductRepositoryStub(),
		OrderRepo:   NewOrderRepositoryStub(),
	}
}

func (f *RepositoryFactoryStub) Users() repository.UserRepository       { return f.UserRepo }
func (f *RepositoryFactoryStub) Products() repository.ProductRepository { return f.ProductRepo }
func (f *RepositoryFactoryStub) Orders() repository.OrderRepository     { return f.OrderRepo }

var _ repository.Factory = (*RepositoryFactoryStub)(nil)
var _ repository.HealthChecker = HealthCheckerStub{}
