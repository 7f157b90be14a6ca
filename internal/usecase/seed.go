package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	domainErrors "github.com/polkiloo/rype/internal/domain/errors"
	"github.com/polkiloo/rype/internal/domain/model"
	"github.com/polkiloo/rype/internal/domain/repository"
	pkgAuth "github.com/polkiloo/rype/internal/pkg/auth"
)

// SeedAccount is a user created on first start.
type SeedAccount struct {
	User     model.User
	Password string
}

// DefaultAccounts are the demo admin and customer.
var DefaultAccounts = []SeedAccount{
	{
		User: model.User{
			Name:    "Rype Admin",
			Email:   "admin@rype.com",
			Phone:   "+91-9876543210",
			Address: "Rype Headquarters, Mumbai",
			Role:    model.RoleAdmin,
		},
		Password: "admin123",
	},
	{
		User: model.User{
			Name:    "Test Customer",
			Email:   "customer@rype.com",
			Phone:   "+91-9876543211",
			Address: "123 Customer Street, Delhi",
			Role:    model.RoleCustomer,
		},
		Password: "customer123",
	},
}

// DefaultProducts is the starter catalog inserted into an empty store.
var DefaultProducts = []model.Product{
	{
		Name:        "Classic Orange Bliss",
		Price:       199,
		Image:       "🍊",
		Description: "Pure, freshly squeezed orange juice with natural sweetness",
		Ingredients: []string{"Fresh Valencia Oranges"},
		Size:        model.DefaultProductSize,
		Nutrition:   model.Nutrition{Calories: 110, VitaminC: "120%", Sugar: "22g", Protein: "2g", Carbs: "26g"},
		Category:    model.CategoryClassic,
		InStock:     true,
		Featured:    true,
		Popularity:  150,
	},
	{
		Name:        "Premium Blood Orange Juice",
		Price:       249,
		Image:       "🩸",
		Description: "Rare blood oranges with rich flavor and deep color",
		Ingredients: []string{"Blood Oranges"},
		Size:        model.DefaultProductSize,
		Nutrition:   model.Nutrition{Calories: 120, VitaminC: "150%", Sugar: "25g"},
		Category:    model.CategoryCitrus,
		InStock:     true,
		Featured:    true,
		Popularity:  90,
	},
	{
		Name:        "Orange Carrot Fusion",
		Price:       229,
		Image:       "🥕",
		Description: "Perfect blend of sweet oranges and fresh carrots",
		Ingredients: []string{"Oranges", "Carrots", "Ginger"},
		Size:        model.DefaultProductSize,
		Nutrition:   model.Nutrition{Calories: 95, VitaminC: "100%", Sugar: "18g"},
		Category:    model.CategoryFusion,
		InStock:     true,
		Popularity:  60,
	},
	{
		Name:        "Citrus Boost",
		Price:       279,
		Image:       "💪",
		Description: "Orange juice with lemon and grapefruit for extra zing",
		Ingredients: []string{"Oranges", "Lemons", "Grapefruit"},
		Size:        model.DefaultProductSize,
		Nutrition:   model.Nutrition{Calories: 105, VitaminC: "200%", Sugar: "20g"},
		Category:    model.CategoryBoost,
		InStock:     false,
		Popularity:  40,
	},
}

// Seeder inserts demo accounts and the starter catalog.
type Seeder struct {
	users    repository.UserRepository
	products repository.ProductRepository
	hasher   pkgAuth.PasswordHasher
	logger   *slog.Logger
	now      func() time.Time
}

// NewSeeder constructs Seeder.
func NewSeeder(users repository.UserRepository, products repository.ProductRepository, hasher pkgAuth.PasswordHasher, logger *slog.Logger) *Seeder {
	if logger == nil {
		logger = slog.Default()
	}
	return &Seeder{users: users, products: products, hasher: hasher, logger: logger.With("component", "seeder"), now: time.Now}
}

// Seed creates missing demo accounts and fills an empty catalog. It is safe
// to run on every start.
func (s *Seeder) Seed(ctx context.Context) error {
	for _, account := range DefaultAccounts {
		if err := s.seedAccount(ctx, account); err != nil {
			return err
		}
	}

	count, err := s.products.Count(ctx)
	if err != nil {
		return fmt.Errorf("count products: %w", err)
	}
	if count > 0 {
		return nil
	}
	now := s.now()
	for _, p := range DefaultProducts {
		p.Ingredients = append([]string(nil), p.Ingredients...)
		p.CreatedAt = now
		if _, err := s.products.Create(ctx, p); err != nil {
			return fmt.Errorf("seed product %q: %w", p.Name, err)
		}
	}
	s.logger.InfoContext(ctx, "products seeded", "count", len(DefaultProducts))
	return nil
}

func (s *Seeder) seedAccount(ctx context.Context, account SeedAccount) error {
	_, err := s.users.GetByEmail(ctx, account.User.Email)
	if err == nil {
		return nil
	}
	if !errors.Is(err, domainErrors.ErrNotFound) {
		return fmt.Errorf("lookup %s: %w", account.User.Email, err)
	}

	hash, err := s.hasher.Hash(account.Password)
	if err != nil {
		return fmt.Errorf("hash password for %s: %w", account.User.Email, err)
	}
	user := account.User
	user.PasswordHash = hash
	user.CreatedAt = s.now()
	if _, err := s.users.Create(ctx, user); err != nil && !errors.Is(err, domainErrors.ErrAlreadyExists) {
		return fmt.Errorf("seed user %s: %w", user.Email, err)
	}
	s.logger.InfoContext(ctx, "user seeded", "email", user.Email, "role", user.Role)
	return nil
}
