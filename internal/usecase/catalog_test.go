package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	domainErrors "github.com/polkiloo/rype/internal/domain/errors"
	"github.com/polkiloo/rype/internal/domain/model"
	testhelpers "github.com/polkiloo/rype/internal/test"
)

func TestProductUseCaseList(t *testing.T) {
	now := time.Now()
	repo := testhelpers.NewProductRepositoryStub(
		model.Product{ID: "a", Category: model.CategoryClassic, Featured: true, Popularity: 5, CreatedAt: now},
		model.Product{ID: "b", Category: model.CategoryBerry, Popularity: 50, CreatedAt: now},
		model.Product{ID: "c", Category: model.CategoryClassic, Popularity: 5, CreatedAt: now.Add(time.Minute)},
	)
	uc := NewProductUseCase(repo)
	ctx := context.Background()

	all, err := uc.List(ctx, "all", false)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(all) != 3 || all[0].ID != "b" || all[1].ID != "c" || all[2].ID != "a" {
		t.Fatalf("expected popularity then newest ordering, got %+v", all)
	}

	classic, err := uc.List(ctx, " Classic ", false)
	if err != nil || len(classic) != 2 {
		t.Fatalf("expected two classic products, got %d %v", len(classic), err)
	}

	featured, err := uc.List(ctx, "", true)
	if err != nil || len(featured) != 1 || featured[0].ID != "a" {
		t.Fatalf("unexpected featured result: %+v %v", featured, err)
	}

	if _, err := uc.Get(ctx, "missing"); !errors.Is(err, domainErrors.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestStatsUseCase(t *testing.T) {
	ctx := context.Background()
	users := testhelpers.NewUserRepositoryStub()
	admin, _ := users.Create(ctx, model.User{Email: "admin@rype.com", Role: model.RoleAdmin})
	customer, _ := users.Create(ctx, model.User{Email: "customer@rype.com", Role: model.RoleCustomer})

	now := time.Date(2025, 6, 1, 15, 0, 0, 0, time.Local)
	orders := testhelpers.NewOrderRepositoryStub(
		model.Order{ID: "1", Status: model.OrderStatusPending, Total: 30, CreatedAt: now},
		model.Order{ID: "2", Status: model.OrderStatusDelivered, Total: 100, CreatedAt: now},
		model.Order{ID: "3", Status: model.OrderStatusDelivered, Total: 50, CreatedAt: now.Add(-48 * time.Hour)},
		model.Order{ID: "4", Status: model.OrderStatusCancelled, Total: 200, CreatedAt: now},
	)
	products := testhelpers.NewProductRepositoryStub(model.Product{ID: "p"})

	uc := NewStatsUseCase(orders, users, products)
	uc.now = func() time.Time { return now }

	result, err := uc.Stats(ctx, admin.ID)
	if err != nil {
		t.Fatalf("stats: %v", err)
	}
	if result.TotalOrders != 4 || result.Revenue != 150 || result.TodayRevenue != 100 || result.AvgOrderValue != 75 {
		t.Fatalf("unexpected stats: %+v", result)
	}
	if result.Count(model.OrderStatusDelivered) != 2 || result.Count(model.OrderStatusPreparing) != 0 {
		t.Fatalf("unexpected status counts: %+v", result.ByStatus)
	}
	if result.TotalCustomers != 1 || result.TotalProducts != 1 {
		t.Fatalf("unexpected totals: %+v", result)
	}

	if _, err := uc.Stats(ctx, customer.ID); !errors.Is(err, domainErrors.ErrForbidden) {
		t.Fatalf("expected forbidden, got %v", err)
	}
}

func TestStatsUseCaseEmpty(t *testing.T) {
	ctx := context.Background()
	users := testhelpers.NewUserRepositoryStub()
	admin, _ := users.Create(ctx, model.User{Email: "admin@rype.com", Role: model.RoleAdmin})

	uc := NewStatsUseCase(testhelpers.NewOrderRepositoryStub(), users, testhelpers.NewProductRepositoryStub())
	result, err := uc.Stats(ctx, admin.ID)
	if err != nil {
		t.Fatalf("stats: %v", err)
	}
	if result.TotalOrders != 0 || result.Revenue != 0 || result.AvgOrderValue != 0 {
		t.Fatalf("expected zero values, got %+v", result)
	}
}

func TestHealthUseCase(t *testing.T) {
	ctx := context.Background()
	users := testhelpers.NewUserRepositoryStub()
	_, _ = users.Create(ctx, model.User{Email: "a@rype.com"})
	orders := testhelpers.NewOrderRepositoryStub(model.Order{ID: "1"}, model.Order{ID: "2"})
	products := testhelpers.NewProductRepositoryStub(model.Product{ID: "p"})

	uc := NewHealthUseCase(testhelpers.HealthCheckerStub{}, users, orders, products)
	health, err := uc.Check(ctx)
	if err != nil {
		t.Fatalf("check: %v", err)
	}
	if health.Database != DatabaseConnected || health.Users != 1 || health.Orders != 2 || health.Products != 1 {
		t.Fatalf("unexpected health: %+v", health)
	}

	down := errors.New("no reachable servers")
	uc = NewHealthUseCase(testhelpers.HealthCheckerStub{Err: down}, users, orders, products)
	health, err = uc.Check(ctx)
	if !errors.Is(err, down) {
		t.Fatalf("expected ping error, got %v", err)
	}
	if health.Database != DatabaseDisconnected {
		t.Fatalf("expected disconnected, got %q", health.Database)
	}
}

func TestSeederSeedsOnce(t *testing.T) {
	ctx := context.Background()
	users := testhelpers.NewUserRepositoryStub()
	products := testhelpers.NewProductRepositoryStub()
	seeder := NewSeeder(users, products, testhelpers.HasherStub{}, nil)

	for i := 0; i < 2; i++ {
		if err := seeder.Seed(ctx); err != nil {
			t.Fatalf("seed run %d: %v", i, err)
		}
	}

	if n, _ := users.Count(ctx); n != int64(len(DefaultAccounts)) {
		t.Fatalf("expected %d users, got %d", len(DefaultAccounts), n)
	}
	if n, _ := products.Count(ctx); n != int64(len(DefaultProducts)) {
		t.Fatalf("expected %d products, got %d", len(DefaultProducts), n)
	}

	admin, err := users.GetByEmail(ctx, "admin@rype.com")
	if err != nil {
		t.Fatalf("admin not seeded: %v", err)
	}
	if !admin.IsAdmin() || admin.PasswordHash != "hash:admin123" {
		t.Fatalf("unexpected admin: %+v", admin)
	}
}

func TestSeederKeepsExistingCatalog(t *testing.T) {
	ctx := context.Background()
	products := testhelpers.NewProductRepositoryStub(model.Product{ID: "custom"})
	seeder := NewSeeder(testhelpers.NewUserRepositoryStub(), products, testhelpers.HasherStub{}, nil)

	if err := seeder.Seed(ctx); err != nil {
		t.Fatalf("seed: %v", err)
	}
	if n, _ := products.Count(ctx); n != 1 {
		t.Fatalf("expected catalog to be left alone, got %d products", n)
	}
}

func TestSeederPropagatesLookupError(t *testing.T) {
	users := testhelpers.NewUserRepositoryStub()
	users.Err = errors.New("db down")
	seeder := NewSeeder(users, testhelpers.NewProductRepositoryStub(), testhelpers.HasherStub{}, nil)

	if err := seeder.Seed(context.Background()); err == nil {
		t.Fatal("expected error")
	}
}
