package mongodb

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	domainErrors "github.com/polkiloo/rype/internal/domain/errors"
	"github.com/polkiloo/rype/internal/domain/repository"
)

const (
	usersCollection    = "users"
	productsCollection = "products"
	ordersCollection   = "orders"

	serverSelectionTimeout = 5 * time.Second
)

// Storage acts as repository facade backed by MongoDB.
type Storage struct {
	client *mongo.Client
	db     *mongo.Database
	logger *slog.Logger
}

type userRepository struct {
	coll *mongo.Collection
}

type productRepository struct {
	coll *mongo.Collection
}

type orderRepository struct {
	coll *mongo.Collection
}

var _ repository.Factory = (*Storage)(nil)

// New connects to uri, selects database and makes sure indexes exist.
func New(ctx context.Context, uri, database string, logger *slog.Logger) (*Storage, error) {
	client, err := mongo.Connect(ctx, options.Client().
		ApplyURI(uri).
		SetServerSelectionTimeout(serverSelectionTimeout))
	if err != nil {
		return nil, fmt.Errorf("connect db: %w", err)
	}

	storage := newStorage(client.Database(database), logger)
	storage.client = client
	if err := storage.ensureIndexes(ctx); err != nil {
		_ = client.Disconnect(ctx)
		return nil, err
	}

	storage.logger.Info("connected to mongodb", "database", database)
	return storage, nil
}

func newStorage(db *mongo.Database, logger *slog.Logger) *Storage {
	if logger == nil {
		logger = slog.Default()
	}
	return &Storage{db: db, logger: logger.With("component", "mongodb")}
}

// Close disconnects the client.
func (s *Storage) Close(ctx context.Context) error {
	if s.client == nil {
		return nil
	}
	return s.client.Disconnect(ctx)
}

func (s *Storage) Users() repository.UserRepository {
	return &userRepository{coll: s.db.Collection(usersCollection)}
}

func (s *Storage) Products() repository.ProductRepository {
	return &productRepository{coll: s.db.Collection(productsCollection)}
}

func (s *Storage) Orders() repository.OrderRepository {
	return &orderRepository{coll: s.db.Collection(ordersCollection)}
}

// HealthCheck pings the primary.
func (s *Storage) HealthCheck(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	return s.db.Client().Ping(ctx, readpref.Primary())
}

func (s *Storage) ensureIndexes(ctx context.Context) error {
	indexes := map[string][]mongo.IndexModel{
		usersCollection: {
			{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetUnique(true)},
		},
		productsCollection: {
			{Keys: bson.D{{Key: "popularity", Value: -1}, {Key: "createdAt", Value: -1}}},
			{Keys: bson.D{{Key: "category", Value: 1}}},
		},
		ordersCollection: {
			{Keys: bson.D{{Key: "userId", Value: 1}, {Key: "createdAt", Value: -1}}},
			{Keys: bson.D{{Key: "status", Value: 1}, {Key: "createdAt", Value: -1}}},
		},
	}

	for _, name := range []string{usersCollection, productsCollection, ordersCollection} {
		if _, err := s.db.Collection(name).Indexes().CreateMany(ctx, indexes[name]); err != nil {
			return fmt.Errorf("ensure %s indexes: %w", name, err)
		}
	}
	return nil
}

// mapError converts driver errors into domain categories.
func mapError(op string, err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, mongo.ErrNoDocuments):
		return domainErrors.ErrNotFound
	case mongo.IsDuplicateKeyError(err):
		return domainErrors.ErrAlreadyExists
	default:
		return domainErrors.Persistence(op, err)
	}
}
