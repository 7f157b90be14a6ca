package mongodb

import (
	"context"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"

	domainErrors "github.com/polkiloo/rype/internal/domain/errors"
	"github.com/polkiloo/rype/internal/domain/model"
)

var newestFirst = bson.D{{Key: "createdAt", Value: -1}}

func objectID(id string) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, domainErrors.ErrNotFound
	}
	return oid, nil
}

func returnAfter() *options.FindOneAndUpdateOptions {
	return options.FindOneAndUpdate().SetReturnDocument(options.After)
}

// --- UserRepository implementation ---

func (r *userRepository) Create(ctx context.Context, user model.User) (*model.User, error) {
	role := user.Role
	if role == "" {
		role = model.RoleCustomer
	}
	doc := userDocument{
		ID:        primitive.NewObjectID(),
		Name:      user.Name,
		Email:     strings.ToLower(user.Email),
		Password:  user.PasswordHash,
		Phone:     user.Phone,
		Address:   user.Address,
		Role:      string(role),
		CreatedAt: user.CreatedAt,
	}
	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		return nil, mapError("create user", err)
	}
	return doc.model(), nil
}

func (r *userRepository) findOne(ctx context.Context, op string, filter bson.M) (*model.User, error) {
	var doc userDocument
	if err := r.coll.FindOne(ctx, filter).Decode(&doc); err != nil {
		return nil, mapError(op, err)
	}
	return doc.model(), nil
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	return r.findOne(ctx, "get user by email", bson.M{"email": strings.ToLower(email)})
}

func (r *userRepository) GetByID(ctx context.Context, id string) (*model.User, error) {
	oid, err := objectID(id)
	if err != nil {
		return nil, err
	}
	return r.findOne(ctx, "get user", bson.M{"_id": oid})
}

func (r *userRepository) UpdateProfile(ctx context.Context, id string, update model.ProfileUpdate) (*model.User, error) {
	oid, err := objectID(id)
	if err != nil {
		return nil, err
	}

	set := bson.M{}
	if update.Name != nil {
		set["name"] = *update.Name
	}
	if update.Phone != nil {
		set["phone"] = *update.Phone
	}
	if update.Address != nil {
		set["address"] = *update.Address
	}
	if len(set) == 0 {
		return r.findOne(ctx, "get user", bson.M{"_id": oid})
	}

	var doc userDocument
	err = r.coll.FindOneAndUpdate(ctx, bson.M{"_id": oid}, bson.M{"$set": set}, returnAfter()).Decode(&doc)
	if err != nil {
		return nil, mapError("update profile", err)
	}
	return doc.model(), nil
}

func (r *userRepository) CountByRole(ctx context.Context, role model.Role) (int64, error) {
	n, err := r.coll.CountDocuments(ctx, bson.M{"role": string(role)})
	return n, mapError("count users by role", err)
}

func (r *userRepository) Count(ctx context.Context) (int64, error) {
	n, err := r.coll.CountDocuments(ctx, bson.M{})
	return n, mapError("count users", err)
}

// --- ProductRepository implementation ---

func (r *productRepository) Create(ctx context.Context, product model.Product) (*model.Product, error) {
	doc := newProductDocument(product)
	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		return nil, mapError("create product", err)
	}
	created := doc.model()
	return &created, nil
}

func (r *productRepository) List(ctx context.Context, filter model.ProductFilter) ([]model.Product, error) {
	query := bson.M{}
	if filter.Category != "" {
		query["category"] = string(filter.Category)
	}
	if filter.FeaturedOnly {
		query["featured"] = true
	}

	opts := options.Find().SetSort(bson.D{{Key: "popularity", Value: -1}, {Key: "createdAt", Value: -1}})
	cursor, err := r.coll.Find(ctx, query, opts)
	if err != nil {
		return nil, mapError("list products", err)
	}

	var docs []productDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, mapError("list products", err)
	}
	products := make([]model.Product, len(docs))
	for i, doc := range docs {
		products[i] = doc.model()
	}
	return products, nil
}

func (r *productRepository) GetByID(ctx context.Context, id string) (*model.Product, error) {
	oid, err := objectID(id)
	if err != nil {
		return nil, err
	}
	var doc productDocument
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		return nil, mapError("get product", err)
	}
	product := doc.model()
	return &product, nil
}

// IncrementPopularity uses $inc so concurrent increments are applied by the server.
func (r *productRepository) IncrementPopularity(ctx context.Context, id string, delta int) error {
	oid, err := objectID(id)
	if err != nil {
		return err
	}
	res, err := r.coll.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$inc": bson.M{"popularity": delta}})
	if err != nil {
		return mapError("increment popularity", err)
	}
	if res.MatchedCount == 0 {
		return domainErrors.ErrNotFound
	}
	return nil
}

func (r *productRepository) Count(ctx context.Context) (int64, error) {
	n, err := r.coll.CountDocuments(ctx, bson.M{})
	return n, mapError("count products", err)
}

// --- OrderRepository implementation ---

func (r *orderRepository) Create(ctx context.Context, order model.Order) (*model.Order, error) {
	userID, err := objectID(order.UserID)
	if err != nil {
		return nil, err
	}
	doc := newOrderDocument(order, userID)
	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		return nil, mapError("create order", err)
	}
	created := doc.model()
	return &created, nil
}

func (r *orderRepository) GetByID(ctx context.Context, id string) (*model.Order, error) {
	oid, err := objectID(id)
	if err != nil {
		return nil, err
	}
	var doc orderDocument
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		return nil, mapError("get order", err)
	}
	order := doc.model()
	return &order, nil
}

func (r *orderRepository) find(ctx context.Context, op string, filter bson.M) ([]model.Order, error) {
	cursor, err := r.coll.Find(ctx, filter, options.Find().SetSort(newestFirst))
	if err != nil {
		return nil, mapError(op, err)
	}

	var docs []orderDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, mapError(op, err)
	}
	orders := make([]model.Order, len(docs))
	for i, doc := range docs {
		orders[i] = doc.model()
	}
	return orders, nil
}

func (r *orderRepository) ListByUser(ctx context.Context, userID string) ([]model.Order, error) {
	oid, err := objectID(userID)
	if err != nil {
		return []model.Order{}, nil
	}
	return r.find(ctx, "list user orders", bson.M{"userId": oid})
}

func (r *orderRepository) List(ctx context.Context, filter model.OrderFilter) ([]model.Order, error) {
	query := bson.M{}
	if filter.Status != nil {
		query["status"] = string(*filter.Status)
	}
	return r.find(ctx, "list orders", query)
}

// UpdateStatus applies the change with a single findAndModify.
func (r *orderRepository) UpdateStatus(ctx context.Context, id string, change model.StatusChange) (*model.Order, error) {
	oid, err := objectID(id)
	if err != nil {
		return nil, err
	}

	set := bson.M{"status": string(change.Status), "updatedAt": change.UpdatedAt}
	if change.DeliveredAt != nil {
		set["deliveredAt"] = *change.DeliveredAt
	}

	var doc orderDocument
	err = r.coll.FindOneAndUpdate(ctx, bson.M{"_id": oid}, bson.M{"$set": set}, returnAfter()).Decode(&doc)
	if err != nil {
		return nil, mapError("update order status", err)
	}
	order := doc.model()
	return &order, nil
}

func (r *orderRepository) Count(ctx context.Context) (int64, error) {
	n, err := r.coll.CountDocuments(ctx, bson.M{})
	return n, mapError("count orders", err)
}
