package mongodb

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/polkiloo/rype/internal/domain/model"
)

type userDocument struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	Name      string             `bson:"name"`
	Email     string             `bson:"email"`
	Password  string             `bson:"password"`
	Phone     string             `bson:"phone"`
	Address   string             `bson:"address"`
	Role      string             `bson:"role"`
	CreatedAt time.Time          `bson:"createdAt"`
}

func (d userDocument) model() *model.User {
	return &model.User{
		ID:           d.ID.Hex(),
		Name:         d.Name,
		Email:        d.Email,
		PasswordHash: d.Password,
		Phone:        d.Phone,
		Address:      d.Address,
		Role:         model.Role(d.Role),
		CreatedAt:    d.CreatedAt,
	}
}

type nutritionDocument struct {
	Calories int    `bson:"calories"`
	VitaminC string `bson:"vitaminC"`
	Sugar    string `bson:"sugar"`
	Protein  string `bson:"protein"`
	Carbs    string `bson:"carbs"`
}

type productDocument struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	Name        string             `bson:"name"`
	Price       float64            `bson:"price"`
	Image       string             `bson:"image"`
	Description string             `bson:"description"`
	Ingredients []string           `bson:"ingredients"`
	Size        string             `bson:"size"`
	Nutrition   nutritionDocument  `bson:"nutrition"`
	Category    string             `bson:"category"`
	InStock     bool               `bson:"inStock"`
	Featured    bool               `bson:"featured"`
	Popularity  int                `bson:"popularity"`
	CreatedAt   time.Time          `bson:"createdAt"`
}

func newProductDocument(p model.Product) productDocument {
	ingredients := p.Ingredients
	if ingredients == nil {
		ingredients = []string{}
	}
	return productDocument{
		ID:          primitive.NewObjectID(),
		Name:        p.Name,
		Price:       p.Price,
		Image:       p.Image,
		Description: p.Description,
		Ingredients: ingredients,
		Size:        p.Size,
		Nutrition:   nutritionDocument(p.Nutrition),
		Category:    string(p.Category),
		InStock:     p.InStock,
		Featured:    p.Featured,
		Popularity:  p.Popularity,
		CreatedAt:   p.CreatedAt,
	}
}

func (d productDocument) model() model.Product {
	return model.Product{
		ID:          d.ID.Hex(),
		Name:        d.Name,
		Price:       d.Price,
		Image:       d.Image,
		Description: d.Description,
		Ingredients: d.Ingredients,
		Size:        d.Size,
		Nutrition:   model.Nutrition(d.Nutrition),
		Category:    model.Category(d.Category),
		InStock:     d.InStock,
		Featured:    d.Featured,
		Popularity:  d.Popularity,
		CreatedAt:   d.CreatedAt,
	}
}

type itemDocument struct {
	ProductID string  `bson:"productId,omitempty"`
	Name      string  `bson:"name"`
	Price     float64 `bson:"price"`
	Quantity  int     `bson:"quantity"`
	Image     string  `bson:"image"`
}

type customerDocument struct {
	Name  string `bson:"name"`
	Email string `bson:"email"`
	Phone string `bson:"phone"`
}

type orderDocument struct {
	ID                primitive.ObjectID `bson:"_id,omitempty"`
	UserID            primitive.ObjectID `bson:"userId"`
	Items             []itemDocument     `bson:"items"`
	Total             float64            `bson:"total"`
	Status            string             `bson:"status"`
	Address           string             `bson:"address"`
	Customer          customerDocument   `bson:"customerInfo"`
	PaymentMethod     string             `bson:"paymentMethod"`
	EstimatedDelivery time.Time          `bson:"estimatedDelivery"`
	DeliveredAt       *time.Time         `bson:"deliveredAt,omitempty"`
	CreatedAt         time.Time          `bson:"createdAt"`
	UpdatedAt         time.Time          `bson:"updatedAt"`
}

func newOrderDocument(o model.Order, userID primitive.ObjectID) orderDocument {
	items := make([]itemDocument, len(o.Items))
	for i, item := range o.Items {
		items[i] = itemDocument(item)
	}
	return orderDocument{
		ID:                primitive.NewObjectID(),
		UserID:            userID,
		Items:             items,
		Total:             o.Total,
		Status:            string(o.Status),
		Address:           o.Address,
		Customer:          customerDocument(o.Customer),
		PaymentMethod:     string(o.PaymentMethod),
		EstimatedDelivery: o.EstimatedDelivery,
		DeliveredAt:       o.DeliveredAt,
		CreatedAt:         o.CreatedAt,
		UpdatedAt:         o.UpdatedAt,
	}
}

func (d orderDocument) model() model.Order {
	items := make([]model.OrderItem, len(d.Items))
	for i, item := range d.Items {
		items[i] = model.OrderItem(item)
	}
	return model.Order{
		ID:                d.ID.Hex(),
		UserID:            d.UserID.Hex(),
		Items:             items,
		Total:             d.Total,
		Status:            model.OrderStatus(d.Status),
		Address:           d.Address,
		Customer:          model.CustomerInfo(d.Customer),
		PaymentMethod:     model.PaymentMethod(d.PaymentMethod),
		EstimatedDelivery: d.EstimatedDelivery,
		DeliveredAt:       d.DeliveredAt,
		CreatedAt:         d.CreatedAt,
		UpdatedAt:         d.UpdatedAt,
	}
}
