package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Region is a geographic area users can belong to.
type Region struct {
	ID   primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name string             `bson:"name" json:"name"`
}

// Category groups products.
type Category struct {
	ID   primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name string             `bson:"name" json:"name"`
}

// Product is a sellable item owned by a seller account.
type Product struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name        string             `bson:"name" json:"name"`
	Description string             `bson:"description,omitempty" json:"description,omitempty"`
	Image       string             `bson:"image,omitempty" json:"image,omitempty"`
	Price       int                `bson:"price" json:"price"`
	UserID      primitive.ObjectID `bson:"user_id" json:"userId"`
	CategoryID  primitive.ObjectID `bson:"category_id" json:"categoryId"`
	CreatedAt   time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt   time.Time          `bson:"updated_at" json:"updated_at"`
}

// Comment is a product review with an optional star rating.
type Comment struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID    primitive.ObjectID `bson:"user_id" json:"userId"`
	ProductID primitive.ObjectID `bson:"product_id,omitempty" json:"productId,omitempty"`
	Star      int                `bson:"star,omitempty" json:"star,omitempty"`
	Message   string             `bson:"message" json:"message"`
	CreatedAt time.Time          `bson:"created_at" json:"created_at"`
}

// OrderItem is one line of an order.
type OrderItem struct {
	ProductID primitive.ObjectID `bson:"product_id" json:"productId"`
	Count     int                `bson:"count" json:"count"`
}

// Order is a purchase with embedded line items.
type Order struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID    primitive.ObjectID `bson:"user_id" json:"userId"`
	Items     []OrderItem        `bson:"items" json:"items"`
	CreatedAt time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time          `bson:"updated_at" json:"updated_at"`
}
