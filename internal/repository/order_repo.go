package repository

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/Abror-150/Online-shop/internal/models"
)

// OrderRepository stores orders with embedded line items.
type OrderRepository interface {
	Create(ctx context.Context, o *models.Order) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Order, error)
	ListByUser(ctx context.Context, userID primitive.ObjectID) ([]models.Order, error)
	List(ctx context.Context) ([]models.Order, error)
	Update(ctx context.Context, o *models.Order) error
	Delete(ctx context.Context, id primitive.ObjectID) error
}

type mongoOrderRepo struct {
	col *mongo.Collection
}

// NewMongoOrderRepo returns a Mongo-backed OrderRepository.
func NewMongoOrderRepo(db *mongo.Database) OrderRepository {
	return &mongoOrderRepo{col: db.Collection("orders")}
}

func (r *mongoOrderRepo) Create(ctx context.Context, o *models.Order) error {
	now := time.Now().UTC()
	o.CreatedAt = now
	o.UpdatedAt = now
	res, err := r.col.InsertOne(ctx, o)
	if err != nil {
		return err
	}
	if id, ok := res.InsertedID.(primitive.ObjectID); ok {
		o.ID = id
	}
	return nil
}

func (r *mongoOrderRepo) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Order, error) {
	var o models.Order
	err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&o)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &o, nil
}

func (r *mongoOrderRepo) list(ctx context.Context, filter bson.M) ([]models.Order, error) {
	cur, err := r.col.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var orders []models.Order
	if err := cur.All(ctx, &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

func (r *mongoOrderRepo) ListByUser(ctx context.Context, userID primitive.ObjectID) ([]models.Order, error) {
	return r.list(ctx, bson.M{"user_id": userID})
}

func (r *mongoOrderRepo) List(ctx context.Context) ([]models.Order, error) {
	return r.list(ctx, bson.M{})
}

func (r *mongoOrderRepo) Update(ctx context.Context, o *models.Order) error {
	o.UpdatedAt = time.Now().UTC()
	_, err := r.col.UpdateOne(ctx, bson.M{"_id": o.ID}, bson.M{"$set": o})
	return err
}

func (r *mongoOrderRepo) Delete(ctx context.Context, id primitive.ObjectID) error {
	_, err := r.col.DeleteOne(ctx, bson.M{"_id": id})
	return err
}
