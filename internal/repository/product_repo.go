package repository

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/Abror-150/Online-shop/internal/models"
)

// ProductRepository stores products. List optionally filters by category.
type ProductRepository interface {
	Create(ctx context.Context, p *models.Product) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Product, error)
	List(ctx context.Context, categoryID *primitive.ObjectID) ([]models.Product, error)
	Update(ctx context.Context, p *models.Product) error
	Delete(ctx context.Context, id primitive.ObjectID) error
}

type mongoProductRepo struct {
	col *mongo.Collection
}

// NewMongoProductRepo returns a Mongo-backed ProductRepository.
func NewMongoProductRepo(db *mongo.Database) ProductRepository {
	return &mongoProductRepo{col: db.Collection("products")}
}

func (r *mongoProductRepo) Create(ctx context.Context, p *models.Product) error {
	now := time.Now().UTC()
	p.CreatedAt = now
	p.UpdatedAt = now
	res, err := r.col.InsertOne(ctx, p)
	if err != nil {
		return err
	}
	if id, ok := res.InsertedID.(primitive.ObjectID); ok {
		p.ID = id
	}
	return nil
}

func (r *mongoProductRepo) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Product, error) {
	var p models.Product
	err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&p)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *mongoProductRepo) List(ctx context.Context, categoryID *primitive.ObjectID) ([]models.Product, error) {
	filter := bson.M{}
	if categoryID != nil {
		filter["category_id"] = *categoryID
	}
	cur, err := r.col.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var products []models.Product
	if err := cur.All(ctx, &products); err != nil {
		return nil, err
	}
	return products, nil
}

func (r *mongoProductRepo) Update(ctx context.Context, p *models.Product) error {
	p.UpdatedAt = time.Now().UTC()
	_, err := r.col.UpdateOne(ctx, bson.M{"_id": p.ID}, bson.M{"$set": p})
	return err
}

func (r *mongoProductRepo) Delete(ctx context.Context, id primitive.ObjectID) error {
	_, err := r.col.DeleteOne(ctx, bson.M{"_id": id})
	return err
}
