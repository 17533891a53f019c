package repository

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/Abror-150/Online-shop/internal/models"
)

// RegionRepository stores regions.
type RegionRepository interface {
	Create(ctx context.Context, r *models.Region) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Region, error)
	List(ctx context.Context) ([]models.Region, error)
	Update(ctx context.Context, r *models.Region) error
	Delete(ctx context.Context, id primitive.ObjectID) error
}

// CategoryRepository stores product categories.
type CategoryRepository interface {
	Create(ctx context.Context, c *models.Category) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Category, error)
	List(ctx context.Context) ([]models.Category, error)
	Update(ctx context.Context, c *models.Category) error
	Delete(ctx context.Context, id primitive.ObjectID) error
}

type mongoRegionRepo struct {
	col *mongo.Collection
}

// NewMongoRegionRepo returns a Mongo-backed RegionRepository.
func NewMongoRegionRepo(db *mongo.Database) RegionRepository {
	return &mongoRegionRepo{col: db.Collection("regions")}
}

func (r *mongoRegionRepo) Create(ctx context.Context, region *models.Region) error {
	res, err := r.col.InsertOne(ctx, region)
	if err != nil {
		return err
	}
	if id, ok := res.InsertedID.(primitive.ObjectID); ok {
		region.ID = id
	}
	return nil
}

func (r *mongoRegionRepo) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Region, error) {
	var region models.Region
	err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&region)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &region, nil
}

func (r *mongoRegionRepo) List(ctx context.Context) ([]models.Region, error) {
	cur, err := r.col.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var regions []models.Region
	if err := cur.All(ctx, &regions); err != nil {
		return nil, err
	}
	return regions, nil
}

func (r *mongoRegionRepo) Update(ctx context.Context, region *models.Region) error {
	_, err := r.col.UpdateOne(ctx, bson.M{"_id": region.ID}, bson.M{"$set": region})
	return err
}

func (r *mongoRegionRepo) Delete(ctx context.Context, id primitive.ObjectID) error {
	_, err := r.col.DeleteOne(ctx, bson.M{"_id": id})
	return err
}

type mongoCategoryRepo struct {
	col *mongo.Collection
}

// NewMongoCategoryRepo returns a Mongo-backed CategoryRepository.
func NewMongoCategoryRepo(db *mongo.Database) CategoryRepository {
	return &mongoCategoryRepo{col: db.Collection("categories")}
}

func (r *mongoCategoryRepo) Create(ctx context.Context, c *models.Category) error {
	res, err := r.col.InsertOne(ctx, c)
	if err != nil {
		return err
	}
	if id, ok := res.InsertedID.(primitive.ObjectID); ok {
		c.ID = id
	}
	return nil
}

func (r *mongoCategoryRepo) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Category, error) {
	var c models.Category
	err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&c)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *mongoCategoryRepo) List(ctx context.Context) ([]models.Category, error) {
	cur, err := r.col.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var categories []models.Category
	if err := cur.All(ctx, &categories); err != nil {
		return nil, err
	}
	return categories, nil
}

func (r *mongoCategoryRepo) Update(ctx context.Context, c *models.Category) error {
	_, err := r.col.UpdateOne(ctx, bson.M{"_id": c.ID}, bson.M{"$set": c})
	return err
}

func (r *mongoCategoryRepo) Delete(ctx context.Context, id primitive.ObjectID) error {
	_, err := r.col.DeleteOne(ctx, bson.M{"_id": id})
	return err
}
