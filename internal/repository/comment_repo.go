package repository

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/Abror-150/Online-shop/internal/models"
)

// CommentRepository stores product reviews.
type CommentRepository interface {
	Create(ctx context.Context, c *models.Comment) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Comment, error)
	List(ctx context.Context, productID *primitive.ObjectID) ([]models.Comment, error)
	Update(ctx context.Context, c *models.Comment) error
	Delete(ctx context.Context, id primitive.ObjectID) error
}

type mongoCommentRepo struct {
	col *mongo.Collection
}

// NewMongoCommentRepo returns a Mongo-backed CommentRepository.
func NewMongoCommentRepo(db *mongo.Database) CommentRepository {
	return &mongoCommentRepo{col: db.Collection("comments")}
}

func (r *mongoCommentRepo) Create(ctx context.Context, c *models.Comment) error {
	c.CreatedAt = time.Now().UTC()
	res, err := r.col.InsertOne(ctx, c)
	if err != nil {
		return err
	}
	if id, ok := res.InsertedID.(primitive.ObjectID); ok {
		c.ID = id
	}
	return nil
}

func (r *mongoCommentRepo) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Comment, error) {
	var c models.Comment
	err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&c)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *mongoCommentRepo) List(ctx context.Context, productID *primitive.ObjectID) ([]models.Comment, error) {
	filter := bson.M{}
	if productID != nil {
		filter["product_id"] = *productID
	}
	cur, err := r.col.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var comments []models.Comment
	if err := cur.All(ctx, &comments); err != nil {
		return nil, err
	}
	return comments, nil
}

func (r *mongoCommentRepo) Update(ctx context.Context, c *models.Comment) error {
	_, err := r.col.UpdateOne(ctx, bson.M{"_id": c.ID}, bson.M{"$set": c})
	return err
}

func (r *mongoCommentRepo) Delete(ctx context.Context, id primitive.ObjectID) error {
	_, err := r.col.DeleteOne(ctx, bson.M{"_id": id})
	return err
}
