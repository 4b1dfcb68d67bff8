package repositories

import (
	"context"
	"regexp"
	"time"

	"github.com/tanvir-dev/versebook/backend/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Sort orders accepted by ListPoems
const (
	SortNewest    = "newest"
	SortPopular   = "popular"
	SortDiscussed = "discussed"
	SortTitle     = "title"
)

// ListPoemsOptions holds the optional filters for ListPoems
type ListPoemsOptions struct {
	Category string
	Search   string
	Sort     string
	Featured *bool
	Author   string // hex ObjectID, empty for all authors
	Skip     int64
	Limit    int64
}

// PoemRepository defines the interface for poem data operations
type PoemRepository interface {
	CreatePoem(ctx context.Context, poem *models.Poem) error
	GetPoemByID(ctx context.Context, id string) (*models.Poem, error)
	ListPoems(ctx context.Context, opts ListPoemsOptions) ([]models.Poem, error)
	CountPoems(ctx context.Context, opts ListPoemsOptions) (int64, error)
	UpdatePoem(ctx context.Context, id string, poem *models.Poem) error
	DeletePoem(ctx context.Context, id string) error
	AddLike(ctx context.Context, poemID string, userID primitive.ObjectID) error
	RemoveLike(ctx context.Context, poemID string, userID primitive.ObjectID) error
	HasUserLikedPoem(ctx context.Context, poemID string, userID primitive.ObjectID) (bool, error)
	IncrementCommentsCount(ctx context.Context, poemID string) error
	SetFeatured(ctx context.Context, poemID string, featured bool) error
}

// MongoPoemRepository implements PoemRepository for MongoDB
type MongoPoemRepository struct {
	collection *mongo.Collection
}

// NewMongoPoemRepository creates a new MongoPoemRepository
func NewMongoPoemRepository(db *mongo.Database) *MongoPoemRepository {
	return &MongoPoemRepository{collection: db.Collection("poems")}
}

// CreatePoem creates a new poem in MongoDB
func (r *MongoPoemRepository) CreatePoem(ctx context.Context, poem *models.Poem) error {
	poem.ID = primitive.NewObjectID()
	if poem.Tags == nil {
		poem.Tags = []string{}
	}
	poem.Likes = []primitive.ObjectID{}
	poem.LikesCount = 0
	poem.CommentsCount = 0
	poem.CreatedAt = time.Now()
	poem.UpdatedAt = time.Now()
	_, err := r.collection.InsertOne(ctx, poem)
	return err
}

// GetPoemByID retrieves a poem by hex ID from MongoDB
func (r *MongoPoemRepository) GetPoemByID(ctx context.Context, id string) (*models.Poem, error) {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrInvalidID
	}

	var poem models.Poem
	err = r.collection.FindOne(ctx, bson.M{"_id": objID}).Decode(&poem)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrPoemNotFound
		}
		return nil, err
	}
	return &poem, nil
}

// listFilter builds the Mongo filter for ListPoems/CountPoems
func listFilter(opts ListPoemsOptions) bson.M {
	filter := bson.M{}
	if opts.Category != "" {
		filter["category"] = opts.Category
	}
	if opts.Featured != nil {
		filter["featured"] = *opts.Featured
	}
	if opts.Author != "" {
		if authorID, err := primitive.ObjectIDFromHex(opts.Author); err == nil {
			filter["author"] = authorID
		}
	}
	if opts.Search != "" {
		pattern := primitive.Regex{Pattern: regexp.QuoteMeta(opts.Search), Options: "i"}
		filter["$or"] = []bson.M{
			{"title": pattern},
			{"content": pattern},
			{"tags": pattern},
		}
	}
	return filter
}

// listSort maps a sort name onto a Mongo sort document
func listSort(sort string) bson.D {
	switch sort {
	case SortPopular:
		return bson.D{{Key: "likes_count", Value: -1}, {Key: "created_at", Value: -1}}
	case SortDiscussed:
		return bson.D{{Key: "comments_count", Value: -1}, {Key: "created_at", Value: -1}}
	case SortTitle:
		return bson.D{{Key: "title", Value: 1}}
	default: // SortNewest
		return bson.D{{Key: "created_at", Value: -1}}
	}
}

// ListPoems retrieves poems matching the given filters with pagination
func (r *MongoPoemRepository) ListPoems(ctx context.Context, opts ListPoemsOptions) ([]models.Poem, error) {
	findOptions := options.Find().SetSkip(opts.Skip).SetLimit(opts.Limit).SetSort(listSort(opts.Sort))
	cursor, err := r.collection.Find(ctx, listFilter(opts), findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	poems := []models.Poem{}
	if err = cursor.All(ctx, &poems); err != nil {
		return nil, err
	}
	return poems, nil
}

// CountPoems counts the poems matching the given filters
func (r *MongoPoemRepository) CountPoems(ctx context.Context, opts ListPoemsOptions) (int64, error) {
	return r.collection.CountDocuments(ctx, listFilter(opts))
}

// UpdatePoem updates the editable fields of an existing poem
func (r *MongoPoemRepository) UpdatePoem(ctx context.Context, id string, poem *models.Poem) error {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return ErrInvalidID
	}

	poem.UpdatedAt = time.Now()
	update := bson.M{
		"$set": bson.M{
			"title":      poem.Title,
			"content":    poem.Content,
			"category":   poem.Category,
			"tags":       poem.Tags,
			"image":      poem.Image,
			"updated_at": poem.UpdatedAt,
		},
	}
	res, err := r.collection.UpdateOne(ctx, bson.M{"_id": objID}, update)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrPoemNotFound
	}
	return nil
}

// DeletePoem deletes a poem by hex ID from MongoDB
func (r *MongoPoemRepository) DeletePoem(ctx context.Context, id string) error {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return ErrInvalidID
	}

	res, err := r.collection.DeleteOne(ctx, bson.M{"_id": objID})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrPoemNotFound
	}
	return nil
}

// AddLike adds userID to the poem's likes set and bumps likes_count. The $ne
// guard makes the $inc fire only when membership actually changes, keeping
// likes_count equal to the set size.
func (r *MongoPoemRepository) AddLike(ctx context.Context, poemID string, userID primitive.ObjectID) error {
	objID, err := primitive.ObjectIDFromHex(poemID)
	if err != nil {
		return ErrInvalidID
	}
	filter := bson.M{"_id": objID, "likes": bson.M{"$ne": userID}}
	update := bson.M{
		"$addToSet": bson.M{"likes": userID},
		"$inc":      bson.M{"likes_count": 1},
	}
	_, err = r.collection.UpdateOne(ctx, filter, update)
	return err
}

// RemoveLike removes userID from the poem's likes set and drops likes_count
func (r *MongoPoemRepository) RemoveLike(ctx context.Context, poemID string, userID primitive.ObjectID) error {
	objID, err := primitive.ObjectIDFromHex(poemID)
	if err != nil {
		return ErrInvalidID
	}
	filter := bson.M{"_id": objID, "likes": userID}
	update := bson.M{
		"$pull": bson.M{"likes": userID},
		"$inc":  bson.M{"likes_count": -1},
	}
	_, err = r.collection.UpdateOne(ctx, filter, update)
	return err
}

// HasUserLikedPoem checks if a user is in the poem's likes set
func (r *MongoPoemRepository) HasUserLikedPoem(ctx context.Context, poemID string, userID primitive.ObjectID) (bool, error) {
	objID, err := primitive.ObjectIDFromHex(poemID)
	if err != nil {
		return false, ErrInvalidID
	}
	count, err := r.collection.CountDocuments(ctx, bson.M{"_id": objID, "likes": userID})
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// IncrementCommentsCount increments the comments count of a poem
func (r *MongoPoemRepository) IncrementCommentsCount(ctx context.Context, poemID string) error {
	objID, err := primitive.ObjectIDFromHex(poemID)
	if err != nil {
		return ErrInvalidID
	}
	_, err = r.collection.UpdateOne(ctx, bson.M{"_id": objID}, bson.M{"$inc": bson.M{"comments_count": 1}})
	return err
}

// SetFeatured sets the featured flag of a poem
func (r *MongoPoemRepository) SetFeatured(ctx context.Context, poemID string, featured bool) error {
	objID, err := primitive.ObjectIDFromHex(poemID)
	if err != nil {
		return ErrInvalidID
	}
	res, err := r.collection.UpdateOne(ctx, bson.M{"_id": objID}, bson.M{"$set": bson.M{"featured": featured}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrPoemNotFound
	}
	return nil
}
