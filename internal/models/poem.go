package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Poem represents a poem post stored in MongoDB. LikesCount is a denormalized
// counter kept equal to len(Likes) by the like toggle ($addToSet/$pull paired
// with $inc), never recomputed from the set. CommentsCount is incremented on
// every comment or reply creation and only reset when the poem is deleted.
type Poem struct {
	ID            primitive.ObjectID   `json:"id,omitempty" bson:"_id,omitempty"`
	Title         string               `json:"title" bson:"title"`
	Content       string               `json:"content" bson:"content"`
	Author        primitive.ObjectID   `json:"author" bson:"author"`
	Category      string               `json:"category" bson:"category"`
	Tags          []string             `json:"tags" bson:"tags"`
	Image         string               `json:"image,omitempty" bson:"image,omitempty"`
	Likes         []primitive.ObjectID `json:"likes" bson:"likes"`
	LikesCount    int                  `json:"likes_count" bson:"likes_count"`
	CommentsCount int                  `json:"comments_count" bson:"comments_count"`
	Featured      bool                 `json:"featured" bson:"featured"`
	CreatedAt     time.Time            `json:"created_at" bson:"created_at"`
	UpdatedAt     time.Time            `json:"updated_at" bson:"updated_at"`
}

// CreatePoemRequest defines the request body for creating a new poem
type CreatePoemRequest struct {
	Title    string   `json:"title" validate:"required,min=1,max=200"`
	Content  string   `json:"content" validate:"required,min=1,max=10000"`
	Category string   `json:"category,omitempty" validate:"omitempty,max=50"`
	Tags     []string `json:"tags,omitempty" validate:"omitempty,max=10,dive,min=1,max=30"`
	Image    string   `json:"image,omitempty" validate:"omitempty,url"`
}

// UpdatePoemRequest defines the request body for updating an existing poem
type UpdatePoemRequest struct {
	Title    string   `json:"title,omitempty" validate:"omitempty,min=1,max=200"`
	Content  string   `json:"content,omitempty" validate:"omitempty,min=1,max=10000"`
	Category string   `json:"category,omitempty" validate:"omitempty,max=50"`
	Tags     []string `json:"tags,omitempty" validate:"omitempty,max=10,dive,min=1,max=30"`
	Image    string   `json:"image,omitempty" validate:"omitempty,url"`
}
