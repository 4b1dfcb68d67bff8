package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Comment represents a comment on a poem. Parent is nil for top-level
// comments. Replies holds the ids of direct children; threading is exactly one
// level deep, so a reply always has an empty Replies list.
type Comment struct {
	ID        primitive.ObjectID   `json:"id,omitempty" bson:"_id,omitempty"`
	PoemID    primitive.ObjectID   `json:"poem_id" bson:"poem_id"`
	Author    primitive.ObjectID   `json:"author" bson:"author"`
	Content   string               `json:"content" bson:"content"`
	Parent    *primitive.ObjectID  `json:"parent,omitempty" bson:"parent,omitempty"`
	Replies   []primitive.ObjectID `json:"replies" bson:"replies"`
	CreatedAt time.Time            `json:"created_at" bson:"created_at"`
}

// CreateCommentRequest defines the request body for creating a comment or a
// reply (ParentID set)
type CreateCommentRequest struct {
	Content  string `json:"content" validate:"required,min=1,max=500"`
	ParentID string `json:"parent_id,omitempty"`
}

// CommentView is a comment with its author expanded, as returned by listings
type CommentView struct {
	ID        primitive.ObjectID `json:"id"`
	PoemID    primitive.ObjectID `json:"poem_id"`
	Author    UserCompact        `json:"author"`
	Content   string             `json:"content"`
	CreatedAt time.Time          `json:"created_at"`
	Replies   []CommentView      `json:"replies,omitempty"`
}
