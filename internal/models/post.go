package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	MediaTypeText  = "text"
	MediaTypeImage = "image"
	MediaTypeVideo = "video"
)

type Post struct {
	ID            primitive.ObjectID   `bson:"_id,omitempty" json:"id"`
	AuthorID      primitive.ObjectID   `bson:"author_id" json:"author_id"`
	Content       string               `bson:"content" json:"content"`
	MediaType     string               `bson:"media_type" json:"media_type"`
	MediaURL      string               `bson:"media_url,omitempty" json:"media_url,omitempty"`
	IsAnonymous   bool                 `bson:"is_anonymous" json:"is_anonymous"`
	LikedBy       []primitive.ObjectID `bson:"liked_by,omitempty" json:"-"`
	LikesCount    int                  `bson:"likes_count" json:"likes_count"`
	CommentsCount int                  `bson:"comments_count" json:"comments_count"`
	CreatedAt     time.Time            `bson:"created_at" json:"created_at"`
}
