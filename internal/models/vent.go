package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Vent is a private journal entry, optionally with an attached voice note.
type Vent struct {
	ID             primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	OwnerID        primitive.ObjectID `bson:"owner_id" json:"owner_id"`
	Content        string             `bson:"content" json:"content"`
	IsPrivate      bool               `bson:"is_private" json:"is_private"`
	VoiceURL       string             `bson:"voice_url,omitempty" json:"voice_url,omitempty"`
	VoiceDuration  int                `bson:"voice_duration_secs,omitempty" json:"voice_duration_secs,omitempty"`
	CreatedAt      time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt      time.Time          `bson:"updated_at" json:"updated_at"`
}
