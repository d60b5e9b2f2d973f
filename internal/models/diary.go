package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// DiaryPost is a dated entry about a pet. PetID and OwnerID are kept as hex
// strings rather than ObjectIDs; existing documents were written that way and
// every lookup against them compares hex strings.
type DiaryPost struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	CreatedAt time.Time          `bson:"created_at" json:"created_at"`

	PetID   string `bson:"pet_id" json:"pet_id"`
	OwnerID string `bson:"owner_id" json:"owner_id"`

	Title       string `bson:"title" json:"title"`
	Description string `bson:"description" json:"description"`
	PhotoURL    string `bson:"photo_url,omitempty" json:"photo_url,omitempty"`

	// Always true for now; there is no privacy toggle in the UI yet.
	IsPublic bool `bson:"is_public" json:"is_public"`
}
