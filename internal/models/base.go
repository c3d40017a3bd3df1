package models

import (
	"time"

	"github.com/google/uuid"
)

// Base carries the document id and timestamps shared by all persisted
// entities. Ids are UUID strings stored as the Mongo _id.
type Base struct {
	ID        string    `bson:"_id,omitempty" json:"id"`
	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}

// NewBase returns a Base with a fresh id and both timestamps set to now (UTC).
func NewBase() Base {
	now := time.Now().UTC()
	return Base{
		ID:        uuid.NewString(),
		CreatedAt: now,
		UpdatedAt: now,
	}
}
