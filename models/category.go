package models

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// Category owns exactly one image asset. Image holds the generated asset
// name, never a URL or raw bytes.
type Category struct {
	ID          bson.ObjectID `bson:"_id,omitempty" json:"id"`
	Name        string        `bson:"name" json:"name"`
	Description string        `bson:"description,omitempty" json:"description,omitempty"`
	Image       string        `bson:"image" json:"image"`
	CreatedAt   time.Time     `bson:"createdAt" json:"createdAt"`
}
