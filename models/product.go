package models

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// Product references its image assets by generated name, in upload order.
// Category is a deduplicated set of category ids; User is the admin who
// created the product and is never taken from the request body.
type Product struct {
	ID          bson.ObjectID   `bson:"_id,omitempty" json:"id"`
	Name        string          `bson:"name" json:"name"`
	Description string          `bson:"description,omitempty" json:"description,omitempty"`
	Price       float64         `bson:"price" json:"price"`
	Stock       int             `bson:"stock" json:"stock"`
	Images      []string        `bson:"images" json:"images"`
	Category    []bson.ObjectID `bson:"category" json:"category"`
	User        bson.ObjectID   `bson:"user" json:"user"`
	CreatedAt   time.Time       `bson:"createdAt" json:"createdAt"`
}
