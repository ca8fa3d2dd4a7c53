package models

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// Confession is an anonymous submission. It is written once and never updated.
type Confession struct {
	ID           bson.ObjectID `bson:"_id,omitempty" json:"id"`
	Name         string        `bson:"name" json:"name"`
	Text         string        `bson:"text" json:"text"`
	CreatedAt    time.Time     `bson:"createdAt" json:"createdAt"`
	IP           *string       `bson:"ip" json:"ip"`
	UserAgent    *string       `bson:"userAgent" json:"userAgent"`
	ForwardedFor *string       `bson:"forwardedFor" json:"forwardedFor"`
}
