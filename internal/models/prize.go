package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Prize availability statuses
const (
	PrizeStatusAvailable   = "available"
	PrizeStatusUnavailable = "unavailable"
)

// Prize is a catalog item redeemable for points. Stock is only ever
// mutated through the stock service's conditional updates; the status
// flips to unavailable when a redemption drains the last unit.
type Prize struct {
	ID             primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Name           string             `bson:"name" json:"name"`
	Description    string             `bson:"description" json:"description"`
	PointsRequired int                `bson:"pointsRequired" json:"pointsRequired"`
	Image          string             `bson:"image" json:"image"`
	Status         string             `bson:"status" json:"status"`
	Stock          int                `bson:"stock" json:"stock"`
	CreatedAt      time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt      time.Time          `bson:"updatedAt" json:"updatedAt"`
}
