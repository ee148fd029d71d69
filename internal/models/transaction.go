package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Transaction types
const (
	TransactionTypePurchase = "purchase"
	TransactionTypeRedeem   = "redeem"
)

// Redemption kinds
const (
	PrizeTypePrize    = "prize"
	PrizeTypeCashback = "cashback"
)

// Redemption statuses. Pending may transition to completed or cancelled,
// both of which are terminal.
const (
	StatusPending   = "pending"
	StatusCompleted = "completed"
	StatusCancelled = "cancelled"
)

// Transaction is an append-only ledger entry recording one point movement.
// Points is signed: positive for credits, negative for debits. After
// creation only Status is ever mutated, and only for prize redemptions.
type Transaction struct {
	ID             primitive.ObjectID  `bson:"_id,omitempty" json:"id,omitempty"`
	UserID         primitive.ObjectID  `bson:"userID" json:"userID"`
	Type           string              `bson:"type" json:"type"`
	Concept        string              `bson:"concept" json:"concept"`
	Points         int                 `bson:"points" json:"points"`
	PrizeID        *primitive.ObjectID `bson:"prizeID,omitempty" json:"prizeID,omitempty"`
	PrizeType      string              `bson:"prizeType,omitempty" json:"prizeType,omitempty"`
	CashbackAmount int                 `bson:"cashbackAmount,omitempty" json:"cashbackAmount,omitempty"`
	Status         string              `bson:"status,omitempty" json:"status,omitempty"`
	Date           time.Time           `bson:"date" json:"date"`
	CreatedAt      time.Time           `bson:"createdAt" json:"createdAt"`
	UpdatedAt      time.Time           `bson:"updatedAt" json:"updatedAt"`
}

// IsPrizeRedemption reports whether the transaction exchanged points for
// a catalog prize (the only kind that carries a status).
func (t *Transaction) IsPrizeRedemption() bool {
	return t.Type == TransactionTypeRedeem && t.PrizeType == PrizeTypePrize
}
