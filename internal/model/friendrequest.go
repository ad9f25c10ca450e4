package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Friend request statuses.
const (
	RequestPending  = "pending"
	RequestAccepted = "accepted"
)

// FriendRequest links a sender to a recipient. Accepting it makes the
// friendship bidirectional on both user documents.
type FriendRequest struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Sender    primitive.ObjectID `bson:"sender" json:"sender"`
	Recipient primitive.ObjectID `bson:"recipient" json:"recipient"`
	Status    string             `bson:"status" json:"status"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// PopulatedFriendRequest is the API view of a request with one or both
// parties expanded into full user documents, mirroring what list endpoints
// return to the client.
type PopulatedFriendRequest struct {
	ID        primitive.ObjectID `json:"_id"`
	Sender    *User              `json:"sender,omitempty"`
	Recipient *User              `json:"recipient,omitempty"`
	Status    string             `json:"status"`
	CreatedAt time.Time          `json:"createdAt"`
	UpdatedAt time.Time          `json:"updatedAt"`
}
