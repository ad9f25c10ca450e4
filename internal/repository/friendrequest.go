package repository

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/lingomate/lingomate-go/internal/model"
)

const friendRequestsCollection = "friend_requests"

var (
	ErrRequestNotFound  = errors.New("friend request not found")
	ErrDuplicateRequest = errors.New("friend request already exists")
)

// FriendRequestRepository handles friend request persistence operations.
type FriendRequestRepository struct {
	col *mongo.Collection
}

// NewFriendRequestRepository creates a new FriendRequestRepository.
func NewFriendRequestRepository(db *mongo.Database) *FriendRequestRepository {
	return &FriendRequestRepository{col: db.Collection(friendRequestsCollection)}
}

// Create inserts a pending friend request and sets the generated ID.
func (r *FriendRequestRepository) Create(ctx context.Context, req *model.FriendRequest) error {
	now := time.Now().UTC()
	req.Status = model.RequestPending
	req.CreatedAt = now
	req.UpdatedAt = now

	res, err := r.col.InsertOne(ctx, req)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return ErrDuplicateRequest
		}
		return err
	}

	if id, ok := res.InsertedID.(primitive.ObjectID); ok {
		req.ID = id
	}
	return nil
}

// GetByID retrieves a friend request by its ID.
func (r *FriendRequestRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*model.FriendRequest, error) {
	req := &model.FriendRequest{}
	err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(req)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrRequestNotFound
		}
		return nil, err
	}
	return req, nil
}

// ExistsBetween reports whether any request links the two users in either
// direction, regardless of status.
func (r *FriendRequestRepository) ExistsBetween(ctx context.Context, a, b primitive.ObjectID) (bool, error) {
	filter := bson.M{"$or": bson.A{
		bson.M{"sender": a, "recipient": b},
		bson.M{"sender": b, "recipient": a},
	}}

	count, err := r.col.CountDocuments(ctx, filter, options.Count().SetLimit(1))
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// MarkAccepted flips the request status to accepted.
func (r *FriendRequestRepository) MarkAccepted(ctx context.Context, id primitive.ObjectID) error {
	res, err := r.col.UpdateOne(ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{
			"status":    model.RequestAccepted,
			"updatedAt": time.Now().UTC(),
		}},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrRequestNotFound
	}
	return nil
}

// ListIncomingPending lists pending requests addressed to the user.
func (r *FriendRequestRepository) ListIncomingPending(ctx context.Context, recipient primitive.ObjectID) ([]model.FriendRequest, error) {
	return r.list(ctx, bson.M{"recipient": recipient, "status": model.RequestPending})
}

// ListAcceptedSent lists requests the user sent that were accepted.
func (r *FriendRequestRepository) ListAcceptedSent(ctx context.Context, sender primitive.ObjectID) ([]model.FriendRequest, error) {
	return r.list(ctx, bson.M{"sender": sender, "status": model.RequestAccepted})
}

// ListOutgoingPending lists pending requests the user sent.
func (r *FriendRequestRepository) ListOutgoingPending(ctx context.Context, sender primitive.ObjectID) ([]model.FriendRequest, error) {
	return r.list(ctx, bson.M{"sender": sender, "status": model.RequestPending})
}

func (r *FriendRequestRepository) list(ctx context.Context, filter bson.M) ([]model.FriendRequest, error) {
	cur, err := r.col.Find(ctx, filter)
	if err != nil {
		return nil, err
	}

	reqs := []model.FriendRequest{}
	if err := cur.All(ctx, &reqs); err != nil {
		return nil, err
	}
	return reqs, nil
}
