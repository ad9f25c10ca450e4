package service

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/lingomate/lingomate-go/internal/model"
	"github.com/lingomate/lingomate-go/internal/repository"
)

// FriendRequestStore is the persistence surface for friend requests.
type FriendRequestStore interface {
	Create(ctx context.Context, req *model.FriendRequest) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*model.FriendRequest, error)
	ExistsBetween(ctx context.Context, a, b primitive.ObjectID) (bool, error)
	MarkAccepted(ctx context.Context, id primitive.ObjectID) error
	ListIncomingPending(ctx context.Context, recipient primitive.ObjectID) ([]model.FriendRequest, error)
	ListAcceptedSent(ctx context.Context, sender primitive.ObjectID) ([]model.FriendRequest, error)
	ListOutgoingPending(ctx context.Context, sender primitive.ObjectID) ([]model.FriendRequest, error)
}

// UserService handles the social graph: recommendations, friends and the
// friend-request lifecycle.
type UserService struct {
	users    UserStore
	requests FriendRequestStore
}

// NewUserService creates a new UserService.
func NewUserService(users UserStore, requests FriendRequestStore) *UserService {
	return &UserService{users: users, requests: requests}
}

// RecommendedUsers lists onboarded accounts the user is not already friends
// with, excluding the user themselves.
func (s *UserService) RecommendedUsers(ctx context.Context, userID primitive.ObjectID) ([]model.User, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.users.FindRecommended(ctx, user)
}

// Friends lists the user's current friends.
func (s *UserService) Friends(ctx context.Context, userID primitive.ObjectID) ([]model.User, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(user.Friends) == 0 {
		return []model.User{}, nil
	}
	return s.users.GetMany(ctx, user.Friends)
}

// SendFriendRequest creates a pending request from sender to recipient.
func (s *UserService) SendFriendRequest(ctx context.Context, sender, recipient primitive.ObjectID) (*model.FriendRequest, error) {
	if sender == recipient {
		return nil, ErrSelfRequest
	}

	target, err := s.users.GetByID(ctx, recipient)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	for _, friend := range target.Friends {
		if friend == sender {
			return nil, ErrAlreadyFriends
		}
	}

	exists, err := s.requests.ExistsBetween(ctx, sender, recipient)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrRequestExists
	}

	req := &model.FriendRequest{Sender: sender, Recipient: recipient}
	if err := s.requests.Create(ctx, req); err != nil {
		// A concurrent request between the same pair loses at the index.
		if errors.Is(err, repository.ErrDuplicateRequest) {
			return nil, ErrRequestExists
		}
		return nil, err
	}
	return req, nil
}

// AcceptFriendRequest marks the request accepted and links both accounts as
// friends. Only the recipient may accept.
func (s *UserService) AcceptFriendRequest(ctx context.Context, userID, requestID primitive.ObjectID) error {
	req, err := s.requests.GetByID(ctx, requestID)
	if err != nil {
		if errors.Is(err, repository.ErrRequestNotFound) {
			return ErrRequestNotFound
		}
		return err
	}

	if req.Recipient != userID {
		return ErrNotRequestTarget
	}

	if err := s.requests.MarkAccepted(ctx, req.ID); err != nil {
		return err
	}

	if err := s.users.AddFriend(ctx, req.Sender, req.Recipient); err != nil {
		return err
	}
	return s.users.AddFriend(ctx, req.Recipient, req.Sender)
}

// FriendRequests returns pending requests addressed to the user with senders
// populated, and accepted requests the user sent with recipients populated.
func (s *UserService) FriendRequests(ctx context.Context, userID primitive.ObjectID) (incoming, accepted []model.PopulatedFriendRequest, err error) {
	in, err := s.requests.ListIncomingPending(ctx, userID)
	if err != nil {
		return nil, nil, err
	}
	incoming, err = s.populate(ctx, in, true, false)
	if err != nil {
		return nil, nil, err
	}

	acc, err := s.requests.ListAcceptedSent(ctx, userID)
	if err != nil {
		return nil, nil, err
	}
	accepted, err = s.populate(ctx, acc, false, true)
	if err != nil {
		return nil, nil, err
	}

	return incoming, accepted, nil
}

// OutgoingRequests returns the user's pending requests with recipients
// populated, so the client can mark already-contacted users.
func (s *UserService) OutgoingRequests(ctx context.Context, userID primitive.ObjectID) ([]model.PopulatedFriendRequest, error) {
	out, err := s.requests.ListOutgoingPending(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.populate(ctx, out, false, true)
}

// populate expands sender and/or recipient IDs into user documents. Requests
// whose counterpart account vanished are dropped rather than returned
// half-empty.
func (s *UserService) populate(ctx context.Context, reqs []model.FriendRequest, withSender, withRecipient bool) ([]model.PopulatedFriendRequest, error) {
	ids := make([]primitive.ObjectID, 0, len(reqs)*2)
	for _, r := range reqs {
		if withSender {
			ids = append(ids, r.Sender)
		}
		if withRecipient {
			ids = append(ids, r.Recipient)
		}
	}

	byID := map[primitive.ObjectID]*model.User{}
	if len(ids) > 0 {
		users, err := s.users.GetMany(ctx, ids)
		if err != nil {
			return nil, err
		}
		for i := range users {
			byID[users[i].ID] = &users[i]
		}
	}

	populated := []model.PopulatedFriendRequest{}
	for _, r := range reqs {
		p := model.PopulatedFriendRequest{
			ID:        r.ID,
			Status:    r.Status,
			CreatedAt: r.CreatedAt,
			UpdatedAt: r.UpdatedAt,
		}
		if withSender {
			if p.Sender = byID[r.Sender]; p.Sender == nil {
				continue
			}
		}
		if withRecipient {
			if p.Recipient = byID[r.Recipient]; p.Recipient == nil {
				continue
			}
		}
		populated = append(populated, p)
	}
	return populated, nil
}
