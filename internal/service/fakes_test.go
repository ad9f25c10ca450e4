package service

import (
	"context"
	"sync"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/lingomate/lingomate-go/internal/model"
	"github.com/lingomate/lingomate-go/internal/repository"
)

func newID() primitive.ObjectID {
	return primitive.NewObjectID()
}

// memUserStore is an in-memory UserStore enforcing the same invariants as
// the Mongo repository: unique emails and set-semantics friend lists.
type memUserStore struct {
	mu    sync.Mutex
	users map[primitive.ObjectID]*model.User
}

func newMemUserStore() *memUserStore {
	return &memUserStore{users: map[primitive.ObjectID]*model.User{}}
}

func (s *memUserStore) Create(_ context.Context, user *model.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, u := range s.users {
		if u.Email == user.Email {
			return repository.ErrDuplicateEmail
		}
	}

	user.ID = primitive.NewObjectID()
	if user.Friends == nil {
		user.Friends = []primitive.ObjectID{}
	}
	clone := *user
	s.users[user.ID] = &clone
	return nil
}

func (s *memUserStore) GetByEmail(_ context.Context, email string) (*model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, u := range s.users {
		if u.Email == email {
			clone := *u
			return &clone, nil
		}
	}
	return nil, repository.ErrUserNotFound
}

func (s *memUserStore) GetByID(_ context.Context, id primitive.ObjectID) (*model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.users[id]
	if !ok {
		return nil, repository.ErrUserNotFound
	}
	clone := *u
	return &clone, nil
}

func (s *memUserStore) GetMany(_ context.Context, ids []primitive.ObjectID) ([]model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	users := []model.User{}
	for _, id := range ids {
		if u, ok := s.users[id]; ok {
			users = append(users, *u)
		}
	}
	return users, nil
}

func (s *memUserStore) Onboard(_ context.Context, id primitive.ObjectID, req model.OnboardingRequest) (*model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.users[id]
	if !ok {
		return nil, repository.ErrUserNotFound
	}

	u.FullName = req.FullName
	u.Bio = req.Bio
	u.NativeLanguage = req.NativeLanguage
	u.LearningLanguage = req.LearningLanguage
	u.Location = req.Location
	u.Gender = req.Gender
	u.IsOnboarded = true

	clone := *u
	return &clone, nil
}

func (s *memUserStore) FindRecommended(_ context.Context, user *model.User) ([]model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	excluded := map[primitive.ObjectID]bool{user.ID: true}
	for _, f := range user.Friends {
		excluded[f] = true
	}

	users := []model.User{}
	for _, u := range s.users {
		if !excluded[u.ID] && u.IsOnboarded {
			users = append(users, *u)
		}
	}
	return users, nil
}

func (s *memUserStore) AddFriend(_ context.Context, userID, friendID primitive.ObjectID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.users[userID]
	if !ok {
		return repository.ErrUserNotFound
	}
	for _, f := range u.Friends {
		if f == friendID {
			return nil
		}
	}
	u.Friends = append(u.Friends, friendID)
	return nil
}

// memRequestStore is an in-memory FriendRequestStore.
type memRequestStore struct {
	mu       sync.Mutex
	requests map[primitive.ObjectID]*model.FriendRequest
}

func newMemRequestStore() *memRequestStore {
	return &memRequestStore{requests: map[primitive.ObjectID]*model.FriendRequest{}}
}

func (s *memRequestStore) Create(_ context.Context, req *model.FriendRequest) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, r := range s.requests {
		if r.Sender == req.Sender && r.Recipient == req.Recipient {
			return repository.ErrDuplicateRequest
		}
	}

	req.ID = primitive.NewObjectID()
	req.Status = model.RequestPending
	clone := *req
	s.requests[req.ID] = &clone
	return nil
}

func (s *memRequestStore) GetByID(_ context.Context, id primitive.ObjectID) (*model.FriendRequest, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	r, ok := s.requests[id]
	if !ok {
		return nil, repository.ErrRequestNotFound
	}
	clone := *r
	return &clone, nil
}

func (s *memRequestStore) ExistsBetween(_ context.Context, a, b primitive.ObjectID) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, r := range s.requests {
		if (r.Sender == a && r.Recipient == b) || (r.Sender == b && r.Recipient == a) {
			return true, nil
		}
	}
	return false, nil
}

func (s *memRequestStore) MarkAccepted(_ context.Context, id primitive.ObjectID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	r, ok := s.requests[id]
	if !ok {
		return repository.ErrRequestNotFound
	}
	r.Status = model.RequestAccepted
	return nil
}

func (s *memRequestStore) ListIncomingPending(_ context.Context, recipient primitive.ObjectID) ([]model.FriendRequest, error) {
	return s.filter(func(r *model.FriendRequest) bool {
		return r.Recipient == recipient && r.Status == model.RequestPending
	}), nil
}

func (s *memRequestStore) ListAcceptedSent(_ context.Context, sender primitive.ObjectID) ([]model.FriendRequest, error) {
	return s.filter(func(r *model.FriendRequest) bool {
		return r.Sender == sender && r.Status == model.RequestAccepted
	}), nil
}

func (s *memRequestStore) ListOutgoingPending(_ context.Context, sender primitive.ObjectID) ([]model.FriendRequest, error) {
	return s.filter(func(r *model.FriendRequest) bool {
		return r.Sender == sender && r.Status == model.RequestPending
	}), nil
}

func (s *memRequestStore) filter(keep func(*model.FriendRequest) bool) []model.FriendRequest {
	s.mu.Lock()
	defer s.mu.Unlock()

	reqs := []model.FriendRequest{}
	for _, r := range s.requests {
		if keep(r) {
			reqs = append(reqs, *r)
		}
	}
	return reqs
}

// recordingIdentity records upsert calls and optionally fails every one.
type recordingIdentity struct {
	mu    sync.Mutex
	calls []string
	err   error
}

func (p *recordingIdentity) UpsertUser(_ context.Context, id, name, image string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.calls = append(p.calls, id)
	return p.err
}

func (p *recordingIdentity) callCount() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.calls)
}
