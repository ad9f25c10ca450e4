package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand"
	"regexp"
	"strings"
	"time"
	"unicode/utf8"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/lingomate/lingomate-go/internal/crypto"
	"github.com/lingomate/lingomate-go/internal/model"
	"github.com/lingomate/lingomate-go/internal/repository"
)

// UserStore is the persistence surface the services need from the user
// repository.
type UserStore interface {
	Create(ctx context.Context, user *model.User) error
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*model.User, error)
	GetMany(ctx context.Context, ids []primitive.ObjectID) ([]model.User, error)
	Onboard(ctx context.Context, id primitive.ObjectID, req model.OnboardingRequest) (*model.User, error)
	FindRecommended(ctx context.Context, user *model.User) ([]model.User, error)
	AddFriend(ctx context.Context, userID, friendID primitive.ObjectID) error
}

// IdentityProvider pushes account identity to the external chat provider.
// Every call is best effort: failures are logged and never surfaced to the
// caller of the primary operation.
type IdentityProvider interface {
	UpsertUser(ctx context.Context, id, name, image string) error
}

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

const avatarBaseURL = "https://avatar.iran.liara.run/public"

// AuthService orchestrates the account lifecycle: signup, login and
// onboarding, plus best-effort identity sync after each of them.
type AuthService struct {
	users     UserStore
	identity  IdentityProvider
	jwtSecret string
	jwtExpiry time.Duration

	// avatarIdx picks the random avatar index in [1,50]; swapped in tests.
	avatarIdx func() int
}

// NewAuthService creates a new AuthService.
func NewAuthService(users UserStore, identity IdentityProvider, secret string, expiry time.Duration) *AuthService {
	return &AuthService{
		users:     users,
		identity:  identity,
		jwtSecret: secret,
		jwtExpiry: expiry,
		avatarIdx: func() int { return rand.Intn(50) + 1 },
	}
}

// Signup registers a new account and returns it together with a fresh
// session token. Validation order matches the public contract: field
// presence, password length, email shape, then uniqueness at the store.
func (s *AuthService) Signup(ctx context.Context, req model.SignupRequest) (*model.User, string, error) {
	if req.Email == "" || req.Password == "" || req.FullName == "" || req.Gender == "" {
		return nil, "", ErrAllFieldsRequired
	}
	if utf8.RuneCountInString(req.Password) < 6 {
		return nil, "", ErrPasswordTooShort
	}
	if !emailPattern.MatchString(req.Email) {
		return nil, "", ErrInvalidEmail
	}

	hash, err := crypto.HashPassword(req.Password)
	if err != nil {
		return nil, "", err
	}

	user := &model.User{
		Email:        req.Email,
		PasswordHash: hash,
		FullName:     req.FullName,
		Gender:       req.Gender,
		ProfilePic:   avatarURL(req.FullName, req.Gender, s.avatarIdx()),
	}

	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			return nil, "", ErrEmailTaken
		}
		return nil, "", err
	}

	s.syncIdentity(ctx, user)

	token, err := crypto.MintSessionToken(user.ID.Hex(), s.jwtSecret, s.jwtExpiry)
	if err != nil {
		return nil, "", err
	}

	return user, token, nil
}

// Login authenticates an account and returns it with a fresh session token.
// Unknown email and wrong password produce the same error so the response
// leaks nothing about which one failed.
func (s *AuthService) Login(ctx context.Context, req model.LoginRequest) (*model.User, string, error) {
	if req.Email == "" || req.Password == "" {
		return nil, "", ErrAllFieldsRequired
	}

	user, err := s.users.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, "", ErrInvalidCredentials
		}
		return nil, "", err
	}

	match, err := crypto.VerifyPassword(req.Password, user.PasswordHash)
	if err != nil {
		return nil, "", err
	}
	if !match {
		return nil, "", ErrInvalidCredentials
	}

	s.syncIdentity(ctx, user)

	token, err := crypto.MintSessionToken(user.ID.Hex(), s.jwtSecret, s.jwtExpiry)
	if err != nil {
		return nil, "", err
	}

	return user, token, nil
}

// Onboard completes (or re-runs) onboarding for the account. All six profile
// fields are required; missing ones are enumerated in the documented order.
// The onboarded flag only ever transitions false to true.
func (s *AuthService) Onboard(ctx context.Context, userID primitive.ObjectID, req model.OnboardingRequest) (*model.User, error) {
	var missing []string
	for _, f := range []struct {
		name  string
		value string
	}{
		{"fullName", req.FullName},
		{"bio", req.Bio},
		{"nativeLanguage", req.NativeLanguage},
		{"learningLanguage", req.LearningLanguage},
		{"location", req.Location},
		{"gender", req.Gender},
	} {
		if f.value == "" {
			missing = append(missing, f.name)
		}
	}
	if len(missing) > 0 {
		return nil, &OnboardingError{MissingFields: missing}
	}

	user, err := s.users.Onboard(ctx, userID, req)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	s.syncIdentity(ctx, user)

	return user, nil
}

// GetUser retrieves the account behind an authenticated session.
func (s *AuthService) GetUser(ctx context.Context, userID primitive.ObjectID) (*model.User, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

// syncIdentity pushes the account to the chat provider. Failures are logged
// and swallowed; identity sync must never fail the primary operation.
func (s *AuthService) syncIdentity(ctx context.Context, user *model.User) {
	if err := s.identity.UpsertUser(ctx, user.ID.Hex(), user.FullName, user.ProfilePic); err != nil {
		slog.Warn("identity sync failed", "user", user.ID.Hex(), "error", err)
	}
}

// avatarURL derives the profile picture from gender and a random index.
// Male and female accounts draw from gendered pools seeded with the first
// name; everything else uses the generic pool.
func avatarURL(fullName, gender string, idx int) string {
	first, _, _ := strings.Cut(fullName, " ")
	switch gender {
	case model.GenderMale:
		return fmt.Sprintf("%s/boy?username=%s%d", avatarBaseURL, first, idx)
	case model.GenderFemale:
		return fmt.Sprintf("%s/girl?username=%s%d", avatarBaseURL, first, idx)
	default:
		return fmt.Sprintf("%s/%d", avatarBaseURL, idx)
	}
}
