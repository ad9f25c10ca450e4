package service

import "errors"

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrAllFieldsRequired  = errors.New("all fields are required")
	ErrPasswordTooShort   = errors.New("password must be at least 6 characters")
	ErrInvalidEmail       = errors.New("invalid email format")
	ErrEmailTaken         = errors.New("email already exists, please use a different one")
	ErrUserNotFound       = errors.New("user not found")

	ErrSelfRequest      = errors.New("you can't send a friend request to yourself")
	ErrAlreadyFriends   = errors.New("you are already friends with this user")
	ErrRequestExists    = errors.New("a friend request already exists between you and this user")
	ErrRequestNotFound  = errors.New("friend request not found")
	ErrNotRequestTarget = errors.New("you are not authorized to accept this request")
)

// OnboardingError reports which onboarding fields were missing, in the order
// the API documents them.
type OnboardingError struct {
	MissingFields []string
}

func (e *OnboardingError) Error() string {
	return "all fields are required"
}
