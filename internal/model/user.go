package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Gender values accepted at signup. Anything outside the enum falls back to
// the generic avatar pool.
const (
	GenderMale   = "male"
	GenderFemale = "female"
	GenderOther  = "other"
)

// User is a registered account as stored in the users collection. The
// password hash is never serialized into API responses.
type User struct {
	ID               primitive.ObjectID   `bson:"_id,omitempty" json:"_id"`
	Email            string               `bson:"email" json:"email"`
	PasswordHash     string               `bson:"passwordHash" json:"-"`
	FullName         string               `bson:"fullName" json:"fullName"`
	Gender           string               `bson:"gender" json:"gender"`
	Bio              string               `bson:"bio,omitempty" json:"bio"`
	NativeLanguage   string               `bson:"nativeLanguage,omitempty" json:"nativeLanguage"`
	LearningLanguage string               `bson:"learningLanguage,omitempty" json:"learningLanguage"`
	Location         string               `bson:"location,omitempty" json:"location"`
	ProfilePic       string               `bson:"profilePic,omitempty" json:"profilePic"`
	IsOnboarded      bool                 `bson:"isOnboarded" json:"isOnboarded"`
	Friends          []primitive.ObjectID `bson:"friends" json:"friends"`
	CreatedAt        time.Time            `bson:"createdAt" json:"createdAt"`
	UpdatedAt        time.Time            `bson:"updatedAt" json:"updatedAt"`
}

// SignupRequest represents an account registration request.
type SignupRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	FullName string `json:"fullName"`
	Gender   string `json:"gender"`
}

// LoginRequest represents a login request.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// OnboardingRequest carries the profile fields required to complete
// onboarding. All six fields are mandatory.
type OnboardingRequest struct {
	FullName         string `json:"fullName"`
	Bio              string `json:"bio"`
	NativeLanguage   string `json:"nativeLanguage"`
	LearningLanguage string `json:"learningLanguage"`
	Location         string `json:"location"`
	Gender           string `json:"gender"`
}
