package repository

import (
	"testing"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/lingomate/lingomate-go/internal/model"
)

func TestRecommendedFilterExcludesSelfAndFriends(t *testing.T) {
	self := primitive.NewObjectID()
	friend := primitive.NewObjectID()

	filter := recommendedFilter(&model.User{
		ID:      self,
		Friends: []primitive.ObjectID{friend},
	})

	if filter["isOnboarded"] != true {
		t.Error("filter should require onboarded users")
	}

	idFilter, ok := filter["_id"].(bson.M)
	if !ok {
		t.Fatalf("filter _id = %v, want $nin clause", filter["_id"])
	}
	excluded, ok := idFilter["$nin"].([]primitive.ObjectID)
	if !ok {
		t.Fatalf("$nin = %v, want ObjectID slice", idFilter["$nin"])
	}
	if len(excluded) != 2 || excluded[0] != self || excluded[1] != friend {
		t.Errorf("$nin = %v, want [self friend]", excluded)
	}
}

func TestRecommendedFilterNoFriends(t *testing.T) {
	self := primitive.NewObjectID()

	filter := recommendedFilter(&model.User{ID: self})

	excluded := filter["_id"].(bson.M)["$nin"].([]primitive.ObjectID)
	if len(excluded) != 1 || excluded[0] != self {
		t.Errorf("$nin = %v, want only self", excluded)
	}
}

func TestSentinelErrors(t *testing.T) {
	if ErrUserNotFound.Error() != "user not found" {
		t.Errorf("unexpected error message: %s", ErrUserNotFound)
	}
	if ErrDuplicateEmail.Error() != "email already exists" {
		t.Errorf("unexpected error message: %s", ErrDuplicateEmail)
	}
	if ErrRequestNotFound.Error() != "friend request not found" {
		t.Errorf("unexpected error message: %s", ErrRequestNotFound)
	}
}
