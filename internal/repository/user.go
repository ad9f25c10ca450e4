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

const usersCollection = "users"

var (
	ErrUserNotFound   = errors.New("user not found")
	ErrDuplicateEmail = errors.New("email already exists")
)

// UserRepository handles user persistence operations.
type UserRepository struct {
	col *mongo.Collection
}

// NewUserRepository creates a new UserRepository over the users collection.
func NewUserRepository(db *mongo.Database) *UserRepository {
	return &UserRepository{col: db.Collection(usersCollection)}
}

// Create inserts a new user and sets the generated ID on the user struct.
// A unique-index violation on email is reported as ErrDuplicateEmail.
func (r *UserRepository) Create(ctx context.Context, user *model.User) error {
	now := time.Now().UTC()
	user.CreatedAt = now
	user.UpdatedAt = now
	if user.Friends == nil {
		user.Friends = []primitive.ObjectID{}
	}

	res, err := r.col.InsertOne(ctx, user)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return ErrDuplicateEmail
		}
		return err
	}

	if id, ok := res.InsertedID.(primitive.ObjectID); ok {
		user.ID = id
	}
	return nil
}

// GetByEmail retrieves a user by their email address.
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	user := &model.User{}
	err := r.col.FindOne(ctx, bson.M{"email": email}).Decode(user)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

// GetByID retrieves a user by their ID.
func (r *UserRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*model.User, error) {
	user := &model.User{}
	err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(user)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

// GetMany retrieves the users whose IDs are in ids. Missing IDs are simply
// absent from the result.
func (r *UserRepository) GetMany(ctx context.Context, ids []primitive.ObjectID) ([]model.User, error) {
	cur, err := r.col.Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, err
	}

	users := []model.User{}
	if err := cur.All(ctx, &users); err != nil {
		return nil, err
	}
	return users, nil
}

// Onboard merges the onboarding fields into the user document, flips
// isOnboarded to true and returns the updated document. The flag never
// transitions back; repeated onboarding only overwrites profile fields.
func (r *UserRepository) Onboard(ctx context.Context, id primitive.ObjectID, req model.OnboardingRequest) (*model.User, error) {
	update := bson.M{"$set": bson.M{
		"fullName":         req.FullName,
		"bio":              req.Bio,
		"nativeLanguage":   req.NativeLanguage,
		"learningLanguage": req.LearningLanguage,
		"location":         req.Location,
		"gender":           req.Gender,
		"isOnboarded":      true,
		"updatedAt":        time.Now().UTC(),
	}}

	user := &model.User{}
	err := r.col.FindOneAndUpdate(ctx, bson.M{"_id": id}, update,
		options.FindOneAndUpdate().SetReturnDocument(options.After)).Decode(user)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

// FindRecommended lists onboarded users excluding the given user and their
// current friends.
func (r *UserRepository) FindRecommended(ctx context.Context, user *model.User) ([]model.User, error) {
	cur, err := r.col.Find(ctx, recommendedFilter(user))
	if err != nil {
		return nil, err
	}

	users := []model.User{}
	if err := cur.All(ctx, &users); err != nil {
		return nil, err
	}
	return users, nil
}

// AddFriend adds friendID to the user's friend set. $addToSet keeps the set
// semantics under concurrent accepts.
func (r *UserRepository) AddFriend(ctx context.Context, userID, friendID primitive.ObjectID) error {
	res, err := r.col.UpdateOne(ctx,
		bson.M{"_id": userID},
		bson.M{
			"$addToSet": bson.M{"friends": friendID},
			"$set":      bson.M{"updatedAt": time.Now().UTC()},
		},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrUserNotFound
	}
	return nil
}

func recommendedFilter(user *model.User) bson.M {
	excluded := append([]primitive.ObjectID{user.ID}, user.Friends...)
	return bson.M{
		"_id":         bson.M{"$nin": excluded},
		"isOnboarded": true,
	}
}
