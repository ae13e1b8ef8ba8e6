package users

import (
	"context"

	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ErrUserNotFound is returned when an id does not resolve to a user.
var ErrUserNotFound = errors.New("user not found")

// ErrEmailTaken is returned by CreateUser when another account owns the email.
var ErrEmailTaken = errors.New("email already registered")

// Directory looks users up in the users collection.
type Directory struct {
	collection *mongo.Collection
}

func NewDirectory(collection *mongo.Collection) *Directory {
	return &Directory{collection: collection}
}

// GetUserByID returns ErrUserNotFound, unwrapped, when no user has the given id.
func (d *Directory) GetUserByID(ctx context.Context, id string) (User, error) {
	var user User
	err := d.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&user)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return User{}, ErrUserNotFound
	}
	if err != nil {
		return User{}, errors.Wrap(err, "get user")
	}
	return user, nil
}

// GetUserByEmail returns ErrUserNotFound, unwrapped, when no user has the given email.
func (d *Directory) GetUserByEmail(ctx context.Context, email string) (User, error) {
	var user User
	err := d.collection.FindOne(ctx, bson.M{"email": email}).Decode(&user)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return User{}, ErrUserNotFound
	}
	if err != nil {
		return User{}, errors.Wrap(err, "get user by email")
	}
	return user, nil
}

func (d *Directory) CreateUser(ctx context.Context, user User) error {
	_, err := d.collection.InsertOne(ctx, user)
	if mongo.IsDuplicateKeyError(err) {
		return ErrEmailTaken
	}
	return errors.Wrap(err, "create user")
}

// DeleteUser removes the account; a missing account is not an error.
func (d *Directory) DeleteUser(ctx context.Context, id string) error {
	_, err := d.collection.DeleteOne(ctx, bson.M{"_id": id})
	return errors.Wrap(err, "delete user")
}

// EnsureIndexes makes emails unique so concurrent signups cannot share one.
func (d *Directory) EnsureIndexes(ctx context.Context) error {
	_, err := d.collection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	return errors.Wrap(err, "create users indexes")
}
