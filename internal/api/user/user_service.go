package user

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/vitorsz/shop-users-api/internal/db"
)

// ErrDuplicateEmail is returned when an insert or update collides with
// the unique index on email.
var ErrDuplicateEmail = errors.New("email exists already")

// Store is the persistence contract for user records. Lookups return
// (nil, nil) when no record matches, never an error.
type Store interface {
	GetByID(ctx context.Context, id string) (*db.User, error)
	GetByEmail(ctx context.Context, email string) (*db.User, error)
	Create(ctx context.Context, name, email, passwordHash string) (*db.User, error)
	Update(ctx context.Context, id string, fields UpdateFields) (*db.User, error)
	Delete(ctx context.Context, id string) error
}

// UpdateFields is the allow-list of mutable attributes. Nil pointers
// mean "leave unchanged"; anything outside this set cannot be written
// through an update.
type UpdateFields struct {
	Name         *string
	Email        *string
	ShoppingCart *[]any
}

type UserService struct {
	collection *mongo.Collection
}

func NewUserService(database *mongo.Database) *UserService {
	return &UserService{collection: database.Collection("users")}
}

func (s *UserService) GetByID(ctx context.Context, id string) (*db.User, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		// an id that can never match any record is just absent
		return nil, nil
	}

	var u db.User
	err = s.collection.FindOne(ctx, bson.M{"_id": oid}).Decode(&u)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (s *UserService) GetByEmail(ctx context.Context, email string) (*db.User, error) {
	var u db.User
	err := s.collection.FindOne(ctx, bson.M{"email": email}).Decode(&u)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (s *UserService) Create(ctx context.Context, name, email, passwordHash string) (*db.User, error) {
	u := &db.User{
		Name:         name,
		Email:        email,
		PasswordHash: passwordHash,
		ShoppingCart: []any{},
	}

	res, err := s.collection.InsertOne(ctx, u)
	if mongo.IsDuplicateKeyError(err) {
		// two concurrent registrations raced past the pre-check, the
		// unique index rejects the second insert
		return nil, ErrDuplicateEmail
	}
	if err != nil {
		return nil, err
	}

	u.ID = res.InsertedID.(primitive.ObjectID)
	return u, nil
}

func (s *UserService) Update(ctx context.Context, id string, fields UpdateFields) (*db.User, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, nil
	}

	set := bson.M{}
	if fields.Name != nil {
		set["name"] = *fields.Name
	}
	if fields.Email != nil {
		set["email"] = *fields.Email
	}
	if fields.ShoppingCart != nil {
		set["shoppingCart"] = *fields.ShoppingCart
	}
	if len(set) == 0 {
		return s.GetByID(ctx, id)
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var u db.User
	err = s.collection.FindOneAndUpdate(ctx, bson.M{"_id": oid}, bson.M{"$set": set}, opts).Decode(&u)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if mongo.IsDuplicateKeyError(err) {
		return nil, ErrDuplicateEmail
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (s *UserService) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil
	}

	_, err = s.collection.DeleteOne(ctx, bson.M{"_id": oid})
	return err
}
