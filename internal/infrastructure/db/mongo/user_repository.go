package mongo

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/tuneup/accounts-api/internal/core/domain"
)

const (
	userCollection    = "users"
	counterCollection = "counters"
	userCounterKey    = "user_id"
)

// MongoUserRepository persists user records in the users collection. Records
// carry a small integer identifier allocated from the counters collection
// rather than an ObjectID, so identifiers are stable, ordered and URL-friendly.
type MongoUserRepository struct {
	users    *mongo.Collection
	counters *mongo.Collection
}

func NewUserRepository(db *mongo.Database) *MongoUserRepository {
	return &MongoUserRepository{
		users:    db.Collection(userCollection),
		counters: db.Collection(counterCollection),
	}
}

type mongoUser struct {
	ID       int    `bson:"_id"`
	Email    string `bson:"email"`
	Username string `bson:"username"`
	Password string `bson:"password"`
	Role     string `bson:"role"`
}

// EnsureIndexes creates the unique index on email. The application-level
// duplicate check is best-effort and racy; this index is the constraint that
// actually guarantees no two records share an email. Call once at startup.
func (r *MongoUserRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.users.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return fmt.Errorf("create email index: %w", err)
	}
	return nil
}

func (r *MongoUserRepository) Save(ctx context.Context, user *domain.User) (*domain.User, error) {
	id, err := r.nextID(ctx)
	if err != nil {
		return nil, fmt.Errorf("allocate user id: %w", err)
	}

	doc := mongoUser{
		ID:       id,
		Email:    user.Email,
		Username: user.Username,
		Password: user.Password,
		Role:     user.Role,
	}

	if _, err := r.users.InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.ErrUserExists
		}
		var we mongo.WriteException
		if errors.As(err, &we) && we.HasErrorLabel("DocumentValidationFailure") {
			return nil, domain.ErrInvalidData
		}
		return nil, fmt.Errorf("insert user: %w", err)
	}

	saved := *user
	saved.ID = id
	return &saved, nil
}

func (r *MongoUserRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.findOne(ctx, bson.M{"email": email})
}

func (r *MongoUserRepository) FindByID(ctx context.Context, id int) (*domain.User, error) {
	return r.findOne(ctx, bson.M{"_id": id})
}

func (r *MongoUserRepository) findOne(ctx context.Context, filter bson.M) (*domain.User, error) {
	var mu mongoUser
	if err := r.users.FindOne(ctx, filter).Decode(&mu); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}

	return &domain.User{
		ID:       mu.ID,
		Email:    mu.Email,
		Username: mu.Username,
		Password: mu.Password,
		Role:     mu.Role,
	}, nil
}

// nextID atomically increments and returns the user id sequence.
func (r *MongoUserRepository) nextID(ctx context.Context) (int, error) {
	var counter struct {
		Seq int `bson:"seq"`
	}
	err := r.counters.FindOneAndUpdate(ctx,
		bson.M{"_id": userCounterKey},
		bson.M{"$inc": bson.M{"seq": 1}},
		options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After),
	).Decode(&counter)
	if err != nil {
		return 0, err
	}
	return counter.Seq, nil
}
