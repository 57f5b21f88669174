package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/raushankrgupta/closetly/models"
	"github.com/raushankrgupta/closetly/utils"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoStore keeps users, sessions and profiles in MongoDB collections
type MongoStore struct {
	client   *mongo.Client
	users    *mongo.Collection
	sessions *mongo.Collection
	profiles *mongo.Collection
}

// OpenMongo connects to uri and prepares the collections in dbName
func OpenMongo(ctx context.Context, uri, dbName string) (*MongoStore, error) {
	client, err := utils.ConnectMongo(ctx, uri)
	if err != nil {
		return nil, err
	}
	return NewMongo(ctx, client, dbName)
}

// NewMongo wraps a connected client and ensures unique indexes
func NewMongo(ctx context.Context, client *mongo.Client, dbName string) (*MongoStore, error) {
	db := client.Database(dbName)
	s := &MongoStore{
		client:   client,
		users:    db.Collection("users"),
		sessions: db.Collection("user_sessions"),
		profiles: db.Collection("user_profiles"),
	}

	indexes := []struct {
		coll *mongo.Collection
		key  string
	}{
		{s.users, "email"},
		{s.sessions, "token"},
	}
	for _, ix := range indexes {
		_, err := ix.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
			Keys:    bson.D{{Key: ix.key, Value: 1}},
			Options: options.Index().SetUnique(true),
		})
		if err != nil {
			return nil, fmt.Errorf("failed to create %s index: %w", ix.key, err)
		}
	}
	if _, err := s.sessions.Indexes().CreateOne(ctx, mongo.IndexModel{Keys: bson.D{{Key: "user_id", Value: 1}}}); err != nil {
		return nil, fmt.Errorf("failed to create user_id index: %w", err)
	}
	return s, nil
}

func (s *MongoStore) CreateUser(ctx context.Context, u *models.User) error {
	if u.CreatedAt.IsZero() {
		u.CreatedAt = time.Now().UTC()
	}
	if _, err := s.users.InsertOne(ctx, u); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return ErrDuplicateEmail
		}
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

func (s *MongoStore) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	return findOne[models.User](ctx, s.users, bson.M{"email": email})
}

func (s *MongoStore) GetUserByID(ctx context.Context, id string) (*models.User, error) {
	return findOne[models.User](ctx, s.users, bson.M{"_id": id})
}

func (s *MongoStore) TouchLastLogin(ctx context.Context, userID string, at time.Time) error {
	res, err := s.users.UpdateOne(ctx, bson.M{"_id": userID}, bson.M{"$set": bson.M{"last_login": at}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *MongoStore) CreateSession(ctx context.Context, sess *models.Session) error {
	if sess.CreatedAt.IsZero() {
		sess.CreatedAt = time.Now().UTC()
	}
	_, err := s.sessions.InsertOne(ctx, sess)
	return err
}

func (s *MongoStore) FindActiveSession(ctx context.Context, token string, now time.Time) (*models.Session, error) {
	return findOne[models.Session](ctx, s.sessions, bson.M{
		"token":      token,
		"expires_at": bson.M{"$gt": now},
	})
}

func (s *MongoStore) DeleteSession(ctx context.Context, token string) error {
	_, err := s.sessions.DeleteOne(ctx, bson.M{"token": token})
	return err
}

func (s *MongoStore) UpsertProfile(ctx context.Context, p *models.UserProfile) error {
	if p.UpdatedAt.IsZero() {
		p.UpdatedAt = time.Now().UTC()
	}
	_, err := s.profiles.ReplaceOne(ctx, bson.M{"_id": p.UserID}, p, options.Replace().SetUpsert(true))
	return err
}

func (s *MongoStore) GetProfile(ctx context.Context, userID string) (*models.UserProfile, error) {
	return findOne[models.UserProfile](ctx, s.profiles, bson.M{"_id": userID})
}

func (s *MongoStore) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return s.client.Disconnect(ctx)
}

func findOne[T any](ctx context.Context, coll *mongo.Collection, filter bson.M) (*T, error) {
	var out T
	if err := coll.FindOne(ctx, filter).Decode(&out); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &out, nil
}
