package user

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var (
	ErrNotFound             = errors.New("user not found")
	ErrAlreadyExist         = errors.New("user already exists")
	ErrNotificationNotFound = errors.New("notification not found")
)

type Repository interface {
	Create(ctx context.Context, u *User) error
	GetByID(ctx context.Context, id string) (*User, error)
	GetByMobile(ctx context.Context, mobile string) (*User, error)

	UpsertPushToken(ctx context.Context, userID string, t PushToken) error
	RemovePushTokens(ctx context.Context, userID string, tokens []string) error

	AppendNotification(ctx context.Context, userID string, n Notification) error
	ListNotifications(ctx context.Context, userID string) ([]Notification, error)
	MarkNotificationRead(ctx context.Context, userID, notificationID string) error
	ClearNotifications(ctx context.Context, userID string) error
}

type MongoRepo struct {
	collection *mongo.Collection
}

func NewMongoRepo(db *mongo.Database) *MongoRepo {
	return &MongoRepo{collection: db.Collection("users")}
}

func (m *MongoRepo) Create(ctx context.Context, u *User) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	now := time.Now().UTC()
	if u.CreatedAt.IsZero() {
		u.CreatedAt = now
	}
	u.UpdatedAt = now
	if u.PushTokens == nil {
		u.PushTokens = []PushToken{}
	}
	if u.Notifications == nil {
		u.Notifications = []Notification{}
	}

	if _, err := m.collection.InsertOne(ctx, u); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return ErrAlreadyExist
		}
		return fmt.Errorf("failed to insert user: %w", err)
	}
	return nil
}

func (m *MongoRepo) GetByID(ctx context.Context, id string) (*User, error) {
	return m.findOne(ctx, bson.M{"_id": id})
}

func (m *MongoRepo) GetByMobile(ctx context.Context, mobile string) (*User, error) {
	return m.findOne(ctx, bson.M{"mobile_number": mobile})
}

func (m *MongoRepo) findOne(ctx context.Context, filter bson.M) (*User, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var u User
	if err := m.collection.FindOne(ctx, filter).Decode(&u); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return &u, nil
}

// UpsertPushToken bumps last_used when the token is already registered and
// appends it otherwise.
func (m *MongoRepo) UpsertPushToken(ctx context.Context, userID string, t PushToken) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	now := time.Now().UTC()
	if t.LastUsed.IsZero() {
		t.LastUsed = now
	}

	res, err := m.collection.UpdateOne(ctx,
		bson.M{"_id": userID, "push_tokens.token": t.Token},
		bson.M{"$set": bson.M{
			"push_tokens.$[elem].last_used": t.LastUsed,
			"push_tokens.$[elem].device":    t.Device,
			"updated_at":                    now,
		}},
		options.Update().SetArrayFilters(options.ArrayFilters{
			Filters: []interface{}{bson.M{"elem.token": t.Token}},
		}),
	)
	if err != nil {
		return fmt.Errorf("failed to refresh push token: %w", err)
	}
	if res.MatchedCount > 0 {
		return nil
	}

	res, err = m.collection.UpdateOne(ctx,
		bson.M{"_id": userID, "push_tokens.token": bson.M{"$ne": t.Token}},
		bson.M{
			"$push": bson.M{"push_tokens": t},
			"$set":  bson.M{"updated_at": now},
		},
	)
	if err != nil {
		return fmt.Errorf("failed to add push token: %w", err)
	}
	if res.MatchedCount == 0 {
		// either the user is gone or a concurrent call registered the token first
		return m.ensureExists(ctx, userID)
	}
	return nil
}

func (m *MongoRepo) RemovePushTokens(ctx context.Context, userID string, tokens []string) error {
	if len(tokens) == 0 {
		return nil
	}
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	res, err := m.collection.UpdateOne(ctx,
		bson.M{"_id": userID},
		bson.M{
			"$pull": bson.M{"push_tokens": bson.M{"token": bson.M{"$in": tokens}}},
			"$set":  bson.M{"updated_at": time.Now().UTC()},
		},
	)
	if err != nil {
		return fmt.Errorf("failed to remove push tokens: %w", err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (m *MongoRepo) AppendNotification(ctx context.Context, userID string, n Notification) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	res, err := m.collection.UpdateOne(ctx,
		bson.M{"_id": userID},
		bson.M{
			"$push": bson.M{"notifications": n},
			"$set":  bson.M{"updated_at": time.Now().UTC()},
		},
	)
	if err != nil {
		return fmt.Errorf("failed to append notification: %w", err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// ListNotifications returns the inbox newest first.
func (m *MongoRepo) ListNotifications(ctx context.Context, userID string) ([]Notification, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var u User
	err := m.collection.FindOne(ctx,
		bson.M{"_id": userID},
		options.FindOne().SetProjection(bson.M{"notifications": 1}),
	).Decode(&u)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to list notifications: %w", err)
	}
	out := u.Notifications
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (m *MongoRepo) MarkNotificationRead(ctx context.Context, userID, notificationID string) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	res, err := m.collection.UpdateOne(ctx,
		bson.M{"_id": userID, "notifications.id": notificationID},
		bson.M{"$set": bson.M{"notifications.$.is_read": true}},
	)
	if err != nil {
		return fmt.Errorf("failed to mark notification read: %w", err)
	}
	if res.MatchedCount == 0 {
		if err := m.ensureExists(ctx, userID); err != nil {
			return err
		}
		return ErrNotificationNotFound
	}
	return nil
}

func (m *MongoRepo) ClearNotifications(ctx context.Context, userID string) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	res, err := m.collection.UpdateOne(ctx,
		bson.M{"_id": userID},
		bson.M{"$set": bson.M{"notifications": []Notification{}, "updated_at": time.Now().UTC()}},
	)
	if err != nil {
		return fmt.Errorf("failed to clear notifications: %w", err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (m *MongoRepo) ensureExists(ctx context.Context, userID string) error {
	n, err := m.collection.CountDocuments(ctx, bson.M{"_id": userID}, options.Count().SetLimit(1))
	if err != nil {
		return fmt.Errorf("failed to check user: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func (m *MongoRepo) CreateIndexes(ctx context.Context) error {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "mobile_number", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys: bson.D{{Key: "push_tokens.token", Value: 1}},
		},
	}

	if _, err := m.collection.Indexes().CreateMany(ctx, indexes); err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}
	return nil
}
