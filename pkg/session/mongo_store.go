package session

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

// mongoDocument is the stored shape of a session. Data is kept as encoded
// JSON so values read back the same way from every store.
type mongoDocument struct {
	Token          string    `bson:"_id"`
	Blob           []byte    `bson:"blob"`
	ExpiresAt      time.Time `bson:"expires_at"`
	LastActivityAt time.Time `bson:"last_activity_at"`
}

// MongoStore keeps one document per session. A TTL index on expires_at lets
// MongoDB remove expired sessions.
type MongoStore struct {
	coll *mongo.Collection
}

// NewMongoStore creates the store and ensures the TTL index exists.
func NewMongoStore(ctx context.Context, coll *mongo.Collection) (*MongoStore, error) {
	_, err := coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "expires_at", Value: 1}},
		Options: options.Index().SetExpireAfterSeconds(0),
	})
	if err != nil {
		return nil, err
	}
	return &MongoStore{coll: coll}, nil
}

func toDocument(s *Session) (mongoDocument, error) {
	blob, err := encode(s)
	if err != nil {
		return mongoDocument{}, err
	}
	return mongoDocument{
		Token:          s.Token,
		Blob:           blob,
		ExpiresAt:      s.ExpiresAt,
		LastActivityAt: s.LastActivityAt,
	}, nil
}

// Create stores a new session.
func (s *MongoStore) Create(ctx context.Context, session *Session) error {
	if err := validForWrite(session); err != nil {
		return err
	}
	doc, err := toDocument(session)
	if err != nil {
		return err
	}
	_, err = s.coll.InsertOne(ctx, doc)
	return err
}

// Get retrieves a session by token.
func (s *MongoStore) Get(ctx context.Context, token string) (*Session, error) {
	var doc mongoDocument
	err := s.coll.FindOne(ctx, bson.M{"_id": token}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrSessionNotFound
	}
	if err != nil {
		return nil, err
	}

	session, err := decode(doc.Blob)
	if err != nil {
		return nil, err
	}
	// TTL monitor runs about once a minute, so expired documents may linger.
	session.ExpiresAt = doc.ExpiresAt
	session.LastActivityAt = doc.LastActivityAt
	if session.IsExpired() {
		return nil, ErrSessionExpired
	}
	return session, nil
}

// Update replaces an existing session.
func (s *MongoStore) Update(ctx context.Context, session *Session) error {
	if err := validForWrite(session); err != nil {
		return err
	}
	doc, err := toDocument(session)
	if err != nil {
		return err
	}

	res, err := s.coll.ReplaceOne(ctx, bson.M{"_id": session.Token}, doc)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrSessionNotFound
	}
	return nil
}

// UpdateActivity moves the last activity time and expiry.
func (s *MongoStore) UpdateActivity(ctx context.Context, token string, lastActivity, expiresAt time.Time) error {
	res, err := s.coll.UpdateOne(ctx, bson.M{"_id": token}, bson.M{"$set": bson.M{
		"last_activity_at": lastActivity,
		"expires_at":       expiresAt,
	}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrSessionNotFound
	}
	return nil
}

// Delete removes a session by token.
func (s *MongoStore) Delete(ctx context.Context, token string) error {
	_, err := s.coll.DeleteOne(ctx, bson.M{"_id": token})
	return err
}

// DeleteExpired removes expired sessions the TTL monitor has not reached yet.
func (s *MongoStore) DeleteExpired(ctx context.Context) error {
	_, err := s.coll.DeleteMany(ctx, bson.M{"expires_at": bson.M{"$lt": time.Now()}})
	return err
}
