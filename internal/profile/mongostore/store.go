package mongostore

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/Karthikraja2345/ksmatri/internal/profile"
)

// Store persists profiles in a mongo collection. Uniqueness of subject
// id and email is enforced by unique indexes, created at startup.
type Store struct {
	coll *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{coll: db.Collection("profiles")}
}

// EnsureIndexes creates the unique indexes the contract relies on. Safe
// to call on every startup.
func (s *Store) EnsureIndexes(ctx context.Context) error {
	_, err := s.coll.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "subject_id", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
	})
	if err != nil {
		return fmt.Errorf("mongostore: ensure indexes: %w", err)
	}
	return nil
}

func (s *Store) FindBySubject(ctx context.Context, subjectID string) (*profile.Profile, error) {
	var p profile.Profile
	err := s.coll.FindOne(ctx, bson.M{"subject_id": subjectID}).Decode(&p)
	if err == mongo.ErrNoDocuments {
		return nil, profile.ErrNoDocument
	}
	if err != nil {
		return nil, fmt.Errorf("mongostore: find by subject: %w", err)
	}
	return &p, nil
}

func (s *Store) FindOthers(ctx context.Context, subjectID string) ([]profile.Profile, error) {
	cursor, err := s.coll.Find(ctx, bson.M{
		"subject_id": bson.M{"$ne": subjectID},
	})
	if err != nil {
		return nil, fmt.Errorf("mongostore: find others: %w", err)
	}

	profiles := []profile.Profile{}
	if err := cursor.All(ctx, &profiles); err != nil {
		return nil, fmt.Errorf("mongostore: decode others: %w", err)
	}
	return profiles, nil
}

func (s *Store) FindByID(ctx context.Context, id primitive.ObjectID) (*profile.Profile, error) {
	var p profile.Profile
	err := s.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&p)
	if err == mongo.ErrNoDocuments {
		return nil, profile.ErrNoDocument
	}
	if err != nil {
		return nil, fmt.Errorf("mongostore: find by id: %w", err)
	}
	return &p, nil
}

func (s *Store) Insert(ctx context.Context, p *profile.Profile) error {
	now := time.Now().UTC()
	p.CreatedAt = now
	p.UpdatedAt = now

	res, err := s.coll.InsertOne(ctx, p)
	if mongo.IsDuplicateKeyError(err) {
		return profile.ErrDuplicate
	}
	if err != nil {
		return fmt.Errorf("mongostore: insert: %w", err)
	}

	p.ID = res.InsertedID.(primitive.ObjectID)
	return nil
}

func (s *Store) UpdateBySubject(
	ctx context.Context,
	subjectID string,
	diff map[string]any,
) (*profile.Profile, error) {

	set := bson.M{"updated_at": time.Now().UTC()}
	for field, value := range diff {
		set[field] = value
	}

	var p profile.Profile
	err := s.coll.FindOneAndUpdate(
		ctx,
		bson.M{"subject_id": subjectID},
		bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&p)

	if err == mongo.ErrNoDocuments {
		return nil, profile.ErrNoDocument
	}
	if err != nil {
		return nil, fmt.Errorf("mongostore: update by subject: %w", err)
	}
	return &p, nil
}
