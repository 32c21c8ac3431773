package profile

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Errors returned by Store implementations.
var (
	// ErrNoDocument indicates the queried profile does not exist.
	ErrNoDocument = errors.New("profile: no such document")

	// ErrDuplicate indicates an insert violated a uniqueness constraint
	// (subject id or email). The unique index is the correctness guard
	// against concurrent creation for the same subject; callers must
	// treat this error as authoritative even after a passing pre-check.
	ErrDuplicate = errors.New("profile: duplicate key")
)

// Store defines how profiles are persisted and retrieved. Implementations
// must enforce uniqueness of subject id and email at the storage layer
// and maintain the created/updated timestamps.
type Store interface {
	// FindBySubject returns the profile bound to the given subject id,
	// or ErrNoDocument.
	FindBySubject(ctx context.Context, subjectID string) (*Profile, error)

	// FindOthers returns all profiles whose subject id differs from the
	// given one. Order is unspecified; an empty slice is not an error.
	FindOthers(ctx context.Context, subjectID string) ([]Profile, error)

	// FindByID returns the profile with the given record id, or
	// ErrNoDocument.
	FindByID(ctx context.Context, id primitive.ObjectID) (*Profile, error)

	// Insert persists a new profile and fills in its record id and
	// timestamps. Returns ErrDuplicate on a uniqueness violation.
	Insert(ctx context.Context, p *Profile) error

	// UpdateBySubject applies the partial document diff to the profile
	// bound to subjectID in a single atomic update, refreshes the
	// updated-at timestamp, and returns the updated record. Returns
	// ErrNoDocument if no profile is bound to the subject.
	UpdateBySubject(ctx context.Context, subjectID string, diff map[string]any) (*Profile, error)
}
