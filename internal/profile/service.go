package profile

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/Karthikraja2345/ksmatri/internal/auth"
	"github.com/Karthikraja2345/ksmatri/internal/logger"
)

// Errors returned by the service. Handlers map these to HTTP statuses;
// anything else is a server failure.
var (
	ErrAlreadyExists = errors.New("profile already exists")
	ErrNotFound      = errors.New("profile not found")
	ErrInvalidID     = errors.New("invalid profile id")
	ErrValidation    = errors.New("invalid profile data")
)

// Service enforces the profile contract: one profile per verified
// identity, bounded field mutability, and the read scopes. It holds no
// mutable state of its own; everything durable lives in the store.
type Service struct {
	store Store
	cache *Cache // nil when caching is disabled
}

func NewService(store Store, cache *Cache) *Service {
	return &Service{store: store, cache: cache}
}

// Register creates the profile bound to the verified identity. Subject
// and email are taken from the identity only, never from the payload.
func (s *Service) Register(
	ctx context.Context,
	identity *auth.Identity,
	in CreateInput,
) (*Profile, error) {

	if identity == nil || identity.SubjectID == "" || identity.Email == "" {
		return nil, fmt.Errorf("%w: identity incomplete", ErrValidation)
	}

	dob, err := in.validate()
	if err != nil {
		return nil, err
	}

	// Pre-check for a friendlier Conflict; the unique index on
	// subject_id is the actual guard against a concurrent insert.
	if _, err := s.store.FindBySubject(ctx, identity.SubjectID); err == nil {
		return nil, ErrAlreadyExists
	} else if !errors.Is(err, ErrNoDocument) {
		return nil, err
	}

	p := &Profile{
		SubjectID:      identity.SubjectID,
		Email:          identity.Email,
		FullName:       in.FullName,
		DateOfBirth:    dob,
		Gender:         in.Gender,
		MotherTongue:   in.MotherTongue,
		MobileNumber:   in.MobileNumber,
		Location:       in.Location,
		Religion:       in.Religion,
		MembershipPlan: PlanFree,
		Role:           RoleUser,
	}

	if err := s.store.Insert(ctx, p); err != nil {
		if errors.Is(err, ErrDuplicate) {
			return nil, ErrAlreadyExists
		}
		return nil, err
	}

	logger.Info("profile created", map[string]any{
		"profile_id": p.ID.Hex(),
	})

	return p, nil
}

// Self returns the caller's own profile.
func (s *Service) Self(ctx context.Context, identity *auth.Identity) (*Profile, error) {
	p, err := s.store.FindBySubject(ctx, identity.SubjectID)
	if errors.Is(err, ErrNoDocument) {
		return nil, ErrNotFound
	}
	return p, err
}

// Roster returns every profile except the caller's own.
func (s *Service) Roster(ctx context.Context, identity *auth.Identity) ([]Profile, error) {
	return s.store.FindOthers(ctx, identity.SubjectID)
}

// ByID returns the profile with the given record id. A malformed id
// fails before the store is contacted. The email is redacted unless the
// record belongs to the caller.
func (s *Service) ByID(
	ctx context.Context,
	identity *auth.Identity,
	id string,
) (*Profile, error) {

	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrInvalidID
	}

	p, err := s.cachedFind(ctx, oid)
	if errors.Is(err, ErrNoDocument) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	if p.SubjectID != identity.SubjectID {
		return p.Redacted(), nil
	}
	return p, nil
}

// UpdateSelf applies the allow-listed field changes to the caller's own
// profile. Disallowed fields never reach this point; the payload type
// cannot carry them. An empty diff still touches the record so the
// updated-at timestamp moves.
func (s *Service) UpdateSelf(
	ctx context.Context,
	identity *auth.Identity,
	in UpdateInput,
) (*Profile, error) {

	diff, err := in.diff()
	if err != nil {
		return nil, err
	}

	p, err := s.store.UpdateBySubject(ctx, identity.SubjectID, diff)
	if errors.Is(err, ErrNoDocument) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		s.cache.Invalidate(ctx, p.ID)
	}

	return p, nil
}

func (s *Service) cachedFind(ctx context.Context, id primitive.ObjectID) (*Profile, error) {
	if s.cache == nil {
		return s.store.FindByID(ctx, id)
	}

	if p, ok := s.cache.Get(ctx, id); ok {
		return p, nil
	}

	p, err := s.store.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	s.cache.Set(ctx, p)
	return p, nil
}
