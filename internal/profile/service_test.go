package profile

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/Karthikraja2345/ksmatri/internal/auth"
)

// fakeStore mimics the mongo store in memory, including the uniqueness
// behavior of its indexes and the timestamp bookkeeping.
type fakeStore struct {
	bySubject   map[string]*Profile
	findByIDHit int
}

func newFakeStore() *fakeStore {
	return &fakeStore{bySubject: map[string]*Profile{}}
}

func (f *fakeStore) FindBySubject(_ context.Context, subjectID string) (*Profile, error) {
	p, ok := f.bySubject[subjectID]
	if !ok {
		return nil, ErrNoDocument
	}
	out := *p
	return &out, nil
}

func (f *fakeStore) FindOthers(_ context.Context, subjectID string) ([]Profile, error) {
	out := []Profile{}
	for _, p := range f.bySubject {
		if p.SubjectID != subjectID {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (f *fakeStore) FindByID(_ context.Context, id primitive.ObjectID) (*Profile, error) {
	f.findByIDHit++
	for _, p := range f.bySubject {
		if p.ID == id {
			out := *p
			return &out, nil
		}
	}
	return nil, ErrNoDocument
}

func (f *fakeStore) Insert(_ context.Context, p *Profile) error {
	for _, existing := range f.bySubject {
		if existing.SubjectID == p.SubjectID || existing.Email == p.Email {
			return ErrDuplicate
		}
	}
	now := time.Now().UTC()
	p.ID = primitive.NewObjectID()
	p.CreatedAt = now
	p.UpdatedAt = now
	stored := *p
	f.bySubject[p.SubjectID] = &stored
	return nil
}

func (f *fakeStore) UpdateBySubject(_ context.Context, subjectID string, diff map[string]any) (*Profile, error) {
	p, ok := f.bySubject[subjectID]
	if !ok {
		return nil, ErrNoDocument
	}
	for field, value := range diff {
		s := value.(string)
		switch field {
		case "height":
			p.Height = s
		case "religion":
			p.Religion = s
		case "about_me":
			p.AboutMe = s
		case "education":
			p.Education = s
		case "occupation":
			p.Occupation = s
		}
	}
	p.UpdatedAt = time.Now().UTC()
	out := *p
	return &out, nil
}

// racingStore simulates losing the check-then-insert race: the pre-check
// sees nothing but the insert hits the unique index.
type racingStore struct {
	*fakeStore
}

func (r *racingStore) FindBySubject(context.Context, string) (*Profile, error) {
	return nil, ErrNoDocument
}

func testIdentity(subject, email string) *auth.Identity {
	return &auth.Identity{
		Verifier:  "hmac",
		SubjectID: subject,
		Email:     email,
	}
}

func validInput() CreateInput {
	return CreateInput{
		FullName:     "Asha",
		DateOfBirth:  "1990-01-01",
		Gender:       "F",
		MotherTongue: "Hindi",
		MobileNumber: "999",
		Location:     "Pune",
	}
}

func TestRegister_SetsDefaults(t *testing.T) {
	ctx := context.Background()
	svc := NewService(newFakeStore(), nil)

	p, err := svc.Register(ctx, testIdentity("u1", "a@x.com"), validInput())
	require.NoError(t, err)

	require.Equal(t, "u1", p.SubjectID)
	require.Equal(t, "a@x.com", p.Email)
	require.Equal(t, PlanFree, p.MembershipPlan)
	require.Equal(t, RoleUser, p.Role)
	require.Empty(t, p.Religion)
	require.Empty(t, p.Height)
	require.Empty(t, p.ProfilePhotoURL)
	require.False(t, p.ID.IsZero())
	require.False(t, p.CreatedAt.IsZero())
}

func TestRegister_SecondAttemptConflicts(t *testing.T) {
	ctx := context.Background()
	store := newFakeStore()
	svc := NewService(store, nil)

	_, err := svc.Register(ctx, testIdentity("u1", "a@x.com"), validInput())
	require.NoError(t, err)

	_, err = svc.Register(ctx, testIdentity("u1", "other@x.com"), validInput())
	require.ErrorIs(t, err, ErrAlreadyExists)
	require.Len(t, store.bySubject, 1)
}

func TestRegister_LostRaceStillConflicts(t *testing.T) {
	ctx := context.Background()
	store := newFakeStore()
	svc := NewService(&racingStore{store}, nil)

	_, err := svc.Register(ctx, testIdentity("u1", "a@x.com"), validInput())
	require.NoError(t, err)

	// The pre-check reports no profile, but the unique index rejects
	// the insert. The caller must still see a conflict.
	_, err = svc.Register(ctx, testIdentity("u1", "a@x.com"), validInput())
	require.ErrorIs(t, err, ErrAlreadyExists)
	require.Len(t, store.bySubject, 1)
}

func TestRegister_MissingRequiredField(t *testing.T) {
	ctx := context.Background()
	store := newFakeStore()
	svc := NewService(store, nil)

	in := validInput()
	in.Location = ""

	_, err := svc.Register(ctx, testIdentity("u1", "a@x.com"), in)
	require.ErrorIs(t, err, ErrValidation)
	require.Empty(t, store.bySubject)
}

func TestRegister_MalformedDateOfBirth(t *testing.T) {
	ctx := context.Background()
	svc := NewService(newFakeStore(), nil)

	in := validInput()
	in.DateOfBirth = "01/01/1990"

	_, err := svc.Register(ctx, testIdentity("u1", "a@x.com"), in)
	require.ErrorIs(t, err, ErrValidation)
}

func TestSelf_NotFoundBeforeCreate(t *testing.T) {
	ctx := context.Background()
	svc := NewService(newFakeStore(), nil)

	_, err := svc.Self(ctx, testIdentity("u1", "a@x.com"))
	require.ErrorIs(t, err, ErrNotFound)
}

func TestSelf_ReturnsOwnProfileAfterCreate(t *testing.T) {
	ctx := context.Background()
	svc := NewService(newFakeStore(), nil)

	ident := testIdentity("u1", "a@x.com")
	_, err := svc.Register(ctx, ident, validInput())
	require.NoError(t, err)

	p, err := svc.Self(ctx, ident)
	require.NoError(t, err)
	require.Equal(t, "u1", p.SubjectID)
	require.Equal(t, "a@x.com", p.Email)
}

func TestRoster_ExcludesCaller(t *testing.T) {
	ctx := context.Background()
	svc := NewService(newFakeStore(), nil)

	me := testIdentity("u1", "a@x.com")
	_, err := svc.Register(ctx, me, validInput())
	require.NoError(t, err)

	other := validInput()
	other.FullName = "Ravi"
	_, err = svc.Register(ctx, testIdentity("u2", "b@x.com"), other)
	require.NoError(t, err)

	roster, err := svc.Roster(ctx, me)
	require.NoError(t, err)
	require.Len(t, roster, 1)
	for _, p := range roster {
		require.NotEqual(t, "u1", p.SubjectID)
	}
}

func TestRoster_EmptyWhenAlone(t *testing.T) {
	ctx := context.Background()
	svc := NewService(newFakeStore(), nil)

	me := testIdentity("u1", "a@x.com")
	_, err := svc.Register(ctx, me, validInput())
	require.NoError(t, err)

	roster, err := svc.Roster(ctx, me)
	require.NoError(t, err)
	require.Empty(t, roster)
}

func TestByID_MalformedIDSkipsStore(t *testing.T) {
	ctx := context.Background()
	store := newFakeStore()
	svc := NewService(store, nil)

	_, err := svc.ByID(ctx, testIdentity("u1", "a@x.com"), "not-an-object-id")
	require.ErrorIs(t, err, ErrInvalidID)
	require.Zero(t, store.findByIDHit)
}

func TestByID_UnknownIDNotFound(t *testing.T) {
	ctx := context.Background()
	svc := NewService(newFakeStore(), nil)

	_, err := svc.ByID(ctx, testIdentity("u1", "a@x.com"), primitive.NewObjectID().Hex())
	require.ErrorIs(t, err, ErrNotFound)
}

func TestByID_RedactsEmailForOthers(t *testing.T) {
	ctx := context.Background()
	svc := NewService(newFakeStore(), nil)

	owner := testIdentity("u1", "a@x.com")
	created, err := svc.Register(ctx, owner, validInput())
	require.NoError(t, err)

	// Owner sees their own email.
	p, err := svc.ByID(ctx, owner, created.ID.Hex())
	require.NoError(t, err)
	require.Equal(t, "a@x.com", p.Email)

	// Anyone else does not.
	p, err = svc.ByID(ctx, testIdentity("u2", "b@x.com"), created.ID.Hex())
	require.NoError(t, err)
	require.Empty(t, p.Email)
	require.Equal(t, "Asha", p.FullName)
}

func TestUpdateSelf_AppliesAllowListedFields(t *testing.T) {
	ctx := context.Background()
	svc := NewService(newFakeStore(), nil)

	ident := testIdentity("u1", "a@x.com")
	_, err := svc.Register(ctx, ident, validInput())
	require.NoError(t, err)

	height := "165"
	about := "hello"
	p, err := svc.UpdateSelf(ctx, ident, UpdateInput{
		Height:  &height,
		AboutMe: &about,
	})
	require.NoError(t, err)
	require.Equal(t, "165", p.Height)
	require.Equal(t, "hello", p.AboutMe)
	require.Equal(t, "Asha", p.FullName)
}

func TestUpdateSelf_EmptyDiffStillSucceeds(t *testing.T) {
	ctx := context.Background()
	svc := NewService(newFakeStore(), nil)

	ident := testIdentity("u1", "a@x.com")
	created, err := svc.Register(ctx, ident, validInput())
	require.NoError(t, err)

	p, err := svc.UpdateSelf(ctx, ident, UpdateInput{})
	require.NoError(t, err)
	require.Equal(t, created.FullName, p.FullName)
	require.Equal(t, created.CreatedAt, p.CreatedAt)
	require.False(t, p.UpdatedAt.Before(created.UpdatedAt))
}

func TestUpdateSelf_InvalidHeightLeavesProfileUnchanged(t *testing.T) {
	ctx := context.Background()
	store := newFakeStore()
	svc := NewService(store, nil)

	ident := testIdentity("u1", "a@x.com")
	_, err := svc.Register(ctx, ident, validInput())
	require.NoError(t, err)

	bad := "tall"
	_, err = svc.UpdateSelf(ctx, ident, UpdateInput{Height: &bad})
	require.ErrorIs(t, err, ErrValidation)

	p, err := svc.Self(ctx, ident)
	require.NoError(t, err)
	require.Empty(t, p.Height)
}

func TestUpdateSelf_NoBoundProfile(t *testing.T) {
	ctx := context.Background()
	svc := NewService(newFakeStore(), nil)

	height := "165"
	_, err := svc.UpdateSelf(ctx, testIdentity("ghost", "g@x.com"), UpdateInput{Height: &height})
	require.ErrorIs(t, err, ErrNotFound)
}
