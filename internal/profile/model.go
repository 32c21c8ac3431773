package profile

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Membership plans. Plans are assigned by the platform, never by the
// profile owner.
const (
	PlanFree        = "free"
	PlanPremium     = "premium"
	PlanPremiumPlus = "premium-plus"
)

// Roles. The admin role exists as data only; no operation grants it
// distinct behavior.
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// Profile is the durable record representing one user's data. SubjectID
// binds the record to exactly one verified identity and never changes
// after creation.
type Profile struct {
	ID              primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	SubjectID       string             `bson:"subject_id" json:"subjectId"`
	Email           string             `bson:"email" json:"email,omitempty"`
	FullName        string             `bson:"full_name" json:"fullName"`
	DateOfBirth     time.Time          `bson:"date_of_birth" json:"dateOfBirth"`
	Gender          string             `bson:"gender" json:"gender"`
	MotherTongue    string             `bson:"mother_tongue" json:"motherTongue"`
	MobileNumber    string             `bson:"mobile_number" json:"mobileNumber"`
	Location        string             `bson:"location" json:"location"`
	Religion        string             `bson:"religion,omitempty" json:"religion,omitempty"`
	ProfilePhotoURL string             `bson:"profile_photo_url,omitempty" json:"profilePhotoUrl,omitempty"`
	Height          string             `bson:"height,omitempty" json:"height,omitempty"`
	AboutMe         string             `bson:"about_me,omitempty" json:"aboutMe,omitempty"`
	Education       string             `bson:"education,omitempty" json:"education,omitempty"`
	Occupation      string             `bson:"occupation,omitempty" json:"occupation,omitempty"`
	MembershipPlan  string             `bson:"membership_plan" json:"membershipPlan"`
	Role            string             `bson:"role" json:"role"`
	CreatedAt       time.Time          `bson:"created_at" json:"createdAt"`
	UpdatedAt       time.Time          `bson:"updated_at" json:"updatedAt"`
}

// Redacted returns a copy safe for non-owner readers: identical except
// the email is dropped.
func (p *Profile) Redacted() *Profile {
	out := *p
	out.Email = ""
	return &out
}

// CreateInput is the creation payload. Subject and email never appear
// here; they come from the verified identity only.
type CreateInput struct {
	FullName     string `json:"fullName"`
	DateOfBirth  string `json:"dob"`
	Gender       string `json:"gender"`
	MotherTongue string `json:"motherTongue"`
	MobileNumber string `json:"mobileNumber"`
	Location     string `json:"location"`
	Religion     string `json:"religion"`
}

// UpdateInput is the self-update payload. Only these five fields are
// mutable; anything else in the request body is dropped at decode time.
type UpdateInput struct {
	Height     *string `json:"height"`
	Religion   *string `json:"religion"`
	AboutMe    *string `json:"aboutMe"`
	Education  *string `json:"education"`
	Occupation *string `json:"occupation"`
}

const (
	maxFieldLen   = 100
	maxAboutMeLen = 2000
)

func (in CreateInput) validate() (time.Time, error) {
	required := map[string]string{
		"fullName":     in.FullName,
		"dob":          in.DateOfBirth,
		"gender":       in.Gender,
		"motherTongue": in.MotherTongue,
		"mobileNumber": in.MobileNumber,
		"location":     in.Location,
	}
	for name, value := range required {
		if strings.TrimSpace(value) == "" {
			return time.Time{}, fmt.Errorf("%w: %s is required", ErrValidation, name)
		}
	}

	for name, value := range map[string]string{
		"fullName":     in.FullName,
		"gender":       in.Gender,
		"motherTongue": in.MotherTongue,
		"mobileNumber": in.MobileNumber,
		"location":     in.Location,
		"religion":     in.Religion,
	} {
		if len(value) > maxFieldLen {
			return time.Time{}, fmt.Errorf("%w: %s too long", ErrValidation, name)
		}
	}

	dob, err := time.Parse(time.DateOnly, in.DateOfBirth)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: dob must be YYYY-MM-DD", ErrValidation)
	}
	if dob.After(time.Now()) {
		return time.Time{}, fmt.Errorf("%w: dob must be in the past", ErrValidation)
	}

	return dob, nil
}

// diff returns the allow-listed field changes as a partial document.
// Absent fields stay absent; the result may be empty.
func (in UpdateInput) diff() (map[string]any, error) {
	out := make(map[string]any)

	if in.Height != nil {
		if err := validateHeight(*in.Height); err != nil {
			return nil, err
		}
		out["height"] = *in.Height
	}
	if in.Religion != nil {
		if len(*in.Religion) > maxFieldLen {
			return nil, fmt.Errorf("%w: religion too long", ErrValidation)
		}
		out["religion"] = *in.Religion
	}
	if in.AboutMe != nil {
		if len(*in.AboutMe) > maxAboutMeLen {
			return nil, fmt.Errorf("%w: aboutMe too long", ErrValidation)
		}
		out["about_me"] = *in.AboutMe
	}
	if in.Education != nil {
		if len(*in.Education) > maxFieldLen {
			return nil, fmt.Errorf("%w: education too long", ErrValidation)
		}
		out["education"] = *in.Education
	}
	if in.Occupation != nil {
		if len(*in.Occupation) > maxFieldLen {
			return nil, fmt.Errorf("%w: occupation too long", ErrValidation)
		}
		out["occupation"] = *in.Occupation
	}

	return out, nil
}

// validateHeight accepts an empty string (clearing the field) or a
// positive number of centimeters.
func validateHeight(v string) error {
	if v == "" {
		return nil
	}
	n, err := strconv.ParseFloat(v, 64)
	if err != nil || n <= 0 || n > 300 {
		return fmt.Errorf("%w: height must be a positive number of centimeters", ErrValidation)
	}
	return nil
}
