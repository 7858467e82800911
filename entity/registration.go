package entity

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"registration-backend/errs"
)

type Registration struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	FullName      string             `bson:"fullName" json:"fullName"`
	Email         string             `bson:"email" json:"email"`
	ContactNumber string             `bson:"contactNumber" json:"contactNumber"`
	CurrentYear   Year               `bson:"currentYear" json:"currentYear"`
	Branch        Branch             `bson:"branch" json:"branch"`
	CreatedAt     time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt     time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// RegisterRequest is the body accepted by POST /api/register.
type RegisterRequest struct {
	FullName      string `json:"fullName"`
	Email         string `json:"email"`
	ContactNumber string `json:"contactNumber"`
	CurrentYear   Year   `json:"currentYear"`
	Branch        Branch `json:"branch"`
}

// Validate reports the first absent field. Values are not checked against
// the Years and Branches sets.
func (r *RegisterRequest) Validate() error {
	switch {
	case r.FullName == "":
		return errs.ErrFullNameRequired
	case r.Email == "":
		return errs.ErrEmailRequired
	case r.ContactNumber == "":
		return errs.ErrContactNumberRequired
	case r.CurrentYear == "":
		return errs.ErrCurrentYearRequired
	case r.Branch == "":
		return errs.ErrBranchRequired
	}

	return nil
}

// NewRegistration stamps a fresh ID and both timestamps. The timestamps are
// truncated to milliseconds so the returned record matches what MongoDB stores.
func NewRegistration(req *RegisterRequest, now time.Time) *Registration {
	now = now.UTC().Truncate(time.Millisecond)

	return &Registration{
		ID:            primitive.NewObjectID(),
		FullName:      req.FullName,
		Email:         req.Email,
		ContactNumber: req.ContactNumber,
		CurrentYear:   req.CurrentYear,
		Branch:        req.Branch,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
}
