package domain

import (
	"time"

	"github.com/vetdirhq/vetdir/internal/domain/geo"
	"github.com/vetdirhq/vetdir/internal/domain/membership"
)

// Status is the moderation state of a business listing.
type Status string

// Business status constants. Only Approved listings are publicly searchable.
const (
	StatusPending   Status = "pending"
	StatusApproved  Status = "approved"
	StatusRejected  Status = "rejected"
	StatusSuspended Status = "suspended"
)

// IsValid checks if the status is one of the supported values.
func (s Status) IsValid() bool {
	return s == StatusPending || s == StatusApproved || s == StatusRejected || s == StatusSuspended
}

// Business is the read-only projection of a directory listing consumed by search.
// The entity store owns the record; search only reads it.
type Business struct {
	ID          int64
	Name        string
	Description string
	AreasServed string
	Status      Status

	CategoryIDs   []int64
	CategoryNames []string

	// Location is nil when the listing has never been geocoded.
	Location *geo.Point
	City     string
	State    string
	ZipCode  string

	Featured         bool
	Verified         bool
	EmergencyService bool
	Insured          bool
	Bonded           bool
	Licensed         bool

	EmployeeCount   int
	YearsInBusiness int

	// Rating fields reflect live active-review state at snapshot time,
	// aggregated by the review repository per search call.
	AverageRating float64
	ReviewCount   int

	OwnerTier        membership.Tier
	MilitaryVerified bool

	CreatedAt time.Time
}

// Searchable reports whether the listing is visible to public search.
func (b *Business) Searchable() bool {
	return b.Status == StatusApproved
}

// MilitaryOwned reports whether the owner is a veteran or carries a
// verified military background record.
func (b *Business) MilitaryOwned() bool {
	return b.OwnerTier == membership.Veteran || b.MilitaryVerified
}

// InCategory reports whether the business is assigned to the given category.
func (b *Business) InCategory(id int64) bool {
	for _, c := range b.CategoryIDs {
		if c == id {
			return true
		}
	}
	return false
}

// Category is an active service category available for filtering.
type Category struct {
	ID     int64
	Name   string
	Active bool
}
