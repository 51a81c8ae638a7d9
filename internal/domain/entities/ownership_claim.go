package entities

import (
	"time"

	"github.com/google/uuid"
)

// ClaimStatus is the derived state of an ownership claim
type ClaimStatus string

const (
	ClaimStatusPending  ClaimStatus = "pending"
	ClaimStatusApproved ClaimStatus = "approved"
)

// OwnershipClaim links a user to a startup they assert ownership of
type OwnershipClaim struct {
	ID        uuid.UUID `json:"id"`
	UserID    uuid.UUID `json:"user_id"`
	StartupID uuid.UUID `json:"startup_id"`
	Approved  bool      `json:"approved"`
	CreatedAt time.Time `json:"created_at"`
}

// Status derives the claim state from the approved flag
func (c *OwnershipClaim) Status() ClaimStatus {
	if c.Approved {
		return ClaimStatusApproved
	}
	return ClaimStatusPending
}

// ClaimView is a claim enriched with its startup for listings
type ClaimView struct {
	ID          uuid.UUID   `json:"id"`
	UserID      uuid.UUID   `json:"user_id"`
	StartupID   uuid.UUID   `json:"startup_id"`
	StartupName string      `json:"startup_name"`
	StartupSlug string      `json:"startup_slug"`
	Approved    bool        `json:"approved"`
	Status      ClaimStatus `json:"status"`
	CreatedAt   time.Time   `json:"created_at"`
}

// ClaimFilter narrows claim listings
type ClaimFilter struct {
	UserID   *uuid.UUID
	Approved *bool
}
