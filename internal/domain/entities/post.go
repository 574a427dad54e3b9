package entities

import (
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
)

// PostType represents the kind of post
type PostType string

const (
	PostTypeDonation PostType = "DONATION"
	PostTypeRequest  PostType = "REQUEST"
)

// PostStatus represents post lifecycle status
type PostStatus string

const (
	PostStatusActive    PostStatus = "ACTIVE"
	PostStatusClaimed   PostStatus = "CLAIMED"
	PostStatusPickedUp  PostStatus = "PICKED_UP"
	PostStatusCompleted PostStatus = "COMPLETED"
	// Terminal statuses reached outside the workflow: EXPIRED is set by the
	// maintenance sweep, DELETED is reserved for administrative actions.
	PostStatusExpired PostStatus = "EXPIRED"
	PostStatusDeleted PostStatus = "DELETED"
)

// Post represents a donation or request post
type Post struct {
	ID          uuid.UUID   `json:"id" gorm:"type:uuid;primary_key;default:uuid_generate_v7()"`
	Type        PostType    `json:"type"`
	Title       string      `json:"title"`
	Description string      `json:"description"`
	Quantity    string      `json:"quantity"`
	Location    string      `json:"location"`
	ExpiryDate  time.Time   `json:"expiryDate"`
	Status      PostStatus  `json:"status"`
	Urgency     null.String `json:"urgency,omitempty"`
	OwnerID     uuid.UUID   `json:"ownerId"`
	ClaimerID   *uuid.UUID  `json:"claimerId,omitempty"`
	CreatedAt   time.Time   `json:"createdAt"`
	UpdatedAt   time.Time   `json:"updatedAt"`

	// Joins
	Owner   *User `json:"owner,omitempty" gorm:"foreignKey:OwnerID"`
	Claimer *User `json:"claimer,omitempty" gorm:"foreignKey:ClaimerID"`
}

// HasClaimer reports whether the claimer slot is occupied.
func (p *Post) HasClaimer() bool {
	return p.ClaimerID != nil && *p.ClaimerID != uuid.Nil
}

// IsParticipant reports whether userID is the post's owner or claimer.
func (p *Post) IsParticipant(userID uuid.UUID) bool {
	if p.OwnerID == userID {
		return true
	}
	return p.HasClaimer() && *p.ClaimerID == userID
}

// DonorID returns the user occupying the donor slot: the owner of a
// donation, or the fulfiller (claimer) of a request. Returns uuid.Nil
// when the slot is not yet occupied.
func (p *Post) DonorID() uuid.UUID {
	if p.Type == PostTypeRequest {
		if !p.HasClaimer() {
			return uuid.Nil
		}
		return *p.ClaimerID
	}
	return p.OwnerID
}

// RecipientID returns the user occupying the recipient slot, the
// counterpart of DonorID.
func (p *Post) RecipientID() uuid.UUID {
	if p.Type == PostTypeRequest {
		return p.OwnerID
	}
	if !p.HasClaimer() {
		return uuid.Nil
	}
	return *p.ClaimerID
}

// OtherParticipant returns whichever of owner/claimer is not userID.
// Returns uuid.Nil when userID is not a participant or no claimer exists.
func (p *Post) OtherParticipant(userID uuid.UUID) uuid.UUID {
	if !p.HasClaimer() {
		return uuid.Nil
	}
	switch userID {
	case p.OwnerID:
		return *p.ClaimerID
	case *p.ClaimerID:
		return p.OwnerID
	}
	return uuid.Nil
}

// CreatePostInput represents input for creating a post
type CreatePostInput struct {
	Type        PostType  `json:"type" binding:"required,oneof=DONATION REQUEST"`
	Title       string    `json:"title" binding:"required,min=3,max=200"`
	Description string    `json:"description" binding:"required"`
	Quantity    string    `json:"quantity" binding:"required"`
	Location    string    `json:"location" binding:"required"`
	ExpiryDate  time.Time `json:"expiryDate" binding:"required"`
	Urgency     string    `json:"urgency"`
}

// PostFilter narrows post listings
type PostFilter struct {
	Type    PostType   `form:"type"`
	Status  PostStatus `form:"status"`
	OwnerID uuid.UUID  `form:"-"`
}
