package entities

import (
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
)

// Rating represents a one-time rating of one post participant by the other
type Rating struct {
	ID          uuid.UUID   `json:"id" gorm:"type:uuid;primary_key;default:uuid_generate_v7()"`
	RaterUserID uuid.UUID   `json:"raterUserId"`
	RatedUserID uuid.UUID   `json:"ratedUserId"`
	PostID      uuid.UUID   `json:"postId"`
	Value       int         `json:"value"`
	Comment     null.String `json:"comment,omitempty"`
	CreatedAt   time.Time   `json:"createdAt"`
}

// CreateRatingInput represents input for submitting a rating
type CreateRatingInput struct {
	PostID  uuid.UUID `json:"postId" binding:"required"`
	RatedID uuid.UUID `json:"ratedUserId" binding:"required"`
	Value   int       `json:"value" binding:"required,min=1,max=5"`
	Comment string    `json:"comment"`
}
