package models

import (
	"time"

	"github.com/google/uuid"
)

type Rating struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey;default:uuid_generate_v4()"`
	RaterUserID uuid.UUID `gorm:"type:uuid;not null;index;uniqueIndex:idx_rating_once"`
	RatedUserID uuid.UUID `gorm:"type:uuid;not null;index;uniqueIndex:idx_rating_once"`
	PostID      uuid.UUID `gorm:"type:uuid;not null;index;uniqueIndex:idx_rating_once"`
	Value       int       `gorm:"not null"`
	Comment     *string   `gorm:"type:text"`
	CreatedAt   time.Time

	Rater *User `gorm:"foreignKey:RaterUserID"`
	Rated *User `gorm:"foreignKey:RatedUserID"`
	Post  *Post `gorm:"foreignKey:PostID"`
}
