package models

import (
	"time"

	"github.com/google/uuid"
)

type Post struct {
	ID          uuid.UUID  `gorm:"type:uuid;primaryKey;default:uuid_generate_v4()"`
	Type        string     `gorm:"type:varchar(20);not null;index"`
	Title       string     `gorm:"type:varchar(200);not null"`
	Description string     `gorm:"type:text;not null"`
	Quantity    string     `gorm:"type:varchar(100);not null"`
	Location    string     `gorm:"type:varchar(255);not null"`
	ExpiryDate  time.Time  `gorm:"not null;index"`
	Status      string     `gorm:"type:varchar(20);not null;index"`
	Urgency     *string    `gorm:"type:varchar(20)"` // request posts only
	OwnerID     uuid.UUID  `gorm:"type:uuid;not null;index"`
	ClaimerID   *uuid.UUID `gorm:"type:uuid;index"`
	CreatedAt   time.Time
	UpdatedAt   time.Time

	Owner   User  `gorm:"foreignKey:OwnerID"`
	Claimer *User `gorm:"foreignKey:ClaimerID"`
}
