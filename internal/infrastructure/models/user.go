package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type User struct {
	ID                       uuid.UUID  `gorm:"type:uuid;primaryKey;default:uuid_generate_v4()"`
	Email                    string     `gorm:"type:varchar(255);uniqueIndex;not null"`
	Name                     string     `gorm:"type:varchar(100);not null"`
	PasswordHash             string     `gorm:"type:varchar(255);not null"`
	AvatarURL                *string    `gorm:"type:varchar(500)"`
	DonationsCount           int        `gorm:"not null;default:0"`
	ReceivedCount            int        `gorm:"not null;default:0"`
	Rating                   float64    `gorm:"type:decimal(2,1);not null;default:0"`
	IsEmailVerified          bool       `gorm:"not null;default:false"`
	VerificationToken        *string    `gorm:"type:varchar(255)"`
	VerificationTokenExpiry  *time.Time `gorm:"type:timestamp"`
	PasswordResetToken       *string    `gorm:"type:varchar(255)"`
	PasswordResetTokenExpiry *time.Time `gorm:"type:timestamp"`
	CreatedAt                time.Time
	UpdatedAt                time.Time
	DeletedAt                gorm.DeletedAt `gorm:"index"`
}
