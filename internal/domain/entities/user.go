package entities

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
)

// User represents a marketplace member
type User struct {
	ID                       uuid.UUID   `json:"id" gorm:"type:uuid;primary_key;default:uuid_generate_v7()"`
	Email                    string      `json:"email"`
	Name                     string      `json:"name"`
	PasswordHash             string      `json:"-"`
	AvatarURL                null.String `json:"avatarUrl,omitempty"`
	DonationsCount           int         `json:"donationsCount"`
	ReceivedCount            int         `json:"receivedCount"`
	Rating                   float64     `json:"rating"`
	IsEmailVerified          bool        `json:"isEmailVerified"`
	VerificationToken        null.String `json:"-"`
	VerificationTokenExpiry  null.Time   `json:"-"`
	PasswordResetToken       null.String `json:"-"`
	PasswordResetTokenExpiry null.Time   `json:"-"`
	CreatedAt                time.Time   `json:"createdAt"`
	UpdatedAt                time.Time   `json:"updatedAt"`
}

// UserPatch is a partial update of mutable user fields. Nil pointers are
// left untouched; a pointer to an invalid null value clears the column.
type UserPatch struct {
	Name                     *string
	AvatarURL                *null.String
	IsEmailVerified          *bool
	VerificationToken        *null.String
	VerificationTokenExpiry  *null.Time
	PasswordResetToken       *null.String
	PasswordResetTokenExpiry *null.Time
}

// NormalizeEmail lowercases and trims an email address. All stores and
// lookups key users and pending verification state by this form.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// RegisterInput represents input for starting a registration
type RegisterInput struct {
	Name      string `json:"name" binding:"required,min=2,max=100"`
	Email     string `json:"email" binding:"required,email"`
	Password  string `json:"password" binding:"required,min=8"`
	AvatarURL string `json:"avatarUrl"`
}

// VerifyRegistrationInput represents input for completing a registration
type VerifyRegistrationInput struct {
	Email string `json:"email" binding:"required,email"`
	OTP   string `json:"otp" binding:"required"`
}

// RequestLoginInput represents input for requesting a login code
type RequestLoginInput struct {
	Email string `json:"email" binding:"required,email"`
}

// CompleteLoginInput represents input for completing a login
type CompleteLoginInput struct {
	Email      string `json:"email" binding:"required,email"`
	OTP        string `json:"otp" binding:"required"`
	UseSession bool   `json:"useSession"` // If true, store tokens in Redis and return SessionID
}

// RegisterVerifiedInput represents input for the verify-before-registering path
type RegisterVerifiedInput struct {
	Name      string `json:"name" binding:"required,min=2,max=100"`
	Email     string `json:"email" binding:"required,email"`
	Password  string `json:"password" binding:"required,min=8"`
	AvatarURL string `json:"avatarUrl"`
	OTP       string `json:"otp" binding:"required"`
}

// AuthResponse represents authentication response
type AuthResponse struct {
	AccessToken  string `json:"accessToken,omitempty"`
	RefreshToken string `json:"refreshToken,omitempty"`
	SessionID    string `json:"sessionId,omitempty"`
	User         *User  `json:"user"`
}
