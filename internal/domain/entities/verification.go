package entities

import "time"

// PendingRegistration holds a not-yet-confirmed registration, keyed by
// normalized email. It lives only in the ephemeral verification store and
// is promoted into a User on successful OTP verification.
type PendingRegistration struct {
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"passwordHash"`
	AvatarURL    string    `json:"avatarUrl,omitempty"`
	OTP          string    `json:"otp"`
	ExpiresAt    time.Time `json:"expiresAt"`
}

// Expired reports whether the registration window has passed.
func (p *PendingRegistration) Expired(now time.Time) bool {
	return now.After(p.ExpiresAt)
}

// EmailVerification holds standalone verify-before-registering state,
// keyed by normalized email. No user data yet, just the code round-trip.
type EmailVerification struct {
	Email     string    `json:"email"`
	OTP       string    `json:"otp"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// Expired reports whether the verification window has passed.
func (e *EmailVerification) Expired(now time.Time) bool {
	return now.After(e.ExpiresAt)
}
