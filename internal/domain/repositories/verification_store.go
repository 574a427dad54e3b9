package repositories

import (
	"context"

	"plateshare.backend/internal/domain/entities"
)

// VerificationStore holds the ephemeral OTP state for the registration and
// standalone-verify flows, keyed by normalized email with a TTL. Saving for
// an email that already has an entry overwrites it (OTP reissue,
// last-write-wins); per-key races are tolerated.
type VerificationStore interface {
	SavePendingRegistration(ctx context.Context, reg *entities.PendingRegistration) error
	GetPendingRegistration(ctx context.Context, email string) (*entities.PendingRegistration, error)
	DeletePendingRegistration(ctx context.Context, email string) error

	SaveEmailVerification(ctx context.Context, verif *entities.EmailVerification) error
	GetEmailVerification(ctx context.Context, email string) (*entities.EmailVerification, error)
	DeleteEmailVerification(ctx context.Context, email string) error
}
