package repositories

import (
	"context"

	"github.com/google/uuid"
	"plateshare.backend/internal/domain/entities"
)

// UserRepository defines user data operations. GetByEmail excludes the
// password hash; GetByEmailWithSecret is the opt-in variant for auth paths.
type UserRepository interface {
	Create(ctx context.Context, user *entities.User) error
	GetByID(ctx context.Context, id uuid.UUID) (*entities.User, error)
	GetByEmail(ctx context.Context, email string) (*entities.User, error)
	GetByEmailWithSecret(ctx context.Context, email string) (*entities.User, error)
	Update(ctx context.Context, id uuid.UUID, patch *entities.UserPatch) error
	// IncrementCounters atomically adds the deltas to the reputation counters.
	IncrementCounters(ctx context.Context, id uuid.UUID, donations, received int) error
	// UpdateRating overwrites the derived mean rating.
	UpdateRating(ctx context.Context, id uuid.UUID, rating float64) error
	List(ctx context.Context, search string) ([]*entities.User, error)
}
