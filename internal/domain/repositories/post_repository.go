package repositories

import (
	"context"
	"time"

	"github.com/google/uuid"
	"plateshare.backend/internal/domain/entities"
)

// PostRepository defines post data operations. The Transition* methods are
// conditional writes guarded on the expected current status: they report
// domain ErrNotAvailable / ErrWrongState when the guard does not match, so
// concurrent callers racing on the same post get exactly one winner.
type PostRepository interface {
	Create(ctx context.Context, post *entities.Post) error
	GetByID(ctx context.Context, id uuid.UUID) (*entities.Post, error)
	List(ctx context.Context, filter entities.PostFilter, limit, offset int) ([]*entities.Post, int64, error)
	// ClaimIfActive sets status=CLAIMED and the claimer in one conditional
	// update, succeeding only while the post is still ACTIVE.
	ClaimIfActive(ctx context.Context, id, claimerID uuid.UUID) error
	// TransitionStatus advances the post from exactly `from` to `to`.
	TransitionStatus(ctx context.Context, id uuid.UUID, from, to entities.PostStatus) error
	// DeleteIfActive hard-deletes the post only while it is ACTIVE.
	DeleteIfActive(ctx context.Context, id uuid.UUID) error
	// ListExpired returns ACTIVE posts whose expiry date has passed.
	ListExpired(ctx context.Context, before time.Time, limit int) ([]*entities.Post, error)
	// MarkExpired flips the given posts to EXPIRED (maintenance sweep only).
	MarkExpired(ctx context.Context, ids []uuid.UUID) error
}
