package repositories

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"github.com/volatiletech/null/v8"
	"plateshare.backend/internal/domain/entities"
	domainerrors "plateshare.backend/internal/domain/errors"
)

func newActivePost(ownerID uuid.UUID) *entities.Post {
	return &entities.Post{
		ID:          uuid.New(),
		Type:        entities.PostTypeDonation,
		Title:       "Surplus bread",
		Description: "Two loaves from today",
		Quantity:    "2",
		Location:    "Market square",
		ExpiryDate:  time.Now().Add(24 * time.Hour),
		Status:      entities.PostStatusActive,
		OwnerID:     ownerID,
		CreatedAt:   time.Now(),
		UpdatedAt:   time.Now(),
	}
}

func TestPostRepository_CreateAndGet(t *testing.T) {
	db := newTestDB(t)
	createPostTable(t, db)
	repo := NewPostRepository(db)
	ctx := context.Background()

	ownerID := uuid.New()
	p := newActivePost(ownerID)
	p.Type = entities.PostTypeRequest
	p.Urgency = null.StringFrom("HIGH")
	require.NoError(t, repo.Create(ctx, p))

	got, err := repo.GetByID(ctx, p.ID)
	require.NoError(t, err)
	require.Equal(t, p.ID, got.ID)
	require.Equal(t, entities.PostTypeRequest, got.Type)
	require.Equal(t, entities.PostStatusActive, got.Status)
	require.Equal(t, "HIGH", got.Urgency.String)
	require.Equal(t, ownerID, got.OwnerID)
	require.Nil(t, got.ClaimerID)
}

func TestPostRepository_GetByID_NotFound(t *testing.T) {
	db := newTestDB(t)
	createPostTable(t, db)
	repo := NewPostRepository(db)

	_, err := repo.GetByID(context.Background(), uuid.New())
	require.ErrorIs(t, err, domainerrors.ErrNotFound)
}

func TestPostRepository_ClaimIfActive_SingleWinner(t *testing.T) {
	db := newTestDB(t)
	createPostTable(t, db)
	repo := NewPostRepository(db)
	ctx := context.Background()

	p := newActivePost(uuid.New())
	require.NoError(t, repo.Create(ctx, p))

	first := uuid.New()
	second := uuid.New()

	require.NoError(t, repo.ClaimIfActive(ctx, p.ID, first))

	// The second claim hits the status guard and loses.
	err := repo.ClaimIfActive(ctx, p.ID, second)
	require.ErrorIs(t, err, domainerrors.ErrNotAvailable)

	got, err := repo.GetByID(ctx, p.ID)
	require.NoError(t, err)
	require.Equal(t, entities.PostStatusClaimed, got.Status)
	require.NotNil(t, got.ClaimerID)
	require.Equal(t, first, *got.ClaimerID)
}

func TestPostRepository_ClaimIfActive_MissingPost(t *testing.T) {
	db := newTestDB(t)
	createPostTable(t, db)
	repo := NewPostRepository(db)

	err := repo.ClaimIfActive(context.Background(), uuid.New(), uuid.New())
	require.ErrorIs(t, err, domainerrors.ErrNotFound)
}

func TestPostRepository_TransitionStatus(t *testing.T) {
	db := newTestDB(t)
	createPostTable(t, db)
	repo := NewPostRepository(db)
	ctx := context.Background()

	p := newActivePost(uuid.New())
	require.NoError(t, repo.Create(ctx, p))
	require.NoError(t, repo.ClaimIfActive(ctx, p.ID, uuid.New()))

	require.NoError(t, repo.TransitionStatus(ctx, p.ID, entities.PostStatusClaimed, entities.PostStatusPickedUp))
	require.NoError(t, repo.TransitionStatus(ctx, p.ID, entities.PostStatusPickedUp, entities.PostStatusCompleted))

	// Replaying an already-taken transition fails the guard.
	err := repo.TransitionStatus(ctx, p.ID, entities.PostStatusPickedUp, entities.PostStatusCompleted)
	require.ErrorIs(t, err, domainerrors.ErrWrongState)

	got, err := repo.GetByID(ctx, p.ID)
	require.NoError(t, err)
	require.Equal(t, entities.PostStatusCompleted, got.Status)
}

func TestPostRepository_TransitionStatus_MissingPost(t *testing.T) {
	db := newTestDB(t)
	createPostTable(t, db)
	repo := NewPostRepository(db)

	err := repo.TransitionStatus(context.Background(), uuid.New(), entities.PostStatusClaimed, entities.PostStatusPickedUp)
	require.ErrorIs(t, err, domainerrors.ErrNotFound)
}

func TestPostRepository_DeleteIfActive(t *testing.T) {
	db := newTestDB(t)
	createPostTable(t, db)
	repo := NewPostRepository(db)
	ctx := context.Background()

	p := newActivePost(uuid.New())
	require.NoError(t, repo.Create(ctx, p))
	require.NoError(t, repo.DeleteIfActive(ctx, p.ID))

	_, err := repo.GetByID(ctx, p.ID)
	require.ErrorIs(t, err, domainerrors.ErrNotFound)
}

func TestPostRepository_DeleteIfActive_Claimed(t *testing.T) {
	db := newTestDB(t)
	createPostTable(t, db)
	repo := NewPostRepository(db)
	ctx := context.Background()

	p := newActivePost(uuid.New())
	require.NoError(t, repo.Create(ctx, p))
	require.NoError(t, repo.ClaimIfActive(ctx, p.ID, uuid.New()))

	err := repo.DeleteIfActive(ctx, p.ID)
	require.ErrorIs(t, err, domainerrors.ErrNotDeletable)

	// The claimed post survives.
	_, err = repo.GetByID(ctx, p.ID)
	require.NoError(t, err)
}

func TestPostRepository_List_Filters(t *testing.T) {
	db := newTestDB(t)
	createPostTable(t, db)
	repo := NewPostRepository(db)
	ctx := context.Background()

	ownerID := uuid.New()
	donation := newActivePost(ownerID)
	require.NoError(t, repo.Create(ctx, donation))

	request := newActivePost(uuid.New())
	request.Type = entities.PostTypeRequest
	require.NoError(t, repo.Create(ctx, request))

	claimed := newActivePost(ownerID)
	require.NoError(t, repo.Create(ctx, claimed))
	require.NoError(t, repo.ClaimIfActive(ctx, claimed.ID, uuid.New()))

	all, total, err := repo.List(ctx, entities.PostFilter{}, 0, 0)
	require.NoError(t, err)
	require.Equal(t, int64(3), total)
	require.Len(t, all, 3)

	donations, total, err := repo.List(ctx, entities.PostFilter{Type: entities.PostTypeDonation}, 0, 0)
	require.NoError(t, err)
	require.Equal(t, int64(2), total)
	require.Len(t, donations, 2)

	active, total, err := repo.List(ctx, entities.PostFilter{Status: entities.PostStatusActive}, 0, 0)
	require.NoError(t, err)
	require.Equal(t, int64(2), total)
	require.Len(t, active, 2)

	mine, total, err := repo.List(ctx, entities.PostFilter{OwnerID: ownerID}, 0, 0)
	require.NoError(t, err)
	require.Equal(t, int64(2), total)
	require.Len(t, mine, 2)
}

func TestPostRepository_List_Pagination(t *testing.T) {
	db := newTestDB(t)
	createPostTable(t, db)
	repo := NewPostRepository(db)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		require.NoError(t, repo.Create(ctx, newActivePost(uuid.New())))
	}

	page, total, err := repo.List(ctx, entities.PostFilter{}, 2, 2)
	require.NoError(t, err)
	require.Equal(t, int64(5), total)
	require.Len(t, page, 2)

	last, _, err := repo.List(ctx, entities.PostFilter{}, 2, 4)
	require.NoError(t, err)
	require.Len(t, last, 1)
}

func TestPostRepository_ExpirySweep(t *testing.T) {
	db := newTestDB(t)
	createPostTable(t, db)
	repo := NewPostRepository(db)
	ctx := context.Background()

	stale := newActivePost(uuid.New())
	stale.ExpiryDate = time.Now().Add(-time.Hour)
	require.NoError(t, repo.Create(ctx, stale))

	fresh := newActivePost(uuid.New())
	require.NoError(t, repo.Create(ctx, fresh))

	// A stale but already-claimed post is not the sweep's business.
	staleClaimed := newActivePost(uuid.New())
	staleClaimed.ExpiryDate = time.Now().Add(-time.Hour)
	require.NoError(t, repo.Create(ctx, staleClaimed))
	require.NoError(t, repo.ClaimIfActive(ctx, staleClaimed.ID, uuid.New()))

	expired, err := repo.ListExpired(ctx, time.Now(), 100)
	require.NoError(t, err)
	require.Len(t, expired, 1)
	require.Equal(t, stale.ID, expired[0].ID)

	require.NoError(t, repo.MarkExpired(ctx, []uuid.UUID{stale.ID}))

	got, err := repo.GetByID(ctx, stale.ID)
	require.NoError(t, err)
	require.Equal(t, entities.PostStatusExpired, got.Status)

	untouched, err := repo.GetByID(ctx, fresh.ID)
	require.NoError(t, err)
	require.Equal(t, entities.PostStatusActive, untouched.Status)
}

func TestPostRepository_MarkExpired_SkipsClaimed(t *testing.T) {
	db := newTestDB(t)
	createPostTable(t, db)
	repo := NewPostRepository(db)
	ctx := context.Background()

	p := newActivePost(uuid.New())
	p.ExpiryDate = time.Now().Add(-time.Hour)
	require.NoError(t, repo.Create(ctx, p))

	// Claimed between the sweep's read and write.
	require.NoError(t, repo.ClaimIfActive(ctx, p.ID, uuid.New()))
	require.NoError(t, repo.MarkExpired(ctx, []uuid.UUID{p.ID}))

	got, err := repo.GetByID(ctx, p.ID)
	require.NoError(t, err)
	require.Equal(t, entities.PostStatusClaimed, got.Status)
}

func TestPostRepository_MarkExpired_Empty(t *testing.T) {
	db := newTestDB(t)
	createPostTable(t, db)
	repo := NewPostRepository(db)

	require.NoError(t, repo.MarkExpired(context.Background(), nil))
}
