package jobs

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"plateshare.backend/internal/domain/entities"
	"plateshare.backend/pkg/logger"
)

func TestMain(m *testing.M) {
	logger.Init("test")
	os.Exit(m.Run())
}

type stubPostRepo struct {
	expired []*entities.Post
	listErr error
	markErr error

	listedLimit int
	markedIDs   []uuid.UUID
}

func (s *stubPostRepo) Create(ctx context.Context, post *entities.Post) error { return nil }
func (s *stubPostRepo) GetByID(ctx context.Context, id uuid.UUID) (*entities.Post, error) {
	return nil, errors.New("not implemented")
}
func (s *stubPostRepo) List(ctx context.Context, filter entities.PostFilter, limit, offset int) ([]*entities.Post, int64, error) {
	return nil, 0, nil
}
func (s *stubPostRepo) ClaimIfActive(ctx context.Context, id, claimerID uuid.UUID) error { return nil }
func (s *stubPostRepo) TransitionStatus(ctx context.Context, id uuid.UUID, from, to entities.PostStatus) error {
	return nil
}
func (s *stubPostRepo) DeleteIfActive(ctx context.Context, id uuid.UUID) error { return nil }
func (s *stubPostRepo) ListExpired(ctx context.Context, before time.Time, limit int) ([]*entities.Post, error) {
	s.listedLimit = limit
	return s.expired, s.listErr
}
func (s *stubPostRepo) MarkExpired(ctx context.Context, ids []uuid.UUID) error {
	s.markedIDs = ids
	return s.markErr
}

func TestPostExpiryJob_SweepMarksOverduePosts(t *testing.T) {
	first := uuid.New()
	second := uuid.New()
	repo := &stubPostRepo{
		expired: []*entities.Post{
			{ID: first, Status: entities.PostStatusActive},
			{ID: second, Status: entities.PostStatusActive},
		},
	}

	job := NewPostExpiryJob(repo)
	job.sweep(context.Background())

	require.Equal(t, 100, repo.listedLimit)
	require.Equal(t, []uuid.UUID{first, second}, repo.markedIDs)
}

func TestPostExpiryJob_SweepNothingToDo(t *testing.T) {
	repo := &stubPostRepo{}

	job := NewPostExpiryJob(repo)
	job.sweep(context.Background())

	require.Nil(t, repo.markedIDs)
}

func TestPostExpiryJob_SweepListErrorSkipsMark(t *testing.T) {
	repo := &stubPostRepo{listErr: errors.New("db down")}

	job := NewPostExpiryJob(repo)
	job.sweep(context.Background())

	require.Nil(t, repo.markedIDs)
}

func TestPostExpiryJob_StopUnblocksStart(t *testing.T) {
	repo := &stubPostRepo{}
	job := NewPostExpiryJob(repo)

	done := make(chan struct{})
	go func() {
		job.Start(context.Background())
		close(done)
	}()

	job.Stop()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("job did not stop")
	}
}

func TestPostExpiryJob_ContextCancelUnblocksStart(t *testing.T) {
	repo := &stubPostRepo{}
	job := NewPostExpiryJob(repo)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		job.Start(ctx)
		close(done)
	}()

	cancel()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("job did not stop")
	}
}
