package jobs

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"plateshare.backend/internal/domain/repositories"
	"plateshare.backend/pkg/logger"
)

// PostExpiryJob marks overdue ACTIVE posts as EXPIRED. This sweep is the
// only writer of the EXPIRED status; the workflow engine never sets it.
type PostExpiryJob struct {
	repo      repositories.PostRepository
	interval  time.Duration
	batchSize int
	stop      chan struct{}
}

func NewPostExpiryJob(repo repositories.PostRepository) *PostExpiryJob {
	return &PostExpiryJob{
		repo:      repo,
		interval:  time.Minute,
		batchSize: 100,
		stop:      make(chan struct{}),
	}
}

func (j *PostExpiryJob) Start(ctx context.Context) {
	logger.Info(ctx, "starting post expiry job", zap.Duration("interval", j.interval))

	ticker := time.NewTicker(j.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.Info(ctx, "post expiry job stopped (context cancelled)")
			return
		case <-j.stop:
			logger.Info(ctx, "post expiry job stopped")
			return
		case <-ticker.C:
			j.sweep(ctx)
		}
	}
}

func (j *PostExpiryJob) Stop() {
	close(j.stop)
}

func (j *PostExpiryJob) sweep(ctx context.Context) {
	expired, err := j.repo.ListExpired(ctx, time.Now(), j.batchSize)
	if err != nil {
		logger.Error(ctx, "failed to fetch expired posts", zap.Error(err))
		return
	}
	if len(expired) == 0 {
		return
	}

	ids := make([]uuid.UUID, 0, len(expired))
	for _, post := range expired {
		ids = append(ids, post.ID)
	}

	if err := j.repo.MarkExpired(ctx, ids); err != nil {
		logger.Error(ctx, "failed to expire posts", zap.Error(err))
		return
	}

	logger.Info(ctx, "expired posts", zap.Int("count", len(ids)))
}
