package repositories

import (
	"context"

	"github.com/google/uuid"
	"plateshare.backend/internal/domain/entities"
)

// RatingRepository defines rating data operations
type RatingRepository interface {
	Create(ctx context.Context, rating *entities.Rating) error
	// Exists reports whether a rating for (rater, rated, post) already exists.
	Exists(ctx context.Context, raterID, ratedID, postID uuid.UUID) (bool, error)
	ListForUser(ctx context.Context, ratedID uuid.UUID) ([]*entities.Rating, error)
	// AverageForUser returns the mean of all rating values received by the
	// user and the number of ratings; mean is 0 with no ratings.
	AverageForUser(ctx context.Context, ratedID uuid.UUID) (float64, int64, error)
}
