package repositories

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
	"gorm.io/gorm"
	"plateshare.backend/internal/domain/entities"
	domainerrors "plateshare.backend/internal/domain/errors"
	"plateshare.backend/internal/infrastructure/models"
)

// RatingRepository implements rating data operations
type RatingRepository struct {
	db *gorm.DB
}

// NewRatingRepository creates a new rating repository
func NewRatingRepository(db *gorm.DB) *RatingRepository {
	return &RatingRepository{db: db}
}

// Create creates a new rating. The (rater, rated, post) unique index backs
// up the usecase's pre-check; a duplicate-key failure from a race maps to
// ErrAlreadyRated.
func (r *RatingRepository) Create(ctx context.Context, rating *entities.Rating) error {
	m := &models.Rating{
		ID:          rating.ID,
		RaterUserID: rating.RaterUserID,
		RatedUserID: rating.RatedUserID,
		PostID:      rating.PostID,
		Value:       rating.Value,
		Comment:     rating.Comment.Ptr(),
		CreatedAt:   rating.CreatedAt,
	}

	if err := GetDB(ctx, r.db).WithContext(ctx).Create(m).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) || isUniqueViolation(err) {
			return domainerrors.ErrAlreadyRated
		}
		return err
	}
	rating.ID = m.ID
	return nil
}

// Exists reports whether a rating for (rater, rated, post) already exists
func (r *RatingRepository) Exists(ctx context.Context, raterID, ratedID, postID uuid.UUID) (bool, error) {
	var count int64
	err := GetDB(ctx, r.db).WithContext(ctx).Model(&models.Rating{}).
		Where("rater_user_id = ? AND rated_user_id = ? AND post_id = ?", raterID, ratedID, postID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// ListForUser lists all ratings received by a user, newest first
func (r *RatingRepository) ListForUser(ctx context.Context, ratedID uuid.UUID) ([]*entities.Rating, error) {
	var ratingModels []models.Rating
	err := GetDB(ctx, r.db).WithContext(ctx).
		Where("rated_user_id = ?", ratedID).
		Order("created_at DESC").
		Find(&ratingModels).Error
	if err != nil {
		return nil, err
	}

	ratings := make([]*entities.Rating, 0, len(ratingModels))
	for i := range ratingModels {
		ratings = append(ratings, ratingToEntity(&ratingModels[i]))
	}
	return ratings, nil
}

// AverageForUser returns the mean rating value received by the user and
// the rating count; the mean is 0 with no ratings.
func (r *RatingRepository) AverageForUser(ctx context.Context, ratedID uuid.UUID) (float64, int64, error) {
	var result struct {
		Avg float64
		Cnt int64
	}
	err := GetDB(ctx, r.db).WithContext(ctx).Model(&models.Rating{}).
		Select("COALESCE(AVG(value), 0) AS avg, COUNT(*) AS cnt").
		Where("rated_user_id = ?", ratedID).
		Scan(&result).Error
	if err != nil {
		return 0, 0, err
	}
	return result.Avg, result.Cnt, nil
}

func ratingToEntity(m *models.Rating) *entities.Rating {
	return &entities.Rating{
		ID:          m.ID,
		RaterUserID: m.RaterUserID,
		RatedUserID: m.RatedUserID,
		PostID:      m.PostID,
		Value:       m.Value,
		Comment:     null.StringFromPtr(m.Comment),
		CreatedAt:   m.CreatedAt,
	}
}

// isUniqueViolation matches unique-constraint failures from drivers that
// are not covered by gorm's error translation (sqlite in tests).
func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "UNIQUE constraint failed") ||
		strings.Contains(msg, "duplicate key value")
}
