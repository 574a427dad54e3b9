package repositories

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
	"gorm.io/gorm"
	"plateshare.backend/internal/domain/entities"
	domainerrors "plateshare.backend/internal/domain/errors"
	"plateshare.backend/internal/infrastructure/models"
)

// PostRepository implements post data operations
type PostRepository struct {
	db *gorm.DB
}

// NewPostRepository creates a new post repository
func NewPostRepository(db *gorm.DB) *PostRepository {
	return &PostRepository{db: db}
}

// Create creates a new post
func (r *PostRepository) Create(ctx context.Context, post *entities.Post) error {
	m := &models.Post{
		ID:          post.ID,
		Type:        string(post.Type),
		Title:       post.Title,
		Description: post.Description,
		Quantity:    post.Quantity,
		Location:    post.Location,
		ExpiryDate:  post.ExpiryDate,
		Status:      string(post.Status),
		Urgency:     post.Urgency.Ptr(),
		OwnerID:     post.OwnerID,
		ClaimerID:   post.ClaimerID,
		CreatedAt:   post.CreatedAt,
		UpdatedAt:   post.UpdatedAt,
	}

	if err := GetDB(ctx, r.db).WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	post.ID = m.ID
	return nil
}

// GetByID gets a post by ID
func (r *PostRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.Post, error) {
	var m models.Post
	if err := GetDB(ctx, r.db).WithContext(ctx).Where("id = ?", id).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return postToEntity(&m), nil
}

// List lists posts matching the filter, newest first
func (r *PostRepository) List(ctx context.Context, filter entities.PostFilter, limit, offset int) ([]*entities.Post, int64, error) {
	query := GetDB(ctx, r.db).WithContext(ctx).Model(&models.Post{})

	if filter.Type != "" {
		query = query.Where("type = ?", string(filter.Type))
	}
	if filter.Status != "" {
		query = query.Where("status = ?", string(filter.Status))
	}
	if filter.OwnerID != uuid.Nil {
		query = query.Where("owner_id = ?", filter.OwnerID)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = query.Order("created_at DESC")
	if limit > 0 {
		query = query.Limit(limit).Offset(offset)
	}

	var postModels []models.Post
	if err := query.Find(&postModels).Error; err != nil {
		return nil, 0, err
	}

	posts := make([]*entities.Post, 0, len(postModels))
	for i := range postModels {
		posts = append(posts, postToEntity(&postModels[i]))
	}
	return posts, total, nil
}

// ClaimIfActive sets status=CLAIMED and the claimer in a single conditional
// update. Two racing claim calls hit the same status guard; the loser's
// update matches zero rows and gets ErrNotAvailable.
func (r *PostRepository) ClaimIfActive(ctx context.Context, id, claimerID uuid.UUID) error {
	result := GetDB(ctx, r.db).WithContext(ctx).Model(&models.Post{}).
		Where("id = ? AND status = ?", id, string(entities.PostStatusActive)).
		Updates(map[string]interface{}{
			"status":     string(entities.PostStatusClaimed),
			"claimer_id": claimerID,
			"updated_at": time.Now(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return r.guardFailure(ctx, id, domainerrors.ErrNotAvailable)
	}
	return nil
}

// TransitionStatus advances the post from exactly `from` to `to`
func (r *PostRepository) TransitionStatus(ctx context.Context, id uuid.UUID, from, to entities.PostStatus) error {
	result := GetDB(ctx, r.db).WithContext(ctx).Model(&models.Post{}).
		Where("id = ? AND status = ?", id, string(from)).
		Updates(map[string]interface{}{
			"status":     string(to),
			"updated_at": time.Now(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return r.guardFailure(ctx, id, domainerrors.ErrWrongState)
	}
	return nil
}

// DeleteIfActive hard-deletes the post only while it is still ACTIVE
func (r *PostRepository) DeleteIfActive(ctx context.Context, id uuid.UUID) error {
	result := GetDB(ctx, r.db).WithContext(ctx).
		Where("id = ? AND status = ?", id, string(entities.PostStatusActive)).
		Delete(&models.Post{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return r.guardFailure(ctx, id, domainerrors.ErrNotDeletable)
	}
	return nil
}

// ListExpired returns ACTIVE posts whose expiry date has passed
func (r *PostRepository) ListExpired(ctx context.Context, before time.Time, limit int) ([]*entities.Post, error) {
	var postModels []models.Post
	query := GetDB(ctx, r.db).WithContext(ctx).
		Where("status = ? AND expiry_date < ?", string(entities.PostStatusActive), before).
		Order("expiry_date ASC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	if err := query.Find(&postModels).Error; err != nil {
		return nil, err
	}

	posts := make([]*entities.Post, 0, len(postModels))
	for i := range postModels {
		posts = append(posts, postToEntity(&postModels[i]))
	}
	return posts, nil
}

// MarkExpired flips the given posts to EXPIRED. Only ACTIVE rows are
// touched; a post claimed between the sweep's read and write is skipped.
func (r *PostRepository) MarkExpired(ctx context.Context, ids []uuid.UUID) error {
	if len(ids) == 0 {
		return nil
	}
	return GetDB(ctx, r.db).WithContext(ctx).Model(&models.Post{}).
		Where("id IN ? AND status = ?", ids, string(entities.PostStatusActive)).
		Updates(map[string]interface{}{
			"status":     string(entities.PostStatusExpired),
			"updated_at": time.Now(),
		}).Error
}

// guardFailure distinguishes a missing post from a failed status guard
// after a conditional write matched zero rows.
func (r *PostRepository) guardFailure(ctx context.Context, id uuid.UUID, guardErr error) error {
	var count int64
	if err := GetDB(ctx, r.db).WithContext(ctx).Model(&models.Post{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return domainerrors.ErrNotFound
	}
	return guardErr
}

func postToEntity(m *models.Post) *entities.Post {
	return &entities.Post{
		ID:          m.ID,
		Type:        entities.PostType(m.Type),
		Title:       m.Title,
		Description: m.Description,
		Quantity:    m.Quantity,
		Location:    m.Location,
		ExpiryDate:  m.ExpiryDate,
		Status:      entities.PostStatus(m.Status),
		Urgency:     null.StringFromPtr(m.Urgency),
		OwnerID:     m.OwnerID,
		ClaimerID:   m.ClaimerID,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}
