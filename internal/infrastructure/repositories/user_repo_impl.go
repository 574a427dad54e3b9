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

// UserRepository implements user data operations
type UserRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

// Create creates a new user
func (r *UserRepository) Create(ctx context.Context, user *entities.User) error {
	m := &models.User{
		ID:                      user.ID,
		Email:                   user.Email,
		Name:                    user.Name,
		PasswordHash:            user.PasswordHash,
		AvatarURL:               user.AvatarURL.Ptr(),
		DonationsCount:          user.DonationsCount,
		ReceivedCount:           user.ReceivedCount,
		Rating:                  user.Rating,
		IsEmailVerified:         user.IsEmailVerified,
		VerificationToken:       user.VerificationToken.Ptr(),
		VerificationTokenExpiry: timePtr(user.VerificationTokenExpiry),
		CreatedAt:               user.CreatedAt,
		UpdatedAt:               user.UpdatedAt,
	}

	if err := GetDB(ctx, r.db).WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	user.ID = m.ID
	return nil
}

// GetByID gets a user by ID (password hash excluded)
func (r *UserRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.User, error) {
	var m models.User
	if err := GetDB(ctx, r.db).WithContext(ctx).Omit("password_hash").Where("id = ?", id).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return userToEntity(&m), nil
}

// GetByEmail gets a user by normalized email (password hash excluded)
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*entities.User, error) {
	return r.getByEmail(ctx, email, false)
}

// GetByEmailWithSecret gets a user by normalized email including the hash
func (r *UserRepository) GetByEmailWithSecret(ctx context.Context, email string) (*entities.User, error) {
	return r.getByEmail(ctx, email, true)
}

func (r *UserRepository) getByEmail(ctx context.Context, email string, includeSecret bool) (*entities.User, error) {
	query := GetDB(ctx, r.db).WithContext(ctx)
	if !includeSecret {
		query = query.Omit("password_hash")
	}

	var m models.User
	if err := query.Where("email = ?", email).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return userToEntity(&m), nil
}

// Update applies a partial update; nil patch fields are left untouched
func (r *UserRepository) Update(ctx context.Context, id uuid.UUID, patch *entities.UserPatch) error {
	updates := map[string]interface{}{
		"updated_at": time.Now(),
	}
	if patch.Name != nil {
		updates["name"] = *patch.Name
	}
	if patch.AvatarURL != nil {
		updates["avatar_url"] = patch.AvatarURL.Ptr()
	}
	if patch.IsEmailVerified != nil {
		updates["is_email_verified"] = *patch.IsEmailVerified
	}
	if patch.VerificationToken != nil {
		updates["verification_token"] = patch.VerificationToken.Ptr()
	}
	if patch.VerificationTokenExpiry != nil {
		updates["verification_token_expiry"] = timePtr(*patch.VerificationTokenExpiry)
	}
	if patch.PasswordResetToken != nil {
		updates["password_reset_token"] = patch.PasswordResetToken.Ptr()
	}
	if patch.PasswordResetTokenExpiry != nil {
		updates["password_reset_token_expiry"] = timePtr(*patch.PasswordResetTokenExpiry)
	}

	result := GetDB(ctx, r.db).WithContext(ctx).Model(&models.User{}).Where("id = ?", id).Updates(updates)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

// IncrementCounters atomically adds deltas to the reputation counters
func (r *UserRepository) IncrementCounters(ctx context.Context, id uuid.UUID, donations, received int) error {
	updates := map[string]interface{}{
		"updated_at": time.Now(),
	}
	if donations != 0 {
		updates["donations_count"] = gorm.Expr("donations_count + ?", donations)
	}
	if received != 0 {
		updates["received_count"] = gorm.Expr("received_count + ?", received)
	}

	result := GetDB(ctx, r.db).WithContext(ctx).Model(&models.User{}).Where("id = ?", id).Updates(updates)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

// UpdateRating overwrites the derived mean rating
func (r *UserRepository) UpdateRating(ctx context.Context, id uuid.UUID, rating float64) error {
	result := GetDB(ctx, r.db).WithContext(ctx).Model(&models.User{}).Where("id = ?", id).Updates(map[string]interface{}{
		"rating":     rating,
		"updated_at": time.Now(),
	})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

// List lists users with optional search filter
func (r *UserRepository) List(ctx context.Context, search string) ([]*entities.User, error) {
	var userModels []models.User
	query := GetDB(ctx, r.db).WithContext(ctx).Omit("password_hash").Order("created_at DESC")

	if search != "" {
		searchTerm := "%" + search + "%"
		query = query.Where("name LIKE ? OR email LIKE ?", searchTerm, searchTerm)
	}

	if err := query.Find(&userModels).Error; err != nil {
		return nil, err
	}

	users := make([]*entities.User, 0, len(userModels))
	for i := range userModels {
		users = append(users, userToEntity(&userModels[i]))
	}
	return users, nil
}

func userToEntity(m *models.User) *entities.User {
	return &entities.User{
		ID:                       m.ID,
		Email:                    m.Email,
		Name:                     m.Name,
		PasswordHash:             m.PasswordHash,
		AvatarURL:                null.StringFromPtr(m.AvatarURL),
		DonationsCount:           m.DonationsCount,
		ReceivedCount:            m.ReceivedCount,
		Rating:                   m.Rating,
		IsEmailVerified:          m.IsEmailVerified,
		VerificationToken:        null.StringFromPtr(m.VerificationToken),
		VerificationTokenExpiry:  null.TimeFromPtr(m.VerificationTokenExpiry),
		PasswordResetToken:       null.StringFromPtr(m.PasswordResetToken),
		PasswordResetTokenExpiry: null.TimeFromPtr(m.PasswordResetTokenExpiry),
		CreatedAt:                m.CreatedAt,
		UpdatedAt:                m.UpdatedAt,
	}
}

func timePtr(t null.Time) *time.Time {
	if !t.Valid {
		return nil
	}
	v := t.Time
	return &v
}
