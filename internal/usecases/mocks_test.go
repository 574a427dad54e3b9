package usecases_test

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"plateshare.backend/internal/domain/entities"
	"plateshare.backend/internal/domain/notifications"
)

// Mock UnitOfWork
type MockUnitOfWork struct {
	mock.Mock
}

func (m *MockUnitOfWork) Do(ctx context.Context, f func(context.Context) error) error {
	m.Called(ctx, f)
	return f(ctx)
}

// Mock UserRepository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *entities.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.User), args.Error(1)
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*entities.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.User), args.Error(1)
}

func (m *MockUserRepository) GetByEmailWithSecret(ctx context.Context, email string) (*entities.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.User), args.Error(1)
}

func (m *MockUserRepository) Update(ctx context.Context, id uuid.UUID, patch *entities.UserPatch) error {
	args := m.Called(ctx, id, patch)
	return args.Error(0)
}

func (m *MockUserRepository) IncrementCounters(ctx context.Context, id uuid.UUID, donations, received int) error {
	args := m.Called(ctx, id, donations, received)
	return args.Error(0)
}

func (m *MockUserRepository) UpdateRating(ctx context.Context, id uuid.UUID, rating float64) error {
	args := m.Called(ctx, id, rating)
	return args.Error(0)
}

func (m *MockUserRepository) List(ctx context.Context, search string) ([]*entities.User, error) {
	args := m.Called(ctx, search)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.User), args.Error(1)
}

// Mock PostRepository
type MockPostRepository struct {
	mock.Mock
}

func (m *MockPostRepository) Create(ctx context.Context, post *entities.Post) error {
	args := m.Called(ctx, post)
	return args.Error(0)
}

func (m *MockPostRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.Post, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Post), args.Error(1)
}

func (m *MockPostRepository) List(ctx context.Context, filter entities.PostFilter, limit, offset int) ([]*entities.Post, int64, error) {
	args := m.Called(ctx, filter, limit, offset)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]*entities.Post), args.Get(1).(int64), args.Error(2)
}

func (m *MockPostRepository) ClaimIfActive(ctx context.Context, id, claimerID uuid.UUID) error {
	args := m.Called(ctx, id, claimerID)
	return args.Error(0)
}

func (m *MockPostRepository) TransitionStatus(ctx context.Context, id uuid.UUID, from, to entities.PostStatus) error {
	args := m.Called(ctx, id, from, to)
	return args.Error(0)
}

func (m *MockPostRepository) DeleteIfActive(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockPostRepository) ListExpired(ctx context.Context, before time.Time, limit int) ([]*entities.Post, error) {
	args := m.Called(ctx, before, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.Post), args.Error(1)
}

func (m *MockPostRepository) MarkExpired(ctx context.Context, ids []uuid.UUID) error {
	args := m.Called(ctx, ids)
	return args.Error(0)
}

// Mock RatingRepository
type MockRatingRepository struct {
	mock.Mock
}

func (m *MockRatingRepository) Create(ctx context.Context, rating *entities.Rating) error {
	args := m.Called(ctx, rating)
	return args.Error(0)
}

func (m *MockRatingRepository) Exists(ctx context.Context, raterID, ratedID, postID uuid.UUID) (bool, error) {
	args := m.Called(ctx, raterID, ratedID, postID)
	return args.Bool(0), args.Error(1)
}

func (m *MockRatingRepository) ListForUser(ctx context.Context, ratedID uuid.UUID) ([]*entities.Rating, error) {
	args := m.Called(ctx, ratedID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.Rating), args.Error(1)
}

func (m *MockRatingRepository) AverageForUser(ctx context.Context, ratedID uuid.UUID) (float64, int64, error) {
	args := m.Called(ctx, ratedID)
	return args.Get(0).(float64), args.Get(1).(int64), args.Error(2)
}

// Mock VerificationStore
type MockVerificationStore struct {
	mock.Mock
}

func (m *MockVerificationStore) SavePendingRegistration(ctx context.Context, reg *entities.PendingRegistration) error {
	args := m.Called(ctx, reg)
	return args.Error(0)
}

func (m *MockVerificationStore) GetPendingRegistration(ctx context.Context, email string) (*entities.PendingRegistration, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.PendingRegistration), args.Error(1)
}

func (m *MockVerificationStore) DeletePendingRegistration(ctx context.Context, email string) error {
	args := m.Called(ctx, email)
	return args.Error(0)
}

func (m *MockVerificationStore) SaveEmailVerification(ctx context.Context, verif *entities.EmailVerification) error {
	args := m.Called(ctx, verif)
	return args.Error(0)
}

func (m *MockVerificationStore) GetEmailVerification(ctx context.Context, email string) (*entities.EmailVerification, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.EmailVerification), args.Error(1)
}

func (m *MockVerificationStore) DeleteEmailVerification(ctx context.Context, email string) error {
	args := m.Called(ctx, email)
	return args.Error(0)
}

// Mock Notifier
type MockNotifier struct {
	mock.Mock
}

func (m *MockNotifier) Send(ctx context.Context, toEmail, toName string, kind notifications.Kind, args map[string]string) bool {
	callArgs := m.Called(ctx, toEmail, toName, kind, args)
	return callArgs.Bool(0)
}
