package usecases

import (
	"context"
	"strconv"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
	"plateshare.backend/internal/domain/entities"
	domainerrors "plateshare.backend/internal/domain/errors"
	"plateshare.backend/internal/domain/notifications"
	"plateshare.backend/internal/domain/repositories"
	"plateshare.backend/pkg/utils"
)

// RatingUsecase implements rating submission and the derived mean rating
type RatingUsecase struct {
	ratingRepo repositories.RatingRepository
	postRepo   repositories.PostRepository
	userRepo   repositories.UserRepository
	uow        repositories.UnitOfWork
	notifier   notifications.Notifier
}

// NewRatingUsecase creates a new rating usecase
func NewRatingUsecase(
	ratingRepo repositories.RatingRepository,
	postRepo repositories.PostRepository,
	userRepo repositories.UserRepository,
	uow repositories.UnitOfWork,
	notifier notifications.Notifier,
) *RatingUsecase {
	return &RatingUsecase{
		ratingRepo: ratingRepo,
		postRepo:   postRepo,
		userRepo:   userRepo,
		uow:        uow,
		notifier:   notifier,
	}
}

// Create submits a one-time rating of one post participant by the other.
// Eligibility: post COMPLETED, rater is owner-or-claimer, ratee is the
// other of the two, and no prior rating for this (rater, ratee, post).
// On success the ratee's mean rating is recomputed in the same transaction.
func (uc *RatingUsecase) Create(ctx context.Context, raterID uuid.UUID, input *entities.CreateRatingInput) (*entities.Rating, error) {
	if input.Value < 1 || input.Value > 5 {
		return nil, domainerrors.ErrInvalidInput
	}

	post, err := uc.postRepo.GetByID(ctx, input.PostID)
	if err != nil {
		return nil, err
	}
	if post.Status != entities.PostStatusCompleted {
		return nil, domainerrors.ErrWrongState
	}
	if !post.IsParticipant(raterID) {
		return nil, domainerrors.ErrNotAuthorized
	}
	if input.RatedID != post.OtherParticipant(raterID) {
		return nil, domainerrors.ErrInvalidInput
	}

	exists, err := uc.ratingRepo.Exists(ctx, raterID, input.RatedID, input.PostID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, domainerrors.ErrAlreadyRated
	}

	rating := &entities.Rating{
		ID:          utils.GenerateUUIDv7(),
		RaterUserID: raterID,
		RatedUserID: input.RatedID,
		PostID:      input.PostID,
		Value:       input.Value,
		Comment:     null.NewString(input.Comment, input.Comment != ""),
		CreatedAt:   timeNow(),
	}

	err = uc.uow.Do(ctx, func(txCtx context.Context) error {
		if err := uc.ratingRepo.Create(txCtx, rating); err != nil {
			return err
		}
		mean, _, err := uc.ratingRepo.AverageForUser(txCtx, input.RatedID)
		if err != nil {
			return err
		}
		return uc.userRepo.UpdateRating(txCtx, input.RatedID, utils.RoundRating(mean))
	})
	if err != nil {
		return nil, err
	}

	uc.notifyRated(ctx, input.RatedID, post.Title, input.Value)

	return rating, nil
}

// ListForUser lists all ratings received by a user
func (uc *RatingUsecase) ListForUser(ctx context.Context, ratedID uuid.UUID) ([]*entities.Rating, error) {
	return uc.ratingRepo.ListForUser(ctx, ratedID)
}

func (uc *RatingUsecase) notifyRated(ctx context.Context, ratedID uuid.UUID, postTitle string, value int) {
	user, err := uc.userRepo.GetByID(ctx, ratedID)
	if err != nil {
		return
	}
	uc.notifier.Send(ctx, user.Email, user.Name, notifications.KindRatingReceived, map[string]string{
		"postTitle": postTitle,
		"value":     strconv.Itoa(value),
	})
}
