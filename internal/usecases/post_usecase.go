package usecases

import (
	"context"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
	"go.uber.org/zap"
	"plateshare.backend/internal/domain/entities"
	domainerrors "plateshare.backend/internal/domain/errors"
	"plateshare.backend/internal/domain/notifications"
	"plateshare.backend/internal/domain/repositories"
	"plateshare.backend/pkg/logger"
	"plateshare.backend/pkg/utils"
)

// PostUsecase implements the post lifecycle workflow: the legal status
// transitions, the participant-role checks around them, and the derived
// reputation and notification side effects.
type PostUsecase struct {
	postRepo repositories.PostRepository
	userRepo repositories.UserRepository
	uow      repositories.UnitOfWork
	notifier notifications.Notifier
}

// NewPostUsecase creates a new post usecase
func NewPostUsecase(
	postRepo repositories.PostRepository,
	userRepo repositories.UserRepository,
	uow repositories.UnitOfWork,
	notifier notifications.Notifier,
) *PostUsecase {
	return &PostUsecase{
		postRepo: postRepo,
		userRepo: userRepo,
		uow:      uow,
		notifier: notifier,
	}
}

// CreatePost creates a new ACTIVE post owned by ownerID
func (uc *PostUsecase) CreatePost(ctx context.Context, ownerID uuid.UUID, input *entities.CreatePostInput) (*entities.Post, error) {
	if input.Type != entities.PostTypeDonation && input.Type != entities.PostTypeRequest {
		return nil, domainerrors.ErrInvalidInput
	}

	// Urgency only applies to requests.
	urgency := null.String{}
	if input.Type == entities.PostTypeRequest && input.Urgency != "" {
		urgency = null.StringFrom(input.Urgency)
	}

	now := timeNow()
	post := &entities.Post{
		ID:          utils.GenerateUUIDv7(),
		Type:        input.Type,
		Title:       input.Title,
		Description: input.Description,
		Quantity:    input.Quantity,
		Location:    input.Location,
		ExpiryDate:  input.ExpiryDate,
		Status:      entities.PostStatusActive,
		Urgency:     urgency,
		OwnerID:     ownerID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := uc.postRepo.Create(ctx, post); err != nil {
		return nil, err
	}
	return post, nil
}

// GetPost gets a post by ID
func (uc *PostUsecase) GetPost(ctx context.Context, id uuid.UUID) (*entities.Post, error) {
	return uc.postRepo.GetByID(ctx, id)
}

// ListPosts lists posts matching the filter
func (uc *PostUsecase) ListPosts(ctx context.Context, filter entities.PostFilter, page, limit int) ([]*entities.Post, utils.PaginationMeta, error) {
	params := utils.GetPaginationParams(page, limit)
	posts, total, err := uc.postRepo.List(ctx, filter, params.Limit, params.CalculateOffset())
	if err != nil {
		return nil, utils.PaginationMeta{}, err
	}
	return posts, utils.CalculateMeta(total, params.Page, params.Limit), nil
}

// Claim claims an ACTIVE donation for claimerID. The final write is a
// conditional update, so of two concurrent claims exactly one wins and the
// other gets ErrNotAvailable.
func (uc *PostUsecase) Claim(ctx context.Context, postID, claimerID uuid.UUID) (*entities.Post, error) {
	post, err := uc.postRepo.GetByID(ctx, postID)
	if err != nil {
		return nil, err
	}
	if post.Type != entities.PostTypeDonation {
		return nil, domainerrors.ErrWrongPostType
	}
	if post.Status != entities.PostStatusActive {
		return nil, domainerrors.ErrNotAvailable
	}

	if err := uc.postRepo.ClaimIfActive(ctx, postID, claimerID); err != nil {
		return nil, err
	}
	post.Status = entities.PostStatusClaimed
	post.ClaimerID = &claimerID

	uc.notifyUser(ctx, post.OwnerID, notifications.KindPostClaimed, map[string]string{
		"actorName": uc.userName(ctx, claimerID),
		"postTitle": post.Title,
	})

	return post, nil
}

// Fulfill claims an ACTIVE request for fulfillerID; the fulfiller occupies
// the claimer slot and the resulting status is CLAIMED, same as Claim.
func (uc *PostUsecase) Fulfill(ctx context.Context, postID, fulfillerID uuid.UUID) (*entities.Post, error) {
	post, err := uc.postRepo.GetByID(ctx, postID)
	if err != nil {
		return nil, err
	}
	if post.Type != entities.PostTypeRequest {
		return nil, domainerrors.ErrWrongPostType
	}
	if post.Status != entities.PostStatusActive {
		return nil, domainerrors.ErrNotAvailable
	}

	if err := uc.postRepo.ClaimIfActive(ctx, postID, fulfillerID); err != nil {
		return nil, err
	}
	post.Status = entities.PostStatusClaimed
	post.ClaimerID = &fulfillerID

	uc.notifyUser(ctx, post.OwnerID, notifications.KindPostFulfilled, map[string]string{
		"actorName": uc.userName(ctx, fulfillerID),
		"postTitle": post.Title,
	})

	return post, nil
}

// MarkPickedUp advances a CLAIMED post to PICKED_UP. Either participant
// may perform it; the other party is notified.
func (uc *PostUsecase) MarkPickedUp(ctx context.Context, postID, actingUserID uuid.UUID) (*entities.Post, error) {
	post, err := uc.postRepo.GetByID(ctx, postID)
	if err != nil {
		return nil, err
	}
	if post.Status != entities.PostStatusClaimed {
		return nil, domainerrors.ErrWrongState
	}
	if !post.IsParticipant(actingUserID) {
		return nil, domainerrors.ErrNotAuthorized
	}

	if err := uc.postRepo.TransitionStatus(ctx, postID, entities.PostStatusClaimed, entities.PostStatusPickedUp); err != nil {
		return nil, err
	}
	post.Status = entities.PostStatusPickedUp

	uc.notifyUser(ctx, post.OtherParticipant(actingUserID), notifications.KindPickupConfirmed, map[string]string{
		"actorName": uc.userName(ctx, actingUserID),
		"postTitle": post.Title,
	})

	return post, nil
}

// MarkCompleted advances a PICKED_UP post to COMPLETED and applies the
// reputation update in the same transaction. Which party's donation
// counter moves depends on the post type, not on who completed: the donor
// slot of a donation is the owner, of a request the fulfiller.
func (uc *PostUsecase) MarkCompleted(ctx context.Context, postID, actingUserID uuid.UUID) (*entities.Post, error) {
	post, err := uc.postRepo.GetByID(ctx, postID)
	if err != nil {
		return nil, err
	}
	if post.Status != entities.PostStatusPickedUp {
		return nil, domainerrors.ErrWrongState
	}
	if !post.IsParticipant(actingUserID) {
		return nil, domainerrors.ErrNotAuthorized
	}

	err = uc.uow.Do(ctx, func(txCtx context.Context) error {
		if err := uc.postRepo.TransitionStatus(txCtx, postID, entities.PostStatusPickedUp, entities.PostStatusCompleted); err != nil {
			return err
		}
		if err := uc.userRepo.IncrementCounters(txCtx, post.DonorID(), 1, 0); err != nil {
			return err
		}
		return uc.userRepo.IncrementCounters(txCtx, post.RecipientID(), 0, 1)
	})
	if err != nil {
		return nil, err
	}
	post.Status = entities.PostStatusCompleted

	uc.notifyUser(ctx, post.OtherParticipant(actingUserID), notifications.KindPostCompleted, map[string]string{
		"actorName": uc.userName(ctx, actingUserID),
		"postTitle": post.Title,
	})

	return post, nil
}

// Delete hard-deletes a post. Owner only, ACTIVE only; deletion is a
// safety valve, not a workflow transition.
func (uc *PostUsecase) Delete(ctx context.Context, postID, actingUserID uuid.UUID) error {
	post, err := uc.postRepo.GetByID(ctx, postID)
	if err != nil {
		return err
	}
	if post.OwnerID != actingUserID {
		return domainerrors.ErrNotOwner
	}
	if post.Status != entities.PostStatusActive {
		return domainerrors.ErrNotDeletable
	}

	return uc.postRepo.DeleteIfActive(ctx, postID)
}

// notifyUser resolves the recipient and dispatches fire-and-forget; a
// failed or unresolvable dispatch never affects the workflow result.
func (uc *PostUsecase) notifyUser(ctx context.Context, userID uuid.UUID, kind notifications.Kind, args map[string]string) {
	if userID == uuid.Nil {
		return
	}
	user, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		logger.Warn(ctx, "failed to resolve notification recipient",
			zap.String("user_id", userID.String()), zap.Error(err))
		return
	}
	if !uc.notifier.Send(ctx, user.Email, user.Name, kind, args) {
		logger.Warn(ctx, "notification dispatch failed",
			zap.String("kind", string(kind)),
			zap.String("to", user.Email),
		)
	}
}

func (uc *PostUsecase) userName(ctx context.Context, userID uuid.UUID) string {
	user, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		return ""
	}
	return user.Name
}
