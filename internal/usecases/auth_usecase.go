package usecases

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
	"go.uber.org/zap"
	"plateshare.backend/internal/domain/entities"
	domainerrors "plateshare.backend/internal/domain/errors"
	"plateshare.backend/internal/domain/notifications"
	"plateshare.backend/internal/domain/repositories"
	"plateshare.backend/pkg/crypto"
	"plateshare.backend/pkg/jwt"
	"plateshare.backend/pkg/logger"
	redispkg "plateshare.backend/pkg/redis"
	"plateshare.backend/pkg/utils"
)

const (
	// Registration and standalone verification codes live 15 minutes;
	// login codes get a longer 30 minute window.
	registrationOTPWindow = 15 * time.Minute
	loginOTPWindow        = 30 * time.Minute

	sessionExpiry = 24 * time.Hour
)

var timeNow = time.Now

// AuthUsecase implements the identity verification state machine: the
// registration, login and standalone-verify OTP flows that gate account
// creation and authentication.
type AuthUsecase struct {
	userRepo     repositories.UserRepository
	verifStore   repositories.VerificationStore
	notifier     notifications.Notifier
	jwtService   *jwt.JWTService
	sessionStore *redispkg.SessionStore
}

// NewAuthUsecase creates a new auth usecase
func NewAuthUsecase(
	userRepo repositories.UserRepository,
	verifStore repositories.VerificationStore,
	notifier notifications.Notifier,
	jwtService *jwt.JWTService,
	sessionStore *redispkg.SessionStore,
) *AuthUsecase {
	return &AuthUsecase{
		userRepo:     userRepo,
		verifStore:   verifStore,
		notifier:     notifier,
		jwtService:   jwtService,
		sessionStore: sessionStore,
	}
}

// RequestRegistration starts a registration: it stores a pending
// registration with a fresh OTP and dispatches the code. A repeat request
// for the same email reissues the code in place; the acknowledgement never
// reveals whether that happened.
func (u *AuthUsecase) RequestRegistration(ctx context.Context, input *entities.RegisterInput) error {
	email := entities.NormalizeEmail(input.Email)

	_, err := u.userRepo.GetByEmail(ctx, email)
	if err == nil {
		return domainerrors.ErrAlreadyExists
	}
	if !errors.Is(err, domainerrors.ErrNotFound) {
		return err
	}

	passwordHash, err := crypto.HashPassword(input.Password)
	if err != nil {
		return err
	}

	otp, err := crypto.GenerateOTP()
	if err != nil {
		return err
	}

	pending := &entities.PendingRegistration{
		Name:         input.Name,
		Email:        email,
		PasswordHash: passwordHash,
		AvatarURL:    input.AvatarURL,
		OTP:          otp,
		ExpiresAt:    timeNow().Add(registrationOTPWindow),
	}
	if err := u.verifStore.SavePendingRegistration(ctx, pending); err != nil {
		return err
	}

	// Dispatch failure is not fatal here, unlike the login path.
	u.notify(ctx, email, input.Name, notifications.KindVerificationOTP, map[string]string{"otp": otp})

	return nil
}

// VerifyRegistration completes a registration: a matching, unexpired OTP
// promotes the pending registration into a verified user. With no pending
// entry it falls back to the legacy on-record token flow.
func (u *AuthUsecase) VerifyRegistration(ctx context.Context, email, otp string) (*entities.AuthResponse, error) {
	if email == "" || otp == "" {
		return nil, domainerrors.ErrMissingField
	}
	email = entities.NormalizeEmail(email)

	pending, err := u.verifStore.GetPendingRegistration(ctx, email)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return u.verifyLegacyToken(ctx, email, otp)
		}
		return nil, err
	}

	// Registration OTP comparison is exact, unlike the login flow.
	if pending.OTP != otp {
		return nil, domainerrors.ErrInvalidCode
	}
	if pending.Expired(timeNow()) {
		return nil, domainerrors.ErrCodeExpired
	}

	user := &entities.User{
		ID:              utils.GenerateUUIDv7(),
		Email:           pending.Email,
		Name:            pending.Name,
		PasswordHash:    pending.PasswordHash,
		AvatarURL:       null.NewString(pending.AvatarURL, pending.AvatarURL != ""),
		IsEmailVerified: true,
		CreatedAt:       timeNow(),
		UpdatedAt:       timeNow(),
	}
	if err := u.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	if err := u.verifStore.DeletePendingRegistration(ctx, email); err != nil {
		logger.Warn(ctx, "failed to delete pending registration", zap.String("email", email), zap.Error(err))
	}

	return u.authenticate(ctx, user, false)
}

// verifyLegacyToken validates an on-record verification token for users
// created before the pending-registration flow existed.
func (u *AuthUsecase) verifyLegacyToken(ctx context.Context, email, otp string) (*entities.AuthResponse, error) {
	user, err := u.userRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return nil, domainerrors.ErrNoPendingRegistration
		}
		return nil, err
	}

	if user.IsEmailVerified {
		return u.authenticate(ctx, user, false)
	}

	if !user.VerificationToken.Valid || user.VerificationToken.String != otp {
		return nil, domainerrors.ErrInvalidCode
	}
	if !user.VerificationTokenExpiry.Valid || timeNow().After(user.VerificationTokenExpiry.Time) {
		return nil, domainerrors.ErrCodeExpired
	}

	verified := true
	patch := &entities.UserPatch{
		IsEmailVerified:         &verified,
		VerificationToken:       &null.String{},
		VerificationTokenExpiry: &null.Time{},
	}
	if err := u.userRepo.Update(ctx, user.ID, patch); err != nil {
		return nil, err
	}
	user.IsEmailVerified = true

	return u.authenticate(ctx, user, false)
}

// RequestLogin issues a login OTP on the user's durable record. Unlike
// registration, a failed dispatch fails the whole request.
func (u *AuthUsecase) RequestLogin(ctx context.Context, email string) error {
	email = entities.NormalizeEmail(email)

	user, err := u.userRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return domainerrors.ErrUserNotFound
		}
		return err
	}

	if !user.IsEmailVerified {
		return domainerrors.ErrEmailNotVerified
	}

	otp, err := crypto.GenerateOTP()
	if err != nil {
		return err
	}

	token := null.StringFrom(otp)
	expiry := null.TimeFrom(timeNow().Add(loginOTPWindow))
	patch := &entities.UserPatch{
		VerificationToken:       &token,
		VerificationTokenExpiry: &expiry,
	}
	if err := u.userRepo.Update(ctx, user.ID, patch); err != nil {
		return err
	}

	if !u.notifier.Send(ctx, user.Email, user.Name, notifications.KindLoginOTP, map[string]string{"otp": otp}) {
		return domainerrors.ErrNotificationFailed
	}

	return nil
}

// CompleteLogin validates the login OTP and authenticates the user. The
// comparison is case-insensitive, tolerating case-mangling by mail clients
// and autofill; registration keeps the exact compare.
func (u *AuthUsecase) CompleteLogin(ctx context.Context, input *entities.CompleteLoginInput) (*entities.AuthResponse, error) {
	email := entities.NormalizeEmail(input.Email)

	user, err := u.userRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return nil, domainerrors.ErrUserNotFound
		}
		return nil, err
	}

	if !user.VerificationToken.Valid || !strings.EqualFold(user.VerificationToken.String, input.OTP) {
		return nil, domainerrors.ErrInvalidCode
	}
	if !user.VerificationTokenExpiry.Valid || timeNow().After(user.VerificationTokenExpiry.Time) {
		return nil, domainerrors.ErrCodeExpired
	}

	patch := &entities.UserPatch{
		VerificationToken:       &null.String{},
		VerificationTokenExpiry: &null.Time{},
	}
	if err := u.userRepo.Update(ctx, user.ID, patch); err != nil {
		return nil, err
	}

	return u.authenticate(ctx, user, input.UseSession)
}

// RequestStandaloneVerification issues a fresh OTP for the
// verify-before-registering path, whether or not a user exists yet.
func (u *AuthUsecase) RequestStandaloneVerification(ctx context.Context, email string) error {
	email = entities.NormalizeEmail(email)
	if email == "" {
		return domainerrors.ErrMissingField
	}

	otp, err := crypto.GenerateOTP()
	if err != nil {
		return err
	}

	verif := &entities.EmailVerification{
		Email:     email,
		OTP:       otp,
		ExpiresAt: timeNow().Add(registrationOTPWindow),
	}
	if err := u.verifStore.SaveEmailVerification(ctx, verif); err != nil {
		return err
	}

	u.notify(ctx, email, "", notifications.KindVerificationOTP, map[string]string{"otp": otp})

	return nil
}

// CheckStandaloneVerification validates an OTP against the standalone
// store. The state is left intact on success so the registration call that
// follows can re-validate the same code.
func (u *AuthUsecase) CheckStandaloneVerification(ctx context.Context, email, otp string) error {
	if email == "" || otp == "" {
		return domainerrors.ErrMissingField
	}
	email = entities.NormalizeEmail(email)

	verif, err := u.verifStore.GetEmailVerification(ctx, email)
	if err != nil {
		return err
	}

	if verif.OTP != otp {
		return domainerrors.ErrInvalidCode
	}
	if verif.Expired(timeNow()) {
		return domainerrors.ErrCodeExpired
	}

	return nil
}

// RegisterPreVerified creates a verified user directly, requiring a valid
// standalone verification for the email. The pending-registration flow is
// bypassed entirely.
func (u *AuthUsecase) RegisterPreVerified(ctx context.Context, input *entities.RegisterVerifiedInput) (*entities.AuthResponse, error) {
	email := entities.NormalizeEmail(input.Email)

	verif, err := u.verifStore.GetEmailVerification(ctx, email)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return nil, domainerrors.ErrEmailNotVerified
		}
		return nil, err
	}
	if verif.OTP != input.OTP || verif.Expired(timeNow()) {
		return nil, domainerrors.ErrEmailNotVerified
	}

	_, err = u.userRepo.GetByEmail(ctx, email)
	if err == nil {
		return nil, domainerrors.ErrAlreadyExists
	}
	if !errors.Is(err, domainerrors.ErrNotFound) {
		return nil, err
	}

	passwordHash, err := crypto.HashPassword(input.Password)
	if err != nil {
		return nil, err
	}

	user := &entities.User{
		ID:              utils.GenerateUUIDv7(),
		Email:           email,
		Name:            input.Name,
		PasswordHash:    passwordHash,
		AvatarURL:       null.NewString(input.AvatarURL, input.AvatarURL != ""),
		IsEmailVerified: true,
		CreatedAt:       timeNow(),
		UpdatedAt:       timeNow(),
	}
	if err := u.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	if err := u.verifStore.DeleteEmailVerification(ctx, email); err != nil {
		logger.Warn(ctx, "failed to delete email verification", zap.String("email", email), zap.Error(err))
	}

	return u.authenticate(ctx, user, false)
}

// GetUserByID gets a user by ID
func (u *AuthUsecase) GetUserByID(ctx context.Context, id uuid.UUID) (*entities.User, error) {
	return u.userRepo.GetByID(ctx, id)
}

func (u *AuthUsecase) authenticate(ctx context.Context, user *entities.User, useSession bool) (*entities.AuthResponse, error) {
	tokenPair, err := u.jwtService.GenerateTokenPair(user.ID, user.Email)
	if err != nil {
		return nil, err
	}

	resp := &entities.AuthResponse{
		AccessToken:  tokenPair.AccessToken,
		RefreshToken: tokenPair.RefreshToken,
		User:         user,
	}

	if useSession && u.sessionStore != nil {
		sessionID := utils.GenerateUUIDv7().String()
		data := &redispkg.SessionData{
			AccessToken:  tokenPair.AccessToken,
			RefreshToken: tokenPair.RefreshToken,
		}
		if err := u.sessionStore.CreateSession(ctx, sessionID, data, sessionExpiry); err != nil {
			return nil, err
		}
		resp.SessionID = sessionID
		resp.AccessToken = ""
		resp.RefreshToken = ""
	}

	return resp, nil
}

// notify dispatches fire-and-forget; a false result is logged, never
// surfaced.
func (u *AuthUsecase) notify(ctx context.Context, toEmail, toName string, kind notifications.Kind, args map[string]string) {
	if !u.notifier.Send(ctx, toEmail, toName, kind, args) {
		logger.Warn(ctx, "notification dispatch failed",
			zap.String("kind", string(kind)),
			zap.String("to", toEmail),
		)
	}
}
