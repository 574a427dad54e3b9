package notifications

import "context"

// Kind identifies a notification template
type Kind string

const (
	KindVerificationOTP Kind = "VERIFICATION_OTP"
	KindLoginOTP        Kind = "LOGIN_OTP"
	KindPostClaimed     Kind = "POST_CLAIMED"
	KindPostFulfilled   Kind = "POST_FULFILLED"
	KindPickupConfirmed Kind = "PICKUP_CONFIRMED"
	KindPostCompleted   Kind = "POST_COMPLETED"
	KindRatingReceived  Kind = "RATING_RECEIVED"
)

// Notifier dispatches a best-effort message to a user. The boolean result
// is advisory: lifecycle call sites log and continue on false, only the
// login-OTP path treats it as fatal.
type Notifier interface {
	Send(ctx context.Context, toEmail, toName string, kind Kind, args map[string]string) bool
}
