package verification

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"plateshare.backend/internal/domain/entities"
	domainerrors "plateshare.backend/internal/domain/errors"
	"plateshare.backend/pkg/redis"
)

const (
	pendingRegPrefix = "pending_reg:"
	emailVerifPrefix = "email_verif:"

	// Keys linger a little past the OTP window so expiry is reported as
	// CodeExpired by the state machine rather than as a missing flow.
	ttlGrace = 5 * time.Minute
)

// RedisStore keeps the ephemeral OTP state in Redis with a TTL, keyed by
// normalized email. A plain SET per save gives last-write-wins reissue
// semantics; scaled-out instances share the state.
type RedisStore struct{}

// NewRedisStore creates a new verification state store
func NewRedisStore() *RedisStore {
	return &RedisStore{}
}

// SavePendingRegistration creates or overwrites the pending registration
func (s *RedisStore) SavePendingRegistration(ctx context.Context, reg *entities.PendingRegistration) error {
	return s.save(ctx, pendingRegPrefix+reg.Email, reg, reg.ExpiresAt)
}

// GetPendingRegistration looks up the pending registration by email
func (s *RedisStore) GetPendingRegistration(ctx context.Context, email string) (*entities.PendingRegistration, error) {
	var reg entities.PendingRegistration
	if err := s.load(ctx, pendingRegPrefix+email, &reg); err != nil {
		return nil, err
	}
	return &reg, nil
}

// DeletePendingRegistration removes the pending registration
func (s *RedisStore) DeletePendingRegistration(ctx context.Context, email string) error {
	return redis.Del(ctx, pendingRegPrefix+email)
}

// SaveEmailVerification creates or overwrites the standalone verification
func (s *RedisStore) SaveEmailVerification(ctx context.Context, verif *entities.EmailVerification) error {
	return s.save(ctx, emailVerifPrefix+verif.Email, verif, verif.ExpiresAt)
}

// GetEmailVerification looks up the standalone verification by email
func (s *RedisStore) GetEmailVerification(ctx context.Context, email string) (*entities.EmailVerification, error) {
	var verif entities.EmailVerification
	if err := s.load(ctx, emailVerifPrefix+email, &verif); err != nil {
		return nil, err
	}
	return &verif, nil
}

// DeleteEmailVerification removes the standalone verification
func (s *RedisStore) DeleteEmailVerification(ctx context.Context, email string) error {
	return redis.Del(ctx, emailVerifPrefix+email)
}

func (s *RedisStore) save(ctx context.Context, key string, value interface{}, expiresAt time.Time) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}

	ttl := time.Until(expiresAt) + ttlGrace
	if ttl <= 0 {
		ttl = ttlGrace
	}
	return redis.Set(ctx, key, string(data), ttl)
}

func (s *RedisStore) load(ctx context.Context, key string, out interface{}) error {
	data, err := redis.Get(ctx, key)
	if err != nil {
		if errors.Is(err, goredis.Nil) {
			return domainerrors.ErrNotFound
		}
		return err
	}
	return json.Unmarshal([]byte(data), out)
}
