package repository

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/andres-gutierrezri/kitty-project/domain"
)

var ErrTokenNotFound = errors.New("token not found or expired")

const (
	verificationTokenTTL = 24 * time.Hour
	resetTokenTTL        = 30 * time.Minute
)

// tokenRedisRepository keeps one-shot email-verification and password-reset
// tokens in Redis, keyed by the token itself with the user UUID as payload.
type tokenRedisRepository struct {
	rdb *redis.Client
}

func NewTokenRedisRepository(rdb *redis.Client) domain.TokenStore {
	return &tokenRedisRepository{
		rdb: rdb,
	}
}

func (r *tokenRedisRepository) SaveVerificationToken(ctx context.Context, token, userUUID string) error {
	return r.rdb.Set(ctx, "verify:"+token, userUUID, verificationTokenTTL).Err()
}

func (r *tokenRedisRepository) ConsumeVerificationToken(ctx context.Context, token string) (string, error) {
	return r.consume(ctx, "verify:"+token)
}

func (r *tokenRedisRepository) SaveResetToken(ctx context.Context, token, userUUID string) error {
	return r.rdb.Set(ctx, "reset:"+token, userUUID, resetTokenTTL).Err()
}

func (r *tokenRedisRepository) ConsumeResetToken(ctx context.Context, token string) (string, error) {
	return r.consume(ctx, "reset:"+token)
}

// consume atomically fetches and deletes, so a token can only be used once.
func (r *tokenRedisRepository) consume(ctx context.Context, key string) (string, error) {
	userUUID, err := r.rdb.GetDel(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return "", ErrTokenNotFound
	}
	if err != nil {
		return "", err
	}
	return userUUID, nil
}
