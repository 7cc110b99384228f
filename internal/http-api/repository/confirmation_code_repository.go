package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// ErrCodeNotFound signals that no code is stored for the user: never
// requested, expired, or already consumed.
var ErrCodeNotFound = errors.New("confirmation code not found")

// ConfirmationCodeRepository stores single-use confirmation codes. Only
// the bcrypt hash of a code ever reaches the store; expiry is handled by
// the key TTL and single use by consuming with GETDEL.
type ConfirmationCodeRepository interface {
	Store(ctx context.Context, userID, codeHash string) error
	Consume(ctx context.Context, userID string) (string, error)
}

type confirmationCodeRepository struct {
	client *redis.Client
	ttl    time.Duration
}

// NewConfirmationCodeRepository connects to redis and verifies the
// connection before returning.
func NewConfirmationCodeRepository(redisURL, password string, ttl time.Duration) (ConfirmationCodeRepository, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	if password != "" {
		opts.Password = password
	}
	opts.DialTimeout = 5 * time.Second
	opts.ReadTimeout = 3 * time.Second
	opts.WriteTimeout = 3 * time.Second

	rdb := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &confirmationCodeRepository{client: rdb, ttl: ttl}, nil
}

func codeKey(userID string) string {
	return fmt.Sprintf("confirmation_code:%s", userID)
}

// Store overwrites any previous code for the user, so only the latest
// requested code is valid.
func (r *confirmationCodeRepository) Store(ctx context.Context, userID, codeHash string) error {
	return r.client.Set(ctx, codeKey(userID), codeHash, r.ttl).Err()
}

// Consume removes and returns the stored hash. A second call for the
// same code returns ErrCodeNotFound.
func (r *confirmationCodeRepository) Consume(ctx context.Context, userID string) (string, error) {
	hash, err := r.client.GetDel(ctx, codeKey(userID)).Result()
	if errors.Is(err, redis.Nil) {
		return "", ErrCodeNotFound
	}
	if err != nil {
		return "", err
	}
	return hash, nil
}
