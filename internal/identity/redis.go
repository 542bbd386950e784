package identity

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/redis/go-redis/v9"

	"github.com/fadhlan/shoply/internal/apperr"
)

const sessionKeyPrefix = "session:"

// RedisResolver resolves session tokens from the identity provider's
// session store.
type RedisResolver struct {
	client *redis.Client
}

func NewRedisResolver(client *redis.Client) *RedisResolver {
	return &RedisResolver{client: client}
}

func (r *RedisResolver) CurrentUser(ctx context.Context, token string) (string, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return "", apperr.ErrUnauthenticated
	}

	ownerID, err := r.client.Get(ctx, sessionKey(token)).Result()
	if errors.Is(err, redis.Nil) {
		return "", apperr.ErrUnauthenticated
	}
	if err != nil {
		return "", fmt.Errorf("session lookup failed: %w", err)
	}

	if ownerID == "" {
		return "", apperr.ErrUnauthenticated
	}
	return ownerID, nil
}

func sessionKey(token string) string {
	return sessionKeyPrefix + token
}
