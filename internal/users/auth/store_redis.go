// Copyright (c) 2026 Pulse. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/taibuivan/pulse/internal/platform/apperr"
	"github.com/taibuivan/pulse/internal/platform/constants"
)

// RedisRefreshTokenRepository implements [RefreshTokenRepository] using Redis.
//
// Refresh tokens are volatile by nature: Redis TTL handles expiry without a
// background sweeper, and a restart of the cache only forces re-login.
type RedisRefreshTokenRepository struct {
	client *redis.Client
}

// NewRefreshTokenRepository creates a new Redis-backed RefreshTokenRepository.
func NewRefreshTokenRepository(client *redis.Client) *RedisRefreshTokenRepository {
	return &RedisRefreshTokenRepository{client: client}
}

/*
Set stores a refresh token with its associated userID and TTL.

Parameters:
  - context: context.Context
  - token: string
  - userID: string
  - ttl: time.Duration

Returns:
  - error: Execution errors
*/
func (repository *RedisRefreshTokenRepository) Set(context context.Context, token, userID string, ttl time.Duration) error {
	key := constants.RedisPrefixRefreshToken + token

	if err := repository.client.Set(context, key, userID, ttl).Err(); err != nil {
		return fmt.Errorf("redis_refresh_token_set_failed: %w", err)
	}

	return nil
}

/*
Get retrieves the userID for a given token.

Description: Returns apperr.Unauthorized if the token is absent or expired.

Parameters:
  - context: context.Context
  - token: string

Returns:
  - string: Original UserID
  - error: apperr.Unauthorized or connectivity errors
*/
func (repository *RedisRefreshTokenRepository) Get(context context.Context, token string) (string, error) {
	key := constants.RedisPrefixRefreshToken + token

	userID, err := repository.client.Get(context, key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", apperr.Unauthorized("Refresh token is invalid or expired")
		}
		return "", fmt.Errorf("redis_refresh_token_get_failed: %w", err)
	}

	return userID, nil
}

/*
Delete removes the token from Redis.

Parameters:
  - context: context.Context
  - token: string

Returns:
  - error: Deletion failures
*/
func (repository *RedisRefreshTokenRepository) Delete(context context.Context, token string) error {
	key := constants.RedisPrefixRefreshToken + token

	if err := repository.client.Del(context, key).Err(); err != nil {
		return fmt.Errorf("redis_refresh_token_delete_failed: %w", err)
	}

	return nil
}
