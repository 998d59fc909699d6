// Copyright (c) 2026 Pulse. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth_test

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/pulse/internal/platform/apperr"
	"github.com/taibuivan/pulse/internal/users/auth"
)

// # Test Doubles

// fakeUserRepository is an in-memory UserRepository with the same uniqueness
// rules as the account table.
type fakeUserRepository struct {
	byID map[string]*auth.User
}

func newFakeUserRepository() *fakeUserRepository {
	return &fakeUserRepository{byID: make(map[string]*auth.User)}
}

func (repository *fakeUserRepository) Create(_ context.Context, user *auth.User) error {
	for _, existing := range repository.byID {
		if existing.Username == user.Username || existing.Email == user.Email {
			return apperr.Conflict("Username or email already taken")
		}
	}
	repository.byID[user.ID] = user
	return nil
}

func (repository *fakeUserRepository) FindByID(_ context.Context, id string) (*auth.User, error) {
	user, exists := repository.byID[id]
	if !exists {
		return nil, apperr.NotFound("User")
	}
	return user, nil
}

func (repository *fakeUserRepository) FindByUsername(_ context.Context, username string) (*auth.User, error) {
	for _, user := range repository.byID {
		if user.Username == username {
			return user, nil
		}
	}
	return nil, apperr.NotFound("User")
}

func (repository *fakeUserRepository) FindByLogin(_ context.Context, login string) (*auth.User, error) {
	for _, user := range repository.byID {
		if user.Username == login || user.Email == login {
			return user, nil
		}
	}
	return nil, apperr.NotFound("User")
}

// fakeRefreshTokenRepository is an in-memory RefreshTokenRepository.
type fakeRefreshTokenRepository struct {
	tokens map[string]string
}

func newFakeRefreshTokenRepository() *fakeRefreshTokenRepository {
	return &fakeRefreshTokenRepository{tokens: make(map[string]string)}
}

func (repository *fakeRefreshTokenRepository) Set(_ context.Context, token, userID string, _ time.Duration) error {
	repository.tokens[token] = userID
	return nil
}

func (repository *fakeRefreshTokenRepository) Get(_ context.Context, token string) (string, error) {
	userID, exists := repository.tokens[token]
	if !exists {
		return "", apperr.Unauthorized("Invalid or expired refresh token")
	}
	return userID, nil
}

func (repository *fakeRefreshTokenRepository) Delete(_ context.Context, token string) error {
	delete(repository.tokens, token)
	return nil
}

// fakeTokenProvider issues predictable access tokens.
type fakeTokenProvider struct {
	issued int
}

func (provider *fakeTokenProvider) GenerateAccessToken(userID, _, _ string, _ time.Duration) (string, error) {
	provider.issued++
	return fmt.Sprintf("access-%s-%d", userID, provider.issued), nil
}

type fixture struct {
	service  *auth.Service
	users    *fakeUserRepository
	refresh  *fakeRefreshTokenRepository
	provider *fakeTokenProvider
}

func newFixture() *fixture {
	users := newFakeUserRepository()
	refresh := newFakeRefreshTokenRepository()
	provider := &fakeTokenProvider{}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	return &fixture{
		service:  auth.NewService(users, refresh, provider, logger),
		users:    users,
		refresh:  refresh,
		provider: provider,
	}
}

func registerAlice(t *testing.T, f *fixture) *auth.User {
	t.Helper()
	user, err := f.service.Register(context.Background(), auth.RegisterInput{
		Username: "alice",
		Email:    "alice@example.com",
		Password: "correct-horse",
	})
	require.NoError(t, err)
	return user
}

// # Registration

/*
TestService_Register covers field validation and password hashing.
*/
func TestService_Register(t *testing.T) {
	tests := []struct {
		name     string
		input    auth.RegisterInput
		wantCode string
	}{
		{
			name:  "valid",
			input: auth.RegisterInput{Username: "alice", Email: "alice@example.com", Password: "correct-horse"},
		},
		{
			name:     "short_username",
			input:    auth.RegisterInput{Username: "al", Email: "alice@example.com", Password: "correct-horse"},
			wantCode: "VALIDATION_ERROR",
		},
		{
			name:     "uppercase_username",
			input:    auth.RegisterInput{Username: "Alice", Email: "alice@example.com", Password: "correct-horse"},
			wantCode: "VALIDATION_ERROR",
		},
		{
			name:     "bad_email",
			input:    auth.RegisterInput{Username: "alice", Email: "not-an-email", Password: "correct-horse"},
			wantCode: "VALIDATION_ERROR",
		},
		{
			name:     "short_password",
			input:    auth.RegisterInput{Username: "alice", Email: "alice@example.com", Password: "short"},
			wantCode: "VALIDATION_ERROR",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture()

			user, err := f.service.Register(context.Background(), tt.input)

			if tt.wantCode != "" {
				require.Error(t, err)
				assert.Equal(t, tt.wantCode, apperr.As(err).Code)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.input.Username, user.Username)
			assert.NotEmpty(t, user.PasswordHash)
			assert.NotEqual(t, tt.input.Password, user.PasswordHash)
		})
	}
}

/*
TestService_Register_DuplicateUsername verifies the storage conflict surfaces
unchanged.
*/
func TestService_Register_DuplicateUsername(t *testing.T) {
	f := newFixture()
	registerAlice(t, f)

	_, err := f.service.Register(context.Background(), auth.RegisterInput{
		Username: "alice",
		Email:    "other@example.com",
		Password: "correct-horse",
	})

	require.Error(t, err)
	assert.Equal(t, "CONFLICT", apperr.As(err).Code)
}

// # Login

/*
TestService_Login covers username and email login plus the indistinguishable
failure modes.
*/
func TestService_Login(t *testing.T) {
	tests := []struct {
		name     string
		login    string
		password string
		wantOK   bool
	}{
		{"by_username", "alice", "correct-horse", true},
		{"by_email", "alice@example.com", "correct-horse", true},
		{"wrong_password", "alice", "wrong", false},
		{"unknown_user", "nobody", "correct-horse", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture()
			registerAlice(t, f)

			user, pair, err := f.service.Login(context.Background(), tt.login, tt.password)

			if !tt.wantOK {
				require.Error(t, err)
				appError := apperr.As(err)
				require.NotNil(t, appError)
				assert.Equal(t, "UNAUTHORIZED", appError.Code)
				// Unknown user and wrong password must be indistinguishable.
				assert.Equal(t, "Invalid login or password", appError.Message)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, "alice", user.Username)
			assert.NotEmpty(t, pair.AccessToken)
			assert.NotEmpty(t, pair.RefreshToken)
			assert.Equal(t, "Bearer", pair.TokenType)
		})
	}
}

// # Token Rotation

/*
TestService_Refresh_SingleUse verifies that a refresh token is redeemable
exactly once.
*/
func TestService_Refresh_SingleUse(t *testing.T) {
	f := newFixture()
	registerAlice(t, f)

	_, pair, err := f.service.Login(context.Background(), "alice", "correct-horse")
	require.NoError(t, err)

	rotated, err := f.service.Refresh(context.Background(), pair.RefreshToken)
	require.NoError(t, err)
	assert.NotEqual(t, pair.RefreshToken, rotated.RefreshToken)

	// Redeeming the original token again must fail.
	_, err = f.service.Refresh(context.Background(), pair.RefreshToken)
	require.Error(t, err)
	assert.Equal(t, "UNAUTHORIZED", apperr.As(err).Code)
}

/*
TestService_Logout verifies revocation and that revoking twice is harmless.
*/
func TestService_Logout(t *testing.T) {
	f := newFixture()
	registerAlice(t, f)

	_, pair, err := f.service.Login(context.Background(), "alice", "correct-horse")
	require.NoError(t, err)

	require.NoError(t, f.service.Logout(context.Background(), pair.RefreshToken))

	_, err = f.service.Refresh(context.Background(), pair.RefreshToken)
	require.Error(t, err)

	require.NoError(t, f.service.Logout(context.Background(), pair.RefreshToken))
}
