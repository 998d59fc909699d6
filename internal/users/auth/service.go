// Copyright (c) 2026 Pulse. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"log/slog"
	"time"

	"github.com/taibuivan/pulse/internal/platform/apperr"
	"github.com/taibuivan/pulse/internal/platform/constants"
	"github.com/taibuivan/pulse/internal/platform/sec"
	"github.com/taibuivan/pulse/internal/platform/validate"
	"github.com/taibuivan/pulse/pkg/uuid"
)

// # Contracts & Types

// TokenProvider defines the contract for generating security tokens.
type TokenProvider interface {
	// GenerateAccessToken creates a signed JWT string for the given user.
	//
	// # Parameters
	//   - userID: The ID of the account.
	//   - username: The username of the account.
	//   - role: The role of the account.
	//   - timeToLive: The duration before the token expires.
	//
	// # Returns
	//   - A signed JWT string, or an err if signing fails.
	GenerateAccessToken(userID, username, role string, timeToLive time.Duration) (string, error)
}

// Service implements user authentication use cases.
type Service struct {
	userRepository         UserRepository
	refreshTokenRepository RefreshTokenRepository
	tokenProvider          TokenProvider
	logger                 *slog.Logger
}

// NewService constructs a new auth [Service] with necessary dependencies.
func NewService(
	userRepo UserRepository,
	refreshRepo RefreshTokenRepository,
	tokenProv TokenProvider,
	logger *slog.Logger,
) *Service {
	return &Service{
		userRepository:         userRepo,
		refreshTokenRepository: refreshRepo,
		tokenProvider:          tokenProv,
		logger:                 logger,
	}
}

// # Registration Flow

// RegisterInput holds the data required to enroll a new member.
type RegisterInput struct {
	Username    string
	Email       string
	Password    string
	DisplayName string
}

/*
Register validates, hashes, and persists a brand new user account.

Parameters:
  - context: context.Context
  - input: RegisterInput

Returns:
  - *User: Created entity
  - error: Validation, conflict, or persistence failures
*/
func (service *Service) Register(context context.Context, input RegisterInput) (*User, error) {
	validator := &validate.Validator{}
	validator.
		Required(FieldUsername, input.Username).
		MinLen(FieldUsername, input.Username, 3).
		MaxLen(FieldUsername, input.Username, 30).
		Slug(FieldUsername, input.Username).
		Email(FieldEmail, input.Email).
		MinLen(FieldPassword, input.Password, 8).
		MaxLen(FieldDisplayName, input.DisplayName, 100)

	if err := validator.Err(); err != nil {
		return nil, err
	}

	passwordHash, err := sec.HashPassword(input.Password)
	if err != nil {
		return nil, apperr.Internal(err)
	}

	user := &User{
		ID:           uuid.New(),
		Username:     input.Username,
		Email:        input.Email,
		PasswordHash: passwordHash,
		DisplayName:  input.DisplayName,
		Role:         sec.RoleMember,
	}

	if err := service.userRepository.Create(context, user); err != nil {
		return nil, err
	}

	service.logger.Info("user_registered",
		slog.String("user_id", user.ID),
		slog.String("username", user.Username),
	)

	return user, nil
}

// # Login Flow

// TokenPair bundles the credentials issued on successful authentication.
type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	TokenType    string `json:"token_type"`
	ExpiresIn    int    `json:"expires_in"` // Seconds until the access token expires.
}

/*
Login verifies credentials and issues an access/refresh token pair.

Description: The login identifier may be a username or an email address.
Credential failures are deliberately indistinguishable (same message for
unknown user and wrong password).

Parameters:
  - context: context.Context
  - login: string
  - password: string

Returns:
  - *User: Authenticated entity
  - *TokenPair: Issued credentials
  - error: apperr.Unauthorized on bad credentials
*/
func (service *Service) Login(context context.Context, login, password string) (*User, *TokenPair, error) {
	user, err := service.userRepository.FindByLogin(context, login)
	if err != nil {
		return nil, nil, apperr.Unauthorized("Invalid login or password")
	}

	if !sec.CheckPasswordHash(password, user.PasswordHash) {
		return nil, nil, apperr.Unauthorized("Invalid login or password")
	}

	pair, err := service.issueTokens(context, user)
	if err != nil {
		return nil, nil, err
	}

	service.logger.Info("user_logged_in", slog.String("user_id", user.ID))

	return user, pair, nil
}

/*
Refresh rotates a refresh token and issues a fresh token pair.

Description: The presented token is deleted before a new one is stored, so a
token can be redeemed exactly once.

Parameters:
  - context: context.Context
  - refreshToken: string

Returns:
  - *TokenPair: New credentials
  - error: apperr.Unauthorized if the token is unknown or expired
*/
func (service *Service) Refresh(context context.Context, refreshToken string) (*TokenPair, error) {
	userID, err := service.refreshTokenRepository.Get(context, refreshToken)
	if err != nil {
		return nil, err
	}

	if err := service.refreshTokenRepository.Delete(context, refreshToken); err != nil {
		return nil, apperr.Internal(err)
	}

	user, err := service.userRepository.FindByID(context, userID)
	if err != nil {
		return nil, apperr.Unauthorized("Account no longer exists")
	}

	return service.issueTokens(context, user)
}

/*
Logout revokes a refresh token. Revoking an unknown token is a no-op.

Parameters:
  - context: context.Context
  - refreshToken: string

Returns:
  - error: Storage failures
*/
func (service *Service) Logout(context context.Context, refreshToken string) error {
	return service.refreshTokenRepository.Delete(context, refreshToken)
}

// # Identity Lookups

// GetMe retrieves the full account of the authenticated user.
func (service *Service) GetMe(context context.Context, userID string) (*User, error) {
	return service.userRepository.FindByID(context, userID)
}

// GetByUsername resolves a public profile identity.
func (service *Service) GetByUsername(context context.Context, username string) (*User, error) {
	return service.userRepository.FindByUsername(context, username)
}

// issueTokens signs an access token and stores a fresh refresh token.
func (service *Service) issueTokens(context context.Context, user *User) (*TokenPair, error) {
	accessToken, err := service.tokenProvider.GenerateAccessToken(
		user.ID, user.Username, string(user.Role), constants.AccessTokenTTL,
	)
	if err != nil {
		return nil, apperr.Internal(err)
	}

	refreshToken, err := newRefreshToken()
	if err != nil {
		return nil, apperr.Internal(err)
	}

	if err := service.refreshTokenRepository.Set(context, refreshToken, user.ID, constants.RefreshTokenTTL); err != nil {
		return nil, apperr.Internal(err)
	}

	return &TokenPair{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		TokenType:    "Bearer",
		ExpiresIn:    int(constants.AccessTokenTTL.Seconds()),
	}, nil
}

// newRefreshToken generates a 256-bit opaque token, hex encoded.
func newRefreshToken() (string, error) {
	raw := make([]byte, 32)
	if _, err := rand.Read(raw); err != nil {
		return "", fmt.Errorf("auth: failed to generate refresh token: %w", err)
	}
	return hex.EncodeToString(raw), nil
}
