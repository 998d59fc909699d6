// Copyright (c) 2026 Pulse. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package auth implements the user identity layer for Pulse.

It defines the core [User] entity and the registration/login/refresh flows.
Every mutation and social operation elsewhere in the system receives an
explicit acting user ID resolved by this package's middleware integration —
there is no ambient "current user" state.

# Architecture

  - Service: Orchestrates business logic (Register, Login, Refresh).
  - Repository: Abstracted interfaces for Postgres (users) and Redis (refresh tokens).
  - Security: Bcrypt password hashing and RSA-signed JWTs via platform/sec.
*/
package auth

import (
	"context"
	"time"

	"github.com/taibuivan/pulse/internal/platform/sec"
)

// # Domain Entities

// User represents a registered member of the Pulse platform.
type User struct {
	ID           string       `json:"id"` // UUIDv7
	Username     string       `json:"username"`
	Email        string       `json:"email"`
	PasswordHash string       `json:"-"` // Explicitly omitted from JSON for security.
	DisplayName  string       `json:"display_name,omitempty"`
	Bio          string       `json:"bio,omitempty"`
	Role         sec.UserRole `json:"role"`
	CreatedAt    time.Time    `json:"created_at"`
	UpdatedAt    time.Time    `json:"updated_at"`
}

// # Field Identifiers

const (
	FieldUsername     = "username"
	FieldEmail        = "email"
	FieldPassword     = "password"
	FieldDisplayName  = "display_name"
	FieldLogin        = "login"
	FieldAccessToken  = "access_token"
	FieldRefreshToken = "refresh_token"
	FieldTokenType    = "token_type"
	FieldExpiresIn    = "expires_in"
	FieldUser         = "user"
	FieldMessage      = "message"
)

// # Repository Contracts

// UserRepository defines the persistence contract for user accounts.
type UserRepository interface {

	/*
		Create persists a new user account.

		Parameters:
		  - context: context.Context
		  - user: *User

		Returns:
		  - error: apperr.Conflict on duplicate username/email, or storage failures
	*/
	Create(context context.Context, user *User) error

	/*
		FindByID retrieves a user by their UUID.

		Parameters:
		  - context: context.Context
		  - id: string (UUIDv7)

		Returns:
		  - *User: Hydrated entity
		  - error: apperr.NotFound if missing
	*/
	FindByID(context context.Context, id string) (*User, error)

	/*
		FindByUsername retrieves a user by their unique username.

		Parameters:
		  - context: context.Context
		  - username: string

		Returns:
		  - *User: Hydrated entity
		  - error: apperr.NotFound if missing
	*/
	FindByUsername(context context.Context, username string) (*User, error)

	/*
		FindByLogin retrieves a user by username OR email.

		Used by the login flow so members can authenticate with either identifier.

		Parameters:
		  - context: context.Context
		  - login: string

		Returns:
		  - *User: Hydrated entity
		  - error: apperr.NotFound if missing
	*/
	FindByLogin(context context.Context, login string) (*User, error)
}

// RefreshTokenRepository defines the volatile storage contract for refresh tokens.
//
// Tokens are opaque random strings mapped to a user ID with a TTL; rotation
// deletes the old token before issuing a new one.
type RefreshTokenRepository interface {

	// Set stores a refresh token for a user with the given TTL.
	Set(context context.Context, token, userID string, ttl time.Duration) error

	// Get resolves a refresh token to its user ID.
	// Returns apperr.Unauthorized if the token is absent or expired.
	Get(context context.Context, token string) (string, error)

	// Delete removes a refresh token (logout or rotation).
	Delete(context context.Context, token string) error
}
