// Copyright (c) 2026 Pulse. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/pulse/internal/platform/dberr"
)

// PostgresUserRepository implements [UserRepository] using pgx.
type PostgresUserRepository struct {
	db *pgxpool.Pool
}

// NewUserRepository constructs a PostgreSQL backed user store.
func NewUserRepository(db *pgxpool.Pool) *PostgresUserRepository {
	return &PostgresUserRepository{db: db}
}

// userColumns is the canonical scan order for account rows.
const userColumns = `id, username, email, passwordhash, displayname, bio, role, createdat, updatedat`

/*
Create inserts a new account record.

Description: The unique indexes on username and email surface duplicates as
apperr.Conflict via the dberr bridge.

Parameters:
  - context: context.Context
  - user: *User

Returns:
  - error: Persistence failures
*/
func (repository *PostgresUserRepository) Create(context context.Context, user *User) error {
	const query = `
		INSERT INTO account (id, username, email, passwordhash, displayname, bio, role, createdat, updatedat)
		VALUES ($1, $2, $3, $4, $5, $6, $7, NOW(), NOW())
		RETURNING createdat, updatedat
	`
	err := repository.db.QueryRow(context, query,
		user.ID, user.Username, user.Email, user.PasswordHash, user.DisplayName, user.Bio, user.Role,
	).Scan(&user.CreatedAt, &user.UpdatedAt)

	return dberr.Wrap(err, "create_user")
}

/*
FindByID retrieves a single account by primary key.

Parameters:
  - context: context.Context
  - id: string

Returns:
  - *User: Hydrated entity
  - error: Database retrieval failures
*/
func (repository *PostgresUserRepository) FindByID(context context.Context, id string) (*User, error) {
	const query = `SELECT ` + userColumns + ` FROM account WHERE id = $1`
	return repository.scanOne(context, query, id)
}

/*
FindByUsername retrieves a single account by its unique username.

Parameters:
  - context: context.Context
  - username: string

Returns:
  - *User: Hydrated entity
  - error: Database retrieval failures
*/
func (repository *PostgresUserRepository) FindByUsername(context context.Context, username string) (*User, error) {
	const query = `SELECT ` + userColumns + ` FROM account WHERE username = $1`
	return repository.scanOne(context, query, username)
}

/*
FindByLogin retrieves an account matching either username or email.

Parameters:
  - context: context.Context
  - login: string

Returns:
  - *User: Hydrated entity
  - error: Database retrieval failures
*/
func (repository *PostgresUserRepository) FindByLogin(context context.Context, login string) (*User, error) {
	const query = `SELECT ` + userColumns + ` FROM account WHERE username = $1 OR email = $1`
	return repository.scanOne(context, query, login)
}

// scanOne runs a single-row account query and hydrates the entity.
func (repository *PostgresUserRepository) scanOne(context context.Context, query string, arg any) (*User, error) {
	user := &User{}
	err := repository.db.QueryRow(context, query, arg).Scan(
		&user.ID, &user.Username, &user.Email, &user.PasswordHash, &user.DisplayName,
		&user.Bio, &user.Role, &user.CreatedAt, &user.UpdatedAt,
	)
	if err != nil {
		return nil, dberr.Wrap(err, "get_user")
	}
	return user, nil
}
