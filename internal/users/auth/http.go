// Copyright (c) 2026 Pulse. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	requestutil "github.com/taibuivan/pulse/internal/platform/request"
	"github.com/taibuivan/pulse/internal/platform/respond"
)

// # Handler Implementation

// Handler implements the HTTP layer for authentication operations.
type Handler struct {
	service *Service
}

// NewHandler constructs a new auth [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns a [chi.Router] configured with authentication endpoints.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Post("/register", handler.register)
	router.Post("/login", handler.login)
	router.Post("/refresh", handler.refresh)
	router.Post("/logout", handler.logout)
	router.Get("/me", handler.me)

	return router
}

// # Endpoints

/*
POST /api/v1/auth/register.

Description: Enrolls a new member and returns the created account.

Request (Body):
  - { "username", "email", "password", "display_name" }

Response:
  - 201: User: Created account
  - 400: ErrInvalidJSON/Validation: Invalid input data
  - 409: ErrConflict: Username or email already taken
*/
func (handler *Handler) register(writer http.ResponseWriter, request *http.Request) {
	var input struct {
		Username    string `json:"username"`
		Email       string `json:"email"`
		Password    string `json:"password"`
		DisplayName string `json:"display_name"`
	}
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	user, err := handler.service.Register(request.Context(), RegisterInput{
		Username:    input.Username,
		Email:       input.Email,
		Password:    input.Password,
		DisplayName: input.DisplayName,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, user)
}

/*
POST /api/v1/auth/login.

Description: Authenticates with username-or-email plus password and returns
an access/refresh token pair alongside the account.

Request (Body):
  - { "login", "password" }

Response:
  - 200: { user, access_token, refresh_token, token_type, expires_in }
  - 401: ErrUnauthorized: Invalid credentials
*/
func (handler *Handler) login(writer http.ResponseWriter, request *http.Request) {
	var input struct {
		Login    string `json:"login"`
		Password string `json:"password"`
	}
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	user, pair, err := handler.service.Login(request.Context(), input.Login, input.Password)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, map[string]any{
		FieldUser:         user,
		FieldAccessToken:  pair.AccessToken,
		FieldRefreshToken: pair.RefreshToken,
		FieldTokenType:    pair.TokenType,
		FieldExpiresIn:    pair.ExpiresIn,
	})
}

/*
POST /api/v1/auth/refresh.

Description: Rotates a refresh token. The presented token is consumed.

Request (Body):
  - { "refresh_token" }

Response:
  - 200: TokenPair: Fresh credentials
  - 401: ErrUnauthorized: Unknown or expired token
*/
func (handler *Handler) refresh(writer http.ResponseWriter, request *http.Request) {
	var input struct {
		RefreshToken string `json:"refresh_token"`
	}
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	pair, err := handler.service.Refresh(request.Context(), input.RefreshToken)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, pair)
}

/*
POST /api/v1/auth/logout.

Description: Revokes a refresh token. Idempotent.

Request (Body):
  - { "refresh_token" }

Response:
  - 204: No Content
*/
func (handler *Handler) logout(writer http.ResponseWriter, request *http.Request) {
	var input struct {
		RefreshToken string `json:"refresh_token"`
	}
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.Logout(request.Context(), input.RefreshToken); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}

/*
GET /api/v1/auth/me.

Description: Returns the account belonging to the presented access token.

Response:
  - 200: User
  - 401: ErrUnauthorized: Authentication required
*/
func (handler *Handler) me(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	user, err := handler.service.GetMe(request.Context(), userID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, user)
}
