package http

import (
	"errors"
	"net/http"

	"github.com/aussiebroadwan/pantry/internal/pantry/domain"
	"github.com/aussiebroadwan/pantry/internal/pantry/service"
	"github.com/aussiebroadwan/pantry/pkg/httpx"
	"github.com/aussiebroadwan/pantry/pkg/pantrysdk"
)

func toUserResponse(u domain.User) pantrysdk.UserResponse {
	return pantrysdk.UserResponse{Email: u.Email, Name: u.Name}
}

type CreateUserHandler struct {
	UserService *service.UserService
}

// ServeHTTP registers a new account.
//
//	@Summary		Create user
//	@Description	Registers a new account. The email is the login identifier; its domain part is lowercased.
//	@Tags			User
//	@Accept			json
//	@Produce		json
//	@Param			request	body		pantrysdk.CreateUserRequest		true	"New account"
//	@Success		201		{object}	pantrysdk.UserResponse			"Created account"
//	@Failure		400		{object}	pantrysdk.ValidationErrorResponse	"Duplicate email, short password or missing fields"
//	@Failure		429		{object}	pantrysdk.ErrorResponse			"Rate limit exceeded"
//	@Router			/api/user/create/ [post].
func (h *CreateUserHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var req pantrysdk.CreateUserRequest
	if !decodeBody(w, r, &req) {
		return
	}

	u, err := h.UserService.CreateUser(r.Context(), req.Email, req.Name, req.Password)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusCreated, toUserResponse(u))
}

type TokenHandler struct {
	TokenService *service.TokenService
}

// HandleCreate exchanges credentials for a token.
//
//	@Summary		Obtain token
//	@Description	Exchanges email and password for an opaque token. Send it as "Authorization: Token {token}".
//	@Tags			User
//	@Accept			json
//	@Produce		json
//	@Param			request	body		pantrysdk.TokenRequest				true	"Credentials"
//	@Success		200		{object}	pantrysdk.TokenResponse				"Token"
//	@Failure		400		{object}	pantrysdk.ErrorResponse				"Invalid credentials"
//	@Failure		429		{object}	pantrysdk.ErrorResponse				"Rate limit exceeded"
//	@Router			/api/user/token/ [post].
func (h *TokenHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var req pantrysdk.TokenRequest
	if !decodeBody(w, r, &req) {
		return
	}

	token, err := h.TokenService.Issue(r.Context(), req.Email, req.Password)
	if errors.Is(err, service.ErrAuthentication) {
		pantrysdk.ErrInvalidCredentials.WriteError(w)
		return
	}
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, pantrysdk.TokenResponse{Token: token})
}

// HandleDelete revokes the token presented on the request.
//
//	@Summary		Revoke token
//	@Description	Logs out by deleting the token used to authenticate this request.
//	@Tags			User
//	@Success		204	"Token revoked"
//	@Failure		401	{object}	pantrysdk.ErrorResponse	"Missing or invalid token"
//	@Security		TokenAuth
//	@Router			/api/user/token/ [delete].
func (h *TokenHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	raw, err := httpx.TokenFromRequest(r)
	if err != nil {
		pantrysdk.ErrNotAuthenticated.WriteError(w)
		return
	}

	if err := h.TokenService.Revoke(r.Context(), raw); err != nil {
		writeServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type MeHandler struct {
	UserService *service.UserService
}

// HandleGet returns the caller's profile.
//
//	@Summary		Get profile
//	@Tags			User
//	@Produce		json
//	@Success		200	{object}	pantrysdk.UserResponse	"Profile"
//	@Failure		401	{object}	pantrysdk.ErrorResponse	"Missing or invalid token"
//	@Security		TokenAuth
//	@Router			/api/user/me/ [get].
func (h *MeHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	u, err := h.UserService.GetUserByID(r.Context(), httpx.UserIDFromContext(r.Context()))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toUserResponse(u))
}

// HandlePut replaces the caller's email, name and password.
//
//	@Summary		Replace profile
//	@Tags			User
//	@Accept			json
//	@Produce		json
//	@Param			request	body		pantrysdk.UpdateMeRequest			true	"All profile fields"
//	@Success		200		{object}	pantrysdk.UserResponse				"Updated profile"
//	@Failure		400		{object}	pantrysdk.ValidationErrorResponse	"Missing or invalid fields"
//	@Failure		401		{object}	pantrysdk.ErrorResponse				"Missing or invalid token"
//	@Security		TokenAuth
//	@Router			/api/user/me/ [put].
func (h *MeHandler) HandlePut(w http.ResponseWriter, r *http.Request) {
	h.update(w, r, false)
}

// HandlePatch updates the supplied profile fields.
//
//	@Summary		Update profile
//	@Tags			User
//	@Accept			json
//	@Produce		json
//	@Param			request	body		pantrysdk.UpdateMeRequest			true	"Fields to change"
//	@Success		200		{object}	pantrysdk.UserResponse				"Updated profile"
//	@Failure		400		{object}	pantrysdk.ValidationErrorResponse	"Invalid fields"
//	@Failure		401		{object}	pantrysdk.ErrorResponse				"Missing or invalid token"
//	@Security		TokenAuth
//	@Router			/api/user/me/ [patch].
func (h *MeHandler) HandlePatch(w http.ResponseWriter, r *http.Request) {
	h.update(w, r, true)
}

func (h *MeHandler) update(w http.ResponseWriter, r *http.Request, partial bool) {
	var req pantrysdk.UpdateMeRequest
	if !decodeBody(w, r, &req) {
		return
	}

	u, err := h.UserService.UpdateProfile(r.Context(), httpx.UserIDFromContext(r.Context()), service.ProfileUpdate{
		Email:    req.Email,
		Name:     req.Name,
		Password: req.Password,
	}, partial)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toUserResponse(u))
}
