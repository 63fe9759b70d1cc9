package http

import (
	"net/http"

	"github.com/aussiebroadwan/pantry/internal/pantry/domain"
	"github.com/aussiebroadwan/pantry/internal/pantry/service"
	"github.com/aussiebroadwan/pantry/pkg/httpx"
	"github.com/aussiebroadwan/pantry/pkg/pantrysdk"
)

func toAdminUser(u domain.User) pantrysdk.AdminUser {
	return pantrysdk.AdminUser{
		ID:          u.ID,
		Email:       u.Email,
		Name:        u.Name,
		IsActive:    u.IsActive,
		IsStaff:     u.IsStaff,
		IsSuperuser: u.IsSuperuser,
		LastLogin:   u.LastLogin,
		CreatedAt:   u.CreatedAt,
	}
}

// AdminHandler is the staff console. Every route is behind AuthnMiddleware
// and RequireStaff.
type AdminHandler struct {
	AdminService *service.AdminService
}

// HandleListUsers returns every account ordered by email.
//
//	@Summary	List users
//	@Tags		Admin
//	@Produce	json
//	@Success	200	{object}	pantrysdk.ListUsersResponse	"Accounts"
//	@Failure	401	{object}	pantrysdk.ErrorResponse		"Missing or invalid token"
//	@Failure	403	{object}	pantrysdk.ErrorResponse		"Caller is not staff"
//	@Security	TokenAuth
//	@Router		/admin/users [get].
func (h *AdminHandler) HandleListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.AdminService.ListUsers(r.Context())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	resp := pantrysdk.ListUsersResponse{Users: make([]pantrysdk.AdminUser, len(users))}
	for i, u := range users {
		resp.Users[i] = toAdminUser(u)
	}
	httpx.WriteJSON(w, http.StatusOK, resp)
}

// HandleCreateUser adds a regular account.
//
//	@Summary	Create user (admin)
//	@Tags		Admin
//	@Accept		json
//	@Produce	json
//	@Param		request	body		pantrysdk.AdminCreateUserRequest	true	"Account with confirmed password"
//	@Success	201		{object}	pantrysdk.AdminUser					"Created account"
//	@Failure	400		{object}	pantrysdk.ValidationErrorResponse	"Invalid fields or passwords differ"
//	@Failure	403		{object}	pantrysdk.ErrorResponse				"Caller is not staff"
//	@Security	TokenAuth
//	@Router		/admin/users [post].
func (h *AdminHandler) HandleCreateUser(w http.ResponseWriter, r *http.Request) {
	var req pantrysdk.AdminCreateUserRequest
	if !decodeBody(w, r, &req) {
		return
	}

	u, err := h.AdminService.CreateUser(r.Context(), service.AdminUserInput{
		Email:     req.Email,
		Name:      req.Name,
		Password1: req.Password1,
		Password2: req.Password2,
	})
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, toAdminUser(u))
}

// HandleGetUser returns a single account.
//
//	@Summary	Get user (admin)
//	@Tags		Admin
//	@Produce	json
//	@Param		id	path		string					true	"User ID"
//	@Success	200	{object}	pantrysdk.AdminUser		"Account"
//	@Failure	404	{object}	pantrysdk.ErrorResponse	"Unknown user"
//	@Security	TokenAuth
//	@Router		/admin/users/{id} [get].
func (h *AdminHandler) HandleGetUser(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	u, err := h.AdminService.GetUser(r.Context(), id)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toAdminUser(u))
}

// HandleUpdateUser changes any subset of an account's fields. Deactivating
// an account revokes its tokens.
//
//	@Summary	Update user (admin)
//	@Tags		Admin
//	@Accept		json
//	@Produce	json
//	@Param		id		path		string								true	"User ID"
//	@Param		request	body		pantrysdk.AdminUpdateUserRequest	true	"Fields to change"
//	@Success	200		{object}	pantrysdk.AdminUser					"Updated account"
//	@Failure	400		{object}	pantrysdk.ValidationErrorResponse	"Invalid fields"
//	@Failure	404		{object}	pantrysdk.ErrorResponse				"Unknown user"
//	@Security	TokenAuth
//	@Router		/admin/users/{id} [patch].
func (h *AdminHandler) HandleUpdateUser(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	var req pantrysdk.AdminUpdateUserRequest
	if !decodeBody(w, r, &req) {
		return
	}

	u, err := h.AdminService.UpdateUser(r.Context(), id, service.AdminUserPatch{
		Email:       req.Email,
		Name:        req.Name,
		Password:    req.Password,
		IsActive:    req.IsActive,
		IsStaff:     req.IsStaff,
		IsSuperuser: req.IsSuperuser,
	})
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toAdminUser(u))
}

// HandleDeleteUser removes an account and everything it owns.
//
//	@Summary	Delete user (admin)
//	@Tags		Admin
//	@Param		id	path	string	true	"User ID"
//	@Success	204	"Deleted"
//	@Failure	404	{object}	pantrysdk.ErrorResponse	"Unknown user"
//	@Security	TokenAuth
//	@Router		/admin/users/{id} [delete].
func (h *AdminHandler) HandleDeleteUser(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	if err := h.AdminService.DeleteUser(r.Context(), id); err != nil {
		writeServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// HandleListIngredients returns every user's ingredients with the owner's
// email.
//
//	@Summary	List all ingredients
//	@Tags		Admin
//	@Produce	json
//	@Success	200	{object}	pantrysdk.ListIngredientsResponse	"Ingredients of every user"
//	@Failure	403	{object}	pantrysdk.ErrorResponse				"Caller is not staff"
//	@Security	TokenAuth
//	@Router		/admin/ingredients [get].
func (h *AdminHandler) HandleListIngredients(w http.ResponseWriter, r *http.Request) {
	list, err := h.AdminService.ListIngredients(r.Context())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	resp := pantrysdk.ListIngredientsResponse{Ingredients: make([]pantrysdk.AdminIngredient, len(list))}
	for i, ing := range list {
		resp.Ingredients[i] = pantrysdk.AdminIngredient{
			ID:     ing.ID,
			Name:   ing.Name,
			Amount: ing.Amount,
			Owner:  ing.OwnerEmail,
		}
	}
	httpx.WriteJSON(w, http.StatusOK, resp)
}

// HandleDeleteIngredient removes an ingredient regardless of owner.
//
//	@Summary	Delete ingredient (admin)
//	@Tags		Admin
//	@Param		id	path	string	true	"Ingredient ID"
//	@Success	204	"Deleted"
//	@Failure	404	{object}	pantrysdk.ErrorResponse	"Unknown ingredient"
//	@Security	TokenAuth
//	@Router		/admin/ingredients/{id} [delete].
func (h *AdminHandler) HandleDeleteIngredient(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	if err := h.AdminService.DeleteIngredient(r.Context(), id); err != nil {
		writeServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
