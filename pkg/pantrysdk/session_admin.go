package pantrysdk

import (
	"context"
	"net/http"
	"net/url"
)

// Admin operations. The session's user must be staff; other callers get a
// 403 APIError.

func (s *Session) AdminListUsers(ctx context.Context) (*ListUsersResponse, error) {
	var out ListUsersResponse
	if err := s.getJSON(ctx, "/admin/users", &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *Session) AdminGetUser(ctx context.Context, id string) (*AdminUser, error) {
	var out AdminUser
	if err := s.getJSON(ctx, "/admin/users/"+url.PathEscape(id), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *Session) AdminCreateUser(ctx context.Context, req AdminCreateUserRequest) (*AdminUser, error) {
	var out AdminUser
	if err := s.sendJSON(ctx, http.MethodPost, "/admin/users", req, &out, http.StatusCreated); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *Session) AdminUpdateUser(ctx context.Context, id string, req AdminUpdateUserRequest) (*AdminUser, error) {
	var out AdminUser
	if err := s.sendJSON(ctx, http.MethodPatch, "/admin/users/"+url.PathEscape(id), req, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

// AdminDeleteUser removes an account and everything it owns.
func (s *Session) AdminDeleteUser(ctx context.Context, id string) error {
	return s.delete(ctx, "/admin/users/"+url.PathEscape(id))
}

func (s *Session) AdminListIngredients(ctx context.Context) (*ListIngredientsResponse, error) {
	var out ListIngredientsResponse
	if err := s.getJSON(ctx, "/admin/ingredients", &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *Session) AdminDeleteIngredient(ctx context.Context, id string) error {
	return s.delete(ctx, "/admin/ingredients/"+url.PathEscape(id))
}
