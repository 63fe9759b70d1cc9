package pantrysdk

import (
	"context"
	"net/http"
	"net/url"
)

// Session is an authenticated handle bound to one token. It is safe for
// concurrent use; the token never changes after creation.
type Session struct {
	client *SDKClient
	token  string
}

// Token returns the raw token of this session.
func (s *Session) Token() string {
	return s.token
}

// Logout revokes the session's token on the server.
func (s *Session) Logout(ctx context.Context) error {
	return s.client.doNoContent(ctx, http.MethodDelete, "/api/user/token/", s.token)
}

func (s *Session) getJSON(ctx context.Context, path string, out any) error {
	return s.client.doJSON(ctx, http.MethodGet, path, s.token, nil, out, http.StatusOK)
}

func (s *Session) sendJSON(ctx context.Context, method, path string, in, out any, status int) error {
	return s.client.doJSON(ctx, method, path, s.token, in, out, status)
}

func (s *Session) delete(ctx context.Context, path string) error {
	return s.client.doNoContent(ctx, http.MethodDelete, path, s.token)
}

// ============================================================================
// Profile
// ============================================================================

// Me returns the caller's profile.
func (s *Session) Me(ctx context.Context) (*UserResponse, error) {
	var user UserResponse
	if err := s.getJSON(ctx, "/api/user/me/", &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// UpdateMe patches the caller's profile.
func (s *Session) UpdateMe(ctx context.Context, req UpdateMeRequest) (*UserResponse, error) {
	var user UserResponse
	if err := s.sendJSON(ctx, http.MethodPatch, "/api/user/me/", req, &user, http.StatusOK); err != nil {
		return nil, err
	}
	return &user, nil
}

// ReplaceMe replaces the caller's email, name and password at once.
func (s *Session) ReplaceMe(ctx context.Context, req UpdateMeRequest) (*UserResponse, error) {
	var user UserResponse
	if err := s.sendJSON(ctx, http.MethodPut, "/api/user/me/", req, &user, http.StatusOK); err != nil {
		return nil, err
	}
	return &user, nil
}

// ============================================================================
// Ingredients
// ============================================================================

func ingredientPath(id string) string {
	return "/api/ingredients/" + url.PathEscape(id) + "/"
}

// ListIngredients returns the caller's ingredients, newest first.
func (s *Session) ListIngredients(ctx context.Context) ([]Ingredient, error) {
	var out []Ingredient
	if err := s.getJSON(ctx, "/api/ingredients/", &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *Session) GetIngredient(ctx context.Context, id string) (*Ingredient, error) {
	var out Ingredient
	if err := s.getJSON(ctx, ingredientPath(id), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *Session) CreateIngredient(ctx context.Context, req IngredientRequest) (*Ingredient, error) {
	var out Ingredient
	if err := s.sendJSON(ctx, http.MethodPost, "/api/ingredients/", req, &out, http.StatusCreated); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateIngredient sends a full update (PUT).
func (s *Session) UpdateIngredient(ctx context.Context, id string, req IngredientRequest) (*Ingredient, error) {
	var out Ingredient
	if err := s.sendJSON(ctx, http.MethodPut, ingredientPath(id), req, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

// PatchIngredient sends a partial update (PATCH).
func (s *Session) PatchIngredient(ctx context.Context, id string, req IngredientRequest) (*Ingredient, error) {
	var out Ingredient
	if err := s.sendJSON(ctx, http.MethodPatch, ingredientPath(id), req, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *Session) DeleteIngredient(ctx context.Context, id string) error {
	return s.delete(ctx, ingredientPath(id))
}

// ============================================================================
// Recipes
// ============================================================================

func recipePath(id string) string {
	return "/api/recipes/" + url.PathEscape(id) + "/"
}

// ListRecipes returns summaries of the caller's recipes, newest first.
func (s *Session) ListRecipes(ctx context.Context) ([]RecipeSummary, error) {
	var out []RecipeSummary
	if err := s.getJSON(ctx, "/api/recipes/", &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *Session) GetRecipe(ctx context.Context, id string) (*RecipeDetail, error) {
	var out RecipeDetail
	if err := s.getJSON(ctx, recipePath(id), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *Session) CreateRecipe(ctx context.Context, req RecipeRequest) (*RecipeDetail, error) {
	var out RecipeDetail
	if err := s.sendJSON(ctx, http.MethodPost, "/api/recipes/", req, &out, http.StatusCreated); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateRecipe sends a full update (PUT).
func (s *Session) UpdateRecipe(ctx context.Context, id string, req RecipeRequest) (*RecipeDetail, error) {
	var out RecipeDetail
	if err := s.sendJSON(ctx, http.MethodPut, recipePath(id), req, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

// PatchRecipe sends a partial update (PATCH).
func (s *Session) PatchRecipe(ctx context.Context, id string, req RecipeRequest) (*RecipeDetail, error) {
	var out RecipeDetail
	if err := s.sendJSON(ctx, http.MethodPatch, recipePath(id), req, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *Session) DeleteRecipe(ctx context.Context, id string) error {
	return s.delete(ctx, recipePath(id))
}
