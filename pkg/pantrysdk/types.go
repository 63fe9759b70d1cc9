package pantrysdk

import (
	"bytes"
	"encoding/json"
	"errors"
	"time"
)

// ============================================================================
// Error Types
// ============================================================================

// ErrorResponse is the body of every non-validation error.
// Client code should use the APIError type from errors.go instead.
type ErrorResponse struct {
	// Error is the machine readable code (e.g. "not_found", "not_authenticated")
	Error string `json:"error"`

	// ErrorDescription is a human-readable description of the error
	ErrorDescription string `json:"error_description"`
}

// ValidationErrorResponse is returned with 400 when request fields fail
// validation.
type ValidationErrorResponse struct {
	// Code is always "validation_error"
	Code string `json:"code"`

	// Message is a human-readable summary
	Message string `json:"message"`

	// Details maps field names to the reason they were rejected. Nested
	// recipe ingredients use keys such as "ingredients.0.name". An explicit
	// null is rejected rather than treated as an omitted field.
	Details map[string]string `json:"details,omitempty"`
}

// ============================================================================
// User Types
// ============================================================================

// CreateUserRequest is the body of POST /api/user/create/.
type CreateUserRequest struct {
	Email    string `json:"email"`
	Name     string `json:"name"`
	Password string `json:"password"`
}

// UserResponse is the public view of an account. The password is never
// returned.
type UserResponse struct {
	Email string `json:"email"`
	Name  string `json:"name"`
}

// UpdateMeRequest is the body of PUT and PATCH /api/user/me/. Omitted
// fields are left untouched by PATCH and rejected as missing by PUT.
type UpdateMeRequest struct {
	Email    *string `json:"email,omitempty"`
	Name     *string `json:"name,omitempty"`
	Password *string `json:"password,omitempty"`
}

// ============================================================================
// Token Types
// ============================================================================

// TokenRequest is the body of POST /api/user/token/.
type TokenRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// TokenResponse carries the opaque token to send as
// "Authorization: Token <token>".
type TokenResponse struct {
	Token string `json:"token"`
}

// ============================================================================
// Ingredient Types
// ============================================================================

// IngredientRequest is the body of ingredient create and update calls.
type IngredientRequest struct {
	Name   *string `json:"name,omitempty"`
	Amount *int    `json:"amount,omitempty"`
}

// Ingredient is an ingredient as returned by the API.
type Ingredient struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Amount int    `json:"amount"`
}

// ============================================================================
// Recipe Types
// ============================================================================

// ErrInvalidPrice is returned while decoding a price that is neither a JSON
// string nor a JSON number.
var ErrInvalidPrice = errors.New("price must be a string or a number")

// Price is a fixed-point decimal rendered as a string such as "5.50". It
// also accepts a bare JSON number on input.
type Price string

// UnmarshalJSON accepts "5.50" as well as 5.5.
func (p *Price) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return ErrInvalidPrice
		}
		*p = Price(s)
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return ErrInvalidPrice
	}
	*p = Price(n.String())
	return nil
}

// NestedIngredient names an ingredient inside a recipe request. A
// matching ingredient of the caller is reused; otherwise one is created
// with Amount (default 1).
type NestedIngredient struct {
	Name   string `json:"name"`
	Amount *int   `json:"amount,omitempty"`
}

// RecipeRequest is the body of recipe create and update calls. Any "user"
// field sent by a client is ignored.
type RecipeRequest struct {
	Title       *string             `json:"title,omitempty"`
	TimeMinutes *int                `json:"time_minutes,omitempty"`
	Price       *Price              `json:"price,omitempty"`
	Description *string             `json:"description,omitempty"`
	Ingredients *[]NestedIngredient `json:"ingredients,omitempty"`
}

// RecipeSummary is the list view of a recipe.
type RecipeSummary struct {
	ID          string       `json:"id"`
	Title       string       `json:"title"`
	TimeMinutes int          `json:"time_minutes"`
	Price       Price        `json:"price"`
	Ingredients []Ingredient `json:"ingredients"`
}

// RecipeDetail is the summary plus the description, returned by detail,
// create and update calls.
type RecipeDetail struct {
	RecipeSummary
	Description string `json:"description"`
}

// ============================================================================
// Admin Types
// ============================================================================

// AdminUser is the console view of an account.
type AdminUser struct {
	ID          string     `json:"id"`
	Email       string     `json:"email"`
	Name        string     `json:"name"`
	IsActive    bool       `json:"is_active"`
	IsStaff     bool       `json:"is_staff"`
	IsSuperuser bool       `json:"is_superuser"`
	LastLogin   *time.Time `json:"last_login"`
	CreatedAt   time.Time  `json:"created_at"`
}

// ListUsersResponse is returned from GET /admin/users.
type ListUsersResponse struct {
	Users []AdminUser `json:"users"`
}

// AdminCreateUserRequest is the "add user" form.
type AdminCreateUserRequest struct {
	Email     string `json:"email"`
	Name      string `json:"name"`
	Password1 string `json:"password1"`
	Password2 string `json:"password2"`
}

// AdminUpdateUserRequest changes any subset of an account's fields.
type AdminUpdateUserRequest struct {
	Email       *string `json:"email,omitempty"`
	Name        *string `json:"name,omitempty"`
	Password    *string `json:"password,omitempty"`
	IsActive    *bool   `json:"is_active,omitempty"`
	IsStaff     *bool   `json:"is_staff,omitempty"`
	IsSuperuser *bool   `json:"is_superuser,omitempty"`
}

// AdminIngredient is an ingredient with its owner's email.
type AdminIngredient struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Amount int    `json:"amount"`
	Owner  string `json:"owner"`
}

// ListIngredientsResponse is returned from GET /admin/ingredients.
type ListIngredientsResponse struct {
	Ingredients []AdminIngredient `json:"ingredients"`
}

// ============================================================================
// Health Types
// ============================================================================

// HealthResponse is returned from /livez and /readyz.
type HealthResponse struct {
	Status  string        `json:"status"`
	Uptime  string        `json:"uptime"`
	Version string        `json:"version"`
	Checks  *HealthChecks `json:"checks,omitempty"`
}

// HealthChecks reports each dependency checked by /readyz.
type HealthChecks struct {
	Database string `json:"database"`
}
