package store

import (
	"context"
	"errors"
	"time"

	"github.com/aussiebroadwan/pantry/internal/pantry/domain"
	"github.com/shopspring/decimal"
)

var (
	ErrNotFound      = errors.New("store: not found")
	ErrAlreadyExists = errors.New("store: already exists")
)

// Store is the root data access interface. Repositories hang off it as
// methods so that code holding a Tx cannot reach the outer connection by
// accident. Every ingredient and recipe call takes the owning user id and
// treats rows of another user as absent.
type Store interface {
	Users() Users
	Ingredients() Ingredients
	Recipes() Recipes
	AuthTokens() AuthTokens

	ApplyMigrations() error

	// Tx starts a read/write transaction and returns a Tx-scoped Store.
	// The caller MUST call Commit() or Rollback() on the returned Tx.
	Tx(ctx context.Context) (Tx, error)

	// WithTx runs fn in a transaction, committing when fn returns nil and
	// rolling back otherwise.
	WithTx(ctx context.Context, fn func(tx Tx) error) error

	Close() error

	// Ping verifies the database connection is still alive.
	Ping(ctx context.Context) error
}

// Tx is a transactional store. It embeds the same repos but adds Commit/Rollback.
type Tx interface {
	Store
	Commit() error
	Rollback() error
}

type Users interface {
	GetUserByID(ctx context.Context, id string) (domain.User, error)

	// GetUserByEmail expects an already normalized address.
	GetUserByEmail(ctx context.Context, email string) (domain.User, error)

	// ListUsers returns every user ordered by email.
	ListUsers(ctx context.Context) ([]domain.User, error)

	// CreateUser inserts u; ErrAlreadyExists when the email is taken.
	CreateUser(ctx context.Context, u domain.User) error

	// UpdateUser rewrites the mutable columns of u and bumps updated_at.
	// ErrAlreadyExists when the new email is taken.
	UpdateUser(ctx context.Context, u domain.User) error

	UpdateLastLogin(ctx context.Context, userID string, at time.Time) error

	// DeleteUser cascades to ingredients, recipes and tokens.
	DeleteUser(ctx context.Context, userID string) error
}

// IngredientPatch carries the columns an update may change; nil leaves the
// column untouched.
type IngredientPatch struct {
	Name   *string
	Amount *int
}

type Ingredients interface {
	// ListIngredients returns the user's ingredients, newest first.
	ListIngredients(ctx context.Context, userID string) ([]domain.Ingredient, error)

	GetIngredient(ctx context.Context, userID, id string) (domain.Ingredient, error)

	// CreateIngredient inserts ing; ErrAlreadyExists when the user already
	// has an ingredient with that name.
	CreateIngredient(ctx context.Context, ing domain.Ingredient) error

	// GetOrCreateIngredient returns the user's ingredient called ing.Name,
	// inserting ing first when there is none. created reports which happened.
	GetOrCreateIngredient(ctx context.Context, ing domain.Ingredient) (out domain.Ingredient, created bool, err error)

	UpdateIngredient(ctx context.Context, userID, id string, p IngredientPatch) (domain.Ingredient, error)

	DeleteIngredient(ctx context.Context, userID, id string) error

	// CountIngredients returns how many ingredients the user owns.
	CountIngredients(ctx context.Context, userID string) (int, error)

	// ListAllIngredients is the admin view: every user's ingredients ordered
	// by name, with the owner's email.
	ListAllIngredients(ctx context.Context) ([]domain.IngredientWithOwner, error)

	// DeleteIngredientByID removes an ingredient regardless of owner.
	DeleteIngredientByID(ctx context.Context, id string) error
}

// RecipePatch mirrors IngredientPatch for recipes.
type RecipePatch struct {
	Title       *string
	TimeMinutes *int
	Price       *decimal.Decimal
	Description *string
}

type Recipes interface {
	// ListRecipes returns the user's recipes, newest first, with their
	// ingredients loaded.
	ListRecipes(ctx context.Context, userID string) ([]domain.Recipe, error)

	GetRecipe(ctx context.Context, userID, id string) (domain.Recipe, error)

	// CreateRecipe inserts the recipe row only; associations are set with
	// SetRecipeIngredients.
	CreateRecipe(ctx context.Context, r domain.Recipe) error

	UpdateRecipe(ctx context.Context, userID, id string, p RecipePatch) error

	// SetRecipeIngredients replaces the association set of a recipe.
	SetRecipeIngredients(ctx context.Context, userID, recipeID string, ingredientIDs []string) error

	DeleteRecipe(ctx context.Context, userID, id string) error
}

type AuthTokens interface {
	CreateAuthToken(ctx context.Context, t domain.AuthToken) error

	GetAuthTokenByHash(ctx context.Context, keyHash string) (domain.AuthToken, error)

	// DeleteAuthTokenByHash is logout. ErrNotFound when no such token exists.
	DeleteAuthTokenByHash(ctx context.Context, keyHash string) error

	DeleteUserAuthTokens(ctx context.Context, userID string) error

	// DeleteExpiredAuthTokens is housekeeping; it returns the number removed.
	DeleteExpiredAuthTokens(ctx context.Context, now time.Time) (int64, error)
}
