package sqlite_test

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/aussiebroadwan/pantry/internal/pantry/domain"
	"github.com/aussiebroadwan/pantry/internal/pantry/store"
	"github.com/aussiebroadwan/pantry/internal/pantry/store/drivers/sqlite"
	"github.com/aussiebroadwan/pantry/pkg/idx"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *sqlite.Store {
	t.Helper()

	s, err := sqlite.NewStore(sqlite.FileDSN(filepath.Join(t.TempDir(), "pantry.db")))
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	require.NoError(t, s.ApplyMigrations())
	return s
}

func createUser(t *testing.T, s store.Store, email string) domain.User {
	t.Helper()

	u := domain.User{
		ID:           idx.New().String(),
		Email:        email,
		Name:         "Test User",
		PasswordHash: "$argon2id$dummy",
		IsActive:     true,
	}
	require.NoError(t, s.Users().CreateUser(t.Context(), u))
	return u
}

func createIngredient(t *testing.T, s store.Store, userID, name string, amount int) domain.Ingredient {
	t.Helper()

	ing := domain.Ingredient{ID: idx.New().String(), UserID: userID, Name: name, Amount: amount}
	require.NoError(t, s.Ingredients().CreateIngredient(t.Context(), ing))
	return ing
}

func TestApplyMigrations_Idempotent(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, s.ApplyMigrations())

	version, dirty, err := s.SchemaVersion()
	require.NoError(t, err)
	require.False(t, dirty)
	require.EqualValues(t, 4, version)
}

func TestMemoryDSN(t *testing.T) {
	s, err := sqlite.NewStore(sqlite.MemoryDSN())
	require.NoError(t, err)
	defer s.Close()

	require.NoError(t, s.ApplyMigrations())
	createUser(t, s, "mem@example.com")

	users, err := s.Users().ListUsers(t.Context())
	require.NoError(t, err)
	require.Len(t, users, 1)
}

func TestUsers(t *testing.T) {
	s := newTestStore(t)
	ctx := t.Context()

	u := createUser(t, s, "zed@example.com")
	createUser(t, s, "amy@example.com")

	t.Run("duplicate email", func(t *testing.T) {
		err := s.Users().CreateUser(ctx, domain.User{
			ID: idx.New().String(), Email: "zed@example.com", Name: "x", PasswordHash: "x",
		})
		require.ErrorIs(t, err, store.ErrAlreadyExists)
	})

	t.Run("lookup", func(t *testing.T) {
		got, err := s.Users().GetUserByEmail(ctx, "zed@example.com")
		require.NoError(t, err)
		require.Equal(t, u.ID, got.ID)
		require.True(t, got.IsActive)
		require.Nil(t, got.LastLogin)

		_, err = s.Users().GetUserByID(ctx, idx.New().String())
		require.ErrorIs(t, err, store.ErrNotFound)
	})

	t.Run("ordered by email", func(t *testing.T) {
		users, err := s.Users().ListUsers(ctx)
		require.NoError(t, err)
		require.Len(t, users, 2)
		require.Equal(t, "amy@example.com", users[0].Email)
		require.Equal(t, "zed@example.com", users[1].Email)
	})

	t.Run("update and last login", func(t *testing.T) {
		u.Name = "Zed"
		u.IsStaff = true
		require.NoError(t, s.Users().UpdateUser(ctx, u))

		at := time.Now().Truncate(time.Second)
		require.NoError(t, s.Users().UpdateLastLogin(ctx, u.ID, at))

		got, err := s.Users().GetUserByID(ctx, u.ID)
		require.NoError(t, err)
		require.Equal(t, "Zed", got.Name)
		require.True(t, got.IsStaff)
		require.NotNil(t, got.LastLogin)
		require.True(t, at.Equal(*got.LastLogin))
	})

	t.Run("update to taken email", func(t *testing.T) {
		u.Email = "amy@example.com"
		require.ErrorIs(t, s.Users().UpdateUser(ctx, u), store.ErrAlreadyExists)
	})
}

func TestIngredients_OwnershipScoping(t *testing.T) {
	s := newTestStore(t)
	ctx := t.Context()

	alice := createUser(t, s, "alice@example.com")
	bob := createUser(t, s, "bob@example.com")

	salt := createIngredient(t, s, alice.ID, "Salt", 1)
	pepper := createIngredient(t, s, alice.ID, "Pepper", 2)
	bobs := createIngredient(t, s, bob.ID, "Salt", 3)

	list, err := s.Ingredients().ListIngredients(ctx, alice.ID)
	require.NoError(t, err)
	require.Len(t, list, 2)
	require.Equal(t, pepper.ID, list[0].ID, "newest first")
	require.Equal(t, salt.ID, list[1].ID)

	_, err = s.Ingredients().GetIngredient(ctx, alice.ID, bobs.ID)
	require.ErrorIs(t, err, store.ErrNotFound)

	name := "Sea salt"
	_, err = s.Ingredients().UpdateIngredient(ctx, alice.ID, bobs.ID, store.IngredientPatch{Name: &name})
	require.ErrorIs(t, err, store.ErrNotFound)

	require.ErrorIs(t, s.Ingredients().DeleteIngredient(ctx, alice.ID, bobs.ID), store.ErrNotFound)

	got, err := s.Ingredients().GetIngredient(ctx, bob.ID, bobs.ID)
	require.NoError(t, err)
	require.Equal(t, "Salt", got.Name)
	require.Equal(t, 3, got.Amount)
}

func TestIngredients_UpdatePatch(t *testing.T) {
	s := newTestStore(t)
	ctx := t.Context()

	u := createUser(t, s, "cook@example.com")
	ing := createIngredient(t, s, u.ID, "Flour", 4)
	createIngredient(t, s, u.ID, "Sugar", 1)

	name := "Plain flour"
	got, err := s.Ingredients().UpdateIngredient(ctx, u.ID, ing.ID, store.IngredientPatch{Name: &name})
	require.NoError(t, err)
	require.Equal(t, "Plain flour", got.Name)
	require.Equal(t, 4, got.Amount)

	amount := 7
	got, err = s.Ingredients().UpdateIngredient(ctx, u.ID, ing.ID, store.IngredientPatch{Amount: &amount})
	require.NoError(t, err)
	require.Equal(t, "Plain flour", got.Name)
	require.Equal(t, 7, got.Amount)

	taken := "Sugar"
	_, err = s.Ingredients().UpdateIngredient(ctx, u.ID, ing.ID, store.IngredientPatch{Name: &taken})
	require.ErrorIs(t, err, store.ErrAlreadyExists)
}

func TestIngredients_AmountCheckConstraint(t *testing.T) {
	s := newTestStore(t)
	u := createUser(t, s, "cook@example.com")

	err := s.Ingredients().CreateIngredient(t.Context(), domain.Ingredient{
		ID: idx.New().String(), UserID: u.ID, Name: "Nothing", Amount: 0,
	})
	require.Error(t, err)
}

func TestIngredients_GetOrCreate(t *testing.T) {
	s := newTestStore(t)
	ctx := t.Context()

	u := createUser(t, s, "cook@example.com")
	existing := createIngredient(t, s, u.ID, "Potato", 5)

	got, created, err := s.Ingredients().GetOrCreateIngredient(ctx, domain.Ingredient{
		ID: idx.New().String(), UserID: u.ID, Name: "Potato", Amount: 1,
	})
	require.NoError(t, err)
	require.False(t, created)
	require.Equal(t, existing.ID, got.ID)
	require.Equal(t, 5, got.Amount)

	got, created, err = s.Ingredients().GetOrCreateIngredient(ctx, domain.Ingredient{
		ID: idx.New().String(), UserID: u.ID, Name: "Cheese", Amount: 1,
	})
	require.NoError(t, err)
	require.True(t, created)
	require.Equal(t, "Cheese", got.Name)

	n, err := s.Ingredients().CountIngredients(ctx, u.ID)
	require.NoError(t, err)
	require.Equal(t, 2, n)
}

func TestRecipes_IngredientsAndCascade(t *testing.T) {
	s := newTestStore(t)
	ctx := t.Context()

	u := createUser(t, s, "cook@example.com")
	other := createUser(t, s, "other@example.com")
	potato := createIngredient(t, s, u.ID, "Potato", 1)
	cheese := createIngredient(t, s, u.ID, "Cheese", 1)
	foreign := createIngredient(t, s, other.ID, "Caviar", 1)

	rec := domain.Recipe{
		ID:          idx.New().String(),
		UserID:      u.ID,
		Title:       "Gratin",
		TimeMinutes: 45,
		Price:       decimal.RequireFromString("12.5"),
	}

	err := s.WithTx(ctx, func(tx store.Tx) error {
		if err := tx.Recipes().CreateRecipe(ctx, rec); err != nil {
			return err
		}
		return tx.Recipes().SetRecipeIngredients(ctx, u.ID, rec.ID, []string{cheese.ID, potato.ID, cheese.ID})
	})
	require.NoError(t, err)

	got, err := s.Recipes().GetRecipe(ctx, u.ID, rec.ID)
	require.NoError(t, err)
	require.Equal(t, "12.50", domain.FormatPrice(got.Price))
	require.Equal(t, []string{cheese.ID, potato.ID}, ingredientIDs(got))

	_, err = s.Recipes().GetRecipe(ctx, other.ID, rec.ID)
	require.ErrorIs(t, err, store.ErrNotFound)

	t.Run("foreign ingredient rolls back", func(t *testing.T) {
		err := s.WithTx(ctx, func(tx store.Tx) error {
			return tx.Recipes().SetRecipeIngredients(ctx, u.ID, rec.ID, []string{potato.ID, foreign.ID})
		})
		require.ErrorIs(t, err, store.ErrNotFound)

		got, err := s.Recipes().GetRecipe(ctx, u.ID, rec.ID)
		require.NoError(t, err)
		require.Len(t, got.Ingredients, 2)
	})

	t.Run("patch keeps other columns", func(t *testing.T) {
		title := "Potato gratin"
		require.NoError(t, s.Recipes().UpdateRecipe(ctx, u.ID, rec.ID, store.RecipePatch{Title: &title}))

		got, err := s.Recipes().GetRecipe(ctx, u.ID, rec.ID)
		require.NoError(t, err)
		require.Equal(t, "Potato gratin", got.Title)
		require.Equal(t, 45, got.TimeMinutes)
		require.Equal(t, "12.50", domain.FormatPrice(got.Price))

		require.ErrorIs(t, s.Recipes().UpdateRecipe(ctx, other.ID, rec.ID, store.RecipePatch{Title: &title}), store.ErrNotFound)
	})

	t.Run("list loads ingredients", func(t *testing.T) {
		bare := domain.Recipe{ID: idx.New().String(), UserID: u.ID, Title: "Toast", Price: decimal.Zero}
		require.NoError(t, s.Recipes().CreateRecipe(ctx, bare))

		list, err := s.Recipes().ListRecipes(ctx, u.ID)
		require.NoError(t, err)
		require.Len(t, list, 2)
		require.Equal(t, bare.ID, list[0].ID)
		require.Empty(t, list[0].Ingredients)
		require.Len(t, list[1].Ingredients, 2)
	})

	t.Run("deleting an ingredient drops the link", func(t *testing.T) {
		require.NoError(t, s.Ingredients().DeleteIngredient(ctx, u.ID, cheese.ID))

		got, err := s.Recipes().GetRecipe(ctx, u.ID, rec.ID)
		require.NoError(t, err)
		require.Equal(t, []string{potato.ID}, ingredientIDs(got))
	})

	t.Run("deleting the user cascades", func(t *testing.T) {
		require.NoError(t, s.Users().DeleteUser(ctx, u.ID))

		list, err := s.Recipes().ListRecipes(ctx, u.ID)
		require.NoError(t, err)
		require.Empty(t, list)

		n, err := s.Ingredients().CountIngredients(ctx, u.ID)
		require.NoError(t, err)
		require.Zero(t, n)
	})
}

func TestAuthTokens(t *testing.T) {
	s := newTestStore(t)
	ctx := t.Context()

	u := createUser(t, s, "cook@example.com")
	past := time.Now().Add(-time.Minute)
	future := time.Now().Add(time.Hour)

	for hash, exp := range map[string]*time.Time{"expired": &past, "live": &future, "forever": nil} {
		require.NoError(t, s.AuthTokens().CreateAuthToken(ctx, domain.AuthToken{
			ID: idx.New().String(), UserID: u.ID, KeyHash: hash, ExpiresAt: exp,
		}))
	}

	n, err := s.AuthTokens().DeleteExpiredAuthTokens(ctx, time.Now())
	require.NoError(t, err)
	require.EqualValues(t, 1, n)

	_, err = s.AuthTokens().GetAuthTokenByHash(ctx, "expired")
	require.ErrorIs(t, err, store.ErrNotFound)

	live, err := s.AuthTokens().GetAuthTokenByHash(ctx, "live")
	require.NoError(t, err)
	require.Equal(t, u.ID, live.UserID)
	require.NotNil(t, live.ExpiresAt)

	forever, err := s.AuthTokens().GetAuthTokenByHash(ctx, "forever")
	require.NoError(t, err)
	require.Nil(t, forever.ExpiresAt)

	require.NoError(t, s.AuthTokens().DeleteAuthTokenByHash(ctx, "live"))
	require.ErrorIs(t, s.AuthTokens().DeleteAuthTokenByHash(ctx, "live"), store.ErrNotFound)

	require.NoError(t, s.AuthTokens().DeleteUserAuthTokens(ctx, u.ID))
	_, err = s.AuthTokens().GetAuthTokenByHash(ctx, "forever")
	require.ErrorIs(t, err, store.ErrNotFound)
}

func TestTxStore_NestedTxRejected(t *testing.T) {
	s := newTestStore(t)

	err := s.WithTx(t.Context(), func(tx store.Tx) error {
		_, err := tx.Tx(t.Context())
		require.Error(t, err)
		return tx.WithTx(t.Context(), func(store.Tx) error { return nil })
	})
	require.Error(t, err)
}

func ingredientIDs(r domain.Recipe) []string {
	ids := make([]string, len(r.Ingredients))
	for i, ing := range r.Ingredients {
		ids[i] = ing.ID
	}
	return ids
}
