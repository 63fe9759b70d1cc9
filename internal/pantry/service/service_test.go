package service

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/aussiebroadwan/pantry/internal/pantry/domain"
	"github.com/aussiebroadwan/pantry/internal/pantry/store/drivers/sqlite"
	"github.com/aussiebroadwan/pantry/pkg/cryptox"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	dir, err := os.MkdirTemp("", "service-test")
	if err != nil {
		panic(err)
	}
	cryptox.SetPepperPath(filepath.Join(dir, "pepper"))

	code := m.Run()
	_ = os.RemoveAll(dir)
	os.Exit(code)
}

type services struct {
	store       *sqlite.Store
	users       *UserService
	tokens      *TokenService
	ingredients *IngredientService
	recipes     *RecipeService
	admin       *AdminService
}

func newServices(t *testing.T) services {
	t.Helper()

	st, err := sqlite.NewStore(sqlite.FileDSN(filepath.Join(t.TempDir(), "pantry.db")))
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })
	require.NoError(t, st.ApplyMigrations())

	users := &UserService{Store: st}
	return services{
		store:       st,
		users:       users,
		tokens:      &TokenService{Store: st, Users: users, TTL: DefaultTokenTTL},
		ingredients: &IngredientService{Store: st},
		recipes:     &RecipeService{Store: st},
		admin:       &AdminService{Store: st, Users: users},
	}
}

func (s services) mustUser(t *testing.T, email string) domain.User {
	t.Helper()

	u, err := s.users.CreateUser(t.Context(), email, "Test User", "testpass123")
	require.NoError(t, err)
	return u
}

func (s services) mustIngredient(t *testing.T, userID, name string, amount int) domain.Ingredient {
	t.Helper()

	ing, err := s.ingredients.Create(t.Context(), userID, IngredientInput{Name: &name, Amount: &amount})
	require.NoError(t, err)
	return ing
}

func ptr[T any](v T) *T { return &v }

// requireFieldError asserts err is a ValidationError naming field.
func requireFieldError(t *testing.T, err error, field string) {
	t.Helper()

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	require.Contains(t, verr.Fields, field)
}

func TestValidationError(t *testing.T) {
	v := &ValidationError{}
	require.NoError(t, v.Err())

	v.Add("email", MsgRequired)
	v.Add("email", MsgInvalidEmail)
	v.Add("name", MsgBlank)

	err := v.Err()
	require.Error(t, err)
	require.True(t, IsValidation(err))
	require.Equal(t, MsgRequired, v.Fields["email"], "first reason wins")
	require.Equal(t, "validation failed: email: This field is required.; name: This field may not be blank.", err.Error())
	require.False(t, IsValidation(ErrNotFound))
}
