package pantry_test

import (
	"net/http"
	"testing"

	"github.com/aussiebroadwan/pantry/pkg/pantrysdk"
	"github.com/stretchr/testify/require"
)

// TestIngredientsAndRecipes exercises both resources for two users and
// checks that neither can see the other's records.
func TestIngredientsAndRecipes(t *testing.T) {
	c := setupPantryContainer(t)
	client := pantrysdk.NewSDKClient(c.BaseURL)
	ctx := t.Context()

	alice := registerAndLogin(t, client, "alice@example.com")
	bob := registerAndLogin(t, client, "bob@example.com")

	salt, err := alice.CreateIngredient(ctx, pantrysdk.IngredientRequest{Name: ptr("salt"), Amount: ptr(1)})
	require.NoError(t, err)

	_, err = alice.CreateIngredient(ctx, pantrysdk.IngredientRequest{Name: ptr("sugar")})
	assertStatus(t, err, http.StatusBadRequest, "missing amount")

	recipe, err := alice.CreateRecipe(ctx, pantrysdk.RecipeRequest{
		Title:       ptr("Chips"),
		TimeMinutes: ptr(25),
		Price:       ptr(pantrysdk.Price("4.5")),
		Ingredients: &[]pantrysdk.NestedIngredient{{Name: "salt"}, {Name: "potato", Amount: ptr(3)}},
	})
	require.NoError(t, err)
	require.Equal(t, pantrysdk.Price("4.50"), recipe.Price)
	require.Len(t, recipe.Ingredients, 2)
	require.Contains(t, recipe.Ingredients, *salt)

	ingredients, err := alice.ListIngredients(ctx)
	require.NoError(t, err)
	require.Len(t, ingredients, 2, "potato was created, salt was reused")

	// Bob sees none of it.
	list, err := bob.ListRecipes(ctx)
	require.NoError(t, err)
	require.Empty(t, list)

	_, err = bob.GetRecipe(ctx, recipe.ID)
	assertStatus(t, err, http.StatusNotFound, "foreign recipe")

	_, err = bob.GetIngredient(ctx, salt.ID)
	assertStatus(t, err, http.StatusNotFound, "foreign ingredient")

	err = bob.DeleteRecipe(ctx, recipe.ID)
	assertStatus(t, err, http.StatusNotFound, "foreign delete")

	// Patching without ingredients keeps them.
	patched, err := alice.PatchRecipe(ctx, recipe.ID, pantrysdk.RecipeRequest{Title: ptr("Hot chips")})
	require.NoError(t, err)
	require.Equal(t, "Hot chips", patched.Title)
	require.Len(t, patched.Ingredients, 2)

	summaries, err := alice.ListRecipes(ctx)
	require.NoError(t, err)
	require.Len(t, summaries, 1)
	require.Equal(t, recipe.ID, summaries[0].ID)

	require.NoError(t, alice.DeleteRecipe(ctx, recipe.ID))
	_, err = alice.GetRecipe(ctx, recipe.ID)
	assertStatus(t, err, http.StatusNotFound, "deleted recipe")

	_, err = alice.GetIngredient(ctx, salt.ID)
	require.NoError(t, err, "ingredients outlive the recipe")
}
