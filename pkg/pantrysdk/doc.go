/*
Package pantrysdk provides a client SDK for the pantry recipe and ingredient
service, together with the JSON wire types the server itself writes.

# SDKClient vs Session

The package is organized around two main types:

  - SDKClient: unauthenticated operations (registration, login, health)
  - Session: operations performed on behalf of a logged-in user

Create an SDKClient to register and log in:

	client := pantrysdk.NewSDKClient("http://localhost:8080")

	_, err := client.CreateUser(ctx, pantrysdk.CreateUserRequest{
		Email:    "cook@example.com",
		Name:     "Cook",
		Password: "secret123",
	})

	session, err := client.Login(ctx, "cook@example.com", "secret123")

A Session sends its token as "Authorization: Token <token>" on every call:

	salt := "salt"
	one := 1
	ing, err := session.CreateIngredient(ctx, pantrysdk.IngredientRequest{Name: &salt, Amount: &one})

	recipes, err := session.ListRecipes(ctx)

	err = session.Logout(ctx)

A token saved from an earlier login can be reused with client.NewSession.

# Ownership

Every ingredient and recipe belongs to the user that created it. Another
user's record is reported as not found, never as forbidden:

	_, err := session.GetRecipe(ctx, someoneElsesID)
	pantrysdk.IsStatus(err, http.StatusNotFound) // true

# Nested ingredients

A recipe request may name ingredients inline. Each name is matched against
the caller's existing ingredients; a match is reused and anything else is
created with the given amount (default 1):

	title := "Gratin"
	minutes := 40
	price := pantrysdk.Price("12.50")
	recipe, err := session.CreateRecipe(ctx, pantrysdk.RecipeRequest{
		Title:       &title,
		TimeMinutes: &minutes,
		Price:       &price,
		Ingredients: &[]pantrysdk.NestedIngredient{{Name: "potato"}, {Name: "cheese"}},
	})

On update, a supplied ingredients list replaces the recipe's associations
and an omitted one leaves them alone.

# Error Handling

Failed calls return *APIError carrying the HTTP status, the error code and,
for validation failures, the per-field details:

	_, err := session.CreateIngredient(ctx, pantrysdk.IngredientRequest{Name: &salt})
	var apiErr *pantrysdk.APIError
	if errors.As(err, &apiErr) && apiErr.Code == pantrysdk.ErrorCodeValidation {
		fmt.Println(apiErr.Details["amount"])
	}

# Admin

Staff sessions can manage users and ingredients across all accounts with
the Admin* methods.
*/
package pantrysdk
