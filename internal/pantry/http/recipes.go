package http

import (
	"net/http"

	"github.com/aussiebroadwan/pantry/internal/pantry/domain"
	"github.com/aussiebroadwan/pantry/internal/pantry/service"
	"github.com/aussiebroadwan/pantry/pkg/httpx"
	"github.com/aussiebroadwan/pantry/pkg/pantrysdk"
	"github.com/aussiebroadwan/pantry/pkg/slogx"
)

func toRecipeSummary(rec domain.Recipe) pantrysdk.RecipeSummary {
	return pantrysdk.RecipeSummary{
		ID:          rec.ID,
		Title:       rec.Title,
		TimeMinutes: rec.TimeMinutes,
		Price:       pantrysdk.Price(domain.FormatPrice(rec.Price)),
		Ingredients: toIngredients(rec.Ingredients),
	}
}

func toRecipeDetail(rec domain.Recipe) pantrysdk.RecipeDetail {
	return pantrysdk.RecipeDetail{
		RecipeSummary: toRecipeSummary(rec),
		Description:   rec.Description,
	}
}

func toRecipeInput(req pantrysdk.RecipeRequest) service.RecipeInput {
	in := service.RecipeInput{
		Title:       req.Title,
		TimeMinutes: req.TimeMinutes,
		Description: req.Description,
	}
	if req.Price != nil {
		p := string(*req.Price)
		in.Price = &p
	}
	if req.Ingredients != nil {
		refs := make([]service.IngredientRef, len(*req.Ingredients))
		for i, n := range *req.Ingredients {
			refs[i] = service.IngredientRef{Name: n.Name, Amount: n.Amount}
		}
		in.Ingredients = &refs
	}
	return in
}

type RecipesHandler struct {
	RecipeService *service.RecipeService
}

// HandleList returns the caller's recipes, newest first. Descriptions are
// left out of the list view.
//
//	@Summary	List recipes
//	@Tags		Recipes
//	@Produce	json
//	@Success	200	{array}		pantrysdk.RecipeSummary	"Recipes owned by the caller"
//	@Failure	401	{object}	pantrysdk.ErrorResponse	"Missing or invalid token"
//	@Security	TokenAuth
//	@Router		/api/recipes/ [get].
func (h *RecipesHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	list, err := h.RecipeService.List(r.Context(), httpx.UserIDFromContext(r.Context()))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	out := make([]pantrysdk.RecipeSummary, len(list))
	for i, rec := range list {
		out[i] = toRecipeSummary(rec)
	}
	httpx.WriteJSON(w, http.StatusOK, out)
}

// HandleCreate adds a recipe owned by the caller. Nested ingredients are
// matched by name and created when the caller has none of that name.
//
//	@Summary	Create recipe
//	@Tags		Recipes
//	@Accept		json
//	@Produce	json
//	@Param		request	body		pantrysdk.RecipeRequest				true	"Recipe"
//	@Success	201		{object}	pantrysdk.RecipeDetail				"Created recipe"
//	@Failure	400		{object}	pantrysdk.ValidationErrorResponse	"Missing or invalid fields"
//	@Failure	401		{object}	pantrysdk.ErrorResponse				"Missing or invalid token"
//	@Security	TokenAuth
//	@Router		/api/recipes/ [post].
func (h *RecipesHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var req pantrysdk.RecipeRequest
	if !decodeBody(w, r, &req) {
		return
	}

	rec, err := h.RecipeService.Create(r.Context(), httpx.UserIDFromContext(r.Context()), toRecipeInput(req))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	slogx.FromContext(r.Context()).Info("recipe created", "recipe_id", rec.ID)
	httpx.WriteJSON(w, http.StatusCreated, toRecipeDetail(rec))
}

// HandleGet returns one of the caller's recipes including its description.
//
//	@Summary	Get recipe
//	@Tags		Recipes
//	@Produce	json
//	@Param		id	path		string					true	"Recipe ID"
//	@Success	200	{object}	pantrysdk.RecipeDetail	"Recipe"
//	@Failure	401	{object}	pantrysdk.ErrorResponse	"Missing or invalid token"
//	@Failure	404	{object}	pantrysdk.ErrorResponse	"Not found or owned by another user"
//	@Security	TokenAuth
//	@Router		/api/recipes/{id}/ [get].
func (h *RecipesHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	rec, err := h.RecipeService.Get(r.Context(), httpx.UserIDFromContext(r.Context()), id)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toRecipeDetail(rec))
}

// HandlePut replaces a recipe. Title, time and price are required.
//
//	@Summary	Replace recipe
//	@Tags		Recipes
//	@Accept		json
//	@Produce	json
//	@Param		id		path		string								true	"Recipe ID"
//	@Param		request	body		pantrysdk.RecipeRequest				true	"Recipe"
//	@Success	200		{object}	pantrysdk.RecipeDetail				"Updated recipe"
//	@Failure	400		{object}	pantrysdk.ValidationErrorResponse	"Missing or invalid fields"
//	@Failure	404		{object}	pantrysdk.ErrorResponse				"Not found or owned by another user"
//	@Security	TokenAuth
//	@Router		/api/recipes/{id}/ [put].
func (h *RecipesHandler) HandlePut(w http.ResponseWriter, r *http.Request) {
	h.update(w, r, false)
}

// HandlePatch changes the supplied recipe fields. A supplied ingredients
// list replaces the associations; an omitted one leaves them alone.
//
//	@Summary	Update recipe
//	@Tags		Recipes
//	@Accept		json
//	@Produce	json
//	@Param		id		path		string								true	"Recipe ID"
//	@Param		request	body		pantrysdk.RecipeRequest				true	"Fields to change"
//	@Success	200		{object}	pantrysdk.RecipeDetail				"Updated recipe"
//	@Failure	400		{object}	pantrysdk.ValidationErrorResponse	"Invalid fields"
//	@Failure	404		{object}	pantrysdk.ErrorResponse				"Not found or owned by another user"
//	@Security	TokenAuth
//	@Router		/api/recipes/{id}/ [patch].
func (h *RecipesHandler) HandlePatch(w http.ResponseWriter, r *http.Request) {
	h.update(w, r, true)
}

func (h *RecipesHandler) update(w http.ResponseWriter, r *http.Request, partial bool) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	var req pantrysdk.RecipeRequest
	if !decodeBody(w, r, &req) {
		return
	}

	rec, err := h.RecipeService.Update(r.Context(), httpx.UserIDFromContext(r.Context()), id,
		toRecipeInput(req), partial)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toRecipeDetail(rec))
}

// HandleDelete removes a recipe. Its ingredients are kept.
//
//	@Summary	Delete recipe
//	@Tags		Recipes
//	@Param		id	path	string	true	"Recipe ID"
//	@Success	204	"Deleted"
//	@Failure	401	{object}	pantrysdk.ErrorResponse	"Missing or invalid token"
//	@Failure	404	{object}	pantrysdk.ErrorResponse	"Not found or owned by another user"
//	@Security	TokenAuth
//	@Router		/api/recipes/{id}/ [delete].
func (h *RecipesHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	if err := h.RecipeService.Delete(r.Context(), httpx.UserIDFromContext(r.Context()), id); err != nil {
		writeServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
