package http

import (
	"net/http"

	"github.com/aussiebroadwan/pantry/internal/pantry/domain"
	"github.com/aussiebroadwan/pantry/internal/pantry/service"
	"github.com/aussiebroadwan/pantry/pkg/httpx"
	"github.com/aussiebroadwan/pantry/pkg/pantrysdk"
	"github.com/aussiebroadwan/pantry/pkg/slogx"
)

func toIngredient(ing domain.Ingredient) pantrysdk.Ingredient {
	return pantrysdk.Ingredient{ID: ing.ID, Name: ing.Name, Amount: ing.Amount}
}

func toIngredients(list []domain.Ingredient) []pantrysdk.Ingredient {
	out := make([]pantrysdk.Ingredient, len(list))
	for i, ing := range list {
		out[i] = toIngredient(ing)
	}
	return out
}

type IngredientsHandler struct {
	IngredientService *service.IngredientService
}

// HandleList returns the caller's ingredients, newest first.
//
//	@Summary	List ingredients
//	@Tags		Ingredients
//	@Produce	json
//	@Success	200	{array}		pantrysdk.Ingredient	"Ingredients owned by the caller"
//	@Failure	401	{object}	pantrysdk.ErrorResponse	"Missing or invalid token"
//	@Security	TokenAuth
//	@Router		/api/ingredients/ [get].
func (h *IngredientsHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	list, err := h.IngredientService.List(r.Context(), httpx.UserIDFromContext(r.Context()))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toIngredients(list))
}

// HandleCreate adds an ingredient owned by the caller.
//
//	@Summary	Create ingredient
//	@Tags		Ingredients
//	@Accept		json
//	@Produce	json
//	@Param		request	body		pantrysdk.IngredientRequest			true	"Name and amount"
//	@Success	201		{object}	pantrysdk.Ingredient				"Created ingredient"
//	@Failure	400		{object}	pantrysdk.ValidationErrorResponse	"Missing fields, amount below 1 or duplicate name"
//	@Failure	401		{object}	pantrysdk.ErrorResponse				"Missing or invalid token"
//	@Security	TokenAuth
//	@Router		/api/ingredients/ [post].
func (h *IngredientsHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var req pantrysdk.IngredientRequest
	if !decodeBody(w, r, &req) {
		return
	}

	ing, err := h.IngredientService.Create(r.Context(), httpx.UserIDFromContext(r.Context()), service.IngredientInput{
		Name:   req.Name,
		Amount: req.Amount,
	})
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	slogx.FromContext(r.Context()).Info("ingredient created", "ingredient_id", ing.ID)
	httpx.WriteJSON(w, http.StatusCreated, toIngredient(ing))
}

// HandleGet returns one of the caller's ingredients.
//
//	@Summary	Get ingredient
//	@Tags		Ingredients
//	@Produce	json
//	@Param		id	path		string					true	"Ingredient ID"
//	@Success	200	{object}	pantrysdk.Ingredient	"Ingredient"
//	@Failure	401	{object}	pantrysdk.ErrorResponse	"Missing or invalid token"
//	@Failure	404	{object}	pantrysdk.ErrorResponse	"Not found or owned by another user"
//	@Security	TokenAuth
//	@Router		/api/ingredients/{id}/ [get].
func (h *IngredientsHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	ing, err := h.IngredientService.Get(r.Context(), httpx.UserIDFromContext(r.Context()), id)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toIngredient(ing))
}

// HandlePut replaces an ingredient's name and amount.
//
//	@Summary	Replace ingredient
//	@Tags		Ingredients
//	@Accept		json
//	@Produce	json
//	@Param		id		path		string								true	"Ingredient ID"
//	@Param		request	body		pantrysdk.IngredientRequest			true	"Name and amount"
//	@Success	200		{object}	pantrysdk.Ingredient				"Updated ingredient"
//	@Failure	400		{object}	pantrysdk.ValidationErrorResponse	"Invalid fields"
//	@Failure	404		{object}	pantrysdk.ErrorResponse				"Not found or owned by another user"
//	@Security	TokenAuth
//	@Router		/api/ingredients/{id}/ [put].
func (h *IngredientsHandler) HandlePut(w http.ResponseWriter, r *http.Request) {
	h.update(w, r, false)
}

// HandlePatch changes the supplied ingredient fields.
//
//	@Summary	Update ingredient
//	@Tags		Ingredients
//	@Accept		json
//	@Produce	json
//	@Param		id		path		string								true	"Ingredient ID"
//	@Param		request	body		pantrysdk.IngredientRequest			true	"Fields to change"
//	@Success	200		{object}	pantrysdk.Ingredient				"Updated ingredient"
//	@Failure	400		{object}	pantrysdk.ValidationErrorResponse	"Invalid fields"
//	@Failure	404		{object}	pantrysdk.ErrorResponse				"Not found or owned by another user"
//	@Security	TokenAuth
//	@Router		/api/ingredients/{id}/ [patch].
func (h *IngredientsHandler) HandlePatch(w http.ResponseWriter, r *http.Request) {
	h.update(w, r, true)
}

func (h *IngredientsHandler) update(w http.ResponseWriter, r *http.Request, partial bool) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	var req pantrysdk.IngredientRequest
	if !decodeBody(w, r, &req) {
		return
	}

	ing, err := h.IngredientService.Update(r.Context(), httpx.UserIDFromContext(r.Context()), id,
		service.IngredientInput{Name: req.Name, Amount: req.Amount}, partial)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toIngredient(ing))
}

// HandleDelete removes an ingredient. Recipes that used it lose the
// association.
//
//	@Summary	Delete ingredient
//	@Tags		Ingredients
//	@Param		id	path	string	true	"Ingredient ID"
//	@Success	204	"Deleted"
//	@Failure	401	{object}	pantrysdk.ErrorResponse	"Missing or invalid token"
//	@Failure	404	{object}	pantrysdk.ErrorResponse	"Not found or owned by another user"
//	@Security	TokenAuth
//	@Router		/api/ingredients/{id}/ [delete].
func (h *IngredientsHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	if err := h.IngredientService.Delete(r.Context(), httpx.UserIDFromContext(r.Context()), id); err != nil {
		writeServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
