package sqlite

import (
	"context"
	"time"

	"github.com/aussiebroadwan/pantry/internal/pantry/domain"
	"github.com/aussiebroadwan/pantry/internal/pantry/store"
	"github.com/aussiebroadwan/pantry/internal/pantry/store/drivers/sqlite/gen"
)

type recipesRepo struct {
	q *gen.Queries
}

func (r *recipesRepo) ListRecipes(ctx context.Context, userID string) ([]domain.Recipe, error) {
	rows, err := r.q.ListRecipesByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	links, err := r.q.ListRecipeIngredientsByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	byRecipe := make(map[string][]domain.Ingredient, len(rows))
	for _, l := range links {
		byRecipe[l.RecipeID] = append(byRecipe[l.RecipeID], mapIngredient(gen.Ingredient{
			ID:        l.ID,
			UserID:    l.UserID,
			Name:      l.Name,
			Amount:    l.Amount,
			CreatedAt: l.CreatedAt,
			UpdatedAt: l.UpdatedAt,
		}))
	}

	out := make([]domain.Recipe, len(rows))
	for i, row := range rows {
		rec, err := mapRecipe(row)
		if err != nil {
			return nil, err
		}
		if ings, ok := byRecipe[rec.ID]; ok {
			rec.Ingredients = ings
		}
		out[i] = rec
	}
	return out, nil
}

func (r *recipesRepo) GetRecipe(ctx context.Context, userID, id string) (domain.Recipe, error) {
	row, err := r.q.GetRecipe(ctx, gen.GetRecipeParams{ID: id, UserID: userID})
	if err != nil {
		return domain.Recipe{}, mapNotFound(err)
	}
	rec, err := mapRecipe(row)
	if err != nil {
		return domain.Recipe{}, err
	}

	ings, err := r.q.ListRecipeIngredients(ctx, id)
	if err != nil {
		return domain.Recipe{}, err
	}
	for _, ing := range ings {
		rec.Ingredients = append(rec.Ingredients, mapIngredient(ing))
	}
	return rec, nil
}

func (r *recipesRepo) CreateRecipe(ctx context.Context, rec domain.Recipe) error {
	now := stamp(rec.CreatedAt)
	err := r.q.CreateRecipe(ctx, gen.CreateRecipeParams{
		ID:          rec.ID,
		UserID:      rec.UserID,
		Title:       rec.Title,
		TimeMinutes: int64(rec.TimeMinutes),
		Price:       domain.FormatPrice(rec.Price),
		Description: rec.Description,
		CreatedAt:   now,
		UpdatedAt:   now,
	})
	return mapConstraint(err)
}

func (r *recipesRepo) UpdateRecipe(ctx context.Context, userID, id string, p store.RecipePatch) error {
	params := gen.UpdateRecipeParams{
		Title:       mapOptionalString(p.Title),
		TimeMinutes: mapOptionalInt(p.TimeMinutes),
		Description: mapOptionalString(p.Description),
		UpdatedAt:   utc(time.Now()),
		ID:          id,
		UserID:      userID,
	}
	if p.Price != nil {
		price := domain.FormatPrice(*p.Price)
		params.Price = mapOptionalString(&price)
	}
	return mustAffect(r.q.UpdateRecipe(ctx, params))
}

// SetRecipeIngredients must run inside a Tx: it clears the association set
// and re-adds ingredientIDs in order. Duplicate ids are added once. An id
// that does not belong to userID fails with store.ErrNotFound.
func (r *recipesRepo) SetRecipeIngredients(
	ctx context.Context,
	userID, recipeID string,
	ingredientIDs []string,
) error {
	if _, err := r.q.GetRecipe(ctx, gen.GetRecipeParams{ID: recipeID, UserID: userID}); err != nil {
		return mapNotFound(err)
	}
	if err := r.q.ClearRecipeIngredients(ctx, recipeID); err != nil {
		return err
	}

	seen := make(map[string]struct{}, len(ingredientIDs))
	var pos int64
	for _, ingID := range ingredientIDs {
		if _, dup := seen[ingID]; dup {
			continue
		}
		seen[ingID] = struct{}{}

		n, err := r.q.AddRecipeIngredient(ctx, gen.AddRecipeIngredientParams{
			RecipeID:     recipeID,
			Position:     pos,
			IngredientID: ingID,
			UserID:       userID,
		})
		if err := mustAffect(n, err); err != nil {
			return err
		}
		pos++
	}
	return nil
}

func (r *recipesRepo) DeleteRecipe(ctx context.Context, userID, id string) error {
	return mustAffect(r.q.DeleteRecipe(ctx, gen.DeleteRecipeParams{ID: id, UserID: userID}))
}
