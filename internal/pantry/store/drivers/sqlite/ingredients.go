package sqlite

import (
	"context"
	"time"

	"github.com/aussiebroadwan/pantry/internal/pantry/domain"
	"github.com/aussiebroadwan/pantry/internal/pantry/store"
	"github.com/aussiebroadwan/pantry/internal/pantry/store/drivers/sqlite/gen"
)

type ingredientsRepo struct {
	q *gen.Queries
}

func (r *ingredientsRepo) ListIngredients(ctx context.Context, userID string) ([]domain.Ingredient, error) {
	rows, err := r.q.ListIngredientsByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	out := make([]domain.Ingredient, len(rows))
	for i, row := range rows {
		out[i] = mapIngredient(row)
	}
	return out, nil
}

func (r *ingredientsRepo) GetIngredient(ctx context.Context, userID, id string) (domain.Ingredient, error) {
	row, err := r.q.GetIngredient(ctx, gen.GetIngredientParams{ID: id, UserID: userID})
	if err != nil {
		return domain.Ingredient{}, mapNotFound(err)
	}
	return mapIngredient(row), nil
}

func (r *ingredientsRepo) CreateIngredient(ctx context.Context, ing domain.Ingredient) error {
	now := stamp(ing.CreatedAt)
	err := r.q.CreateIngredient(ctx, gen.CreateIngredientParams{
		ID:        ing.ID,
		UserID:    ing.UserID,
		Name:      ing.Name,
		Amount:    int64(ing.Amount),
		CreatedAt: now,
		UpdatedAt: now,
	})
	return mapConstraint(err)
}

// GetOrCreateIngredient relies on the (user_id, name) unique index: a
// concurrent insert of the same name makes ours a no-op and the select
// below returns the winner.
func (r *ingredientsRepo) GetOrCreateIngredient(
	ctx context.Context,
	ing domain.Ingredient,
) (domain.Ingredient, bool, error) {
	now := stamp(ing.CreatedAt)
	n, err := r.q.InsertIngredientIfAbsent(ctx, gen.InsertIngredientIfAbsentParams{
		ID:        ing.ID,
		UserID:    ing.UserID,
		Name:      ing.Name,
		Amount:    int64(ing.Amount),
		CreatedAt: now,
		UpdatedAt: now,
	})
	if err != nil {
		return domain.Ingredient{}, false, mapConstraint(err)
	}

	row, err := r.q.GetIngredientByName(ctx, gen.GetIngredientByNameParams{
		UserID: ing.UserID,
		Name:   ing.Name,
	})
	if err != nil {
		return domain.Ingredient{}, false, mapNotFound(err)
	}
	return mapIngredient(row), n == 1, nil
}

func (r *ingredientsRepo) UpdateIngredient(
	ctx context.Context,
	userID, id string,
	p store.IngredientPatch,
) (domain.Ingredient, error) {
	n, err := r.q.UpdateIngredient(ctx, gen.UpdateIngredientParams{
		Name:      mapOptionalString(p.Name),
		Amount:    mapOptionalInt(p.Amount),
		UpdatedAt: utc(time.Now()),
		ID:        id,
		UserID:    userID,
	})
	if err := mustAffect(n, mapConstraint(err)); err != nil {
		return domain.Ingredient{}, err
	}
	return r.GetIngredient(ctx, userID, id)
}

func (r *ingredientsRepo) DeleteIngredient(ctx context.Context, userID, id string) error {
	return mustAffect(r.q.DeleteIngredient(ctx, gen.DeleteIngredientParams{ID: id, UserID: userID}))
}

func (r *ingredientsRepo) CountIngredients(ctx context.Context, userID string) (int, error) {
	n, err := r.q.CountIngredientsByUser(ctx, userID)
	return int(n), err
}

func (r *ingredientsRepo) ListAllIngredients(ctx context.Context) ([]domain.IngredientWithOwner, error) {
	rows, err := r.q.ListAllIngredients(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]domain.IngredientWithOwner, len(rows))
	for i, row := range rows {
		out[i] = domain.IngredientWithOwner{
			Ingredient: mapIngredient(gen.Ingredient{
				ID:        row.ID,
				UserID:    row.UserID,
				Name:      row.Name,
				Amount:    row.Amount,
				CreatedAt: row.CreatedAt,
				UpdatedAt: row.UpdatedAt,
			}),
			OwnerEmail: row.OwnerEmail,
		}
	}
	return out, nil
}

func (r *ingredientsRepo) DeleteIngredientByID(ctx context.Context, id string) error {
	return mustAffect(r.q.DeleteIngredientByID(ctx, id))
}

// stamp returns t in UTC, or the current time when t is zero.
func stamp(t time.Time) time.Time {
	if t.IsZero() {
		t = time.Now()
	}
	return utc(t)
}
