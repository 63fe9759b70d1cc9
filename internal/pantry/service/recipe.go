package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/aussiebroadwan/pantry/internal/pantry/domain"
	"github.com/aussiebroadwan/pantry/internal/pantry/store"
	"github.com/aussiebroadwan/pantry/pkg/idx"
	"github.com/aussiebroadwan/pantry/pkg/slogx"
	"github.com/shopspring/decimal"
)

// IngredientRef names an ingredient nested in a recipe body. It is matched
// against the owner's ingredients by exact name; Amount is used only when a
// new ingredient has to be created.
type IngredientRef struct {
	Name   string
	Amount *int
}

// RecipeInput is the writable part of a recipe. A nil field was not
// supplied. Price is the textual decimal as received.
type RecipeInput struct {
	Title       *string
	TimeMinutes *int
	Price       *string
	Description *string
	Ingredients *[]IngredientRef
}

// RecipeService is the recipe resource, scoped to the calling user in the
// same way as IngredientService.
type RecipeService struct {
	Store store.Store
}

// List returns the user's recipes, newest first.
func (s *RecipeService) List(ctx context.Context, userID string) ([]domain.Recipe, error) {
	return s.Store.Recipes().ListRecipes(ctx, userID)
}

// Get returns one of the user's recipes with its ingredients.
func (s *RecipeService) Get(ctx context.Context, userID, id string) (domain.Recipe, error) {
	rec, err := s.Store.Recipes().GetRecipe(ctx, userID, id)
	if errors.Is(err, store.ErrNotFound) {
		return domain.Recipe{}, ErrNotFound
	}
	return rec, err
}

// Create adds a recipe owned by userID. Nested ingredients are looked up by
// name among the user's ingredients and created when missing, all in the
// same transaction as the recipe row.
func (s *RecipeService) Create(ctx context.Context, userID string, in RecipeInput) (domain.Recipe, error) {
	log := slogx.FromContext(ctx)

	// 1. Validate input
	f, err := validateRecipe(in, false)
	if err != nil {
		return domain.Recipe{}, err
	}

	rec := domain.Recipe{
		ID:          idx.New().String(),
		UserID:      userID,
		Title:       f.title,
		TimeMinutes: f.timeMinutes,
		Price:       f.price,
		Description: f.description,
	}

	// 2. Insert recipe, resolve ingredients and link them atomically
	err = s.Store.WithTx(ctx, func(tx store.Tx) error {
		if err := tx.Recipes().CreateRecipe(ctx, rec); err != nil {
			return err
		}
		if in.Ingredients == nil {
			return nil
		}

		ids, err := resolveIngredients(ctx, tx, userID, f.ingredients)
		if err != nil {
			return err
		}
		return tx.Recipes().SetRecipeIngredients(ctx, userID, rec.ID, ids)
	})
	if err != nil {
		log.Error("failed to create recipe", slog.Any("error", err))
		return domain.Recipe{}, err
	}

	log.Debug("recipe created", slog.String("recipe_id", rec.ID))
	return s.Get(ctx, userID, rec.ID)
}

// Update changes one of the user's recipes. The owner never changes. When
// Ingredients is supplied it replaces the association set; otherwise the
// associations are left alone.
func (s *RecipeService) Update(
	ctx context.Context,
	userID, id string,
	in RecipeInput,
	partial bool,
) (domain.Recipe, error) {
	log := slogx.FromContext(ctx)

	if _, err := s.Get(ctx, userID, id); err != nil {
		return domain.Recipe{}, err
	}

	f, err := validateRecipe(in, partial)
	if err != nil {
		return domain.Recipe{}, err
	}

	var patch store.RecipePatch
	if in.Title != nil {
		patch.Title = &f.title
	}
	if in.TimeMinutes != nil {
		patch.TimeMinutes = &f.timeMinutes
	}
	if in.Price != nil {
		patch.Price = &f.price
	}
	if in.Description != nil {
		patch.Description = &f.description
	}

	err = s.Store.WithTx(ctx, func(tx store.Tx) error {
		if err := tx.Recipes().UpdateRecipe(ctx, userID, id, patch); err != nil {
			return err
		}
		if in.Ingredients == nil {
			return nil
		}

		ids, err := resolveIngredients(ctx, tx, userID, f.ingredients)
		if err != nil {
			return err
		}
		return tx.Recipes().SetRecipeIngredients(ctx, userID, id, ids)
	})
	switch {
	case errors.Is(err, store.ErrNotFound):
		return domain.Recipe{}, ErrNotFound
	case err != nil:
		log.Error("failed to update recipe", slog.Any("error", err))
		return domain.Recipe{}, err
	}

	return s.Get(ctx, userID, id)
}

// Delete removes one of the user's recipes. Its ingredients are kept.
func (s *RecipeService) Delete(ctx context.Context, userID, id string) error {
	err := s.Store.Recipes().DeleteRecipe(ctx, userID, id)
	if errors.Is(err, store.ErrNotFound) {
		return ErrNotFound
	}
	return err
}

// resolveIngredients performs get-or-create by (user, name) for each ref
// and returns the resulting ids in order.
func resolveIngredients(ctx context.Context, tx store.Tx, userID string, refs []IngredientRef) ([]string, error) {
	log := slogx.FromContext(ctx)

	ids := make([]string, 0, len(refs))
	for _, ref := range refs {
		amount := domain.DefaultIngredientAmount
		if ref.Amount != nil {
			amount = *ref.Amount
		}

		ing, created, err := tx.Ingredients().GetOrCreateIngredient(ctx, domain.Ingredient{
			ID:     idx.New().String(),
			UserID: userID,
			Name:   ref.Name,
			Amount: amount,
		})
		if err != nil {
			return nil, fmt.Errorf("resolve ingredient %q: %w", ref.Name, err)
		}
		if created {
			log.Debug("ingredient created from recipe", slog.String("ingredient_id", ing.ID))
		}
		ids = append(ids, ing.ID)
	}
	return ids, nil
}

type recipeFields struct {
	title       string
	timeMinutes int
	price       decimal.Decimal
	description string
	ingredients []IngredientRef
}

func validateRecipe(in RecipeInput, partial bool) (recipeFields, error) {
	var f recipeFields
	v := &ValidationError{}

	if !partial {
		requireFields(v, map[string]bool{
			"title":        in.Title != nil,
			"time_minutes": in.TimeMinutes != nil,
			"price":        in.Price != nil,
		})
	}

	if in.Title != nil {
		f.title = checkText(v, "title", *in.Title, domain.MaxTitleLength)
	}
	if in.TimeMinutes != nil {
		f.timeMinutes = *in.TimeMinutes
		if f.timeMinutes < domain.MinTimeMinutes {
			v.Add("time_minutes", MsgMinutesMin)
		}
	}
	if in.Price != nil {
		p, err := domain.ParsePrice(*in.Price)
		if err != nil {
			v.Add("price", priceMessage(err))
		}
		f.price = p
	}
	if in.Description != nil {
		f.description = *in.Description
	}

	if in.Ingredients != nil {
		for i, ref := range *in.Ingredients {
			field := fmt.Sprintf("ingredients.%d", i)
			ref.Name = checkText(v, field+".name", ref.Name, domain.MaxNameLength)
			if ref.Amount != nil && *ref.Amount < domain.MinIngredientAmount {
				v.Add(field+".amount", MsgAmountMin)
			}
			f.ingredients = append(f.ingredients, ref)
		}
	}

	return f, v.Err()
}

// priceMessage renders a price error in the same sentence case as the other
// field messages.
func priceMessage(err error) string {
	msg := err.Error()
	if msg == "" {
		return msg
	}
	return strings.ToUpper(msg[:1]) + msg[1:] + "."
}
