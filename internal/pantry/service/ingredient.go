package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/aussiebroadwan/pantry/internal/pantry/domain"
	"github.com/aussiebroadwan/pantry/internal/pantry/store"
	"github.com/aussiebroadwan/pantry/pkg/idx"
	"github.com/aussiebroadwan/pantry/pkg/slogx"
)

// IngredientInput is the writable part of an ingredient. A nil field was
// not supplied by the caller.
type IngredientInput struct {
	Name   *string
	Amount *int
}

// IngredientService is the ingredient resource. Every call is scoped to
// the calling user; another user's ingredient is reported as ErrNotFound.
type IngredientService struct {
	Store store.Store
}

// List returns the user's ingredients, newest first.
func (s *IngredientService) List(ctx context.Context, userID string) ([]domain.Ingredient, error) {
	return s.Store.Ingredients().ListIngredients(ctx, userID)
}

// Get returns one of the user's ingredients.
func (s *IngredientService) Get(ctx context.Context, userID, id string) (domain.Ingredient, error) {
	ing, err := s.Store.Ingredients().GetIngredient(ctx, userID, id)
	if errors.Is(err, store.ErrNotFound) {
		return domain.Ingredient{}, ErrNotFound
	}
	return ing, err
}

// Create adds an ingredient owned by userID. Both fields are required.
func (s *IngredientService) Create(ctx context.Context, userID string, in IngredientInput) (domain.Ingredient, error) {
	log := slogx.FromContext(ctx)

	name, amount, err := validateIngredient(in, false)
	if err != nil {
		return domain.Ingredient{}, err
	}

	ing := domain.Ingredient{
		ID:     idx.New().String(),
		UserID: userID,
		Name:   name,
		Amount: amount,
	}
	if err := s.Store.Ingredients().CreateIngredient(ctx, ing); err != nil {
		if errors.Is(err, store.ErrAlreadyExists) {
			return domain.Ingredient{}, NewValidationError("name", MsgNameTaken)
		}
		log.Error("failed to create ingredient", slog.Any("error", err))
		return domain.Ingredient{}, err
	}

	log.Debug("ingredient created", slog.String("ingredient_id", ing.ID))
	return s.Get(ctx, userID, ing.ID)
}

// Update changes one of the user's ingredients. With partial false both
// fields must be supplied; with partial true only supplied fields change.
func (s *IngredientService) Update(
	ctx context.Context,
	userID, id string,
	in IngredientInput,
	partial bool,
) (domain.Ingredient, error) {
	log := slogx.FromContext(ctx)

	// Ownership first so a foreign id is a 404 even when the body is invalid.
	if _, err := s.Get(ctx, userID, id); err != nil {
		return domain.Ingredient{}, err
	}

	name, amount, err := validateIngredient(in, partial)
	if err != nil {
		return domain.Ingredient{}, err
	}

	var patch store.IngredientPatch
	if in.Name != nil {
		patch.Name = &name
	}
	if in.Amount != nil {
		patch.Amount = &amount
	}

	ing, err := s.Store.Ingredients().UpdateIngredient(ctx, userID, id, patch)
	switch {
	case errors.Is(err, store.ErrNotFound):
		return domain.Ingredient{}, ErrNotFound
	case errors.Is(err, store.ErrAlreadyExists):
		return domain.Ingredient{}, NewValidationError("name", MsgNameTaken)
	case err != nil:
		log.Error("failed to update ingredient", slog.Any("error", err))
		return domain.Ingredient{}, err
	}
	return ing, nil
}

// Delete removes one of the user's ingredients and its recipe associations.
func (s *IngredientService) Delete(ctx context.Context, userID, id string) error {
	err := s.Store.Ingredients().DeleteIngredient(ctx, userID, id)
	if errors.Is(err, store.ErrNotFound) {
		return ErrNotFound
	}
	return err
}

func validateIngredient(in IngredientInput, partial bool) (name string, amount int, err error) {
	v := &ValidationError{}
	if !partial {
		requireFields(v, map[string]bool{
			"name":   in.Name != nil,
			"amount": in.Amount != nil,
		})
	}
	if in.Name != nil {
		name = checkText(v, "name", *in.Name, domain.MaxNameLength)
	}
	if in.Amount != nil {
		amount = *in.Amount
		if amount < domain.MinIngredientAmount {
			v.Add("amount", MsgAmountMin)
		}
	}
	return name, amount, v.Err()
}
