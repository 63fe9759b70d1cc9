package domain

import "time"

// Ingredient belongs to exactly one user; (UserID, Name) is unique.
type Ingredient struct {
	ID        string
	UserID    string
	Name      string
	Amount    int
	CreatedAt time.Time
	UpdatedAt time.Time
}

// IngredientWithOwner is the admin listing row.
type IngredientWithOwner struct {
	Ingredient
	OwnerEmail string
}
