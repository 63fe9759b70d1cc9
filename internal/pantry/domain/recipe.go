package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Recipe belongs to exactly one user and references any number of that
// user's ingredients.
type Recipe struct {
	ID          string
	UserID      string
	Title       string
	TimeMinutes int
	Price       decimal.Decimal
	Description string
	Ingredients []Ingredient
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
