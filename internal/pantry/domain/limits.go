package domain

// Field limits shared by validation and the schema.
const (
	MaxEmailLength = 255
	MaxNameLength  = 255
	MaxTitleLength = 255

	MinPasswordLength = 5
	MaxPasswordLength = 128

	MinIngredientAmount     = 1
	DefaultIngredientAmount = MinIngredientAmount
	MinTimeMinutes          = 0

	PriceMaxDigits     = 5
	PriceDecimalPlaces = 2
)
