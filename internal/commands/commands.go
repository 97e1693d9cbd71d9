package commands

import (
	"github.com/shopspring/decimal"
)

// AddSweetCommand represents a command to add a sweet to the catalogue
type AddSweetCommand struct {
	Name     string
	Category string
	Price    decimal.Decimal
	Quantity int
}

// DeleteSweetCommand represents a command to remove a sweet
type DeleteSweetCommand struct {
	ID string
}

// PurchaseSweetCommand represents a command to sell units of a sweet
type PurchaseSweetCommand struct {
	ID       string
	Quantity int
}

// RestockSweetCommand represents a command to add units of a sweet
type RestockSweetCommand struct {
	ID       string
	Quantity int
}
