package category

import (
	"strings"

	"github.com/budgetly/budgetly/internal/apperr"
)

type Category string

const (
	FoodAndDrink      Category = "Food and Drink"
	UtilitiesAndBills Category = "Utilities and Bills"
	Transport         Category = "Transport"
	Leisure           Category = "Leisure"
)

var catalog = [...]Category{FoodAndDrink, UtilitiesAndBills, Transport, Leisure}

// All returns a fresh copy of the catalog in its canonical order.
func All() []Category {
	all := make([]Category, len(catalog))
	copy(all, catalog[:])
	return all
}

func IsValid(c Category) bool {
	for _, known := range catalog {
		if known == c {
			return true
		}
	}
	return false
}

// Parse accepts exact catalog names only.
func Parse(value string) (Category, error) {
	c := Category(value)
	if !IsValid(c) {
		return "", apperr.New(apperr.ErrInvalidInput, InvalidMessage())
	}
	return c, nil
}

// InvalidMessage is used wherever a category outside the catalog is rejected.
func InvalidMessage() string {
	quoted := make([]string, 0, len(catalog))
	for _, c := range catalog {
		quoted = append(quoted, "'"+string(c)+"'")
	}
	return "Category must be one of the following: " + strings.Join(quoted, ", ") + "."
}
