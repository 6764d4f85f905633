package expense

import (
	"time"

	"github.com/budgetly/budgetly/internal/apperr"
	"github.com/budgetly/budgetly/pkg/category"
	"github.com/budgetly/budgetly/pkg/money"
)

type Expense struct {
	Id          int
	UserId      int
	Date        time.Time // calendar day, midnight UTC
	Amount      money.Money
	Category    category.Category
	Description string
}

// Equal compares every field; amounts are compared numerically.
func (e Expense) Equal(other Expense) bool {
	return e.Id == other.Id &&
		e.UserId == other.UserId &&
		e.Date.Equal(other.Date) &&
		e.Amount.Equal(other.Amount) &&
		e.Category == other.Category &&
		e.Description == other.Description
}

// Validate checks the fields a caller controls. Ownership is not its concern.
func Validate(e Expense) error {
	if e.Amount.IsNegative() {
		return apperr.Invalid("Amount cannot be negative.")
	}
	if !category.IsValid(e.Category) {
		return apperr.New(apperr.ErrInvalidInput, category.InvalidMessage())
	}
	if e.Date.IsZero() {
		return apperr.Invalid("Date is required.")
	}
	return nil
}
