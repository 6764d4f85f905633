package budget

import (
	"github.com/budgetly/budgetly/internal/apperr"
	"github.com/budgetly/budgetly/pkg/category"
)

var ErrDuplicateBudget = apperr.Duplicate("A budget with the same type, category and timeframe already exists.")

// Validate checks b against the structural rules and against the owner's existing budgets.
// The first failing rule is returned. A budget in existing with b's Id is b's own prior
// version and never counts as a duplicate.
func Validate(b Budget, existing []Budget) error {
	if !b.Type.IsValid() {
		return apperr.Invalid("Type must be either 'Overall' or 'Category'.")
	}
	if b.Type == TypeCategory && !category.IsValid(b.Category) {
		return apperr.New(apperr.ErrInvalidInput, category.InvalidMessage())
	}
	if b.Amount.IsNegative() {
		return apperr.Invalid("Amount cannot be negative.")
	}
	if b.Amount.IsZero() {
		return apperr.Invalid("Amount must be greater than zero.")
	}
	if !b.Timeframe.IsValid() {
		return apperr.Invalid("Timeframe must be one of 'Daily', 'Weekly', 'Monthly', 'Quarterly', 'Yearly'.")
	}

	for _, other := range existing {
		if b.Id != 0 && other.Id == b.Id {
			continue
		}
		if b.conflictsWith(other) {
			return ErrDuplicateBudget
		}
	}
	return nil
}

// normalize drops the category of Overall budgets, which is ignored.
func normalize(b Budget) Budget {
	if b.Type == TypeOverall {
		b.Category = ""
	}
	return b
}
