package budget

import (
	"github.com/budgetly/budgetly/pkg/category"
	"github.com/budgetly/budgetly/pkg/money"
	"github.com/budgetly/budgetly/pkg/period"
)

type Type string

const (
	TypeOverall  Type = "Overall"
	TypeCategory Type = "Category"
)

func (t Type) IsValid() bool {
	return t == TypeOverall || t == TypeCategory
}

type Budget struct {
	Id     int
	UserId int
	Type   Type
	// Category is set only for TypeCategory budgets.
	Category  category.Category
	Amount    money.Money
	Timeframe period.Timeframe
}

func (b Budget) Equal(other Budget) bool {
	return b.Id == other.Id &&
		b.UserId == other.UserId &&
		b.Type == other.Type &&
		b.Category == other.Category &&
		b.Amount.Equal(other.Amount) &&
		b.Timeframe == other.Timeframe
}

// conflictsWith reports whether both budgets cap the same spending over the same timeframe.
func (b Budget) conflictsWith(other Budget) bool {
	if b.UserId != other.UserId || b.Type != other.Type || b.Timeframe != other.Timeframe {
		return false
	}
	return b.Type != TypeCategory || b.Category == other.Category
}
