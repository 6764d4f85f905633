package budget

import (
	"time"

	"github.com/budgetly/budgetly/internal/apperr"
	"github.com/budgetly/budgetly/pkg/money"
	"github.com/budgetly/budgetly/pkg/period"
	"github.com/shopspring/decimal"
)

// Instance is a budget's state over one concrete period. It is computed on demand and never stored.
type Instance struct {
	Budget      Budget
	PeriodStart time.Time
	PeriodEnd   time.Time
	Expenditure money.Money
	// Utilization is the share of Budget.Amount spent, in percent with 4 fractional digits.
	Utilization decimal.Decimal
}

func (i Instance) IsOverBudget() bool {
	return i.Utilization.GreaterThanOrEqual(decimal.NewFromInt(100))
}

func BuildInstance(b Budget, p period.Period, expenditure money.Money) (Instance, error) {
	utilization, err := expenditure.Percentage(b.Amount)
	if err != nil {
		return Instance{}, apperr.Invalid("Budget %d has no amount to measure utilization against.", b.Id)
	}
	return Instance{
		Budget:      b,
		PeriodStart: p.Start,
		PeriodEnd:   p.End,
		Expenditure: expenditure,
		Utilization: utilization,
	}, nil
}
