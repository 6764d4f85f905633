package budget

import (
	"testing"

	"github.com/budgetly/budgetly/internal/apperr"
	"github.com/budgetly/budgetly/pkg/category"
	"github.com/budgetly/budgetly/pkg/money"
	"github.com/budgetly/budgetly/pkg/period"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidate(t *testing.T) {
	overallWeekly := Budget{Id: 1, UserId: 1, Type: TypeOverall, Amount: money.FromInt(100), Timeframe: period.Weekly}
	foodMonthly := Budget{Id: 2, UserId: 1, Type: TypeCategory, Category: category.FoodAndDrink, Amount: money.FromInt(50), Timeframe: period.Monthly}
	existing := []Budget{overallWeekly, foodMonthly}

	tests := []struct {
		name    string
		budget  Budget
		kind    error
		message string
	}{
		{
			name:   "valid new category budget",
			budget: Budget{UserId: 1, Type: TypeCategory, Category: category.Transport, Amount: money.FromInt(10), Timeframe: period.Monthly},
		},
		{
			name:    "unknown type",
			budget:  Budget{UserId: 1, Type: "overall", Amount: money.FromInt(10), Timeframe: period.Daily},
			kind:    apperr.ErrInvalidInput,
			message: "Type must be either 'Overall' or 'Category'.",
		},
		{
			name:    "category budget without category",
			budget:  Budget{UserId: 1, Type: TypeCategory, Amount: money.FromInt(10), Timeframe: period.Daily},
			kind:    apperr.ErrInvalidInput,
			message: category.InvalidMessage(),
		},
		{
			name:    "negative amount",
			budget:  Budget{UserId: 1, Type: TypeOverall, Amount: money.MustParse("-0.01"), Timeframe: period.Daily},
			kind:    apperr.ErrInvalidInput,
			message: "Amount cannot be negative.",
		},
		{
			name:   "zero amount",
			budget: Budget{UserId: 1, Type: TypeOverall, Amount: money.Zero(), Timeframe: period.Daily},
			kind:   apperr.ErrInvalidInput,
		},
		{
			name:   "unknown timeframe",
			budget: Budget{UserId: 1, Type: TypeOverall, Amount: money.FromInt(1), Timeframe: "Fortnightly"},
			kind:   apperr.ErrInvalidInput,
		},
		{
			name:    "type checked before category",
			budget:  Budget{UserId: 1, Type: "Other", Category: "Rent", Amount: money.FromInt(-1), Timeframe: "Never"},
			kind:    apperr.ErrInvalidInput,
			message: "Type must be either 'Overall' or 'Category'.",
		},
		{
			name:   "duplicate overall weekly",
			budget: Budget{UserId: 1, Type: TypeOverall, Amount: money.FromInt(300), Timeframe: period.Weekly},
			kind:   apperr.ErrDuplicateBudget,
		},
		{
			name:   "duplicate category monthly",
			budget: Budget{UserId: 1, Type: TypeCategory, Category: category.FoodAndDrink, Amount: money.FromInt(1), Timeframe: period.Monthly},
			kind:   apperr.ErrDuplicateBudget,
		},
		{
			name:   "same category with other timeframe",
			budget: Budget{UserId: 1, Type: TypeCategory, Category: category.FoodAndDrink, Amount: money.FromInt(1), Timeframe: period.Yearly},
		},
		{
			name:   "overall and category budgets do not collide",
			budget: Budget{UserId: 1, Type: TypeCategory, Category: category.Leisure, Amount: money.FromInt(1), Timeframe: period.Weekly},
		},
		{
			name:   "another user's budget does not collide",
			budget: Budget{UserId: 2, Type: TypeOverall, Amount: money.FromInt(100), Timeframe: period.Weekly},
		},
		{
			name:   "unchanged budget does not collide with itself",
			budget: overallWeekly,
		},
		{
			name:   "updated budget moving onto another's slot",
			budget: Budget{Id: 2, UserId: 1, Type: TypeOverall, Amount: money.FromInt(1), Timeframe: period.Weekly},
			kind:   apperr.ErrDuplicateBudget,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(tt.budget, existing)

			if tt.kind == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.kind)
			if tt.message != "" {
				assert.EqualError(t, err, tt.message)
			}
		})
	}
}

func TestBuildInstance(t *testing.T) {
	june := period.Resolve(period.Monthly, period.Date(2023, 6, 15))

	tests := []struct {
		name        string
		amount      string
		expenditure string
		want        string
	}{
		{"quarter spent", "100.00", "25.00", "25.0000"},
		{"one third rounds down", "3.00", "1.00", "33.3333"},
		{"two thirds rounds up", "3.00", "2.00", "66.6667"},
		{"exact half rounds up", "2000000", "1", "0.0001"},
		{"nothing spent", "10", "0", "0.0000"},
		{"overspent", "80", "100", "125.0000"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := Budget{Id: 1, Type: TypeOverall, Amount: money.MustParse(tt.amount), Timeframe: period.Monthly}

			instance, err := BuildInstance(b, june, money.MustParse(tt.expenditure))

			require.NoError(t, err)
			assert.Equal(t, tt.want, instance.Utilization.StringFixed(4))
			assert.Equal(t, period.Date(2023, 6, 1), instance.PeriodStart)
			assert.Equal(t, period.Date(2023, 6, 30), instance.PeriodEnd)
			assert.True(t, instance.Expenditure.Equal(money.MustParse(tt.expenditure)))
		})
	}

	t.Run("should reject zero amount", func(t *testing.T) {
		_, err := BuildInstance(Budget{Type: TypeOverall, Amount: money.Zero()}, june, money.FromInt(1))

		assert.ErrorIs(t, err, apperr.ErrInvalidInput)
	})

	t.Run("should flag budgets at or above the cap", func(t *testing.T) {
		b := Budget{Type: TypeOverall, Amount: money.FromInt(10)}

		atCap, _ := BuildInstance(b, june, money.FromInt(10))
		below, _ := BuildInstance(b, june, money.MustParse("9.99"))

		assert.True(t, atCap.IsOverBudget())
		assert.False(t, below.IsOverBudget())
	})
}
