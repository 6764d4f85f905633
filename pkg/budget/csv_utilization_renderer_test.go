package budget

import (
	"testing"

	"github.com/budgetly/budgetly/pkg/category"
	"github.com/budgetly/budgetly/pkg/money"
	"github.com/budgetly/budgetly/pkg/period"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCsvUtilizationRendererImpl_RenderUtilization(t *testing.T) {
	renderer := NewCsvUtilizationRenderer()

	t.Run("should render header and one row per budget", func(t *testing.T) {
		instances := []Instance{
			{
				Budget:      Budget{Id: 3, Type: TypeOverall, Amount: money.FromInt(100), Timeframe: period.Weekly},
				PeriodStart: period.Date(2023, 6, 12),
				PeriodEnd:   period.Date(2023, 6, 18),
				Expenditure: money.MustParse("25"),
				Utilization: decimal.RequireFromString("25"),
			},
			{
				Budget:      Budget{Id: 4, Type: TypeCategory, Category: category.FoodAndDrink, Amount: money.MustParse("3"), Timeframe: period.Monthly},
				PeriodStart: period.Date(2023, 6, 1),
				PeriodEnd:   period.Date(2023, 6, 30),
				Expenditure: money.MustParse("1"),
				Utilization: decimal.RequireFromString("33.3333"),
			},
		}

		rendered, err := renderer.RenderUtilization(instances)

		require.NoError(t, err)
		want := "Budget,Type,Category,Timeframe,Period start,Period end,Amount,Spent,Utilization %\n" +
			"3,Overall,,Weekly,2023-06-12,2023-06-18,100.00,25.00,25.0000\n" +
			"4,Category,Food and Drink,Monthly,2023-06-01,2023-06-30,3.00,1.00,33.3333\n"
		assert.Equal(t, want, rendered)
	})

	t.Run("should render only header without budgets", func(t *testing.T) {
		rendered, err := renderer.RenderUtilization(nil)

		require.NoError(t, err)
		assert.Equal(t, "Budget,Type,Category,Timeframe,Period start,Period end,Amount,Spent,Utilization %\n", rendered)
	})
}
