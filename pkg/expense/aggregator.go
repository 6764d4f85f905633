package expense

import (
	"sort"

	"github.com/budgetly/budgetly/pkg/category"
	"github.com/budgetly/budgetly/pkg/money"
	"github.com/budgetly/budgetly/pkg/period"
)

type Filter struct {
	UserId int
	Range  period.Period
	// Categories to keep; empty keeps the whole catalog.
	Categories []category.Category
}

// FilterAndSum keeps the expenses owned by filter.UserId, dated within filter.Range (inclusive)
// and in one of filter.Categories. The result is ordered most recent first, keeping the input
// order for equal dates, together with the exact sum of the kept amounts.
func FilterAndSum(expenses []Expense, filter Filter) ([]Expense, money.Money) {
	categories := filter.Categories
	if len(categories) == 0 {
		categories = category.All()
	}
	wanted := make(map[category.Category]struct{}, len(categories))
	for _, c := range categories {
		wanted[c] = struct{}{}
	}

	matching := make([]Expense, 0, len(expenses))
	total := money.Zero()
	for _, e := range expenses {
		if e.UserId != filter.UserId || !filter.Range.Contains(e.Date) {
			continue
		}
		if _, ok := wanted[e.Category]; !ok {
			continue
		}
		matching = append(matching, e)
		total = total.Add(e.Amount)
	}

	sort.SliceStable(matching, func(i, j int) bool {
		return matching[i].Date.After(matching[j].Date)
	})
	return matching, total
}
