package expense

import (
	"context"
	"sort"
	"time"

	"github.com/budgetly/budgetly/pkg/category"
	"github.com/budgetly/budgetly/pkg/period"
)

type StubExpenseRepo struct {
	nextId   int
	expenses map[int]Expense
	// Saves counts Save calls, so tests can assert nothing was written.
	Saves   int
	Deletes int
}

func NewStubExpenseRepo() *StubExpenseRepo {
	return &StubExpenseRepo{expenses: map[int]Expense{}}
}

func (s *StubExpenseRepo) Save(ctx context.Context, expense Expense) (Expense, error) {
	s.Saves++
	if expense.Id == 0 {
		s.nextId++
		expense.Id = s.nextId
	} else if _, ok := s.expenses[expense.Id]; !ok {
		return Expense{}, ErrExpenseNotFound
	}
	s.expenses[expense.Id] = expense
	return expense, nil
}

func (s *StubExpenseRepo) FindById(ctx context.Context, id int) (Expense, error) {
	expense, ok := s.expenses[id]
	if !ok {
		return Expense{}, ErrExpenseNotFound
	}
	return expense, nil
}

func (s *StubExpenseRepo) ExistsById(ctx context.Context, id int) (bool, error) {
	_, ok := s.expenses[id]
	return ok, nil
}

func (s *StubExpenseRepo) FindByUser(ctx context.Context, userId int) ([]Expense, error) {
	var result []Expense
	for _, e := range s.sorted() {
		if e.UserId == userId {
			result = append(result, e)
		}
	}
	return result, nil
}

func (s *StubExpenseRepo) FindByUserAndDateRangeAndCategories(
	ctx context.Context,
	userId int,
	start, end time.Time,
	categories []category.Category,
) ([]Expense, error) {
	result, _ := FilterAndSum(s.sorted(), Filter{
		UserId:     userId,
		Range:      period.Period{Start: start, End: end},
		Categories: categories,
	})
	return result, nil
}

func (s *StubExpenseRepo) DeleteById(ctx context.Context, id int) error {
	if _, ok := s.expenses[id]; !ok {
		return ErrExpenseNotFound
	}
	s.Deletes++
	delete(s.expenses, id)
	return nil
}

func (s *StubExpenseRepo) sorted() []Expense {
	all := make([]Expense, 0, len(s.expenses))
	for _, e := range s.expenses {
		all = append(all, e)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].Id < all[j].Id })
	return all
}

func (s *StubExpenseRepo) Cleanup() {
	s.nextId = 0
	s.expenses = map[int]Expense{}
	s.Saves = 0
	s.Deletes = 0
}
