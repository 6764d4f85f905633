package budget

import (
	"context"
	"sort"
)

type StubBudgetRepo struct {
	nextId int
	data   map[int]Budget
	Saves  int
}

func NewStubBudgetRepo() *StubBudgetRepo {
	return &StubBudgetRepo{data: map[int]Budget{}}
}

func (s *StubBudgetRepo) FindByUser(ctx context.Context, userId int) ([]Budget, error) {
	budgets := make([]Budget, 0, len(s.data))
	for _, budget := range s.data {
		if budget.UserId == userId {
			budgets = append(budgets, budget)
		}
	}
	sort.Slice(budgets, func(i, j int) bool { return budgets[i].Id < budgets[j].Id })
	return budgets, nil
}

func (s *StubBudgetRepo) Save(ctx context.Context, budget Budget) (Budget, error) {
	s.Saves++
	if budget.Id == 0 {
		s.nextId++
		budget.Id = s.nextId
	} else if _, ok := s.data[budget.Id]; !ok {
		return Budget{}, ErrBudgetNotFound
	}
	s.data[budget.Id] = budget
	return budget, nil
}

func (s *StubBudgetRepo) FindById(ctx context.Context, id int) (Budget, error) {
	budget, ok := s.data[id]
	if !ok {
		return Budget{}, ErrBudgetNotFound
	}
	return budget, nil
}

func (s *StubBudgetRepo) DeleteById(ctx context.Context, id int) error {
	if _, ok := s.data[id]; !ok {
		return ErrBudgetNotFound
	}
	delete(s.data, id)
	return nil
}

func (s *StubBudgetRepo) Cleanup() {
	s.nextId = 0
	s.data = map[int]Budget{}
	s.Saves = 0
}
