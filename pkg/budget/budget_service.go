package budget

import (
	"context"
	"errors"
	"fmt"

	"github.com/budgetly/budgetly/internal/apperr"
	"github.com/budgetly/budgetly/internal/event_bus"
	"github.com/budgetly/budgetly/internal/utils"
	"github.com/budgetly/budgetly/pkg/category"
	"github.com/budgetly/budgetly/pkg/expense"
	"github.com/budgetly/budgetly/pkg/period"
	"github.com/budgetly/budgetly/pkg/user"
	log "github.com/sirupsen/logrus"
)

var ErrNotOwner = apperr.NotAuthorized("You are not authorized to modify this budget.")

type Service interface {
	List(ctx context.Context) ([]Budget, error)
	Create(ctx context.Context, budget Budget) (Budget, error)
	Update(ctx context.Context, id int, budget Budget) (Budget, error)
	Delete(ctx context.Context, id int) error
	// CurrentUtilization reports every budget of the current user over its timeframe's current period.
	CurrentUtilization(ctx context.Context) ([]Instance, error)
}

type ExpenseReader interface {
	FindByUser(ctx context.Context, userId int) ([]expense.Expense, error)
}

type ServiceImpl struct {
	repo     Repository
	expenses ExpenseReader
	clock    utils.Clock
}

func NewService(repo Repository, expenses ExpenseReader, clock utils.Clock, eventBus *event_bus.EventBus) *ServiceImpl {
	service := &ServiceImpl{repo: repo, expenses: expenses, clock: clock}
	event_bus.SubscribeTyped[event_bus.ExpenseRecorded](
		eventBus,
		event_bus.ExpenseRecordedEvent,
		func(e event_bus.EventT[event_bus.ExpenseRecorded]) error {
			log.Debugf("received expense recorded event: %+v", e.Data)
			if err := service.warnIfOverBudget(e.Context(), e.Data); err != nil {
				log.Errorf("failed to check budgets after expense %d: %v", e.Data.ExpenseId, err)
				return err
			}
			return nil
		},
	)
	return service
}

func (s *ServiceImpl) List(ctx context.Context) ([]Budget, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get current user: %w", err)
	}
	return s.repo.FindByUser(ctx, userId)
}

func (s *ServiceImpl) Create(ctx context.Context, budget Budget) (Budget, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return Budget{}, fmt.Errorf("failed to get current user: %w", err)
	}

	budget = normalize(budget)
	budget.Id = 0
	budget.UserId = userId
	existing, err := s.repo.FindByUser(ctx, userId)
	if err != nil {
		return Budget{}, err
	}
	if err := Validate(budget, existing); err != nil {
		return Budget{}, err
	}

	return s.repo.Save(ctx, budget)
}

// Update replaces budget id. The body's own Id may be 0 or must equal id.
func (s *ServiceImpl) Update(ctx context.Context, id int, budget Budget) (Budget, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return Budget{}, fmt.Errorf("failed to get current user: %w", err)
	}
	if budget.Id != 0 && budget.Id != id {
		return Budget{}, apperr.Invalid("Budget IDs in path and request body do not match.")
	}
	if _, err := s.findOwned(ctx, id, userId); err != nil {
		return Budget{}, err
	}

	budget = normalize(budget)
	budget.Id = id
	budget.UserId = userId
	existing, err := s.repo.FindByUser(ctx, userId)
	if err != nil {
		return Budget{}, err
	}
	if err := Validate(budget, existing); err != nil {
		return Budget{}, err
	}

	return s.repo.Save(ctx, budget)
}

func (s *ServiceImpl) Delete(ctx context.Context, id int) error {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return fmt.Errorf("failed to get current user: %w", err)
	}
	if _, err := s.findOwned(ctx, id, userId); err != nil {
		return err
	}
	return s.repo.DeleteById(ctx, id)
}

func (s *ServiceImpl) CurrentUtilization(ctx context.Context) ([]Instance, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get current user: %w", err)
	}
	return s.utilizationOf(ctx, userId)
}

func (s *ServiceImpl) utilizationOf(ctx context.Context, userId int) ([]Instance, error) {
	budgets, err := s.repo.FindByUser(ctx, userId)
	if err != nil {
		return nil, err
	}
	if len(budgets) == 0 {
		return []Instance{}, nil
	}
	expenses, err := s.expenses.FindByUser(ctx, userId)
	if err != nil {
		return nil, err
	}

	today := s.clock.Today()
	instances := make([]Instance, 0, len(budgets))
	for _, b := range budgets {
		current := period.Resolve(b.Timeframe, today)
		_, spent := expense.FilterAndSum(expenses, expense.Filter{
			UserId:     userId,
			Range:      current,
			Categories: b.categories(),
		})
		instance, err := BuildInstance(b, current, spent)
		if err != nil {
			return nil, err
		}
		instances = append(instances, instance)
	}
	return instances, nil
}

func (s *ServiceImpl) findOwned(ctx context.Context, id int, userId int) (Budget, error) {
	existing, err := s.repo.FindById(ctx, id)
	if errors.Is(err, ErrBudgetNotFound) {
		return Budget{}, ErrBudgetNotFound
	} else if err != nil {
		return Budget{}, err
	}
	if existing.UserId != userId {
		log.Warnf("user %d tried to modify budget %d owned by user %d", userId, id, existing.UserId)
		return Budget{}, ErrNotOwner
	}
	return existing, nil
}

func (s *ServiceImpl) warnIfOverBudget(ctx context.Context, recorded event_bus.ExpenseRecorded) error {
	instances, err := s.utilizationOf(ctx, recorded.UserId)
	if err != nil {
		return err
	}
	for _, instance := range instances {
		b := instance.Budget
		if b.Type == TypeCategory && string(b.Category) != recorded.Category {
			continue
		}
		current := period.Period{Start: instance.PeriodStart, End: instance.PeriodEnd}
		if !current.Contains(recorded.Date) || !instance.IsOverBudget() {
			continue
		}
		log.Warnf("user %d is over budget %d (%s %s %s): spent %s of %s, %s%%",
			recorded.UserId, b.Id, b.Timeframe, b.Type, b.Category,
			instance.Expenditure, b.Amount, instance.Utilization.StringFixed(4))
	}
	return nil
}

// categories is the filter a budget applies to expenses; Overall budgets count every category.
func (b Budget) categories() []category.Category {
	if b.Type == TypeCategory {
		return []category.Category{b.Category}
	}
	return category.All()
}
