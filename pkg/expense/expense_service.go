package expense

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/budgetly/budgetly/internal/apperr"
	"github.com/budgetly/budgetly/internal/event_bus"
	"github.com/budgetly/budgetly/internal/utils"
	"github.com/budgetly/budgetly/pkg/category"
	"github.com/budgetly/budgetly/pkg/money"
	"github.com/budgetly/budgetly/pkg/period"
	"github.com/budgetly/budgetly/pkg/user"
	log "github.com/sirupsen/logrus"
)

var ErrNotOwner = apperr.NotAuthorized("You are not authorized to perform this transaction.")

type Service interface {
	Create(ctx context.Context, expense Expense) (Expense, error)
	List(ctx context.Context, query ListQuery) (Listing, error)
	Update(ctx context.Context, id int, expense Expense) (Expense, error)
	Delete(ctx context.Context, id int) error
}

// ListQuery leaves StartDate and EndDate nil to list the current month. They must be given together.
type ListQuery struct {
	StartDate  *time.Time
	EndDate    *time.Time
	Categories []category.Category
}

type Listing struct {
	Expenses   []Expense
	Total      money.Money
	StartDate  time.Time
	EndDate    time.Time
	Categories []category.Category
}

type ServiceImpl struct {
	repo     Repository
	clock    utils.Clock
	eventBus *event_bus.EventBus
}

func NewService(repo Repository, clock utils.Clock, eventBus *event_bus.EventBus) *ServiceImpl {
	return &ServiceImpl{repo: repo, clock: clock, eventBus: eventBus}
}

func (s *ServiceImpl) Create(ctx context.Context, expense Expense) (Expense, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return Expense{}, fmt.Errorf("failed to get current user: %w", err)
	}
	if err := Validate(expense); err != nil {
		return Expense{}, err
	}

	expense.Id = 0
	expense.UserId = userId
	expense.Date = period.DateOf(expense.Date)
	created, err := s.repo.Save(ctx, expense)
	if err != nil {
		return Expense{}, err
	}
	s.publishRecorded(ctx, created)
	return created, nil
}

func (s *ServiceImpl) List(ctx context.Context, query ListQuery) (Listing, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return Listing{}, fmt.Errorf("failed to get current user: %w", err)
	}

	dateRange, err := s.resolveRange(query)
	if err != nil {
		return Listing{}, err
	}
	categories := query.Categories
	if len(categories) == 0 {
		categories = category.All()
	}
	for _, c := range categories {
		if !category.IsValid(c) {
			return Listing{}, apperr.New(apperr.ErrInvalidInput, category.InvalidMessage())
		}
	}

	found, err := s.repo.FindByUserAndDateRangeAndCategories(ctx, userId, dateRange.Start, dateRange.End, categories)
	if err != nil {
		return Listing{}, err
	}
	expenses, total := FilterAndSum(found, Filter{UserId: userId, Range: dateRange, Categories: categories})

	return Listing{
		Expenses:   expenses,
		Total:      total,
		StartDate:  dateRange.Start,
		EndDate:    dateRange.End,
		Categories: categories,
	}, nil
}

func (s *ServiceImpl) resolveRange(query ListQuery) (period.Period, error) {
	if (query.StartDate == nil) != (query.EndDate == nil) {
		return period.Period{}, apperr.Invalid("Start date and end date must either both be provided, or both not provided.")
	}
	if query.StartDate == nil {
		return period.Month(s.clock.Today()), nil
	}
	start, end := period.DateOf(*query.StartDate), period.DateOf(*query.EndDate)
	if start.After(end) {
		return period.Period{}, apperr.Invalid("Start date cannot be after end date.")
	}
	return period.Period{Start: start, End: end}, nil
}

// Update replaces the stored expense id. The body's own Id may be 0 or must equal id.
func (s *ServiceImpl) Update(ctx context.Context, id int, expense Expense) (Expense, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return Expense{}, fmt.Errorf("failed to get current user: %w", err)
	}
	if expense.Id != 0 && expense.Id != id {
		return Expense{}, apperr.Invalid("Expense IDs in path and request body do not match.")
	}

	if _, err := s.findOwned(ctx, id, userId); err != nil {
		return Expense{}, err
	}
	if err := Validate(expense); err != nil {
		return Expense{}, err
	}

	expense.Id = id
	expense.UserId = userId
	expense.Date = period.DateOf(expense.Date)
	updated, err := s.repo.Save(ctx, expense)
	if err != nil {
		return Expense{}, err
	}
	s.publishRecorded(ctx, updated)
	return updated, nil
}

func (s *ServiceImpl) Delete(ctx context.Context, id int) error {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return fmt.Errorf("failed to get current user: %w", err)
	}
	if _, err := s.findOwned(ctx, id, userId); err != nil {
		return err
	}
	if err := s.repo.DeleteById(ctx, id); err != nil {
		return err
	}

	err = s.eventBus.Publish(event_bus.NewEvent(ctx, event_bus.ExpenseDeletedEvent, event_bus.ExpenseDeleted{
		UserId:    userId,
		ExpenseId: id,
	}))
	if err != nil {
		log.Warnf("failed to publish expense deleted event: %v", err)
	}
	return nil
}

func (s *ServiceImpl) findOwned(ctx context.Context, id int, userId int) (Expense, error) {
	existing, err := s.repo.FindById(ctx, id)
	if errors.Is(err, ErrExpenseNotFound) {
		return Expense{}, ErrExpenseNotFound
	} else if err != nil {
		return Expense{}, err
	}
	if existing.UserId != userId {
		log.Warnf("user %d tried to modify expense %d owned by user %d", userId, id, existing.UserId)
		return Expense{}, ErrNotOwner
	}
	return existing, nil
}

// The expense is already stored, so subscriber failures are only logged.
func (s *ServiceImpl) publishRecorded(ctx context.Context, expense Expense) {
	err := s.eventBus.Publish(event_bus.NewEvent(ctx, event_bus.ExpenseRecordedEvent, event_bus.ExpenseRecorded{
		UserId:    expense.UserId,
		ExpenseId: expense.Id,
		Date:      expense.Date,
		Category:  string(expense.Category),
		Amount:    expense.Amount.Decimal(),
	}))
	if err != nil {
		log.Warnf("failed to publish expense recorded event: %v", err)
	}
}
