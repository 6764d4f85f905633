package budget

import (
	"context"
	"errors"
	"fmt"

	"github.com/budgetly/budgetly/internal/apperr"
	"github.com/budgetly/budgetly/pkg/category"
	"github.com/budgetly/budgetly/pkg/money"
	"github.com/budgetly/budgetly/pkg/period"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	log "github.com/sirupsen/logrus"
)

var ErrBudgetNotFound = apperr.NotFound("Could not find budget with that ID.")

type Repository interface {
	FindByUser(ctx context.Context, userId int) ([]Budget, error)
	// Save inserts the budget when Id is 0 and overwrites the stored one otherwise.
	Save(ctx context.Context, budget Budget) (Budget, error)
	FindById(ctx context.Context, id int) (Budget, error)
	DeleteById(ctx context.Context, id int) error
}

type RepositoryImpl struct {
	db *pgxpool.Pool
}

func NewRepository(db *pgxpool.Pool) *RepositoryImpl {
	return &RepositoryImpl{db: db}
}

const selectBudget = `SELECT id, user_id, type, COALESCE(category, ''), amount::text, timeframe FROM budget`

func (r *RepositoryImpl) FindByUser(ctx context.Context, userId int) ([]Budget, error) {
	rows, err := r.db.Query(ctx, selectBudget+` WHERE user_id = $1 ORDER BY id`, userId)
	if err != nil {
		err := fmt.Errorf("could not query budgets: %w", err)
		log.Error(err)
		return nil, err
	}
	budgets, err := pgx.CollectRows(rows, scanBudget)
	if err != nil {
		err := fmt.Errorf("could not read budgets: %w", err)
		log.Error(err)
		return nil, err
	}
	return budgets, nil
}

func (r *RepositoryImpl) Save(ctx context.Context, budget Budget) (Budget, error) {
	if budget.Id == 0 {
		query := `INSERT INTO budget (user_id, type, category, amount, timeframe)
                  VALUES ($1, $2, $3, $4::text::numeric, $5) RETURNING id`
		err := r.db.QueryRow(ctx, query,
			budget.UserId,
			string(budget.Type),
			nullableCategory(budget.Category),
			budget.Amount.String(),
			string(budget.Timeframe),
		).Scan(&budget.Id)
		if err != nil {
			err := fmt.Errorf("could not insert budget: %w", err)
			log.Error(err)
			return Budget{}, err
		}
		return budget, nil
	}

	query := `UPDATE budget SET user_id = $1, type = $2, category = $3, amount = $4::text::numeric, timeframe = $5
              WHERE id = $6`
	result, err := r.db.Exec(ctx, query,
		budget.UserId,
		string(budget.Type),
		nullableCategory(budget.Category),
		budget.Amount.String(),
		string(budget.Timeframe),
		budget.Id,
	)
	if err != nil {
		err := fmt.Errorf("could not update budget: %w", err)
		log.Error(err)
		return Budget{}, err
	}
	if result.RowsAffected() == 0 {
		return Budget{}, ErrBudgetNotFound
	}
	return budget, nil
}

func (r *RepositoryImpl) FindById(ctx context.Context, id int) (Budget, error) {
	rows, err := r.db.Query(ctx, selectBudget+` WHERE id = $1`, id)
	if err != nil {
		err := fmt.Errorf("could not query budget: %w", err)
		log.Error(err)
		return Budget{}, err
	}
	budget, err := pgx.CollectExactlyOneRow(rows, scanBudget)
	if errors.Is(err, pgx.ErrNoRows) {
		return Budget{}, ErrBudgetNotFound
	} else if err != nil {
		err := fmt.Errorf("could not read budget: %w", err)
		log.Error(err)
		return Budget{}, err
	}
	return budget, nil
}

func (r *RepositoryImpl) DeleteById(ctx context.Context, id int) error {
	result, err := r.db.Exec(ctx, `DELETE FROM budget WHERE id = $1`, id)
	if err != nil {
		err := fmt.Errorf("could not delete budget: %w", err)
		log.Error(err)
		return err
	}
	if result.RowsAffected() == 0 {
		return ErrBudgetNotFound
	}
	return nil
}

func nullableCategory(c category.Category) *string {
	if c == "" {
		return nil
	}
	name := string(c)
	return &name
}

func scanBudget(row pgx.CollectableRow) (Budget, error) {
	var (
		budget                           Budget
		budgetType, categoryName, amount string
		timeframe                        string
	)
	if err := row.Scan(&budget.Id, &budget.UserId, &budgetType, &categoryName, &amount, &timeframe); err != nil {
		return Budget{}, err
	}
	parsed, err := money.Parse(amount)
	if err != nil {
		return Budget{}, err
	}
	budget.Type = Type(budgetType)
	budget.Category = category.Category(categoryName)
	budget.Amount = parsed
	budget.Timeframe = period.Timeframe(timeframe)
	return budget, nil
}
