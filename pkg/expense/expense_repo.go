package expense

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/budgetly/budgetly/internal/apperr"
	"github.com/budgetly/budgetly/pkg/category"
	"github.com/budgetly/budgetly/pkg/money"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	log "github.com/sirupsen/logrus"
)

var ErrExpenseNotFound = apperr.NotFound("Could not find expense with that ID.")

type Repository interface {
	// Save inserts the expense when Id is 0 and overwrites the stored one otherwise.
	Save(ctx context.Context, expense Expense) (Expense, error)
	FindById(ctx context.Context, id int) (Expense, error)
	ExistsById(ctx context.Context, id int) (bool, error)
	FindByUser(ctx context.Context, userId int) ([]Expense, error)
	// FindByUserAndDateRangeAndCategories returns matches ordered by date, most recent first.
	FindByUserAndDateRangeAndCategories(ctx context.Context, userId int, start, end time.Time, categories []category.Category) ([]Expense, error)
	DeleteById(ctx context.Context, id int) error
}

type RepositoryImpl struct {
	db *pgxpool.Pool
}

func NewRepository(db *pgxpool.Pool) *RepositoryImpl {
	return &RepositoryImpl{db: db}
}

const selectExpense = `SELECT id, user_id, date, amount::text, category, description FROM expense`

func (r *RepositoryImpl) Save(ctx context.Context, expense Expense) (Expense, error) {
	if expense.Id == 0 {
		return r.insert(ctx, expense)
	}

	query := `UPDATE expense SET user_id = $1, date = $2, amount = $3::text::numeric, category = $4, description = $5
              WHERE id = $6`
	result, err := r.db.Exec(ctx, query,
		expense.UserId,
		expense.Date,
		expense.Amount.String(),
		string(expense.Category),
		expense.Description,
		expense.Id,
	)
	if err != nil {
		err := fmt.Errorf("could not update expense: %w", err)
		log.Error(err)
		return Expense{}, err
	}
	if result.RowsAffected() == 0 {
		return Expense{}, ErrExpenseNotFound
	}
	return expense, nil
}

func (r *RepositoryImpl) insert(ctx context.Context, expense Expense) (Expense, error) {
	query := `INSERT INTO expense (user_id, date, amount, category, description)
              VALUES ($1, $2, $3::text::numeric, $4, $5) RETURNING id`
	err := r.db.QueryRow(ctx, query,
		expense.UserId,
		expense.Date,
		expense.Amount.String(),
		string(expense.Category),
		expense.Description,
	).Scan(&expense.Id)
	if err != nil {
		err := fmt.Errorf("could not insert expense: %w", err)
		log.Error(err)
		return Expense{}, err
	}
	return expense, nil
}

func (r *RepositoryImpl) FindById(ctx context.Context, id int) (Expense, error) {
	rows, err := r.db.Query(ctx, selectExpense+` WHERE id = $1`, id)
	if err != nil {
		err := fmt.Errorf("could not query expense: %w", err)
		log.Error(err)
		return Expense{}, err
	}
	expense, err := pgx.CollectExactlyOneRow(rows, scanExpense)
	if errors.Is(err, pgx.ErrNoRows) {
		return Expense{}, ErrExpenseNotFound
	} else if err != nil {
		err := fmt.Errorf("could not read expense: %w", err)
		log.Error(err)
		return Expense{}, err
	}
	return expense, nil
}

func (r *RepositoryImpl) ExistsById(ctx context.Context, id int) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM expense WHERE id = $1)`, id).Scan(&exists)
	if err != nil {
		err := fmt.Errorf("could not check expense existence: %w", err)
		log.Error(err)
		return false, err
	}
	return exists, nil
}

func (r *RepositoryImpl) FindByUser(ctx context.Context, userId int) ([]Expense, error) {
	return r.query(ctx, selectExpense+` WHERE user_id = $1 ORDER BY date DESC, id DESC`, userId)
}

func (r *RepositoryImpl) FindByUserAndDateRangeAndCategories(
	ctx context.Context,
	userId int,
	start, end time.Time,
	categories []category.Category,
) ([]Expense, error) {
	names := make([]string, 0, len(categories))
	for _, c := range categories {
		names = append(names, string(c))
	}
	query := selectExpense + ` WHERE user_id = $1 AND date >= $2 AND date <= $3 AND category = ANY($4)
              ORDER BY date DESC, id DESC`
	return r.query(ctx, query, userId, start, end, names)
}

func (r *RepositoryImpl) DeleteById(ctx context.Context, id int) error {
	result, err := r.db.Exec(ctx, `DELETE FROM expense WHERE id = $1`, id)
	if err != nil {
		err := fmt.Errorf("could not delete expense: %w", err)
		log.Error(err)
		return err
	}
	if result.RowsAffected() == 0 {
		return ErrExpenseNotFound
	}
	return nil
}

func (r *RepositoryImpl) query(ctx context.Context, query string, args ...any) ([]Expense, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		err := fmt.Errorf("could not query expenses: %w", err)
		log.Error(err)
		return nil, err
	}
	expenses, err := pgx.CollectRows(rows, scanExpense)
	if err != nil {
		err := fmt.Errorf("could not read expenses: %w", err)
		log.Error(err)
		return nil, err
	}
	return expenses, nil
}

func scanExpense(row pgx.CollectableRow) (Expense, error) {
	var (
		expense      Expense
		amount       string
		categoryName string
	)
	if err := row.Scan(&expense.Id, &expense.UserId, &expense.Date, &amount, &categoryName, &expense.Description); err != nil {
		return Expense{}, err
	}
	parsed, err := money.Parse(amount)
	if err != nil {
		return Expense{}, err
	}
	expense.Amount = parsed
	expense.Category = category.Category(categoryName)
	return expense, nil
}
