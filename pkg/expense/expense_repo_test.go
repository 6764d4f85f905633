package expense

import (
	"context"
	"flag"
	"os"
	"testing"

	"github.com/budgetly/budgetly/internal/test_utils"
	"github.com/budgetly/budgetly/pkg/category"
	"github.com/budgetly/budgetly/pkg/money"
	"github.com/budgetly/budgetly/pkg/period"
	"github.com/jackc/pgx/v5/pgxpool"
	log "github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var db *pgxpool.Pool

func TestMain(m *testing.M) {
	flag.Parse()
	cleanup := func() {}
	if !testing.Short() {
		pool, closeDb, err := test_utils.TestWithDB()
		if err != nil {
			log.Warnf("database tests disabled: %v", err)
		} else {
			db, cleanup = pool, closeDb
		}
	}
	code := m.Run()
	cleanup()
	os.Exit(code)
}

func setupTestRepository(t *testing.T) (context.Context, *RepositoryImpl, int, int) {
	if db == nil {
		t.Skip("database not available")
	}
	ctx := context.Background()
	t.Cleanup(func() {
		require.NoError(t, test_utils.Truncate(ctx, db))
	})
	aliceId, err := test_utils.CreateUser(ctx, db, "alice@example.com")
	require.NoError(t, err)
	bobId, err := test_utils.CreateUser(ctx, db, "bob@example.com")
	require.NoError(t, err)
	return ctx, NewRepository(db), aliceId, bobId
}

func TestRepositoryImpl_Save(t *testing.T) {
	t.Run("should insert and read back exact amount", func(t *testing.T) {
		ctx, repo, aliceId, _ := setupTestRepository(t)

		// given
		expense := Expense{
			UserId:      aliceId,
			Date:        period.Date(2023, 6, 15),
			Amount:      money.MustParse("1234.56"),
			Category:    category.UtilitiesAndBills,
			Description: "electricity",
		}

		// when
		saved, err := repo.Save(ctx, expense)
		require.NoError(t, err)

		// then
		assert.NotZero(t, saved.Id)
		found, err := repo.FindById(ctx, saved.Id)
		require.NoError(t, err)
		assert.True(t, found.Equal(saved), "expected %+v, got %+v", saved, found)
		assert.Equal(t, "1234.56", found.Amount.String())
	})

	t.Run("should overwrite existing expense", func(t *testing.T) {
		ctx, repo, aliceId, _ := setupTestRepository(t)
		saved, err := repo.Save(ctx, Expense{UserId: aliceId, Date: period.Date(2023, 6, 1), Amount: money.FromInt(1), Category: category.Leisure})
		require.NoError(t, err)

		saved.Amount = money.MustParse("0.99")
		saved.Category = category.Transport
		_, err = repo.Save(ctx, saved)
		require.NoError(t, err)

		found, err := repo.FindById(ctx, saved.Id)
		require.NoError(t, err)
		assert.Equal(t, "0.99", found.Amount.String())
		assert.Equal(t, category.Transport, found.Category)
	})

	t.Run("should fail updating missing expense", func(t *testing.T) {
		ctx, repo, aliceId, _ := setupTestRepository(t)

		_, err := repo.Save(ctx, Expense{Id: 777, UserId: aliceId, Date: period.Date(2023, 6, 1), Amount: money.FromInt(1), Category: category.Leisure})

		assert.ErrorIs(t, err, ErrExpenseNotFound)
	})
}

func TestRepositoryImpl_FindByUserAndDateRangeAndCategories(t *testing.T) {
	ctx, repo, aliceId, bobId := setupTestRepository(t)
	for _, e := range []Expense{
		{UserId: aliceId, Date: period.Date(2023, 5, 31), Amount: money.FromInt(1), Category: category.FoodAndDrink},
		{UserId: aliceId, Date: period.Date(2023, 6, 1), Amount: money.FromInt(2), Category: category.FoodAndDrink},
		{UserId: aliceId, Date: period.Date(2023, 6, 30), Amount: money.FromInt(3), Category: category.Transport},
		{UserId: aliceId, Date: period.Date(2023, 6, 15), Amount: money.FromInt(4), Category: category.Leisure},
		{UserId: aliceId, Date: period.Date(2023, 7, 1), Amount: money.FromInt(5), Category: category.FoodAndDrink},
		{UserId: bobId, Date: period.Date(2023, 6, 10), Amount: money.FromInt(6), Category: category.FoodAndDrink},
	} {
		_, err := repo.Save(ctx, e)
		require.NoError(t, err)
	}

	t.Run("should include both bounds, most recent first", func(t *testing.T) {
		found, err := repo.FindByUserAndDateRangeAndCategories(ctx, aliceId, june.Start, june.End, category.All())

		require.NoError(t, err)
		assert.Equal(t, []int{3, 4, 2}, ids(found))
	})

	t.Run("should filter categories", func(t *testing.T) {
		found, err := repo.FindByUserAndDateRangeAndCategories(ctx, aliceId, june.Start, june.End,
			[]category.Category{category.FoodAndDrink, category.Transport})

		require.NoError(t, err)
		assert.Equal(t, []int{3, 2}, ids(found))
	})

	t.Run("should list all of a user's expenses", func(t *testing.T) {
		found, err := repo.FindByUser(ctx, bobId)

		require.NoError(t, err)
		assert.Equal(t, []int{6}, ids(found))
	})
}

func TestRepositoryImpl_Delete(t *testing.T) {
	ctx, repo, aliceId, _ := setupTestRepository(t)
	saved, err := repo.Save(ctx, Expense{UserId: aliceId, Date: period.Date(2023, 6, 1), Amount: money.FromInt(1), Category: category.Leisure})
	require.NoError(t, err)

	exists, err := repo.ExistsById(ctx, saved.Id)
	require.NoError(t, err)
	assert.True(t, exists)

	require.NoError(t, repo.DeleteById(ctx, saved.Id))

	exists, err = repo.ExistsById(ctx, saved.Id)
	require.NoError(t, err)
	assert.False(t, exists)
	_, err = repo.FindById(ctx, saved.Id)
	assert.ErrorIs(t, err, ErrExpenseNotFound)
	assert.ErrorIs(t, repo.DeleteById(ctx, saved.Id), ErrExpenseNotFound)
}
