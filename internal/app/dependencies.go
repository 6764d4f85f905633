package app

import (
	"github.com/budgetly/budgetly/internal/auth"
	"github.com/budgetly/budgetly/internal/config"
	"github.com/budgetly/budgetly/internal/event_bus"
	"github.com/budgetly/budgetly/internal/ratelimit"
	"github.com/budgetly/budgetly/internal/utils"
	"github.com/budgetly/budgetly/pkg/budget"
	"github.com/budgetly/budgetly/pkg/expense"
	"github.com/budgetly/budgetly/pkg/user"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	log "github.com/sirupsen/logrus"
)

// Dependencies holds all services and handlers for the application.
type Dependencies struct {
	Clock    utils.Clock
	EventBus *event_bus.EventBus

	Tokens  *auth.TokenService
	Hasher  *auth.PasswordHasher
	Redis   *redis.Client // nil when disabled
	Limiter ratelimit.Limiter

	UserService user.Service
	UserHandler *user.Handler

	ExpenseRepo    expense.Repository
	ExpenseService *expense.ServiceImpl
	ExpenseHandler *expense.Handler

	BudgetRepo          budget.Repository
	BudgetService       *budget.ServiceImpl
	UtilizationRenderer *budget.CsvUtilizationRendererImpl
	BudgetHandler       *budget.Handler
}

// BuildDependencies initializes and wires all application services and handlers.
func BuildDependencies(db *pgxpool.Pool, cfg config.Application) *Dependencies {
	deps := &Dependencies{}

	deps.Clock = utils.SystemClock{Location: cfg.Location()}
	deps.EventBus = event_bus.NewEventBus()

	deps.Tokens = auth.NewTokenService(cfg.Auth.Secret, cfg.Auth.TokenTtl, deps.Clock)
	deps.Hasher = auth.NewPasswordHasher()
	if cfg.Redis.Enabled {
		deps.Redis = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		deps.Limiter = ratelimit.NewRedisLimiter(deps.Redis, cfg.RateLimit.MaxAttempts, cfg.RateLimit.Window)
		log.Infof("Sign in attempts limited to %d per %s using redis at %s", cfg.RateLimit.MaxAttempts, cfg.RateLimit.Window, cfg.Redis.Addr)
	} else {
		deps.Limiter = ratelimit.NoopLimiter{}
		log.Info("Redis disabled, sign in attempts are not limited")
	}

	deps.UserService = user.NewUserService(user.NewUserRepo(db), deps.Tokens, deps.Hasher, deps.Limiter)
	deps.UserHandler = user.NewHandler(deps.UserService)

	deps.ExpenseRepo = expense.NewRepository(db)
	deps.ExpenseService = expense.NewService(deps.ExpenseRepo, deps.Clock, deps.EventBus)
	deps.ExpenseHandler = expense.NewHandler(deps.ExpenseService)

	deps.BudgetRepo = budget.NewRepository(db)
	deps.BudgetService = budget.NewService(deps.BudgetRepo, deps.ExpenseRepo, deps.Clock, deps.EventBus)
	deps.UtilizationRenderer = budget.NewCsvUtilizationRenderer()
	deps.BudgetHandler = budget.NewHandler(deps.BudgetService, deps.UtilizationRenderer)

	return deps
}
