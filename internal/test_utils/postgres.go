package test_utils

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/budgetly/budgetly/internal/config"
	"github.com/budgetly/budgetly/internal/database"
	"github.com/jackc/pgx/v5/pgxpool"
	log "github.com/sirupsen/logrus"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
)

const (
	dbName     = "budgetly"
	dbUser     = "test_budgetly"
	dbPassword = "test_budgetly"
	dbSchema   = "budgetly"
)

func preparePostgresContainer(ctx context.Context) (*postgres.PostgresContainer, error) {
	projectRoot, err := findProjectRoot()
	if err != nil {
		return nil, fmt.Errorf("failed to find project root: %v", err)
	}

	pgContainer, err := postgres.Run(
		ctx, "postgres:18.1-alpine",
		postgres.WithInitScripts(filepath.Join(projectRoot, "dev", "init.sql")),
		postgres.WithDatabase(dbName),
		postgres.WithUsername(dbUser),
		postgres.WithPassword(dbPassword),
		postgres.BasicWaitStrategies(),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to start container: %w", err)
	}
	return pgContainer, nil
}

// TestWithDB starts a Postgres container, applies all migrations and opens a pool to it.
// The returned cleanup closes the pool and terminates the container.
func TestWithDB() (*pgxpool.Pool, func(), error) {
	ctx := context.Background()

	container, err := preparePostgresContainer(ctx)
	if err != nil {
		return nil, nil, err
	}
	terminate := func() {
		if err := testcontainers.TerminateContainer(container); err != nil {
			log.Warnf("failed to terminate postgres container: %v", err)
		}
	}

	host, err := container.Host(ctx)
	if err != nil {
		terminate()
		return nil, nil, err
	}
	port, err := container.MappedPort(ctx, "5432/tcp")
	if err != nil {
		terminate()
		return nil, nil, err
	}
	log.Infof("Postgres container started at %s:%d", host, port.Int())

	cfg := config.Database{
		Host:   host,
		Port:   port.Int(),
		User:   dbUser,
		Pass:   dbPassword,
		Name:   dbName,
		Schema: dbSchema,
	}

	if err := database.Migrate(cfg); err != nil {
		terminate()
		return nil, nil, fmt.Errorf("failed to apply migrations: %w", err)
	}

	pool, err := database.Open(cfg)
	if err != nil {
		terminate()
		return nil, nil, fmt.Errorf("failed to open database connection: %w", err)
	}

	return pool, func() {
		pool.Close()
		terminate()
	}, nil
}

// Truncate empties all application tables between tests.
func Truncate(ctx context.Context, pool *pgxpool.Pool) error {
	_, err := pool.Exec(ctx, "TRUNCATE TABLE expense, budget, users RESTART IDENTITY CASCADE")
	return err
}

// findProjectRoot walks up from the working directory until it finds go.mod or .git.
func findProjectRoot() (string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return "", err
	}

	for {
		if fileExists(filepath.Join(dir, ".git")) || fileExists(filepath.Join(dir, "go.mod")) {
			return dir, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", fmt.Errorf("could not find project root")
		}
		dir = parent
	}
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
