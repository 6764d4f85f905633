package test_utils

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

// CreateUser inserts a user row so owned records satisfy their foreign keys. Returns the new id.
func CreateUser(ctx context.Context, pool *pgxpool.Pool, email string) (int, error) {
	var id int
	err := pool.QueryRow(ctx,
		`INSERT INTO users (uid, name, email, password_hash) VALUES ($1, $2, $3, $4) RETURNING id`,
		uuid.NewString(), "Test User", email, "not-a-hash",
	).Scan(&id)
	return id, err
}
