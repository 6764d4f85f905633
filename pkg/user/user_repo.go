package user

import (
	"context"
	"errors"
	"fmt"

	"github.com/budgetly/budgetly/internal/apperr"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	log "github.com/sirupsen/logrus"
)

const uniqueViolation = "23505"

var ErrUserNotFound = apperr.NotFound("user not found")
var ErrEmailTaken = apperr.Invalid("An account already exists for that email.")

type Repo interface {
	CreateUser(ctx context.Context, user User) (int, error)
	GetUser(ctx context.Context, id int) (User, error)
	FindByEmail(ctx context.Context, email string) (User, error)
}

type UserRepoImpl struct {
	db *pgxpool.Pool
}

func NewUserRepo(db *pgxpool.Pool) *UserRepoImpl {
	return &UserRepoImpl{db: db}
}

func (u *UserRepoImpl) CreateUser(ctx context.Context, user User) (int, error) {
	query := `INSERT INTO users (uid, name, email, password_hash) VALUES ($1, $2, $3, $4) RETURNING id`
	var id int
	err := u.db.QueryRow(ctx, query, user.Uid, user.Name, user.Email, user.PasswordHash).Scan(&id)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			log.Infof("email already registered: %s", user.Email)
			return 0, ErrEmailTaken
		}
		log.Errorf("failed to create user: %v", err)
		return 0, fmt.Errorf("failed to create user: %w", err)
	}
	return id, nil
}

func (u *UserRepoImpl) GetUser(ctx context.Context, id int) (User, error) {
	query := `SELECT id, uid, name, email, password_hash FROM users WHERE id = $1`
	return u.findOne(ctx, query, id)
}

func (u *UserRepoImpl) FindByEmail(ctx context.Context, email string) (User, error) {
	query := `SELECT id, uid, name, email, password_hash FROM users WHERE email = $1`
	return u.findOne(ctx, query, email)
}

func (u *UserRepoImpl) findOne(ctx context.Context, query string, arg any) (User, error) {
	var user User
	err := u.db.QueryRow(ctx, query, arg).Scan(&user.Id, &user.Uid, &user.Name, &user.Email, &user.PasswordHash)
	if errors.Is(err, pgx.ErrNoRows) {
		log.Debugf("user %v not found", arg)
		return User{}, ErrUserNotFound
	} else if err != nil {
		log.Errorf("failed to get user: %v", err)
		return User{}, fmt.Errorf("failed to get user: %w", err)
	}
	return user, nil
}
