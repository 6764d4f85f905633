package user

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/budgetly/budgetly/internal/apperr"
	"github.com/budgetly/budgetly/internal/ratelimit"
	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

var ErrInvalidCredentials = apperr.New(apperr.ErrUnauthenticated, "Invalid email or password.")
var ErrTooManyAttempts = apperr.New(apperr.ErrRateLimited, "Too many sign in attempts. Please try again later.")

type Service interface {
	GetCurrentUser(ctx context.Context) (User, error)
	FindUserByEmail(ctx context.Context, email string) (User, error)
	// Register creates the account and returns a bearer token for it.
	Register(ctx context.Context, registration Registration) (string, error)
	// SignIn returns a bearer token when the credentials match.
	SignIn(ctx context.Context, email, password string) (string, error)
}

type Registration struct {
	Name     string
	Email    string
	Password string
}

type TokenIssuer interface {
	Issue(email string) (string, error)
}

type PasswordHasher interface {
	Hash(password string) (string, error)
	Matches(hash, password string) (bool, error)
}

type UserServiceImpl struct {
	repo    Repo
	tokens  TokenIssuer
	hasher  PasswordHasher
	limiter ratelimit.Limiter
}

func NewUserService(repo Repo, tokens TokenIssuer, hasher PasswordHasher, limiter ratelimit.Limiter) *UserServiceImpl {
	return &UserServiceImpl{repo: repo, tokens: tokens, hasher: hasher, limiter: limiter}
}

func (u *UserServiceImpl) GetCurrentUser(ctx context.Context) (User, error) {
	userId, err := CurrentId(ctx)
	if err != nil {
		return User{}, fmt.Errorf("failed to get current user: %w", err)
	}
	return u.repo.GetUser(ctx, userId)
}

func (u *UserServiceImpl) FindUserByEmail(ctx context.Context, email string) (User, error) {
	return u.repo.FindByEmail(ctx, strings.TrimSpace(email))
}

func (u *UserServiceImpl) Register(ctx context.Context, registration Registration) (string, error) {
	email := strings.TrimSpace(registration.Email)
	if strings.TrimSpace(registration.Name) == "" || email == "" || strings.TrimSpace(registration.Password) == "" {
		return "", apperr.Invalid("Name, email and password cannot be blank.")
	}

	hash, err := u.hasher.Hash(registration.Password)
	if err != nil {
		return "", err
	}
	user := User{
		Uid:          uuid.NewString(),
		Name:         strings.TrimSpace(registration.Name),
		Email:        email,
		PasswordHash: hash,
	}
	if _, err := u.repo.CreateUser(ctx, user); err != nil {
		return "", err
	}
	log.Infof("registered user %s", user.Uid)

	return u.tokens.Issue(email)
}

func (u *UserServiceImpl) SignIn(ctx context.Context, email, password string) (string, error) {
	email = strings.TrimSpace(email)
	allowed, err := u.limiter.Allow(ctx, email)
	if err != nil {
		return "", err
	}
	if !allowed {
		return "", ErrTooManyAttempts
	}

	user, err := u.repo.FindByEmail(ctx, email)
	if errors.Is(err, ErrUserNotFound) {
		return "", ErrInvalidCredentials
	} else if err != nil {
		return "", err
	}

	ok, err := u.hasher.Matches(user.PasswordHash, password)
	if err != nil {
		return "", err
	}
	if !ok {
		log.Debugf("wrong password for user %s", user.Uid)
		return "", ErrInvalidCredentials
	}

	if err := u.limiter.Reset(ctx, email); err != nil {
		log.Warnf("failed to reset sign in attempts for user %s: %v", user.Uid, err)
	}
	return u.tokens.Issue(user.Email)
}
