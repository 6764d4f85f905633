package user

import (
	"context"

	"github.com/budgetly/budgetly/internal/apperr"
	log "github.com/sirupsen/logrus"
)

type contextKey struct{}

var ErrNoUser = apperr.New(apperr.ErrUnauthenticated, "Authentication required.")

// CurrentUser returns the authenticated user stored by WithUser, or ErrNoUser.
func CurrentUser(ctx context.Context) (User, error) {
	u, ok := ctx.Value(contextKey{}).(User)
	if !ok {
		log.Trace("no authenticated user in request context")
		return User{}, ErrNoUser
	}
	return u, nil
}

// CurrentId is CurrentUser for callers that only own records by id.
func CurrentId(ctx context.Context) (int, error) {
	u, err := CurrentUser(ctx)
	if err != nil {
		return 0, err
	}
	return u.Id, nil
}

func WithUser(ctx context.Context, u User) context.Context {
	return context.WithValue(ctx, contextKey{}, u)
}
