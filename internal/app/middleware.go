package app

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/budgetly/budgetly/internal/apperr"
	"github.com/budgetly/budgetly/internal/rest"
	"github.com/budgetly/budgetly/pkg/user"
	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
)

var errMissingToken = apperr.New(apperr.ErrUnauthenticated, "Missing bearer token.")

type TokenValidator interface {
	// Validate returns the email the token was issued for.
	Validate(token string) (string, error)
}

type UserFinder interface {
	FindUserByEmail(ctx context.Context, email string) (user.User, error)
}

// AuthMiddleware resolves the bearer token into the current user and puts it into the request context.
func AuthMiddleware(tokens TokenValidator, users UserFinder) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			token, ok := bearerToken(req)
			if !ok {
				rest.WriteError(w, errMissingToken)
				return
			}
			email, err := tokens.Validate(token)
			if err != nil {
				log.Debugf("rejected token: %v", err)
				rest.WriteError(w, err)
				return
			}

			u, err := users.FindUserByEmail(req.Context(), email)
			if errors.Is(err, user.ErrUserNotFound) {
				log.Debugf("token issued for unknown user: %s", email)
				rest.WriteError(w, user.ErrNoUser)
				return
			} else if err != nil {
				rest.WriteError(w, err)
				return
			}

			log.Tracef("request authenticated as user %d", u.Id)
			next.ServeHTTP(w, req.WithContext(user.WithUser(req.Context(), u)))
		})
	}
}

func bearerToken(req *http.Request) (string, bool) {
	header := req.Header.Get("Authorization")
	scheme, token, found := strings.Cut(header, " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}

// requestLogging logs every request at debug level.
func requestLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		log.Debugf("%s %s", req.Method, req.URL.Path)
		next.ServeHTTP(w, req)
	})
}
