package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/budgetly/budgetly/internal/apperr"
	"github.com/budgetly/budgetly/internal/utils"
	"github.com/golang-jwt/jwt/v5"
)

const issuer = "budgetly"

var ErrInvalidToken = apperr.New(apperr.ErrUnauthenticated, "Invalid or expired token.")

type claims struct {
	Email string `json:"email"`
	jwt.RegisteredClaims
}

// TokenService issues and validates HS256 bearer tokens whose subject is the user's email.
type TokenService struct {
	secret []byte
	ttl    time.Duration
	clock  utils.Clock
}

func NewTokenService(secret string, ttl time.Duration, clock utils.Clock) *TokenService {
	return &TokenService{secret: []byte(secret), ttl: ttl, clock: clock}
}

func (s *TokenService) Issue(email string) (string, error) {
	now := s.clock.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims{
		Email: email,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   email,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	})
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

// Validate returns the email the token was issued for.
func (s *TokenService) Validate(tokenString string) (string, error) {
	parsed, err := jwt.ParseWithClaims(tokenString, &claims{}, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.secret, nil
	},
		jwt.WithIssuer(issuer),
		jwt.WithTimeFunc(s.clock.Now),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return "", errors.Join(ErrInvalidToken, err)
	}
	c, ok := parsed.Claims.(*claims)
	if !ok || !parsed.Valid || c.Subject == "" {
		return "", ErrInvalidToken
	}
	return c.Subject, nil
}
