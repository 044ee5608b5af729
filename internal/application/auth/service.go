package auth

import (
	"crypto/subtle"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/evalix/ai-readiness/internal/application"
)

var (
	ErrInvalidCredentials = errors.New("invalid admin password")
	ErrInvalidToken       = errors.New("invalid or expired token")
)

// RoleAdmin is the only role the service issues; there is no user database.
const RoleAdmin = "admin"

// Claims carried by an admin bearer token
type Claims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// Service checks the shared admin password and issues signed, time-limited
// bearer tokens.
type Service struct {
	password []byte
	secret   []byte
	ttl      time.Duration
	clock    application.Clock
}

func NewService(password, secret string, ttl time.Duration, clock application.Clock) *Service {
	if clock == nil {
		clock = application.SystemClock{}
	}
	return &Service{
		password: []byte(password),
		secret:   []byte(secret),
		ttl:      ttl,
		clock:    clock,
	}
}

// Login validates the shared password and returns a signed token.
func (s *Service) Login(password string) (string, error) {
	if subtle.ConstantTimeCompare([]byte(password), s.password) != 1 {
		return "", ErrInvalidCredentials
	}
	now := s.clock.Now()
	claims := &Claims{
		Role: RoleAdmin,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

// Validate parses a bearer token and checks signature, expiry and role.
func (s *Service) Validate(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		return s.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return nil, ErrInvalidToken
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid || claims.Role != RoleAdmin {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
