package auth

import (
	"context"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/vitorsz/shop-users-api/internal/api/user"
	"github.com/vitorsz/shop-users-api/internal/db"
)

// bcryptCost is the fixed work factor for password hashing.
const bcryptCost = 12

// ErrInvalidCredentials covers both an unknown email and a wrong
// password, so responses cannot be used to enumerate accounts.
var ErrInvalidCredentials = errors.New("incorrect username or password")

type AuthService struct {
	store     user.Store
	jwtSecret []byte
	ttl       time.Duration
}

func NewAuthService(store user.Store, jwtSecret string, ttl time.Duration) *AuthService {
	return &AuthService{
		store:     store,
		jwtSecret: []byte(jwtSecret),
		ttl:       ttl,
	}
}

// Register creates an account and returns a signed token for it. The
// password is hashed before anything is inserted, so a hasher fault
// never leaves a partial record behind.
func (s *AuthService) Register(ctx context.Context, name, email, password string) (string, error) {
	existing, err := s.store.GetByEmail(ctx, email)
	if err != nil {
		return "", err
	}
	if existing != nil {
		return "", user.ErrDuplicateEmail
	}

	hash, err := s.HashPassword(password)
	if err != nil {
		return "", err
	}

	created, err := s.store.Create(ctx, name, email, hash)
	if err != nil {
		return "", err
	}

	return s.GenerateJWT(created)
}

// Login verifies credentials and returns a signed token on success.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, error) {
	u, err := s.store.GetByEmail(ctx, email)
	if err != nil {
		return "", err
	}
	if u == nil {
		return "", ErrInvalidCredentials
	}

	if !s.CheckPasswordHash(password, u.PasswordHash) {
		return "", ErrInvalidCredentials
	}

	return s.GenerateJWT(u)
}

func (s *AuthService) HashPassword(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	return string(hashed), err
}

func (s *AuthService) CheckPasswordHash(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

func (s *AuthService) GenerateJWT(u *db.User) (string, error) {
	if len(s.jwtSecret) == 0 {
		return "", errors.New("jwt secret is not configured")
	}

	now := time.Now()
	claims := db.Claims{
		Name:   u.Name,
		Email:  u.Email,
		UserID: u.ID.Hex(),
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
			Issuer:    "shop-users-api",
			Subject:   u.ID.Hex(),
			ID:        uuid.NewString(),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.jwtSecret)
}

func (s *AuthService) ParseJWT(tokenStr string) (*db.Claims, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &db.Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("alg not allowed")
		}
		return s.jwtSecret, nil
	})
	if err != nil {
		return nil, err
	}
	if c, ok := token.Claims.(*db.Claims); ok && token.Valid {
		return c, nil
	}
	return nil, errors.New("invalid token")
}
