package service

import (
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/tunewave/tunewave/internal/authz"
	"github.com/tunewave/tunewave/internal/models"
)

// bcryptCost is the work factor for stored password hashes.
const bcryptCost = 12

// sessionClaims is the JWT payload: the user id in the subject plus the role.
type sessionClaims struct {
	Role models.UserRole `json:"role"`
	jwt.RegisteredClaims
}

// TokenManager signs and verifies session tokens and hashes passwords.
type TokenManager struct {
	secret []byte
	expiry time.Duration
}

// NewTokenManager creates a TokenManager with the given signing secret and
// token lifetime.
func NewTokenManager(secret string, expiry time.Duration) *TokenManager {
	return &TokenManager{secret: []byte(secret), expiry: expiry}
}

// CreateToken signs a token carrying the principal's id and role with an
// absolute expiry.
func (m *TokenManager) CreateToken(principal authz.Principal) (string, error) {
	now := time.Now()
	claims := sessionClaims{
		Role: principal.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatInt(principal.UserID, 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.expiry)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(m.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

// VerifyToken decodes a token and returns the principal it carries, or nil
// when the token is missing, malformed, tampered with, or expired.
func (m *TokenManager) VerifyToken(token string) *authz.Principal {
	if token == "" {
		return nil
	}
	var claims sessionClaims
	parsed, err := jwt.ParseWithClaims(token, &claims, func(t *jwt.Token) (any, error) {
		return m.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil || !parsed.Valid {
		return nil
	}
	userID, err := strconv.ParseInt(claims.Subject, 10, 64)
	if err != nil || !claims.Role.Valid() {
		return nil
	}
	return &authz.Principal{UserID: userID, Role: claims.Role}
}

// HashPassword bcrypt-hashes a plaintext password.
func (m *TokenManager) HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hash), nil
}

// VerifyPassword reports whether the plaintext matches the stored hash.
func (m *TokenManager) VerifyPassword(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
