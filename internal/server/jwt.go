// Package server provides the HTTP REST API for the talent portal.
package server

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/jonathan/talent-portal/internal/config"
	"github.com/jonathan/talent-portal/internal/server/middleware"
	"github.com/jonathan/talent-portal/internal/types"
)

// Claims represents JWT claims carrying the authenticated principal. Rank
// and activation status are stamped at token issue time; the middleware
// re-reads them on every request so no handler ever consults the token
// directly.
type Claims struct {
	UserID           uuid.UUID              `json:"user_id"`
	Rank             types.Rank             `json:"rank"`
	ActivationStatus types.ActivationStatus `json:"activation_status"`
	jwt.RegisteredClaims
}

// Principal returns the principal encoded in the claims.
// This implements the middleware.PrincipalGetter interface.
func (c *Claims) Principal() types.Principal {
	return types.Principal{
		ID:               c.UserID,
		Rank:             c.Rank,
		ActivationStatus: c.ActivationStatus,
	}
}

// AsTokenValidator returns a TokenValidator adapter for this JWTService.
// This allows the JWTService to be used with middleware without creating
// import cycles.
func (s *JWTService) AsTokenValidator() middleware.TokenValidator {
	return &jwtServiceValidator{service: s}
}

// jwtServiceValidator adapts JWTService to middleware.TokenValidator.
type jwtServiceValidator struct {
	service *JWTService
}

func (v *jwtServiceValidator) ValidateToken(tokenString string) (middleware.PrincipalGetter, error) {
	claims, err := v.service.ValidateToken(tokenString)
	if err != nil {
		return nil, err
	}
	return claims, nil
}

// JWTService provides session token generation and validation.
type JWTService struct {
	config *config.JWTConfig
}

// NewJWTService creates a new JWT service with the given configuration.
func NewJWTService(cfg *config.JWTConfig) *JWTService {
	return &JWTService{
		config: cfg,
	}
}

// GenerateToken generates a session token for the given principal.
func (s *JWTService) GenerateToken(principal types.Principal) (string, error) {
	now := time.Now()
	expiresAt := now.Add(time.Duration(s.config.ExpirationHours) * time.Hour)

	claims := &Claims{
		UserID:           principal.ID,
		Rank:             principal.Rank,
		ActivationStatus: principal.ActivationStatus,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString([]byte(s.config.Secret))
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}

	return tokenString, nil
}

// ValidateToken validates a session token and returns the claims.
func (s *JWTService) ValidateToken(tokenString string) (*Claims, error) {
	if tokenString == "" {
		return nil, fmt.Errorf("token string is empty")
	}

	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		// Verify signing method
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.config.Secret), nil
	})
	if err != nil {
		return nil, fmt.Errorf("invalid token: %w", err)
	}
	if !token.Valid {
		return nil, fmt.Errorf("invalid token")
	}
	if !claims.Rank.Valid() {
		return nil, fmt.Errorf("unknown rank in token claims")
	}

	return claims, nil
}
