package server

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/talent-portal/internal/config"
	"github.com/jonathan/talent-portal/internal/types"
)

func testJWTService() *JWTService {
	return NewJWTService(&config.JWTConfig{
		Secret:          "test-secret-key-for-unit-tests",
		ExpirationHours: 1,
	})
}

func TestJWTService_RoundTrip(t *testing.T) {
	service := testJWTService()
	principal := types.Principal{
		ID:               uuid.New(),
		Rank:             types.RankAdmin,
		ActivationStatus: types.ActivationActive,
	}

	token, err := service.GenerateToken(principal)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := service.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, principal, claims.Principal())
}

func TestJWTService_ValidateToken(t *testing.T) {
	service := testJWTService()

	tests := []struct {
		name  string
		token func(t *testing.T) string
	}{
		{
			name:  "empty token",
			token: func(t *testing.T) string { return "" },
		},
		{
			name:  "garbage token",
			token: func(t *testing.T) string { return "not.a.token" },
		},
		{
			name: "wrong secret",
			token: func(t *testing.T) string {
				other := NewJWTService(&config.JWTConfig{Secret: "different-secret", ExpirationHours: 1})
				token, err := other.GenerateToken(types.Principal{ID: uuid.New(), Rank: types.RankUser})
				require.NoError(t, err)
				return token
			},
		},
		{
			name: "unknown rank in claims",
			token: func(t *testing.T) string {
				token, err := service.GenerateToken(types.Principal{ID: uuid.New(), Rank: types.Rank("owner")})
				require.NoError(t, err)
				return token
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := service.ValidateToken(tt.token(t))
			assert.Error(t, err)
		})
	}
}
