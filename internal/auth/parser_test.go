package auth

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func signToken(t *testing.T, method jwt.SigningMethod, key interface{}, claims jwt.MapClaims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(method, claims).SignedString(key)
	require.NoError(t, err)
	return token
}

func TestParserResolvesSubjectAndEmail(t *testing.T) {
	userID := uuid.New()
	token := signToken(t, jwt.SigningMethodHS256, []byte("secret"), jwt.MapClaims{
		"sub":   userID.String(),
		"email": "driver@fleet.test",
		"exp":   time.Now().Add(time.Hour).Unix(),
	})

	identity, err := NewParser("secret").Resolve(context.Background(), token)
	require.NoError(t, err)
	assert.Equal(t, userID, identity.UserID)
	assert.Equal(t, "driver@fleet.test", identity.Email)
}

func TestParserRejectsBadTokens(t *testing.T) {
	parser := NewParser("secret")
	valid := jwt.MapClaims{"sub": uuid.NewString(), "exp": time.Now().Add(time.Hour).Unix()}

	cases := map[string]string{
		"wrong secret": signToken(t, jwt.SigningMethodHS256, []byte("other"), valid),
		"expired": signToken(t, jwt.SigningMethodHS256, []byte("secret"), jwt.MapClaims{
			"sub": uuid.NewString(),
			"exp": time.Now().Add(-time.Hour).Unix(),
		}),
		"non uuid subject": signToken(t, jwt.SigningMethodHS256, []byte("secret"), jwt.MapClaims{
			"sub": "not-a-uuid",
			"exp": time.Now().Add(time.Hour).Unix(),
		}),
		"wrong algorithm": signToken(t, jwt.SigningMethodHS512, []byte("secret"), valid),
		"garbage":         "abc.def.ghi",
	}

	for name, token := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := parser.Resolve(context.Background(), token)
			assert.ErrorIs(t, err, ErrInvalidToken)
		})
	}
}
