package helpers

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJWTManager_GenerateParse(t *testing.T) {
	m := NewJWTManager("secret", 24*time.Hour)
	sub := TokenSubject{ID: "u-1", Email: "a@example.com", Role: "admin", Name: "Ann"}

	token, exp, err := m.GenerateToken(sub)
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(24*time.Hour), exp, 5*time.Second)

	claims, err := m.ParseToken(token)
	require.NoError(t, err)
	assert.Equal(t, "u-1", claims.ID)
	assert.Equal(t, "a@example.com", claims.Email)
	assert.Equal(t, "admin", claims.Role)
	assert.Equal(t, "Ann", claims.Name)
}

func TestJWTManager_GenerateRequiresIDAndRole(t *testing.T) {
	m := NewJWTManager("secret", time.Hour)
	_, _, err := m.GenerateToken(TokenSubject{Role: "user"})
	assert.ErrorIs(t, err, ErrInvalidToken)
	_, _, err = m.GenerateToken(TokenSubject{ID: "u-1"})
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestJWTManager_Expired(t *testing.T) {
	m := NewJWTManager("secret", time.Hour)
	issued := time.Now().Add(-2 * time.Hour)
	m.now = func() time.Time { return issued }
	token, _, err := m.GenerateToken(TokenSubject{ID: "u-1", Role: "user"})
	require.NoError(t, err)

	m.now = time.Now
	_, err = m.ParseToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestJWTManager_WrongSecret(t *testing.T) {
	token, _, err := NewJWTManager("one", time.Hour).GenerateToken(TokenSubject{ID: "u-1", Role: "user"})
	require.NoError(t, err)

	_, err = NewJWTManager("two", time.Hour).ParseToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestJWTManager_RejectsNoneAlgorithm(t *testing.T) {
	claims := &Claims{ID: "u-1", Role: "admin", RegisteredClaims: jwt.RegisteredClaims{
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}}
	token, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = NewJWTManager("secret", time.Hour).ParseToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestJWTManager_Missing(t *testing.T) {
	_, err := NewJWTManager("secret", time.Hour).ParseToken("  ")
	assert.ErrorIs(t, err, ErrMissingToken)
}

func TestBearerToken(t *testing.T) {
	tests := []struct {
		header string
		want   string
		err    error
	}{
		{"Bearer abc.def", "abc.def", nil},
		{"bearer abc", "abc", nil},
		{"", "", ErrMissingToken},
		{"Basic abc", "", ErrMissingToken},
		{"Bearer", "", ErrMissingToken},
		{"Bearer a b", "", ErrMissingToken},
	}
	for _, tt := range tests {
		t.Run(tt.header, func(t *testing.T) {
			got, err := BearerToken(tt.header)
			if tt.err != nil {
				assert.ErrorIs(t, err, tt.err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
