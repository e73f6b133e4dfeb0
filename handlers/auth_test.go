package handlers

import (
	"errors"
	"testing"

	"ulenguage/models"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestRegisterCreateStatus(t *testing.T) {
	t.Run("duplicate email maps to conflict", func(t *testing.T) {
		// The pre-insert check can lose a race; the unique index
		// violation must still surface as 409.
		status, msg := registerCreateStatus(gorm.ErrDuplicatedKey)
		assert.Equal(t, 409, status)
		assert.Equal(t, "Email already registered", msg)
	})

	t.Run("wrapped duplicate is still a conflict", func(t *testing.T) {
		status, _ := registerCreateStatus(errors.Join(errors.New("insert users"), gorm.ErrDuplicatedKey))
		assert.Equal(t, 409, status)
	})

	t.Run("other failures stay server errors", func(t *testing.T) {
		status, _ := registerCreateStatus(errors.New("connection reset"))
		assert.Equal(t, 500, status)
	})
}

func TestGenerateToken(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret-that-is-long-enough-0123")

	user := &models.User{ID: 42, Email: "ana@example.com", Plan: models.PlanPremium}
	signed, err := generateToken(user)
	require.NoError(t, err)

	token, err := jwt.Parse(signed, func(token *jwt.Token) (interface{}, error) {
		return []byte("test-secret-that-is-long-enough-0123"), nil
	})
	require.NoError(t, err)
	require.True(t, token.Valid)

	claims := token.Claims.(jwt.MapClaims)
	assert.Equal(t, float64(42), claims["user_id"])
	assert.Equal(t, "ana@example.com", claims["email"])
	assert.Equal(t, "premium", claims["plan"])
	assert.Greater(t, claims["exp"].(float64), claims["iat"].(float64))
}
