package utils

import (
	"context"
	"strconv"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestUserContext(t *testing.T) {
	t.Run("SetUserContext and GetUserIDFromContext", func(t *testing.T) {
		userID := uuid.New()

		ctx := SetUserContext(context.Background(), userID, "amina", RoleCashier)

		id, ok := GetUserIDFromContext(ctx)
		assert.True(t, ok)
		assert.Equal(t, userID, id)
		assert.Equal(t, "amina", GetUserNameFromContext(ctx))
		assert.Equal(t, RoleCashier, GetUserRoleFromContext(ctx))
		assert.False(t, IsAdmin(ctx))
	})

	t.Run("Admin", func(t *testing.T) {
		ctx := SetUserContext(context.Background(), uuid.New(), "root", RoleAdmin)
		assert.True(t, IsAdmin(ctx))
	})

	t.Run("GetUserIDFromContext with empty context", func(t *testing.T) {
		_, ok := GetUserIDFromContext(context.Background())
		assert.False(t, ok)
	})
}

func TestPtrHelpers(t *testing.T) {
	assert.Equal(t, "", PtrString(nil))
	assert.Equal(t, "x", PtrString(strPtr("x")))

	assert.Nil(t, TrimmedOrNil(nil))
	assert.Nil(t, TrimmedOrNil(strPtr("   ")))
	assert.Equal(t, "Ali", *TrimmedOrNil(strPtr("  Ali ")))
}

func TestGenerateCustomerCode(t *testing.T) {
	for i := 0; i < 50; i++ {
		code := GenerateCustomerCode()
		assert.True(t, strings.HasPrefix(code, "CUST-"))

		n, err := strconv.Atoi(strings.TrimPrefix(code, "CUST-"))
		assert.NoError(t, err)
		assert.GreaterOrEqual(t, n, 10000)
		assert.Less(t, n, 100000)
	}
}

func strPtr(s string) *string { return &s }
