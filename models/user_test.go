package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestHasPermissionAdminPassesEverything(t *testing.T) {
	admin := User{Role: RoleAdmin}
	assert.True(t, admin.HasPermission(PermManageUsers))
	assert.True(t, admin.HasPermission(PermManageInventory))
}

func TestHasPermissionFlagLookup(t *testing.T) {
	waiter := User{Role: RoleWaiter, Permissions: DefaultPermissions(RoleWaiter)}
	assert.True(t, waiter.HasPermission(PermManageOrders))
	assert.False(t, waiter.HasPermission(PermManageBills))
	assert.False(t, waiter.HasPermission("unknown_flag"))
}

func TestLoginLockout(t *testing.T) {
	now := time.Now()
	user := User{}

	for i := 0; i < 4; i++ {
		user.RegisterFailedLogin(now)
		assert.False(t, user.IsLocked(now))
	}

	user.RegisterFailedLogin(now)
	assert.True(t, user.IsLocked(now))
	assert.False(t, user.IsLocked(now.Add(16*time.Minute)))

	user.ResetLoginLockout()
	assert.False(t, user.IsLocked(now))
	assert.Equal(t, 0, user.FailedLogins)
}
