package models

import "time"

// Roles known to the back office.
const (
	RoleAdmin        = "admin"
	RoleManager      = "manager"
	RoleCaptain      = "captain"
	RoleWaiter       = "waiter"
	RoleChef         = "chef"
	RoleKitchenStaff = "kitchen_staff"
)

// Permission flag names used by the authorization middleware.
const (
	PermManageMenu      = "manage_menu"
	PermManageTables    = "manage_tables"
	PermManageOrders    = "manage_orders"
	PermManageInventory = "manage_inventory"
	PermManageBills     = "manage_bills"
	PermManageUsers     = "manage_users"
	PermViewReports     = "view_reports"
)

const (
	maxFailedLogins = 5
	lockoutDuration = 15 * time.Minute
)

type Permissions struct {
	ManageMenu      bool `json:"manage_menu"`
	ManageTables    bool `json:"manage_tables"`
	ManageOrders    bool `json:"manage_orders"`
	ManageInventory bool `json:"manage_inventory"`
	ManageBills     bool `json:"manage_bills"`
	ManageUsers     bool `json:"manage_users"`
	ViewReports     bool `json:"view_reports"`
}

type User struct {
	ID           uint        `gorm:"primaryKey" json:"id"`
	Name         string      `gorm:"type:varchar(255);not null" json:"name"`
	Email        string      `gorm:"type:varchar(255);unique;not null" json:"email"`
	Password     string      `gorm:"type:varchar(255);not null" json:"-"`
	Role         string      `gorm:"type:varchar(20);not null;default:'waiter'" json:"role"`
	Permissions  Permissions `gorm:"embedded;embeddedPrefix:perm_" json:"permissions"`
	FailedLogins int         `gorm:"not null;default:0" json:"-"`
	LockedUntil  *time.Time  `json:"-"`
	IsActive     bool        `gorm:"not null;default:true" json:"is_active"`
	CreatedAt    time.Time   `gorm:"not null" json:"created_at"`
	UpdatedAt    time.Time   `gorm:"not null" json:"updated_at"`
}

// HasPermission reports whether the user may perform the named action.
// Admin passes every check.
func (u *User) HasPermission(flag string) bool {
	if u.Role == RoleAdmin {
		return true
	}
	switch flag {
	case PermManageMenu:
		return u.Permissions.ManageMenu
	case PermManageTables:
		return u.Permissions.ManageTables
	case PermManageOrders:
		return u.Permissions.ManageOrders
	case PermManageInventory:
		return u.Permissions.ManageInventory
	case PermManageBills:
		return u.Permissions.ManageBills
	case PermManageUsers:
		return u.Permissions.ManageUsers
	case PermViewReports:
		return u.Permissions.ViewReports
	}
	return false
}

// IsLocked reports whether login is currently blocked by the lockout window.
func (u *User) IsLocked(now time.Time) bool {
	return u.LockedUntil != nil && now.Before(*u.LockedUntil)
}

// RegisterFailedLogin bumps the failure counter and starts the lockout
// window once the threshold is reached.
func (u *User) RegisterFailedLogin(now time.Time) {
	u.FailedLogins++
	if u.FailedLogins >= maxFailedLogins {
		until := now.Add(lockoutDuration)
		u.LockedUntil = &until
	}
}

// ResetLoginLockout clears the counter after a successful login.
func (u *User) ResetLoginLockout() {
	u.FailedLogins = 0
	u.LockedUntil = nil
}

// DefaultPermissions returns the flag set granted to a role at registration.
func DefaultPermissions(role string) Permissions {
	switch role {
	case RoleAdmin, RoleManager:
		return Permissions{
			ManageMenu:      true,
			ManageTables:    true,
			ManageOrders:    true,
			ManageInventory: true,
			ManageBills:     true,
			ManageUsers:     role == RoleAdmin,
			ViewReports:     true,
		}
	case RoleCaptain:
		return Permissions{
			ManageTables: true,
			ManageOrders: true,
			ManageBills:  true,
		}
	case RoleWaiter:
		return Permissions{
			ManageOrders: true,
		}
	case RoleChef, RoleKitchenStaff:
		return Permissions{
			ManageOrders:    true,
			ManageInventory: true,
		}
	}
	return Permissions{}
}
