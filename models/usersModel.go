package models

import (
	"time"
)

// Roles a user account can carry.
const (
	RoleSuperAdmin   = "super_admin"
	RoleAdmin        = "admin"
	RoleReceptionist = "receptionist"
	RoleDoctor       = "doctor"
	RoleNurse        = "nurse"
	RolePathologist  = "pathologist"
	RolePharmacist   = "pharmacist"
)

// Roles lists every accepted role value.
var Roles = []interface{}{
	RoleSuperAdmin, RoleAdmin, RoleReceptionist, RoleDoctor, RoleNurse, RolePathologist, RolePharmacist,
}

// User represents a user in the system
type User struct {
	ID        int64     `gorm:"primaryKey;column:id" json:"id"`
	Username  string    `gorm:"size:150;not null;unique;index;column:username" json:"username"`
	FullName  string    `gorm:"size:150;column:full_name" json:"full_name"`
	Email     string    `gorm:"size:255;column:email" json:"email"`
	Password  string    `gorm:"size:255;not null;column:password" json:"-"`
	Role      string    `gorm:"size:32;not null;default:receptionist;column:role" json:"role"`
	CreatedAt time.Time `gorm:"autoCreateTime;column:created_at" json:"created_at"`
}

func (User) TableName() string {
	return "users"
}

// IsSuperAdmin reports whether the user holds the super admin role.
func (u User) IsSuperAdmin() bool {
	return u.Role == RoleSuperAdmin
}

// DisplayName prefers the full name over the username.
func (u User) DisplayName() string {
	if u.FullName != "" {
		return u.FullName
	}
	return u.Username
}
