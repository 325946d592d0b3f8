package entity

import "go-healthcare-portal/internal/authz"

// Role represents a user role in the system
type Role struct {
	ID          int    `gorm:"primaryKey;autoIncrement" json:"id"`
	RoleName    string `gorm:"type:varchar(50);uniqueIndex;not null" json:"role_name"`
	Description string `gorm:"type:text" json:"description,omitempty"`

	// Relationships
	Users []User `gorm:"foreignKey:RoleID" json:"users,omitempty"`
}

func (Role) TableName() string {
	return "roles"
}

// Role ID constants, matching the seeded roles migration.
const (
	RoleIDAdmin   = 1
	RoleIDDoctor  = 2
	RoleIDPatient = 3
)

// RoleFromID maps a stored role id onto the policy engine's closed variant.
func RoleFromID(id int) (authz.Role, bool) {
	switch id {
	case RoleIDAdmin:
		return authz.RoleAdmin, true
	case RoleIDDoctor:
		return authz.RoleDoctor, true
	case RoleIDPatient:
		return authz.RolePatient, true
	}
	return "", false
}

// RoleIDFor is the inverse of RoleFromID.
func RoleIDFor(role authz.Role) (int, bool) {
	switch role {
	case authz.RoleAdmin:
		return RoleIDAdmin, true
	case authz.RoleDoctor:
		return RoleIDDoctor, true
	case authz.RolePatient:
		return RoleIDPatient, true
	}
	return 0, false
}
