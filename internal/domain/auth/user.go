package auth

import "time"

type UserRole string

const (
	RoleUser         UserRole = "user"
	RoleSupplier     UserRole = "supplier"
	RoleAdmin        UserRole = "admin"
	RoleSoftwareTeam UserRole = "software_team"
	RolePurchaseTeam UserRole = "purchase_team"
)

// IsStaff reports whether the role may review pending catalog entries.
func (r UserRole) IsStaff() bool {
	return r == RoleAdmin || r == RoleSoftwareTeam || r == RolePurchaseTeam
}

type User struct {
	ID           int64     `json:"id" gorm:"primaryKey"`
	Email        string    `json:"email" gorm:"uniqueIndex;not null" validate:"required,email"`
	PasswordHash string    `json:"-" gorm:"not null"`
	Role         UserRole  `json:"role" gorm:"size:32;not null;default:'user'"`
	Name         string    `json:"name"`
	Phone        string    `json:"phone,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func (User) TableName() string {
	return "users"
}
