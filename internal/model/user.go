package model

import (
	"time"

	"gorm.io/gorm"
)

// User roles
const (
	RoleManager = "manager"
	RoleAdmin   = "admin"
)

// User represents an account that can log into the system.
// PasswordHash holds a bcrypt hash and is never serialized.
type User struct {
	ID           uint           `json:"id" gorm:"primaryKey"`
	Username     string         `json:"username" gorm:"type:varchar(50);uniqueIndex;not null"`
	PasswordHash string         `json:"-" gorm:"type:varchar(255);not null"`
	Role         string         `json:"role" gorm:"type:varchar(20);not null;default:'manager'"`
	EmployeeID   *uint          `json:"employee_id,omitempty" gorm:"index"`
	IsActive     bool           `json:"is_active" gorm:"default:true"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `json:"-" gorm:"index"`

	Employee *Employee `json:"employee,omitempty" gorm:"foreignKey:EmployeeID"`
}
