package model

import (
	"time"

	"gorm.io/gorm"
)

// Employee represents an agency employee
type Employee struct {
	ID        uint           `json:"id" gorm:"primaryKey"`
	FirstName string         `json:"first_name" gorm:"type:varchar(50);not null"`
	LastName  string         `json:"last_name" gorm:"type:varchar(50);not null"`
	Position  string         `json:"position" gorm:"type:varchar(50);not null"`
	Phone     string         `json:"phone" gorm:"type:varchar(20)"`
	Email     string         `json:"email" gorm:"type:varchar(100)"`
	HireDate  time.Time      `json:"hire_date" gorm:"not null"`
	Salary    float64        `json:"salary" gorm:"type:numeric(10,2)"`
	IsActive  bool           `json:"is_active" gorm:"default:true"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`
}
