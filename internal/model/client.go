package model

import (
	"time"

	"gorm.io/gorm"
)

// Client represents a travel agency client.
// Clients are soft-archived on delete so booking history stays intact.
type Client struct {
	ID             uint           `json:"id" gorm:"primaryKey"`
	FirstName      string         `json:"first_name" gorm:"type:varchar(50);not null"`
	LastName       string         `json:"last_name" gorm:"type:varchar(50);not null"`
	NameLatin      string         `json:"name_latin" gorm:"type:varchar(100)"`
	PassportNumber string         `json:"passport_number" gorm:"type:varchar(20);uniqueIndex;not null"`
	PassportExpiry time.Time      `json:"passport_expiry" gorm:"not null"`
	BirthDate      time.Time      `json:"birth_date" gorm:"not null"`
	Gender         string         `json:"gender" gorm:"type:varchar(10)"`
	Phone          string         `json:"phone" gorm:"type:varchar(20);not null"`
	Email          string         `json:"email" gorm:"type:varchar(100);index"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
	DeletedAt      gorm.DeletedAt `json:"-" gorm:"index"`
}
