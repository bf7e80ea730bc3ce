package model

import (
	"time"

	"gorm.io/gorm"
)

// Booking statuses
const (
	BookingStatusPending   = "pending"
	BookingStatusConfirmed = "confirmed"
	BookingStatusCancelled = "cancelled"
)

// Booking represents a client's booking of a tour, processed by an employee.
// Pending and confirmed bookings count against the tour capacity.
type Booking struct {
	ID         uint           `json:"id" gorm:"primaryKey"`
	ClientID   uint           `json:"client_id" gorm:"index;not null"`
	TourID     uint           `json:"tour_id" gorm:"index;not null"`
	EmployeeID uint           `json:"employee_id" gorm:"index;not null"`
	Status     string         `json:"status" gorm:"type:varchar(20);index;not null;default:'pending'"`
	TotalPrice float64        `json:"total_price" gorm:"type:numeric(10,2);not null"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
	DeletedAt  gorm.DeletedAt `json:"-" gorm:"index"`

	Client   *Client   `json:"client,omitempty" gorm:"foreignKey:ClientID"`
	Tour     *Tour     `json:"tour,omitempty" gorm:"foreignKey:TourID"`
	Employee *Employee `json:"employee,omitempty" gorm:"foreignKey:EmployeeID"`
}
