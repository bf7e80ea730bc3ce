package model

import "time"

// Payment methods
const (
	PaymentMethodCash     = "cash"
	PaymentMethodCard     = "card"
	PaymentMethodTransfer = "transfer"
)

// Payment represents money received against a booking
type Payment struct {
	ID            uint      `json:"id" gorm:"primaryKey"`
	BookingID     uint      `json:"booking_id" gorm:"index;not null"`
	Amount        float64   `json:"amount" gorm:"type:numeric(10,2);not null"`
	Method        string    `json:"method" gorm:"type:varchar(20);not null"`
	TransactionID *string   `json:"transaction_id,omitempty" gorm:"type:varchar(100);uniqueIndex"`
	PaidAt        time.Time `json:"paid_at"`
	CreatedAt     time.Time `json:"created_at"`

	Booking *Booking `json:"booking,omitempty" gorm:"foreignKey:BookingID"`
}
