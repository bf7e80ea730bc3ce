package service

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/sshperkin/travel-agency/internal/model"
)

// PaymentService records payments against bookings
type PaymentService struct {
	db *gorm.DB
}

// NewPaymentService creates the payment service
func NewPaymentService(db *gorm.DB) *PaymentService {
	return &PaymentService{db: db}
}

// RecordPaymentInput carries the fields for recording a payment
type RecordPaymentInput struct {
	BookingID     uint       `json:"booking_id"`
	Amount        float64    `json:"amount"`
	Method        string     `json:"method"`
	TransactionID *string    `json:"transaction_id,omitempty"`
	PaidAt        *time.Time `json:"paid_at,omitempty"` // defaults to now
}

// Record validates and stores a payment. Payments against cancelled bookings
// are rejected.
func (s *PaymentService) Record(input RecordPaymentInput) (*model.Payment, error) {
	if input.BookingID == 0 {
		return nil, NewValidationError("booking_id", "is required")
	}
	if input.Amount <= 0 {
		return nil, NewValidationError("amount", "must be positive")
	}
	switch input.Method {
	case model.PaymentMethodCash, model.PaymentMethodCard, model.PaymentMethodTransfer:
	default:
		return nil, NewValidationError("method", "must be cash, card or transfer")
	}

	var booking model.Booking
	if err := s.db.First(&booking, input.BookingID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, NewValidationError("booking_id", "booking does not exist")
		}
		return nil, wrapPersistence("load booking", err)
	}
	if booking.Status == model.BookingStatusCancelled {
		return nil, NewValidationError("booking_id", "booking is cancelled")
	}

	paidAt := time.Now()
	if input.PaidAt != nil {
		paidAt = *input.PaidAt
	}

	payment := model.Payment{
		BookingID:     input.BookingID,
		Amount:        input.Amount,
		Method:        input.Method,
		TransactionID: input.TransactionID,
		PaidAt:        paidAt,
	}
	if err := s.db.Create(&payment).Error; err != nil {
		return nil, wrapPersistence("record payment", err)
	}
	return &payment, nil
}

// ListForBooking returns all payments recorded against a booking
func (s *PaymentService) ListForBooking(bookingID uint) ([]model.Payment, error) {
	var booking model.Booking
	if err := s.db.Select("id").First(&booking, bookingID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, wrapPersistence("load booking", err)
	}

	var payments []model.Payment
	err := s.db.Where("booking_id = ?", bookingID).Order("paid_at ASC").Find(&payments).Error
	if err != nil {
		return nil, wrapPersistence("list payments", err)
	}
	return payments, nil
}

// PaidTotal returns the sum of payments recorded against a booking
func (s *PaymentService) PaidTotal(bookingID uint) (float64, error) {
	var total float64
	err := s.db.Model(&model.Payment{}).
		Where("booking_id = ?", bookingID).
		Select("COALESCE(SUM(amount), 0)").
		Scan(&total).Error
	if err != nil {
		return 0, wrapPersistence("sum payments", err)
	}
	return total, nil
}
