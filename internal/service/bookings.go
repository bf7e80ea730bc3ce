package service

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/sshperkin/travel-agency/internal/model"
)

// BookingService manages bookings and enforces tour capacity
type BookingService struct {
	db *gorm.DB
}

// NewBookingService creates the booking service
func NewBookingService(db *gorm.DB) *BookingService {
	return &BookingService{db: db}
}

// CreateBookingInput carries the fields for creating a booking
type CreateBookingInput struct {
	ClientID   uint     `json:"client_id"`
	TourID     uint     `json:"tour_id"`
	EmployeeID uint     `json:"employee_id"`
	TotalPrice *float64 `json:"total_price,omitempty"` // defaults to the tour price
}

// BookingFilter narrows List results
type BookingFilter struct {
	ClientID uint
	TourID   uint
	Status   string
	Limit    int
	Offset   int
}

// Create stores a new pending booking. The whole check-and-insert runs in one
// transaction: held seats (pending + confirmed) must stay within the tour
// capacity.
func (s *BookingService) Create(input CreateBookingInput) (*model.Booking, error) {
	if input.ClientID == 0 {
		return nil, NewValidationError("client_id", "is required")
	}
	if input.TourID == 0 {
		return nil, NewValidationError("tour_id", "is required")
	}
	if input.EmployeeID == 0 {
		return nil, NewValidationError("employee_id", "is required")
	}
	if input.TotalPrice != nil && *input.TotalPrice <= 0 {
		return nil, NewValidationError("total_price", "must be positive")
	}

	var booking model.Booking
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var client model.Client
		if err := tx.First(&client, input.ClientID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return NewValidationError("client_id", "client does not exist")
			}
			return wrapPersistence("load client", err)
		}

		var tour model.Tour
		if err := tx.First(&tour, input.TourID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return NewValidationError("tour_id", "tour does not exist")
			}
			return wrapPersistence("load tour", err)
		}
		if !tour.IsActive {
			return NewValidationError("tour_id", "tour is not active")
		}

		var employee model.Employee
		if err := tx.First(&employee, input.EmployeeID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return NewValidationError("employee_id", "employee does not exist")
			}
			return wrapPersistence("load employee", err)
		}

		var held int64
		if err := tx.Model(&model.Booking{}).
			Where("tour_id = ? AND status IN ?", tour.ID, []string{model.BookingStatusPending, model.BookingStatusConfirmed}).
			Count(&held).Error; err != nil {
			return wrapPersistence("count held seats", err)
		}
		if held >= int64(tour.Capacity) {
			return NewValidationError("tour_id", fmt.Sprintf("tour capacity of %d is exhausted", tour.Capacity))
		}

		price := tour.Price
		if input.TotalPrice != nil {
			price = *input.TotalPrice
		}

		booking = model.Booking{
			ClientID:   input.ClientID,
			TourID:     input.TourID,
			EmployeeID: input.EmployeeID,
			Status:     model.BookingStatusPending,
			TotalPrice: price,
		}
		if err := tx.Create(&booking).Error; err != nil {
			return wrapPersistence("create booking", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &booking, nil
}

// Get returns a booking by id with its client, tour and employee loaded
func (s *BookingService) Get(id uint) (*model.Booking, error) {
	var booking model.Booking
	err := s.db.Preload("Client").Preload("Tour").Preload("Employee").First(&booking, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, wrapPersistence("load booking", err)
	}
	return &booking, nil
}

// Confirm moves a pending booking to confirmed
func (s *BookingService) Confirm(id uint) (*model.Booking, error) {
	return s.transition(id, model.BookingStatusPending, model.BookingStatusConfirmed)
}

// Cancel cancels a pending or confirmed booking, freeing its seat
func (s *BookingService) Cancel(id uint) (*model.Booking, error) {
	booking, err := s.Get(id)
	if err != nil {
		return nil, err
	}
	if booking.Status == model.BookingStatusCancelled {
		return booking, nil
	}
	booking.Status = model.BookingStatusCancelled
	if err := s.db.Model(&model.Booking{ID: booking.ID}).Update("status", model.BookingStatusCancelled).Error; err != nil {
		return nil, wrapPersistence("cancel booking", err)
	}
	return booking, nil
}

// Delete soft-deletes a booking. Bookings with recorded payments cannot be
// deleted.
func (s *BookingService) Delete(id uint) error {
	if _, err := s.Get(id); err != nil {
		return err
	}

	var payments int64
	if err := s.db.Model(&model.Payment{}).Where("booking_id = ?", id).Count(&payments).Error; err != nil {
		return wrapPersistence("count booking payments", err)
	}
	if payments > 0 {
		return &ReferentialError{Entity: "booking", Message: "cannot delete a booking with recorded payments"}
	}

	if err := s.db.Delete(&model.Booking{}, id).Error; err != nil {
		return wrapPersistence("delete booking", err)
	}
	return nil
}

// List returns bookings matching the filter, newest first
func (s *BookingService) List(filter BookingFilter) ([]model.Booking, error) {
	query := s.db.Model(&model.Booking{}).Order("created_at DESC")
	if filter.ClientID > 0 {
		query = query.Where("client_id = ?", filter.ClientID)
	}
	if filter.TourID > 0 {
		query = query.Where("tour_id = ?", filter.TourID)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.Limit > 0 {
		query = query.Limit(filter.Limit)
	}
	if filter.Offset > 0 {
		query = query.Offset(filter.Offset)
	}

	var bookings []model.Booking
	if err := query.Find(&bookings).Error; err != nil {
		return nil, wrapPersistence("list bookings", err)
	}
	return bookings, nil
}

func (s *BookingService) transition(id uint, from, to string) (*model.Booking, error) {
	booking, err := s.Get(id)
	if err != nil {
		return nil, err
	}
	if booking.Status != from {
		return nil, NewValidationError("status", fmt.Sprintf("booking is %s, expected %s", booking.Status, from))
	}
	booking.Status = to
	if err := s.db.Model(&model.Booking{ID: booking.ID}).Update("status", to).Error; err != nil {
		return nil, wrapPersistence("update booking status", err)
	}
	return booking, nil
}
