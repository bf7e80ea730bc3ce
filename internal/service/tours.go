package service

import (
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/sshperkin/travel-agency/internal/model"
)

// TourService manages the agency's tour catalog
type TourService struct {
	db *gorm.DB
}

// NewTourService creates the tour service
func NewTourService(db *gorm.DB) *TourService {
	return &TourService{db: db}
}

// TourInput carries the fields for creating or updating a tour.
// Nil pointers on update mean "leave unchanged".
type TourInput struct {
	Title       *string    `json:"title,omitempty"`
	Destination *string    `json:"destination,omitempty"`
	Description *string    `json:"description,omitempty"`
	StartDate   *time.Time `json:"start_date,omitempty"`
	EndDate     *time.Time `json:"end_date,omitempty"`
	Capacity    *int       `json:"capacity,omitempty"`
	Price       *float64   `json:"price,omitempty"`
	MealType    *string    `json:"meal_type,omitempty"`
	Operator    *string    `json:"operator,omitempty"`
	TourTypeID  *uint      `json:"tour_type_id,omitempty"`
	IsActive    *bool      `json:"is_active,omitempty"`
}

// TourFilter narrows List results
type TourFilter struct {
	Destination string
	ActiveOnly  bool
	From        *time.Time // tours starting at or after From
	To          *time.Time // tours starting at or before To
	Limit       int
	Offset      int
}

// Create validates and stores a new tour
func (s *TourService) Create(input TourInput) (*model.Tour, error) {
	tour := model.Tour{IsActive: true}
	if err := applyTourInput(&tour, input); err != nil {
		return nil, err
	}
	if tour.Title == "" {
		return nil, NewValidationError("title", "is required")
	}
	if tour.Destination == "" {
		return nil, NewValidationError("destination", "is required")
	}
	if err := validateTour(&tour); err != nil {
		return nil, err
	}
	if err := s.checkTourType(tour.TourTypeID); err != nil {
		return nil, err
	}

	if err := s.db.Create(&tour).Error; err != nil {
		return nil, wrapPersistence("create tour", err)
	}
	return &tour, nil
}

// Get returns a tour by id
func (s *TourService) Get(id uint) (*model.Tour, error) {
	var tour model.Tour
	if err := s.db.First(&tour, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, wrapPersistence("load tour", err)
	}
	return &tour, nil
}

// Update applies a partial update to a tour
func (s *TourService) Update(id uint, input TourInput) (*model.Tour, error) {
	tour, err := s.Get(id)
	if err != nil {
		return nil, err
	}
	if err := applyTourInput(tour, input); err != nil {
		return nil, err
	}
	if err := validateTour(tour); err != nil {
		return nil, err
	}
	if err := s.checkTourType(tour.TourTypeID); err != nil {
		return nil, err
	}
	if err := s.db.Save(tour).Error; err != nil {
		return nil, wrapPersistence("update tour", err)
	}
	return tour, nil
}

// Delete soft-deletes a tour. Tours with bookings cannot be deleted.
func (s *TourService) Delete(id uint) error {
	if _, err := s.Get(id); err != nil {
		return err
	}

	var bookings int64
	if err := s.db.Model(&model.Booking{}).Where("tour_id = ?", id).Count(&bookings).Error; err != nil {
		return wrapPersistence("count tour bookings", err)
	}
	if bookings > 0 {
		return &ReferentialError{Entity: "tour", Message: "cannot delete a tour with existing bookings"}
	}

	if err := s.db.Delete(&model.Tour{}, id).Error; err != nil {
		return wrapPersistence("delete tour", err)
	}
	return nil
}

// List returns tours matching the filter, soonest departure first
func (s *TourService) List(filter TourFilter) ([]model.Tour, error) {
	query := s.db.Model(&model.Tour{}).Order("start_date ASC")
	if filter.Destination != "" {
		query = query.Where("destination = ?", filter.Destination)
	}
	if filter.ActiveOnly {
		query = query.Where("is_active = ?", true)
	}
	if filter.From != nil {
		query = query.Where("start_date >= ?", *filter.From)
	}
	if filter.To != nil {
		query = query.Where("start_date <= ?", *filter.To)
	}
	if filter.Limit > 0 {
		query = query.Limit(filter.Limit)
	}
	if filter.Offset > 0 {
		query = query.Offset(filter.Offset)
	}

	var tours []model.Tour
	if err := query.Find(&tours).Error; err != nil {
		return nil, wrapPersistence("list tours", err)
	}
	return tours, nil
}

func applyTourInput(tour *model.Tour, input TourInput) error {
	if input.Title != nil {
		tour.Title = strings.TrimSpace(*input.Title)
	}
	if input.Destination != nil {
		tour.Destination = strings.TrimSpace(*input.Destination)
	}
	if input.Description != nil {
		tour.Description = *input.Description
	}
	if input.StartDate != nil {
		tour.StartDate = *input.StartDate
	}
	if input.EndDate != nil {
		tour.EndDate = *input.EndDate
	}
	if input.Capacity != nil {
		tour.Capacity = *input.Capacity
	}
	if input.Price != nil {
		tour.Price = *input.Price
	}
	if input.MealType != nil {
		tour.MealType = *input.MealType
	}
	if input.Operator != nil {
		tour.Operator = *input.Operator
	}
	if input.TourTypeID != nil {
		tour.TourTypeID = input.TourTypeID
	}
	if input.IsActive != nil {
		tour.IsActive = *input.IsActive
	}
	return nil
}

// checkTourType verifies a referenced tour type exists
func (s *TourService) checkTourType(id *uint) error {
	if id == nil {
		return nil
	}
	var tourType model.TourType
	if err := s.db.First(&tourType, *id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return NewValidationError("tour_type_id", "tour type does not exist")
		}
		return wrapPersistence("load tour type", err)
	}
	return nil
}

// validateTour enforces the tour invariants: capacity >= 0, price > 0,
// start date strictly before end date
func validateTour(tour *model.Tour) error {
	if tour.Capacity < 0 {
		return NewValidationError("capacity", "must not be negative")
	}
	if tour.Price <= 0 {
		return NewValidationError("price", "must be positive")
	}
	if tour.StartDate.IsZero() {
		return NewValidationError("start_date", "is required")
	}
	if tour.EndDate.IsZero() {
		return NewValidationError("end_date", "is required")
	}
	if !tour.StartDate.Before(tour.EndDate) {
		return NewValidationError("end_date", "must be after start date")
	}
	return nil
}
