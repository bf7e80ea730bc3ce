package service

import (
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/sshperkin/travel-agency/internal/model"
)

// ClientService manages agency clients
type ClientService struct {
	db *gorm.DB
}

// NewClientService creates the client service
func NewClientService(db *gorm.DB) *ClientService {
	return &ClientService{db: db}
}

// ClientInput carries the fields for creating or updating a client.
// Nil pointers on update mean "leave unchanged".
type ClientInput struct {
	FirstName      *string    `json:"first_name,omitempty"`
	LastName       *string    `json:"last_name,omitempty"`
	NameLatin      *string    `json:"name_latin,omitempty"`
	PassportNumber *string    `json:"passport_number,omitempty"`
	PassportExpiry *time.Time `json:"passport_expiry,omitempty"`
	BirthDate      *time.Time `json:"birth_date,omitempty"`
	Gender         *string    `json:"gender,omitempty"`
	Phone          *string    `json:"phone,omitempty"`
	Email          *string    `json:"email,omitempty"`
}

// ClientFilter narrows List results
type ClientFilter struct {
	Search string // matches first name, last name or passport number
	Limit  int
	Offset int
}

// Create validates and stores a new client
func (s *ClientService) Create(input ClientInput) (*model.Client, error) {
	client := model.Client{}
	if err := applyClientInput(&client, input); err != nil {
		return nil, err
	}
	if client.FirstName == "" {
		return nil, NewValidationError("first_name", "is required")
	}
	if client.LastName == "" {
		return nil, NewValidationError("last_name", "is required")
	}
	if client.PassportNumber == "" {
		return nil, NewValidationError("passport_number", "is required")
	}
	if client.Phone == "" {
		return nil, NewValidationError("phone", "is required")
	}

	if err := s.checkUnique(&client, 0); err != nil {
		return nil, err
	}

	if err := s.db.Create(&client).Error; err != nil {
		return nil, wrapPersistence("create client", err)
	}
	return &client, nil
}

// Get returns a client by id
func (s *ClientService) Get(id uint) (*model.Client, error) {
	var client model.Client
	if err := s.db.First(&client, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, wrapPersistence("load client", err)
	}
	return &client, nil
}

// Update applies a partial update to a client
func (s *ClientService) Update(id uint, input ClientInput) (*model.Client, error) {
	client, err := s.Get(id)
	if err != nil {
		return nil, err
	}
	if err := applyClientInput(client, input); err != nil {
		return nil, err
	}
	if err := s.checkUnique(client, id); err != nil {
		return nil, err
	}
	if err := s.db.Save(client).Error; err != nil {
		return nil, wrapPersistence("update client", err)
	}
	return client, nil
}

// Delete soft-archives a client. Clients with bookings cannot be deleted.
func (s *ClientService) Delete(id uint) error {
	if _, err := s.Get(id); err != nil {
		return err
	}

	var bookings int64
	if err := s.db.Model(&model.Booking{}).Where("client_id = ?", id).Count(&bookings).Error; err != nil {
		return wrapPersistence("count client bookings", err)
	}
	if bookings > 0 {
		return &ReferentialError{Entity: "client", Message: "cannot delete a client with existing bookings"}
	}

	if err := s.db.Delete(&model.Client{}, id).Error; err != nil {
		return wrapPersistence("delete client", err)
	}
	return nil
}

// List returns clients matching the filter, newest first
func (s *ClientService) List(filter ClientFilter) ([]model.Client, error) {
	query := s.db.Model(&model.Client{}).Order("created_at DESC")
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		query = query.Where("first_name LIKE ? OR last_name LIKE ? OR passport_number LIKE ?", pattern, pattern, pattern)
	}
	if filter.Limit > 0 {
		query = query.Limit(filter.Limit)
	}
	if filter.Offset > 0 {
		query = query.Offset(filter.Offset)
	}

	var clients []model.Client
	if err := query.Find(&clients).Error; err != nil {
		return nil, wrapPersistence("list clients", err)
	}
	return clients, nil
}

// checkUnique rejects passport numbers and emails already held by another
// client. Archived clients count too: the unique indexes ignore soft deletes.
func (s *ClientService) checkUnique(client *model.Client, selfID uint) error {
	var count int64
	query := s.db.Unscoped().Model(&model.Client{}).Where("passport_number = ?", client.PassportNumber)
	if selfID > 0 {
		query = query.Where("id <> ?", selfID)
	}
	if err := query.Count(&count).Error; err != nil {
		return wrapPersistence("check passport number", err)
	}
	if count > 0 {
		return NewValidationError("passport_number", "already registered")
	}

	if client.Email != "" {
		query = s.db.Unscoped().Model(&model.Client{}).Where("email = ?", client.Email)
		if selfID > 0 {
			query = query.Where("id <> ?", selfID)
		}
		if err := query.Count(&count).Error; err != nil {
			return wrapPersistence("check email", err)
		}
		if count > 0 {
			return NewValidationError("email", "already registered")
		}
	}
	return nil
}

func applyClientInput(client *model.Client, input ClientInput) error {
	if input.FirstName != nil {
		client.FirstName = strings.TrimSpace(*input.FirstName)
	}
	if input.LastName != nil {
		client.LastName = strings.TrimSpace(*input.LastName)
	}
	if input.NameLatin != nil {
		client.NameLatin = strings.TrimSpace(*input.NameLatin)
	}
	if input.PassportNumber != nil {
		client.PassportNumber = strings.TrimSpace(*input.PassportNumber)
	}
	if input.PassportExpiry != nil {
		client.PassportExpiry = *input.PassportExpiry
	}
	if input.BirthDate != nil {
		client.BirthDate = *input.BirthDate
	}
	if input.Gender != nil {
		client.Gender = *input.Gender
	}
	if input.Phone != nil {
		client.Phone = strings.TrimSpace(*input.Phone)
	}
	if input.Email != nil {
		client.Email = strings.TrimSpace(*input.Email)
	}
	if !client.BirthDate.IsZero() && client.BirthDate.After(time.Now()) {
		return NewValidationError("birth_date", "must be in the past")
	}
	return nil
}
