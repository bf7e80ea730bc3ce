package service

import (
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/sshperkin/travel-agency/internal/model"
)

// EmployeeService manages agency employees
type EmployeeService struct {
	db *gorm.DB
}

// NewEmployeeService creates the employee service
func NewEmployeeService(db *gorm.DB) *EmployeeService {
	return &EmployeeService{db: db}
}

// EmployeeInput carries the fields for creating or updating an employee.
// Nil pointers on update mean "leave unchanged".
type EmployeeInput struct {
	FirstName *string    `json:"first_name,omitempty"`
	LastName  *string    `json:"last_name,omitempty"`
	Position  *string    `json:"position,omitempty"`
	Phone     *string    `json:"phone,omitempty"`
	Email     *string    `json:"email,omitempty"`
	HireDate  *time.Time `json:"hire_date,omitempty"`
	Salary    *float64   `json:"salary,omitempty"`
	IsActive  *bool      `json:"is_active,omitempty"`
}

// Create validates and stores a new employee
func (s *EmployeeService) Create(input EmployeeInput) (*model.Employee, error) {
	employee := model.Employee{IsActive: true}
	applyEmployeeInput(&employee, input)
	if employee.FirstName == "" {
		return nil, NewValidationError("first_name", "is required")
	}
	if employee.LastName == "" {
		return nil, NewValidationError("last_name", "is required")
	}
	if employee.Position == "" {
		return nil, NewValidationError("position", "is required")
	}
	if employee.HireDate.IsZero() {
		return nil, NewValidationError("hire_date", "is required")
	}
	if employee.Salary <= 0 {
		return nil, NewValidationError("salary", "must be positive")
	}

	if err := s.db.Create(&employee).Error; err != nil {
		return nil, wrapPersistence("create employee", err)
	}
	return &employee, nil
}

// Get returns an employee by id
func (s *EmployeeService) Get(id uint) (*model.Employee, error) {
	var employee model.Employee
	if err := s.db.First(&employee, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, wrapPersistence("load employee", err)
	}
	return &employee, nil
}

// Update applies a partial update to an employee
func (s *EmployeeService) Update(id uint, input EmployeeInput) (*model.Employee, error) {
	employee, err := s.Get(id)
	if err != nil {
		return nil, err
	}
	applyEmployeeInput(employee, input)
	if employee.Salary <= 0 {
		return nil, NewValidationError("salary", "must be positive")
	}
	if err := s.db.Save(employee).Error; err != nil {
		return nil, wrapPersistence("update employee", err)
	}
	return employee, nil
}

// Delete soft-deletes an employee. Employees that processed bookings cannot
// be deleted, only deactivated.
func (s *EmployeeService) Delete(id uint) error {
	if _, err := s.Get(id); err != nil {
		return err
	}

	var bookings int64
	if err := s.db.Model(&model.Booking{}).Where("employee_id = ?", id).Count(&bookings).Error; err != nil {
		return wrapPersistence("count employee bookings", err)
	}
	if bookings > 0 {
		return &ReferentialError{Entity: "employee", Message: "cannot delete an employee with processed bookings"}
	}

	if err := s.db.Delete(&model.Employee{}, id).Error; err != nil {
		return wrapPersistence("delete employee", err)
	}
	return nil
}

// List returns employees, active first, then by last name
func (s *EmployeeService) List(activeOnly bool) ([]model.Employee, error) {
	query := s.db.Model(&model.Employee{}).Order("is_active DESC, last_name ASC")
	if activeOnly {
		query = query.Where("is_active = ?", true)
	}

	var employees []model.Employee
	if err := query.Find(&employees).Error; err != nil {
		return nil, wrapPersistence("list employees", err)
	}
	return employees, nil
}

func applyEmployeeInput(employee *model.Employee, input EmployeeInput) {
	if input.FirstName != nil {
		employee.FirstName = strings.TrimSpace(*input.FirstName)
	}
	if input.LastName != nil {
		employee.LastName = strings.TrimSpace(*input.LastName)
	}
	if input.Position != nil {
		employee.Position = strings.TrimSpace(*input.Position)
	}
	if input.Phone != nil {
		employee.Phone = *input.Phone
	}
	if input.Email != nil {
		employee.Email = *input.Email
	}
	if input.HireDate != nil {
		employee.HireDate = *input.HireDate
	}
	if input.Salary != nil {
		employee.Salary = *input.Salary
	}
	if input.IsActive != nil {
		employee.IsActive = *input.IsActive
	}
}
