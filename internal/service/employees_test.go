package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmployeeService_CreateValidation(t *testing.T) {
	db := newTestDB(t)
	employees := NewEmployeeService(db)

	var validationErr *ValidationError

	_, err := employees.Create(EmployeeInput{LastName: strPtr("Smirnov"), Position: strPtr("agent")})
	require.ErrorAs(t, err, &validationErr)
	assert.Equal(t, "first_name", validationErr.Field)

	_, err = employees.Create(EmployeeInput{
		FirstName: strPtr("Ivan"),
		LastName:  strPtr("Smirnov"),
		Position:  strPtr("agent"),
		HireDate:  timePtr(time.Now()),
		Salary:    floatPtr(-1),
	})
	require.ErrorAs(t, err, &validationErr)
	assert.Equal(t, "salary", validationErr.Field)
}

func TestEmployeeService_SalaryMustBePositive(t *testing.T) {
	db := newTestDB(t)
	employees := NewEmployeeService(db)

	base := EmployeeInput{
		FirstName: strPtr("Ivan"),
		LastName:  strPtr("Smirnov"),
		Position:  strPtr("agent"),
		HireDate:  timePtr(time.Date(2020, 1, 15, 0, 0, 0, 0, time.UTC)),
	}

	var validationErr *ValidationError

	// Omitted salary is rejected, not stored as zero
	_, err := employees.Create(base)
	require.ErrorAs(t, err, &validationErr)
	assert.Equal(t, "salary", validationErr.Field)

	zero := base
	zero.Salary = floatPtr(0)
	_, err = employees.Create(zero)
	require.ErrorAs(t, err, &validationErr)
	assert.Equal(t, "salary", validationErr.Field)

	valid := base
	valid.Salary = floatPtr(900)
	employee, err := employees.Create(valid)
	require.NoError(t, err)

	_, err = employees.Update(employee.ID, EmployeeInput{Salary: floatPtr(0)})
	require.ErrorAs(t, err, &validationErr)
	assert.Equal(t, "salary", validationErr.Field)
}

func TestEmployeeService_DeactivateInsteadOfDelete(t *testing.T) {
	db := newTestDB(t)
	employees := NewEmployeeService(db)
	bookings := NewBookingService(db)

	employee := seedEmployee(t, db)
	tour := seedTour(t, db, 5)
	client := seedClient(t, db, "70 1111111")

	_, err := bookings.Create(CreateBookingInput{
		ClientID:   client.ID,
		TourID:     tour.ID,
		EmployeeID: employee.ID,
	})
	require.NoError(t, err)

	var refErr *ReferentialError
	err = employees.Delete(employee.ID)
	require.ErrorAs(t, err, &refErr)
	assert.Equal(t, "employee", refErr.Entity)

	// Deactivation stays available
	updated, err := employees.Update(employee.ID, EmployeeInput{IsActive: boolPtr(false)})
	require.NoError(t, err)
	assert.False(t, updated.IsActive)

	active, err := employees.List(true)
	require.NoError(t, err)
	assert.Empty(t, active)

	all, err := employees.List(false)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestEmployeeService_DeleteWithoutBookings(t *testing.T) {
	db := newTestDB(t)
	employees := NewEmployeeService(db)

	employee := seedEmployee(t, db)
	require.NoError(t, employees.Delete(employee.ID))

	_, err := employees.Get(employee.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}
