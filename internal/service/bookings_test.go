package service

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sshperkin/travel-agency/internal/model"
)

func TestBookingService_CreatePending(t *testing.T) {
	db := newTestDB(t)
	bookings := NewBookingService(db)

	client := seedClient(t, db, "70 1111111")
	tour := seedTour(t, db, 10)
	employee := seedEmployee(t, db)

	booking, err := bookings.Create(CreateBookingInput{
		ClientID:   client.ID,
		TourID:     tour.ID,
		EmployeeID: employee.ID,
	})
	require.NoError(t, err)
	assert.Equal(t, model.BookingStatusPending, booking.Status)
	// Price defaults to the tour price
	assert.Equal(t, tour.Price, booking.TotalPrice)
	assert.False(t, booking.CreatedAt.IsZero())

	got, err := bookings.Get(booking.ID)
	require.NoError(t, err)
	assert.Equal(t, client.ID, got.ClientID)
	assert.Equal(t, tour.ID, got.TourID)
	assert.Equal(t, employee.ID, got.EmployeeID)
	require.NotNil(t, got.Client)
	assert.Equal(t, client.PassportNumber, got.Client.PassportNumber)
}

func TestBookingService_MissingReferences(t *testing.T) {
	db := newTestDB(t)
	bookings := NewBookingService(db)

	client := seedClient(t, db, "70 1111111")
	tour := seedTour(t, db, 10)
	employee := seedEmployee(t, db)

	var validationErr *ValidationError

	_, err := bookings.Create(CreateBookingInput{ClientID: 404, TourID: tour.ID, EmployeeID: employee.ID})
	require.ErrorAs(t, err, &validationErr)
	assert.Equal(t, "client_id", validationErr.Field)

	_, err = bookings.Create(CreateBookingInput{ClientID: client.ID, TourID: 404, EmployeeID: employee.ID})
	require.ErrorAs(t, err, &validationErr)
	assert.Equal(t, "tour_id", validationErr.Field)

	_, err = bookings.Create(CreateBookingInput{ClientID: client.ID, TourID: tour.ID, EmployeeID: 404})
	require.ErrorAs(t, err, &validationErr)
	assert.Equal(t, "employee_id", validationErr.Field)
}

func TestBookingService_CapacityEnforced(t *testing.T) {
	db := newTestDB(t)
	bookings := NewBookingService(db)

	tour := seedTour(t, db, 2)
	employee := seedEmployee(t, db)

	for i := 0; i < 2; i++ {
		client := seedClient(t, db, fmt.Sprintf("70 000000%d", i))
		_, err := bookings.Create(CreateBookingInput{
			ClientID:   client.ID,
			TourID:     tour.ID,
			EmployeeID: employee.ID,
		})
		require.NoError(t, err)
	}

	// The third seat does not exist
	extra := seedClient(t, db, "70 0000009")
	_, err := bookings.Create(CreateBookingInput{
		ClientID:   extra.ID,
		TourID:     tour.ID,
		EmployeeID: employee.ID,
	})
	var validationErr *ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Equal(t, "tour_id", validationErr.Field)
}

func TestBookingService_CancelFreesSeat(t *testing.T) {
	db := newTestDB(t)
	bookings := NewBookingService(db)

	tour := seedTour(t, db, 1)
	employee := seedEmployee(t, db)
	first := seedClient(t, db, "70 1111111")
	second := seedClient(t, db, "70 2222222")

	booking, err := bookings.Create(CreateBookingInput{
		ClientID:   first.ID,
		TourID:     tour.ID,
		EmployeeID: employee.ID,
	})
	require.NoError(t, err)

	_, err = bookings.Create(CreateBookingInput{
		ClientID:   second.ID,
		TourID:     tour.ID,
		EmployeeID: employee.ID,
	})
	require.Error(t, err)

	cancelled, err := bookings.Cancel(booking.ID)
	require.NoError(t, err)
	assert.Equal(t, model.BookingStatusCancelled, cancelled.Status)

	_, err = bookings.Create(CreateBookingInput{
		ClientID:   second.ID,
		TourID:     tour.ID,
		EmployeeID: employee.ID,
	})
	assert.NoError(t, err)
}

func TestBookingService_ConfirmTransitions(t *testing.T) {
	db := newTestDB(t)
	bookings := NewBookingService(db)

	tour := seedTour(t, db, 5)
	employee := seedEmployee(t, db)
	client := seedClient(t, db, "70 1111111")

	booking, err := bookings.Create(CreateBookingInput{
		ClientID:   client.ID,
		TourID:     tour.ID,
		EmployeeID: employee.ID,
	})
	require.NoError(t, err)

	confirmed, err := bookings.Confirm(booking.ID)
	require.NoError(t, err)
	assert.Equal(t, model.BookingStatusConfirmed, confirmed.Status)

	// Confirming twice is rejected
	_, err = bookings.Confirm(booking.ID)
	var validationErr *ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Equal(t, "status", validationErr.Field)

	// Cancelling an already cancelled booking is a no-op
	_, err = bookings.Cancel(booking.ID)
	require.NoError(t, err)
	again, err := bookings.Cancel(booking.ID)
	require.NoError(t, err)
	assert.Equal(t, model.BookingStatusCancelled, again.Status)
}

func TestBookingService_ConfirmMissing(t *testing.T) {
	db := newTestDB(t)
	bookings := NewBookingService(db)

	_, err := bookings.Confirm(404)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestBookingService_DeleteBlockedByPayments(t *testing.T) {
	db := newTestDB(t)
	bookings := NewBookingService(db)
	payments := NewPaymentService(db)

	tour := seedTour(t, db, 5)
	employee := seedEmployee(t, db)
	client := seedClient(t, db, "70 1111111")

	booking, err := bookings.Create(CreateBookingInput{
		ClientID:   client.ID,
		TourID:     tour.ID,
		EmployeeID: employee.ID,
	})
	require.NoError(t, err)

	_, err = payments.Record(RecordPaymentInput{
		BookingID: booking.ID,
		Amount:    500,
		Method:    model.PaymentMethodCard,
	})
	require.NoError(t, err)

	var referentialErr *ReferentialError
	require.ErrorAs(t, bookings.Delete(booking.ID), &referentialErr)
	assert.Equal(t, "booking", referentialErr.Entity)
}

func TestBookingService_ListFilters(t *testing.T) {
	db := newTestDB(t)
	bookings := NewBookingService(db)

	tour := seedTour(t, db, 5)
	employee := seedEmployee(t, db)
	first := seedClient(t, db, "70 1111111")
	second := seedClient(t, db, "70 2222222")

	b1, err := bookings.Create(CreateBookingInput{ClientID: first.ID, TourID: tour.ID, EmployeeID: employee.ID})
	require.NoError(t, err)
	_, err = bookings.Create(CreateBookingInput{ClientID: second.ID, TourID: tour.ID, EmployeeID: employee.ID})
	require.NoError(t, err)

	_, err = bookings.Confirm(b1.ID)
	require.NoError(t, err)

	byClient, err := bookings.List(BookingFilter{ClientID: first.ID})
	require.NoError(t, err)
	require.Len(t, byClient, 1)
	assert.Equal(t, b1.ID, byClient[0].ID)

	confirmed, err := bookings.List(BookingFilter{Status: model.BookingStatusConfirmed})
	require.NoError(t, err)
	require.Len(t, confirmed, 1)
	assert.Equal(t, b1.ID, confirmed[0].ID)

	all, err := bookings.List(BookingFilter{TourID: tour.ID})
	require.NoError(t, err)
	assert.Len(t, all, 2)
}
