package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTourService_Invariants(t *testing.T) {
	db := newTestDB(t)
	tours := NewTourService(db)

	base := TourInput{
		Title:       strPtr("Antalya All Inclusive"),
		Destination: strPtr("Antalya"),
		StartDate:   timePtr(time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC)),
		EndDate:     timePtr(time.Date(2026, 10, 11, 0, 0, 0, 0, time.UTC)),
		Capacity:    intPtr(20),
		Price:       floatPtr(1500),
	}

	var validationErr *ValidationError

	negative := base
	negative.Capacity = intPtr(-1)
	_, err := tours.Create(negative)
	require.ErrorAs(t, err, &validationErr)
	assert.Equal(t, "capacity", validationErr.Field)

	freebie := base
	freebie.Price = floatPtr(0)
	_, err = tours.Create(freebie)
	require.ErrorAs(t, err, &validationErr)
	assert.Equal(t, "price", validationErr.Field)

	inverted := base
	inverted.StartDate = timePtr(time.Date(2026, 10, 11, 0, 0, 0, 0, time.UTC))
	inverted.EndDate = timePtr(time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC))
	_, err = tours.Create(inverted)
	require.ErrorAs(t, err, &validationErr)
	assert.Equal(t, "end_date", validationErr.Field)

	sameDay := base
	sameDay.EndDate = sameDay.StartDate
	_, err = tours.Create(sameDay)
	require.ErrorAs(t, err, &validationErr)
	assert.Equal(t, "end_date", validationErr.Field)

	// Zero capacity is a valid tour that just cannot be booked
	zeroCap := base
	zeroCap.Capacity = intPtr(0)
	_, err = tours.Create(zeroCap)
	assert.NoError(t, err)
}

func TestTourService_CreateAndGetRoundTrip(t *testing.T) {
	db := newTestDB(t)
	tours := NewTourService(db)

	start := time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, 10, 11, 0, 0, 0, 0, time.UTC)

	created, err := tours.Create(TourInput{
		Title:       strPtr("Antalya All Inclusive"),
		Destination: strPtr("Antalya"),
		Description: strPtr("Ten nights, first beach line"),
		StartDate:   &start,
		EndDate:     &end,
		Capacity:    intPtr(20),
		Price:       floatPtr(1500),
		MealType:    strPtr("all inclusive"),
		Operator:    strPtr("SunTours"),
	})
	require.NoError(t, err)

	got, err := tours.Get(created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Antalya All Inclusive", got.Title)
	assert.Equal(t, "Antalya", got.Destination)
	assert.Equal(t, 20, got.Capacity)
	assert.Equal(t, 1500.0, got.Price)
	assert.Equal(t, "all inclusive", got.MealType)
	assert.True(t, got.StartDate.Equal(start))
	assert.True(t, got.EndDate.Equal(end))
	assert.True(t, got.IsActive)
}

func TestTourService_UpdateKeepsInvariants(t *testing.T) {
	db := newTestDB(t)
	tours := NewTourService(db)
	tour := seedTour(t, db, 10)

	var validationErr *ValidationError
	_, err := tours.Update(tour.ID, TourInput{Capacity: intPtr(-5)})
	require.ErrorAs(t, err, &validationErr)
	assert.Equal(t, "capacity", validationErr.Field)

	updated, err := tours.Update(tour.ID, TourInput{Capacity: intPtr(25), IsActive: boolPtr(false)})
	require.NoError(t, err)
	assert.Equal(t, 25, updated.Capacity)
	assert.False(t, updated.IsActive)
}

func TestTourService_DeleteBlockedByBookings(t *testing.T) {
	db := newTestDB(t)
	tours := NewTourService(db)
	bookings := NewBookingService(db)

	client := seedClient(t, db, "70 1111111")
	tour := seedTour(t, db, 5)
	employee := seedEmployee(t, db)

	_, err := bookings.Create(CreateBookingInput{
		ClientID:   client.ID,
		TourID:     tour.ID,
		EmployeeID: employee.ID,
	})
	require.NoError(t, err)

	var referentialErr *ReferentialError
	require.ErrorAs(t, tours.Delete(tour.ID), &referentialErr)
	assert.Equal(t, "tour", referentialErr.Entity)
}

func TestTourService_ListFilters(t *testing.T) {
	db := newTestDB(t)
	tours := NewTourService(db)
	seedTour(t, db, 10)

	_, err := tours.Create(TourInput{
		Title:       strPtr("Rome Weekend"),
		Destination: strPtr("Rome"),
		StartDate:   timePtr(time.Now().AddDate(0, 2, 0)),
		EndDate:     timePtr(time.Now().AddDate(0, 2, 3)),
		Capacity:    intPtr(8),
		Price:       floatPtr(700),
		IsActive:    boolPtr(false),
	})
	require.NoError(t, err)

	byDest, err := tours.List(TourFilter{Destination: "Rome"})
	require.NoError(t, err)
	require.Len(t, byDest, 1)
	assert.Equal(t, "Rome Weekend", byDest[0].Title)

	active, err := tours.List(TourFilter{ActiveOnly: true})
	require.NoError(t, err)
	require.Len(t, active, 1)
	assert.Equal(t, "Antalya", active[0].Destination)
}

func boolPtr(b bool) *bool { return &b }
