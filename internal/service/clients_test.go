package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClientService_CreateAndGetRoundTrip(t *testing.T) {
	db := newTestDB(t)
	clients := NewClientService(db)

	expiry := time.Date(2030, 6, 1, 0, 0, 0, 0, time.UTC)
	birth := time.Date(1985, 2, 20, 0, 0, 0, 0, time.UTC)

	created, err := clients.Create(ClientInput{
		FirstName:      strPtr("Olga"),
		LastName:       strPtr("Ivanova"),
		NameLatin:      strPtr("Olga Ivanova"),
		PassportNumber: strPtr("70 1234567"),
		PassportExpiry: &expiry,
		BirthDate:      &birth,
		Gender:         strPtr("female"),
		Phone:          strPtr("+7-900-123-45-67"),
		Email:          strPtr("olga@example.com"),
	})
	require.NoError(t, err)
	require.NotZero(t, created.ID)

	got, err := clients.Get(created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Olga", got.FirstName)
	assert.Equal(t, "Ivanova", got.LastName)
	assert.Equal(t, "Olga Ivanova", got.NameLatin)
	assert.Equal(t, "70 1234567", got.PassportNumber)
	assert.Equal(t, "female", got.Gender)
	assert.Equal(t, "+7-900-123-45-67", got.Phone)
	assert.Equal(t, "olga@example.com", got.Email)
	assert.True(t, got.PassportExpiry.Equal(expiry))
	assert.True(t, got.BirthDate.Equal(birth))
}

func TestClientService_RequiredFields(t *testing.T) {
	db := newTestDB(t)
	clients := NewClientService(db)

	var validationErr *ValidationError
	_, err := clients.Create(ClientInput{LastName: strPtr("Ivanova")})
	require.ErrorAs(t, err, &validationErr)
	assert.Equal(t, "first_name", validationErr.Field)
}

func TestClientService_DuplicatePassportAndEmail(t *testing.T) {
	db := newTestDB(t)
	clients := NewClientService(db)
	seedClient(t, db, "70 1111111")

	var validationErr *ValidationError

	_, err := clients.Create(ClientInput{
		FirstName:      strPtr("Maria"),
		LastName:       strPtr("Orlova"),
		PassportNumber: strPtr("70 1111111"),
		PassportExpiry: timePtr(time.Now().AddDate(3, 0, 0)),
		BirthDate:      timePtr(time.Date(1992, 7, 1, 0, 0, 0, 0, time.UTC)),
		Phone:          strPtr("+7-900-222-22-22"),
	})
	require.ErrorAs(t, err, &validationErr)
	assert.Equal(t, "passport_number", validationErr.Field)

	first, err := clients.Create(ClientInput{
		FirstName:      strPtr("Maria"),
		LastName:       strPtr("Orlova"),
		PassportNumber: strPtr("70 2222222"),
		PassportExpiry: timePtr(time.Now().AddDate(3, 0, 0)),
		BirthDate:      timePtr(time.Date(1992, 7, 1, 0, 0, 0, 0, time.UTC)),
		Phone:          strPtr("+7-900-222-22-22"),
		Email:          strPtr("maria@example.com"),
	})
	require.NoError(t, err)

	_, err = clients.Create(ClientInput{
		FirstName:      strPtr("Daria"),
		LastName:       strPtr("Orlova"),
		PassportNumber: strPtr("70 3333333"),
		PassportExpiry: timePtr(time.Now().AddDate(3, 0, 0)),
		BirthDate:      timePtr(time.Date(1994, 7, 1, 0, 0, 0, 0, time.UTC)),
		Phone:          strPtr("+7-900-333-33-33"),
		Email:          strPtr("maria@example.com"),
	})
	require.ErrorAs(t, err, &validationErr)
	assert.Equal(t, "email", validationErr.Field)

	// Updating a client keeping its own passport is fine
	_, err = clients.Update(first.ID, ClientInput{Phone: strPtr("+7-900-999-99-99")})
	assert.NoError(t, err)
}

func TestClientService_PartialUpdate(t *testing.T) {
	db := newTestDB(t)
	clients := NewClientService(db)
	client := seedClient(t, db, "70 1111111")

	updated, err := clients.Update(client.ID, ClientInput{Phone: strPtr("+7-900-777-77-77")})
	require.NoError(t, err)
	assert.Equal(t, "+7-900-777-77-77", updated.Phone)
	// Unset fields stay untouched
	assert.Equal(t, client.FirstName, updated.FirstName)
	assert.Equal(t, client.PassportNumber, updated.PassportNumber)
}

func TestClientService_UpdateMissing(t *testing.T) {
	db := newTestDB(t)
	clients := NewClientService(db)

	_, err := clients.Update(404, ClientInput{Phone: strPtr("+7-900-777-77-77")})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestClientService_DeleteBlockedByBookings(t *testing.T) {
	db := newTestDB(t)
	clients := NewClientService(db)
	bookings := NewBookingService(db)

	client := seedClient(t, db, "70 1111111")
	tour := seedTour(t, db, 10)
	employee := seedEmployee(t, db)

	_, err := bookings.Create(CreateBookingInput{
		ClientID:   client.ID,
		TourID:     tour.ID,
		EmployeeID: employee.ID,
	})
	require.NoError(t, err)

	err = clients.Delete(client.ID)
	var referentialErr *ReferentialError
	require.ErrorAs(t, err, &referentialErr)
	assert.Equal(t, "client", referentialErr.Entity)

	// Client is still there
	_, err = clients.Get(client.ID)
	assert.NoError(t, err)
}

func TestClientService_SoftDelete(t *testing.T) {
	db := newTestDB(t)
	clients := NewClientService(db)
	client := seedClient(t, db, "70 1111111")

	require.NoError(t, clients.Delete(client.ID))

	_, err := clients.Get(client.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	// The row survives as an archived record
	var count int64
	require.NoError(t, db.Unscoped().Table("clients").Where("id = ?", client.ID).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestClientService_ArchivedPassportStaysTaken(t *testing.T) {
	db := newTestDB(t)
	clients := NewClientService(db)
	client := seedClient(t, db, "70 1111111")

	require.NoError(t, clients.Delete(client.ID))

	// The unique index still covers the archived row, so the passport must
	// fail validation instead of surfacing a constraint error
	var validationErr *ValidationError
	_, err := clients.Create(ClientInput{
		FirstName:      strPtr("Maria"),
		LastName:       strPtr("Orlova"),
		PassportNumber: strPtr("70 1111111"),
		PassportExpiry: timePtr(time.Now().AddDate(3, 0, 0)),
		BirthDate:      timePtr(time.Date(1992, 7, 1, 0, 0, 0, 0, time.UTC)),
		Phone:          strPtr("+7-900-222-22-22"),
	})
	require.ErrorAs(t, err, &validationErr)
	assert.Equal(t, "passport_number", validationErr.Field)
}

func TestClientService_ListSearch(t *testing.T) {
	db := newTestDB(t)
	clients := NewClientService(db)
	seedClient(t, db, "70 1111111")

	_, err := clients.Create(ClientInput{
		FirstName:      strPtr("Boris"),
		LastName:       strPtr("Volkov"),
		PassportNumber: strPtr("71 9999999"),
		PassportExpiry: timePtr(time.Now().AddDate(2, 0, 0)),
		BirthDate:      timePtr(time.Date(1980, 3, 3, 0, 0, 0, 0, time.UTC)),
		Phone:          strPtr("+7-900-444-44-44"),
	})
	require.NoError(t, err)

	all, err := clients.List(ClientFilter{})
	require.NoError(t, err)
	assert.Len(t, all, 2)

	matched, err := clients.List(ClientFilter{Search: "Volkov"})
	require.NoError(t, err)
	require.Len(t, matched, 1)
	assert.Equal(t, "Boris", matched[0].FirstName)
}
