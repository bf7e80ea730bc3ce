package service

import (
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/sshperkin/travel-agency/internal/model"
)

// newTestDB opens a fresh in-memory database with the full schema
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&model.User{},
		&model.Employee{},
		&model.Client{},
		&model.Country{},
		&model.City{},
		&model.Hotel{},
		&model.TourType{},
		&model.Tour{},
		&model.TourHotel{},
		&model.Booking{},
		&model.Payment{},
		&model.Review{},
	))
	return db
}

func strPtr(s string) *string         { return &s }
func intPtr(i int) *int               { return &i }
func floatPtr(f float64) *float64     { return &f }
func timePtr(ts time.Time) *time.Time { return &ts }

// seedClient inserts a valid client and returns it
func seedClient(t *testing.T, db *gorm.DB, passport string) *model.Client {
	t.Helper()
	clients := NewClientService(db)
	client, err := clients.Create(ClientInput{
		FirstName:      strPtr("Anna"),
		LastName:       strPtr("Petrova"),
		PassportNumber: strPtr(passport),
		PassportExpiry: timePtr(time.Now().AddDate(5, 0, 0)),
		BirthDate:      timePtr(time.Date(1990, 4, 12, 0, 0, 0, 0, time.UTC)),
		Phone:          strPtr("+7-900-000-00-00"),
	})
	require.NoError(t, err)
	return client
}

// seedTour inserts an active tour with the given capacity and returns it
func seedTour(t *testing.T, db *gorm.DB, capacity int) *model.Tour {
	t.Helper()
	tours := NewTourService(db)
	tour, err := tours.Create(TourInput{
		Title:       strPtr("Antalya All Inclusive"),
		Destination: strPtr("Antalya"),
		StartDate:   timePtr(time.Now().AddDate(0, 1, 0)),
		EndDate:     timePtr(time.Now().AddDate(0, 1, 10)),
		Capacity:    intPtr(capacity),
		Price:       floatPtr(1200),
	})
	require.NoError(t, err)
	return tour
}

// seedEmployee inserts an active employee and returns it
func seedEmployee(t *testing.T, db *gorm.DB) *model.Employee {
	t.Helper()
	employees := NewEmployeeService(db)
	employee, err := employees.Create(EmployeeInput{
		FirstName: strPtr("Ivan"),
		LastName:  strPtr("Smirnov"),
		Position:  strPtr("agent"),
		HireDate:  timePtr(time.Date(2020, 1, 15, 0, 0, 0, 0, time.UTC)),
		Salary:    floatPtr(900),
	})
	require.NoError(t, err)
	return employee
}
