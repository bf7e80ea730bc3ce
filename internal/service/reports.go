package service

import (
	"time"

	"gorm.io/gorm"

	"github.com/sshperkin/travel-agency/internal/model"
)

// ReportKind identifies one of the supported aggregate reports
type ReportKind string

const (
	ReportBookingsByPeriod ReportKind = "bookings-by-period"
	ReportRevenueByTour    ReportKind = "revenue-by-tour"
	ReportClientActivity   ReportKind = "client-activity"
)

// ReportParams parameterizes a report. From and To bound the booking
// creation timestamp, inclusive.
type ReportParams struct {
	From time.Time `json:"from"`
	To   time.Time `json:"to"`
}

// Report is a tabular report result. Zero rows is a valid result.
type Report struct {
	Kind    ReportKind      `json:"kind"`
	Columns []string        `json:"columns"`
	Rows    [][]interface{} `json:"rows"`
}

// ReportService runs parameterized aggregate queries
type ReportService struct {
	db *gorm.DB
}

// NewReportService creates the report service
func NewReportService(db *gorm.DB) *ReportService {
	return &ReportService{db: db}
}

// Generate runs the report of the given kind. Unknown kinds and inverted
// date ranges fail validation.
func (s *ReportService) Generate(kind ReportKind, params ReportParams) (*Report, error) {
	if params.From.IsZero() {
		return nil, NewValidationError("from", "is required")
	}
	if params.To.IsZero() {
		return nil, NewValidationError("to", "is required")
	}
	if params.To.Before(params.From) {
		return nil, NewValidationError("to", "must not be before from")
	}

	switch kind {
	case ReportBookingsByPeriod:
		return s.bookingsByPeriod(params)
	case ReportRevenueByTour:
		return s.revenueByTour(params)
	case ReportClientActivity:
		return s.clientActivity(params)
	default:
		return nil, NewValidationError("kind", "unknown report kind")
	}
}

func (s *ReportService) bookingsByPeriod(params ReportParams) (*Report, error) {
	var rows []struct {
		ID         uint
		FirstName  string
		LastName   string
		TourTitle  string
		Status     string
		TotalPrice float64
		CreatedAt  time.Time
	}
	err := s.db.Table("bookings").
		Select("bookings.id, clients.first_name, clients.last_name, tours.title AS tour_title, bookings.status, bookings.total_price, bookings.created_at").
		Joins("JOIN clients ON clients.id = bookings.client_id").
		Joins("JOIN tours ON tours.id = bookings.tour_id").
		Where("bookings.deleted_at IS NULL").
		Where("bookings.created_at >= ? AND bookings.created_at <= ?", params.From, params.To).
		Order("bookings.created_at ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, wrapPersistence("bookings-by-period report", err)
	}

	report := &Report{
		Kind:    ReportBookingsByPeriod,
		Columns: []string{"booking_id", "client_name", "tour_title", "status", "total_price", "created_at"},
		Rows:    make([][]interface{}, 0, len(rows)),
	}
	for _, r := range rows {
		report.Rows = append(report.Rows, []interface{}{
			r.ID, r.FirstName + " " + r.LastName, r.TourTitle, r.Status, r.TotalPrice, r.CreatedAt,
		})
	}
	return report, nil
}

func (s *ReportService) revenueByTour(params ReportParams) (*Report, error) {
	var rows []struct {
		TourID      uint
		Title       string
		Destination string
		Bookings    int64
		Revenue     float64
	}
	err := s.db.Table("bookings").
		Select("tours.id AS tour_id, tours.title, tours.destination, COUNT(bookings.id) AS bookings, COALESCE(SUM(bookings.total_price), 0) AS revenue").
		Joins("JOIN tours ON tours.id = bookings.tour_id").
		Where("bookings.deleted_at IS NULL").
		Where("bookings.status = ?", model.BookingStatusConfirmed).
		Where("bookings.created_at >= ? AND bookings.created_at <= ?", params.From, params.To).
		Group("tours.id, tours.title, tours.destination").
		Order("revenue DESC").
		Scan(&rows).Error
	if err != nil {
		return nil, wrapPersistence("revenue-by-tour report", err)
	}

	report := &Report{
		Kind:    ReportRevenueByTour,
		Columns: []string{"tour_id", "title", "destination", "bookings", "revenue"},
		Rows:    make([][]interface{}, 0, len(rows)),
	}
	for _, r := range rows {
		report.Rows = append(report.Rows, []interface{}{
			r.TourID, r.Title, r.Destination, r.Bookings, r.Revenue,
		})
	}
	return report, nil
}

func (s *ReportService) clientActivity(params ReportParams) (*Report, error) {
	var rows []struct {
		ClientID  uint
		FirstName string
		LastName  string
		Bookings  int64
		Spent     float64
	}
	err := s.db.Table("bookings").
		Select("clients.id AS client_id, clients.first_name, clients.last_name, COUNT(bookings.id) AS bookings, COALESCE(SUM(bookings.total_price), 0) AS spent").
		Joins("JOIN clients ON clients.id = bookings.client_id").
		Where("bookings.deleted_at IS NULL").
		Where("bookings.status <> ?", model.BookingStatusCancelled).
		Where("bookings.created_at >= ? AND bookings.created_at <= ?", params.From, params.To).
		Group("clients.id, clients.first_name, clients.last_name").
		Order("bookings DESC").
		Scan(&rows).Error
	if err != nil {
		return nil, wrapPersistence("client-activity report", err)
	}

	report := &Report{
		Kind:    ReportClientActivity,
		Columns: []string{"client_id", "client_name", "bookings", "total_spent"},
		Rows:    make([][]interface{}, 0, len(rows)),
	}
	for _, r := range rows {
		report.Rows = append(report.Rows, []interface{}{
			r.ClientID, r.FirstName + " " + r.LastName, r.Bookings, r.Spent,
		})
	}
	return report, nil
}
