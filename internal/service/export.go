package service

import (
	"encoding/csv"
	"fmt"
	"io"
	"time"

	"gorm.io/gorm"

	"github.com/sshperkin/travel-agency/internal/model"
)

const csvDateLayout = "2006-01-02"

var clientCSVHeader = []string{
	"client_id", "first_name", "last_name", "name_latin", "passport_number",
	"passport_expiry", "birth_date", "gender", "phone", "email",
}

// ExportService moves client records to and from CSV
type ExportService struct {
	db      *gorm.DB
	clients *ClientService
}

// NewExportService creates the export service
func NewExportService(db *gorm.DB, clients *ClientService) *ExportService {
	return &ExportService{db: db, clients: clients}
}

// ExportClients writes all clients as CSV to w and returns the row count
func (s *ExportService) ExportClients(w io.Writer) (int, error) {
	var clients []model.Client
	if err := s.db.Order("id ASC").Find(&clients).Error; err != nil {
		return 0, wrapPersistence("load clients for export", err)
	}

	cw := csv.NewWriter(w)
	if err := cw.Write(clientCSVHeader); err != nil {
		return 0, fmt.Errorf("write csv header: %w", err)
	}
	for _, c := range clients {
		record := []string{
			fmt.Sprintf("%d", c.ID),
			c.FirstName,
			c.LastName,
			c.NameLatin,
			c.PassportNumber,
			c.PassportExpiry.Format(csvDateLayout),
			c.BirthDate.Format(csvDateLayout),
			c.Gender,
			c.Phone,
			c.Email,
		}
		if err := cw.Write(record); err != nil {
			return 0, fmt.Errorf("write csv record: %w", err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return 0, fmt.Errorf("flush csv: %w", err)
	}
	return len(clients), nil
}

// ImportClients reads client records in the export format from r and creates
// them through the regular client validation. The first line must be the
// header. The import stops on the first invalid record.
func (s *ExportService) ImportClients(r io.Reader) (int, error) {
	cr := csv.NewReader(r)
	header, err := cr.Read()
	if err != nil {
		return 0, NewValidationError("file", "missing csv header")
	}
	index := map[string]int{}
	for i, name := range header {
		index[name] = i
	}
	for _, required := range []string{"first_name", "last_name", "passport_number", "passport_expiry", "birth_date", "phone"} {
		if _, ok := index[required]; !ok {
			return 0, NewValidationError("file", "missing column "+required)
		}
	}

	field := func(record []string, name string) string {
		if i, ok := index[name]; ok && i < len(record) {
			return record[i]
		}
		return ""
	}

	imported := 0
	for line := 2; ; line++ {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return imported, NewValidationError("file", fmt.Sprintf("line %d: malformed csv", line))
		}

		expiry, err := time.Parse(csvDateLayout, field(record, "passport_expiry"))
		if err != nil {
			return imported, NewValidationError("passport_expiry", fmt.Sprintf("line %d: expected YYYY-MM-DD", line))
		}
		birth, err := time.Parse(csvDateLayout, field(record, "birth_date"))
		if err != nil {
			return imported, NewValidationError("birth_date", fmt.Sprintf("line %d: expected YYYY-MM-DD", line))
		}

		firstName := field(record, "first_name")
		lastName := field(record, "last_name")
		nameLatin := field(record, "name_latin")
		passport := field(record, "passport_number")
		gender := field(record, "gender")
		phone := field(record, "phone")
		email := field(record, "email")

		_, err = s.clients.Create(ClientInput{
			FirstName:      &firstName,
			LastName:       &lastName,
			NameLatin:      &nameLatin,
			PassportNumber: &passport,
			PassportExpiry: &expiry,
			BirthDate:      &birth,
			Gender:         &gender,
			Phone:          &phone,
			Email:          &email,
		})
		if err != nil {
			return imported, err
		}
		imported++
	}
	return imported, nil
}
