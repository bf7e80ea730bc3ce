package service

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExportService_RoundTrip(t *testing.T) {
	source := newTestDB(t)
	seedClient(t, source, "70 1111111")
	seedClient(t, source, "70 2222222")

	var buf bytes.Buffer
	exported, err := NewExportService(source, NewClientService(source)).ExportClients(&buf)
	require.NoError(t, err)
	assert.Equal(t, 2, exported)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, strings.Join(clientCSVHeader, ","), lines[0])

	// Importing the export into an empty database recreates the clients
	target := newTestDB(t)
	targetClients := NewClientService(target)
	imported, err := NewExportService(target, targetClients).ImportClients(&buf)
	require.NoError(t, err)
	assert.Equal(t, 2, imported)

	list, err := targetClients.List(ClientFilter{})
	require.NoError(t, err)
	require.Len(t, list, 2)
	passports := []string{list[0].PassportNumber, list[1].PassportNumber}
	assert.ElementsMatch(t, []string{"70 1111111", "70 2222222"}, passports)
	assert.Equal(t, "Anna", list[0].FirstName)
}

func TestExportService_ImportRejectsBadHeader(t *testing.T) {
	db := newTestDB(t)
	export := NewExportService(db, NewClientService(db))

	var validationErr *ValidationError
	_, err := export.ImportClients(strings.NewReader("first_name,last_name\nAnna,Petrova\n"))
	require.ErrorAs(t, err, &validationErr)
	assert.Equal(t, "file", validationErr.Field)
}

func TestExportService_ImportStopsOnBadDate(t *testing.T) {
	db := newTestDB(t)
	clients := NewClientService(db)
	export := NewExportService(db, clients)

	input := strings.Join([]string{
		strings.Join(clientCSVHeader, ","),
		",Anna,Petrova,,70 1111111,2031-01-01,1990-04-12,,+7-900-000-00-00,",
		",Boris,Ivanov,,70 2222222,not-a-date,1985-02-03,,+7-900-000-00-01,",
		"",
	}, "\n")

	var validationErr *ValidationError
	imported, err := export.ImportClients(strings.NewReader(input))
	require.ErrorAs(t, err, &validationErr)
	assert.Equal(t, "passport_expiry", validationErr.Field)
	assert.Contains(t, validationErr.Message, "line 3")
	assert.Equal(t, 1, imported)

	// The valid record before the failure is kept
	list, err := clients.List(ClientFilter{})
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "Anna", list[0].FirstName)
}
