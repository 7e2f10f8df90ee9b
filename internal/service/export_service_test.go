package service

import (
	"bytes"
	"testing"
	"time"

	"github.com/egrafes/egrafes-backend/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func exportFixture() []model.Record {
	mod := time.Date(2026, 3, 15, 9, 30, 0, 0, time.UTC)
	return []model.Record{
		{
			ID:             "a-1",
			RegistryNumber: "12",
			LastName:       "Παπαδόπουλος",
			FirstName:      "Νίκος",
			FatherName:     "Γεώργιος",
			SiblingSchool:  "2ο Γυμνάσιο",
			Notes:          "Σημείωση",
			School:         "1ο Γυμνάσιο",
			SchoolCode:     "0101",
			Street:         "Ακροπόλεως",
			StreetNumber:   "5",
			PostalCode:     "12345",
			City:           "Αθήνα",
			CreatedAt:      time.Date(2026, 3, 14, 10, 0, 0, 0, time.UTC),
			LastModified:   &mod,
		},
		{
			ID:             "a-2",
			RegistryNumber: "13",
			LastName:       "Ιωάννου",
			FirstName:      "Μαρία",
			FatherName:     "Δημήτριος",
			School:         "1ο Γυμνάσιο",
			SchoolCode:     "0101",
			Street:         "Ερμού",
			StreetNumber:   "7",
			PostalCode:     "12345",
			City:           "Αθήνα",
			CreatedAt:      time.Date(2026, 3, 14, 11, 0, 0, 0, time.UTC),
		},
	}
}

func TestExportService_WorkbookLayout(t *testing.T) {
	data, err := NewExportService().Export(exportFixture())
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{ExportSheetName}, f.GetSheetList())

	rows, err := f.GetRows(ExportSheetName)
	require.NoError(t, err)
	require.Len(t, rows, 3) // header + one row per record

	header := rows[0]
	assert.Equal(t, "Αρ. Μητρώου", header[0])
	assert.Equal(t, "Επώνυμο", header[1])
	assert.Equal(t, "Όνομα", header[2])
	assert.Equal(t, "Οδός", header[3])
	assert.Equal(t, "Αριθμός", header[4])
	assert.Equal(t, "ΤΚ", header[5])
	assert.Equal(t, "Πόλη / Περιοχή", header[6])
	assert.Equal(t, "Σχολείο Συμφοίτησης", header[7])
	assert.Equal(t, "Παρατηρήσεις", header[8])
}

func TestExportService_ValuesRoundTripAsText(t *testing.T) {
	records := exportFixture()
	data, err := NewExportService().Export(records)
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(ExportSheetName)
	require.NoError(t, err)

	first := rows[1]
	assert.Equal(t, "12", first[0])
	assert.Equal(t, "Παπαδόπουλος", first[1])
	assert.Equal(t, "Νίκος", first[2])
	assert.Equal(t, "Ακροπόλεως", first[3])
	assert.Equal(t, "5", first[4])
	assert.Equal(t, "12345", first[5])
	assert.Equal(t, "Αθήνα", first[6])
	assert.Equal(t, "2ο Γυμνάσιο", first[7])
	assert.Equal(t, "Σημείωση", first[8])
	assert.Equal(t, "Γεώργιος", first[9])
	assert.Equal(t, "a-1", first[12])
	assert.Equal(t, "2026-03-14T10:00:00Z", first[13])
	assert.Equal(t, "2026-03-15T09:30:00Z", first[14])

	// A never-updated record exports an empty last-modified cell; GetRows
	// trims trailing empty cells so the row is simply shorter.
	second := rows[2]
	assert.Equal(t, "Ιωάννου", second[1])
	if len(second) > 14 {
		assert.Equal(t, "", second[14])
	}
}

func TestExportService_EmptySetStillHasHeader(t *testing.T) {
	data, err := NewExportService().Export(nil)
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(ExportSheetName)
	require.NoError(t, err)
	require.Len(t, rows, 1)
}
