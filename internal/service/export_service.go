package service

import (
	"fmt"
	"time"

	"github.com/egrafes/egrafes-backend/internal/model"
	"github.com/xuri/excelize/v2"
)

// ExportSheetName is the single sheet an export workbook contains.
const ExportSheetName = "Μαθητές"

// exportColumn pairs a localized header label with the record field it
// renders. Column order follows the registration form: the address block
// right after the name, bookkeeping fields last.
type exportColumn struct {
	Label string
	Value func(rec model.Record) string
}

var exportColumns = []exportColumn{
	{"Αρ. Μητρώου", func(r model.Record) string { return r.RegistryNumber }},
	{"Επώνυμο", func(r model.Record) string { return r.LastName }},
	{"Όνομα", func(r model.Record) string { return r.FirstName }},
	{"Οδός", func(r model.Record) string { return r.Street }},
	{"Αριθμός", func(r model.Record) string { return r.StreetNumber }},
	{"ΤΚ", func(r model.Record) string { return r.PostalCode }},
	{"Πόλη / Περιοχή", func(r model.Record) string { return r.City }},
	{"Σχολείο Συμφοίτησης", func(r model.Record) string { return r.SiblingSchool }},
	{"Παρατηρήσεις", func(r model.Record) string { return r.Notes }},
	{"Όνομα Πατέρα", func(r model.Record) string { return r.FatherName }},
	{"Σχολείο", func(r model.Record) string { return r.School }},
	{"Κωδικός Σχολείου", func(r model.Record) string { return r.SchoolCode }},
	{"Αναγνωριστικό", func(r model.Record) string { return r.ID }},
	{"Ημ/νία Δημιουργίας", func(r model.Record) string { return formatTimestamp(r.CreatedAt) }},
	{"Τελευταία Τροποποίηση", func(r model.Record) string {
		if r.LastModified == nil {
			return ""
		}
		return formatTimestamp(*r.LastModified)
	}},
}

// ExportService serializes a record set into a spreadsheet workbook.
type ExportService struct{}

// NewExportService creates a new ExportService.
func NewExportService() *ExportService {
	return &ExportService{}
}

// Export produces an xlsx workbook with one header row and one row per
// record, every value written as text. Pure function of the input; the
// caller decides whether to stream or persist the bytes.
func (s *ExportService) Export(records []model.Record) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), ExportSheetName); err != nil {
		return nil, fmt.Errorf("name export sheet: %w", err)
	}

	headers := make([]interface{}, len(exportColumns))
	for i, col := range exportColumns {
		headers[i] = col.Label
	}
	if err := f.SetSheetRow(ExportSheetName, "A1", &headers); err != nil {
		return nil, fmt.Errorf("write header row: %w", err)
	}

	for i, rec := range records {
		row := make([]interface{}, len(exportColumns))
		for j, col := range exportColumns {
			row[j] = col.Value(rec)
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, fmt.Errorf("row coordinates: %w", err)
		}
		if err := f.SetSheetRow(ExportSheetName, cell, &row); err != nil {
			return nil, fmt.Errorf("write row %d: %w", i+2, err)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("serialize workbook: %w", err)
	}
	return buf.Bytes(), nil
}

func formatTimestamp(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(time.RFC3339)
}
