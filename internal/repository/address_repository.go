package repository

import (
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/egrafes/egrafes-backend/internal/model"
	"github.com/rs/zerolog"
	"github.com/xuri/excelize/v2"
)

// Expected header labels in the shared address workbook.
const (
	addressColPostal = "Τ.Κ."
	addressColStreet = "ΟΔΟΣ"
	addressColCity   = "ΠΟΛΗ"
)

// AddressRepository holds the flat (postal code, street, city) lookup table
// used for address autocompletion. The table comes from a shared workbook
// owned by an external process; it is loaded once at startup and never
// mutated or invalidated here.
type AddressRepository struct {
	rows []model.AddressRow
}

// NewAddressRepository loads the address workbook at path. A missing file
// is not an error: lookups simply return nothing.
func NewAddressRepository(path string, log zerolog.Logger) (*AddressRepository, error) {
	repo := &AddressRepository{}

	f, err := excelize.OpenFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			log.Warn().Str("path", path).Msg("Address workbook missing, autocompletion disabled")
			return repo, nil
		}
		return nil, fmt.Errorf("open address workbook: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return repo, nil
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("read address sheet: %w", err)
	}
	if len(rows) == 0 {
		return repo, nil
	}

	// Resolve column positions from the header row, falling back to the
	// conventional Τ.Κ./ΟΔΟΣ/ΠΟΛΗ order when headers are absent.
	postalIdx, streetIdx, cityIdx := 0, 1, 2
	for i, h := range rows[0] {
		switch strings.TrimSpace(h) {
		case addressColPostal:
			postalIdx = i
		case addressColStreet:
			streetIdx = i
		case addressColCity:
			cityIdx = i
		}
	}

	for _, row := range rows[1:] {
		entry := model.AddressRow{
			PostalCode: cellAt(row, postalIdx),
			Street:     cellAt(row, streetIdx),
			City:       cellAt(row, cityIdx),
		}
		if entry.PostalCode == "" {
			continue
		}
		repo.rows = append(repo.rows, entry)
	}

	log.Info().Str("path", path).Int("rows", len(repo.rows)).Msg("Address lookup table loaded")
	return repo, nil
}

// PostalCodes returns all distinct postal codes, sorted.
func (r *AddressRepository) PostalCodes() []string {
	seen := map[string]struct{}{}
	codes := []string{}
	for _, row := range r.rows {
		if _, ok := seen[row.PostalCode]; ok {
			continue
		}
		seen[row.PostalCode] = struct{}{}
		codes = append(codes, row.PostalCode)
	}
	sort.Strings(codes)
	return codes
}

// StreetsFor returns the distinct streets associated with a postal code,
// sorted.
func (r *AddressRepository) StreetsFor(postalCode string) []string {
	seen := map[string]struct{}{}
	streets := []string{}
	for _, row := range r.rows {
		if row.PostalCode != postalCode || row.Street == "" {
			continue
		}
		if _, ok := seen[row.Street]; ok {
			continue
		}
		seen[row.Street] = struct{}{}
		streets = append(streets, row.Street)
	}
	sort.Strings(streets)
	return streets
}

// CityFor returns the first city associated with a postal code.
func (r *AddressRepository) CityFor(postalCode string) (string, bool) {
	for _, row := range r.rows {
		if row.PostalCode == postalCode && row.City != "" {
			return row.City, true
		}
	}
	return "", false
}

func cellAt(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}
