package repository

import (
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func writeAddressFixture(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "addresses.xlsx")

	f := excelize.NewFile()
	defer f.Close()

	rows := [][]interface{}{
		{"Τ.Κ.", "ΟΔΟΣ", "ΠΟΛΗ"},
		{"12345", "Ακροπόλεως", "Αθήνα"},
		{"12345", "Ερμού", "Αθήνα"},
		{"12345", "Ακροπόλεως", "Αθήνα"}, // duplicate street
		{"18531", "Καραΐσκου", "Πειραιάς"},
		{"", "Ανώνυμη", "Πουθενά"}, // no postal code, ignored
	}
	sheet := f.GetSheetName(0)
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow(sheet, cell, &row))
	}
	require.NoError(t, f.SaveAs(path))
	return path
}

func TestAddressRepository_Lookups(t *testing.T) {
	repo, err := NewAddressRepository(writeAddressFixture(t), zerolog.Nop())
	require.NoError(t, err)

	assert.Equal(t, []string{"12345", "18531"}, repo.PostalCodes())
	assert.Equal(t, []string{"Ακροπόλεως", "Ερμού"}, repo.StreetsFor("12345"))

	city, ok := repo.CityFor("18531")
	assert.True(t, ok)
	assert.Equal(t, "Πειραιάς", city)
}

func TestAddressRepository_UnknownPostalCode(t *testing.T) {
	repo, err := NewAddressRepository(writeAddressFixture(t), zerolog.Nop())
	require.NoError(t, err)

	assert.Empty(t, repo.StreetsFor("99999"))
	_, ok := repo.CityFor("99999")
	assert.False(t, ok)
}

func TestAddressRepository_MissingWorkbook(t *testing.T) {
	repo, err := NewAddressRepository(filepath.Join(t.TempDir(), "addresses.xlsx"), zerolog.Nop())
	require.NoError(t, err)

	assert.Empty(t, repo.PostalCodes())
	assert.Empty(t, repo.StreetsFor("12345"))
}
