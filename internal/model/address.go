package model

// AddressRow is one row of the external postal-code lookup table
// (postal code → street → city). The table is read-only to this service.
type AddressRow struct {
	PostalCode string
	Street     string
	City       string
}
