package model

import (
	"strings"
	"time"
)

// Record is one student registration entry. Records are persisted as one
// JSON object per line in the owning school's data file.
type Record struct {
	ID             string     `json:"id"`
	RegistryNumber string     `json:"registry_number"`
	LastName       string     `json:"last_name"`
	FirstName      string     `json:"first_name"`
	FatherName     string     `json:"father_name"`
	SiblingSchool  string     `json:"sibling_school,omitempty"`
	Notes          string     `json:"notes,omitempty"`
	School         string     `json:"school"`
	SchoolCode     string     `json:"school_code"`
	Street         string     `json:"street"`
	StreetNumber   string     `json:"street_number"`
	PostalCode     string     `json:"postal_code"`
	City           string     `json:"city"`
	CreatedAt      time.Time  `json:"created_at,omitzero"`
	LastModified   *time.Time `json:"last_modified,omitempty"`
}

// RecordFields is the mutable field set of a Record, as entered on the
// registration form. Identifier and timestamps are assigned by the
// reconciler, school identity comes from the session's credential entry.
type RecordFields struct {
	RegistryNumber string
	LastName       string
	FirstName      string
	FatherName     string
	SiblingSchool  string
	Notes          string
	Street         string
	StreetNumber   string
	PostalCode     string
	City           string
}

// SaveRecordRequest is the payload for creating or updating a record.
// Whether it creates or updates is decided by the session's edit target,
// not by the payload itself.
type SaveRecordRequest struct {
	RegistryNumber string `json:"registry_number" binding:"required,notblank,max=20"`
	LastName       string `json:"last_name" binding:"required,notblank,max=100"`
	FirstName      string `json:"first_name" binding:"required,notblank,max=100"`
	FatherName     string `json:"father_name" binding:"required,notblank,max=100"`
	SiblingSchool  string `json:"sibling_school" binding:"omitempty,max=200"`
	Notes          string `json:"notes" binding:"omitempty,max=2000"`
	Street         string `json:"street" binding:"required,notblank,max=200"`
	StreetNumber   string `json:"street_number" binding:"required,notblank,max=20"`
	PostalCode     string `json:"postal_code" binding:"required,notblank,max=10"`
	City           string `json:"city" binding:"required,notblank,max=100"`
}

// Fields converts the request into a trimmed RecordFields.
func (r *SaveRecordRequest) Fields() RecordFields {
	return RecordFields{
		RegistryNumber: strings.TrimSpace(r.RegistryNumber),
		LastName:       strings.TrimSpace(r.LastName),
		FirstName:      strings.TrimSpace(r.FirstName),
		FatherName:     strings.TrimSpace(r.FatherName),
		SiblingSchool:  strings.TrimSpace(r.SiblingSchool),
		Notes:          strings.TrimSpace(r.Notes),
		Street:         strings.TrimSpace(r.Street),
		StreetNumber:   strings.TrimSpace(r.StreetNumber),
		PostalCode:     strings.TrimSpace(r.PostalCode),
		City:           strings.TrimSpace(r.City),
	}
}
