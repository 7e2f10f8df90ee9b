package service

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/egrafes/egrafes-backend/internal/model"
	"github.com/egrafes/egrafes-backend/internal/repository"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// ErrRecordNotFound is returned when a record id does not exist in the
// school's record set.
var ErrRecordNotFound = errors.New("record not found")

// Reconcile merges a submitted field set into the existing record set.
//
// With an empty editID a new record is appended: fresh identifier, creation
// timestamp set, last-modified unset. With a matching editID the record is
// overwritten in place: identifier and creation timestamp preserved, all
// mutable fields replaced, last-modified refreshed. An editID that no longer
// matches any record (deleted between load and save) falls back to creating
// a new record and reports stale=true so the caller can surface a warning.
//
// Reconcile never persists; it returns the updated set for the repository
// to write.
func Reconcile(records []model.Record, fields model.RecordFields, school, schoolCode, editID string, now time.Time) ([]model.Record, model.Record, bool) {
	stale := false

	if editID != "" {
		for i := range records {
			if records[i].ID != editID {
				continue
			}
			rec := records[i]
			applyFields(&rec, fields, school, schoolCode)
			mod := now
			rec.LastModified = &mod
			records[i] = rec
			return records, rec, false
		}
		stale = true
	}

	rec := model.Record{
		ID:        uuid.NewString(),
		CreatedAt: now,
	}
	applyFields(&rec, fields, school, schoolCode)
	records = append(records, rec)
	return records, rec, stale
}

func applyFields(rec *model.Record, fields model.RecordFields, school, schoolCode string) {
	rec.RegistryNumber = fields.RegistryNumber
	rec.LastName = fields.LastName
	rec.FirstName = fields.FirstName
	rec.FatherName = fields.FatherName
	rec.SiblingSchool = fields.SiblingSchool
	rec.Notes = fields.Notes
	rec.Street = fields.Street
	rec.StreetNumber = fields.StreetNumber
	rec.PostalCode = fields.PostalCode
	rec.City = fields.City
	rec.School = school
	rec.SchoolCode = schoolCode
}

// RecordService orchestrates the form-to-store path: load the school's
// record set, reconcile the submission against it, persist atomically.
// Every operation is one-shot and synchronous.
type RecordService struct {
	recordRepo *repository.RecordRepository
	sessions   *SessionService
	dataDir    string
	log        zerolog.Logger
}

// NewRecordService creates a new RecordService.
func NewRecordService(recordRepo *repository.RecordRepository, sessions *SessionService, dataDir string, log zerolog.Logger) *RecordService {
	return &RecordService{
		recordRepo: recordRepo,
		sessions:   sessions,
		dataDir:    dataDir,
		log:        log.With().Str("component", "record_service").Logger(),
	}
}

// List returns the user's full record set in file order.
func (s *RecordService) List(ctx context.Context, claims *Claims) ([]model.Record, error) {
	return s.recordRepo.Load(s.recordPath(claims))
}

// Save runs one submission through reconciliation and persists the result.
// The session's edit target decides create-vs-update and is cleared after a
// successful persist. The returned bool reports a stale edit target: the
// targeted record vanished and a new one was created instead.
func (s *RecordService) Save(ctx context.Context, claims *Claims, fields model.RecordFields) (model.Record, bool, error) {
	path := s.recordPath(claims)

	records, err := s.recordRepo.Load(path)
	if err != nil {
		return model.Record{}, false, fmt.Errorf("load records: %w", err)
	}

	sess, err := s.sessions.Get(ctx, claims.Username)
	if err != nil {
		return model.Record{}, false, err
	}

	updated, saved, stale := Reconcile(records, fields, claims.SchoolName, claims.SchoolCode, sess.EditRecordID, time.Now())

	if err := s.recordRepo.Save(path, updated); err != nil {
		return model.Record{}, false, err
	}

	if stale {
		s.log.Warn().
			Str("username", claims.Username).
			Str("edit_id", sess.EditRecordID).
			Str("new_id", saved.ID).
			Msg("Edit target vanished, created new record instead")
	}

	if sess.EditRecordID != "" {
		// The write already succeeded; a failed session reset only means the
		// next save re-targets a record that still exists, so log and move on.
		if err := s.sessions.ClearEditTarget(ctx, claims.Username); err != nil {
			s.log.Warn().Str("username", claims.Username).Err(err).Msg("Failed to clear edit target")
		}
	}

	return saved, stale, nil
}

// Delete removes the record with the given id, preserving the order of the
// remaining records.
func (s *RecordService) Delete(ctx context.Context, claims *Claims, id string) error {
	path := s.recordPath(claims)

	records, err := s.recordRepo.Load(path)
	if err != nil {
		return fmt.Errorf("load records: %w", err)
	}

	remaining := make([]model.Record, 0, len(records))
	found := false
	for _, rec := range records {
		if rec.ID == id {
			found = true
			continue
		}
		remaining = append(remaining, rec)
	}
	if !found {
		return ErrRecordNotFound
	}

	return s.recordRepo.Save(path, remaining)
}

// BeginEdit marks a record as the session's edit target and returns it so
// the UI can prefill the form.
func (s *RecordService) BeginEdit(ctx context.Context, claims *Claims, id string) (model.Record, error) {
	records, err := s.recordRepo.Load(s.recordPath(claims))
	if err != nil {
		return model.Record{}, fmt.Errorf("load records: %w", err)
	}

	for _, rec := range records {
		if rec.ID == id {
			if err := s.sessions.SetEditTarget(ctx, claims.Username, rec); err != nil {
				return model.Record{}, err
			}
			return rec, nil
		}
	}
	return model.Record{}, ErrRecordNotFound
}

// CancelEdit clears the session's edit target and prefill buffer.
func (s *RecordService) CancelEdit(ctx context.Context, claims *Claims) error {
	return s.sessions.ClearEditTarget(ctx, claims.Username)
}

func (s *RecordService) recordPath(claims *Claims) string {
	return filepath.Join(s.dataDir, filepath.Base(claims.DataFile))
}
