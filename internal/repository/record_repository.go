package repository

import (
	"bufio"
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/egrafes/egrafes-backend/internal/model"
	"github.com/rs/zerolog"
)

// RecordRepository persists a school's record set as newline-delimited JSON.
// Each school owns exactly one file; writes replace the whole file atomically
// so a crash or concurrent reader sees either the old or the new content,
// never a mix. There is no cross-session locking: two simultaneous editors
// of the same file race last-writer-wins on the full rewrite.
type RecordRepository struct {
	seedDir string
	log     zerolog.Logger
}

// NewRecordRepository creates a new RecordRepository. seedDir may be empty;
// when set, a missing data file is first populated from a same-named
// read-only seed file before first use.
func NewRecordRepository(seedDir string, log zerolog.Logger) *RecordRepository {
	return &RecordRepository{
		seedDir: seedDir,
		log:     log.With().Str("component", "record_repository").Logger(),
	}
}

// Load reads the record set from path. A missing file yields an empty set.
// Lines that fail to parse are skipped with a warning; corruption of one
// entry never loses the rest of the file.
func (r *RecordRepository) Load(path string) ([]model.Record, error) {
	if err := r.ensureSeed(path); err != nil {
		return nil, fmt.Errorf("seed copy: %w", err)
	}

	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return []model.Record{}, nil
		}
		return nil, fmt.Errorf("open records file: %w", err)
	}
	defer f.Close()

	records := []model.Record{}
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := bytes.TrimSpace(scanner.Bytes())
		if len(line) == 0 {
			continue
		}
		var rec model.Record
		if err := json.Unmarshal(line, &rec); err != nil {
			r.log.Warn().
				Str("path", path).
				Int("line", lineNo).
				Err(err).
				Msg("Skipping malformed record line")
			continue
		}
		records = append(records, rec)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read records file: %w", err)
	}

	return records, nil
}

// Save serializes the full record set, one JSON object per line, to a
// temporary file in the same directory and atomically renames it over path.
// On failure the previous file content is left untouched; a leftover temp
// file is harmless since the next save recreates it.
func (r *RecordRepository) Save(path string, records []model.Record) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create data dir: %w", err)
	}

	tmp := path + ".tmp"
	f, err := os.Create(tmp)
	if err != nil {
		return fmt.Errorf("create temp records file: %w", err)
	}

	enc := json.NewEncoder(f)
	enc.SetEscapeHTML(false)
	for _, rec := range records {
		if err := enc.Encode(rec); err != nil {
			f.Close()
			return fmt.Errorf("encode record %s: %w", rec.ID, err)
		}
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close temp records file: %w", err)
	}

	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("replace records file: %w", err)
	}

	return nil
}

// ensureSeed copies the bundled read-only seed file into the writable
// location once, if no writable copy exists yet.
func (r *RecordRepository) ensureSeed(path string) error {
	if r.seedDir == "" {
		return nil
	}
	if _, err := os.Stat(path); err == nil {
		return nil
	}

	seedPath := filepath.Join(r.seedDir, filepath.Base(path))
	src, err := os.Open(seedPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil // No seed for this school.
		}
		return fmt.Errorf("open seed file: %w", err)
	}
	defer src.Close()

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create data dir: %w", err)
	}

	dst, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create writable copy: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return fmt.Errorf("copy seed file: %w", err)
	}

	r.log.Info().
		Str("seed", seedPath).
		Str("path", path).
		Msg("Copied seed records into writable location")

	return nil
}
