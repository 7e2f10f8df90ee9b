package repository

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/egrafes/egrafes-backend/internal/model"
)

// ErrUserNotFound is returned when a username has no credential entry.
var ErrUserNotFound = errors.New("user not found")

// CredentialRepository reads the credential store: a JSON file mapping
// username → password digest, school identity and data-file name. The
// server treats this file as read-only; entries are written only by the
// create-user CLI.
type CredentialRepository struct {
	path string
}

// NewCredentialRepository creates a new CredentialRepository backed by path.
func NewCredentialRepository(path string) *CredentialRepository {
	return &CredentialRepository{path: path}
}

// GetByUsername looks up one credential entry. The file is re-read on every
// call so newly provisioned users are picked up without a restart.
func (r *CredentialRepository) GetByUsername(username string) (*model.CredentialEntry, error) {
	users, err := r.load()
	if err != nil {
		return nil, err
	}
	entry, ok := users[username]
	if !ok {
		return nil, ErrUserNotFound
	}
	entry.Username = username
	if entry.DataFile == "" {
		entry.DataFile = fmt.Sprintf("students_%s.json", username)
	}
	return &entry, nil
}

// Usernames returns all provisioned usernames, sorted. Used by the CLI.
func (r *CredentialRepository) Usernames() ([]string, error) {
	users, err := r.load()
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(users))
	for name := range users {
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}

// Upsert adds or replaces a credential entry and rewrites the store
// atomically. Only the create-user CLI calls this; the server never does.
func (r *CredentialRepository) Upsert(entry *model.CredentialEntry) error {
	users, err := r.load()
	if err != nil {
		return err
	}
	users[entry.Username] = *entry

	if dir := filepath.Dir(r.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create users dir: %w", err)
		}
	}

	data, err := json.MarshalIndent(users, "", "  ")
	if err != nil {
		return fmt.Errorf("encode users: %w", err)
	}

	tmp := r.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return fmt.Errorf("write temp users file: %w", err)
	}
	if err := os.Rename(tmp, r.path); err != nil {
		return fmt.Errorf("replace users file: %w", err)
	}
	return nil
}

func (r *CredentialRepository) load() (map[string]model.CredentialEntry, error) {
	data, err := os.ReadFile(r.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return map[string]model.CredentialEntry{}, nil
		}
		return nil, fmt.Errorf("read users file: %w", err)
	}

	users := map[string]model.CredentialEntry{}
	if err := json.Unmarshal(data, &users); err != nil {
		return nil, fmt.Errorf("parse users file: %w", err)
	}
	return users, nil
}
