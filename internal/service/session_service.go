package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/egrafes/egrafes-backend/internal/config"
	"github.com/egrafes/egrafes-backend/internal/model"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

// SessionContext is the per-login mutable state: which record (if any) the
// form is currently editing, plus the prefill buffer the UI populates the
// form from. Created at login, destroyed at logout; the edit target and
// prefill are cleared after a successful save or an explicit cancel.
type SessionContext struct {
	EditRecordID string        `json:"edit_record_id,omitempty"`
	Prefill      *model.Record `json:"prefill,omitempty"`
}

// SessionService stores session contexts in Redis, keyed by username and
// expiring together with the JWT.
type SessionService struct {
	cfg *config.Config
	rdb *redis.Client
	log zerolog.Logger
}

// NewSessionService creates a new SessionService.
func NewSessionService(cfg *config.Config, rdb *redis.Client, log zerolog.Logger) *SessionService {
	return &SessionService{
		cfg: cfg,
		rdb: rdb,
		log: log.With().Str("component", "session_service").Logger(),
	}
}

// Create initializes an empty session context for a user at login.
func (s *SessionService) Create(ctx context.Context, username string) error {
	return s.put(ctx, username, &SessionContext{})
}

// Destroy removes a user's session context at logout.
func (s *SessionService) Destroy(ctx context.Context, username string) error {
	key := config.SessionKey.UserSessionKey(username)
	return s.rdb.Del(ctx, key).Err()
}

// SetEditTarget marks rec as the record the next save should update, and
// stores it as the prefill buffer.
func (s *SessionService) SetEditTarget(ctx context.Context, username string, rec model.Record) error {
	return s.put(ctx, username, &SessionContext{
		EditRecordID: rec.ID,
		Prefill:      &rec,
	})
}

// ClearEditTarget resets the session to create-new semantics.
func (s *SessionService) ClearEditTarget(ctx context.Context, username string) error {
	return s.put(ctx, username, &SessionContext{})
}

// Get returns the current session context. A missing session (expired, or
// Redis flushed) is treated as an empty context rather than an error, so a
// still-valid token simply falls back to create-new semantics.
func (s *SessionService) Get(ctx context.Context, username string) (*SessionContext, error) {
	key := config.SessionKey.UserSessionKey(username)
	raw, err := s.rdb.Get(ctx, key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return &SessionContext{}, nil
		}
		return nil, fmt.Errorf("get session: %w", err)
	}

	sess := &SessionContext{}
	if err := json.Unmarshal([]byte(raw), sess); err != nil {
		s.log.Warn().Str("username", username).Err(err).Msg("Dropping unreadable session context")
		return &SessionContext{}, nil
	}
	return sess, nil
}

func (s *SessionService) put(ctx context.Context, username string, sess *SessionContext) error {
	raw, err := json.Marshal(sess)
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}
	key := config.SessionKey.UserSessionKey(username)
	if err := s.rdb.Set(ctx, key, raw, s.cfg.JWTExpiry).Err(); err != nil {
		return fmt.Errorf("store session: %w", err)
	}
	return nil
}
