package config

import (
	"fmt"
)

type SessionKeyStruct struct{}

func NewSessionKeyStruct() *SessionKeyStruct {
	return &SessionKeyStruct{}
}

// UserSessionKey returns the Redis key for a staff user's session context.
func (r *SessionKeyStruct) UserSessionKey(username string) string {
	return fmt.Sprintf("session:%s", username)
}

// SessionKey is the shared session key builder.
var SessionKey = NewSessionKeyStruct()
