package queries

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

const (
	MaxListLimit     = 200
	DefaultListLimit = 20

	cursorVersion = 1
)

// Cursor is the opaque continuation token handed back by keyset listings.
type Cursor struct {
	After string `json:"after,omitempty"`
}

// afterKey is the last (created_at, id) pair of a page. CreatedAt travels in
// microseconds, which is PostgreSQL's timestamptz precision.
type afterKey struct {
	Version   int       `json:"v"`
	CreatedAt int64     `json:"t"`
	ID        uuid.UUID `json:"id"`
}

func EncodeAfterCursor(createdAt time.Time, id uuid.UUID) string {
	raw, _ := json.Marshal(afterKey{Version: cursorVersion, CreatedAt: createdAt.UnixMicro(), ID: id})
	return base64.RawURLEncoding.EncodeToString(raw)
}

func DecodeAfterCursor(token string) (time.Time, uuid.UUID, error) {
	if token == "" {
		return time.Time{}, uuid.Nil, errors.New("empty cursor")
	}
	raw, err := base64.RawURLEncoding.DecodeString(token)
	if err != nil {
		return time.Time{}, uuid.Nil, fmt.Errorf("cursor is not base64url: %w", err)
	}
	var key afterKey
	if err := json.Unmarshal(raw, &key); err != nil {
		return time.Time{}, uuid.Nil, fmt.Errorf("malformed cursor: %w", err)
	}
	if key.Version != cursorVersion {
		return time.Time{}, uuid.Nil, fmt.Errorf("cursor version %d is not supported", key.Version)
	}
	if key.ID == uuid.Nil {
		return time.Time{}, uuid.Nil, errors.New("cursor has no reservation id")
	}
	return time.UnixMicro(key.CreatedAt).UTC(), key.ID, nil
}

// ValidateLimit clamps a requested page size into [1, MaxListLimit].
func ValidateLimit(limit int) int {
	switch {
	case limit <= 0:
		return DefaultListLimit
	case limit > MaxListLimit:
		return MaxListLimit
	default:
		return limit
	}
}
