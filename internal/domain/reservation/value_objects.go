package reservation

import (
	"encoding/json"
	"strings"
	"unicode/utf8"
)

type Notes struct {
	value string
}

func NewNotes(value string) (Notes, error) {
	value = strings.TrimSpace(value)
	if utf8.RuneCountInString(value) > MaxNotesLength {
		return Notes{}, ErrNotesTooLong
	}
	return Notes{value: value}, nil
}

func (n Notes) String() string {
	return n.value
}

func (n Notes) IsEmpty() bool {
	return n.value == ""
}

// Snapshots carry denormalized display data owned by other services.
// They are stored and returned verbatim and never interpreted here.
type Snapshots struct {
	Court   json.RawMessage
	Company json.RawMessage
	Subject json.RawMessage
}

func normalizeReason(reason string) (string, error) {
	reason = strings.TrimSpace(reason)
	if utf8.RuneCountInString(reason) > MaxReasonLength {
		return "", ErrReasonTooLong
	}
	return reason, nil
}
