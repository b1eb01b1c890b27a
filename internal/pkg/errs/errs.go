// Package errs wraps cockroachdb/errors so infrastructure failures keep a stack
// trace, and defines the categories every rule error belongs to.
package errs

import (
	"fmt"
	"strings"

	cr "github.com/cockroachdb/errors"
)

func Wrap(err error, msg string) error {
	if err == nil {
		return nil
	}
	return cr.Wrap(err, msg)
}

func New(msg string) error {
	return cr.New(msg)
}

// Mark makes errors.Is(err, marker) true without changing err's message.
func Mark(err error, marker error) error {
	if err == nil {
		return marker
	}
	return cr.Mark(err, marker)
}

// StackLines renders err with its recorded stack, truncated to maxLines.
func StackLines(err error, maxLines int) []string {
	if err == nil {
		return nil
	}
	lines := strings.Split(fmt.Sprintf("%+v", err), "\n")
	if maxLines > 0 && len(lines) > maxLines {
		lines = lines[:maxLines]
	}
	return lines
}
