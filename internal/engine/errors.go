package engine

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrUnreadable marks a file that vanished or became inaccessible
	// mid-run. Callers exclude the record and continue.
	ErrUnreadable = errors.New("unreadable file")
	// ErrInvariant marks a violated internal invariant, such as a
	// comparator reporting two distinct files as equal. Never absorbed.
	ErrInvariant = errors.New("invariant violation")
	// ErrConfiguration marks unusable configuration or options.
	ErrConfiguration = errors.New("configuration error")
	// ErrLocked marks a library root already being processed by another run.
	ErrLocked = errors.New("library locked")
)

// Wrap builds an error message that includes component context while tagging
// it with the provided marker for later classification. The marker should be
// one of the exported sentinel errors above.
func Wrap(marker error, component, operation, message string, err error) error {
	detail := buildDetail(component, operation, message)
	if marker == nil {
		marker = ErrConfiguration
	}
	if err != nil {
		return fmt.Errorf("%w: %s: %w", marker, detail, err)
	}
	return fmt.Errorf("%w: %s", marker, detail)
}

func buildDetail(component, operation, message string) string {
	parts := make([]string, 0, 3)
	if component = strings.TrimSpace(component); component != "" {
		parts = append(parts, component)
	}
	if operation = strings.TrimSpace(operation); operation != "" {
		parts = append(parts, operation)
	}
	if message = strings.TrimSpace(message); message != "" {
		parts = append(parts, message)
	}
	if len(parts) == 0 {
		return "engine failure"
	}
	return strings.Join(parts, ": ")
}
