package triage

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel markers for the fatal error classes. Anything the engine
// returns wraps one of these; per-file problems never surface here,
// they become Failed outcomes instead.
var (
	ErrConfiguration    = errors.New("configuration error")
	ErrSourceUnreadable = errors.New("source directory unreadable")
	ErrLockHeld         = errors.New("run lock held")
)

// Wrap builds an error message that includes run context while tagging it
// with the provided marker for later classification. The marker should be
// one of the exported sentinel errors above.
func Wrap(marker error, stage, operation, message string, err error) error {
	detail := buildDetail(stage, operation, message)
	if marker == nil {
		marker = ErrConfiguration
	}
	if err != nil {
		return fmt.Errorf("%w: %s: %w", marker, detail, err)
	}
	return fmt.Errorf("%w: %s", marker, detail)
}

func buildDetail(stage, operation, message string) string {
	parts := make([]string, 0, 3)
	if stage = strings.TrimSpace(stage); stage != "" {
		parts = append(parts, stage)
	}
	if operation = strings.TrimSpace(operation); operation != "" {
		parts = append(parts, operation)
	}
	if message = strings.TrimSpace(message); message != "" {
		parts = append(parts, message)
	}
	if len(parts) == 0 {
		return "run failure"
	}
	return strings.Join(parts, ": ")
}
