package compactor

import (
	"errors"
	"fmt"
)

var (
	// ErrDictionaryExhausted is returned when a run interns more distinct
	// values than the declared code width can address.
	ErrDictionaryExhausted = errors.New("dictionary code space exhausted")

	// ErrUnknownCode is returned when a cell references a code the
	// dictionary does not hold.
	ErrUnknownCode = errors.New("unknown dictionary code")

	// ErrMalformedArtifact is returned when an artifact violates its own
	// structural invariants.
	ErrMalformedArtifact = errors.New("malformed artifact")

	// ErrInvalidOptions is returned by New for unusable options.
	ErrInvalidOptions = errors.New("invalid compactor options")
)

// ExhaustionError reports which dictionary ran out of codes.
type ExhaustionError struct {
	Dictionary string
	Width      CodeWidth
	Value      string
}

func (e *ExhaustionError) Error() string {
	if e == nil {
		return ""
	}
	value := e.Value
	if short := truncateRunes(value, 64); short != value {
		value = short + "..."
	}
	return fmt.Sprintf("%s: %s dictionary holds %d codes at %d-bit width, cannot intern %q",
		ErrDictionaryExhausted.Error(), e.Dictionary, e.Width.Capacity(), e.Width, value)
}

func (e *ExhaustionError) Unwrap() error { return ErrDictionaryExhausted }

func malformedf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrMalformedArtifact, fmt.Sprintf(format, args...))
}
