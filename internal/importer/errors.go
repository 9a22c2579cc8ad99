package importer

import (
	"errors"
	"fmt"
)

// ErrParse matches every *ParseError via errors.Is.
var ErrParse = errors.New("parse failed")

// ErrInvalidEncoding is returned for input that is not valid UTF-8. It is
// not a ParseError: no stage ever saw the text.
var ErrInvalidEncoding = errors.New("input is not valid UTF-8")

// Kind identifies which stage failed and how.
type Kind string

const (
	KindNoJSONSection       Kind = "no_json_section"
	KindDecodeFailed        Kind = "decode_failed"
	KindHumanReadableFailed Kind = "human_readable_failed"
	KindInvalidFormat       Kind = "invalid_format"
)

// DecodeFailure refines KindDecodeFailed.
type DecodeFailure string

const (
	DecodeMissingKey    DecodeFailure = "missing_key"
	DecodeTypeMismatch  DecodeFailure = "type_mismatch"
	DecodeCorruptedData DecodeFailure = "corrupted_data"
)

// ParseError is the typed failure every parser stage returns.
type ParseError struct {
	Kind   Kind
	Decode DecodeFailure
	Detail string
	// Key names the missing element for missing-key and invalid-format errors.
	Key string
	// Path is the field path of a type mismatch, e.g. "Days.exercises.name".
	Path string
	// Detected is true when the stage recognized its input shape but could
	// not complete it. Import reports the first detected failure.
	Detected bool
	Err      error
}

func (e *ParseError) Error() string {
	switch e.Kind {
	case KindNoJSONSection:
		return "no JSON section found"
	case KindDecodeFailed:
		switch e.Decode {
		case DecodeMissingKey:
			return fmt.Sprintf("decode failed: missing key %q", e.Key)
		case DecodeTypeMismatch:
			if e.Path == "" {
				return "decode failed: type mismatch: " + e.Detail
			}
			return fmt.Sprintf("decode failed: type mismatch at %q: %s", e.Path, e.Detail)
		default:
			return "decode failed: corrupted data: " + e.Detail
		}
	case KindHumanReadableFailed:
		return "human-readable block: " + e.Detail
	case KindInvalidFormat:
		return "invalid format: " + e.Detail
	}
	return "parse failed: " + e.Detail
}

func (e *ParseError) Unwrap() error { return e.Err }

func (e *ParseError) Is(target error) bool { return target == ErrParse }

// AsParseError unwraps err to a *ParseError.
func AsParseError(err error) (*ParseError, bool) {
	var pe *ParseError
	if errors.As(err, &pe) {
		return pe, true
	}
	return nil, false
}
