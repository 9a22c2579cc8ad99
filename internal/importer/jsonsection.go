package importer

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

const jsonMarker = "JSON:"

// ExtractJSONSection finds the first line starting with "JSON:" and decodes
// the object that follows it.
func ExtractJSONSection(text string) (*AuthoringBlock, error) {
	text = stripCodeFences(text)

	markerAt := -1
	offset := 0
	for _, line := range strings.SplitAfter(text, "\n") {
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, jsonMarker) {
			markerAt = offset + strings.Index(line, jsonMarker) + len(jsonMarker)
			break
		}
		offset += len(line)
	}
	if markerAt < 0 {
		return nil, &ParseError{Kind: KindNoJSONSection, Detail: "no line starts with " + jsonMarker}
	}

	object := extractJSONBlock(text[markerAt:])
	if object == "" {
		return nil, &ParseError{
			Kind:     KindDecodeFailed,
			Decode:   DecodeCorruptedData,
			Detail:   "no balanced JSON object after " + jsonMarker,
			Detected: true,
		}
	}
	return decodeAuthoring([]byte(stripJSONComments(object)), true)
}

// ParseAuthoringJSON decodes data directly as an AuthoringBlock.
func ParseAuthoringJSON(data []byte) (*AuthoringBlock, error) {
	data = bytes.TrimSpace(bytes.TrimPrefix(data, []byte("\xef\xbb\xbf")))
	detected := len(data) > 0 && data[0] == '{'
	return decodeAuthoring(data, detected)
}

func decodeAuthoring(data []byte, detected bool) (*AuthoringBlock, error) {
	var block AuthoringBlock
	if err := json.Unmarshal(data, &block); err != nil {
		return nil, classifyDecodeError(err, detected)
	}
	if strings.TrimSpace(block.Title) == "" {
		return nil, &ParseError{Kind: KindDecodeFailed, Decode: DecodeMissingKey, Key: "Title", Detected: detected}
	}
	if _, ok := block.Content(); !ok {
		return nil, &ParseError{
			Kind:     KindDecodeFailed,
			Decode:   DecodeMissingKey,
			Key:      "Exercises",
			Detail:   "one of Weeks, Days or Exercises is required",
			Detected: detected,
		}
	}
	return &block, nil
}

func classifyDecodeError(err error, detected bool) *ParseError {
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) {
		return &ParseError{
			Kind:     KindDecodeFailed,
			Decode:   DecodeTypeMismatch,
			Path:     typeErr.Field,
			Detail:   fmt.Sprintf("expected %s, got %s", typeErr.Type, typeErr.Value),
			Detected: detected,
			Err:      err,
		}
	}
	var syntaxErr *json.SyntaxError
	if errors.As(err, &syntaxErr) {
		return &ParseError{
			Kind:     KindDecodeFailed,
			Decode:   DecodeCorruptedData,
			Detail:   fmt.Sprintf("%v (offset %d)", syntaxErr, syntaxErr.Offset),
			Detected: detected,
			Err:      err,
		}
	}
	return &ParseError{Kind: KindDecodeFailed, Decode: DecodeCorruptedData, Detail: err.Error(), Detected: detected, Err: err}
}

// stripCodeFences removes markdown fence lines (```json, ```).
func stripCodeFences(s string) string {
	if !strings.Contains(s, "```") {
		return s
	}
	lines := strings.Split(s, "\n")
	kept := lines[:0]
	for _, line := range lines {
		if strings.HasPrefix(strings.TrimSpace(line), "```") {
			continue
		}
		kept = append(kept, line)
	}
	return strings.Join(kept, "\n")
}

// extractJSONBlock returns the first balanced { ... } in s. Braces inside
// string literals are ignored.
func extractJSONBlock(s string) string {
	start := strings.IndexByte(s, '{')
	if start == -1 {
		return ""
	}

	depth := 0
	inString := false
	escaped := false

	for i := start; i < len(s); i++ {
		c := s[i]

		if escaped {
			escaped = false
			continue
		}
		if c == '\\' && inString {
			escaped = true
			continue
		}
		if c == '"' {
			inString = !inString
			continue
		}
		if inString {
			continue
		}

		switch c {
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return s[start : i+1]
			}
		}
	}
	return ""
}

// stripJSONComments drops // and /* */ comments outside string values.
func stripJSONComments(s string) string {
	if !strings.Contains(s, "/") {
		return s
	}
	var b strings.Builder
	b.Grow(len(s))

	inString := false
	escaped := false

	for i := 0; i < len(s); i++ {
		c := s[i]

		if escaped {
			b.WriteByte(c)
			escaped = false
			continue
		}
		if c == '\\' && inString {
			b.WriteByte(c)
			escaped = true
			continue
		}
		if c == '"' {
			b.WriteByte(c)
			inString = !inString
			continue
		}
		if inString {
			b.WriteByte(c)
			continue
		}

		if c == '/' && i+1 < len(s) && s[i+1] == '/' {
			for i+1 < len(s) && s[i+1] != '\n' {
				i++
			}
			continue
		}
		if c == '/' && i+1 < len(s) && s[i+1] == '*' {
			i += 2
			for i+1 < len(s) && !(s[i] == '*' && s[i+1] == '/') {
				i++
			}
			i++
			continue
		}

		b.WriteByte(c)
	}
	return b.String()
}
