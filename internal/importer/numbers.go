package importer

import (
	"regexp"
	"strconv"
	"strings"
)

var (
	intPattern   = regexp.MustCompile(`\d+`)
	floatPattern = regexp.MustCompile(`\d+(?:\.\d+)?|\.\d+`)
)

// firstInt extracts the first run of digits, so ranges like "45-60" yield
// 45 rather than 4560.
func firstInt(s string) (int, bool) {
	m := intPattern.FindString(s)
	if m == "" {
		return 0, false
	}
	n, err := strconv.Atoi(m)
	if err != nil {
		return 0, false
	}
	return n, true
}

func firstFloat(s string) (float64, bool) {
	m := floatPattern.FindString(s)
	if m == "" {
		return 0, false
	}
	f, err := strconv.ParseFloat(m, 64)
	if err != nil {
		return 0, false
	}
	return f, true
}

func firstIntPtr(s string) *int {
	if n, ok := firstInt(s); ok {
		return &n
	}
	return nil
}

func firstFloatPtr(s string) *float64 {
	if f, ok := firstFloat(s); ok {
		return &f
	}
	return nil
}

// fraction normalizes a percentage to 0–1: 75 and 0.75 both give 0.75.
func fraction(v float64) float64 {
	if v > 1 {
		return v / 100
	}
	return v
}

// restSeconds reads a rest value in seconds, honoring a minute suffix.
func restSeconds(s string) *int {
	n, ok := firstInt(s)
	if !ok {
		return nil
	}
	lower := strings.ToLower(s)
	if strings.Contains(lower, "min") || strings.HasSuffix(strings.TrimSpace(lower), "m") {
		n *= 60
	}
	return &n
}
