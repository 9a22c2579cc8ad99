package domain

// CoalesceStr returns the first non-empty string from vals.
func CoalesceStr(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}

// IntFromPtrWithDefault returns the first non-nil *int value, or the fallback.
func IntFromPtrWithDefault(fallback int, ptrs ...*int) int {
	for _, p := range ptrs {
		if p != nil {
			return *p
		}
	}
	return fallback
}

// Float64FromPtrWithDefault returns the first non-nil *float64 value, or the fallback.
func Float64FromPtrWithDefault(fallback float64, ptrs ...*float64) float64 {
	for _, p := range ptrs {
		if p != nil {
			return *p
		}
	}
	return fallback
}

// FirstInt returns the first non-nil *int, or nil.
func FirstInt(ptrs ...*int) *int {
	for _, p := range ptrs {
		if p != nil {
			return p
		}
	}
	return nil
}

// FirstFloat returns the first non-nil *float64, or nil.
func FirstFloat(ptrs ...*float64) *float64 {
	for _, p := range ptrs {
		if p != nil {
			return p
		}
	}
	return nil
}

// IntPtr returns a pointer to a copy of v.
func IntPtr(v int) *int { return &v }

// FloatPtr returns a pointer to a copy of v.
func FloatPtr(v float64) *float64 { return &v }

// CopyInt returns a fresh pointer holding the same value, so copies never alias.
func CopyInt(p *int) *int {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

// CopyFloat returns a fresh pointer holding the same value.
func CopyFloat(p *float64) *float64 {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

// StringsOrEmpty substitutes an empty slice for nil.
func StringsOrEmpty(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
