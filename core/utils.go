package core

import "strings"

// OrDefault returns value if it is not the zero value, otherwise def.
func OrDefault[T comparable](value, def T) T {
	var zero T
	if value == zero {
		return def
	}
	return value
}

// OrDefaultPtr dereferences value if it is non-nil, otherwise returns def.
func OrDefaultPtr[T any](value *T, def T) T {
	if value == nil {
		return def
	}
	return *value
}

// IsBlank reports whether the string is empty or whitespace only.
func IsBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}

// FirstChars returns the first n runes of s, or s itself when shorter.
// Useful for truncating payloads in log output.
func FirstChars(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
