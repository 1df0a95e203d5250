// Package utils holds small helpers shared across packages
package utils

import (
	"strings"
	"unicode"
)

// MaxLogStringLength caps how much of a wire frame or other untrusted
// string makes it into a log line
const MaxLogStringLength = 200

// SanitizeLogString makes an untrusted string safe to log. Raw platform
// frames and scraped page content can carry control characters, format
// specifiers, and arbitrary length: long input is truncated, control
// characters become spaces, and percent signs are doubled so the result
// survives a trip through a format string.
func SanitizeLogString(input string) string {
	if input == "" {
		return ""
	}

	if len(input) > MaxLogStringLength {
		input = input[:MaxLogStringLength] + "... (truncated)"
	}

	// Collapse CRLF first so it maps to one space, not two
	input = strings.ReplaceAll(input, "\r\n", "\n")

	sanitized := strings.Map(func(r rune) rune {
		if unicode.IsControl(r) {
			return ' '
		}
		return r
	}, input)

	return strings.ReplaceAll(sanitized, "%", "%%")
}
