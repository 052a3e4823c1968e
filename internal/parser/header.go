package parser

import (
	"fmt"
	"strconv"
	"strings"
)

// HeaderMode controls what happens to the first record of a source
type HeaderMode string

const (
	// HeaderNone treats the first record as data
	HeaderNone HeaderMode = "none"
	// HeaderSkip always discards the first record
	HeaderSkip HeaderMode = "skip"
	// HeaderAuto discards the first record only if it looks like column names
	HeaderAuto HeaderMode = "auto"
)

// ParseHeaderMode validates a --header flag value
func ParseHeaderMode(s string) (HeaderMode, error) {
	switch m := HeaderMode(strings.ToLower(s)); m {
	case HeaderNone, HeaderSkip, HeaderAuto:
		return m, nil
	default:
		return "", fmt.Errorf("invalid header mode %q: must be none, skip or auto", s)
	}
}

// IsHeaderRow checks if the given record appears to be a header row.
// Every integer position must fail to parse and most of them must look like names.
func IsHeaderRow(record []string) bool {
	if len(record) < 2 {
		return false
	}

	headerLikeCount := 0
	for _, field := range record[1:] {
		if _, err := strconv.ParseInt(strings.TrimSpace(field), 10, 64); err == nil {
			return false
		}
		if looksLikeHeader(field) {
			headerLikeCount++
		}
	}

	return float64(headerLikeCount)/float64(len(record)-1) > 0.5
}

// looksLikeHeader determines if a field looks like a column header
func looksLikeHeader(field string) bool {
	field = strings.TrimSpace(field)
	if field == "" || len(field) > 50 {
		return false
	}

	if _, err := strconv.ParseFloat(field, 64); err == nil {
		return false
	}

	return containsLetters(field)
}

// containsLetters checks if a string contains alphabetic characters
func containsLetters(s string) bool {
	for _, r := range s {
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') {
			return true
		}
	}
	return false
}
