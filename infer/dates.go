package infer

import (
	"regexp"
	"time"
)

// Date classification accepts the ISO calendar form (with an optional time
// component) and the loose year-first forms produced by spreadsheet exports.
// A pattern match alone is not enough; the string must also parse to a real
// calendar date, so "2024-13-45" stays a string.

var (
	isoDatePattern     = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
	isoDateTimePattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}T\d{2}:\d{2}:\d{2}`)
	commonDatePattern  = regexp.MustCompile(`^\d{4}[-/]\d{1,2}[-/]\d{1,2}$`)
)

// dateLayouts are tried in order. Single-digit layout verbs also accept
// zero-padded components, so "2006-1-2" covers "2024-01-01".
var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-1-2",
	"2006/1/2",
}

// isDateString reports whether s matches a recognized date pattern and
// parses to a valid date.
func isDateString(s string) bool {
	if !isoDatePattern.MatchString(s) && !isoDateTimePattern.MatchString(s) && !commonDatePattern.MatchString(s) {
		return false
	}
	for _, layout := range dateLayouts {
		if _, err := time.Parse(layout, s); err == nil {
			return true
		}
	}
	return false
}
