package decode

import (
	"strings"

	"github.com/brightwell/sas7bdat/format"
)

var dateTimePrefixes = []string{
	"B8601DT", "E8601DT", "IS8601DT", "B8601DZ", "E8601DZ", "IS8601DZ",
}

var timePrefixes8601 = []string{
	"B8601TM", "E8601TM", "IS8601TM", "B8601TN", "E8601TN", "IS8601TN", "E8601LZ",
}

// date8601Prefixes are the ISO 8601 date formats that InferType maps to
// Date.
var date8601Prefixes = []string{
	"B8601DA", "E8601DA", "IS8601DA", "B8601DN", "E8601DN", "IS8601DN",
}

// dateFromDateTimePrefixes are the formats whose Date decoding goes through
// the seconds-since-epoch path rather than whole-days.
var dateFromDateTimePrefixes = []string{"B8601DN", "E8601DN", "IS8601DN"}

var timeWordPrefixes = []string{
	"TIME", "HHMM", "MMSS", "HMS", "TIMEAMPM", "HOUR", "MINUTE", "SECOND",
}

var dateWordPrefixes = []string{
	"DATE", "DAY", "YYMMDD", "MMDDYY", "DDMMYY", "JULIAN", "JULDAY", "MONYY",
	"MMYY", "YYMM", "MONNAME", "MONTH", "WEEKDAT", "WORDDAT", "EURDF", "NLDAT",
	"YYQ", "YYMON", "YEAR", "WEEK", "QTR", "QUARTER", "DOWNAME",
}

// normalizeFormat upper-cases and trims a raw format string, then strips
// any trailing run of width/precision digits, dots, or commas (spec.md
// §4.5 step 3).
func normalizeFormat(raw string) string {
	s := strings.ToUpper(strings.TrimSpace(raw))

	end := len(s)
	for end > 0 && isWidthDecoration(s[end-1]) {
		end--
	}

	return s[:end]
}

func isWidthDecoration(b byte) bool {
	return (b >= '0' && b <= '9') || b == '.' || b == ','
}

func hasAnyPrefix(s string, prefixes []string) bool {
	for _, p := range prefixes {
		if strings.HasPrefix(s, p) {
			return true
		}
	}

	return false
}

// IsDateFromDateTimeFormat reports whether a column's normalized format
// selects the seconds-since-epoch Date decoding variant (spec.md §4.4).
func IsDateFromDateTimeFormat(raw string) bool {
	return hasAnyPrefix(normalizeFormat(raw), dateFromDateTimePrefixes)
}

// InferType derives a column's logical type from its storage kind, raw
// format string, and byte width, applying the ordered rules of spec.md
// §4.5.
func InferType(storage format.StorageKind, rawFormat string, length int) format.ColumnType {
	if storage == format.StorageString {
		return format.TypeString
	}
	if storage != format.StorageNumber {
		return format.TypeUnknown
	}

	f := normalizeFormat(rawFormat)

	if f == "" || length == 0 || length == 1 || length == 2 {
		return format.TypeNumber
	}

	if hasAnyPrefix(f, dateTimePrefixes) {
		return format.TypeDateTime
	}
	if hasAnyPrefix(f, timePrefixes8601) {
		return format.TypeTime
	}
	if hasAnyPrefix(f, date8601Prefixes) {
		return format.TypeDate
	}
	if strings.Contains(f, "DATETIME") {
		return format.TypeDateTime
	}
	if hasAnyPrefix(f, timeWordPrefixes) {
		return format.TypeTime
	}
	if hasAnyPrefix(f, dateWordPrefixes) {
		return format.TypeDate
	}

	if strings.HasPrefix(f, "DT") || strings.HasSuffix(f, "DT") || strings.HasSuffix(f, "DZ") {
		return format.TypeDateTime
	}
	if strings.HasSuffix(f, "TM") || strings.HasSuffix(f, "TN") {
		return format.TypeTime
	}
	if strings.HasSuffix(f, "DA") || strings.HasSuffix(f, "DN") {
		return format.TypeDate
	}

	return format.TypeNumber
}
