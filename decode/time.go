package decode

import (
	"math"
	"time"

	"github.com/brightwell/sas7bdat/endian"
)

// sasEpoch is the reference instant for SAS numeric date/datetime encoding
// (1960-01-01T00:00:00Z).
var sasEpoch = time.Date(1960, time.January, 1, 0, 0, 0, 0, time.UTC)

// maxRepresentableSeconds bounds the seconds-since-epoch value whose
// corresponding time.Duration would overflow int64 nanoseconds.
const maxRepresentableSeconds = float64(math.MaxInt64) / float64(time.Second)

func roundedSeconds(raw []byte, eng endian.EndianEngine) (float64, bool) {
	v := DecodeNumber(raw, eng)
	if IsMissingNumber(v) {
		return 0, false
	}

	return math.Round(v), true
}

// DecodeDuration decodes a Time(duration) cell: round to a whole number of
// seconds (half away from zero), absent if the underlying number is
// missing.
func DecodeDuration(raw []byte, eng endian.EndianEngine) (time.Duration, bool) {
	secs, ok := roundedSeconds(raw, eng)
	if !ok {
		return 0, false
	}

	return time.Duration(secs) * time.Second, true
}

// DecodeDateTime decodes a DateTime cell: round to whole seconds since the
// SAS epoch, rejecting (as absent) values outside the representable
// instant range.
func DecodeDateTime(raw []byte, eng endian.EndianEngine) (time.Time, bool) {
	secs, ok := roundedSeconds(raw, eng)
	if !ok {
		return time.Time{}, false
	}

	if secs > maxRepresentableSeconds || secs < -maxRepresentableSeconds {
		return time.Time{}, false
	}

	return sasEpoch.Add(time.Duration(secs) * time.Second), true
}

// DecodeDateFromDateTime decodes a Date cell for "date-from-datetime"
// formats (B8601DN/E8601DN/IS8601DN): seconds since epoch, truncated to
// the calendar date in UTC.
func DecodeDateFromDateTime(raw []byte, eng endian.EndianEngine) (time.Time, bool) {
	instant, ok := DecodeDateTime(raw, eng)
	if !ok {
		return time.Time{}, false
	}

	y, m, d := instant.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC), true
}

// DecodeDateFromDays decodes a Date cell for ordinary date formats: whole
// days since the SAS epoch.
func DecodeDateFromDays(raw []byte, eng endian.EndianEngine) (time.Time, bool) {
	days, ok := roundedSeconds(raw, eng)
	if !ok {
		return time.Time{}, false
	}

	if days > maxRepresentableSeconds/86400 || days < -maxRepresentableSeconds/86400 {
		return time.Time{}, false
	}

	return sasEpoch.AddDate(0, 0, int(days)), true
}
