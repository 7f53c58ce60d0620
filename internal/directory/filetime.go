package directory

import "time"

// Seconds between the Windows FILETIME epoch (1601-01-01) and the Unix epoch.
const filetimeEpochOffsetSeconds = 11644473600

// FromFiletime converts a Windows FILETIME counter (100-nanosecond intervals
// since 1601-01-01T00:00:00 UTC) into a UTC time. Active Directory stores
// pwdLastSet in this format.
//
// The arithmetic goes through time.Unix rather than time.Duration: the span
// from 1601 to the present exceeds the ~292-year range of a Duration, so
// Add-based conversion would overflow. Precision below one microsecond is
// truncated.
//
// A counter of 0 is a sentinel ("password never set") and must be filtered by
// the caller before conversion.
func FromFiletime(counter uint64) time.Time {
	secs := int64(counter/10_000_000) - filetimeEpochOffsetSeconds
	// Remainder is in 100ns units; keep whole microseconds only.
	nsec := int64(counter%10_000_000) / 10 * 1000
	return time.Unix(secs, nsec).UTC()
}
