package rfc6265

import (
	"errors"
	"math"
	"strconv"
	"time"
)

// §  5.2.2.  The Max-Age Attribute
// §
// §     If the attribute-name case-insensitively matches the string "Max-
// §     Age", the user agent MUST process the cookie-av as follows.
// §
// §     If the first character of the attribute-value is not a DIGIT or a "-"
// §     character, ignore the cookie-av.
// §
// §     If the remainder of attribute-value contains a non-DIGIT character,
// §     ignore the cookie-av.
// §
// §     Let delta-seconds be the attribute-value converted to an integer.
//
// Values outside the 32 bit range are clamped to it; 2147483647 seconds is
// over 68 years, effectively "forever" for a cookie.
func DeltaSeconds(value string) (int, error) {
	if value == "" {
		return 0, ErrDeltaSeconds
	}
	digits := value
	if value[0] == '-' {
		digits = value[1:]
	}
	if digits == "" {
		return 0, ErrDeltaSeconds
	}
	for i := 0; i < len(digits); i++ {
		if digits[i] < '0' || digits[i] > '9' {
			return 0, ErrDeltaSeconds
		}
	}
	seconds, err := strconv.ParseInt(value, 10, 64)
	if err != nil && !errors.Is(err, strconv.ErrRange) {
		return 0, ErrDeltaSeconds
	}
	switch {
	case seconds > math.MaxInt32:
		return math.MaxInt32, nil
	case seconds < math.MinInt32:
		return math.MinInt32, nil
	}
	return int(seconds), nil
}

// §     If delta-seconds is less than or equal to zero (0), let expiry-time
// §     be the earliest representable date and time.  Otherwise, let the
// §     expiry-time be the current date and time plus delta-seconds seconds.
//
// The earliest representable time is the Unix epoch.
func MaxAgeExpiry(now time.Time, seconds int) time.Time {
	if seconds <= 0 {
		return time.Unix(0, 0).UTC()
	}
	return now.Add(time.Duration(seconds) * time.Second).UTC()
}
