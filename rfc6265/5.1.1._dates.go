package rfc6265

import (
	"regexp"
	"strings"
	"time"
)

// §  5.1.1.  Dates
// §
// §     The user agent MUST use an algorithm equivalent to the following
// §     algorithm to parse a cookie-date.  Note that the various boolean
// §     flags defined as a part of the algorithm (i.e., found-time, found-
// §     day-of-month, found-month, found-year) are initially "not set".
//
// The tokenizing algorithm is not implemented. Expires values are matched
// against the fixed list of layouts that servers have historically sent
// (RFC 1123, RFC 1036 / RFC 850, asctime, numeric-zone and day-less variants),
// after folding all date delimiters into single spaces. The sign of a trailing
// numeric zone is kept.

type cookieDateLayout struct {
	layout    string
	shortYear bool
}

var cookieDateLayouts = []cookieDateLayout{
	// Wed, 09-Jun-21 10:18:14 GMT
	{"Mon 2 Jan 06 15 04 05 MST", true},
	// Wednesday, 09-Jun-21 10:18:14 GMT
	{"Monday 2 Jan 06 15 04 05 MST", true},
	// Wed, 09 Jun 2021 10:18:14 GMT
	{"Mon 2 Jan 2006 15 04 05 MST", false},
	{"Monday 2 Jan 2006 15 04 05 MST", false},
	// Wed Jun  9 10:18:14 2021
	{"Mon Jan 2 15 04 05 2006", false},
	// Wed, 09 Jun 21 10:18:14 +0000
	{"Mon 2 Jan 06 15 04 05 -0700", true},
	{"Mon 2 Jan 2006 15 04 05 -0700", false},
	// 09 Jun 2021 10:18:14 GMT
	{"2 Jan 2006 15 04 05 MST", false},
	{"2 Jan 06 15 04 05 MST", true},
	{"2 Jan 2006 15 04 05 -0700", false},
}

// Two digit years are read into the window [1970, 2069].
const shortYearStart = 1970

var (
	dateDelimiters = regexp.MustCompile(`[ ,:-]+`)
	// a trailing +hhmm or -hhmm zone keeps its sign
	numericZone = regexp.MustCompile(`[+-][0-9]{4}$`)
)

// CookieDate parses an Expires attribute value. One pair of surrounding quotes
// is ignored and matching is case-insensitive. The result is in UTC.
//
// §  5.2.1.  The Expires Attribute
// §
// §     Let the expiry-time be the result of parsing the attribute-value as
// §     cookie-date (see Section 5.1.1).
// §
// §     If the attribute-value failed to parse as a cookie date, ignore the
// §     cookie-av.
func CookieDate(value string) (time.Time, error) {
	if len(value) > 1 && strings.HasPrefix(value, `"`) && strings.HasSuffix(value, `"`) {
		value = value[1 : len(value)-1]
	}
	str := normalizeCookieDate(value)
	for _, l := range cookieDateLayouts {
		date, err := time.Parse(l.layout, str)
		if err != nil {
			continue
		}
		if l.shortYear && date.Year() < shortYearStart {
			date = date.AddDate(100, 0, 0)
		}
		return date.UTC(), nil
	}
	return time.Time{}, ErrUnparsableDate
}

// normalizeCookieDate folds runs of delimiters into one space and upper-cases
// the value, so that zone abbreviations are recognized in any case.
func normalizeCookieDate(value string) string {
	value = strings.TrimSpace(strings.ToUpper(value))
	zone := numericZone.FindString(value)
	value = strings.TrimSpace(dateDelimiters.ReplaceAllString(value[:len(value)-len(zone)], " "))
	if zone == "" {
		return value
	}
	return value + " " + zone
}
