package cookiespec

import (
	"sort"
	"strings"

	headerelement "github.com/always-cache/cookiespec/pkg/header-element"
)

// FormatCookies returns a single Cookie header carrying all cookies, ordered
// by path specificity. The given slice is not modified.
//
// Values already enclosed in quotes are sent verbatim. Other values are
// quoted only if they contain non-token characters.
func (s *Spec) FormatCookies(cookies []Cookie) Header {
	sorted := make([]Cookie, len(cookies))
	copy(sorted, cookies)
	SortByPath(sorted)

	var b strings.Builder
	b.Grow(20 * len(sorted))
	for i, c := range sorted {
		if i > 0 {
			b.WriteString("; ")
		}
		if isQuoteEnclosed(c.Value) {
			b.WriteString(c.Name)
			b.WriteByte('=')
			b.WriteString(c.Value)
		} else {
			headerelement.FormatElement(&b, headerelement.NameValuePair{
				Name:     c.Name,
				Value:    c.Value,
				HasValue: true,
			}, false)
		}
	}
	s.logger().Trace().Int("cookies", len(sorted)).Msg("Formatted cookie header")
	return Header{Name: CookieHeader, Value: b.String()}
}

func isQuoteEnclosed(s string) bool {
	return len(s) > 1 && s[0] == '"' && s[len(s)-1] == '"'
}

// ComparePath orders cookies for sending: a cookie whose path is more specific
// than (i.e. extends) the other's comes first. Cookies with equal or unrelated
// paths compare equal.
//
// This is the ordering of RFC 2109 §4.3.4 and RFC 2965 §3.3.4.
func ComparePath(a, b Cookie) int {
	p1 := normalizePath(a.Path)
	p2 := normalizePath(b.Path)
	switch {
	case p1 == p2:
		return 0
	case strings.HasPrefix(p1, p2):
		return -1
	case strings.HasPrefix(p2, p1):
		return 1
	}
	return 0
}

// SortByPath stable-sorts cookies with ComparePath.
func SortByPath(cookies []Cookie) {
	sort.SliceStable(cookies, func(i, j int) bool {
		return ComparePath(cookies[i], cookies[j]) < 0
	})
}

func normalizePath(path string) string {
	if path == "" {
		path = "/"
	}
	if !strings.HasSuffix(path, "/") {
		path += "/"
	}
	return path
}
