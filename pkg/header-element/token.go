package headerelement

import "strings"

// ParseToken reads a token up to the first delimiter (which is not consumed).
// Leading and trailing whitespace is dropped and inner runs of whitespace
// collapse to a single space. Quote characters are copied as-is.
func ParseToken(s string, cur Cursor, delims Delimiters) (string, Cursor) {
	var dst strings.Builder
	whitespace := false
	for !cur.AtEnd() {
		c := s[cur.Pos]
		if delims.Has(c) {
			break
		}
		if isWhitespace(c) {
			cur = SkipWhitespace(s, cur)
			whitespace = true
			continue
		}
		if whitespace && dst.Len() > 0 {
			dst.WriteByte(' ')
		}
		cur = copyContent(s, cur, delims, &dst)
		whitespace = false
	}
	return dst.String(), cur
}

// ParseValue reads a value up to the first delimiter (which is not consumed).
// It behaves like ParseToken, except that quoted-strings are unwrapped and
// their backslash escapes resolved.
func ParseValue(s string, cur Cursor, delims Delimiters) (string, Cursor) {
	var dst strings.Builder
	whitespace := false
	for !cur.AtEnd() {
		c := s[cur.Pos]
		if delims.Has(c) {
			break
		}
		if isWhitespace(c) {
			cur = SkipWhitespace(s, cur)
			whitespace = true
			continue
		}
		if whitespace && dst.Len() > 0 {
			dst.WriteByte(' ')
		}
		if c == '"' {
			cur = copyQuotedContent(s, cur, &dst)
		} else {
			cur = copyUnquotedContent(s, cur, delims, &dst)
		}
		whitespace = false
	}
	return dst.String(), cur
}

func copyContent(s string, cur Cursor, delims Delimiters, dst *strings.Builder) Cursor {
	for !cur.AtEnd() {
		c := s[cur.Pos]
		if delims.Has(c) || isWhitespace(c) {
			break
		}
		dst.WriteByte(c)
		cur.Pos++
	}
	return cur
}

func copyUnquotedContent(s string, cur Cursor, delims Delimiters, dst *strings.Builder) Cursor {
	for !cur.AtEnd() {
		c := s[cur.Pos]
		if delims.Has(c) || isWhitespace(c) || c == '"' {
			break
		}
		dst.WriteByte(c)
		cur.Pos++
	}
	return cur
}

// copyQuotedContent copies a quoted-string without its surrounding quotes.
// An unterminated quoted-string runs to the end of the region.
func copyQuotedContent(s string, cur Cursor, dst *strings.Builder) Cursor {
	if cur.AtEnd() || s[cur.Pos] != '"' {
		return cur
	}
	cur.Pos++
	escaped := false
	for !cur.AtEnd() {
		c := s[cur.Pos]
		cur.Pos++
		if escaped {
			if c != '"' && c != '\\' {
				dst.WriteByte('\\')
			}
			dst.WriteByte(c)
			escaped = false
			continue
		}
		if c == '"' {
			break
		}
		if c == '\\' {
			escaped = true
		} else if c != '\r' && c != '\n' {
			dst.WriteByte(c)
		}
	}
	return cur
}
