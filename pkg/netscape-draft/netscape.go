// Package netscape scans Set-Cookie values written in the Netscape draft syntax.
//
// Netscape cookies carry a single cookie per header and an expires date that
// may contain commas, so commas are never treated as separators:
//
//	name=value; expires=Wednesday, 09-Jun-21 10:18:14 GMT; path=/; secure
package netscape

import (
	headerelement "github.com/always-cache/cookiespec/pkg/header-element"
)

const paramDelimiter = ';'

var (
	tokenDelims = headerelement.NewDelimiters('=', paramDelimiter)
	valueDelims = headerelement.NewDelimiters(paramDelimiter)
)

// ParseHeader scans s from the cursor to its end. The first pair is the element
// name and value; every following pair becomes a parameter, in header order.
// Values are read as raw tokens, so quotes are kept.
func ParseHeader(s string, cur headerelement.Cursor) headerelement.Element {
	var elem headerelement.Element
	elem.NameValuePair, cur = parseNameValuePair(s, cur)
	elem.Params = make([]headerelement.NameValuePair, 0)
	for !cur.AtEnd() {
		var param headerelement.NameValuePair
		param, cur = parseNameValuePair(s, cur)
		elem.Params = append(elem.Params, param)
	}
	return elem
}

func parseNameValuePair(s string, cur headerelement.Cursor) (headerelement.NameValuePair, headerelement.Cursor) {
	var nvp headerelement.NameValuePair
	nvp.Name, cur = headerelement.ParseToken(s, cur, tokenDelims)
	if cur.AtEnd() {
		return nvp, cur
	}
	delim := s[cur.Pos]
	cur.Pos++
	if delim != '=' {
		return nvp, cur
	}
	nvp.Value, cur = headerelement.ParseToken(s, cur, valueDelims)
	nvp.HasValue = true
	if !cur.AtEnd() {
		cur.Pos++
	}
	return nvp, cur
}
