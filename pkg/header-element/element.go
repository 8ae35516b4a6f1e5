// Package headerelement tokenizes and formats multi-valued HTTP header fields.
//
// A header value is a comma-separated list of elements. Each element starts
// with a name and optional value, followed by semicolon-separated parameters:
//
//	name1=value1; p1=a; p2, name2="quoted value"; p3=b
package headerelement

import "strings"

const (
	elementDelimiter = ','
	paramDelimiter   = ';'
)

var (
	tokenDelims = NewDelimiters('=', paramDelimiter, elementDelimiter)
	valueDelims = NewDelimiters(paramDelimiter, elementDelimiter)
)

// NameValuePair is a name with an optional value.
// HasValue distinguishes `name` from `name=`.
type NameValuePair struct {
	Name     string
	Value    string
	HasValue bool
}

// Element is a single comma-separated unit of a header value.
type Element struct {
	NameValuePair
	Params []NameValuePair
}

// Param returns the first parameter matching name case-insensitively.
func (e Element) Param(name string) (NameValuePair, bool) {
	for _, p := range e.Params {
		if strings.EqualFold(p.Name, name) {
			return p, true
		}
	}
	return NameValuePair{}, false
}

// ParseElements splits a header value into its elements, in order.
// Elements that have neither a name nor a value (e.g. from a trailing comma) are skipped.
func ParseElements(s string) []Element {
	elements := make([]Element, 0)
	cur := NewCursor(s, 0)
	for !cur.AtEnd() {
		var elem Element
		elem, cur = ParseElement(s, cur)
		if elem.Name == "" && !elem.HasValue {
			continue
		}
		elements = append(elements, elem)
	}
	return elements
}

// ParseElement reads one element starting at the cursor and returns the cursor
// positioned after the element delimiter.
func ParseElement(s string, cur Cursor) (Element, Cursor) {
	var elem Element
	elem.NameValuePair, cur = ParseNameValuePair(s, cur, tokenDelims, valueDelims)
	if !cur.AtEnd() && s[cur.Pos-1] != elementDelimiter {
		elem.Params, cur = parseParams(s, cur)
	}
	return elem, cur
}

func parseParams(s string, cur Cursor) ([]NameValuePair, Cursor) {
	params := make([]NameValuePair, 0)
	cur = SkipWhitespace(s, cur)
	for !cur.AtEnd() {
		var param NameValuePair
		param, cur = ParseNameValuePair(s, cur, tokenDelims, valueDelims)
		params = append(params, param)
		if s[cur.Pos-1] == elementDelimiter {
			break
		}
	}
	return params, cur
}

// ParseNameValuePair reads `name[=value]`. The name ends at any byte in nameDelims
// and the value at any byte in valueDelims; the terminating delimiter is consumed.
// A name terminated by anything other than '=' has no value.
func ParseNameValuePair(s string, cur Cursor, nameDelims, valueDelims Delimiters) (NameValuePair, Cursor) {
	var nvp NameValuePair
	nvp.Name, cur = ParseToken(s, cur, nameDelims)
	if cur.AtEnd() {
		return nvp, cur
	}
	delim := s[cur.Pos]
	cur.Pos++
	if delim != '=' {
		return nvp, cur
	}
	nvp.Value, cur = ParseValue(s, cur, valueDelims)
	nvp.HasValue = true
	if !cur.AtEnd() {
		cur.Pos++
	}
	return nvp, cur
}
