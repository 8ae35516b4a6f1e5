package cookiespec

import (
	"fmt"
	"strings"
)

const (
	SetCookieHeader = "Set-Cookie"
	CookieHeader    = "Cookie"
)

// HeaderField is a single HTTP header field.
type HeaderField interface {
	FieldName() string
	FieldValue() string
}

// Header is a header field held as a name and value.
type Header struct {
	Name  string `json:"name" yaml:"name"`
	Value string `json:"value" yaml:"value"`
}

func (h Header) FieldName() string  { return h.Name }
func (h Header) FieldValue() string { return h.Value }

// String returns the header in its wire form, `Name: value`.
func (h Header) String() string {
	return h.Name + ": " + h.Value
}

// BufferedHeader is a header field backed by its raw `Name: value` line.
// Parsers that can work on the line directly use Buffer and ValuePos instead
// of copying the value out.
type BufferedHeader struct {
	line     string
	colon    int
	valuePos int
}

// NewBufferedHeader wraps a raw header line. The line must contain a colon
// preceded by a non-empty name.
func NewBufferedHeader(line string) (BufferedHeader, error) {
	line = strings.TrimRight(line, "\r\n")
	colon := strings.IndexByte(line, ':')
	if colon < 0 || strings.TrimSpace(line[:colon]) == "" {
		return BufferedHeader{}, fmt.Errorf("%w: %q", ErrMalformedHeaderName, line)
	}
	valuePos := colon + 1
	for valuePos < len(line) && (line[valuePos] == ' ' || line[valuePos] == '\t') {
		valuePos++
	}
	return BufferedHeader{line: line, colon: colon, valuePos: valuePos}, nil
}

func (h BufferedHeader) FieldName() string  { return strings.TrimSpace(h.line[:h.colon]) }
func (h BufferedHeader) FieldValue() string { return strings.TrimSpace(h.line[h.valuePos:]) }

// Buffer returns the complete header line.
func (h BufferedHeader) Buffer() string { return h.line }

// ValuePos returns the offset of the value within Buffer.
func (h BufferedHeader) ValuePos() int { return h.valuePos }

func (h BufferedHeader) String() string { return h.line }
