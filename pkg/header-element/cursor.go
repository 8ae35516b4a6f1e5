package headerelement

// Cursor is a scan position within the bounded region [Pos, End) of a header buffer.
// Scanners take a Cursor by value and return the advanced one.
type Cursor struct {
	Pos int
	End int
}

// NewCursor returns a cursor covering s[pos:len(s)].
// Out of range positions are clamped so scanning never leaves the buffer.
func NewCursor(s string, pos int) Cursor {
	if pos < 0 {
		pos = 0
	}
	if pos > len(s) {
		pos = len(s)
	}
	return Cursor{Pos: pos, End: len(s)}
}

// AtEnd reports whether the cursor has consumed its whole region.
func (c Cursor) AtEnd() bool {
	return c.Pos >= c.End
}

// Delimiters is a set of bytes that terminate a token.
type Delimiters [256]bool

// NewDelimiters returns a delimiter set containing the given bytes.
func NewDelimiters(chars ...byte) Delimiters {
	var d Delimiters
	for _, c := range chars {
		d[c] = true
	}
	return d
}

// Has reports whether c is a delimiter.
func (d *Delimiters) Has(c byte) bool {
	return d != nil && d[c]
}

func isWhitespace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\r' || c == '\n'
}

// SkipWhitespace advances the cursor past any whitespace.
func SkipWhitespace(s string, cur Cursor) Cursor {
	for !cur.AtEnd() && isWhitespace(s[cur.Pos]) {
		cur.Pos++
	}
	return cur
}
