package headerelement

import "strings"

type charClass uint8

const (
	cToken charClass = iota
	cSeparator
	cUnsafe
)

var byteClass [256]charClass

func init() {
	for i := 0; i < 256; i++ {
		b := byte(i)
		switch {
		case b == '"' || b == '\\':
			byteClass[b] = cUnsafe
		case (b >= '0' && b <= '9') ||
			(b >= 'A' && b <= 'Z') || (b >= 'a' && b <= 'z') ||
			strings.IndexByte("!#$%&'*+-.^_`|~", b) >= 0:
			byteClass[b] = cToken
		default:
			byteClass[b] = cSeparator
		}
	}
}

// FormatElement appends `name=value` to b, formatting the value with FormatValue.
// A pair without a value is written as its name alone.
func FormatElement(b *strings.Builder, nvp NameValuePair, quote bool) {
	b.WriteString(nvp.Name)
	if nvp.HasValue {
		b.WriteByte('=')
		FormatValue(b, nvp.Value, quote)
	}
}

// FormatValue appends value to b. The value is written as a quoted-string when
// quote is set or when it holds any byte outside the token character set;
// inside the quotes, '"' and '\' are backslash-escaped.
func FormatValue(b *strings.Builder, value string, quote bool) {
	if !quote {
		for i := 0; i < len(value); i++ {
			if byteClass[value[i]] != cToken {
				quote = true
				break
			}
		}
	}
	if !quote {
		b.WriteString(value)
		return
	}
	b.WriteByte('"')
	for i := 0; i < len(value); i++ {
		if byteClass[value[i]] == cUnsafe {
			b.WriteByte('\\')
		}
		b.WriteByte(value[i])
	}
	b.WriteByte('"')
}
