// Package cookiespec reads Set-Cookie headers and writes Cookie headers the
// way browsers do.
//
// Parsing accepts both the Netscape draft syntax (a single cookie whose
// expires date may contain commas) and the RFC 2109/2965 list syntax, and
// tolerates the malformations real servers send: nameless cookies, bad
// attribute values and unknown attributes. Formatting orders cookies by path
// specificity and reproduces the quoting of the original values.
package cookiespec

import (
	"fmt"
	"strings"
	"time"

	headerelement "github.com/always-cache/cookiespec/pkg/header-element"
	netscape "github.com/always-cache/cookiespec/pkg/netscape-draft"
	"github.com/always-cache/cookiespec/rfc6265"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// DefaultEmptyCookieName is the name given to cookies sent without one.
const DefaultEmptyCookieName = "EMPTY_COOKIE"

type Config struct {
	// Logger to use. If nil, the global zerolog logger is looked up on
	// every call, so later changes to it are picked up.
	Logger *zerolog.Logger
	// Clock used to turn max-age into an expiry. Defaults to time.Now.
	Now func() time.Time
	// Name for cookies sent without a name. Defaults to DefaultEmptyCookieName.
	EmptyCookieName string
}

// Spec parses and formats cookie headers. It is immutable once created
// and safe for concurrent use.
type Spec struct {
	log             *zerolog.Logger
	now             func() time.Time
	emptyCookieName string
}

// New creates a Spec from the given config.
func New(config Config) *Spec {
	s := &Spec{
		now:             config.Now,
		emptyCookieName: config.EmptyCookieName,
	}
	if config.Logger != nil {
		logger := config.Logger.With().Str("component", "cookiespec").Logger()
		s.log = &logger
	}
	if s.now == nil {
		s.now = time.Now
	}
	if s.emptyCookieName == "" {
		s.emptyCookieName = DefaultEmptyCookieName
	}
	return s
}

// logger returns the configured logger, or a child of the current global one.
func (s *Spec) logger() *zerolog.Logger {
	if s.log != nil {
		return s.log
	}
	logger := log.Logger.With().Str("component", "cookiespec").Logger()
	return &logger
}

var defaultSpec = New(Config{})

// Parse parses a Set-Cookie header with the default Spec.
func Parse(h HeaderField, origin Origin) ([]Cookie, error) {
	return defaultSpec.Parse(h, origin)
}

// FormatCookies formats a Cookie header with the default Spec.
func FormatCookies(cookies []Cookie) Header {
	return defaultSpec.FormatCookies(cookies)
}

// Parse returns the cookies set by a Set-Cookie header.
//
// A header with any expires attribute is read as a single Netscape draft
// cookie; otherwise each comma-separated element is a cookie. Invalid
// attributes are ignored. An error is returned only for a header that is not
// Set-Cookie, an origin without a host, or a cookie without a name, in which
// case no cookies are returned.
func (s *Spec) Parse(h HeaderField, origin Origin) ([]Cookie, error) {
	if strings.TrimSpace(origin.Host) == "" {
		return nil, ErrMissingOriginHost
	}
	h = s.withCookieName(h)

	if !strings.EqualFold(h.FieldName(), SetCookieHeader) {
		return nil, fmt.Errorf("%w: '%s: %s'", ErrMalformedHeaderName, h.FieldName(), h.FieldValue())
	}

	value := h.FieldValue()
	elements := headerelement.ParseElements(value)

	var cookies []Cookie
	var err error
	if isNetscape(elements) {
		s.logger().Trace().Str("header", value).Msg("Parsing Netscape draft cookie")
		var cookie Cookie
		cookie, err = s.parseNetscape(h, origin)
		cookies = []Cookie{cookie}
	} else {
		cookies, err = s.parseElements(elements, origin)
	}
	if err != nil {
		return nil, err
	}

	// the value parser strips one level of quotes; put them back
	for i := range cookies {
		if strings.Contains(value, cookies[i].Name+`="`+cookies[i].Value) {
			cookies[i].Value = `"` + cookies[i].Value + `"`
		}
	}
	return cookies, nil
}

// withCookieName returns the header with a placeholder name prepended to its
// value if the value has no cookie name.
func (s *Spec) withCookieName(h HeaderField) HeaderField {
	text := h.FieldValue()
	endPos := strings.IndexByte(text, ';')
	eqPos := strings.IndexByte(text, '=')
	if endPos < 0 || eqPos <= endPos {
		endPos = eqPos
	} else {
		endPos = -1
	}
	switch {
	case endPos < 0:
		s.logger().Debug().Str("header", text).Msg("Cookie without name and value separator")
		return Header{Name: h.FieldName(), Value: s.emptyCookieName + "=" + text}
	case strings.TrimSpace(text[:endPos]) == "":
		s.logger().Debug().Str("header", text).Msg("Cookie without name")
		return Header{Name: h.FieldName(), Value: s.emptyCookieName + text}
	}
	return h
}

// isNetscape reports whether any element has an expires parameter.
// Expires dates contain commas, so such a header cannot be split into elements.
func isNetscape(elements []headerelement.Element) bool {
	for _, elem := range elements {
		if _, ok := elem.Param("expires"); ok {
			return true
		}
	}
	return false
}

func (s *Spec) parseNetscape(h HeaderField, origin Origin) (Cookie, error) {
	var elem headerelement.Element
	if bh, ok := h.(BufferedHeader); ok {
		buf := bh.Buffer()
		elem = netscape.ParseHeader(buf, headerelement.NewCursor(buf, bh.ValuePos()))
	} else {
		buf := h.FieldValue()
		elem = netscape.ParseHeader(buf, headerelement.NewCursor(buf, 0))
	}
	if elem.Name == "" {
		return Cookie{}, fmt.Errorf("%w: '%s'", ErrMissingCookieIdentity, h.FieldValue())
	}
	return s.newCookie(elem, origin), nil
}

func (s *Spec) parseElements(elements []headerelement.Element, origin Origin) ([]Cookie, error) {
	cookies := make([]Cookie, 0, len(elements))
	for _, elem := range elements {
		if elem.Name == "" {
			return nil, fmt.Errorf("%w: element with value '%s'", ErrMissingCookieIdentity, elem.Value)
		}
		cookies = append(cookies, s.newCookie(elem, origin))
	}
	return cookies, nil
}

// newCookie builds a cookie from an element. Domain and path start from the
// origin defaults and attributes are applied last to first.
func (s *Spec) newCookie(elem headerelement.Element, origin Origin) Cookie {
	cookie := Cookie{
		Name:       elem.Name,
		Value:      elem.Value,
		Domain:     strings.ToLower(origin.Host),
		Path:       rfc6265.DefaultPath(origin.Path),
		Attributes: make(map[string]string, len(elem.Params)),
	}
	ctx := attributeContext{origin: origin, now: s.now()}
	for i := len(elem.Params) - 1; i >= 0; i-- {
		attr := elem.Params[i]
		name := strings.ToLower(attr.Name)
		cookie.Attributes[name] = attr.Value
		handler, ok := attributeHandlers[name]
		if !ok {
			continue
		}
		if err := handler(&cookie, attr.Value, ctx); err != nil {
			s.logger().Debug().Err(err).Str("cookie", cookie.Name).Str("attribute", name).Msg("Ignoring cookie attribute")
		}
	}
	return cookie
}
