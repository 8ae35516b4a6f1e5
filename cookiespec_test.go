package cookiespec

import (
	"bytes"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func init() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stdout})
}

var (
	testNow    = time.Date(2022, 10, 1, 12, 0, 0, 0, time.UTC)
	testOrigin = Origin{Host: "www.Example.com", Port: 443, Path: "/a/b/page", Secure: true}
)

func testSpec() *Spec {
	return New(Config{Now: func() time.Time { return testNow }})
}

func setCookie(value string) Header {
	return Header{Name: "Set-Cookie", Value: value}
}

func mustParse(t *testing.T, value string) []Cookie {
	t.Helper()
	cookies, err := testSpec().Parse(setCookie(value), testOrigin)
	if err != nil {
		t.Fatalf("Error parsing %q: %v", value, err)
	}
	return cookies
}

func TestParseModernElements(t *testing.T) {
	cookies := mustParse(t, "a=1, b=2, c=3")
	if len(cookies) != 3 {
		t.Fatalf("Got %d cookies: %v", len(cookies), cookies)
	}
	for i, name := range []string{"a", "b", "c"} {
		if cookies[i].Name != name {
			t.Fatalf("Cookie %d is %s", i, cookies[i])
		}
	}
	if cookies[1].Value != "2" {
		t.Fatalf("Value is %q", cookies[1].Value)
	}
}

func TestParseDefaults(t *testing.T) {
	c := mustParse(t, "a=1")[0]
	if c.Domain != "www.example.com" {
		t.Fatalf("Domain is %q", c.Domain)
	}
	if c.Path != "/a/b" {
		t.Fatalf("Path is %q", c.Path)
	}
	if c.Expiry != nil || c.MaxAge != nil || c.Secure || c.HttpOnly || c.SameSite != SameSiteUnspecified {
		t.Fatalf("Cookie has non-default attributes %+v", c)
	}
}

func TestParseEmptyName(t *testing.T) {
	cookies := mustParse(t, "=abc")
	if len(cookies) != 1 {
		t.Fatalf("Got %d cookies", len(cookies))
	}
	if cookies[0].Name != DefaultEmptyCookieName || cookies[0].Value != "abc" {
		t.Fatalf("Cookie is %s", cookies[0])
	}
}

func TestParseNoSeparator(t *testing.T) {
	c := mustParse(t, "abc")[0]
	if c.Name != DefaultEmptyCookieName || c.Value != "abc" {
		t.Fatalf("Cookie is %s", c)
	}
	c = mustParse(t, "abc; path=/")[0]
	if c.Name != DefaultEmptyCookieName || c.Value != "abc" || c.Path != "/" {
		t.Fatalf("Cookie is %s", c)
	}
	c = mustParse(t, "  =abc")[0]
	if c.Name != DefaultEmptyCookieName || c.Value != "abc" {
		t.Fatalf("Cookie is %s", c)
	}
}

func TestParseCustomEmptyName(t *testing.T) {
	spec := New(Config{EmptyCookieName: "NONAME"})
	cookies, err := spec.Parse(setCookie("=abc"), testOrigin)
	if err != nil || cookies[0].Name != "NONAME" {
		t.Fatalf("Cookies %v, error %v", cookies, err)
	}
}

func TestParseNetscape(t *testing.T) {
	cookies := mustParse(t, "foo=bar; expires=Wed, 09 Jun 2021 10:18:14 GMT")
	if len(cookies) != 1 {
		t.Fatalf("Got %d cookies: %v", len(cookies), cookies)
	}
	c := cookies[0]
	if c.Name != "foo" || c.Value != "bar" {
		t.Fatalf("Cookie is %s", c)
	}
	if c.Expiry == nil || !c.Expiry.Equal(time.Date(2021, 6, 9, 10, 18, 14, 0, time.UTC)) {
		t.Fatalf("Expiry is %v", c.Expiry)
	}
	if c.Expiry.Format(time.RFC3339) != "2021-06-09T10:18:14Z" {
		t.Fatalf("Expiry is %s", c.Expiry.Format(time.RFC3339))
	}
}

func TestParseNetscapeLaterElement(t *testing.T) {
	cookies := mustParse(t, "a=1, b=2; expires=Wed, 09 Jun 2021 10:18:14 GMT")
	if len(cookies) != 1 {
		t.Fatalf("Got %d cookies: %v", len(cookies), cookies)
	}
	c := cookies[0]
	if c.Name != "a" || c.Value != "1, b=2" {
		t.Fatalf("Cookie is %s", c)
	}
	if c.Expiry == nil || c.Expiry.Format(time.RFC3339) != "2021-06-09T10:18:14Z" {
		t.Fatalf("Expiry is %v", c.Expiry)
	}
}

func TestParseNetscapeNegativeZone(t *testing.T) {
	c := mustParse(t, "a=b; expires=Wed, 09 Jun 2021 10:18:14 -0500")[0]
	if c.Expiry == nil || c.Expiry.Format(time.RFC3339) != "2021-06-09T15:18:14Z" {
		t.Fatalf("Expiry is %v", c.Expiry)
	}
}

func TestParseNetscapeBuffered(t *testing.T) {
	h, err := NewBufferedHeader("Set-Cookie: foo=bar; Expires=Wednesday, 09-Jun-21 10:18:14 GMT; Path=/a; Secure")
	if err != nil {
		t.Fatalf("Error creating header: %v", err)
	}
	cookies, err := testSpec().Parse(h, testOrigin)
	if err != nil {
		t.Fatalf("Error parsing: %v", err)
	}
	c := cookies[0]
	if c.Name != "foo" || c.Value != "bar" || c.Path != "/a" || !c.Secure {
		t.Fatalf("Cookie is %+v", c)
	}
	if c.Expiry == nil || c.Expiry.Year() != 2021 {
		t.Fatalf("Expiry is %v", c.Expiry)
	}
}

func TestParseNetscapeMissingName(t *testing.T) {
	_, err := testSpec().parseNetscape(setCookie("; expires=Wed, 09 Jun 2021 10:18:14 GMT"), testOrigin)
	if !errors.Is(err, ErrMissingCookieIdentity) {
		t.Fatalf("Error is %v", err)
	}
}

func TestParseModernMissingName(t *testing.T) {
	cookies, err := testSpec().Parse(setCookie("a=1, =2"), testOrigin)
	if !errors.Is(err, ErrMissingCookieIdentity) {
		t.Fatalf("Error is %v", err)
	}
	if cookies != nil {
		t.Fatalf("Partial cookies returned: %v", cookies)
	}
}

func TestParseMissingOriginHost(t *testing.T) {
	for _, origin := range []Origin{{}, {Host: "  ", Path: "/"}} {
		cookies, err := testSpec().Parse(setCookie("a=b"), origin)
		if !errors.Is(err, ErrMissingOriginHost) || cookies != nil {
			t.Fatalf("Cookies %v, error %v", cookies, err)
		}
	}
}

func TestParseWrongHeader(t *testing.T) {
	_, err := testSpec().Parse(Header{Name: "Cookie", Value: "a=b"}, testOrigin)
	if !errors.Is(err, ErrMalformedHeaderName) {
		t.Fatalf("Error is %v", err)
	}
	if _, err := testSpec().Parse(Header{Name: "set-COOKIE", Value: "a=b"}, testOrigin); err != nil {
		t.Fatalf("Error is %v", err)
	}
}

func TestParseQuotedValue(t *testing.T) {
	c := mustParse(t, `name="quoted"`)[0]
	if c.Value != `"quoted"` {
		t.Fatalf("Value is %s", c.Value)
	}
	if h := testSpec().FormatCookies([]Cookie{c}); h.Value != `name="quoted"` {
		t.Fatalf("Header is %s", h)
	}
}

func TestParseQuotedValueNetscape(t *testing.T) {
	c := mustParse(t, `a="b"; expires=Wed, 09 Jun 2021 10:18:14 GMT`)[0]
	if c.Value != `"b"` {
		t.Fatalf("Value is %s", c.Value)
	}
}

func TestParseUnknownAttribute(t *testing.T) {
	c := mustParse(t, "foo=bar; zzz=1")[0]
	if v, ok := c.Attribute("zzz"); !ok || v != "1" {
		t.Fatalf("Attribute is %q, %v", v, ok)
	}
	if h := testSpec().FormatCookies([]Cookie{c}); h.Value != "foo=bar" {
		t.Fatalf("Header is %s", h)
	}
}

func TestParseAttributesFirstWins(t *testing.T) {
	c := mustParse(t, "a=b; path=/a; path=/")[0]
	if c.Path != "/a" {
		t.Fatalf("Path is %q", c.Path)
	}
	if c.Attributes["path"] != "/a" {
		t.Fatalf("Attributes are %v", c.Attributes)
	}
}

func TestParseMaxAgeAndExpires(t *testing.T) {
	c := mustParse(t, "a=b; max-age=60; expires=Wed, 09 Jun 2021 10:18:14 GMT")[0]
	if c.MaxAge == nil || *c.MaxAge != 60 {
		t.Fatalf("MaxAge is %v", c.MaxAge)
	}
	if c.Expiry == nil || !c.Expiry.Equal(testNow.Add(time.Minute)) {
		t.Fatalf("Expiry is %v", c.Expiry)
	}

	c = mustParse(t, "a=b; expires=Wed, 09 Jun 2021 10:18:14 GMT; max-age=60")[0]
	if c.Expiry == nil || c.Expiry.Year() != 2021 {
		t.Fatalf("Expiry is %v", c.Expiry)
	}
}

func TestParseMaxAgeExpired(t *testing.T) {
	c := mustParse(t, "a=b; Max-Age=0")[0]
	if c.MaxAge == nil || *c.MaxAge != 0 {
		t.Fatalf("MaxAge is %v", c.MaxAge)
	}
	if !c.IsExpired(testNow) {
		t.Fatalf("Cookie not expired: %v", c.Expiry)
	}
}

func TestParseInvalidAttributesIgnored(t *testing.T) {
	c := mustParse(t, "a=b; expires=someday; max-age=soon; domain=; path=/elsewhere; samesite=sometimes")[0]
	if c.Expiry != nil || c.MaxAge != nil {
		t.Fatalf("Expiry %v, MaxAge %v", c.Expiry, c.MaxAge)
	}
	if c.Domain != "www.example.com" || c.Path != "/a/b" {
		t.Fatalf("Domain %q, path %q", c.Domain, c.Path)
	}
	if c.SameSite != SameSiteUnspecified {
		t.Fatalf("SameSite is %v", c.SameSite)
	}
	if _, ok := c.Attribute("expires"); !ok {
		t.Fatalf("Attributes are %v", c.Attributes)
	}
}

func TestParseFlagsAndDomain(t *testing.T) {
	c := mustParse(t, "a=b; Domain=.Example.com; Secure; HttpOnly; SameSite=lax")[0]
	if c.Domain != "example.com" {
		t.Fatalf("Domain is %q", c.Domain)
	}
	if !c.Secure || !c.HttpOnly {
		t.Fatalf("Secure %v, HttpOnly %v", c.Secure, c.HttpOnly)
	}
	if c.SameSite != SameSiteLax {
		t.Fatalf("SameSite is %v", c.SameSite)
	}
}

func TestParseLogsIgnoredAttributes(t *testing.T) {
	buf := &bytes.Buffer{}
	logger := zerolog.New(buf).Level(zerolog.DebugLevel)
	spec := New(Config{Logger: &logger})
	if _, err := spec.Parse(setCookie("a=b; max-age=abc"), testOrigin); err != nil {
		t.Fatalf("Error parsing: %v", err)
	}
	if !bytes.Contains(buf.Bytes(), []byte("Ignoring cookie attribute")) {
		t.Fatalf("Log is %s", buf.String())
	}
}

func TestParseFollowsGlobalLogger(t *testing.T) {
	prev := log.Logger
	defer func() { log.Logger = prev }()
	spec := New(Config{})

	buf := &bytes.Buffer{}
	log.Logger = zerolog.New(buf).Level(zerolog.DebugLevel)
	if _, err := spec.Parse(setCookie("a=b; max-age=abc"), testOrigin); err != nil {
		t.Fatalf("Error parsing: %v", err)
	}
	if !bytes.Contains(buf.Bytes(), []byte("Ignoring cookie attribute")) {
		t.Fatalf("Log is %s", buf.String())
	}

	buf.Reset()
	if _, err := Parse(setCookie("=x"), testOrigin); err != nil {
		t.Fatalf("Error parsing: %v", err)
	}
	if !bytes.Contains(buf.Bytes(), []byte("Cookie without name")) {
		t.Fatalf("Log is %s", buf.String())
	}
}

func TestParseFormatRoundTrip(t *testing.T) {
	header := "a=1; path=/a/b, b=2; path=/a, c=x"
	cookies := mustParse(t, header)
	// c defaults to /a/b, so it is sent before b
	if h := testSpec().FormatCookies(cookies); h.Value != "a=1; c=x; b=2" {
		t.Fatalf("Header is %s", h)
	}
}
