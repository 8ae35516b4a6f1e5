package cookiespec

import (
	"fmt"
	"time"

	"github.com/always-cache/cookiespec/rfc6265"
)

// attributeContext holds what an attribute handler may consult besides the
// cookie and the attribute value.
type attributeContext struct {
	origin Origin
	now    time.Time
}

// attributeHandler applies one attribute to a cookie. A returned error means
// the attribute was ignored; the cookie is left as it was.
type attributeHandler func(c *Cookie, value string, ctx attributeContext) error

// attributeHandlers maps lower-case attribute names to their handlers.
// Attributes not listed here are only recorded in Cookie.Attributes.
var attributeHandlers = map[string]attributeHandler{
	"domain":   handleDomain,
	"path":     handlePath,
	"max-age":  handleMaxAge,
	"secure":   handleSecure,
	"expires":  handleExpires,
	"httponly": handleHttpOnly,
	"samesite": handleSameSite,
}

func handleDomain(c *Cookie, value string, _ attributeContext) error {
	domain, err := rfc6265.CookieDomain(value)
	if err != nil {
		return fmt.Errorf("%w: domain %q: %v", ErrAttributeDropped, value, err)
	}
	c.Domain = domain
	return nil
}

// handlePath ignores blank paths and paths that do not match the origin path,
// which leaves the default path in place.
func handlePath(c *Cookie, value string, ctx attributeContext) error {
	requestPath := ctx.origin.Path
	if requestPath == "" {
		requestPath = "/"
	}
	if value == "" || !rfc6265.PathMatch(requestPath, value) {
		return fmt.Errorf("%w: path %q does not match %q", ErrAttributeDropped, value, requestPath)
	}
	c.Path = value
	return nil
}

func handleMaxAge(c *Cookie, value string, ctx attributeContext) error {
	seconds, err := rfc6265.DeltaSeconds(value)
	if err != nil {
		return fmt.Errorf("%w: max-age %q: %v", ErrAttributeDropped, value, err)
	}
	expiry := rfc6265.MaxAgeExpiry(ctx.now, seconds)
	c.MaxAge = &seconds
	c.Expiry = &expiry
	return nil
}

func handleSecure(c *Cookie, _ string, _ attributeContext) error {
	c.Secure = true
	return nil
}

func handleExpires(c *Cookie, value string, _ attributeContext) error {
	expiry, err := rfc6265.CookieDate(value)
	if err != nil {
		return fmt.Errorf("%w: %q", ErrDateUnparsable, value)
	}
	c.Expiry = &expiry
	return nil
}

func handleHttpOnly(c *Cookie, _ string, _ attributeContext) error {
	c.HttpOnly = true
	return nil
}

func handleSameSite(c *Cookie, value string, _ attributeContext) error {
	sameSite, ok := ParseSameSite(value)
	if !ok {
		return fmt.Errorf("%w: samesite %q", ErrAttributeDropped, value)
	}
	c.SameSite = sameSite
	return nil
}
