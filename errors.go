package cookiespec

import "errors"

var (
	// ErrMalformedHeaderName is returned when a header given to Parse is not a Set-Cookie header.
	ErrMalformedHeaderName = errors.New("unrecognized cookie header")
	// ErrMissingCookieIdentity is returned when a cookie has no name.
	ErrMissingCookieIdentity = errors.New("cookie name may not be empty")
	// ErrMissingOriginHost is returned when Parse is given an origin without a host.
	ErrMissingOriginHost = errors.New("origin host may not be empty")

	// ErrAttributeDropped is the (non-fatal) result of an attribute handler
	// rejecting its value. The cookie keeps its defaults for that attribute.
	ErrAttributeDropped = errors.New("cookie attribute dropped")
	// ErrDateUnparsable is the (non-fatal) result of an unparsable expires value.
	ErrDateUnparsable = errors.New("unparsable cookie expiry date")
)
