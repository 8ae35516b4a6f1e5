// Package rfc6265 implements the parts of RFC 6265 (HTTP State Management
// Mechanism) needed to read Set-Cookie attributes leniently.
//
// Each file covers one section of the RFC and quotes it with `§` comments next
// to the code implementing it.
// Where browsers are more lenient than the RFC, the lenient behavior wins and
// the deviation is noted.
package rfc6265

import "errors"

var (
	ErrUnparsableDate = errors.New("unparsable cookie date")
	ErrEmptyDomain    = errors.New("empty domain attribute")
	ErrTrailingDot    = errors.New("domain attribute ends with a dot")
	ErrDeltaSeconds   = errors.New("invalid delta-seconds")
)
