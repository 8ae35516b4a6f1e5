package rfc6265

import "strings"

// §  5.1.4.  Paths and Path-Match
// §
// §     The user agent MUST use an algorithm equivalent to the following
// §     algorithm to compute the default-path of a cookie:
// §
// §     1.  Let uri-path be the path portion of the request-uri if such a
// §         portion exists (and empty otherwise).
// §
// §     2.  If the uri-path is empty or if the first character of the uri-
// §         path is not a %x2F ("/") character, output %x2F ("/") and skip
// §         the remaining steps.
// §
// §     3.  If the uri-path contains no more than one %x2F ("/") character,
// §         output %x2F ("/") and skip the remaining step.
// §
// §     4.  Output the characters of the uri-path from the first character up
// §         to, but not including, the right-most %x2F ("/").
func DefaultPath(uriPath string) string {
	if uriPath == "" || uriPath[0] != '/' {
		return "/"
	}
	i := strings.LastIndexByte(uriPath, '/')
	if i == 0 {
		return "/"
	}
	return uriPath[:i]
}

// §     A request-path path-matches a given cookie-path if at least one of
// §     the following conditions holds:
// §
// §     o  The cookie-path and the request-path are identical.
// §
// §     o  The cookie-path is a prefix of the request-path, and the last
// §        character of the cookie-path is %x2F ("/").
// §
// §     o  The cookie-path is a prefix of the request-path, and the first
// §        character of the request-path that is not included in the cookie-
// §        path is a %x2F ("/") character.
//
// A trailing slash on the cookie-path is ignored, so "/a/" matches "/a".
func PathMatch(requestPath, cookiePath string) bool {
	if cookiePath == "" {
		cookiePath = "/"
	}
	if len(cookiePath) > 1 && strings.HasSuffix(cookiePath, "/") {
		cookiePath = cookiePath[:len(cookiePath)-1]
	}
	if !strings.HasPrefix(requestPath, cookiePath) {
		return false
	}
	return cookiePath == "/" ||
		len(requestPath) == len(cookiePath) ||
		requestPath[len(cookiePath)] == '/'
}
