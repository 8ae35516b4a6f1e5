package rfc6265

import "strings"

// §  5.2.3.  The Domain Attribute
// §
// §     If the attribute-name case-insensitively matches the string "Domain",
// §     the user agent MUST process the cookie-av as follows.
// §
// §     If the attribute-value is empty, the behavior is undefined.  However,
// §     the user agent SHOULD ignore the cookie-av entirely.
// §
// §     If the first character of the attribute-value string is %x2E ("."):
// §
// §        Let cookie-domain be the attribute-value without the leading %x2E
// §        (".") character.
// §
// §     Otherwise:
// §
// §        Let cookie-domain be the entire attribute-value.
// §
// §     Convert the cookie-domain to lower case.
//
// Values ending with a dot are ignored as well, matching browsers.
func CookieDomain(value string) (string, error) {
	value = strings.TrimSpace(value)
	if strings.HasSuffix(value, ".") {
		return "", ErrTrailingDot
	}
	domain := strings.ToLower(strings.TrimPrefix(value, "."))
	if domain == "" {
		return "", ErrEmptyDomain
	}
	return domain, nil
}
