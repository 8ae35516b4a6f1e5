package cookiespec

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// LocalFilesystemDomain is the domain given to cookies set by file: URLs.
const LocalFilesystemDomain = "LOCAL_FILESYSTEM"

// Cookie is a single cookie read from a Set-Cookie header.
//
// Domain and Path are always set after parsing; they default to values derived
// from the Origin when the header omits them. Attributes holds every attribute
// of the header under its lower-case name, including unknown ones.
type Cookie struct {
	Name       string            `json:"name" yaml:"name"`
	Value      string            `json:"value" yaml:"value"`
	Domain     string            `json:"domain" yaml:"domain"`
	Path       string            `json:"path" yaml:"path"`
	Expiry     *time.Time        `json:"expiry,omitempty" yaml:"expiry,omitempty"`
	MaxAge     *int              `json:"maxAge,omitempty" yaml:"maxAge,omitempty"`
	Secure     bool              `json:"secure,omitempty" yaml:"secure,omitempty"`
	HttpOnly   bool              `json:"httpOnly,omitempty" yaml:"httpOnly,omitempty"`
	SameSite   SameSite          `json:"sameSite,omitempty" yaml:"sameSite,omitempty"`
	Attributes map[string]string `json:"attributes,omitempty" yaml:"attributes,omitempty"`
}

// IsExpired reports whether the cookie has an expiry at or before now.
// Cookies without an expiry are session cookies and never expire here.
func (c Cookie) IsExpired(now time.Time) bool {
	return c.Expiry != nil && !c.Expiry.After(now)
}

// Attribute returns the raw value of the named attribute, along with a boolean
// indicating whether the attribute was present.
func (c Cookie) Attribute(name string) (string, bool) {
	val, ok := c.Attributes[strings.ToLower(name)]
	return val, ok
}

func (c Cookie) String() string {
	return fmt.Sprintf("[name: %s][value: %s][domain: %s][path: %s][expiry: %v]",
		c.Name, c.Value, c.Domain, c.Path, c.Expiry)
}

// SameSite is the value of the SameSite attribute.
type SameSite int

const (
	SameSiteUnspecified SameSite = iota
	SameSiteStrict
	SameSiteLax
	SameSiteNone
)

// ParseSameSite matches s case-insensitively against Strict, Lax and None.
func ParseSameSite(s string) (SameSite, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "strict":
		return SameSiteStrict, true
	case "lax":
		return SameSiteLax, true
	case "none":
		return SameSiteNone, true
	}
	return SameSiteUnspecified, false
}

func (s SameSite) String() string {
	switch s {
	case SameSiteStrict:
		return "Strict"
	case SameSiteLax:
		return "Lax"
	case SameSiteNone:
		return "None"
	}
	return ""
}

func (s SameSite) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

func (s *SameSite) UnmarshalText(text []byte) error {
	if len(text) == 0 {
		*s = SameSiteUnspecified
		return nil
	}
	ss, ok := ParseSameSite(string(text))
	if !ok {
		return fmt.Errorf("invalid SameSite value: %q", text)
	}
	*s = ss
	return nil
}

// Origin describes the request/response exchange a header belongs to.
// Host is required; it is the default domain of parsed cookies.
type Origin struct {
	Host   string `json:"host" yaml:"host"`
	Port   int    `json:"port" yaml:"port"`
	Path   string `json:"path" yaml:"path"`
	Secure bool   `json:"secure" yaml:"secure"`
}

// OriginFromURL returns the origin of an exchange with the given URL.
// file: URLs get LocalFilesystemDomain as host.
func OriginFromURL(u *url.URL) Origin {
	origin := Origin{
		Host:   strings.ToLower(u.Hostname()),
		Path:   u.EscapedPath(),
		Secure: u.Scheme == "https" || u.Scheme == "wss",
	}
	if u.Scheme == "file" {
		origin.Host = LocalFilesystemDomain
	}
	if port, err := strconv.Atoi(u.Port()); err == nil {
		origin.Port = port
	} else if origin.Secure {
		origin.Port = 443
	} else if u.Scheme == "http" || u.Scheme == "ws" {
		origin.Port = 80
	}
	if origin.Path == "" {
		origin.Path = "/"
	}
	return origin
}
