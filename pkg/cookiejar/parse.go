package cookiejar

import (
	"net/http"
	"strings"
	"time"
)

// ParseSetCookie parses a single Set-Cookie header value. The first
// key=value pair is the cookie identity; the remaining segments are
// attributes, of which Expires, Path and Domain are recognized and the
// rest (HttpOnly, Secure, Max-Age, SameSite, ...) are ignored.
//
// A cookie without a parseable Expires attribute is session-scoped: its
// expiry defaults to the parse time, so it is usable for the current run
// but never safe to persist.
func ParseSetCookie(raw string) (Cookie, error) {
	segments := strings.Split(raw, ";")

	key, value, ok := splitPair(segments[0])
	if !ok || key == "" {
		return Cookie{}, ErrMalformedSetCookie
	}

	now := time.Now()
	c := Cookie{
		Key:          key,
		Value:        value,
		Expires:      now,
		HostOnly:     true,
		Creation:     now,
		LastAccessed: now,
	}

	for _, seg := range segments[1:] {
		attr, attrValue, _ := splitPair(seg)
		switch strings.ToLower(attr) {
		case "expires":
			if t, err := http.ParseTime(attrValue); err == nil {
				c.Expires = t
			}
		case "path":
			c.Path = attrValue
		case "domain":
			// A Domain attribute widens the cookie beyond its origin host.
			if attrValue != "" {
				c.HostOnly = false
			}
		}
	}

	return c, nil
}

// ParseSetCookies parses every Set-Cookie header value from a response,
// in order. Malformed headers fail the whole parse; a jar mixing parsed
// and dropped credentials would be unsafe to reuse.
func ParseSetCookies(headers []string) ([]Cookie, error) {
	cookies := make([]Cookie, 0, len(headers))
	for _, raw := range headers {
		c, err := ParseSetCookie(raw)
		if err != nil {
			return nil, err
		}
		cookies = append(cookies, c)
	}
	return cookies, nil
}

func splitPair(segment string) (key, value string, ok bool) {
	segment = strings.TrimSpace(segment)
	if segment == "" {
		return "", "", false
	}
	key, value, found := strings.Cut(segment, "=")
	if !found {
		return strings.TrimSpace(key), "", false
	}
	return strings.TrimSpace(key), strings.TrimSpace(value), true
}
