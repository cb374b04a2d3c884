package cookiejar

import (
	"strings"
	"time"
)

// Jar is an ordered collection of cookies for one account, at most one
// cookie per key. A Jar is owned by a single session and is not safe for
// concurrent use.
type Jar struct {
	cookies []Cookie
}

// New creates a jar holding the given cookies, applying replace-by-key
// semantics in input order.
func New(cookies ...Cookie) *Jar {
	j := &Jar{}
	j.Merge(cookies...)
	return j
}

// Set inserts or replaces a cookie by key. When the incoming cookie does
// not carry a LastEmailCodeUsed marker, the marker of the replaced cookie
// is preserved.
func (j *Jar) Set(c Cookie) {
	for i, existing := range j.cookies {
		if existing.Key != c.Key {
			continue
		}
		if c.LastEmailCodeUsed == "" {
			c.LastEmailCodeUsed = existing.LastEmailCodeUsed
		}
		j.cookies[i] = c
		return
	}
	j.cookies = append(j.cookies, c)
}

// Merge applies Set for each cookie in order.
func (j *Jar) Merge(cookies ...Cookie) {
	for _, c := range cookies {
		j.Set(c)
	}
}

// Get returns the cookie with the given key.
func (j *Jar) Get(key string) (Cookie, bool) {
	for _, c := range j.cookies {
		if c.Key == key {
			return c, true
		}
	}
	return Cookie{}, false
}

// SetLastEmailCode records the email OTP consumed on the cookie with the
// given key. It reports whether the cookie was found.
func (j *Jar) SetLastEmailCode(key, code string) bool {
	for i := range j.cookies {
		if j.cookies[i].Key == key {
			j.cookies[i].LastEmailCodeUsed = code
			return true
		}
	}
	return false
}

// Cookies returns a copy of the jar's contents in insertion order.
func (j *Jar) Cookies() []Cookie {
	out := make([]Cookie, len(j.cookies))
	copy(out, j.cookies)
	return out
}

// Len returns the number of cookies held.
func (j *Jar) Len() int {
	return len(j.cookies)
}

// Clear empties the jar.
func (j *Jar) Clear() {
	j.cookies = nil
}

// AnyExpired reports whether at least one cookie is expired at now.
func (j *Jar) AnyExpired(now time.Time) bool {
	for _, c := range j.cookies {
		if c.Expired(now) {
			return true
		}
	}
	return false
}

// Header formats the jar as a Cookie request header value.
func (j *Jar) Header() string {
	if len(j.cookies) == 0 {
		return ""
	}
	pairs := make([]string, 0, len(j.cookies))
	for _, c := range j.cookies {
		pairs = append(pairs, c.Key+"="+c.Value)
	}
	return strings.Join(pairs, "; ")
}
