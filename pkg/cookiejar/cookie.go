package cookiejar

import "time"

// Cookie is a single session credential as issued by the remote API.
// Identity is the Key; Value and LastEmailCodeUsed are the only fields
// mutated after creation. The JSON shape matches the persisted store file.
type Cookie struct {
	Key          string    `json:"key"`
	Value        string    `json:"value"`
	Expires      time.Time `json:"expires"`
	Path         string    `json:"path"`
	HostOnly     bool      `json:"hostOnly"`
	Creation     time.Time `json:"creation"`
	LastAccessed time.Time `json:"lastAccessed"`

	// LastEmailCodeUsed records the email OTP that was consumed while this
	// cookie was current, so a stale configured code can be detected before
	// it is sent again.
	LastEmailCodeUsed string `json:"lastEmailCodeUsed,omitempty"`
}

// Expired reports whether the cookie is expired at the given instant.
// Expiry is evaluated lazily at load and use time, never purged eagerly.
func (c Cookie) Expired(now time.Time) bool {
	return !c.Expires.After(now)
}
