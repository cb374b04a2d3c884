package session

import "github.com/vaultandowl/sessionkit/pkg/cookiejar"

// State is the position of an authentication attempt in its lifecycle.
// Authenticated and Failed are terminal for a single run; every run
// starts over at Unauthenticated.
type State string

const (
	StateUnauthenticated  State = "unauthenticated"
	StateChallengePending State = "challenge_pending"
	StateAuthenticated    State = "authenticated"
	StateFailed           State = "failed"
)

// Session is the per-run authentication outcome. It is created once per
// Authenticate call and mutated only by the Manager; only its jar is ever
// persisted.
type Session struct {
	Account       string
	DisplayName   string
	Authenticated bool
	State         State
	Jar           *cookiejar.Jar
}

// CookieHeader formats the session's jar as a Cookie request header for
// callers issuing further API requests.
func (s *Session) CookieHeader() string {
	if s == nil || s.Jar == nil {
		return ""
	}
	return s.Jar.Header()
}
