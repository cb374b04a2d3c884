package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/vaultandowl/sessionkit/pkg/apiclient"
	"github.com/vaultandowl/sessionkit/pkg/cookiejar"
	"github.com/vaultandowl/sessionkit/pkg/cookiestore"
	"github.com/vaultandowl/sessionkit/pkg/twofactor"
)

// authCookieName is the key of the primary session credential issued by
// the remote API; email code markers are recorded on it.
const authCookieName = "auth"

// Manager drives the authentication state machine for a single account:
// cookie resume, fresh credential login, two-factor challenge resolution
// and persistence of the resulting jar. All steps of one attempt run
// strictly sequentially.
type Manager struct {
	cfg       Config
	client    *apiclient.Client
	store     *cookiestore.Store
	verifier  *twofactor.Verifier
	twoFactor twofactor.Config
	log       *slog.Logger

	session *Session
}

// Option configures a Manager.
type Option func(*Manager)

// WithStore sets the cookie store used for resume and persistence.
func WithStore(store *cookiestore.Store) Option {
	return func(m *Manager) {
		if store != nil {
			m.store = store
		}
	}
}

// WithTwoFactor supplies the out-of-band two-factor credentials.
func WithTwoFactor(cfg twofactor.Config) Option {
	return func(m *Manager) {
		m.twoFactor = cfg
	}
}

// WithVerifier replaces the challenge verifier.
func WithVerifier(v *twofactor.Verifier) Option {
	return func(m *Manager) {
		if v != nil {
			m.verifier = v
		}
	}
}

// WithLogger sets the manager's logger.
func WithLogger(log *slog.Logger) Option {
	return func(m *Manager) {
		if log != nil {
			m.log = log
		}
	}
}

// New creates a manager for the account named in cfg. The client is
// shared with the challenge verifier unless one is provided explicitly.
// Without WithStore the manager runs with persistence disabled.
func New(cfg Config, client *apiclient.Client, opts ...Option) (*Manager, error) {
	if client == nil {
		return nil, errors.New("session: nil api client")
	}
	if cfg.Username == "" || cfg.Password == "" {
		return nil, ErrMissingCredentials
	}

	m := &Manager{
		cfg:    cfg,
		client: client,
		store:  cookiestore.New(cookiestore.Config{Persist: false}),
		log:    slog.Default(),
	}
	for _, opt := range opts {
		opt(m)
	}
	if m.verifier == nil {
		m.verifier = twofactor.NewVerifier(client, twofactor.WithLogger(m.log))
	}
	return m, nil
}

// Session returns the result of the most recent Authenticate call.
func (m *Manager) Session() *Session {
	return m.session
}

// CookieHeader formats the current session's credentials as a Cookie
// request header.
func (m *Manager) CookieHeader() string {
	return m.session.CookieHeader()
}

// loginResponse is the subset of the credential endpoint's body the state
// machine interprets.
type loginResponse struct {
	DisplayName           string   `json:"displayName"`
	RequiresTwoFactorAuth []string `json:"requiresTwoFactorAuth"`
}

// Authenticate runs one full authentication attempt: resume persisted
// cookies when available, issue the credential-bearing login call, and
// resolve a two-factor challenge if the server demands one.
//
// Resume failures never abort the attempt; they downgrade to "no usable
// cookies". Resolver failures propagate unchanged. A persistence failure
// after a successful login is returned alongside the authenticated
// session rather than rolling it back; callers may inspect the session's
// state to proceed in-memory.
func (m *Manager) Authenticate(ctx context.Context) (*Session, error) {
	sess := &Session{
		Account: m.cfg.Username,
		State:   StateUnauthenticated,
		Jar:     cookiejar.New(),
	}
	m.session = sess

	m.resume(sess)

	// Resumed cookies ride along, but the credential call is always made:
	// resumption alone never proves the session is still valid server-side.
	resp, err := m.client.Do(ctx, http.MethodGet, "/auth/user", nil,
		apiclient.WithBasicAuth(m.cfg.Username, m.cfg.Password),
		apiclient.WithCookieHeader(sess.Jar.Header()),
	)
	if err != nil {
		sess.State = StateFailed
		return sess, err
	}

	// Cookies on the credential response are merged and persisted before
	// the outcome is interpreted, whatever the challenge result.
	var persistErr error
	if len(resp.Cookies) > 0 {
		persistErr = m.store.Merge(sess.Jar, resp.Cookies, sess.Account)
	}

	if !resp.OK() {
		sess.State = StateFailed
		reqErr := &RequestError{Status: resp.Status, Message: string(resp.Body)}
		if resp.Status == http.StatusUnauthorized || strings.Contains(reqErr.Message, "401") {
			return sess, errors.Join(ErrInvalidCredentials, reqErr)
		}
		return sess, reqErr
	}

	var body loginResponse
	if err := json.Unmarshal(resp.Body, &body); err != nil {
		sess.State = StateFailed
		m.log.ErrorContext(ctx, "unparsable login response",
			slog.Int("status", resp.Status),
			slog.String("error", err.Error()),
		)
		return sess, errors.Join(ErrUnknown, err)
	}

	switch {
	case body.DisplayName != "":
		sess.DisplayName = body.DisplayName
		sess.State = StateAuthenticated
		sess.Authenticated = true
		m.log.InfoContext(ctx, "authenticated",
			slog.String("account", sess.Account),
			slog.String("displayName", sess.DisplayName),
		)

	case len(body.RequiresTwoFactorAuth) > 0:
		sess.State = StateChallengePending
		challenge := twofactor.Challenge{Kinds: body.RequiresTwoFactorAuth}

		challengePersistErr, err := m.resolveChallenge(ctx, sess, challenge)
		if err != nil {
			sess.State = StateFailed
			return sess, err
		}
		if challengePersistErr != nil {
			persistErr = challengePersistErr
		}

		sess.State = StateAuthenticated
		sess.Authenticated = true
		m.log.InfoContext(ctx, "authenticated after two-factor challenge",
			slog.String("account", sess.Account),
		)

	default:
		sess.State = StateFailed
		m.log.ErrorContext(ctx, "login response carried neither display name nor challenge",
			slog.Int("status", resp.Status),
			slog.Int("bodyBytes", len(resp.Body)),
		)
		return sess, errors.Join(ErrUnknown,
			fmt.Errorf("status %d with uninterpretable body", resp.Status))
	}

	if persistErr != nil {
		// Authenticated in memory; the write failure is surfaced for
		// visibility, not silently dropped.
		return sess, persistErr
	}
	return sess, nil
}

// resume loads persisted cookies into the session. Any load failure
// downgrades to an empty jar; only a read error on a present store file
// is worth a warning.
func (m *Manager) resume(sess *Session) {
	jar, err := m.store.Load(sess.Account)
	switch {
	case err == nil:
		sess.Jar = jar
		m.log.Debug("resumed persisted cookies",
			slog.String("account", sess.Account),
			slog.Int("count", jar.Len()),
		)
	case errors.Is(err, cookiestore.ErrRead):
		m.log.Warn("cookie store unreadable, continuing without resume",
			slog.String("error", err.Error()),
		)
	default:
		m.log.Debug("no usable persisted cookies",
			slog.String("reason", err.Error()),
		)
	}
}

// resolveChallenge selects a strategy for the challenge, posts the code
// and merges the returned cookies. The first return value is a
// persistence failure (non-fatal); the second a resolver failure
// (propagated unchanged to the Authenticate caller).
func (m *Manager) resolveChallenge(ctx context.Context, sess *Session, ch twofactor.Challenge) (persistErr, fatalErr error) {
	resolver, err := twofactor.Select(ch, m.twoFactor, sess.Jar)
	if err != nil {
		return nil, err
	}

	m.log.DebugContext(ctx, "resolving two-factor challenge",
		slog.String("kind", resolver.Kind()),
	)

	result, err := m.verifier.Resolve(ctx, resolver, sess.Jar.Header())
	if err != nil {
		return nil, err
	}

	sess.Jar.Merge(result.Cookies...)
	if resolver.Kind() == twofactor.KindEmailOTP {
		if !sess.Jar.SetLastEmailCode(authCookieName, result.Code) {
			// Without the marker a later run cannot detect that this code
			// was already consumed.
			m.log.WarnContext(ctx, "session cookie absent, used email code not recorded",
				slog.String("cookie", authCookieName),
			)
		}
	}

	return m.store.Save(sess.Jar, sess.Account), nil
}

// Logout invalidates the session server-side, then wipes the persisted
// jar and resets the in-memory session.
func (m *Manager) Logout(ctx context.Context) error {
	header := m.session.CookieHeader()
	if header == "" {
		// Without a live session, fall back to persisted cookies so a
		// standalone logout still reaches the server with credentials.
		if jar, err := m.store.Load(m.cfg.Username); err == nil {
			header = jar.Header()
		}
	}

	resp, err := m.client.Do(ctx, http.MethodPut, "/logout", nil,
		apiclient.WithCookieHeader(header),
	)
	if err != nil {
		return err
	}
	if !resp.OK() {
		return &RequestError{Status: resp.Status, Message: string(resp.Body)}
	}

	if m.session != nil {
		m.session.Jar.Clear()
		m.session.Authenticated = false
		m.session.DisplayName = ""
		m.session.State = StateUnauthenticated
	}

	return m.store.DeleteAll(m.cfg.Username)
}
