package cookiestore

import (
	"encoding/json"
	"errors"
	"io/fs"
	"log/slog"
	"sync"
	"time"

	"github.com/spf13/afero"

	"github.com/vaultandowl/sessionkit/pkg/cookiejar"
)

// Store owns the persisted mapping of account name to cookie jar.
type Store struct {
	fs      afero.Fs
	path    string
	persist bool
	log     *slog.Logger

	mu          sync.Mutex
	createdOnce sync.Once
}

// Option configures a Store.
type Option func(*Store)

// WithFs sets the backing filesystem. Defaults to the OS filesystem;
// tests use afero.NewMemMapFs().
func WithFs(fsys afero.Fs) Option {
	return func(s *Store) {
		if fsys != nil {
			s.fs = fsys
		}
	}
}

// WithLogger sets the logger used for store notifications.
func WithLogger(log *slog.Logger) Option {
	return func(s *Store) {
		if log != nil {
			s.log = log
		}
	}
}

// New creates a store for the file named in cfg.
func New(cfg Config, opts ...Option) *Store {
	s := &Store{
		fs:      afero.NewOsFs(),
		path:    cfg.FilePath,
		persist: cfg.Persist,
		log:     slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Load reads the persisted jar for the given account.
//
// It fails with ErrNotFound when the store file is absent (or persistence
// is disabled), ErrRead when the file exists but cannot be parsed,
// ErrUserNotFound when the account has no cookies, and ErrExpired when any
// persisted cookie has already expired. Expiry is all-or-nothing: a jar
// with one expired cookie is unusable as a whole.
func (s *Store) Load(account string) (*cookiejar.Jar, error) {
	if !s.persist {
		return nil, ErrNotFound
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	accounts, err := s.read()
	if err != nil {
		return nil, err
	}

	cookies, ok := accounts[account]
	if !ok || len(cookies) == 0 {
		return nil, ErrUserNotFound
	}

	jar := cookiejar.New(cookies...)
	if jar.AnyExpired(time.Now()) {
		return nil, ErrExpired
	}

	return jar, nil
}

// Save writes the jar as the account's entry, preserving entries for all
// other accounts in the file. It is a no-op when persistence is disabled.
// The store file is created as an empty mapping on first use.
func (s *Store) Save(jar *cookiejar.Jar, account string) error {
	if !s.persist {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	accounts, err := s.read()
	if err != nil {
		if !errors.Is(err, ErrNotFound) {
			return err
		}
		accounts = map[string][]cookiejar.Cookie{}
		s.createdOnce.Do(func() {
			s.log.Info("cookie store created", slog.String("path", s.path))
		})
	}

	accounts[account] = jar.Cookies()
	return s.write(accounts)
}

// Merge applies the new cookies to the jar by key, preserving prior email
// code markers, then saves the result for the account.
func (s *Store) Merge(jar *cookiejar.Jar, newCookies []cookiejar.Cookie, account string) error {
	jar.Merge(newCookies...)
	return s.Save(jar, account)
}

// Exists reports whether the account has at least one persisted cookie.
// A missing store file is reported as ErrNotFound so callers can tell
// "store missing" apart from "store present but empty for this account".
func (s *Store) Exists(account string) (bool, error) {
	if !s.persist {
		return false, ErrNotFound
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	accounts, err := s.read()
	if err != nil {
		return false, err
	}

	return len(accounts[account]) > 0, nil
}

// DeleteAll empties the account's jar in the store, used on logout.
func (s *Store) DeleteAll(account string) error {
	if !s.persist {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	accounts, err := s.read()
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil
		}
		return err
	}

	accounts[account] = []cookiejar.Cookie{}
	return s.write(accounts)
}

// read loads and parses the whole store file. Callers hold s.mu.
func (s *Store) read() (map[string][]cookiejar.Cookie, error) {
	data, err := afero.ReadFile(s.fs, s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, ErrNotFound
		}
		return nil, errors.Join(ErrRead, err)
	}

	// A present-but-empty file is an empty mapping, not a parse failure.
	if len(data) == 0 {
		return map[string][]cookiejar.Cookie{}, nil
	}

	var accounts map[string][]cookiejar.Cookie
	if err := json.Unmarshal(data, &accounts); err != nil {
		return nil, errors.Join(ErrRead, err)
	}
	if accounts == nil {
		accounts = map[string][]cookiejar.Cookie{}
	}

	return accounts, nil
}

// write rewrites the whole store file atomically. Callers hold s.mu.
func (s *Store) write(accounts map[string][]cookiejar.Cookie) error {
	data, err := json.MarshalIndent(accounts, "", "  ")
	if err != nil {
		return errors.Join(ErrWrite, err)
	}

	tmp := s.path + ".tmp"
	if err := afero.WriteFile(s.fs, tmp, data, 0o600); err != nil {
		return errors.Join(ErrWrite, err)
	}
	if err := s.fs.Rename(tmp, s.path); err != nil {
		return errors.Join(ErrWrite, err)
	}

	return nil
}
