package cookiestore

// Config controls where cookies are persisted and whether persistence is
// active at all.
type Config struct {
	// FilePath locates the JSON store file.
	FilePath string `env:"COOKIE_STORE_FILE" envDefault:"cookies.json"`

	// Persist enables saving cookies between runs. When false, Save and
	// DeleteAll are no-ops and Load reports ErrNotFound.
	Persist bool `env:"COOKIE_STORE_PERSIST" envDefault:"false"`
}
