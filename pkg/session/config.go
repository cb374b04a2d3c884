package session

// Config holds the account credentials used for the fresh login call.
// Password may be left unset in the environment and supplied through
// another channel (flag, system keyring) before the manager is built.
type Config struct {
	Username string `env:"AUTH_USERNAME,required"`
	Password string `env:"AUTH_PASSWORD"`
}
