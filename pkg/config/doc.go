// Package config loads environment-backed configuration structs.
//
// Configuration is declared as plain structs with `env` tags and parsed via
// caarlos0/env. A .env file in the working directory is loaded once per
// process before the first parse, so local development does not require
// exporting variables manually.
//
// Example:
//
//	type StoreConfig struct {
//		FilePath string `env:"COOKIE_STORE_FILE" envDefault:"cookies.json"`
//		Persist  bool   `env:"COOKIE_STORE_PERSIST" envDefault:"false"`
//	}
//
//	var cfg StoreConfig
//	if err := config.Load(&cfg); err != nil {
//		// handle error
//	}
//
// Each unique struct type is parsed once and cached; later calls for the
// same type return the cached value, keeping configuration stable for the
// lifetime of the process.
package config
