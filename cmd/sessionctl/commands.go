package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/sethvargo/go-retry"
	"github.com/urfave/cli"
	"github.com/zalando/go-keyring"

	"github.com/vaultandowl/sessionkit/pkg/apiclient"
	"github.com/vaultandowl/sessionkit/pkg/config"
	"github.com/vaultandowl/sessionkit/pkg/cookiestore"
	"github.com/vaultandowl/sessionkit/pkg/logger"
	"github.com/vaultandowl/sessionkit/pkg/session"
	"github.com/vaultandowl/sessionkit/pkg/twofactor"
)

func newLogger(c *cli.Context) *slog.Logger {
	opts := []logger.Option{logger.WithFormat(logger.FormatText)}
	if c.GlobalBool("verbose") {
		opts = append(opts, logger.WithLevel(slog.LevelDebug))
	}
	return logger.New(opts...)
}

// buildManager wires the full stack from environment configuration. When
// no password is present in the environment, the system keyring is
// consulted under the account's username.
func buildManager(log *slog.Logger) (*session.Manager, error) {
	var apiCfg apiclient.Config
	if err := config.Load(&apiCfg); err != nil {
		return nil, err
	}
	var sessCfg session.Config
	if err := config.Load(&sessCfg); err != nil {
		return nil, err
	}
	var storeCfg cookiestore.Config
	if err := config.Load(&storeCfg); err != nil {
		return nil, err
	}
	var tfCfg twofactor.Config
	if err := config.Load(&tfCfg); err != nil {
		return nil, err
	}

	if sessCfg.Password == "" {
		secret, err := keyring.Get(appName, sessCfg.Username)
		if err != nil {
			return nil, fmt.Errorf("no password in environment or keyring: %w", err)
		}
		sessCfg.Password = secret
	}

	client, err := apiclient.New(apiCfg)
	if err != nil {
		return nil, err
	}

	store := cookiestore.New(storeCfg, cookiestore.WithLogger(log))

	return session.New(sessCfg, client,
		session.WithStore(store),
		session.WithTwoFactor(tfCfg),
		session.WithLogger(log),
	)
}

func login(c *cli.Context) error {
	log := newLogger(c)
	manager, err := buildManager(log)
	if err != nil {
		return err
	}

	ctx := context.Background()

	// The core never retries; backing off after a rate-limited two-factor
	// call is this caller's decision.
	backoff := retry.WithMaxRetries(uint64(c.Int("max-retries")),
		retry.NewExponential(2*time.Second))

	var sess *session.Session
	err = retry.Do(ctx, backoff, func(ctx context.Context) error {
		s, err := manager.Authenticate(ctx)
		sess = s
		if errors.Is(err, twofactor.ErrRateLimited) {
			log.Warn("rate limited, backing off")
			return retry.RetryableError(err)
		}
		return err
	})

	if err != nil {
		if sess != nil && sess.Authenticated {
			// Logged in, but the jar could not be persisted.
			log.Warn("authenticated, but persisting cookies failed", slog.String("error", err.Error()))
			fmt.Printf("logged in as %s (cookies not persisted)\n", sess.Account)
			return nil
		}
		return err
	}

	if sess.DisplayName != "" {
		fmt.Printf("logged in as %s (%s)\n", sess.DisplayName, sess.Account)
	} else {
		fmt.Printf("logged in as %s\n", sess.Account)
	}
	return nil
}

func status(c *cli.Context) error {
	log := newLogger(c)

	var sessCfg session.Config
	if err := config.Load(&sessCfg); err != nil {
		return err
	}
	var storeCfg cookiestore.Config
	if err := config.Load(&storeCfg); err != nil {
		return err
	}

	store := cookiestore.New(storeCfg, cookiestore.WithLogger(log))

	ok, err := store.Exists(sessCfg.Username)
	switch {
	case errors.Is(err, cookiestore.ErrNotFound):
		fmt.Println("no cookie store")
	case err != nil:
		return err
	case ok:
		fmt.Printf("persisted cookies present for %s\n", sessCfg.Username)
	default:
		fmt.Printf("no persisted cookies for %s\n", sessCfg.Username)
	}
	return nil
}

func logout(c *cli.Context) error {
	log := newLogger(c)
	manager, err := buildManager(log)
	if err != nil {
		return err
	}

	if err := manager.Logout(context.Background()); err != nil {
		return err
	}
	fmt.Println("logged out")
	return nil
}
