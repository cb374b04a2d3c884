package main

import (
	"fmt"
	"os"

	"github.com/urfave/cli"
)

const appName = "sessionctl"

var version = "dev"

func main() {
	app := cli.NewApp()
	app.Name = appName
	app.Usage = "authenticate against the session API and manage persisted cookies"
	app.Version = version
	app.Flags = []cli.Flag{
		cli.BoolFlag{
			Name:  "verbose, v",
			Usage: "enable debug logging",
		},
	}
	app.Commands = []cli.Command{
		{
			Name:   "login",
			Usage:  "resume or establish an authenticated session",
			Action: login,
			Flags: []cli.Flag{
				cli.IntFlag{
					Name:  "max-retries",
					Usage: "retry attempts after a rate-limited two-factor call",
					Value: 3,
				},
			},
		},
		{
			Name:   "status",
			Usage:  "report whether persisted cookies exist for the account",
			Action: status,
		},
		{
			Name:   "logout",
			Usage:  "invalidate the session and wipe persisted cookies",
			Action: logout,
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", appName, err)
		os.Exit(1)
	}
}
