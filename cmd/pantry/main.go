package main

import (
	"context"
	"fmt"
	"os"

	"github.com/aussiebroadwan/pantry/internal/pantry/app"
	"github.com/urfave/cli/v3"
)

func main() {
	if err := newRootCommand().Run(context.Background(), os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "pantry: %v\n", err)
		os.Exit(1)
	}
}

func newRootCommand() *cli.Command {
	return &cli.Command{
		Name:    "pantry",
		Usage:   "Recipe and ingredient tracker API",
		Version: app.BuildVersion,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to TOML configuration file",
				Sources: cli.EnvVars("PANTRY_CONFIG_FILE"),
			},
		},
		Commands: []*cli.Command{
			serveCommand(),
			migrateCommand(),
			waitForDBCommand(),
			createSuperuserCommand(),
		},
		Action: serve,
	}
}
