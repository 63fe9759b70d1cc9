package main

import (
	"context"
	"fmt"
	"os"

	"github.com/aussiebroadwan/pantry/internal/pantry/app"
	"github.com/urfave/cli/v3"
)

func serveCommand() *cli.Command {
	return &cli.Command{
		Name:   "serve",
		Usage:  "Run the HTTP service (default)",
		Action: serve,
	}
}

func migrateCommand() *cli.Command {
	return &cli.Command{
		Name:   "migrate",
		Usage:  "Apply database migrations and exit",
		Action: migrate,
	}
}

func waitForDBCommand() *cli.Command {
	return &cli.Command{
		Name:   "wait-for-db",
		Usage:  "Block until the database answers, or fail after DB_WAIT_TIMEOUT",
		Action: waitForDB,
	}
}

func createSuperuserCommand() *cli.Command {
	return &cli.Command{
		Name:  "createsuperuser",
		Usage: "Create a staff account with every permission",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "email",
				Usage:    "Login email of the new account",
				Required: true,
			},
			&cli.StringFlag{
				Name:     "name",
				Usage:    "Display name",
				Required: true,
			},
			&cli.StringFlag{
				Name:     "password",
				Usage:    "Password of the new account",
				Sources:  cli.EnvVars("PANTRY_SUPERUSER_PASSWORD"),
				Required: true,
			},
		},
		Action: createSuperuser,
	}
}

// loadConfig honours --config before reading the layered configuration.
func loadConfig(cmd *cli.Command) (app.Config, error) {
	if path := cmd.String("config"); path != "" {
		if err := os.Setenv("PANTRY_CONFIG_FILE", path); err != nil {
			return app.Config{}, err
		}
	}
	return app.LoadConfig()
}

func serve(ctx context.Context, cmd *cli.Command) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	application, err := app.New(cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize application: %w", err)
	}
	return application.Run(ctx)
}

func migrate(_ context.Context, cmd *cli.Command) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	// New applies migrations as part of start up.
	application, err := app.New(cfg)
	if err != nil {
		return err
	}
	return application.Close()
}

func waitForDB(ctx context.Context, cmd *cli.Command) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	return app.WaitForDB(ctx, cfg, app.NewLogger(cfg))
}

func createSuperuser(ctx context.Context, cmd *cli.Command) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	application, err := app.New(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = application.Close() }()

	u, err := application.CreateSuperuser(ctx, cmd.String("email"), cmd.String("name"), cmd.String("password"))
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.Root().Writer, "Superuser %s created.\n", u.Email)
	return nil
}
