package main

import (
	"context"
	"log"
	"os"

	"github.com/urfave/cli/v3"
)

// version is set at build time via ldflags.
var version = "dev"

func main() {
	app := &cli.Command{
		Name:  "portfolio",
		Usage: "Serve and manage the portfolio site",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Usage:   "Configuration file path",
				Value:   "config.toml",
				Sources: cli.EnvVars("PORTFOLIO_CONFIG"),
			},
		},
		Commands: []*cli.Command{
			serveCommand(),
			initCommand(),
			postsCommand(),
			messagesCommand(),
			versionCommand(),
		},
	}

	if err := app.Run(context.Background(), os.Args); err != nil {
		log.Fatal(err)
	}
}

func versionCommand() *cli.Command {
	return &cli.Command{
		Name:  "version",
		Usage: "Print the version",
		Action: func(ctx context.Context, c *cli.Command) error {
			_, err := os.Stdout.WriteString("portfolio " + version + "\n")
			return err
		},
	}
}
