package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/pelletier/go-toml/v2"
	"github.com/urfave/cli/v3"

	"github.com/sgsasesora/portfolio/content"
	"github.com/sgsasesora/portfolio/scaffold"
)

func initCommand() *cli.Command {
	return &cli.Command{
		Name:      "init",
		Usage:     "Write a starter config.toml and profile.toml",
		ArgsUsage: "[dir]",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "name", Usage: "Site name", Value: content.DefaultProfile().Name},
			&cli.StringFlag{Name: "url", Usage: "Public site URL", Value: "http://localhost:3000"},
			&cli.StringFlag{Name: "repository", Usage: "Prismic repository name"},
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			dir := c.Args().First()
			if dir == "" {
				dir = "."
			}
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return err
			}

			created, err := scaffold.Write(dir, scaffold.Data{
				SiteName:      c.String("name"),
				SiteURL:       c.String("url"),
				SessionSecret: strings.ReplaceAll(uuid.NewString()+uuid.NewString(), "-", ""),
				Repository:    c.String("repository"),
			})
			for _, path := range created {
				fmt.Printf("  created %s\n", path)
			}
			if err != nil {
				return err
			}

			profilePath := filepath.Join(dir, "profile.toml")
			if _, err := os.Stat(profilePath); err == nil {
				return fmt.Errorf("%s already exists", profilePath)
			}
			data, err := toml.Marshal(content.DefaultProfile())
			if err != nil {
				return fmt.Errorf("encoding profile: %w", err)
			}
			if err := os.WriteFile(profilePath, data, 0o644); err != nil {
				return err
			}
			fmt.Printf("  created %s\n", profilePath)
			return nil
		},
	}
}
