package main

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/urfave/cli/v3"

	"github.com/sgsasesora/portfolio"
	"github.com/sgsasesora/portfolio/prismic"
)

func postsCommand() *cli.Command {
	return &cli.Command{
		Name:  "posts",
		Usage: "Fetch and list blog posts from the CMS",
		Action: func(ctx context.Context, c *cli.Command) error {
			cfg, err := portfolio.LoadConfig(c.String("config"))
			if err != nil {
				return fmt.Errorf("loading config: %w", err)
			}
			if !cfg.Prismic.Enabled() {
				return fmt.Errorf("no prismic repository configured")
			}
			ctx, cancel := context.WithTimeout(ctx, cfg.FetchTimeout.Duration)
			defer cancel()

			client := prismic.NewClient(cfg.Prismic.ClientConfig(), nil)
			posts, err := client.FetchAllPosts(ctx)
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "DATE\tIDENTIFIER\tTITLE")
			for _, p := range posts {
				fmt.Fprintf(w, "%s\t%s\t%s\n", p.PublishDateISO(), p.Identifier(), p.Title())
			}
			if err := w.Flush(); err != nil {
				return err
			}
			fmt.Printf("\n%d posts\n", len(posts))
			return nil
		},
	}
}
