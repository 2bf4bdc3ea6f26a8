package main

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/sgsasesora/portfolio"
)

func messagesCommand() *cli.Command {
	return &cli.Command{
		Name:  "messages",
		Usage: "Read the contact form inbox",
		Commands: []*cli.Command{
			{
				Name:  "list",
				Usage: "List received messages, newest first",
				Flags: []cli.Flag{
					&cli.IntFlag{Name: "limit", Usage: "Maximum number of messages to show", Value: 20},
				},
				Action: func(ctx context.Context, c *cli.Command) error {
					return withStore(c, func(s *portfolio.Store) error {
						msgs, err := s.ListMessages(ctx, int(c.Int("limit")))
						if err != nil {
							return err
						}
						if len(msgs) == 0 {
							fmt.Println("No messages.")
							return nil
						}
						for _, m := range msgs {
							fmt.Printf("%s  %s  %s <%s>\n", m.ID, m.CreatedAt.Local().Format("2006-01-02 15:04"), m.Name, m.Email)
							fmt.Printf("    %s\n\n", m.Body)
						}
						return nil
					})
				},
			},
			{
				Name:      "delete",
				Usage:     "Delete a message",
				ArgsUsage: "<id>",
				Action: func(ctx context.Context, c *cli.Command) error {
					id := c.Args().First()
					if id == "" {
						return fmt.Errorf("message id is required")
					}
					return withStore(c, func(s *portfolio.Store) error {
						if err := s.DeleteMessage(ctx, id); err != nil {
							return err
						}
						fmt.Printf("Deleted %s\n", id)
						return nil
					})
				},
			},
		},
	}
}

func withStore(c *cli.Command, fn func(*portfolio.Store) error) error {
	cfg, err := portfolio.LoadConfig(c.String("config"))
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	s, err := portfolio.NewStore(cfg.DatabasePath)
	if err != nil {
		return fmt.Errorf("opening inbox: %w", err)
	}
	defer s.Close()
	return fn(s)
}
