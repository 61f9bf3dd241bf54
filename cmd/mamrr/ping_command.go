package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"mamrr/internal/services/mamweb"
)

func newPingCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "ping",
		Short: "Check that the index backend is reachable",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			client, err := mamweb.New(cfg.Server.URL,
				mamweb.WithTimeout(time.Duration(cfg.Server.RequestTimeout)*time.Second))
			if err != nil {
				return err
			}

			start := time.Now()
			if err := client.Ping(cmd.Context()); err != nil {
				return fmt.Errorf("ping %s: %w", cfg.Server.URL, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s is up (%s)\n", cfg.Server.URL, time.Since(start).Round(time.Millisecond))
			return nil
		},
	}
}
