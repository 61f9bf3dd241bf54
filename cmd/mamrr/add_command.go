package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
)

func newAddCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "add <torrent-id> [title]",
		Short: "Send a release to the download agent",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			tid, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("torrent id must be a number, got %q", args[0])
			}
			displayName := strings.Join(args[1:], " ")

			coordinator, err := ctx.ensureCoordinator()
			if err != nil {
				return err
			}
			if _, err := coordinator.Restore(cmd.Context()); err != nil {
				return err
			}

			addErr := coordinator.AddTorrent(cmd.Context(), tid, displayName)
			drainNotifications(cmd, coordinator)
			if addErr != nil {
				return fmt.Errorf("add: %w", addErr)
			}
			return nil
		},
	}
}
