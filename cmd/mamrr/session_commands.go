package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

func newLogoutCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Discard the current session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			coordinator, err := ctx.ensureCoordinator()
			if err != nil {
				return err
			}
			if _, err := coordinator.Session().Restore(); err != nil {
				return err
			}
			if err := coordinator.Logout(); err != nil {
				return err
			}
			drainNotifications(cmd, coordinator)
			return nil
		},
	}
}

func newWhoamiCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the identity behind the persisted session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			coordinator, err := ctx.ensureCoordinator()
			if err != nil {
				return err
			}

			sess, err := coordinator.Restore(cmd.Context())
			if err != nil {
				return err
			}
			drainNotifications(cmd, coordinator)

			if !sess.Active() {
				fmt.Fprintln(cmd.OutOrStdout(), "Not logged in")
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Logged in as %s\n", sess.Subject)
			if !sess.ExpiresAt.IsZero() {
				fmt.Fprintf(cmd.OutOrStdout(), "Session expires %s\n", sess.ExpiresAt.Local().Format(time.RFC1123))
			}
			return nil
		},
	}
}
