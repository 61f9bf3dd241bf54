package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newLoginCommand(ctx *commandContext) *cobra.Command {
	var passwordFlag string

	cmd := &cobra.Command{
		Use:   "login <username>",
		Short: "Authenticate against the index backend",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			coordinator, err := ctx.ensureCoordinator()
			if err != nil {
				return err
			}

			password := passwordFlag
			if password == "" {
				password, err = promptPassword(cmd, "Password")
				if err != nil {
					return err
				}
			}

			loginErr := coordinator.Login(cmd.Context(), args[0], password)
			drainNotifications(cmd, coordinator)
			if loginErr != nil {
				return fmt.Errorf("login: %w", loginErr)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&passwordFlag, "password", "p", "", "Password (prompted when omitted)")
	return cmd
}
