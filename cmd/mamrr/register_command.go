package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

func newRegisterCommand(ctx *commandContext) *cobra.Command {
	var passwordFlag string
	var inviteFlag string

	cmd := &cobra.Command{
		Use:   "register <username>",
		Short: "Create an account using an invite code",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if inviteFlag == "" {
				return errors.New("an invite code is required (--invite)")
			}

			coordinator, err := ctx.ensureCoordinator()
			if err != nil {
				return err
			}

			password := passwordFlag
			if password == "" {
				password, err = promptPassword(cmd, "New password")
				if err != nil {
					return err
				}
			}

			registerErr := coordinator.Register(cmd.Context(), args[0], password, inviteFlag)
			drainNotifications(cmd, coordinator)
			if registerErr != nil {
				return fmt.Errorf("register: %w", registerErr)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&passwordFlag, "password", "p", "", "Password (prompted when omitted)")
	cmd.Flags().StringVarP(&inviteFlag, "invite", "i", "", "Invite code")
	return cmd
}
