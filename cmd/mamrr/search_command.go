package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"mamrr/internal/workflow"
)

func newSearchCommand(ctx *commandContext) *cobra.Command {
	var fieldFlag string

	cmd := &cobra.Command{
		Use:   "search <term>...",
		Short: "Search the audiobook index",
		Long: "Search the audiobook index by title, author, series, or narrator.\n" +
			"Series queries may come back grouped; the table layout follows the\n" +
			"shape the backend chose.",
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			coordinator, err := ctx.ensureCoordinator()
			if err != nil {
				return err
			}
			if _, err := coordinator.Restore(cmd.Context()); err != nil {
				return err
			}

			query := workflow.Query{
				Term:  strings.Join(args, " "),
				Field: workflow.ParseField(fieldFlag),
			}
			searchErr := coordinator.Search(cmd.Context(), query)
			drainNotifications(cmd, coordinator)
			if searchErr != nil {
				return fmt.Errorf("search: %w", searchErr)
			}

			view := coordinator.Results()
			if view.Empty() {
				fmt.Fprintln(cmd.OutOrStdout(), "No results")
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderView(view))
			return nil
		},
	}

	fields := make([]string, 0, len(workflow.Fields()))
	for _, field := range workflow.Fields() {
		fields = append(fields, string(field))
	}
	cmd.Flags().StringVarP(&fieldFlag, "field", "f", string(workflow.FieldTitle),
		fmt.Sprintf("Search field (%s)", strings.Join(fields, ", ")))
	return cmd
}
