package main

import (
	"github.com/spf13/cobra"

	"snip/internal/core"
)

func newListCmd(a *app) *cobra.Command {
	var tag string
	cmd := &cobra.Command{
		Use:   "list",
		Short: "Lists snippets, optionally filtered by tag substring",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var filter *string
			if cmd.Flags().Changed("tag") {
				filter = core.TagFilter(tag)
			}
			snippets, err := a.svc.List(cmd.Context(), filter)
			if err != nil {
				return err
			}
			for _, s := range snippets {
				if err := printRecord(a.stdout, s); err != nil {
					return err
				}
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&tag, "tag", "t", "", "only snippets with a tag containing this text")
	return cmd
}
