package main

import (
	"github.com/spf13/cobra"
)

func newRemoveCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "remove <id>",
		Aliases: []string{"rm"},
		Short:   "Removes a snippet by id and prints it",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			s, err := a.svc.Remove(cmd.Context(), id)
			if err != nil {
				return a.informational(err)
			}
			return printRecord(a.stdout, s)
		},
	}
}
