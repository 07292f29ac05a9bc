package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newGetCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "get <id>",
		Short: "Prints the code of a snippet",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			s, err := a.svc.Get(cmd.Context(), id)
			if err != nil {
				return a.informational(err)
			}
			_, err = fmt.Fprintln(a.stdout, s.Code)
			return err
		},
	}
}
