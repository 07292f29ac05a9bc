package main

import (
	"github.com/spf13/cobra"
)

func newPopCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "pop",
		Short: "Removes and prints the most recently added snippet",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := a.svc.Pop(cmd.Context())
			if err != nil {
				return a.informational(err)
			}
			return printRecord(a.stdout, s)
		},
	}
}
