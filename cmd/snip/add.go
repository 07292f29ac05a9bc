package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"snip/internal/core"
)

func newAddCmd(a *app) *cobra.Command {
	var (
		lang string
		tags []string
	)
	cmd := &cobra.Command{
		Use:   "add <code>",
		Short: "Adds a new snippet",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			created, err := a.svc.Add(cmd.Context(), core.AddRequest{
				Code:     args[0],
				Language: lang,
				Tags:     tags,
			})
			if err != nil {
				return err
			}
			_, err = fmt.Fprintf(a.stdout, "Added snippet %d\n", created.ID)
			return err
		},
	}
	cmd.Flags().StringVarP(&lang, "lang", "l", "", "language of the snippet")
	cmd.Flags().StringArrayVarP(&tags, "tags", "t", nil, "tag for the snippet (repeatable, kept verbatim)")
	_ = cmd.MarkFlagRequired("lang")
	return cmd
}
