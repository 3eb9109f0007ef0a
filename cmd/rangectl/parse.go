package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newParseCmd(o *options) *cobra.Command {
	return &cobra.Command{
		Use:   "parse LITERAL...",
		Short: "Parse range literals and print them in canonical form",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ops, err := o.ops()
			if err != nil {
				return err
			}
			for _, a := range args {
				s, err := ops.format(a)
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), s)
			}
			return nil
		},
	}
}
