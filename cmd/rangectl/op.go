package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func newOpCmd(o *options) *cobra.Command {
	return &cobra.Command{
		Use:   "op OPERATION ARG...",
		Short: "Apply an operation to range literals",
		Long: fmt.Sprintf(`Apply an operation to range literals and print the result.

Element arguments of contains-elem and elem-contained-by are plain values.

Operations: %s`, strings.Join(opNames(), ", ")),
		Args: cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ops, err := o.ops()
			if err != nil {
				return err
			}
			s, err := ops.apply(args[0], args[1:])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), s)
			return nil
		},
	}
}
