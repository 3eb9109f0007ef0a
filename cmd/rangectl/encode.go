package main

import (
	"encoding/hex"
	"fmt"

	"github.com/spf13/cobra"
)

func newEncodeCmd(o *options) *cobra.Command {
	var raw bool
	cmd := &cobra.Command{
		Use:   "encode LITERAL",
		Short: "Print the binary encoding of a range literal",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ops, err := o.ops()
			if err != nil {
				return err
			}
			b, err := ops.encode(args[0])
			if err != nil {
				return err
			}
			if raw {
				_, err := cmd.OutOrStdout().Write(b)
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), hex.EncodeToString(b))
			return nil
		},
	}
	cmd.Flags().BoolVar(&raw, "raw", false, "write raw bytes instead of hex")
	return cmd
}
