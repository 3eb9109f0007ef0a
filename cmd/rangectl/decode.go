package main

import (
	"encoding/hex"
	"fmt"
	"io"
	"strings"

	"github.com/henderiw/rangetype/pkg/rangetype"
	"github.com/spf13/cobra"
)

func newDecodeCmd(o *options) *cobra.Command {
	var raw bool
	cmd := &cobra.Command{
		Use:   "decode [HEX]",
		Short: "Decode a binary range value",
		Long: `Decode a binary range value. The range type is taken from the value,
--type is ignored. Without an argument the value is read from stdin.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var (
				in  []byte
				err error
			)
			switch {
			case len(args) == 1:
				in = []byte(args[0])
			default:
				in, err = io.ReadAll(cmd.InOrStdin())
				if err != nil {
					return err
				}
			}
			b := in
			if !raw {
				b, err = hex.DecodeString(strings.TrimSpace(string(in)))
				if err != nil {
					return fmt.Errorf("%w: %w", rangetype.ErrMalformed, err)
				}
			}

			id, err := rangetype.PeekTypeID(b)
			if err != nil {
				return err
			}
			o.log.V(1).Info("decode", "typeID", id, "len", len(b))
			ops, err := o.opsByID(id)
			if err != nil {
				return err
			}
			s, err := ops.decode(b)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), s)
			return nil
		},
	}
	cmd.Flags().BoolVar(&raw, "raw", false, "read raw bytes instead of hex")
	return cmd
}
