package main

import (
	"fmt"

	"github.com/go-logr/logr"
	"github.com/go-logr/logr/funcr"
	"github.com/henderiw/rangetype/pkg/catalog"
	"github.com/henderiw/rangetype/pkg/subtype/int4"
	"github.com/spf13/cobra"
)

// options is shared by all subcommands and filled in before any of them run.
type options struct {
	typeName  string
	verbosity int

	log logr.Logger
	cat catalog.Catalog
}

func newRootCmd() *cobra.Command {
	o := &options{}
	rootCmd := &cobra.Command{
		Use:          "rangectl",
		Short:        "Parse, encode and compare range values",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return o.complete(cmd)
		},
	}
	rootCmd.PersistentFlags().StringVarP(&o.typeName, "type", "t", int4.Name, "range type name, see 'rangectl types'")
	rootCmd.PersistentFlags().IntVarP(&o.verbosity, "verbosity", "v", 0, "log verbosity")

	rootCmd.AddCommand(
		newParseCmd(o),
		newEncodeCmd(o),
		newDecodeCmd(o),
		newOpCmd(o),
		newSearchCmd(o),
		newTypesCmd(o),
	)
	return rootCmd
}

func (o *options) complete(cmd *cobra.Command) error {
	stderr := cmd.ErrOrStderr()
	o.log = funcr.New(func(prefix, args string) {
		if prefix != "" {
			fmt.Fprintf(stderr, "%s: %s\n", prefix, args)
			return
		}
		fmt.Fprintln(stderr, args)
	}, funcr.Options{Verbosity: o.verbosity})

	cat, err := catalog.Builtin(catalog.WithLogger(o.log.WithName("catalog")))
	if err != nil {
		return err
	}
	o.cat = cat
	return nil
}

// ops returns the operations of the range type selected with --type.
func (o *options) ops() (rangeOps, error) {
	return o.opsByName(o.typeName)
}
