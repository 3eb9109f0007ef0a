package main

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/henderiw/rangetype/pkg/gist"
	"github.com/henderiw/rangetype/pkg/rangeindex"
	"github.com/spf13/cobra"
)

func newSearchCmd(o *options) *cobra.Command {
	var maxEntries int
	cmd := &cobra.Command{
		Use:   "search STRATEGY QUERY [KEY...]",
		Short: "Index range literals and print the ones matching a query",
		Long: `Index range literals and print the ones matching a query. Keys are read
from stdin, one per line, when none are given.

Strategies: ` + strategyNames(),
		Args: cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := gist.ParseStrategy(args[0])
			if err != nil {
				return err
			}
			keys := args[2:]
			if len(keys) == 0 {
				sc := bufio.NewScanner(cmd.InOrStdin())
				for sc.Scan() {
					if line := strings.TrimSpace(sc.Text()); line != "" {
						keys = append(keys, line)
					}
				}
				if err := sc.Err(); err != nil {
					return err
				}
			}
			ops, err := o.ops()
			if err != nil {
				return err
			}
			found, err := ops.search(s, args[1], keys, maxEntries)
			if err != nil {
				return err
			}
			for _, k := range found {
				fmt.Fprintln(cmd.OutOrStdout(), k)
			}
			return nil
		},
	}
	cmd.Flags().IntVar(&maxEntries, "max-entries", rangeindex.DefaultMaxEntries, "index node fan-out")
	return cmd
}

func strategyNames() string {
	ss := gist.Strategies()
	names := make([]string, 0, len(ss))
	for _, s := range ss {
		names = append(names, s.String())
	}
	return strings.Join(names, ", ")
}
