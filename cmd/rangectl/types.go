package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/henderiw/rangetype/pkg/catalog"
	"github.com/spf13/cobra"
	"k8s.io/apimachinery/pkg/labels"
)

func newTypesCmd(o *options) *cobra.Command {
	var selector string
	cmd := &cobra.Command{
		Use:   "types",
		Short: "List the registered range types",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			sel, err := labels.Parse(selector)
			if err != nil {
				return err
			}
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tNAME\tKIND\tDISCRETE")
			for _, e := range o.cat.GetByLabel(sel) {
				l := e.Labels()
				fmt.Fprintf(w, "%d\t%s\t%s\t%s\n", e.ID(), l.Get(catalog.LabelName), l.Get(catalog.LabelKind), l.Get(catalog.LabelDiscrete))
			}
			return w.Flush()
		},
	}
	cmd.Flags().StringVarP(&selector, "selector", "l", "", "label selector, e.g. discrete=true")
	return cmd
}
