package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/c360studio/semiconductor/diagnostics"
	"github.com/c360studio/semiconductor/model"
)

type familySummary struct {
	Family  string   `json:"family"`
	Default string   `json:"default"`
	Authors []string `json:"authors"`
	Source  string   `json:"source"`
}

func modelsCmd(a *app) *cobra.Command {
	var (
		materialName string
		filters      []string
	)

	cmd := &cobra.Command{
		Use:   "models [family]",
		Short: "List the models of a material",
		Long: `Without a family, models lists every property family of the material
with its default author. With a family, it lists that family's authors and
their notes; --filter field=value keeps the authors whose tag matches.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := a.Material(materialName)
			if err != nil {
				return err
			}

			if len(args) == 0 {
				var out []familySummary
				for _, family := range m.Families() {
					table, err := m.Table(family)
					if err != nil {
						return err
					}
					out = append(out, familySummary{
						Family:  family,
						Default: table.Default(),
						Authors: table.ListAuthors(),
						Source:  table.Source(),
					})
				}
				return a.print(cmd.OutOrStdout(), out, func(w io.Writer) {
					fmt.Fprintf(w, "%s\n", m.Name)
					for _, s := range out {
						fmt.Fprintf(w, "  %-26s default %-20s %d authors\n", s.Family, s.Default, len(s.Authors))
					}
				})
			}

			parsed, err := parseFilters(filters)
			if err != nil {
				return err
			}
			notes, err := diagnostics.Notes(m, args[0], parsed...)
			if err != nil {
				return err
			}
			return a.print(cmd.OutOrStdout(), notes, func(w io.Writer) {
				for _, n := range notes {
					marker := " "
					if n.Default {
						marker = "*"
					}
					fmt.Fprintf(w, "%s %s\n", marker, n.Author)
					if n.Notes != "" {
						fmt.Fprintf(w, "    %s\n", strings.TrimSpace(n.Notes))
					}
				}
			})
		},
	}

	cmd.Flags().StringVar(&materialName, "material", "", "Material name")
	cmd.Flags().StringArrayVar(&filters, "filter", nil, "Keep authors whose field matches (field=value[,value])")
	return cmd
}

// parseFilters reads field=value[,value] arguments.
func parseFilters(args []string) ([]model.Filter, error) {
	out := make([]model.Filter, 0, len(args))
	for _, arg := range args {
		field, values, ok := strings.Cut(arg, "=")
		if !ok || field == "" {
			return nil, fmt.Errorf("invalid filter %q: expected field=value", arg)
		}
		out = append(out, model.Filter{Field: field, Values: strings.Split(values, ",")})
	}
	return out, nil
}
