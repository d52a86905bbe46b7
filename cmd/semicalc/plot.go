package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/c360studio/semiconductor/diagnostics"
)

func plotCmd(a *app) *cobra.Command {
	var (
		materialName string
		output       string
		reference    string
		title        string
		opts         diagnostics.SweepOptions
	)

	cmd := &cobra.Command{
		Use:   "plot <family>",
		Short: "Compare every author of a property family",
		Long: `Plot sweeps every author of the family over temperature or doping and
writes the curves to an image; the extension of --output selects the
format (png, svg, pdf). --reference overlays digitised data exported from
WebPlotDigitizer. With --json the sweep is printed instead.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := a.Material(materialName)
			if err != nil {
				return err
			}
			if opts.Dopant == "" {
				opts.Dopant = a.cfg.Calculation.Dopant
			}
			if opts.Temp == 0 {
				opts.Temp = a.cfg.Calculation.Temp
			}

			sweep, err := diagnostics.Run(m, args[0], opts)
			if err != nil {
				return err
			}
			if a.jsonOut {
				return a.print(cmd.OutOrStdout(), sweep, nil)
			}

			plotOpts := diagnostics.PlotOptions{Title: title}
			if reference != "" {
				ref, err := diagnostics.ReadDigitized(reference)
				if err != nil {
					return err
				}
				plotOpts.Reference = ref
			}
			if output == "" {
				output = fmt.Sprintf("%s_%s.png", m.Name, args[0])
			}
			if err := diagnostics.Plot(sweep, output, plotOpts); err != nil {
				return err
			}
			a.logger.Info("Wrote plot", "path", output, "series", len(sweep.Series))
			return a.print(cmd.OutOrStdout(), nil, func(w io.Writer) {
				fmt.Fprintf(w, "wrote %s (%d series)\n", output, len(sweep.Series))
			})
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&materialName, "material", "", "Material name")
	flags.StringVarP(&output, "output", "o", "", "Output image (default <material>_<family>.png)")
	flags.StringVar(&reference, "reference", "", "WebPlotDigitizer JSON project to overlay")
	flags.StringVar(&title, "title", "", "Plot title")
	flags.Float64SliceVar(&opts.X, "x", nil, "Swept values (temperature or doping, per family)")
	flags.Float64Var(&opts.Temp, "temp", 0, "Fixed temperature (K)")
	flags.Float64Var(&opts.Doping, "doping", 0, "Fixed doping (cm^-3)")
	flags.Float64Var(&opts.Nxc, "nxc", 0, "Fixed excess carrier density (cm^-3)")
	flags.StringVar(&opts.Dopant, "dopant", "", "Dopant element")
	return cmd
}
