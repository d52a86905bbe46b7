package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/c360studio/semiconductor/electrical"
	"github.com/c360studio/semiconductor/property"
)

// calcFlags are the calculator inputs shared by the conductivity commands.
type calcFlags struct {
	material    string
	dopant      string
	dopantType  string
	mobAuthor   string
	niAuthor    string
	ionisAuthor string
	temp        []float64
	na          []float64
	nd          []float64
	nxc         []float64
	set         []string
}

func (f *calcFlags) register(cmd *cobra.Command, withNxc bool) {
	flags := cmd.Flags()
	flags.StringVar(&f.material, "material", "", "Material name")
	flags.StringVar(&f.dopant, "dopant", "", "Dopant element, e.g. boron")
	flags.StringVar(&f.dopantType, "dopant-type", "", "Dopant type (p or n)")
	flags.StringVar(&f.mobAuthor, "mob-author", "", "Mobility author")
	flags.StringVar(&f.niAuthor, "ni-author", "", "Intrinsic carrier density author or constant value")
	flags.StringVar(&f.ionisAuthor, "ionis-author", "", "Ionisation author")
	flags.Float64SliceVar(&f.temp, "temp", nil, "Temperature (K)")
	flags.Float64SliceVar(&f.na, "na", nil, "Acceptor density (cm^-3)")
	flags.Float64SliceVar(&f.nd, "nd", nil, "Donor density (cm^-3)")
	if withNxc {
		flags.Float64SliceVar(&f.nxc, "nxc", nil, "Excess carrier density (cm^-3)")
	}
	flags.StringArrayVar(&f.set, "set", nil, "Override key=value (e.g. mob_author=Arora1982, Na=1e15,1e16)")
}

// overrides reads --set pairs first; explicit flags take precedence.
func (f *calcFlags) overrides(cmd *cobra.Command) (electrical.Overrides, error) {
	o, err := electrical.ParseOverrideArgs(f.set)
	if err != nil {
		return electrical.Overrides{}, err
	}

	flags := cmd.Flags()
	if flags.Changed("material") {
		o.Material = &f.material
	}
	if flags.Changed("dopant") {
		o.Dopant = &f.dopant
	}
	if flags.Changed("dopant-type") {
		dt, err := electrical.ParseDopantType(f.dopantType)
		if err != nil {
			return electrical.Overrides{}, err
		}
		o.DopantType = &dt
	}
	if flags.Changed("mob-author") {
		o.MobilityAuthor = &f.mobAuthor
	}
	if flags.Changed("ni-author") {
		spec := property.ParseSpec(f.niAuthor)
		o.NiAuthor = &spec
	}
	if flags.Changed("ionis-author") {
		o.IonisationAuthor = &f.ionisAuthor
	}
	if flags.Changed("temp") {
		o.Temp = f.temp
	}
	if flags.Changed("na") {
		o.Na = f.na
	}
	if flags.Changed("nd") {
		o.Nd = f.nd
	}
	if flags.Lookup("nxc") != nil && flags.Changed("nxc") {
		o.Nxc = f.nxc
	}
	return o, nil
}

// baseConfig is the calculator configuration before command overrides.
func (a *app) baseConfig() electrical.Config {
	def := electrical.DefaultConfig()
	return a.cfg.Electrical(def.Na, def.Nd)
}

// calculator is the part of a conductivity calculator the commands use.
type calculator interface {
	Calculate(o electrical.Overrides) ([]float64, error)
	UsedAuthors() (electrical.UsedAuthors, error)
}

type calcResult struct {
	Quantity string                 `json:"quantity"`
	Unit     string                 `json:"unit"`
	Values   []float64              `json:"values"`
	Authors  electrical.UsedAuthors `json:"authors"`
}

func (a *app) runCalculator(cmd *cobra.Command, f *calcFlags, calc calculator, quantity, unit string) error {
	o, err := f.overrides(cmd)
	if err != nil {
		return err
	}
	values, err := calc.Calculate(o)
	if err != nil {
		return err
	}
	used, err := calc.UsedAuthors()
	if err != nil {
		return err
	}

	res := calcResult{Quantity: quantity, Unit: unit, Values: values, Authors: used}
	return a.print(cmd.OutOrStdout(), res, func(w io.Writer) {
		fmt.Fprintf(w, "%s (%s): %s\n", quantity, unit, formatValues(values))
		printAuthors(w, used)
	})
}

func printAuthors(w io.Writer, used electrical.UsedAuthors) {
	fmt.Fprintf(w, "mobility: %s\n", used.Mobility)
	fmt.Fprintf(w, "intrinsic carrier density: %s\n", used.IntrinsicDensity)
	fmt.Fprintf(w, "ionisation: %s\n", used.Ionisation)
}

func formatValues(values []float64) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = fmt.Sprintf("%.6g", v)
	}
	return strings.Join(parts, " ")
}

func conductivityCmd(a *app) *cobra.Command {
	f := &calcFlags{}
	cmd := &cobra.Command{
		Use:   "conductivity",
		Short: "Compute conductivity from doping and excess carriers",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cat, err := a.Catalog()
			if err != nil {
				return err
			}
			calc := electrical.NewConductivity(cat, a.baseConfig(), a.logger)
			return a.runCalculator(cmd, f, calc, "conductivity", "S/cm")
		},
	}
	f.register(cmd, true)
	return cmd
}

func resistivityCmd(a *app) *cobra.Command {
	f := &calcFlags{}
	cmd := &cobra.Command{
		Use:   "resistivity",
		Short: "Compute resistivity from doping and excess carriers",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cat, err := a.Catalog()
			if err != nil {
				return err
			}
			calc := electrical.NewResistivity(cat, a.baseConfig(), a.logger)
			return a.runCalculator(cmd, f, calc, "resistivity", "ohm cm")
		},
	}
	f.register(cmd, true)
	return cmd
}

type dopingResult struct {
	Conductivity float64                `json:"conductivity"`
	DopantType   electrical.DopantType  `json:"dopant_type"`
	Doping       float64                `json:"doping"`
	Authors      electrical.UsedAuthors `json:"authors"`
}

func dopingCmd(a *app) *cobra.Command {
	f := &calcFlags{}
	var sigma, rho float64

	cmd := &cobra.Command{
		Use:   "doping",
		Short: "Find the doping density of a dark conductivity or resistivity",
		Long: `Doping inverts the dark conductivity (excess carriers fixed at 1 cm^-3)
with Newton's method. The dopant type selects whether acceptors or donors
are solved for; the other density is set to zero.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			hasSigma := cmd.Flags().Changed("conductivity")
			hasRho := cmd.Flags().Changed("resistivity")
			if hasSigma == hasRho {
				return fmt.Errorf("exactly one of --conductivity or --resistivity is required")
			}

			o, err := f.overrides(cmd)
			if err != nil {
				return err
			}
			cat, err := a.Catalog()
			if err != nil {
				return err
			}
			dark := electrical.NewDarkConductivity(cat, a.baseConfig(), a.logger)

			var doping float64
			if hasRho {
				sigma = 1 / rho
				doping, err = dark.ResistivityToDoping(rho, o)
			} else {
				doping, err = dark.ConductivityToDoping(sigma, o)
			}
			if err != nil {
				return err
			}
			used, err := dark.UsedAuthors()
			if err != nil {
				return err
			}

			res := dopingResult{
				Conductivity: sigma,
				DopantType:   dark.Config().DopantType,
				Doping:       doping,
				Authors:      used,
			}
			return a.print(cmd.OutOrStdout(), res, func(w io.Writer) {
				fmt.Fprintf(w, "%s-type doping (cm^-3): %.6g\n", res.DopantType, doping)
				printAuthors(w, used)
			})
		},
	}
	cmd.Flags().Float64Var(&sigma, "conductivity", 0, "Dark conductivity (S/cm)")
	cmd.Flags().Float64Var(&rho, "resistivity", 0, "Dark resistivity (ohm cm)")
	f.register(cmd, false)
	return cmd
}
