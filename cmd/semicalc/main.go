// Package main provides the semicalc binary entry point.
// Semicalc evaluates semiconductor property models: conductivity and
// resistivity, doping from dark conductivity, band gaps and model
// comparison plots.
package main

import (
	"fmt"
	"os"
	"runtime"

	"github.com/spf13/cobra"
)

const (
	Version   = "0.1.0"
	BuildTime = "dev"
	appName   = "semicalc"
)

func main() {
	// Add panic recovery
	defer func() {
		if r := recover(); r != nil {
			buf := make([]byte, 4096)
			n := runtime.Stack(buf, false)
			_, _ = fmt.Fprintf(os.Stderr, "PANIC: %v\nStack trace:\n%s\n", r, string(buf[:n]))
			os.Exit(2)
		}
	}()

	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	a := &app{}

	cmd := &cobra.Command{
		Use:   appName,
		Short: "Semiconductor property model calculator",
		Long: `Semicalc evaluates the property models of a semiconductor catalog.

It provides:
- Conductivity and resistivity from doping and excess carriers
- Doping density from a dark conductivity or resistivity
- Band gap and thermal velocity evaluation
- Model listings, comparison sweeps and plots

Models come from the embedded silicon tables, optionally overlaid by a
catalog directory of <Material>/<family>.yaml files.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
	}

	flags := cmd.PersistentFlags()
	flags.StringVarP(&a.configPath, "config", "c", "", "Config file path (YAML)")
	flags.StringVar(&a.catalogPath, "catalog", "", "Catalog directory overlaid on the embedded tables")
	flags.StringVar(&a.logLevel, "log-level", "", "Log level (debug, info, warn, error)")
	flags.BoolVar(&a.jsonOut, "json", false, "Print results as JSON")

	cmd.AddCommand(
		conductivityCmd(a),
		resistivityCmd(a),
		dopingCmd(a),
		bandgapCmd(a),
		velocityCmd(a),
		modelsCmd(a),
		plotCmd(a),
		watchCmd(a),
		configCmd(a),
	)

	// Version command
	cmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print version information",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return nil
		},
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "%s version %s (build: %s)\n", appName, Version, BuildTime)
		},
	})

	return cmd
}
