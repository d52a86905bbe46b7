package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/c360studio/semiconductor/material"
)

type bandGapResult struct {
	Temp      []float64 `json:"temp"`
	Intrinsic []float64 `json:"intrinsic"`
	Narrowing []float64 `json:"narrowing"`
	BandGap   []float64 `json:"band_gap"`
	Authors   struct {
		Intrinsic string `json:"intrinsic"`
		Narrowing string `json:"narrowing"`
	} `json:"authors"`
}

func bandgapCmd(a *app) *cobra.Command {
	var (
		materialName string
		egiAuthor    string
		bgnAuthor    string
		dopant       string
		multiplier   float64
		temp         []float64
		doping       []float64
		nxc          []float64
	)

	cmd := &cobra.Command{
		Use:   "bandgap",
		Short: "Evaluate the band gap with band-gap narrowing",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := a.Material(materialName)
			if err != nil {
				return err
			}
			if dopant == "" {
				dopant = a.cfg.Calculation.Dopant
			}
			if !cmd.Flags().Changed("temp") {
				temp = []float64{a.cfg.Calculation.Temp}
			}
			if !cmd.Flags().Changed("nxc") {
				nxc = []float64{a.cfg.Calculation.Nxc}
			}

			bg, err := material.NewBandGap(m, material.BandGapConfig{
				IntrinsicAuthor: egiAuthor,
				NarrowingAuthor: bgnAuthor,
				Dopant:          dopant,
				Logger:          a.logger,
			})
			if err != nil {
				return err
			}
			bg.Intrinsic.Multiplier = multiplier

			eg, err := bg.Evaluate(temp, doping, nxc)
			if err != nil {
				return err
			}
			egi, err := bg.Intrinsic.Evaluate(temp)
			if err != nil {
				return err
			}
			bgn, err := bg.Narrowing.Evaluate(doping, nxc)
			if err != nil {
				return err
			}

			res := bandGapResult{Temp: temp, Intrinsic: egi, Narrowing: bgn, BandGap: eg}
			res.Authors.Intrinsic = bg.Intrinsic.Author()
			res.Authors.Narrowing = bg.Narrowing.Author()
			return a.print(cmd.OutOrStdout(), res, func(w io.Writer) {
				fmt.Fprintf(w, "band gap (eV): %s\n", formatValues(eg))
				fmt.Fprintf(w, "intrinsic (eV): %s [%s]\n", formatValues(egi), res.Authors.Intrinsic)
				fmt.Fprintf(w, "narrowing (eV): %s [%s]\n", formatValues(bgn), res.Authors.Narrowing)
			})
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&materialName, "material", "", "Material name")
	flags.StringVar(&egiAuthor, "intrinsic-author", "", "Intrinsic band gap author")
	flags.StringVar(&bgnAuthor, "bgn-author", "", "Band-gap narrowing author")
	flags.StringVar(&dopant, "dopant", "", "Dopant element checked against the narrowing model")
	flags.Float64Var(&multiplier, "multiplier", 1, "Scale factor applied to the intrinsic band gap")
	flags.Float64SliceVar(&temp, "temp", nil, "Temperature (K)")
	flags.Float64SliceVar(&doping, "doping", []float64{1e16}, "Ionised dopant density (cm^-3)")
	flags.Float64SliceVar(&nxc, "nxc", nil, "Excess carrier density (cm^-3)")
	return cmd
}

type velocityResult struct {
	Temp       []float64 `json:"temp"`
	Conduction []float64 `json:"conduction"`
	Valence    []float64 `json:"valence"`
	Author     string    `json:"author"`
}

func velocityCmd(a *app) *cobra.Command {
	var (
		materialName string
		author       string
		temp         []float64
	)

	cmd := &cobra.Command{
		Use:   "velocity",
		Short: "Evaluate the carrier thermal velocities",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := a.Material(materialName)
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("temp") {
				temp = []float64{a.cfg.Calculation.Temp}
			}

			vth, err := material.NewThermalVelocity(m, author, nil)
			if err != nil {
				return err
			}
			ve, vh, err := vth.Evaluate(temp)
			if err != nil {
				return err
			}

			res := velocityResult{Temp: temp, Conduction: ve, Valence: vh, Author: vth.Author()}
			return a.print(cmd.OutOrStdout(), res, func(w io.Writer) {
				fmt.Fprintf(w, "conduction band (cm/s): %s\n", formatValues(ve))
				fmt.Fprintf(w, "valence band (cm/s): %s\n", formatValues(vh))
				fmt.Fprintf(w, "author: %s\n", res.Author)
			})
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&materialName, "material", "", "Material name")
	flags.StringVar(&author, "author", "", "Thermal velocity author")
	flags.Float64SliceVar(&temp, "temp", nil, "Temperature (K)")
	return cmd
}
