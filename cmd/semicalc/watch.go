package main

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/c360studio/semiconductor/catalog"
	"github.com/c360studio/semiconductor/electrical"
)

func watchCmd(a *app) *cobra.Command {
	var debounce time.Duration

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Recompute conductivity whenever the catalog directory changes",
		Long: `Watch reloads the catalog directory (--catalog or catalog.path) when one
of its tables is edited and prints the conductivity of the configured
calculation against the reloaded models. Stop it with Ctrl-C.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := a.cfg.Catalog.Path
			if dir == "" {
				return fmt.Errorf("watch needs a catalog directory (--catalog or catalog.path)")
			}
			cat, err := a.Catalog()
			if err != nil {
				return err
			}
			base, err := catalog.Embedded()
			if err != nil {
				return err
			}

			ctx, cancel := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer cancel()
			return a.watch(ctx, cmd, catalog.WatcherConfig{
				Dir:           dir,
				Base:          base,
				DebounceDelay: debounce,
				Logger:        a.logger,
			}, cat)
		},
	}

	cmd.Flags().DurationVar(&debounce, "debounce", 200*time.Millisecond, "Wait for further edits before reloading")
	return cmd
}

// watch prints the conductivity for cat and again after every reload until
// ctx is done.
func (a *app) watch(ctx context.Context, cmd *cobra.Command, cfg catalog.WatcherConfig, cat *catalog.Catalog) error {
	w, err := catalog.NewWatcher(cfg)
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer w.Stop()

	if err := w.Start(ctx); err != nil {
		return fmt.Errorf("start watcher: %w", err)
	}

	out := cmd.OutOrStdout()
	report := func(cat *catalog.Catalog) {
		calc := electrical.NewConductivity(cat, a.baseConfig(), a.logger)
		sigma, err := calc.Calculate(electrical.Overrides{})
		if err != nil {
			fmt.Fprintf(out, "conductivity: error: %v\n", err)
			return
		}
		used, err := calc.UsedAuthors()
		if err != nil {
			fmt.Fprintf(out, "conductivity: error: %v\n", err)
			return
		}
		fmt.Fprintf(out, "conductivity (S/cm): %s [mobility %s]\n", formatValues(sigma), used.Mobility)
	}

	report(cat)
	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-w.Events():
			if !ok {
				return nil
			}
			if event.Err != nil {
				fmt.Fprintf(out, "reload failed: %v\n", event.Err)
				continue
			}
			a.catalog = event.Catalog
			report(event.Catalog)
		}
	}
}
