/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/mikeb26/swiss-standings/internal"
	"github.com/mikeb26/swiss-standings/internal/config"
	"github.com/mikeb26/swiss-standings/swiss"
	"github.com/mikeb26/swiss-standings/tdf"
)

var (
	configPath   string
	eventFile    string
	eventURL     string
	pairingsURL  string
	winFloor     float64
	divisionName string
	cacheBucket  string
	pollInterval time.Duration
)

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "swisstd",
		Short:         "Swiss tournament standings and pairings",
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&configPath, "config", config.DefaultConfigPath(), "config file path")
	pf.StringVar(&eventFile, "file", "", "local tournament file (.tdf) or pairings page (.html)")
	pf.StringVar(&eventURL, "url", "", "tournament file url")
	pf.StringVar(&pairingsURL, "pairings-url", "", "published pairings page url used as a fallback")
	pf.Float64Var(&winFloor, "floor", swiss.DefaultWinFloor, "minimum win percentage (0-1)")
	pf.StringVar(&divisionName, "division", "", "division to show (junior, senior, masters); default all")
	pf.StringVar(&cacheBucket, "bucket", internal.WebCacheBucket, "S3 bucket for the http cache; empty for memory only")
	pf.DurationVar(&pollInterval, "interval", internal.DefaultPollInterval, "watch poll interval")

	rootCmd.AddCommand(newStandingsCmd())
	rootCmd.AddCommand(newPairingsCmd())
	rootCmd.AddCommand(newRoundsCmd())
	rootCmd.AddCommand(newStatusCmd())
	rootCmd.AddCommand(newDivisionsCmd())
	rootCmd.AddCommand(newWatchCmd())
	rootCmd.AddCommand(newConfigCmd())

	return rootCmd
}

// loadSettings resolves the config file and lets explicitly set flags win.
func loadSettings(cmd *cobra.Command) (config.Settings, error) {
	s, err := config.Load(configPath)
	if err != nil {
		return config.Settings{}, fmt.Errorf("failed to load config: %w", err)
	}
	applyFlag(cmd, "url", &s.URL, eventURL)
	applyFlag(cmd, "pairings-url", &s.PairingsURL, pairingsURL)
	applyFlag(cmd, "floor", &s.Standings.WinFloor, winFloor)
	applyFlag(cmd, "bucket", &s.Bucket, cacheBucket)
	applyFlag(cmd, "interval", &s.PollInterval, pollInterval)

	if err := s.Validate(); err != nil {
		return config.Settings{}, err
	}
	return s, nil
}

func applyFlag[T any](cmd *cobra.Command, name string, target *T, value T) {
	if !cmd.Flags().Changed(name) {
		return
	}
	*target = value
}

// eventLoader returns a function that loads the configured event, either
// from --file or over http through the cached client.
func eventLoader(ctx context.Context,
	s config.Settings) (func(context.Context) (*tdf.Event, error), error) {

	if eventFile != "" {
		path := eventFile
		return func(context.Context) (*tdf.Event, error) {
			return tdf.LoadFile(path, s.Standings)
		}, nil
	}
	if s.URL == "" && s.PairingsURL == "" {
		return nil, fmt.Errorf("no event source: use --file or --url, or set [source] url in %v",
			configPath)
	}

	client := internal.NewCachedHttpClient(ctx, s.CacheOptions())
	loc := tdf.Location{URL: s.URL, PairingsURL: s.PairingsURL}
	return func(ctx context.Context) (*tdf.Event, error) {
		return tdf.GetEvent(ctx, client, loc, s.Standings)
	}, nil
}

func loadEvent(cmd *cobra.Command) (*tdf.Event, config.Settings, error) {
	s, err := loadSettings(cmd)
	if err != nil {
		return nil, s, err
	}
	load, err := eventLoader(cmd.Context(), s)
	if err != nil {
		return nil, s, err
	}
	ev, err := load(cmd.Context())
	if err != nil {
		return nil, s, fmt.Errorf("failed to load event: %w", err)
	}
	return ev, s, nil
}

type divisionView struct {
	division swiss.Division
	snap     *swiss.Snapshot
}

// selectDivisions honors --division; without it every division is shown.
func selectDivisions(ev *tdf.Event) ([]divisionView, error) {
	if divisionName != "" {
		div, err := swiss.ParseDivision(divisionName)
		if err != nil {
			return nil, err
		}
		snap, err := ev.Division(div)
		if err != nil {
			return nil, err
		}
		return []divisionView{{div, snap}}, nil
	}

	var views []divisionView
	for _, div := range ev.DivisionList() {
		views = append(views, divisionView{div, ev.Divisions[div]})
	}
	return views, nil
}

func divisionHeader(ev *tdf.Event, v divisionView, views []divisionView) string {
	if len(views) == 1 && len(ev.Divisions) == 1 {
		return ""
	}
	return fmt.Sprintf("== %v ==\n", v.division)
}
