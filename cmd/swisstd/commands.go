/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"os/signal"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mikeb26/swiss-standings/internal/config"
	"github.com/mikeb26/swiss-standings/swiss"
	"github.com/mikeb26/swiss-standings/tdf"
	"github.com/mikeb26/swiss-standings/watch"
)

var (
	standingsPlayer string
	pairingsRound   int
	divisionsByAge  bool
)

func newStandingsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "standings",
		Short: "Show standings once the Swiss rounds are complete",
		Args:  cobra.NoArgs,
		RunE:  runStandingsCmd,
	}
	cmd.Flags().StringVar(&standingsPlayer, "player", "", "show a single player and their opponents")
	return cmd
}

func runStandingsCmd(cmd *cobra.Command, _ []string) error {
	ev, s, err := loadEvent(cmd)
	if err != nil {
		return err
	}
	views, err := selectDivisions(ev)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	found := false
	for _, v := range views {
		st := v.snap.Standings(s.Standings)
		if standingsPlayer == "" {
			fmt.Fprint(out, divisionHeader(ev, v, views))
			fmt.Fprint(out, swiss.BuildStandingsOutput(st))
			continue
		}
		if !st.Available() {
			continue
		}
		detail, ok := v.snap.PlayerDetail(s.Standings, standingsPlayer,
			swiss.Through(st.Round))
		if !ok {
			continue
		}
		found = true
		fmt.Fprint(out, divisionHeader(ev, v, views))
		fmt.Fprint(out, swiss.BuildPlayerOutput(detail))
	}
	if standingsPlayer != "" && !found {
		if !anyAvailable(views) {
			fmt.Fprint(out, swiss.BuildStandingsOutput(swiss.Standings{
				Phase: swiss.PhasePartialSwiss}))
			return nil
		}
		return fmt.Errorf("player %v not found", standingsPlayer)
	}

	return nil
}

func anyAvailable(views []divisionView) bool {
	for _, v := range views {
		if v.snap.Phase() == swiss.PhaseSwissComplete {
			return true
		}
	}
	return false
}

func newPairingsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "pairings",
		Short: "Show a round's pairings with each player's record entering the round",
		Args:  cobra.NoArgs,
		RunE:  runPairingsCmd,
	}
	cmd.Flags().IntVar(&pairingsRound, "round", 0, "round number (default: latest)")
	return cmd
}

func runPairingsCmd(cmd *cobra.Command, _ []string) error {
	ev, _, err := loadEvent(cmd)
	if err != nil {
		return err
	}
	views, err := selectDivisions(ev)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	for _, v := range views {
		fmt.Fprint(out, divisionHeader(ev, v, views))
		number := pairingsRound
		if number == 0 {
			rounds := v.snap.Rounds()
			if len(rounds) == 0 {
				fmt.Fprint(out, "No rounds posted\n\n")
				continue
			}
			number = rounds[len(rounds)-1].Number
		}
		rp, ok := v.snap.RoundPairings(number)
		if !ok {
			fmt.Fprintf(out, "Round %d has not been paired\n\n", number)
			continue
		}
		fmt.Fprint(out, swiss.BuildPairingsOutput(rp))
	}

	return nil
}

func newRoundsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rounds",
		Short: "List rounds and stages",
		Args:  cobra.NoArgs,
		RunE:  runRoundsCmd,
	}
}

func runRoundsCmd(cmd *cobra.Command, _ []string) error {
	ev, _, err := loadEvent(cmd)
	if err != nil {
		return err
	}
	views, err := selectDivisions(ev)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	for _, v := range views {
		fmt.Fprint(out, divisionHeader(ev, v, views))
		fmt.Fprint(out, swiss.BuildRoundsOutput(v.snap))
	}
	return nil
}

func newStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Summarize the event and each division's progress",
		Args:  cobra.NoArgs,
		RunE:  runStatusCmd,
	}
}

func runStatusCmd(cmd *cobra.Command, _ []string) error {
	ev, _, err := loadEvent(cmd)
	if err != nil {
		return err
	}
	fmt.Fprint(cmd.OutOrStdout(), tdf.BuildEventOutput(ev))
	return nil
}

func newDivisionsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "divisions",
		Short: "List division pods, or with --by-age the players outside their age division",
		Args:  cobra.NoArgs,
		RunE:  runDivisionsCmd,
	}
	cmd.Flags().BoolVar(&divisionsByAge, "by-age", false, "check birth years against each pod")
	return cmd
}

func runDivisionsCmd(cmd *cobra.Command, _ []string) error {
	ev, _, err := loadEvent(cmd)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	if divisionsByAge {
		fmt.Fprint(out, tdf.BuildAgeDivisionOutput(ev))
		return nil
	}
	for _, div := range ev.DivisionList() {
		fmt.Fprintf(out, "%v: %d players\n", div, len(ev.Divisions[div].Players()))
	}
	return nil
}

func newWatchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "watch",
		Short: "Poll the event and print standings or the latest pairings as they change",
		Args:  cobra.NoArgs,
		RunE:  runWatchCmd,
	}
}

func runWatchCmd(cmd *cobra.Command, _ []string) error {
	s, err := loadSettings(cmd)
	if err != nil {
		return err
	}
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	load, err := eventLoader(ctx, s)
	if err != nil {
		return err
	}
	tracker := watch.NewTracker(s.Standings, nil)
	poller := watch.NewPoller(tracker, load, s.PollInterval)

	out := cmd.OutOrStdout()
	err = poller.Run(ctx, func(res *watch.Result) {
		printResult(out, res)
	})
	if errors.Is(err, ctx.Err()) {
		return nil
	}
	return err
}

func printResult(out io.Writer, res *watch.Result) {
	fmt.Fprintf(out, "--- %v (generation %d, %v) ---\n", res.Event.Name,
		res.Generation, res.ComputedAt.Format("15:04:05"))
	for _, div := range res.Event.DivisionList() {
		if divisionName != "" {
			if d, err := swiss.ParseDivision(divisionName); err == nil && d != div {
				continue
			}
		}
		rep := res.Reports[div]
		if len(res.Reports) > 1 {
			fmt.Fprintf(out, "== %v ==\n", div)
		}
		if rep.Standings.Available() {
			fmt.Fprint(out, swiss.BuildStandingsOutput(rep.Standings))
		} else if rep.Latest.Number != 0 {
			fmt.Fprint(out, swiss.BuildPairingsOutput(rep.Latest))
		} else {
			fmt.Fprint(out, swiss.BuildStandingsOutput(rep.Standings))
		}
	}
}

func newConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Create/open config file",
		Args:  cobra.NoArgs,
		RunE:  runConfigCmd,
	}
}

func runConfigCmd(_ *cobra.Command, _ []string) error {
	path := configPath
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if _, err := os.Stat(path); err != nil {
		if !os.IsNotExist(err) {
			return fmt.Errorf("failed to stat config: %w", err)
		}
		if err := os.WriteFile(path, []byte(defaultConfigTemplate()), 0o600); err != nil {
			return fmt.Errorf("failed to write config: %w", err)
		}
	}

	editor := strings.TrimSpace(os.Getenv("EDITOR"))
	if editor == "" {
		editor = "vi"
	}
	parts := strings.Fields(editor)
	if len(parts) == 0 {
		return fmt.Errorf("editor command is empty")
	}
	cmd := exec.Command(parts[0], append(parts[1:], path)...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("failed to open editor: %w", err)
	}
	return nil
}

func defaultConfigTemplate() string {
	d := config.Defaults()
	return fmt.Sprintf(`# swisstd configuration

[standings]
# win-floor = %v
# swiss-round-type = %q

[source]
# url = "https://example.com/events/current.tdf"
# pairings-url = "https://example.com/events/current/pairings"
# poll-interval = %q
# cache-max-age = %q

[cache]
# bucket = %q
# gzip = false

[discord]
# token, public-key may instead be set via $%v and $%v
# token = ""
# public-key = ""
# app-id = ""
# command-id = ""
`, d.Standings.WinFloor, d.Standings.SwissRoundType, d.PollInterval.String(),
		d.CacheMaxAge.String(), d.Bucket, config.EnvDiscordToken,
		config.EnvDiscordPubKey)
}
