/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const testTDF = `<tournament>
  <data><name>Spring Cup</name><city>Salem</city><startdate>03/08/2025</startdate></data>
  <players>
    <player userid="11"><firstname>Ann</firstname><lastname>Smith</lastname><birthdate>1990-01-01</birthdate></player>
    <player userid="12"><firstname>Bob</firstname><lastname>Jones</lastname><birthdate>1991-01-01</birthdate></player>
    <player userid="13"><firstname>Cat</firstname><lastname>Lee</lastname><birthdate>1992-01-01</birthdate></player>
    <player userid="14"><firstname>Dan</firstname><lastname>Wu</lastname><birthdate>2012-01-01</birthdate></player>
  </players>
  <pods>
    <pod category="2">
      <rounds>
        <round number="1" type="3"><matches>
          <match outcome="1"><player1 userid="11"/><player2 userid="12"/><tablenumber>1</tablenumber></match>
          <match outcome="1"><player1 userid="13"/><player2 userid="14"/><tablenumber>2</tablenumber></match>
        </matches></round>
        <round number="2" type="3"><matches>
          <match outcome="1"><player1 userid="11"/><player2 userid="13"/><tablenumber>1</tablenumber></match>
          <match outcome="%s"><player1 userid="14"/><player2 userid="12"/><tablenumber>2</tablenumber></match>
        </matches></round>
      </rounds>
    </pod>
  </pods>
</tournament>
`

// writeEvent writes the fixture with the given outcome for the last match.
func writeEvent(t *testing.T, lastOutcome string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "event.tdf")
	body := strings.Replace(testTDF, "%s", lastOutcome, 1)
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("failed to write event: %v", err)
	}
	return path
}

func runCmd(t *testing.T, args ...string) (string, error) {
	t.Helper()
	missing := filepath.Join(t.TempDir(), "none.toml")
	root := newRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(append([]string{"--config", missing}, args...))
	err := root.Execute()
	return out.String(), err
}

func TestStandingsCmd(t *testing.T) {
	path := writeEvent(t, "2")

	out, err := runCmd(t, "standings", "--file", path)
	if err != nil {
		t.Fatalf("standings failed: %v", err)
	}
	if !strings.Contains(out, "Standings after Round 2:") {
		t.Errorf("unexpected output %q", out)
	}
	lines := strings.Split(out, "\n")
	if !strings.HasPrefix(lines[3], "1.") || !strings.Contains(lines[3], "Ann Smith") {
		t.Errorf("expected Ann Smith first, got %q", lines[3])
	}

	out, err = runCmd(t, "standings", "--file", path, "--player", "14")
	if err != nil {
		t.Fatalf("standings --player failed: %v", err)
	}
	if !strings.Contains(out, "Dan Wu (14)") || !strings.Contains(out, "Place: 4") {
		t.Errorf("unexpected player output %q", out)
	}

	if _, err = runCmd(t, "standings", "--file", path, "--player", "99"); err == nil {
		t.Errorf("expected error for unknown player")
	}

	out, err = runCmd(t, "standings", "--file", path, "--floor", "0.4",
		"--player", "14")
	if err != nil || !strings.Contains(out, "40.00%") {
		t.Errorf("expected floor override to apply, got %q %v", out, err)
	}
	if _, err = runCmd(t, "standings", "--file", path, "--floor", "2"); err == nil {
		t.Errorf("expected invalid floor to fail")
	}
}

func TestStandingsCmdGated(t *testing.T) {
	path := writeEvent(t, "0")
	out, err := runCmd(t, "standings", "--file", path)
	if err != nil {
		t.Fatalf("standings failed: %v", err)
	}
	if !strings.Contains(out, "not available") {
		t.Errorf("expected gated output, got %q", out)
	}
	out, err = runCmd(t, "standings", "--file", path, "--player", "11")
	if err != nil || !strings.Contains(out, "not available") {
		t.Errorf("expected gated player output, got %q %v", out, err)
	}
}

func TestPairingsCmd(t *testing.T) {
	path := writeEvent(t, "0")
	out, err := runCmd(t, "pairings", "--file", path)
	if err != nil {
		t.Fatalf("pairings failed: %v", err)
	}
	if !strings.HasPrefix(out, "Round 2 Pairings (in progress):") {
		t.Errorf("unexpected output %q", out)
	}
	if !strings.Contains(out, "Ann Smith(1-0-0)") {
		t.Errorf("expected pre-round record in %q", out)
	}

	out, err = runCmd(t, "pairings", "--file", path, "--round", "1")
	if err != nil || !strings.HasPrefix(out, "Round 1 Pairings (complete):") {
		t.Errorf("unexpected round 1 output %q %v", out, err)
	}
	out, _ = runCmd(t, "pairings", "--file", path, "--round", "7")
	if !strings.Contains(out, "Round 7 has not been paired") {
		t.Errorf("unexpected round 7 output %q", out)
	}
}

func TestRoundsStatusDivisionsCmds(t *testing.T) {
	path := writeEvent(t, "1")

	out, err := runCmd(t, "rounds", "--file", path)
	if err != nil || !strings.Contains(out, "Status: swiss complete") {
		t.Errorf("unexpected rounds output %q %v", out, err)
	}
	out, err = runCmd(t, "status", "--file", path)
	if err != nil || !strings.HasPrefix(out, "Spring Cup (Salem)") {
		t.Errorf("unexpected status output %q %v", out, err)
	}
	out, err = runCmd(t, "divisions", "--file", path)
	if err != nil || out != "Masters: 4 players\n" {
		t.Errorf("unexpected divisions output %q %v", out, err)
	}
	out, err = runCmd(t, "divisions", "--file", path, "--by-age")
	if err != nil || !strings.Contains(out, "Dan Wu") || !strings.Contains(out, "Senior") {
		t.Errorf("unexpected by-age output %q %v", out, err)
	}

	if _, err = runCmd(t, "standings", "--file", path, "--division", "junior"); err == nil {
		t.Errorf("expected error for missing division")
	}
	if _, err = runCmd(t, "standings"); err == nil {
		t.Errorf("expected error without a source")
	}
}

func TestDefaultConfigTemplate(t *testing.T) {
	tmpl := defaultConfigTemplate()
	for _, want := range []string{"[standings]", "win-floor = 0.25", "[source]",
		"[cache]", "[discord]", "SWISSTD_DISCORD_TOKEN"} {
		if !strings.Contains(tmpl, want) {
			t.Errorf("template missing %q", want)
		}
	}
}
