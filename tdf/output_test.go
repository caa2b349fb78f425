/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package tdf

import (
	"strings"
	"testing"

	"github.com/mikeb26/swiss-standings/swiss"
)

func TestBuildEventOutput(t *testing.T) {
	ev, err := Parse(strings.NewReader(testTDF), swiss.DefaultConfig())
	if err != nil {
		t.Fatalf("failed to parse: %v", err)
	}
	out := BuildEventOutput(ev)
	if !strings.HasPrefix(out, "Boston Regional Championship (Boston)\n") {
		t.Errorf("unexpected header in %q", out)
	}
	lines := strings.Split(out, "\n")
	var masters, junior string
	for _, l := range lines {
		if strings.HasPrefix(l, "Masters") {
			masters = l
		} else if strings.HasPrefix(l, "Junior") {
			junior = l
		}
	}
	if !strings.Contains(masters, "Finals") || !strings.Contains(masters, "swiss complete") {
		t.Errorf("unexpected masters line %q", masters)
	}
	if !strings.Contains(junior, "swiss complete") {
		t.Errorf("unexpected junior line %q", junior)
	}
	if !strings.Contains(out, "3 data warnings") {
		t.Errorf("expected warning count in %q", out)
	}
}

func TestBuildAgeDivisionOutput(t *testing.T) {
	ev, err := Parse(strings.NewReader(testTDF), swiss.DefaultConfig())
	if err != nil {
		t.Fatalf("failed to parse: %v", err)
	}
	out := BuildAgeDivisionOutput(ev)
	if !strings.HasPrefix(out, "Season 2024-2025") {
		t.Errorf("unexpected header in %q", out)
	}
	// every fixture player sits in the right pod
	if !strings.Contains(out, "All players are in their age division's pod") {
		t.Errorf("unexpected mismatches in %q", out)
	}

	ev.Divisions[swiss.DivisionMasters] = swiss.NewSnapshot([]swiss.Player{
		{ID: "7", FirstName: "Kid", LastName: "Jones", BirthYear: 2015},
	}, nil)
	out = BuildAgeDivisionOutput(ev)
	if !strings.Contains(out, "Kid Jones") || !strings.Contains(out, "Junior") {
		t.Errorf("expected mismatch row in %q", out)
	}
}
