/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */

// Package tdf loads tournament datasets into swiss snapshots. The primary
// source is the tournament operations XML file; a published HTML pairings
// page is used when the XML file is unavailable.
package tdf

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/mikeb26/swiss-standings/swiss"
)

var ErrNoPods = errors.New("tournament has no division pods")

type Source int

const (
	SourceNone Source = iota
	SourceXML
	SourceWeb
)

func (s Source) String() string {
	switch s {
	case SourceXML:
		return "tdf"
	case SourceWeb:
		return "web"
	default:
		return "none"
	}
}

// Event is one loaded dataset: tournament metadata plus one snapshot per
// division pod.
type Event struct {
	Name      string
	ID        string
	City      string
	StartDate time.Time

	// Digest identifies the raw dataset; identical bytes yield identical
	// digests so unchanged sources can be skipped.
	Digest    string
	Source    Source
	Divisions map[swiss.Division]*swiss.Snapshot
	// Warnings holds ingestion problems that are not attributable to a
	// single snapshot, e.g. a round whose number could not be parsed.
	Warnings []swiss.Warning
}

// DivisionList returns the event's divisions, oldest age group first.
func (e *Event) DivisionList() []swiss.Division {
	divs := make([]swiss.Division, 0, len(e.Divisions))
	for d := range e.Divisions {
		divs = append(divs, d)
	}
	sort.Sort(swiss.DivisionSorter(divs))
	return divs
}

// Division returns the snapshot for d. When d is DivisionUnknown and the
// event has exactly one pod, that pod is returned.
func (e *Event) Division(d swiss.Division) (*swiss.Snapshot, error) {
	if snap, ok := e.Divisions[d]; ok {
		return snap, nil
	}
	if d == swiss.DivisionUnknown && len(e.Divisions) == 1 {
		for _, snap := range e.Divisions {
			return snap, nil
		}
	}
	return nil, fmt.Errorf("event %v has no %v division", e.Name, d)
}

// SeasonStartYear is the season the event belongs to, or 0 when the start
// date is unknown.
func (e *Event) SeasonStartYear() int {
	if e.StartDate.IsZero() {
		return 0
	}
	return swiss.SeasonStartYear(e.StartDate)
}

func (e *Event) warn(round int, msg string) {
	w := swiss.Warning{Round: round, Msg: msg}
	logWarning(w)
	e.Warnings = append(e.Warnings, w)
}

func digest(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}
