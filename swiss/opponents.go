/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package swiss

// Edge is one pairing between a player and an opponent in a Swiss round.
type Edge struct {
	Opponent string
	Round    int
}

// OpponentGraph is the directed multigraph of Swiss pairings selected by a
// cutoff: every reported, non-bye Swiss match adds an edge in each direction.
// Facing the same opponent twice yields two edges but one opponent.
type OpponentGraph struct {
	cutoff Cutoff
	edges  map[string][]Edge
}

// OpponentGraph builds the opponent multigraph for cutoff. Elimination rounds
// and byes never contribute edges; neither do unreported matches.
func (s *Snapshot) OpponentGraph(cutoff Cutoff) *OpponentGraph {
	g := &OpponentGraph{
		cutoff: cutoff,
		edges:  make(map[string][]Edge),
	}
	for _, r := range s.rounds {
		if !cutoff.Includes(r.Number) {
			break
		}
		if r.Kind != KindSwiss {
			continue
		}
		for _, m := range r.Matches {
			if m.IsBye() || !m.IsReported() {
				continue
			}
			g.edges[m.Player1] = append(g.edges[m.Player1],
				Edge{Opponent: m.Player2, Round: r.Number})
			g.edges[m.Player2] = append(g.edges[m.Player2],
				Edge{Opponent: m.Player1, Round: r.Number})
		}
	}

	return g
}

func (g *OpponentGraph) Cutoff() Cutoff {
	return g.cutoff
}

// Edges returns every pairing of id in round order, repeats included.
func (g *OpponentGraph) Edges(id string) []Edge {
	return append([]Edge(nil), g.edges[id]...)
}

// OpponentsOf returns id's distinct opponents in the order first faced.
func (g *OpponentGraph) OpponentsOf(id string) []string {
	edges := g.edges[id]
	if len(edges) == 0 {
		return nil
	}
	seen := make(map[string]bool, len(edges))
	out := make([]string, 0, len(edges))
	for _, e := range edges {
		if seen[e.Opponent] {
			continue
		}
		seen[e.Opponent] = true
		out = append(out, e.Opponent)
	}
	return out
}

// OpponentsOf is a convenience for one-off lookups; repeated lookups should
// share an OpponentGraph.
func (s *Snapshot) OpponentsOf(id string, cutoff Cutoff) []string {
	if id == "" {
		return nil
	}
	return s.OpponentGraph(cutoff).OpponentsOf(id)
}
