/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package swiss

import "fmt"

// Outcome is the reported result code of a single match.
type Outcome int

const (
	OutcomeUnreported Outcome = iota
	OutcomePlayer1Win
	OutcomePlayer2Win
	OutcomeTie
	OutcomeDoubleLoss
	OutcomeBye
)

func (o Outcome) String() string {
	switch o {
	case OutcomeUnreported:
		return "unreported"
	case OutcomePlayer1Win:
		return "player1 win"
	case OutcomePlayer2Win:
		return "player2 win"
	case OutcomeTie:
		return "tie"
	case OutcomeDoubleLoss:
		return "double loss"
	case OutcomeBye:
		return "bye"
	default:
		return fmt.Sprintf("outcome(%d)", int(o))
	}
}

// Valid reports whether o is one of the known outcome codes.
func (o Outcome) Valid() bool {
	return o >= OutcomeUnreported && o <= OutcomeBye
}

// RoundKind distinguishes Swiss rounds from single elimination (top cut)
// rounds. Only Swiss rounds contribute to OWP/OOWP.
type RoundKind int

const (
	KindSwiss RoundKind = iota
	KindElimination
)

func (k RoundKind) String() string {
	if k == KindSwiss {
		return "swiss"
	} else if k == KindElimination {
		return "elimination"
	} else {
		return "?"
	}
}

// Player is a registered participant. Players are immutable once loaded.
type Player struct {
	ID        string
	FirstName string
	LastName  string
	// BirthYear is 0 when unknown; it only feeds division classification
	BirthYear int

	placeholder bool
}

func (p Player) DisplayName() string {
	switch {
	case p.placeholder:
		return fmt.Sprintf("Unknown Player (%v)", p.ID)
	case p.FirstName != "" && p.LastName != "":
		return p.FirstName + " " + p.LastName
	case p.FirstName != "":
		return p.FirstName
	case p.LastName != "":
		return p.LastName
	default:
		return p.ID
	}
}

// IsPlaceholder reports whether the player was synthesized for a match
// reference that had no matching registration.
func (p Player) IsPlaceholder() bool {
	return p.placeholder
}

// Match is a single pairing within a round. Player2 is empty for a bye.
type Match struct {
	Table   int
	Player1 string
	Player2 string
	Outcome Outcome
}

func (m Match) IsBye() bool {
	return m.Player2 == "" || m.Outcome == OutcomeBye
}

// IsReported reports whether a result has been entered for the match.
func (m Match) IsReported() bool {
	return m.Outcome != OutcomeUnreported
}

// Involves reports whether playerID sits on either side of the match.
func (m Match) Involves(playerID string) bool {
	return playerID != "" && (m.Player1 == playerID || m.Player2 == playerID)
}

// Opponent returns the id of playerID's opponent, or "" for a bye or when
// playerID is not part of the match.
func (m Match) Opponent(playerID string) string {
	if m.IsBye() {
		return ""
	}
	if m.Player1 == playerID {
		return m.Player2
	}
	if m.Player2 == playerID {
		return m.Player1
	}
	return ""
}

// Round is an ordinal round along with its matches.
type Round struct {
	Number  int
	Kind    RoundKind
	Matches []Match
}

// IsComplete reports whether every match in the round has a result. A round
// without any matches has not been paired yet and is not complete.
func (r Round) IsComplete() bool {
	if len(r.Matches) == 0 {
		return false
	}
	for _, m := range r.Matches {
		if !m.IsReported() {
			return false
		}
	}
	return true
}

// Warning describes a data-quality problem found while building a Snapshot.
// Warnings never abort a load.
type Warning struct {
	Round int
	Table int
	Msg   string
}

func (w Warning) String() string {
	if w.Round == 0 {
		return w.Msg
	}
	return fmt.Sprintf("round %d table %d: %s", w.Round, w.Table, w.Msg)
}
