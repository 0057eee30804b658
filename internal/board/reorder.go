package board

import "ledger-cli/internal/model"

// Placement says which side of the reference card the dragged card lands on.
type Placement string

const (
	PlaceBefore Placement = "before"
	PlaceAfter  Placement = "after"
)

// MoveIntent is the single outcome type shared by both gesture modalities.
// RefID may be empty (drop on an empty zone / end of a bucket), in which
// case the card is appended to the end of the whole sequence. Stage and
// Region, when non-empty, override the dragged card's fields before
// reinsertion.
type MoveIntent struct {
	CardID string
	RefID  string
	Pos    Placement
	Stage  model.Stage
	Region model.Region
}

// ApplyMove converts a move intent into a new Store sequence and reports
// whether anything changed. It never fails: a missing dragged card voids the
// intent, and a vanished reference card (e.g. concurrently deleted) falls
// back to end-of-sequence placement.
func (s *Store) ApplyMove(intent MoveIntent) bool {
	dragIdx := -1
	for i := range s.cards {
		if s.cards[i].ID == intent.CardID {
			dragIdx = i
			break
		}
	}
	if dragIdx < 0 {
		return false
	}

	moved := s.cards[dragIdx].Clone()
	if intent.Stage != "" {
		moved.Stage = intent.Stage
	}
	if intent.Region != "" {
		moved.Region = intent.Region
	}

	// Remove the dragged card; everything else keeps relative order.
	rest := make([]model.Card, 0, len(s.cards)-1)
	rest = append(rest, s.cards[:dragIdx]...)
	rest = append(rest, s.cards[dragIdx+1:]...)

	insertAt := len(rest)
	if intent.RefID != "" && intent.RefID != intent.CardID {
		for i := range rest {
			if rest[i].ID == intent.RefID {
				insertAt = i
				if intent.Pos == PlaceAfter {
					insertAt = i + 1
				}
				break
			}
		}
	}
	if insertAt < 0 {
		insertAt = 0
	}
	if insertAt > len(rest) {
		insertAt = len(rest)
	}

	next := make([]model.Card, 0, len(rest)+1)
	next = append(next, rest[:insertAt]...)
	next = append(next, moved)
	next = append(next, rest[insertAt:]...)

	s.setSequence(next)
	return true
}
