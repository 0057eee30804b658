package board

import (
	"sort"
	"strings"

	"ledger-cli/internal/model"
)

// Store holds the authoritative in-memory card sequence. It is the single
// owner of card lifetime; grouping views and renderers read the live slice
// and must never mutate it. All mutations are synchronous and atomic from
// the caller's perspective (single-threaded event loop).
type Store struct {
	cards []model.Card
}

func NewStore() *Store {
	return &Store{}
}

// Load replaces the sequence with cards sorted by (sortOrder, createdAt, id)
// and renumbers densely. The tie-breaks keep the board deterministic even
// when the backend hands back duplicate sort orders.
func (s *Store) Load(cards []model.Card) {
	s.cards = make([]model.Card, 0, len(cards))
	for _, c := range cards {
		s.cards = append(s.cards, c.Clone())
	}
	sort.SliceStable(s.cards, func(i, j int) bool {
		return compareCards(s.cards[i], s.cards[j]) < 0
	})
	s.renumber()
}

func compareCards(a, b model.Card) int {
	if a.SortOrder != b.SortOrder {
		if a.SortOrder < b.SortOrder {
			return -1
		}
		return 1
	}
	if !a.CreatedAt.Equal(b.CreatedAt) {
		if a.CreatedAt.Before(b.CreatedAt) {
			return -1
		}
		return 1
	}
	if a.ID < b.ID {
		return -1
	}
	if a.ID > b.ID {
		return 1
	}
	return 0
}

// Insert appends the card at the end of the global sequence and assigns it
// the next dense sort order.
func (s *Store) Insert(card model.Card) {
	c := card.Clone()
	c.SortOrder = len(s.cards)
	s.cards = append(s.cards, c)
}

// Replace merges a partial update into the card matching id. A missing id is
// a silent no-op, never an error.
func (s *Store) Replace(id string, patch model.CardPatch) {
	for i := range s.cards {
		if s.cards[i].ID == id {
			s.cards[i].Apply(patch)
			return
		}
	}
}

// Remove filters the card out. A missing id is a silent no-op.
func (s *Store) Remove(id string) {
	for i := range s.cards {
		if s.cards[i].ID == id {
			s.cards = append(s.cards[:i], s.cards[i+1:]...)
			s.renumber()
			return
		}
	}
}

// SwapID replaces a temporary client id with the server-assigned permanent
// id in place, preserving position and every field. Applying the same swap
// twice is a no-op, so a stale confirmation is harmless.
func (s *Store) SwapID(tempID, permID string) {
	tempID = strings.TrimSpace(tempID)
	permID = strings.TrimSpace(permID)
	if tempID == "" || permID == "" {
		return
	}
	for i := range s.cards {
		if s.cards[i].ID == tempID {
			s.cards[i].ID = permID
			return
		}
	}
}

// Find returns a copy of the card with the given id.
func (s *Store) Find(id string) (model.Card, bool) {
	for i := range s.cards {
		if s.cards[i].ID == id {
			return s.cards[i].Clone(), true
		}
	}
	return model.Card{}, false
}

// Cards returns the live ordered slice for read-only use.
func (s *Store) Cards() []model.Card {
	return s.cards
}

// Snapshot returns a deep copy of the sequence, e.g. for persistence
// payloads that may outlive further mutations.
func (s *Store) Snapshot() []model.Card {
	out := make([]model.Card, 0, len(s.cards))
	for _, c := range s.cards {
		out = append(out, c.Clone())
	}
	return out
}

// Len returns the number of cards.
func (s *Store) Len() int {
	return len(s.cards)
}

// setSequence installs an already-ordered sequence (reorder engine output).
func (s *Store) setSequence(cards []model.Card) {
	s.cards = cards
	s.renumber()
}

// renumber reassigns sortOrder by array position, keeping the global order
// dense and gapless.
func (s *Store) renumber() {
	for i := range s.cards {
		s.cards[i].SortOrder = i
	}
}
