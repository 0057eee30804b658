package persist

import (
	"context"

	"ledger-cli/internal/model"
)

// ReorderEntry is one row of a bulk order flush: the final authoritative
// placement of a card after a burst of reorders.
type ReorderEntry struct {
	ID        string       `json:"id"`
	SortOrder int          `json:"sortOrder"`
	Stage     model.Stage  `json:"stage"`
	Region    model.Region `json:"region"`
}

// Remote is the consumed persistence contract. Implementations exist for
// the expeditions REST backend (internal/api) and the local sqlite
// workspace (internal/localstore); the bridge does not care which it talks
// to, and demo mode runs with no remote at all.
type Remote interface {
	// ListCards returns all cards ordered by sortOrder ascending, ties
	// broken by creation time ascending.
	ListCards(ctx context.Context) ([]model.Card, error)
	// CreateCard stores the card and returns it with the server-assigned id.
	CreateCard(ctx context.Context, card model.Card) (model.Card, error)
	UpdateCard(ctx context.Context, id string, patch model.CardPatch) (model.Card, error)
	DeleteCard(ctx context.Context, id string) error
	// BulkReorder applies entries best-effort: each row is independent, the
	// first failure is surfaced.
	BulkReorder(ctx context.Context, entries []ReorderEntry) error
	GetSettings(ctx context.Context) (model.Settings, error)
	UpdateSettings(ctx context.Context, patch model.SettingsPatch) (model.Settings, error)
}

// Entries snapshots the placement of every card into reorder rows, in
// board order.
func Entries(cards []model.Card) []ReorderEntry {
	entries := make([]ReorderEntry, 0, len(cards))
	for _, c := range cards {
		entries = append(entries, ReorderEntry{
			ID:        c.ID,
			SortOrder: c.SortOrder,
			Stage:     c.Stage,
			Region:    c.Region,
		})
	}
	return entries
}
