package board

import "ledger-cli/internal/model"

// Grouping views are pure projections of the Store's sequence. They are
// stable filters, not sorts: cards keep the relative order they have in the
// global sequence, which is what makes the single linear extension render
// correctly inside any partition.

// ByStage returns the cards in the given stage, in global order.
func (s *Store) ByStage(stage model.Stage) []model.Card {
	var out []model.Card
	for _, c := range s.cards {
		if c.Stage == stage {
			out = append(out, c)
		}
	}
	return out
}

// ByStageRegion returns the cards in the given (stage, region) bucket, in
// global order. This backs the region swimlane view.
func (s *Store) ByStageRegion(stage model.Stage, region model.Region) []model.Card {
	var out []model.Card
	for _, c := range s.cards {
		if c.Stage == stage && c.Region == region {
			out = append(out, c)
		}
	}
	return out
}

// CountByStage returns per-stage card counts for the header stats.
func (s *Store) CountByStage() map[model.Stage]int {
	out := make(map[model.Stage]int, len(model.Stages))
	for _, c := range s.cards {
		out[c.Stage]++
	}
	return out
}

// RegionsInStage returns the regions that have at least one card in the
// stage, in the fixed continent order. Empty regions are skipped so swimlane
// rows don't render for them.
func (s *Store) RegionsInStage(stage model.Stage) []model.Region {
	present := map[model.Region]bool{}
	for _, c := range s.cards {
		if c.Stage == stage {
			present[c.Region] = true
		}
	}
	var out []model.Region
	for _, r := range model.Regions {
		if present[r] {
			out = append(out, r)
		}
	}
	return out
}
