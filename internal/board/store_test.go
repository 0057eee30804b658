package board

import (
	"reflect"
	"testing"
	"time"

	"ledger-cli/internal/model"
)

func card(id string, stage model.Stage, region model.Region, order int) model.Card {
	return model.Card{
		ID: id, Stage: stage, Region: region,
		Title: "card " + id, SortOrder: order,
		CreatedAt: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC).Add(time.Duration(order) * time.Minute),
	}
}

func ids(cards []model.Card) []string {
	out := make([]string, 0, len(cards))
	for _, c := range cards {
		out = append(out, c.ID)
	}
	return out
}

func TestLoadSortsAndRenumbers(t *testing.T) {
	s := NewStore()
	s.Load([]model.Card{
		card("c", model.StagePlanning, model.RegionEurope, 7),
		card("a", model.StageDreaming, model.RegionAsia, 2),
		card("b", model.StageDreaming, model.RegionAsia, 5),
	})

	got := ids(s.Cards())
	want := []string{"a", "b", "c"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("expected load order %v, got=%v", want, got)
	}
	for i, c := range s.Cards() {
		if c.SortOrder != i {
			t.Fatalf("expected dense sort orders after load, got %d at index %d", c.SortOrder, i)
		}
	}
}

func TestLoadBreaksSortOrderTiesByCreatedAt(t *testing.T) {
	older := card("young", model.StageDreaming, model.RegionAsia, 3)
	newer := card("old", model.StageDreaming, model.RegionAsia, 3)
	older.CreatedAt = time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)
	newer.CreatedAt = time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	s := NewStore()
	s.Load([]model.Card{older, newer})

	got := ids(s.Cards())
	want := []string{"old", "young"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("expected tie-break by creation time, got=%v", got)
	}
}

func TestInsertAppendsWithNextOrder(t *testing.T) {
	s := NewStore()
	s.Load([]model.Card{
		card("a", model.StageDreaming, model.RegionAsia, 0),
		card("b", model.StagePlanning, model.RegionAsia, 1),
	})
	s.Insert(card("d", model.StageBooked, model.RegionEurope, 0))

	got := ids(s.Cards())
	want := []string{"a", "b", "d"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("expected insert at end, got=%v", got)
	}
	if s.Cards()[2].SortOrder != 2 {
		t.Fatalf("expected inserted card sortOrder=2, got=%d", s.Cards()[2].SortOrder)
	}
}

func TestReplaceMergesPatch(t *testing.T) {
	s := NewStore()
	s.Load([]model.Card{card("a", model.StageDreaming, model.RegionAsia, 0)})

	title := "Lost City"
	stage := model.StageBooked
	s.Replace("a", model.CardPatch{Title: &title, Stage: &stage})

	got, ok := s.Find("a")
	if !ok {
		t.Fatalf("expected card to remain present")
	}
	if got.Title != "Lost City" || got.Stage != model.StageBooked {
		t.Fatalf("expected patch applied, got title=%q stage=%q", got.Title, got.Stage)
	}
}

func TestReplaceClearsOptionalFields(t *testing.T) {
	s := NewStore()
	c := card("a", model.StageCompleted, model.RegionEurope, 0)
	rating := 4
	c.Rating = &rating
	s.Load([]model.Card{c})

	var cleared *int
	s.Replace("a", model.CardPatch{Rating: &cleared})

	got, _ := s.Find("a")
	if got.Rating != nil {
		t.Fatalf("expected rating cleared, got=%v", *got.Rating)
	}
}

func TestRemoveRenumbers(t *testing.T) {
	s := NewStore()
	s.Load([]model.Card{
		card("a", model.StageDreaming, model.RegionAsia, 0),
		card("b", model.StageDreaming, model.RegionAsia, 1),
		card("c", model.StagePlanning, model.RegionAsia, 2),
	})
	s.Remove("b")

	got := ids(s.Cards())
	want := []string{"a", "c"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("expected b removed, got=%v", got)
	}
	if s.Cards()[1].SortOrder != 1 {
		t.Fatalf("expected renumbered sortOrder=1 for c, got=%d", s.Cards()[1].SortOrder)
	}
}

func TestRemoveAndReplaceMissingIDAreNoOps(t *testing.T) {
	s := NewStore()
	s.Load([]model.Card{
		card("a", model.StageDreaming, model.RegionAsia, 0),
		card("b", model.StagePlanning, model.RegionEurope, 1),
	})
	before := s.Snapshot()

	s.Remove("nope")
	title := "x"
	s.Replace("nope", model.CardPatch{Title: &title})

	if !reflect.DeepEqual(before, s.Snapshot()) {
		t.Fatalf("expected store unchanged after no-op mutations")
	}
}

func TestSwapIDPreservesPositionAndIsIdempotent(t *testing.T) {
	s := NewStore()
	s.Load([]model.Card{
		card("a", model.StageDreaming, model.RegionAsia, 0),
		card("b", model.StageDreaming, model.RegionAsia, 1),
	})
	s.Insert(card("temp-1", model.StagePlanning, model.RegionEurope, 0))

	s.SwapID("temp-1", "srv-9")
	first := s.Snapshot()

	s.SwapID("temp-1", "srv-9")
	second := s.Snapshot()

	if !reflect.DeepEqual(first, second) {
		t.Fatalf("expected repeated id-swap to be a no-op")
	}
	got := ids(second)
	want := []string{"a", "b", "srv-9"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("expected srv-9 in original position, got=%v", got)
	}
	if second[2].Title != "card temp-1" || second[2].SortOrder != 2 {
		t.Fatalf("expected field values preserved across swap, got=%+v", second[2])
	}
}

func TestSnapshotIsDetached(t *testing.T) {
	s := NewStore()
	c := card("a", model.StageDreaming, model.RegionAsia, 0)
	c.Tags = []string{"trek"}
	s.Load([]model.Card{c})

	snap := s.Snapshot()
	snap[0].Tags[0] = "mutated"
	snap[0].Title = "mutated"

	got, _ := s.Find("a")
	if got.Tags[0] != "trek" || got.Title != "card a" {
		t.Fatalf("expected snapshot mutations to not reach the store, got=%+v", got)
	}
}
