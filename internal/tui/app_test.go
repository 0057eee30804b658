package tui

import (
	"context"
	"errors"
	"io"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sirupsen/logrus"

	"ledger-cli/internal/board"
	"ledger-cli/internal/gesture"
	"ledger-cli/internal/model"
	"ledger-cli/internal/persist"
)

func testLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

// newDemoModel builds a loaded board model backed by the demo seed.
func newDemoModel(t *testing.T, width, height int) *appModel {
	t.Helper()
	store := board.NewStore()
	bridge := persist.NewBridge(store, persist.Options{Logger: testLogger()})
	m := newAppModel(store, bridge, testLogger())
	update(t, m, tea.WindowSizeMsg{Width: width, Height: height})
	if err := bridge.Load(context.Background()); err != nil {
		t.Fatalf("demo load: %v", err)
	}
	update(t, m, loadedMsg{})
	if m.screen != screenBoard {
		t.Fatalf("screen = %v after load", m.screen)
	}
	return m
}

func update(t *testing.T, m *appModel, msg tea.Msg) tea.Cmd {
	t.Helper()
	next, cmd := m.Update(msg)
	if next.(*appModel) != m {
		t.Fatal("model identity changed")
	}
	return cmd
}

func key(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "ctrl+s":
		return tea.KeyMsg{Type: tea.KeyCtrlS}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestLoadFailureOffersRetry(t *testing.T) {
	store := board.NewStore()
	bridge := persist.NewBridge(store, persist.Options{Logger: testLogger()})
	m := newAppModel(store, bridge, testLogger())

	update(t, m, loadedMsg{err: errors.New("connection refused")})
	if m.screen != screenLoadFailed {
		t.Fatalf("screen = %v, want load-failed", m.screen)
	}
	cmd := update(t, m, key("r"))
	if m.screen != screenLoading {
		t.Errorf("screen = %v after retry, want loading", m.screen)
	}
	if cmd == nil {
		t.Error("retry did not schedule a reload")
	}
}

func TestKeyboardReorderWithinStage(t *testing.T) {
	m := newDemoModel(t, 160, 50)
	m.selStage = 0
	m.selIndex = 1

	cards := m.stageCards()
	if len(cards) < 2 {
		t.Fatalf("demo seed has %d dreaming cards, need 2", len(cards))
	}
	first, second := cards[0].ID, cards[1].ID

	update(t, m, key("K"))
	after := m.stageCards()
	if after[0].ID != second || after[1].ID != first {
		t.Errorf("order after move = %s,%s, want swapped", after[0].ID, after[1].ID)
	}
	if m.selIndex != 0 {
		t.Errorf("cursor did not follow the card: selIndex=%d", m.selIndex)
	}
}

func TestKeyboardMoveAcrossStages(t *testing.T) {
	m := newDemoModel(t, 160, 50)
	m.selStage = 0
	m.selIndex = 0
	card, _ := m.selectedCard()

	update(t, m, key("L"))
	moved, ok := m.store.Find(card.ID)
	if !ok {
		t.Fatal("card vanished")
	}
	if moved.Stage != model.StagePlanning {
		t.Errorf("stage = %q, want planning", moved.Stage)
	}
	if m.selStage != 1 {
		t.Errorf("cursor stage = %d, want 1", m.selStage)
	}
}

func TestKeyboardMoveStopsAtPipelineEdges(t *testing.T) {
	m := newDemoModel(t, 160, 50)
	m.selStage = 0
	m.selIndex = 0
	before := m.store.Cards()

	// H on the first stage and L on the last have nowhere to go.
	update(t, m, key("H"))
	m.selStage = len(model.Stages) - 1
	m.selIndex = 0
	update(t, m, key("L"))

	after := m.store.Cards()
	if len(after) != len(before) {
		t.Fatalf("card count changed: %d -> %d", len(before), len(after))
	}
	for i := range before {
		if after[i].ID != before[i].ID || after[i].Stage != before[i].Stage || after[i].SortOrder != before[i].SortOrder {
			t.Errorf("position %d changed: %+v -> %+v", i, before[i], after[i])
		}
	}
}

func TestMouseDragMovesCardBeforeTarget(t *testing.T) {
	m := newDemoModel(t, 160, 50)
	_ = m.View() // build the layout

	if len(m.layout.cards) < 2 {
		t.Fatalf("layout recorded %d cards", len(m.layout.cards))
	}
	src := m.layout.cards[len(m.layout.cards)-1]
	dst := m.layout.cards[0]

	press := tea.MouseMsg{X: src.rect.X + 1, Y: src.rect.Y + 1, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft}
	update(t, m, press)
	if !m.drag.Dragging() {
		t.Fatal("press on a card did not start a drag")
	}

	// Hover above the target's midpoint: insert before it.
	hoverY := dst.rect.Y
	update(t, m, tea.MouseMsg{X: dst.rect.X + 1, Y: hoverY, Action: tea.MouseActionMotion})
	update(t, m, tea.MouseMsg{X: dst.rect.X + 1, Y: hoverY, Action: tea.MouseActionRelease})

	if m.drag.Dragging() {
		t.Error("drag still active after release")
	}
	moved, _ := m.store.Find(src.id)
	ref, _ := m.store.Find(dst.id)
	if moved.SortOrder != ref.SortOrder-1 {
		t.Errorf("dragged card order=%d, ref order=%d; want directly before", moved.SortOrder, ref.SortOrder)
	}
	if moved.Stage != dst.stage || moved.Region != dst.region {
		t.Errorf("dragged card landed in %s/%s, want %s/%s", moved.Stage, moved.Region, dst.stage, dst.region)
	}
}

func TestDragReleaseOutsideBoardIsNoOp(t *testing.T) {
	m := newDemoModel(t, 160, 50)
	_ = m.View()
	before := m.store.Snapshot()

	src := m.layout.cards[0]
	update(t, m, tea.MouseMsg{X: src.rect.X + 1, Y: src.rect.Y + 1, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	update(t, m, tea.MouseMsg{X: m.width - 1, Y: m.height - 1, Action: tea.MouseActionMotion})
	update(t, m, tea.MouseMsg{X: m.width - 1, Y: m.height - 1, Action: tea.MouseActionRelease})

	after := m.store.Snapshot()
	for i := range before {
		if before[i].ID != after[i].ID || before[i].SortOrder != after[i].SortOrder {
			t.Fatalf("board changed after aborted drag at %d", i)
		}
	}
}

func TestNarrowSwipeCommitsStageMove(t *testing.T) {
	m := newDemoModel(t, 80, 50)
	if !m.narrow() {
		t.Fatal("width 80 should fold into tabs")
	}
	m.selStage = 1 // planning tab
	_ = m.View()

	if len(m.layout.cards) == 0 {
		t.Fatal("no cards laid out in tab view")
	}
	hit := m.layout.cards[0]

	x := hit.rect.X + 10
	y := hit.rect.Y + 1
	update(t, m, tea.MouseMsg{X: x, Y: y, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	// Swipe left past the commit threshold (min(80, 80/4) = 20).
	update(t, m, tea.MouseMsg{X: x - 12, Y: y, Action: tea.MouseActionMotion})
	update(t, m, tea.MouseMsg{X: x - 30, Y: y, Action: tea.MouseActionMotion})
	cmd := update(t, m, tea.MouseMsg{X: x - 30, Y: y, Action: tea.MouseActionRelease})
	if cmd == nil {
		t.Fatal("commit did not schedule the settle tick")
	}

	update(t, m, swipeSettleMsg{cardID: hit.id})
	moved, _ := m.store.Find(hit.id)
	if moved.Stage != model.StageBooked {
		t.Errorf("stage after left swipe = %q, want booked", moved.Stage)
	}
}

func TestNarrowTapOpensDetail(t *testing.T) {
	m := newDemoModel(t, 80, 50)
	m.selStage = 1
	_ = m.View()
	hit := m.layout.cards[len(m.layout.cards)-1]

	x, y := hit.rect.X+2, hit.rect.Y+1
	update(t, m, tea.MouseMsg{X: x, Y: y, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	update(t, m, tea.MouseMsg{X: x + 3, Y: y, Action: tea.MouseActionMotion})
	update(t, m, tea.MouseMsg{X: x + 3, Y: y, Action: tea.MouseActionRelease})

	sel, ok := m.selectedCard()
	if !ok || sel.ID != hit.id {
		t.Errorf("selected = %+v, want tap target %s", sel, hit.id)
	}
	if m.screen != screenDetail || m.detailID != hit.id {
		t.Errorf("screen = %v detailID = %q, want detail view of %s", m.screen, m.detailID, hit.id)
	}

	update(t, m, key("esc"))
	if m.screen != screenBoard {
		t.Errorf("esc did not return to the board, screen = %v", m.screen)
	}
}

func TestCreateCardThroughForm(t *testing.T) {
	m := newDemoModel(t, 160, 50)
	before := m.store.Len()

	update(t, m, key("n"))
	if m.screen != screenForm || m.form == nil {
		t.Fatal("n did not open the create form")
	}
	for _, r := range "Timbuktu" {
		update(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
	update(t, m, key("ctrl+s"))

	if m.screen != screenBoard {
		t.Fatalf("screen = %v after submit", m.screen)
	}
	if m.store.Len() != before+1 {
		t.Fatalf("store len = %d, want %d", m.store.Len(), before+1)
	}
	created, ok := m.selectedCard()
	if !ok || created.Title != "Timbuktu" {
		t.Errorf("cursor on %+v, want the new card", created)
	}
	if created.SortOrder != m.store.Len()-1 {
		t.Errorf("new card sortOrder = %d, want appended at end", created.SortOrder)
	}
}

func TestFormRejectsEmptyTitle(t *testing.T) {
	m := newDemoModel(t, 160, 50)
	before := m.store.Len()

	update(t, m, key("n"))
	update(t, m, key("ctrl+s"))
	if m.screen != screenForm {
		t.Error("empty submit should keep the form open")
	}
	if m.store.Len() != before {
		t.Error("empty submit created a card")
	}
}

func TestEditFormPatchesOnlyChangedFields(t *testing.T) {
	rating := 3
	before := model.Card{
		ID: "c1", Stage: model.StageCompleted, Region: model.RegionAsia,
		Title: "Kyoto", Budget: "$3,000", Tags: []string{"zen"}, Rating: &rating,
	}
	after := before.Clone()
	after.Budget = "$3,500"

	p := diffCard(before, after)
	if p.Budget == nil || *p.Budget != "$3,500" {
		t.Error("budget change not in patch")
	}
	if p.Title != nil || p.Stage != nil || p.Tags != nil || p.Rating != nil {
		t.Errorf("unchanged fields leaked into patch: %+v", p)
	}
}

func TestDeleteRequiresConfirmation(t *testing.T) {
	m := newDemoModel(t, 160, 50)
	before := m.store.Len()
	card, _ := m.selectedCard()

	update(t, m, key("d"))
	if m.pendingDelete != card.ID {
		t.Fatal("d did not arm the delete confirmation")
	}
	update(t, m, key("n")) // anything but y aborts
	if m.store.Len() != before {
		t.Fatal("aborted delete removed a card")
	}

	update(t, m, key("d"))
	update(t, m, key("y"))
	if m.store.Len() != before-1 {
		t.Errorf("store len = %d after confirmed delete, want %d", m.store.Len(), before-1)
	}
	if _, ok := m.store.Find(card.ID); ok {
		t.Error("card still present after delete")
	}
}

func TestCollapseHidesLaneCards(t *testing.T) {
	m := newDemoModel(t, 160, 50)
	card, _ := m.selectedCard()

	_ = m.View()
	visible := func() int {
		n := 0
		for _, c := range m.layout.cards {
			if c.stage == card.Stage && c.region == card.Region {
				n++
			}
		}
		return n
	}
	laneSize := visible()
	if laneSize == 0 {
		t.Fatal("selected lane rendered no cards")
	}

	update(t, m, key("z"))
	_ = m.View()
	if visible() != 0 {
		t.Error("collapsed lane still lays out cards")
	}

	update(t, m, key("z"))
	_ = m.View()
	if visible() != laneSize {
		t.Error("expand did not restore the lane")
	}
}

func TestSettingsFormSavesHeader(t *testing.T) {
	m := newDemoModel(t, 160, 50)

	update(t, m, key("t"))
	if m.settings == nil {
		t.Fatal("t did not open the header editor")
	}
	m.settings.title.SetValue("JUNGLE LOG")
	update(t, m, key("enter"))

	if m.settings != nil {
		t.Error("header editor still open after save")
	}
	if got := m.bridge.Settings().Title; got != "JUNGLE LOG" {
		t.Errorf("title = %q", got)
	}
}

func TestViewShowsDemoBadge(t *testing.T) {
	m := newDemoModel(t, 160, 50)
	if badge := m.statusBadge(); badge == "" || !containsDemo(badge) {
		t.Errorf("demo badge missing: %q", badge)
	}
}

func containsDemo(s string) bool {
	for i := 0; i+4 <= len(s); i++ {
		if s[i:i+4] == "DEMO" {
			return true
		}
	}
	return false
}

func TestSwipeRespectsScrollHandoff(t *testing.T) {
	m := newDemoModel(t, 80, 50)
	m.selStage = 1
	_ = m.View()
	hit := m.layout.cards[0]
	before, _ := m.store.Find(hit.id)

	x, y := hit.rect.X+10, hit.rect.Y+1
	update(t, m, tea.MouseMsg{X: x, Y: y, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	// Mostly vertical: the gesture belongs to scrolling, not stage moves.
	update(t, m, tea.MouseMsg{X: x - 4, Y: y + 12, Action: tea.MouseActionMotion})
	update(t, m, tea.MouseMsg{X: x - 40, Y: y + 12, Action: tea.MouseActionMotion})
	update(t, m, tea.MouseMsg{X: x - 40, Y: y + 12, Action: tea.MouseActionRelease})

	after, _ := m.store.Find(hit.id)
	if after.Stage != before.Stage {
		t.Errorf("scroll gesture moved the card to %q", after.Stage)
	}
	if m.swipe.Phase() != gesture.SwipeIdle {
		t.Errorf("swipe machine not reset: %v", m.swipe.Phase())
	}
}
