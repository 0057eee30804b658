package tui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sirupsen/logrus"

	"ledger-cli/internal/board"
	"ledger-cli/internal/gesture"
	"ledger-cli/internal/model"
	"ledger-cli/internal/persist"
)

type screen int

const (
	screenLoading screen = iota
	screenLoadFailed
	screenBoard
	screenForm
	screenDetail
)

// narrowWidth is where columns stop fitting and the board folds into
// per-stage tabs with swipe navigation.
const narrowWidth = 100

type loadedMsg struct{ err error }

type swipeSettleMsg struct{ cardID string }

type laneKey struct {
	stage  model.Stage
	region model.Region
}

type appModel struct {
	store  *board.Store
	bridge *persist.Bridge
	log    *logrus.Entry

	width  int
	height int

	screen  screen
	loadErr error

	drag   gesture.Drag
	swipe  *gesture.Swipe
	layout boardLayout

	collapsed map[laneKey]bool

	// Keyboard cursor: a stage column and an index into its cards.
	selStage int
	selIndex int

	pendingDelete string

	form     *cardForm
	settings *settingsForm
	detailID string
}

func newAppModel(store *board.Store, bridge *persist.Bridge, logger *logrus.Logger) *appModel {
	return &appModel{
		store:     store,
		bridge:    bridge,
		log:       logger.WithField("component", "tui"),
		screen:    screenLoading,
		swipe:     gesture.NewSwipe(80),
		collapsed: map[laneKey]bool{},
	}
}

func (m *appModel) Init() tea.Cmd {
	return m.loadCmd()
}

func (m *appModel) loadCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		return loadedMsg{err: m.bridge.Load(ctx)}
	}
}

func (m *appModel) narrow() bool {
	return m.width > 0 && m.width < narrowWidth
}

func (m *appModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.swipe.SetViewportWidth(msg.Width)
		return m, nil

	case applyMsg:
		msg.apply()
		m.clampSelection()
		return m, nil

	case loadedMsg:
		if msg.err != nil {
			m.loadErr = msg.err
			m.screen = screenLoadFailed
			m.log.WithError(msg.err).Error("board load failed")
			return m, nil
		}
		m.loadErr = nil
		m.screen = screenBoard
		return m, nil

	case swipeSettleMsg:
		if intent, ok := m.swipe.Finish(); ok {
			m.moveCard(intent)
		}
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		if m.screen == screenBoard {
			return m.handleMouse(msg)
		}
		return m, nil
	}
	return m, nil
}

func (m *appModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}
	switch m.screen {
	case screenLoading:
		return m, nil
	case screenLoadFailed:
		switch msg.String() {
		case "r", "enter":
			m.screen = screenLoading
			return m, m.loadCmd()
		case "q", "esc":
			return m, tea.Quit
		}
		return m, nil
	case screenForm:
		return m.handleFormKey(msg)
	case screenDetail:
		switch msg.String() {
		case "q", "esc", "v", "enter":
			m.screen = screenBoard
		case "e":
			if card, ok := m.store.Find(m.detailID); ok {
				form := newCardForm(card, false)
				m.form = &form
				m.screen = screenForm
			}
		}
		return m, nil
	}
	return m.handleBoardKey(msg)
}

func (m *appModel) handleBoardKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.settings != nil {
		return m.handleSettingsKey(msg)
	}
	if m.pendingDelete != "" {
		switch msg.String() {
		case "y", "enter":
			m.bridge.DeleteCard(m.pendingDelete)
			m.pendingDelete = ""
			m.clampSelection()
		default:
			m.pendingDelete = ""
		}
		return m, nil
	}

	switch msg.String() {
	case "q", "esc":
		if m.drag.Dragging() {
			m.drag.Cancel()
			return m, nil
		}
		return m, tea.Quit
	case "left", "h":
		if m.selStage > 0 {
			m.selStage--
			m.clampSelection()
		}
	case "right", "l":
		if m.selStage < len(model.Stages)-1 {
			m.selStage++
			m.clampSelection()
		}
	case "up", "k":
		if m.selIndex > 0 {
			m.selIndex--
		}
	case "down", "j":
		cards := m.stageCards()
		if m.selIndex < len(cards)-1 {
			m.selIndex++
		}
	case "K":
		m.moveWithinStage(-1)
	case "J":
		m.moveWithinStage(+1)
	case "H":
		m.moveToStage(model.PrevStage)
	case "L":
		m.moveToStage(model.NextStage)
	case "n":
		form := newCardForm(model.Card{
			Stage:  model.Stages[m.selStage],
			Region: model.RegionEurope,
		}, true)
		m.form = &form
		m.screen = screenForm
	case "enter", "e":
		if card, ok := m.selectedCard(); ok {
			form := newCardForm(card, false)
			m.form = &form
			m.screen = screenForm
		}
	case "v":
		if card, ok := m.selectedCard(); ok {
			m.detailID = card.ID
			m.screen = screenDetail
		}
	case "d", "x":
		if card, ok := m.selectedCard(); ok {
			m.pendingDelete = card.ID
		}
	case "z":
		if card, ok := m.selectedCard(); ok {
			key := laneKey{stage: card.Stage, region: card.Region}
			m.collapsed[key] = !m.collapsed[key]
		}
	case "t":
		form := newSettingsForm(m.bridge.Settings())
		m.settings = &form
	case "r":
		m.screen = screenLoading
		return m, m.loadCmd()
	}
	return m, nil
}

// stageCards lists the cards of the cursor's stage in board order.
func (m *appModel) stageCards() []model.Card {
	return m.store.ByStage(model.Stages[m.selStage])
}

func (m *appModel) selectedCard() (model.Card, bool) {
	cards := m.stageCards()
	if m.selIndex < 0 || m.selIndex >= len(cards) {
		return model.Card{}, false
	}
	return cards[m.selIndex], true
}

func (m *appModel) clampSelection() {
	if n := len(m.stageCards()); m.selIndex >= n {
		m.selIndex = n - 1
	}
	if m.selIndex < 0 {
		m.selIndex = 0
	}
}

func (m *appModel) moveCard(intent board.MoveIntent) {
	if !m.store.ApplyMove(intent) {
		return
	}
	m.bridge.NotifyReorder()
	m.followCard(intent.CardID)
}

// followCard keeps the cursor on a card after it moves.
func (m *appModel) followCard(id string) {
	card, ok := m.store.Find(id)
	if !ok {
		return
	}
	for i, s := range model.Stages {
		if s == card.Stage {
			m.selStage = i
		}
	}
	for i, c := range m.store.ByStage(card.Stage) {
		if c.ID == id {
			m.selIndex = i
		}
	}
}

func (m *appModel) moveWithinStage(delta int) {
	cards := m.stageCards()
	target := m.selIndex + delta
	if m.selIndex < 0 || m.selIndex >= len(cards) || target < 0 || target >= len(cards) {
		return
	}
	pos := board.PlaceBefore
	if delta > 0 {
		pos = board.PlaceAfter
	}
	m.moveCard(board.MoveIntent{
		CardID: cards[m.selIndex].ID,
		RefID:  cards[target].ID,
		Pos:    pos,
	})
}

func (m *appModel) moveToStage(step func(model.Stage) model.Stage) {
	card, ok := m.selectedCard()
	if !ok {
		return
	}
	next := step(card.Stage)
	if next == "" || next == card.Stage {
		return
	}
	m.moveCard(board.MoveIntent{CardID: card.ID, Stage: next})
}
