package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"ledger-cli/internal/gesture"
)

// handleMouse routes pointer events to the active gesture machine: card
// drag-and-drop between lanes in column mode, horizontal swipes between
// stages in tab mode.
func (m *appModel) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if m.narrow() {
		return m.handleSwipeMouse(msg)
	}
	return m.handleDragMouse(msg)
}

func (m *appModel) handleDragMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button != tea.MouseButtonLeft {
			return m, nil
		}
		if hit := m.layout.cardAt(msg.X, msg.Y); hit != nil {
			m.focusCard(hit.id)
			m.drag.Start(hit.id)
		}

	case tea.MouseActionMotion:
		if !m.drag.Dragging() {
			return m, nil
		}
		if hit := m.layout.cardAt(msg.X, msg.Y); hit != nil {
			m.drag.HoverCard(hit.id, hit.rect, msg.Y, hit.stage, hit.region)
		} else if zone := m.layout.zoneAt(msg.X, msg.Y); zone != nil {
			m.drag.HoverZone(zone.stage, zone.region)
		} else {
			m.drag.Leave()
		}

	case tea.MouseActionRelease:
		if intent, ok := m.drag.Drop(); ok {
			m.moveCard(intent)
		}
	}
	return m, nil
}

func (m *appModel) handleSwipeMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button != tea.MouseButtonLeft {
			return m, nil
		}
		if hit := m.layout.cardAt(msg.X, msg.Y); hit != nil {
			m.swipe.Begin(hit.id, hit.stage, msg.X, msg.Y)
		}

	case tea.MouseActionMotion:
		m.swipe.Move(msg.X, msg.Y)

	case tea.MouseActionRelease:
		res := m.swipe.End()
		switch res.Kind {
		case gesture.SwipeTap:
			m.focusCard(res.CardID)
			m.detailID = res.CardID
			m.screen = screenDetail
		case gesture.SwipeCommit:
			// Let the card slide out before the board reflows under it.
			id := res.CardID
			return m, tea.Tick(gesture.SwipeExitAnimation, func(time.Time) tea.Msg {
				return swipeSettleMsg{cardID: id}
			})
		}
	}
	return m, nil
}

func (m *appModel) focusCard(id string) {
	m.followCard(id)
}
