package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	xansi "github.com/charmbracelet/x/ansi"

	"ledger-cli/internal/gesture"
	"ledger-cli/internal/model"
	"ledger-cli/internal/persist"
)

func (m *appModel) View() string {
	switch m.screen {
	case screenLoading:
		return m.centered("Consulting the maps…")
	case screenLoadFailed:
		msg := "The expedition records could not be reached.\n\n" +
			subStyle.Render(m.loadErr.Error()) + "\n\n" +
			helpStyle.Render("r retry · q quit")
		return m.centered(msg)
	case screenForm:
		return m.centered(modalStyle.Render(m.form.view()))
	case screenDetail:
		return m.detailView()
	}
	return m.boardView()
}

func (m *appModel) centered(s string) string {
	if m.width == 0 {
		return s
	}
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, s)
}

func (m *appModel) statusBadge() string {
	if m.bridge.Demo() {
		return subStyle.Render("⛺ DEMO — nothing is saved")
	}
	switch m.bridge.Status() {
	case persist.StatusSaving:
		return statusSavingStyle.Render("◌ charting…")
	case persist.StatusError:
		return statusErrorStyle.Render("⚠ save failed — changes kept locally")
	default:
		return statusSavedStyle.Render("● all charted")
	}
}

func (m *appModel) headerView() string {
	settings := m.bridge.Settings()
	left := titleStyle.Render(settings.Title)
	right := m.statusBadge()
	gap := m.width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		gap = 1
	}
	line1 := left + strings.Repeat(" ", gap) + right
	line2 := subStyle.Render(settings.Subtitle)
	return line1 + "\n" + line2 + "\n"
}

func (m *appModel) footerView() string {
	if m.pendingDelete != "" {
		if card, ok := m.store.Find(m.pendingDelete); ok {
			return statusErrorStyle.Render(fmt.Sprintf("abandon %q? y/n", card.Title))
		}
	}
	if m.settings != nil {
		return m.settings.view()
	}
	help := "↑↓←→ navigate · shift+arrows move · n new · e edit · v notes · d delete · z fold lane · t header · q quit"
	if m.narrow() {
		help = "drag a card sideways to change stage · " + help
	}
	return helpStyle.Render(help)
}

func (m *appModel) boardView() string {
	m.layout.reset()

	header := m.headerView()
	top := lipgloss.Height(header)

	var body string
	if m.narrow() {
		body = m.tabbedView(top)
	} else {
		body = m.columnsView(top)
	}
	return header + body + "\n" + m.footerView()
}

func (m *appModel) columnsView(top int) string {
	colW := m.width / len(model.Stages)
	if colW < 20 {
		colW = 20
	}
	cols := make([]string, 0, len(model.Stages))
	for i, stage := range model.Stages {
		cols = append(cols, m.renderColumn(stage, i*colW, top, colW))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, cols...)
}

func (m *appModel) tabbedView(top int) string {
	tabs := make([]string, 0, len(model.Stages))
	counts := m.store.CountByStage()
	for i, stage := range model.Stages {
		info := model.InfoForStage(stage)
		label := fmt.Sprintf("%s %d", info.Glyph, counts[stage])
		style := helpStyle
		if i == m.selStage {
			style = stageHeaderStyle(stage)
			label = fmt.Sprintf("%s %s %d", info.Glyph, info.Label, counts[stage])
		}
		tabs = append(tabs, style.Render(label))
	}
	bar := strings.Join(tabs, "  ") + "\n"
	return bar + m.renderColumn(model.Stages[m.selStage], 0, top+lipgloss.Height(bar), m.width)
}

// renderColumn renders one stage column and records every card and drop
// zone it lays out.
func (m *appModel) renderColumn(stage model.Stage, x, top, w int) string {
	info := model.InfoForStage(stage)
	counts := m.store.CountByStage()

	var parts []string
	y := top

	head := stageHeaderStyle(stage).Render(fmt.Sprintf("%s %s (%d)", info.Glyph, info.Label, counts[stage])) +
		"\n" + subStyle.Render(info.Subtitle)
	parts = append(parts, head)
	headH := lipgloss.Height(head)
	m.layout.addZone(gesture.Rect{X: x, Y: y, W: w, H: headH}, stage, "")
	y += headH

	for _, region := range m.store.RegionsInStage(stage) {
		cards := m.store.ByStageRegion(stage, region)
		rinfo := model.InfoForRegion(region)
		key := laneKey{stage: stage, region: region}

		count := fmt.Sprintf(" (%d)", len(cards))
		if m.collapsed[key] {
			count += " ▸"
		}
		lane := regionStyle(region).Render(rinfo.Glyph+" "+rinfo.Name) + laneStyle.Render(count)
		parts = append(parts, lane)
		laneH := lipgloss.Height(lane)
		m.layout.addZone(gesture.Rect{X: x, Y: y, W: w, H: laneH}, stage, region)
		y += laneH

		if m.collapsed[key] {
			continue
		}
		for _, card := range cards {
			rendered := m.renderCard(card, w-2)
			parts = append(parts, rendered)
			h := lipgloss.Height(rendered)
			m.layout.addCard(card.ID, gesture.Rect{X: x, Y: y, W: w, H: h}, stage, region)
			y += h
		}
	}

	// The rest of the column drops at the stage tail.
	if rest := m.height - y - 1; rest > 0 {
		m.layout.addZone(gesture.Rect{X: x, Y: y, W: w, H: rest}, stage, "")
	}

	return lipgloss.NewStyle().Width(w).Render(strings.Join(parts, "\n"))
}

func (m *appModel) renderCard(card model.Card, w int) string {
	style := cardStyle
	if m.drag.Dragging() && m.drag.CardID() == card.ID {
		style = cardDragStyle
	} else if sel, ok := m.selectedCard(); ok && sel.ID == card.ID && !m.drag.Dragging() {
		style = cardSelStyle
	}

	inner := w - 2
	if inner < 8 {
		inner = 8
	}

	var b strings.Builder
	b.WriteString(lipgloss.NewStyle().Bold(true).Render(xansi.Truncate(card.Title, inner, "…")))

	rinfo := model.InfoForRegion(card.Region)
	b.WriteString("\n" + regionStyle(card.Region).Render(rinfo.Glyph+" "+rinfo.Name))

	if card.Budget != "" || card.Timeframe != "" {
		meta := strings.TrimSpace(strings.Join(nonEmpty(card.Budget, card.Timeframe), " · "))
		b.WriteString("\n" + subStyle.Render(xansi.Truncate(meta, inner, "…")))
	}
	if len(card.Tags) > 0 {
		tags := make([]string, 0, len(card.Tags))
		for _, tag := range card.Tags {
			tags = append(tags, tagStyle(tag).Render("#"+tag))
		}
		b.WriteString("\n" + strings.Join(tags, " "))
	}
	if card.Stage == model.StageCompleted && card.Rating != nil {
		b.WriteString("\n" + statusSavedStyle.Render(stars(*card.Rating)))
	}

	body := style.Width(w).Render(b.String())

	// A mid-swipe card slides with the pointer and shows where it lands.
	if m.narrow() && m.swipe.CardID() == card.ID {
		if off := m.swipe.Offset(); off != 0 {
			hint := ""
			if target, ok := m.swipe.Candidate(); ok {
				tinfo := model.InfoForStage(target)
				if off < 0 {
					hint = " → " + tinfo.Glyph
				} else {
					hint = tinfo.Glyph + " ← "
				}
			}
			indent := off
			if indent < 0 {
				indent = 0
			}
			if hint != "" {
				body = helpStyle.Render(hint) + "\n" + body
			}
			body = lipgloss.NewStyle().MarginLeft(indent).Render(body)
		}
	}
	return body
}

func nonEmpty(parts ...string) []string {
	out := parts[:0]
	for _, p := range parts {
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

func stars(rating int) string {
	if rating < 0 {
		rating = 0
	}
	if rating > 5 {
		rating = 5
	}
	return strings.Repeat("★", rating) + strings.Repeat("☆", 5-rating)
}
