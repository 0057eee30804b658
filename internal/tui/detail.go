package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"

	"ledger-cli/internal/model"
)

func (m *appModel) detailView() string {
	card, ok := m.store.Find(m.detailID)
	if !ok {
		m.screen = screenBoard
		return m.boardView()
	}

	w := m.width - 8
	if w < 40 {
		w = 40
	}

	var b strings.Builder
	sinfo := model.InfoForStage(card.Stage)
	rinfo := model.InfoForRegion(card.Region)

	b.WriteString(titleStyle.Render(card.Title) + "\n")
	b.WriteString(stageHeaderStyle(card.Stage).Render(sinfo.Glyph+" "+sinfo.Label) +
		subStyle.Render("  ·  ") +
		regionStyle(card.Region).Render(rinfo.Glyph+" "+rinfo.Name) + "\n")

	if meta := strings.Join(nonEmpty(card.Budget, card.Timeframe), " · "); meta != "" {
		b.WriteString(subStyle.Render(meta) + "\n")
	}
	if card.Latitude != nil && card.Longitude != nil {
		b.WriteString(subStyle.Render(fmt.Sprintf("%.4f, %.4f", *card.Latitude, *card.Longitude)) + "\n")
	}
	if card.Stage == model.StageCompleted && card.Rating != nil {
		b.WriteString(statusSavedStyle.Render(stars(*card.Rating)) + "\n")
	}
	b.WriteString("\n")

	if card.Notes == "" {
		b.WriteString(helpStyle.Render("No field notes yet. Press e to add some."))
	} else {
		b.WriteString(renderMarkdown(card.Notes, w))
	}
	b.WriteString("\n\n" + helpStyle.Render("esc back · e edit"))

	return m.centered(modalStyle.Width(w + 4).Render(b.String()))
}

// renderMarkdown renders notes through glamour, falling back to the raw
// text when the renderer cannot be built (e.g. odd TERM setups).
func renderMarkdown(src string, width int) string {
	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle(glamourStyle()),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return src
	}
	out, err := r.Render(src)
	if err != nil {
		return src
	}
	return strings.TrimRight(out, "\n")
}
