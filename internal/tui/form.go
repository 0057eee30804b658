package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"ledger-cli/internal/model"
)

// Form field order; tab walks it top to bottom.
const (
	fieldTitle = iota
	fieldSearch
	fieldStage
	fieldRegion
	fieldBudget
	fieldDates
	fieldTags
	fieldRating
	fieldNotes
	fieldCount
)

// cardForm edits one card in a modal. It never touches the store; on
// submit the model turns the result into a create or an update.
type cardForm struct {
	original model.Card
	creating bool

	focus  int
	title  textinput.Model
	search textinput.Model
	budget textinput.Model
	dates  textinput.Model
	tags   textinput.Model
	notes  textarea.Model

	stage  model.Stage
	region model.Region
	rating int // 0 = unrated

	matches  []model.LocationPreset
	matchSel int
	lat, lng *float64
}

func newInput(placeholder, value string, limit int) textinput.Model {
	in := textinput.New()
	in.Placeholder = placeholder
	in.CharLimit = limit
	in.SetValue(value)
	return in
}

func newCardForm(card model.Card, creating bool) cardForm {
	f := cardForm{
		original: card,
		creating: creating,
		title:    newInput("Lost city of…", card.Title, 120),
		search:   newInput("search known destinations", "", 80),
		budget:   newInput("$2,000", card.Budget, 40),
		dates:    newInput("Oct 2026", card.Timeframe, 60),
		tags:     newInput("adventure, ruins", strings.Join(card.Tags, ", "), 120),
		notes:    textarea.New(),
		stage:    card.Stage,
		region:   card.Region,
		lat:      card.Latitude,
		lng:      card.Longitude,
	}
	f.notes.Placeholder = "Field notes (markdown)…"
	f.notes.SetValue(card.Notes)
	if card.Rating != nil {
		f.rating = *card.Rating
	}
	f.title.Focus()
	return f
}

func (f *cardForm) setFocus(i int) {
	f.focus = (i + fieldCount) % fieldCount
	for _, in := range []*textinput.Model{&f.title, &f.search, &f.budget, &f.dates, &f.tags} {
		in.Blur()
	}
	f.notes.Blur()
	switch f.focus {
	case fieldTitle:
		f.title.Focus()
	case fieldSearch:
		f.search.Focus()
	case fieldBudget:
		f.budget.Focus()
	case fieldDates:
		f.dates.Focus()
	case fieldTags:
		f.tags.Focus()
	case fieldNotes:
		f.notes.Focus()
	}
}

// applyPreset fills the card from a known destination.
func (f *cardForm) applyPreset(p model.LocationPreset) {
	f.title.SetValue(p.Name)
	lat, lng := p.Lat, p.Lng
	f.lat, f.lng = &lat, &lng
	f.search.SetValue("")
	f.matches = nil
	f.setFocus(fieldTitle)
}

func (f *cardForm) update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	switch f.focus {
	case fieldTitle:
		f.title, cmd = f.title.Update(msg)
	case fieldSearch:
		before := f.search.Value()
		f.search, cmd = f.search.Update(msg)
		if f.search.Value() != before {
			f.matches = model.SearchLocations(f.search.Value())
			f.matchSel = 0
		}
	case fieldBudget:
		f.budget, cmd = f.budget.Update(msg)
	case fieldDates:
		f.dates, cmd = f.dates.Update(msg)
	case fieldTags:
		f.tags, cmd = f.tags.Update(msg)
	case fieldNotes:
		f.notes, cmd = f.notes.Update(msg)
	}
	return cmd
}

// result builds the edited card. Tags are comma-separated, trimmed, blanks
// dropped; a rating only survives on completed trips.
func (f *cardForm) result() model.Card {
	card := f.original.Clone()
	card.Title = strings.TrimSpace(f.title.Value())
	card.Stage = f.stage
	card.Region = f.region
	card.Budget = strings.TrimSpace(f.budget.Value())
	card.Timeframe = strings.TrimSpace(f.dates.Value())
	card.Notes = f.notes.Value()
	card.Latitude = f.lat
	card.Longitude = f.lng

	var tags []string
	for _, t := range strings.Split(f.tags.Value(), ",") {
		if t = strings.TrimSpace(t); t != "" {
			tags = append(tags, t)
		}
	}
	card.Tags = tags

	if f.stage == model.StageCompleted && f.rating > 0 {
		r := f.rating
		card.Rating = &r
	} else {
		card.Rating = nil
	}
	return card
}

func cycleStage(s model.Stage, delta int) model.Stage {
	for i, st := range model.Stages {
		if st == s {
			return model.Stages[(i+delta+len(model.Stages))%len(model.Stages)]
		}
	}
	return model.Stages[0]
}

func cycleRegion(r model.Region, delta int) model.Region {
	for i, rg := range model.Regions {
		if rg == r {
			return model.Regions[(i+delta+len(model.Regions))%len(model.Regions)]
		}
	}
	return model.Regions[0]
}

func (m *appModel) handleFormKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	f := m.form
	switch msg.String() {
	case "esc":
		m.form = nil
		m.screen = screenBoard
		return m, nil
	case "tab", "shift+tab":
		delta := 1
		if msg.String() == "shift+tab" {
			delta = -1
		}
		f.setFocus(f.focus + delta)
		return m, nil
	case "ctrl+s":
		m.submitForm()
		return m, nil
	}

	switch f.focus {
	case fieldStage:
		switch msg.String() {
		case "left", "h":
			f.stage = cycleStage(f.stage, -1)
		case "right", "l", " ", "enter":
			f.stage = cycleStage(f.stage, +1)
		}
		return m, nil
	case fieldRegion:
		switch msg.String() {
		case "left", "h":
			f.region = cycleRegion(f.region, -1)
		case "right", "l", " ", "enter":
			f.region = cycleRegion(f.region, +1)
		}
		return m, nil
	case fieldRating:
		switch msg.String() {
		case "left", "h":
			if f.rating > 0 {
				f.rating--
			}
		case "right", "l", " ":
			if f.rating < 5 {
				f.rating++
			}
		}
		return m, nil
	case fieldSearch:
		switch msg.String() {
		case "down":
			if f.matchSel < len(f.matches)-1 {
				f.matchSel++
			}
			return m, nil
		case "up":
			if f.matchSel > 0 {
				f.matchSel--
			}
			return m, nil
		case "enter":
			if f.matchSel < len(f.matches) {
				f.applyPreset(f.matches[f.matchSel])
			}
			return m, nil
		}
	default:
		if msg.String() == "enter" && f.focus != fieldNotes {
			m.submitForm()
			return m, nil
		}
	}
	return m, f.update(msg)
}

func (m *appModel) submitForm() {
	f := m.form
	card := f.result()
	if card.Title == "" {
		f.setFocus(fieldTitle)
		return
	}
	if f.creating {
		id := m.bridge.CreateCard(card)
		m.form = nil
		m.screen = screenBoard
		m.followCard(id)
		return
	}
	patch := diffCard(f.original, card)
	m.bridge.UpdateCard(card.ID, patch)
	m.form = nil
	m.screen = screenBoard
	m.followCard(card.ID)
}

// diffCard turns an edit into a minimal patch.
func diffCard(before, after model.Card) model.CardPatch {
	var p model.CardPatch
	if after.Stage != before.Stage {
		p.Stage = &after.Stage
	}
	if after.Region != before.Region {
		p.Region = &after.Region
	}
	if after.Title != before.Title {
		p.Title = &after.Title
	}
	if after.Notes != before.Notes {
		p.Notes = &after.Notes
	}
	if after.Budget != before.Budget {
		p.Budget = &after.Budget
	}
	if after.Timeframe != before.Timeframe {
		p.Timeframe = &after.Timeframe
	}
	if !equalStrings(after.Tags, before.Tags) {
		p.Tags = &after.Tags
	}
	if !equalIntPtr(after.Rating, before.Rating) {
		p.Rating = &after.Rating
	}
	if !equalFloatPtr(after.Latitude, before.Latitude) {
		p.Latitude = &after.Latitude
	}
	if !equalFloatPtr(after.Longitude, before.Longitude) {
		p.Longitude = &after.Longitude
	}
	return p
}

func equalStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func equalIntPtr(a, b *int) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

func equalFloatPtr(a, b *float64) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

func (f *cardForm) view() string {
	var b strings.Builder
	heading := "EDIT EXPEDITION"
	if f.creating {
		heading = "NEW EXPEDITION"
	}
	b.WriteString(titleStyle.Render(heading) + "\n\n")

	label := func(i int, name string) string {
		if f.focus == i {
			return titleStyle.Render("▸ " + name)
		}
		return helpStyle.Render("  " + name)
	}

	b.WriteString(label(fieldTitle, "Title ") + f.title.View() + "\n")
	b.WriteString(label(fieldSearch, "Find  ") + f.search.View() + "\n")
	for i, match := range f.matches {
		marker := "   "
		if i == f.matchSel {
			marker = " ▸ "
		}
		b.WriteString(helpStyle.Render(marker) + match.Name + "\n")
	}

	sinfo := model.InfoForStage(f.stage)
	rinfo := model.InfoForRegion(f.region)
	b.WriteString(label(fieldStage, "Stage ") + stageHeaderStyle(f.stage).Render(sinfo.Glyph+" "+sinfo.Label) + "\n")
	b.WriteString(label(fieldRegion, "Where ") + regionStyle(f.region).Render(rinfo.Glyph+" "+rinfo.Name) + "\n")
	b.WriteString(label(fieldBudget, "Budget") + f.budget.View() + "\n")
	b.WriteString(label(fieldDates, "Dates ") + f.dates.View() + "\n")
	b.WriteString(label(fieldTags, "Tags  ") + f.tags.View() + "\n")
	if f.stage == model.StageCompleted {
		b.WriteString(label(fieldRating, "Rated ") + stars(f.rating) + "\n")
	}
	b.WriteString(label(fieldNotes, "Notes ") + "\n" + f.notes.View() + "\n\n")
	b.WriteString(helpStyle.Render("tab next field · ctrl+s save · esc cancel"))
	return b.String()
}

// settingsForm edits the board header inline in the footer.
type settingsForm struct {
	title    textinput.Model
	subtitle textinput.Model
	onTitle  bool
}

func newSettingsForm(s model.Settings) settingsForm {
	f := settingsForm{
		title:    newInput(model.DefaultBoardTitle, s.Title, 80),
		subtitle: newInput(model.DefaultBoardSubtitle, s.Subtitle, 120),
		onTitle:  true,
	}
	f.title.Focus()
	return f
}

func (f *settingsForm) view() string {
	t, s := "Title ", "Tagline "
	if f.onTitle {
		t = "▸ " + t
	} else {
		s = "▸ " + s
	}
	return helpStyle.Render(t) + f.title.View() + helpStyle.Render("  "+s) + f.subtitle.View() +
		helpStyle.Render("  (enter save · esc cancel)")
}

func (m *appModel) handleSettingsKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	f := m.settings
	switch msg.String() {
	case "esc":
		m.settings = nil
		return m, nil
	case "tab", "shift+tab":
		f.onTitle = !f.onTitle
		if f.onTitle {
			f.title.Focus()
			f.subtitle.Blur()
		} else {
			f.subtitle.Focus()
			f.title.Blur()
		}
		return m, nil
	case "enter":
		m.bridge.SaveSettings(f.title.Value(), f.subtitle.Value())
		m.settings = nil
		return m, nil
	}
	var cmd tea.Cmd
	if f.onTitle {
		f.title, cmd = f.title.Update(msg)
	} else {
		f.subtitle, cmd = f.subtitle.Update(msg)
	}
	return m, cmd
}
