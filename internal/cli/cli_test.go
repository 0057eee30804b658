package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"ledger-cli/internal/model"
)

// runLedger executes one command the way a shell invocation would, against
// an isolated config dir.
func runLedger(t *testing.T, configDir string, args ...string) (string, error) {
	t.Helper()
	cmd := NewRootCmd()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(append([]string{"--config-dir", configDir}, args...))
	err := cmd.Execute()
	return out.String(), err
}

func decodeCards(t *testing.T, raw string) []model.Card {
	t.Helper()
	var cards []model.Card
	if err := json.Unmarshal([]byte(raw), &cards); err != nil {
		t.Fatalf("decode cards from %q: %v", raw, err)
	}
	return cards
}

func decodeCard(t *testing.T, raw string) model.Card {
	t.Helper()
	var card model.Card
	if err := json.Unmarshal([]byte(raw), &card); err != nil {
		t.Fatalf("decode card from %q: %v", raw, err)
	}
	return card
}

func workspaceDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("LEDGER_WORKSPACE_PATH", filepath.Join(dir, "ledger.db"))
	return dir
}

func TestDemoListServesSeedBoard(t *testing.T) {
	dir := t.TempDir()
	out, err := runLedger(t, dir, "--demo", "cards", "list")
	if err != nil {
		t.Fatalf("cards list: %v", err)
	}
	cards := decodeCards(t, out)
	if len(cards) != len(model.DemoCards()) {
		t.Fatalf("got %d cards, want the full demo seed", len(cards))
	}
	for i, c := range cards {
		if c.SortOrder != i {
			t.Errorf("card %d has sortOrder %d", i, c.SortOrder)
		}
	}
}

func TestDemoBoardIsReadOnly(t *testing.T) {
	dir := t.TempDir()
	if _, err := runLedger(t, dir, "--demo", "cards", "add", "Petra by camel", "--region", "asia"); err == nil {
		t.Fatal("expected demo add to fail")
	}
	if _, err := runLedger(t, dir, "--demo", "settings", "--title", "X"); err == nil {
		t.Fatal("expected demo settings edit to fail")
	}
}

func TestAddListAgainstWorkspace(t *testing.T) {
	dir := workspaceDir(t)

	out, err := runLedger(t, dir, "cards", "add", "Patagonia trek",
		"--region", "south_america", "--stage", "planning", "--tag", "hiking", "--budget", "$2,000")
	if err != nil {
		t.Fatalf("cards add: %v", err)
	}
	created := decodeCard(t, out)
	if created.ID == "" || created.Stage != model.StagePlanning {
		t.Fatalf("created = %+v", created)
	}

	out, err = runLedger(t, dir, "cards", "list")
	if err != nil {
		t.Fatalf("cards list: %v", err)
	}
	cards := decodeCards(t, out)
	if len(cards) != 1 || cards[0].Title != "Patagonia trek" {
		t.Fatalf("list = %+v", cards)
	}
	if got := cards[0].Tags; len(got) != 1 || got[0] != "hiking" {
		t.Errorf("tags = %v", got)
	}
}

func TestListStageFilter(t *testing.T) {
	dir := workspaceDir(t)
	seed := []struct{ title, stage string }{
		{"a", "dreaming"}, {"b", "planning"}, {"c", "planning"},
	}
	for _, s := range seed {
		if _, err := runLedger(t, dir, "cards", "add", s.title, "--region", "europe", "--stage", s.stage); err != nil {
			t.Fatalf("add %s: %v", s.title, err)
		}
	}

	out, err := runLedger(t, dir, "cards", "list", "--stage", "planning")
	if err != nil {
		t.Fatalf("cards list: %v", err)
	}
	cards := decodeCards(t, out)
	if len(cards) != 2 || cards[0].Title != "b" || cards[1].Title != "c" {
		t.Fatalf("filtered list = %+v", cards)
	}

	if _, err := runLedger(t, dir, "cards", "list", "--region", "europe"); err == nil {
		t.Fatal("expected --region without --stage to fail")
	}
}

func TestMovePersistsNewOrder(t *testing.T) {
	dir := workspaceDir(t)
	for _, title := range []string{"a", "b", "c"} {
		if _, err := runLedger(t, dir, "cards", "add", title, "--region", "asia", "--stage", "planning"); err != nil {
			t.Fatalf("add %s: %v", title, err)
		}
	}
	out, err := runLedger(t, dir, "cards", "list")
	if err != nil {
		t.Fatalf("cards list: %v", err)
	}
	cards := decodeCards(t, out)

	// Move c before a, into booked.
	out, err = runLedger(t, dir, "cards", "move", cards[2].ID, "--before", cards[0].ID, "--stage", "booked")
	if err != nil {
		t.Fatalf("cards move: %v", err)
	}
	moved := decodeCard(t, out)
	if moved.Stage != model.StageBooked || moved.SortOrder != 0 {
		t.Fatalf("moved = %+v", moved)
	}

	out, err = runLedger(t, dir, "cards", "list")
	if err != nil {
		t.Fatalf("cards list: %v", err)
	}
	after := decodeCards(t, out)
	titles := []string{after[0].Title, after[1].Title, after[2].Title}
	if titles[0] != "c" || titles[1] != "a" || titles[2] != "b" {
		t.Errorf("order after move = %v", titles)
	}
	for i, c := range after {
		if c.SortOrder != i {
			t.Errorf("card %q sortOrder = %d, want %d", c.Title, c.SortOrder, i)
		}
	}
}

func TestMoveRejectsBothAnchors(t *testing.T) {
	dir := workspaceDir(t)
	if _, err := runLedger(t, dir, "cards", "move", "x", "--before", "a", "--after", "b"); err == nil {
		t.Fatal("expected error for --before with --after")
	}
}

func TestRateRequiresCompletedStage(t *testing.T) {
	dir := workspaceDir(t)
	out, err := runLedger(t, dir, "cards", "add", "Nile cruise", "--region", "africa", "--stage", "planning")
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	card := decodeCard(t, out)

	if _, err := runLedger(t, dir, "cards", "rate", card.ID, "5"); err == nil {
		t.Fatal("expected rating a planning card to fail")
	}

	if _, err := runLedger(t, dir, "cards", "move", card.ID, "--stage", "completed"); err != nil {
		t.Fatalf("move: %v", err)
	}
	out, err = runLedger(t, dir, "cards", "rate", card.ID, "4")
	if err != nil {
		t.Fatalf("rate: %v", err)
	}
	rated := decodeCard(t, out)
	if rated.Rating == nil || *rated.Rating != 4 {
		t.Errorf("rating = %v", rated.Rating)
	}
}

func TestRmDeletesCard(t *testing.T) {
	dir := workspaceDir(t)
	out, err := runLedger(t, dir, "cards", "add", "Short hop", "--region", "europe")
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	card := decodeCard(t, out)

	if _, err := runLedger(t, dir, "cards", "rm", card.ID); err != nil {
		t.Fatalf("rm: %v", err)
	}
	out, err = runLedger(t, dir, "cards", "list")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if cards := decodeCards(t, out); len(cards) != 0 {
		t.Errorf("cards remain after rm: %+v", cards)
	}

	if _, err := runLedger(t, dir, "cards", "rm", "ghost"); err == nil {
		t.Fatal("expected rm of unknown card to fail")
	}
}

func TestSettingsRoundTrip(t *testing.T) {
	dir := workspaceDir(t)

	out, err := runLedger(t, dir, "settings")
	if err != nil {
		t.Fatalf("settings: %v", err)
	}
	var settings model.Settings
	if err := json.Unmarshal([]byte(out), &settings); err != nil {
		t.Fatalf("decode settings: %v", err)
	}
	if settings != model.DefaultSettings() {
		t.Errorf("first read = %+v, want defaults", settings)
	}

	out, err = runLedger(t, dir, "settings", "--title", "JUNGLE LOG")
	if err != nil {
		t.Fatalf("settings set: %v", err)
	}
	if err := json.Unmarshal([]byte(out), &settings); err != nil {
		t.Fatalf("decode settings: %v", err)
	}
	if settings.Title != "JUNGLE LOG" || settings.Subtitle != model.DefaultBoardSubtitle {
		t.Errorf("after set = %+v", settings)
	}

	// A whitespace-only title falls back to the default header.
	out, err = runLedger(t, dir, "settings", "--title", "   ")
	if err != nil {
		t.Fatalf("settings reset: %v", err)
	}
	if err := json.Unmarshal([]byte(out), &settings); err != nil {
		t.Fatalf("decode settings: %v", err)
	}
	if settings.Title != model.DefaultBoardTitle {
		t.Errorf("blank title stored as %q", settings.Title)
	}
}

func TestConfigDirSeededOnFirstRun(t *testing.T) {
	dir := workspaceDir(t)
	if _, err := runLedger(t, dir, "cards", "list"); err != nil {
		t.Fatalf("cards list: %v", err)
	}
	if _, err := runLedger(t, dir, "cards", "list"); err != nil {
		t.Fatalf("second run: %v", err)
	}
	cfg := filepath.Join(dir, "config.yaml")
	if _, err := os.ReadFile(cfg); err != nil {
		t.Errorf("default config not written: %v", err)
	}
}
