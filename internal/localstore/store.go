// Package localstore persists the board in a single-file sqlite workspace.
// It satisfies the same contract as the REST client, so `--demo` aside the
// rest of the program cannot tell a local board from a hosted one.
package localstore

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"ledger-cli/internal/model"
	"ledger-cli/internal/persist"
)

const schema = `
CREATE TABLE IF NOT EXISTS expeditions (
	id          TEXT PRIMARY KEY,
	status      TEXT NOT NULL,
	continent   TEXT NOT NULL,
	title       TEXT NOT NULL,
	description TEXT NOT NULL DEFAULT '',
	budget      TEXT NOT NULL DEFAULT '',
	dates       TEXT NOT NULL DEFAULT '',
	tags        TEXT NOT NULL DEFAULT '[]',
	rating      INTEGER,
	sort_order  INTEGER NOT NULL DEFAULT 0,
	latitude    REAL,
	longitude   REAL,
	created_at  TIMESTAMP NOT NULL
);
CREATE TABLE IF NOT EXISTS settings (
	id             INTEGER PRIMARY KEY CHECK (id = 1),
	board_title    TEXT NOT NULL,
	board_subtitle TEXT NOT NULL
);
`

type Store struct {
	db  *sql.DB
	now func() time.Time
}

var _ persist.Remote = (*Store)(nil)

// Open creates the workspace file (and its parent directory) when missing
// and applies the schema.
func Open(path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create workspace dir: %w", err)
		}
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open workspace: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("apply schema: %w", err)
	}
	return &Store{db: db, now: func() time.Time { return time.Now().UTC() }}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

const cardColumns = "id, status, continent, title, description, budget, dates, tags, rating, sort_order, latitude, longitude, created_at"

func scanCard(row interface{ Scan(...any) error }) (model.Card, error) {
	var c model.Card
	var tags string
	if err := row.Scan(&c.ID, &c.Stage, &c.Region, &c.Title, &c.Notes, &c.Budget,
		&c.Timeframe, &tags, &c.Rating, &c.SortOrder, &c.Latitude, &c.Longitude, &c.CreatedAt); err != nil {
		return model.Card{}, err
	}
	if err := json.Unmarshal([]byte(tags), &c.Tags); err != nil {
		return model.Card{}, fmt.Errorf("decode tags for %s: %w", c.ID, err)
	}
	return c, nil
}

func (s *Store) ListCards(ctx context.Context) ([]model.Card, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT "+cardColumns+" FROM expeditions ORDER BY sort_order ASC, created_at ASC")
	if err != nil {
		return nil, fmt.Errorf("list cards: %w", err)
	}
	defer rows.Close()

	var cards []model.Card
	for rows.Next() {
		card, err := scanCard(rows)
		if err != nil {
			return nil, fmt.Errorf("list cards: %w", err)
		}
		cards = append(cards, card)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list cards: %w", err)
	}
	return cards, nil
}

func (s *Store) CreateCard(ctx context.Context, card model.Card) (model.Card, error) {
	stored := card.Clone()
	stored.ID = uuid.NewString()
	if stored.CreatedAt.IsZero() {
		stored.CreatedAt = s.now()
	}
	if stored.Tags == nil {
		stored.Tags = []string{}
	}
	tags, err := json.Marshal(stored.Tags)
	if err != nil {
		return model.Card{}, fmt.Errorf("encode tags: %w", err)
	}
	_, err = s.db.ExecContext(ctx,
		"INSERT INTO expeditions ("+cardColumns+") VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)",
		stored.ID, stored.Stage, stored.Region, stored.Title, stored.Notes, stored.Budget,
		stored.Timeframe, string(tags), stored.Rating, stored.SortOrder,
		stored.Latitude, stored.Longitude, stored.CreatedAt)
	if err != nil {
		return model.Card{}, fmt.Errorf("create card: %w", err)
	}
	return stored, nil
}

func (s *Store) UpdateCard(ctx context.Context, id string, patch model.CardPatch) (model.Card, error) {
	card, err := scanCard(s.db.QueryRowContext(ctx,
		"SELECT "+cardColumns+" FROM expeditions WHERE id = ?", id))
	if err == sql.ErrNoRows {
		return model.Card{}, fmt.Errorf("update card %s: not found", id)
	}
	if err != nil {
		return model.Card{}, fmt.Errorf("update card %s: %w", id, err)
	}
	card.Apply(patch)
	tags, err := json.Marshal(card.Tags)
	if err != nil {
		return model.Card{}, fmt.Errorf("encode tags: %w", err)
	}
	_, err = s.db.ExecContext(ctx,
		`UPDATE expeditions SET status = ?, continent = ?, title = ?, description = ?,
			budget = ?, dates = ?, tags = ?, rating = ?, latitude = ?, longitude = ?
		 WHERE id = ?`,
		card.Stage, card.Region, card.Title, card.Notes, card.Budget, card.Timeframe,
		string(tags), card.Rating, card.Latitude, card.Longitude, id)
	if err != nil {
		return model.Card{}, fmt.Errorf("update card %s: %w", id, err)
	}
	return card, nil
}

func (s *Store) DeleteCard(ctx context.Context, id string) error {
	if _, err := s.db.ExecContext(ctx, "DELETE FROM expeditions WHERE id = ?", id); err != nil {
		return fmt.Errorf("delete card %s: %w", id, err)
	}
	return nil
}

// BulkReorder writes the whole placement in one transaction; unlike the
// REST backend the local file can make the flush atomic.
func (s *Store) BulkReorder(ctx context.Context, entries []persist.ReorderEntry) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("reorder: %w", err)
	}
	defer tx.Rollback()

	for _, e := range entries {
		_, err := tx.ExecContext(ctx,
			"UPDATE expeditions SET sort_order = ?, status = ?, continent = ? WHERE id = ?",
			e.SortOrder, e.Stage, e.Region, e.ID)
		if err != nil {
			return fmt.Errorf("reorder card %s: %w", e.ID, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("reorder: %w", err)
	}
	return nil
}

// GetSettings seeds the settings row on first read so later updates always
// have a row to hit.
func (s *Store) GetSettings(ctx context.Context) (model.Settings, error) {
	var out model.Settings
	err := s.db.QueryRowContext(ctx,
		"SELECT board_title, board_subtitle FROM settings WHERE id = 1").
		Scan(&out.Title, &out.Subtitle)
	if err == sql.ErrNoRows {
		out = model.DefaultSettings()
		_, err = s.db.ExecContext(ctx,
			"INSERT INTO settings (id, board_title, board_subtitle) VALUES (1, ?, ?)",
			out.Title, out.Subtitle)
		if err != nil {
			return model.Settings{}, fmt.Errorf("seed settings: %w", err)
		}
		return out, nil
	}
	if err != nil {
		return model.Settings{}, fmt.Errorf("get settings: %w", err)
	}
	return out, nil
}

func (s *Store) UpdateSettings(ctx context.Context, patch model.SettingsPatch) (model.Settings, error) {
	current, err := s.GetSettings(ctx)
	if err != nil {
		return model.Settings{}, err
	}
	if patch.Title != nil {
		current.Title = *patch.Title
	}
	if patch.Subtitle != nil {
		current.Subtitle = *patch.Subtitle
	}
	_, err = s.db.ExecContext(ctx,
		"UPDATE settings SET board_title = ?, board_subtitle = ? WHERE id = 1",
		current.Title, current.Subtitle)
	if err != nil {
		return model.Settings{}, fmt.Errorf("update settings: %w", err)
	}
	return current, nil
}
