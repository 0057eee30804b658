// Package api talks to the expeditions REST backend (a PostgREST-style
// row store). It implements persist.Remote; the bridge never sees HTTP.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"ledger-cli/internal/model"
	"ledger-cli/internal/persist"
)

const defaultTimeout = 15 * time.Second

type Client struct {
	baseURL string
	apiKey  string
	token   string
	http    *http.Client
	log     *logrus.Entry
}

var _ persist.Remote = (*Client)(nil)

func NewClient(baseURL, apiKey string, logger *logrus.Logger) *Client {
	if logger == nil {
		logger = logrus.New()
		logger.SetOutput(io.Discard)
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		http:    &http.Client{Timeout: defaultTimeout},
		log:     logger.WithField("component", "api"),
	}
}

// SetToken installs the signed-in user's access token. The client never
// inspects it; it is an opaque scoping token forwarded as a bearer.
func (c *Client) SetToken(token string) {
	c.token = token
}

// expeditionRow is the wire shape. The stage column is named "status"
// because "column" is a reserved word in Postgres; the mappers below
// translate both ways.
type expeditionRow struct {
	ID          string       `json:"id,omitempty"`
	Status      model.Stage  `json:"status"`
	Continent   model.Region `json:"continent"`
	Title       string       `json:"title"`
	Description string       `json:"description"`
	Budget      string       `json:"budget"`
	Dates       string       `json:"dates"`
	Tags        []string     `json:"tags"`
	Rating      *int         `json:"rating"`
	SortOrder   int          `json:"sort_order"`
	Latitude    *float64     `json:"latitude"`
	Longitude   *float64     `json:"longitude"`
	CreatedAt   time.Time    `json:"created_at,omitempty"`
}

func rowToCard(row expeditionRow) model.Card {
	tags := row.Tags
	if tags == nil {
		tags = []string{}
	}
	return model.Card{
		ID:        row.ID,
		Stage:     row.Status,
		Region:    row.Continent,
		Title:     row.Title,
		Notes:     row.Description,
		Budget:    row.Budget,
		Timeframe: row.Dates,
		Tags:      tags,
		Rating:    row.Rating,
		SortOrder: row.SortOrder,
		Latitude:  row.Latitude,
		Longitude: row.Longitude,
		CreatedAt: row.CreatedAt,
	}
}

func cardToRow(card model.Card) expeditionRow {
	row := expeditionRow{
		Status:      card.Stage,
		Continent:   card.Region,
		Title:       card.Title,
		Description: card.Notes,
		Budget:      card.Budget,
		Dates:       card.Timeframe,
		Tags:        card.Tags,
		Rating:      card.Rating,
		SortOrder:   card.SortOrder,
		Latitude:    card.Latitude,
		Longitude:   card.Longitude,
	}
	if row.Tags == nil {
		row.Tags = []string{}
	}
	// Temporary client ids never reach the server; it assigns its own.
	if id := strings.TrimSpace(card.ID); id != "" && !strings.HasPrefix(id, "temp-") {
		row.ID = id
	}
	return row
}

// patchToRow maps a partial card update onto wire column names. Only set
// fields are included so the backend leaves the rest alone.
func patchToRow(patch model.CardPatch) map[string]any {
	out := map[string]any{}
	if patch.Stage != nil {
		out["status"] = *patch.Stage
	}
	if patch.Region != nil {
		out["continent"] = *patch.Region
	}
	if patch.Title != nil {
		out["title"] = *patch.Title
	}
	if patch.Notes != nil {
		out["description"] = *patch.Notes
	}
	if patch.Budget != nil {
		out["budget"] = *patch.Budget
	}
	if patch.Timeframe != nil {
		out["dates"] = *patch.Timeframe
	}
	if patch.Tags != nil {
		out["tags"] = *patch.Tags
	}
	if patch.Rating != nil {
		out["rating"] = *patch.Rating
	}
	if patch.Latitude != nil {
		out["latitude"] = *patch.Latitude
	}
	if patch.Longitude != nil {
		out["longitude"] = *patch.Longitude
	}
	return out
}

func (c *Client) ListCards(ctx context.Context) ([]model.Card, error) {
	q := url.Values{}
	q.Set("select", "*")
	q.Set("order", "sort_order.asc,created_at.asc")
	var rows []expeditionRow
	if err := c.do(ctx, http.MethodGet, "/rest/v1/expeditions?"+q.Encode(), nil, &rows, nil); err != nil {
		return nil, fmt.Errorf("list expeditions: %w", err)
	}
	cards := make([]model.Card, 0, len(rows))
	for _, row := range rows {
		cards = append(cards, rowToCard(row))
	}
	return cards, nil
}

func (c *Client) CreateCard(ctx context.Context, card model.Card) (model.Card, error) {
	var rows []expeditionRow
	headers := map[string]string{"Prefer": "return=representation"}
	if err := c.do(ctx, http.MethodPost, "/rest/v1/expeditions", cardToRow(card), &rows, headers); err != nil {
		return model.Card{}, fmt.Errorf("create expedition: %w", err)
	}
	if len(rows) == 0 {
		return model.Card{}, fmt.Errorf("create expedition: empty response")
	}
	return rowToCard(rows[0]), nil
}

func (c *Client) UpdateCard(ctx context.Context, id string, patch model.CardPatch) (model.Card, error) {
	var rows []expeditionRow
	headers := map[string]string{"Prefer": "return=representation"}
	path := "/rest/v1/expeditions?id=eq." + url.QueryEscape(id)
	if err := c.do(ctx, http.MethodPatch, path, patchToRow(patch), &rows, headers); err != nil {
		return model.Card{}, fmt.Errorf("update expedition %s: %w", id, err)
	}
	if len(rows) == 0 {
		return model.Card{}, fmt.Errorf("update expedition %s: not found", id)
	}
	return rowToCard(rows[0]), nil
}

func (c *Client) DeleteCard(ctx context.Context, id string) error {
	path := "/rest/v1/expeditions?id=eq." + url.QueryEscape(id)
	if err := c.do(ctx, http.MethodDelete, path, nil, nil, nil); err != nil {
		return fmt.Errorf("delete expedition %s: %w", id, err)
	}
	return nil
}

// BulkReorder updates each row independently; the first failure is
// surfaced and the rest are best-effort, matching the backend contract.
func (c *Client) BulkReorder(ctx context.Context, entries []persist.ReorderEntry) error {
	var firstErr error
	for _, e := range entries {
		body := map[string]any{
			"sort_order": e.SortOrder,
			"status":     e.Stage,
			"continent":  e.Region,
		}
		path := "/rest/v1/expeditions?id=eq." + url.QueryEscape(e.ID)
		if err := c.do(ctx, http.MethodPatch, path, body, nil, nil); err != nil && firstErr == nil {
			firstErr = fmt.Errorf("reorder expedition %s: %w", e.ID, err)
		}
	}
	return firstErr
}

type settingsRow struct {
	BoardTitle    string `json:"board_title"`
	BoardSubtitle string `json:"board_subtitle"`
}

func (c *Client) GetSettings(ctx context.Context) (model.Settings, error) {
	var rows []settingsRow
	if err := c.do(ctx, http.MethodGet, "/rest/v1/user_settings?select=*&limit=1", nil, &rows, nil); err != nil {
		return model.Settings{}, fmt.Errorf("get settings: %w", err)
	}
	if len(rows) == 0 {
		// First read before any save; the server seeds on write.
		return model.DefaultSettings(), nil
	}
	return model.Settings{Title: rows[0].BoardTitle, Subtitle: rows[0].BoardSubtitle}, nil
}

func (c *Client) UpdateSettings(ctx context.Context, patch model.SettingsPatch) (model.Settings, error) {
	body := map[string]any{}
	if patch.Title != nil {
		body["board_title"] = *patch.Title
	}
	if patch.Subtitle != nil {
		body["board_subtitle"] = *patch.Subtitle
	}
	var rows []settingsRow
	headers := map[string]string{"Prefer": "resolution=merge-duplicates,return=representation"}
	if err := c.do(ctx, http.MethodPost, "/rest/v1/user_settings", body, &rows, headers); err != nil {
		return model.Settings{}, fmt.Errorf("update settings: %w", err)
	}
	if len(rows) == 0 {
		return model.Settings{}, fmt.Errorf("update settings: empty response")
	}
	return model.Settings{Title: rows[0].BoardTitle, Subtitle: rows[0].BoardSubtitle}, nil
}

func (c *Client) do(ctx context.Context, method, path string, body any, out any, headers map[string]string) error {
	var reader io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(buf)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	req.Header.Set("apikey", c.apiKey)
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	} else {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		c.log.WithError(err).WithFields(logrus.Fields{"method": method, "path": path}).Warn("request failed")
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		c.log.WithFields(logrus.Fields{
			"method": method,
			"path":   path,
			"status": resp.StatusCode,
		}).Warn("request rejected")
		return fmt.Errorf("%s %s: status %d: %s", method, path, resp.StatusCode, strings.TrimSpace(string(msg)))
	}
	if out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}
