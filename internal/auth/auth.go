// Package auth manages the signed-in session against the backend's token
// endpoints. Tokens are treated as opaque bearers; the only claim read
// locally is exp, and only to know when a refresh is due. Verification is
// the server's job.
package auth

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/sirupsen/logrus"
)

const defaultTimeout = 15 * time.Second

// Session is the signed-in state. A zero Session means signed out.
type Session struct {
	AccessToken  string    `json:"accessToken"`
	RefreshToken string    `json:"refreshToken"`
	Email        string    `json:"email"`
	ExpiresAt    time.Time `json:"expiresAt"`
}

func (s Session) Valid() bool {
	return s.AccessToken != ""
}

// Expired reports whether the access token needs a refresh. A short skew
// keeps us from presenting a token that dies mid-request.
func (s Session) Expired(now time.Time) bool {
	if s.ExpiresAt.IsZero() {
		return false
	}
	return now.After(s.ExpiresAt.Add(-30 * time.Second))
}

type Client struct {
	baseURL string
	apiKey  string
	http    *http.Client
	log     *logrus.Entry

	mu        sync.Mutex
	session   Session
	listeners map[int]func(Session)
	nextID    int
}

func NewClient(baseURL, apiKey string, logger *logrus.Logger) *Client {
	if logger == nil {
		logger = logrus.New()
		logger.SetOutput(io.Discard)
	}
	return &Client{
		baseURL:   strings.TrimRight(baseURL, "/"),
		apiKey:    apiKey,
		http:      &http.Client{Timeout: defaultTimeout},
		log:       logger.WithField("component", "auth"),
		listeners: map[int]func(Session){},
	}
}

// Session returns the current session; zero when signed out.
func (c *Client) Session() Session {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.session
}

// OnSessionChange registers a listener fired on every sign-in, refresh and
// sign-out. The returned function unsubscribes; calling it twice is fine.
func (c *Client) OnSessionChange(fn func(Session)) func() {
	c.mu.Lock()
	id := c.nextID
	c.nextID++
	c.listeners[id] = fn
	c.mu.Unlock()
	return func() {
		c.mu.Lock()
		delete(c.listeners, id)
		c.mu.Unlock()
	}
}

func (c *Client) setSession(s Session) {
	c.mu.Lock()
	c.session = s
	fns := make([]func(Session), 0, len(c.listeners))
	for _, fn := range c.listeners {
		fns = append(fns, fn)
	}
	c.mu.Unlock()
	for _, fn := range fns {
		fn(s)
	}
}

// Restore installs a previously saved session without hitting the network,
// e.g. from the session file on startup. Listeners fire as for sign-in.
func (c *Client) Restore(s Session) {
	c.setSession(s)
}

type tokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	User         struct {
		Email string `json:"email"`
	} `json:"user"`
}

func (c *Client) SignIn(ctx context.Context, email, password string) (Session, error) {
	return c.tokenRequest(ctx, "/auth/v1/token?grant_type=password", map[string]string{
		"email":    email,
		"password": password,
	})
}

func (c *Client) SignUp(ctx context.Context, email, password string) (Session, error) {
	return c.tokenRequest(ctx, "/auth/v1/signup", map[string]string{
		"email":    email,
		"password": password,
	})
}

// Refresh exchanges the refresh token for a fresh access token.
func (c *Client) Refresh(ctx context.Context) (Session, error) {
	current := c.Session()
	if current.RefreshToken == "" {
		return Session{}, fmt.Errorf("refresh: not signed in")
	}
	return c.tokenRequest(ctx, "/auth/v1/token?grant_type=refresh_token", map[string]string{
		"refresh_token": current.RefreshToken,
	})
}

// SignOut revokes the session server-side best-effort and always clears
// local state.
func (c *Client) SignOut(ctx context.Context) error {
	current := c.Session()
	c.setSession(Session{})
	if !current.Valid() {
		return nil
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/auth/v1/logout", nil)
	if err != nil {
		return err
	}
	req.Header.Set("apikey", c.apiKey)
	req.Header.Set("Authorization", "Bearer "+current.AccessToken)
	resp, err := c.http.Do(req)
	if err != nil {
		c.log.WithError(err).Warn("logout request failed; session cleared locally")
		return nil
	}
	resp.Body.Close()
	return nil
}

func (c *Client) tokenRequest(ctx context.Context, path string, body map[string]string) (Session, error) {
	payload, err := json.Marshal(body)
	if err != nil {
		return Session{}, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return Session{}, err
	}
	req.Header.Set("apikey", c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return Session{}, fmt.Errorf("auth request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return Session{}, fmt.Errorf("auth request: status %d: %s", resp.StatusCode, strings.TrimSpace(string(msg)))
	}

	var tok tokenResponse
	if err := json.NewDecoder(resp.Body).Decode(&tok); err != nil {
		return Session{}, fmt.Errorf("auth response: %w", err)
	}
	if tok.AccessToken == "" {
		return Session{}, fmt.Errorf("auth response: no access token")
	}

	session := Session{
		AccessToken:  tok.AccessToken,
		RefreshToken: tok.RefreshToken,
		Email:        tok.User.Email,
		ExpiresAt:    tokenExpiry(tok.AccessToken),
	}
	c.setSession(session)
	c.log.WithField("email", session.Email).Debug("session established")
	return session, nil
}

// tokenExpiry reads the exp claim without verifying the signature. A token
// that does not parse gets a zero expiry and is never considered stale.
func tokenExpiry(token string) time.Time {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return time.Time{}
	}
	exp, ok := claims["exp"].(float64)
	if !ok {
		return time.Time{}
	}
	return time.Unix(int64(exp), 0)
}
