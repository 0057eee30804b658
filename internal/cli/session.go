package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"ledger-cli/internal/auth"
)

const sessionFileName = "session.json"

var nowFunc = time.Now

func sessionPath(configDir string) string {
	return filepath.Join(configDir, sessionFileName)
}

func loadSession(configDir string) (auth.Session, error) {
	data, err := os.ReadFile(sessionPath(configDir))
	if err != nil {
		if os.IsNotExist(err) {
			return auth.Session{}, nil
		}
		return auth.Session{}, fmt.Errorf("read session: %w", err)
	}
	var s auth.Session
	if err := json.Unmarshal(data, &s); err != nil {
		return auth.Session{}, fmt.Errorf("decode session: %w", err)
	}
	return s, nil
}

// saveSession writes the session with owner-only permissions; it carries a
// refresh token.
func saveSession(configDir string, s auth.Session) error {
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(sessionPath(configDir), data, 0o600)
}

func clearSession(configDir string) error {
	err := os.Remove(sessionPath(configDir))
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

func newLoginCmd(app *App) *cobra.Command {
	var email string
	var password string
	var signup bool
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in to the hosted backend",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !app.hosted() {
				return writeErr(cmd, errors.New("no api.url configured; login only applies to hosted boards"))
			}
			if email == "" {
				return writeErr(cmd, errors.New("--email is required"))
			}
			if password == "" {
				fmt.Fprint(cmd.OutOrStdout(), "Password: ")
				raw, err := term.ReadPassword(int(os.Stdin.Fd()))
				fmt.Fprintln(cmd.OutOrStdout())
				if err != nil {
					return writeErr(cmd, fmt.Errorf("read password: %w", err))
				}
				password = string(raw)
			}

			client := app.authClient()
			var session auth.Session
			var err error
			if signup {
				session, err = client.SignUp(cmd.Context(), email, password)
			} else {
				session, err = client.SignIn(cmd.Context(), email, password)
			}
			if err != nil {
				return writeErr(cmd, err)
			}
			if err := saveSession(app.ConfigDir, session); err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{
				"email":     session.Email,
				"expiresAt": session.ExpiresAt,
			})
		},
	}
	cmd.Flags().StringVar(&email, "email", "", "Account email")
	cmd.Flags().StringVar(&password, "password", "", "Account password (prompted when omitted)")
	cmd.Flags().BoolVar(&signup, "signup", false, "Create the account instead of signing in")
	return cmd
}

func newLogoutCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Sign out and forget the saved session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			session, err := loadSession(app.ConfigDir)
			if err != nil {
				return writeErr(cmd, err)
			}
			if session.Valid() && app.hosted() {
				client := app.authClient()
				client.Restore(session)
				// Best-effort revoke; the local session goes away regardless.
				if err := client.SignOut(cmd.Context()); err != nil {
					app.log.WithError(err).Warn("remote sign-out failed")
				}
			}
			if err := clearSession(app.ConfigDir); err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]string{"status": "signed out"})
		},
	}
}
