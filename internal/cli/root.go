// Package cli wires the ledger command tree: scriptable subcommands for
// cards, settings and sessions, and the interactive board when invoked
// bare.
package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"ledger-cli/internal/api"
	"ledger-cli/internal/auth"
	"ledger-cli/internal/localstore"
	"ledger-cli/internal/persist"
	"ledger-cli/internal/tui"
)

type App struct {
	ConfigDir  string
	Demo       bool
	PrettyJSON bool

	cfg *viper.Viper
	log *logrus.Logger

	// close tears down the resolved remote (the sqlite workspace holds a
	// file handle). Set by remote().
	close func() error
}

func NewRootCmd() *cobra.Command {
	app := &App{}

	cmd := &cobra.Command{
		Use:          "ledger",
		Short:        "Adventure Ledger — a vacation-planning board, in your terminal",
		SilenceUsage: true,
		Example: strings.TrimSpace(`
  # Open the interactive board
  ledger

  # Try it without a backend or a workspace file
  ledger demo

  # Scriptable commands
  ledger cards list --stage planning
  ledger cards move card-7 --after card-2 --stage booked
`),
		RunE: func(cmd *cobra.Command, args []string) error {
			// No subcommand => interactive board.
			if cmd.HasSubCommands() && len(args) == 0 {
				return runBoard(app)
			}
			return cmd.Help()
		},
	}

	cmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		return app.init()
	}
	cmd.PersistentPostRunE = func(cmd *cobra.Command, args []string) error {
		if app.close != nil {
			return app.close()
		}
		return nil
	}

	cmd.PersistentFlags().StringVar(&app.ConfigDir, "config-dir", "", "Config directory (default: OS config dir, or LEDGER_CONFIG_DIR)")
	cmd.PersistentFlags().BoolVar(&app.Demo, "demo", false, "Run against the seeded demo board; nothing is persisted")
	cmd.PersistentFlags().BoolVar(&app.PrettyJSON, "pretty", false, "Pretty-print JSON output")

	cmd.AddCommand(newDemoCmd(app))
	cmd.AddCommand(newCardsCmd(app))
	cmd.AddCommand(newSettingsCmd(app))
	cmd.AddCommand(newLoginCmd(app))
	cmd.AddCommand(newLogoutCmd(app))

	return cmd
}

func (a *App) init() error {
	if a.cfg != nil {
		return nil
	}
	if a.ConfigDir == "" {
		dir, err := ConfigDir()
		if err != nil {
			return err
		}
		a.ConfigDir = dir
	}
	cfg, err := loadConfig(a.ConfigDir)
	if err != nil {
		return err
	}
	a.cfg = cfg
	a.log = newLogger(cfg)
	return nil
}

// newLogger logs to the configured file; the terminal belongs to the board.
func newLogger(cfg *viper.Viper) *logrus.Logger {
	log := logrus.New()
	level, err := logrus.ParseLevel(cfg.GetString(cfgKeyLogLevel))
	if err != nil {
		level = logrus.InfoLevel
	}
	log.SetLevel(level)
	f, err := os.OpenFile(cfg.GetString(cfgKeyLogFile), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		log.SetOutput(os.Stderr)
		return log
	}
	log.SetOutput(f)
	return log
}

func (a *App) demoMode() bool {
	return a.Demo || a.cfg.GetBool(cfgKeyDemo)
}

func (a *App) hosted() bool {
	return a.cfg.GetString(cfgKeyAPIURL) != ""
}

// remote resolves the persistence backend: nil in demo mode, the REST
// client when an API endpoint is configured, the sqlite workspace
// otherwise.
func (a *App) remote(ctx context.Context) (persist.Remote, error) {
	if a.demoMode() {
		return nil, nil
	}
	if a.hosted() {
		client := api.NewClient(a.cfg.GetString(cfgKeyAPIURL), a.cfg.GetString(cfgKeyAPIKey), a.log)
		session, err := a.currentSession(ctx)
		if err != nil {
			return nil, err
		}
		if session.Valid() {
			client.SetToken(session.AccessToken)
		}
		return client, nil
	}
	store, err := localstore.Open(a.cfg.GetString(cfgKeyWorkspacePath))
	if err != nil {
		return nil, err
	}
	a.close = store.Close
	return store, nil
}

// currentSession loads the saved session, refreshing it when stale.
func (a *App) currentSession(ctx context.Context) (auth.Session, error) {
	session, err := loadSession(a.ConfigDir)
	if err != nil || !session.Valid() {
		return auth.Session{}, nil
	}
	if !session.Expired(nowFunc()) {
		return session, nil
	}
	client := a.authClient()
	client.Restore(session)
	refreshed, err := client.Refresh(ctx)
	if err != nil {
		a.log.WithError(err).Warn("session refresh failed; sign in again")
		return auth.Session{}, nil
	}
	if err := saveSession(a.ConfigDir, refreshed); err != nil {
		a.log.WithError(err).Warn("could not save refreshed session")
	}
	return refreshed, nil
}

func (a *App) authClient() *auth.Client {
	return auth.NewClient(a.cfg.GetString(cfgKeyAPIURL), a.cfg.GetString(cfgKeyAPIKey), a.log)
}

func runBoard(app *App) error {
	ctx := context.Background()
	remote, err := app.remote(ctx)
	if err != nil {
		return err
	}
	return tui.Run(tui.Options{
		Remote: remote,
		Logger: app.log,
	})
}

func newDemoCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "demo",
		Short: "Open the board with seeded demo cards (nothing is persisted)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app.Demo = true
			return runBoard(app)
		},
	}
}

func writeOut(cmd *cobra.Command, app *App, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	if app.PrettyJSON {
		enc.SetIndent("", "  ")
	}
	return enc.Encode(v)
}

func writeErr(cmd *cobra.Command, err error) error {
	fmt.Fprintln(cmd.ErrOrStderr(), err.Error())
	return err
}
