package cli

import (
	"errors"
	"strings"

	"github.com/spf13/cobra"

	"ledger-cli/internal/model"
)

func newSettingsCmd(app *App) *cobra.Command {
	var title, subtitle string
	cmd := &cobra.Command{
		Use:   "settings",
		Short: "Show or change the board header",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			remote, err := app.remote(cmd.Context())
			if err != nil {
				return writeErr(cmd, err)
			}
			if remote == nil {
				if title != "" || subtitle != "" {
					return writeErr(cmd, errors.New("demo board is read-only"))
				}
				return writeOut(cmd, app, model.DefaultSettings())
			}

			if title == "" && subtitle == "" {
				settings, err := remote.GetSettings(cmd.Context())
				if err != nil {
					return writeErr(cmd, err)
				}
				return writeOut(cmd, app, settings)
			}

			// Blank-after-trim edits fall back to the defaults instead of
			// leaving an empty header.
			patch := model.SettingsPatch{}
			if title != "" {
				t := strings.TrimSpace(title)
				if t == "" {
					t = model.DefaultBoardTitle
				}
				patch.Title = &t
			}
			if subtitle != "" {
				s := strings.TrimSpace(subtitle)
				if s == "" {
					s = model.DefaultBoardSubtitle
				}
				patch.Subtitle = &s
			}
			settings, err := remote.UpdateSettings(cmd.Context(), patch)
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, settings)
		},
	}
	cmd.Flags().StringVar(&title, "title", "", "New board title")
	cmd.Flags().StringVar(&subtitle, "subtitle", "", "New board subtitle")
	return cmd
}
