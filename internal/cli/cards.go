package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"ledger-cli/internal/board"
	"ledger-cli/internal/model"
	"ledger-cli/internal/persist"
)

func newCardsCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cards",
		Short: "Manage expedition cards",
	}
	cmd.AddCommand(newCardsListCmd(app))
	cmd.AddCommand(newCardsAddCmd(app))
	cmd.AddCommand(newCardsMoveCmd(app))
	cmd.AddCommand(newCardsRateCmd(app))
	cmd.AddCommand(newCardsRmCmd(app))
	return cmd
}

// loadBoard pulls all cards into a normalized in-memory board. Demo mode
// serves the seeded cards.
func loadBoard(app *App, cmd *cobra.Command) (*board.Store, persist.Remote, error) {
	remote, err := app.remote(cmd.Context())
	if err != nil {
		return nil, nil, err
	}
	store := board.NewStore()
	if remote == nil {
		store.Load(model.DemoCards())
		return store, nil, nil
	}
	cards, err := remote.ListCards(cmd.Context())
	if err != nil {
		return nil, nil, err
	}
	store.Load(cards)
	return store, remote, nil
}

func parseStage(raw string) (model.Stage, error) {
	s := model.Stage(strings.ToLower(strings.TrimSpace(raw)))
	if !model.ValidStage(s) {
		return "", fmt.Errorf("unknown stage %q (one of: dreaming, planning, booked, completed)", raw)
	}
	return s, nil
}

func parseRegion(raw string) (model.Region, error) {
	r := model.Region(strings.ToLower(strings.TrimSpace(raw)))
	if !model.ValidRegion(r) {
		return "", fmt.Errorf("unknown region %q (a continent, e.g. asia or south_america)", raw)
	}
	return r, nil
}

func newCardsListCmd(app *App) *cobra.Command {
	var stageFlag string
	var regionFlag string
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List cards in board order, optionally filtered by stage and region",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, _, err := loadBoard(app, cmd)
			if err != nil {
				return writeErr(cmd, err)
			}

			cards := store.Snapshot()
			if stageFlag != "" {
				stage, err := parseStage(stageFlag)
				if err != nil {
					return writeErr(cmd, err)
				}
				if regionFlag != "" {
					region, err := parseRegion(regionFlag)
					if err != nil {
						return writeErr(cmd, err)
					}
					cards = store.ByStageRegion(stage, region)
				} else {
					cards = store.ByStage(stage)
				}
			} else if regionFlag != "" {
				return writeErr(cmd, errors.New("--region requires --stage"))
			}
			return writeOut(cmd, app, cards)
		},
	}
	cmd.Flags().StringVar(&stageFlag, "stage", "", "Only cards in this stage")
	cmd.Flags().StringVar(&regionFlag, "region", "", "Only cards in this continent (requires --stage)")
	return cmd
}

func newCardsAddCmd(app *App) *cobra.Command {
	var stageFlag, regionFlag, notes, budget, timeframe string
	var tags []string
	cmd := &cobra.Command{
		Use:   "add <title>",
		Short: "Add a card at the end of the board",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			stage, err := parseStage(stageFlag)
			if err != nil {
				return writeErr(cmd, err)
			}
			region, err := parseRegion(regionFlag)
			if err != nil {
				return writeErr(cmd, err)
			}

			store, remote, err := loadBoard(app, cmd)
			if err != nil {
				return writeErr(cmd, err)
			}
			if remote == nil {
				return writeErr(cmd, errors.New("demo board is read-only"))
			}

			card := model.Card{
				Stage:     stage,
				Region:    region,
				Title:     strings.TrimSpace(args[0]),
				Notes:     notes,
				Budget:    budget,
				Timeframe: timeframe,
				Tags:      tags,
				SortOrder: store.Len(),
			}
			created, err := remote.CreateCard(cmd.Context(), card)
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, created)
		},
	}
	cmd.Flags().StringVar(&stageFlag, "stage", "dreaming", "Pipeline stage")
	cmd.Flags().StringVar(&regionFlag, "region", "", "Continent (required)")
	cmd.Flags().StringVar(&notes, "notes", "", "Free-form notes (markdown)")
	cmd.Flags().StringVar(&budget, "budget", "", "Budget estimate")
	cmd.Flags().StringVar(&timeframe, "dates", "", "Planned timeframe")
	cmd.Flags().StringSliceVar(&tags, "tag", nil, "Tag (repeatable)")
	cmd.MarkFlagRequired("region")
	return cmd
}

func newCardsMoveCmd(app *App) *cobra.Command {
	var before, after, stageFlag, regionFlag string
	cmd := &cobra.Command{
		Use:   "move <card-id>",
		Short: "Move a card, optionally into another stage or continent",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if before != "" && after != "" {
				return writeErr(cmd, errors.New("provide at most one of --before or --after"))
			}

			store, remote, err := loadBoard(app, cmd)
			if err != nil {
				return writeErr(cmd, err)
			}
			if remote == nil {
				return writeErr(cmd, errors.New("demo board is read-only"))
			}

			id := args[0]
			intent := board.MoveIntent{CardID: id}
			if before != "" {
				intent.RefID = before
				intent.Pos = board.PlaceBefore
			} else if after != "" {
				intent.RefID = after
				intent.Pos = board.PlaceAfter
			}
			if stageFlag != "" {
				stage, err := parseStage(stageFlag)
				if err != nil {
					return writeErr(cmd, err)
				}
				intent.Stage = stage
			}
			if regionFlag != "" {
				region, err := parseRegion(regionFlag)
				if err != nil {
					return writeErr(cmd, err)
				}
				intent.Region = region
			}
			if intent.RefID == "" && intent.Stage == "" && intent.Region == "" {
				return writeErr(cmd, errors.New("nothing to do: pass --before, --after, --stage or --region"))
			}

			if !store.ApplyMove(intent) {
				return writeErr(cmd, fmt.Errorf("card not found: %s", id))
			}
			if err := remote.BulkReorder(cmd.Context(), persist.Entries(store.Cards())); err != nil {
				return writeErr(cmd, err)
			}
			moved, _ := store.Find(id)
			return writeOut(cmd, app, moved)
		},
	}
	cmd.Flags().StringVar(&before, "before", "", "Place directly before this card")
	cmd.Flags().StringVar(&after, "after", "", "Place directly after this card")
	cmd.Flags().StringVar(&stageFlag, "stage", "", "Move into this stage")
	cmd.Flags().StringVar(&regionFlag, "region", "", "Move into this continent")
	return cmd
}

func newCardsRateCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rate <card-id> <1-5>",
		Short: "Rate a completed trip",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, remote, err := loadBoard(app, cmd)
			if err != nil {
				return writeErr(cmd, err)
			}
			if remote == nil {
				return writeErr(cmd, errors.New("demo board is read-only"))
			}

			card, ok := store.Find(args[0])
			if !ok {
				return writeErr(cmd, fmt.Errorf("card not found: %s", args[0]))
			}
			if card.Stage != model.StageCompleted {
				return writeErr(cmd, errors.New("only completed trips can be rated"))
			}
			var rating int
			if _, err := fmt.Sscanf(args[1], "%d", &rating); err != nil || rating < 1 || rating > 5 {
				return writeErr(cmd, fmt.Errorf("rating must be 1-5, got %q", args[1]))
			}

			r := &rating
			updated, err := remote.UpdateCard(cmd.Context(), card.ID, model.CardPatch{Rating: &r})
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, updated)
		},
	}
	return cmd
}

func newCardsRmCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rm <card-id>",
		Short: "Delete a card",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, remote, err := loadBoard(app, cmd)
			if err != nil {
				return writeErr(cmd, err)
			}
			if remote == nil {
				return writeErr(cmd, errors.New("demo board is read-only"))
			}
			if _, ok := store.Find(args[0]); !ok {
				return writeErr(cmd, fmt.Errorf("card not found: %s", args[0]))
			}
			if err := remote.DeleteCard(cmd.Context(), args[0]); err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]string{"deleted": args[0]})
		},
	}
	return cmd
}
