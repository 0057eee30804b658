package persist

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"ledger-cli/internal/board"
	"ledger-cli/internal/model"
)

// Status is the board-wide tri-state save indicator.
type Status string

const (
	StatusSaved  Status = "saved"
	StatusSaving Status = "saving"
	StatusError  Status = "error"
)

// saveDebounce is the quiescence window for reorder and settings flushes.
const saveDebounce = 800 * time.Millisecond

// Options configures a Bridge. The zero value of every field has a
// production default; tests override Clock/Deliver/Spawn to stay
// deterministic.
type Options struct {
	// Remote is the persistence backend. Nil means demo mode: every
	// optimistic path applies locally and no request is ever issued.
	Remote Remote
	// Clock drives the debounce timers.
	Clock Clock
	// Deliver marshals a store mutation back onto the UI event loop. The
	// store is single-threaded; every mutation the bridge performs runs
	// inside Deliver. Defaults to a direct call.
	Deliver func(apply func())
	// Spawn runs a blocking network call off the UI loop. Defaults to `go`.
	Spawn func(f func())
	// OnStatus observes status transitions (always from the UI loop).
	OnStatus func(Status)
	Logger   *logrus.Logger
}

// Bridge translates store mutations into eventual remote writes without
// blocking interaction. Failures never revert optimistic state; they only
// flip the status indicator.
type Bridge struct {
	remote   Remote
	store    *board.Store
	deliver  func(func())
	spawn    func(func())
	onStatus func(Status)
	log      *logrus.Entry

	status   Status
	reorder  *Debouncer
	settings *Debouncer

	boardSettings model.Settings
}

func NewBridge(store *board.Store, opts Options) *Bridge {
	deliver := opts.Deliver
	if deliver == nil {
		deliver = func(apply func()) { apply() }
	}
	spawn := opts.Spawn
	if spawn == nil {
		spawn = func(f func()) { go f() }
	}
	onStatus := opts.OnStatus
	if onStatus == nil {
		onStatus = func(Status) {}
	}
	logger := opts.Logger
	if logger == nil {
		logger = logrus.New()
		logger.SetOutput(nopWriter{})
	}
	clock := opts.Clock
	if clock == nil {
		clock = RealClock()
	}
	return &Bridge{
		remote:        opts.Remote,
		store:         store,
		deliver:       deliver,
		spawn:         spawn,
		onStatus:      onStatus,
		log:           logger.WithField("component", "persist"),
		status:        StatusSaved,
		reorder:       NewDebouncer(clock, saveDebounce),
		settings:      NewDebouncer(clock, saveDebounce),
		boardSettings: model.DefaultSettings(),
	}
}

type nopWriter struct{}

func (nopWriter) Write(p []byte) (int, error) { return len(p), nil }

// Demo reports whether persistence is disabled.
func (b *Bridge) Demo() bool {
	return b.remote == nil
}

// Status returns the current indicator state. Not meaningful in demo mode.
func (b *Bridge) Status() Status {
	return b.status
}

// Settings returns the last known board settings.
func (b *Bridge) Settings() model.Settings {
	return b.boardSettings
}

func (b *Bridge) setStatus(s Status) {
	if b.Demo() {
		return
	}
	if b.status != s {
		b.status = s
		b.onStatus(s)
	}
}

// Load fetches cards and settings and installs them in the store. In demo
// mode the demo seed is loaded instead. An error is fatal to the initial
// render: the caller shows a blocking retry state, never a partial board.
func (b *Bridge) Load(ctx context.Context) error {
	if b.Demo() {
		b.store.Load(model.DemoCards())
		return nil
	}
	cards, err := b.remote.ListCards(ctx)
	if err != nil {
		b.log.WithError(err).Error("load cards failed")
		return fmt.Errorf("load cards: %w", err)
	}
	settings, err := b.remote.GetSettings(ctx)
	if err != nil {
		b.log.WithError(err).Error("load settings failed")
		return fmt.Errorf("load settings: %w", err)
	}
	b.store.Load(cards)
	if strings.TrimSpace(settings.Title) != "" {
		b.boardSettings.Title = settings.Title
	}
	if strings.TrimSpace(settings.Subtitle) != "" {
		b.boardSettings.Subtitle = settings.Subtitle
	}
	return nil
}

// CreateCard inserts the card optimistically under a temporary id (visible
// immediately) and issues the create in the background. On success the
// temporary id is swapped for the server-assigned one in place; on failure
// the card simply stays under its temporary id and the status flips to
// error. Returns the temporary id.
func (b *Bridge) CreateCard(card model.Card) string {
	tempID := "temp-" + uuid.NewString()
	card.ID = tempID
	if card.CreatedAt.IsZero() {
		card.CreatedAt = time.Now()
	}
	b.store.Insert(card)
	if b.Demo() {
		return tempID
	}

	b.setStatus(StatusSaving)
	snapshot, _ := b.store.Find(tempID)
	b.spawn(func() {
		created, err := b.remote.CreateCard(context.Background(), snapshot)
		b.deliver(func() {
			if err != nil {
				b.log.WithError(err).WithField("tempId", tempID).Error("create failed")
				b.setStatus(StatusError)
				return
			}
			// Keyed by the unique temp id, so a stale confirmation after
			// further edits is harmless.
			b.store.SwapID(tempID, created.ID)
			b.setStatus(StatusSaved)
		})
	})
	return tempID
}

// UpdateCard applies the patch optimistically and issues the update in the
// background.
func (b *Bridge) UpdateCard(id string, patch model.CardPatch) {
	b.store.Replace(id, patch)
	if b.Demo() {
		return
	}

	b.setStatus(StatusSaving)
	b.spawn(func() {
		_, err := b.remote.UpdateCard(context.Background(), id, patch)
		b.deliver(func() {
			if err != nil {
				b.log.WithError(err).WithField("id", id).Error("update failed")
				b.setStatus(StatusError)
				return
			}
			b.setStatus(StatusSaved)
		})
	})
}

// DeleteCard removes the card immediately, independent of persistence
// confirmation.
func (b *Bridge) DeleteCard(id string) {
	b.store.Remove(id)
	if b.Demo() {
		return
	}

	b.setStatus(StatusSaving)
	b.spawn(func() {
		err := b.remote.DeleteCard(context.Background(), id)
		b.deliver(func() {
			if err != nil {
				b.log.WithError(err).WithField("id", id).Error("delete failed")
				b.setStatus(StatusError)
				return
			}
			b.setStatus(StatusSaved)
		})
	})
}

// NotifyReorder schedules a debounced bulk flush of the full ordering.
// Rapid successive reorders coalesce into one outbound request carrying the
// final state; each call restarts the window. The status flips to saving
// synchronously on the first reorder of a burst.
func (b *Bridge) NotifyReorder() {
	if b.Demo() {
		return
	}
	b.setStatus(StatusSaving)
	b.reorder.Notify(func() {
		// The timer fires off the UI loop; hop back before touching the store.
		b.deliver(func() {
			entries := Entries(b.store.Cards())
			b.spawn(func() {
				err := b.remote.BulkReorder(context.Background(), entries)
				b.deliver(func() {
					if err != nil {
						b.log.WithError(err).Error("bulk reorder failed")
						b.setStatus(StatusError)
						return
					}
					b.setStatus(StatusSaved)
				})
			})
		})
	})
}

// SaveSettings applies the edit locally and schedules a debounced settings
// flush on its own timer, independent of reorder debouncing. Blank values
// collapse back to the defaults.
func (b *Bridge) SaveSettings(title, subtitle string) model.Settings {
	title = strings.TrimSpace(title)
	subtitle = strings.TrimSpace(subtitle)
	if title == "" {
		title = model.DefaultBoardTitle
	}
	if subtitle == "" {
		subtitle = model.DefaultBoardSubtitle
	}
	b.boardSettings = model.Settings{Title: title, Subtitle: subtitle}
	if b.Demo() {
		return b.boardSettings
	}

	b.setStatus(StatusSaving)
	patch := model.SettingsPatch{Title: &title, Subtitle: &subtitle}
	b.settings.Notify(func() {
		b.spawn(func() {
			_, err := b.remote.UpdateSettings(context.Background(), patch)
			b.deliver(func() {
				if err != nil {
					b.log.WithError(err).Error("settings save failed")
					b.setStatus(StatusError)
					return
				}
				b.setStatus(StatusSaved)
			})
		})
	})
	return b.boardSettings
}
