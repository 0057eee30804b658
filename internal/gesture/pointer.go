// Package gesture decodes pointer-drag and touch-swipe input into board
// move intents. Both machines are pure: they hold no references to the
// store and produce the same intent type, so the reorder engine stays
// gesture-agnostic.
package gesture

import (
	"ledger-cli/internal/board"
	"ledger-cli/internal/model"
)

// Rect is a card's measured bounds in layout units (cells in the TUI,
// pixels in a pointer UI). Only the vertical extent matters for the
// midpoint rule.
type Rect struct {
	X, Y, W, H int
}

// Midpoint returns the vertical midpoint of the rect.
func (r Rect) Midpoint() int {
	return r.Y + r.H/2
}

// DropTarget is the currently hovered destination during a drag: either a
// reference card with a before/after side, or an empty zone identified by
// its stage (and optionally region).
type DropTarget struct {
	RefID  string
	Pos    board.Placement
	Stage  model.Stage
	Region model.Region
	Zone   bool
}

// Drag is the pointer-drag state machine: idle → dragging → idle.
type Drag struct {
	dragging bool
	cardID   string
	target   *DropTarget
}

// Start begins tracking a drag of the given card. Callers should clear any
// expanded detail view alongside.
func (d *Drag) Start(cardID string) {
	d.dragging = true
	d.cardID = cardID
	d.target = nil
}

// HoverCard records a card drop target using the midpoint rule: pointer
// above the vertical midpoint of the hovered card's bounds places before,
// at or below places after. The hovered column's stage/region ride along as
// overrides for the eventual intent.
func (d *Drag) HoverCard(refID string, bounds Rect, pointerY int, stage model.Stage, region model.Region) {
	if !d.dragging {
		return
	}
	pos := board.PlaceAfter
	if pointerY < bounds.Midpoint() {
		pos = board.PlaceBefore
	}
	d.target = &DropTarget{RefID: refID, Pos: pos, Stage: stage, Region: region}
}

// HoverZone records an empty-zone drop target (end of a stage or
// stage×region bucket).
func (d *Drag) HoverZone(stage model.Stage, region model.Region) {
	if !d.dragging {
		return
	}
	d.target = &DropTarget{Stage: stage, Region: region, Zone: true}
}

// Leave clears the current drop target (pointer left a zone without
// entering another).
func (d *Drag) Leave() {
	d.target = nil
}

// Drop commits the drag. It emits a move intent unless there is no target
// or the target is the dragged card itself; state is cleared
// unconditionally either way.
func (d *Drag) Drop() (board.MoveIntent, bool) {
	cardID := d.cardID
	target := d.target
	dragging := d.dragging
	d.Cancel()

	if !dragging || target == nil || cardID == "" {
		return board.MoveIntent{}, false
	}
	if !target.Zone && target.RefID == cardID {
		return board.MoveIntent{}, false
	}
	intent := board.MoveIntent{
		CardID: cardID,
		Stage:  target.Stage,
		Region: target.Region,
	}
	if !target.Zone {
		intent.RefID = target.RefID
		intent.Pos = target.Pos
	}
	return intent, true
}

// Cancel abandons the drag with no intent emitted.
func (d *Drag) Cancel() {
	d.dragging = false
	d.cardID = ""
	d.target = nil
}

// Dragging reports whether a drag is in progress.
func (d *Drag) Dragging() bool {
	return d.dragging
}

// CardID returns the dragged card's id ("" when idle).
func (d *Drag) CardID() string {
	return d.cardID
}

// Target returns the current drop target for rendering drop indicators.
func (d *Drag) Target() *DropTarget {
	return d.target
}
