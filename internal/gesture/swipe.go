package gesture

import (
	"time"

	"ledger-cli/internal/board"
	"ledger-cli/internal/model"
)

// SwipePhase enumerates the touch-swipe machine's states.
type SwipePhase int

const (
	SwipeIdle SwipePhase = iota
	SwipePending
	SwipeHorizontal
	// SwipeScroll means vertical movement won the direction decision; the
	// rest of the touch sequence belongs to native scrolling and is ignored.
	SwipeScroll
	SwipeCommitting
)

// Swipe thresholds. Units match whatever coordinate space events are fed
// in; the literal values are part of the interaction contract.
const (
	swipeDeadzone      = 10
	swipeDragThreshold = 15
	swipeCommitMax     = 80

	// SwipeExitAnimation is how long the exit animation plays before the
	// committed intent is emitted.
	SwipeExitAnimation = 250 * time.Millisecond
)

// SwipeResultKind classifies what a touch-end resolved to.
type SwipeResultKind int

const (
	// SwipeNone: nothing happens (spring back, scroll handoff, inert swipe).
	SwipeNone SwipeResultKind = iota
	// SwipeTap: the touch never left the deadzone; expand the card detail.
	SwipeTap
	// SwipeCommit: past the commit threshold with a valid adjacent stage;
	// the machine is now committing and Finish must be called after the
	// exit-animation window.
	SwipeCommit
)

type SwipeResult struct {
	Kind   SwipeResultKind
	CardID string
	// Stage is the destination stage for SwipeCommit.
	Stage model.Stage
}

// Swipe is the touch-swipe state machine. Swipes only ever relocate a card
// to the adjacent pipeline stage, appended at that stage's end; region and
// within-stage position are never touched.
type Swipe struct {
	phase  SwipePhase
	cardID string
	stage  model.Stage

	startX, startY int
	dx, dy         int

	viewportWidth int

	commitStage model.Stage
}

// NewSwipe returns a machine sized to the current viewport width, which
// caps the commit threshold at a quarter of the viewport.
func NewSwipe(viewportWidth int) *Swipe {
	return &Swipe{viewportWidth: viewportWidth}
}

// SetViewportWidth adjusts the commit threshold cap on resize.
func (s *Swipe) SetViewportWidth(w int) {
	s.viewportWidth = w
}

func (s *Swipe) commitThreshold() int {
	t := swipeCommitMax
	if s.viewportWidth > 0 && s.viewportWidth/4 < t {
		t = s.viewportWidth / 4
	}
	return t
}

// Begin starts tracking a touch on a card. Starting on a different card
// while one is tracked discards the stale state: last touch-start wins.
func (s *Swipe) Begin(cardID string, stage model.Stage, x, y int) {
	s.phase = SwipePending
	s.cardID = cardID
	s.stage = stage
	s.startX, s.startY = x, y
	s.dx, s.dy = 0, 0
	s.commitStage = ""
}

// Move feeds a touch-move. The first move past the deadzone decides the
// gesture direction by axis dominance; a vertical win hands the sequence to
// scrolling and all further events are ignored.
func (s *Swipe) Move(x, y int) {
	switch s.phase {
	case SwipePending:
		s.dx = x - s.startX
		s.dy = y - s.startY
		if abs(s.dx) <= swipeDeadzone && abs(s.dy) <= swipeDeadzone {
			return
		}
		if abs(s.dy) > abs(s.dx) {
			s.phase = SwipeScroll
			return
		}
		s.phase = SwipeHorizontal
	case SwipeHorizontal:
		s.dx = x - s.startX
		s.dy = y - s.startY
	}
}

// Offset is the visual drag offset while horizontal, zero until the
// secondary deadzone is passed.
func (s *Swipe) Offset() int {
	if s.phase != SwipeHorizontal || abs(s.dx) <= swipeDragThreshold {
		return 0
	}
	return s.dx
}

// Candidate returns the adjacent stage the swipe is heading toward, if any.
// Left (negative dx) means the next stage in pipeline order, right the
// previous one; there is no wraparound, so edge swipes are inert though
// still visually tracked.
func (s *Swipe) Candidate() (model.Stage, bool) {
	if s.phase != SwipeHorizontal || abs(s.dx) <= swipeDragThreshold {
		return "", false
	}
	var next model.Stage
	if s.dx < 0 {
		next = model.NextStage(s.stage)
	} else {
		next = model.PrevStage(s.stage)
	}
	if next == "" {
		return "", false
	}
	return next, true
}

// End resolves the touch sequence.
func (s *Swipe) End() SwipeResult {
	switch s.phase {
	case SwipePending:
		// Never left the deadzone: it was a tap.
		cardID := s.cardID
		s.reset()
		return SwipeResult{Kind: SwipeTap, CardID: cardID}
	case SwipeHorizontal:
		target, ok := s.Candidate()
		if !ok || abs(s.dx) < s.commitThreshold() {
			s.reset()
			return SwipeResult{Kind: SwipeNone}
		}
		s.phase = SwipeCommitting
		s.commitStage = target
		return SwipeResult{Kind: SwipeCommit, CardID: s.cardID, Stage: target}
	default:
		s.reset()
		return SwipeResult{Kind: SwipeNone}
	}
}

// Finish emits the stage-change intent once the exit animation has played.
// The card is appended at the end of the new stage; region is unchanged.
func (s *Swipe) Finish() (board.MoveIntent, bool) {
	if s.phase != SwipeCommitting {
		return board.MoveIntent{}, false
	}
	intent := board.MoveIntent{CardID: s.cardID, Stage: s.commitStage}
	s.reset()
	return intent, true
}

// Cancel drops any tracking state with no intent emitted.
func (s *Swipe) Cancel() {
	s.reset()
}

// Phase exposes the current state for rendering.
func (s *Swipe) Phase() SwipePhase {
	return s.phase
}

// CardID returns the tracked card's id ("" when idle).
func (s *Swipe) CardID() string {
	if s.phase == SwipeIdle {
		return ""
	}
	return s.cardID
}

func (s *Swipe) reset() {
	s.phase = SwipeIdle
	s.cardID = ""
	s.stage = ""
	s.dx, s.dy = 0, 0
	s.commitStage = ""
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
