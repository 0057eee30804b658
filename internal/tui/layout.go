package tui

import (
	"ledger-cli/internal/gesture"
	"ledger-cli/internal/model"
)

// boardLayout maps screen cells back to cards and drop zones. It is
// rebuilt on every render, so hit tests always match what is on screen.
type boardLayout struct {
	cards []cardHit
	zones []zoneHit
}

type cardHit struct {
	id     string
	rect   gesture.Rect
	stage  model.Stage
	region model.Region
}

// zoneHit is a droppable area that is not a card: a lane header (drop at
// the lane tail) or the empty remainder of a column.
type zoneHit struct {
	rect   gesture.Rect
	stage  model.Stage
	region model.Region
}

func (l *boardLayout) reset() {
	l.cards = l.cards[:0]
	l.zones = l.zones[:0]
}

func (l *boardLayout) addCard(id string, rect gesture.Rect, stage model.Stage, region model.Region) {
	l.cards = append(l.cards, cardHit{id: id, rect: rect, stage: stage, region: region})
}

func (l *boardLayout) addZone(rect gesture.Rect, stage model.Stage, region model.Region) {
	l.zones = append(l.zones, zoneHit{rect: rect, stage: stage, region: region})
}

func (r cardHit) contains(x, y int) bool {
	return x >= r.rect.X && x < r.rect.X+r.rect.W && y >= r.rect.Y && y < r.rect.Y+r.rect.H
}

func (z zoneHit) contains(x, y int) bool {
	return x >= z.rect.X && x < z.rect.X+z.rect.W && y >= z.rect.Y && y < z.rect.Y+z.rect.H
}

func (l *boardLayout) cardAt(x, y int) *cardHit {
	for i := range l.cards {
		if l.cards[i].contains(x, y) {
			return &l.cards[i]
		}
	}
	return nil
}

func (l *boardLayout) zoneAt(x, y int) *zoneHit {
	for i := range l.zones {
		if l.zones[i].contains(x, y) {
			return &l.zones[i]
		}
	}
	return nil
}
