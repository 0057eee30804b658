package model

import "time"

// Stage is a card's position in the fixed expedition pipeline.
type Stage string

const (
	StageDreaming  Stage = "dreaming"
	StagePlanning  Stage = "planning"
	StageBooked    Stage = "booked"
	StageCompleted Stage = "completed"
)

// Stages lists the pipeline in order. Swipe navigation and column layout
// both depend on this order.
var Stages = []Stage{StageDreaming, StagePlanning, StageBooked, StageCompleted}

// Region is one of the fixed set of continents.
type Region string

const (
	RegionNorthAmerica Region = "north_america"
	RegionSouthAmerica Region = "south_america"
	RegionEurope       Region = "europe"
	RegionAfrica       Region = "africa"
	RegionAsia         Region = "asia"
	RegionOceania      Region = "oceania"
	RegionAntarctica   Region = "antarctica"
)

var Regions = []Region{
	RegionNorthAmerica,
	RegionSouthAmerica,
	RegionEurope,
	RegionAfrica,
	RegionAsia,
	RegionOceania,
	RegionAntarctica,
}

type Card struct {
	ID     string `json:"id"`
	Stage  Stage  `json:"stage"`
	Region Region `json:"region"`

	Title     string   `json:"title"`
	Notes     string   `json:"notes,omitempty"`
	Budget    string   `json:"budget,omitempty"`
	Timeframe string   `json:"timeframe,omitempty"`
	Tags      []string `json:"tags,omitempty"`

	// Rating is only meaningful when Stage is completed.
	Rating *int `json:"rating,omitempty"`

	// SortOrder defines a single global total order across all stages and
	// regions. It is reassigned densely (0..n-1) on every reorder.
	SortOrder int `json:"sortOrder"`

	Latitude  *float64 `json:"latitude,omitempty"`
	Longitude *float64 `json:"longitude,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
}

// CardPatch is a partial card update. Nil fields are left untouched.
// Double pointers distinguish "leave alone" (outer nil) from "clear" (inner nil).
type CardPatch struct {
	Stage     *Stage
	Region    *Region
	Title     *string
	Notes     *string
	Budget    *string
	Timeframe *string
	Tags      *[]string
	Rating    **int
	Latitude  **float64
	Longitude **float64
}

// Clone returns a deep copy (tags slice and optional fields included).
func (c Card) Clone() Card {
	out := c
	if c.Tags != nil {
		out.Tags = append([]string(nil), c.Tags...)
	}
	if c.Rating != nil {
		r := *c.Rating
		out.Rating = &r
	}
	if c.Latitude != nil {
		v := *c.Latitude
		out.Latitude = &v
	}
	if c.Longitude != nil {
		v := *c.Longitude
		out.Longitude = &v
	}
	return out
}

// Apply merges a patch into the card.
func (c *Card) Apply(p CardPatch) {
	if p.Stage != nil {
		c.Stage = *p.Stage
	}
	if p.Region != nil {
		c.Region = *p.Region
	}
	if p.Title != nil {
		c.Title = *p.Title
	}
	if p.Notes != nil {
		c.Notes = *p.Notes
	}
	if p.Budget != nil {
		c.Budget = *p.Budget
	}
	if p.Timeframe != nil {
		c.Timeframe = *p.Timeframe
	}
	if p.Tags != nil {
		c.Tags = append([]string(nil), (*p.Tags)...)
	}
	if p.Rating != nil {
		if *p.Rating == nil {
			c.Rating = nil
		} else {
			r := **p.Rating
			c.Rating = &r
		}
	}
	if p.Latitude != nil {
		if *p.Latitude == nil {
			c.Latitude = nil
		} else {
			v := **p.Latitude
			c.Latitude = &v
		}
	}
	if p.Longitude != nil {
		if *p.Longitude == nil {
			c.Longitude = nil
		} else {
			v := **p.Longitude
			c.Longitude = &v
		}
	}
}

const (
	DefaultBoardTitle    = "THE ADVENTURE LEDGER"
	DefaultBoardSubtitle = "Fortune & Glory Vacation Planner"
)

// Settings holds the editable board header. Blank values collapse back to
// the defaults on save.
type Settings struct {
	Title    string `json:"title"`
	Subtitle string `json:"subtitle"`
}

// SettingsPatch is a partial settings update.
type SettingsPatch struct {
	Title    *string
	Subtitle *string
}

func DefaultSettings() Settings {
	return Settings{Title: DefaultBoardTitle, Subtitle: DefaultBoardSubtitle}
}

// NextStage returns the stage after s in pipeline order, or "" at the end.
func NextStage(s Stage) Stage {
	for i, st := range Stages {
		if st == s && i+1 < len(Stages) {
			return Stages[i+1]
		}
	}
	return ""
}

// PrevStage returns the stage before s in pipeline order, or "" at the start.
func PrevStage(s Stage) Stage {
	for i, st := range Stages {
		if st == s && i > 0 {
			return Stages[i-1]
		}
	}
	return ""
}

// ValidStage reports whether s is one of the pipeline stages.
func ValidStage(s Stage) bool {
	for _, st := range Stages {
		if st == s {
			return true
		}
	}
	return false
}

// ValidRegion reports whether r is one of the fixed continents.
func ValidRegion(r Region) bool {
	for _, reg := range Regions {
		if reg == r {
			return true
		}
	}
	return false
}
