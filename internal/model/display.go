package model

// StageInfo is display metadata for a pipeline stage.
type StageInfo struct {
	Stage    Stage
	Label    string
	Subtitle string
	Glyph    string
	Color    string
}

var stageInfos = map[Stage]StageInfo{
	StageDreaming:  {Stage: StageDreaming, Label: "DREAM DESTINATIONS", Subtitle: "Uncharted Territory", Glyph: "🗺", Color: "#8a6508"},
	StagePlanning:  {Stage: StagePlanning, Label: "EXPEDITION PLANNING", Subtitle: "Mapping the Route", Glyph: "📜", Color: "#6a5010"},
	StageBooked:    {Stage: StageBooked, Label: "TICKETS SECURED", Subtitle: "Ready for Takeoff", Glyph: "✈", Color: "#1a6a3a"},
	StageCompleted: {Stage: StageCompleted, Label: "CONQUERED", Subtitle: "Tales of Glory", Glyph: "🏆", Color: "#6e3a18"},
}

func InfoForStage(s Stage) StageInfo {
	if info, ok := stageInfos[s]; ok {
		return info
	}
	return StageInfo{Stage: s, Label: string(s)}
}

// RegionInfo is display metadata for a continent.
type RegionInfo struct {
	Region Region
	Name   string
	Glyph  string
	Color  string
}

var regionInfos = map[Region]RegionInfo{
	RegionNorthAmerica: {Region: RegionNorthAmerica, Name: "North America", Glyph: "🦅", Color: "#7a3b10"},
	RegionSouthAmerica: {Region: RegionSouthAmerica, Name: "South America", Glyph: "🦜", Color: "#2d5a1e"},
	RegionEurope:       {Region: RegionEurope, Name: "Europe", Glyph: "🏰", Color: "#5a2d78"},
	RegionAfrica:       {Region: RegionAfrica, Name: "Africa", Glyph: "🦁", Color: "#8a6508"},
	RegionAsia:         {Region: RegionAsia, Name: "Asia", Glyph: "🐉", Color: "#9a3508"},
	RegionOceania:      {Region: RegionOceania, Name: "Oceania", Glyph: "🐨", Color: "#0e5565"},
	RegionAntarctica:   {Region: RegionAntarctica, Name: "Antarctica", Glyph: "🐧", Color: "#2a4f5e"},
}

func InfoForRegion(r Region) RegionInfo {
	if info, ok := regionInfos[r]; ok {
		return info
	}
	return RegionInfo{Region: r, Name: string(r)}
}

var tagColors = map[string]string{
	"adventure":  "#7a5a08",
	"historical": "#5c4010",
	"trek":       "#2a5a18",
	"ruins":      "#6e3a18",
	"road trip":  "#3e5510",
	"nature":     "#1a5a38",
	"food":       "#922e08",
	"culture":    "#5a2878",
	"zen":        "#1e4a58",
	"beach":      "#0a5262",
	"wildlife":   "#4a4010",
}

// TagColor returns the accent color for a tag, with a neutral fallback for
// tags outside the known set.
func TagColor(tag string) string {
	if c, ok := tagColors[tag]; ok {
		return c
	}
	return "#5c4010"
}
