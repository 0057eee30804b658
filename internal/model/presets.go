package model

import "strings"

// LocationPreset is a well-known place with coordinates for quick lookup.
// The table is fixed; there is no live geocoding.
type LocationPreset struct {
	Name string
	Lat  float64
	Lng  float64
}

var locationPresets = []LocationPreset{
	{"Amsterdam, Netherlands", 52.3676, 4.9041},
	{"Venice, Italy", 45.4408, 12.3155},
	{"Florence, Italy", 43.7696, 11.2558},
	{"Milan, Italy", 45.4642, 9.1900},
	{"Naples, Italy", 40.8518, 14.2681},
	{"Vienna, Austria", 48.2082, 16.3738},
	{"Budapest, Hungary", 47.4979, 19.0402},
	{"Berlin, Germany", 52.5200, 13.4050},
	{"Munich, Germany", 48.1351, 11.5820},
	{"Zurich, Switzerland", 47.3769, 8.5417},
	{"Geneva, Switzerland", 46.2044, 6.1432},
	{"Interlaken, Switzerland", 46.6863, 7.8632},
	{"Brussels, Belgium", 50.8503, 4.3517},
	{"Copenhagen, Denmark", 55.6761, 12.5683},
	{"Stockholm, Sweden", 59.3293, 18.0686},
	{"Oslo, Norway", 59.9139, 10.7522},
	{"Helsinki, Finland", 60.1699, 24.9384},
	{"Edinburgh, UK", 55.9533, -3.1883},
	{"Dublin, Ireland", 53.3498, -6.2603},
	{"Paris, France", 48.8566, 2.3522},
	{"Tokyo, Japan", 35.6762, 139.6503},
	{"New York, USA", 40.7128, -74.0060},
	{"London, UK", 51.5074, -0.1278},
	{"Rome, Italy", 41.9028, 12.4964},
	{"Sydney, Australia", -33.8688, 151.2093},
	{"Cairo, Egypt", 30.0444, 31.2357},
	{"Rio de Janeiro, Brazil", -22.9068, -43.1729},
	{"Cape Town, South Africa", -33.9249, 18.4241},
	{"Machu Picchu, Peru", -13.1631, -72.5450},
	{"Petra, Jordan", 30.3285, 35.4444},
	{"Kyoto, Japan", 35.0116, 135.7681},
	{"Barcelona, Spain", 41.3874, 2.1686},
	{"Bangkok, Thailand", 13.7563, 100.5018},
	{"Reykjavik, Iceland", 64.1466, -21.9426},
	{"Istanbul, Turkey", 41.0082, 28.9784},
	{"Marrakech, Morocco", 31.6295, -7.9811},
	{"Buenos Aires, Argentina", -34.6037, -58.3816},
	{"Dubai, UAE", 25.2048, 55.2708},
	{"Cusco, Peru", -13.5320, -71.9675},
	{"Athens, Greece", 37.9838, 23.7275},
	{"Bali, Indonesia", -8.3405, 115.0920},
	{"Grand Canyon, USA", 36.1069, -112.1129},
	{"Serengeti, Tanzania", -2.3333, 34.8333},
	{"Great Barrier Reef, Australia", -18.2871, 147.6992},
	{"Santorini, Greece", 36.3932, 25.4615},
	{"Angkor Wat, Cambodia", 13.4125, 103.8670},
	{"Banff, Canada", 51.1784, -115.5708},
	{"Queenstown, New Zealand", -45.0312, 168.6626},
	{"Havana, Cuba", 23.1136, -82.3666},
	{"Lisbon, Portugal", 38.7223, -9.1393},
	{"Prague, Czech Republic", 50.0755, 14.4378},
	{"Nairobi, Kenya", -1.2921, 36.8219},
	{"Mexico City, Mexico", 19.4326, -99.1332},
	{"Chiang Mai, Thailand", 18.7883, 98.9853},
	{"Dubrovnik, Croatia", 42.6507, 18.0944},
	{"Patagonia, Argentina", -41.8101, -68.9063},
	{"Galápagos Islands, Ecuador", -0.9538, -90.9656},
	{"Amalfi Coast, Italy", 40.6340, 14.6027},
	{"Yellowstone, USA", 44.4280, -110.5885},
}

const maxPresetMatches = 8

// SearchLocations returns at most 8 presets whose name contains the query
// (case-insensitive). A blank query matches nothing.
func SearchLocations(query string) []LocationPreset {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return nil
	}
	var out []LocationPreset
	for _, loc := range locationPresets {
		if strings.Contains(strings.ToLower(loc.Name), q) {
			out = append(out, loc)
			if len(out) == maxPresetMatches {
				break
			}
		}
	}
	return out
}
