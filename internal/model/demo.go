package model

import "time"

func intPtr(v int) *int { return &v }

func f64Ptr(v float64) *float64 { return &v }

// DemoCards returns the in-memory seed used by demo mode. It mirrors the
// database seed applied for real accounts.
func DemoCards() []Card {
	base := time.Date(2025, 11, 1, 12, 0, 0, 0, time.UTC)
	at := func(i int) time.Time { return base.Add(time.Duration(i) * time.Minute) }
	return []Card{
		{
			ID: "demo-1", Stage: StageDreaming, Region: RegionAsia,
			Title:     "Petra, Jordan",
			Notes:     "Explore the ancient rose-red city carved into sandstone cliffs. Walk through the Siq canyon to discover the Treasury and countless tombs.",
			Budget:    "$2,500",
			Timeframe: "Oct 2026",
			Tags:      []string{"adventure", "historical", "ruins"},
			SortOrder: 0, Latitude: f64Ptr(30.3285), Longitude: f64Ptr(35.4444), CreatedAt: at(0),
		},
		{
			ID: "demo-2", Stage: StageDreaming, Region: RegionSouthAmerica,
			Title:     "Machu Picchu, Peru",
			Notes:     "Trek the Inca Trail to the legendary lost city in the clouds. Experience breathtaking mountain vistas and ancient engineering.",
			Budget:    "$3,200",
			Timeframe: "Jul 2026",
			Tags:      []string{"trek", "ruins", "adventure"},
			SortOrder: 1, Latitude: f64Ptr(-13.1631), Longitude: f64Ptr(-72.5450), CreatedAt: at(1),
		},
		{
			ID: "demo-3", Stage: StagePlanning, Region: RegionEurope,
			Title:     "Iceland Ring Road",
			Notes:     "Drive the famous Route 1 around the entire island. Witness waterfalls, glaciers, volcanic landscapes, and the northern lights.",
			Budget:    "$4,000",
			Timeframe: "Feb 2027",
			Tags:      []string{"road trip", "nature", "adventure"},
			SortOrder: 2, Latitude: f64Ptr(64.1466), Longitude: f64Ptr(-21.9426), CreatedAt: at(2),
		},
		{
			ID: "demo-4", Stage: StageCompleted, Region: RegionEurope,
			Title:     "Rome, Italy",
			Notes:     "Wandered through millennia of history — the Colosseum, Vatican, Pantheon, and endless gelato. La dolce vita at its finest.",
			Budget:    "$2,800",
			Timeframe: "May 2025",
			Tags:      []string{"historical", "food", "culture"},
			Rating:    intPtr(5),
			SortOrder: 3, Latitude: f64Ptr(41.9028), Longitude: f64Ptr(12.4964), CreatedAt: at(3),
		},
		{
			ID: "demo-5", Stage: StageCompleted, Region: RegionAsia,
			Title:     "Kyoto, Japan",
			Notes:     "Discovered serene temples, bamboo groves, and the art of tea ceremony. A perfect blend of tradition and tranquility.",
			Budget:    "$3,500",
			Timeframe: "Apr 2025",
			Tags:      []string{"culture", "zen", "food"},
			Rating:    intPtr(4),
			SortOrder: 4, Latitude: f64Ptr(35.0116), Longitude: f64Ptr(135.7681), CreatedAt: at(4),
		},
		{
			ID: "demo-6", Stage: StageDreaming, Region: RegionAfrica,
			Title:     "Serengeti Safari, Tanzania",
			Notes:     "Witness the great migration — millions of wildebeest and zebra crossing the vast plains, alongside lions, elephants, and cheetahs.",
			Budget:    "$5,000",
			Timeframe: "Aug 2026",
			Tags:      []string{"wildlife", "nature", "adventure"},
			SortOrder: 5, Latitude: f64Ptr(-2.3333), Longitude: f64Ptr(34.8333), CreatedAt: at(5),
		},
		{
			ID: "demo-7", Stage: StageDreaming, Region: RegionOceania,
			Title:     "Great Barrier Reef, Australia",
			Notes:     "Dive into the world's largest coral reef system. Snorkel with sea turtles, manta rays, and thousands of species of tropical fish.",
			Budget:    "$3,800",
			Timeframe: "Nov 2026",
			Tags:      []string{"beach", "nature", "adventure"},
			SortOrder: 6, Latitude: f64Ptr(-18.2871), Longitude: f64Ptr(147.6992), CreatedAt: at(6),
		},
		{
			ID: "demo-8", Stage: StagePlanning, Region: RegionNorthAmerica,
			Title:     "Grand Canyon, USA",
			Notes:     "Hike rim-to-rim through one of the natural wonders of the world. Layers of red rock reveal millions of years of geological history.",
			Budget:    "$1,500",
			Timeframe: "Mar 2026",
			Tags:      []string{"trek", "nature"},
			SortOrder: 7, Latitude: f64Ptr(36.1069), Longitude: f64Ptr(-112.1129), CreatedAt: at(7),
		},
	}
}
