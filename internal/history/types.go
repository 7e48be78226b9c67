package history

import "time"

// SetRecord is a single set of an exercise: repetitions done with a weight.
type SetRecord struct {
	ID     string  `json:"id"`
	Reps   int     `json:"reps"`
	Weight float64 `json:"weight"`
}

type Exercise struct {
	ID   string      `json:"id"`
	Name string      `json:"name"`
	Sets []SetRecord `json:"sets"`
}

type Workout struct {
	ID        string     `json:"id"`
	Date      time.Time  `json:"date"`
	Type      string     `json:"type"`
	Exercises []Exercise `json:"exercises"`
	Notes     string     `json:"notes,omitempty"`
	// Duration of the workout in minutes, 0 when not reported
	Duration int `json:"duration,omitempty"`
}

type WeightRecord struct {
	ID     string    `json:"id"`
	Date   time.Time `json:"date"`
	Weight float64   `json:"weight"`
}

type UserProfile struct {
	Name   string `json:"name"`
	Goal   string `json:"goal"`
	Height int    `json:"height"`
}

// State is the aggregate root of the fitness history. Both sequences are
// append-only and kept in insertion order, which coincides with chronological
// order since timestamps are assigned at append time.
type State struct {
	Workouts      []Workout      `json:"workouts"`
	WeightHistory []WeightRecord `json:"weightHistory"`
	UserProfile   UserProfile    `json:"userProfile"`
}

// WorkoutTypes is the fixed set of workout type labels the client offers.
var WorkoutTypes = map[string]bool{
	"Musculação":                       true,
	"Corrida / Cardio":                 true,
	"Crossfit":                         true,
	"Yoga / Alongamento":               true,
	"Esporte (Futebol, Basquete, etc)": true,
}
