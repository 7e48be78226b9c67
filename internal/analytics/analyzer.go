package analytics

import (
	"time"

	"github.com/skasun/fittrack/internal/history"
)

// dateLabel is the day/month form the charts use for the X axis.
const dateLabel = "02/01"

// volumeWindowSize is the trailing number of workouts shown in the
// exercise volume chart.
const volumeWindowSize = 7

type Summary struct {
	TotalWorkouts int     `json:"totalWorkouts"`
	CurrentWeight float64 `json:"currentWeight"`
	// WeightDelta is last minus first recorded weight, sign preserved
	// (positive = gain), 0 with fewer than two records.
	WeightDelta    float64 `json:"weightDelta"`
	MonthlyAverage float64 `json:"monthlyAverage"`
	// LastWorkout is nil when no workout was recorded yet
	LastWorkout *history.Workout `json:"lastWorkout,omitempty"`
}

// Point is a single chart point: a date label and a value.
type Point struct {
	Label string  `json:"label"`
	Value float64 `json:"value"`
}

// Analyzer derives display stats and chart series from the raw history.
// All methods are pure and recompute from scratch on every call; the
// datasets are tiny, so no caching is involved.
type Analyzer struct {
	now func() time.Time
}

func NewAnalyzer(now func() time.Time) *Analyzer {
	if now == nil {
		now = time.Now
	}
	return &Analyzer{
		now: now,
	}
}

func (a *Analyzer) Summarize(workouts []history.Workout, weightHistory []history.WeightRecord) Summary {
	summary := Summary{
		TotalWorkouts: len(workouts),
	}

	if len(weightHistory) > 0 {
		summary.CurrentWeight = weightHistory[len(weightHistory)-1].Weight
	}
	if len(weightHistory) > 1 {
		summary.WeightDelta = summary.CurrentWeight - weightHistory[0].Weight
	}

	// deliberately divides by the calendar month number of "now", not by the
	// months of collected data; early-year averages read higher than a
	// data-span average would
	monthNumber := int(a.now().Month())
	if monthNumber < 1 {
		monthNumber = 1
	}
	summary.MonthlyAverage = float64(summary.TotalWorkouts) / float64(monthNumber)

	if len(workouts) > 0 {
		last := workouts[len(workouts)-1]
		summary.LastWorkout = &last
	}

	return summary
}

// WeightSeries maps every weight record to a chart point, in stored order.
// Records sharing a date are all kept, no resampling or deduplication.
func (a *Analyzer) WeightSeries(weightHistory []history.WeightRecord) []Point {
	points := make([]Point, 0, len(weightHistory))
	for _, record := range weightHistory {
		points = append(points, Point{
			Label: record.Date.Format(dateLabel),
			Value: record.Weight,
		})
	}
	return points
}

// ExerciseVolumeSeries maps the trailing min(7, n) workouts, in insertion
// order, to points valued by that workout's exercise count. The exercise
// count is a coarse volume proxy, not total sets or reps.
func (a *Analyzer) ExerciseVolumeSeries(workouts []history.Workout) []Point {
	window := workouts
	if len(window) > volumeWindowSize {
		window = window[len(window)-volumeWindowSize:]
	}

	points := make([]Point, 0, len(window))
	for _, workout := range window {
		points = append(points, Point{
			Label: workout.Date.Format(dateLabel),
			Value: float64(len(workout.Exercises)),
		})
	}
	return points
}
