package history

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/skasun/fittrack/internal/telemetry/tracing"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

var (
	ErrNoExercises        = errors.New("workout has no exercises")
	ErrNoSets             = errors.New("exercise has no sets")
	ErrEmptyExerciseName  = errors.New("exercise name empty")
	ErrInvalidSet         = errors.New("set reps must be positive and weight non-negative")
	ErrUnknownWorkoutType = errors.New("unknown workout type")
	ErrInvalidWeight      = errors.New("weight must be a positive finite number")
	ErrEmptyProfileName   = errors.New("profile name empty")
)

// KeyValueRepo is the persistence collaborator: the whole history state
// travels as one opaque blob.
type KeyValueRepo interface {
	Get(ctx context.Context) ([]byte, error)
	Set(ctx context.Context, stateJson []byte) error
}

// Store owns the in-memory history state and keeps the repo in sync:
// every append persists the full state right away.
type Store struct {
	repo  KeyValueRepo
	newID func() string
	now   func() time.Time

	mu    sync.RWMutex
	state State
}

type NewStoreParams struct {
	Repo KeyValueRepo
	// NewID generates entity identifiers; defaults to UUIDs
	NewID func() string
	// Now provides timestamps; defaults to time.Now
	Now func() time.Time
}

// NewStore loads the persisted state, or falls back to a default one when
// nothing is stored yet or the stored blob is corrupted. Corruption is never
// fatal, only logged.
func NewStore(ctx context.Context, params NewStoreParams) *Store {
	s := &Store{
		repo:  params.Repo,
		newID: params.NewID,
		now:   params.Now,
	}
	if s.newID == nil {
		s.newID = uuid.NewString
	}
	if s.now == nil {
		s.now = time.Now
	}

	s.state = s.load(ctx)

	return s
}

func (s *Store) load(ctx context.Context) State {
	ctx, span := tracing.GlobalTracer.Start(ctx, "store.history.load")
	defer span.End()

	blob, err := s.repo.Get(ctx)
	if err != nil {
		if errors.Is(err, ErrStateNotFound) {
			log.Debugln("no persisted history found, starting fresh")
		} else {
			log.Errorf("failed to read persisted history: %s", err)
		}
		return s.defaultState()
	}

	var state State
	if err := json.Unmarshal(blob, &state); err != nil {
		log.Warnf("persisted history corrupted [%s], falling back to default state", err)
		return s.defaultState()
	}
	if err := validateState(&state); err != nil {
		log.Warnf("persisted history invalid [%s], falling back to default state", err)
		return s.defaultState()
	}

	return state
}

// defaultState: no workouts yet, a single seed weight record dated now,
// and a default profile.
func (s *Store) defaultState() State {
	return State{
		Workouts: []Workout{},
		WeightHistory: []WeightRecord{
			{
				ID:     s.newID(),
				Date:   s.now(),
				Weight: 70,
			},
		},
		UserProfile: UserProfile{
			Name:   "Atleta",
			Goal:   "Saúde",
			Height: 175,
		},
	}
}

func validateState(state *State) error {
	for _, w := range state.Workouts {
		if w.ID == "" {
			return errors.New("workout with empty id")
		}
		if err := validateWorkoutShape(w); err != nil {
			return fmt.Errorf("workout %s: %w", w.ID, err)
		}
	}
	for _, wr := range state.WeightHistory {
		if wr.ID == "" {
			return errors.New("weight record with empty id")
		}
		if math.IsNaN(wr.Weight) || math.IsInf(wr.Weight, 0) || wr.Weight <= 0 {
			return fmt.Errorf("weight record %s: %w", wr.ID, ErrInvalidWeight)
		}
	}
	return nil
}

func validateWorkoutShape(w Workout) error {
	if len(w.Exercises) == 0 {
		return ErrNoExercises
	}
	for _, ex := range w.Exercises {
		if ex.Name == "" {
			return ErrEmptyExerciseName
		}
		if len(ex.Sets) == 0 {
			return ErrNoSets
		}
		for _, set := range ex.Sets {
			if set.Reps <= 0 || set.Weight < 0 || math.IsNaN(set.Weight) || math.IsInf(set.Weight, 0) {
				return ErrInvalidSet
			}
		}
	}
	return nil
}

// AddWorkout validates the workout, stamps it with an id and creation date,
// appends it and persists the whole state. The input is rejected before any
// state change on validation failure.
func (s *Store) AddWorkout(ctx context.Context, workout Workout) (_ *Workout, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "store.history.addWorkout")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	if err := validateWorkoutShape(workout); err != nil {
		return nil, err
	}
	if !WorkoutTypes[workout.Type] {
		return nil, ErrUnknownWorkoutType
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	workout.ID = s.newID()
	workout.Date = s.now()
	// detach from the caller's slices before stamping ids
	workout.Exercises = cloneExercises(workout.Exercises)
	for i := range workout.Exercises {
		if workout.Exercises[i].ID == "" {
			workout.Exercises[i].ID = s.newID()
		}
		for j := range workout.Exercises[i].Sets {
			if workout.Exercises[i].Sets[j].ID == "" {
				workout.Exercises[i].Sets[j].ID = s.newID()
			}
		}
	}

	s.state.Workouts = append(s.state.Workouts, workout)

	if err := s.persist(ctx); err != nil {
		return nil, fmt.Errorf("persist after add workout: %w", err)
	}

	log.Debugf("new workout added: [%s] [%s], exercises: %d", workout.ID, workout.Type, len(workout.Exercises))

	return &workout, nil
}

// AddWeight appends a new weight record and persists the whole state.
func (s *Store) AddWeight(ctx context.Context, weight float64) (_ *WeightRecord, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "store.history.addWeight")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	if math.IsNaN(weight) || math.IsInf(weight, 0) || weight <= 0 {
		return nil, ErrInvalidWeight
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	record := WeightRecord{
		ID:     s.newID(),
		Date:   s.now(),
		Weight: weight,
	}
	s.state.WeightHistory = append(s.state.WeightHistory, record)

	if err := s.persist(ctx); err != nil {
		return nil, fmt.Errorf("persist after add weight: %w", err)
	}

	log.Debugf("new weight record added: [%s] %.1f kg", record.ID, record.Weight)

	return &record, nil
}

func (s *Store) SetProfile(ctx context.Context, profile UserProfile) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "store.history.setProfile")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	if profile.Name == "" {
		return ErrEmptyProfileName
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.state.UserProfile = profile

	if err := s.persist(ctx); err != nil {
		return fmt.Errorf("persist after set profile: %w", err)
	}
	return nil
}

// Snapshot returns a copy of the current state for the read paths. Workouts
// hold nested exercise and set slices, those get cloned too so callers can
// never reach into the store through a snapshot.
func (s *Store) Snapshot() State {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snapshot := State{
		Workouts:      make([]Workout, len(s.state.Workouts)),
		WeightHistory: make([]WeightRecord, len(s.state.WeightHistory)),
		UserProfile:   s.state.UserProfile,
	}
	copy(snapshot.Workouts, s.state.Workouts)
	for i := range snapshot.Workouts {
		snapshot.Workouts[i].Exercises = cloneExercises(snapshot.Workouts[i].Exercises)
	}
	copy(snapshot.WeightHistory, s.state.WeightHistory)
	return snapshot
}

func cloneExercises(exercises []Exercise) []Exercise {
	if exercises == nil {
		return nil
	}
	cloned := make([]Exercise, len(exercises))
	copy(cloned, exercises)
	for i := range cloned {
		sets := make([]SetRecord, len(cloned[i].Sets))
		copy(sets, cloned[i].Sets)
		cloned[i].Sets = sets
	}
	return cloned
}

func (s *Store) persist(ctx context.Context) error {
	stateJson, err := json.Marshal(s.state)
	if err != nil {
		return fmt.Errorf("marshal state: %w", err)
	}
	return s.repo.Set(ctx, stateJson)
}
