package history

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/skasun/fittrack/internal/telemetry/metrics"
	"github.com/skasun/fittrack/internal/telemetry/tracing"
	"github.com/skasun/fittrack/pkg"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
)

//go:generate mockgen -source=$GOFILE -destination=handler_mocks_test.go -package=history_test

type historyStore interface {
	AddWorkout(ctx context.Context, workout Workout) (*Workout, error)
	AddWeight(ctx context.Context, weight float64) (*WeightRecord, error)
	SetProfile(ctx context.Context, profile UserProfile) error
	Snapshot() State
}

type AddWeightRequest struct {
	Weight float64 `json:"weight"`
}

type WorkoutsListResponse struct {
	Workouts []Workout `json:"workouts"`
	Total    int       `json:"total"`
}

type WeightHistoryResponse struct {
	WeightHistory []WeightRecord `json:"weightHistory"`
	Total         int            `json:"total"`
}

type Handler struct {
	store   historyStore
	metrics *metrics.Manager
}

func NewHandler(store historyStore, metricsManager *metrics.Manager) *Handler {
	return &Handler{
		store:   store,
		metrics: metricsManager,
	}
}

func (handler *Handler) SetupRoutes(router *mux.Router) {
	router.HandleFunc("/history/workout", handler.HandleAddWorkout).Methods("POST", "OPTIONS").Name("new-workout")
	router.HandleFunc("/history/workouts", handler.HandleListWorkouts).Methods("GET", "OPTIONS").Name("list-workouts")
	router.HandleFunc("/history/weight", handler.HandleAddWeight).Methods("POST", "OPTIONS").Name("new-weight")
	router.HandleFunc("/history/weights", handler.HandleListWeights).Methods("GET", "OPTIONS").Name("list-weights")
	router.HandleFunc("/history/profile", handler.HandleGetProfile).Methods("GET", "OPTIONS").Name("get-profile")
	router.HandleFunc("/history/profile", handler.HandleUpdateProfile).Methods("PUT", "OPTIONS").Name("update-profile")
}

func (handler *Handler) HandleAddWorkout(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.history.addWorkout")
	defer span.End()

	if r.Header.Get("Content-Type") != "application/json" {
		http.Error(w, "invalid content type", http.StatusBadRequest)
		return
	}

	var workout Workout
	if err := json.NewDecoder(r.Body).Decode(&workout); err != nil {
		log.Errorf("new workout, unmarshal json params: %s", err)
		http.Error(w, "add workout failed", http.StatusBadRequest)
		return
	}

	addedWorkout, err := handler.store.AddWorkout(ctx, workout)
	if err != nil {
		if isValidationErr(err) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		log.Errorf("failed to add new workout [%s]: %s", workout.Type, err)
		http.Error(w, "error, failed to add new workout", http.StatusInternalServerError)
		return
	}

	handler.metrics.CounterWorkoutsAdded.Inc()

	workoutJson, err := json.Marshal(addedWorkout)
	if err != nil {
		log.Errorf("failed to marshal new workout: %s", err)
		http.Error(w, "error, failed to add new workout", http.StatusInternalServerError)
		return
	}
	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, workoutJson, http.StatusCreated)
}

func (handler *Handler) HandleAddWeight(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.history.addWeight")
	defer span.End()

	if r.Header.Get("Content-Type") != "application/json" {
		http.Error(w, "invalid content type", http.StatusBadRequest)
		return
	}

	var req AddWeightRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Errorf("new weight record, unmarshal json params: %s", err)
		http.Error(w, "error, weight must be a number", http.StatusBadRequest)
		return
	}

	record, err := handler.store.AddWeight(ctx, req.Weight)
	if err != nil {
		if isValidationErr(err) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		log.Errorf("failed to add new weight record: %s", err)
		http.Error(w, "error, failed to add new weight record", http.StatusInternalServerError)
		return
	}

	handler.metrics.CounterWeightReports.Inc()

	recordJson, err := json.Marshal(record)
	if err != nil {
		log.Errorf("failed to marshal new weight record: %s", err)
		http.Error(w, "error, failed to add new weight record", http.StatusInternalServerError)
		return
	}
	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, recordJson, http.StatusCreated)
}

func (handler *Handler) HandleListWorkouts(w http.ResponseWriter, r *http.Request) {
	_, span := tracing.GlobalTracer.Start(r.Context(), "handler.history.listWorkouts")
	defer span.End()

	state := handler.store.Snapshot()
	resp, err := json.Marshal(WorkoutsListResponse{
		Workouts: state.Workouts,
		Total:    len(state.Workouts),
	})
	if err != nil {
		log.Errorf("failed to marshal workouts list: %s", err)
		http.Error(w, "failed to list workouts", http.StatusInternalServerError)
		return
	}
	pkg.WriteResponseBytesOK(w, pkg.ContentType.JSON, resp)
}

func (handler *Handler) HandleListWeights(w http.ResponseWriter, r *http.Request) {
	_, span := tracing.GlobalTracer.Start(r.Context(), "handler.history.listWeights")
	defer span.End()

	state := handler.store.Snapshot()
	resp, err := json.Marshal(WeightHistoryResponse{
		WeightHistory: state.WeightHistory,
		Total:         len(state.WeightHistory),
	})
	if err != nil {
		log.Errorf("failed to marshal weight history: %s", err)
		http.Error(w, "failed to list weight history", http.StatusInternalServerError)
		return
	}
	pkg.WriteResponseBytesOK(w, pkg.ContentType.JSON, resp)
}

func (handler *Handler) HandleGetProfile(w http.ResponseWriter, r *http.Request) {
	_, span := tracing.GlobalTracer.Start(r.Context(), "handler.history.getProfile")
	defer span.End()

	state := handler.store.Snapshot()
	profileJson, err := json.Marshal(state.UserProfile)
	if err != nil {
		log.Errorf("failed to marshal user profile: %s", err)
		http.Error(w, "failed to get profile", http.StatusInternalServerError)
		return
	}
	pkg.WriteResponseBytesOK(w, pkg.ContentType.JSON, profileJson)
}

func (handler *Handler) HandleUpdateProfile(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.history.updateProfile")
	defer span.End()

	if r.Header.Get("Content-Type") != "application/json" {
		http.Error(w, "invalid content type", http.StatusBadRequest)
		return
	}

	var profile UserProfile
	if err := json.NewDecoder(r.Body).Decode(&profile); err != nil {
		log.Errorf("update profile, unmarshal json params: %s", err)
		http.Error(w, "update profile failed", http.StatusBadRequest)
		return
	}

	if err := handler.store.SetProfile(ctx, profile); err != nil {
		if isValidationErr(err) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		log.Errorf("failed to update profile: %s", err)
		http.Error(w, "failed to update profile", http.StatusInternalServerError)
		return
	}

	pkg.WriteJSONResponseOK(w, `{"updated":true}`)
}

func isValidationErr(err error) bool {
	return errors.Is(err, ErrNoExercises) ||
		errors.Is(err, ErrNoSets) ||
		errors.Is(err, ErrEmptyExerciseName) ||
		errors.Is(err, ErrInvalidSet) ||
		errors.Is(err, ErrUnknownWorkoutType) ||
		errors.Is(err, ErrInvalidWeight) ||
		errors.Is(err, ErrEmptyProfileName)
}
