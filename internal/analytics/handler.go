package analytics

import (
	"encoding/json"
	"net/http"

	"github.com/skasun/fittrack/internal/history"
	"github.com/skasun/fittrack/internal/telemetry/tracing"
	"github.com/skasun/fittrack/pkg"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
)

//go:generate mockgen -source=$GOFILE -destination=handler_mocks_test.go -package=analytics_test

type historyReader interface {
	Snapshot() history.State
}

type Handler struct {
	store    historyReader
	analyzer *Analyzer
}

func NewHandler(store historyReader, analyzer *Analyzer) *Handler {
	return &Handler{
		store:    store,
		analyzer: analyzer,
	}
}

func (handler *Handler) SetupRoutes(router *mux.Router) {
	router.HandleFunc("/stats/summary", handler.HandleSummary).Methods("GET", "OPTIONS").Name("stats-summary")
	router.HandleFunc("/stats/weight", handler.HandleWeightSeries).Methods("GET", "OPTIONS").Name("stats-weight-series")
	router.HandleFunc("/stats/volume", handler.HandleVolumeSeries).Methods("GET", "OPTIONS").Name("stats-volume-series")
}

func (handler *Handler) HandleSummary(w http.ResponseWriter, r *http.Request) {
	_, span := tracing.GlobalTracer.Start(r.Context(), "handler.analytics.summary")
	defer span.End()

	state := handler.store.Snapshot()
	summary := handler.analyzer.Summarize(state.Workouts, state.WeightHistory)

	summaryJson, err := json.Marshal(summary)
	if err != nil {
		log.Errorf("failed to marshal stats summary: %s", err)
		http.Error(w, "failed to get stats summary", http.StatusInternalServerError)
		return
	}
	pkg.WriteResponseBytesOK(w, pkg.ContentType.JSON, summaryJson)
}

func (handler *Handler) HandleWeightSeries(w http.ResponseWriter, r *http.Request) {
	_, span := tracing.GlobalTracer.Start(r.Context(), "handler.analytics.weightSeries")
	defer span.End()

	state := handler.store.Snapshot()
	points := handler.analyzer.WeightSeries(state.WeightHistory)

	pointsJson, err := json.Marshal(points)
	if err != nil {
		log.Errorf("failed to marshal weight series: %s", err)
		http.Error(w, "failed to get weight series", http.StatusInternalServerError)
		return
	}
	pkg.WriteResponseBytesOK(w, pkg.ContentType.JSON, pointsJson)
}

func (handler *Handler) HandleVolumeSeries(w http.ResponseWriter, r *http.Request) {
	_, span := tracing.GlobalTracer.Start(r.Context(), "handler.analytics.volumeSeries")
	defer span.End()

	state := handler.store.Snapshot()
	points := handler.analyzer.ExerciseVolumeSeries(state.Workouts)

	pointsJson, err := json.Marshal(points)
	if err != nil {
		log.Errorf("failed to marshal volume series: %s", err)
		http.Error(w, "failed to get volume series", http.StatusInternalServerError)
		return
	}
	pkg.WriteResponseBytesOK(w, pkg.ContentType.JSON, pointsJson)
}
