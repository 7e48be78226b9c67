package insight

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/skasun/fittrack/internal/history"
	"github.com/skasun/fittrack/internal/middleware"
	"github.com/skasun/fittrack/internal/telemetry/metrics"
	"github.com/skasun/fittrack/pkg"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
)

//go:generate mockgen -source=$GOFILE -destination=handler_mocks_test.go -package=insight_test

type insightPipeline interface {
	Analyze(ctx context.Context, state history.State) (Status, error)
	Reset() Status
	Status() Status
}

type historyReader interface {
	Snapshot() history.State
}

type Handler struct {
	pipeline insightPipeline
	store    historyReader
}

func NewHandler(pipeline insightPipeline, store historyReader) *Handler {
	return &Handler{
		pipeline: pipeline,
		store:    store,
	}
}

func (handler *Handler) SetupRoutes(
	mainRouter *mux.Router,
	rateLimiter middleware.RequestRateLimiter,
	metricsManager *metrics.Manager,
	allowedTriggersPerMin int,
) {
	// only the trigger spends rate limit budget, each one is an external
	// api call; status polls and resets stay unlimited
	triggerHandler := http.Handler(http.HandlerFunc(handler.handleTrigger))
	if rateLimiter != nil {
		triggerHandler = middleware.RateLimit(
			rateLimiter, "insight", allowedTriggersPerMin, metricsManager,
		)(triggerHandler)
	}

	insightSubrouter := mainRouter.PathPrefix("/insight").Subrouter()
	insightSubrouter.Handle("", triggerHandler).Methods("POST", "OPTIONS").Name("trigger-insight")
	insightSubrouter.HandleFunc("", handler.handleStatus).Methods("GET", "OPTIONS").Name("insight-status")
	insightSubrouter.HandleFunc("/reset", handler.handleReset).Methods("POST", "OPTIONS").Name("reset-insight")
}

func (handler *Handler) handleTrigger(w http.ResponseWriter, r *http.Request) {
	status, err := handler.pipeline.Analyze(r.Context(), handler.store.Snapshot())
	if err != nil {
		if errors.Is(err, ErrNoWorkouts) {
			pkg.WriteResponse(w, pkg.ContentType.Text, NoWorkoutsMessage, http.StatusBadRequest)
			return
		}
		log.Errorf("trigger insight: %s", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	handler.writeStatus(w, status)
}

func (handler *Handler) handleStatus(w http.ResponseWriter, _ *http.Request) {
	handler.writeStatus(w, handler.pipeline.Status())
}

func (handler *Handler) handleReset(w http.ResponseWriter, _ *http.Request) {
	handler.writeStatus(w, handler.pipeline.Reset())
}

func (handler *Handler) writeStatus(w http.ResponseWriter, status Status) {
	statusJson, err := json.Marshal(status)
	if err != nil {
		log.Errorf("marshal insight status: %s", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}
	pkg.WriteResponseBytesOK(w, pkg.ContentType.JSON, statusJson)
}
