package insight

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/skasun/fittrack/internal/history"
	"github.com/skasun/fittrack/internal/telemetry/metrics"
	"github.com/skasun/fittrack/internal/telemetry/tracing"

	log "github.com/sirupsen/logrus"
)

// FallbackMessage replaces the analysis when generation fails for any reason.
const FallbackMessage = "Não foi possível gerar a análise no momento. Continue treinando firme!"

// NoWorkoutsMessage guides the user when there is nothing to analyze yet.
const NoWorkoutsMessage = "Registre alguns treinos primeiro para eu analisar seu progresso!"

// digestSize bounds how much recent history is condensed into the prompt;
// the full history is never sent out.
const digestSize = 5

var ErrNoWorkouts = errors.New("no workouts to analyze")

type Phase string

const (
	// PhaseIdle - no analysis made yet (or reset), not busy
	PhaseIdle Phase = "idle"
	// PhasePending - a generation call is in flight
	PhasePending Phase = "pending"
	// PhaseSettled - analysis text available (generated or fallback)
	PhaseSettled Phase = "settled"
)

// Status is the wire representation of the pipeline state. Busy is derived
// from the phase, it is not stored separately.
type Status struct {
	Phase    Phase  `json:"phase"`
	Busy     bool   `json:"busy"`
	Analysis string `json:"analysis,omitempty"`
}

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=insight_test

type TextGenerator interface {
	GenerateText(ctx context.Context, prompt string) (string, error)
}

// Pipeline condenses recent history into a bounded prompt, delegates to the
// text generation client, and reduces the outcome to a single display
// string. At most one generation call is in flight; triggers arriving while
// pending are ignored.
type Pipeline struct {
	generator TextGenerator
	metrics   *metrics.Manager

	mu       sync.Mutex
	phase    Phase
	analysis string
}

func NewPipeline(generator TextGenerator, metricsManager *metrics.Manager) *Pipeline {
	return &Pipeline{
		generator: generator,
		metrics:   metricsManager,
		phase:     PhaseIdle,
	}
}

type WorkoutDigest struct {
	Date           time.Time `json:"date"`
	Type           string    `json:"type"`
	ExercisesCount int       `json:"exercisesCount"`
}

type WeightDigest struct {
	Date   time.Time `json:"date"`
	Weight float64   `json:"weight"`
}

type Digest struct {
	LastWorkouts []WorkoutDigest
	WeightTrend  []WeightDigest
}

// BuildDigest reduces the history to the last few workouts and weight
// records, the only data ever embedded in the prompt.
func BuildDigest(state history.State) Digest {
	workouts := state.Workouts
	if len(workouts) > digestSize {
		workouts = workouts[len(workouts)-digestSize:]
	}
	lastWorkouts := make([]WorkoutDigest, 0, len(workouts))
	for _, w := range workouts {
		lastWorkouts = append(lastWorkouts, WorkoutDigest{
			Date:           w.Date,
			Type:           w.Type,
			ExercisesCount: len(w.Exercises),
		})
	}

	weights := state.WeightHistory
	if len(weights) > digestSize {
		weights = weights[len(weights)-digestSize:]
	}
	weightTrend := make([]WeightDigest, 0, len(weights))
	for _, wr := range weights {
		weightTrend = append(weightTrend, WeightDigest{
			Date:   wr.Date,
			Weight: wr.Weight,
		})
	}

	return Digest{
		LastWorkouts: lastWorkouts,
		WeightTrend:  weightTrend,
	}
}

// ComposePrompt embeds the user name and the serialized digest into the
// fixed Brazilian Portuguese coaching prompt.
func ComposePrompt(userName string, digest Digest) string {
	workoutsJson, err := json.Marshal(digest.LastWorkouts)
	if err != nil {
		workoutsJson = []byte("[]")
	}
	weightsJson, err := json.Marshal(digest.WeightTrend)
	if err != nil {
		weightsJson = []byte("[]")
	}

	return fmt.Sprintf(`Analise o progresso de treino de %s.
Últimos 5 treinos: %s
Histórico de peso recente: %s

Por favor, forneça:
1. Uma breve análise do ritmo atual.
2. Duas dicas práticas para melhorar os resultados.
3. Uma mensagem motivacional curta.
Responda em Português do Brasil. Mantenha um tom profissional e encorajador.`,
		userName, workoutsJson, weightsJson,
	)
}

// Analyze runs one generation round: Idle/Settled -> Pending -> Settled.
// With no workouts recorded it refuses with ErrNoWorkouts and never goes
// Pending. A trigger while Pending returns the pending status untouched.
// Generation failures settle on the fallback message, they are never
// returned as errors.
func (p *Pipeline) Analyze(ctx context.Context, state history.State) (Status, error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "insight.pipeline.analyze")
	defer span.End()

	if len(state.Workouts) == 0 {
		return p.Status(), ErrNoWorkouts
	}

	p.mu.Lock()
	if p.phase == PhasePending {
		defer p.mu.Unlock()
		log.Debugln("insight generation already in flight, trigger ignored")
		return p.statusLocked(), nil
	}
	p.phase = PhasePending
	p.analysis = ""
	p.mu.Unlock()

	prompt := ComposePrompt(state.UserProfile.Name, BuildDigest(state))

	var text string
	var err error
	if p.generator == nil {
		// no client configured (e.g. missing api key), settle on fallback
		err = errors.New("text generator not configured")
	} else {
		startedAt := time.Now()
		text, err = p.generator.GenerateText(ctx, prompt)
		if p.metrics != nil {
			p.metrics.HistInsightGenDuration.Observe(time.Since(startedAt).Seconds())
		}
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if err != nil {
		log.Errorf("insight generation failed: %s", err)
		if p.metrics != nil {
			p.metrics.CounterInsightFailures.Inc()
		}
		p.analysis = FallbackMessage
	} else {
		if p.metrics != nil {
			p.metrics.CounterInsightsGenerated.Inc()
		}
		p.analysis = text
	}
	p.phase = PhaseSettled

	return p.statusLocked(), nil
}

// Reset moves a settled pipeline back to idle so a new analysis can be
// requested. A pending generation is left alone.
func (p *Pipeline) Reset() Status {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.phase == PhasePending {
		return p.statusLocked()
	}

	p.phase = PhaseIdle
	p.analysis = ""
	return p.statusLocked()
}

func (p *Pipeline) Status() Status {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.statusLocked()
}

func (p *Pipeline) statusLocked() Status {
	return Status{
		Phase:    p.phase,
		Busy:     p.phase == PhasePending,
		Analysis: p.analysis,
	}
}
