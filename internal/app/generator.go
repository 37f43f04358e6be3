package app

import (
	"context"
	"encoding/json"
	"strings"
	"sync/atomic"

	"go.uber.org/zap"

	"quizmaster/internal/domain"
)

// Transport performs the single call to the generation service and returns
// the raw response body. Retry and backoff, if any, belong to the transport;
// the pipeline issues exactly one call per run.
type Transport interface {
	GenerateQuestions(ctx context.Context, topic string, count int) (string, error)
}

// Stage labels the phases of a generation run, in delivery order.
type Stage string

const (
	StageConnecting Stage = "connecting"
	StageProcessing Stage = "processing"
	StageReady      Stage = "ready"
)

// ProgressListener receives stage notifications: each stage at most once, in
// order. Implementations marshal delivery onto their own execution context.
type ProgressListener interface {
	OnStage(stage Stage)
}

// ProgressFunc adapts a function to ProgressListener.
type ProgressFunc func(Stage)

func (f ProgressFunc) OnStage(stage Stage) { f(stage) }

// Request bounds, checked before any transport call.
const (
	minTopicLength = 2
	maxTopicLength = 100
	maxCount       = 20
)

// Result is a successful generation: a fresh session plus the number of
// records dropped by validation. The session may hold fewer questions than
// requested; that is accepted, not an error.
type Result struct {
	Session *domain.Session
	Skipped int
}

// Generator runs the generation pipeline: request, extract, decode, validate,
// materialize. At most one run per Generator is in flight at a time; callers
// run Generate off their interaction loop.
type Generator struct {
	transport Transport
	log       *zap.Logger
	inFlight  atomic.Bool
}

// NewGenerator builds a generator over the given transport.
func NewGenerator(transport Transport, log *zap.Logger) *Generator {
	if log == nil {
		log = zap.NewNop()
	}
	return &Generator{transport: transport, log: log}
}

// Generate produces a quiz session for the topic. Invalid topic or count
// fails fast with a ValidationError and never reaches the network. A record
// that fails validation is skipped, not fatal; only an empty surviving set
// aborts the run.
func (g *Generator) Generate(ctx context.Context, topic string, count int, listener ProgressListener) (*Result, error) {
	topic = strings.TrimSpace(topic)
	if len(topic) < minTopicLength || len(topic) > maxTopicLength {
		return nil, &domain.ValidationError{Index: -1, Reason: "topic must be between 2 and 100 characters"}
	}
	if count < 1 || count > maxCount {
		return nil, &domain.ValidationError{Index: -1, Reason: "question count must be between 1 and 20"}
	}

	if !g.inFlight.CompareAndSwap(false, true) {
		return nil, domain.ErrGenerationInFlight
	}
	defer g.inFlight.Store(false)

	notify := func(stage Stage) {
		if listener != nil {
			listener.OnStage(stage)
		}
	}

	notify(StageConnecting)
	body, err := g.transport.GenerateQuestions(ctx, topic, count)
	if err != nil {
		return nil, err
	}

	notify(StageProcessing)
	questionsJSON, err := ExtractQuestionsJSON(body)
	if err != nil {
		return nil, &domain.GenerationError{Reason: domain.ReasonParseFailed, Err: err}
	}

	var records []*rawQuestion
	if err := json.Unmarshal([]byte(questionsJSON), &records); err != nil {
		return nil, &domain.GenerationError{Reason: domain.ReasonParseFailed, Err: err}
	}

	questions := make([]*domain.Question, 0, len(records))
	skipped := 0
	for i, rec := range records {
		question, err := validateQuestion(rec, i)
		if err != nil {
			skipped++
			g.log.Warn("skipping invalid question", zap.Int("index", i), zap.Error(err))
			continue
		}
		questions = append(questions, question)
	}
	if len(questions) == 0 {
		return nil, &domain.GenerationError{Reason: domain.ReasonNoValidQuestions}
	}

	notify(StageReady)
	g.log.Info("quiz generated",
		zap.String("topic", topic),
		zap.Int("requested", count),
		zap.Int("questions", len(questions)),
		zap.Int("skipped", skipped),
	)
	return &Result{Session: domain.NewSession(topic, questions), Skipped: skipped}, nil
}
