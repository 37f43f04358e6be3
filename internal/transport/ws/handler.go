package ws

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"quizmaster/internal/app"
	"quizmaster/internal/domain"
)

// Handler serves the single-player quiz UI over a websocket. Each connection
// owns its player slot: the active session, the user's stats, and a generator
// bound to the shared transport. There are no ambient globals; the slot lives
// and dies with the connection.
type Handler struct {
	transport app.Transport
	log       *zap.Logger
	upgrader  websocket.Upgrader
}

// NewHandler wires the quiz pipeline into a websocket endpoint.
func NewHandler(transport app.Transport, log *zap.Logger) *Handler {
	if log == nil {
		log = zap.NewNop()
	}
	return &Handler{
		transport: transport,
		log:       log,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
	}
}

type inboundMessage struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

type startPayload struct {
	Topic string `json:"topic"`
	Count int    `json:"count"`
}

type answerPayload struct {
	Answer string `json:"answer"`
}

type outboundMessage struct {
	Type    string `json:"type"`
	Payload any    `json:"payload"`
}

type errorPayload struct {
	Message string `json:"message"`
}

type progressPayload struct {
	Stage string `json:"stage"`
}

type startedPayload struct {
	Topic   string `json:"topic"`
	Total   int    `json:"total"`
	Skipped int    `json:"skipped"`
}

type questionView struct {
	Index      int      `json:"index"`
	Total      int      `json:"total"`
	Text       string   `json:"text"`
	Options    []string `json:"options"`
	UserAnswer string   `json:"userAnswer,omitempty"`
	Answered   bool     `json:"answered"`
}

type summaryPayload struct {
	Topic     string  `json:"topic"`
	Total     int     `json:"total"`
	Answered  int     `json:"answered"`
	Correct   int     `json:"correct"`
	Incorrect int     `json:"incorrect"`
	Score     float64 `json:"score"`
	Duration  string  `json:"duration"`
	Stats     string  `json:"stats"`
}

// player is the per-connection slot. The mutex serializes the read loop
// against the generation goroutine delivering a fresh session.
type player struct {
	mu      sync.Mutex
	session *domain.Session
	stats   *domain.UserStats
}

// ServeWS upgrades the request and runs the quiz action loop for one player.
func (h *Handler) ServeWS(w http.ResponseWriter, r *http.Request) {
	name := r.URL.Query().Get("name")
	if name == "" {
		http.Error(w, "missing name", http.StatusBadRequest)
		return
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.log.Warn("ws upgrade failed", zap.Error(err))
		return
	}
	defer conn.Close()

	state := &player{stats: domain.NewUserStats(name)}
	generator := app.NewGenerator(h.transport, h.log)

	send := make(chan outboundMessage, 16)
	closeSignals := make(chan struct{})
	writerDone := make(chan struct{})
	var pending sync.WaitGroup

	go func() {
		defer close(writerDone)
		for msg := range send {
			if err := conn.WriteJSON(msg); err != nil {
				h.log.Warn("ws write error", zap.Error(err))
				return
			}
		}
	}()

	emit := func(msg outboundMessage) {
		select {
		case send <- msg:
		case <-closeSignals:
		}
	}

	for {
		var inbound inboundMessage
		if err := conn.ReadJSON(&inbound); err != nil {
			break
		}
		switch inbound.Type {
		case "start":
			var payload startPayload
			if err := json.Unmarshal(inbound.Payload, &payload); err != nil {
				emit(outboundMessage{Type: "error", Payload: errorPayload{Message: "invalid start payload"}})
				continue
			}
			pending.Add(1)
			go func() {
				defer pending.Done()
				h.runGeneration(r.Context(), generator, state, payload, emit)
			}()
		case "answer":
			var payload answerPayload
			if err := json.Unmarshal(inbound.Payload, &payload); err != nil {
				emit(outboundMessage{Type: "error", Payload: errorPayload{Message: "invalid answer payload"}})
				continue
			}
			h.withSession(state, emit, func(session *domain.Session) {
				if !session.SubmitAnswer(payload.Answer) {
					emit(outboundMessage{Type: "error", Payload: errorPayload{Message: "no current question"}})
					return
				}
				emit(outboundMessage{Type: "question", Payload: viewOf(session)})
			})
		case "next":
			h.withSession(state, emit, func(session *domain.Session) {
				session.Advance()
				emit(outboundMessage{Type: "question", Payload: viewOf(session)})
			})
		case "prev":
			h.withSession(state, emit, func(session *domain.Session) {
				session.Retreat()
				emit(outboundMessage{Type: "question", Payload: viewOf(session)})
			})
		case "complete":
			h.withSession(state, emit, func(session *domain.Session) {
				session.Complete()
				state.stats.Add(session)
				emit(outboundMessage{Type: "summary", Payload: summaryPayload{
					Topic:     session.Topic(),
					Total:     session.TotalQuestions(),
					Answered:  session.AnsweredCount(),
					Correct:   session.CorrectCount(),
					Incorrect: session.IncorrectCount(),
					Score:     session.ScorePercentage(),
					Duration:  session.FormattedDuration(),
					Stats:     state.stats.Summary(),
				}})
			})
		case "reset":
			h.withSession(state, emit, func(session *domain.Session) {
				session.Reset()
				emit(outboundMessage{Type: "question", Payload: viewOf(session)})
			})
		default:
			emit(outboundMessage{Type: "error", Payload: errorPayload{Message: "unsupported message type"}})
		}
	}

	close(closeSignals)
	pending.Wait()
	close(send)
	<-writerDone
}

// runGeneration executes the pipeline off the read loop. Progress events ride
// the connection's writer channel, so the consumer sees them in order.
func (h *Handler) runGeneration(ctx context.Context, generator *app.Generator, state *player, payload startPayload, emit func(outboundMessage)) {
	result, err := generator.Generate(ctx, payload.Topic, payload.Count, app.ProgressFunc(func(stage app.Stage) {
		emit(outboundMessage{Type: "progress", Payload: progressPayload{Stage: string(stage)}})
	}))
	if err != nil {
		emit(outboundMessage{Type: "error", Payload: errorPayload{Message: err.Error()}})
		return
	}

	state.mu.Lock()
	state.session = result.Session
	state.mu.Unlock()

	emit(outboundMessage{Type: "started", Payload: startedPayload{
		Topic:   result.Session.Topic(),
		Total:   result.Session.TotalQuestions(),
		Skipped: result.Skipped,
	}})
	emit(outboundMessage{Type: "question", Payload: viewOf(result.Session)})
}

func (h *Handler) withSession(state *player, emit func(outboundMessage), fn func(*domain.Session)) {
	state.mu.Lock()
	defer state.mu.Unlock()
	if state.session == nil {
		emit(outboundMessage{Type: "error", Payload: errorPayload{Message: "no active quiz"}})
		return
	}
	fn(state.session)
}

func viewOf(session *domain.Session) questionView {
	question := session.Current()
	view := questionView{
		Index: session.CurrentIndex(),
		Total: session.TotalQuestions(),
	}
	if question != nil {
		view.Text = question.Text
		view.Options = question.Options
		view.UserAnswer = question.UserAnswer()
		view.Answered = question.Answered()
	}
	return view
}
