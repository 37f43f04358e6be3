package groq

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"time"

	"go.uber.org/zap"

	"quizmaster/internal/domain"
)

const (
	// DefaultBaseURL is Groq's OpenAI-compatible chat-completions endpoint.
	DefaultBaseURL = "https://api.groq.com/openai/v1/chat/completions"
	// DefaultModel is the generation model used when none is configured.
	DefaultModel = "llama-3.3-70b-versatile"

	defaultTemperature = 0.1
	defaultMaxTokens   = 1500
	defaultTopP        = 0.9

	defaultConnectTimeout = 5 * time.Second
	defaultRequestTimeout = 15 * time.Second
)

// Options tune the client. Zero values fall back to the defaults above.
type Options struct {
	BaseURL        string
	Model          string
	Temperature    float64
	MaxTokens      int
	TopP           float64
	ConnectTimeout time.Duration
	RequestTimeout time.Duration
}

func (o Options) withDefaults() Options {
	if o.BaseURL == "" {
		o.BaseURL = DefaultBaseURL
	}
	if o.Model == "" {
		o.Model = DefaultModel
	}
	if o.Temperature == 0 {
		o.Temperature = defaultTemperature
	}
	if o.MaxTokens == 0 {
		o.MaxTokens = defaultMaxTokens
	}
	if o.TopP == 0 {
		o.TopP = defaultTopP
	}
	if o.ConnectTimeout == 0 {
		o.ConnectTimeout = defaultConnectTimeout
	}
	if o.RequestTimeout == 0 {
		o.RequestTimeout = defaultRequestTimeout
	}
	return o
}

// Client calls the Groq chat-completions API. The underlying HTTP client and
// its connection pool are reused across calls; Close releases idle
// connections on shutdown.
type Client struct {
	apiKey string
	opts   Options
	http   *http.Client
	log    *zap.Logger
}

// NewClient builds a client around the resolved API credential.
func NewClient(apiKey string, opts Options, log *zap.Logger) *Client {
	opts = opts.withDefaults()
	if log == nil {
		log = zap.NewNop()
	}

	dialer := &net.Dialer{Timeout: opts.ConnectTimeout}
	transport := &http.Transport{
		DialContext:     dialer.DialContext,
		MaxIdleConns:    10,
		IdleConnTimeout: 5 * time.Minute,
	}

	return &Client{
		apiKey: apiKey,
		opts:   opts,
		http: &http.Client{
			Transport: transport,
			Timeout:   opts.RequestTimeout,
		},
		log: log,
	}
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Messages    []chatMessage `json:"messages"`
	Model       string        `json:"model"`
	Temperature float64       `json:"temperature"`
	MaxTokens   int           `json:"max_tokens"`
	TopP        float64       `json:"top_p"`
}

// GenerateQuestions asks the model for count multiple-choice questions about
// topic and returns the raw response body for downstream extraction.
// Marshaling the request struct escapes any special characters in the
// embedded prompt.
func (c *Client) GenerateQuestions(ctx context.Context, topic string, count int) (string, error) {
	reqBody, err := json.Marshal(chatRequest{
		Messages: []chatMessage{
			{Role: "user", Content: buildPrompt(topic, count)},
		},
		Model:       c.opts.Model,
		Temperature: c.opts.Temperature,
		MaxTokens:   c.opts.MaxTokens,
		TopP:        c.opts.TopP,
	})
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.opts.BaseURL, bytes.NewReader(reqBody))
	if err != nil {
		return "", fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		return "", &domain.TransportError{Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", &domain.TransportError{StatusCode: resp.StatusCode, Err: err}
	}

	c.log.Debug("generation response",
		zap.Int("status", resp.StatusCode),
		zap.Duration("elapsed", time.Since(start)),
		zap.Int("bytes", len(body)),
	)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", &domain.TransportError{StatusCode: resp.StatusCode, Body: string(body)}
	}
	return string(body), nil
}

// Close releases the client's idle connections.
func (c *Client) Close() {
	c.http.CloseIdleConnections()
}

func buildPrompt(topic string, count int) string {
	return fmt.Sprintf(
		"Generate exactly %d multiple-choice quiz questions about '%s'. "+
			"Return ONLY a valid JSON array. Each question: "+
			`{"question": "text", "options": ["A", "B", "C", "D"], `+
			`"correct_answer": "correct option", "explanation": "brief explanation"}. `+
			"Make questions factual with exactly 4 options each.",
		count, topic,
	)
}
