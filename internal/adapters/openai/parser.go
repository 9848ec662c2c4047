// Package openai implements ports.ScenarioParser against an
// OpenAI-compatible chat-completions endpoint. The engine places no
// special trust in its output: suggested transitions are ordinary values
// tagged with their provenance and validated like any other.
package openai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/autostate/autostate/pkg/domain"
)

const (
	defaultBaseURL = "https://api.openai.com/v1"
	defaultModel   = "gpt-4o"
)

const parseSystemPrompt = "You are a requirements parser that converts natural language scenarios " +
	"into finite state machine transitions. Respond with a JSON object of the form " +
	`{"transitions": [{"state": "...", "event": "...", "guard": "...", "action": "...", "next_state": "..."}]}. ` +
	"Omit the guard field when there is no condition. Only output valid JSON."

const suggestSystemPrompt = "You are an FSM expert that identifies missing transitions to make state " +
	"machines complete and robust. Respond with a JSON object of the form " +
	`{"suggestions": [{"state": "...", "event": "...", "guard": "...", "action": "...", "next_state": "..."}]}. ` +
	"Only output valid JSON."

// Client talks to a chat-completions API. Implements ports.ScenarioParser.
type Client struct {
	apiKey     string
	model      string
	baseURL    string
	httpClient *http.Client
}

type Option func(*Client)

// WithModel overrides the completion model.
func WithModel(model string) Option {
	return func(c *Client) {
		c.model = model
	}
}

// WithBaseURL points the client at a different OpenAI-compatible endpoint.
func WithBaseURL(url string) Option {
	return func(c *Client) {
		c.baseURL = strings.TrimSuffix(url, "/")
	}
}

// WithHTTPClient injects a custom HTTP client.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

// New creates a parser client.
func New(apiKey string, opts ...Option) *Client {
	c := &Client{
		apiKey:     apiKey,
		model:      defaultModel,
		baseURL:    defaultBaseURL,
		httpClient: &http.Client{Timeout: 60 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type responseFormat struct {
	Type string `json:"type"`
}

type chatRequest struct {
	Model          string         `json:"model"`
	Messages       []chatMessage  `json:"messages"`
	Temperature    float64        `json:"temperature"`
	ResponseFormat responseFormat `json:"response_format"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

// wireTransition is the JSON shape the model is prompted to produce.
type wireTransition struct {
	State     string `json:"state"`
	Event     string `json:"event"`
	Guard     string `json:"guard,omitempty"`
	Action    string `json:"action"`
	NextState string `json:"next_state"`
}

// ParseScenarios extracts transitions from scenario text. Results are
// tagged domain.SourceUser: the user authored the scenarios, the model
// only transcribed them.
func (c *Client) ParseScenarios(ctx context.Context, title string, scenarios []string) ([]domain.Transition, error) {
	var prompt strings.Builder
	fmt.Fprintf(&prompt, "Title: %s\n\nScenarios:\n", title)
	for i, s := range scenarios {
		fmt.Fprintf(&prompt, "%d. %s\n", i+1, s)
	}

	var payload struct {
		Transitions []wireTransition `json:"transitions"`
	}
	if err := c.complete(ctx, parseSystemPrompt, prompt.String(), 0.2, &payload); err != nil {
		return nil, fmt.Errorf("parse scenarios: %w", err)
	}
	return toDomain(payload.Transitions, domain.SourceUser), nil
}

// SuggestTransitions asks the model to fill completeness gaps. Results
// are tagged domain.SourceLLMInferred.
func (c *Client) SuggestTransitions(ctx context.Context, model domain.Model) ([]domain.Transition, error) {
	encoded, err := json.Marshal(model)
	if err != nil {
		return nil, fmt.Errorf("encode model: %w", err)
	}
	prompt := fmt.Sprintf("Suggest missing transitions for this FSM:\n%s", encoded)

	var payload struct {
		Suggestions []wireTransition `json:"suggestions"`
	}
	if err := c.complete(ctx, suggestSystemPrompt, prompt, 0.3, &payload); err != nil {
		return nil, fmt.Errorf("suggest transitions: %w", err)
	}
	return toDomain(payload.Suggestions, domain.SourceLLMInferred), nil
}

// complete performs one chat-completions round trip and decodes the JSON
// body of the first choice into out.
func (c *Client) complete(ctx context.Context, system, user string, temperature float64, out any) error {
	if c.apiKey == "" {
		return fmt.Errorf("api key not configured")
	}

	body, err := json.Marshal(chatRequest{
		Model: c.model,
		Messages: []chatMessage{
			{Role: "system", Content: system},
			{Role: "user", Content: user},
		},
		Temperature:    temperature,
		ResponseFormat: responseFormat{Type: "json_object"},
	})
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("completion request failed: status %d", resp.StatusCode)
	}

	var completion chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&completion); err != nil {
		return fmt.Errorf("decode completion: %w", err)
	}
	if len(completion.Choices) == 0 {
		return fmt.Errorf("completion returned no choices")
	}

	if err := json.Unmarshal([]byte(completion.Choices[0].Message.Content), out); err != nil {
		return fmt.Errorf("decode completion content: %w", err)
	}
	return nil
}

func toDomain(wire []wireTransition, source domain.Source) []domain.Transition {
	out := make([]domain.Transition, 0, len(wire))
	for _, t := range wire {
		out = append(out, domain.Transition{
			State:     t.State,
			Event:     t.Event,
			Guard:     t.Guard,
			Action:    t.Action,
			NextState: t.NextState,
			Source:    source,
		})
	}
	return out
}
