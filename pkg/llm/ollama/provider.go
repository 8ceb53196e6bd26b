package ollama

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"creative-eval-be/pkg/llm"
)

type OllamaProvider struct {
	BaseURL   string
	ModelName string
	Client    *http.Client
}

// Ensure OllamaProvider implements Provider
var _ llm.Provider = &OllamaProvider{}

func NewOllamaProvider(baseURL, modelName string) *OllamaProvider {
	return &OllamaProvider{
		BaseURL:   baseURL,
		ModelName: modelName,
		Client: &http.Client{
			// Generation is unbounded except by num_predict; no per-request
			// timeout here, streaming reads keep the connection alive.
			Timeout: 0,
		},
	}
}

// --- Request/Response structs (Internal to this package) ---

type ollamaChatRequest struct {
	Model    string          `json:"model"`
	Messages []ollamaMessage `json:"messages"`
	Stream   bool            `json:"stream"`
	Options  *ollamaOptions  `json:"options,omitempty"`
}

type ollamaGenerateRequest struct {
	Model   string         `json:"model"`
	Prompt  string         `json:"prompt"`
	Raw     bool           `json:"raw"`
	Stream  bool           `json:"stream"`
	Options *ollamaOptions `json:"options,omitempty"`
}

type ollamaMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type ollamaOptions struct {
	Temperature   float64 `json:"temperature"`
	TopP          float64 `json:"top_p,omitempty"`
	RepeatPenalty float64 `json:"repeat_penalty,omitempty"`
	NumPredict    int     `json:"num_predict,omitempty"`
}

type ollamaChatResponse struct {
	Model    string        `json:"model"`
	Message  ollamaMessage `json:"message"`
	Response string        `json:"response"` // set by /api/generate
	Done     bool          `json:"done"`
}

func buildOptions(opts []llm.Option) *llm.Options {
	options := &llm.Options{
		Temperature: 0.7, // Default
	}
	for _, opt := range opts {
		opt(options)
	}
	// Temperature 0 selects greedy decoding; any positive value samples
	// with a 1e-6 floor.
	if options.Temperature > 0 && options.Temperature < 1e-6 {
		options.Temperature = 1e-6
	}
	return options
}

func (o *OllamaProvider) toOllamaOptions(options *llm.Options) *ollamaOptions {
	out := &ollamaOptions{
		Temperature:   options.Temperature,
		TopP:          options.TopP,
		RepeatPenalty: options.RepetitionPenalty,
	}
	if options.MaxTokens > 0 {
		out.NumPredict = options.MaxTokens
	}
	return out
}

func (o *OllamaProvider) toOllamaMessages(history []llm.Message) []ollamaMessage {
	msgs := make([]ollamaMessage, len(history))
	for i, msg := range history {
		role := msg.Role
		if role == "model" {
			role = "assistant"
		}
		msgs[i] = ollamaMessage{Role: role, Content: msg.Content}
	}
	return msgs
}

func (o *OllamaProvider) modelFor(options *llm.Options) string {
	if options.Model != "" {
		return options.Model
	}
	return o.ModelName
}

// --- Interface Implementation ---

func (o *OllamaProvider) Chat(ctx context.Context, history []llm.Message, opts ...llm.Option) (string, error) {
	options := buildOptions(opts)

	reqPayload := ollamaChatRequest{
		Model:    o.modelFor(options),
		Messages: o.toOllamaMessages(history),
		Stream:   false,
		Options:  o.toOllamaOptions(options),
	}

	bodyBytes, err := o.post(ctx, "/api/chat", reqPayload)
	if err != nil {
		return "", err
	}

	var ollamaResp ollamaChatResponse
	if err := json.Unmarshal(bodyBytes, &ollamaResp); err != nil {
		return "", fmt.Errorf("unmarshal response: %w", err)
	}
	return ollamaResp.Message.Content, nil
}

// ChatStream streams assistant fragments for a chat history. The model's
// chat template is applied by the server.
func (o *OllamaProvider) ChatStream(ctx context.Context, history []llm.Message, out chan<- string, opts ...llm.Option) error {
	options := buildOptions(opts)

	reqPayload := ollamaChatRequest{
		Model:    o.modelFor(options),
		Messages: o.toOllamaMessages(history),
		Stream:   true,
		Options:  o.toOllamaOptions(options),
	}

	return o.stream(ctx, "/api/chat", reqPayload, out, func(chunk *ollamaChatResponse) string {
		return chunk.Message.Content
	})
}

// GenerateStream streams a raw-prompt completion. Raw mode bypasses any
// server-side prompt template.
func (o *OllamaProvider) GenerateStream(ctx context.Context, prompt string, out chan<- string, opts ...llm.Option) error {
	options := buildOptions(opts)

	reqPayload := ollamaGenerateRequest{
		Model:   o.modelFor(options),
		Prompt:  prompt,
		Raw:     true,
		Stream:  true,
		Options: o.toOllamaOptions(options),
	}

	return o.stream(ctx, "/api/generate", reqPayload, out, func(chunk *ollamaChatResponse) string {
		return chunk.Response
	})
}

// post sends a non-streaming request and returns the response body.
func (o *OllamaProvider) post(ctx context.Context, path string, payload any) ([]byte, error) {
	payloadBytes, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", o.BaseURL+path, bytes.NewBuffer(payloadBytes))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := o.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("ollama request failed: %w", err)
	}
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("ollama error: status %d, body: %s", resp.StatusCode, string(bodyBytes))
	}
	return bodyBytes, nil
}

// stream sends a streaming request and forwards each decoded fragment to
// out. Fragments arrive in production order; writing to out blocks until
// the consumer drains it.
func (o *OllamaProvider) stream(ctx context.Context, path string, payload any, out chan<- string, fragment func(*ollamaChatResponse) string) error {
	payloadBytes, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", o.BaseURL+path, bytes.NewBuffer(payloadBytes))
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := o.Client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: ollama request failed: %v", llm.ErrBackendUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		bodyBytes, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("ollama error: status %d, body: %s", resp.StatusCode, string(bodyBytes))
	}

	decoder := json.NewDecoder(resp.Body)
	for {
		var chunk ollamaChatResponse
		if err := decoder.Decode(&chunk); err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return fmt.Errorf("decode stream chunk: %w", err)
		}

		if text := fragment(&chunk); text != "" {
			select {
			case out <- text:
			case <-ctx.Done():
				return ctx.Err()
			}
		}
		if chunk.Done {
			return nil
		}
	}
}

// Ping verifies the endpoint is reachable, used at handle construction to
// fail fast before any generation starts.
func (o *OllamaProvider) Ping(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, "GET", o.BaseURL+"/api/tags", nil)
	if err != nil {
		return err
	}
	resp, err := o.Client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", llm.ErrBackendUnavailable, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: status %d", llm.ErrBackendUnavailable, resp.StatusCode)
	}
	return nil
}
