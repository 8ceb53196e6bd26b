package llm

import (
	"context"
)

// Message represents a chat message in a provider-agnostic format
type Message struct {
	Role    string `json:"role"` // "user", "assistant", "system"
	Content string `json:"content"`
}

// Option allows for optional parameters like Temperature, MaxTokens, etc.
type Option func(*Options)

type Options struct {
	Temperature       float64
	TopP              float64
	RepetitionPenalty float64
	MaxTokens         int
	Model             string // Override default model
}

func WithTemperature(temp float64) Option {
	return func(o *Options) {
		o.Temperature = temp
	}
}

func WithTopP(topP float64) Option {
	return func(o *Options) {
		o.TopP = topP
	}
}

func WithRepetitionPenalty(penalty float64) Option {
	return func(o *Options) {
		o.RepetitionPenalty = penalty
	}
}

func WithMaxTokens(max int) Option {
	return func(o *Options) {
		o.MaxTokens = max
	}
}

func WithModel(model string) Option {
	return func(o *Options) {
		o.Model = model
	}
}

// Provider defines the contract for any LLM backend.
//
// The streaming methods write decoded text fragments to out in production
// order and return once generation has finished or failed. The caller owns
// out: providers must not close it, and a slow consumer applies
// backpressure through it.
type Provider interface {
	// Chat sends a chat history to the model and returns the full response
	Chat(ctx context.Context, history []Message, options ...Option) (string, error)

	// ChatStream streams an assistant turn for a chat history. The model's
	// own chat template is applied server-side.
	ChatStream(ctx context.Context, history []Message, out chan<- string, options ...Option) error

	// GenerateStream streams a completion for a raw prompt, bypassing any
	// chat template. Used for base models that ship none.
	GenerateStream(ctx context.Context, prompt string, out chan<- string, options ...Option) error
}
