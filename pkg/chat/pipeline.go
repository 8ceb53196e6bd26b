package chat

import (
	"context"

	"creative-eval-be/pkg/llm"
)

// Fragment channel capacity for model backends. The producer blocks once
// this many fragments are waiting on a slow consumer.
const defaultStreamBuffer = 64

// GenParams are the user-tunable generation parameters, passed through to
// the backend unchanged. Bounds are enforced at the input surface, not
// here.
type GenParams struct {
	Temperature       float64
	TopP              float64
	RepetitionPenalty float64
	MaxNewTokens      int
}

// Pipeline turns a conversation into a live fragment stream. Per turn it
// resolves the cached backend handle, formats the prompt when the backend
// lacks a chat template, and starts the producer.
type Pipeline struct {
	handles *llm.HandleCache
	buffer  int
}

func NewPipeline(handles *llm.HandleCache) *Pipeline {
	return &Pipeline{
		handles: handles,
		buffer:  defaultStreamBuffer,
	}
}

// StartTurn begins one generation turn and returns its stream. Backend
// resolution failures are returned before any generation starts. Exactly
// one stream is active per turn; the caller must drain it and Join before
// starting the next.
func (p *Pipeline) StartTurn(ctx context.Context, sel llm.Selection, history []llm.Message, params GenParams) (*Stream, error) {
	handle, err := p.handles.GetOrCreate(sel)
	if err != nil {
		return nil, err
	}

	if handle.IsDummy() {
		return EchoStream(LastUserContent(history)), nil
	}

	opts := []llm.Option{
		llm.WithModel(handle.Model),
		llm.WithTemperature(params.Temperature),
		llm.WithTopP(params.TopP),
		llm.WithRepetitionPenalty(params.RepetitionPenalty),
		llm.WithMaxTokens(params.MaxNewTokens),
	}

	if handle.ChatTemplate {
		// The provider applies the model's own template; pass the ordered
		// history through untouched.
		hist := append([]llm.Message(nil), history...)
		return start(p.buffer, func(out chan<- string) error {
			return handle.Provider.ChatStream(ctx, hist, out, opts...)
		}), nil
	}

	prompt := FormatPrompt(history)
	return start(p.buffer, func(out chan<- string) error {
		return handle.Provider.GenerateStream(ctx, prompt, out, opts...)
	}), nil
}
