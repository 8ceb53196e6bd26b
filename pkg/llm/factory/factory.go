package factory

import (
	"context"
	"fmt"

	"creative-eval-be/pkg/llm"
	"creative-eval-be/pkg/llm/ollama"
)

// Config carries the endpoints and model names each backend needs.
type Config struct {
	// BaseURL is the default (CPU) inference endpoint.
	BaseURL string
	// GPUBaseURL is the GPU-resident endpoint; empty means no GPU host is
	// available and the adapter_gpu backend cannot be selected.
	GPUBaseURL string
	// AdapterModel is the fine-tuned adapter model name.
	AdapterModel string
	// OpenDemoModel is the small open baseline model.
	OpenDemoModel string
}

// NewBuilder returns a llm.BuildFunc that constructs handles for every
// supported backend selection. The capability flags are fixed here, once,
// at construction time.
func NewBuilder(cfg Config) llm.BuildFunc {
	return func(sel llm.Selection) (*llm.Handle, error) {
		switch sel.Backend {
		case llm.BackendAdapterGPU:
			if cfg.GPUBaseURL == "" {
				return nil, fmt.Errorf("%w: no GPU inference endpoint configured for adapter_gpu", llm.ErrBackendUnavailable)
			}
			provider, err := connect(cfg.GPUBaseURL, cfg.AdapterModel)
			if err != nil {
				return nil, err
			}
			return &llm.Handle{
				Selection:    sel,
				Provider:     provider,
				Model:        cfg.AdapterModel,
				ChatTemplate: true, // adapter ships its own chat template
			}, nil

		case llm.BackendAdapterCPUBase:
			if sel.BaseModel == "" {
				return nil, fmt.Errorf("%w: base model id is required for adapter_cpu_base", llm.ErrBackendUnavailable)
			}
			provider, err := connect(cfg.BaseURL, sel.BaseModel)
			if err != nil {
				return nil, err
			}
			return &llm.Handle{
				Selection:    sel,
				Provider:     provider,
				Model:        sel.BaseModel,
				ChatTemplate: true,
			}, nil

		case llm.BackendOpenDemo:
			provider, err := connect(cfg.BaseURL, cfg.OpenDemoModel)
			if err != nil {
				return nil, err
			}
			// Raw completion model without a chat template; callers render
			// the role-tagged prompt themselves.
			return &llm.Handle{
				Selection:    sel,
				Provider:     provider,
				Model:        cfg.OpenDemoModel,
				ChatTemplate: false,
			}, nil

		case llm.BackendDummyEcho:
			return &llm.Handle{Selection: sel}, nil

		default:
			return nil, fmt.Errorf("unsupported backend: %s", sel.Backend)
		}
	}
}

// connect builds a provider and verifies the endpoint is reachable, so an
// unusable backend fails at selection time instead of mid-turn. The handle
// cache does not keep failures, so the same selection retries on the next
// turn.
func connect(baseURL, model string) (*ollama.OllamaProvider, error) {
	provider := ollama.NewOllamaProvider(baseURL, model)
	if err := provider.Ping(context.Background()); err != nil {
		return nil, err
	}
	return provider, nil
}
