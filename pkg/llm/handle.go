package llm

import (
	"errors"
	"fmt"
)

// ErrBackendUnavailable marks a backend that cannot be constructed with the
// current configuration (missing endpoint, missing base model id). It is
// surfaced to the user before any generation starts.
var ErrBackendUnavailable = errors.New("backend unavailable")

// Backend identifies a model-loading strategy for chat generation.
type Backend string

const (
	// BackendAdapterGPU serves the fine-tuned adapter model from the
	// GPU-resident inference endpoint.
	BackendAdapterGPU Backend = "adapter_gpu"
	// BackendAdapterCPUBase composes the adapter over an explicitly named
	// full-precision base model on the CPU endpoint.
	BackendAdapterCPUBase Backend = "adapter_cpu_base"
	// BackendOpenDemo is a small open baseline model for demoing the UI.
	BackendOpenDemo Backend = "open_demo"
	// BackendDummyEcho needs no model at all and echoes the user input.
	BackendDummyEcho Backend = "dummy_echo"
)

func ParseBackend(s string) (Backend, error) {
	switch Backend(s) {
	case BackendAdapterGPU, BackendAdapterCPUBase, BackendOpenDemo, BackendDummyEcho:
		return Backend(s), nil
	default:
		return "", fmt.Errorf("unknown backend: %q", s)
	}
}

// Selection is the cache key for a loaded backend. BaseModel is only
// meaningful for BackendAdapterCPUBase but always participates in key
// equality.
type Selection struct {
	Backend   Backend
	BaseModel string
}

func (s Selection) Key() string {
	return string(s.Backend) + "|" + s.BaseModel
}

// Handle is the opaque result of resolving a backend selection: a provider
// plus the capabilities fixed at construction time. A nil Provider marks
// the dummy echo backend.
type Handle struct {
	Selection Selection
	Provider  Provider
	Model     string
	// ChatTemplate reports whether the provider applies the model's chat
	// template itself. Without it the caller must render a role-tagged
	// prompt and drive raw generation.
	ChatTemplate bool
}

func (h *Handle) IsDummy() bool {
	return h.Provider == nil
}
