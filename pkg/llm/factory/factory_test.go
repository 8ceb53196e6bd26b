package factory

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"creative-eval-be/pkg/llm"
)

// newEndpoint serves the reachability probe the way a live inference host
// would.
func newEndpoint(t *testing.T) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/tags" {
			http.NotFound(w, r)
			return
		}
		w.WriteHeader(http.StatusOK)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func testConfig(t *testing.T) Config {
	return Config{
		BaseURL:       newEndpoint(t).URL,
		GPUBaseURL:    newEndpoint(t).URL,
		AdapterModel:  "finetuned-adapter",
		OpenDemoModel: "qwen2.5:0.5b",
	}
}

func TestBuilderAdapterGPU(t *testing.T) {
	build := NewBuilder(testConfig(t))

	h, err := build(llm.Selection{Backend: llm.BackendAdapterGPU})
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if h.Provider == nil || h.Model != "finetuned-adapter" || !h.ChatTemplate {
		t.Errorf("unexpected handle: %+v", h)
	}
}

func TestBuilderAdapterGPUWithoutEndpoint(t *testing.T) {
	cfg := testConfig(t)
	cfg.GPUBaseURL = ""
	build := NewBuilder(cfg)

	_, err := build(llm.Selection{Backend: llm.BackendAdapterGPU})
	if !errors.Is(err, llm.ErrBackendUnavailable) {
		t.Fatalf("expected ErrBackendUnavailable, got %v", err)
	}
}

func TestBuilderAdapterCPUBaseRequiresBaseModel(t *testing.T) {
	build := NewBuilder(testConfig(t))

	_, err := build(llm.Selection{Backend: llm.BackendAdapterCPUBase})
	if !errors.Is(err, llm.ErrBackendUnavailable) {
		t.Fatalf("expected ErrBackendUnavailable, got %v", err)
	}

	h, err := build(llm.Selection{Backend: llm.BackendAdapterCPUBase, BaseModel: "qwen2.5:1.5b"})
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if h.Model != "qwen2.5:1.5b" || !h.ChatTemplate {
		t.Errorf("unexpected handle: %+v", h)
	}
}

func TestBuilderOpenDemoHasNoChatTemplate(t *testing.T) {
	build := NewBuilder(testConfig(t))

	h, err := build(llm.Selection{Backend: llm.BackendOpenDemo})
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if h.ChatTemplate {
		t.Error("open demo model must not claim a chat template")
	}
	if h.Model != "qwen2.5:0.5b" {
		t.Errorf("Model = %q", h.Model)
	}
}

func TestBuilderUnreachableEndpoint(t *testing.T) {
	srv := newEndpoint(t)
	cfg := Config{
		BaseURL:       srv.URL,
		OpenDemoModel: "qwen2.5:0.5b",
	}
	srv.Close() // endpoint is gone before the first selection

	build := NewBuilder(cfg)
	_, err := build(llm.Selection{Backend: llm.BackendOpenDemo})
	if !errors.Is(err, llm.ErrBackendUnavailable) {
		t.Fatalf("expected ErrBackendUnavailable for unreachable endpoint, got %v", err)
	}
}

func TestBuilderDummyEcho(t *testing.T) {
	// No endpoint involved; the dummy backend never dials out.
	build := NewBuilder(Config{})

	h, err := build(llm.Selection{Backend: llm.BackendDummyEcho})
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if !h.IsDummy() {
		t.Error("dummy handle must have no provider")
	}
}

func TestBuilderUnknownBackend(t *testing.T) {
	build := NewBuilder(testConfig(t))
	if _, err := build(llm.Selection{Backend: "quantum"}); err == nil {
		t.Fatal("expected error for unknown backend")
	}
}
