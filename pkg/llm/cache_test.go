package llm

import (
	"errors"
	"testing"
)

func TestHandleCacheBuildsOnce(t *testing.T) {
	builds := 0
	cache := NewHandleCache(func(sel Selection) (*Handle, error) {
		builds++
		return &Handle{Selection: sel}, nil
	})

	sel := Selection{Backend: BackendOpenDemo}
	first, err := cache.GetOrCreate(sel)
	if err != nil {
		t.Fatalf("GetOrCreate: %v", err)
	}
	second, err := cache.GetOrCreate(sel)
	if err != nil {
		t.Fatalf("GetOrCreate: %v", err)
	}

	if builds != 1 {
		t.Errorf("build called %d times, want 1", builds)
	}
	if first != second {
		t.Error("expected the same cached handle instance")
	}
}

func TestHandleCacheKeyIncludesBaseModel(t *testing.T) {
	builds := 0
	cache := NewHandleCache(func(sel Selection) (*Handle, error) {
		builds++
		return &Handle{Selection: sel}, nil
	})

	a, _ := cache.GetOrCreate(Selection{Backend: BackendAdapterCPUBase, BaseModel: "model-a"})
	b, _ := cache.GetOrCreate(Selection{Backend: BackendAdapterCPUBase, BaseModel: "model-b"})

	if builds != 2 {
		t.Errorf("build called %d times, want 2 for distinct base models", builds)
	}
	if a == b {
		t.Error("distinct selections must not share a handle")
	}
}

func TestHandleCacheFailureNotCached(t *testing.T) {
	boom := errors.New("load failed")
	fail := true
	cache := NewHandleCache(func(sel Selection) (*Handle, error) {
		if fail && sel.Backend == BackendAdapterGPU {
			return nil, boom
		}
		return &Handle{Selection: sel}, nil
	})

	if _, err := cache.GetOrCreate(Selection{Backend: BackendAdapterGPU}); !errors.Is(err, boom) {
		t.Fatalf("expected build error, got %v", err)
	}

	// A different selection is unaffected by the failure.
	if _, err := cache.GetOrCreate(Selection{Backend: BackendOpenDemo}); err != nil {
		t.Fatalf("other selection poisoned: %v", err)
	}

	// The failed selection retries construction next time.
	fail = false
	if _, err := cache.GetOrCreate(Selection{Backend: BackendAdapterGPU}); err != nil {
		t.Fatalf("failed selection did not retry: %v", err)
	}
}

func TestParseBackend(t *testing.T) {
	tests := []struct {
		input   string
		want    Backend
		wantErr bool
	}{
		{"adapter_gpu", BackendAdapterGPU, false},
		{"adapter_cpu_base", BackendAdapterCPUBase, false},
		{"open_demo", BackendOpenDemo, false},
		{"dummy_echo", BackendDummyEcho, false},
		{"", "", true},
		{"gpu", "", true},
	}

	for _, tt := range tests {
		got, err := ParseBackend(tt.input)
		if tt.wantErr {
			if err == nil {
				t.Errorf("ParseBackend(%q): expected error", tt.input)
			}
			continue
		}
		if err != nil || got != tt.want {
			t.Errorf("ParseBackend(%q) = %v, %v; want %v", tt.input, got, err, tt.want)
		}
	}
}

func TestSelectionKey(t *testing.T) {
	a := Selection{Backend: BackendAdapterCPUBase, BaseModel: "m1"}
	b := Selection{Backend: BackendAdapterCPUBase, BaseModel: "m2"}
	if a.Key() == b.Key() {
		t.Error("keys must differ when base models differ")
	}
}
