package pdfrender

import (
	"errors"
	"log/slog"
	"sync"
	"testing"

	"github.com/gogpu/pdfrender/font"
)

// resetRegistry clears all registered backends for test isolation.
func resetRegistry() {
	registryMu.Lock()
	defer registryMu.Unlock()
	backends = make(map[string]BackendFactory)
}

func TestRegisterAndNewBackend(t *testing.T) {
	resetRegistry()
	defer resetRegistry()

	var got Config
	Register("test", func(cfg Config) Backend {
		got = cfg
		return &mockBackend{}
	})

	b, err := NewBackend("test")
	if err != nil {
		t.Fatalf("NewBackend failed: %v", err)
	}
	if _, ok := b.(*mockBackend); !ok {
		t.Fatalf("got %T, want *mockBackend", b)
	}
	if got.FontCache == nil {
		t.Error("factory got a nil font cache")
	}
	if got.Logger == nil {
		t.Error("factory got a nil logger")
	}
}

func TestNewBackendSharesFontCache(t *testing.T) {
	resetRegistry()
	defer resetRegistry()

	var caches []*font.Cache
	Register("test", func(cfg Config) Backend {
		caches = append(caches, cfg.FontCache)
		return &mockBackend{}
	})

	shared := font.NewCache()
	MustBackend("test", WithFontCache(shared))
	MustBackend("test", WithFontCache(shared))
	MustBackend("test")

	if caches[0] != shared || caches[1] != shared {
		t.Error("WithFontCache was not passed to the factory")
	}
	if caches[2] == shared {
		t.Error("a backend without WithFontCache got the shared cache")
	}
}

func TestNewBackendUnknown(t *testing.T) {
	resetRegistry()
	defer resetRegistry()

	_, err := NewBackend("unknown")
	if !errors.Is(err, ErrUnknownBackend) {
		t.Errorf("got %v, want ErrUnknownBackend", err)
	}
}

func TestMustBackendPanics(t *testing.T) {
	resetRegistry()
	defer resetRegistry()

	defer func() {
		if r := recover(); r == nil {
			t.Error("expected panic for unknown backend")
		}
	}()
	MustBackend("missing")
}

func TestRegisterNilFactory(t *testing.T) {
	resetRegistry()
	defer resetRegistry()

	defer func() {
		if r := recover(); r == nil {
			t.Error("expected panic for nil factory")
		}
	}()
	Register("nil", nil)
}

func TestRegisterDuplicate(t *testing.T) {
	resetRegistry()
	defer resetRegistry()

	factory := func(Config) Backend { return &mockBackend{} }
	Register("dup", factory)

	defer func() {
		if r := recover(); r == nil {
			t.Error("expected panic for duplicate registration")
		}
	}()
	Register("dup", factory)
}

func TestRegistryListing(t *testing.T) {
	resetRegistry()
	defer resetRegistry()

	factory := func(Config) Backend { return &mockBackend{} }
	for _, name := range []string{"zeta", "alpha", "mid"} {
		Register(name, factory)
	}

	if got := Count(); got != 3 {
		t.Errorf("Count() = %d, want 3", got)
	}
	names := Backends()
	want := []string{"alpha", "mid", "zeta"}
	if len(names) != len(want) {
		t.Fatalf("Backends() = %v, want %v", names, want)
	}
	for i := range want {
		if names[i] != want[i] {
			t.Errorf("Backends()[%d] = %q, want %q", i, names[i], want[i])
		}
	}

	Unregister("mid")
	Unregister("never-registered")
	if IsRegistered("mid") {
		t.Error("mid still registered after Unregister")
	}
	if !IsRegistered("alpha") {
		t.Error("alpha should be registered")
	}
}

func TestRegistryConcurrentAccess(t *testing.T) {
	resetRegistry()
	defer resetRegistry()

	Register("shared", func(Config) Backend { return &mockBackend{} })

	var wg sync.WaitGroup
	for range 50 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := NewBackend("shared"); err != nil {
				t.Errorf("NewBackend: %v", err)
			}
			_ = Backends()
			_ = IsRegistered("shared")
		}()
	}
	wg.Wait()
}

func TestNewConfigLogger(t *testing.T) {
	l := slog.Default()
	cfg := NewConfig(WithLogger(l))
	if cfg.Logger != l {
		t.Error("WithLogger was ignored")
	}
	if cfg.FontCache == nil {
		t.Error("NewConfig left FontCache nil")
	}
}
