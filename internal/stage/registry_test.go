package stage

import (
	"strings"
	"testing"
)

type fakeStage struct{ info Info }

func (f fakeStage) Info() Info                   { return f.info }
func (f fakeStage) Run(*Context) (Result, error) { return Result{Status: StatusNoOp}, nil }

func validFake(id string) Factory {
	return func() (Stage, error) {
		return fakeStage{info: Info{ID: id, Name: "Fake", Version: "1.0.0"}}, nil
	}
}

func TestRegistryResolvesRegisteredStage(t *testing.T) {
	reg := NewRegistry()
	if err := reg.Register("fake", validFake("fake")); err != nil {
		t.Fatalf("register: %v", err)
	}
	s, err := reg.Resolve("fake")
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if s.Info().ID != "fake" {
		t.Fatalf("info.ID = %q", s.Info().ID)
	}
}

func TestRegistryRejectsDuplicatesAndUnknown(t *testing.T) {
	reg := NewRegistry()
	if err := reg.Register("fake", validFake("fake")); err != nil {
		t.Fatalf("register: %v", err)
	}
	if err := reg.Register("fake", validFake("fake")); err == nil {
		t.Fatal("duplicate registration accepted")
	}
	if _, err := reg.Resolve("missing"); err == nil || !strings.Contains(err.Error(), "unknown id") {
		t.Fatalf("resolve missing = %v", err)
	}
}

func TestRegistryValidatesInfoOnResolve(t *testing.T) {
	reg := NewRegistry()
	reg.MustRegister("bad", func() (Stage, error) {
		return fakeStage{info: Info{ID: "bad"}}, nil
	})
	if _, err := reg.Resolve("bad"); err == nil {
		t.Fatal("stage with incomplete info resolved")
	}
}

func TestIDsAreSorted(t *testing.T) {
	reg := NewRegistry()
	reg.MustRegister("zeta", validFake("zeta"))
	reg.MustRegister("alpha", validFake("alpha"))
	ids := reg.IDs()
	if len(ids) != 2 || ids[0] != "alpha" || ids[1] != "zeta" {
		t.Fatalf("ids = %v", ids)
	}
}
