package teststubs

import (
	"context"
	"errors"
	"testing"

	"github.com/preston-bernstein/console-rpg/internal/domain/players"
)

func TestStubBackendConsumesSaveErrors(t *testing.T) {
	b := &StubBackend{SaveErrs: []error{ErrStub, nil}}
	items := []players.Player{{ID: "p1", Name: "Ada"}}

	if err := b.Save(context.Background(), items); !errors.Is(err, ErrStub) {
		t.Fatalf("expected first save to fail, got %v", err)
	}
	if err := b.Save(context.Background(), items); err != nil {
		t.Fatalf("expected second save to succeed, got %v", err)
	}
	if b.SaveCalls != 2 || len(b.Saved) != 1 {
		t.Fatalf("expected 2 calls and 1 snapshot, got %d/%d", b.SaveCalls, len(b.Saved))
	}

	items[0].Name = "mutated"
	if b.LastSaved()[0].Name != "Ada" {
		t.Fatalf("expected snapshot to be a copy")
	}
}

func TestStubBackendLoad(t *testing.T) {
	b := &StubBackend{Items: []players.Player{{ID: "p1"}}}
	got, err := b.Load(context.Background())
	if err != nil || len(got) != 1 {
		t.Fatalf("expected items, got %v %v", got, err)
	}
	b.LoadErr = ErrStub
	if _, err := b.Load(context.Background()); !errors.Is(err, ErrStub) {
		t.Fatalf("expected load error passthrough, got %v", err)
	}
	if b.Name() != "stub" {
		t.Fatalf("expected default name, got %s", b.Name())
	}
}

func TestStubPersisterCounts(t *testing.T) {
	p := &StubPersister{}
	_ = p.Persist(context.Background())
	_ = p.Persist(context.Background())
	if p.Calls != 2 {
		t.Fatalf("expected 2 calls, got %d", p.Calls)
	}
}
