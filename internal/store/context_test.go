package store

import (
	"context"
	"errors"
	"testing"

	"github.com/preston-bernstein/console-rpg/internal/domain/players"
	"github.com/preston-bernstein/console-rpg/internal/metrics"
	"github.com/preston-bernstein/console-rpg/internal/teststubs"
)

func TestGameContextInsertAndFind(t *testing.T) {
	c := NewMemoryContext()

	if err := c.Insert(players.Player{ID: "1", Name: "Ada"}); err != nil {
		t.Fatalf("unexpected insert error: %v", err)
	}
	if err := c.Insert(players.Player{ID: "2", Name: "Bo"}); err != nil {
		t.Fatalf("unexpected insert error: %v", err)
	}

	if got := len(c.List()); got != 2 {
		t.Fatalf("expected 2 players, got %d", got)
	}
	p, ok := c.Find("1")
	if !ok {
		t.Fatalf("expected to find player with id 1")
	}
	if p.Name != "Ada" {
		t.Fatalf("unexpected name %s", p.Name)
	}
}

func TestGameContextFindNotFound(t *testing.T) {
	c := NewMemoryContext()
	if _, ok := c.Find("missing"); ok {
		t.Fatalf("expected missing id to return false")
	}
}

func TestGameContextRejectsDuplicateAndMissingID(t *testing.T) {
	c := NewMemoryContext()
	_ = c.Insert(players.Player{ID: "1"})

	if err := c.Insert(players.Player{ID: "1"}); !errors.Is(err, ErrDuplicate) {
		t.Fatalf("expected ErrDuplicate, got %v", err)
	}
	if err := c.Insert(players.Player{}); !errors.Is(err, players.ErrInvalidPlayer) {
		t.Fatalf("expected ErrInvalidPlayer for empty id, got %v", err)
	}
	if err := c.Replace(players.Player{ID: "nope"}); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound on replace, got %v", err)
	}
}

func TestGameContextListPreservesInsertionOrder(t *testing.T) {
	c := NewMemoryContext()
	for _, id := range []string{"z", "a", "m"} {
		_ = c.Insert(players.Player{ID: id})
	}
	list := c.List()
	if list[0].ID != "z" || list[1].ID != "a" || list[2].ID != "m" {
		t.Fatalf("expected insertion order, got %+v", list)
	}
}

func TestGameContextListReturnsCopy(t *testing.T) {
	c := NewMemoryContext()
	_ = c.Insert(players.Player{ID: "copy", Name: "original", Equipment: []string{"Staff"}})

	list := c.List()
	list[0].Name = "mutated"
	list[0].Equipment[0] = "Wand"

	p, _ := c.Find("copy")
	if p.Name != "original" || p.Equipment[0] != "Staff" {
		t.Fatalf("expected store to remain unchanged, got %+v", p)
	}
}

func TestSaveChangesIsNoOpWhenClean(t *testing.T) {
	backend := &teststubs.StubBackend{}
	c, err := Open(context.Background(), backend, nil, nil)
	if err != nil {
		t.Fatalf("unexpected open error: %v", err)
	}

	if err := c.SaveChanges(context.Background()); err != nil {
		t.Fatalf("unexpected save error: %v", err)
	}
	if backend.SaveCalls != 0 {
		t.Fatalf("expected no backend save when clean, got %d", backend.SaveCalls)
	}
}

func TestSaveChangesFlushesAndClearsDirty(t *testing.T) {
	backend := &teststubs.StubBackend{NameVal: "json"}
	rec := metrics.NewRecorder()
	c, _ := Open(context.Background(), backend, nil, rec)

	_ = c.Insert(players.Player{ID: "1", Name: "Ada", Level: 1})
	if !c.HasChanges() {
		t.Fatalf("expected pending changes after insert")
	}
	if err := c.SaveChanges(context.Background()); err != nil {
		t.Fatalf("unexpected save error: %v", err)
	}
	if c.HasChanges() {
		t.Fatalf("expected clean context after save")
	}
	if got := backend.LastSaved(); len(got) != 1 || got[0].Name != "Ada" {
		t.Fatalf("unexpected saved snapshot %+v", got)
	}
	if rec.Save("json").Calls != 1 {
		t.Fatalf("expected save to be recorded")
	}

	_ = c.SaveChanges(context.Background())
	if backend.SaveCalls != 1 {
		t.Fatalf("expected second save to be a no-op, got %d calls", backend.SaveCalls)
	}
}

func TestSaveChangesKeepsDirtyOnFailure(t *testing.T) {
	backend := &teststubs.StubBackend{SaveErr: teststubs.ErrStub}
	c, _ := Open(context.Background(), backend, nil, nil)
	_ = c.Insert(players.Player{ID: "1"})

	if err := c.SaveChanges(context.Background()); !errors.Is(err, teststubs.ErrStub) {
		t.Fatalf("expected wrapped backend error, got %v", err)
	}
	if !c.HasChanges() {
		t.Fatalf("expected changes to remain pending after failed save")
	}
}

func TestOpenLoadsExistingPlayers(t *testing.T) {
	backend := &teststubs.StubBackend{Items: []players.Player{{ID: "b"}, {ID: "a"}}}
	c, err := Open(context.Background(), backend, nil, nil)
	if err != nil {
		t.Fatalf("unexpected open error: %v", err)
	}
	list := c.List()
	if len(list) != 2 || list[0].ID != "b" {
		t.Fatalf("expected loaded order preserved, got %+v", list)
	}
	if c.HasChanges() {
		t.Fatalf("expected freshly loaded context to be clean")
	}
}

func TestOpenRejectsCorruptData(t *testing.T) {
	cases := [][]players.Player{
		{{ID: ""}},
		{{ID: "a"}, {ID: "a"}},
	}
	for _, items := range cases {
		_, err := Open(context.Background(), &teststubs.StubBackend{Items: items}, nil, nil)
		if !errors.Is(err, ErrCorrupt) {
			t.Fatalf("expected ErrCorrupt for %+v, got %v", items, err)
		}
	}
}

func TestOpenPropagatesLoadError(t *testing.T) {
	_, err := Open(context.Background(), &teststubs.StubBackend{LoadErr: teststubs.ErrStub}, nil, nil)
	if !errors.Is(err, teststubs.ErrStub) {
		t.Fatalf("expected load error, got %v", err)
	}
}

func TestMemoryContextSaveAndClose(t *testing.T) {
	c := NewMemoryContext()
	_ = c.Insert(players.Player{ID: "1"})
	if err := c.SaveChanges(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if c.HasChanges() {
		t.Fatalf("expected memory save to clear pending changes")
	}
	if c.BackendName() != memoryBackendName {
		t.Fatalf("expected memory backend name, got %s", c.BackendName())
	}
	if err := c.Close(); err != nil {
		t.Fatalf("unexpected close error: %v", err)
	}
}
