package teststubs

import (
	"context"
	"errors"

	"github.com/preston-bernstein/console-rpg/internal/domain/players"
)

// ErrStub is a generic failure used by stubs.
var ErrStub = errors.New("stub failure")

// StubBackend is a test double for store.Backend that records every save.
type StubBackend struct {
	NameVal   string
	Items     []players.Player
	LoadErr   error
	SaveErrs  []error // consumed one per Save call; nil entries succeed
	SaveErr   error   // used once SaveErrs is exhausted
	SaveCalls int
	Saved     [][]players.Player
	Closed    int
}

func (s *StubBackend) Name() string {
	if s.NameVal == "" {
		return "stub"
	}
	return s.NameVal
}

func (s *StubBackend) Load(ctx context.Context) ([]players.Player, error) {
	_ = ctx
	if s.LoadErr != nil {
		return nil, s.LoadErr
	}
	return s.Items, nil
}

func (s *StubBackend) Save(ctx context.Context, items []players.Player) error {
	_ = ctx
	s.SaveCalls++
	var err error
	if len(s.SaveErrs) > 0 {
		err, s.SaveErrs = s.SaveErrs[0], s.SaveErrs[1:]
	} else {
		err = s.SaveErr
	}
	if err != nil {
		return err
	}
	snapshot := make([]players.Player, 0, len(items))
	for _, p := range items {
		snapshot = append(snapshot, p.Clone())
	}
	s.Saved = append(s.Saved, snapshot)
	s.Items = snapshot
	return nil
}

func (s *StubBackend) Close() error {
	s.Closed++
	return nil
}

// LastSaved returns the most recent successful snapshot.
func (s *StubBackend) LastSaved() []players.Player {
	if len(s.Saved) == 0 {
		return nil
	}
	return s.Saved[len(s.Saved)-1]
}

// StubPersister counts Persist calls.
type StubPersister struct {
	Calls int
	Err   error
}

func (p *StubPersister) Persist(ctx context.Context) error {
	_ = ctx
	p.Calls++
	return p.Err
}
