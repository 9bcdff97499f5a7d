package toggle

import (
	"context"
	"testing"

	"github.com/pkg/errors"
)

type pair struct{ actor, target int64 }

type memStore struct {
	next      int64
	rows      map[pair]int64
	createErr error
	findErr   error
}

func newMemStore() *memStore { return &memStore{rows: map[pair]int64{}} }

func (m *memStore) Find(_ context.Context, k pair) (int64, bool, error) {
	if m.findErr != nil {
		return 0, false, m.findErr
	}
	id, ok := m.rows[k]
	return id, ok, nil
}

func (m *memStore) Create(_ context.Context, k pair) error {
	if m.createErr != nil {
		return m.createErr
	}
	m.next++
	m.rows[k] = m.next
	return nil
}

func (m *memStore) Delete(_ context.Context, id int64) error {
	for k, v := range m.rows {
		if v == id {
			delete(m.rows, k)
		}
	}
	return nil
}

type countingLocker struct {
	locks, unlocks int
	err            error
}

func (l *countingLocker) Lock(context.Context, string) (func(), error) {
	if l.err != nil {
		return nil, l.err
	}
	l.locks++
	return func() { l.unlocks++ }, nil
}

func TestRunTwiceRestoresState(t *testing.T) {
	ctx := context.Background()
	s := newMemStore()
	e := NewEngine(nil)
	key := pair{1, 2}

	got, err := Run[pair](ctx, e, "k", s, key)
	if err != nil || got != Added {
		t.Fatalf("first toggle = %v, %v", got, err)
	}
	if _, ok := s.rows[key]; !ok {
		t.Fatal("relation missing after add")
	}
	got, err = Run[pair](ctx, e, "k", s, key)
	if err != nil || got != Removed {
		t.Fatalf("second toggle = %v, %v", got, err)
	}
	if len(s.rows) != 0 {
		t.Fatalf("relation still present: %v", s.rows)
	}
}

func TestRunKeysAreIndependent(t *testing.T) {
	ctx := context.Background()
	s := newMemStore()
	e := NewEngine(nil)
	if _, err := Run[pair](ctx, e, "a", s, pair{1, 2}); err != nil {
		t.Fatal(err)
	}
	got, err := Run[pair](ctx, e, "b", s, pair{1, 3})
	if err != nil || got != Added {
		t.Fatalf("toggle on other target = %v, %v", got, err)
	}
	if len(s.rows) != 2 {
		t.Fatalf("want 2 relations, got %d", len(s.rows))
	}
}

func TestRunDuplicateCreateConverges(t *testing.T) {
	s := newMemStore()
	s.createErr = errors.WithMessage(ErrExists, "duplicate key")
	got, err := Run[pair](context.Background(), NewEngine(nil), "k", s, pair{1, 2})
	if err != nil || got != Added {
		t.Fatalf("toggle = %v, %v; want Added", got, err)
	}
}

func TestRunPropagatesStoreErrors(t *testing.T) {
	s := newMemStore()
	s.findErr = errors.New("db down")
	if _, err := Run[pair](context.Background(), NewEngine(nil), "k", s, pair{1, 2}); err == nil {
		t.Fatal("expected error from Find")
	}
	s = newMemStore()
	s.createErr = errors.New("db down")
	if _, err := Run[pair](context.Background(), NewEngine(nil), "k", s, pair{1, 2}); err == nil {
		t.Fatal("expected error from Create")
	}
}

func TestRunUsesLocker(t *testing.T) {
	l := &countingLocker{}
	e := NewEngine(l)
	s := newMemStore()
	for i := 0; i < 3; i++ {
		if _, err := Run[pair](context.Background(), e, "k", s, pair{1, 2}); err != nil {
			t.Fatal(err)
		}
	}
	if l.locks != 3 || l.unlocks != 3 {
		t.Fatalf("locks=%d unlocks=%d", l.locks, l.unlocks)
	}

	l.err = errors.New("redis unavailable")
	if _, err := Run[pair](context.Background(), e, "k", s, pair{1, 2}); err == nil {
		t.Fatal("lock failure must abort the toggle")
	}
}

func TestOutcomeString(t *testing.T) {
	if Added.String() != "added" || Removed.String() != "removed" || Outcome(0).String() != "unknown" {
		t.Fatal("unexpected outcome names")
	}
}
