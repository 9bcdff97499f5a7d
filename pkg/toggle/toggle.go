// Package toggle implements add-if-absent / remove-if-present on relation records
// such as likes and subscriptions.
package toggle

import (
	"context"

	"github.com/pkg/errors"
)

type Outcome int

const (
	Added Outcome = iota + 1
	Removed
)

func (o Outcome) String() string {
	switch o {
	case Added:
		return "added"
	case Removed:
		return "removed"
	default:
		return "unknown"
	}
}

// ErrExists is returned by Store.Create when the storage layer already holds
// a record for the key, i.e. a concurrent toggle won the race.
var ErrExists = errors.New("relation already exists")

// Store is the persistence side of one relation kind, scoped by key K.
type Store[K any] interface {
	Find(ctx context.Context, key K) (id int64, found bool, err error)
	Create(ctx context.Context, key K) error
	Delete(ctx context.Context, id int64) error
}

// Locker serialises toggles sharing a lock key. Unlock errors are the
// locker's business, the caller only releases.
type Locker interface {
	Lock(ctx context.Context, key string) (unlock func(), err error)
}

type nopLocker struct{}

func (nopLocker) Lock(context.Context, string) (func(), error) { return func() {}, nil }

// NopLocker leaves races to the storage constraints.
func NopLocker() Locker { return nopLocker{} }

type Engine struct {
	locker Locker
}

func NewEngine(locker Locker) *Engine {
	if locker == nil {
		locker = NopLocker()
	}
	return &Engine{locker: locker}
}

// Run flips the presence of the relation identified by key.
func Run[K any](ctx context.Context, e *Engine, lockKey string, s Store[K], key K) (Outcome, error) {
	unlock, err := e.locker.Lock(ctx, lockKey)
	if err != nil {
		return 0, errors.Wrapf(err, "toggle: lock %s", lockKey)
	}
	defer unlock()

	id, found, err := s.Find(ctx, key)
	if err != nil {
		return 0, errors.WithMessage(err, "toggle: find relation")
	}
	if found {
		if err := s.Delete(ctx, id); err != nil {
			return 0, errors.WithMessage(err, "toggle: delete relation")
		}
		return Removed, nil
	}
	if err := s.Create(ctx, key); err != nil {
		if errors.Is(err, ErrExists) {
			return Added, nil
		}
		return 0, errors.WithMessage(err, "toggle: create relation")
	}
	return Added, nil
}
