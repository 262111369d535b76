// Package store holds the single application state tree. Every change goes
// through Dispatch, which reduces, persists and recomputes derived values in
// call order.
package store

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/sandeepkv93/studyboard/internal/backup"
	"github.com/sandeepkv93/studyboard/internal/logger"
	"github.com/sandeepkv93/studyboard/internal/model"
	"github.com/sandeepkv93/studyboard/internal/storage"
)

// StorageKey is the key-value entry holding the serialized state.
const StorageKey = "student-app-store"

// CorruptSuffix names the entry an unreadable state is copied to at startup.
const CorruptSuffix = ".corrupt"

var ErrPersist = errors.New("store: persist state")

// StorageReadError means the persisted state could not be restored. Startup
// continues with an empty state.
type StorageReadError struct {
	Key string
	Err error
}

func (e *StorageReadError) Error() string {
	return fmt.Sprintf("store: read %s: %v", e.Key, e.Err)
}

func (e *StorageReadError) Unwrap() error { return e.Err }

type Store struct {
	mu       sync.Mutex
	kv       storage.KV
	key      string
	log      *logger.Logger
	state    model.AppState
	level    int
	progress float64
	loadErr  error
}

type Option func(*Store)

func WithLogger(l *logger.Logger) Option {
	return func(s *Store) {
		if l != nil {
			s.log = l
		}
	}
}

// WithKey overrides StorageKey, mainly for tests sharing one backend.
func WithKey(key string) Option {
	return func(s *Store) {
		if key != "" {
			s.key = key
		}
	}
}

// Open restores the persisted state from kv. A missing entry yields the empty
// state. An unreadable entry is logged, copied aside under key+CorruptSuffix
// and left in place until the first successful dispatch overwrites it.
func Open(ctx context.Context, kv storage.KV, opts ...Option) (*Store, error) {
	if kv == nil {
		return nil, errors.New("store: nil key-value backend")
	}
	s := &Store{
		kv:    kv,
		key:   StorageKey,
		log:   logger.Nop(),
		state: model.EmptyState(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.log = s.log.WithComponent("store")
	s.restore(ctx)
	s.recompute()
	return s, nil
}

func (s *Store) restore(ctx context.Context) {
	raw, err := s.kv.Get(ctx, s.key)
	if errors.Is(err, storage.ErrNotFound) {
		s.log.Debugw("no persisted state", "key", s.key)
		return
	}
	if err != nil {
		s.loadErr = &StorageReadError{Key: s.key, Err: err}
		s.log.Errorw("failed to load store", "key", s.key, "error", err)
		return
	}
	patch, err := backup.Decode(raw)
	if err != nil {
		s.loadErr = &StorageReadError{Key: s.key, Err: err}
		s.log.Errorw("failed to parse store", "key", s.key, "bytes", len(raw), "error", err)
		if keepErr := s.kv.Set(ctx, s.key+CorruptSuffix, raw); keepErr != nil {
			s.log.Warnw("could not keep unreadable state", "key", s.key+CorruptSuffix, "error", keepErr)
		}
		return
	}
	next, err := Reduce(s.state, Init{Payload: patch})
	if err != nil {
		s.loadErr = &StorageReadError{Key: s.key, Err: err}
		s.log.Errorw("failed to apply restored state", "error", err)
		return
	}
	s.state = next
	s.log.Infow("state restored",
		"tasks", len(next.Tasks),
		"exams", len(next.Exams),
		"sessions", len(next.StudySessions),
		"xp", next.XP,
	)
}

// LoadError returns the StorageReadError hit at startup, if any.
func (s *Store) LoadError() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loadErr
}

// Dispatch applies action and persists the result before returning. A
// rejected action leaves state untouched and is not persisted. If the write
// fails the in-memory state has still advanced and the error wraps ErrPersist.
func (s *Store) Dispatch(ctx context.Context, action Action) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	next, err := Reduce(s.state, action)
	if err != nil {
		kind := "<nil>"
		if action != nil {
			kind = action.Kind()
		}
		s.log.Warnw("action rejected", "action", kind, "error", err)
		return err
	}
	s.state = next
	s.recompute()

	if err := s.persist(ctx); err != nil {
		s.log.Errorw("failed to persist state", "action", action.Kind(), "error", err)
		return fmt.Errorf("%w: %w", ErrPersist, err)
	}
	s.log.Debugw("action applied", "action", action.Kind(), "xp", s.state.XP)
	return nil
}

func (s *Store) persist(ctx context.Context) error {
	data, err := backup.Encode(s.state)
	if err != nil {
		return err
	}
	return s.kv.Set(ctx, s.key, data)
}

func (s *Store) recompute() {
	s.level = model.Level(s.state.XP)
	s.progress = model.LevelProgress(s.state.XP)
}

// State returns a snapshot the caller may keep or modify freely.
func (s *Store) State() model.AppState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Clone()
}

func (s *Store) Level() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.level
}

func (s *Store) LevelProgress() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.progress
}
