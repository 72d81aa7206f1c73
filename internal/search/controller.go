// Package search drives dictionary lookups and holds the state a view renders.
package search

import (
	"context"
	"errors"
	"log/slog"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/at-ishikawa/lexicon/internal/dictionary"
)

type Status string

const (
	StatusIdle      Status = "idle"
	StatusSearching Status = "searching"
	StatusFound     Status = "found"
	StatusNotFound  Status = "not_found"
	StatusFailed    Status = "failed"
)

var ErrEmptyQuery = errors.New("query must not be empty")

// Snapshot is a copy of the controller state at one point in time.
type Snapshot struct {
	Query  string
	Status Status
	// Word is set only when Status is StatusFound.
	Word *dictionary.Word
	// Err is set only when Status is StatusNotFound or StatusFailed.
	Err error
	// Invalid is set when the last submitted query was blank.
	Invalid bool
	// Generation identifies the latest dispatched lookup.
	Generation uint64
}

type Option func(*Controller)

// WithTimeout bounds every lookup. Expiry resolves to a network failure.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Controller) {
		if timeout > 0 {
			c.timeout = timeout
		}
	}
}

// WithScrollTop registers the view hook run when a synonym is selected.
func WithScrollTop(fn func()) Option {
	return func(c *Controller) {
		c.onScrollTop = fn
	}
}

// Controller owns the query text and the lookup state machine.
// Lookups run concurrently but only the most recently submitted one may change the state.
type Controller struct {
	lookuper    dictionary.Lookuper
	timeout     time.Duration
	onScrollTop func()

	mu        sync.Mutex
	state     Snapshot
	listeners []func(Snapshot)

	// notifyMu serializes state changes with their notifications and is
	// always taken before mu.
	notifyMu sync.Mutex
	inflight sync.WaitGroup
}

func NewController(lookuper dictionary.Lookuper, opts ...Option) *Controller {
	c := &Controller{
		lookuper:    lookuper,
		timeout:     dictionary.DefaultTimeout,
		onScrollTop: func() {},
		state:       Snapshot{Status: StatusIdle},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Subscribe registers fn to be called after every state change.
// fn may call Snapshot and Subscribe but must not call Submit or
// SelectSynonym synchronously.
func (c *Controller) Subscribe(fn func(Snapshot)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.listeners = append(c.listeners, fn)
}

func (c *Controller) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Wait blocks until every dispatched lookup has resolved.
func (c *Controller) Wait() {
	c.inflight.Wait()
}

// Submit starts a lookup for query and returns without waiting for it.
// A blank query only marks the state invalid and returns ErrEmptyQuery.
func (c *Controller) Submit(ctx context.Context, query string) error {
	term := strings.TrimSpace(query)
	if term == "" {
		c.apply(func(s *Snapshot) bool {
			s.Invalid = true
			return true
		})
		return ErrEmptyQuery
	}

	var generation uint64
	c.apply(func(s *Snapshot) bool {
		s.Generation++
		generation = s.Generation
		*s = Snapshot{
			Query:      query,
			Status:     StatusSearching,
			Generation: generation,
		}
		return true
	})

	c.inflight.Add(1)
	go func() {
		defer c.inflight.Done()
		c.resolve(ctx, generation, term)
	}()
	return nil
}

// SelectSynonym makes term the active query and submits it.
// The view is scrolled to the top before the lookup starts.
func (c *Controller) SelectSynonym(ctx context.Context, term string) error {
	if strings.TrimSpace(term) != "" {
		c.onScrollTop()
	}
	return c.Submit(ctx, term)
}

func (c *Controller) resolve(ctx context.Context, generation uint64, term string) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	word, err := c.lookuper.Lookup(ctx, term)
	err = classify(term, err)

	applied := c.apply(func(s *Snapshot) bool {
		if s.Generation != generation {
			return false
		}
		switch kind, _ := dictionary.KindOf(err); {
		case err == nil:
			s.Status = StatusFound
			s.Word = &word
		case kind == dictionary.LookupNotFound:
			s.Status = StatusNotFound
			s.Err = err
		default:
			s.Status = StatusFailed
			s.Err = err
		}
		return true
	})
	if !applied {
		slog.Default().Debug("discarded stale lookup result", "term", term, "generation", generation)
		return
	}

	if err != nil {
		logFailure(term, err)
	}
}

// classify turns errors not produced by a dictionary reader, such as an
// expired context, into network failures.
func classify(term string, err error) error {
	if err == nil {
		return nil
	}
	if _, ok := dictionary.KindOf(err); ok {
		return err
	}
	return &dictionary.LookupError{Kind: dictionary.LookupNetwork, Term: term, Err: err}
}

func logFailure(term string, err error) {
	kind, _ := dictionary.KindOf(err)
	switch kind {
	case dictionary.LookupNotFound:
		slog.Default().Debug("no definitions found", "term", term)
	case dictionary.LookupMapping:
		slog.Default().Warn("lookup failed", "term", term, "kind", kind, "error", err)
	default:
		slog.Default().Info("lookup failed", "term", term, "kind", kind, "error", err)
	}
}

// apply mutates the state under the lock and, if fn reports a change,
// notifies listeners in order. Listeners run without mu held, so they may
// read the state with Snapshot.
func (c *Controller) apply(fn func(*Snapshot) bool) bool {
	c.notifyMu.Lock()
	defer c.notifyMu.Unlock()

	c.mu.Lock()
	if !fn(&c.state) {
		c.mu.Unlock()
		return false
	}
	snapshot := c.state
	listeners := slices.Clone(c.listeners)
	c.mu.Unlock()

	for _, listener := range listeners {
		listener(snapshot)
	}
	return true
}
