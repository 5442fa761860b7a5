// Package plugin is the boundary between a metadata source and its host.
package plugin

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"aladin/src/internal/schema"
)

// Request carries the search terms of one identify or cover call.
type Request struct {
	Title       string
	Authors     []string
	Identifiers map[string]string
	Timeout     time.Duration
}

// Cover is a downloaded cover image.
type Cover struct {
	Source      string
	URL         string
	ContentType string
	Data        []byte
}

// Source is implemented by every metadata source.
//
// Identify pushes zero or more records onto results. The only error it
// returns is query.ErrNoSearchTerms; network and parse failures mean fewer
// results. DownloadCover pushes at most one cover and never fails.
type Source interface {
	Info() Info
	Identify(ctx context.Context, log *zap.Logger, results Queue[schema.Record], abort Abort, req Request) error
	DownloadCover(ctx context.Context, log *zap.Logger, covers Queue[Cover], abort Abort, req Request, getBestCover bool)
}

// Info declares what a source can do.
type Info struct {
	Name                  string   `yaml:"name" json:"name"`
	Version               [3]int   `yaml:"version,flow" json:"version"`
	Description           string   `yaml:"description" json:"description"`
	Capabilities          []string `yaml:"capabilities,flow" json:"capabilities"`
	TouchedFields         []string `yaml:"touched_fields" json:"touched_fields"`
	PreferResultsWithISBN bool     `yaml:"prefer_results_with_isbn" json:"prefer_results_with_isbn"`
}

// Queue receives results. Implementations must be safe for concurrent use.
type Queue[T any] interface {
	Put(v T)
}

// SliceQueue collects values in memory.
type SliceQueue[T any] struct {
	mu    sync.Mutex
	items []T
}

func (q *SliceQueue[T]) Put(v T) {
	q.mu.Lock()
	q.items = append(q.items, v)
	q.mu.Unlock()
}

// Items returns a copy of everything put so far.
func (q *SliceQueue[T]) Items() []T {
	q.mu.Lock()
	defer q.mu.Unlock()
	out := make([]T, len(q.items))
	copy(out, q.items)
	return out
}

// ChanQueue forwards values to a channel; Put blocks while the channel is full.
type ChanQueue[T any] chan T

func (q ChanQueue[T]) Put(v T) { q <- v }

// Abort is a cooperative cancellation flag checked between items.
type Abort interface {
	IsSet() bool
}

// AbortFlag is an Abort the host can set from another goroutine.
type AbortFlag struct{ set atomic.Bool }

func (a *AbortFlag) Set()        { a.set.Store(true) }
func (a *AbortFlag) IsSet() bool { return a != nil && a.set.Load() }

// Never is an Abort that is never set.
var Never Abort = never{}

type never struct{}

func (never) IsSet() bool { return false }

// Aborted reports whether a is non-nil and set.
func Aborted(a Abort) bool { return a != nil && a.IsSet() }
