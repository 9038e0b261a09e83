package merge

import (
	"context"

	"github.com/openpathway/pathmerge/pkg/bel"
	"github.com/openpathway/pathmerge/pkg/store"
)

// Stream is a lazy, finite, non-restartable sequence of graphs. Next loads
// the following graph and reports whether one is available; Graph returns it.
// Archives that fail to load are skipped, not fatal, so Err reports only
// context cancellation.
type Stream interface {
	Next() bool
	Graph() *bel.Graph
	Err() error
}

// archiveStream loads graphs from a fixed list of archive paths on demand.
// Nothing is read before the first Next call and at most one graph is held
// at a time.
type archiveStream struct {
	ctx     context.Context
	store   store.GraphStore
	paths   []string
	onSkip  func(path string, err error)
	current *bel.Graph
	err     error
}

// NewStream creates a stream over the given archive paths. onSkip is called
// for every archive that cannot be loaded; pass nil to drop failures
// silently.
func NewStream(ctx context.Context, st store.GraphStore, paths []string, onSkip func(path string, err error)) Stream {
	return &archiveStream{
		ctx:    ctx,
		store:  st,
		paths:  paths,
		onSkip: onSkip,
	}
}

func (s *archiveStream) Next() bool {
	s.current = nil
	for len(s.paths) > 0 {
		if err := s.ctx.Err(); err != nil {
			s.err = err
			return false
		}

		path := s.paths[0]
		s.paths = s.paths[1:]

		graph, err := s.store.Load(s.ctx, path)
		if err != nil {
			if s.onSkip != nil {
				s.onSkip(path, err)
			}
			continue
		}
		s.current = graph
		return true
	}
	return false
}

func (s *archiveStream) Graph() *bel.Graph {
	return s.current
}

func (s *archiveStream) Err() error {
	return s.err
}
