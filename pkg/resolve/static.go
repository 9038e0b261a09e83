package resolve

import (
	"context"
	"strings"

	"github.com/openpathway/pathmerge/pkg/pathway"
)

// Static is an in-memory resolver seeded ahead of time. It backs offline
// batch runs and tests.
type Static struct {
	entries map[string]Identity
}

// NewStatic creates an empty static resolver.
func NewStatic() *Static {
	return &Static{entries: make(map[string]Identity)}
}

// Add registers the canonical identity for one (namespace, identifier)
// candidate pair.
func (s *Static) Add(namespace, identifier string, identity Identity) {
	s.entries[staticKey(namespace, identifier)] = identity
}

// Resolve tries the candidates in namespace-preference order and returns the
// first registered identity.
func (s *Static) Resolve(_ context.Context, xrefs []pathway.Xref) (Identity, bool, error) {
	for _, xref := range orderXrefs(xrefs) {
		if identity, ok := s.entries[staticKey(xref.Namespace, xref.Identifier)]; ok {
			return identity, true, nil
		}
	}
	return Identity{}, false, nil
}

func staticKey(namespace, identifier string) string {
	return strings.ToLower(namespace) + "|" + identifier
}
