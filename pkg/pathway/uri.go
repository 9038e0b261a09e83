package pathway

import (
	"fmt"
	"net/url"
	"strings"
)

// IRI is the decomposed form of a node or interaction URI. Namespace is the
// second-to-last path segment and Identifier the last one, the convention
// the pathway RDF vocabularies follow (e.g.
// http://identifiers.org/chebi/15377 -> namespace "chebi", identifier
// "15377").
type IRI struct {
	Scheme     string
	Authority  string
	Namespace  string
	Identifier string
}

// ParseIRI decomposes a raw URI into its scheme, authority, namespace and
// identifier parts.
func ParseIRI(raw string) (IRI, error) {
	parsed, err := url.Parse(raw)
	if err != nil {
		return IRI{}, fmt.Errorf("failed to parse IRI %q: %w", raw, err)
	}

	iri := IRI{
		Scheme:    parsed.Scheme,
		Authority: parsed.Host,
	}

	path := parsed.Path
	if path == "" {
		path = parsed.Opaque
	}
	segments := strings.Split(path, "/")
	if len(segments) > 0 {
		iri.Identifier = segments[len(segments)-1]
	}
	if len(segments) > 1 {
		iri.Namespace = segments[len(segments)-2]
	}
	return iri, nil
}
