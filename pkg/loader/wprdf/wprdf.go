// Package wprdf parses WikiPathways RDF dumps in N-Triples form into raw
// record documents. The WikiPathways vocabulary types every resource with
// one or more wp: classes, which map directly onto the raw type-tag lists.
package wprdf

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/openpathway/pathmerge/pkg/pathway"

	"gonum.org/v1/gonum/graph/formats/rdf"
)

const (
	predType        = "http://www.w3.org/1999/02/22-rdf-syntax-ns#type"
	predLabel       = "http://www.w3.org/2000/01/rdf-schema#label"
	predTitle       = "http://purl.org/dc/elements/1.1/title"
	predIdentifier  = "http://purl.org/dc/terms/identifier"
	predDescription = "http://purl.org/dc/terms/description"

	wpVocabulary     = "http://vocabularies.wikipathways.org/wp#"
	predParticipants = wpVocabulary + "participants"
	predSource       = wpVocabulary + "source"
	predTarget       = wpVocabulary + "target"
	bdbPrefix        = wpVocabulary + "bdb"
)

// Loader parses WikiPathways RDF.
type Loader struct{}

// New creates a WikiPathways RDF loader.
func New() *Loader {
	return &Loader{}
}

// subject accumulates everything the triples assert about one resource.
type subject struct {
	types        []string
	labels       []string
	identifiers  []string
	xrefs        []pathway.Xref
	participants []string
	sources      []string
	targets      []string
}

// Load parses one N-Triples file.
func (l *Loader) Load(_ context.Context, name string, data []byte) (*pathway.Document, error) {
	subjects := make(map[string]*subject)
	order := make([]string, 0, 64)
	info := pathway.Info{Database: "wikipathways"}
	var pathwayURI string

	var dec rdf.Decoder
	dec.Reset(bytes.NewReader(data))
	for {
		statement, err := dec.Unmarshal()
		if err != nil {
			if err == io.EOF {
				break
			}
			return nil, fmt.Errorf("failed to decode RDF %s: %w", name, err)
		}

		subj := unwrapIRI(statement.Subject.Value)
		pred := unwrapIRI(statement.Predicate.Value)
		obj := statement.Object.Value

		s, ok := subjects[subj]
		if !ok {
			s = &subject{}
			subjects[subj] = s
			order = append(order, subj)
		}

		switch {
		case pred == predType:
			class := unwrapIRI(obj)
			if strings.HasPrefix(class, wpVocabulary) {
				s.types = append(s.types, strings.TrimPrefix(class, wpVocabulary))
			}
		case pred == predLabel:
			s.labels = append(s.labels, unquoteLiteral(obj))
		case pred == predIdentifier:
			s.identifiers = append(s.identifiers, unquoteLiteral(obj))
		case pred == predTitle:
			info.Title = unquoteLiteral(obj)
			pathwayURI = subj
		case pred == predDescription:
			info.Description = unquoteLiteral(obj)
		case pred == predParticipants:
			s.participants = append(s.participants, unwrapIRI(obj))
		case pred == predSource:
			s.sources = append(s.sources, unwrapIRI(obj))
		case pred == predTarget:
			s.targets = append(s.targets, unwrapIRI(obj))
		case strings.HasPrefix(pred, bdbPrefix):
			if xref, ok := xrefFromIRI(unwrapIRI(obj)); ok {
				s.xrefs = append(s.xrefs, xref)
			}
		}
	}

	if pathwayURI != "" {
		info.Identifier = firstOf(subjects[pathwayURI].identifiers)
	}

	doc := &pathway.Document{Info: info}
	for _, uri := range order {
		if uri == pathwayURI {
			continue
		}
		s := subjects[uri]
		switch {
		case hasTag(s.types, "Interaction"):
			doc.Interactions = append(doc.Interactions, pathway.Interaction{
				URI:          uri,
				Types:        s.types,
				Participants: participantPairs(s),
			})
		case hasTag(s.types, "Complex"):
			doc.Complexes = append(doc.Complexes, pathway.Complex{
				Node:    pathway.Node{URI: uri, Types: s.types},
				Members: s.participants,
			})
		case len(s.types) > 0:
			doc.Nodes = append(doc.Nodes, pathway.Node{
				URI:         uri,
				Types:       s.types,
				Names:       s.labels,
				Identifiers: s.identifiers,
				Xrefs:       s.xrefs,
			})
		}
	}
	return doc, nil
}

// participantPairs pairs every wp:source with every wp:target. Interactions
// with participants but no directed endpoints stay pairless and contribute
// nothing, matching the vocabulary's undirected leftovers.
func participantPairs(s *subject) []pathway.Participant {
	var pairs []pathway.Participant
	for _, source := range s.sources {
		for _, target := range s.targets {
			pairs = append(pairs, pathway.Participant{Source: source, Target: target})
		}
	}
	return pairs
}

// xrefFromIRI derives the candidate (namespace, identifier) pair from an
// identifiers.org-style bridge IRI.
func xrefFromIRI(iri string) (pathway.Xref, bool) {
	parsed, err := pathway.ParseIRI(iri)
	if err != nil || parsed.Namespace == "" || parsed.Identifier == "" {
		return pathway.Xref{}, false
	}
	return pathway.Xref{Namespace: parsed.Namespace, Identifier: parsed.Identifier}, true
}

// unwrapIRI strips the angle brackets of an N-Triples IRI term.
func unwrapIRI(value string) string {
	return strings.TrimSuffix(strings.TrimPrefix(value, "<"), ">")
}

// unquoteLiteral strips the quotes plus any language or datatype suffix of
// an N-Triples literal term.
func unquoteLiteral(value string) string {
	if !strings.HasPrefix(value, `"`) {
		return value
	}
	if end := strings.LastIndex(value, `"`); end > 0 {
		return value[1:end]
	}
	return value
}

func hasTag(tags []string, tag string) bool {
	for _, t := range tags {
		if t == tag {
			return true
		}
	}
	return false
}

func firstOf(values []string) string {
	if len(values) == 0 {
		return ""
	}
	return values[0]
}
