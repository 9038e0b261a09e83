package bel

import (
	"sort"
	"strings"
)

// Relation is the typed relation an edge asserts between its endpoints.
type Relation string

const (
	RelationIncreases    Relation = "increases"
	RelationDecreases    Relation = "decreases"
	RelationAssociation  Relation = "association"
	RelationTranslatedTo Relation = "translatedTo"
)

// Modifier is an optional functional modifier applied to an edge endpoint.
type Modifier string

const (
	ModifierNone     Modifier = ""
	ModifierActivity Modifier = "activity"
)

// Edge is one typed relation between two terms already present in the owning
// graph, referenced by their canonical keys. Citation carries the source
// record URI the relation was asserted by; Evidence may be empty. Annotations
// hold free-form qualifier values, e.g. the raw interaction-type list for
// generic associations or the contributing database after a merge.
type Edge struct {
	Relation       Relation
	Source         string
	Target         string
	Citation       string
	Evidence       string
	ObjectModifier Modifier
	Annotations    map[string][]string
}

// Key renders the full identity of the edge, annotations included. Two edges
// that differ only in annotations (for example the contributing database) are
// distinct edges.
func (e Edge) Key() string {
	var b strings.Builder
	b.WriteString(string(e.Relation))
	b.WriteByte('|')
	b.WriteString(e.Source)
	b.WriteByte('|')
	b.WriteString(e.Target)
	b.WriteByte('|')
	b.WriteString(e.Citation)
	b.WriteByte('|')
	b.WriteString(e.Evidence)
	b.WriteByte('|')
	b.WriteString(string(e.ObjectModifier))
	for _, key := range sortedAnnotationKeys(e.Annotations) {
		b.WriteByte('|')
		b.WriteString(key)
		b.WriteByte('=')
		b.WriteString(strings.Join(e.Annotations[key], ","))
	}
	return b.String()
}

// WithAnnotation returns a copy of the edge with value appended to the given
// annotation key. The receiver is never modified; duplicate values are
// dropped.
func (e Edge) WithAnnotation(key, value string) Edge {
	annotations := make(map[string][]string, len(e.Annotations)+1)
	for k, values := range e.Annotations {
		annotations[k] = append([]string(nil), values...)
	}
	for _, existing := range annotations[key] {
		if existing == value {
			e.Annotations = annotations
			return e
		}
	}
	annotations[key] = append(annotations[key], value)
	e.Annotations = annotations
	return e
}

func sortedAnnotationKeys(annotations map[string][]string) []string {
	if len(annotations) == 0 {
		return nil
	}
	keys := make([]string, 0, len(annotations))
	for key := range annotations {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
