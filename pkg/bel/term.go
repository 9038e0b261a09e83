package bel

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// Func identifies the biological function class of a term. The values double
// as the function prefix in the term's canonical expression.
type Func string

const (
	FuncProtein    Func = "p"
	FuncRNA        Func = "r"
	FuncGene       Func = "g"
	FuncAbundance  Func = "a"
	FuncBioProcess Func = "bp"
	FuncComplex    Func = "complex"
	FuncReaction   Func = "rxn"
)

// Term is one typed node of a pathway graph. Simple terms carry a
// (Namespace, Name, Identifier) triple; composite terms additionally carry
// their member set, and reactions carry reactant and product sets instead of
// a triple. Two terms are the same biological entity exactly when their
// canonical keys are equal.
type Term struct {
	Function   Func
	Namespace  string
	Name       string
	Identifier string

	// Members is set for FuncComplex terms only.
	Members []Term

	// Reactants and Products are set for FuncReaction terms only.
	Reactants []Term
	Products  []Term
}

// NewTerm creates a simple term with the given function class and identity
// triple.
func NewTerm(function Func, namespace, name, identifier string) Term {
	return Term{
		Function:   function,
		Namespace:  namespace,
		Name:       name,
		Identifier: identifier,
	}
}

// NewComplex creates a composite-abundance term. Members are deduplicated by
// canonical key and stored in key order so member order in the source never
// changes the resulting term.
func NewComplex(namespace, name, identifier string, members []Term) Term {
	return Term{
		Function:   FuncComplex,
		Namespace:  namespace,
		Name:       name,
		Identifier: identifier,
		Members:    dedupeTerms(members),
	}
}

// NewReaction creates a reaction term from reactant and product sets. Both
// sets are deduplicated by canonical key and stored in key order.
func NewReaction(reactants, products []Term) Term {
	return Term{
		Function:  FuncReaction,
		Reactants: dedupeTerms(reactants),
		Products:  dedupeTerms(products),
	}
}

// Key renders the canonical expression that defines term identity, e.g.
// p(hgnc:391!"AKT1") or rxn(reactants(a(chebi:15377!"water")), products(...)).
// Keys encode the full identity triple, so equal keys mean equal terms.
func (t Term) Key() string {
	switch t.Function {
	case FuncReaction:
		return fmt.Sprintf("rxn(reactants(%s), products(%s))",
			joinKeys(t.Reactants), joinKeys(t.Products))
	case FuncComplex:
		if t.Namespace == "" && t.Identifier == "" {
			return fmt.Sprintf("complex(%s)", joinKeys(t.Members))
		}
		return fmt.Sprintf("complex(%s)", renderTriple(t.Namespace, t.Identifier, t.Name))
	default:
		return fmt.Sprintf("%s(%s)", t.Function, renderTriple(t.Namespace, t.Identifier, t.Name))
	}
}

func renderTriple(namespace, identifier, name string) string {
	return namespace + ":" + identifier + "!" + strconv.Quote(name)
}

func joinKeys(terms []Term) string {
	keys := make([]string, len(terms))
	for i, t := range terms {
		keys[i] = t.Key()
	}
	return strings.Join(keys, "; ")
}

func dedupeTerms(terms []Term) []Term {
	if len(terms) == 0 {
		return nil
	}
	byKey := make(map[string]Term, len(terms))
	for _, t := range terms {
		key := t.Key()
		if _, ok := byKey[key]; !ok {
			byKey[key] = t
		}
	}
	keys := make([]string, 0, len(byKey))
	for key := range byKey {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	out := make([]Term, len(keys))
	for i, key := range keys {
		out[i] = byKey[key]
	}
	return out
}
