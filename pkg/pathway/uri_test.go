package pathway

import "testing"

func TestParseIRI(t *testing.T) {
	tests := []struct {
		name string
		uri  string
		want IRI
	}{
		{
			name: "identifiers.org",
			uri:  "http://identifiers.org/chebi/15377",
			want: IRI{Scheme: "http", Authority: "identifiers.org", Namespace: "chebi", Identifier: "15377"},
		},
		{
			name: "wikipathways entity",
			uri:  "http://rdf.wikipathways.org/Pathway/WP1871/WP/Interaction/c3f1a",
			want: IRI{Scheme: "http", Authority: "rdf.wikipathways.org", Namespace: "Interaction", Identifier: "c3f1a"},
		},
		{
			name: "reactome",
			uri:  "https://reactome.org/content/detail/R-HSA-109581",
			want: IRI{Scheme: "https", Authority: "reactome.org", Namespace: "detail", Identifier: "R-HSA-109581"},
		},
		{
			name: "single path segment",
			uri:  "urn:local",
			want: IRI{Scheme: "urn", Identifier: "local"},
		},
		{
			name: "empty",
			uri:  "",
			want: IRI{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseIRI(tt.uri)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("ParseIRI(%q) = %+v, want %+v", tt.uri, got, tt.want)
			}
		})
	}
}

func TestParseIRI_Invalid(t *testing.T) {
	if _, err := ParseIRI("http://bad\x7f.example/a/b"); err == nil {
		t.Error("expected error for control character in IRI")
	}
}
