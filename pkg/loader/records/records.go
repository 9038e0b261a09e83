// Package records loads pre-parsed record documents from their JSON wire
// form, the format conversion jobs exchange and archives embed.
package records

import (
	"context"
	"fmt"

	"github.com/openpathway/pathmerge/pkg/pathway"
)

// Loader parses record-document JSON.
type Loader struct{}

// New creates a record-document loader.
func New() *Loader {
	return &Loader{}
}

// Load decodes one record document.
func (l *Loader) Load(_ context.Context, name string, data []byte) (*pathway.Document, error) {
	doc, err := pathway.DecodeDocument(data)
	if err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", name, err)
	}
	return doc, nil
}
