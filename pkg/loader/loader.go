// Package loader turns pathway files into raw record documents. Each source
// format has its own subpackage; this package dispatches on the file
// extension, the only classification the export folders provide.
package loader

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/openpathway/pathmerge/pkg/loader/biopax"
	"github.com/openpathway/pathmerge/pkg/loader/kgml"
	"github.com/openpathway/pathmerge/pkg/loader/records"
	"github.com/openpathway/pathmerge/pkg/loader/wprdf"
	"github.com/openpathway/pathmerge/pkg/pathway"
)

// Loader parses one pathway file into its raw record document.
type Loader interface {
	Load(ctx context.Context, name string, data []byte) (*pathway.Document, error)
}

// ForFile returns the loader responsible for the given file name:
// KEGG KGML for .kgml/.xml, WikiPathways RDF for .ttl/.nt, Reactome BioPAX
// for .owl and pre-parsed record documents for .json.
func ForFile(name string) (Loader, error) {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".kgml", ".xml":
		return kgml.New(), nil
	case ".ttl", ".nt":
		return wprdf.New(), nil
	case ".owl":
		return biopax.New(), nil
	case ".json":
		return records.New(), nil
	default:
		return nil, fmt.Errorf("no loader for file %s", name)
	}
}

// Load parses the file with the loader its extension selects.
func Load(ctx context.Context, name string, data []byte) (*pathway.Document, error) {
	l, err := ForFile(name)
	if err != nil {
		return nil, err
	}
	return l.Load(ctx, name, data)
}
