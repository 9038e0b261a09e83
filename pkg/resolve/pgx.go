package resolve

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/openpathway/pathmerge/pkg/pathway"

	pgxv5 "github.com/jackc/pgx/v5"
)

type pgxIConn interface {
	QueryRow(ctx context.Context, sql string, optionsAndArgs ...any) pgxv5.Row
}

// Pgx resolves identities against the gene_xrefs table, which maps source
// (namespace, identifier) pairs onto canonical triples. The table schema is
// owned by the migrations directory.
type Pgx struct {
	conn pgxIConn
}

// NewPgx creates a resolver on an existing connection or pool.
func NewPgx(conn pgxIConn) *Pgx {
	return &Pgx{conn: conn}
}

const xrefQuery = `
SELECT namespace, name, identifier
FROM gene_xrefs
WHERE source_namespace = $1 AND source_identifier = $2
LIMIT 1`

// Resolve tries the candidates in namespace-preference order and returns the
// first row found. Database errors abort the lookup; a missing row only
// advances to the next candidate.
func (p *Pgx) Resolve(ctx context.Context, xrefs []pathway.Xref) (Identity, bool, error) {
	for _, xref := range orderXrefs(xrefs) {
		var identity Identity
		err := p.conn.QueryRow(ctx, xrefQuery,
			strings.ToLower(xref.Namespace), xref.Identifier,
		).Scan(&identity.Namespace, &identity.Name, &identity.Identifier)
		if errors.Is(err, pgxv5.ErrNoRows) {
			continue
		}
		if err != nil {
			return Identity{}, false, fmt.Errorf("failed to query gene xref %s:%s: %w",
				xref.Namespace, xref.Identifier, err)
		}
		return identity, true, nil
	}
	return Identity{}, false, nil
}
