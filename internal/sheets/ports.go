package sheets

import (
	"context"

	"gastos/internal/core"
)

// Ports the application requires from the row-store.
type (
	// RowAppender appends one formatted expense row. Appends are not
	// idempotent: a failure after the remote write is indistinguishable from
	// one before it, so a user retry may duplicate the row.
	RowAppender interface {
		AppendRow(ctx context.Context, r core.Record) error
	}

	// RowLister returns every row in store order (append order in practice).
	RowLister interface {
		ListRows(ctx context.Context) ([]core.RawRow, error)
	}

	// RowStore groups both sides for backends implementing the full contract.
	RowStore interface {
		RowAppender
		RowLister
	}
)
