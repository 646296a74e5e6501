package services

import (
	"context"
	"time"

	"gastos/internal/cache"
	"gastos/internal/core"
	"gastos/internal/log"
	"gastos/internal/sheets"
)

const summaryCacheKey = "summary"

// Dashboard reads all rows, coerces them and computes the summary. Results
// are cached briefly so repeated renders don't hammer the remote store.
type Dashboard struct {
	store   sheets.RowLister
	summary *cache.TTLCache[core.Summary]
	logger  *log.Logger
}

func NewDashboard(store sheets.RowLister, logger *log.Logger) *Dashboard {
	return &Dashboard{
		store:   store,
		summary: cache.New[core.Summary](1, 30*time.Second),
		logger:  logger,
	}
}

// Load returns the dashboard summary.
//
// Policy degrade-to-empty-on-read-error: when the store can't be read the
// dashboard shows no data instead of an error page. The failure is logged,
// never cached, and never propagated.
func (d *Dashboard) Load(ctx context.Context) core.Summary {
	if sum, ok := d.summary.Get(summaryCacheKey); ok {
		return sum
	}

	rows, err := d.store.ListRows(ctx)
	if err != nil {
		d.logger.ErrorContext(ctx, "Failed to list rows, serving empty dashboard", "error", err)
		return core.Summary{}
	}

	records := make([]core.Record, 0, len(rows))
	for _, row := range rows {
		records = append(records, core.CoerceRow(row))
	}
	sum := core.Summarize(records)
	d.summary.Set(summaryCacheKey, sum)
	return sum
}

// Invalidate drops the cached summary, called after a successful submission.
func (d *Dashboard) Invalidate() {
	d.summary.Delete(summaryCacheKey)
}
