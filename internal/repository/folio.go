package repository

import (
	"context"

	"github.com/gofrs/uuid/v5"
)

// Increment advances the folio counter of a series. Inside RunInTx the counter
// row stays locked until the transaction ends, so a rollback returns the number.
func (r *Repository) Increment(ctx context.Context, tenantID uuid.UUID, series string) (int64, error) {
	const q = `
	INSERT INTO folio_counters (tenant_id, series, last_value)
	VALUES ($1, $2, 1)
	ON CONFLICT (tenant_id, series) DO UPDATE SET last_value = folio_counters.last_value + 1
	RETURNING last_value
	`

	var value int64

	err := r.q(ctx).QueryRow(ctx, q, tenantID, series).Scan(&value)
	if err != nil {
		return 0, storageErr("increment folio", err)
	}

	return value, nil
}
