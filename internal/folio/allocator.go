// Package folio hands out sequential document numbers per tenant and series.
package folio

import (
	"context"
	"fmt"

	"github.com/gofrs/uuid/v5"

	"github.com/samandr77/microservices/fiscal/internal/entity"
)

type Policy string

const (
	// PolicyReserveEarly assigns the folio before gateway submission. A failure after
	// allocation leaves a gap.
	PolicyReserveEarly Policy = "reserve-early"
	// PolicyReserveOnCommit assigns the folio in the transaction that records a
	// successful certification.
	PolicyReserveOnCommit Policy = "reserve-on-commit"
)

func ParsePolicy(s string) (Policy, error) {
	switch p := Policy(s); p {
	case PolicyReserveEarly, PolicyReserveOnCommit:
		return p, nil
	case "":
		return PolicyReserveOnCommit, nil
	default:
		return "", fmt.Errorf("unknown folio policy %q", s)
	}
}

// Store is the single writer of folio counters. Increment must be atomic.
type Store interface {
	Increment(ctx context.Context, tenantID uuid.UUID, series string) (int64, error)
}

type Folio struct {
	Series string
	Number int64
	Width  int
}

// String returns the zero padded folio number.
func (f Folio) String() string {
	return fmt.Sprintf("%0*d", f.Width, f.Number)
}

type Allocator struct {
	store  Store
	policy Policy
}

func NewAllocator(store Store, policy Policy) *Allocator {
	return &Allocator{
		store:  store,
		policy: policy,
	}
}

func (a *Allocator) Policy() Policy {
	return a.policy
}

// Next increments the counter of (tenant, series). The caller must not submit a
// document to the gateway when an error is returned.
func (a *Allocator) Next(ctx context.Context, tenantID uuid.UUID, series string, width int) (Folio, error) {
	n, err := a.store.Increment(ctx, tenantID, series)
	if err != nil {
		return Folio{}, fmt.Errorf("%w: increment folio %s/%s: %w", entity.ErrStorage, tenantID, series, err)
	}

	if n <= 0 {
		return Folio{}, fmt.Errorf("%w: folio counter %s/%s returned %d", entity.ErrStorage, tenantID, series, n)
	}

	return Folio{
		Series: series,
		Number: n,
		Width:  width,
	}, nil
}
