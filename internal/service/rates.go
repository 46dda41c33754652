package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/samandr77/microservices/fiscal/internal/entity"
)

const ratePrecision = 6

// StaticRates serves injected exchange rates keyed as FROM_TO, e.g. USD_MXN.
type StaticRates struct {
	rates map[string]decimal.Decimal
}

func NewStaticRates(raw map[string]string) (*StaticRates, error) {
	rates := make(map[string]decimal.Decimal, len(raw))

	for pair, v := range raw {
		from, to, ok := strings.Cut(strings.ToUpper(strings.TrimSpace(pair)), "_")
		if !ok || len(from) != 3 || len(to) != 3 {
			return nil, fmt.Errorf("invalid currency pair %q", pair)
		}

		rate, err := decimal.NewFromString(strings.TrimSpace(v))
		if err != nil {
			return nil, fmt.Errorf("parse rate of %s: %w", pair, err)
		}

		if !rate.IsPositive() {
			return nil, fmt.Errorf("rate of %s must be positive", pair)
		}

		rates[from+"_"+to] = rate
	}

	return &StaticRates{rates: rates}, nil
}

// Rate returns how many units of to buy one unit of from.
func (r *StaticRates) Rate(_ context.Context, from, to string) (decimal.Decimal, error) {
	from, to = strings.ToUpper(from), strings.ToUpper(to)

	if from == to {
		return decimal.NewFromInt(1), nil
	}

	if rate, ok := r.rates[from+"_"+to]; ok {
		return rate, nil
	}

	if rate, ok := r.rates[to+"_"+from]; ok {
		return decimal.NewFromInt(1).DivRound(rate, ratePrecision), nil
	}

	return decimal.Zero, fmt.Errorf("%w: no exchange rate from %s to %s", entity.ErrValidation, from, to)
}
