// Package tax computes invoice amounts. Rounding happens once per line at the
// currency minor unit (half up) and totals are plain sums of rounded lines.
package tax

import (
	"fmt"
	"sort"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/samandr77/microservices/fiscal/internal/entity"
)

const DefaultPrecision int32 = 2

var zeroDecimalCurrencies = map[string]struct{}{
	"JPY": {},
	"KRW": {},
	"CLP": {},
	"VND": {},
}

// Precision returns the number of minor unit digits of a currency.
func Precision(currency string) int32 {
	if _, ok := zeroDecimalCurrencies[strings.ToUpper(currency)]; ok {
		return 0
	}

	return DefaultPrecision
}

type Result struct {
	Concepts         []entity.Concept
	Subtotal         decimal.Decimal
	Discount         decimal.Decimal
	TaxesTransferred decimal.Decimal
	TaxesWithheld    decimal.Decimal
	Total            decimal.Decimal
}

// Compute calculates line amounts, tax lines and document totals. The document
// discount is spread over the lines proportionally to their net amount.
func Compute(concepts []entity.Concept, discount decimal.Decimal, precision int32) (Result, error) {
	if len(concepts) == 0 {
		return Result{}, fmt.Errorf("%w: concept list is empty", entity.ErrValidation)
	}

	gross := make([]decimal.Decimal, len(concepts))
	nets := make([]decimal.Decimal, len(concepts))
	lineDiscounts := make([]decimal.Decimal, len(concepts))
	totalNet := decimal.Zero

	for i, c := range concepts {
		if !c.Quantity.IsPositive() {
			return Result{}, fmt.Errorf("%w: concept %d quantity %s must be positive", entity.ErrValidation, i, c.Quantity)
		}

		if !c.UnitValue.IsPositive() {
			return Result{}, fmt.Errorf("%w: concept %d unit value %s must be positive", entity.ErrValidation, i, c.UnitValue)
		}

		if c.Discount.IsNegative() {
			return Result{}, fmt.Errorf("%w: concept %d discount %s is negative", entity.ErrValidation, i, c.Discount)
		}

		gross[i] = round(c.Quantity.Mul(c.UnitValue), precision)
		lineDiscounts[i] = round(c.Discount, precision)

		if lineDiscounts[i].GreaterThan(gross[i]) {
			return Result{}, fmt.Errorf("%w: concept %d discount %s exceeds amount %s",
				entity.ErrValidation, i, lineDiscounts[i], gross[i])
		}

		nets[i] = gross[i].Sub(lineDiscounts[i])
		totalNet = totalNet.Add(nets[i])
	}

	discount = round(discount, precision)
	if discount.IsNegative() || discount.GreaterThan(totalNet) {
		return Result{}, fmt.Errorf("%w: document discount %s must be between 0 and %s",
			entity.ErrValidation, discount, totalNet)
	}

	shares := allocate(discount, nets, precision)

	res := Result{
		Concepts:         make([]entity.Concept, len(concepts)),
		Subtotal:         decimal.Zero,
		Discount:         decimal.Zero,
		TaxesTransferred: decimal.Zero,
		TaxesWithheld:    decimal.Zero,
	}

	for i, c := range concepts {
		c.Discount = lineDiscounts[i].Add(shares[i])
		c.Amount = gross[i].Sub(c.Discount)
		c.TaxLines = make([]entity.TaxLine, 0, len(c.Taxes))

		for _, rule := range c.Taxes {
			line, err := taxLine(rule, c.Amount, precision)
			if err != nil {
				return Result{}, fmt.Errorf("concept %d: %w", i, err)
			}

			c.TaxLines = append(c.TaxLines, line)

			if line.Kind == entity.TaxKindWithheld {
				res.TaxesWithheld = res.TaxesWithheld.Add(line.Amount)
			} else {
				res.TaxesTransferred = res.TaxesTransferred.Add(line.Amount)
			}
		}

		res.Subtotal = res.Subtotal.Add(gross[i])
		res.Discount = res.Discount.Add(c.Discount)
		res.Concepts[i] = c
	}

	res.Total = res.Subtotal.Sub(res.Discount).Add(res.TaxesTransferred).Sub(res.TaxesWithheld)

	return res, nil
}

func taxLine(rule entity.TaxRule, base decimal.Decimal, precision int32) (entity.TaxLine, error) {
	if rule.Rate.IsNegative() {
		return entity.TaxLine{}, fmt.Errorf("%w: tax %s rate %s is negative", entity.ErrValidation, rule.Code, rule.Rate)
	}

	kind := rule.Kind
	if kind == "" {
		kind = entity.TaxKindTransferred
	}

	if kind != entity.TaxKindTransferred && kind != entity.TaxKindWithheld {
		return entity.TaxLine{}, fmt.Errorf("%w: tax %s has unknown kind %q", entity.ErrValidation, rule.Code, kind)
	}

	return entity.TaxLine{
		Code:   rule.Code,
		Kind:   kind,
		Rate:   rule.Rate,
		Base:   base,
		Amount: round(base.Mul(rule.Rate), precision),
	}, nil
}

// Negate returns the result with every amount sign flipped.
func (r Result) Negate() Result {
	out := Result{
		Concepts:         make([]entity.Concept, len(r.Concepts)),
		Subtotal:         r.Subtotal.Neg(),
		Discount:         r.Discount.Neg(),
		TaxesTransferred: r.TaxesTransferred.Neg(),
		TaxesWithheld:    r.TaxesWithheld.Neg(),
		Total:            r.Total.Neg(),
	}

	for i, c := range r.Concepts {
		c.Amount = c.Amount.Neg()
		c.Discount = c.Discount.Neg()

		lines := make([]entity.TaxLine, len(c.TaxLines))
		for j, l := range c.TaxLines {
			l.Base = l.Base.Neg()
			l.Amount = l.Amount.Neg()
			lines[j] = l
		}

		c.TaxLines = lines
		out.Concepts[i] = c
	}

	return out
}

// ApplyTo copies concepts and totals onto an invoice.
func (r Result) ApplyTo(inv *entity.Invoice) {
	inv.Concepts = r.Concepts
	inv.Subtotal = r.Subtotal
	inv.Discount = r.Discount
	inv.TaxesTransferred = r.TaxesTransferred
	inv.TaxesWithheld = r.TaxesWithheld
	inv.Total = r.Total
}

// round is half up for positive values and symmetric for negative ones.
func round(d decimal.Decimal, precision int32) decimal.Decimal {
	return d.Round(precision)
}

// allocate splits total over weights using the largest remainder method so the
// shares add up to total exactly and none exceeds its weight.
func allocate(total decimal.Decimal, weights []decimal.Decimal, precision int32) []decimal.Decimal {
	shares := make([]decimal.Decimal, len(weights))
	for i := range shares {
		shares[i] = decimal.Zero
	}

	sum := decimal.Zero
	for _, w := range weights {
		sum = sum.Add(w)
	}

	if total.IsZero() || sum.IsZero() {
		return shares
	}

	remainders := make([]decimal.Decimal, len(weights))
	allocated := decimal.Zero

	for i, w := range weights {
		exact := total.Mul(w).Div(sum)
		shares[i] = exact.RoundFloor(precision)
		remainders[i] = exact.Sub(shares[i])
		allocated = allocated.Add(shares[i])
	}

	order := make([]int, len(weights))
	for i := range order {
		order[i] = i
	}

	sort.SliceStable(order, func(a, b int) bool {
		return remainders[order[a]].GreaterThan(remainders[order[b]])
	})

	unit := decimal.New(1, -precision)
	left := total.Sub(allocated).Div(unit).IntPart()

	for k := int64(0); k < left; k++ {
		i := order[int(k)%len(order)]
		shares[i] = shares[i].Add(unit)
	}

	return shares
}
