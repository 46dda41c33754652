package tax_test

import (
	"math/rand"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/samandr77/microservices/fiscal/internal/entity"
	"github.com/samandr77/microservices/fiscal/internal/tax"
)

var (
	iva16 = entity.TaxRule{Code: "002", Rate: decimal.RequireFromString("0.16"), Kind: entity.TaxKindTransferred}
	iva0  = entity.TaxRule{Code: "002", Rate: decimal.Zero, Kind: entity.TaxKindTransferred}
	isr10 = entity.TaxRule{Code: "001", Rate: decimal.RequireFromString("0.10"), Kind: entity.TaxKindWithheld}
)

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func concept(qty, unit string, taxes ...entity.TaxRule) entity.Concept {
	return entity.Concept{
		Quantity:  d(qty),
		UnitValue: d(unit),
		Discount:  decimal.Zero,
		Taxes:     taxes,
	}
}

func requireDecimal(t *testing.T, want string, got decimal.Decimal) {
	t.Helper()
	require.True(t, d(want).Equal(got), "want %s, got %s", want, got)
}

func TestCompute(t *testing.T) {
	t.Parallel()

	for _, tt := range []struct {
		name        string
		concepts    []entity.Concept
		discount    string
		precision   int32
		subtotal    string
		disc        string
		transferred string
		withheld    string
		total       string
	}{
		{
			name:        "single concept with 16% transferred tax",
			concepts:    []entity.Concept{concept("1", "1000", iva16)},
			discount:    "0",
			precision:   2,
			subtotal:    "1000",
			disc:        "0",
			transferred: "160",
			withheld:    "0",
			total:       "1160",
		},
		{
			name:        "rounding happens per line",
			concepts:    []entity.Concept{concept("1", "0.33", iva16), concept("1", "0.33", iva16), concept("1", "0.33", iva16)},
			discount:    "0",
			precision:   2,
			subtotal:    "0.99",
			disc:        "0",
			transferred: "0.15",
			withheld:    "0",
			total:       "1.14",
		},
		{
			name:        "half up on line amount",
			concepts:    []entity.Concept{concept("1", "0.125", iva16)},
			discount:    "0",
			precision:   2,
			subtotal:    "0.13",
			disc:        "0",
			transferred: "0.02",
			withheld:    "0",
			total:       "0.15",
		},
		{
			name:        "withheld tax",
			concepts:    []entity.Concept{concept("2", "500", iva16, isr10)},
			discount:    "0",
			precision:   2,
			subtotal:    "1000",
			disc:        "0",
			transferred: "160",
			withheld:    "100",
			total:       "1060",
		},
		{
			name:        "zero rate line",
			concepts:    []entity.Concept{concept("3", "10", iva0), concept("1", "100", iva16)},
			discount:    "0",
			precision:   2,
			subtotal:    "130",
			disc:        "0",
			transferred: "16",
			withheld:    "0",
			total:       "146",
		},
		{
			name:        "document discount spread over lines",
			concepts:    []entity.Concept{concept("1", "100", iva16), concept("1", "200", iva16)},
			discount:    "10",
			precision:   2,
			subtotal:    "300",
			disc:        "10",
			transferred: "46.40",
			withheld:    "0",
			total:       "336.40",
		},
		{
			name:        "zero decimal currency",
			concepts:    []entity.Concept{concept("3", "333", iva16)},
			discount:    "0",
			precision:   tax.Precision("JPY"),
			subtotal:    "999",
			disc:        "0",
			transferred: "160",
			withheld:    "0",
			total:       "1159",
		},
	} {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			res, err := tax.Compute(tt.concepts, d(tt.discount), tt.precision)
			require.NoError(t, err)

			requireDecimal(t, tt.subtotal, res.Subtotal)
			requireDecimal(t, tt.disc, res.Discount)
			requireDecimal(t, tt.transferred, res.TaxesTransferred)
			requireDecimal(t, tt.withheld, res.TaxesWithheld)
			requireDecimal(t, tt.total, res.Total)
			require.Len(t, res.Concepts, len(tt.concepts))
		})
	}
}

func TestCompute_DiscountShares(t *testing.T) {
	t.Parallel()

	res, err := tax.Compute([]entity.Concept{concept("1", "100", iva16), concept("1", "200", iva16)}, d("10"), 2)
	require.NoError(t, err)

	requireDecimal(t, "3.33", res.Concepts[0].Discount)
	requireDecimal(t, "6.67", res.Concepts[1].Discount)
	requireDecimal(t, "96.67", res.Concepts[0].Amount)
	requireDecimal(t, "15.47", res.Concepts[0].TaxLines[0].Amount)
	requireDecimal(t, "30.93", res.Concepts[1].TaxLines[0].Amount)
}

func TestCompute_Errors(t *testing.T) {
	t.Parallel()

	for _, tt := range []struct {
		name     string
		concepts []entity.Concept
		discount string
	}{
		{name: "empty list", concepts: nil, discount: "0"},
		{name: "zero quantity", concepts: []entity.Concept{concept("0", "10")}, discount: "0"},
		{name: "negative unit value", concepts: []entity.Concept{concept("1", "-10")}, discount: "0"},
		{name: "discount above total", concepts: []entity.Concept{concept("1", "10")}, discount: "10.01"},
		{name: "negative discount", concepts: []entity.Concept{concept("1", "10")}, discount: "-1"},
		{
			name: "line discount above amount",
			concepts: []entity.Concept{{
				Quantity:  d("1"),
				UnitValue: d("10"),
				Discount:  d("11"),
			}},
			discount: "0",
		},
		{
			name: "negative rate",
			concepts: []entity.Concept{concept("1", "10", entity.TaxRule{
				Code: "002",
				Rate: d("-0.16"),
			})},
			discount: "0",
		},
	} {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := tax.Compute(tt.concepts, d(tt.discount), 2)
			require.ErrorIs(t, err, entity.ErrValidation)
		})
	}
}

func TestCompute_TotalsReconcile(t *testing.T) {
	t.Parallel()

	rnd := rand.New(rand.NewSource(42)) //nolint:gosec

	for n := 0; n < 500; n++ {
		lines := rnd.Intn(8) + 1
		concepts := make([]entity.Concept, 0, lines)

		for i := 0; i < lines; i++ {
			c := concept(
				decimal.New(rnd.Int63n(5000)+1, -2).String(),
				decimal.New(rnd.Int63n(1_000_000)+1, -3).String(),
				iva16,
			)

			if rnd.Intn(3) == 0 {
				c.Taxes = append(c.Taxes, isr10)
			}

			concepts = append(concepts, c)
		}

		res, err := tax.Compute(concepts, decimal.Zero, 2)
		require.NoError(t, err)

		lineSum := decimal.Zero
		for _, c := range res.Concepts {
			lineSum = lineSum.Add(c.Amount)
		}

		require.True(t, res.Subtotal.Sub(res.Discount).Equal(lineSum))
		require.True(t, res.Total.Equal(res.Subtotal.Sub(res.Discount).Add(res.TaxesTransferred).Sub(res.TaxesWithheld)))

		// A discount drawn from the net amount must be fully distributed.
		discount := decimal.New(rnd.Int63n(lineSum.Shift(2).IntPart()+1), -2)

		res, err = tax.Compute(concepts, discount, 2)
		require.NoError(t, err)
		require.True(t, res.Discount.Equal(discount), "discount %s, got %s", discount, res.Discount)

		for _, c := range res.Concepts {
			require.False(t, c.Amount.IsNegative())
		}
	}
}

func TestResult_Negate(t *testing.T) {
	t.Parallel()

	res, err := tax.Compute([]entity.Concept{concept("1", "1000", iva16)}, decimal.Zero, 2)
	require.NoError(t, err)

	neg := res.Negate()
	requireDecimal(t, "-1160", neg.Total)
	requireDecimal(t, "-160", neg.TaxesTransferred)
	requireDecimal(t, "-1000", neg.Concepts[0].Amount)
	requireDecimal(t, "-160", neg.Concepts[0].TaxLines[0].Amount)
	require.True(t, neg.Total.Equal(neg.Subtotal.Sub(neg.Discount).Add(neg.TaxesTransferred).Sub(neg.TaxesWithheld)))

	// The original result stays untouched.
	requireDecimal(t, "1160", res.Total)
}
