package entity

import (
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"
)

type OrderCompletionStatus string

const (
	OrderCompletionStatusOpen      OrderCompletionStatus = "OPEN"
	OrderCompletionStatusCompleted OrderCompletionStatus = "COMPLETED"
	OrderCompletionStatusCancelled OrderCompletionStatus = "CANCELLED"
)

// Order is the read model of an order owned by the order management service.
type Order struct {
	ID               uuid.UUID
	TenantID         uuid.UUID
	Number           string
	Amount           decimal.Decimal // before taxes
	Currency         string
	CompletionStatus OrderCompletionStatus
	CompletionDate   time.Time
	Invoiced         bool
	Customer         Party
	Lines            []OrderLine
}

type OrderLine struct {
	ProductCode string
	Description string
	Unit        string
	Quantity    decimal.Decimal
	UnitValue   decimal.Decimal
	Discount    decimal.Decimal
}

const (
	DefaultProductCode = "01010101"
	DefaultUnit        = "E48"
)

// Concepts converts order lines into invoice concepts taxed with the given rules.
// An order without lines becomes one concept for its whole amount.
func (o Order) Concepts(taxes []TaxRule) []Concept {
	if len(o.Lines) == 0 {
		return []Concept{{
			ProductCode: DefaultProductCode,
			Description: "Order " + o.Number,
			Unit:        DefaultUnit,
			Quantity:    decimal.NewFromInt(1),
			UnitValue:   o.Amount,
			Discount:    decimal.Zero,
			Taxes:       taxes,
		}}
	}

	concepts := make([]Concept, 0, len(o.Lines))

	for _, l := range o.Lines {
		c := Concept{
			ProductCode: l.ProductCode,
			Description: l.Description,
			Unit:        l.Unit,
			Quantity:    l.Quantity,
			UnitValue:   l.UnitValue,
			Discount:    l.Discount,
			Taxes:       taxes,
		}

		if c.ProductCode == "" {
			c.ProductCode = DefaultProductCode
		}

		if c.Unit == "" {
			c.Unit = DefaultUnit
		}

		concepts = append(concepts, c)
	}

	return concepts
}

type OrderFilter struct {
	From        time.Time
	To          time.Time
	Status      OrderCompletionStatus
	NotInvoiced bool
	Limit       int
	Cursor      string
}

type OrderPage struct {
	Orders     []Order
	NextCursor string
}
