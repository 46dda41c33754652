package entity

import (
	"github.com/gofrs/uuid/v5"
)

const (
	DefaultSeries           = "A"
	DefaultCreditNoteSeries = "NC"
	DefaultFolioPadding     = 6
)

// TenantConfig is the fiscal configuration of a tenant.
type TenantConfig struct {
	ID               uuid.UUID
	Issuer           Party
	TaxRegime        string
	DefaultCurrency  string
	Series           string
	CreditNoteSeries string
	FolioPadding     int
	DefaultTaxes     []TaxRule
	Credentials      PACCredentials
	Schedule         Schedule
}

// Schedule holds automatic invoicing parameters.
type Schedule struct {
	Enabled             bool
	InvoiceOnCompletion bool
	LookbackDays        int
	PageSize            int
	AutoSend            bool
}

func (c TenantConfig) SeriesFor(t DocumentType) string {
	if t == DocumentTypeCreditNote {
		if c.CreditNoteSeries != "" {
			return c.CreditNoteSeries
		}

		return DefaultCreditNoteSeries
	}

	if c.Series != "" {
		return c.Series
	}

	return DefaultSeries
}

func (c TenantConfig) Padding() int {
	if c.FolioPadding <= 0 {
		return DefaultFolioPadding
	}

	return c.FolioPadding
}
