package entity

import (
	"fmt"
	"strings"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"
)

type InvoiceStatus string

const (
	InvoiceStatusDraft     InvoiceStatus = "DRAFT"
	InvoiceStatusPending   InvoiceStatus = "PENDING"
	InvoiceStatusIssued    InvoiceStatus = "ISSUED"
	InvoiceStatusError     InvoiceStatus = "ERROR"
	InvoiceStatusCancelled InvoiceStatus = "CANCELLED"
	InvoiceStatusRefunded  InvoiceStatus = "REFUNDED"
)

func (s InvoiceStatus) Valid() bool {
	switch s {
	case InvoiceStatusDraft, InvoiceStatusPending, InvoiceStatusIssued,
		InvoiceStatusError, InvoiceStatusCancelled, InvoiceStatusRefunded:
		return true
	default:
		return false
	}
}

type DocumentType string

const (
	DocumentTypeIncome     DocumentType = "INCOME"
	DocumentTypeCreditNote DocumentType = "CREDIT_NOTE"
)

func (t DocumentType) Valid() bool {
	return t == DocumentTypeIncome || t == DocumentTypeCreditNote
}

type TaxKind string

const (
	TaxKindTransferred TaxKind = "TRANSFERRED"
	TaxKindWithheld    TaxKind = "WITHHELD"
)

// TaxRule is a tenant supplied tax applied to a concept.
type TaxRule struct {
	Code string          `json:"code"`
	Rate decimal.Decimal `json:"rate"`
	Kind TaxKind         `json:"kind"`
}

// TaxLine is a computed tax of a concept.
type TaxLine struct {
	Code   string          `json:"code"`
	Kind   TaxKind         `json:"kind"`
	Rate   decimal.Decimal `json:"rate"`
	Base   decimal.Decimal `json:"base"`
	Amount decimal.Decimal `json:"amount"`
}

// Concept is an invoice line item. Amount is quantity × unit value minus discount.
type Concept struct {
	ProductCode string          `json:"productCode"`
	Description string          `json:"description"`
	Unit        string          `json:"unit"`
	Quantity    decimal.Decimal `json:"quantity"`
	UnitValue   decimal.Decimal `json:"unitValue"`
	Discount    decimal.Decimal `json:"discount"`
	Taxes       []TaxRule       `json:"taxes"`
	Amount      decimal.Decimal `json:"amount"`
	TaxLines    []TaxLine       `json:"taxLines"`
}

// Party is an issuer or recipient snapshot taken at emission.
type Party struct {
	TaxID      string `json:"taxId"`
	Name       string `json:"name"`
	TaxRegime  string `json:"taxRegime"`
	PostalCode string `json:"postalCode"`
	Email      string `json:"email,omitempty"`
}

func (p Party) validate(role string) error {
	var missing []string

	if strings.TrimSpace(p.TaxID) == "" {
		missing = append(missing, "tax id")
	}

	if strings.TrimSpace(p.Name) == "" {
		missing = append(missing, "name")
	}

	if strings.TrimSpace(p.PostalCode) == "" {
		missing = append(missing, "postal code")
	}

	if len(missing) > 0 {
		return fmt.Errorf("%w: %s %s is required", ErrValidation, role, strings.Join(missing, ", "))
	}

	return nil
}

// Certification is the payload returned by the certification authority.
type Certification struct {
	ExternalID         string           `json:"externalId,omitempty"`
	IssuerSignature    string           `json:"issuerSignature,omitempty"`
	AuthoritySignature string           `json:"authoritySignature,omitempty"`
	VerificationCode   string           `json:"verificationCode,omitempty"`
	CertifiedAt        time.Time        `json:"certifiedAt,omitempty"`
	Metadata           ProviderMetadata `json:"metadata"`
	Artifacts          ArtifactKeys     `json:"artifacts"`
}

// ArtifactKeys references stored fiscal artifacts.
type ArtifactKeys struct {
	SignedDocument string `json:"signedDocument,omitempty"`
	Rendering      string `json:"rendering,omitempty"`
}

type Invoice struct {
	ID                    uuid.UUID
	TenantID              uuid.UUID
	OrderID               uuid.UUID
	RelatedInvoiceID      uuid.UUID // credit notes only
	RelatedExternalID     string
	Series                string
	FolioNumber           int64 // 0 until allocated
	Folio                 string
	DocumentType          DocumentType
	Status                InvoiceStatus
	Currency              string
	ExchangeRate          decimal.Decimal
	Subtotal              decimal.Decimal
	Discount              decimal.Decimal
	TaxesTransferred      decimal.Decimal
	TaxesWithheld         decimal.Decimal
	Total                 decimal.Decimal
	TotalInTenantCurrency decimal.Decimal
	Issuer                Party
	Recipient             Party
	Concepts              []Concept
	Certification         Certification
	Automatic             bool
	Attempts              int
	Retryable             bool
	ErrorCode             string
	ErrorDetail           string
	CancelReason          string
	CreatedBy             string
	CreatedAt             time.Time
	UpdatedAt             time.Time
	IssuedAt              time.Time
	CancelledAt           time.Time
	RefundedAt            time.Time
}

// Validate checks the structure required before a document leaves Draft.
func (i Invoice) Validate() error {
	if len(i.Concepts) == 0 {
		return fmt.Errorf("%w: invoice has no concepts", ErrValidation)
	}

	if !i.Total.IsPositive() {
		return fmt.Errorf("%w: invoice total %s must be positive", ErrValidation, i.Total)
	}

	if !i.DocumentType.Valid() {
		return fmt.Errorf("%w: unknown document type %q", ErrValidation, i.DocumentType)
	}

	if i.DocumentType == DocumentTypeCreditNote && i.RelatedInvoiceID.IsNil() {
		return fmt.Errorf("%w: credit note must reference an invoice", ErrValidation)
	}

	if len(i.Currency) != 3 {
		return fmt.Errorf("%w: invalid currency %q", ErrValidation, i.Currency)
	}

	if !i.ExchangeRate.IsPositive() {
		return fmt.Errorf("%w: exchange rate must be positive", ErrValidation)
	}

	if strings.TrimSpace(i.Series) == "" {
		return fmt.Errorf("%w: series is required", ErrValidation)
	}

	err := i.Issuer.validate("issuer")
	if err != nil {
		return err
	}

	return i.Recipient.validate("recipient")
}

// Sign returns the amount with the document direction applied.
func (i Invoice) Sign(amount decimal.Decimal) decimal.Decimal {
	if i.DocumentType == DocumentTypeCreditNote {
		return amount.Neg()
	}

	return amount
}

// SignedTotal is the grand total with credit notes counted as negative.
func (i Invoice) SignedTotal() decimal.Decimal {
	return i.Sign(i.Total)
}

type InvoiceFilter struct {
	Status *InvoiceStatus
	From   *time.Time
	To     *time.Time
	Page   uint64
	Limit  uint64
}

type CancelReason string

const (
	CancelReasonErrorsWithRelation    CancelReason = "01"
	CancelReasonErrorsWithoutRelation CancelReason = "02"
	CancelReasonNotCarriedOut         CancelReason = "03"
	CancelReasonNominativeOperation   CancelReason = "04"
)

type CancelRequest struct {
	Reason        CancelReason
	ReplacementID string
}

func (r CancelRequest) Validate() error {
	switch r.Reason {
	case CancelReasonErrorsWithRelation:
		if r.ReplacementID == "" {
			return fmt.Errorf("%w: reason %s requires a replacement id", ErrValidation, r.Reason)
		}
	case CancelReasonErrorsWithoutRelation, CancelReasonNotCarriedOut, CancelReasonNominativeOperation:
	default:
		return fmt.Errorf("%w: unknown cancel reason %q", ErrValidation, r.Reason)
	}

	return nil
}
