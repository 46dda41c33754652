package entity

import (
	"time"
)

// CertificationResult is the outcome of a certification gateway call.
type CertificationResult struct {
	Success            bool
	ExternalID         string
	Status             string
	SignedDocument     []byte
	Rendering          []byte
	VerificationCode   string
	IssuerSignature    string
	AuthoritySignature string
	CertifiedAt        time.Time
	Metadata           ProviderMetadata
	ErrorCode          string
	ErrorMessage       string
}

// ProviderMetadata holds provider fields known to the service plus an extension map
// for anything a provider adds later.
type ProviderMetadata struct {
	Provider                   string            `json:"provider,omitempty"`
	CertificateNumber          string            `json:"certificateNumber,omitempty"`
	AuthorityCertificateNumber string            `json:"authorityCertificateNumber,omitempty"`
	StampVersion               string            `json:"stampVersion,omitempty"`
	Extensions                 map[string]string `json:"extensions,omitempty"`
}

// PACCredentials identify a tenant at the certification provider.
type PACCredentials struct {
	ClientID     string `json:"clientId"`
	ClientSecret string `json:"clientSecret"`
}

type AccessToken struct {
	Value     string
	ExpiresAt time.Time
}

// ArtifactLinks are short lived download links of stored artifacts.
type ArtifactLinks struct {
	SignedDocument string `json:"signedDocument,omitempty"`
	Rendering      string `json:"rendering,omitempty"`
}
