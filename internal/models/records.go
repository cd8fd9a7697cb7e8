package models

import (
	"time"
)

// RelationshipType is the provenance of an eviction/property link
type RelationshipType string

const (
	AddressMatch RelationshipType = "ADDRESS_MATCH"
	ManualMatch  RelationshipType = "MANUAL_MATCH"
	ManualReject RelationshipType = "MANUAL_REJECT"
)

// Valid reports whether t is one of the known relationship types
func (t RelationshipType) Valid() bool {
	switch t {
	case AddressMatch, ManualMatch, ManualReject:
		return true
	}
	return false
}

// Manual reports whether rows of this type are operator-authored and reversible
func (t RelationshipType) Manual() bool {
	return t == ManualMatch || t == ManualReject
}

// Verification codes reported alongside suggestions
const (
	VerificationConfirmed  = 0
	VerificationRejected   = 1
	VerificationUnverified = 2
)

// Verification maps a manual relationship type to its verification code
func (t RelationshipType) Verification() int {
	switch t {
	case ManualMatch:
		return VerificationConfirmed
	case ManualReject:
		return VerificationRejected
	}
	return VerificationUnverified
}

// PropertyRecord is one assisted-housing property in the registry
type PropertyRecord struct {
	ID                  int64   `json:"id"`
	Source              string  `json:"source"`
	PropertyName        string  `json:"propertyName"`
	Address             string  `json:"address"`
	City                string  `json:"city"`
	ZipCode             string  `json:"zipCode"`
	StandardizedAddress string  `json:"standardizedAddress,omitempty"`
	Location            *Point  `json:"location,omitempty"`
	EvictionCount       int     `json:"count"`
}

// EvictionRecord is one eviction filing
type EvictionRecord struct {
	CaseID              string     `json:"caseID"`
	FileDate            *time.Time `json:"fileDate,omitempty"`
	Plaintiff           string     `json:"plaintiff"`
	PlaintiffAddress    string     `json:"plaintiffAddress"`
	PlaintiffCity       string     `json:"plaintiffCity"`
	DefendantAddress    string     `json:"defendantAddress"`
	DefendantCity       string     `json:"defendantCity"`
	StandardizedAddress string     `json:"standardizedAddress"`
	Location            *Point     `json:"location,omitempty"`
}

// Relationship links one eviction to one property
type Relationship struct {
	ID         int64            `json:"id"`
	EvictionID string           `json:"evictionId"`
	CaresID    int64            `json:"caresId"`
	Type       RelationshipType `json:"type"`
}
