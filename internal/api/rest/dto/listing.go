// Package dto carries the REST wire shapes and their mappings from core
// types. Handlers never hand core entities to the JSON encoder directly.
package dto

import (
	"time"

	"github.com/metanet-market/marketd/internal/codec"
	"github.com/metanet-market/marketd/internal/token"
)

// ListingSummary is the browse-page shape, built from summary-schema decodes
type ListingSummary struct {
	Outpoint          string    `json:"outpoint"`
	Name              string    `json:"name"`
	Satoshis          int64     `json:"satoshis"`
	CoverLocator      string    `json:"cover_locator,omitempty"`
	RetentionDeadline time.Time `json:"retention_deadline"`
	State             string    `json:"state"`
}

// ListingDetail is the details-page shape, built from full-schema decodes
type ListingDetail struct {
	ListingSummary
	FileLocator string `json:"file_locator"`
	Description string `json:"description,omitempty"`
	Creator     string `json:"creator"`
	Size        uint64 `json:"size"`
}

// PublishResponse confirms a new listing
type PublishResponse struct {
	Listing ListingDetail `json:"listing"`
}

// PurchaseStatus reports how far a purchase got
type PurchaseStatus string

const (
	// PurchaseSettled means the capability is held and download may proceed
	PurchaseSettled PurchaseStatus = "settled"
	// PurchasePending means payment is committed but the key is not yet
	// released; retry the capability with the receipt id.
	PurchasePending PurchaseStatus = "pending_key_exchange"
)

// PurchaseResponse carries the receipt for a purchase in flight
type PurchaseResponse struct {
	ReceiptID string         `json:"receipt_id"`
	Status    PurchaseStatus `json:"status"`
	Outpoint  string         `json:"outpoint"`
}

// SnapshotResponse is the account view
type SnapshotResponse struct {
	Creator string          `json:"creator"`
	Balance int64           `json:"balance"`
	Active  []ListingDetail `json:"active"`
	Expired []ListingDetail `json:"expired"`
}

// WithdrawResponse confirms a sweep
type WithdrawResponse struct {
	TxID       string    `json:"txid"`
	AcceptedAt time.Time `json:"accepted_at"`
}

// SummaryFromToken maps a token onto the browse shape
func SummaryFromToken(tok *token.ListingToken) ListingSummary {
	s := ListingSummary{
		Outpoint:          tok.Outpoint().String(),
		Satoshis:          tok.Satoshis(),
		RetentionDeadline: tok.RetentionDeadline(),
		State:             string(tok.State()),
	}
	if v, ok := tok.Field(codec.FieldName); ok {
		s.Name = v.Text
	}
	if v, ok := tok.Field(codec.FieldCoverLocator); ok {
		s.CoverLocator = string(v.Locator)
	}
	return s
}

// DetailFromToken maps a full-schema token onto the details shape
func DetailFromToken(tok *token.ListingToken) ListingDetail {
	d := ListingDetail{
		ListingSummary: SummaryFromToken(tok),
	}
	if v, ok := tok.Field(codec.FieldFileLocator); ok {
		d.FileLocator = string(v.Locator)
	}
	if v, ok := tok.Field(codec.FieldDescription); ok {
		d.Description = v.Text
	}
	if v, ok := tok.Field(codec.FieldCreatorPublicKey); ok {
		d.Creator = string(v.PubKey)
	}
	if v, ok := tok.Field(codec.FieldSize); ok {
		d.Size = v.Integer
	}
	return d
}

// DetailsFromTokens maps a token slice, preserving order
func DetailsFromTokens(tokens []*token.ListingToken) []ListingDetail {
	out := make([]ListingDetail, 0, len(tokens))
	for _, tok := range tokens {
		out = append(out, DetailFromToken(tok))
	}
	return out
}

// SummariesFromTokens maps a token slice, preserving order
func SummariesFromTokens(tokens []*token.ListingToken) []ListingSummary {
	out := make([]ListingSummary, 0, len(tokens))
	for _, tok := range tokens {
		out = append(out, SummaryFromToken(tok))
	}
	return out
}
