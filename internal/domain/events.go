package domain

import (
	"crypto/rand"
	"time"

	"github.com/oklog/ulid/v2"
)

// MarketEventType identifies what happened to a listing
type MarketEventType string

const (
	// EventListingPublished fires when a commitment is accepted by the ledger
	EventListingPublished MarketEventType = "listing.published"
	// EventListingPurchased fires when a buyer's payment is broadcast
	EventListingPurchased MarketEventType = "listing.purchased"
	// EventListingExpired fires when a sweep observes a passed deadline
	EventListingExpired MarketEventType = "listing.expired"
	// EventListingSpent fires when a listing output is consumed
	EventListingSpent MarketEventType = "listing.spent"
)

// MarketEvent is the message published to the broker when a listing changes
// state. IDs are ULIDs so consumers can order events without trusting clocks.
type MarketEvent struct {
	ID        string          `json:"id"`
	EventType MarketEventType `json:"event_type"`
	Outpoint  Outpoint        `json:"outpoint"`
	Creator   PublicKeyID     `json:"creator,omitempty"`
	Satoshis  int64           `json:"satoshis,omitempty"`
	Timestamp time.Time       `json:"timestamp"`
}

// NewMarketEvent builds an event with a fresh ULID
func NewMarketEvent(eventType MarketEventType, outpoint Outpoint, now time.Time) *MarketEvent {
	return &MarketEvent{
		ID:        ulid.MustNew(ulid.Timestamp(now), rand.Reader).String(),
		EventType: eventType,
		Outpoint:  outpoint,
		Timestamp: now,
	}
}
