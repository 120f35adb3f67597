// Package token holds the listing-token entity: one metadata commitment bound
// to one ledger output, with a monotonic lifecycle. In-memory state is a cache
// of ledger truth, always re-derivable through the query index.
package token

import (
	"sync"
	"time"

	"github.com/metanet-market/marketd/internal/codec"
	"github.com/metanet-market/marketd/internal/domain"
)

// State is the lifecycle position of a listing token
type State string

const (
	// StateActive means the listing is purchasable
	StateActive State = "active"
	// StatePurchased means a buyer's payment has settled and the capability
	// was issued
	StatePurchased State = "purchased"
	// StateExpired means the retention deadline elapsed without a purchase
	StateExpired State = "expired"
	// StateSpent means the creator reclaimed the output
	StateSpent State = "spent"
)

// ListingToken pairs a decoded commitment with the ledger output carrying it.
// Constructed only by the commitment publisher and the query index client.
// State transitions are serialized per token; operations on distinct tokens
// are safely concurrent.
type ListingToken struct {
	outpoint domain.Outpoint
	fields   []codec.FieldValue
	schema   codec.Schema
	deadline time.Time

	mu    sync.Mutex
	state State
	buyer domain.PublicKeyID
}

// New builds an Active token from its producing path. The fields must already
// conform to the schema; the retention deadline is read from the committed
// fields when present.
func New(outpoint domain.Outpoint, fields []codec.FieldValue, schema codec.Schema) *ListingToken {
	t := &ListingToken{
		outpoint: outpoint,
		fields:   fields,
		schema:   schema,
		state:    StateActive,
	}
	if i := schema.Index(codec.FieldRetentionDeadline); i >= 0 && i < len(fields) {
		t.deadline = time.Unix(int64(fields[i].Integer), 0).UTC()
	}
	return t
}

// Outpoint returns the immutable (txid, outputIndex) identity
func (t *ListingToken) Outpoint() domain.Outpoint {
	return t.outpoint
}

// Fields returns the decoded commitment fields in schema order
func (t *ListingToken) Fields() []codec.FieldValue {
	return t.fields
}

// Schema returns the schema the fields were decoded against
func (t *ListingToken) Schema() codec.Schema {
	return t.schema
}

// RetentionDeadline is the instant after which an unpurchased listing expires
func (t *ListingToken) RetentionDeadline() time.Time {
	return t.deadline
}

// State returns the current lifecycle position
func (t *ListingToken) State() State {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.state
}

// Buyer returns the purchaser identity once the token is Purchased
func (t *ListingToken) Buyer() domain.PublicKeyID {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.buyer
}

// Field returns the value of a named field and whether the schema carries it
func (t *ListingToken) Field(name string) (codec.FieldValue, bool) {
	i := t.schema.Index(name)
	if i < 0 || i >= len(t.fields) {
		return codec.FieldValue{}, false
	}
	return t.fields[i], true
}

// Satoshis returns the committed price, zero if the schema lacks it
func (t *ListingToken) Satoshis() int64 {
	v, ok := t.Field(codec.FieldSatoshis)
	if !ok {
		return 0
	}
	return int64(v.Integer)
}

// MarkPurchased transitions Active → Purchased. Any other starting state is a
// contract violation and leaves the token unchanged.
func (t *ListingToken) MarkPurchased(buyer domain.PublicKeyID) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.state != StateActive {
		return domain.Errorf(domain.ErrInvalidTransition, "mark_purchased",
			"token %s is %s, not active", t.outpoint, t.state)
	}
	t.state = StatePurchased
	t.buyer = buyer
	return nil
}

// MarkExpired transitions Active → Expired once the deadline has elapsed.
// Calling again on an already-Expired token is a no-op; every other case is a
// contract violation.
func (t *ListingToken) MarkExpired(now time.Time) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if !now.After(t.deadline) {
		return domain.Errorf(domain.ErrInvalidTransition, "mark_expired",
			"token %s deadline %s has not elapsed at %s", t.outpoint, t.deadline.Format(time.RFC3339), now.Format(time.RFC3339))
	}
	switch t.state {
	case StateActive:
		t.state = StateExpired
		return nil
	case StateExpired:
		return nil
	default:
		return domain.Errorf(domain.ErrInvalidTransition, "mark_expired",
			"token %s is %s", t.outpoint, t.state)
	}
}

// MarkSpent transitions Purchased or Expired → Spent, after the reclaim
// transaction confirms. An Active token cannot be spent directly, and a
// second spend is a contract violation.
func (t *ListingToken) MarkSpent() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	switch t.state {
	case StatePurchased, StateExpired:
		t.state = StateSpent
		return nil
	default:
		return domain.Errorf(domain.ErrInvalidTransition, "mark_spent",
			"token %s is %s", t.outpoint, t.state)
	}
}

// MarkSwept transitions Active or Expired → Spent once a sweep transaction
// consuming the output has been broadcast. The Active case is the withdraw
// path, where the creator reclaims live value without waiting for expiry.
func (t *ListingToken) MarkSwept() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	switch t.state {
	case StateActive, StateExpired:
		t.state = StateSpent
		return nil
	default:
		return domain.Errorf(domain.ErrInvalidTransition, "mark_swept",
			"token %s is %s", t.outpoint, t.state)
	}
}
