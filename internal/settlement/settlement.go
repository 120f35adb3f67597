// Package settlement runs purchases: pay for a listing, redeem the content
// key, and download the plaintext. Payment and key redemption are separate
// external effects, so the package keeps an in-memory receipt for every
// purchase in flight; a receipt whose key redemption failed can be retried
// without ever paying twice.
package settlement

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/metanet-market/marketd/internal/adapter"
	"github.com/metanet-market/marketd/internal/codec"
	"github.com/metanet-market/marketd/internal/domain"
	"github.com/metanet-market/marketd/internal/logger"
	"github.com/metanet-market/marketd/internal/messaging"
	"github.com/metanet-market/marketd/internal/providers/keyserver"
	"github.com/metanet-market/marketd/internal/providers/storage"
	"github.com/metanet-market/marketd/internal/providers/wallet"
	"github.com/metanet-market/marketd/internal/token"
)

// Receipt tracks one purchase in flight. Receipts live only in memory; a
// completed download destroys its receipt.
type Receipt struct {
	ID    string
	Token *token.ListingToken
	Buyer domain.PublicKeyID

	// Proof is retained so key redemption can be retried without a second
	// payment broadcast.
	Proof *domain.PaymentProof

	// Capability is nil until the key server releases the content key
	Capability *domain.Capability
}

// Settler runs purchases end to end
//
//go:generate mockgen -source=settlement.go -destination=../mocks/settler.go -package=mocks -mock_names=Settler=MockSettler
type Settler interface {
	// Purchase pays for a listing and redeems its content key. When payment
	// succeeds but the key server has not released the key, the receipt is
	// returned alongside a PendingKeyExchange error; retry with
	// RetryCapability, never by calling Purchase again.
	Purchase(ctx context.Context, tok *token.ListingToken, buyer domain.PublicKeyID) (*Receipt, error)

	// RetryCapability re-requests the content key for a pending receipt
	// using the retained payment proof.
	RetryCapability(ctx context.Context, receiptID string) (*Receipt, error)

	// Download fetches, decrypts and verifies the purchased content, then
	// destroys the receipt.
	Download(ctx context.Context, receiptID string) ([]byte, error)

	// Abandon discards a receipt without downloading
	Abandon(receiptID string)
}

type service struct {
	wallet wallet.Client
	store  storage.Client
	keys   keyserver.Client
	cipher adapter.SymmetricCipher
	clock  adapter.Clock
	events messaging.Publisher

	mu       sync.Mutex
	receipts map[string]*Receipt
}

// NewService creates a settler. events may be nil when no broker is
// configured.
func NewService(
	walletClient wallet.Client,
	store storage.Client,
	keys keyserver.Client,
	cipher adapter.SymmetricCipher,
	clock adapter.Clock,
	events messaging.Publisher,
) Settler {
	return &service{
		wallet:   walletClient,
		store:    store,
		keys:     keys,
		cipher:   cipher,
		clock:    clock,
		events:   events,
		receipts: make(map[string]*Receipt),
	}
}

// Purchase pays for a listing and redeems its content key
func (s *service) Purchase(ctx context.Context, tok *token.ListingToken, buyer domain.PublicKeyID) (*Receipt, error) {
	if !buyer.Valid() {
		return nil, domain.Errorf(domain.ErrInvalidInput, "gate", "buyer identity %q is not a valid key", buyer)
	}

	// Gate before any payment effect: a token past its deadline or already
	// taken is refused outright, nothing is broadcast.
	now := s.clock.Now()
	if now.After(tok.RetentionDeadline()) {
		// Record what the clock proved; the marking is a cache update, the
		// refusal stands either way.
		_ = tok.MarkExpired(now)
		return nil, domain.Errorf(domain.ErrAlreadyUnavailable, "gate", "listing %s expired at %s", tok.Outpoint(), tok.RetentionDeadline())
	}
	if tok.State() != token.StateActive {
		return nil, domain.Errorf(domain.ErrAlreadyUnavailable, "gate", "listing %s is %s", tok.Outpoint(), tok.State())
	}
	// A summary-decoded token carries no file locator, so its purchase could
	// never settle; refuse before any money moves.
	if _, err := fileLocator(tok); err != nil {
		return nil, err
	}

	tx, proof, err := s.wallet.BuildPayment(ctx, tok.Satoshis(), buyer, tok.Outpoint())
	if err != nil {
		return nil, domain.NewError(domain.ErrPayment, "build-payment", err)
	}
	if _, err := s.wallet.Broadcast(ctx, tx); err != nil {
		return nil, domain.NewError(domain.ErrPayment, "broadcast-payment", err)
	}

	receipt := &Receipt{
		ID:    uuid.NewString(),
		Token: tok,
		Buyer: buyer,
		Proof: proof,
	}
	s.put(receipt)

	logger.InfoCtx(ctx, "Payment broadcast",
		zap.String("receipt", receipt.ID),
		zap.String("outpoint", tok.Outpoint().String()),
		zap.Int64("satoshis", tok.Satoshis()),
	)

	if err := s.redeem(ctx, receipt); err != nil {
		// Payment is committed; the receipt survives so the caller retries
		// the key exchange only.
		return receipt, err
	}

	return receipt, nil
}

// RetryCapability re-requests the content key for a pending receipt
func (s *service) RetryCapability(ctx context.Context, receiptID string) (*Receipt, error) {
	receipt, ok := s.get(receiptID)
	if !ok {
		return nil, domain.Errorf(domain.ErrInvalidInput, "retry-capability", "unknown receipt %s", receiptID)
	}
	if receipt.Capability != nil {
		return receipt, nil
	}

	if err := s.redeem(ctx, receipt); err != nil {
		return receipt, err
	}
	return receipt, nil
}

// redeem requests the capability and, once held, marks the token purchased.
// Payment strictly precedes this; MarkPurchased strictly follows it.
func (s *service) redeem(ctx context.Context, receipt *Receipt) error {
	locator, err := fileLocator(receipt.Token)
	if err != nil {
		return err
	}

	capability, err := s.keys.RequestCapability(ctx, locator, receipt.Proof)
	if err != nil {
		return err
	}
	receipt.Capability = capability

	if err := receipt.Token.MarkPurchased(receipt.Buyer); err != nil {
		return err
	}

	s.emit(ctx, domain.EventListingPurchased, receipt.Token)

	logger.InfoCtx(ctx, "Purchase settled",
		zap.String("receipt", receipt.ID),
		zap.String("outpoint", receipt.Token.Outpoint().String()),
	)

	return nil
}

// Download fetches, decrypts and verifies the purchased content
func (s *service) Download(ctx context.Context, receiptID string) ([]byte, error) {
	receipt, ok := s.get(receiptID)
	if !ok {
		return nil, domain.Errorf(domain.ErrInvalidInput, "download", "unknown receipt %s", receiptID)
	}
	if receipt.Capability == nil {
		return nil, domain.Errorf(domain.ErrPendingKeyExchange, "download", "receipt %s holds no capability yet", receiptID)
	}

	locator, err := fileLocator(receipt.Token)
	if err != nil {
		return nil, err
	}

	sealed, err := s.store.Download(ctx, locator)
	if err != nil {
		return nil, domain.NewError(domain.ErrIntegrity, "fetch", err)
	}

	plaintext, err := s.cipher.Decrypt(receipt.Capability.Key, sealed)
	if err != nil {
		return nil, domain.NewError(domain.ErrIntegrity, "decrypt", err)
	}

	if committed, ok := committedSize(receipt.Token); ok && uint64(len(plaintext)) != committed {
		return nil, domain.Errorf(domain.ErrIntegrity, "verify", "decrypted %d bytes, commitment says %d", len(plaintext), committed)
	}

	s.drop(receiptID)

	return plaintext, nil
}

// Abandon discards a receipt without downloading
func (s *service) Abandon(receiptID string) {
	s.drop(receiptID)
}

func (s *service) put(r *Receipt) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.receipts[r.ID] = r
}

func (s *service) get(id string) (*Receipt, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.receipts[id]
	return r, ok
}

func (s *service) drop(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.receipts, id)
}

func (s *service) emit(ctx context.Context, eventType domain.MarketEventType, tok *token.ListingToken) {
	if s.events == nil {
		return
	}

	event := domain.NewMarketEvent(eventType, tok.Outpoint(), s.clock.Now())
	event.Satoshis = tok.Satoshis()

	if err := s.events.PublishEvent(ctx, event); err != nil {
		logger.WarnCtx(ctx, "failed to publish market event",
			zap.String("eventType", string(eventType)),
			zap.Error(err),
		)
	}
}

// fileLocator pulls the encrypted-content locator out of the token fields;
// settlement requires full-schema tokens.
func fileLocator(tok *token.ListingToken) (domain.Locator, error) {
	fv, ok := tok.Field(codec.FieldFileLocator)
	if !ok {
		return "", domain.Errorf(domain.ErrInvalidInput, "fields", "token %s carries no file locator; purchase needs a full listing", tok.Outpoint())
	}
	return fv.Locator, nil
}

func committedSize(tok *token.ListingToken) (uint64, bool) {
	fv, ok := tok.Field(codec.FieldSize)
	if !ok {
		return 0, false
	}
	return fv.Integer, true
}
