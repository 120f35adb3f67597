// Package keyserver is the client for the content-key escrow service.
// Sellers register the symmetric key for a listing before it goes on the
// ledger; buyers redeem the key with proof of payment.
package keyserver

import (
	"context"
	"fmt"
	"net/url"

	"go.uber.org/zap"

	"github.com/metanet-market/marketd/internal/adapter"
	"github.com/metanet-market/marketd/internal/domain"
	"github.com/metanet-market/marketd/internal/logger"
)

// Client defines the key-escrow operations the core depends on
//
//go:generate mockgen -source=client.go -destination=../../mocks/keyserver_client.go -package=mocks -mock_names=Client=MockKeyServerClient
type Client interface {
	// RegisterKey escrows the content key for a locator under the seller's
	// identity. It must succeed before the listing is broadcast.
	RegisterKey(ctx context.Context, locator domain.Locator, seller domain.PublicKeyID, key []byte) error

	// RequestCapability redeems the content key for a purchased listing.
	// Returns domain.ErrPendingKeyExchange when the server has not yet
	// observed the payment; the caller may retry.
	RequestCapability(ctx context.Context, locator domain.Locator, proof *domain.PaymentProof) (*domain.Capability, error)
}

// Config holds the key server endpoint
type Config struct {
	URL string
}

type client struct {
	httpClient adapter.HTTPClient
	cfg        Config
}

// NewClient creates a key server client
func NewClient(httpClient adapter.HTTPClient, cfg Config) Client {
	return &client{
		httpClient: httpClient,
		cfg:        cfg,
	}
}

type registerKeyRequest struct {
	Locator string `json:"locator"`
	Seller  string `json:"seller"`
	Key     []byte `json:"key"`
}

type capabilityRequest struct {
	Locator          string `json:"locator"`
	TxID             string `json:"txid"`
	DerivationPrefix string `json:"derivationPrefix"`
	DerivationSuffix string `json:"derivationSuffix"`
	Amount           int64  `json:"amount"`
	Sender           string `json:"sender"`
}

type capabilityResponse struct {
	Status string `json:"status"`
	Key    []byte `json:"key"`
}

// RegisterKey escrows the content key for a locator
func (c *client) RegisterKey(ctx context.Context, locator domain.Locator, seller domain.PublicKeyID, key []byte) error {
	if len(key) != adapter.ContentKeySize {
		return domain.Errorf(domain.ErrInvalidInput, "register-key", "content key must be %d bytes, got %d", adapter.ContentKeySize, len(key))
	}

	req := registerKeyRequest{
		Locator: string(locator),
		Seller:  string(seller),
		Key:     key,
	}

	endpoint := fmt.Sprintf("%s/v1/keys", c.cfg.URL)
	if err := c.httpClient.PostJSON(ctx, endpoint, req, nil); err != nil {
		return domain.NewError(domain.ErrKeyRegistration, "register-key", err)
	}

	logger.Debug("Registered content key", zap.String("locator", string(locator)))
	return nil
}

// RequestCapability redeems the content key for a purchased listing
func (c *client) RequestCapability(ctx context.Context, locator domain.Locator, proof *domain.PaymentProof) (*domain.Capability, error) {
	req := capabilityRequest{
		Locator:          string(locator),
		TxID:             proof.TxID,
		DerivationPrefix: proof.DerivationPrefix,
		DerivationSuffix: proof.DerivationSuffix,
		Amount:           proof.Amount,
		Sender:           string(proof.SenderID),
	}

	endpoint := fmt.Sprintf("%s/v1/keys/%s/capability", c.cfg.URL, url.PathEscape(string(locator)))

	var resp capabilityResponse
	if err := c.httpClient.PostJSON(ctx, endpoint, req, &resp); err != nil {
		return nil, domain.NewError(domain.ErrPendingKeyExchange, "request-capability", err)
	}

	// Some deployments answer 200 with a pending status while the payment
	// is still propagating.
	if resp.Status == "pending" || len(resp.Key) == 0 {
		return nil, domain.Errorf(domain.ErrPendingKeyExchange, "request-capability", "key for %s not released yet", locator)
	}
	if len(resp.Key) != adapter.ContentKeySize {
		return nil, domain.Errorf(domain.ErrIntegrity, "request-capability", "server released a %d-byte key, expected %d", len(resp.Key), adapter.ContentKeySize)
	}

	return &domain.Capability{Key: resp.Key}, nil
}
