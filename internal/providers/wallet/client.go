// Package wallet is the client for the external ledger/identity service: it
// resolves the local identity key, builds and signs transactions, and
// broadcasts them. The core never constructs ledger transactions itself.
package wallet

import (
	"context"
	"fmt"
	"time"

	"github.com/metanet-market/marketd/internal/adapter"
	"github.com/metanet-market/marketd/internal/domain"
)

// Client defines the ledger/wallet operations the core depends on
//
//go:generate mockgen -source=client.go -destination=../../mocks/wallet_client.go -package=mocks -mock_names=Client=MockWalletClient
type Client interface {
	// Identity resolves the wallet owner's public identity key
	Identity(ctx context.Context) (domain.PublicKeyID, error)

	// BuildCommitment builds a signed transaction with one output carrying
	// the commitment payload as a spendable lock to the owner identity
	BuildCommitment(ctx context.Context, payload []byte, satoshis int64, owner domain.PublicKeyID) (*domain.Transaction, error)

	// BuildPayment builds a signed payment of amount satoshis from the buyer
	// to the creator of the referenced listing output
	BuildPayment(ctx context.Context, amount int64, buyer domain.PublicKeyID, listing domain.Outpoint) (*domain.Transaction, *domain.PaymentProof, error)

	// BuildSweep builds a single signed transaction spending every referenced
	// output back to the owner's balance
	BuildSweep(ctx context.Context, refs []domain.Outpoint, owner domain.PublicKeyID) (*domain.Transaction, error)

	// Broadcast submits a transaction to the ledger. The ledger's own
	// double-spend protection resolves races; a losing transaction fails here.
	Broadcast(ctx context.Context, tx *domain.Transaction) (*domain.Confirmation, error)
}

// Config holds the wallet service location
type Config struct {
	URL     string
	Network domain.Network
}

type client struct {
	httpClient adapter.HTTPClient
	baseURL    string
	network    domain.Network
}

// NewClient creates a wallet client against the given service URL
func NewClient(httpClient adapter.HTTPClient, cfg Config) Client {
	return &client{
		httpClient: httpClient,
		baseURL:    cfg.URL,
		network:    cfg.Network,
	}
}

type identityResponse struct {
	PublicKey string `json:"publicKey"`
}

type buildCommitmentRequest struct {
	Network  string `json:"network"`
	Payload  []byte `json:"payload"`
	Satoshis int64  `json:"satoshis"`
	Owner    string `json:"owner"`
}

type buildPaymentRequest struct {
	Network     string `json:"network"`
	Amount      int64  `json:"amount"`
	Buyer       string `json:"buyer"`
	ListingTxID string `json:"listingTxid"`
	ListingVout uint32 `json:"listingOutputIndex"`
}

type buildPaymentResponse struct {
	Transaction      domain.Transaction `json:"transaction"`
	DerivationPrefix string             `json:"derivationPrefix"`
	DerivationSuffix string             `json:"derivationSuffix"`
}

type buildSweepRequest struct {
	Network   string   `json:"network"`
	Owner     string   `json:"owner"`
	Outpoints []string `json:"outpoints"`
}

type broadcastResponse struct {
	TxID       string    `json:"txid"`
	AcceptedAt time.Time `json:"acceptedAt"`
}

// Identity resolves the wallet owner's public identity key
func (c *client) Identity(ctx context.Context) (domain.PublicKeyID, error) {
	var resp identityResponse
	if err := c.httpClient.GetJSON(ctx, c.baseURL+"/v1/identity", &resp); err != nil {
		return "", fmt.Errorf("failed to resolve identity: %w", err)
	}

	key := domain.PublicKeyID(resp.PublicKey)
	if !key.Valid() {
		return "", fmt.Errorf("wallet returned invalid identity key %q", resp.PublicKey)
	}
	return key, nil
}

// BuildCommitment builds a signed commitment-bearing transaction
func (c *client) BuildCommitment(ctx context.Context, payload []byte, satoshis int64, owner domain.PublicKeyID) (*domain.Transaction, error) {
	req := buildCommitmentRequest{
		Network:  string(c.network),
		Payload:  payload,
		Satoshis: satoshis,
		Owner:    string(owner),
	}

	var tx domain.Transaction
	if err := c.httpClient.PostJSON(ctx, c.baseURL+"/v1/transactions/commitment", req, &tx); err != nil {
		return nil, fmt.Errorf("failed to build commitment transaction: %w", err)
	}
	return &tx, nil
}

// BuildPayment builds a signed payment transaction and its proof material
func (c *client) BuildPayment(ctx context.Context, amount int64, buyer domain.PublicKeyID, listing domain.Outpoint) (*domain.Transaction, *domain.PaymentProof, error) {
	req := buildPaymentRequest{
		Network:     string(c.network),
		Amount:      amount,
		Buyer:       string(buyer),
		ListingTxID: listing.TxID,
		ListingVout: listing.OutputIndex,
	}

	var resp buildPaymentResponse
	if err := c.httpClient.PostJSON(ctx, c.baseURL+"/v1/transactions/payment", req, &resp); err != nil {
		return nil, nil, fmt.Errorf("failed to build payment transaction: %w", err)
	}

	proof := &domain.PaymentProof{
		TxID:             resp.Transaction.TxID,
		DerivationPrefix: resp.DerivationPrefix,
		DerivationSuffix: resp.DerivationSuffix,
		Amount:           amount,
		SenderID:         buyer,
	}
	return &resp.Transaction, proof, nil
}

// BuildSweep builds a single transaction reclaiming every referenced output
func (c *client) BuildSweep(ctx context.Context, refs []domain.Outpoint, owner domain.PublicKeyID) (*domain.Transaction, error) {
	req := buildSweepRequest{
		Network: string(c.network),
		Owner:   string(owner),
	}
	for _, ref := range refs {
		req.Outpoints = append(req.Outpoints, ref.String())
	}

	var tx domain.Transaction
	if err := c.httpClient.PostJSON(ctx, c.baseURL+"/v1/transactions/sweep", req, &tx); err != nil {
		return nil, fmt.Errorf("failed to build sweep transaction: %w", err)
	}
	return &tx, nil
}

// Broadcast submits a transaction to the ledger
func (c *client) Broadcast(ctx context.Context, tx *domain.Transaction) (*domain.Confirmation, error) {
	var resp broadcastResponse
	if err := c.httpClient.PostJSON(ctx, c.baseURL+"/v1/transactions/broadcast", tx, &resp); err != nil {
		return nil, fmt.Errorf("failed to broadcast transaction %s: %w", tx.TxID, err)
	}

	return &domain.Confirmation{TxID: resp.TxID, AcceptedAt: resp.AcceptedAt}, nil
}
