// Package overlay is the client for the query index service. The index
// answers lookups with raw commitment evidence; it is consulted, never
// trusted, so callers re-decode every record strictly.
package overlay

import (
	"context"
	"encoding/hex"
	"fmt"

	"go.uber.org/zap"

	"github.com/metanet-market/marketd/internal/adapter"
	"github.com/metanet-market/marketd/internal/domain"
	"github.com/metanet-market/marketd/internal/logger"
)

// Query selects commitment records from the index. Zero-value fields are
// unconstrained.
type Query struct {
	// Creator restricts results to a single seller identity
	Creator domain.PublicKeyID

	// Outpoint restricts results to one ledger output ("txid.vout")
	Outpoint string

	// Text is a free-text filter over committed names and descriptions
	Text string

	// Limit caps the result count; 0 means the server default
	Limit int
}

// Client defines the index lookups the core depends on
//
//go:generate mockgen -source=client.go -destination=../../mocks/overlay_client.go -package=mocks -mock_names=Client=MockOverlayClient
type Client interface {
	// Lookup runs a query and returns the raw evidence records it matched
	Lookup(ctx context.Context, q Query) ([]domain.RawEvidence, error)
}

// Config holds the index endpoint and the service to address queries to
type Config struct {
	URL     string
	Service string
}

type client struct {
	httpClient adapter.HTTPClient
	cfg        Config
}

// NewClient creates a query index client
func NewClient(httpClient adapter.HTTPClient, cfg Config) Client {
	return &client{
		httpClient: httpClient,
		cfg:        cfg,
	}
}

type lookupRequest struct {
	Service string      `json:"service"`
	Query   lookupQuery `json:"query"`
}

type lookupQuery struct {
	Creator  string `json:"creator,omitempty"`
	Outpoint string `json:"outpoint,omitempty"`
	Text     string `json:"text,omitempty"`
	Limit    int    `json:"limit,omitempty"`
}

type lookupResponse struct {
	Outputs []lookupOutput `json:"outputs"`
}

type lookupOutput struct {
	TxID        string `json:"txid"`
	OutputIndex uint32 `json:"outputIndex"`
	Script      string `json:"script"`
}

// Lookup runs a query against the index service
func (c *client) Lookup(ctx context.Context, q Query) ([]domain.RawEvidence, error) {
	req := lookupRequest{
		Service: c.cfg.Service,
		Query: lookupQuery{
			Creator:  string(q.Creator),
			Outpoint: q.Outpoint,
			Text:     q.Text,
			Limit:    q.Limit,
		},
	}

	endpoint := fmt.Sprintf("%s/v1/lookup", c.cfg.URL)

	var resp lookupResponse
	if err := c.httpClient.PostJSON(ctx, endpoint, req, &resp); err != nil {
		return nil, domain.NewError(domain.ErrQuery, "lookup", err)
	}

	evidence := make([]domain.RawEvidence, 0, len(resp.Outputs))
	for _, out := range resp.Outputs {
		raw, err := hex.DecodeString(out.Script)
		if err != nil {
			// An undecodable record is the index's defect, not a query
			// failure; skip it and keep the rest of the page.
			logger.Warn("index returned non-hex script",
				zap.String("txid", out.TxID),
				zap.Uint32("outputIndex", out.OutputIndex),
			)
			continue
		}

		evidence = append(evidence, domain.RawEvidence{
			TxID:        out.TxID,
			OutputIndex: out.OutputIndex,
			RawBytes:    raw,
		})
	}

	logger.Debug("Index lookup",
		zap.String("service", c.cfg.Service),
		zap.Int("records", len(evidence)),
	)

	return evidence, nil
}
