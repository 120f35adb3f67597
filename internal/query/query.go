// Package query materializes listing tokens from the index. The index is
// consulted but never trusted: every record is re-decoded strictly, and
// records that fail to decode are dropped rather than surfaced.
package query

import (
	"context"

	"go.uber.org/zap"

	"github.com/metanet-market/marketd/internal/codec"
	"github.com/metanet-market/marketd/internal/domain"
	"github.com/metanet-market/marketd/internal/logger"
	"github.com/metanet-market/marketd/internal/providers/overlay"
	"github.com/metanet-market/marketd/internal/registry"
	"github.com/metanet-market/marketd/internal/token"
)

// Predicate selects listings. Zero-value members are unconstrained.
type Predicate struct {
	// Creator restricts to listings committed by one identity
	Creator domain.PublicKeyID

	// Outpoint restricts to the listing on one ledger output
	Outpoint domain.Outpoint

	// Text is a free-text match over committed names and descriptions
	Text string

	// Limit caps the result count; 0 means the index default
	Limit int
}

// Client searches the index for listing tokens
//
//go:generate mockgen -source=query.go -destination=../mocks/query_client.go -package=mocks -mock_names=Client=MockQueryClient
type Client interface {
	// Search runs a predicate and decodes matches against the given schema.
	// Malformed records are dropped; index order is preserved; an empty
	// result is success.
	Search(ctx context.Context, pred Predicate, schema codec.Schema) ([]*token.ListingToken, error)

	// ByCreator returns all of one creator's listings against the full schema
	ByCreator(ctx context.Context, creator domain.PublicKeyID) ([]*token.ListingToken, error)

	// ByOutpoint returns the listing on one ledger output against the full
	// schema, or nil when the index does not know it.
	ByOutpoint(ctx context.Context, outpoint domain.Outpoint) (*token.ListingToken, error)
}

type service struct {
	indexer   overlay.Client
	blacklist registry.BlacklistRegistry
}

// NewService creates a query client over the index
func NewService(indexer overlay.Client, blacklist registry.BlacklistRegistry) Client {
	return &service{
		indexer:   indexer,
		blacklist: blacklist,
	}
}

// Search runs a predicate against the index
func (s *service) Search(ctx context.Context, pred Predicate, schema codec.Schema) ([]*token.ListingToken, error) {
	var outpoint string
	if pred.Outpoint.Valid() {
		outpoint = pred.Outpoint.String()
	}

	evidence, err := s.indexer.Lookup(ctx, overlay.Query{
		Creator:  pred.Creator,
		Outpoint: outpoint,
		Text:     pred.Text,
		Limit:    pred.Limit,
	})
	if err != nil {
		return nil, err
	}

	tokens := make([]*token.ListingToken, 0, len(evidence))
	for _, ev := range evidence {
		fields, err := codec.Decode(ev.RawBytes, schema)
		if err != nil {
			// A garbled commitment is the committer's problem, not the
			// caller's; drop it and keep the rest of the page.
			logger.WarnCtx(ctx, "dropping malformed commitment",
				zap.String("outpoint", ev.Outpoint().String()),
				zap.Int("bytes", len(ev.RawBytes)),
				zap.Error(err),
			)
			continue
		}

		if s.isBlacklisted(fields, schema) {
			continue
		}

		tokens = append(tokens, token.New(ev.Outpoint(), fields, schema))
	}

	return tokens, nil
}

// ByCreator returns all of one creator's listings against the full schema
func (s *service) ByCreator(ctx context.Context, creator domain.PublicKeyID) ([]*token.ListingToken, error) {
	return s.Search(ctx, Predicate{Creator: creator}, codec.FullListingSchema)
}

// ByOutpoint returns the listing on one ledger output, or nil when unknown
func (s *service) ByOutpoint(ctx context.Context, outpoint domain.Outpoint) (*token.ListingToken, error) {
	tokens, err := s.Search(ctx, Predicate{Outpoint: outpoint, Limit: 1}, codec.FullListingSchema)
	if err != nil {
		return nil, err
	}
	if len(tokens) == 0 {
		return nil, nil
	}
	return tokens[0], nil
}

// isBlacklisted drops listings by banned creators. Summary records do not
// carry the creator key, so the filter only applies to full-schema decodes.
func (s *service) isBlacklisted(fields []codec.FieldValue, schema codec.Schema) bool {
	if s.blacklist == nil {
		return false
	}
	idx := schema.Index(codec.FieldCreatorPublicKey)
	if idx < 0 || idx >= len(fields) {
		return false
	}
	return s.blacklist.IsBlacklisted(fields[idx].PubKey)
}
