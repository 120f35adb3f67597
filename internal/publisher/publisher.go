// Package publisher turns a seller's file into a live listing: the file is
// encrypted and uploaded, its key escrowed, and a commitment carrying the
// listing fields broadcast to the ledger.
package publisher

import (
	"context"
	"time"

	"github.com/gabriel-vasile/mimetype"
	"go.uber.org/zap"

	"github.com/metanet-market/marketd/internal/adapter"
	"github.com/metanet-market/marketd/internal/codec"
	"github.com/metanet-market/marketd/internal/domain"
	"github.com/metanet-market/marketd/internal/logger"
	"github.com/metanet-market/marketd/internal/messaging"
	"github.com/metanet-market/marketd/internal/providers/keyserver"
	"github.com/metanet-market/marketd/internal/providers/storage"
	"github.com/metanet-market/marketd/internal/providers/wallet"
	"github.com/metanet-market/marketd/internal/registry"
	"github.com/metanet-market/marketd/internal/token"
)

// MaxCoverSize bounds the cover image payload
const MaxCoverSize = 1 << 20

// coverContentTypes are the accepted cover image formats
var coverContentTypes = map[string]bool{
	"image/png":  true,
	"image/jpeg": true,
	"image/webp": true,
}

// PublishRequest carries everything needed to create a listing
type PublishRequest struct {
	// File is the plaintext content being sold
	File []byte

	// Cover is an optional preview image, stored unencrypted
	Cover []byte

	Name        string
	Description string

	// Satoshis is the asking price locked into the commitment output
	Satoshis int64

	// Retention is how long the listing stays purchasable
	Retention time.Duration
}

// Publisher creates listings
//
//go:generate mockgen -source=publisher.go -destination=../mocks/publisher_service.go -package=mocks -mock_names=Publisher=MockListingPublisher
type Publisher interface {
	Publish(ctx context.Context, req PublishRequest) (*token.ListingToken, error)
}

type service struct {
	wallet    wallet.Client
	store     storage.Client
	keys      keyserver.Client
	cipher    adapter.SymmetricCipher
	clock     adapter.Clock
	blacklist registry.BlacklistRegistry
	events    messaging.Publisher
}

// NewService creates a publisher over the injected collaborators. events may
// be nil when no broker is configured.
func NewService(
	walletClient wallet.Client,
	store storage.Client,
	keys keyserver.Client,
	cipher adapter.SymmetricCipher,
	clock adapter.Clock,
	blacklist registry.BlacklistRegistry,
	events messaging.Publisher,
) Publisher {
	return &service{
		wallet:    walletClient,
		store:     store,
		keys:      keys,
		cipher:    cipher,
		clock:     clock,
		blacklist: blacklist,
		events:    events,
	}
}

// validate rejects bad input before any network effect
func (s *service) validate(req PublishRequest) error {
	if len(req.File) == 0 {
		return domain.Errorf(domain.ErrInvalidInput, "validate", "file is empty")
	}
	if req.Name == "" {
		return domain.Errorf(domain.ErrInvalidInput, "validate", "name is required")
	}
	if req.Satoshis <= 0 {
		return domain.Errorf(domain.ErrInvalidInput, "validate", "price must be positive, got %d", req.Satoshis)
	}
	if req.Retention <= 0 {
		return domain.Errorf(domain.ErrInvalidInput, "validate", "retention must be positive, got %s", req.Retention)
	}

	if len(req.Cover) > 0 {
		if len(req.Cover) > MaxCoverSize {
			return domain.Errorf(domain.ErrInvalidInput, "validate", "cover is %d bytes, limit %d", len(req.Cover), MaxCoverSize)
		}
		// Sniff actual content, never trust a declared type
		detected := mimetype.Detect(req.Cover)
		if !coverContentTypes[detected.String()] {
			return domain.Errorf(domain.ErrInvalidInput, "validate", "cover type %s not accepted", detected.String())
		}
	}

	return nil
}

// Publish runs the listing pipeline. Steps are not atomic: uploads are
// content-addressed so a retry re-uploads the same locators, and a broadcast
// failure leaves uploads orphaned but harmless. The content key is escrowed
// before broadcast so a listing can never reach the ledger unsellable.
func (s *service) Publish(ctx context.Context, req PublishRequest) (*token.ListingToken, error) {
	if err := s.validate(req); err != nil {
		return nil, err
	}

	creator, err := s.wallet.Identity(ctx)
	if err != nil {
		return nil, domain.NewError(domain.ErrIdentityUnavailable, "identity", err)
	}
	if s.blacklist != nil && s.blacklist.IsBlacklisted(creator) {
		return nil, domain.Errorf(domain.ErrInvalidInput, "identity", "creator %s is not allowed to publish", creator)
	}

	key, err := s.cipher.GenerateKey()
	if err != nil {
		return nil, domain.NewError(domain.ErrKeyRegistration, "generate-key", err)
	}

	sealed, err := s.cipher.Encrypt(key, req.File)
	if err != nil {
		return nil, domain.NewError(domain.ErrKeyRegistration, "encrypt", err)
	}

	fileLocator, err := s.store.Upload(ctx, sealed, "application/octet-stream")
	if err != nil {
		return nil, domain.NewError(domain.ErrStorageUpload, "upload-file", err)
	}

	var coverLocator domain.Locator
	if len(req.Cover) > 0 {
		coverLocator, err = s.store.Upload(ctx, req.Cover, mimetype.Detect(req.Cover).String())
		if err != nil {
			return nil, domain.NewError(domain.ErrStorageUpload, "upload-cover", err)
		}
	}

	deadline := s.clock.Now().Add(req.Retention).UTC()

	fields := BuildFields(req, creator, fileLocator, coverLocator, deadline)

	payload, err := codec.Encode(fields, codec.FullListingSchema)
	if err != nil {
		return nil, err
	}

	// Escrow before broadcast: if this fails nothing is on the ledger yet
	if err := s.keys.RegisterKey(ctx, fileLocator, creator, key); err != nil {
		return nil, err
	}

	tx, err := s.wallet.BuildCommitment(ctx, payload, req.Satoshis, creator)
	if err != nil {
		return nil, domain.NewError(domain.ErrBroadcast, "build-commitment", err)
	}

	conf, err := s.wallet.Broadcast(ctx, tx)
	if err != nil {
		return nil, domain.NewError(domain.ErrBroadcast, "broadcast", err)
	}

	outpoint := domain.Outpoint{TxID: conf.TxID, OutputIndex: 0}
	tok := token.New(outpoint, fields, codec.FullListingSchema)

	logger.InfoCtx(ctx, "Published listing",
		zap.String("outpoint", outpoint.String()),
		zap.String("name", req.Name),
		zap.Int64("satoshis", req.Satoshis),
		zap.Time("deadline", deadline),
	)

	s.emit(ctx, tok, creator)

	return tok, nil
}

// BuildFields lays out the full-listing field vector for a request
func BuildFields(req PublishRequest, creator domain.PublicKeyID, fileLocator, coverLocator domain.Locator, deadline time.Time) []codec.FieldValue {
	return []codec.FieldValue{
		codec.Text(req.Name),
		codec.Integer(uint64(req.Satoshis)),
		codec.Locator(coverLocator),
		codec.Integer(uint64(deadline.Unix())),
		codec.Locator(fileLocator),
		codec.Text(req.Description),
		codec.PublicKey(creator),
		codec.Integer(uint64(len(req.File))),
	}
}

// emit publishes the market event; failures are logged, never surfaced, the
// listing is already live.
func (s *service) emit(ctx context.Context, tok *token.ListingToken, creator domain.PublicKeyID) {
	if s.events == nil {
		return
	}

	event := domain.NewMarketEvent(domain.EventListingPublished, tok.Outpoint(), s.clock.Now())
	event.Creator = creator
	event.Satoshis = tok.Satoshis()

	if err := s.events.PublishEvent(ctx, event); err != nil {
		logger.WarnCtx(ctx, "failed to publish market event",
			zap.String("eventType", string(event.EventType)),
			zap.Error(err),
		)
	}
}
