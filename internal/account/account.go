// Package account is the creator's view of their own listings. Nothing is
// stored: every snapshot is recomputed from the index, and value only moves
// by sweeping listing outputs back to the creator on the ledger.
package account

import (
	"context"

	"go.uber.org/zap"

	"github.com/metanet-market/marketd/internal/adapter"
	"github.com/metanet-market/marketd/internal/codec"
	"github.com/metanet-market/marketd/internal/domain"
	"github.com/metanet-market/marketd/internal/logger"
	"github.com/metanet-market/marketd/internal/messaging"
	"github.com/metanet-market/marketd/internal/providers/wallet"
	"github.com/metanet-market/marketd/internal/query"
	"github.com/metanet-market/marketd/internal/token"
)

// Snapshot is a point-in-time partition of a creator's listings. It is a
// recomputation, never a stored balance.
type Snapshot struct {
	Creator domain.PublicKeyID

	// Balance is the total value still locked in live listing outputs
	Balance int64

	Active  []*token.ListingToken
	Expired []*token.ListingToken
}

// View exposes the creator account operations
//
//go:generate mockgen -source=account.go -destination=../mocks/account_view.go -package=mocks -mock_names=View=MockAccountView
type View interface {
	// Snapshot recomputes the creator's listing partition from the index
	Snapshot(ctx context.Context, creator domain.PublicKeyID) (*Snapshot, error)

	// Withdraw sweeps the value of the creator's live listings back to them
	// in a single transaction and marks each included token spent.
	Withdraw(ctx context.Context, creator domain.PublicKeyID) (*domain.Confirmation, error)

	// RemoveExpired reclaims one expired listing output, freeing its index
	// entry. Expired outputs carry no withdrawable value.
	RemoveExpired(ctx context.Context, tok *token.ListingToken) error
}

type service struct {
	wallet wallet.Client
	query  query.Client
	clock  adapter.Clock
	events messaging.Publisher
}

// NewService creates the account view. events may be nil when no broker is
// configured.
func NewService(walletClient wallet.Client, queryClient query.Client, clock adapter.Clock, events messaging.Publisher) View {
	return &service{
		wallet: walletClient,
		query:  queryClient,
		clock:  clock,
		events: events,
	}
}

// Snapshot recomputes the creator's listing partition from the index
func (s *service) Snapshot(ctx context.Context, creator domain.PublicKeyID) (*Snapshot, error) {
	if !creator.Valid() {
		return nil, domain.Errorf(domain.ErrInvalidInput, "snapshot", "creator identity %q is not a valid key", creator)
	}

	tokens, err := s.query.ByCreator(ctx, creator)
	if err != nil {
		return nil, err
	}

	snap := &Snapshot{Creator: creator}
	now := s.clock.Now()

	for _, tok := range tokens {
		if now.After(tok.RetentionDeadline()) {
			_ = tok.MarkExpired(now)
			snap.Expired = append(snap.Expired, tok)
			continue
		}
		snap.Active = append(snap.Active, tok)
		snap.Balance += tok.Satoshis()
	}

	return snap, nil
}

// Withdraw sweeps the value of the creator's live listings back to them
func (s *service) Withdraw(ctx context.Context, creator domain.PublicKeyID) (*domain.Confirmation, error) {
	snap, err := s.Snapshot(ctx, creator)
	if err != nil {
		return nil, err
	}

	var (
		refs   []domain.Outpoint
		tokens []*token.ListingToken
	)
	for _, tok := range snap.Active {
		if tok.Satoshis() <= 0 {
			continue
		}
		refs = append(refs, tok.Outpoint())
		tokens = append(tokens, tok)
	}
	if len(refs) == 0 {
		return nil, domain.Errorf(domain.ErrWithdraw, "collect", "no value-bearing listings for %s", creator)
	}

	tx, err := s.wallet.BuildSweep(ctx, refs, creator)
	if err != nil {
		return nil, domain.NewError(domain.ErrWithdraw, "build-sweep", err)
	}

	conf, err := s.wallet.Broadcast(ctx, tx)
	if err != nil {
		return nil, domain.NewError(domain.ErrWithdraw, "broadcast", err)
	}

	// The sweep consumed every included output; record it on each token
	for _, tok := range tokens {
		s.recordSpent(ctx, tok)
	}

	logger.InfoCtx(ctx, "Withdrew listing value",
		zap.String("creator", string(creator)),
		zap.Int("outputs", len(refs)),
		zap.Int64("satoshis", snap.Balance),
		zap.String("txid", conf.TxID),
	)

	return conf, nil
}

// RemoveExpired reclaims one expired listing output
func (s *service) RemoveExpired(ctx context.Context, tok *token.ListingToken) error {
	if tok.State() != token.StateExpired {
		return domain.Errorf(domain.ErrInvalidTransition, "remove-expired", "token %s is %s, not expired", tok.Outpoint(), tok.State())
	}

	creator, err := creatorOf(tok)
	if err != nil {
		return err
	}

	tx, err := s.wallet.BuildSweep(ctx, []domain.Outpoint{tok.Outpoint()}, creator)
	if err != nil {
		return domain.NewError(domain.ErrWithdraw, "build-sweep", err)
	}
	if _, err := s.wallet.Broadcast(ctx, tx); err != nil {
		return domain.NewError(domain.ErrWithdraw, "broadcast", err)
	}

	s.recordSpent(ctx, tok)
	return nil
}

// recordSpent moves a token to Spent after its output is consumed on the
// ledger and emits the market event.
func (s *service) recordSpent(ctx context.Context, tok *token.ListingToken) {
	if err := tok.MarkSwept(); err != nil {
		logger.WarnCtx(ctx, "token state lagged ledger",
			zap.String("outpoint", tok.Outpoint().String()),
			zap.Error(err),
		)
	}

	if s.events == nil {
		return
	}
	event := domain.NewMarketEvent(domain.EventListingSpent, tok.Outpoint(), s.clock.Now())
	if err := s.events.PublishEvent(ctx, event); err != nil {
		logger.WarnCtx(ctx, "failed to publish market event",
			zap.String("eventType", string(domain.EventListingSpent)),
			zap.Error(err),
		)
	}
}

func creatorOf(tok *token.ListingToken) (domain.PublicKeyID, error) {
	fv, ok := tok.Field(codec.FieldCreatorPublicKey)
	if !ok {
		return "", domain.Errorf(domain.ErrInvalidInput, "fields", "token %s carries no creator key", tok.Outpoint())
	}
	return fv.PubKey, nil
}
