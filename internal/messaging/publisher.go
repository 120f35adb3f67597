package messaging

import (
	"context"

	"github.com/metanet-market/marketd/internal/domain"
)

// Publisher defines the interface for publishing market events to the broker
//
//go:generate mockgen -source=publisher.go -destination=../mocks/publisher.go -package=mocks -mock_names=Publisher=MockPublisher
type Publisher interface {
	// PublishEvent publishes a market event to the message broker
	PublishEvent(ctx context.Context, event *domain.MarketEvent) error
	// Close closes the connection
	Close()
}
