package registry

import (
	"fmt"
	"strings"
	"sync"

	"github.com/metanet-market/marketd/internal/adapter"
	"github.com/metanet-market/marketd/internal/domain"
)

// BlacklistRegistry defines the interface for creator blacklist operations.
// Listings from blacklisted creators are filtered out of search results and
// refused at publish time.
//
//go:generate mockgen -source=blacklist.go -destination=../mocks/blacklist_registry.go -package=mocks -mock_names=BlacklistRegistry=MockBlacklistRegistry
type BlacklistRegistry interface {
	// IsBlacklisted checks if a creator identity key is blacklisted
	IsBlacklisted(creator domain.PublicKeyID) bool
}

// BlacklistData represents the structure of the blacklist.json file
type BlacklistData struct {
	Version  int      `json:"version"`
	Creators []string `json:"creators"`
}

// blacklistRegistry is the internal implementation of BlacklistRegistry
type blacklistRegistry struct {
	mu       sync.RWMutex
	creators map[string]bool
}

// BlacklistRegistryLoader loads blacklist files through the fs and json adapters
type BlacklistRegistryLoader struct {
	fs   adapter.FileSystem
	json adapter.JSON
}

// NewBlacklistRegistryLoader creates a loader
func NewBlacklistRegistryLoader(fs adapter.FileSystem, jsonAdapter adapter.JSON) *BlacklistRegistryLoader {
	return &BlacklistRegistryLoader{
		fs:   fs,
		json: jsonAdapter,
	}
}

// Load reads and parses a blacklist file
func (l *BlacklistRegistryLoader) Load(filePath string) (BlacklistRegistry, error) {
	data, err := l.fs.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read blacklist file: %w", err)
	}

	var blacklistData BlacklistData
	if err := l.json.Unmarshal(data, &blacklistData); err != nil {
		return nil, fmt.Errorf("failed to parse blacklist JSON: %w", err)
	}

	bl := &blacklistRegistry{
		creators: make(map[string]bool, len(blacklistData.Creators)),
	}

	for _, creator := range blacklistData.Creators {
		// Identity keys are hex; index them case-insensitively
		bl.creators[strings.ToLower(creator)] = true
	}

	return bl, nil
}

// Empty returns a registry that blacklists nothing, for deployments that do
// not configure a blacklist file.
func Empty() BlacklistRegistry {
	return &blacklistRegistry{creators: map[string]bool{}}
}

// IsBlacklisted checks if a creator identity key is blacklisted
func (b *blacklistRegistry) IsBlacklisted(creator domain.PublicKeyID) bool {
	if b == nil {
		return false
	}
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.creators[strings.ToLower(string(creator))]
}
