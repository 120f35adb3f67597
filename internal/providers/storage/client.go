// Package storage is the content-store client. Locators are content
// addresses (multibase-encoded multihash of the payload), so re-uploading
// identical bytes is a no-op and downloads can be verified against the
// locator even through an untrusted gateway.
package storage

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/multiformats/go-multibase"
	"github.com/multiformats/go-multihash"
	"go.uber.org/zap"

	"github.com/metanet-market/marketd/internal/adapter"
	"github.com/metanet-market/marketd/internal/domain"
	"github.com/metanet-market/marketd/internal/logger"
)

// LocatorScheme prefixes every content locator
const LocatorScheme = "uhrp://"

// Client defines the content-store operations the core depends on
//
//go:generate mockgen -source=client.go -destination=../../mocks/storage_client.go -package=mocks -mock_names=Client=MockStorageClient
type Client interface {
	// Upload stores the payload and returns its content locator
	Upload(ctx context.Context, data []byte, contentType string) (domain.Locator, error)

	// Download fetches the payload a locator addresses and verifies it
	Download(ctx context.Context, locator domain.Locator) ([]byte, error)
}

// Config holds the content store endpoints
type Config struct {
	UploadURL     string
	Gateways      []string
	RetentionDays int
}

type client struct {
	httpClient adapter.HTTPClient
	cfg        Config
}

// NewClient creates a content-store client
func NewClient(httpClient adapter.HTTPClient, cfg Config) Client {
	return &client{
		httpClient: httpClient,
		cfg:        cfg,
	}
}

// LocatorFor computes the content locator of a payload without uploading it
func LocatorFor(data []byte) (domain.Locator, error) {
	mh, err := multihash.Sum(data, multihash.SHA2_256, -1)
	if err != nil {
		return "", fmt.Errorf("failed to hash content: %w", err)
	}

	encoded, err := multibase.Encode(multibase.Base58BTC, mh)
	if err != nil {
		return "", fmt.Errorf("failed to encode content hash: %w", err)
	}

	return domain.Locator(LocatorScheme + encoded), nil
}

// Verify checks a payload against its locator
func Verify(locator domain.Locator, data []byte) error {
	expected, err := LocatorFor(data)
	if err != nil {
		return err
	}
	if expected != locator {
		return fmt.Errorf("content hash mismatch: locator %s, payload hashes to %s", locator, expected)
	}
	return nil
}

type uploadResponse struct {
	Locator string `json:"locator"`
}

// Upload stores the payload and returns its content locator
func (c *client) Upload(ctx context.Context, data []byte, contentType string) (domain.Locator, error) {
	if len(data) == 0 {
		return "", fmt.Errorf("refusing to upload empty payload")
	}

	locator, err := LocatorFor(data)
	if err != nil {
		return "", err
	}

	url := fmt.Sprintf("%s?retentionDays=%d", c.cfg.UploadURL, c.cfg.RetentionDays)
	respBody, err := c.httpClient.PostBytes(ctx, url, contentType, data)
	if err != nil {
		return "", fmt.Errorf("failed to upload %d bytes: %w", len(data), err)
	}

	// The store advertises the locator it filed the content under; it must
	// agree with the locally computed address.
	var resp uploadResponse
	if err := jsonUnmarshalLenient(respBody, &resp); err == nil && resp.Locator != "" {
		if domain.Locator(resp.Locator) != locator {
			return "", fmt.Errorf("store advertised locator %s, expected %s", resp.Locator, locator)
		}
	}

	logger.Debug("Uploaded content",
		zap.String("locator", string(locator)),
		zap.Int("bytes", len(data)),
		zap.String("contentType", contentType),
	)

	return locator, nil
}

// Download fetches the payload a locator addresses, trying each gateway in
// turn and verifying the content hash before returning.
func (c *client) Download(ctx context.Context, locator domain.Locator) ([]byte, error) {
	if !strings.HasPrefix(string(locator), LocatorScheme) {
		return nil, fmt.Errorf("unsupported locator %q", locator)
	}
	name := strings.TrimPrefix(string(locator), LocatorScheme)

	var lastErr error
	for _, gateway := range c.cfg.Gateways {
		url := fmt.Sprintf("%s/%s", strings.TrimSuffix(gateway, "/"), name)
		data, err := c.httpClient.GetBytes(ctx, url)
		if err != nil {
			lastErr = err
			logger.Warn("gateway fetch failed",
				zap.String("gateway", gateway),
				zap.String("locator", string(locator)),
				zap.Error(err),
			)
			continue
		}

		if err := Verify(locator, data); err != nil {
			// A gateway serving wrong bytes is treated like an unreachable one
			lastErr = err
			logger.Warn("gateway served mismatched content",
				zap.String("gateway", gateway),
				zap.String("locator", string(locator)),
				zap.Error(err),
			)
			continue
		}

		return data, nil
	}

	if lastErr == nil {
		lastErr = fmt.Errorf("no gateways configured")
	}
	return nil, fmt.Errorf("failed to fetch %s: %w", locator, lastErr)
}

// jsonUnmarshalLenient tolerates stores that answer uploads with an empty or
// non-JSON body.
func jsonUnmarshalLenient(data []byte, v interface{}) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return fmt.Errorf("empty body")
	}
	return adapter.NewJSON().Unmarshal(trimmed, v)
}
