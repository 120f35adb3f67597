package rest

import (
	"fmt"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/metanet-market/marketd/internal/domain"
)

const (
	defaultSearchLimit = 50
	maxSearchLimit     = 200
)

// SearchQueryParams holds the parsed listing-search parameters
type SearchQueryParams struct {
	Creator domain.PublicKeyID
	Text    string
	Limit   int
}

// ParseSearchQuery parses listing-search query parameters
// GET /api/v1/listings?creator=<key>&q=<text>&limit=<limit>
func ParseSearchQuery(c *gin.Context) (*SearchQueryParams, error) {
	params := &SearchQueryParams{
		Creator: domain.PublicKeyID(c.Query("creator")),
		Text:    c.Query("q"),
		Limit:   defaultSearchLimit,
	}

	if raw := c.Query("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil {
			return nil, fmt.Errorf("limit must be an integer, got %q", raw)
		}
		params.Limit = limit
	}

	return params, nil
}

// Validate checks parsed search parameters
func (p *SearchQueryParams) Validate() error {
	if p.Creator != "" && !p.Creator.Valid() {
		return fmt.Errorf("creator %q is not a valid identity key", p.Creator)
	}
	if p.Limit <= 0 || p.Limit > maxSearchLimit {
		return fmt.Errorf("limit must be between 1 and %d", maxSearchLimit)
	}
	return nil
}
