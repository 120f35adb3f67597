package rest

import (
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/metanet-market/marketd/internal/account"
	"github.com/metanet-market/marketd/internal/api/rest/dto"
	"github.com/metanet-market/marketd/internal/codec"
	"github.com/metanet-market/marketd/internal/domain"
	"github.com/metanet-market/marketd/internal/logger"
	"github.com/metanet-market/marketd/internal/providers/wallet"
	"github.com/metanet-market/marketd/internal/publisher"
	"github.com/metanet-market/marketd/internal/query"
	"github.com/metanet-market/marketd/internal/settlement"
)

// maxUploadSize bounds the multipart body of a publish request
const maxUploadSize = 256 << 20

// Handler defines the interface for REST API handlers
// This interface allows for easy mocking and testing
//
//go:generate mockgen -source=handler.go -destination=../../mocks/api_handler.go -package=mocks -mock_names=Handler=MockAPIHandler
type Handler interface {
	// ListListings searches listings for the browse page
	// GET /api/v1/listings?creator=<key>&q=<text>&limit=<limit>
	ListListings(c *gin.Context)

	// GetListing retrieves one listing with full detail
	// GET /api/v1/listings/:outpoint
	GetListing(c *gin.Context)

	// PublishListing creates a listing from a multipart form (requires authentication)
	// POST /api/v1/listings
	PublishListing(c *gin.Context)

	// PurchaseListing pays for a listing and redeems its content key
	// POST /api/v1/listings/:outpoint/purchase
	PurchaseListing(c *gin.Context)

	// RetryCapability re-requests the content key for a pending receipt
	// POST /api/v1/receipts/:id/capability
	RetryCapability(c *gin.Context)

	// DownloadContent streams the decrypted content of a settled receipt
	// GET /api/v1/receipts/:id/content
	DownloadContent(c *gin.Context)

	// AbandonReceipt discards a receipt without downloading
	// DELETE /api/v1/receipts/:id
	AbandonReceipt(c *gin.Context)

	// GetAccount returns the creator's recomputed listing snapshot (requires authentication)
	// GET /api/v1/account
	GetAccount(c *gin.Context)

	// Withdraw sweeps the creator's live listing value (requires authentication)
	// POST /api/v1/account/withdraw
	Withdraw(c *gin.Context)

	// RemoveExpired reclaims one expired listing output (requires authentication)
	// POST /api/v1/account/expired/:outpoint/remove
	RemoveExpired(c *gin.Context)

	// HealthCheck returns the health status of the API
	// GET /health
	HealthCheck(c *gin.Context)
}

// handler implements the Handler interface
type handler struct {
	wallet    wallet.Client
	publisher publisher.Publisher
	query     query.Client
	settler   settlement.Settler
	account   account.View
}

// NewHandler creates a new REST API handler over the core services
func NewHandler(
	walletClient wallet.Client,
	pub publisher.Publisher,
	queryClient query.Client,
	settler settlement.Settler,
	view account.View,
) Handler {
	return &handler{
		wallet:    walletClient,
		publisher: pub,
		query:     queryClient,
		settler:   settler,
		account:   view,
	}
}

// ListListings searches listings for the browse page
func (h *handler) ListListings(c *gin.Context) {
	params, err := ParseSearchQuery(c)
	if err != nil {
		respondBadRequest(c, err.Error())
		return
	}
	if err := params.Validate(); err != nil {
		respondWithError(c, http.StatusBadRequest, errCodeValidationFailed, "Validation failed", err.Error())
		return
	}

	// Creator-filtered searches need the creator field, which only the full
	// schema carries; plain browsing decodes the cheaper summary prefix.
	schema := codec.SummaryListingSchema
	if params.Creator != "" {
		schema = codec.FullListingSchema
	}

	tokens, err := h.query.Search(c.Request.Context(), query.Predicate{
		Creator: params.Creator,
		Text:    params.Text,
		Limit:   params.Limit,
	}, schema)
	if err != nil {
		respondDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"listings": dto.SummariesFromTokens(tokens),
	})
}

// GetListing retrieves one listing with full detail
func (h *handler) GetListing(c *gin.Context) {
	outpoint, err := domain.ParseOutpoint(c.Param("outpoint"))
	if err != nil {
		respondBadRequest(c, "Invalid outpoint", err.Error())
		return
	}

	tok, err := h.query.ByOutpoint(c.Request.Context(), outpoint)
	if err != nil {
		respondDomainError(c, err)
		return
	}
	if tok == nil {
		respondNotFound(c, fmt.Sprintf("No listing at %s", outpoint))
		return
	}

	c.JSON(http.StatusOK, dto.DetailFromToken(tok))
}

// PublishListing creates a listing from a multipart form
func (h *handler) PublishListing(c *gin.Context) {
	if err := c.Request.ParseMultipartForm(maxUploadSize); err != nil {
		respondBadRequest(c, "Invalid multipart form", err.Error())
		return
	}

	satoshis, err := strconv.ParseInt(c.PostForm("satoshis"), 10, 64)
	if err != nil {
		respondBadRequest(c, "satoshis must be an integer")
		return
	}
	retentionDays, err := strconv.Atoi(c.PostForm("retention_days"))
	if err != nil {
		respondBadRequest(c, "retention_days must be an integer")
		return
	}

	file, err := readFormFile(c, "file")
	if err != nil {
		respondBadRequest(c, "file is required", err.Error())
		return
	}

	// Cover is optional
	cover, err := readFormFile(c, "cover")
	if err != nil {
		cover = nil
	}

	tok, err := h.publisher.Publish(c.Request.Context(), publisher.PublishRequest{
		File:        file,
		Cover:       cover,
		Name:        c.PostForm("name"),
		Description: c.PostForm("description"),
		Satoshis:    satoshis,
		Retention:   time.Duration(retentionDays) * 24 * time.Hour,
	})
	if err != nil {
		respondDomainError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.PublishResponse{
		Listing: dto.DetailFromToken(tok),
	})
}

// PurchaseListing pays for a listing and redeems its content key
func (h *handler) PurchaseListing(c *gin.Context) {
	outpoint, err := domain.ParseOutpoint(c.Param("outpoint"))
	if err != nil {
		respondBadRequest(c, "Invalid outpoint", err.Error())
		return
	}

	var body struct {
		Buyer string `json:"buyer" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		respondBadRequest(c, "buyer is required", err.Error())
		return
	}

	tok, err := h.query.ByOutpoint(c.Request.Context(), outpoint)
	if err != nil {
		respondDomainError(c, err)
		return
	}
	if tok == nil {
		respondNotFound(c, fmt.Sprintf("No listing at %s", outpoint))
		return
	}

	receipt, err := h.settler.Purchase(c.Request.Context(), tok, domain.PublicKeyID(body.Buyer))
	if err != nil {
		// Payment committed, key pending: hand back the receipt so the
		// client resumes with the capability route, never a re-purchase.
		if domain.IsKind(err, domain.ErrPendingKeyExchange) && receipt != nil {
			c.JSON(http.StatusAccepted, dto.PurchaseResponse{
				ReceiptID: receipt.ID,
				Status:    dto.PurchasePending,
				Outpoint:  outpoint.String(),
			})
			return
		}
		respondDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.PurchaseResponse{
		ReceiptID: receipt.ID,
		Status:    dto.PurchaseSettled,
		Outpoint:  outpoint.String(),
	})
}

// RetryCapability re-requests the content key for a pending receipt
func (h *handler) RetryCapability(c *gin.Context) {
	receiptID := c.Param("id")

	receipt, err := h.settler.RetryCapability(c.Request.Context(), receiptID)
	if err != nil {
		if domain.IsKind(err, domain.ErrPendingKeyExchange) && receipt != nil {
			c.JSON(http.StatusAccepted, dto.PurchaseResponse{
				ReceiptID: receipt.ID,
				Status:    dto.PurchasePending,
				Outpoint:  receipt.Token.Outpoint().String(),
			})
			return
		}
		respondDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.PurchaseResponse{
		ReceiptID: receipt.ID,
		Status:    dto.PurchaseSettled,
		Outpoint:  receipt.Token.Outpoint().String(),
	})
}

// DownloadContent streams the decrypted content of a settled receipt
func (h *handler) DownloadContent(c *gin.Context) {
	receiptID := c.Param("id")

	plaintext, err := h.settler.Download(c.Request.Context(), receiptID)
	if err != nil {
		respondDomainError(c, err)
		return
	}

	c.Data(http.StatusOK, "application/octet-stream", plaintext)
}

// AbandonReceipt discards a receipt without downloading
func (h *handler) AbandonReceipt(c *gin.Context) {
	h.settler.Abandon(c.Param("id"))
	c.Status(http.StatusNoContent)
}

// GetAccount returns the creator's recomputed listing snapshot
func (h *handler) GetAccount(c *gin.Context) {
	creator, err := h.wallet.Identity(c.Request.Context())
	if err != nil {
		respondDomainError(c, domain.NewError(domain.ErrIdentityUnavailable, "identity", err))
		return
	}

	snap, err := h.account.Snapshot(c.Request.Context(), creator)
	if err != nil {
		respondDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.SnapshotResponse{
		Creator: string(snap.Creator),
		Balance: snap.Balance,
		Active:  dto.DetailsFromTokens(snap.Active),
		Expired: dto.DetailsFromTokens(snap.Expired),
	})
}

// Withdraw sweeps the creator's live listing value
func (h *handler) Withdraw(c *gin.Context) {
	creator, err := h.wallet.Identity(c.Request.Context())
	if err != nil {
		respondDomainError(c, domain.NewError(domain.ErrIdentityUnavailable, "identity", err))
		return
	}

	conf, err := h.account.Withdraw(c.Request.Context(), creator)
	if err != nil {
		respondDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.WithdrawResponse{
		TxID:       conf.TxID,
		AcceptedAt: conf.AcceptedAt,
	})
}

// RemoveExpired reclaims one expired listing output
func (h *handler) RemoveExpired(c *gin.Context) {
	outpoint, err := domain.ParseOutpoint(c.Param("outpoint"))
	if err != nil {
		respondBadRequest(c, "Invalid outpoint", err.Error())
		return
	}

	creator, err := h.wallet.Identity(c.Request.Context())
	if err != nil {
		respondDomainError(c, domain.NewError(domain.ErrIdentityUnavailable, "identity", err))
		return
	}

	snap, err := h.account.Snapshot(c.Request.Context(), creator)
	if err != nil {
		respondDomainError(c, err)
		return
	}

	for _, tok := range snap.Expired {
		if tok.Outpoint() != outpoint {
			continue
		}
		if err := h.account.RemoveExpired(c.Request.Context(), tok); err != nil {
			respondDomainError(c, err)
			return
		}
		c.Status(http.StatusNoContent)
		return
	}

	respondNotFound(c, fmt.Sprintf("No expired listing at %s for %s", outpoint, creator))
}

// HealthCheck returns the health status of the API
func (h *handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
	})
}

// readFormFile pulls one uploaded file fully into memory
func readFormFile(c *gin.Context, field string) ([]byte, error) {
	fh, err := c.FormFile(field)
	if err != nil {
		return nil, err
	}
	return readMultipartFile(fh)
}

func readMultipartFile(fh *multipart.FileHeader) ([]byte, error) {
	f, err := fh.Open()
	if err != nil {
		return nil, err
	}
	defer func() {
		if err := f.Close(); err != nil {
			logWarnClose(fh.Filename, err)
		}
	}()
	return io.ReadAll(f)
}

func logWarnClose(name string, err error) {
	logger.Warn("failed to close uploaded file", zap.String("file", name), zap.Error(err))
}
