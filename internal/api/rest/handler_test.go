package rest_test

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/metanet-market/marketd/internal/account"
	"github.com/metanet-market/marketd/internal/api/rest"
	"github.com/metanet-market/marketd/internal/codec"
	"github.com/metanet-market/marketd/internal/domain"
	"github.com/metanet-market/marketd/internal/logger"
	"github.com/metanet-market/marketd/internal/mocks"
	"github.com/metanet-market/marketd/internal/publisher"
	"github.com/metanet-market/marketd/internal/query"
	"github.com/metanet-market/marketd/internal/settlement"
	"github.com/metanet-market/marketd/internal/token"
)

func TestMain(m *testing.M) {
	// Initialize logger for tests
	err := logger.Initialize(logger.Config{
		Debug: false,
	})
	if err != nil {
		panic(err)
	}

	code := m.Run()
	os.Exit(code)
}

const (
	creatorKey = domain.PublicKeyID("02aabbccddeeff00112233445566778899aabbccddeeff00112233445566778899")
	buyerKey   = "03ffeeddccbbaa99887766554433221100ffeeddccbbaa998877665544332211ff"
	listingTx  = "f1d2d2f924e986ac86fdf7b36c94bcdf32beec15192e28e748c1d233f2b0e9a0"
)

type fixture struct {
	wallet    *mocks.MockWalletClient
	publisher *mocks.MockListingPublisher
	query     *mocks.MockQueryClient
	settler   *mocks.MockSettler
	account   *mocks.MockAccountView
	router    *gin.Engine
}

func newFixture(ctrl *gomock.Controller) *fixture {
	gin.SetMode(gin.TestMode)

	f := &fixture{
		wallet:    mocks.NewMockWalletClient(ctrl),
		publisher: mocks.NewMockListingPublisher(ctrl),
		query:     mocks.NewMockQueryClient(ctrl),
		settler:   mocks.NewMockSettler(ctrl),
		account:   mocks.NewMockAccountView(ctrl),
	}

	h := rest.NewHandler(f.wallet, f.publisher, f.query, f.settler, f.account)

	f.router = gin.New()
	f.router.GET("/api/v1/listings", h.ListListings)
	f.router.GET("/api/v1/listings/:outpoint", h.GetListing)
	f.router.POST("/api/v1/listings", h.PublishListing)
	f.router.POST("/api/v1/listings/:outpoint/purchase", h.PurchaseListing)
	f.router.POST("/api/v1/receipts/:id/capability", h.RetryCapability)
	f.router.GET("/api/v1/receipts/:id/content", h.DownloadContent)
	f.router.DELETE("/api/v1/receipts/:id", h.AbandonReceipt)
	f.router.GET("/api/v1/account", h.GetAccount)
	f.router.POST("/api/v1/account/withdraw", h.Withdraw)
	f.router.POST("/api/v1/account/expired/:outpoint/remove", h.RemoveExpired)
	f.router.GET("/health", h.HealthCheck)
	return f
}

func (f *fixture) do(method, path string, body *bytes.Buffer, contentType string) *httptest.ResponseRecorder {
	if body == nil {
		body = &bytes.Buffer{}
	}
	req := httptest.NewRequest(method, path, body)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, req)
	return w
}

func fullToken(t *testing.T) *token.ListingToken {
	t.Helper()
	deadline := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)
	fields := []codec.FieldValue{
		codec.Text("sunset.png"),
		codec.Integer(100),
		codec.Locator("uhrp://zQmCover"),
		codec.Integer(uint64(deadline.Unix())),
		codec.Locator("uhrp://zQmFile"),
		codec.Text("a sunset"),
		codec.PublicKey(creatorKey),
		codec.Integer(500),
	}
	return token.New(domain.Outpoint{TxID: listingTx, OutputIndex: 0}, fields, codec.FullListingSchema)
}

func TestHandler_ListListings(t *testing.T) {
	t.Run("browse uses the summary schema", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		f := newFixture(ctrl)
		f.query.
			EXPECT().
			Search(gomock.Any(), query.Predicate{Text: "sunset", Limit: 50}, codec.SummaryListingSchema).
			Return([]*token.ListingToken{fullToken(t)}, nil)

		w := f.do(http.MethodGet, "/api/v1/listings?q=sunset", nil, "")
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"outpoint":"`+listingTx+`.0"`)
		assert.Contains(t, w.Body.String(), `"name":"sunset.png"`)
	})

	t.Run("creator filter needs the full schema", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		f := newFixture(ctrl)
		f.query.
			EXPECT().
			Search(gomock.Any(), query.Predicate{Creator: creatorKey, Limit: 50}, codec.FullListingSchema).
			Return([]*token.ListingToken{}, nil)

		w := f.do(http.MethodGet, "/api/v1/listings?creator="+string(creatorKey), nil, "")
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("limit above cap fails validation", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		f := newFixture(ctrl)
		w := f.do(http.MethodGet, "/api/v1/listings?limit=1000", nil, "")
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "validation_failed")
	})
}

func TestHandler_GetListing(t *testing.T) {
	t.Run("known outpoint", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		f := newFixture(ctrl)
		f.query.
			EXPECT().
			ByOutpoint(gomock.Any(), domain.Outpoint{TxID: listingTx, OutputIndex: 0}).
			Return(fullToken(t), nil)

		w := f.do(http.MethodGet, "/api/v1/listings/"+listingTx+".0", nil, "")
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"creator":"`+string(creatorKey)+`"`)
		assert.Contains(t, w.Body.String(), `"size":500`)
	})

	t.Run("unknown outpoint", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		f := newFixture(ctrl)
		f.query.
			EXPECT().
			ByOutpoint(gomock.Any(), gomock.Any()).
			Return(nil, nil)

		w := f.do(http.MethodGet, "/api/v1/listings/"+listingTx+".0", nil, "")
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("malformed outpoint", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		f := newFixture(ctrl)
		w := f.do(http.MethodGet, "/api/v1/listings/not-an-outpoint", nil, "")
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestHandler_PublishListing(t *testing.T) {
	buildForm := func(t *testing.T, withFile bool) (*bytes.Buffer, string) {
		t.Helper()
		var buf bytes.Buffer
		mw := multipart.NewWriter(&buf)
		require.NoError(t, mw.WriteField("name", "sunset.png"))
		require.NoError(t, mw.WriteField("satoshis", "100"))
		require.NoError(t, mw.WriteField("retention_days", "7"))
		if withFile {
			fw, err := mw.CreateFormFile("file", "sunset.png")
			require.NoError(t, err)
			_, err = fw.Write(bytes.Repeat([]byte{0x5a}, 500))
			require.NoError(t, err)
		}
		require.NoError(t, mw.Close())
		return &buf, mw.FormDataContentType()
	}

	t.Run("creates a listing", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		f := newFixture(ctrl)
		f.publisher.
			EXPECT().
			Publish(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ interface{}, req publisher.PublishRequest) (*token.ListingToken, error) {
				assert.Equal(t, "sunset.png", req.Name)
				assert.Equal(t, int64(100), req.Satoshis)
				assert.Equal(t, 7*24*time.Hour, req.Retention)
				assert.Len(t, req.File, 500)
				return fullToken(t), nil
			})

		body, contentType := buildForm(t, true)
		w := f.do(http.MethodPost, "/api/v1/listings", body, contentType)
		assert.Equal(t, http.StatusCreated, w.Code)
		assert.Contains(t, w.Body.String(), `"file_locator":"uhrp://zQmFile"`)
	})

	t.Run("missing file", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		f := newFixture(ctrl)
		body, contentType := buildForm(t, false)
		w := f.do(http.MethodPost, "/api/v1/listings", body, contentType)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("validation failure from the core maps to 400", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		f := newFixture(ctrl)
		f.publisher.
			EXPECT().
			Publish(gomock.Any(), gomock.Any()).
			Return(nil, domain.Errorf(domain.ErrInvalidInput, "validate", "cover type text/plain not accepted"))

		body, contentType := buildForm(t, true)
		w := f.do(http.MethodPost, "/api/v1/listings", body, contentType)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "validation_failed")
	})
}

func TestHandler_PurchaseListing(t *testing.T) {
	purchaseBody := func() *bytes.Buffer {
		return bytes.NewBufferString(`{"buyer":"` + buyerKey + `"}`)
	}

	t.Run("settled purchase", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		f := newFixture(ctrl)
		tok := fullToken(t)
		f.query.EXPECT().ByOutpoint(gomock.Any(), gomock.Any()).Return(tok, nil)
		f.settler.
			EXPECT().
			Purchase(gomock.Any(), tok, domain.PublicKeyID(buyerKey)).
			Return(&settlement.Receipt{ID: "r-1", Token: tok}, nil)

		w := f.do(http.MethodPost, "/api/v1/listings/"+listingTx+".0/purchase", purchaseBody(), "application/json")
		assert.Equal(t, http.StatusOK, w.Code)

		var resp struct {
			ReceiptID string `json:"receipt_id"`
			Status    string `json:"status"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, "r-1", resp.ReceiptID)
		assert.Equal(t, "settled", resp.Status)
	})

	t.Run("pending key exchange hands back the receipt with 202", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		f := newFixture(ctrl)
		tok := fullToken(t)
		f.query.EXPECT().ByOutpoint(gomock.Any(), gomock.Any()).Return(tok, nil)
		f.settler.
			EXPECT().
			Purchase(gomock.Any(), tok, domain.PublicKeyID(buyerKey)).
			Return(&settlement.Receipt{ID: "r-2", Token: tok},
				domain.Errorf(domain.ErrPendingKeyExchange, "request-capability", "not released"))

		w := f.do(http.MethodPost, "/api/v1/listings/"+listingTx+".0/purchase", purchaseBody(), "application/json")
		assert.Equal(t, http.StatusAccepted, w.Code)
		assert.Contains(t, w.Body.String(), `"receipt_id":"r-2"`)
		assert.Contains(t, w.Body.String(), `"status":"pending_key_exchange"`)
	})

	t.Run("expired listing maps to 409", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		f := newFixture(ctrl)
		tok := fullToken(t)
		f.query.EXPECT().ByOutpoint(gomock.Any(), gomock.Any()).Return(tok, nil)
		f.settler.
			EXPECT().
			Purchase(gomock.Any(), tok, domain.PublicKeyID(buyerKey)).
			Return(nil, domain.Errorf(domain.ErrAlreadyUnavailable, "gate", "expired"))

		w := f.do(http.MethodPost, "/api/v1/listings/"+listingTx+".0/purchase", purchaseBody(), "application/json")
		assert.Equal(t, http.StatusConflict, w.Code)
		assert.Contains(t, w.Body.String(), "listing_unavailable")
	})

	t.Run("unknown listing", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		f := newFixture(ctrl)
		f.query.EXPECT().ByOutpoint(gomock.Any(), gomock.Any()).Return(nil, nil)

		w := f.do(http.MethodPost, "/api/v1/listings/"+listingTx+".0/purchase", purchaseBody(), "application/json")
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("missing buyer", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		f := newFixture(ctrl)
		w := f.do(http.MethodPost, "/api/v1/listings/"+listingTx+".0/purchase", bytes.NewBufferString(`{}`), "application/json")
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestHandler_RetryCapability(t *testing.T) {
	t.Run("still pending", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		f := newFixture(ctrl)
		tok := fullToken(t)
		f.settler.
			EXPECT().
			RetryCapability(gomock.Any(), "r-2").
			Return(&settlement.Receipt{ID: "r-2", Token: tok},
				domain.Errorf(domain.ErrPendingKeyExchange, "request-capability", "still not released"))

		w := f.do(http.MethodPost, "/api/v1/receipts/r-2/capability", nil, "")
		assert.Equal(t, http.StatusAccepted, w.Code)
		assert.Contains(t, w.Body.String(), `"status":"pending_key_exchange"`)
	})

	t.Run("settles", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		f := newFixture(ctrl)
		tok := fullToken(t)
		f.settler.
			EXPECT().
			RetryCapability(gomock.Any(), "r-2").
			Return(&settlement.Receipt{ID: "r-2", Token: tok}, nil)

		w := f.do(http.MethodPost, "/api/v1/receipts/r-2/capability", nil, "")
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"status":"settled"`)
	})

	t.Run("unknown receipt", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		f := newFixture(ctrl)
		f.settler.
			EXPECT().
			RetryCapability(gomock.Any(), "nope").
			Return(nil, domain.Errorf(domain.ErrInvalidInput, "retry-capability", "unknown receipt nope"))

		w := f.do(http.MethodPost, "/api/v1/receipts/nope/capability", nil, "")
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestHandler_DownloadContent(t *testing.T) {
	t.Run("streams the plaintext", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		f := newFixture(ctrl)
		plaintext := []byte("the purchased file")
		f.settler.EXPECT().Download(gomock.Any(), "r-1").Return(plaintext, nil)

		w := f.do(http.MethodGet, "/api/v1/receipts/r-1/content", nil, "")
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "application/octet-stream", w.Header().Get("Content-Type"))
		assert.Equal(t, plaintext, w.Body.Bytes())
	})

	t.Run("capability not yet held maps to 409", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		f := newFixture(ctrl)
		f.settler.
			EXPECT().
			Download(gomock.Any(), "r-1").
			Return(nil, domain.Errorf(domain.ErrPendingKeyExchange, "download", "no capability yet"))

		w := f.do(http.MethodGet, "/api/v1/receipts/r-1/content", nil, "")
		assert.Equal(t, http.StatusConflict, w.Code)
		assert.Contains(t, w.Body.String(), "pending_key_exchange")
	})

	t.Run("integrity failure maps to 502 retryable", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		f := newFixture(ctrl)
		f.settler.
			EXPECT().
			Download(gomock.Any(), "r-1").
			Return(nil, domain.Errorf(domain.ErrIntegrity, "verify", "size mismatch"))

		w := f.do(http.MethodGet, "/api/v1/receipts/r-1/content", nil, "")
		assert.Equal(t, http.StatusBadGateway, w.Code)
		assert.Contains(t, w.Body.String(), `"retryable":true`)
	})
}

func TestHandler_AbandonReceipt(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	f := newFixture(ctrl)
	f.settler.EXPECT().Abandon("r-1")

	w := f.do(http.MethodDelete, "/api/v1/receipts/r-1", nil, "")
	assert.Equal(t, http.StatusNoContent, w.Code)
}

func TestHandler_GetAccount(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	f := newFixture(ctrl)
	tok := fullToken(t)
	f.wallet.EXPECT().Identity(gomock.Any()).Return(creatorKey, nil)
	f.account.
		EXPECT().
		Snapshot(gomock.Any(), creatorKey).
		Return(&account.Snapshot{
			Creator: creatorKey,
			Balance: 100,
			Active:  []*token.ListingToken{tok},
		}, nil)

	w := f.do(http.MethodGet, "/api/v1/account", nil, "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"balance":100`)
	assert.Contains(t, w.Body.String(), `"expired":[]`)
}

func TestHandler_Withdraw(t *testing.T) {
	t.Run("sweeps the balance", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		f := newFixture(ctrl)
		f.wallet.EXPECT().Identity(gomock.Any()).Return(creatorKey, nil)
		f.account.
			EXPECT().
			Withdraw(gomock.Any(), creatorKey).
			Return(&domain.Confirmation{TxID: "sweep01", AcceptedAt: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)}, nil)

		w := f.do(http.MethodPost, "/api/v1/account/withdraw", nil, "")
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"txid":"sweep01"`)
	})

	t.Run("nothing to withdraw maps to 502", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		f := newFixture(ctrl)
		f.wallet.EXPECT().Identity(gomock.Any()).Return(creatorKey, nil)
		f.account.
			EXPECT().
			Withdraw(gomock.Any(), creatorKey).
			Return(nil, domain.Errorf(domain.ErrWithdraw, "collect", "no value-bearing listings"))

		w := f.do(http.MethodPost, "/api/v1/account/withdraw", nil, "")
		assert.Equal(t, http.StatusBadGateway, w.Code)
	})
}

func TestHandler_RemoveExpired(t *testing.T) {
	t.Run("reclaims a listed expired output", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		f := newFixture(ctrl)
		tok := fullToken(t)
		f.wallet.EXPECT().Identity(gomock.Any()).Return(creatorKey, nil)
		f.account.
			EXPECT().
			Snapshot(gomock.Any(), creatorKey).
			Return(&account.Snapshot{Creator: creatorKey, Expired: []*token.ListingToken{tok}}, nil)
		f.account.EXPECT().RemoveExpired(gomock.Any(), tok).Return(nil)

		w := f.do(http.MethodPost, "/api/v1/account/expired/"+listingTx+".0/remove", nil, "")
		assert.Equal(t, http.StatusNoContent, w.Code)
	})

	t.Run("outpoint not among the expired", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		f := newFixture(ctrl)
		f.wallet.EXPECT().Identity(gomock.Any()).Return(creatorKey, nil)
		f.account.
			EXPECT().
			Snapshot(gomock.Any(), creatorKey).
			Return(&account.Snapshot{Creator: creatorKey}, nil)

		w := f.do(http.MethodPost, "/api/v1/account/expired/"+listingTx+".0/remove", nil, "")
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestHandler_HealthCheck(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	f := newFixture(ctrl)
	w := f.do(http.MethodGet, "/health", nil, "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, strings.Contains(w.Body.String(), `"status":"ok"`))
}
