package wallet_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/metanet-market/marketd/internal/adapter"
	"github.com/metanet-market/marketd/internal/domain"
	"github.com/metanet-market/marketd/internal/mocks"
	"github.com/metanet-market/marketd/internal/providers/wallet"
)

const (
	ownerKey = "02aabbccddeeff00112233445566778899aabbccddeeff00112233445566778899"
	buyerKey = "03ffeeddccbbaa99887766554433221100ffeeddccbbaa998877665544332211ff"
)

func newTestClient(mockHTTP *mocks.MockHTTPClient) wallet.Client {
	return wallet.NewClient(mockHTTP, wallet.Config{
		URL:     "https://wallet.example.com",
		Network: domain.NetworkTestnet,
	})
}

func TestClient_Identity(t *testing.T) {
	tests := []struct {
		name        string
		setupMocks  func(*mocks.MockHTTPClient)
		expected    domain.PublicKeyID
		expectedErr string
	}{
		{
			name: "valid identity",
			setupMocks: func(mockHTTP *mocks.MockHTTPClient) {
				mockHTTP.
					EXPECT().
					GetJSON(gomock.Any(), "https://wallet.example.com/v1/identity", gomock.Any()).
					DoAndReturn(func(_ context.Context, _ string, result interface{}) error {
						return adapter.NewJSON().Unmarshal([]byte(`{"publicKey":"`+ownerKey+`"}`), result)
					})
			},
			expected: domain.PublicKeyID(ownerKey),
		},
		{
			name: "malformed identity key rejected",
			setupMocks: func(mockHTTP *mocks.MockHTTPClient) {
				mockHTTP.
					EXPECT().
					GetJSON(gomock.Any(), gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, _ string, result interface{}) error {
						return adapter.NewJSON().Unmarshal([]byte(`{"publicKey":"0499"}`), result)
					})
			},
			expectedErr: "invalid identity key",
		},
		{
			name: "transport failure",
			setupMocks: func(mockHTTP *mocks.MockHTTPClient) {
				mockHTTP.
					EXPECT().
					GetJSON(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(errors.New("wallet unreachable"))
			},
			expectedErr: "failed to resolve identity",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			mockHTTP := mocks.NewMockHTTPClient(ctrl)
			tt.setupMocks(mockHTTP)

			got, err := newTestClient(mockHTTP).Identity(context.Background())

			if tt.expectedErr != "" {
				assert.ErrorContains(t, err, tt.expectedErr)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestClient_BuildCommitment(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockHTTP := mocks.NewMockHTTPClient(ctrl)
	mockHTTP.
		EXPECT().
		PostJSON(gomock.Any(), "https://wallet.example.com/v1/transactions/commitment", gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, _ string, body interface{}, result interface{}) error {
			payload, err := adapter.NewJSON().Marshal(body)
			require.NoError(t, err)
			assert.Contains(t, string(payload), `"network":"testnet"`)
			assert.Contains(t, string(payload), `"satoshis":100`)
			return adapter.NewJSON().Unmarshal([]byte(`{"raw":"3q0=","txid":"feed01"}`), result)
		})

	tx, err := newTestClient(mockHTTP).BuildCommitment(context.Background(), []byte{0x01}, 100, domain.PublicKeyID(ownerKey))
	require.NoError(t, err)
	assert.Equal(t, "feed01", tx.TxID)
	assert.Equal(t, []byte{0xde, 0xad}, tx.Raw)
}

func TestClient_BuildPayment(t *testing.T) {
	listing := domain.Outpoint{TxID: "ab12", OutputIndex: 0}

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockHTTP := mocks.NewMockHTTPClient(ctrl)
	mockHTTP.
		EXPECT().
		PostJSON(gomock.Any(), "https://wallet.example.com/v1/transactions/payment", gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, _ string, _ interface{}, result interface{}) error {
			return adapter.NewJSON().Unmarshal([]byte(`{
				"transaction": {"raw":"3q0=", "txid":"pay01"},
				"derivationPrefix": "dp",
				"derivationSuffix": "ds"
			}`), result)
		})

	tx, proof, err := newTestClient(mockHTTP).BuildPayment(context.Background(), 250, domain.PublicKeyID(buyerKey), listing)
	require.NoError(t, err)
	assert.Equal(t, "pay01", tx.TxID)

	// The proof carries everything the key server needs to verify payment
	assert.Equal(t, "pay01", proof.TxID)
	assert.Equal(t, "dp", proof.DerivationPrefix)
	assert.Equal(t, "ds", proof.DerivationSuffix)
	assert.Equal(t, int64(250), proof.Amount)
	assert.Equal(t, domain.PublicKeyID(buyerKey), proof.SenderID)
}

func TestClient_BuildSweep(t *testing.T) {
	refs := []domain.Outpoint{
		{TxID: "aa11", OutputIndex: 0},
		{TxID: "bb22", OutputIndex: 3},
	}

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockHTTP := mocks.NewMockHTTPClient(ctrl)
	mockHTTP.
		EXPECT().
		PostJSON(gomock.Any(), "https://wallet.example.com/v1/transactions/sweep", gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, _ string, body interface{}, result interface{}) error {
			payload, err := adapter.NewJSON().Marshal(body)
			require.NoError(t, err)
			assert.Contains(t, string(payload), `"aa11.0"`)
			assert.Contains(t, string(payload), `"bb22.3"`)
			return adapter.NewJSON().Unmarshal([]byte(`{"raw":"3q0=","txid":"sweep01"}`), result)
		})

	tx, err := newTestClient(mockHTTP).BuildSweep(context.Background(), refs, domain.PublicKeyID(ownerKey))
	require.NoError(t, err)
	assert.Equal(t, "sweep01", tx.TxID)
}

func TestClient_Broadcast(t *testing.T) {
	acceptedAt := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	tx := &domain.Transaction{Raw: []byte{0x01}, TxID: "feed01"}

	tests := []struct {
		name        string
		setupMocks  func(*mocks.MockHTTPClient)
		expectedErr string
	}{
		{
			name: "accepted",
			setupMocks: func(mockHTTP *mocks.MockHTTPClient) {
				mockHTTP.
					EXPECT().
					PostJSON(gomock.Any(), "https://wallet.example.com/v1/transactions/broadcast", tx, gomock.Any()).
					DoAndReturn(func(_ context.Context, _ string, _ interface{}, result interface{}) error {
						return adapter.NewJSON().Unmarshal([]byte(`{"txid":"feed01","acceptedAt":"2026-03-01T12:00:00Z"}`), result)
					})
			},
		},
		{
			name: "ledger rejects the transaction",
			setupMocks: func(mockHTTP *mocks.MockHTTPClient) {
				mockHTTP.
					EXPECT().
					PostJSON(gomock.Any(), gomock.Any(), tx, gomock.Any()).
					Return(errors.New("double spend"))
			},
			expectedErr: "failed to broadcast transaction feed01",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			mockHTTP := mocks.NewMockHTTPClient(ctrl)
			tt.setupMocks(mockHTTP)

			conf, err := newTestClient(mockHTTP).Broadcast(context.Background(), tx)

			if tt.expectedErr != "" {
				assert.ErrorContains(t, err, tt.expectedErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "feed01", conf.TxID)
			assert.Equal(t, acceptedAt, conf.AcceptedAt)
		})
	}
}
