package keyserver_test

import (
	"bytes"
	"context"
	"errors"
	"os"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/metanet-market/marketd/internal/adapter"
	"github.com/metanet-market/marketd/internal/domain"
	"github.com/metanet-market/marketd/internal/logger"
	"github.com/metanet-market/marketd/internal/mocks"
	"github.com/metanet-market/marketd/internal/providers/keyserver"
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
	testLocator = domain.Locator("uhrp://zQmTestContent")
	testSeller  = domain.PublicKeyID("02aabbccddeeff00112233445566778899aabbccddeeff00112233445566778899")
)

func contentKey() []byte {
	return bytes.Repeat([]byte{0x42}, adapter.ContentKeySize)
}

func TestClient_RegisterKey(t *testing.T) {
	cfg := keyserver.Config{URL: "https://keys.example.com"}

	tests := []struct {
		name         string
		key          []byte
		setupMocks   func(*mocks.MockHTTPClient)
		expectedKind domain.ErrorKind
	}{
		{
			name: "successful registration",
			key:  contentKey(),
			setupMocks: func(mockHTTP *mocks.MockHTTPClient) {
				mockHTTP.
					EXPECT().
					PostJSON(gomock.Any(), "https://keys.example.com/v1/keys", gomock.Any(), nil).
					Return(nil)
			},
		},
		{
			name:         "wrong key size rejected locally",
			key:          []byte{0x01, 0x02},
			setupMocks:   func(mockHTTP *mocks.MockHTTPClient) {},
			expectedKind: domain.ErrInvalidInput,
		},
		{
			name: "server failure",
			key:  contentKey(),
			setupMocks: func(mockHTTP *mocks.MockHTTPClient) {
				mockHTTP.
					EXPECT().
					PostJSON(gomock.Any(), gomock.Any(), gomock.Any(), nil).
					Return(errors.New("status 500"))
			},
			expectedKind: domain.ErrKeyRegistration,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			mockHTTP := mocks.NewMockHTTPClient(ctrl)
			tt.setupMocks(mockHTTP)

			client := keyserver.NewClient(mockHTTP, cfg)
			err := client.RegisterKey(context.Background(), testLocator, testSeller, tt.key)

			if tt.expectedKind != "" {
				assert.True(t, domain.IsKind(err, tt.expectedKind), "expected kind %s, got %v", tt.expectedKind, err)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestClient_RequestCapability(t *testing.T) {
	cfg := keyserver.Config{URL: "https://keys.example.com"}
	proof := &domain.PaymentProof{
		TxID:             "deadbeef",
		DerivationPrefix: "prefix",
		DerivationSuffix: "suffix",
		Amount:           100,
		SenderID:         testSeller,
	}

	tests := []struct {
		name         string
		setupMocks   func(*mocks.MockHTTPClient)
		expectedKind domain.ErrorKind
	}{
		{
			name: "key released",
			setupMocks: func(mockHTTP *mocks.MockHTTPClient) {
				mockHTTP.
					EXPECT().
					PostJSON(gomock.Any(), "https://keys.example.com/v1/keys/uhrp:%2F%2FzQmTestContent/capability", gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, _ string, _ interface{}, result interface{}) error {
						return adapter.NewJSON().Unmarshal([]byte(`{"status":"released","key":"QkJCQkJCQkJCQkJCQkJCQkJCQkJCQkJCQkJCQkJCQkI="}`), result)
					})
			},
		},
		{
			name: "server still waiting on the payment",
			setupMocks: func(mockHTTP *mocks.MockHTTPClient) {
				mockHTTP.
					EXPECT().
					PostJSON(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, _ string, _ interface{}, result interface{}) error {
						return adapter.NewJSON().Unmarshal([]byte(`{"status":"pending"}`), result)
					})
			},
			expectedKind: domain.ErrPendingKeyExchange,
		},
		{
			name: "transport failure maps to pending",
			setupMocks: func(mockHTTP *mocks.MockHTTPClient) {
				mockHTTP.
					EXPECT().
					PostJSON(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
					Return(errors.New("connection reset"))
			},
			expectedKind: domain.ErrPendingKeyExchange,
		},
		{
			name: "wrong-size released key",
			setupMocks: func(mockHTTP *mocks.MockHTTPClient) {
				mockHTTP.
					EXPECT().
					PostJSON(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, _ string, _ interface{}, result interface{}) error {
						return adapter.NewJSON().Unmarshal([]byte(`{"status":"released","key":"QkJC"}`), result)
					})
			},
			expectedKind: domain.ErrIntegrity,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			mockHTTP := mocks.NewMockHTTPClient(ctrl)
			tt.setupMocks(mockHTTP)

			client := keyserver.NewClient(mockHTTP, cfg)
			cap, err := client.RequestCapability(context.Background(), testLocator, proof)

			if tt.expectedKind != "" {
				assert.True(t, domain.IsKind(err, tt.expectedKind), "expected kind %s, got %v", tt.expectedKind, err)
				assert.Nil(t, cap)
				return
			}

			require.NoError(t, err)
			require.NotNil(t, cap)
			assert.Equal(t, contentKey(), cap.Key)
		})
	}
}
