package registry_test

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"

	"github.com/metanet-market/marketd/internal/domain"
	"github.com/metanet-market/marketd/internal/mocks"
	"github.com/metanet-market/marketd/internal/registry"
)

const (
	bannedCreator = "02aabbccddeeff00112233445566778899aabbccddeeff00112233445566778899"
	otherCreator  = "03ffeeddccbbaa99887766554433221100ffeeddccbbaa998877665544332211ff"
)

func TestBlacklistRegistryLoader_Load(t *testing.T) {
	tests := []struct {
		name         string
		setupMocks   func(*mocks.MockFileSystem, *mocks.MockJSON)
		expectedErr  string // Error message to assert, empty means no error expected
		validateFunc func(t *testing.T, reg registry.BlacklistRegistry)
	}{
		{
			name: "successful load with valid JSON",
			setupMocks: func(mockFS *mocks.MockFileSystem, mockJSON *mocks.MockJSON) {
				mockFS.
					EXPECT().
					ReadFile("blacklist.json").
					Return([]byte(`{"version":1,"creators":["`+bannedCreator+`"]}`), nil)
				mockJSON.
					EXPECT().
					Unmarshal(gomock.Any(), gomock.Any()).
					DoAndReturn(func(data []byte, v interface{}) error {
						return json.Unmarshal(data, v)
					})
			},
			validateFunc: func(t *testing.T, reg registry.BlacklistRegistry) {
				assert.NotNil(t, reg)
				assert.True(t, reg.IsBlacklisted(domain.PublicKeyID(bannedCreator)))
				assert.False(t, reg.IsBlacklisted(domain.PublicKeyID(otherCreator)))
			},
		},
		{
			name: "lookup is case insensitive",
			setupMocks: func(mockFS *mocks.MockFileSystem, mockJSON *mocks.MockJSON) {
				mockFS.
					EXPECT().
					ReadFile("blacklist.json").
					Return([]byte(`{"version":1,"creators":["02AABBCCDDEEFF00112233445566778899AABBCCDDEEFF00112233445566778899"]}`), nil)
				mockJSON.
					EXPECT().
					Unmarshal(gomock.Any(), gomock.Any()).
					DoAndReturn(func(data []byte, v interface{}) error {
						return json.Unmarshal(data, v)
					})
			},
			validateFunc: func(t *testing.T, reg registry.BlacklistRegistry) {
				assert.True(t, reg.IsBlacklisted(domain.PublicKeyID(bannedCreator)))
			},
		},
		{
			name: "successful load with empty blacklist",
			setupMocks: func(mockFS *mocks.MockFileSystem, mockJSON *mocks.MockJSON) {
				mockFS.
					EXPECT().
					ReadFile("blacklist.json").
					Return([]byte(`{"version":1,"creators":[]}`), nil)
				mockJSON.
					EXPECT().
					Unmarshal(gomock.Any(), gomock.Any()).
					DoAndReturn(func(data []byte, v interface{}) error {
						return json.Unmarshal(data, v)
					})
			},
			validateFunc: func(t *testing.T, reg registry.BlacklistRegistry) {
				assert.False(t, reg.IsBlacklisted(domain.PublicKeyID(bannedCreator)))
			},
		},
		{
			name: "file read failure",
			setupMocks: func(mockFS *mocks.MockFileSystem, mockJSON *mocks.MockJSON) {
				mockFS.
					EXPECT().
					ReadFile("blacklist.json").
					Return(nil, errors.New("no such file"))
			},
			expectedErr: "failed to read blacklist file",
		},
		{
			name: "malformed JSON",
			setupMocks: func(mockFS *mocks.MockFileSystem, mockJSON *mocks.MockJSON) {
				mockFS.
					EXPECT().
					ReadFile("blacklist.json").
					Return([]byte(`{not json`), nil)
				mockJSON.
					EXPECT().
					Unmarshal(gomock.Any(), gomock.Any()).
					DoAndReturn(func(data []byte, v interface{}) error {
						return json.Unmarshal(data, v)
					})
			},
			expectedErr: "failed to parse blacklist JSON",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			mockFS := mocks.NewMockFileSystem(ctrl)
			mockJSON := mocks.NewMockJSON(ctrl)
			tt.setupMocks(mockFS, mockJSON)

			loader := registry.NewBlacklistRegistryLoader(mockFS, mockJSON)
			reg, err := loader.Load("blacklist.json")

			if tt.expectedErr != "" {
				assert.ErrorContains(t, err, tt.expectedErr)
				assert.Nil(t, reg)
				return
			}

			assert.NoError(t, err)
			tt.validateFunc(t, reg)
		})
	}
}

func TestEmptyBlacklist(t *testing.T) {
	reg := registry.Empty()
	assert.False(t, reg.IsBlacklisted(domain.PublicKeyID(bannedCreator)))
}
