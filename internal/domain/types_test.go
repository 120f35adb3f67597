package domain_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/metanet-market/marketd/internal/domain"
)

func TestPublicKeyID_Valid(t *testing.T) {
	tests := []struct {
		name  string
		key   domain.PublicKeyID
		valid bool
	}{
		{
			name:  "valid compressed key with 02 prefix",
			key:   "02e5a1f6a8b9c0d1e2f3a4b5c6d7e8f9a0b1c2d3e4f5a6b7c8d9e0f1a2b3c4d5e6",
			valid: true,
		},
		{
			name:  "valid compressed key with 03 prefix",
			key:   "03a1b2c3d4e5f6a7b8c9d0e1f2a3b4c5d6e7f8a9b0c1d2e3f4a5b6c7d8e9f0a1b2",
			valid: true,
		},
		{
			name:  "uncompressed prefix rejected",
			key:   "04e5a1f6a8b9c0d1e2f3a4b5c6d7e8f9a0b1c2d3e4f5a6b7c8d9e0f1a2b3c4d5e6",
			valid: false,
		},
		{
			name:  "too short",
			key:   "02e5a1",
			valid: false,
		},
		{
			name:  "not hex",
			key:   "02zza1f6a8b9c0d1e2f3a4b5c6d7e8f9a0b1c2d3e4f5a6b7c8d9e0f1a2b3c4d5e6",
			valid: false,
		},
		{
			name:  "empty",
			key:   "",
			valid: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.valid, tt.key.Valid())
		})
	}
}

func TestPublicKeyID_BytesRoundTrip(t *testing.T) {
	key := domain.PublicKeyID("02e5a1f6a8b9c0d1e2f3a4b5c6d7e8f9a0b1c2d3e4f5a6b7c8d9e0f1a2b3c4d5e6")

	raw, err := key.Bytes()
	require.NoError(t, err)
	assert.Len(t, raw, domain.PublicKeyLength)

	back, err := domain.PublicKeyIDFromBytes(raw)
	require.NoError(t, err)
	assert.Equal(t, key, back)
}

func TestParseOutpoint(t *testing.T) {
	txid := "aa11223344556677889900aabbccddeeff00112233445566778899aabbccddee"

	op, err := domain.ParseOutpoint(txid + ".3")
	require.NoError(t, err)
	assert.Equal(t, txid, op.TxID)
	assert.Equal(t, uint32(3), op.OutputIndex)
	assert.Equal(t, txid+".3", op.String())

	_, err = domain.ParseOutpoint("no-dot-here")
	assert.Error(t, err)

	_, err = domain.ParseOutpoint("deadbeef.1")
	assert.Error(t, err, "short txid must be rejected")

	_, err = domain.ParseOutpoint(txid + ".notanumber")
	assert.Error(t, err)
}

func TestErrorKindMatching(t *testing.T) {
	cause := errors.New("connection refused")
	err := domain.NewError(domain.ErrBroadcast, "broadcast", cause)

	assert.Equal(t, domain.ErrBroadcast, domain.KindOf(err))
	assert.True(t, domain.IsKind(err, domain.ErrBroadcast))
	assert.False(t, domain.IsKind(err, domain.ErrPayment))
	assert.True(t, errors.Is(err, domain.NewError(domain.ErrBroadcast, "", nil)))
	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "broadcast_failed")
	assert.Contains(t, err.Error(), "broadcast")

	// Wrapped one level deeper, the kind still resolves
	wrapped := domain.NewError(domain.ErrWithdraw, "sweep", err)
	assert.Equal(t, domain.ErrWithdraw, domain.KindOf(wrapped))
}

func TestRetryable(t *testing.T) {
	assert.True(t, domain.Retryable(domain.NewError(domain.ErrPayment, "", nil)))
	assert.True(t, domain.Retryable(domain.NewError(domain.ErrPendingKeyExchange, "", nil)))
	assert.True(t, domain.Retryable(domain.NewError(domain.ErrIntegrity, "", nil)))
	assert.False(t, domain.Retryable(domain.NewError(domain.ErrInvalidInput, "", nil)))
	assert.False(t, domain.Retryable(domain.NewError(domain.ErrInvalidTransition, "", nil)))
	assert.False(t, domain.Retryable(errors.New("untyped")))
}
