package sweeper_test

import (
	"context"
	"errors"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/metanet-market/marketd/internal/account"
	"github.com/metanet-market/marketd/internal/codec"
	"github.com/metanet-market/marketd/internal/domain"
	"github.com/metanet-market/marketd/internal/logger"
	"github.com/metanet-market/marketd/internal/mocks"
	"github.com/metanet-market/marketd/internal/sweeper"
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
	txA        = "f1d2d2f924e986ac86fdf7b36c94bcdf32beec15192e28e748c1d233f2b0e9a0"
	txB        = "60303ae22b998861bce3b28f33eec1be758a213c86c93c076dbe9f558c11c752"
)

func expiredToken(t *testing.T, txid string) *token.ListingToken {
	t.Helper()
	deadline := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)
	fields := []codec.FieldValue{
		codec.Text("stale"),
		codec.Integer(40),
		codec.Locator(""),
		codec.Integer(uint64(deadline.Unix())),
		codec.Locator("uhrp://zQmFile"),
		codec.Text(""),
		codec.PublicKey(creatorKey),
		codec.Integer(500),
	}
	tok := token.New(domain.Outpoint{TxID: txid, OutputIndex: 0}, fields, codec.FullListingSchema)
	require.NoError(t, tok.MarkExpired(deadline.Add(time.Hour)))
	return tok
}

func testConfig() *sweeper.ExpirySweeperConfig {
	return &sweeper.ExpirySweeperConfig{
		Creator:  creatorKey,
		Interval: time.Minute,
	}
}

func TestExpirySweeper_Name(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	s := sweeper.NewExpirySweeper(testConfig(), mocks.NewMockAccountView(ctrl), mocks.NewMockClock(ctrl))
	assert.Equal(t, "expiry-sweeper", s.Name())
}

func TestExpirySweeper_ReclaimsExpiredListings(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockView := mocks.NewMockAccountView(ctrl)
	mockClock := mocks.NewMockClock(ctrl)

	first := expiredToken(t, txA)
	second := expiredToken(t, txB)

	mockView.
		EXPECT().
		Snapshot(gomock.Any(), creatorKey).
		Return(&account.Snapshot{Creator: creatorKey, Expired: []*token.ListingToken{first, second}}, nil)

	// One stuck output never stalls the rest of the cycle
	mockView.EXPECT().RemoveExpired(gomock.Any(), first).Return(errors.New("output already gone"))
	mockView.EXPECT().RemoveExpired(gomock.Any(), second).Return(nil)

	// Stop after the first cycle by never firing the interval timer
	mockClock.EXPECT().After(time.Minute).Return(make(chan time.Time)).AnyTimes()

	s := sweeper.NewExpirySweeper(testConfig(), mockView, mockClock)

	done := make(chan error, 1)
	go func() {
		done <- s.Start(context.Background())
	}()

	// Give the first cycle time to run, then stop
	time.Sleep(50 * time.Millisecond)

	stopCtx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	require.NoError(t, s.Stop(stopCtx))

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("sweeper did not stop")
	}
}

func TestExpirySweeper_SkipsAlreadySpentTokens(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockView := mocks.NewMockAccountView(ctrl)
	mockClock := mocks.NewMockClock(ctrl)

	spent := expiredToken(t, txA)
	require.NoError(t, spent.MarkSpent())

	mockView.
		EXPECT().
		Snapshot(gomock.Any(), creatorKey).
		Return(&account.Snapshot{Creator: creatorKey, Expired: []*token.ListingToken{spent}}, nil)
	// No RemoveExpired call for a token that is no longer Expired

	mockClock.EXPECT().After(time.Minute).Return(make(chan time.Time)).AnyTimes()

	s := sweeper.NewExpirySweeper(testConfig(), mockView, mockClock)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- s.Start(ctx)
	}()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("sweeper did not stop")
	}
}

func TestExpirySweeper_DoubleStart(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockView := mocks.NewMockAccountView(ctrl)
	mockClock := mocks.NewMockClock(ctrl)

	mockView.
		EXPECT().
		Snapshot(gomock.Any(), creatorKey).
		Return(&account.Snapshot{Creator: creatorKey}, nil).
		AnyTimes()
	mockClock.EXPECT().After(time.Minute).Return(make(chan time.Time)).AnyTimes()

	s := sweeper.NewExpirySweeper(testConfig(), mockView, mockClock)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	done := make(chan error, 1)
	go func() {
		done <- s.Start(ctx)
	}()
	time.Sleep(50 * time.Millisecond)

	assert.ErrorContains(t, s.Start(ctx), "already running")

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("sweeper did not stop")
	}
}

func TestExpirySweeper_StopWhenNotRunning(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	s := sweeper.NewExpirySweeper(testConfig(), mocks.NewMockAccountView(ctrl), mocks.NewMockClock(ctrl))
	assert.NoError(t, s.Stop(context.Background()))
}

func TestExpirySweeper_ConcurrentStop(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockView := mocks.NewMockAccountView(ctrl)
	mockClock := mocks.NewMockClock(ctrl)

	mockView.
		EXPECT().
		Snapshot(gomock.Any(), creatorKey).
		Return(&account.Snapshot{Creator: creatorKey}, nil).
		AnyTimes()
	mockClock.EXPECT().After(time.Minute).Return(make(chan time.Time)).AnyTimes()

	s := sweeper.NewExpirySweeper(testConfig(), mockView, mockClock)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	done := make(chan error, 1)
	go func() {
		done <- s.Start(ctx)
	}()
	time.Sleep(50 * time.Millisecond)

	// Two stops racing must both return cleanly, not double-close
	var wg sync.WaitGroup
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.NoError(t, s.Stop(context.Background()))
		}()
	}
	wg.Wait()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("sweeper did not stop")
	}
}
