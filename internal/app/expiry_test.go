package app

import (
	"context"
	"errors"
	"io"
	"log"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingExpirer struct {
	calls atomic.Int32
	err   error
}

func (e *countingExpirer) ExpireOverdue(ctx context.Context) (int, error) {
	e.calls.Add(1)
	return 1, e.err
}

func TestRunJobExpiryRunsUntilCancelled(t *testing.T) {
	exp := &countingExpirer{}
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		RunJobExpiry(ctx, exp, 10*time.Millisecond, log.New(io.Discard, "", 0))
		close(done)
	}()

	require.Eventually(t, func() bool { return exp.calls.Load() >= 3 }, time.Second, 5*time.Millisecond)
	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("expiry loop did not stop")
	}
}

func TestRunJobExpirySurvivesErrors(t *testing.T) {
	exp := &countingExpirer{err: errors.New("db down")}
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go RunJobExpiry(ctx, exp, 10*time.Millisecond, log.New(io.Discard, "", 0))

	require.Eventually(t, func() bool { return exp.calls.Load() >= 2 }, time.Second, 5*time.Millisecond)
}

func TestRunJobExpiryDisabled(t *testing.T) {
	exp := &countingExpirer{}
	RunJobExpiry(context.Background(), exp, 0, nil)
	assert.Equal(t, int32(0), exp.calls.Load())
}

func TestListenAddr(t *testing.T) {
	addr, err := ListenAddr("8080")
	require.NoError(t, err)
	assert.Equal(t, ":8080", addr)

	addr, err = ListenAddr(":9000")
	require.NoError(t, err)
	assert.Equal(t, ":9000", addr)

	_, err = ListenAddr("  ")
	assert.Error(t, err)
}
