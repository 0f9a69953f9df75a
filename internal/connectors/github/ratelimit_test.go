package github

import (
	"context"
	"net/http"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRateLimiter_UpdateFromResponse(t *testing.T) {
	rl := NewRateLimiter()
	reset := time.Now().Add(30 * time.Minute).Unix()

	resp := &http.Response{Header: http.Header{}}
	resp.Header.Set(headerRateRemaining, "4200")
	resp.Header.Set(headerRateLimit, "5000")
	resp.Header.Set(headerRateReset, strconv.FormatInt(reset, 10))

	rl.UpdateFromResponse(resp)

	assert.Equal(t, 4200, rl.Remaining())
	assert.Equal(t, time.Unix(reset, 0), rl.ResetTime())
}

func TestRateLimiter_IgnoresNilAndMalformed(t *testing.T) {
	rl := NewRateLimiter()

	rl.UpdateFromResponse(nil)

	resp := &http.Response{Header: http.Header{}}
	resp.Header.Set(headerRateRemaining, "not-a-number")
	rl.UpdateFromResponse(resp)

	assert.Equal(t, AuthenticatedLimit, rl.Remaining())
}

func TestRateLimiter_WaitAllowsWithQuota(t *testing.T) {
	rl := NewRateLimiter()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	require.NoError(t, rl.Wait(ctx))
}

func TestRateLimiter_WaitHonoursCancellation(t *testing.T) {
	rl := NewRateLimiter()

	// Exhaust the quota with a reset far in the future so Wait blocks.
	resp := &http.Response{Header: http.Header{}}
	resp.Header.Set(headerRateRemaining, "0")
	resp.Header.Set(headerRateReset, strconv.FormatInt(time.Now().Add(time.Hour).Unix(), 10))
	rl.UpdateFromResponse(resp)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	err := rl.Wait(ctx)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}
