package health

import (
	"context"
	"errors"
	"testing"

	"brickshare-backend/internal/middleware"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakePinger struct {
	err error
}

func (f fakePinger) Ping() error { return f.err }

func setupHealthTest(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { rdb.Close() })
	return mr, rdb
}

func TestCollectHealth_AllConnected(t *testing.T) {
	mr, rdb := setupHealthTest(t)
	mr.Set(middleware.KeyReqTotal, "10")
	mr.Set(middleware.KeyReqErrors, "2")
	mr.Set(middleware.KeyResTime, "50")
	mr.Set(middleware.KeyResCount, "10")

	result := CollectHealth(context.Background(), rdb, fakePinger{})

	assert.Equal(t, "ok", result.Status)
	assert.Equal(t, "connected", result.Dependencies["database"].Status)
	assert.Equal(t, "connected", result.Dependencies["redis"].Status)
	assert.Equal(t, 10, result.Traffic.TotalRequests)
	assert.Equal(t, 2, result.Traffic.FailedCount)
	assert.Equal(t, 8, result.Traffic.SuccessCount)
	assert.Equal(t, "80.0", result.Traffic.SuccessRate)
	assert.Equal(t, "5.00", result.Traffic.AvgResponseTime)
}

func TestCollectHealth_NoTraffic(t *testing.T) {
	_, rdb := setupHealthTest(t)

	result := CollectHealth(context.Background(), rdb, nil)

	assert.Equal(t, "ok", result.Status)
	assert.Equal(t, "disconnected", result.Dependencies["database"].Status)
	assert.Equal(t, 0, result.Traffic.TotalRequests)
	assert.Equal(t, "100", result.Traffic.SuccessRate)

	// First collection stamps the start time for uptime reporting
	assert.True(t, rdb.Exists(context.Background(), middleware.KeyStartTime).Val() == 1)
}

func TestCollectHealth_DatabaseError(t *testing.T) {
	_, rdb := setupHealthTest(t)

	result := CollectHealth(context.Background(), rdb, fakePinger{err: errors.New("connection refused")})

	assert.Equal(t, "degraded", result.Status)
	assert.Equal(t, "error", result.Dependencies["database"].Status)
}

func TestResetCounters(t *testing.T) {
	mr, rdb := setupHealthTest(t)
	mr.Set(middleware.KeyReqTotal, "10")
	mr.Set(middleware.KeyReqErrors, "2")
	mr.Set(middleware.KeyResTime, "50")
	mr.Set(middleware.KeyResCount, "10")

	require.NoError(t, ResetCounters(context.Background(), rdb))

	assert.False(t, mr.Exists(middleware.KeyReqTotal))
	assert.False(t, mr.Exists(middleware.KeyReqErrors))

	result := CollectHealth(context.Background(), rdb, nil)
	assert.Equal(t, 0, result.Traffic.TotalRequests)
}
