package ledger

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"orderdash/internal/model"
)

func TestCache_LoadsOnceWithinTTL(t *testing.T) {
	calls := 0
	cache := NewCache(time.Hour, func() ([]model.Order, []Exclusion, error) {
		calls++
		return []model.Order{{ID: "INQ-1"}}, nil, nil
	})

	orders, _, err := cache.Snapshot()
	require.NoError(t, err)
	require.Len(t, orders, 1)

	_, _, err = cache.Snapshot()
	require.NoError(t, err)
	assert.Equal(t, 1, calls, "second snapshot within TTL must not reload")
}

func TestCache_RefreshForcesReload(t *testing.T) {
	calls := 0
	cache := NewCache(time.Hour, func() ([]model.Order, []Exclusion, error) {
		calls++
		return nil, nil, nil
	})

	require.NoError(t, cache.Refresh())
	require.NoError(t, cache.Refresh())
	assert.Equal(t, 2, calls)
}

func TestCache_FailedReloadKeepsLastGoodSnapshot(t *testing.T) {
	fail := false
	cache := NewCache(time.Hour, func() ([]model.Order, []Exclusion, error) {
		if fail {
			return nil, nil, errors.New("ledger unreachable")
		}
		return []model.Order{{ID: "INQ-1"}}, nil, nil
	})

	_, _, err := cache.Snapshot()
	require.NoError(t, err)

	fail = true
	assert.Error(t, cache.Refresh())

	orders, _, err := cache.Snapshot()
	require.NoError(t, err, "stale snapshot is served after a failed reload")
	assert.Len(t, orders, 1)
}

func TestCache_FirstLoadFailureIsAnError(t *testing.T) {
	cache := NewCache(time.Hour, func() ([]model.Order, []Exclusion, error) {
		return nil, nil, errors.New("no such file")
	})

	_, _, err := cache.Snapshot()
	assert.Error(t, err)
}
