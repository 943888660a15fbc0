package handler

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"orderdash/internal/ledger"
	"orderdash/internal/model"
	"orderdash/internal/service"
	"orderdash/internal/store"
)

func fixtureService(target store.Target) *service.FollowupService {
	orders := []model.Order{
		{ID: "INQ-1", Date: time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC), Product: "Rotary Brush Head", Total: 500},
		{ID: "INQ-2", Date: time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC), Product: "Widget A", Total: 300},
	}
	cache := ledger.NewCache(time.Hour, func() ([]model.Order, []ledger.Exclusion, error) {
		return orders, nil, nil
	})
	return service.NewFollowupService(cache, store.NewSyncer(target, ""), nil, 0, 5)
}

func TestListFollowupsHandler(t *testing.T) {
	h := ListFollowupsHandler(fixtureService(store.NewMemoryTarget()))

	req := httptest.NewRequest(http.MethodGet, "/api/followups", nil)
	rec := httptest.NewRecorder()
	h(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Followups []model.Obligation `json:"followups"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	require.Len(t, resp.Followups, 1)
	assert.Equal(t, "INQ-1", resp.Followups[0].OrderID)
}

func TestListFollowupsHandler_BadTier(t *testing.T) {
	h := ListFollowupsHandler(fixtureService(store.NewMemoryTarget()))

	req := httptest.NewRequest(http.MethodGet, "/api/followups?tier=bogus", nil)
	rec := httptest.NewRecorder()
	h(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestListFollowupsHandler_MethodNotAllowed(t *testing.T) {
	h := ListFollowupsHandler(fixtureService(store.NewMemoryTarget()))

	req := httptest.NewRequest(http.MethodPost, "/api/followups", nil)
	rec := httptest.NewRecorder()
	h(rec, req)

	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestFollowupSummaryHandler(t *testing.T) {
	h := FollowupSummaryHandler(fixtureService(store.NewMemoryTarget()))

	req := httptest.NewRequest(http.MethodGet, "/api/followups/summary", nil)
	rec := httptest.NewRecorder()
	h(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var summary struct {
		Total int `json:"total"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&summary))
	assert.Equal(t, 1, summary.Total)
}

func TestSyncFollowupsHandler_Success(t *testing.T) {
	target := store.NewMemoryTarget()
	h := SyncFollowupsHandler(fixtureService(target))

	req := httptest.NewRequest(http.MethodPost, "/api/followups/sync", nil)
	rec := httptest.NewRecorder()
	h(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var res store.SyncResult
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&res))
	assert.True(t, res.OK)
	assert.Equal(t, 1, res.RowsWritten)
}

func TestSyncFollowupsHandler_StoreFailure(t *testing.T) {
	target := store.NewMemoryTarget()
	target.ReplaceErr = fmt.Errorf("%w: connection refused", store.ErrRemoteUnavailable)
	h := SyncFollowupsHandler(fixtureService(target))

	req := httptest.NewRequest(http.MethodPost, "/api/followups/sync", nil)
	rec := httptest.NewRecorder()
	h(rec, req)

	require.Equal(t, http.StatusBadGateway, rec.Code)

	var res store.SyncResult
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&res))
	assert.False(t, res.OK)
	assert.Contains(t, res.Message, "check the target exists and is writable")
}

func TestStoreContentsHandler(t *testing.T) {
	target := store.NewMemoryTarget()
	svc := fixtureService(target)

	res := svc.Sync(httptest.NewRequest(http.MethodPost, "/", nil).Context(), time.Now())
	require.True(t, res.OK)

	h := StoreContentsHandler(svc)
	req := httptest.NewRequest(http.MethodGet, "/api/followups/store", nil)
	rec := httptest.NewRecorder()
	h(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Headers []string   `json:"headers"`
		Rows    [][]string `json:"rows"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, store.Headers, resp.Headers)
	require.Len(t, resp.Rows, 1)
	assert.Equal(t, "INQ-1", resp.Rows[0][1])
}

func TestStoreContentsHandler_EmptyTarget(t *testing.T) {
	h := StoreContentsHandler(fixtureService(store.NewMemoryTarget()))

	req := httptest.NewRequest(http.MethodGet, "/api/followups/store", nil)
	rec := httptest.NewRecorder()
	h(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Rows [][]string `json:"rows"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Empty(t, resp.Rows)
}

func TestParseTier(t *testing.T) {
	tests := []struct {
		in   string
		want model.UrgencyTier
		ok   bool
	}{
		{"", "", true},
		{"overdue", model.TierOverdue, true},
		{"WEEK", model.TierDueThisWeek, true},
		{"month", model.TierDueThisMonth, true},
		{"future", model.TierFuture, true},
		{"due this week", model.TierDueThisWeek, true},
		{"someday", "", false},
	}
	for _, tt := range tests {
		got, ok := parseTier(tt.in)
		assert.Equal(t, tt.ok, ok, "input %q", tt.in)
		assert.Equal(t, tt.want, got, "input %q", tt.in)
	}
}
