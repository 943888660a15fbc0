package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"orderdash/internal/ledger"
	"orderdash/internal/model"
	"orderdash/internal/service"
)

func fixtureReportService() *service.ReportService {
	orders := []model.Order{
		{ID: "INQ-1", Date: time.Date(2024, time.January, 5, 0, 0, 0, 0, time.UTC),
			Year: 2024, Month: time.January, Company: "Acme", Product: "Brush A",
			State: "Gujarat", Total: 800, Quantity: 2},
		{ID: "INQ-2", Date: time.Date(2024, time.February, 2, 0, 0, 0, 0, time.UTC),
			Year: 2024, Month: time.February, Company: "Globex", Product: "Widget",
			State: "Kerala", Total: 200, Quantity: 1},
	}
	cache := ledger.NewCache(time.Hour, func() ([]model.Order, []ledger.Exclusion, error) {
		return orders, nil, nil
	})
	return service.NewReportService(cache)
}

func TestOverviewHandler(t *testing.T) {
	h := OverviewHandler(fixtureReportService())

	req := httptest.NewRequest(http.MethodGet, "/api/summary", nil)
	rec := httptest.NewRecorder()
	h(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var ov model.Overview
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&ov))
	assert.Equal(t, 2, ov.TotalOrders)
	assert.Equal(t, 1000.0, ov.TotalRevenue)
}

func TestTopProductsHandler_BadLimit(t *testing.T) {
	h := TopProductsHandler(fixtureReportService(), 10)

	req := httptest.NewRequest(http.MethodGet, "/api/reports/products?limit=zero", nil)
	rec := httptest.NewRecorder()
	h(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestExclusionsHandler_NoContent(t *testing.T) {
	h := ExclusionsHandler(fixtureReportService())

	req := httptest.NewRequest(http.MethodGet, "/api/ledger/exclusions", nil)
	rec := httptest.NewRecorder()
	h(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
}
