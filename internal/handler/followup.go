package handler

import (
	"log/slog"
	"net/http"
	"strings"
	"time"

	"orderdash/internal/followup"
	"orderdash/internal/model"
	"orderdash/internal/service"
	"orderdash/internal/store"
)

type followupListResponse struct {
	EvaluatedAt time.Time          `json:"evaluated_at"`
	Followups   []model.Obligation `json:"followups"`
	Skipped     []followup.Skipped `json:"skipped,omitempty"`
}

func ListFollowupsHandler(followupSvc *service.FollowupService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}

		tier, ok := parseTier(r.URL.Query().Get("tier"))
		if !ok {
			http.Error(w, "unknown tier, want overdue|week|month|future", http.StatusBadRequest)
			return
		}

		now := time.Now()
		obligations, skipped, err := followupSvc.List(now, tier)
		if err != nil {
			slog.Error("follow-up listing failed", "error", err)
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		writeJSON(w, http.StatusOK, followupListResponse{
			EvaluatedAt: now,
			Followups:   obligations,
			Skipped:     skipped,
		})
	}
}

func FollowupSummaryHandler(followupSvc *service.FollowupService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}

		summary, err := followupSvc.Summary(time.Now())
		if err != nil {
			slog.Error("follow-up summary failed", "error", err)
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		writeJSON(w, http.StatusOK, summary)
	}
}

// SyncFollowupsHandler pushes the current obligation set to the store. The
// push outcome, success or failure, is always a SyncResult body; failures map
// to 502 since the store is the upstream that broke.
func SyncFollowupsHandler(followupSvc *service.FollowupService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}

		result := followupSvc.Sync(r.Context(), time.Now())
		status := http.StatusOK
		if !result.OK {
			status = http.StatusBadGateway
		}
		writeJSON(w, status, result)
	}
}

type storeContentsResponse struct {
	Headers []string   `json:"headers"`
	Rows    [][]string `json:"rows"`
}

func StoreContentsHandler(followupSvc *service.FollowupService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}

		rows, err := followupSvc.StoreContents(r.Context())
		if err != nil {
			slog.Error("follow-up store read failed", "error", err)
			http.Error(w, "follow-up store unavailable", http.StatusBadGateway)
			return
		}

		writeJSON(w, http.StatusOK, storeContentsResponse{
			Headers: store.Headers,
			Rows:    rows,
		})
	}
}

func parseTier(raw string) (model.UrgencyTier, bool) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "":
		return "", true
	case "overdue":
		return model.TierOverdue, true
	case "week", "due this week":
		return model.TierDueThisWeek, true
	case "month", "due this month":
		return model.TierDueThisMonth, true
	case "future":
		return model.TierFuture, true
	default:
		return "", false
	}
}
