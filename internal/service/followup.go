package service

import (
	"context"
	"fmt"
	"time"

	"orderdash/internal/followup"
	"orderdash/internal/ledger"
	"orderdash/internal/model"
	"orderdash/internal/store"
)

// FollowupService wires the extractor and scheduler over the cached ledger
// and drives pushes to the follow-up store. Keywords and the due-date offset
// are injected so nothing here reads global state or the system clock.
type FollowupService struct {
	cache      *ledger.Cache
	syncer     *store.Syncer
	keywords   []string
	offsetDays int
	topN       int
}

func NewFollowupService(cache *ledger.Cache, syncer *store.Syncer, keywords []string, offsetDays, topN int) *FollowupService {
	if len(keywords) == 0 {
		keywords = followup.DefaultKeywords
	}
	if offsetDays <= 0 {
		offsetDays = followup.DefaultOffsetDays
	}
	return &FollowupService{
		cache:      cache,
		syncer:     syncer,
		keywords:   keywords,
		offsetDays: offsetDays,
		topN:       topN,
	}
}

// List computes the current obligation set, urgency evaluated at ref. tier
// filters to one urgency tier when non-empty. Orders the scheduler could not
// handle come back in the skipped list.
func (s *FollowupService) List(ref time.Time, tier model.UrgencyTier) ([]model.Obligation, []followup.Skipped, error) {
	obligations, skipped, err := s.compute(ref)
	if err != nil {
		return nil, nil, err
	}

	if tier == "" {
		return obligations, skipped, nil
	}

	filtered := make([]model.Obligation, 0, len(obligations))
	for _, ob := range obligations {
		if ob.Urgency == tier {
			filtered = append(filtered, ob)
		}
	}
	return filtered, skipped, nil
}

// Summary computes the scheduler's headline numbers at ref.
func (s *FollowupService) Summary(ref time.Time) (*followup.Summary, error) {
	obligations, _, err := s.compute(ref)
	if err != nil {
		return nil, err
	}
	summary := followup.Summarize(obligations, s.topN)
	return &summary, nil
}

// Sync recomputes the obligation set at ref and pushes it to the store.
// All failures, including a ledger that will not load, come back as a
// SyncResult value.
func (s *FollowupService) Sync(ctx context.Context, ref time.Time) store.SyncResult {
	obligations, _, err := s.compute(ref)
	if err != nil {
		return store.SyncResult{
			Message: fmt.Sprintf("sync aborted, ledger unavailable: %v", err),
		}
	}
	return s.syncer.Push(ctx, obligations, ref)
}

// StoreContents pulls the store's current rows for display or drift checks.
func (s *FollowupService) StoreContents(ctx context.Context) ([][]string, error) {
	return s.syncer.Pull(ctx)
}

func (s *FollowupService) compute(ref time.Time) ([]model.Obligation, []followup.Skipped, error) {
	orders, _, err := s.cache.Snapshot()
	if err != nil {
		return nil, nil, fmt.Errorf("load ledger: %w", err)
	}
	qualifying := followup.Extract(orders, s.keywords)
	obligations, skipped := followup.Schedule(qualifying, s.offsetDays, ref)
	return obligations, skipped, nil
}
