package store

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/google/uuid"

	"orderdash/internal/model"
)

const (
	// DateFormat is how the target serializes calendar dates.
	DateFormat = "02-01-2006"

	timestampFormat = "02-01-2006 15:04:05"

	// DefaultSourceTag is the provenance value written to the Data Source
	// column, identifying this service as the writer.
	DefaultSourceTag = "orderdash follow-up sync"
)

// SyncResult reports the outcome of a push. Failures are values, never
// panics; StateUncertain means the target may have been partially rewritten
// and the caller should pull to verify.
type SyncResult struct {
	OK             bool   `json:"ok"`
	Message        string `json:"message"`
	RowsWritten    int    `json:"rows_written,omitempty"`
	RunID          string `json:"run_id"`
	StateUncertain bool   `json:"state_uncertain,omitempty"`
}

// Syncer pushes obligation sets to a Target and pulls them back. Pushing the
// same set twice leaves the target identical; it is not a no-op, every push
// rewrites the target in full.
type Syncer struct {
	target    Target
	sourceTag string
}

func NewSyncer(target Target, sourceTag string) *Syncer {
	if sourceTag == "" {
		sourceTag = DefaultSourceTag
	}
	return &Syncer{target: target, sourceTag: sourceTag}
}

// Push replaces the target's content with the given obligation set. now is
// recorded in the Last Updated audit column.
func (s *Syncer) Push(ctx context.Context, obligations []model.Obligation, now time.Time) SyncResult {
	runID := uuid.NewString()

	rows := make([][]string, 0, len(obligations))
	for _, ob := range obligations {
		rows = append(rows, s.rowFor(ob, now))
	}

	if err := s.target.Replace(ctx, rows); err != nil {
		res := SyncResult{RunID: runID}
		if errors.Is(err, ErrWriteAmbiguous) {
			res.StateUncertain = true
			res.Message = fmt.Sprintf("push failed mid-write: %v; state uncertain, re-run pull to verify", err)
		} else {
			res.Message = fmt.Sprintf("push failed: %v; check the target exists and is writable", err)
		}
		slog.Error("follow-up push failed", "run_id", runID, "error", err)
		return res
	}

	slog.Info("follow-up set pushed", "run_id", runID, "rows", len(rows))
	return SyncResult{
		OK:          true,
		Message:     fmt.Sprintf("synced %d follow-ups", len(rows)),
		RowsWritten: len(rows),
		RunID:       runID,
	}
}

// Pull reads back the target's full content as raw rows. A missing target is
// an empty result.
func (s *Syncer) Pull(ctx context.Context) ([][]string, error) {
	rows, err := s.target.ReadAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("pull follow-up target: %w", err)
	}
	return rows, nil
}

func (s *Syncer) rowFor(ob model.Obligation, now time.Time) []string {
	return []string{
		ob.OrderDate.Format(DateFormat),
		ob.OrderID,
		ob.Company,
		ob.Client,
		ob.Product,
		strconv.FormatFloat(ob.Quantity, 'f', -1, 64),
		ob.City,
		ob.State,
		strconv.FormatFloat(ob.Total, 'f', 2, 64),
		ob.DueDate.Format(DateFormat),
		string(ob.Urgency),
		now.Format(timestampFormat),
		s.sourceTag,
	}
}
