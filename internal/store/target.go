// Package store synchronizes the computed follow-up set to an external
// tabular target with full-replace semantics, and reads it back for
// inspection.
package store

import (
	"context"
	"errors"
)

// Headers is the target's header row, in write order.
var Headers = []string{
	"Purchase Date",
	"Inquiry No",
	"Company Name",
	"Client Name",
	"Product",
	"Quantity",
	"City",
	"State",
	"Total Amount",
	"Follow Up Date",
	"Urgency Status",
	"Last Updated",
	"Data Source",
}

var (
	// ErrRemoteUnavailable marks failures where the target could not be
	// reached and its prior content is known intact.
	ErrRemoteUnavailable = errors.New("follow-up target unavailable")

	// ErrWriteAmbiguous marks failures after clearing or writing may have
	// begun; the target's state is uncertain and callers should pull to
	// verify.
	ErrWriteAmbiguous = errors.New("follow-up target state uncertain")
)

// Target is the external tabular store. It offers no locking and no
// cross-call transaction; callers must not issue concurrent Replace calls
// against the same target.
type Target interface {
	// Replace ensures the target exists with Headers, clears it, and writes
	// rows, as one logical operation. Implementations classify failures by
	// wrapping ErrRemoteUnavailable or ErrWriteAmbiguous.
	Replace(ctx context.Context, rows [][]string) error

	// ReadAll returns every row after the header. A target that does not
	// exist yet yields an empty result, not an error.
	ReadAll(ctx context.Context) ([][]string, error)
}
