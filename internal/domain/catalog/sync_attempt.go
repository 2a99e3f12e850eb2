package catalog

import (
	"time"

	"github.com/google/uuid"
)

// SyncOutcome is the terminal result of one synchronization attempt.
type SyncOutcome string

const (
	// SyncSuccess means the remote record was updated (or was already correct)
	SyncSuccess SyncOutcome = "SUCCESS"
	// SyncFail means the remote fetch or update failed
	SyncFail SyncOutcome = "FAIL"
)

// SyncAttempt is one append-only audit row. Exactly one row is written per
// item per run, success or failure; rows are never mutated.
type SyncAttempt struct {
	ID             uuid.UUID
	ProductNo      string
	ProductName    string
	TargetCategory string
	Outcome        SyncOutcome
	Skipped        bool
	ErrorMessage   string
	SyncedBy       string
	CreatedAt      time.Time
}

// NewSyncAttempt creates an audit row for one attempt.
func NewSyncAttempt(productNo, productName, targetCategory string, outcome SyncOutcome, skipped bool, errMsg, syncedBy string) *SyncAttempt {
	return &SyncAttempt{
		ID:             uuid.New(),
		ProductNo:      productNo,
		ProductName:    productName,
		TargetCategory: targetCategory,
		Outcome:        outcome,
		Skipped:        skipped,
		ErrorMessage:   errMsg,
		SyncedBy:       syncedBy,
		CreatedAt:      time.Now(),
	}
}
