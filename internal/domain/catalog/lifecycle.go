package catalog

import (
	"fmt"
	"time"
)

// LifecycleStage is the time-based merchandising state of an item.
type LifecycleStage string

const (
	// StageNew covers the initial listing window
	StageNew LifecycleStage = "NEW"
	// StageCurated covers the curated storefront window
	StageCurated LifecycleStage = "CURATED"
	// StageArchive covers the long-tail archive window
	StageArchive LifecycleStage = "ARCHIVE"
	// StageClearance covers items past every merchandising window
	StageClearance LifecycleStage = "CLEARANCE"
)

// String returns the string representation of the stage.
func (s LifecycleStage) String() string {
	return string(s)
}

// Category returns the merchandising category a stage maps to.
func (s LifecycleStage) Category() Category {
	switch s {
	case StageNew:
		return CategoryNew
	case StageCurated:
		return CategoryCurated
	case StageArchive:
		return CategoryArchive
	default:
		return CategoryClearance
	}
}

// LifecycleThresholds holds the day cutoffs between stages. The historical
// code shipped two incompatible tables (30/60/150 in the lifecycle manager,
// 7/21 in a merchandising helper); the 30/60/150 table is canonical here and
// the 7/21 variant is retired. Thresholds stay a value type so callers and
// tests can substitute their own.
type LifecycleThresholds struct {
	NewDays     int
	CuratedDays int
	ArchiveDays int
}

// DefaultLifecycleThresholds returns the canonical 30/60/150-day table.
func DefaultLifecycleThresholds() LifecycleThresholds {
	return LifecycleThresholds{NewDays: 30, CuratedDays: 60, ArchiveDays: 150}
}

// Validate checks that the cutoffs are positive and strictly increasing,
// which is what makes the stage function monotonic in age.
func (t LifecycleThresholds) Validate() error {
	if t.NewDays <= 0 || t.CuratedDays <= t.NewDays || t.ArchiveDays <= t.CuratedDays {
		return fmt.Errorf("lifecycle thresholds must be positive and increasing, got %d/%d/%d",
			t.NewDays, t.CuratedDays, t.ArchiveDays)
	}
	return nil
}

// Lifecycle describes the stage derived for an item at a point in time.
type Lifecycle struct {
	Stage     LifecycleStage
	DaysSince int
	Reason    string
}

// LifecycleFor derives the merchandising stage from the registration date. A
// non-zero override date replaces the registration date (manual re-aging).
// The result is monotonic non-decreasing in age for any valid threshold set.
func LifecycleFor(registeredAt time.Time, override *time.Time, now time.Time, t LifecycleThresholds) Lifecycle {
	start := registeredAt
	if override != nil && !override.IsZero() {
		start = *override
	}
	if start.IsZero() {
		return Lifecycle{Stage: StageNew, DaysSince: 0, Reason: "no registration date"}
	}

	days := int(now.Sub(start).Hours() / 24)
	if days < 0 {
		days = 0
	}

	switch {
	case days <= t.NewDays:
		return Lifecycle{Stage: StageNew, DaysSince: days,
			Reason: fmt.Sprintf("%d days since registration (0-%d: NEW)", days, t.NewDays)}
	case days <= t.CuratedDays:
		return Lifecycle{Stage: StageCurated, DaysSince: days,
			Reason: fmt.Sprintf("%d days since registration (%d-%d: CURATED)", days, t.NewDays+1, t.CuratedDays)}
	case days <= t.ArchiveDays:
		return Lifecycle{Stage: StageArchive, DaysSince: days,
			Reason: fmt.Sprintf("%d days since registration (%d-%d: ARCHIVE)", days, t.CuratedDays+1, t.ArchiveDays)}
	default:
		return Lifecycle{Stage: StageClearance, DaysSince: days,
			Reason: fmt.Sprintf("%d days since registration (over %d: CLEARANCE)", days, t.ArchiveDays)}
	}
}
