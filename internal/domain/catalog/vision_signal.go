package catalog

import (
	"time"

	"github.com/brownstreet/backend/internal/domain/shared"
)

// VisionStatus tracks the lifecycle of a vision analysis result.
type VisionStatus string

const (
	// VisionPending means analysis has been requested but not finished
	VisionPending VisionStatus = "pending"
	// VisionCompleted means the vision collaborator returned a result
	VisionCompleted VisionStatus = "completed"
	// VisionManual means a human corrected or entered the result
	VisionManual VisionStatus = "manual"
	// VisionFailed means analysis failed
	VisionFailed VisionStatus = "failed"
)

// IsValid returns true if the status is a known value.
func (s VisionStatus) IsValid() bool {
	switch s {
	case VisionPending, VisionCompleted, VisionManual, VisionFailed:
		return true
	default:
		return false
	}
}

// Trustworthy reports whether the signal's structured attributes should be
// treated as truth when merging classifications.
func (s VisionStatus) Trustworthy() bool {
	return s == VisionCompleted || s == VisionManual
}

// CanTransitionTo enforces the allowed status transitions:
// pending → completed, pending → failed, and any state → manual.
func (s VisionStatus) CanTransitionTo(next VisionStatus) bool {
	if next == VisionManual {
		return true
	}
	if s == VisionPending {
		return next == VisionCompleted || next == VisionFailed
	}
	return false
}

// VisionSignal is the structured result the vision collaborator produced for
// one item. One signal exists per item; re-analysis overwrites it.
type VisionSignal struct {
	ProductNo   string
	Brand       string
	GarmentType string
	GarmentSub  string
	Gender      string
	Grade       string
	GradeReason string
	Colors      []string
	Pattern     string
	Fabric      string
	Size        string
	Confidence  int
	Status      VisionStatus
	Error       string
	UpdatedAt   time.Time
}

// Transition moves the signal to a new status, enforcing the allowed edges.
func (v *VisionSignal) Transition(next VisionStatus) error {
	if !next.IsValid() {
		return shared.NewDomainError("INVALID_VISION_STATUS", "unknown vision status: "+string(next))
	}
	if !v.Status.CanTransitionTo(next) {
		return shared.NewDomainError("INVALID_VISION_TRANSITION",
			"vision status cannot move from "+string(v.Status)+" to "+string(next))
	}
	v.Status = next
	return nil
}
