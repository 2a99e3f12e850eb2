package classify

import (
	"math"
	"strings"

	"github.com/brownstreet/backend/internal/domain/catalog"
)

// Confidence weighting for the merge. Text rules are cheap and noisy, vision
// is slow and specific, so vision carries the larger share. Agreement between
// independent signals earns a bonus.
const (
	ruleWeight         = 0.4
	visionWeight       = 0.6
	brandAgreeBoost    = 15
	categoryTierBoost  = 10
	registryMatchBoost = 10
)

// Merged is the reconciled classification for one item.
type Merged struct {
	Category    *catalog.Category
	Brand       string
	BrandTier   catalog.BrandTier
	GarmentType string
	GarmentSub  string
	Grade       string
	Colors      []string
	Pattern     string
	Fabric      string
	Size        string
	Confidence  int
	Reason      string
}

// Merge reconciles the rule classifier's verdict with the vision signal and
// the manual brand registry. It is a pure function of its inputs: vision
// fields win for structured attributes when the signal is trustworthy, the
// registry overrides brand identity when it matches, and the confidences are
// combined as a fixed 40/60 weighted average with agreement bonuses.
func Merge(rule Result, brand string, vision *catalog.VisionSignal, entry *catalog.BrandRegistryEntry) Merged {
	m := Merged{
		Category:   rule.Category,
		Brand:      brand,
		BrandTier:  catalog.TierOther,
		Confidence: rule.Confidence,
		Reason:     rule.Reason,
	}

	trustVision := vision != nil && vision.Status.Trustworthy()

	if trustVision {
		m.GarmentType = vision.GarmentType
		m.GarmentSub = vision.GarmentSub
		m.Grade = vision.Grade
		m.Colors = vision.Colors
		m.Pattern = vision.Pattern
		m.Fabric = vision.Fabric
		m.Size = vision.Size

		confidence := int(math.Round(float64(rule.Confidence)*ruleWeight + float64(vision.Confidence)*visionWeight))
		if vision.Brand != "" && strings.EqualFold(vision.Brand, brand) {
			confidence += brandAgreeBoost
		}
		if vision.Brand != "" && m.Brand == "" {
			m.Brand = vision.Brand
		}
		m.Confidence = confidence
	}

	if entry != nil {
		m.Brand = entry.Name
		m.BrandTier = entry.Tier
		m.Confidence += registryMatchBoost
		if rule.Category != nil && tierMatchesCategory(entry.Tier, *rule.Category) {
			m.Confidence += categoryTierBoost
		}
	}

	if m.Confidence > 100 {
		m.Confidence = 100
	}
	if m.Confidence < 0 {
		m.Confidence = 0
	}
	return m
}

// tierMatchesCategory reports whether a registry tier corroborates an archive
// category.
func tierMatchesCategory(tier catalog.BrandTier, c catalog.Category) bool {
	switch tier {
	case catalog.TierMilitary:
		return c == catalog.CategoryMilitary
	case catalog.TierWorkwear:
		return c == catalog.CategoryWorkwear
	case catalog.TierJapan:
		return c == catalog.CategoryJapan
	case catalog.TierHeritage:
		return c == catalog.CategoryHeritage
	case catalog.TierBritish:
		return c == catalog.CategoryBritish
	default:
		return false
	}
}
