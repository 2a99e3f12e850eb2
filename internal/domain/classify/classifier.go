// Package classify derives merchandising classifications for second-hand
// apparel from product text, vision analysis, and the manual brand registry.
// Everything here is pure computation; no I/O.
package classify

import (
	"strings"

	"github.com/brownstreet/backend/internal/domain/catalog"
)

// Result is the rule classifier's verdict for one item. Category is nil when
// no rule scored at or above the acceptance floor; Confidence is then 0.
type Result struct {
	Category   *catalog.Category
	Confidence int
	Reason     string
}

// Classifier scores product text against an immutable rule set.
type Classifier struct {
	rules RuleSet
}

// NewClassifier builds a classifier over the given rule set. Passing the
// rules in at construction keeps the tables out of package-level state and
// lets tests substitute their own.
func NewClassifier(rules RuleSet) *Classifier {
	return &Classifier{rules: rules}
}

// Classify scores the item's name and brand against every rule and returns
// the best-scoring category. Scoring: BrandMatchWeight once per rule whose
// brand list matches the brand text, KeywordMatchWeight per keyword found in
// the combined text. Ties go to the first-declared rule.
func (c *Classifier) Classify(name, brand string) Result {
	text := strings.ToUpper(name + " " + brand)
	brandText := strings.ToUpper(brand)

	var (
		winner   *CategoryRule
		maxScore int
		reasons  []string
	)

	for i := range c.rules {
		rule := &c.rules[i]
		score := 0
		var ruleReasons []string

		for _, b := range rule.Brands {
			if strings.Contains(brandText, b) {
				score += BrandMatchWeight
				ruleReasons = append(ruleReasons, rule.BrandLabel)
				break
			}
		}

		keywordHit := false
		for _, kw := range rule.Keywords {
			if strings.Contains(text, kw) {
				score += KeywordMatchWeight
				keywordHit = true
			}
		}
		if keywordHit {
			ruleReasons = append(ruleReasons, rule.KeywordsLbl)
		}

		// Strict comparison keeps declaration order as the tie-break.
		if score > maxScore {
			maxScore = score
			winner = rule
			reasons = ruleReasons
		}
	}

	if winner == nil || maxScore < MinScore {
		return Result{Category: nil, Confidence: 0, Reason: "below archive classification floor"}
	}

	cat := winner.Category
	confidence := maxScore
	if confidence > 100 {
		confidence = 100
	}
	return Result{
		Category:   &cat,
		Confidence: confidence,
		Reason:     strings.Join(reasons, ", "),
	}
}
