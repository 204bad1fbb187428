// Package recommend maps questionnaire answers to a program tier.
package recommend

import (
	"fmt"
	"strings"

	"academy-enrollment-api/internal/catalog"
)

// Inputs are the answer fields the classifier reads. Missing answers are
// empty strings.
type Inputs struct {
	HoursPerWeek string
	AIExposure   string
	JobRole      string
}

// Recommendation is the classifier's output: a tier plus a justification
// built from the learner's own answers.
type Recommendation struct {
	ProgramID string   `json:"program_id"`
	Program   string   `json:"program"`
	Duration  string   `json:"duration"`
	Price     string   `json:"price"`
	Reason    string   `json:"reason"`
	Benefits  []string `json:"benefits"`
}

// Classify picks a tier for the given answers. Rules are priority-ordered
// and the first match wins; answers that match no rule fall through to the
// richest tier. Pure and total: any input yields a recommendation.
func Classify(in Inputs) Recommendation {
	hours := in.HoursPerWeek
	exposure := in.AIExposure
	role := in.JobRole

	// Rule 1: little time or no AI exposure. Match the "< 5" bucket
	// exactly; a bare "5 hours" check would also hit "10-15 hours".
	if strings.Contains(hours, "< 5") || strings.Contains(exposure, "Never") {
		p, _ := catalog.ByID(catalog.ProgramQuickStart)
		return Recommendation{
			ProgramID: p.ID,
			Program:   p.Name,
			Duration:  p.Duration,
			Price:     p.PriceRange,
			Reason: fmt.Sprintf(
				"Based on your %s availability and %s with AI, we recommend starting with our Quick Start program to build confidence and momentum.",
				strings.ToLower(hours), strings.ToLower(exposure)),
			Benefits: []string{
				"Perfect for testing the waters",
				"Fits your busy schedule",
				"Quick wins to build momentum",
				"Decide on longer commitment afterward",
			},
		}
	}

	// Rule 2: moderate time or early exposure.
	if strings.Contains(hours, "10-15") || strings.Contains(exposure, "Heard about it") {
		p, _ := catalog.ByID(catalog.ProgramCoreMastery)
		return Recommendation{
			ProgramID: p.ID,
			Program:   p.Name,
			Duration:  p.Duration,
			Price:     p.PriceRange,
			Reason: fmt.Sprintf(
				"With %s and %s AI tools, you're ready for our Core Mastery track. This gives you solid practical skills you can apply immediately as a %s.",
				strings.ToLower(hours), strings.ToLower(exposure), strings.ToLower(role)),
			Benefits: []string{
				"Solid foundation for your role",
				"Hands-on projects you'll use",
				"Community cohort for accountability",
				"Real-world results in 4 weeks",
			},
		}
	}

	// Default: committed learners, and any answer set with no matching
	// signal (including empty input).
	p, _ := catalog.ByID(catalog.ProgramDeepTransformation)
	return Recommendation{
		ProgramID: p.ID,
		Program:   p.Name,
		Duration:  p.Duration,
		Price:     p.PriceRange,
		Reason:    "You've got the time, motivation, and drive for deep transformation. Our 12-week program will take you from fundamentals to advanced mastery with significant income/career impact.",
		Benefits: []string{
			"3x deeper than other programs",
			"Advanced income-generation strategies",
			"Weekly mentorship & Q&A",
			"Alumni network & ongoing support",
		},
	}
}
