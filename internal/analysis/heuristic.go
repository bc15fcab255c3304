// Package analysis implements the deterministic heuristic analyzer: the
// keyword/threshold scoring algorithm that reduces a set of raw answers to a
// performance color, a bounded signal score, and a list of action items. It
// is a pure function of its input and requires no external service.
package analysis

import (
	"strings"

	"teampulse/internal/model"
)

// Classification is the per-answer sentiment bucket
type Classification int

const (
	Neutral Classification = iota
	Positive
	Negative
)

var positiveKeywords = []string{"proud", "achievement", "value", "enjoy", "improved", "learned"}
var negativeKeywords = []string{"struggle", "difficult", "draining", "exhausted", "challenge", "hard"}

// tierRule maps ratio thresholds to an analysis outcome. Rules are evaluated
// in order; the first match wins, which keeps the priority auditable.
type tierRule struct {
	minPositiveRatio float64
	maxNegativeRatio float64
	color            model.PerformanceColor
	severity         model.Severity
	score            int
	summary          string
}

var tierRules = []tierRule{
	{0.6, 0.2, model.ColorGreen, model.SeverityLow, 8,
		"Strong performance with clear progress and positive engagement"},
	{0.4, 0.3, model.ColorYellow, model.SeverityMedium, 6,
		"Good performance with some areas needing attention"},
}

// redTier is the fallthrough when no rule matches. Some ratio combinations
// (e.g. positiveRatio=0.5, negativeRatio=0.25) land here even though they sit
// between the yellow and green bands; that gap is intentional and pinned by
// tests.
var redTier = tierRule{0, 1, model.ColorRed, model.SeverityHigh, 4,
	"Performance concerns identified, requires immediate attention"}

var defaultActionItems = map[model.PerformanceColor][]string{
	model.ColorGreen: {
		"Continue current support and development",
		"Document best practices for team sharing",
	},
	model.ColorYellow: {
		"Schedule follow-up 1:1 to discuss concerns",
		"Provide additional support and resources",
	},
	model.ColorRed: {
		"Schedule urgent 1:1 meeting",
		"Develop improvement plan with clear milestones",
		"Consider additional support or role adjustment",
	},
}

// ClassifyAnswer buckets a single answer and returns any action item it
// generates. Malformed or unrecognized shapes classify as neutral with no
// action item; classification never fails.
func ClassifyAnswer(a model.RawAnswer) (Classification, string) {
	switch a.Type {
	case model.AnswerTypeText:
		text := strings.ToLower(a.Value.Text)
		if text == "" {
			return Neutral, ""
		}
		// Positive keywords take priority when both sets match
		for _, kw := range positiveKeywords {
			if strings.Contains(text, kw) {
				return Positive, ""
			}
		}
		for _, kw := range negativeKeywords {
			if strings.Contains(text, kw) {
				return Negative, "Address concerns raised in: " + a.QuestionID
			}
		}
		return Neutral, ""

	case model.AnswerTypeRating:
		r := a.Value.Rating
		if r < 1 {
			// Missing or out-of-range rating, treat as neutral
			return Neutral, ""
		}
		if r >= 7 {
			return Positive, ""
		}
		if r <= 4 {
			return Negative, ""
		}
		return Neutral, ""

	case model.AnswerTypeBoolean:
		switch {
		case strings.EqualFold(a.Value.YesNo, "Yes"):
			return Positive, ""
		case strings.EqualFold(a.Value.YesNo, "No"):
			return Negative, "Follow up on: " + a.QuestionID
		default:
			return Neutral, ""
		}

	default:
		// Single-choice labels and unknown types have no scoring rule
		return Neutral, ""
	}
}

// Analyze derives a SignalAnalysis from a set of raw answers. It is total:
// every answer is classified (malformed ones as neutral) and every answer
// counts toward the ratio denominator. The score is always one of {4, 6, 8}
// and the action item list is never empty.
func Analyze(answers []model.RawAnswer) model.SignalAnalysis {
	var positive, negative int
	var actionItems []string

	for _, a := range answers {
		class, item := ClassifyAnswer(a)
		switch class {
		case Positive:
			positive++
		case Negative:
			negative++
		}
		if item != "" {
			actionItems = append(actionItems, item)
		}
	}

	var positiveRatio, negativeRatio float64
	if total := len(answers); total > 0 {
		positiveRatio = float64(positive) / float64(total)
		negativeRatio = float64(negative) / float64(total)
	}

	tier := redTier
	for _, rule := range tierRules {
		if positiveRatio >= rule.minPositiveRatio && negativeRatio <= rule.maxNegativeRatio {
			tier = rule
			break
		}
	}

	if len(actionItems) == 0 {
		actionItems = append(actionItems, defaultActionItems[tier.color]...)
	}

	return model.SignalAnalysis{
		Color:       tier.color,
		Severity:    tier.severity,
		Score:       tier.score,
		Summary:     tier.summary,
		ActionItems: actionItems,
	}
}

// DefaultActionItems returns the fixed fallback action items for a color.
// Shared with the inferred path, which applies the same never-empty guarantee.
func DefaultActionItems(color model.PerformanceColor) []string {
	items := defaultActionItems[color]
	out := make([]string, len(items))
	copy(out, items)
	return out
}
