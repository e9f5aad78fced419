package scoring

import "content_auditor/internal/domain"

type advice struct {
	reason string
	action string
}

var (
	staleContent = advice{
		reason: "Content has not been updated for a long time",
		action: "Review the article and refresh outdated information",
	}
	machineLikeText = advice{
		reason: "Text reads like machine-generated writing",
		action: "Rewrite in a natural voice with concrete examples",
	}
	misinformationRisk = advice{
		reason: "Content may contain inaccurate or misleading claims",
		action: "Fact-check claims and cite reliable sources",
	}
)

var findingAdvice = map[domain.FindingKind]advice{
	domain.FindingAIPhrase: {
		reason: "Uses formulaic AI-style phrasing",
		action: "Replace stock phrases with specific wording",
	},
	domain.FindingBullets: {
		reason: "Relies heavily on bullet lists",
		action: "Turn bullet lists into explanatory paragraphs",
	},
	domain.FindingLongSentence: {
		reason: "Contains overly long sentences",
		action: "Split long sentences into shorter ones",
	},
	domain.FindingMixedTone: {
		reason: "Mixes formal and informal sentence endings",
		action: "Unify the writing style",
	},
	domain.FindingRepetition: {
		reason: "Repeats the same words excessively",
		action: "Vary word choice and remove redundancy",
	},
}

// Explain lists one reason and one action per flagged sub-score and per
// finding, in detection order. Duplicates are kept.
func Explain(sub domain.SubScores, findings []domain.Finding) ([]string, []string) {
	reasons := make([]string, 0, 3+len(findings))
	actions := make([]string, 0, 3+len(findings))

	add := func(a advice) {
		reasons = append(reasons, a.reason)
		actions = append(actions, a.action)
	}

	if sub.Age < subscoreFlagBelow {
		add(staleContent)
	}
	if sub.AIText < subscoreFlagBelow {
		add(machineLikeText)
	}
	if sub.Misinformation < subscoreFlagBelow {
		add(misinformationRisk)
	}
	for _, f := range findings {
		if a, ok := findingAdvice[f.Kind]; ok {
			add(a)
		}
	}

	return reasons, actions
}
