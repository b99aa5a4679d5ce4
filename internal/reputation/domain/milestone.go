package domain

// Milestone is a one-time achievement over cumulative campaign history.
type Milestone struct {
	ID    string
	Title string
	Bonus int
	Met   func(history []CompletedCampaign) bool
}

// highQualityScore is the minimum client score counted as high quality.
const highQualityScore = 85

// Milestones is the fixed rule table evaluated after every submission. Each
// milestone fires at most once ever, guarded by the achieved set on State.
var Milestones = []Milestone{
	{
		ID: "campaigns_10", Title: "Ten Campaigns Shipped", Bonus: 3,
		Met: func(history []CompletedCampaign) bool { return len(history) >= 10 },
	},
	{
		ID: "campaigns_25", Title: "Twenty-Five Campaigns Shipped", Bonus: 5,
		Met: func(history []CompletedCampaign) bool { return len(history) >= 25 },
	},
	{
		ID: "quality_5", Title: "Five High Scores", Bonus: 3,
		Met: func(history []CompletedCampaign) bool { return countHighQuality(history) >= 5 },
	},
	{
		ID: "quality_10", Title: "Ten High Scores", Bonus: 5,
		Met: func(history []CompletedCampaign) bool { return countHighQuality(history) >= 10 },
	},
	{
		ID: "industries_3", Title: "Three Industries", Bonus: 2,
		Met: func(history []CompletedCampaign) bool { return countIndustries(history) >= 3 },
	},
	{
		ID: "industries_5", Title: "Five Industries", Bonus: 4,
		Met: func(history []CompletedCampaign) bool { return countIndustries(history) >= 5 },
	},
	{
		ID: "under_budget_5", Title: "Five Under Budget", Bonus: 3,
		Met: func(history []CompletedCampaign) bool { return countUnderBudget(history) >= 5 },
	},
}

func countHighQuality(history []CompletedCampaign) int {
	count := 0
	for _, entry := range history {
		if entry.Score >= highQualityScore {
			count++
		}
	}
	return count
}

func countIndustries(history []CompletedCampaign) int {
	seen := make(map[string]bool)
	for _, entry := range history {
		if entry.Industry != "" {
			seen[entry.Industry] = true
		}
	}
	return len(seen)
}

func countUnderBudget(history []CompletedCampaign) int {
	count := 0
	for _, entry := range history {
		if entry.WasUnderBudget {
			count++
		}
	}
	return count
}
