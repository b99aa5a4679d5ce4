// Package score evaluates finished campaigns.
//
// Evaluation is deterministic with respect to the Seed field on Facts. Given
// the same facts and seed, Evaluate always produces the same Result, which
// keeps scoring reproducible in tests and replays.
package score

import (
	"math"
	"math/rand"
)

// Tier names the quality bracket for a campaign total.
type Tier string

const (
	TierExceptional      Tier = "exceptional"
	TierGreat            Tier = "great"
	TierSolid            Tier = "solid"
	TierNeedsImprovement Tier = "needs_improvement"
)

// Facts are the campaign outcome inputs to evaluation.
type Facts struct {
	ConceptBoldness float64
	TeamSize        int
	ToolsUsed       int
	TotalRevisions  int
	WasUnderBudget  bool

	// BudgetUtilization is production spend over production budget. Values
	// at or below 1 indicate the campaign finished under budget.
	BudgetUtilization float64

	Seed int64
}

// Breakdown carries the four weighted sub-scores, each clamped to 0-100.
type Breakdown struct {
	StrategicFit      int
	ExecutionQuality  int
	BudgetEfficiency  int
	AudienceResonance int
}

// Result is the complete evaluation of one campaign.
type Result struct {
	Total          int
	Breakdown      Breakdown
	Tier           Tier
	Stars          float64
	ReputationGain int
}

// Sub-score weights. Strategic fit and execution dominate; budget and
// audience split the remainder.
const (
	weightStrategicFit      = 0.3
	weightExecutionQuality  = 0.3
	weightBudgetEfficiency  = 0.2
	weightAudienceResonance = 0.2
)

// Evaluate scores a campaign from its outcome facts.
func Evaluate(facts Facts) Result {
	rng := rand.New(rand.NewSource(facts.Seed))

	strategic := clampScore(55 + 30*facts.ConceptBoldness + jitter(rng, 10))
	execution := clampScore(float64(58+5*facts.TeamSize+3*facts.ToolsUsed-4*facts.TotalRevisions) + jitter(rng, 10))
	budget := clampScore(budgetBase(facts.WasUnderBudget, facts.BudgetUtilization) + 25*rng.Float64())
	audience := clampScore(50 + 35*facts.ConceptBoldness + jitter(rng, 15))

	total := int(math.Round(
		weightStrategicFit*float64(strategic) +
			weightExecutionQuality*float64(execution) +
			weightBudgetEfficiency*float64(budget) +
			weightAudienceResonance*float64(audience)))
	if total < 0 {
		total = 0
	}
	if total > 100 {
		total = 100
	}

	tier := TierForTotal(total)
	return Result{
		Total: total,
		Breakdown: Breakdown{
			StrategicFit:      strategic,
			ExecutionQuality:  execution,
			BudgetEfficiency:  budget,
			AudienceResonance: audience,
		},
		Tier:           tier,
		Stars:          StarsForTotal(total),
		ReputationGain: ReputationGainForTier(tier),
	}
}

// TierForTotal maps a rounded total to its quality tier.
func TierForTotal(total int) Tier {
	switch {
	case total >= 90:
		return TierExceptional
	case total >= 80:
		return TierGreat
	case total >= 70:
		return TierSolid
	default:
		return TierNeedsImprovement
	}
}

// StarsForTotal maps a total to a half-step star rating between 1 and 5.
func StarsForTotal(total int) float64 {
	stars := math.Round(float64(total)/10) / 2
	if stars < 1 {
		stars = 1
	}
	if stars > 5 {
		stars = 5
	}
	return stars
}

// ReputationGainForTier maps a tier to its base reputation gain.
func ReputationGainForTier(tier Tier) int {
	switch tier {
	case TierExceptional:
		return 5
	case TierGreat:
		return 3
	case TierSolid:
		return 1
	default:
		return 0
	}
}

// budgetBase anchors the budget-efficiency sub-score. Finishing under
// budget starts high and earns up to 10 more points for unused headroom;
// finishing over starts low and loses up to 15 more as the overrun grows.
// A zero utilization means the ratio is unknown and only the boolean
// applies.
func budgetBase(underBudget bool, utilization float64) float64 {
	base := 40.0
	if underBudget {
		base = 75
	}
	if utilization <= 0 {
		return base
	}
	if underBudget {
		headroom := 1 - utilization
		if headroom < 0 {
			headroom = 0
		}
		return base + 10*headroom
	}
	overrun := utilization - 1
	if overrun < 0 {
		overrun = 0
	}
	if overrun > 1 {
		overrun = 1
	}
	return base - 15*overrun
}

func clampScore(value float64) int {
	rounded := int(math.Round(value))
	if rounded < 0 {
		return 0
	}
	if rounded > 100 {
		return 100
	}
	return rounded
}

// jitter draws a symmetric random offset in [-spread, spread].
func jitter(rng *rand.Rand, spread float64) float64 {
	return (rng.Float64()*2 - 1) * spread
}
