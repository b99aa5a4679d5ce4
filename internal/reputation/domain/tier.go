package domain

// Tier names an agency standing bracket.
type Tier string

const (
	TierBoutique  Tier = "boutique"
	TierRising    Tier = "rising"
	TierRespected Tier = "respected"
	TierRenowned  Tier = "renowned"
	TierLegendary Tier = "legendary"
)

// tierThresholds is the ascending reputation table. A reputation value maps
// to the highest tier whose threshold it meets.
var tierThresholds = []struct {
	threshold int
	tier      Tier
}{
	{0, TierBoutique},
	{10, TierRising},
	{25, TierRespected},
	{50, TierRenowned},
	{100, TierLegendary},
}

// TierForReputation maps a reputation value to its tier.
func TierForReputation(reputation int) Tier {
	tier := TierBoutique
	for _, entry := range tierThresholds {
		if reputation >= entry.threshold {
			tier = entry.tier
		}
	}
	return tier
}
