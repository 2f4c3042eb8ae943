package domain

// UnknownTierName labels a card whose weight is below every tier threshold.
const UnknownTierName = "Inconnu"

// SynthesizedTierFormat names the tiers derived from card weights when no tiers file is usable.
const SynthesizedTierFormat = "Poids >= %d"

// Card is one collectible of the loot table.
// A Weight of 0 means the card is display-only and never drawn.
type Card struct {
	Key      string `json:"key"`
	Name     string `json:"name"`
	URI      string `json:"uri"`
	ImageURL string `json:"image_url"`
	Weight   int    `json:"weight"`
}

// EffectiveWeight is the weight counted towards the lottery total.
func (c Card) EffectiveWeight() int {
	if c.Weight < 0 {
		return 0
	}
	return c.Weight
}

// Tier is a named rarity bracket; MinWeight is inclusive.
type Tier struct {
	Name      string `json:"name"`
	MinWeight int    `json:"min_weight"`
}

// TierSummary aggregates the cards classified into one tier.
type TierSummary struct {
	Name    string
	Weight  int
	Percent float64
	Cards   int
}
