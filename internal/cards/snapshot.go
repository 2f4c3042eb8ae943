package cards

import (
	"cmp"
	"slices"
	"strings"

	"github.com/worldicons/worldicons-bot/internal/domain"
	"github.com/worldicons/worldicons-bot/internal/utils"
)

// Snapshot is one immutable load of the card and tier documents.
// All queries of a command run against a single Snapshot.
type Snapshot struct {
	cards []domain.Card
	tiers []domain.Tier
	total int
}

func newSnapshot(cards []domain.Card, tiers []domain.Tier) *Snapshot {
	sorted := slices.Clone(tiers)
	slices.SortStableFunc(sorted, func(a, b domain.Tier) int {
		return cmp.Compare(b.MinWeight, a.MinWeight)
	})

	total := 0
	for _, c := range cards {
		total += c.EffectiveWeight()
	}

	return &Snapshot{cards: cards, tiers: sorted, total: total}
}

// Cards returns the cards in file order.
func (s *Snapshot) Cards() []domain.Card {
	return slices.Clone(s.cards)
}

// Tiers returns the tiers by descending MinWeight.
func (s *Snapshot) Tiers() []domain.Tier {
	return slices.Clone(s.tiers)
}

// TotalWeight is the sum of the non-negative card weights.
func (s *Snapshot) TotalWeight() int {
	return s.total
}

// Probability returns the draw probability of card in [0, 1], or 0 when nothing can be drawn.
func (s *Snapshot) Probability(card domain.Card) float64 {
	if s.total <= 0 {
		return 0
	}
	return float64(card.Weight) / float64(s.total)
}

// TierForCard returns the name of the heaviest tier the card reaches, or domain.UnknownTierName.
func (s *Snapshot) TierForCard(card domain.Card) string {
	for _, t := range s.tiers {
		if card.Weight >= t.MinWeight {
			return t.Name
		}
	}
	return domain.UnknownTierName
}

// SummaryByTier groups the cards by tier.
// Tiers come in canonical order, skipping empty ones, followed by any label
// not in the tier list in first-seen order.
func (s *Snapshot) SummaryByTier() []domain.TierSummary {
	byName := make(map[string]*domain.TierSummary)
	var seenOrder []string
	for _, c := range s.cards {
		name := s.TierForCard(c)
		sum, ok := byName[name]
		if !ok {
			sum = &domain.TierSummary{Name: name}
			byName[name] = sum
			seenOrder = append(seenOrder, name)
		}
		sum.Weight += c.EffectiveWeight()
		sum.Cards++
	}

	for _, sum := range byName {
		if s.total > 0 {
			sum.Percent = float64(sum.Weight) / float64(s.total) * 100
		}
	}

	out := make([]domain.TierSummary, 0, len(byName))
	emitted := make(map[string]bool, len(byName))
	for _, t := range s.tiers {
		if sum, ok := byName[t.Name]; ok && !emitted[t.Name] {
			out = append(out, *sum)
			emitted[t.Name] = true
		}
	}
	for _, name := range seenOrder {
		if !emitted[name] {
			out = append(out, *byName[name])
			emitted[name] = true
		}
	}
	return out
}

// FindCard resolves a free-text query: exact key, then exact name, then a
// substring of the name. The first card in file order wins at each stage.
func (s *Snapshot) FindCard(query string) (domain.Card, bool) {
	q := utils.Normalize(query)
	if q == "" {
		return domain.Card{}, false
	}

	for _, c := range s.cards {
		if utils.Normalize(c.Key) == q {
			return c, true
		}
	}
	for _, c := range s.cards {
		if utils.Normalize(c.Name) == q {
			return c, true
		}
	}
	for _, c := range s.cards {
		if strings.Contains(utils.Normalize(c.Name), q) {
			return c, true
		}
	}
	return domain.Card{}, false
}

// TopCards returns the n heaviest cards (at least one), keeping file order among equal weights.
func (s *Snapshot) TopCards(n int) []domain.Card {
	n = max(n, 1)
	sorted := slices.Clone(s.cards)
	slices.SortStableFunc(sorted, func(a, b domain.Card) int {
		return cmp.Compare(b.Weight, a.Weight)
	})
	if n > len(sorted) {
		n = len(sorted)
	}
	return sorted[:n]
}

// MatchNames returns up to limit card names containing query, for autocompletion.
// An empty query matches every card.
func (s *Snapshot) MatchNames(query string, limit int) []string {
	q := utils.Normalize(query)
	var names []string
	for _, c := range s.cards {
		if len(names) >= limit {
			break
		}
		if q == "" || strings.Contains(utils.Normalize(c.Name), q) || utils.Normalize(c.Key) == q {
			names = append(names, c.Name)
		}
	}
	return names
}

// DuplicateKeys lists card keys that appear more than once, compared normalised,
// in order of their second appearance. FindCard resolves such keys to the first card.
func (s *Snapshot) DuplicateKeys() []string {
	seen := make(map[string]int, len(s.cards))
	var dups []string
	for _, c := range s.cards {
		k := utils.Normalize(c.Key)
		if k == "" {
			continue
		}
		seen[k]++
		if seen[k] == 2 {
			dups = append(dups, c.Key)
		}
	}
	return dups
}
