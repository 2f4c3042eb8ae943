package cards

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/worldicons/worldicons-bot/internal/domain"
)

// Default data file names inside the data directory.
const (
	CardsFileName = "cards.json"
	TiersFileName = "tiers.json"
)

// Loader reads the cards and tiers documents from disk.
type Loader struct {
	CardsPath string
	TiersPath string
}

// NewLoader returns a Loader for the two standard files inside dir.
func NewLoader(dir string) Loader {
	return Loader{
		CardsPath: filepath.Join(dir, CardsFileName),
		TiersPath: filepath.Join(dir, TiersFileName),
	}
}

// Load parses both documents into a new Snapshot.
// The cards file is required; the tiers file is optional and, when absent,
// empty or not a list, tiers are derived from the card weights.
func (l Loader) Load() (*Snapshot, error) {
	cards, err := l.loadCards()
	if err != nil {
		return nil, err
	}

	tiers, err := l.loadTiers()
	if err != nil {
		return nil, err
	}
	if len(tiers) == 0 {
		tiers = tiersFromCards(cards)
	}

	return newSnapshot(cards, tiers), nil
}

func (l Loader) loadCards() ([]domain.Card, error) {
	data, err := os.ReadFile(l.CardsPath)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read %s: %v", domain.ErrData, l.CardsPath, err)
	}

	var raw []any
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("%w: failed to parse %s: %v", domain.ErrData, l.CardsPath, err)
	}

	cards := make([]domain.Card, 0, len(raw))
	for i, item := range raw {
		entry, ok := item.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("%w: %s entry %d is not an object", domain.ErrData, l.CardsPath, i)
		}
		card, err := CardFromMap(entry)
		if err != nil {
			return nil, fmt.Errorf("%w: %s entry %d: %v", domain.ErrData, l.CardsPath, i, err)
		}
		cards = append(cards, card)
	}
	return cards, nil
}

func (l Loader) loadTiers() ([]domain.Tier, error) {
	if l.TiersPath == "" {
		return nil, nil
	}

	data, err := os.ReadFile(l.TiersPath)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read %s: %v", domain.ErrData, l.TiersPath, err)
	}

	var doc any
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: failed to parse %s: %v", domain.ErrData, l.TiersPath, err)
	}

	list, ok := doc.([]any)
	if !ok {
		return nil, nil
	}

	tiers := make([]domain.Tier, 0, len(list))
	for i, item := range list {
		entry, ok := item.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("%w: %s entry %d is not an object", domain.ErrData, l.TiersPath, i)
		}
		tier, err := TierFromMap(entry)
		if err != nil {
			return nil, fmt.Errorf("%w: %s entry %d: %v", domain.ErrData, l.TiersPath, i, err)
		}
		tiers = append(tiers, tier)
	}
	return tiers, nil
}

// tiersFromCards derives one tier per distinct positive weight, heaviest first.
func tiersFromCards(cards []domain.Card) []domain.Tier {
	seen := make(map[int]bool)
	var tiers []domain.Tier
	for _, c := range cards {
		if c.Weight <= 0 || seen[c.Weight] {
			continue
		}
		seen[c.Weight] = true
		tiers = append(tiers, domain.Tier{
			Name:      fmt.Sprintf(domain.SynthesizedTierFormat, c.Weight),
			MinWeight: c.Weight,
		})
	}
	return tiers
}
