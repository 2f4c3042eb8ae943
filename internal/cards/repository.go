package cards

import (
	"sync/atomic"

	"github.com/worldicons/worldicons-bot/internal/domain"
	"github.com/worldicons/worldicons-bot/internal/metrics"
)

// Repository owns the current Snapshot of the card data and replaces it wholesale on Reload.
// It is safe for concurrent use; readers see either the previous or the new snapshot.
type Repository struct {
	loader  Loader
	current atomic.Pointer[Snapshot]
}

// NewRepository creates a repository and performs the initial load.
func NewRepository(loader Loader) (*Repository, error) {
	r := &Repository{loader: loader}
	if _, err := r.Reload(); err != nil {
		return nil, err
	}
	return r, nil
}

// Reload reparses both data files and swaps in the result.
// On failure the previous snapshot stays in service and the error wraps domain.ErrData.
func (r *Repository) Reload() (*Snapshot, error) {
	snap, err := r.loader.Load()
	metrics.RecordReload(err)
	if err != nil {
		return nil, err
	}
	r.current.Store(snap)
	return snap, nil
}

// Snapshot returns the snapshot currently in service.
func (r *Repository) Snapshot() *Snapshot {
	if snap := r.current.Load(); snap != nil {
		return snap
	}
	return newSnapshot(nil, nil)
}

// TotalWeight reports the total weight of the current snapshot.
func (r *Repository) TotalWeight() int {
	return r.Snapshot().TotalWeight()
}

// Probability reports card's probability against the current snapshot.
func (r *Repository) Probability(card domain.Card) float64 {
	return r.Snapshot().Probability(card)
}

// TierForCard classifies card against the current snapshot.
func (r *Repository) TierForCard(card domain.Card) string {
	return r.Snapshot().TierForCard(card)
}

// FindCard looks query up in the current snapshot.
func (r *Repository) FindCard(query string) (domain.Card, bool) {
	return r.Snapshot().FindCard(query)
}
