package cards

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// writeData writes cards (and tiers when non-empty) into a temp dir and returns a Loader for it.
func writeData(t *testing.T, cardsJSON, tiersJSON string) Loader {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, CardsFileName), []byte(cardsJSON), 0o644))
	if tiersJSON != "" {
		require.NoError(t, os.WriteFile(filepath.Join(dir, TiersFileName), []byte(tiersJSON), 0o644))
	}
	return NewLoader(dir)
}

const alphaBeta = `[
	{"key": "a", "name": "Alpha", "uri": "ipfs://a", "image_url": "https://img/a.png", "weight": 70},
	{"key": "b", "name": "Beta", "weight": 30}
]`
