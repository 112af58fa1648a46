package service

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/mmynk/garage/internal/models"
	"github.com/mmynk/garage/internal/storage/sqlite"
	"github.com/mmynk/garage/internal/testutil"
)

// setupServices opens a fresh database and returns both services on top of it.
func setupServices(t *testing.T) (*OwnerService, *CarService, *sqlite.SQLiteStore) {
	t.Helper()

	logger := testutil.NewTestLogger(t)
	store, err := sqlite.New(filepath.Join(t.TempDir(), "garage.db"), sqlite.WithLogger(logger))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	return NewOwnerService(store, logger), NewCarService(store, models.DefaultYearRange, logger), store
}
