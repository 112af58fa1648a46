package metrics

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmynk/garage/internal/storage"
)

func TestRecorder_Observe(t *testing.T) {
	r := NewRecorder()
	start := time.Now()

	r.Observe("owner", "create", start, nil)
	r.Observe("owner", "create", start, nil)
	r.Observe("owner", "create", start, &storage.ConstraintError{Constraint: storage.ConstraintUnique, Err: errors.New("dup")})
	r.Observe("car", "update", start, storage.ErrNotFound)
	r.Observe("car", "get", start, errors.New("disk on fire"))

	assert.Equal(t, 2.0, testutil.ToFloat64(r.operations.WithLabelValues("owner", "create", ResultOK)))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.operations.WithLabelValues("owner", "create", ResultConstraint)))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.operations.WithLabelValues("car", "update", ResultNotFound)))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.operations.WithLabelValues("car", "get", ResultError)))
	// One latency series per (entity, op): owner/create, car/update, car/get.
	assert.Equal(t, 3, testutil.CollectAndCount(r.duration))
}

func TestRecorder_Nil(t *testing.T) {
	var r *Recorder
	r.Observe("owner", "create", time.Now(), nil)
	assert.Nil(t, r.Registry())
	assert.NoError(t, r.WriteTextfile(filepath.Join(t.TempDir(), "x.prom")))
}

func TestRecorder_WriteTextfile(t *testing.T) {
	r := NewRecorder()
	r.Observe("owner", "list", time.Now(), nil)

	path := filepath.Join(t.TempDir(), "garage.prom")
	require.NoError(t, r.WriteTextfile(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `garage_store_operations_total{entity="owner",op="list",result="ok"} 1`)
}

func TestRecorder_WriteTextfile_EmptyPath(t *testing.T) {
	assert.NoError(t, NewRecorder().WriteTextfile(""))
}
