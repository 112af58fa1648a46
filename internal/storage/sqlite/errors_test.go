package sqlite

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmynk/garage/internal/metrics"
	"github.com/mmynk/garage/internal/models"
	"github.com/mmynk/garage/internal/storage"
)

func newMockStore(t *testing.T, opts ...Option) (*SQLiteStore, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() {
		assert.NoError(t, mock.ExpectationsWereMet())
	})
	return NewFromDB(db, opts...), mock
}

func TestClassify(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantKind string
	}{
		{name: "unique", err: errors.New("UNIQUE constraint failed: owners.name (2067)"), wantKind: storage.ConstraintUnique},
		{name: "foreign key", err: errors.New("FOREIGN KEY constraint failed (787)"), wantKind: storage.ConstraintForeignKey},
		{name: "not null", err: errors.New("NOT NULL constraint failed: cars.make"), wantKind: storage.ConstraintCheck},
		{name: "unrelated", err: errors.New("database is locked")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := classify(tt.err)
			if tt.wantKind == "" {
				assert.Same(t, tt.err, got)
				assert.NotErrorIs(t, got, storage.ErrConstraintViolation)
				return
			}
			assert.ErrorIs(t, got, storage.ErrConstraintViolation)
			assert.ErrorIs(t, got, tt.err)
			assert.True(t, storage.IsConstraint(got, tt.wantKind))
		})
	}

	assert.NoError(t, classify(nil))
}

func TestCreateOwner_FailedInsertAssignsNoID(t *testing.T) {
	rec := metrics.NewRecorder()
	store, mock := newMockStore(t, WithMetrics(rec))

	mock.ExpectExec("INSERT INTO owners").
		WithArgs("Alice").
		WillReturnError(errors.New("UNIQUE constraint failed: owners.name"))

	owner := &models.Owner{Name: "Alice"}
	err := store.CreateOwner(context.Background(), owner)

	require.Error(t, err)
	assert.True(t, storage.IsConstraint(err, storage.ConstraintUnique))
	assert.Zero(t, owner.ID)

	n, err := testutil.GatherAndCount(rec.Registry(), "garage_store_operations_total")
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestCreateOwner_LastInsertIDFailure(t *testing.T) {
	store, mock := newMockStore(t)

	mock.ExpectExec("INSERT INTO owners").
		WithArgs("Alice").
		WillReturnResult(sqlmock.NewErrorResult(errors.New("no rowid")))

	owner := &models.Owner{Name: "Alice"}
	err := store.CreateOwner(context.Background(), owner)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read owner id")
	assert.Zero(t, owner.ID)
}

func TestCreateCar_ForeignKeyFailure(t *testing.T) {
	store, mock := newMockStore(t)

	mock.ExpectExec("INSERT INTO cars").
		WithArgs("Toyota", "Corolla", 2020, int64(42)).
		WillReturnError(errors.New("FOREIGN KEY constraint failed"))

	car := &models.Car{Make: "Toyota", Model: "Corolla", Year: 2020, OwnerID: 42}
	err := store.CreateCar(context.Background(), car)

	assert.ErrorIs(t, err, storage.ErrConstraintViolation)
	assert.True(t, storage.IsConstraint(err, storage.ConstraintForeignKey))
	assert.Zero(t, car.ID)
}

func TestCreateCar_AssignsID(t *testing.T) {
	store, mock := newMockStore(t)

	mock.ExpectExec("INSERT INTO cars").
		WithArgs("Toyota", "Corolla", 2020, int64(1)).
		WillReturnResult(sqlmock.NewResult(17, 1))

	car := &models.Car{Make: "Toyota", Model: "Corolla", Year: 2020, OwnerID: 1}
	require.NoError(t, store.CreateCar(context.Background(), car))
	assert.Equal(t, int64(17), car.ID)
}

func TestUpdate_NoRowsIsNotFound(t *testing.T) {
	store, mock := newMockStore(t)

	mock.ExpectExec("UPDATE owners SET name").
		WithArgs("Ghost", int64(5)).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec("UPDATE cars SET make").
		WithArgs("A", "B", 2000, int64(1), int64(6)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	ctx := context.Background()
	assert.ErrorIs(t, store.UpdateOwner(ctx, &models.Owner{ID: 5, Name: "Ghost"}), storage.ErrNotFound)
	assert.ErrorIs(t, store.UpdateCar(ctx, &models.Car{ID: 6, Make: "A", Model: "B", Year: 2000, OwnerID: 1}), storage.ErrNotFound)
}

func TestGetOwner_QueryError(t *testing.T) {
	store, mock := newMockStore(t)

	mock.ExpectQuery("SELECT id, name FROM owners").
		WithArgs(int64(3)).
		WillReturnError(errors.New("disk I/O error"))

	owner, err := store.GetOwner(context.Background(), 3)
	assert.Nil(t, owner)
	assert.ErrorContains(t, err, "failed to get owner")
}

func TestListCarsByOwner_ScansRows(t *testing.T) {
	store, mock := newMockStore(t)

	rows := sqlmock.NewRows([]string{"id", "make", "model", "year", "owner_id"}).
		AddRow(int64(1), "Toyota", "Corolla", 2020, int64(9)).
		AddRow(int64(2), "Honda", "Civic", 2018, int64(9))
	mock.ExpectQuery("SELECT id, make, model, year, owner_id FROM cars WHERE owner_id").
		WithArgs(int64(9)).
		WillReturnRows(rows)

	cars, err := store.ListCarsByOwner(context.Background(), 9)
	require.NoError(t, err)
	require.Len(t, cars, 2)
	assert.Equal(t, "Civic", cars[1].Model)
}

func TestEnableForeignKeys_Rejected(t *testing.T) {
	store, mock := newMockStore(t)

	mock.ExpectExec("PRAGMA foreign_keys = ON").WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery("PRAGMA foreign_keys").
		WillReturnRows(sqlmock.NewRows([]string{"foreign_keys"}).AddRow(0))

	err := store.EnableForeignKeys(context.Background())
	assert.ErrorContains(t, err, "foreign key enforcement is not available")
}

func TestClose(t *testing.T) {
	store, mock := newMockStore(t)
	mock.ExpectClose()
	assert.NoError(t, store.Close())
}

func TestDSN(t *testing.T) {
	assert.Equal(t, "garage.db?_pragma=foreign_keys(1)", dsn("garage.db"))
	assert.Equal(t, "file:garage.db?mode=rwc&_pragma=foreign_keys(1)", dsn("file:garage.db?mode=rwc"))
}
