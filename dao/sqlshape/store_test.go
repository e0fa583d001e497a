package sqlshape

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gocraft/dbr/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/Jelloman/cheap-sub008/catalog"
)

var errBoom = errors.New("boom")

func newMockStore(t *testing.T) (*Store, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	conn := dbr.NewConnection(db, eventReceiver{logger: zap.NewNop()})
	return &Store{conn: conn, logger: zap.NewNop()}, mock
}

func TestExistsTrue(t *testing.T) {
	store, mock := newMockStore(t)
	id := uuid.New()

	mock.ExpectQuery("SELECT COUNT").WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	ok, err := store.Exists(context.Background(), id)
	require.NoError(t, err)
	require.True(t, ok)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestExistsFalse(t *testing.T) {
	store, mock := newMockStore(t)
	id := uuid.New()

	mock.ExpectQuery("SELECT COUNT").WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))

	ok, err := store.Exists(context.Background(), id)
	require.NoError(t, err)
	require.False(t, ok)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteClearsEveryScopedTable(t *testing.T) {
	store, mock := newMockStore(t)
	id := uuid.New()

	mock.ExpectBegin()
	for i := 0; i < 10; i++ {
		mock.ExpectExec("DELETE FROM").WillReturnResult(sqlmock.NewResult(0, 0))
	}
	mock.ExpectCommit()

	err := store.Delete(context.Background(), id)
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSaveEmptyCatalogInsertsCatalogRowOnly(t *testing.T) {
	store, mock := newMockStore(t)
	id := uuid.New()

	c, err := catalog.New(id, catalog.Sink, catalog.FromExternalSource(catalog.ExternalSource{URI: "file:///tmp/x"}))
	require.NoError(t, err)

	mock.ExpectBegin()
	for i := 0; i < 10; i++ {
		mock.ExpectExec("DELETE FROM").WillReturnResult(sqlmock.NewResult(0, 0))
	}
	mock.ExpectExec("INSERT INTO catalog").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err = store.Save(context.Background(), c)
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSaveRollsBackOnInsertFailure(t *testing.T) {
	store, mock := newMockStore(t)
	id := uuid.New()

	c, err := catalog.New(id, catalog.Sink, catalog.FromExternalSource(catalog.ExternalSource{URI: "file:///tmp/x"}))
	require.NoError(t, err)

	mock.ExpectBegin()
	for i := 0; i < 10; i++ {
		mock.ExpectExec("DELETE FROM").WillReturnResult(sqlmock.NewResult(0, 0))
	}
	mock.ExpectExec("INSERT INTO catalog").WillReturnError(errBoom)
	mock.ExpectRollback()

	err = store.Save(context.Background(), c)
	require.Error(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}
