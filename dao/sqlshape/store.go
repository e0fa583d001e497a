// Package sqlshape is the reference dao.CatalogDAO implementation: a
// concrete, dialect-described mapping of the relational schema shape
// in spec §4.5 onto MySQL, built with github.com/gocraft/dbr/v2's SQL
// builder over database/sql and github.com/go-sql-driver/mysql's
// driver. The DAO contract itself (package dao) stays dialect-
// independent; this package is the one dialect adapter wired for
// testability.
package sqlshape

import (
	"context"

	"github.com/gocraft/dbr/v2"
	_ "github.com/go-sql-driver/mysql"
	"go.uber.org/zap"

	"github.com/Jelloman/cheap-sub008/dao"
)

// Store is a dao.CatalogDAO backed by a MySQL database via dbr.
type Store struct {
	conn   *dbr.Connection
	logger *zap.Logger
}

var _ dao.CatalogDAO = (*Store)(nil)

// eventReceiver adapts a *zap.Logger to dbr's EventReceiver so every
// query dbr issues is logged the way the teacher logs datastore
// operations.
type eventReceiver struct {
	logger *zap.Logger
}

func (e eventReceiver) Event(eventName string) {
	e.logger.Debug("dbr event", zap.String("event", eventName))
}

func (e eventReceiver) EventKv(eventName string, kvs map[string]string) {
	fields := make([]zap.Field, 0, len(kvs)+1)
	fields = append(fields, zap.String("event", eventName))
	for k, v := range kvs {
		fields = append(fields, zap.String(k, v))
	}
	e.logger.Debug("dbr event", fields...)
}

func (e eventReceiver) EventErr(eventName string, err error) error {
	e.logger.Warn("dbr event error", zap.String("event", eventName), zap.Error(err))
	return err
}

func (e eventReceiver) EventErrKv(eventName string, err error, kvs map[string]string) error {
	fields := make([]zap.Field, 0, len(kvs)+2)
	fields = append(fields, zap.String("event", eventName), zap.Error(err))
	for k, v := range kvs {
		fields = append(fields, zap.String(k, v))
	}
	e.logger.Warn("dbr event error", fields...)
	return err
}

func (e eventReceiver) Timing(eventName string, nanoseconds int64) {}

func (e eventReceiver) TimingKv(eventName string, nanoseconds int64, kvs map[string]string) {}

// Option configures a Store at construction time.
type Option func(*Store)

// WithLogger supplies a *zap.Logger; the default is a no-op logger.
func WithLogger(logger *zap.Logger) Option {
	return func(s *Store) { s.logger = logger }
}

// Open connects to a MySQL database at dsn and returns a Store ready
// to satisfy dao.CatalogDAO.
func Open(dsn string, opts ...Option) (*Store, error) {
	s := &Store{logger: zap.NewNop()}
	for _, opt := range opts {
		opt(s)
	}
	conn, err := dbr.Open("mysql", dsn, eventReceiver{logger: s.logger})
	if err != nil {
		return nil, err
	}
	s.conn = conn
	return s, nil
}

func (s *Store) session() *dbr.Session {
	return s.conn.NewSession(eventReceiver{logger: s.logger})
}

// withTx runs fn inside a transaction, committing on success and
// rolling back on any error or panic (spec §4.5: "each operation is
// atomic; any failure rolls back all changes").
func (s *Store) withTx(ctx context.Context, fn func(tx *dbr.Tx) error) (err error) {
	sess := s.session()
	tx, err := sess.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.RollbackUnlessCommitted()

	if err = fn(tx); err != nil {
		return err
	}
	return tx.Commit()
}

// Close releases the underlying connection pool.
func (s *Store) Close() error {
	return s.conn.Close()
}
