// Package sqlite implements the session store: the relational, single-file
// representation of one coding session (codes, utterances, globals, their
// links, and free-form attributes).
//
// Every Store method runs exactly one statement on a connection taken from
// the pool for the duration of that call. Separate calls are not atomic
// with respect to each other; a failure between two related writes leaves
// the first one in place. Edits that must land together go through WithTx.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/gofrs/flock"
	_ "modernc.org/sqlite"
)

// SessionExt is the file extension of session store files.
const SessionExt = ".cacti"

// SchemaVersion is recorded in PRAGMA user_version when a store is created.
// Existing files are never checked against it.
const SchemaVersion = 1

// Store errors.
var (
	ErrSessionLocked   = errors.New("session file is in use by another process")
	ErrSessionNotFound = errors.New("session file does not exist")
	ErrDuplicate       = errors.New("duplicate entry")
)

// lockAcquired runs once Open holds the file lock. Tests replace it to act
// between locking and the existence check.
var lockAcquired = func(path string) {}

// execer is satisfied by *sql.DB and *sql.Tx so every statement can run
// standalone or inside a grouped transaction.
type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

var (
	_ execer = (*sql.DB)(nil)
	_ execer = (*sql.Tx)(nil)
)

// queries holds the statement methods shared by Store and Tx.
type queries struct {
	ex execer
}

// Store is an open session file. It is the only writer of that file for as
// long as it is open.
type Store struct {
	queries

	db       *sql.DB
	path     string
	readOnly bool
	lock     *flock.Flock
	logger   *slog.Logger
}

type options struct {
	readOnly bool
	logger   *slog.Logger
}

// Option configures Open.
type Option func(*options)

// ReadOnly opens an existing session for reading under a shared lock.
// Open fails with ErrSessionNotFound instead of creating the file.
func ReadOnly() Option {
	return func(o *options) { o.readOnly = true }
}

// WithLogger sets the logger for open/close and schema events.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// Open opens the session file at path. A file that does not exist yet is
// created with the full schema and seed attributes; an existing file is
// used as is. Returns ErrSessionLocked if another Store holds the file.
func Open(ctx context.Context, path string, opts ...Option) (*Store, error) {
	o := options{logger: slog.New(slog.NewTextHandler(io.Discard, nil))}
	for _, opt := range opts {
		opt(&o)
	}

	// Fail fast without creating a lock file next to a missing session.
	if o.readOnly {
		exists, err := sessionFileExists(path)
		if err != nil {
			return nil, err
		}
		if !exists {
			return nil, fmt.Errorf("%w: %s", ErrSessionNotFound, path)
		}
	}

	lock := flock.New(path + ".lock")
	var (
		locked bool
		err    error
	)
	if o.readOnly {
		locked, err = lock.TryRLock()
	} else {
		locked, err = lock.TryLock()
	}
	if err != nil {
		return nil, fmt.Errorf("acquire session lock: %w", err)
	}
	if !locked {
		return nil, fmt.Errorf("%w: %s", ErrSessionLocked, path)
	}
	lockAcquired(path)

	// Existence is decided under the lock so two openers never both
	// initialize the same file.
	exists, err := sessionFileExists(path)
	if err != nil {
		_ = lock.Unlock()
		return nil, err
	}
	if o.readOnly && !exists {
		_ = lock.Unlock()
		return nil, fmt.Errorf("%w: %s", ErrSessionNotFound, path)
	}

	db, err := sql.Open("sqlite", dsn(path, o.readOnly))
	if err != nil {
		_ = lock.Unlock()
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	// One connection keeps statement order identical to call order.
	db.SetMaxOpenConns(1)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		_ = lock.Unlock()
		return nil, fmt.Errorf("ping session db: %w", err)
	}

	s := &Store{
		queries:  queries{ex: db},
		db:       db,
		path:     path,
		readOnly: o.readOnly,
		lock:     lock,
		logger:   o.logger.With("session", path),
	}

	if !exists {
		if err := s.init(ctx); err != nil {
			s.Close()
			// The file did not exist before this call, so it is ours to remove.
			os.Remove(path)
			return nil, fmt.Errorf("initialize session: %w", err)
		}
		s.logger.Info("session store created", "schema_version", SchemaVersion)
	} else {
		s.logger.Debug("session store opened", "read_only", o.readOnly)
	}
	return s, nil
}

// Close releases the database and the file lock. Safe to call twice.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	err := s.db.Close()
	s.db = nil
	if uerr := s.lock.Unlock(); err == nil && uerr != nil {
		err = fmt.Errorf("release session lock: %w", uerr)
	}
	return err
}

// Path returns the session file path.
func (s *Store) Path() string {
	return s.path
}

// Version returns the schema version recorded in the file.
func (s *Store) Version(ctx context.Context) (int, error) {
	var v int
	if err := s.db.QueryRowContext(ctx, "PRAGMA user_version").Scan(&v); err != nil {
		return 0, fmt.Errorf("read schema version: %w", err)
	}
	return v, nil
}

// sessionFileExists gates schema creation: only a missing file is initialized.
func sessionFileExists(path string) (bool, error) {
	info, err := os.Stat(path)
	if err == nil {
		if info.IsDir() {
			return false, fmt.Errorf("session path %s is a directory", path)
		}
		return true, nil
	}
	if errors.Is(err, os.ErrNotExist) {
		return false, nil
	}
	return false, fmt.Errorf("stat session file: %w", err)
}

func dsn(path string, readOnly bool) string {
	params := "_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)"
	if readOnly {
		params = "mode=ro&" + params
	}
	return fmt.Sprintf("file:%s?%s", path, params)
}

// init creates the schema, seeds the attribute rows, and stamps the version
// in a single transaction.
func (s *Store) init(ctx context.Context) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning schema transaction: %w", err)
	}
	defer tx.Rollback()

	for _, ddl := range schemaDDL {
		if _, err := tx.ExecContext(ctx, ddl); err != nil {
			return fmt.Errorf("creating schema: %w", err)
		}
	}
	for _, ddl := range indexDDL {
		if _, err := tx.ExecContext(ctx, ddl); err != nil {
			return fmt.Errorf("creating index: %w", err)
		}
	}
	if err := seedAttributes(ctx, tx); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, fmt.Sprintf("PRAGMA user_version = %d", SchemaVersion)); err != nil {
		return fmt.Errorf("stamping schema version: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing schema: %w", err)
	}
	return nil
}
