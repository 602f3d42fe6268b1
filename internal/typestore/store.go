// Package typestore archives rendered types in SQLite for tooling consumers.
//
// A store holds named snapshots; each snapshot maps annotation names to the
// serialized, concise, full and JSON renderings of their types.
package typestore

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/pressly/goose/v3"
	_ "modernc.org/sqlite" // registers the "sqlite" driver

	"github.com/seraphln/pyre-check/internal/typesystem"
)

//go:embed migrations/*.sql
var migrations embed.FS

// ErrNotFound is returned when a snapshot or a type is missing.
var ErrNotFound = errors.New("not found")

// timeLayout is fixed width so stored times sort lexically.
const timeLayout = "2006-01-02T15:04:05.000000000Z"

// Snapshot is a labelled set of archived types.
type Snapshot struct {
	ID        uuid.UUID
	Label     string
	CreatedAt time.Time
}

// Record is one archived type.
type Record struct {
	Snapshot   uuid.UUID
	Name       string
	Serialized string
	Concise    string
	Full       string
	JSON       []byte
	Hash       uint64
}

type Store struct {
	db *sql.DB
}

// Open opens (creating if needed) the database at path and applies pending migrations.
func Open(ctx context.Context, path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open type store: %w", err)
	}
	// A single connection keeps in-memory databases alive and serializes writers.
	db.SetMaxOpenConns(1)

	if _, err := db.ExecContext(ctx, "PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
	}
	if err := migrate(ctx, db); err != nil {
		db.Close()
		return nil, err
	}
	return &Store{db: db}, nil
}

func migrate(ctx context.Context, db *sql.DB) error {
	fsys, err := fs.Sub(migrations, "migrations")
	if err != nil {
		return fmt.Errorf("failed to load migrations: %w", err)
	}
	provider, err := goose.NewProvider(goose.DialectSQLite3, db, fsys)
	if err != nil {
		return fmt.Errorf("failed to create migration provider: %w", err)
	}
	if _, err := provider.Up(ctx); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	return nil
}

func (s *Store) Close() error { return s.db.Close() }

// NewSnapshot creates an empty snapshot. Labels are unique.
func (s *Store) NewSnapshot(ctx context.Context, label string) (uuid.UUID, error) {
	id := uuid.New()
	_, err := s.db.ExecContext(ctx,
		"INSERT INTO snapshots (id, label, created_at) VALUES (?, ?, ?)",
		id.String(), label, time.Now().UTC().Format(timeLayout),
	)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to create snapshot %q: %w", label, err)
	}
	return id, nil
}

// SnapshotByLabel looks a snapshot up by its label.
func (s *Store) SnapshotByLabel(ctx context.Context, label string) (Snapshot, error) {
	row := s.db.QueryRowContext(ctx, "SELECT id, label, created_at FROM snapshots WHERE label = ?", label)
	snapshot, err := scanSnapshot(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Snapshot{}, fmt.Errorf("snapshot %q: %w", label, ErrNotFound)
	}
	if err != nil {
		return Snapshot{}, fmt.Errorf("failed to get snapshot %q: %w", label, err)
	}
	return snapshot, nil
}

// EnsureSnapshot returns the snapshot with label, creating it when missing.
func (s *Store) EnsureSnapshot(ctx context.Context, label string) (uuid.UUID, error) {
	snapshot, err := s.SnapshotByLabel(ctx, label)
	if errors.Is(err, ErrNotFound) {
		return s.NewSnapshot(ctx, label)
	}
	if err != nil {
		return uuid.Nil, err
	}
	return snapshot.ID, nil
}

// Snapshots lists every snapshot, oldest first.
func (s *Store) Snapshots(ctx context.Context) ([]Snapshot, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT id, label, created_at FROM snapshots ORDER BY created_at, label")
	if err != nil {
		return nil, fmt.Errorf("failed to list snapshots: %w", err)
	}
	defer rows.Close()

	var snapshots []Snapshot
	for rows.Next() {
		snapshot, err := scanSnapshot(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan snapshot: %w", err)
		}
		snapshots = append(snapshots, snapshot)
	}
	return snapshots, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanSnapshot(row scanner) (Snapshot, error) {
	var id, label, created string
	if err := row.Scan(&id, &label, &created); err != nil {
		return Snapshot{}, err
	}
	parsedID, err := uuid.Parse(id)
	if err != nil {
		return Snapshot{}, fmt.Errorf("malformed snapshot id %q: %w", id, err)
	}
	createdAt, err := time.Parse(timeLayout, created)
	if err != nil {
		return Snapshot{}, fmt.Errorf("malformed snapshot time %q: %w", created, err)
	}
	return Snapshot{ID: parsedID, Label: label, CreatedAt: createdAt}, nil
}

// Put archives t under name in snapshot, replacing any previous entry.
func (s *Store) Put(ctx context.Context, snapshot uuid.UUID, name string, t typesystem.Type) error {
	data, err := typesystem.MarshalJSON(t)
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", name, err)
	}
	_, err = s.db.ExecContext(ctx, `
		INSERT INTO types (snapshot_id, name, serialized, concise, full_text, structure, hash)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (snapshot_id, name) DO UPDATE SET
			serialized = excluded.serialized,
			concise = excluded.concise,
			full_text = excluded.full_text,
			structure = excluded.structure,
			hash = excluded.hash`,
		snapshot.String(), name,
		typesystem.Serialize(t), typesystem.Concise(t), t.String(), string(data),
		strconv.FormatUint(typesystem.Hash(t), 16),
	)
	if err != nil {
		return fmt.Errorf("failed to store %s: %w", name, err)
	}
	return nil
}

const recordColumns = "snapshot_id, name, serialized, concise, full_text, structure, hash"

// Get returns the type archived under name.
func (s *Store) Get(ctx context.Context, snapshot uuid.UUID, name string) (Record, error) {
	row := s.db.QueryRowContext(ctx,
		"SELECT "+recordColumns+" FROM types WHERE snapshot_id = ? AND name = ?",
		snapshot.String(), name,
	)
	record, err := scanRecord(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Record{}, fmt.Errorf("type %s: %w", name, ErrNotFound)
	}
	if err != nil {
		return Record{}, fmt.Errorf("failed to get %s: %w", name, err)
	}
	return record, nil
}

// List returns every type of snapshot ordered by name.
func (s *Store) List(ctx context.Context, snapshot uuid.UUID) ([]Record, error) {
	records, err := s.records(ctx, "WHERE snapshot_id = ? ORDER BY name", snapshot.String())
	if err != nil {
		return nil, fmt.Errorf("failed to list types: %w", err)
	}
	return records, nil
}

// FindSerialized returns the records, across all snapshots, whose type serializes to serialized.
func (s *Store) FindSerialized(ctx context.Context, serialized string) ([]Record, error) {
	records, err := s.records(ctx, "WHERE serialized = ? ORDER BY snapshot_id, name", serialized)
	if err != nil {
		return nil, fmt.Errorf("failed to search types: %w", err)
	}
	return records, nil
}

func (s *Store) records(ctx context.Context, clause string, args ...any) ([]Record, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT "+recordColumns+" FROM types "+clause, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []Record
	for rows.Next() {
		record, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, record)
	}
	return records, rows.Err()
}

func scanRecord(row scanner) (Record, error) {
	var (
		record    Record
		snapshot  string
		structure string
		hash      string
	)
	err := row.Scan(&snapshot, &record.Name, &record.Serialized, &record.Concise, &record.Full, &structure, &hash)
	if err != nil {
		return Record{}, err
	}
	if record.Snapshot, err = uuid.Parse(snapshot); err != nil {
		return Record{}, fmt.Errorf("malformed snapshot id %q: %w", snapshot, err)
	}
	if record.Hash, err = strconv.ParseUint(hash, 16, 64); err != nil {
		return Record{}, fmt.Errorf("malformed hash %q: %w", hash, err)
	}
	record.JSON = []byte(structure)
	return record, nil
}
