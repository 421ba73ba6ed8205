// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package catalog records processed notebooks in a local SQLite database.
// Batch runs consult it to skip notebooks whose content has not changed
// since the last run of the same operation.
package catalog

import (
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/nbrefine/pkg/types"
)

const dbFile = "catalog.db"

// Operations recorded in the catalog.
const (
	OpEditable  = "editable"
	OpExtract   = "extract"
	OpTranslate = "translate"
)

// Run is one recorded processing of a notebook.
type Run struct {
	Path        string
	Operation   string
	Checksum    string
	CellCount   int
	ProcessedAt time.Time
}

// Catalog manages the processing catalog database.
type Catalog struct {
	db *sql.DB
}

// Open opens or creates the catalog database at cfg.Dir/catalog.db,
// creating the directory and schema when missing.
func Open(cfg types.CatalogConfig) (*Catalog, error) {
	dir := cfg.Dir
	if dir == "" {
		dir = ".nbrefine"
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating catalog directory: %w", err)
	}

	dbPath := filepath.Join(dir, dbFile)
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("opening catalog database: %w", err)
	}

	c := &Catalog{db: db}
	if err := c.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating catalog schema: %w", err)
	}
	return c, nil
}

// Close releases the database connection.
func (c *Catalog) Close() error {
	return c.db.Close()
}

func (c *Catalog) createSchema() error {
	_, err := c.db.Exec(`CREATE TABLE IF NOT EXISTS runs (
		path TEXT NOT NULL,
		operation TEXT NOT NULL,
		checksum TEXT NOT NULL,
		cell_count INTEGER NOT NULL,
		processed_at TEXT NOT NULL,
		PRIMARY KEY (path, operation)
	)`)
	if err != nil {
		return fmt.Errorf("executing schema statement: %w", err)
	}
	return nil
}

// Seen reports whether path was already processed by operation with the
// same content checksum.
func (c *Catalog) Seen(path, operation, checksum string) (bool, error) {
	var stored string
	err := c.db.QueryRow(
		`SELECT checksum FROM runs WHERE path = ? AND operation = ?`,
		path, operation,
	).Scan(&stored)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("querying catalog: %w", err)
	}
	return stored == checksum, nil
}

// Record upserts the run for (path, operation) with the given checksum and
// cell count, stamped with the current time.
func (c *Catalog) Record(path, operation, checksum string, cellCount int) error {
	_, err := c.db.Exec(
		`INSERT INTO runs (path, operation, checksum, cell_count, processed_at)
		 VALUES (?, ?, ?, ?, ?)
		 ON CONFLICT(path, operation) DO UPDATE SET
		   checksum = excluded.checksum,
		   cell_count = excluded.cell_count,
		   processed_at = excluded.processed_at`,
		path, operation, checksum, cellCount, time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("recording run: %w", err)
	}
	return nil
}

// Runs returns all recorded runs, most recent first.
func (c *Catalog) Runs() ([]Run, error) {
	rows, err := c.db.Query(
		`SELECT path, operation, checksum, cell_count, processed_at
		 FROM runs ORDER BY processed_at DESC, path`,
	)
	if err != nil {
		return nil, fmt.Errorf("querying runs: %w", err)
	}
	defer rows.Close()

	var out []Run
	for rows.Next() {
		var r Run
		var stamp string
		if err := rows.Scan(&r.Path, &r.Operation, &r.Checksum, &r.CellCount, &stamp); err != nil {
			return nil, fmt.Errorf("scanning run: %w", err)
		}
		r.ProcessedAt, _ = time.Parse(time.RFC3339, stamp)
		out = append(out, r)
	}
	return out, rows.Err()
}

// Checksum returns the hex SHA-256 of the file at path.
func Checksum(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", path, err)
	}
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:]), nil
}
