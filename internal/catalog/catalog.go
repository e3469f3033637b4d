// Package catalog indexes produced tiles in a DuckDB database so the
// status surface (SPEC_FULL.md §1/§3) can answer "how far has this
// layer gotten" without walking the tile-store filesystem. Grounded on
// the teacher's internal/db singleton-connection pattern, generalized
// from a query-only SQL console to a typed tile index.
package catalog

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	_ "github.com/marcboeker/go-duckdb"
)

var (
	instance *sql.DB
	once     sync.Once
	initErr  error
)

// Config locates the catalog database file.
type Config struct {
	DataDir string
	DBName  string // defaults to "catalog" if empty
}

// Catalog is a typed handle onto the tile index.
type Catalog struct {
	db *sql.DB
}

// Open returns the process-wide Catalog, creating the backing DuckDB
// file and its schema on first use.
func Open(cfg Config) (*Catalog, error) {
	once.Do(func() {
		name := cfg.DBName
		if name == "" {
			name = "catalog"
		}
		dir := filepath.Join(cfg.DataDir, "duckdb")
		if err := os.MkdirAll(dir, 0o755); err != nil {
			initErr = fmt.Errorf("catalog: create %s: %w", dir, err)
			return
		}
		path := filepath.Join(dir, name+".duckdb")
		instance, initErr = sql.Open("duckdb", path)
		if initErr != nil {
			return
		}
		initErr = ensureSchema(instance)
	})
	if initErr != nil {
		return nil, initErr
	}
	return &Catalog{db: instance}, nil
}

// Close closes the process-wide database connection.
func Close() error {
	if instance != nil {
		return instance.Close()
	}
	return nil
}

func ensureSchema(db *sql.DB) error {
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS tiles (
			layer       VARCHAR NOT NULL,
			lod         INTEGER NOT NULL,
			tx          BIGINT NOT NULL,
			ty          BIGINT NOT NULL,
			path        VARCHAR NOT NULL,
			point_count INTEGER NOT NULL,
			written_at  TIMESTAMP NOT NULL,
			PRIMARY KEY (layer, lod, tx, ty)
		)
	`)
	return err
}

// TileRecord is one row of the tiles table.
type TileRecord struct {
	Layer      string
	LOD        int
	TX, TY     int64
	Path       string
	PointCount int
	WrittenAt  string
}

// RecordTile upserts one tile's index entry after tiledriver.Driver
// finishes producing it.
func (c *Catalog) RecordTile(layer string, lod int, tx, ty int64, path string, pointCount int) error {
	_, err := c.db.Exec(`
		INSERT INTO tiles (layer, lod, tx, ty, path, point_count, written_at)
		VALUES (?, ?, ?, ?, ?, ?, now())
		ON CONFLICT (layer, lod, tx, ty) DO UPDATE SET
			path = excluded.path,
			point_count = excluded.point_count,
			written_at = excluded.written_at
	`, layer, lod, tx, ty, path, pointCount)
	return err
}

// ListTiles returns every indexed tile for layer at lod, ordered by
// (tx,ty).
func (c *Catalog) ListTiles(layer string, lod int) ([]TileRecord, error) {
	rows, err := c.db.Query(`
		SELECT layer, lod, tx, ty, path, point_count, written_at
		FROM tiles WHERE layer = ? AND lod = ?
		ORDER BY tx, ty
	`, layer, lod)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []TileRecord
	for rows.Next() {
		var r TileRecord
		if err := rows.Scan(&r.Layer, &r.LOD, &r.TX, &r.TY, &r.Path, &r.PointCount, &r.WrittenAt); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// CountTiles reports how many tiles are indexed for layer, across all
// LODs.
func (c *Catalog) CountTiles(layer string) (int64, error) {
	var n int64
	err := c.db.QueryRow(`SELECT count(*) FROM tiles WHERE layer = ?`, layer).Scan(&n)
	return n, err
}
