package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	_ "github.com/mattn/go-sqlite3" // SQLite3 driver

	"imgserve/internal/logging"
)

// Default timeout for database operations
const defaultTimeout = 5 * time.Second

// Database is an SQLite-backed image index.
type Database struct {
	db     *sql.DB
	dbPath string
}

// New opens (creating if needed) the index at dbPath. The parent directory
// must already exist and be writable.
func New(ctx context.Context, dbPath string) (*Database, error) {
	logging.Debug("Database path: %s", dbPath)

	if err := checkDirWritable(dbPath); err != nil {
		return nil, err
	}

	// busy_timeout helps prevent "database is locked" errors
	connStr := fmt.Sprintf("file:%s?_journal_mode=WAL&_synchronous=NORMAL&_busy_timeout=5000", dbPath)

	db, err := sql.Open("sqlite3", connStr)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	if err := db.PingContext(pingCtx); err != nil {
		if closeErr := db.Close(); closeErr != nil {
			logging.Error("failed to close database after ping failure: %v", closeErr)
		}
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// A single writer; the index is built by one process at a time.
	db.SetMaxOpenConns(1)

	d := &Database{
		db:     db,
		dbPath: dbPath,
	}

	if err := d.initialize(ctx); err != nil {
		if closeErr := db.Close(); closeErr != nil {
			logging.Error("failed to close database after initialization failure: %v", closeErr)
		}
		return nil, fmt.Errorf("failed to initialize database schema: %w", err)
	}

	return d, nil
}

func (d *Database) initialize(ctx context.Context) error {
	schema := `
	CREATE TABLE IF NOT EXISTS images (
		path TEXT PRIMARY KEY,
		mtime REAL NOT NULL,
		mod_time_ns INTEGER NOT NULL,
		width INTEGER NOT NULL DEFAULT 0,
		height INTEGER NOT NULL DEFAULT 0
	);

	CREATE INDEX IF NOT EXISTS idx_images_mod_time ON images(mod_time_ns);

	CREATE TABLE IF NOT EXISTS metadata (
		key TEXT PRIMARY KEY,
		value TEXT
	);
	`

	_, err := d.db.ExecContext(ctx, schema)
	return err
}

// Path returns the database file path.
func (d *Database) Path() string {
	return d.dbPath
}

// Close closes the database connection.
func (d *Database) Close() error {
	return d.db.Close()
}

// ReplaceImages swaps the stored index for images in a single transaction
// and records the build time and count in the metadata table.
func (d *Database) ReplaceImages(ctx context.Context, images []Image) (err error) {
	start := time.Now()

	tx, err := d.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		if err != nil {
			if rbErr := tx.Rollback(); rbErr != nil {
				err = errors.Join(err, fmt.Errorf("rollback also failed: %w", rbErr))
			}
		}
	}()

	if _, err = tx.ExecContext(ctx, `DELETE FROM images`); err != nil {
		return fmt.Errorf("failed to clear images: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO images (path, mtime, mod_time_ns, width, height)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(path) DO UPDATE SET
			mtime = excluded.mtime,
			mod_time_ns = excluded.mod_time_ns,
			width = excluded.width,
			height = excluded.height
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer stmt.Close()

	for i := range images {
		img := &images[i]
		ns := img.ModTime.UnixNano()
		if _, err = stmt.ExecContext(ctx, img.Path, float64(ns)/1e9, ns, img.Width, img.Height); err != nil {
			return fmt.Errorf("failed to insert %s: %w", img.Path, err)
		}
	}

	if err = setMetadata(ctx, tx, MetaLastIndexed, time.Now().UTC().Format(time.RFC3339)); err != nil {
		return err
	}
	if err = setMetadata(ctx, tx, MetaImageCount, strconv.Itoa(len(images))); err != nil {
		return err
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit: %w", err)
	}

	logging.Debug("Stored %d images in %v", len(images), time.Since(start))
	return nil
}

// ListImages returns the stored index earliest first.
func (d *Database) ListImages(ctx context.Context) ([]Image, error) {
	rows, err := d.db.QueryContext(ctx, `
		SELECT path, mod_time_ns, width, height
		FROM images
		ORDER BY mod_time_ns, path
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query images: %w", err)
	}
	defer rows.Close()

	var images []Image
	for rows.Next() {
		var img Image
		var ns int64
		if err := rows.Scan(&img.Path, &ns, &img.Width, &img.Height); err != nil {
			return nil, fmt.Errorf("failed to scan image: %w", err)
		}
		img.ModTime = time.Unix(0, ns)
		images = append(images, img)
	}
	return images, rows.Err()
}

// GetMetadata returns the value stored under key, or "" when unset.
func (d *Database) GetMetadata(ctx context.Context, key string) (string, error) {
	var value sql.NullString
	err := d.db.QueryRowContext(ctx, `SELECT value FROM metadata WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to read metadata %s: %w", key, err)
	}
	return value.String, nil
}

func setMetadata(ctx context.Context, tx *sql.Tx, key, value string) error {
	_, err := tx.ExecContext(ctx, `
		INSERT INTO metadata (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value
	`, key, value)
	if err != nil {
		return fmt.Errorf("failed to write metadata %s: %w", key, err)
	}
	return nil
}

// checkDirWritable reports a clear error when the database directory is
// missing or read-only, before SQLite produces a less helpful one.
func checkDirWritable(dbPath string) error {
	dir := filepath.Dir(dbPath)

	info, err := os.Stat(dir)
	if err != nil {
		return fmt.Errorf("cannot stat database directory: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("database directory %s is not a directory", dir)
	}

	f, err := os.CreateTemp(dir, ".perm-test-*")
	if err != nil {
		return fmt.Errorf("database directory not writable: %w", err)
	}
	name := f.Name()
	_ = f.Close()
	_ = os.Remove(name)
	return nil
}
