package main

import (
	"database/sql"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

// The key index is a convenience catalogue of everything exported during a
// run; the armored files on disk remain the artifact of record. Index
// failures are logged and ignored by the caller.

func keyIndexPath(outputDir string) string {
	return filepath.Join(outputDir, "keys.db")
}

func openKeyIndex(dbPath string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", dbPath+"?_journal=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, err
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, err
	}
	if err := ensureKeyIndexTables(db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}

func ensureKeyIndexTables(db *sql.DB) error {
	if _, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS found_keys (
			fingerprint TEXT PRIMARY KEY,
			uid TEXT NOT NULL,
			created_at_unix INTEGER NOT NULL,
			file TEXT NOT NULL,
			encrypted INTEGER NOT NULL,
			found_at_unix INTEGER NOT NULL
		)
	`); err != nil {
		return err
	}
	if _, err := db.Exec(`CREATE INDEX IF NOT EXISTS found_keys_found_at_idx ON found_keys (found_at_unix)`); err != nil {
		return err
	}
	return nil
}

func recordFoundKey(db *sql.DB, k *minedKey, file string, encrypted bool) error {
	enc := 0
	if encrypted {
		enc = 1
	}
	_, err := db.Exec(`
		INSERT OR REPLACE INTO found_keys
			(fingerprint, uid, created_at_unix, file, encrypted, found_at_unix)
		VALUES (?, ?, ?, ?, ?, ?)
	`, k.fingerprint, k.uid, k.createdAt.Unix(), file, enc, time.Now().Unix())
	return err
}

func countFoundKeys(db *sql.DB) (int, error) {
	var n int
	if err := db.QueryRow(`SELECT COUNT(*) FROM found_keys`).Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}
