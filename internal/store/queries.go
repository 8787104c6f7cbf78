package store

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

// ErrNoEntry is returned when no cache entry exists for an application
// root. Callers treat it as "never successfully installed".
var ErrNoEntry = errors.New("no cache entry for application root")

// Cache entry operations

// PutEntry inserts or replaces the cache entry for an application root.
// Only call this after a successful install.
func (s *Store) PutEntry(entry *CacheEntry) error {
	skippedJSON, err := json.Marshal(entry.SkippedPackages)
	if err != nil {
		return fmt.Errorf("failed to marshal skipped packages: %w", err)
	}

	query := `
		INSERT OR REPLACE INTO requirements_cache
		(root_path, fingerprint, installed_at, skipped_packages)
		VALUES (?, ?, ?, ?)
	`

	_, err = s.db.Exec(query,
		entry.RootPath,
		entry.Fingerprint,
		entry.InstalledAt.Format(time.RFC3339),
		string(skippedJSON),
	)
	if err != nil {
		return fmt.Errorf("failed to put cache entry for %s: %w", entry.RootPath, err)
	}

	return nil
}

// GetEntry retrieves the cache entry for an application root. Returns an
// error wrapping ErrNoEntry when no entry exists.
func (s *Store) GetEntry(rootPath string) (*CacheEntry, error) {
	query := `
		SELECT root_path, fingerprint, installed_at, skipped_packages
		FROM requirements_cache
		WHERE root_path = ?
	`

	var entry CacheEntry
	var installedAt string
	var skippedJSON string

	err := s.db.QueryRow(query, rootPath).Scan(
		&entry.RootPath,
		&entry.Fingerprint,
		&installedAt,
		&skippedJSON,
	)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("%w: %s", ErrNoEntry, rootPath)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get cache entry for %s: %w", rootPath, err)
	}

	entry.InstalledAt, err = time.Parse(time.RFC3339, installedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to parse installed_at for %s: %w", rootPath, err)
	}

	if err := json.Unmarshal([]byte(skippedJSON), &entry.SkippedPackages); err != nil {
		return nil, fmt.Errorf("failed to unmarshal skipped packages for %s: %w", rootPath, err)
	}

	return &entry, nil
}

// DeleteEntry removes the cache entry for an application root.
func (s *Store) DeleteEntry(rootPath string) error {
	if _, err := s.db.Exec(`DELETE FROM requirements_cache WHERE root_path = ?`, rootPath); err != nil {
		return fmt.Errorf("failed to delete cache entry for %s: %w", rootPath, err)
	}
	return nil
}

// ListEntries returns all cache entries ordered by root path.
func (s *Store) ListEntries() ([]*CacheEntry, error) {
	query := `
		SELECT root_path, fingerprint, installed_at, skipped_packages
		FROM requirements_cache
		ORDER BY root_path
	`

	rows, err := s.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to list cache entries: %w", err)
	}
	defer rows.Close()

	var entries []*CacheEntry
	for rows.Next() {
		var entry CacheEntry
		var installedAt string
		var skippedJSON string

		if err := rows.Scan(&entry.RootPath, &entry.Fingerprint, &installedAt, &skippedJSON); err != nil {
			return nil, fmt.Errorf("failed to scan cache entry row: %w", err)
		}

		entry.InstalledAt, err = time.Parse(time.RFC3339, installedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to parse installed_at for %s: %w", entry.RootPath, err)
		}

		if err := json.Unmarshal([]byte(skippedJSON), &entry.SkippedPackages); err != nil {
			return nil, fmt.Errorf("failed to unmarshal skipped packages for %s: %w", entry.RootPath, err)
		}

		entries = append(entries, &entry)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating cache entries: %w", err)
	}

	return entries, nil
}

// Snapshot operations

// InsertSnapshot creates a new snapshot record and returns its ID.
func (s *Store) InsertSnapshot(reason string, pkgCount int, path string) (int64, error) {
	query := `
		INSERT INTO snapshots (created_at, reason, package_count, snapshot_path)
		VALUES (?, ?, ?, ?)
	`

	result, err := s.db.Exec(query,
		time.Now().Format(time.RFC3339),
		reason,
		pkgCount,
		path,
	)
	if err != nil {
		return 0, fmt.Errorf("failed to insert snapshot: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get snapshot ID: %w", err)
	}

	return id, nil
}

// GetSnapshot retrieves a snapshot by ID.
func (s *Store) GetSnapshot(id int64) (*Snapshot, error) {
	query := `
		SELECT id, created_at, reason, package_count, snapshot_path
		FROM snapshots
		WHERE id = ?
	`

	var snap Snapshot
	var createdAt string

	err := s.db.QueryRow(query, id).Scan(
		&snap.ID,
		&createdAt,
		&snap.Reason,
		&snap.PackageCount,
		&snap.Path,
	)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("snapshot %d not found", id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get snapshot %d: %w", id, err)
	}

	snap.CreatedAt, err = time.Parse(time.RFC3339, createdAt)
	if err != nil {
		return nil, fmt.Errorf("failed to parse created_at for snapshot %d: %w", id, err)
	}

	return &snap, nil
}

// ListSnapshots returns all snapshots, newest first.
func (s *Store) ListSnapshots() ([]*Snapshot, error) {
	query := `
		SELECT id, created_at, reason, package_count, snapshot_path
		FROM snapshots
		ORDER BY created_at DESC, id DESC
	`

	rows, err := s.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to list snapshots: %w", err)
	}
	defer rows.Close()

	var snapshots []*Snapshot
	for rows.Next() {
		var snap Snapshot
		var createdAt string

		if err := rows.Scan(&snap.ID, &createdAt, &snap.Reason, &snap.PackageCount, &snap.Path); err != nil {
			return nil, fmt.Errorf("failed to scan snapshot row: %w", err)
		}

		snap.CreatedAt, err = time.Parse(time.RFC3339, createdAt)
		if err != nil {
			return nil, fmt.Errorf("failed to parse created_at for snapshot %d: %w", snap.ID, err)
		}

		snapshots = append(snapshots, &snap)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating snapshots: %w", err)
	}

	return snapshots, nil
}
