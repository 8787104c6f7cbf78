package store

const schema = `
CREATE TABLE IF NOT EXISTS requirements_cache (
    root_path TEXT PRIMARY KEY,
    fingerprint TEXT NOT NULL,
    installed_at TIMESTAMP NOT NULL,
    skipped_packages TEXT
);

CREATE TABLE IF NOT EXISTS snapshots (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    created_at TIMESTAMP NOT NULL,
    reason TEXT,
    package_count INTEGER,
    snapshot_path TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_snapshots_created ON snapshots(created_at);
`
