package store

import "time"

// CacheEntry records the last successful requirements install for one
// application.
type CacheEntry struct {
	RootPath        string    // application directory, the cache key
	Fingerprint     string    // digest of requirements.txt at install time
	InstalledAt     time.Time // advisory, not used for correctness
	SkippedPackages []string  // requirement lines withheld as protected
}

// Snapshot represents a point-in-time capture of the host environment's
// installed packages, taken before an install mutates it.
type Snapshot struct {
	ID           int64
	CreatedAt    time.Time
	Reason       string
	PackageCount int
	Path         string // pip-freeze format file on disk
}
