package client

import (
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	bolt "go.etcd.io/bbolt"

	"github.com/noctura/backend/domain"
)

// SnapshotCache persists the last reconciled server snapshot per board so
// a restarted client can render immediately while the first fetch is in
// flight. The cache is never authoritative: the first Reconcile after a
// successful fetch overwrites whatever was loaded from disk.
type SnapshotCache struct {
	db     *bolt.DB
	bucket []byte
}

type snapshotRecord struct {
	SavedAt time.Time     `json:"saved_at"`
	Tasks   []domain.Task `json:"tasks"`
}

// OpenSnapshotCache initializes the BoltDB file and ensures the bucket exists.
func OpenSnapshotCache(path string) (*SnapshotCache, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}
	db, err := bolt.Open(path, 0o600, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, err
	}

	bucket := []byte("snapshots")
	if err := db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(bucket)
		return err
	}); err != nil {
		db.Close()
		return nil, err
	}

	return &SnapshotCache{db: db, bucket: bucket}, nil
}

// Save stores the snapshot under the board kind, e.g. "kanban".
func (c *SnapshotCache) Save(kind string, tasks []domain.Task) error {
	if c == nil || c.db == nil {
		return bolt.ErrDatabaseNotOpen
	}
	payload, err := json.Marshal(snapshotRecord{
		SavedAt: time.Now(),
		Tasks:   tasks,
	})
	if err != nil {
		return err
	}
	return c.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(c.bucket).Put([]byte(kind), payload)
	})
}

// Load returns the cached snapshot and its age. ok is false when no
// snapshot was ever saved for the kind.
func (c *SnapshotCache) Load(kind string) (tasks []domain.Task, savedAt time.Time, ok bool, err error) {
	if c == nil || c.db == nil {
		return nil, time.Time{}, false, bolt.ErrDatabaseNotOpen
	}
	err = c.db.View(func(tx *bolt.Tx) error {
		raw := tx.Bucket(c.bucket).Get([]byte(kind))
		if raw == nil {
			return nil
		}
		var record snapshotRecord
		if err := json.Unmarshal(raw, &record); err != nil {
			return err
		}
		tasks = record.Tasks
		savedAt = record.SavedAt
		ok = true
		return nil
	})
	return tasks, savedAt, ok, err
}

// Clear drops the snapshot for one board kind.
func (c *SnapshotCache) Clear(kind string) error {
	if c == nil || c.db == nil {
		return bolt.ErrDatabaseNotOpen
	}
	return c.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(c.bucket).Delete([]byte(kind))
	})
}

func (c *SnapshotCache) Close() error {
	if c == nil || c.db == nil {
		return nil
	}
	return c.db.Close()
}
