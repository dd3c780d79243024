package bolt

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	bbolt "go.etcd.io/bbolt"

	"github.com/fastygo/taskmaster/domain"
)

const defaultBucket = "sessions"

// SessionStore keeps sessions in a local BoltDB file. Bolt has no key
// expiry, so expired entries are skipped on read and removed by PurgeExpired.
type SessionStore struct {
	db     *bbolt.DB
	bucket []byte
	ttl    time.Duration
}

// Open initializes the BoltDB file and ensures the session bucket exists.
func Open(path string, ttl time.Duration) (*SessionStore, error) {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}
	db, err := bbolt.Open(path, 0o600, &bbolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, err
	}

	bucket := []byte(defaultBucket)
	if err := db.Update(func(tx *bbolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(bucket)
		return err
	}); err != nil {
		db.Close()
		return nil, err
	}

	return &SessionStore{db: db, bucket: bucket, ttl: ttl}, nil
}

func (s *SessionStore) Get(_ context.Context, id string) (*domain.Session, error) {
	var session *domain.Session
	err := s.db.View(func(tx *bbolt.Tx) error {
		payload := tx.Bucket(s.bucket).Get([]byte(id))
		if payload == nil {
			return domain.ErrSessionNotFound
		}
		var decoded domain.Session
		if err := json.Unmarshal(payload, &decoded); err != nil {
			return err
		}
		session = &decoded
		return nil
	})
	if err != nil {
		return nil, err
	}
	if session.IsExpired(time.Now()) {
		return nil, domain.ErrSessionNotFound
	}
	return session, nil
}

func (s *SessionStore) Save(_ context.Context, session *domain.Session) error {
	if session == nil || session.ID == "" {
		return domain.ErrInvalidPayload
	}
	if session.CreatedAt.IsZero() {
		session.CreatedAt = time.Now().UTC()
	}
	if !session.ExpiresAt.After(session.CreatedAt) {
		session.ExpiresAt = session.CreatedAt.Add(s.ttl)
	}

	payload, err := json.Marshal(session)
	if err != nil {
		return err
	}
	return s.db.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket(s.bucket).Put([]byte(session.ID), payload)
	})
}

func (s *SessionStore) Delete(_ context.Context, id string) error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket(s.bucket).Delete([]byte(id))
	})
}

// PurgeExpired removes every session whose expiry is not after now.
func (s *SessionStore) PurgeExpired(_ context.Context, now time.Time) (int, error) {
	var purged int
	err := s.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(s.bucket)
		var stale [][]byte
		err := bucket.ForEach(func(k, v []byte) error {
			var session domain.Session
			if err := json.Unmarshal(v, &session); err != nil || session.IsExpired(now) {
				stale = append(stale, append([]byte(nil), k...))
			}
			return nil
		})
		if err != nil {
			return err
		}
		for _, k := range stale {
			if err := bucket.Delete(k); err != nil {
				return err
			}
		}
		purged = len(stale)
		return nil
	})
	return purged, err
}

// Size returns the number of stored sessions, expired ones included.
func (s *SessionStore) Size() (int, error) {
	var count int
	err := s.db.View(func(tx *bbolt.Tx) error {
		count = tx.Bucket(s.bucket).Stats().KeyN
		return nil
	})
	return count, err
}

// Ping verifies the database file is still open.
func (s *SessionStore) Ping(context.Context) error {
	return s.db.View(func(*bbolt.Tx) error { return nil })
}

func (s *SessionStore) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}
