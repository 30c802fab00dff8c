package store

import (
	"fmt"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	gocache "github.com/patrickmn/go-cache"
	"github.com/rs/zerolog"

	"github.com/osadebe/claimsight/internal/model"
)

// ClaimStore is the process-lifetime, concurrency-safe mapping from document
// id to ClaimRecord. Records are write-once: Put refuses to overwrite, and a
// stored record is never mutated. The store is the only shared mutable state
// in the pipeline; everything else operates on caller-owned data.
type ClaimStore struct {
	records *gocache.Cache

	// Stats counters are independent atomics so Stats() never blocks a
	// writer beyond a single load
	processed atomic.Int64
	lastWrite atomic.Int64 // Unix nanoseconds, 0 = never written

	log zerolog.Logger
}

// Stats is a point-in-time snapshot of store activity
type Stats struct {
	Count     int       `json:"count"`      // Records currently stored
	Processed int64     `json:"processed"`  // Total successful writes this process
	LastWrite time.Time `json:"last_write"` // Zero time when nothing was written yet
}

// NewClaimStore creates a store. A zero TTL disables expiry; records then
// live until process exit. Expiry, when configured, is an operational
// mechanism layered on top of the write-once contract, not part of it.
func NewClaimStore(cfg model.StoreConfig, log zerolog.Logger) *ClaimStore {
	ttl := cfg.TTL
	if ttl <= 0 {
		ttl = gocache.NoExpiration
	}
	cleanup := cfg.CleanupInterval
	if cleanup <= 0 {
		cleanup = 5 * time.Minute
	}

	return &ClaimStore{
		records: gocache.New(ttl, cleanup),
		log:     log.With().Str("component", "store").Logger(),
	}
}

// Put assigns a fresh document id (when the record carries none) and a
// creation timestamp, then inserts atomically. Concurrent readers never see
// a partially written record. Inserting an id that already exists is an
// error: records are write-once.
func (s *ClaimStore) Put(rec *model.ClaimRecord) (string, error) {
	if rec == nil {
		return "", fmt.Errorf("nil record")
	}

	if rec.DocumentID == "" {
		rec.DocumentID = uuid.New().String()
	}
	rec.CreatedAt = time.Now().UTC()

	if err := s.records.Add(rec.DocumentID, rec, gocache.DefaultExpiration); err != nil {
		return "", fmt.Errorf("document %s: already stored", rec.DocumentID)
	}

	s.processed.Add(1)
	s.lastWrite.Store(rec.CreatedAt.UnixNano())

	s.log.Info().
		Str("document_id", rec.DocumentID).
		Str("ocr_mode", string(rec.OCRMode)).
		Msg("Stored claim record")

	return rec.DocumentID, nil
}

// Get returns the record for id, or a wrapped model.ErrNotFound. It never
// substitutes a default record for an unknown id.
func (s *ClaimStore) Get(id string) (*model.ClaimRecord, error) {
	v, found := s.records.Get(id)
	if !found {
		return nil, fmt.Errorf("document %q: %w", id, model.ErrNotFound)
	}
	return v.(*model.ClaimRecord), nil
}

// Stats returns an eventually-consistent snapshot of store activity
func (s *ClaimStore) Stats() Stats {
	stats := Stats{
		Count:     s.records.ItemCount(),
		Processed: s.processed.Load(),
	}
	if ns := s.lastWrite.Load(); ns > 0 {
		stats.LastWrite = time.Unix(0, ns).UTC()
	}
	return stats
}
