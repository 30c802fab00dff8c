package store

import (
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/osadebe/claimsight/internal/model"
)

func newTestStore() *ClaimStore {
	return NewClaimStore(model.StoreConfig{}, zerolog.Nop())
}

func TestClaimStore_PutGet(t *testing.T) {
	s := newTestStore()

	rec := model.NewClaimRecord()
	rec.Patient.Name = "Jane Doe"
	rec.OCRMode = model.ModeFallback

	id, err := s.Put(rec)
	if err != nil {
		t.Fatalf("Put failed: %v", err)
	}
	if id == "" {
		t.Fatal("Expected a generated document id")
	}
	if rec.CreatedAt.IsZero() {
		t.Error("Expected created_at to be set on Put")
	}

	got, err := s.Get(id)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if got.Patient.Name != "Jane Doe" {
		t.Errorf("Expected patient 'Jane Doe', got %q", got.Patient.Name)
	}
	if got.OCRMode != model.ModeFallback {
		t.Errorf("Expected ocr_mode fallback, got %q", got.OCRMode)
	}
}

func TestClaimStore_GetUnknown(t *testing.T) {
	s := newTestStore()

	_, err := s.Get("no-such-document")
	if err == nil {
		t.Fatal("Expected error for unknown id")
	}
	if !errors.Is(err, model.ErrNotFound) {
		t.Errorf("Expected ErrNotFound, got %v", err)
	}
}

func TestClaimStore_WriteOnce(t *testing.T) {
	s := newTestStore()

	first := model.NewClaimRecord()
	first.DocumentID = "claim-001"
	if _, err := s.Put(first); err != nil {
		t.Fatalf("First Put failed: %v", err)
	}

	second := model.NewClaimRecord()
	second.DocumentID = "claim-001"
	if _, err := s.Put(second); err == nil {
		t.Fatal("Expected error when inserting a duplicate id")
	}

	// The original record survives the refused overwrite
	got, err := s.Get("claim-001")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if got != first {
		t.Error("Expected the first record to remain stored")
	}
}

func TestClaimStore_Stats(t *testing.T) {
	s := newTestStore()

	stats := s.Stats()
	if stats.Count != 0 || stats.Processed != 0 {
		t.Errorf("Expected empty stats, got %+v", stats)
	}
	if !stats.LastWrite.IsZero() {
		t.Errorf("Expected zero last_write before any Put, got %v", stats.LastWrite)
	}

	before := time.Now().UTC()
	if _, err := s.Put(model.NewClaimRecord()); err != nil {
		t.Fatalf("Put failed: %v", err)
	}

	stats = s.Stats()
	if stats.Count != 1 {
		t.Errorf("Expected count 1, got %d", stats.Count)
	}
	if stats.Processed != 1 {
		t.Errorf("Expected processed 1, got %d", stats.Processed)
	}
	if stats.LastWrite.Before(before) {
		t.Errorf("Expected last_write >= %v, got %v", before, stats.LastWrite)
	}
}

func TestClaimStore_Concurrent(t *testing.T) {
	s := newTestStore()
	const n = 50

	var wg sync.WaitGroup
	ids := make([]string, n)

	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			rec := model.NewClaimRecord()
			rec.DocumentID = fmt.Sprintf("claim-%03d", i)
			id, err := s.Put(rec)
			if err != nil {
				t.Errorf("Put %d failed: %v", i, err)
				return
			}
			ids[i] = id
			if _, err := s.Get(id); err != nil {
				t.Errorf("Get %d failed: %v", i, err)
			}
		}(i)
	}
	wg.Wait()

	stats := s.Stats()
	if stats.Count != n {
		t.Errorf("Expected %d records, got %d", n, stats.Count)
	}
	if stats.Processed != n {
		t.Errorf("Expected %d processed, got %d", n, stats.Processed)
	}
}
