package worker

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/osadebe/claimsight/internal/model"
)

// countingProcessor records how many documents it saw and fails on demand
type countingProcessor struct {
	mu    sync.Mutex
	calls int
	fail  func(filename string) bool
}

func (c *countingProcessor) Process(ctx context.Context, data []byte, filename string) (*model.ClaimRecord, error) {
	c.mu.Lock()
	c.calls++
	c.mu.Unlock()

	if c.fail != nil && c.fail(filename) {
		return nil, errors.New("provider unreachable")
	}

	rec := model.NewClaimRecord()
	rec.DocumentID = filename
	return rec, nil
}

func TestPool_ProcessesAllJobs(t *testing.T) {
	proc := &countingProcessor{}
	pool := NewPool(proc, 4)
	pool.Start()

	const n = 20
	for i := 0; i < n; i++ {
		pool.Submit(DocumentJob{Path: fmt.Sprintf("claim-%02d.png", i), Data: []byte("x")})
	}

	results := pool.Wait()
	if len(results) != n {
		t.Fatalf("Expected %d results, got %d", n, len(results))
	}
	if proc.calls != n {
		t.Errorf("Expected %d processor calls, got %d", n, proc.calls)
	}
	for _, r := range results {
		if r.Err != nil {
			t.Errorf("Unexpected error for %s: %v", r.Path, r.Err)
		}
		if r.Record == nil || r.Record.DocumentID != r.Path {
			t.Errorf("Result for %s carries wrong record", r.Path)
		}
	}
}

func TestPool_PartialFailures(t *testing.T) {
	proc := &countingProcessor{
		fail: func(filename string) bool { return filepath.Ext(filename) == ".bad" },
	}
	pool := NewPool(proc, 2)
	pool.Start()

	pool.Submit(DocumentJob{Path: "ok.png", Data: []byte("x")})
	pool.Submit(DocumentJob{Path: "broken.bad", Data: []byte("x")})
	pool.Submit(DocumentJob{Path: "also-ok.png", Data: []byte("x")})

	results := pool.Wait()
	if len(results) != 3 {
		t.Fatalf("Expected 3 results, got %d", len(results))
	}

	var failures int
	for _, r := range results {
		if r.Err != nil {
			failures++
			if r.Path != "broken.bad" {
				t.Errorf("Unexpected failure for %s: %v", r.Path, r.Err)
			}
		}
	}
	if failures != 1 {
		t.Errorf("Expected 1 failure, got %d", failures)
	}
}

func TestPool_ZeroWorkersDefaultsToOne(t *testing.T) {
	proc := &countingProcessor{}
	pool := NewPool(proc, 0)
	pool.Start()

	pool.Submit(DocumentJob{Path: "claim.png", Data: []byte("x")})
	if results := pool.Wait(); len(results) != 1 {
		t.Fatalf("Expected 1 result, got %d", len(results))
	}
}

func TestBatchProcessor_ProcessPaths(t *testing.T) {
	dir := t.TempDir()

	var paths []string
	for i := 0; i < 3; i++ {
		path := filepath.Join(dir, fmt.Sprintf("claim-%d.png", i))
		if err := os.WriteFile(path, []byte("image bytes"), 0o644); err != nil {
			t.Fatalf("WriteFile failed: %v", err)
		}
		paths = append(paths, path)
	}
	paths = append(paths, filepath.Join(dir, "missing.png"))

	proc := &countingProcessor{}
	results := NewBatchProcessor(proc, 2).ProcessPaths(context.Background(), paths)

	if len(results) != 4 {
		t.Fatalf("Expected 4 results, got %d", len(results))
	}

	var readFailures int
	for _, r := range results {
		if r.Err != nil {
			readFailures++
		}
	}
	if readFailures != 1 {
		t.Errorf("Expected 1 unreadable file, got %d failures", readFailures)
	}
	if proc.calls != 3 {
		t.Errorf("Expected 3 processed documents, got %d", proc.calls)
	}
}

func TestBatchProcessor_EmptyInput(t *testing.T) {
	proc := &countingProcessor{}
	results := NewBatchProcessor(proc, 2).ProcessPaths(context.Background(), nil)

	if len(results) != 0 {
		t.Errorf("Expected no results, got %d", len(results))
	}
	if proc.calls != 0 {
		t.Errorf("Expected no processor calls, got %d", proc.calls)
	}
}

func TestListDocuments(t *testing.T) {
	dir := t.TempDir()

	for _, name := range []string{"b.pdf", "a.png", "notes.txt", "scan.JPG"} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("x"), 0o644); err != nil {
			t.Fatalf("WriteFile failed: %v", err)
		}
	}
	if err := os.Mkdir(filepath.Join(dir, "nested.png"), 0o755); err != nil {
		t.Fatalf("Mkdir failed: %v", err)
	}

	paths, err := ListDocuments(dir)
	if err != nil {
		t.Fatalf("ListDocuments failed: %v", err)
	}

	want := []string{
		filepath.Join(dir, "a.png"),
		filepath.Join(dir, "b.pdf"),
		filepath.Join(dir, "scan.JPG"),
	}
	if len(paths) != len(want) {
		t.Fatalf("Expected %d documents, got %v", len(want), paths)
	}
	for i, p := range want {
		if paths[i] != p {
			t.Errorf("Expected %s at index %d, got %s", p, i, paths[i])
		}
	}
}
