package worker

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// BatchProcessor runs many claim documents through one processor concurrently
type BatchProcessor struct {
	processor   Processor
	concurrency int
}

// NewBatchProcessor creates a new batch processor
func NewBatchProcessor(processor Processor, concurrency int) *BatchProcessor {
	return &BatchProcessor{
		processor:   processor,
		concurrency: concurrency,
	}
}

// ProcessPaths reads and processes the given document files concurrently.
// Unreadable files become per-file failures, not a batch failure.
func (b *BatchProcessor) ProcessPaths(ctx context.Context, paths []string) []DocumentResult {
	if len(paths) == 0 {
		return []DocumentResult{}
	}

	pool := NewPool(b.processor, b.concurrency)
	pool.Start()

	var unreadable []DocumentResult
	for _, path := range paths {
		if ctx.Err() != nil {
			pool.Shutdown()
			return unreadable
		}

		data, err := os.ReadFile(path)
		if err != nil {
			unreadable = append(unreadable, DocumentResult{
				Path: path,
				Err:  fmt.Errorf("read document: %w", err),
			})
			continue
		}

		pool.Submit(DocumentJob{Path: path, Data: data})
	}

	results := pool.Wait()
	return append(results, unreadable...)
}

// ProcessDir discovers supported claim documents in dir and processes them
func (b *BatchProcessor) ProcessDir(ctx context.Context, dir string) ([]DocumentResult, error) {
	paths, err := ListDocuments(dir)
	if err != nil {
		return nil, fmt.Errorf("list documents: %w", err)
	}

	return b.ProcessPaths(ctx, paths), nil
}

// documentExtensions are the upload types the OCR boundary accepts
var documentExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".bmp":  true,
	".tiff": true,
	".tif":  true,
	".pdf":  true,
}

// ListDocuments returns the supported document files directly inside dir,
// sorted for deterministic batch ordering
func ListDocuments(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read dir: %w", err)
	}

	var paths []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if documentExtensions[strings.ToLower(filepath.Ext(entry.Name()))] {
			paths = append(paths, filepath.Join(dir, entry.Name()))
		}
	}

	sort.Strings(paths)
	return paths, nil
}
