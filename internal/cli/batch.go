package cli

import (
	"context"
	"fmt"
	"os"
	"runtime"
	"time"

	"github.com/spf13/cobra"

	"github.com/osadebe/claimsight/internal/model"
	"github.com/osadebe/claimsight/internal/pipeline"
	"github.com/osadebe/claimsight/internal/worker"
)

var (
	concurrency  int
	batchTimeout time.Duration
)

// batchCmd represents the batch command
var batchCmd = &cobra.Command{
	Use:   "batch <dir>",
	Short: "Process every claim document in a directory in parallel",
	Long: `Batch discovers supported claim documents (JPEG, PNG, BMP, TIFF, PDF) in a
directory and processes them concurrently. All workers write into the same
in-memory claim store, which is the single synchronization point.

Example:
  claimsight batch ./claims
  claimsight batch ./claims --concurrency 8 --provider openai`,
	Args: cobra.ExactArgs(1),
	RunE: runBatch,
}

func init() {
	rootCmd.AddCommand(batchCmd)

	addPipelineFlags(batchCmd)
	batchCmd.Flags().IntVar(&concurrency, "concurrency", runtime.NumCPU(), "number of concurrent workers")
	batchCmd.Flags().DurationVar(&batchTimeout, "batch-timeout", 10*time.Minute, "total timeout for batch processing")
}

func runBatch(cmd *cobra.Command, args []string) error {
	dir := args[0]
	ctx, cancel := context.WithTimeout(context.Background(), batchTimeout)
	defer cancel()

	cfg, err := buildConfig()
	if err != nil {
		return err
	}

	p, err := pipeline.NewPipeline(cfg, newLogger())
	if err != nil {
		return err
	}

	fmt.Fprintf(os.Stderr, "⚙️  Processing documents in %s with %d workers...\n", dir, concurrency)

	processor := worker.NewBatchProcessor(p, concurrency)
	results, err := processor.ProcessDir(ctx, dir)
	if err != nil {
		return err
	}

	successCount := 0
	failureCount := 0
	fallbackCount := 0

	for _, result := range results {
		if result.Err != nil {
			failureCount++
			fmt.Fprintf(os.Stderr, "✗ %s: %v\n", result.Path, result.Err)
			continue
		}

		successCount++
		if result.Record.OCRMode == model.ModeFallback {
			fallbackCount++
		}
		fmt.Fprintf(os.Stderr, "✓ %s (document_id: %s, ocr_mode: %s)\n",
			result.Path, result.Record.DocumentID, result.Record.OCRMode)
	}

	stats := p.Stats()

	fmt.Fprintf(os.Stderr, "\n")
	fmt.Fprintf(os.Stderr, "═══════════════════════════════════════════════════════════\n")
	fmt.Fprintf(os.Stderr, "  Batch Complete\n")
	fmt.Fprintf(os.Stderr, "═══════════════════════════════════════════════════════════\n")
	fmt.Fprintf(os.Stderr, "\n")
	fmt.Fprintf(os.Stderr, "  Total:     %d documents\n", len(results))
	fmt.Fprintf(os.Stderr, "  Success:   %d\n", successCount)
	fmt.Fprintf(os.Stderr, "  Fallback:  %d\n", fallbackCount)
	fmt.Fprintf(os.Stderr, "  Failures:  %d\n", failureCount)
	fmt.Fprintf(os.Stderr, "  Stored:    %d records\n", stats.Count)
	fmt.Fprintf(os.Stderr, "\n")

	return nil
}
