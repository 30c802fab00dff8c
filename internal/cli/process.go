package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/osadebe/claimsight/internal/model"
	"github.com/osadebe/claimsight/internal/pipeline"
)

var (
	outJSON     string
	ocrProvider string
	ocrModel    string
	ocrTimeout  time.Duration
	maxBytes    int64
	httpProxy   string
	httpsProxy  string
)

// processCmd represents the process command
var processCmd = &cobra.Command{
	Use:   "process <file>",
	Short: "Extract a structured claim record from a claim document",
	Long: `Process runs one claim document (JPEG, PNG, BMP, TIFF or PDF) through the
full pipeline:
- Pre-validate size and content type
- Transcribe via the configured vision provider, or substitute the canonical
  fallback payload when no provider is reachable
- Extract patient, diagnoses, medications, procedures, admission and total
- Store the record and print it with its assigned document_id

Example:
  claimsight process claim.jpg
  claimsight process claim.pdf --json record.json
  claimsight process claim.jpg --provider openai --model gpt-4o-mini`,
	Args: cobra.ExactArgs(1),
	RunE: runProcess,
}

func init() {
	rootCmd.AddCommand(processCmd)

	addPipelineFlags(processCmd)
	processCmd.Flags().StringVar(&outJSON, "json", "", "write the record to this path instead of stdout")
}

// addPipelineFlags registers the OCR/limits flags shared by the commands
// that run the pipeline
func addPipelineFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&ocrProvider, "provider", "", "OCR provider (openai; empty = fallback mode only)")
	cmd.Flags().StringVar(&ocrModel, "model", "", "vision model name (provider default when empty)")
	cmd.Flags().DurationVar(&ocrTimeout, "timeout", 30*time.Second, "timeout for a single provider call")
	cmd.Flags().Int64Var(&maxBytes, "max-bytes", 10<<20, "max document size in bytes")
	cmd.Flags().StringVar(&httpProxy, "http-proxy", "", "HTTP proxy URL (overrides HTTP_PROXY env var)")
	cmd.Flags().StringVar(&httpsProxy, "https-proxy", "", "HTTPS proxy URL (overrides HTTPS_PROXY env var)")
}

// buildConfig assembles the pipeline configuration from flags and env
func buildConfig() (*model.Config, error) {
	cfg := model.DefaultConfig()
	cfg.OCR.Provider = ocrProvider
	cfg.OCR.Model = ocrModel
	cfg.OCR.Timeout = ocrTimeout
	cfg.OCR.HTTPProxy = httpProxy
	cfg.OCR.HTTPSProxy = httpsProxy
	cfg.Limits.MaxUploadBytes = maxBytes
	cfg.Output.Verbose = verbose

	if ocrProvider == "openai" {
		cfg.OCR.APIKey = os.Getenv("OPENAI_API_KEY")
		if cfg.OCR.APIKey == "" {
			return nil, fmt.Errorf("OPENAI_API_KEY environment variable not set")
		}
	}

	return cfg, nil
}

func runProcess(cmd *cobra.Command, args []string) error {
	file := args[0]
	ctx, cancel := context.WithTimeout(context.Background(), ocrTimeout+30*time.Second)
	defer cancel()

	cfg, err := buildConfig()
	if err != nil {
		return err
	}

	data, err := os.ReadFile(file)
	if err != nil {
		return fmt.Errorf("read document: %w", err)
	}

	p, err := pipeline.NewPipeline(cfg, newLogger())
	if err != nil {
		return err
	}

	rec, err := p.Process(ctx, data, filepath.Base(file))
	if err != nil {
		return fmt.Errorf("process failed: %w", err)
	}

	if verbose {
		stats := p.Stats()
		fmt.Fprintf(os.Stderr, "✓ Processed %s (ocr_mode: %s)\n", file, rec.OCRMode)
		fmt.Fprintf(os.Stderr, "✓ Store now holds %d record(s)\n", stats.Count)
		fmt.Fprintln(os.Stderr)
	}

	return writeRecord(rec, outJSON)
}

// writeRecord renders the record as indented JSON to a file or stdout
func writeRecord(rec *model.ClaimRecord, path string) error {
	out, err := json.MarshalIndent(rec, "", "  ")
	if err != nil {
		return fmt.Errorf("encode record: %w", err)
	}

	if path == "" {
		fmt.Println(string(out))
		return nil
	}

	if err := os.WriteFile(path, append(out, '\n'), 0644); err != nil {
		return fmt.Errorf("write record: %w", err)
	}
	return nil
}
