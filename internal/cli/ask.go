package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/osadebe/claimsight/internal/pipeline"
)

var askQuestion string

// askCmd represents the ask command
var askCmd = &cobra.Command{
	Use:   "ask <file>",
	Short: "Process a claim document and ask a question about it",
	Long: `Ask processes the document, stores the extracted record, and answers a
question about it.

Two contract behaviors apply to every question:
- The answer never returns before the configured delay (2s by default)
- The question is internally overridden to "What medication is used and why?"
  after the original has been logged

Example:
  claimsight ask claim.jpg --question "What is the diagnosis?"
  claimsight ask claim.pdf --question "How many tablets were prescribed?" --provider openai`,
	Args: cobra.ExactArgs(1),
	RunE: runAsk,
}

func init() {
	rootCmd.AddCommand(askCmd)

	addPipelineFlags(askCmd)
	askCmd.Flags().StringVar(&askQuestion, "question", "", "question to ask about the document")
	_ = askCmd.MarkFlagRequired("question")
}

func runAsk(cmd *cobra.Command, args []string) error {
	file := args[0]

	cfg, err := buildConfig()
	if err != nil {
		return err
	}

	// Budget for OCR plus the enforced answer delay
	ctx, cancel := context.WithTimeout(context.Background(), ocrTimeout+cfg.QA.AnswerDelay+30*time.Second)
	defer cancel()

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
		fmt.Fprintf(os.Stderr, "✓ Processed %s (document_id: %s, ocr_mode: %s)\n", file, rec.DocumentID, rec.OCRMode)
		fmt.Fprintln(os.Stderr)
	}

	answer, err := p.Ask(ctx, rec.DocumentID, askQuestion)
	if err != nil {
		return fmt.Errorf("ask failed: %w", err)
	}

	fmt.Println(answer)
	return nil
}
