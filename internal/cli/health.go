package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/osadebe/claimsight/internal/pipeline"
)

// healthCmd represents the health command
var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Check OCR provider availability",
	Long: `Health reports which OCR path uploads will take: the configured vision
provider, or the deterministic fallback payload when no provider is
configured or the provider is unreachable.

Example:
  claimsight health
  claimsight health --provider openai`,
	RunE: runHealth,
}

func init() {
	rootCmd.AddCommand(healthCmd)
	addPipelineFlags(healthCmd)
}

func runHealth(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	cfg, err := buildConfig()
	if err != nil {
		return err
	}

	p, err := pipeline.NewPipeline(cfg, newLogger())
	if err != nil {
		return err
	}

	name := p.ProviderName()
	if name == "" {
		fmt.Println("OCR provider: none configured")
		fmt.Println("Uploads will use the deterministic fallback payload (ocr_mode: fallback)")
		return nil
	}

	fmt.Printf("OCR provider: %s\n", name)
	if p.ProviderAvailable(ctx) {
		fmt.Println("Status: available (ocr_mode: provider)")
		return nil
	}

	fmt.Println("Status: unreachable - uploads will degrade to the fallback payload")
	fmt.Fprintln(os.Stderr, "Check the API key and network connectivity")
	return nil
}
