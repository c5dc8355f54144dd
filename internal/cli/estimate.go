package cli

import (
	"fmt"

	"github.com/dkoval/ctxpress/internal/compress"
	"github.com/dkoval/ctxpress/internal/model"
	"github.com/spf13/cobra"
)

// Rough input price used for the cost hint, dollars per million tokens.
const inputDollarsPerMTok = 3.0

// estimateCmd represents the estimate command
var estimateCmd = &cobra.Command{
	Use:   "estimate <file>",
	Short: "Estimate the token count and cost of a file",
	Long: `Estimate approximates how many tokens a file would consume as model
input, using the 4-characters-per-token heuristic, plus a rough cost hint.

Example:
  ctxpress estimate session_log.md`,
	Args: cobra.ExactArgs(1),
	RunE: runEstimate,
}

func init() {
	rootCmd.AddCommand(estimateCmd)
}

func runEstimate(cmd *cobra.Command, args []string) error {
	cfg := model.DefaultConfig()

	content, err := readInputFile(args[0], cfg)
	if err != nil {
		return err
	}

	tokens := compress.EstimateTokens(content)
	fmt.Println("\n=== TOKEN ESTIMATE ===")
	fmt.Printf("File: %s\n", args[0])
	fmt.Printf("Size: %d chars\n", len(content))
	fmt.Printf("Estimated Tokens: ~%d\n", tokens)
	fmt.Printf("Estimated Cost ($%.0f/MTok input): $%.4f\n", inputDollarsPerMTok, float64(tokens)/1_000_000*inputDollarsPerMTok)
	return nil
}
