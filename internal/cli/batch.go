package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/dkoval/ctxpress/internal/analyze"
	"github.com/dkoval/ctxpress/internal/llm"
	"github.com/dkoval/ctxpress/internal/model"
	"github.com/dkoval/ctxpress/internal/worker"
	"github.com/spf13/cobra"
)

var (
	concurrency  int
	outputDir    string
	batchTimeout time.Duration
)

// batchCmd represents the batch command
var batchCmd = &cobra.Command{
	Use:   "batch <manifest>",
	Short: "Analyze multiple conversation logs from a manifest in parallel",
	Long: `Batch analyzes many conversation logs concurrently:
- Read file paths from the manifest (one per line, # comments allowed)
- Analyze files in parallel with a configurable worker count
- Write one JSON report per conversation

Example:
  ctxpress batch sessions.txt
  ctxpress batch sessions.txt --concurrency 10 --output-dir ./reports
  ctxpress batch sessions.txt --llm --llm-provider ollama --llm-model mistral`,
	Args: cobra.ExactArgs(1),
	RunE: runBatch,
}

func init() {
	rootCmd.AddCommand(batchCmd)

	batchCmd.Flags().IntVar(&concurrency, "concurrency", runtime.NumCPU(), "number of concurrent workers")
	batchCmd.Flags().StringVar(&outputDir, "output-dir", "./ctxpress-reports", "output directory for reports")
	batchCmd.Flags().DurationVar(&batchTimeout, "timeout", 10*time.Minute, "total timeout for batch processing")

	// LLM flags
	batchCmd.Flags().BoolVar(&llmEnabled, "llm", false, "enable LLM digest generation")
	batchCmd.Flags().StringVar(&llmProvider, "llm-provider", "openai", "LLM provider (openai, ollama)")
	batchCmd.Flags().StringVar(&llmModel, "llm-model", "gpt-4o-mini", "LLM model name")
}

// fileRunner adapts the analyzer to the worker.Runner interface, adding
// file validation and the optional rate-limited digest step.
type fileRunner struct {
	cfg      *model.Config
	analyzer *analyze.Analyzer
	digester *llm.Digester
	provider string
	limiter  *worker.Limiter
}

func (r *fileRunner) AnalyzeFile(ctx context.Context, path string) (*model.GroupReport, error) {
	conversation, err := readInputFile(path, r.cfg)
	if err != nil {
		return nil, err
	}

	report := r.analyzer.Analyze(conversation, analyze.Options{})

	if r.digester != nil {
		if err := r.limiter.Wait(ctx, r.provider); err != nil {
			return nil, fmt.Errorf("rate limit wait: %w", err)
		}
		digest, err := r.digester.Digest(ctx, report, rosterOf(report))
		if err != nil {
			return nil, err
		}
		report.Digest = digest
	}
	return report, nil
}

func runBatch(cmd *cobra.Command, args []string) error {
	manifest := args[0]
	ctx, cancel := context.WithTimeout(context.Background(), batchTimeout)
	defer cancel()

	cfg := model.DefaultConfig()
	cfg.Concurrency.Workers = concurrency
	cfg.Output.Verbose = verbose

	fmt.Fprintf(os.Stderr, "\n")
	fmt.Fprintf(os.Stderr, "═══════════════════════════════════════════════════════════\n")
	fmt.Fprintf(os.Stderr, "  ctxpress Batch Analysis\n")
	fmt.Fprintf(os.Stderr, "═══════════════════════════════════════════════════════════\n")
	fmt.Fprintf(os.Stderr, "\n")
	fmt.Fprintf(os.Stderr, "  Manifest:     %s\n", manifest)
	fmt.Fprintf(os.Stderr, "  Workers:      %d\n", concurrency)
	fmt.Fprintf(os.Stderr, "  Output dir:   %s\n", outputDir)
	fmt.Fprintf(os.Stderr, "  Timeout:      %v\n", batchTimeout)

	runner := &fileRunner{
		cfg:      cfg,
		analyzer: analyze.New(),
	}

	if llmEnabled {
		if err := configureLLM(cfg); err != nil {
			return err
		}
		provider, err := llm.NewProvider(llm.ConfigFromModel(cfg.LLM))
		if err != nil {
			return err
		}
		if provider == nil {
			return fmt.Errorf("no LLM provider configured")
		}
		runner.digester = llm.NewDigester(provider)
		runner.provider = provider.Name()
		runner.limiter = worker.NewLimiter(cfg.RateLimiting.RequestsPerSecond, cfg.RateLimiting.BurstSize)

		fmt.Fprintf(os.Stderr, "  LLM:          %s/%s\n", llmProvider, llmModel)
	}
	fmt.Fprintf(os.Stderr, "\n")

	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	processor := worker.NewBatchProcessor(runner, concurrency)
	results, err := processor.ProcessManifest(ctx, manifest)
	if err != nil {
		return err
	}

	fmt.Fprintf(os.Stderr, "⚙️  Processing %d files with %d workers...\n\n", len(results), concurrency)

	successCount := 0
	failureCount := 0
	for _, result := range results {
		if result.Error != nil {
			failureCount++
			fmt.Fprintf(os.Stderr, "✗ %s: %v\n", result.Path, result.Error)
			continue
		}

		jsonPath := filepath.Join(outputDir, reportFilename(result.Path))
		if err := writeReport(result.Report, jsonPath); err != nil {
			failureCount++
			fmt.Fprintf(os.Stderr, "✗ %s: failed to write report: %v\n", result.Path, err)
			continue
		}

		successCount++
		fmt.Fprintf(os.Stderr, "✓ %s (%d messages, %d contradictions)\n",
			result.Path, result.Report.TotalMessages, len(result.Report.Contradictions))
	}

	fmt.Fprintf(os.Stderr, "\n")
	fmt.Fprintf(os.Stderr, "═══════════════════════════════════════════════════════════\n")
	fmt.Fprintf(os.Stderr, "  Batch Complete\n")
	fmt.Fprintf(os.Stderr, "═══════════════════════════════════════════════════════════\n")
	fmt.Fprintf(os.Stderr, "\n")
	fmt.Fprintf(os.Stderr, "  Total:     %d files\n", len(results))
	fmt.Fprintf(os.Stderr, "  Success:   %d\n", successCount)
	fmt.Fprintf(os.Stderr, "  Failures:  %d\n", failureCount)
	fmt.Fprintf(os.Stderr, "  Output:    %s\n", outputDir)
	fmt.Fprintf(os.Stderr, "\n")

	if failureCount > 0 {
		return fmt.Errorf("%d of %d files failed", failureCount, len(results))
	}
	return nil
}

// configureLLM fills cfg.LLM from the batch flags and environment.
func configureLLM(cfg *model.Config) error {
	cfg.LLM.Provider = llmProvider
	cfg.LLM.Model = llmModel

	switch llmProvider {
	case "openai":
		cfg.LLM.APIKey = os.Getenv("OPENAI_API_KEY")
		if cfg.LLM.APIKey == "" {
			return fmt.Errorf("OPENAI_API_KEY environment variable not set")
		}
	case "ollama":
		if baseURL := os.Getenv("OLLAMA_BASE_URL"); baseURL != "" {
			cfg.LLM.BaseURL = baseURL
		}
	}
	return nil
}

func writeReport(report *model.GroupReport, path string) error {
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal report: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

// reportFilename derives an output name from a conversation path.
func reportFilename(path string) string {
	base := filepath.Base(path)
	if ext := filepath.Ext(base); ext != "" {
		base = strings.TrimSuffix(base, ext)
	}

	var b strings.Builder
	for _, r := range base {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_', r == '.':
			b.WriteRune(r)
		default:
			b.WriteRune('_')
		}
	}

	name := b.String()
	if len(name) > 100 {
		name = name[:100]
	}
	if name == "" {
		name = "report"
	}
	return name + ".json"
}
