package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/dkoval/ctxpress/internal/cache"
	"github.com/dkoval/ctxpress/internal/compress"
	"github.com/dkoval/ctxpress/internal/model"
	"github.com/spf13/cobra"
)

var (
	query   string
	method  string
	noCache bool
)

// compressCmd represents the compress command
var compressCmd = &cobra.Command{
	Use:   "compress <file>",
	Short: "Compress a single document for AI context",
	Long: `Compress reduces a document with one of four methods:
- auto      choose a method from the file type, size and query (default)
- relevant  extract lines near a query match, with context
- summary   keep structure: signatures and docstrings for code, leading
            lines for text
- strip     remove comments and excess whitespace

Results are cached by file path, query and method.

Example:
  ctxpress compress large_module.py
  ctxpress compress docs/design.md --query "rate limiting"
  ctxpress compress vendor.js --method strip --no-cache`,
	Args: cobra.ExactArgs(1),
	RunE: runCompress,
}

func init() {
	rootCmd.AddCommand(compressCmd)

	compressCmd.Flags().StringVar(&query, "query", "", "search query for relevant extraction")
	compressCmd.Flags().StringVar(&method, "method", compress.MethodAuto, "compression method (auto, relevant, summary, strip)")
	compressCmd.Flags().BoolVar(&noCache, "no-cache", false, "disable cache (force fresh compression)")
}

func runCompress(cmd *cobra.Command, args []string) error {
	cfg := model.DefaultConfig()
	cfg.Output.Verbose = verbose
	if noCache {
		cfg.Cache.Enabled = false
	}

	if err := compress.ValidateMethod(method); err != nil {
		return err
	}
	if err := validateQuery(query, cfg); err != nil {
		return err
	}

	path, err := filepath.Abs(args[0])
	if err != nil {
		return fmt.Errorf("resolve path: %w", err)
	}

	var store *cache.Store
	key := cache.Key(path, query, method)
	if cfg.Cache.Enabled {
		store = cache.NewStore(cache.NewLayeredCache(cfg.Cache.MemoryTTL, cacheDir(cfg), cfg.Cache.DiskTTL))
		if rec, found := store.GetRecord(key); found {
			if verbose {
				fmt.Fprintf(os.Stderr, "Cache hit: %s\n", key)
			}
			printCompressionResult(args[0], rec.Result)
			return nil
		}
	}

	content, err := readInputFile(args[0], cfg)
	if err != nil {
		return err
	}

	compressed, result, err := compress.New().Compress(path, content, query, method)
	if err != nil {
		return err
	}

	if store != nil {
		if err := store.SetRecord(key, cache.Record{Result: result, Content: compressed}); err != nil && verbose {
			fmt.Fprintf(os.Stderr, "Cache write failed: %v\n", err)
		}
	}

	printCompressionResult(args[0], result)
	return nil
}

func printCompressionResult(path string, result model.CompressionResult) {
	fmt.Println("\n=== COMPRESSION RESULT ===")
	fmt.Printf("File: %s\n", path)
	fmt.Printf("Method: %s\n", result.Method)
	fmt.Printf("Original: %d chars (~%d tokens)\n", result.OriginalSize, result.OriginalSize/model.CharsPerToken)
	fmt.Printf("Compressed: %d chars (~%d tokens)\n", result.CompressedSize, result.CompressedSize/model.CharsPerToken)
	fmt.Printf("Ratio: %.1f%%\n", result.CompressionRatio*100)
	fmt.Printf("Token Savings: ~%d tokens\n", result.EstimatedTokenSavings)
	fmt.Printf("\nPreview:\n%s\n", result.Preview)
}
