package worker

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/dkoval/ctxpress/internal/model"
)

// Runner analyzes one conversation file.
type Runner interface {
	AnalyzeFile(ctx context.Context, path string) (*model.GroupReport, error)
}

// AnalyzeJob analyzes a single conversation file through a Runner.
type AnalyzeJob struct {
	Path   string
	Runner Runner
}

// Execute runs the analysis and wraps the outcome.
func (j *AnalyzeJob) Execute(ctx context.Context) Result {
	report, err := j.Runner.AnalyzeFile(ctx, j.Path)
	return &AnalyzeResult{
		Path:   j.Path,
		Report: report,
		Error:  err,
	}
}

// AnalyzeResult pairs a conversation file with its report or failure.
type AnalyzeResult struct {
	Path   string
	Report *model.GroupReport
	Error  error
}

// Err returns the analysis error, if any.
func (r *AnalyzeResult) Err() error {
	return r.Error
}

// BatchProcessor analyzes many conversation files concurrently.
type BatchProcessor struct {
	runner      Runner
	concurrency int
}

// NewBatchProcessor creates a batch processor with the given concurrency.
func NewBatchProcessor(runner Runner, concurrency int) *BatchProcessor {
	return &BatchProcessor{
		runner:      runner,
		concurrency: concurrency,
	}
}

// ProcessPaths analyzes the given files concurrently and returns one result
// per file, in completion order.
func (b *BatchProcessor) ProcessPaths(ctx context.Context, paths []string) []*AnalyzeResult {
	if len(paths) == 0 {
		return []*AnalyzeResult{}
	}

	pool := NewPool(b.concurrency)
	pool.Start()

	done := make(chan struct{})
	defer close(done)

	go func() {
		select {
		case <-ctx.Done():
			pool.Shutdown()
		case <-done:
		}
	}()

	// Submit from a separate goroutine so results can be drained
	// concurrently; the pool's channels are bounded.
	go func() {
		for _, path := range paths {
			pool.Submit(&AnalyzeJob{Path: path, Runner: b.runner})
		}
		pool.Close()
	}()

	analyzeResults := make([]*AnalyzeResult, 0, len(paths))
	for result := range pool.Results() {
		analyzeResults = append(analyzeResults, result.(*AnalyzeResult))
	}
	return analyzeResults
}

// ProcessManifest reads conversation file paths from a manifest and
// analyzes them concurrently.
func (b *BatchProcessor) ProcessManifest(ctx context.Context, manifestPath string) ([]*AnalyzeResult, error) {
	paths, err := ReadPathsFromFile(manifestPath)
	if err != nil {
		return nil, fmt.Errorf("read manifest: %w", err)
	}
	return b.ProcessPaths(ctx, paths), nil
}

// ReadPathsFromFile reads file paths from a manifest, one per line. Blank
// lines and # comments are skipped; duplicates are dropped.
func ReadPathsFromFile(manifestPath string) ([]string, error) {
	file, err := os.Open(manifestPath)
	if err != nil {
		return nil, fmt.Errorf("open file: %w", err)
	}
	defer func() { _ = file.Close() }()

	var paths []string
	seen := make(map[string]bool)

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if !seen[line] {
			seen[line] = true
			paths = append(paths, line)
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan file: %w", err)
	}
	return paths, nil
}
