package cli

import (
	"fmt"
	"os"

	"github.com/dkoval/ctxpress/internal/model"
)

// readInputFile validates the path against the configured limits and
// returns its content. Size is checked twice: on the stat before reading
// and on the decoded text after.
func readInputFile(path string, cfg *model.Config) (string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return "", fmt.Errorf("file not found: %s", path)
	}
	if info.IsDir() {
		return "", fmt.Errorf("path is not a file: %s", path)
	}
	if info.Size() > cfg.Limits.MaxFileBytes {
		return "", fmt.Errorf("file too large (%.1f MB), max: %.1f MB",
			float64(info.Size())/1024/1024, float64(cfg.Limits.MaxFileBytes)/1024/1024)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read file: %w", err)
	}

	text := string(data)
	if len(text) > cfg.Limits.MaxTextBytes {
		return "", fmt.Errorf("text too large (%.1f MB), max: %.1f MB",
			float64(len(text))/1024/1024, float64(cfg.Limits.MaxTextBytes)/1024/1024)
	}
	return text, nil
}

// validateQuery bounds the query length.
func validateQuery(query string, cfg *model.Config) error {
	if len(query) > cfg.Limits.MaxQueryLen {
		return fmt.Errorf("query too long (%d chars), max: %d", len(query), cfg.Limits.MaxQueryLen)
	}
	return nil
}

// cacheDir resolves the on-disk cache location, defaulting under the
// user's home directory.
func cacheDir(cfg *model.Config) string {
	if cfg.Cache.Dir != "" {
		return cfg.Cache.Dir
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ".ctxpress-cache"
	}
	return home + "/.ctxpress/cache"
}
