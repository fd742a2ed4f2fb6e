package storage

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"github.com/wearstack/scout/internal/types"
)

// --- JSON Archive ---

// JSONArchive buffers results and writes them as one JSON array on close.
type JSONArchive struct {
	path    string
	results []*types.ScrapeResult
	mu      sync.Mutex
	logger  *slog.Logger
}

// NewJSONArchive creates a JSON file archive.
func NewJSONArchive(outputPath string, logger *slog.Logger) (*JSONArchive, error) {
	dir := filepath.Dir(outputPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create output dir: %w", err)
	}

	return &JSONArchive{
		path:    outputPath,
		results: make([]*types.ScrapeResult, 0),
		logger:  logger.With("component", "json_archive"),
	}, nil
}

func (a *JSONArchive) Name() string { return "json" }

func (a *JSONArchive) Store(result *types.ScrapeResult) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.results = append(a.results, result)
	a.logger.Debug("result buffered", "url", result.ProductURL, "total", len(a.results))
	return nil
}

func (a *JSONArchive) Close() error {
	a.mu.Lock()
	defer a.mu.Unlock()

	f, err := os.Create(a.path)
	if err != nil {
		return fmt.Errorf("create output file: %w", err)
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(a.results); err != nil {
		return fmt.Errorf("encode JSON: %w", err)
	}

	a.logger.Info("JSON written", "path", a.path, "results", len(a.results))
	return nil
}

// --- JSONL Archive ---

// JSONLArchive appends results as newline-delimited JSON (streaming writes).
type JSONLArchive struct {
	path   string
	file   *os.File
	enc    *json.Encoder
	mu     sync.Mutex
	count  int
	logger *slog.Logger
}

// NewJSONLArchive creates a JSONL file archive.
func NewJSONLArchive(outputPath string, logger *slog.Logger) (*JSONLArchive, error) {
	dir := filepath.Dir(outputPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create output dir: %w", err)
	}

	f, err := os.OpenFile(outputPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open output file: %w", err)
	}

	return &JSONLArchive{
		path:   outputPath,
		file:   f,
		enc:    json.NewEncoder(f),
		logger: logger.With("component", "jsonl_archive"),
	}, nil
}

func (a *JSONLArchive) Name() string { return "jsonl" }

func (a *JSONLArchive) Store(result *types.ScrapeResult) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if err := a.enc.Encode(result); err != nil {
		return fmt.Errorf("encode JSONL: %w", err)
	}
	a.count++
	return nil
}

func (a *JSONLArchive) Close() error {
	a.logger.Info("JSONL written", "path", a.path, "results", a.count)
	if a.file != nil {
		return a.file.Close()
	}
	return nil
}
