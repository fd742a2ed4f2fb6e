// Package storage is the optional result archive. The scrape pipeline itself
// is stateless; when archiving is enabled, finalized results are appended
// here after being returned to the caller.
package storage

import (
	"fmt"
	"log/slog"

	"github.com/wearstack/scout/internal/config"
	"github.com/wearstack/scout/internal/types"
)

// Archive is the interface for all archive backends.
type Archive interface {
	// Store persists one finalized result.
	Store(result *types.ScrapeResult) error

	// Close flushes pending writes and releases resources.
	Close() error

	// Name returns the backend identifier.
	Name() string
}

// New creates the configured archive backend.
func New(cfg *config.StorageConfig, logger *slog.Logger) (Archive, error) {
	switch cfg.Type {
	case "json":
		return NewJSONArchive(cfg.OutputPath, logger)
	case "jsonl":
		return NewJSONLArchive(cfg.OutputPath, logger)
	case "mongodb":
		return NewMongoArchive(cfg.MongoURI, cfg.MongoDatabase, cfg.MongoCollection, logger)
	default:
		return nil, fmt.Errorf("unsupported storage type: %s", cfg.Type)
	}
}
