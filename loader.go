package nightsky

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/ModernAmusements/night-sky/internal/catalog"
	"github.com/ModernAmusements/night-sky/internal/metrics"
)

// CatalogConfig controls where the Hipparcos catalog comes from.
type CatalogConfig struct {
	// Path points at a local hip_main.dat. When set, no network or cache
	// is used.
	Path string

	// SourceURL overrides the CDS download mirror.
	SourceURL string

	// CacheDir stores downloaded catalog copies. Cached data is preferred
	// over a fresh download.
	CacheDir string

	// MaxCacheFiles bounds the cache; 0 keeps the default.
	MaxCacheFiles int
}

// LoadStarCatalog loads the star catalog filtered to magnitude maxMagnitude
// or brighter. A local path wins over the cache, and the cache wins over
// the network; fresh downloads are written back to the cache.
func LoadStarCatalog(ctx context.Context, cfg CatalogConfig, maxMagnitude float64, logger *slog.Logger) (*catalog.Dataset, error) {
	if logger == nil {
		logger = slog.Default()
	}

	if cfg.Path != "" {
		ds, err := catalog.Load(cfg.Path, maxMagnitude, logger)
		if err != nil {
			return nil, err
		}
		metrics.SetCatalogStars(len(ds.Stars))
		return ds, nil
	}

	cache := catalog.NewCache(cfg.CacheDir, cfg.MaxCacheFiles)
	fetcher := catalog.NewFetcher(cfg.SourceURL)

	data, fetchedAt, err := cache.LoadLatest()
	source := "cache:" + cfg.CacheDir
	if err != nil {
		if errors.Is(err, catalog.ErrNoCache) {
			logger.Info("no cached catalog, downloading", "url", fetcher.SourceURL())
		} else {
			logger.Warn("failed to read cached catalog, downloading", "error", err, "url", fetcher.SourceURL())
		}
		data, err = fetcher.Fetch(ctx)
		if err != nil {
			return nil, fmt.Errorf("loading star catalog: %w", err)
		}
		fetchedAt = time.Now().UTC()
		source = fetcher.SourceURL()
		if err := cache.Write(data, fetchedAt); err != nil {
			logger.Warn("failed to cache catalog", "error", err)
		}
	}

	stars, err := catalog.Parse(bytes.NewReader(data), maxMagnitude, logger)
	if err != nil {
		return nil, fmt.Errorf("loading star catalog: %w", err)
	}

	logger.Info("star catalog loaded",
		"source", source,
		"stars", len(stars),
		"max_magnitude", maxMagnitude)
	metrics.SetCatalogStars(len(stars))

	return &catalog.Dataset{
		Source:    source,
		FetchedAt: fetchedAt,
		MagLimit:  maxMagnitude,
		Stars:     stars,
	}, nil
}
