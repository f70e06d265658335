package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"runtime"
	"strconv"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	nightsky "github.com/ModernAmusements/night-sky"
	"github.com/ModernAmusements/night-sky/internal/catalog"
	"github.com/ModernAmusements/night-sky/internal/ephemeris"
	"github.com/ModernAmusements/night-sky/internal/satellites"
	"github.com/ModernAmusements/night-sky/internal/transform"
)

// defaultAt is the reference observation time used when NIGHTSKY_TIME is
// unset: a June evening with a rich northern sky.
var defaultAt = time.Date(2024, 6, 15, 22, 0, 0, 0, time.UTC)

type site struct {
	name     string
	latDeg   float64
	lonDeg   float64
	elevM    float64
	featured bool // featured sites also get trails and an animation
}

var sites = []site{
	{name: "nyc", latDeg: 40.7128, lonDeg: -74.0060, elevM: 10, featured: true},
	{name: "london", latDeg: 51.5074, lonDeg: -0.1278, elevM: 11},
	{name: "sydney", latDeg: -33.8688, lonDeg: 151.2093, elevM: 58},
	{name: "tokyo", latDeg: 35.6762, lonDeg: 139.6503, elevM: 40},
	{name: "fairbanks", latDeg: 64.2008, lonDeg: -149.4937, elevM: 136},
}

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if addr := os.Getenv("NIGHTSKY_METRICS_ADDR"); addr != "" {
		go serveMetrics(addr, logger)
	}

	catCfg, maxMag := loadCatalogConfig(logger)
	runCfg := loadRunConfig(logger)

	dataset, err := nightsky.LoadStarCatalog(ctx, catCfg, maxMag, logger)
	if err != nil {
		logger.Error("failed to load star catalog", "error", err)
		os.Exit(1)
	}

	opts := nightsky.SkyOptions{
		Bodies:  runCfg.bodies,
		Workers: runCfg.workers,
		Logger:  logger,
	}
	if runCfg.tlePath != "" {
		entries, err := satellites.LoadTLEFile(runCfg.tlePath, logger)
		if err != nil {
			logger.Warn("failed to load TLE file, continuing without satellites", "error", err)
		} else {
			opts.Satellites = entries
		}
	}

	if err := os.MkdirAll(runCfg.outDir, 0755); err != nil {
		logger.Error("failed to create output directory", "error", err)
		os.Exit(1)
	}

	for _, loc := range sites {
		if err := renderSite(ctx, loc, dataset, opts, runCfg); err != nil {
			logger.Error("failed to render site", "site", loc.name, "error", err)
			os.Exit(1)
		}
	}

	logger.Info("all renders complete", "output_dir", runCfg.outDir)
}

func renderSite(ctx context.Context, loc site, dataset *catalog.Dataset, opts nightsky.SkyOptions, cfg runConfig) error {
	obs, err := transform.NewObserver(loc.latDeg, loc.lonDeg, loc.elevM)
	if err != nil {
		return err
	}
	sky, err := nightsky.NewSky(dataset, obs, opts)
	if err != nil {
		return err
	}

	if err := sky.PlotSky(cfg.at, filepath.Join(cfg.outDir, loc.name+"_sky.png")); err != nil {
		return err
	}
	if !loc.featured {
		return nil
	}

	if err := sky.CreateStarTrails(ctx, cfg.at, 6, 10, filepath.Join(cfg.outDir, loc.name+"_trails.png")); err != nil {
		return err
	}
	return sky.AnimateSky(ctx, cfg.at, 2, 15, filepath.Join(cfg.outDir, loc.name+"_sky.gif"))
}

func serveMetrics(addr string, logger *slog.Logger) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	logger.Info("serving metrics", "addr", addr)
	if err := http.ListenAndServe(addr, mux); err != nil {
		logger.Error("metrics listener error", "error", err)
	}
}

type runConfig struct {
	outDir  string
	at      time.Time
	workers int
	tlePath string
	bodies  ephemeris.Config
}

func loadCatalogConfig(logger *slog.Logger) (nightsky.CatalogConfig, float64) {
	cfg := nightsky.CatalogConfig{
		CacheDir: "/tmp/nightsky/catalog",
	}
	maxMag := 4.5

	if v := os.Getenv("NIGHTSKY_CATALOG_PATH"); v != "" {
		cfg.Path = v
	}
	if v := os.Getenv("NIGHTSKY_CATALOG_URL"); v != "" {
		cfg.SourceURL = v
	}
	if v := os.Getenv("NIGHTSKY_CATALOG_CACHE_DIR"); v != "" {
		cfg.CacheDir = v
	}
	if v := os.Getenv("NIGHTSKY_MAX_MAGNITUDE"); v != "" {
		m, err := strconv.ParseFloat(v, 64)
		if err != nil {
			logger.Warn("invalid NIGHTSKY_MAX_MAGNITUDE value, using default", "value", v, "default", maxMag)
		} else {
			maxMag = m
		}
	}

	logger.Info("catalog config",
		"path", cfg.Path,
		"cache_dir", cfg.CacheDir,
		"max_magnitude", maxMag,
	)

	return cfg, maxMag
}

func loadRunConfig(logger *slog.Logger) runConfig {
	cfg := runConfig{
		outDir:  "out",
		at:      defaultAt,
		workers: runtime.NumCPU(),
		bodies:  ephemeris.Config{Sun: true, Moon: true},
	}

	if v := os.Getenv("NIGHTSKY_OUTPUT_DIR"); v != "" {
		cfg.outDir = v
	}

	if v := os.Getenv("NIGHTSKY_TIME"); v != "" {
		t, err := time.Parse(time.RFC3339, v)
		if err != nil {
			logger.Warn("invalid NIGHTSKY_TIME value, using default", "value", v, "default", cfg.at.Format(time.RFC3339))
		} else {
			cfg.at = t.UTC()
		}
	}

	if v := os.Getenv("NIGHTSKY_WORKERS"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			logger.Warn("invalid NIGHTSKY_WORKERS value, using default", "value", v, "default", cfg.workers)
		} else {
			cfg.workers = n
		}
	}

	if v := os.Getenv("NIGHTSKY_TLE_PATH"); v != "" {
		cfg.tlePath = v
	}

	if v := os.Getenv("NIGHTSKY_VSOP87_DIR"); v != "" {
		cfg.bodies.VSOP87Dir = v
	}

	logger.Info("run config",
		"output_dir", cfg.outDir,
		"time", cfg.at.Format(time.RFC3339),
		"workers", cfg.workers,
		"planets_enabled", cfg.bodies.VSOP87Dir != "",
	)

	return cfg
}
