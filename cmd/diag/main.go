package main

import (
	"fmt"
	"log/slog"
	"os"
	"sort"
	"time"

	"github.com/ModernAmusements/night-sky/internal/catalog"
	"github.com/ModernAmusements/night-sky/internal/ephemeris"
	"github.com/ModernAmusements/night-sky/internal/observe"
	"github.com/ModernAmusements/night-sky/internal/transform"
)

// Quick visibility check: prints an alt/az table for the brightest catalog
// stars plus the Sun and Moon, as seen from one location at one moment.
func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stderr, nil))

	path := os.Getenv("NIGHTSKY_CATALOG_PATH")
	if path == "" {
		path = "/tmp/nightsky/hip_main.dat"
	}

	ds, err := catalog.Load(path, 2.0, logger)
	if err != nil {
		fmt.Println("ERROR loading catalog:", err)
		os.Exit(1)
	}
	fmt.Printf("Loaded %d stars to magnitude %.1f\n", len(ds.Stars), ds.MagLimit)

	stars := append([]catalog.Star(nil), ds.Stars...)
	sort.Slice(stars, func(i, j int) bool {
		return stars[i].Magnitude < stars[j].Magnitude
	})
	if len(stars) > 15 {
		stars = stars[:15]
	}

	bodies, err := ephemeris.NewSet(ephemeris.Config{Sun: true, Moon: true})
	if err != nil {
		fmt.Println("ERROR loading ephemeris:", err)
		os.Exit(1)
	}

	obs, err := transform.NewObserver(39.7392, -104.9903, 1609)
	if err != nil {
		fmt.Println("ERROR building observer:", err)
		os.Exit(1)
	}

	now := time.Now().UTC()
	fmt.Printf("Observer: Denver, time: %v\n\n", now.Format(time.RFC3339))

	frame := transform.BuildFrame(obs, now)
	eval := observe.NewEvaluator(observe.Config{}, logger)
	sf := eval.Evaluate(frame, stars, bodies.BodiesAt(now))

	fmt.Printf("%-12s %8s %8s %6s %s\n", "object", "az", "alt", "mag", "visible")
	for _, e := range sf.Entries {
		visible := ""
		if e.AltDeg >= 0 {
			visible = "yes"
		}
		fmt.Printf("%-12s %7.2f° %7.2f° %6.2f %s\n", e.ID, e.AzDeg, e.AltDeg, e.Magnitude, visible)
	}
}
