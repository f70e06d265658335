// Package catalog loads the Hipparcos main star catalog and filters it by
// visual magnitude. The on-disk format is the CDS hip_main.dat distribution:
// one record per line, '|'-separated fields at fixed positions.
package catalog

import (
	"bufio"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"
)

// hip_main.dat field indices after splitting on '|'.
const (
	fieldHIP   = 1
	fieldVmag  = 5
	fieldRADeg = 8
	fieldDEDeg = 9
	fieldPMRA  = 12
	fieldPMDE  = 13

	minFields = 14
)

// Parse reads hip_main.dat records from r and returns stars with magnitude
// at or below maxMagnitude. Records with blank or malformed required fields
// are skipped with a warning log. Output preserves input order.
func Parse(r io.Reader, maxMagnitude float64, logger *slog.Logger) ([]Star, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	var stars []Star
	var skipped int
	line := 0
	for scanner.Scan() {
		line++
		text := scanner.Text()
		if strings.TrimSpace(text) == "" {
			continue
		}

		star, err := parseRecord(text)
		if err != nil {
			skipped++
			logger.Warn("skipping malformed catalog record", "line", line, "error", err)
			continue
		}

		if star.Magnitude <= maxMagnitude {
			stars = append(stars, star)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading catalog data: %w", err)
	}

	if skipped > 0 {
		logger.Info("catalog parse finished with skipped records", "skipped", skipped)
	}
	return stars, nil
}

// parseRecord extracts one star from a '|'-separated hip_main.dat line.
func parseRecord(line string) (Star, error) {
	fields := strings.Split(line, "|")
	if len(fields) < minFields {
		return Star{}, fmt.Errorf("%d fields, expected at least %d", len(fields), minFields)
	}

	hip, err := strconv.Atoi(strings.TrimSpace(fields[fieldHIP]))
	if err != nil {
		return Star{}, fmt.Errorf("invalid HIP identifier %q: %w", fields[fieldHIP], err)
	}

	mag, err := parseFloatField(fields[fieldVmag], "Vmag")
	if err != nil {
		return Star{}, err
	}
	ra, err := parseFloatField(fields[fieldRADeg], "RAdeg")
	if err != nil {
		return Star{}, err
	}
	dec, err := parseFloatField(fields[fieldDEDeg], "DEdeg")
	if err != nil {
		return Star{}, err
	}

	// Proper motion fields are occasionally blank; treat as zero motion.
	pmRA, err := parseFloatField(fields[fieldPMRA], "pmRA")
	if err != nil {
		pmRA = 0
	}
	pmDec, err := parseFloatField(fields[fieldPMDE], "pmDE")
	if err != nil {
		pmDec = 0
	}

	return Star{
		HIP:       hip,
		RADeg:     ra,
		DecDeg:    dec,
		Magnitude: mag,
		PMRA:      pmRA,
		PMDec:     pmDec,
	}, nil
}

func parseFloatField(s, name string) (float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("blank %s field", name)
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s field %q: %w", name, s, err)
	}
	return v, nil
}

// Load reads and filters a catalog file from disk.
func Load(path string, maxMagnitude float64, logger *slog.Logger) (*Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening catalog file: %w", err)
	}
	defer f.Close()

	stars, err := Parse(f, maxMagnitude, logger)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}

	return &Dataset{
		Source:    path,
		FetchedAt: time.Now().UTC(),
		MagLimit:  maxMagnitude,
		Stars:     stars,
	}, nil
}
