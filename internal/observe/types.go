package observe

import (
	"time"

	"github.com/ModernAmusements/night-sky/internal/transform"
)

// Entry is one object's position on the sky at a frame's instant.
type Entry struct {
	ID        string
	AzDeg     float64 // compass bearing, 0 = North, clockwise, [0, 360)
	AltDeg    float64 // degrees above horizon, [-90, 90]
	Magnitude float64
	Body      bool // true for Sun/Moon/planets/satellites
}

// SkyFrame is the full set of computed positions for one observer at one
// instant. Entries below the horizon are included; rendering decides what to
// clip. Never mutated after evaluation.
type SkyFrame struct {
	Time     time.Time
	Observer transform.Observer
	Entries  []Entry
}
