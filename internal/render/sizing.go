package render

import (
	"math"

	"gonum.org/v1/plot/vg"
)

// maxMarkerRadius caps the Sun and Moon, whose magnitudes would otherwise
// produce markers larger than the chart.
const maxMarkerRadius = vg.Length(14)

// MarkerRadius maps apparent magnitude to a marker radius. The mapping
// follows the magnitude scale itself (a factor of 100 in flux per 5
// magnitudes), so a brighter object always gets a strictly larger marker
// until the cap. Over the naked-eye stellar range the cap is never reached.
func MarkerRadius(mag float64) vg.Length {
	r := vg.Length(0.6 + 5.5*math.Pow(10, -0.2*mag))
	if r > maxMarkerRadius {
		r = maxMarkerRadius
	}
	return r
}
