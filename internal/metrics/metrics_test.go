package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestSetCatalogStars(t *testing.T) {
	SetCatalogStars(842)
	if got := testutil.ToFloat64(catalogStars); got != 842 {
		t.Errorf("catalog star gauge = %v, want 842", got)
	}
}

func TestRecordEvaluation(t *testing.T) {
	before := testutil.ToFloat64(evaluationsTotal)
	RecordEvaluation(25*time.Millisecond, 500)
	after := testutil.ToFloat64(evaluationsTotal)
	if after != before+1 {
		t.Errorf("evaluation counter went %v -> %v, want +1", before, after)
	}
}

func TestRecordRenderModes(t *testing.T) {
	for _, mode := range []string{"static", "trails", "animation"} {
		before := testutil.ToFloat64(rendersTotal.WithLabelValues(mode))
		RecordRender(mode, 100*time.Millisecond)
		after := testutil.ToFloat64(rendersTotal.WithLabelValues(mode))
		if after != before+1 {
			t.Errorf("render counter for %q went %v -> %v, want +1", mode, before, after)
		}
	}
}
