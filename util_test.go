package spiral

import (
	"math"
	"testing"

	"github.com/gogpu/gg"
	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

const eps = 1e-9

func diff(t *testing.T, want, got any, opts ...cmp.Option) {
	t.Helper()
	if d := cmp.Diff(want, got, opts...); d != "" {
		t.Error(d)
	}
}

// approx compares floats, including those nested in gg.Point, within eps.
var approx = cmpopts.EquateApprox(0, eps)

func near(a, b float64) bool {
	return math.Abs(a-b) <= eps
}

func nearPt(a, b gg.Point) bool {
	return near(a.X, b.X) && near(a.Y, b.Y)
}

// recorder is a Surface that keeps every command it receives.
type recorder struct {
	cmds []DrawCommand
}

func (r *recorder) DrawArc(cmd DrawCommand) {
	r.cmds = append(r.cmds, cmd)
}
