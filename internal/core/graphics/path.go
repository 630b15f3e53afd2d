package graphics

import (
	"math"

	"github.com/zeusync/gmruntime/internal/core/assets"
)

// PathGeometry precomputes straight line segment lengths for paths.
type PathGeometry struct{}

func NewPathGeometry() *PathGeometry {
	return &PathGeometry{}
}

// Compute fills Distances with the cumulative distance at every point and
// Length with the total. A closed path also counts the segment from the
// last point back to the first.
func (g *PathGeometry) Compute(p *assets.Path) {
	p.Distances = make([]float64, len(p.Points))
	p.Length = 0
	if len(p.Points) == 0 {
		return
	}

	for i := 1; i < len(p.Points); i++ {
		p.Length += segment(p.Points[i-1], p.Points[i])
		p.Distances[i] = p.Length
	}
	if p.Closed && len(p.Points) > 1 {
		p.Length += segment(p.Points[len(p.Points)-1], p.Points[0])
	}
}

// Position returns the point at fraction t of the way along p, with t
// clamped to [0, 1]. Compute must have run first.
func (g *PathGeometry) Position(p *assets.Path, t float64) (x, y float64) {
	switch len(p.Points) {
	case 0:
		return 0, 0
	case 1:
		return p.Points[0].X, p.Points[0].Y
	}

	t = math.Max(0, math.Min(1, t))
	target := t * p.Length

	n := len(p.Points)
	segments := n - 1
	if p.Closed {
		segments = n
	}
	for i := 0; i < segments; i++ {
		from, to := p.Points[i], p.Points[(i+1)%n]
		start := p.Distances[i]
		end := p.Length
		if i+1 < n {
			end = p.Distances[i+1]
		}
		if target <= end || i == segments-1 {
			span := end - start
			if span <= 0 {
				return from.X, from.Y
			}
			f := (target - start) / span
			return from.X + (to.X-from.X)*f, from.Y + (to.Y-from.Y)*f
		}
	}
	last := p.Points[n-1]
	return last.X, last.Y
}

func segment(a, b assets.PathPoint) float64 {
	return math.Hypot(b.X-a.X, b.Y-a.Y)
}
