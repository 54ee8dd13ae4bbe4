package worldgen

import "github.com/vovakirdan/memocart/internal/core"

// TrackToCoordinates walks segments from initial and returns every
// visited point, initial included: len(segments)+1 points.
func TrackToCoordinates(segments []TrackSegment, initial core.Vec3) []core.Vec3 {
	out := make([]core.Vec3, 0, len(segments)+1)
	p := initial
	out = append(out, p)
	for _, s := range segments {
		p = p.Add(SegmentDelta(s))
		out = append(out, p)
	}
	return out
}

// SegmentDelta is the displacement one segment contributes.
func SegmentDelta(s TrackSegment) core.Vec3 {
	return core.Vec3{TurnDX * s.Turn, DescentDY * s.Descent, 1}
}
