package svg

// point is a position in the path's own coordinate space.
type point struct {
	x, y float64
}

// pathPoints tokenizes SVG path data and returns every recorded point.
//
// Supported commands are M, L, H, V, C, Q and Z; lowercase variants are
// relative to the current pen position. Curves record all control points
// along with the end point, an over-approximation that never under-estimates
// the curve's extent. Unrecognized commands (arcs, shorthand curves) have
// their numeric arguments consumed and contribute no points, so a path
// using them still reports bounds for its other segments.
func pathPoints(d string) []point {
	var pts []point
	var pen, first point
	haveFirst := false

	record := func(p point) {
		pts = append(pts, p)
		if !haveFirst {
			first = p
			haveFirst = true
		}
	}

	i := 0
	for i < len(d) {
		c := d[i]
		if !isPathLetter(c) {
			i++ // separators and stray bytes between commands
			continue
		}
		i++
		rel := c >= 'a' && c <= 'z'
		upper := c &^ 0x20

		switch upper {
		case 'M', 'L':
			for {
				x, ni, ok := scanNumber(d, i)
				if !ok {
					break
				}
				y, ni2, ok := scanNumber(d, ni)
				if !ok {
					break
				}
				i = ni2
				if rel {
					x += pen.x
					y += pen.y
				}
				pen = point{x, y}
				record(pen)
			}

		case 'H':
			for {
				v, ni, ok := scanNumber(d, i)
				if !ok {
					break
				}
				i = ni
				if rel {
					v += pen.x
				}
				pen.x = v
				record(pen)
			}

		case 'V':
			for {
				v, ni, ok := scanNumber(d, i)
				if !ok {
					break
				}
				i = ni
				if rel {
					v += pen.y
				}
				pen.y = v
				record(pen)
			}

		case 'C':
			for {
				group, ni, ok := scanGroup(d, i, 6)
				if !ok {
					break
				}
				i = ni
				base := pen
				for j := 0; j < 6; j += 2 {
					p := point{group[j], group[j+1]}
					if rel {
						p.x += base.x
						p.y += base.y
					}
					record(p)
					pen = p
				}
			}

		case 'Q':
			for {
				group, ni, ok := scanGroup(d, i, 4)
				if !ok {
					break
				}
				i = ni
				base := pen
				for j := 0; j < 4; j += 2 {
					p := point{group[j], group[j+1]}
					if rel {
						p.x += base.x
						p.y += base.y
					}
					record(p)
					pen = p
				}
			}

		case 'Z':
			if haveFirst {
				pen = first
			}

		default:
			// Unsupported command: swallow its arguments, record nothing.
			for {
				_, ni, ok := scanNumber(d, i)
				if !ok {
					break
				}
				i = ni
			}
		}
	}
	return pts
}

// pathBounds computes the min/max box over all recorded path points.
func pathBounds(d string) (Bounds, bool) {
	pts := pathPoints(d)
	if len(pts) == 0 {
		return Bounds{}, false
	}
	b := Bounds{MinX: pts[0].x, MinY: pts[0].y, MaxX: pts[0].x, MaxY: pts[0].y}
	for _, p := range pts[1:] {
		b.addPoint(p.x, p.y)
	}
	return b, true
}

// scanGroup parses exactly n consecutive numbers, or fails without advancing.
func scanGroup(s string, i, n int) ([]float64, int, bool) {
	out := make([]float64, 0, n)
	pos := i
	for len(out) < n {
		v, ni, ok := scanNumber(s, pos)
		if !ok {
			return nil, i, false
		}
		out = append(out, v)
		pos = ni
	}
	return out, pos, true
}

func isPathLetter(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}
