package svg

import (
	"math"
	"testing"
)

func closeTo(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func assertBounds(t *testing.T, got Bounds, minX, minY, maxX, maxY float64) {
	t.Helper()
	if !closeTo(got.MinX, minX) || !closeTo(got.MinY, minY) ||
		!closeTo(got.MaxX, maxX) || !closeTo(got.MaxY, maxY) {
		t.Errorf("bounds = (%v, %v)-(%v, %v), want (%v, %v)-(%v, %v)",
			got.MinX, got.MinY, got.MaxX, got.MaxY, minX, minY, maxX, maxY)
	}
}

func TestExtractBounds_Circle(t *testing.T) {
	b, ok := ExtractBounds(`<svg><circle cx="50" cy="50" r="10"/></svg>`)
	if !ok {
		t.Fatal("expected geometry")
	}
	assertBounds(t, b, 40, 40, 60, 60)
}

func TestExtractBounds_Rect(t *testing.T) {
	b, ok := ExtractBounds(`<svg><rect x="5" y="10" width="20" height="30"/></svg>`)
	if !ok {
		t.Fatal("expected geometry")
	}
	assertBounds(t, b, 5, 10, 25, 40)
}

func TestExtractBounds_Line(t *testing.T) {
	b, ok := ExtractBounds(`<svg><line x1="30" y1="5" x2="-2" y2="40"/></svg>`)
	if !ok {
		t.Fatal("expected geometry")
	}
	assertBounds(t, b, -2, 5, 30, 40)
}

func TestExtractBounds_NestedTranslate(t *testing.T) {
	markup := `<svg>
		<g transform="translate(10,20)">
			<g transform="translate(5, 5)">
				<circle cx="0" cy="0" r="1"/>
			</g>
		</g>
	</svg>`
	b, ok := ExtractBounds(markup)
	if !ok {
		t.Fatal("expected geometry")
	}
	assertBounds(t, b, 14, 24, 16, 26)
}

func TestExtractBounds_TranslateScopePops(t *testing.T) {
	markup := `<svg>
		<g transform="translate(100,0)"><rect x="0" y="0" width="1" height="1"/></g>
		<rect x="0" y="0" width="1" height="1"/>
	</svg>`
	b, ok := ExtractBounds(markup)
	if !ok {
		t.Fatal("expected geometry")
	}
	// Second rect is outside the translated group.
	assertBounds(t, b, 0, 0, 101, 1)
}

func TestExtractBounds_ElementTransform(t *testing.T) {
	b, ok := ExtractBounds(`<svg><rect transform="translate(3,4)" x="0" y="0" width="2" height="2"/></svg>`)
	if !ok {
		t.Fatal("expected geometry")
	}
	assertBounds(t, b, 3, 4, 5, 6)
}

func TestExtractBounds_Path(t *testing.T) {
	tests := []struct {
		name                   string
		d                      string
		minX, minY, maxX, maxY float64
	}{
		{"moveto lineto", "M 0 0 L 10 20", 0, 0, 10, 20},
		{"implicit lineto", "M 0 0 10 5 20 -3", 0, -3, 20, 5},
		{"horizontal vertical", "M 5 5 H 30 V 40", 5, 5, 30, 40},
		{"relative lineto", "M 10 10 l 5 5 l -20 0", -5, 10, 15, 15},
		{"cubic control points", "M 0 0 C 10 40 30 40 40 0", 0, 0, 40, 40},
		{"quadratic control point", "M 0 0 Q 20 30 40 0", 0, 0, 40, 30},
		{"close returns to start", "M 3 3 L 10 10 Z L 4 4", 3, 3, 10, 10},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b, ok := ExtractBounds(`<svg><path d="` + tt.d + `"/></svg>`)
			if !ok {
				t.Fatal("expected geometry")
			}
			assertBounds(t, b, tt.minX, tt.minY, tt.maxX, tt.maxY)
		})
	}
}

func TestExtractBounds_UnknownPathCommandSkipped(t *testing.T) {
	// Arc args are consumed but contribute no points.
	b, ok := ExtractBounds(`<svg><path d="M 0 0 A 500 500 0 0 1 900 900 L 10 10"/></svg>`)
	if !ok {
		t.Fatal("expected geometry")
	}
	assertBounds(t, b, 0, 0, 10, 10)
}

func TestExtractBounds_Text(t *testing.T) {
	// 4 chars at font-size 10: halfWidth = 0.6*4*10 = 24.
	b, ok := ExtractBounds(`<svg><text x="100" y="50" font-size="10">abcd</text></svg>`)
	if !ok {
		t.Fatal("expected geometry")
	}
	assertBounds(t, b, 76, 38, 124, 55)
}

func TestExtractBounds_TextWithoutContent(t *testing.T) {
	// Self-closing text falls back to halfWidth = 5*fontSize.
	b, ok := ExtractBounds(`<svg><text x="0" y="0" font-size="10"/></svg>`)
	if !ok {
		t.Fatal("expected geometry")
	}
	assertBounds(t, b, -50, -12, 50, 5)
}

func TestExtractBounds_TextDefaultFontSize(t *testing.T) {
	b, ok := ExtractBounds(`<svg><text x="0" y="0">ab</text></svg>`)
	if !ok {
		t.Fatal("expected geometry")
	}
	// 0.6*2*11 = 13.2 half width, 13.2 above, 5.5 below.
	assertBounds(t, b, -13.2, -13.2, 13.2, 5.5)
}

func TestExtractBounds_TspanStripped(t *testing.T) {
	b, ok := ExtractBounds(`<svg><text x="0" y="0" font-size="10"><tspan>ab</tspan></text></svg>`)
	if !ok {
		t.Fatal("expected geometry")
	}
	assertBounds(t, b, -12, -12, 12, 5)
}

func TestExtractBounds_MalformedFragmentsTolerated(t *testing.T) {
	markup := `<svg><path d="garbage"/><circle cx="1" cy="1" r="1"/><rect width=`
	b, ok := ExtractBounds(markup)
	if !ok {
		t.Fatal("expected geometry from the well-formed circle")
	}
	assertBounds(t, b, 0, 0, 2, 2)
}

func TestExtractBounds_NoGeometry(t *testing.T) {
	if _, ok := ExtractBounds(`<svg><defs></defs></svg>`); ok {
		t.Error("expected no geometry")
	}
	if _, ok := ExtractBounds(""); ok {
		t.Error("expected no geometry for empty input")
	}
}

func TestExtractBounds_PxSuffixTolerated(t *testing.T) {
	b, ok := ExtractBounds(`<svg><rect x="1px" y="2px" width="3px" height="4px"/></svg>`)
	if !ok {
		t.Fatal("expected geometry")
	}
	assertBounds(t, b, 1, 2, 4, 6)
}
