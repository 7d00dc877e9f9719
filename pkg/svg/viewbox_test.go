package svg

import (
	"strconv"
	"strings"
	"testing"
)

func TestFitViewBox_NegativeOriginClamped(t *testing.T) {
	markup := `<svg width="100" height="100"><circle cx="-2" cy="50" r="10"/></svg>`
	content, ok := ExtractBounds(markup)
	if !ok {
		t.Fatal("expected geometry")
	}
	out := FitViewBox(markup, &content)

	// Content reaches x=-12, margin 5 pushes to -17; the origin is clamped
	// back to zero with the overhang folded into the width.
	minX, _, w, _ := mustViewBox(t, out)
	if minX != 0 {
		t.Errorf("viewBox minX = %v, want 0", minX)
	}
	if w < 117 {
		t.Errorf("viewBox width = %v, want >= 117", w)
	}
	// The declared canvas attributes stay as the renderer emitted them.
	if !strings.Contains(out, `width="100"`) || !strings.Contains(out, `height="100"`) {
		t.Errorf("declared width/height changed: %s", out)
	}
}

func TestFitViewBox_GrowsNeverCrops(t *testing.T) {
	markup := `<svg width="200" height="100"><rect x="50" y="50" width="10" height="10"/></svg>`
	content, ok := ExtractBounds(markup)
	if !ok {
		t.Fatal("expected geometry")
	}
	out := FitViewBox(markup, &content)
	_, _, w, h := mustViewBox(t, out)
	if w < 200 {
		t.Errorf("viewBox width = %v, want >= declared 200", w)
	}
	if h < 100 {
		t.Errorf("viewBox height = %v, want >= declared 100", h)
	}
}

func TestFitViewBox_Idempotent(t *testing.T) {
	markup := `<svg width="100" height="100"><circle cx="120" cy="50" r="10"/></svg>`
	content, ok := ExtractBounds(markup)
	if !ok {
		t.Fatal("expected geometry")
	}
	once := FitViewBox(markup, &content)

	content2, ok := ExtractBounds(once)
	if !ok {
		t.Fatal("expected geometry after first fit")
	}
	twice := FitViewBox(once, &content2)
	if once != twice {
		t.Errorf("second fit changed output:\nfirst:  %s\nsecond: %s", once, twice)
	}
}

func TestFitViewBox_IdempotentNegativeOrigin(t *testing.T) {
	// Content left of the origin triggers the clamp; re-fitting the result
	// with the same geometry must not fold the overhang in a second time.
	markup := `<svg width="100" height="100"><circle cx="-2" cy="50" r="10"/></svg>`
	content, ok := ExtractBounds(markup)
	if !ok {
		t.Fatal("expected geometry")
	}
	once := FitViewBox(markup, &content)

	content2, ok := ExtractBounds(once)
	if !ok {
		t.Fatal("expected geometry after first fit")
	}
	if content2 != content {
		t.Fatalf("geometry changed after fit: %+v vs %+v", content2, content)
	}
	twice := FitViewBox(once, &content2)
	if once != twice {
		t.Errorf("second fit changed output:\nfirst:  %s\nsecond: %s", once, twice)
	}
}

func TestFitViewBox_ReplacesExistingViewBox(t *testing.T) {
	markup := `<svg width="50" height="50" viewBox="0 0 50 50"><circle cx="25" cy="25" r="5"/></svg>`
	content, ok := ExtractBounds(markup)
	if !ok {
		t.Fatal("expected geometry")
	}
	out := FitViewBox(markup, &content)
	if strings.Count(out, "viewBox=") != 1 {
		t.Errorf("expected exactly one viewBox attribute: %s", out)
	}
}

func TestFitViewBox_NilContentPassthrough(t *testing.T) {
	markup := `<svg width="10" height="10"></svg>`
	if out := FitViewBox(markup, nil); out != markup {
		t.Errorf("expected passthrough, got %s", out)
	}
}

func TestFitViewBox_NoRootPassthrough(t *testing.T) {
	content := Bounds{MaxX: 10, MaxY: 10}
	if out := FitViewBox("not svg at all", &content); out != "not svg at all" {
		t.Errorf("expected passthrough, got %s", out)
	}
}

func TestFitViewBox_MinimumSize(t *testing.T) {
	// Degenerate content with no declared canvas still yields at least 1x1.
	markup := `<svg><circle cx="0" cy="0" r="0"/></svg>`
	content := Bounds{}
	out := FitViewBox(markup, &content)
	_, _, w, h := mustViewBox(t, out)
	if w < 1 {
		t.Errorf("viewBox width = %v, want >= 1", w)
	}
	if h < 1 {
		t.Errorf("viewBox height = %v, want >= 1", h)
	}
}

func TestFitViewBox_MarginScalesWithExtent(t *testing.T) {
	// 1000-wide content gets a 2% margin (20), not the 5 floor.
	markup := `<svg width="1" height="1"><rect x="0" y="0" width="1000" height="10"/></svg>`
	content, ok := ExtractBounds(markup)
	if !ok {
		t.Fatal("expected geometry")
	}
	out := FitViewBox(markup, &content)
	_, _, w, _ := mustViewBox(t, out)
	if w < 1040 {
		t.Errorf("viewBox width = %v, want >= 1040 (content 1000 plus 20 margin per side)", w)
	}
}

func mustRootTag(t *testing.T, markup string) string {
	t.Helper()
	_, _, tag, ok := rootTag(markup)
	if !ok {
		t.Fatalf("no root tag in %s", markup)
	}
	return tag
}

// mustViewBox parses the root viewBox attribute into its four numbers.
func mustViewBox(t *testing.T, markup string) (minX, minY, w, h float64) {
	t.Helper()
	attrs := parseAttrs(mustRootTag(t, markup))
	raw, ok := attrs["viewBox"]
	if !ok {
		t.Fatalf("no viewBox in %s", markup)
	}
	fields := strings.Fields(raw)
	if len(fields) != 4 {
		t.Fatalf("malformed viewBox %q", raw)
	}
	nums := make([]float64, 4)
	for i, f := range fields {
		v, err := strconv.ParseFloat(f, 64)
		if err != nil {
			t.Fatalf("malformed viewBox %q: %v", raw, err)
		}
		nums[i] = v
	}
	return nums[0], nums[1], nums[2], nums[3]
}
