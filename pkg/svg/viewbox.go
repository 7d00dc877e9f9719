package svg

import (
	"fmt"
	"strconv"
	"strings"
)

const (
	minMargin      = 5.0
	marginFraction = 0.02
)

// FitViewBox rewrites the root element's viewBox so the document frames
// content exactly, with a proportional margin on every side. The fitted
// region is the union of content and the declared background
// (0, 0, width, height), so fitting never crops the canvas, it only grows
// the visible region. The declared width and height attributes are left
// untouched. When content is nil or the markup has no recognizable root
// element the markup passes through untouched.
//
// Applying FitViewBox to its own output is a no-op as long as the
// geometry is unchanged.
func FitViewBox(markup string, content *Bounds) string {
	if content == nil {
		return markup
	}

	start, end, tag, ok := rootTag(markup)
	if !ok {
		return markup
	}
	attrs := parseAttrs(tag)
	declaredW := attrFloat(attrs, "width")
	declaredH := attrFloat(attrs, "height")

	box := *content
	mx := max(minMargin, marginFraction*box.Width())
	my := max(minMargin, marginFraction*box.Height())
	box.MinX -= mx
	box.MinY -= my
	box.MaxX += mx
	box.MaxY += my

	// Never crop the declared canvas.
	box.union(Bounds{MinX: 0, MinY: 0, MaxX: declaredW, MaxY: declaredH})

	w := box.Width()
	h := box.Height()
	minX := box.MinX
	minY := box.MinY

	// Content left or above the origin is absorbed into the extent so the
	// viewBox origin stays at zero.
	if minX < 0 {
		w -= minX
		minX = 0
	}
	if minY < 0 {
		h -= minY
		minY = 0
	}
	w = max(w, 1)
	h = max(h, 1)

	viewBox := fmt.Sprintf("%s %s %s %s", fmtNum(minX), fmtNum(minY), fmtNum(w), fmtNum(h))
	rewritten := setAttr(tag, "viewBox", viewBox)

	return markup[:start] + rewritten + markup[end:]
}

// rootTag locates the opening <svg ...> tag and returns its byte range
// [start, end) along with the tag text itself.
func rootTag(markup string) (start, end int, tag string, ok bool) {
	i := 0
	for {
		lt := strings.Index(markup[i:], "<svg")
		if lt < 0 {
			return 0, 0, "", false
		}
		pos := i + lt
		// Reject prefixes like <svgfoo.
		after := pos + 4
		if after < len(markup) {
			c := markup[after]
			if c != ' ' && c != '\t' && c != '\n' && c != '\r' && c != '>' && c != '/' {
				i = after
				continue
			}
		}
		gt := strings.IndexByte(markup[pos:], '>')
		if gt < 0 {
			return 0, 0, "", false
		}
		return pos, pos + gt + 1, markup[pos : pos+gt+1], true
	}
}

// setAttr replaces attribute name's value in tag, or inserts the attribute
// before the tag's closing bracket when it is absent.
func setAttr(tag, name, value string) string {
	needle := name + "="
	i := 0
	for {
		idx := strings.Index(tag[i:], needle)
		if idx < 0 {
			break
		}
		pos := i + idx
		// Must be preceded by whitespace to be a real attribute.
		if pos == 0 || !isSpace(tag[pos-1]) {
			i = pos + len(needle)
			continue
		}
		vstart := pos + len(needle)
		if vstart >= len(tag) {
			break
		}
		vend := vstart
		if q := tag[vstart]; q == '"' || q == '\'' {
			close := strings.IndexByte(tag[vstart+1:], q)
			if close < 0 {
				break
			}
			vend = vstart + 1 + close + 1
		} else {
			for vend < len(tag) && !isSpace(tag[vend]) && tag[vend] != '>' && tag[vend] != '/' {
				vend++
			}
		}
		return tag[:vstart] + `"` + value + `"` + tag[vend:]
	}

	// Insert before "/>" or ">".
	insert := len(tag) - 1
	if strings.HasSuffix(tag, "/>") {
		insert = len(tag) - 2
	}
	return tag[:insert] + ` ` + name + `="` + value + `"` + tag[insert:]
}

func fmtNum(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
