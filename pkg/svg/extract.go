package svg

import "strings"

// Bounds is an axis-aligned box in the document's coordinate space.
type Bounds struct {
	MinX, MinY, MaxX, MaxY float64
}

// Width returns the horizontal extent of the box.
func (b Bounds) Width() float64 { return b.MaxX - b.MinX }

// Height returns the vertical extent of the box.
func (b Bounds) Height() float64 { return b.MaxY - b.MinY }

// addPoint grows the box to include (x, y).
func (b *Bounds) addPoint(x, y float64) {
	if x < b.MinX {
		b.MinX = x
	}
	if x > b.MaxX {
		b.MaxX = x
	}
	if y < b.MinY {
		b.MinY = y
	}
	if y > b.MaxY {
		b.MaxY = y
	}
}

// union grows the box to include other.
func (b *Bounds) union(other Bounds) {
	b.addPoint(other.MinX, other.MinY)
	b.addPoint(other.MaxX, other.MaxY)
}

// translate shifts the box by (tx, ty).
func (b Bounds) translate(tx, ty float64) Bounds {
	return Bounds{
		MinX: b.MinX + tx, MinY: b.MinY + ty,
		MaxX: b.MaxX + tx, MaxY: b.MaxY + ty,
	}
}

// frame is the cumulative translation at one level of the group stack.
type frame struct {
	tx, ty float64
}

// defaultFontSize approximates the renderer's fallback text size when a
// text element carries no font-size attribute.
const defaultFontSize = 11.0

// ExtractBounds re-derives the bounding box of all visible marks in the
// markup. The second return value is false when no recognized shape was
// found.
//
// The scan is a single left-to-right pass: group tags push and pop a stack
// of cumulative translations, leaf shapes compute their untransformed box,
// apply the composed translation, and accumulate into the running union.
// Shapes with unparseable geometry contribute nothing instead of aborting
// the extraction.
func ExtractBounds(markup string) (Bounds, bool) {
	stack := []frame{{}}
	var acc Bounds
	found := false

	i := 0
	for {
		lt := strings.IndexByte(markup[i:], '<')
		if lt < 0 {
			break
		}
		pos := i + lt

		// Closing tag: only groups matter for geometry.
		if strings.HasPrefix(markup[pos:], "</") {
			if tagName(markup[pos+2:]) == "g" && len(stack) > 1 {
				stack = stack[:len(stack)-1]
			}
			i = pos + 2
			continue
		}

		gt := strings.IndexByte(markup[pos:], '>')
		if gt < 0 {
			break
		}
		end := pos + gt
		tag := markup[pos : end+1]
		selfClosing := gt >= 1 && markup[end-1] == '/'
		name := tagName(markup[pos+1:])
		i = end + 1

		switch name {
		case "g":
			if selfClosing {
				continue // empty group, no geometry, no scope
			}
			top := stack[len(stack)-1]
			tx, ty := parseTranslate(parseAttrs(tag)["transform"])
			stack = append(stack, frame{top.tx + tx, top.ty + ty})

		case "path", "circle", "rect", "line", "text":
			attrs := parseAttrs(tag)

			var box Bounds
			var ok bool
			switch name {
			case "path":
				box, ok = pathBounds(attrs["d"])
			case "circle":
				box, ok = circleBounds(attrs)
			case "rect":
				box, ok = rectBounds(attrs)
			case "line":
				box, ok = lineBounds(attrs)
			case "text":
				content := ""
				if !selfClosing {
					content = textContent(markup, end+1)
				}
				box, ok = textBounds(attrs, content)
			}
			if !ok {
				continue
			}

			top := stack[len(stack)-1]
			tx, ty := parseTranslate(attrs["transform"])
			box = box.translate(top.tx+tx, top.ty+ty)

			if !found {
				acc = box
				found = true
			} else {
				acc.union(box)
			}
		}
	}

	return acc, found
}

// tagName reads the element name starting at s (just past '<' or '</').
func tagName(s string) string {
	i := 0
	for i < len(s) {
		c := s[i]
		if (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9') {
			i++
			continue
		}
		break
	}
	return s[:i]
}

// circleBounds: (cx-r, cy-r)–(cx+r, cy+r).
func circleBounds(attrs map[string]string) (Bounds, bool) {
	cx := attrFloat(attrs, "cx")
	cy := attrFloat(attrs, "cy")
	r := attrFloat(attrs, "r")
	return Bounds{MinX: cx - r, MinY: cy - r, MaxX: cx + r, MaxY: cy + r}, true
}

// rectBounds: (x, y)–(x+width, y+height).
func rectBounds(attrs map[string]string) (Bounds, bool) {
	x := attrFloat(attrs, "x")
	y := attrFloat(attrs, "y")
	w := attrFloat(attrs, "width")
	h := attrFloat(attrs, "height")
	return Bounds{MinX: x, MinY: y, MaxX: x + w, MaxY: y + h}, true
}

// lineBounds: componentwise min/max of the two endpoints.
func lineBounds(attrs map[string]string) (Bounds, bool) {
	x1 := attrFloat(attrs, "x1")
	y1 := attrFloat(attrs, "y1")
	x2 := attrFloat(attrs, "x2")
	y2 := attrFloat(attrs, "y2")
	return Bounds{
		MinX: min(x1, x2), MinY: min(y1, y2),
		MaxX: max(x1, x2), MaxY: max(y1, y2),
	}, true
}

// textBounds approximates a text box centered at (x, y).
// Half-width is 0.6 per character per font-size unit when content is
// available, 5 font-size units otherwise; the box extends 1.2 font sizes
// above the baseline and 0.5 below. No glyph metrics exist at this layer,
// so this is explicitly an approximation.
func textBounds(attrs map[string]string, content string) (Bounds, bool) {
	x := attrFloat(attrs, "x")
	y := attrFloat(attrs, "y")
	fs := attrFloat(attrs, "font-size")
	if fs <= 0 {
		fs = defaultFontSize
	}

	halfWidth := 5 * fs
	if chars := len([]rune(content)); chars > 0 {
		halfWidth = 0.6 * float64(chars) * fs
	}

	return Bounds{
		MinX: x - halfWidth, MinY: y - 1.2*fs,
		MaxX: x + halfWidth, MaxY: y + 0.5*fs,
	}, true
}

// textContent captures the character data of a text element starting just
// past its opening tag, with any nested tags (tspans) stripped.
func textContent(markup string, from int) string {
	close := strings.Index(markup[from:], "</text>")
	if close < 0 {
		return ""
	}
	inner := markup[from : from+close]

	var b strings.Builder
	depth := 0
	for i := 0; i < len(inner); i++ {
		switch inner[i] {
		case '<':
			depth++
		case '>':
			if depth > 0 {
				depth--
			}
		default:
			if depth == 0 {
				b.WriteByte(inner[i])
			}
		}
	}
	return strings.TrimSpace(b.String())
}
