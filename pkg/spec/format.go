package spec

import (
	"fmt"
	"strings"
)

// identityExpr is the fallback label expression: the untouched raw value.
const identityExpr = "datum.value"

// exprEscaper escapes characters that would break out of the single-quoted
// string literals embedded in a label expression.
var exprEscaper = strings.NewReplacer(
	`\`, `\\`,
	`'`, `\'`,
	"\n", `\n`,
	"\r", `\r`,
	"\t", `\t`,
)

// Transform rewrites lookup-based axis label formats into portable
// conditional label expressions.
//
// Every view node is visited, however deeply nested. For each encoding
// channel referencing a named lookup map, the map's entries become a chained
// conditional of the form
//
//	datum.value == 'k1' ? 'v1' : datum.value == 'k2' ? 'v2' : datum.value
//
// built from the last entry backward so that, evaluated left to right, the
// first entry is tested first. A reference to a missing map falls back to
// the identity expression. The top-level lookup table is deleted from the
// result; it must never reach the renderer.
//
// Transform never mutates its input: it returns a rewritten deep copy.
func Transform(doc *Document) *Document {
	out := doc.Clone()

	visitNodes(out.root, func(node map[string]any) {
		enc, ok := node["encoding"].(map[string]any)
		if !ok {
			return
		}
		for _, raw := range enc {
			channel, ok := raw.(map[string]any)
			if !ok {
				continue
			}
			name, ok := lookupRef(channel)
			if !ok {
				continue
			}

			expr := identityExpr
			if lm, ok := out.Lookup(name); ok {
				expr = labelExpr(lm)
			}

			axis, ok := channel["axis"].(map[string]any)
			if !ok {
				axis = map[string]any{}
				channel["axis"] = axis
			}
			axis["labelExpr"] = expr
			delete(channel, "format")
		}
	})

	delete(out.root, lookupTableKey)
	out.lookups = map[string]*LookupMap{}
	return out
}

// visitNodes calls fn for node and every nested view node beneath it.
// Nested views hang off "layer", "hconcat", "vconcat" and "concat" arrays
// and the "spec" sub-view used by faceted charts.
func visitNodes(node map[string]any, fn func(map[string]any)) {
	fn(node)
	for _, key := range []string{"layer", "hconcat", "vconcat", "concat"} {
		children, ok := node[key].([]any)
		if !ok {
			continue
		}
		for _, child := range children {
			if m, ok := child.(map[string]any); ok {
				visitNodes(m, fn)
			}
		}
	}
	if sub, ok := node["spec"].(map[string]any); ok {
		visitNodes(sub, fn)
	}
}

// lookupRef extracts the lookup-map name from a channel's format marker.
func lookupRef(channel map[string]any) (string, bool) {
	format, ok := channel["format"].(map[string]any)
	if !ok {
		return "", false
	}
	name, ok := format["lookup"].(string)
	return name, ok
}

// labelExpr builds the chained conditional for one lookup map.
// Constructed from the last entry backward so the first entry ends up as
// the outermost (first-tested) branch.
func labelExpr(lm *LookupMap) string {
	expr := identityExpr
	for i := len(lm.Keys) - 1; i >= 0; i-- {
		k := lm.Keys[i]
		expr = fmt.Sprintf("datum.value == '%s' ? '%s' : %s",
			exprEscaper.Replace(k), exprEscaper.Replace(lm.Entries[k]), expr)
	}
	return expr
}
