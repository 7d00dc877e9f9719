package svg

import (
	"strconv"
	"strings"
)

// parseAttrs extracts name="value" pairs from a single tag.
// Both double and single quotes are accepted; unquoted values run to the
// next whitespace. Attributes without values are ignored.
func parseAttrs(tag string) map[string]string {
	attrs := map[string]string{}

	i := 1 // skip '<'
	for i < len(tag) && !isSpace(tag[i]) && tag[i] != '>' {
		i++ // skip tag name
	}

	for i < len(tag) {
		for i < len(tag) && (isSpace(tag[i]) || tag[i] == '/') {
			i++
		}
		if i >= len(tag) || tag[i] == '>' {
			break
		}

		start := i
		for i < len(tag) && tag[i] != '=' && !isSpace(tag[i]) && tag[i] != '>' && tag[i] != '/' {
			i++
		}
		name := tag[start:i]

		for i < len(tag) && isSpace(tag[i]) {
			i++
		}
		if i >= len(tag) || tag[i] != '=' {
			continue // valueless attribute
		}
		i++
		for i < len(tag) && isSpace(tag[i]) {
			i++
		}
		if i >= len(tag) {
			break
		}

		if q := tag[i]; q == '"' || q == '\'' {
			i++
			vstart := i
			for i < len(tag) && tag[i] != q {
				i++
			}
			attrs[name] = tag[vstart:i]
			if i < len(tag) {
				i++
			}
		} else {
			vstart := i
			for i < len(tag) && !isSpace(tag[i]) && tag[i] != '>' {
				i++
			}
			attrs[name] = strings.TrimSuffix(tag[vstart:i], "/")
		}
	}
	return attrs
}

// attrFloat parses a numeric attribute, tolerating a px suffix.
// Missing or unparseable attributes yield 0.
func attrFloat(attrs map[string]string, name string) float64 {
	v := strings.TrimSpace(attrs[name])
	v = strings.TrimSuffix(v, "px")
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0
	}
	return f
}

// parseTranslate extracts the translation from a transform attribute.
// Supported forms are translate(a, b), translate(a b) and translate(a).
// Other transform functions (rotate, scale, matrix) are ignored; composing
// them is out of scope for chart output, which only nests translations.
func parseTranslate(transform string) (tx, ty float64) {
	idx := strings.Index(transform, "translate(")
	if idx < 0 {
		return 0, 0
	}
	body := transform[idx+len("translate("):]
	if end := strings.IndexByte(body, ')'); end >= 0 {
		body = body[:end]
	}

	i := 0
	tx, i, ok := scanNumber(body, i)
	if !ok {
		return 0, 0
	}
	if ty, _, ok = scanNumber(body, i); !ok {
		ty = 0
	}
	return tx, ty
}

// scanNumber parses the next float in s starting at i, skipping leading
// separators (whitespace and commas). Returns ok=false when no number
// starts at the position.
func scanNumber(s string, i int) (val float64, next int, ok bool) {
	for i < len(s) && isSeparator(s[i]) {
		i++
	}
	start := i
	if i < len(s) && (s[i] == '-' || s[i] == '+') {
		i++
	}
	digits := false
	for i < len(s) && s[i] >= '0' && s[i] <= '9' {
		i++
		digits = true
	}
	if i < len(s) && s[i] == '.' {
		i++
		for i < len(s) && s[i] >= '0' && s[i] <= '9' {
			i++
			digits = true
		}
	}
	if !digits {
		return 0, start, false
	}
	if i < len(s) && (s[i] == 'e' || s[i] == 'E') {
		j := i + 1
		if j < len(s) && (s[j] == '-' || s[j] == '+') {
			j++
		}
		expDigits := false
		for j < len(s) && s[j] >= '0' && s[j] <= '9' {
			j++
			expDigits = true
		}
		if expDigits {
			i = j
		}
	}

	f, err := strconv.ParseFloat(s[start:i], 64)
	if err != nil {
		return 0, start, false
	}
	return f, i, true
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r'
}

func isSeparator(c byte) bool {
	return isSpace(c) || c == ','
}
