// Package spec models declarative chart specifications.
//
// A chart spec is a JSON tree of nested view nodes. Any node may carry an
// "encoding" block whose channels reference a named value-lookup map via a
// format marker; a top-level "lookups" table maps lookup names to
// rawValue → displayString pairs. [Transform] rewrites those references into
// portable conditional label expressions so the table never reaches the
// renderer.
//
// Documents are treated as immutable once parsed: transformations operate on
// deep copies and callers never see their input mutated.
package spec

import (
	"bytes"
	"encoding/json"
	"strconv"

	"github.com/matzehuels/chartfit/pkg/errors"
)

// lookupTableKey is the top-level spec key holding the value-lookup table.
const lookupTableKey = "lookups"

// LookupMap is one named rawValue → displayString table.
// Keys preserves the insertion order of the source document, which decides
// the branch order of the synthesized conditional expression.
type LookupMap struct {
	Keys    []string
	Entries map[string]string
}

// Document is a parsed chart specification.
type Document struct {
	root    map[string]any
	lookups map[string]*LookupMap
}

// Parse decodes a chart spec from JSON.
// It returns an INVALID_SPEC error when the input is not a JSON object.
func Parse(data []byte) (*Document, error) {
	var root map[string]any
	if err := json.Unmarshal(data, &root); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidSpec, err, "spec is not a JSON object")
	}
	if root == nil {
		return nil, errors.New(errors.ErrCodeInvalidSpec, "spec is empty")
	}

	lookups, err := parseLookups(root, data)
	if err != nil {
		return nil, err
	}

	return &Document{root: root, lookups: lookups}, nil
}

// FromMap wraps an already-decoded spec tree.
// Lookup key order is unavailable without the source bytes, so entries are
// exposed in Go map iteration order; callers holding raw JSON should prefer
// [Parse].
func FromMap(root map[string]any) *Document {
	lookups := map[string]*LookupMap{}
	if table, ok := root[lookupTableKey].(map[string]any); ok {
		for name, raw := range table {
			if m, ok := raw.(map[string]any); ok {
				lm := &LookupMap{Entries: map[string]string{}}
				for k, v := range m {
					lm.Keys = append(lm.Keys, k)
					lm.Entries[k] = stringify(v)
				}
				lookups[name] = lm
			}
		}
	}
	return &Document{root: root, lookups: lookups}
}

// Root returns the underlying spec tree.
// The tree is shared, not copied; treat it as read-only and use [Document.Clone]
// before mutating.
func (d *Document) Root() map[string]any {
	return d.root
}

// Lookup returns the named lookup map, if present.
func (d *Document) Lookup(name string) (*LookupMap, bool) {
	lm, ok := d.lookups[name]
	return lm, ok
}

// LookupCount returns the number of named lookup maps in the document.
func (d *Document) LookupCount() int {
	return len(d.lookups)
}

// Clone returns a deep copy of the document.
func (d *Document) Clone() *Document {
	lookups := make(map[string]*LookupMap, len(d.lookups))
	for name, lm := range d.lookups {
		cp := &LookupMap{
			Keys:    append([]string(nil), lm.Keys...),
			Entries: make(map[string]string, len(lm.Entries)),
		}
		for k, v := range lm.Entries {
			cp.Entries[k] = v
		}
		lookups[name] = cp
	}
	return &Document{
		root:    deepCopy(d.root).(map[string]any),
		lookups: lookups,
	}
}

// MarshalJSON serializes the spec tree.
func (d *Document) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.root)
}

// deepCopy recursively copies a decoded JSON value.
func deepCopy(v any) any {
	switch t := v.(type) {
	case map[string]any:
		cp := make(map[string]any, len(t))
		for k, val := range t {
			cp[k] = deepCopy(val)
		}
		return cp
	case []any:
		cp := make([]any, len(t))
		for i, val := range t {
			cp[i] = deepCopy(val)
		}
		return cp
	default:
		return v
	}
}

// parseLookups extracts the lookup table from the decoded tree, recovering
// key insertion order from the raw JSON. encoding/json maps lose object
// order, so the order comes from a token-level pass over the source bytes.
func parseLookups(root map[string]any, data []byte) (map[string]*LookupMap, error) {
	lookups := map[string]*LookupMap{}

	table, ok := root[lookupTableKey]
	if !ok {
		return lookups, nil
	}
	tableMap, ok := table.(map[string]any)
	if !ok {
		return nil, errors.New(errors.ErrCodeInvalidSpec, "%q must be an object", lookupTableKey)
	}

	order, err := lookupKeyOrder(data)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidSpec, err, "reading %q table", lookupTableKey)
	}

	for name, raw := range tableMap {
		m, ok := raw.(map[string]any)
		if !ok {
			return nil, errors.New(errors.ErrCodeInvalidSpec, "lookup map %q must be an object", name)
		}
		lm := &LookupMap{Entries: make(map[string]string, len(m))}
		for _, k := range order[name] {
			if v, ok := m[k]; ok {
				lm.Keys = append(lm.Keys, k)
				lm.Entries[k] = stringify(v)
			}
		}
		lookups[name] = lm
	}
	return lookups, nil
}

// lookupKeyOrder scans the raw JSON for the top-level lookup table and
// records the key order of each lookup map.
func lookupKeyOrder(data []byte) (map[string][]string, error) {
	dec := json.NewDecoder(bytes.NewReader(data))

	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return nil, errors.New(errors.ErrCodeInvalidSpec, "spec is not a JSON object")
	}

	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		key, _ := keyTok.(string)

		if key != lookupTableKey {
			if err := skipValue(dec); err != nil {
				return nil, err
			}
			continue
		}

		tok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		if d, ok := tok.(json.Delim); !ok || d != '{' {
			// Malformed table; Parse reports it from the decoded tree.
			return map[string][]string{}, nil
		}

		order := map[string][]string{}
		for dec.More() {
			nameTok, err := dec.Token()
			if err != nil {
				return nil, err
			}
			name, _ := nameTok.(string)

			tok, err := dec.Token()
			if err != nil {
				return nil, err
			}
			d, ok := tok.(json.Delim)
			if !ok || d != '{' {
				if err := skipOpened(dec, tok); err != nil {
					return nil, err
				}
				continue
			}

			var keys []string
			for dec.More() {
				kTok, err := dec.Token()
				if err != nil {
					return nil, err
				}
				if k, ok := kTok.(string); ok {
					keys = append(keys, k)
				}
				if err := skipValue(dec); err != nil {
					return nil, err
				}
			}
			if _, err := dec.Token(); err != nil { // closing '}'
				return nil, err
			}
			order[name] = keys
		}
		return order, nil
	}
	return map[string][]string{}, nil
}

// skipValue consumes the next JSON value, whatever its shape.
func skipValue(dec *json.Decoder) error {
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	return skipOpened(dec, tok)
}

// skipOpened consumes the remainder of a value whose first token was tok.
func skipOpened(dec *json.Decoder, tok json.Token) error {
	d, ok := tok.(json.Delim)
	if !ok || (d != '{' && d != '[') {
		return nil
	}
	depth := 1
	for depth > 0 {
		t, err := dec.Token()
		if err != nil {
			return err
		}
		if dd, ok := t.(json.Delim); ok {
			switch dd {
			case '{', '[':
				depth++
			case '}', ']':
				depth--
			}
		}
	}
	return nil
}

// stringify renders a decoded JSON scalar as its display string.
func stringify(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(t)
	case nil:
		return ""
	default:
		data, _ := json.Marshal(t)
		return string(data)
	}
}
