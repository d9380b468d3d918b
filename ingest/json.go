package ingest

import (
	"fmt"
	"sort"

	"github.com/ohler55/ojg/oj"

	"chartdata/dataset"
)

// recordArrayFields is the fixed priority list of conventional field names
// searched when the top-level JSON value is an object. The first one found
// that holds an array wins. This heuristic is a deliberate simplification
// for self-service uploads; do not extend it without a product decision.
var recordArrayFields = []string{"data", "items", "records", "rows", "results"}

// jsonShape tags where the row array was found so the header scanner knows
// which part of the raw document to inspect.
type jsonShape int

const (
	shapeTopArray jsonShape = iota
	shapeFieldArray
	shapeSingleObject
)

// DecodeJSON parses JSON text into row records. A top-level array is used
// directly; a top-level object is searched for a conventional record array
// and otherwise wrapped as a single row; any other top-level shape is an
// error. Column order follows the key order of the first row object as it
// appears in the document.
func DecodeJSON(data []byte) ([]string, []dataset.Row, error) {
	val, err := oj.Parse(data)
	if err != nil {
		return nil, nil, fmt.Errorf("JSON format error, please check file content: %w", err)
	}

	var (
		items []any
		shape jsonShape
		field string
	)
	switch v := val.(type) {
	case []any:
		items, shape = v, shapeTopArray
	case map[string]any:
		if name, arr, ok := findRecordArray(v); ok {
			items, shape, field = arr, shapeFieldArray, name
		} else {
			items, shape = []any{v}, shapeSingleObject
		}
	default:
		return nil, nil, fmt.Errorf("JSON format incorrect, requires object or array")
	}

	if len(items) == 0 {
		return nil, nil, fmt.Errorf("JSON file has no data: %w", ErrNoData)
	}

	var header []string
	var rawKeys []string
	if first, ok := items[0].(map[string]any); ok {
		keys, found := firstRowKeys(string(data), shape, field)
		if !found || len(keys) != len(first) {
			// Scanner could not recover document order (duplicate keys,
			// stream oddities); fall back to a stable alphabetical order.
			keys = sortedKeys(first)
		}
		rawKeys = keys
		header = NormalizeHeaders(keys)
	} else {
		rawKeys = []string{"value"}
		header = []string{"value"}
	}

	rows := make([]dataset.Row, 0, len(items))
	for _, item := range items {
		m, ok := item.(map[string]any)
		if !ok {
			rows = append(rows, dataset.Row{"value": item})
			continue
		}
		row := make(dataset.Row, len(header))
		for i, raw := range rawKeys {
			if v, exists := m[raw]; exists {
				row[header[i]] = v
			}
		}
		rows = append(rows, row)
	}

	return header, rows, nil
}

// findRecordArray scans the priority list and returns the first field whose
// value is an array.
func findRecordArray(obj map[string]any) (string, []any, bool) {
	for _, name := range recordArrayFields {
		if arr, ok := obj[name].([]any); ok {
			return name, arr, true
		}
	}
	return "", nil, false
}

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// ========== raw-text key order scanner ==========
//
// oj.Parse returns Go maps, which lose the document's key order. The column
// order contract requires the first row's keys in insertion order, so the
// scanner below walks the raw text just far enough to list the top-level
// keys of the first row object.

// firstRowKeys locates the first row object in the raw document and returns
// its top-level keys in document order.
func firstRowKeys(s string, shape jsonShape, field string) ([]string, bool) {
	pos := skipWS(s, 0)
	if pos >= len(s) {
		return nil, false
	}

	switch shape {
	case shapeTopArray:
		if s[pos] != '[' {
			return nil, false
		}
		return objectKeysAt(s, skipWS(s, pos+1))

	case shapeSingleObject:
		return objectKeysAt(s, pos)

	case shapeFieldArray:
		if s[pos] != '{' {
			return nil, false
		}
		pos = skipWS(s, pos+1)
		for pos < len(s) && s[pos] != '}' {
			key, valStart, ok := scanKey(s, pos)
			if !ok {
				return nil, false
			}
			if key == field {
				if valStart < len(s) && s[valStart] == '[' {
					return objectKeysAt(s, skipWS(s, valStart+1))
				}
				return nil, false
			}
			end, ok := skipValue(s, valStart)
			if !ok {
				return nil, false
			}
			pos = skipWS(s, end)
			if pos < len(s) && s[pos] == ',' {
				pos = skipWS(s, pos+1)
			}
		}
		return nil, false
	}

	return nil, false
}

// objectKeysAt returns the top-level keys of the object starting at pos.
func objectKeysAt(s string, pos int) ([]string, bool) {
	if pos >= len(s) || s[pos] != '{' {
		return nil, false
	}
	pos = skipWS(s, pos+1)

	var keys []string
	for pos < len(s) && s[pos] != '}' {
		key, valStart, ok := scanKey(s, pos)
		if !ok {
			return nil, false
		}
		keys = append(keys, key)
		end, ok := skipValue(s, valStart)
		if !ok {
			return nil, false
		}
		pos = skipWS(s, end)
		if pos < len(s) && s[pos] == ',' {
			pos = skipWS(s, pos+1)
		}
	}
	return keys, pos < len(s)
}

// scanKey parses a `"key":` pair at pos and returns the decoded key and the
// position of the value that follows.
func scanKey(s string, pos int) (string, int, bool) {
	if pos >= len(s) || s[pos] != '"' {
		return "", 0, false
	}
	end, ok := stringEnd(s, pos)
	if !ok {
		return "", 0, false
	}

	decoded, err := oj.ParseString(s[pos:end])
	if err != nil {
		return "", 0, false
	}
	key, isStr := decoded.(string)
	if !isStr {
		return "", 0, false
	}

	pos = skipWS(s, end)
	if pos >= len(s) || s[pos] != ':' {
		return "", 0, false
	}
	return key, skipWS(s, pos+1), true
}

// stringEnd returns the position just past the closing quote of the string
// literal starting at pos, handling escape sequences.
func stringEnd(s string, pos int) (int, bool) {
	escaped := false
	for i := pos + 1; i < len(s); i++ {
		if escaped {
			escaped = false
			continue
		}
		switch s[i] {
		case '\\':
			escaped = true
		case '"':
			return i + 1, true
		}
	}
	return 0, false
}

// skipValue returns the position just past the JSON value starting at pos.
// Objects and arrays are walked with a depth counter that ignores brackets
// inside string literals.
func skipValue(s string, pos int) (int, bool) {
	if pos >= len(s) {
		return 0, false
	}

	switch s[pos] {
	case '"':
		return stringEnd(s, pos)
	case '{', '[':
		depth := 0
		inString := false
		escaped := false
		for i := pos; i < len(s); i++ {
			ch := s[i]
			if escaped {
				escaped = false
				continue
			}
			if inString {
				if ch == '\\' {
					escaped = true
				} else if ch == '"' {
					inString = false
				}
				continue
			}
			switch ch {
			case '"':
				inString = true
			case '{', '[':
				depth++
			case '}', ']':
				depth--
				if depth == 0 {
					return i + 1, true
				}
			}
		}
		return 0, false
	default:
		// Number, boolean or null: scan until a delimiter.
		i := pos
		for i < len(s) && s[i] != ',' && s[i] != '}' && s[i] != ']' && !isWS(s[i]) {
			i++
		}
		return i, i > pos
	}
}

func skipWS(s string, pos int) int {
	for pos < len(s) && isWS(s[pos]) {
		pos++
	}
	return pos
}

func isWS(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r'
}
