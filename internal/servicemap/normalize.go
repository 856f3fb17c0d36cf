// Where: internal/servicemap/normalize.go
// What: Four-shape services normalizer.
// Why: Upstream generators emit the same map in different JSON encodings.
package servicemap

import (
	"encoding/json"
	"fmt"
)

// Shape identifies the detected input encoding of a services value.
type Shape string

const (
	// ShapeObject is the canonical object map (the only output shape).
	ShapeObject Shape = "object"
	// ShapeDhallMap is an array of {"mapKey": ..., "mapValue": ...} entries.
	ShapeDhallMap Shape = "dhall-map"
	// ShapeKeyValue is an array of {"key": ..., "value": ...} entries.
	ShapeKeyValue Shape = "key-value"
	// ShapeTuples is an array of [key, record] pairs.
	ShapeTuples Shape = "tuples"
)

// NormalizationError reports an unrecognized services encoding. Detected
// carries the literal JSON type seen so the diagnostic is actionable.
type NormalizationError struct {
	Detected string
}

func (e *NormalizationError) Error() string {
	return fmt.Sprintf("unsupported services encoding: got JSON %s, "+
		"expected an object map or an array of map entries", e.Detected)
}

type dhallEntry struct {
	MapKey   *string         `json:"mapKey"`
	MapValue json.RawMessage `json:"mapValue"`
}

type keyValueEntry struct {
	Key   *string         `json:"key"`
	Value json.RawMessage `json:"value"`
}

// Normalize converts a raw services value in any supported encoding into
// the canonical map. It is pure: logically equivalent inputs in different
// shapes produce identical maps, and no record field is altered.
func Normalize(raw json.RawMessage) (Map, Shape, error) {
	switch jsonType(raw) {
	case "object":
		out := Map{}
		if err := json.Unmarshal(raw, &out); err != nil {
			return nil, "", fmt.Errorf("decode services object: %w", err)
		}
		return out, ShapeObject, nil
	case "array":
		return normalizeArray(raw)
	default:
		return nil, "", &NormalizationError{Detected: jsonType(raw)}
	}
}

func normalizeArray(raw json.RawMessage) (Map, Shape, error) {
	var elements []json.RawMessage
	if err := json.Unmarshal(raw, &elements); err != nil {
		return nil, "", fmt.Errorf("decode services array: %w", err)
	}
	if len(elements) == 0 {
		return Map{}, ShapeObject, nil
	}

	shape, err := detectArrayShape(elements[0])
	if err != nil {
		return nil, "", err
	}

	out := make(Map, len(elements))
	for i, element := range elements {
		key, record, err := decodeEntry(shape, element)
		if err != nil {
			return nil, "", fmt.Errorf("services[%d]: %w", i, err)
		}
		if _, exists := out[key]; exists {
			return nil, "", fmt.Errorf("services[%d]: duplicate service key %q", i, key)
		}
		out[key] = record
	}
	return out, shape, nil
}

// detectArrayShape disambiguates the three array encodings from the first
// element: mapKey/mapValue fields, key/value fields, or a 2-element tuple.
func detectArrayShape(first json.RawMessage) (Shape, error) {
	switch jsonType(first) {
	case "object":
		fields := map[string]json.RawMessage{}
		if err := json.Unmarshal(first, &fields); err != nil {
			return "", fmt.Errorf("decode services entry: %w", err)
		}
		if _, ok := fields["mapKey"]; ok {
			return ShapeDhallMap, nil
		}
		if _, ok := fields["key"]; ok {
			return ShapeKeyValue, nil
		}
		return "", &NormalizationError{Detected: "array of object (no mapKey or key field)"}
	case "array":
		return ShapeTuples, nil
	default:
		return "", &NormalizationError{Detected: "array of " + jsonType(first)}
	}
}

func decodeEntry(shape Shape, element json.RawMessage) (string, *Record, error) {
	var key *string
	var value json.RawMessage

	switch shape {
	case ShapeDhallMap:
		entry := dhallEntry{}
		if err := json.Unmarshal(element, &entry); err != nil {
			return "", nil, err
		}
		key, value = entry.MapKey, entry.MapValue
	case ShapeKeyValue:
		entry := keyValueEntry{}
		if err := json.Unmarshal(element, &entry); err != nil {
			return "", nil, err
		}
		key, value = entry.Key, entry.Value
	case ShapeTuples:
		var pair []json.RawMessage
		if err := json.Unmarshal(element, &pair); err != nil {
			return "", nil, err
		}
		if len(pair) != 2 {
			return "", nil, fmt.Errorf("tuple entry has %d elements, want 2", len(pair))
		}
		name := ""
		if err := json.Unmarshal(pair[0], &name); err != nil {
			return "", nil, fmt.Errorf("tuple key: %w", err)
		}
		key, value = &name, pair[1]
	default:
		return "", nil, fmt.Errorf("unexpected shape %q", shape)
	}

	if key == nil {
		return "", nil, fmt.Errorf("entry is missing its key field")
	}
	record := &Record{}
	if err := json.Unmarshal(value, record); err != nil {
		return "", nil, fmt.Errorf("service %q: %w", *key, err)
	}
	return *key, record, nil
}

// jsonType names the JSON type of a raw value for diagnostics.
func jsonType(raw json.RawMessage) string {
	for _, b := range raw {
		switch b {
		case ' ', '\t', '\n', '\r':
			continue
		case '{':
			return "object"
		case '[':
			return "array"
		case '"':
			return "string"
		case 't', 'f':
			return "boolean"
		case 'n':
			return "null"
		default:
			return "number"
		}
	}
	return "empty"
}
