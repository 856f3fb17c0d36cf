// Where: internal/servicemap/document.go
// What: Services document load/save.
// Why: Own the on-disk contract; only the services field is interpreted.
package servicemap

import (
	"encoding/json"
	"fmt"
	"os"
)

// Document is a services file: the canonical map plus every other
// top-level field preserved untouched.
type Document struct {
	Services Map
	// Shape is the encoding the services field arrived in.
	Shape Shape
	// Rest holds top-level fields other than services, passthrough.
	Rest map[string]json.RawMessage
}

// LoadDocument reads and normalizes a services file. The services field
// must be present and in one of the supported encodings.
func LoadDocument(path string) (*Document, error) {
	payload, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseDocument(payload)
}

// ParseDocument normalizes a services document from raw JSON.
func ParseDocument(payload []byte) (*Document, error) {
	fields := map[string]json.RawMessage{}
	if err := json.Unmarshal(payload, &fields); err != nil {
		return nil, fmt.Errorf("decode services document: %w", err)
	}
	raw, ok := fields["services"]
	if !ok {
		return nil, fmt.Errorf("services document has no services field")
	}
	delete(fields, "services")

	services, shape, err := Normalize(raw)
	if err != nil {
		return nil, err
	}
	return &Document{Services: services, Shape: shape, Rest: fields}, nil
}

// Marshal serializes the document with services in the canonical object
// shape. Array encodings are never re-emitted.
func (d *Document) Marshal() ([]byte, error) {
	fields := make(map[string]json.RawMessage, len(d.Rest)+1)
	for key, value := range d.Rest {
		fields[key] = value
	}
	services, err := json.Marshal(d.Services)
	if err != nil {
		return nil, err
	}
	fields["services"] = services
	return json.MarshalIndent(fields, "", "  ")
}

// Save validates the serialized document against the output contract and
// writes it in one step. Nothing is persisted on a failed run.
func (d *Document) Save(path string) error {
	payload, err := d.Marshal()
	if err != nil {
		return err
	}
	if err := ValidateContract(payload); err != nil {
		return err
	}
	return os.WriteFile(path, append(payload, '\n'), 0o644)
}
