// Where: internal/servicemap/model.go
// What: Canonical service map model.
// Why: One in-memory shape for every supported input encoding.
package servicemap

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"
)

// Well-known record fields owned by the engine. Everything else is
// passthrough and must survive a round trip byte-for-byte.
const (
	fieldContainerImage = "container_image"
	fieldImageTag       = "image_tag"
	fieldApplication    = "application"
)

// Record is one service entry in the canonical map. ContainerImage and
// Application are read-only inputs; ImageTag is the only field the engine
// mutates. Extra holds every other field untouched.
type Record struct {
	ContainerImage string
	ImageTag       string
	Application    string
	Extra          map[string]json.RawMessage
}

// UnmarshalJSON splits the engine-owned fields out of the raw object and
// keeps the rest as opaque passthrough.
func (r *Record) UnmarshalJSON(data []byte) error {
	fields := map[string]json.RawMessage{}
	if err := json.Unmarshal(data, &fields); err != nil {
		return err
	}
	if err := takeString(fields, fieldContainerImage, &r.ContainerImage); err != nil {
		return err
	}
	if err := takeString(fields, fieldImageTag, &r.ImageTag); err != nil {
		return err
	}
	if err := takeString(fields, fieldApplication, &r.Application); err != nil {
		return err
	}
	r.Extra = fields
	return nil
}

// MarshalJSON merges the engine-owned fields back into the passthrough set.
func (r Record) MarshalJSON() ([]byte, error) {
	fields := make(map[string]json.RawMessage, len(r.Extra)+3)
	for key, value := range r.Extra {
		fields[key] = value
	}
	for key, value := range map[string]string{
		fieldContainerImage: r.ContainerImage,
		fieldImageTag:       r.ImageTag,
		fieldApplication:    r.Application,
	} {
		encoded, err := json.Marshal(value)
		if err != nil {
			return nil, err
		}
		fields[key] = encoded
	}
	return json.Marshal(fields)
}

func takeString(fields map[string]json.RawMessage, key string, dst *string) error {
	raw, ok := fields[key]
	if !ok {
		return nil
	}
	delete(fields, key)
	if string(raw) == "null" {
		return nil
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		return fmt.Errorf("field %q: %w", key, err)
	}
	return nil
}

// ImageBasename returns the last path segment of the record's registry
// path, which is what the build system reports for built images.
func (r Record) ImageBasename() string {
	image := r.ContainerImage
	if idx := strings.LastIndex(image, "/"); idx >= 0 {
		image = image[idx+1:]
	}
	// Defensively strip a tag if the generator ever inlines one.
	if idx := strings.Index(image, ":"); idx >= 0 {
		image = image[:idx]
	}
	return image
}

// Map is the canonical mapping from service key to record. Records are
// held by pointer so tag resolution mutates entries in place.
type Map map[string]*Record

// Keys returns all service keys in sorted order for deterministic output.
func (m Map) Keys() []string {
	keys := make([]string, 0, len(m))
	for key := range m {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

// Subset returns a new map holding only the requested keys. Records are
// shared, not copied; callers treat the result as read-only.
func (m Map) Subset(keys []string) Map {
	out := make(Map, len(keys))
	for _, key := range keys {
		if record, ok := m[key]; ok {
			out[key] = record
		}
	}
	return out
}
