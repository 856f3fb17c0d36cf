package servicemap

import (
	"encoding/json"
	"reflect"
	"testing"
)

func TestRecord_ImageBasename(t *testing.T) {
	tests := []struct {
		image string
		want  string
	}{
		{"ghcr.io/org/api", "api"},
		{"123456789.dkr.ecr.eu-west-1.amazonaws.com/apps/worker", "worker"},
		{"backend", "backend"},
		{"ghcr.io/org/api:stray-tag", "api"},
	}
	for _, tt := range tests {
		record := Record{ContainerImage: tt.image}
		if got := record.ImageBasename(); got != tt.want {
			t.Errorf("ImageBasename(%q) = %q, want %q", tt.image, got, tt.want)
		}
	}
}

func TestRecord_PassthroughRoundTrip(t *testing.T) {
	input := `{"alb":{"port":8080},"application":"app","container_image":"ghcr.io/org/api",` +
		`"env":{"LOG_LEVEL":"info"},"image_tag":"v1","memory":512}`

	var record Record
	if err := json.Unmarshal([]byte(input), &record); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	if len(record.Extra) != 3 {
		t.Errorf("Extra has %d fields, want 3", len(record.Extra))
	}

	output, err := json.Marshal(record)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	var got, want any
	if err := json.Unmarshal(output, &got); err != nil {
		t.Fatal(err)
	}
	if err := json.Unmarshal([]byte(input), &want); err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("round trip changed content:\n got %s\nwant %s", output, input)
	}
}

func TestRecord_NullTag(t *testing.T) {
	var record Record
	if err := json.Unmarshal([]byte(`{"image_tag":null}`), &record); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	if record.ImageTag != "" {
		t.Errorf("ImageTag = %q, want empty", record.ImageTag)
	}
}

func TestMap_KeysAndSubset(t *testing.T) {
	services := Map{
		"b::svc": {ContainerImage: "b"},
		"a::svc": {ContainerImage: "a"},
		"c::svc": {ContainerImage: "c"},
	}
	if got := services.Keys(); !reflect.DeepEqual(got, []string{"a::svc", "b::svc", "c::svc"}) {
		t.Errorf("Keys() = %v", got)
	}
	subset := services.Subset([]string{"a::svc", "missing"})
	if len(subset) != 1 || subset["a::svc"] != services["a::svc"] {
		t.Errorf("Subset() = %v", subset)
	}
}
