package selector

import (
	"reflect"
	"testing"
)

func TestManual_Select(t *testing.T) {
	tests := []struct {
		name         string
		updateImages bool
		application  string
		want         []string
	}{
		{"infra-only run", false, "all", []string{}},
		{"all applications", true, "all", []string{"app::api", "app::worker", "app2::worker"}},
		{"scoped application", true, "app", []string{"app::api", "app::worker"}},
		{"unknown application", true, "ghost", []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			manual := &Manual{UpdateImages: tt.updateImages, Application: tt.application}
			selected, err := manual.Select(sampleServices())
			if err != nil {
				t.Fatalf("Select() error = %v", err)
			}
			if got := selected.Keys(); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Keys() = %v, want %v", got, tt.want)
			}
		})
	}
}
