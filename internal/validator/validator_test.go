package validator

import (
	"errors"
	"reflect"
	"testing"

	"github.com/corvusops/ecs-service-tags/internal/servicemap"
)

func TestValidate_OK(t *testing.T) {
	services := servicemap.Map{
		"app::api":    {ContainerImage: "ghcr.io/org/api", ImageTag: "v1"},
		"app::worker": {ContainerImage: "ghcr.io/org/worker", ImageTag: "prod-v9"},
	}
	if err := Validate(services); err != nil {
		t.Fatalf("Validate() error = %v", err)
	}
}

func TestValidate_NamesAllOffenders(t *testing.T) {
	services := servicemap.Map{
		"app::api":     {ContainerImage: "ghcr.io/org/api", ImageTag: ""},
		"app::worker":  {ContainerImage: "ghcr.io/org/worker", ImageTag: "prod-v9"},
		"app2::worker": {ContainerImage: "ghcr.io/org/other-worker", ImageTag: ""},
	}
	err := Validate(services)
	var valErr *ValidationError
	if !errors.As(err, &valErr) {
		t.Fatalf("error = %v, want ValidationError", err)
	}
	if !reflect.DeepEqual(valErr.Keys, []string{"app::api", "app2::worker"}) {
		t.Errorf("Keys = %v, want both offenders in order", valErr.Keys)
	}
}

func TestValidate_EmptyMap(t *testing.T) {
	if err := Validate(servicemap.Map{}); err != nil {
		t.Fatalf("Validate() error = %v", err)
	}
}
