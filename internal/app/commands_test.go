package app

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/corvusops/ecs-service-tags/internal/servicemap"
)

func TestRunNormalizeRewritesShape(t *testing.T) {
	clearWorkflowEnv(t)

	// Tuple shape with an empty tag: normalize tolerates it, resolve
	// would not.
	servicesFile := writeTempFile(t, "services.json",
		`{"services":[["app::api",{"container_image":"ghcr.io/org/api","image_tag":"","application":"app"}]]}`)
	output := filepath.Join(t.TempDir(), "out.json")

	deps, _ := fakeDeps(&fakeLookup{})
	code := Run([]string{"normalize", servicesFile, "--output", output}, deps)
	if code != 0 {
		t.Fatalf("exit code = %d, want 0", code)
	}

	document, err := servicemap.LoadDocument(output)
	if err != nil {
		t.Fatal(err)
	}
	if document.Shape != servicemap.ShapeObject {
		t.Errorf("shape = %q, want object", document.Shape)
	}
	if got := document.Services["app::api"].ContainerImage; got != "ghcr.io/org/api" {
		t.Errorf("container_image = %q", got)
	}
}

func TestRunFilter(t *testing.T) {
	clearWorkflowEnv(t)

	tests := []struct {
		name       string
		args       []string
		wantCode   int
		wantOutput string
	}{
		{
			name:       "json format",
			args:       []string{"filter", "", "app"},
			wantCode:   0,
			wantOutput: `["app::api"]`,
		},
		{
			name:       "list format",
			args:       []string{"filter", "", "all", "--format", "list"},
			wantCode:   0,
			wantOutput: "app2::worker app::api",
		},
		{
			name:       "unknown application",
			args:       []string{"filter", "", "ghost"},
			wantCode:   1,
			wantOutput: "[]",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			servicesFile := writeTempFile(t, "services.json", twoServiceDoc)
			tt.args[1] = servicesFile

			deps, out := fakeDeps(&fakeLookup{})
			code := Run(tt.args, deps)
			if code != tt.wantCode {
				t.Fatalf("exit code = %d, want %d", code, tt.wantCode)
			}
			if !strings.Contains(out.String(), tt.wantOutput) {
				t.Errorf("output = %q, want it to contain %q", out.String(), tt.wantOutput)
			}
		})
	}
}

func TestRunVerify(t *testing.T) {
	clearWorkflowEnv(t)

	baseDir := t.TempDir()
	writeSpecFile(t, baseDir, "app", "api.yml",
		"name: api\nimage_repo: org/api\napplication: app\n")
	writeSpecFile(t, baseDir, "app2", "worker.yml",
		"name: worker\nimage_repo: org/worker\napplication: app2\n")
	servicesFile := writeTempFile(t, "services.json", twoServiceDoc)

	deps, _ := fakeDeps(&fakeLookup{})
	code := Run([]string{"verify", servicesFile, "--base-dir", baseDir}, deps)
	if code != 0 {
		t.Fatalf("exit code = %d, want 0", code)
	}
}

func TestRunVerifyReportsMismatch(t *testing.T) {
	clearWorkflowEnv(t)

	baseDir := t.TempDir()
	writeSpecFile(t, baseDir, "app", "api.yml",
		"name: api\nimage_repo: org/elsewhere\napplication: app\n")
	writeSpecFile(t, baseDir, "app2", "worker.yml",
		"name: worker\nimage_repo: org/worker\napplication: app2\n")
	servicesFile := writeTempFile(t, "services.json", twoServiceDoc)

	deps, out := fakeDeps(&fakeLookup{})
	code := Run([]string{"verify", servicesFile, "--base-dir", baseDir}, deps)
	if code != 1 {
		t.Fatalf("exit code = %d, want 1", code)
	}
	if !strings.Contains(out.String(), "org/elsewhere") {
		t.Errorf("output does not name the mismatched repo: %s", out.String())
	}
}

func TestRunVersion(t *testing.T) {
	deps, out := fakeDeps(&fakeLookup{})
	code := Run([]string{"version"}, deps)
	if code != 0 {
		t.Fatalf("exit code = %d, want 0", code)
	}
	if strings.TrimSpace(out.String()) == "" {
		t.Error("version output is empty")
	}
}

func writeSpecFile(t *testing.T, baseDir, application, name, content string) {
	t.Helper()
	dir := filepath.Join(baseDir, "applications", application, "services")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}
