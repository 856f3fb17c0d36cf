// Where: internal/app/app.go
// What: CLI entrypoint logic.
// Why: Provide a testable command dispatcher.
package app

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/joho/godotenv"

	"github.com/corvusops/ecs-service-tags/internal/version"
)

// CLI defines the command-line interface structure parsed by Kong.
type CLI struct {
	Config  string       `short:"c" help:"Path to .svctags.yaml" default:".svctags.yaml"`
	EnvFile string       `name:"env-file" help:"Path to .env file"`
	Resolve ResolveCmd   `cmd:"" help:"Resolve final image tags for every service"`
	Normal  NormalizeCmd `cmd:"" name:"normalize" help:"Rewrite a services file to the canonical object shape"`
	Filter  FilterCmd    `cmd:"" help:"List service keys for an application"`
	Verify  VerifyCmd    `cmd:"" help:"Check that service specs map to the generated document"`
	Version VersionCmd   `cmd:"" help:"Show version information"`
}

// ResolveCmd groups the two mutually exclusive selection strategies.
type ResolveCmd struct {
	Auto   AutoCmd   `cmd:"" help:"CI-build trigger: update services whose images were built this run"`
	Manual ManualCmd `cmd:"" help:"Operator dispatch: update services by application filter"`
}

type AutoCmd struct {
	ServicesFile string `arg:"" help:"Services document (JSON)"`
	BuiltImages  string `name:"built-images" required:"" help:"Newline-delimited built image basenames"`
	Tag          string `name:"tag" required:"" help:"Desired tag for updated services"`
	ResolveFlags
}

type ManualCmd struct {
	ServicesFile string `arg:"" help:"Services document (JSON)"`
	UpdateImages bool   `name:"update-images" negatable:"" default:"true" help:"Update image tags (false = infra-only run)"`
	Application  string `name:"application" default:"all" help:"Application to update, or \"all\""`
	Tag          string `name:"tag" help:"Desired tag for updated services"`
	ResolveFlags
}

// ResolveFlags are shared by both strategies.
type ResolveFlags struct {
	Output          string `name:"output" help:"Write the resolved document here instead of in place"`
	Cluster         string `name:"cluster" env:"SVCTAGS_CLUSTER" help:"ECS cluster holding the deployed services"`
	Region          string `name:"region" env:"AWS_REGION" help:"AWS region"`
	ServicePrefix   string `name:"service-prefix" env:"SVCTAGS_SERVICE_PREFIX" help:"Deployed ECS service name prefix"`
	Workers         int    `name:"workers" help:"Concurrent deployed-tag lookups"`
	VerifyManifests bool   `name:"verify-manifests" help:"Check that updated image:tag references exist in the registry"`
	OutputsFile     string `name:"outputs-file" env:"GITHUB_OUTPUT" help:"Workflow outputs file"`
	SummaryFile     string `name:"summary-file" env:"GITHUB_STEP_SUMMARY" help:"Workflow summary file"`
}

type NormalizeCmd struct {
	ServicesFile string `arg:"" help:"Services document (JSON)"`
	Output       string `name:"output" help:"Write here instead of in place"`
}

type FilterCmd struct {
	ServicesFile string `arg:"" help:"Services document (JSON)"`
	Application  string `arg:"" help:"Application name, or \"all\""`
	Format       string `name:"format" default:"json" enum:"json,list" help:"Output format"`
}

type VerifyCmd struct {
	ServicesFile string `arg:"" help:"Services document (JSON)"`
	BaseDir      string `name:"base-dir" default:"." help:"Repository root holding applications/"`
}

type VersionCmd struct{}

// Run is the main entry point for CLI command execution. It parses the
// arguments and dispatches to the matching handler. Returns 0 on
// success, 1 on error.
func Run(args []string, deps Dependencies) int {
	out := deps.Out
	if out == nil {
		out = os.Stdout
	}

	// Env-bound flags read the environment at parse time, so the env
	// file has to load first.
	loadEnvFile(envFileFromArgs(args), out)

	cli := CLI{}
	parser, err := kong.New(&cli)
	if err != nil {
		return exitWithError(out, err)
	}

	ctx, err := parser.Parse(args)
	if err != nil {
		return exitWithError(out, err)
	}

	command := ctx.Command()
	if exitCode, handled := dispatchCommand(command, cli, deps, out); handled {
		return exitCode
	}

	fmt.Fprintln(out, "unknown command")
	return 1
}

type commandHandler func(CLI, Dependencies, io.Writer) int

func dispatchCommand(command string, cli CLI, deps Dependencies, out io.Writer) (int, bool) {
	handlers := map[string]commandHandler{
		"resolve auto <services-file>":            runResolveAuto,
		"resolve manual <services-file>":          runResolveManual,
		"normalize <services-file>":               runNormalize,
		"filter <services-file> <application>":    runFilter,
		"verify <services-file>":                  runVerify,
		"version": func(_ CLI, _ Dependencies, out io.Writer) int {
			fmt.Fprintln(out, version.GetVersion())
			return 0
		},
	}

	if handler, ok := handlers[command]; ok {
		return handler(cli, deps, out), true
	}
	return 1, false
}

// loadEnvFile loads an explicit env file, or .env when present.
func loadEnvFile(path string, out io.Writer) {
	if path != "" {
		if err := godotenv.Load(path); err != nil {
			fmt.Fprintf(out, "Warning: failed to load env file %s: %v\n", path, err)
		}
		return
	}
	if _, err := os.Stat(".env"); err == nil {
		if err := godotenv.Load(); err != nil {
			fmt.Fprintf(out, "Warning: failed to load .env: %v\n", err)
		}
	}
}

// envFileFromArgs pre-scans the raw arguments for --env-file so it can
// be honored before flag parsing.
func envFileFromArgs(args []string) string {
	for i, arg := range args {
		if arg == "--env-file" && i+1 < len(args) {
			return args[i+1]
		}
		if value, ok := strings.CutPrefix(arg, "--env-file="); ok {
			return value
		}
	}
	return ""
}
