// autoapi scans a Django project's models and generates DRF ModelSerializers
// into <app>/api_serializers_ai.py via an LLM provider.
package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"

	"github.com/kuru2388/django-autoapi/internal/config"
	"github.com/kuru2388/django-autoapi/internal/llm"
	"github.com/kuru2388/django-autoapi/internal/pipeline"
	"github.com/kuru2388/django-autoapi/internal/registry"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using defaults")
	}

	if err := run(os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("autoapi", flag.ContinueOnError)
	fs.SetOutput(stderr)

	var (
		appLabel     string
		includeEmpty bool
		skipConfirm  bool
		modelName    string
		budgetOnly   bool
		configPath   string
		manifestPath string
	)

	fs.StringVar(&appLabel, "app", "", "only scan / generate for this app label (e.g. 'blog')")
	fs.BoolVar(&includeEmpty, "include-empty", false, "include apps that have no models in the scan output")
	fs.BoolVar(&skipConfirm, "yes", false, "skip interactive confirmation before generation")
	fs.StringVar(&modelName, "model", "", "only generate for this single model name (for testing)")
	fs.BoolVar(&budgetOnly, "budget-only", false, "only show estimated token usage and API cost, do not call the LLM")
	fs.StringVar(&configPath, "config", "autoapi.toml", "path to the TOML config file")
	fs.StringVar(&manifestPath, "manifest", "", "read apps from a YAML model manifest instead of scanning sources")

	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	var reg registry.Registry
	if manifestPath != "" {
		reg = registry.NewManifestRegistry(manifestPath)
	} else {
		root := "."
		if fs.NArg() > 0 {
			root = fs.Arg(0)
		}
		root, err := filepath.Abs(root)
		if err != nil {
			return fmt.Errorf("resolving project root: %w", err)
		}
		info, err := os.Stat(root)
		if err != nil {
			return fmt.Errorf("project root: %w", err)
		}
		if !info.IsDir() {
			return fmt.Errorf("%s: not a directory", root)
		}
		reg = registry.NewProjectRegistry(root)
	}

	runner := &pipeline.Runner{
		Registry: reg,
		Config:   cfg,
		NewClient: func(ctx context.Context) (llm.LLMClient, error) {
			return llm.NewClient(ctx, cfg.LLM)
		},
		Confirm: stdinConfirm(stdout),
		Out:     stdout,
	}

	return runner.Run(context.Background(), pipeline.Options{
		AppLabel:     appLabel,
		ModelName:    modelName,
		IncludeEmpty: includeEmpty,
		SkipConfirm:  skipConfirm,
		BudgetOnly:   budgetOnly,
	})
}

func stdinConfirm(out io.Writer) func(string) bool {
	reader := bufio.NewReader(os.Stdin)
	return func(question string) bool {
		fmt.Fprint(out, question)
		line, err := reader.ReadString('\n')
		if err != nil {
			return false
		}
		answer := strings.ToLower(strings.TrimSpace(line))
		return answer == "y" || answer == "yes"
	}
}
