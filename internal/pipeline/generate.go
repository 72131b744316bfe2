package pipeline

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/kuru2388/django-autoapi/internal/llm"
	"github.com/kuru2388/django-autoapi/internal/prompt"
	"github.com/kuru2388/django-autoapi/internal/registry"
)

const (
	artifactName   = "api_serializers_ai.py"
	artifactHeader = "from rest_framework import serializers\n\n"
)

type Outcome string

const (
	Written         Outcome = "written"
	SkippedFiltered Outcome = "skipped-filtered"
	SkippedEmpty    Outcome = "skipped-empty-response"
	FailedConfig    Outcome = "failed-config"
	FailedOther     Outcome = "failed-other"
)

// Result is the per-model outcome of one generation pass.
type Result struct {
	App     string
	Model   string
	Outcome Outcome
	Err     error
}

type Generator struct {
	LLM llm.LLMClient
	Out io.Writer
}

// GenerateApp generates serializers for every model of one app, appending
// each returned snippet to the app's artifact. A per-model LLM failure is
// reported and the loop continues; a ConfigError is reported and returned,
// because every later call would fail the same way — the caller must abort
// the whole generation phase, not just this app.
func (g *Generator) GenerateApp(ctx context.Context, app registry.App, modelFilter string) ([]Result, error) {
	path := filepath.Join(app.Path, artifactName)
	if err := ensureArtifact(path); err != nil {
		return nil, fmt.Errorf("failed to create %s: %w", path, err)
	}

	var results []Result
	for _, model := range app.Models {
		if modelFilter != "" && model.Name != modelFilter {
			results = append(results, Result{App: app.Label, Model: model.Name, Outcome: SkippedFiltered})
			continue
		}

		p := prompt.Serializer(app.Label, model.Name, model.DeclaredFields())

		fmt.Fprintf(g.Out, "Generating serializer for %s.%s...\n", app.Label, model.Name)

		code, err := g.LLM.Generate(ctx, p)
		if err != nil {
			if llm.IsConfigError(err) {
				fmt.Fprintln(g.Out, err)
				results = append(results, Result{App: app.Label, Model: model.Name, Outcome: FailedConfig, Err: err})
				return results, err
			}
			fmt.Fprintf(g.Out, "LLM error for %s: %v\n", model.Name, err)
			results = append(results, Result{App: app.Label, Model: model.Name, Outcome: FailedOther, Err: err})
			continue
		}

		if strings.TrimSpace(code) == "" {
			fmt.Fprintf(g.Out, "No code returned for %s.%s, skipping.\n", app.Label, model.Name)
			results = append(results, Result{App: app.Label, Model: model.Name, Outcome: SkippedEmpty})
			continue
		}

		if err := appendArtifact(path, code); err != nil {
			return results, fmt.Errorf("failed to write %s: %w", path, err)
		}
		fmt.Fprintf(g.Out, "  wrote serializer for %s.%s to %s\n", app.Label, model.Name, path)
		results = append(results, Result{App: app.Label, Model: model.Name, Outcome: Written})
	}

	return results, nil
}

// ensureArtifact seeds the artifact with its import header exactly once,
// keyed on file non-existence. An existing file is never touched here — this
// pipeline only ever appends.
func ensureArtifact(path string) error {
	if _, err := os.Stat(path); err == nil {
		return nil
	} else if !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return os.WriteFile(path, []byte(artifactHeader), 0o644)
}

// appendArtifact appends the snippet, a normalizing newline when the snippet
// lacks one, and a blank separator line.
func appendArtifact(path string, code string) error {
	f, err := os.OpenFile(path, os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return err
	}
	defer f.Close()

	if !strings.HasSuffix(code, "\n") {
		code += "\n"
	}
	_, err = f.WriteString(code + "\n\n")
	return err
}
