package pipeline

import (
	"context"
	"fmt"
	"io"

	"github.com/kuru2388/django-autoapi/internal/config"
	"github.com/kuru2388/django-autoapi/internal/llm"
	"github.com/kuru2388/django-autoapi/internal/registry"
)

// Options carries the per-run CLI input.
type Options struct {
	AppLabel     string
	ModelName    string
	IncludeEmpty bool
	SkipConfirm  bool
	BudgetOnly   bool
}

// Runner wires the pipeline stages together. NewClient and Confirm are
// injectable so tests can script both without a network or a terminal.
type Runner struct {
	Registry  registry.Registry
	Config    *config.Config
	NewClient func(ctx context.Context) (llm.LLMClient, error)
	Confirm   func(prompt string) bool
	Out       io.Writer
}

// Run executes one pass: scan and report, then either the budget projection
// or confirm-and-generate. The ordering is part of the observed contract —
// the operator always sees the full scan report (and is asked to confirm)
// before any generation failure can surface. "Nothing to do" states print a
// warning and return nil; so do configuration failures, which are terminal
// messages rather than crashes.
func (r *Runner) Run(ctx context.Context, opts Options) error {
	apps, err := r.Registry.Apps()
	if err != nil {
		return fmt.Errorf("scanning installed apps: %w", err)
	}

	fmt.Fprintf(r.Out, "Scanning installed apps...\n\n")

	selected := Select(apps, Policy{
		IncludeApps: r.Config.Apps.Include,
		ExcludeApps: r.Config.Apps.Exclude,
		AppLabel:    opts.AppLabel,
	})
	if len(selected) == 0 {
		fmt.Fprintln(r.Out, "No matching apps found to scan.")
		return nil
	}

	report, generate := Scan(selected, opts.IncludeEmpty, r.Out)
	if report.Apps == 0 {
		fmt.Fprintln(r.Out, "No apps with models found.")
		return nil
	}

	fmt.Fprintf(r.Out, "Scan complete: %d apps, %d models.\n\n", report.Apps, report.Models)

	if opts.BudgetOnly {
		est, ok := EstimateBudget(report.Models)
		if !ok {
			fmt.Fprintln(r.Out, "No models found, nothing to estimate.")
			return nil
		}
		fmt.Fprintln(r.Out, "Budget estimation (rough):")
		fmt.Fprintf(r.Out, "  - Models to generate: %d\n", est.Models)
		fmt.Fprintf(r.Out, "  - Estimated tokens: ~%d tokens\n", est.Tokens)
		fmt.Fprintf(r.Out, "  - Model: %s\n", r.Config.LLM.Model)
		fmt.Fprintf(r.Out, "  - Estimated cost: ~$%.4f USD\n\n", est.Cost)
		fmt.Fprintln(r.Out, "This is a rough estimate. Real cost depends on model and prompt size.")
		return nil
	}

	if report.Models == 0 {
		return nil
	}

	if !opts.SkipConfirm {
		question := fmt.Sprintf("Generate serializers for %d models using %s? [y/N]: ",
			report.Models, r.Config.LLM.Provider)
		if !r.Confirm(question) {
			fmt.Fprintln(r.Out, "Aborted before generation.")
			return nil
		}
	}

	client, err := r.NewClient(ctx)
	if err != nil {
		fmt.Fprintln(r.Out, err)
		return nil
	}

	gen := &Generator{LLM: client, Out: r.Out}
	for _, app := range generate {
		if _, err := gen.GenerateApp(ctx, app, opts.ModelName); err != nil {
			if llm.IsConfigError(err) {
				// Already reported by the generator; abort the phase.
				return nil
			}
			return err
		}
	}

	fmt.Fprintf(r.Out, "\nSerializer generation complete.\n")
	return nil
}
