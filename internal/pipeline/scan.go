package pipeline

import (
	"fmt"
	"io"

	"github.com/kuru2388/django-autoapi/internal/registry"
)

// Report totals the apps and models that passed the empty check.
type Report struct {
	Apps   int
	Models int
}

// Scan lists the models of each selected app and writes one line per app and
// per model to out; that report is the operator's only view of what a
// generation run will bill for. Apps with no models are omitted unless
// includeEmpty, and even then only reported: the returned generation slice
// holds just the apps with at least one model, in encounter order.
func Scan(apps []registry.App, includeEmpty bool, out io.Writer) (Report, []registry.App) {
	var report Report
	var generate []registry.App

	for _, app := range apps {
		if len(app.Models) == 0 && !includeEmpty {
			continue
		}

		report.Apps++
		report.Models += len(app.Models)

		fmt.Fprintf(out, "App: %s\n", app.Label)
		if len(app.Models) == 0 {
			fmt.Fprintln(out, "  (no models)")
		} else {
			for _, model := range app.Models {
				fmt.Fprintf(out, "  - %s\n", model.Name)
			}
			generate = append(generate, app)
		}
		fmt.Fprintln(out)
	}

	return report, generate
}
