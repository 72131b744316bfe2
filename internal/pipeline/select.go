// Package pipeline runs the scan -> report -> confirm -> generate flow over
// the host project's app registry.
package pipeline

import (
	"github.com/kuru2388/django-autoapi/internal/registry"
)

// Policy is the run-scoped filtering configuration, built once from the
// config file plus CLI input.
type Policy struct {
	IncludeApps []string // empty means all non-contrib apps
	ExcludeApps []string
	AppLabel    string // CLI narrowing to a single app label
}

// Select applies the filter chain in order: contrib apps are always dropped,
// then the include list narrows, then the CLI label narrows within that
// result, then excluded labels are removed. Later filters only narrow, so an
// AppLabel outside the include list yields nothing. The result may be empty;
// that is "nothing to do", not an error.
func Select(apps []registry.App, policy Policy) []registry.App {
	selected := make([]registry.App, 0, len(apps))
	for _, app := range apps {
		if app.BuiltIn() {
			continue
		}
		selected = append(selected, app)
	}

	if len(policy.IncludeApps) > 0 {
		include := make(map[string]struct{}, len(policy.IncludeApps))
		for _, label := range policy.IncludeApps {
			include[label] = struct{}{}
		}
		kept := selected[:0]
		for _, app := range selected {
			if _, ok := include[app.Label]; ok {
				kept = append(kept, app)
			}
		}
		selected = kept
	}

	if policy.AppLabel != "" {
		kept := selected[:0]
		for _, app := range selected {
			if app.Label == policy.AppLabel {
				kept = append(kept, app)
			}
		}
		selected = kept
	}

	if len(policy.ExcludeApps) > 0 {
		exclude := make(map[string]struct{}, len(policy.ExcludeApps))
		for _, label := range policy.ExcludeApps {
			exclude[label] = struct{}{}
		}
		kept := selected[:0]
		for _, app := range selected {
			if _, ok := exclude[app.Label]; !ok {
				kept = append(kept, app)
			}
		}
		selected = kept
	}

	return selected
}
