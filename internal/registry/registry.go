// Package registry describes the installed apps of a host Django project:
// which apps exist, which models each app declares, and the fields of each
// model. Descriptors are read-only snapshots taken once per run.
package registry

import "strings"

// Field is one field of a model. AutoCreated and Concrete carry the
// framework's own flags: reverse accessors and other implicit relations are
// auto-created and non-concrete, an implicit primary key is auto-created but
// concrete.
type Field struct {
	Name        string `yaml:"name"`
	Type        string `yaml:"type"`
	AutoCreated bool   `yaml:"auto_created"`
	Concrete    bool   `yaml:"concrete"`
}

// Model is one model of an app, with fields in declaration order.
type Model struct {
	Name   string  `yaml:"name"`
	Fields []Field `yaml:"fields"`
}

// App is one installed app. Name is the dotted module path, Label the unique
// short label, Path the app's filesystem root.
type App struct {
	Name   string  `yaml:"name"`
	Label  string  `yaml:"label"`
	Path   string  `yaml:"path"`
	Models []Model `yaml:"models"`
}

// BuiltIn reports whether the app belongs to the framework's contrib
// namespace. Built-in apps are never scanned or generated for.
func (a App) BuiltIn() bool {
	return strings.HasPrefix(a.Name, "django.contrib")
}

// DeclaredFields returns the fields worth serializing: a field is dropped
// iff it is both auto-created and non-concrete. Concrete auto-created fields
// (the implicit pk) and explicitly declared non-concrete fields (m2m) stay.
func (m Model) DeclaredFields() []Field {
	fields := make([]Field, 0, len(m.Fields))
	for _, f := range m.Fields {
		if f.AutoCreated && !f.Concrete {
			continue
		}
		fields = append(fields, f)
	}
	return fields
}

// Registry lists the installed apps of a host project. Implementations wrap
// whatever reflection facility is available: an exported manifest, a static
// source scan, or a hand-rolled table in tests.
type Registry interface {
	Apps() ([]App, error)
}
