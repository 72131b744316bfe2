package registry

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	ignore "github.com/sabhiram/go-gitignore"
	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/python"
)

// ProjectRegistry discovers apps by statically scanning a Django project
// tree: every directory holding a models.py is an app, and its models are
// parsed out of the source with tree-sitter. No Python runtime is involved,
// so reverse accessors are invisible here; those are exactly the fields the
// serializer pipeline excludes anyway.
type ProjectRegistry struct {
	root string
}

func NewProjectRegistry(root string) *ProjectRegistry {
	return &ProjectRegistry{root: root}
}

const modelsFile = "models.py"

var skipDirs = map[string]struct{}{
	"__pycache__":   {},
	"node_modules":  {},
	"migrations":    {},
	"venv":          {},
	"env":           {},
	"build":         {},
	"dist":          {},
	".tox":          {},
	".mypy_cache":   {},
	".ruff_cache":   {},
	".pytest_cache": {},
}

func (r *ProjectRegistry) Apps() ([]App, error) {
	gi := loadGitignore(r.root)

	var apps []App
	err := filepath.WalkDir(r.root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return nil // skip unreadable entries
		}

		name := d.Name()
		if d.IsDir() {
			if path == r.root {
				return nil
			}
			if _, skip := skipDirs[name]; skip || strings.HasPrefix(name, ".") {
				return filepath.SkipDir
			}
			return nil
		}
		if name != modelsFile {
			return nil
		}

		rel, err := filepath.Rel(r.root, path)
		if err != nil {
			return nil
		}
		if gi != nil && gi.MatchesPath(rel) {
			return nil
		}

		source, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", path, err)
		}
		models, err := parseModels(source)
		if err != nil {
			return fmt.Errorf("failed to parse %s: %w", path, err)
		}

		appDir := filepath.Dir(path)
		label := filepath.Base(appDir)
		apps = append(apps, App{
			Name:   label,
			Label:  label,
			Path:   appDir,
			Models: models,
		})
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Slice(apps, func(i, j int) bool { return apps[i].Label < apps[j].Label })
	return apps, nil
}

func loadGitignore(root string) *ignore.GitIgnore {
	gi, err := ignore.CompileIgnoreFile(filepath.Join(root, ".gitignore"))
	if err != nil {
		return nil
	}
	return gi
}

// Relation field types that carry no column of their own.
var nonConcreteFields = map[string]struct{}{
	"ManyToManyField": {},
}

// parseModels extracts model classes from a models.py source. A class counts
// as a model when one of its bases reads models.Model (or a bare Model
// import). Class-level assignments calling a field constructor become field
// descriptors; when no declared field sets primary_key=True, the implicit
// auto primary key is synthesized first, matching Django's default.
func parseModels(source []byte) ([]Model, error) {
	parser := sitter.NewParser()
	parser.SetLanguage(python.GetLanguage())

	tree, err := parser.ParseCtx(context.Background(), nil, source)
	if err != nil {
		return nil, err
	}
	defer tree.Close()

	var models []Model
	root := tree.RootNode()
	for i := 0; i < int(root.NamedChildCount()); i++ {
		node := root.NamedChild(i)
		if node.Type() == "decorated_definition" {
			if def := node.ChildByFieldName("definition"); def != nil {
				node = def
			}
		}
		if node.Type() != "class_definition" {
			continue
		}
		if m, ok := parseModelClass(node, source); ok {
			models = append(models, m)
		}
	}
	return models, nil
}

func parseModelClass(class *sitter.Node, source []byte) (Model, bool) {
	nameNode := class.ChildByFieldName("name")
	body := class.ChildByFieldName("body")
	if nameNode == nil || body == nil || !isModelBase(class.ChildByFieldName("superclasses"), source) {
		return Model{}, false
	}

	var fields []Field
	hasPrimaryKey := false
	abstract := false

	for i := 0; i < int(body.NamedChildCount()); i++ {
		stmt := body.NamedChild(i)
		switch stmt.Type() {
		case "class_definition":
			// Inner Meta with abstract = True means no table, no serializer.
			if inner := stmt.ChildByFieldName("name"); inner != nil && inner.Content(source) == "Meta" {
				if metaIsAbstract(stmt.ChildByFieldName("body"), source) {
					abstract = true
				}
			}
		case "expression_statement":
			assign := stmt.NamedChild(0)
			if assign == nil || assign.Type() != "assignment" {
				continue
			}
			field, primary, ok := parseFieldAssignment(assign, source)
			if !ok {
				continue
			}
			fields = append(fields, field)
			if primary {
				hasPrimaryKey = true
			}
		}
	}

	if abstract {
		return Model{}, false
	}
	if !hasPrimaryKey {
		pk := Field{Name: "id", Type: "BigAutoField", AutoCreated: true, Concrete: true}
		fields = append([]Field{pk}, fields...)
	}
	return Model{Name: nameNode.Content(source), Fields: fields}, true
}

func isModelBase(superclasses *sitter.Node, source []byte) bool {
	if superclasses == nil {
		return false
	}
	for i := 0; i < int(superclasses.NamedChildCount()); i++ {
		base := superclasses.NamedChild(i).Content(source)
		if base == "models.Model" || base == "Model" {
			return true
		}
	}
	return false
}

func metaIsAbstract(body *sitter.Node, source []byte) bool {
	if body == nil {
		return false
	}
	for i := 0; i < int(body.NamedChildCount()); i++ {
		stmt := body.NamedChild(i)
		if stmt.Type() != "expression_statement" {
			continue
		}
		assign := stmt.NamedChild(0)
		if assign == nil || assign.Type() != "assignment" {
			continue
		}
		left := assign.ChildByFieldName("left")
		right := assign.ChildByFieldName("right")
		if left != nil && right != nil &&
			left.Content(source) == "abstract" && right.Content(source) == "True" {
			return true
		}
	}
	return false
}

// parseFieldAssignment turns `title = models.CharField(...)` into a field
// descriptor. The second return reports primary_key=True on the declaration.
func parseFieldAssignment(assign *sitter.Node, source []byte) (Field, bool, bool) {
	left := assign.ChildByFieldName("left")
	right := assign.ChildByFieldName("right")
	if left == nil || right == nil || left.Type() != "identifier" || right.Type() != "call" {
		return Field{}, false, false
	}

	fn := right.ChildByFieldName("function")
	if fn == nil {
		return Field{}, false, false
	}

	var typeName string
	switch fn.Type() {
	case "attribute":
		obj := fn.ChildByFieldName("object")
		attr := fn.ChildByFieldName("attribute")
		if obj == nil || attr == nil || obj.Content(source) != "models" {
			return Field{}, false, false
		}
		typeName = attr.Content(source)
	case "identifier":
		typeName = fn.Content(source)
		if !strings.HasSuffix(typeName, "Field") && typeName != "ForeignKey" {
			return Field{}, false, false
		}
	default:
		return Field{}, false, false
	}

	_, nonConcrete := nonConcreteFields[typeName]
	field := Field{
		Name:     left.Content(source),
		Type:     typeName,
		Concrete: !nonConcrete,
	}
	return field, hasPrimaryKeyArg(right.ChildByFieldName("arguments"), source), true
}

func hasPrimaryKeyArg(args *sitter.Node, source []byte) bool {
	if args == nil {
		return false
	}
	for i := 0; i < int(args.NamedChildCount()); i++ {
		arg := args.NamedChild(i)
		if arg.Type() != "keyword_argument" {
			continue
		}
		name := arg.ChildByFieldName("name")
		value := arg.ChildByFieldName("value")
		if name != nil && value != nil &&
			name.Content(source) == "primary_key" && value.Content(source) == "True" {
			return true
		}
	}
	return false
}
