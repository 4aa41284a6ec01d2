package mutate

import (
	"context"

	sitter "github.com/smacker/go-tree-sitter"
)

// collectDefinitions is the read-only Pass-1 tree walker. It gathers,
// for a single file, the three sets of identifiers spec'd as eligible
// for renaming: top-level (and nested) class definitions, top-level
// (and method) function definitions not in the protected set, and
// import targets whose dotted module path matches a configured
// internal prefix.
//
// Ordering within each set is irrelevant here; the caller sorts before
// handing names to the name generator (see mapping.go/mutator.go) so
// that insertion order is a pure function of the inputs, not of this
// walk's traversal order.
func collectDefinitions(ctx context.Context, content []byte, filePath string, cfg Config) (*definitions, error) {
	root, closeTree, err := parseRoot(ctx, content, filePath)
	if err != nil {
		return nil, err
	}
	defer closeTree()

	defs := newDefinitions()
	walkCollect(root, content, cfg, defs)
	return defs, nil
}

// walkCollect recurses over every node in the tree, registering class
// and function definitions wherever they occur (nested classes and
// methods included — the flat global Mapping resolves name collisions
// across scopes by first-seen-wins) and import statements only at the
// point they appear (imports nested inside a function body are still
// collected, matching the CST visitor's unconditional visit_Import).
func walkCollect(node *sitter.Node, content []byte, cfg Config, defs *definitions) {
	switch node.Type() {
	case "class_definition":
		if nameNode := node.ChildByFieldName("name"); nameNode != nil {
			defs.classes[nodeText(nameNode, content)] = struct{}{}
		}
	case "function_definition":
		if nameNode := node.ChildByFieldName("name"); nameNode != nil {
			name := nodeText(nameNode, content)
			if isProtected(name) {
				defs.observed[name] = struct{}{}
			} else {
				defs.functions[name] = struct{}{}
			}
		}
	case "import_statement":
		collectImportStatement(node, content, cfg, defs)
	case "import_from_statement":
		collectImportFromStatement(node, content, cfg, defs)
	}

	for i := 0; i < int(node.ChildCount()); i++ {
		walkCollect(node.Child(i), content, cfg, defs)
	}
}

// collectImportStatement handles `import foo`, `import foo.bar`, and
// `import foo as bar`, registering the full dotted module path as a
// candidate module definition when it is internal.
func collectImportStatement(node *sitter.Node, content []byte, cfg Config, defs *definitions) {
	for i := 0; i < int(node.ChildCount()); i++ {
		child := node.Child(i)
		switch child.Type() {
		case "dotted_name":
			registerModuleIfInternal(dottedName(child, content), cfg, defs)
		case "aliased_import":
			if nameNode := child.ChildByFieldName("name"); nameNode != nil {
				registerModuleIfInternal(dottedName(nameNode, content), cfg, defs)
			}
		}
	}
}

// collectImportFromStatement handles `from x import y[, z as w]`,
// registering the module path (not the imported names) as a candidate
// module definition when it is internal.
func collectImportFromStatement(node *sitter.Node, content []byte, cfg Config, defs *definitions) {
	var modulePath string
	sawImport := false

	for i := 0; i < int(node.ChildCount()); i++ {
		child := node.Child(i)
		switch child.Type() {
		case "import":
			sawImport = true
		case "relative_import":
			modulePath = relativeImportPath(child, content)
		case "dotted_name":
			if !sawImport {
				modulePath = dottedName(child, content)
			}
		}
	}

	registerModuleIfInternal(modulePath, cfg, defs)
}

// relativeImportPath reconstructs the textual form of a relative_import
// node, e.g. "." or "..pkg" for `from . import x` / `from ..pkg import
// y`.
func relativeImportPath(node *sitter.Node, content []byte) string {
	var prefix, name string
	for i := 0; i < int(node.ChildCount()); i++ {
		child := node.Child(i)
		switch child.Type() {
		case "import_prefix":
			prefix = nodeText(child, content)
		case "dotted_name":
			name = nodeText(child, content)
		}
	}
	return prefix + name
}

func registerModuleIfInternal(modulePath string, cfg Config, defs *definitions) {
	if modulePath != "" && cfg.isInternalModule(modulePath) {
		defs.modules[modulePath] = struct{}{}
	}
}
