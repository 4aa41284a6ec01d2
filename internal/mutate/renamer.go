package mutate

import (
	"context"

	sitter "github.com/smacker/go-tree-sitter"
)

// preseededExternalNames are host-runtime module names that should be
// treated as external bases for attribute-access vetoing even if the
// program under transformation never imports them explicitly (e.g.
// they are referenced via a re-export or the benchmark harness injects
// them into the runtime namespace).
var preseededExternalNames = map[string]struct{}{
	"sys": {}, "os": {}, "json": {}, "math": {}, "re": {}, "typing": {}, "t": {},
}

// renameState carries the per-file state threaded through Pass 2: the
// mapping being consulted (read-only during transform), the
// configuration (for internal-prefix checks), the external-name set
// built by the import pre-scan, the original source bytes, and the
// accumulated edit list.
type renameState struct {
	content  []byte
	mapping  *Mapping
	cfg      Config
	external map[string]struct{}
	edits    []edit
}

// transformSource runs Pass 2 over content: pre-scan imports to build
// the external-name set, walk the tree applying the per-construct
// rules of spec.md §4.4, then splice the resulting edits over the
// original bytes.
func transformSource(ctx context.Context, content []byte, filePath string, mapping *Mapping, cfg Config) ([]byte, error) {
	root, closeTree, err := parseRoot(ctx, content, filePath)
	if err != nil {
		return nil, err
	}
	defer closeTree()

	state := &renameState{
		content:  content,
		mapping:  mapping,
		cfg:      cfg,
		external: make(map[string]struct{}, len(preseededExternalNames)),
	}
	for name := range preseededExternalNames {
		state.external[name] = struct{}{}
	}

	prescanImports(root, content, cfg, state.external)
	walkRename(root, state)

	return applyEdits(content, state.edits)
}

// prescanImports walks the whole tree once, visiting only import
// nodes, to populate the external-name set before any usage site is
// examined — matching spec.md §4.4's required visit order.
func prescanImports(node *sitter.Node, content []byte, cfg Config, external map[string]struct{}) {
	switch node.Type() {
	case "import_statement":
		prescanImportStatement(node, content, cfg, external)
	case "import_from_statement":
		prescanImportFromStatement(node, content, cfg, external)
	}
	for i := 0; i < int(node.ChildCount()); i++ {
		prescanImports(node.Child(i), content, cfg, external)
	}
}

func prescanImportStatement(node *sitter.Node, content []byte, cfg Config, external map[string]struct{}) {
	for i := 0; i < int(node.ChildCount()); i++ {
		child := node.Child(i)
		switch child.Type() {
		case "dotted_name":
			if !cfg.isInternalModule(dottedName(child, content)) {
				external[leftmostIdentifier(child, content)] = struct{}{}
			}
		case "aliased_import":
			nameNode := child.ChildByFieldName("name")
			aliasNode := child.ChildByFieldName("alias")
			if nameNode == nil {
				continue
			}
			if cfg.isInternalModule(dottedName(nameNode, content)) {
				continue
			}
			if aliasNode != nil {
				external[nodeText(aliasNode, content)] = struct{}{}
			} else {
				external[leftmostIdentifier(nameNode, content)] = struct{}{}
			}
		}
	}
}

func prescanImportFromStatement(node *sitter.Node, content []byte, cfg Config, external map[string]struct{}) {
	modulePath, isRelative := fromModulePath(node, content)
	isInternal := isRelative || cfg.isInternalModule(modulePath)
	if isInternal {
		return
	}

	sawImport := false
	for i := 0; i < int(node.ChildCount()); i++ {
		child := node.Child(i)
		switch child.Type() {
		case "import":
			sawImport = true
		case "identifier", "dotted_name":
			if sawImport {
				external[nodeText(child, content)] = struct{}{}
			}
		case "aliased_import":
			nameNode := child.ChildByFieldName("name")
			aliasNode := child.ChildByFieldName("alias")
			if aliasNode != nil {
				external[nodeText(aliasNode, content)] = struct{}{}
			} else if nameNode != nil {
				external[nodeText(nameNode, content)] = struct{}{}
			}
		}
	}
}

// fromModulePath extracts the dotted module path (and whether the
// import is relative) from an import_from_statement node.
func fromModulePath(node *sitter.Node, content []byte) (path string, relative bool) {
	sawImport := false
	for i := 0; i < int(node.ChildCount()); i++ {
		child := node.Child(i)
		switch child.Type() {
		case "import":
			sawImport = true
		case "relative_import":
			return relativeImportPath(child, content), true
		case "dotted_name":
			if !sawImport {
				path = dottedName(child, content)
			}
		}
	}
	return path, false
}

// walkRename recurses over the tree, emitting edits per the
// per-construct rules of spec.md §4.4.
func walkRename(node *sitter.Node, state *renameState) {
	switch node.Type() {
	case "class_definition":
		renameDefinitionChild(node, state, "class_definition")
	case "function_definition":
		renameDefinitionChild(node, state, "function_definition")
	case "attribute":
		renameAttribute(node, state)
		return
	case "import_statement":
		renameImportStatement(node, state)
		return
	case "import_from_statement":
		renameImportFromStatement(node, state)
		return
	case "identifier":
		renameBareIdentifier(node, state)
	}

	for i := 0; i < int(node.ChildCount()); i++ {
		walkRename(node.Child(i), state)
	}
}

// renameDefinitionChild rewrites a class/function definition's name
// slot if it is mapped, then recurses into the remaining children
// (parameters, body) normally so nested definitions and usages are
// still visited.
func renameDefinitionChild(node *sitter.Node, state *renameState, _ string) {
	nameNode := node.ChildByFieldName("name")
	if nameNode == nil {
		return
	}
	if newName, ok := state.mapping.Lookup(nodeText(nameNode, state.content)); ok {
		state.edits = append(state.edits, edit{start: nameNode.StartByte(), end: nameNode.EndByte(), replacement: newName})
	}
	for i := 0; i < int(node.ChildCount()); i++ {
		child := node.Child(i)
		if child == nameNode {
			continue
		}
		walkRename(child, state)
	}
}

// renameBareIdentifier applies the bare-name rule: rewrite the
// identifier if its text is a mapping key.
func renameBareIdentifier(node *sitter.Node, state *renameState) {
	original := nodeText(node, state.content)
	if newName, ok := state.mapping.Lookup(original); ok {
		state.edits = append(state.edits, edit{start: node.StartByte(), end: node.EndByte(), replacement: newName})
	}
}

// renameAttribute implements the attribute-veto rule. The object subtree
// is always walked normally. If the leftmost bare name of the object
// chain belongs to the external-name set, the attr slot is left
// untouched (not even visited, since it is always a leaf identifier);
// otherwise the attr slot follows the bare-name rule like any other
// identifier.
func renameAttribute(node *sitter.Node, state *renameState) {
	objectNode := node.ChildByFieldName("object")
	attrNode := node.ChildByFieldName("attribute")

	if objectNode != nil {
		walkRename(objectNode, state)
	}
	if attrNode == nil {
		return
	}

	base := leftmostIdentifier(objectNode, state.content)
	if _, vetoed := state.external[base]; vetoed {
		return
	}
	renameBareIdentifier(attrNode, state)
}

// renameImportStatement handles `import X`, `import X.Y`, and
// `import X as Y`. The module-path slot is rewritten only if its full
// dotted text is a mapping key (i.e. it was collected as an internal
// module); the bound `as`-alias, if present, follows the plain
// bare-name rule via the normal recursive walk.
func renameImportStatement(node *sitter.Node, state *renameState) {
	for i := 0; i < int(node.ChildCount()); i++ {
		child := node.Child(i)
		switch child.Type() {
		case "dotted_name":
			renameModuleSlot(child, state)
		case "aliased_import":
			if nameNode := child.ChildByFieldName("name"); nameNode != nil {
				renameModuleSlot(nameNode, state)
			}
			if aliasNode := child.ChildByFieldName("alias"); aliasNode != nil {
				walkRename(aliasNode, state)
			}
		}
	}
}

// renameImportFromStatement handles `from M import a, b as c`. The
// module slot follows the same whole-span rule as renameImportStatement.
// Whether the imported-name slots (and their aliases) are touched at all
// depends on whether M is internal, mirroring prescanImportFromStatement's
// isInternal computation: when M is internal they follow the bare-name
// rule; when M is external every imported-name slot — including an
// `as`-alias — must stay byte-identical, since it is never safe to infer
// that a name imported from a genuinely external package happens to
// collide with an unrelated mapping entry.
func renameImportFromStatement(node *sitter.Node, state *renameState) {
	modulePath, isRelative := fromModulePath(node, state.content)
	isInternal := isRelative || state.cfg.isInternalModule(modulePath)

	sawImport := false
	for i := 0; i < int(node.ChildCount()); i++ {
		child := node.Child(i)
		switch child.Type() {
		case "import":
			sawImport = true
		case "relative_import":
			// No textual module name to map; nothing to rewrite.
		case "dotted_name":
			if !sawImport {
				renameModuleSlot(child, state)
			} else if isInternal {
				renameBareIdentifier(child, state)
			}
		case "identifier":
			if isInternal {
				renameBareIdentifier(child, state)
			}
		case "aliased_import":
			if !isInternal {
				continue
			}
			if nameNode := child.ChildByFieldName("name"); nameNode != nil {
				walkRename(nameNode, state)
			}
			if aliasNode := child.ChildByFieldName("alias"); aliasNode != nil {
				walkRename(aliasNode, state)
			}
		}
	}
}

// renameModuleSlot rewrites a dotted module-path node's whole span if
// its full text is a mapping key, leaving it verbatim otherwise. A
// multi-segment path ("pkg.sub") is one mapping key covering the whole
// node, not its individual identifier children, since that is how the
// collector registers internal modules (see collector.go).
func renameModuleSlot(node *sitter.Node, state *renameState) {
	original := dottedName(node, state.content)
	if newName, ok := state.mapping.Lookup(original); ok {
		state.edits = append(state.edits, edit{start: node.StartByte(), end: node.EndByte(), replacement: newName})
	}
}
