package mutate

import (
	"context"
	"fmt"
	"unicode/utf8"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/python"
)

// maxSourceSize bounds how much source text a single parse call will
// accept, guarding against pathological input sizes.
const maxSourceSize = 32 * 1024 * 1024

// parseSource parses content with tree-sitter's Python grammar and
// returns the resulting tree. The tree is a lossless, read-only
// representation of the source: traversing it and re-slicing content
// by each node's byte range reproduces the input verbatim wherever the
// renamer does not touch it.
//
// Every call creates its own *sitter.Parser, matching the teacher's
// parser-per-call convention so that parseSource is safe to call from
// multiple goroutines concurrently (each Pass 2 worker gets its own
// tree).
func parseSource(ctx context.Context, content []byte, filePath string) (*sitter.Tree, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("parse canceled before start: %w", err)
	}
	if len(content) > maxSourceSize {
		return nil, WrapParseError(fmt.Errorf("source exceeds %d bytes", maxSourceSize), filePath)
	}
	if !utf8.Valid(content) {
		return nil, WrapParseError(ErrInvalidContent, filePath)
	}

	parser := sitter.NewParser()
	parser.SetLanguage(python.GetLanguage())

	tree, err := parser.ParseCtx(ctx, nil, content)
	if err != nil {
		return nil, NewParseErrorWithCause(filePath, 0, 0, "tree-sitter parse failed", err)
	}
	root := tree.RootNode()
	if root == nil {
		tree.Close()
		return nil, NewParseError(filePath, 0, 0, "tree-sitter returned no root node")
	}
	if root.HasError() {
		point := firstErrorPoint(root)
		tree.Close()
		return nil, NewParseError(filePath, int(point.Row)+1, int(point.Column), "source contains a syntax error")
	}
	return tree, nil
}

// firstErrorPoint finds the start point of the first ERROR node in the
// tree, depth-first, for use in diagnostics. If no ERROR node lies on
// the path (HasError can also be triggered by a MISSING node), it
// returns the start point of the deepest node on that path whose
// subtree has an error.
func firstErrorPoint(node *sitter.Node) sitter.Point {
	if node.IsError() {
		return node.StartPoint()
	}
	for i := 0; i < int(node.ChildCount()); i++ {
		child := node.Child(i)
		if child.HasError() {
			return firstErrorPoint(child)
		}
	}
	return node.StartPoint()
}

// parses a single source buffer and returns its root node plus a
// Close func the caller must invoke once done with the tree.
func parseRoot(ctx context.Context, content []byte, filePath string) (*sitter.Node, func(), error) {
	tree, err := parseSource(ctx, content, filePath)
	if err != nil {
		return nil, func() {}, err
	}
	return tree.RootNode(), tree.Close, nil
}

// nodeText returns the exact source slice spanned by node.
func nodeText(node *sitter.Node, content []byte) string {
	return string(content[node.StartByte():node.EndByte()])
}

// dottedName reconstructs the full dotted module-path string for a
// node that is either a single `identifier`, or a left-recursive chain
// of `attribute` nodes terminating in an `identifier` (e.g. the parse
// shape of `a.b.c` or `dotted_name` productions holding `a`, `.`, `b`).
// Tree-sitter's Python grammar represents both import dotted names and
// attribute-access expressions this way, so one helper serves both
// the collector and the renamer.
func dottedName(node *sitter.Node, content []byte) string {
	if node == nil {
		return ""
	}
	switch node.Type() {
	case "dotted_name":
		return nodeText(node, content)
	case "identifier":
		return nodeText(node, content)
	case "attribute":
		base := node.ChildByFieldName("object")
		attr := node.ChildByFieldName("attribute")
		baseName := dottedName(base, content)
		if baseName == "" {
			return nodeText(attr, content)
		}
		return baseName + "." + nodeText(attr, content)
	default:
		return nodeText(node, content)
	}
}

// leftmostIdentifier walks to the leftmost `identifier` in a dotted
// name or attribute chain, e.g. "os" in "os.path.join" or "flask" in
// the dotted_name "flask.app".
func leftmostIdentifier(node *sitter.Node, content []byte) string {
	for node != nil {
		switch node.Type() {
		case "attribute":
			node = node.ChildByFieldName("object")
		case "dotted_name":
			if node.ChildCount() == 0 {
				return nodeText(node, content)
			}
			node = node.Child(0)
		default:
			return nodeText(node, content)
		}
	}
	return ""
}
