package options

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/javascript"
	"github.com/smacker/go-tree-sitter/typescript/tsx"
	"github.com/smacker/go-tree-sitter/typescript/typescript"
)

// ScriptLoader resolves the exported options object of a script entrypoint.
// The default implementation extracts options statically; callers embedding
// discovery into a bundler can substitute a loader that actually imports the
// module.
type ScriptLoader interface {
	Load(ctx context.Context, path string) (map[string]any, error)
}

// Wrapper functions whose first object argument is the entrypoint's options.
var defineFns = map[string]bool{
	"defineBackground":     true,
	"defineContentScript":  true,
	"defineUnlistedScript": true,
}

// StaticLoader extracts the options object from a JS/TS entrypoint without
// executing it. The file is parsed with tree-sitter; the first object
// literal passed to a define* wrapper (or exported as the default object)
// is decoded property by property, skipping non-literal members such as the
// main() function.
type StaticLoader struct {
	languages map[string]*sitter.Language
}

// NewStaticLoader creates a loader with JS, TS and TSX grammar support.
func NewStaticLoader() *StaticLoader {
	return &StaticLoader{
		languages: map[string]*sitter.Language{
			".js":  javascript.GetLanguage(),
			".jsx": javascript.GetLanguage(),
			".mjs": javascript.GetLanguage(),
			".ts":  typescript.GetLanguage(),
			".mts": typescript.GetLanguage(),
			".tsx": tsx.GetLanguage(),
		},
	}
}

// Load parses the script and returns its options object as a plain map.
// Scripts without a recognizable options object load as an empty map; that
// is not an error.
func (l *StaticLoader) Load(ctx context.Context, path string) (map[string]any, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	lang := l.languageFor(path)
	parser := sitter.NewParser()
	parser.SetLanguage(lang)

	tree, err := parser.ParseCtx(ctx, nil, content)
	if err != nil {
		return nil, fmt.Errorf("failed to parse script: %w", err)
	}
	defer tree.Close()

	objNode := findOptionsObject(tree.RootNode(), content)
	if objNode == nil {
		return map[string]any{}, nil
	}
	return decodeObjectNode(objNode, content)
}

func (l *StaticLoader) languageFor(path string) *sitter.Language {
	ext := strings.ToLower(filepath.Ext(path))
	if lang, ok := l.languages[ext]; ok {
		return lang
	}
	return javascript.GetLanguage()
}

// findOptionsObject locates the options object literal. A define* call wins
// over a bare exported object so files can mix both forms.
func findOptionsObject(root *sitter.Node, content []byte) *sitter.Node {
	if obj := findDefineCallObject(root, content); obj != nil {
		return obj
	}
	return findExportedObject(root)
}

func findDefineCallObject(n *sitter.Node, content []byte) *sitter.Node {
	if n.Type() == "call_expression" {
		fn := n.ChildByFieldName("function")
		args := n.ChildByFieldName("arguments")
		if fn != nil && args != nil && fn.Type() == "identifier" && defineFns[fn.Content(content)] {
			for i := 0; i < int(args.NamedChildCount()); i++ {
				if arg := args.NamedChild(i); arg.Type() == "object" {
					return arg
				}
			}
			// define* called with a function argument: valid, no options.
			return nil
		}
	}
	for i := 0; i < int(n.NamedChildCount()); i++ {
		if obj := findDefineCallObject(n.NamedChild(i), content); obj != nil {
			return obj
		}
	}
	return nil
}

func findExportedObject(n *sitter.Node) *sitter.Node {
	if n.Type() == "export_statement" {
		for i := 0; i < int(n.NamedChildCount()); i++ {
			if child := n.NamedChild(i); child.Type() == "object" {
				return child
			}
		}
		return nil
	}
	for i := 0; i < int(n.NamedChildCount()); i++ {
		if obj := findExportedObject(n.NamedChild(i)); obj != nil {
			return obj
		}
	}
	return nil
}

// Node types whose source text is a valid input to the literal parser.
var literalNodeTypes = map[string]bool{
	"string": true, "number": true, "true": true, "false": true,
	"null": true, "array": true, "object": true, "unary_expression": true,
}

// decodeObjectNode turns an object literal node into a map, keeping only
// members with literal values. Methods and computed members are ignored;
// those belong to runtime behavior, not to manifest options.
func decodeObjectNode(obj *sitter.Node, content []byte) (map[string]any, error) {
	out := make(map[string]any)
	for i := 0; i < int(obj.NamedChildCount()); i++ {
		pair := obj.NamedChild(i)
		if pair.Type() != "pair" {
			continue
		}
		keyNode := pair.ChildByFieldName("key")
		valueNode := pair.ChildByFieldName("value")
		if keyNode == nil || valueNode == nil || !literalNodeTypes[valueNode.Type()] {
			continue
		}

		key, err := decodePairKey(keyNode, content)
		if err != nil {
			return nil, err
		}
		value, err := ParseLiteral(valueNode.Content(content))
		if err != nil {
			return nil, fmt.Errorf("option %q: %w", key, err)
		}
		out[key] = value
	}
	return out, nil
}

func decodePairKey(keyNode *sitter.Node, content []byte) (string, error) {
	switch keyNode.Type() {
	case "property_identifier":
		return keyNode.Content(content), nil
	case "string":
		v, err := ParseLiteral(keyNode.Content(content))
		if err != nil {
			return "", err
		}
		s, ok := v.(string)
		if !ok {
			return "", fmt.Errorf("unsupported object key %q", keyNode.Content(content))
		}
		return s, nil
	default:
		return "", fmt.Errorf("unsupported object key type %q", keyNode.Type())
	}
}

var _ ScriptLoader = (*StaticLoader)(nil)
