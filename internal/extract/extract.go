package extract

import (
	"bytes"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	tree_sitter "github.com/tree-sitter/go-tree-sitter"
	"github.com/zeebo/xxh3"

	"github.com/DeusData/react-analyzer/internal/lang"
	"github.com/DeusData/react-analyzer/internal/parser"
)

// ParseFile reads and parses one source file. The returned ParsedFile is
// keyed by the root-relative, extension-stripped canonical path.
// Unregistered extensions are not an error: the file contributes its line
// count only.
func ParseFile(path, root string) (*ParsedFile, error) {
	source, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return ParseSource(source, relPath(path, root))
}

// ParseSource parses source bytes for a file at the given root-relative
// slash path (extension still attached).
func ParseSource(source []byte, rel string) (*ParsedFile, error) {
	ext := filepath.Ext(rel)
	key := strings.TrimSuffix(rel, ext)

	pf := &ParsedFile{
		Path:      key,
		Name:      displayName(key),
		Extension: strings.TrimPrefix(ext, "."),
		LineCount: countLines(source),
		Hash:      hashSource(source),
	}

	language, ok := lang.LanguageForExtension(ext)
	if !ok {
		// Unknown language: line count only.
		return pf, nil
	}

	tree, err := parser.Parse(language, source)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", rel, err)
	}
	defer tree.Close()

	parser.Walk(tree.RootNode(), func(node *tree_sitter.Node) bool {
		switch node.Kind() {
		case "import_statement":
			if imp := parseImport(node, source, key); imp != nil {
				pf.Imports = append(pf.Imports, *imp)
			}
			return false
		case "export_statement":
			if exp := parseExport(node, source, key); exp != nil {
				pf.Exports = append(pf.Exports, *exp)
			}
			return false
		}
		return true
	})
	return pf, nil
}

// parseImport extracts one import statement.
// Namespace imports (import * as ns) are recorded as a default binding,
// side-effect imports (import 'x') carry no bindings at all.
func parseImport(node *tree_sitter.Node, source []byte, fileKey string) *Import {
	srcNode := node.ChildByFieldName("source")
	if srcNode == nil {
		return nil
	}
	imp := &Import{
		Source:   stringContent(srcNode, source),
		FilePath: fileKey,
		Line:     int(node.StartPosition().Row) + 1,
	}
	if imp.Source == "" {
		return nil
	}

	for i := uint(0); i < node.ChildCount(); i++ {
		clause := node.Child(i)
		if clause == nil || clause.Kind() != "import_clause" {
			continue
		}
		for j := uint(0); j < clause.ChildCount(); j++ {
			child := clause.Child(j)
			if child == nil {
				continue
			}
			switch child.Kind() {
			case "identifier":
				imp.IsDefault = true
			case "namespace_import":
				imp.IsDefault = true
			case "named_imports":
				for k := uint(0); k < child.ChildCount(); k++ {
					spec := child.Child(k)
					if spec == nil || spec.Kind() != "import_specifier" {
						continue
					}
					if name := spec.ChildByFieldName("name"); name != nil {
						imp.Named = append(imp.Named, parser.NodeText(name, source))
					}
				}
			}
		}
	}
	return imp
}

// parseExport extracts one export statement: named exports, default
// exports, exported declarations, and re-export-from clauses.
func parseExport(node *tree_sitter.Node, source []byte, fileKey string) *Export {
	exp := &Export{
		FilePath: fileKey,
		Line:     int(node.StartPosition().Row) + 1,
	}

	if srcNode := node.ChildByFieldName("source"); srcNode != nil {
		exp.Source = stringContent(srcNode, source)
	}

	hasDefault := false
	for i := uint(0); i < node.ChildCount(); i++ {
		child := node.Child(i)
		if child == nil {
			continue
		}
		switch child.Kind() {
		case "default":
			hasDefault = true
		case "export_clause":
			for j := uint(0); j < child.ChildCount(); j++ {
				spec := child.Child(j)
				if spec == nil || spec.Kind() != "export_specifier" {
					continue
				}
				if name := spec.ChildByFieldName("name"); name != nil {
					exp.Named = append(exp.Named, parser.NodeText(name, source))
				}
			}
		case "*":
			// export * from './mod'
			exp.Named = append(exp.Named, "*")
		}
	}

	if decl := node.ChildByFieldName("declaration"); decl != nil {
		names := declaredNames(decl, source)
		if hasDefault {
			if len(names) > 0 {
				exp.Default = names[0]
			}
		} else {
			exp.Named = append(exp.Named, names...)
		}
	} else if hasDefault {
		if value := node.ChildByFieldName("value"); value != nil {
			exp.Default = parser.NodeText(value, source)
		}
	}

	if len(exp.Named) == 0 && exp.Default == "" && exp.Source == "" {
		return nil
	}
	return exp
}

// declaredNames collects the bound names of an exported declaration.
func declaredNames(decl *tree_sitter.Node, source []byte) []string {
	switch decl.Kind() {
	case "function_declaration", "generator_function_declaration",
		"class_declaration", "abstract_class_declaration",
		"interface_declaration", "type_alias_declaration", "enum_declaration":
		if name := decl.ChildByFieldName("name"); name != nil {
			return []string{parser.NodeText(name, source)}
		}
	case "lexical_declaration", "variable_declaration":
		var names []string
		for i := uint(0); i < decl.ChildCount(); i++ {
			child := decl.Child(i)
			if child == nil || child.Kind() != "variable_declarator" {
				continue
			}
			if name := child.ChildByFieldName("name"); name != nil {
				names = append(names, parser.NodeText(name, source))
			}
		}
		return names
	}
	return nil
}

// stringContent returns the text of a string literal without quotes.
func stringContent(node *tree_sitter.Node, source []byte) string {
	for i := uint(0); i < node.ChildCount(); i++ {
		child := node.Child(i)
		if child != nil && child.Kind() == "string_fragment" {
			return parser.NodeText(child, source)
		}
	}
	text := parser.NodeText(node, source)
	if len(text) >= 2 {
		return text[1 : len(text)-1]
	}
	return text
}

// displayName derives the display name from a canonical key. Index files
// take the parent directory name.
func displayName(key string) string {
	name := key
	if i := strings.LastIndexByte(key, '/'); i >= 0 {
		name = key[i+1:]
	}
	if name == "index" {
		parent := strings.TrimSuffix(key, "index")
		parent = strings.TrimSuffix(parent, "/")
		if j := strings.LastIndexByte(parent, '/'); j >= 0 {
			parent = parent[j+1:]
		}
		if parent != "" {
			return parent
		}
	}
	return name
}

// relPath converts an absolute file path to a root-relative slash path.
func relPath(path, root string) string {
	rel, err := filepath.Rel(root, path)
	if err != nil {
		rel = path
	}
	return filepath.ToSlash(rel)
}

func countLines(source []byte) int {
	if len(source) == 0 {
		return 0
	}
	n := bytes.Count(source, []byte{'\n'})
	if source[len(source)-1] != '\n' {
		n++
	}
	return n
}

func hashSource(source []byte) string {
	h := xxh3.New()
	_, _ = h.Write(source)
	return hex.EncodeToString(h.Sum(nil))
}
