package extract

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	tree_sitter "github.com/tree-sitter/go-tree-sitter"

	"github.com/DeusData/react-analyzer/internal/lang"
	"github.com/DeusData/react-analyzer/internal/parser"
)

// ParseTestFile reads a test-pattern-matched file and counts its test and
// skipped-test declarations. Unregistered extensions contribute a line
// count only, matching the normal-parse fallback.
func ParseTestFile(path, root string) (*TestFile, error) {
	source, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return ParseTestSource(source, relPath(path, root))
}

// ParseTestSource parses test source bytes for a root-relative slash path.
func ParseTestSource(source []byte, rel string) (*TestFile, error) {
	ext := filepath.Ext(rel)
	key := strings.TrimSuffix(rel, ext)

	tf := &TestFile{
		Path:      key,
		Name:      displayName(key),
		LineCount: countLines(source),
	}

	language, ok := lang.LanguageForExtension(ext)
	if !ok {
		return tf, nil
	}
	spec := lang.ForLanguage(language)

	tree, err := parser.Parse(language, source)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", rel, err)
	}
	defer tree.Close()

	parser.Walk(tree.RootNode(), func(node *tree_sitter.Node) bool {
		if node.Kind() != "call_expression" {
			return true
		}
		fn := node.ChildByFieldName("function")
		if fn == nil {
			return true
		}
		switch fn.Kind() {
		case "identifier":
			if contains(spec.TestCallNames, parser.NodeText(fn, source)) {
				tf.TestCount++
			}
		case "member_expression":
			obj := fn.ChildByFieldName("object")
			prop := fn.ChildByFieldName("property")
			if obj == nil || prop == nil || obj.Kind() != "identifier" {
				return true
			}
			if contains(spec.TestCallNames, parser.NodeText(obj, source)) &&
				contains(spec.SkipProperties, parser.NodeText(prop, source)) {
				tf.SkippedTestCount++
			}
		}
		return true
	})
	return tf, nil
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
