package discover

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/DeusData/react-analyzer/internal/lang"
)

// IGNORE_PATTERNS are directory names to skip during discovery.
var IGNORE_PATTERNS = map[string]bool{
	".cache": true, ".git": true, ".hg": true, ".idea": true,
	".next": true, ".nuxt": true, ".npm": true, ".nyc_output": true,
	".parcel-cache": true, ".pnpm-store": true, ".svn": true,
	".tmp": true, ".turbo": true, ".vs": true, ".vscode": true,
	".yarn": true, "bower_components": true, "build": true,
	"coverage": true, "dist": true, "node_modules": true, "out": true,
	"storybook-static": true, "temp": true, "tmp": true, "vendor": true,
}

// IGNORE_SUFFIXES are file suffixes to skip.
var IGNORE_SUFFIXES = map[string]bool{
	".tmp": true, "~": true, ".map": true, ".min.js": true,
	".d.ts": true, ".snap": true,
}

// FileInfo represents a discovered source file.
type FileInfo struct {
	Path     string        // absolute path
	RelPath  string        // relative to repo root, slash-separated
	Language lang.Language // detected language
}

// Result groups everything a scan of a project root turns up: the source
// files to parse, the test files to count, and the package.json and
// tsconfig.json files needed to interpret the imports.
type Result struct {
	Sources      []FileInfo
	Tests        []FileInfo
	PackageJSONs []string
	TSConfigs    []string
}

// Options configures file discovery. Pattern, Ignore and TestPattern are
// regular expressions matched against root-relative slash paths; an empty
// Pattern accepts every file with a registered extension, and an empty
// TestPattern falls back to the usual .test./.spec. naming convention.
type Options struct {
	Pattern     string
	Ignore      string
	TestPattern string
	IgnoreFile  string // path to .raignore file (optional)
}

const defaultTestPattern = `\.(cy|test|spec|unit)\.[cm]?[jt]sx?$`

// shouldSkipDir returns true if the directory should be skipped during discovery.
func shouldSkipDir(name, rel string, extraIgnore []string) bool {
	if IGNORE_PATTERNS[name] {
		return true
	}
	for _, pattern := range extraIgnore {
		if matched, _ := filepath.Match(pattern, name); matched {
			return true
		}
		if matched, _ := filepath.Match(pattern, rel); matched {
			return true
		}
	}
	return false
}

// Discover walks a project and returns its source files, test files and
// config files.
func Discover(ctx context.Context, root string, opts *Options) (*Result, error) {
	root, err := filepath.Abs(root)
	if err != nil {
		return nil, err
	}
	if opts == nil {
		opts = &Options{}
	}

	var include, ignore *regexp.Regexp
	if opts.Pattern != "" {
		if include, err = regexp.Compile(opts.Pattern); err != nil {
			return nil, fmt.Errorf("compiling file pattern: %w", err)
		}
	}
	if opts.Ignore != "" {
		if ignore, err = regexp.Compile(opts.Ignore); err != nil {
			return nil, fmt.Errorf("compiling ignore pattern: %w", err)
		}
	}
	testPattern := opts.TestPattern
	if testPattern == "" {
		testPattern = defaultTestPattern
	}
	test, err := regexp.Compile(testPattern)
	if err != nil {
		return nil, fmt.Errorf("compiling test pattern: %w", err)
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// Load .raignore patterns if present
	var extraIgnore []string
	if opts.IgnoreFile != "" {
		extraIgnore, _ = loadIgnoreFile(opts.IgnoreFile)
	} else {
		extraIgnore, _ = loadIgnoreFile(filepath.Join(root, ".raignore"))
	}

	result := &Result{}

	err = filepath.Walk(root, func(path string, info os.FileInfo, walkErr error) error {
		// Check context cancellation periodically during walk
		if err := ctx.Err(); err != nil {
			return err
		}

		if walkErr != nil {
			return filepath.SkipDir
		}

		rel, _ := filepath.Rel(root, path)
		rel = filepath.ToSlash(rel)

		if info.IsDir() {
			if shouldSkipDir(info.Name(), rel, extraIgnore) {
				return filepath.SkipDir
			}
			return nil
		}

		switch info.Name() {
		case "package.json":
			result.PackageJSONs = append(result.PackageJSONs, path)
			return nil
		case "tsconfig.json":
			result.TSConfigs = append(result.TSConfigs, path)
			return nil
		}

		for suffix := range IGNORE_SUFFIXES {
			if strings.HasSuffix(path, suffix) {
				return nil
			}
		}
		if ignore != nil && ignore.MatchString(rel) {
			return nil
		}

		ext := filepath.Ext(path)
		l, ok := lang.LanguageForExtension(ext)
		if include != nil {
			if !include.MatchString(rel) {
				return nil
			}
		} else if !ok {
			return nil
		}

		f := FileInfo{Path: path, RelPath: rel, Language: l}
		if test.MatchString(rel) {
			result.Tests = append(result.Tests, f)
		} else {
			result.Sources = append(result.Sources, f)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func loadIgnoreFile(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var patterns []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line != "" && !strings.HasPrefix(line, "#") {
			patterns = append(patterns, line)
		}
	}
	return patterns, scanner.Err()
}
