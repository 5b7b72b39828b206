package jsconfig

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// CompilerOptions is the subset of tsconfig compilerOptions the analyzer
// reads: the alias table and its optional base directory.
type CompilerOptions struct {
	BaseURL string              `json:"baseUrl"`
	Paths   map[string][]string `json:"paths"`
}

// TypeScriptConfig is one parsed tsconfig.json. The directory of FilePath
// defines the config's scope for closest-enclosing-config queries.
type TypeScriptConfig struct {
	CompilerOptions *CompilerOptions `json:"compilerOptions"`

	// FilePath is the root-relative slash path of the config file.
	FilePath string `json:"-"`
}

// Aliases returns the configured path alias table, or nil.
func (c *TypeScriptConfig) Aliases() map[string][]string {
	if c == nil || c.CompilerOptions == nil {
		return nil
	}
	return c.CompilerOptions.Paths
}

// BaseURL returns the configured baseUrl, or "".
func (c *TypeScriptConfig) BaseURL() string {
	if c == nil || c.CompilerOptions == nil {
		return ""
	}
	return c.CompilerOptions.BaseURL
}

// Dir returns the config's root-relative directory ("" for the scan root).
func (c *TypeScriptConfig) Dir() string {
	dir := filepath.ToSlash(filepath.Dir(c.FilePath))
	if dir == "." {
		return ""
	}
	return dir
}

// LoadTSConfigs parses the given tsconfig.json files. tsconfig files are
// commonly JSONC (comments, trailing commas), so the input is cleaned
// before decoding. Unreadable or malformed files are skipped and reported
// as errors; the load continues.
func LoadTSConfigs(paths []string, root string) ([]TypeScriptConfig, []error) {
	var result []TypeScriptConfig
	var errs []error
	for _, p := range paths {
		data, err := os.ReadFile(p)
		if err != nil {
			errs = append(errs, fmt.Errorf("read %s: %w", p, err))
			continue
		}
		var cfg TypeScriptConfig
		if err := json.Unmarshal(StripJSONC(data), &cfg); err != nil {
			errs = append(errs, fmt.Errorf("parse %s: %w", p, err))
			continue
		}
		cfg.FilePath = relPath(p, root)
		result = append(result, cfg)
	}
	return result, errs
}

func relPath(path, root string) string {
	rel, err := filepath.Rel(root, path)
	if err != nil {
		rel = path
	}
	return filepath.ToSlash(rel)
}
