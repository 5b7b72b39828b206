package jsconfig

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
)

// PackageJSON holds the declared dependency maps of one package.json file.
// Version strings are kept but never inspected; only the keys matter.
type PackageJSON struct {
	Dependencies     map[string]string `json:"dependencies"`
	DevDependencies  map[string]string `json:"devDependencies"`
	PeerDependencies map[string]string `json:"peerDependencies"`

	// FilePath is the root-relative slash path of the config file.
	FilePath string `json:"-"`
}

// LoadPackageJSONs parses the given package.json files. Unreadable or
// malformed files are skipped and reported as errors; the load continues.
func LoadPackageJSONs(paths []string, root string) ([]PackageJSON, []error) {
	var result []PackageJSON
	var errs []error
	for _, p := range paths {
		data, err := os.ReadFile(p)
		if err != nil {
			errs = append(errs, fmt.Errorf("read %s: %w", p, err))
			continue
		}
		var pkg PackageJSON
		if err := json.Unmarshal(data, &pkg); err != nil {
			errs = append(errs, fmt.Errorf("parse %s: %w", p, err))
			continue
		}
		pkg.FilePath = relPath(p, root)
		result = append(result, pkg)
	}
	return result, errs
}

// ListDependencies returns the union of all declared dependency names
// (dependencies, devDependencies, peerDependencies), sorted.
func ListDependencies(pkgs []PackageJSON) []string {
	set := make(map[string]bool)
	for _, pkg := range pkgs {
		for name := range pkg.Dependencies {
			set[name] = true
		}
		for name := range pkg.DevDependencies {
			set[name] = true
		}
		for name := range pkg.PeerDependencies {
			set[name] = true
		}
	}
	names := make([]string, 0, len(set))
	for name := range set {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
