package graph

import (
	"strings"

	"github.com/DeusData/react-analyzer/internal/extract"
	"github.com/DeusData/react-analyzer/internal/jsconfig"
)

// CrossReference counts how often each declared package dependency is
// actually imported. Every declared name is seeded at zero; for each bare
// import, path segments are accumulated until the first declared-name
// match (so lodash/debounce counts toward lodash and @scope/pkg/sub
// toward @scope/pkg).
func CrossReference(files []extract.ParsedFile, pkgs []jsconfig.PackageJSON) map[string]int {
	usage := make(map[string]int)
	for _, name := range jsconfig.ListDependencies(pkgs) {
		usage[name] = 0
	}

	for i := range files {
		for _, imp := range files[i].Imports {
			if strings.HasPrefix(imp.Source, ".") {
				continue
			}
			var prefix strings.Builder
			for _, seg := range strings.Split(imp.Source, "/") {
				if prefix.Len() > 0 {
					prefix.WriteByte('/')
				}
				prefix.WriteString(seg)
				if _, ok := usage[prefix.String()]; ok {
					usage[prefix.String()]++
					break
				}
			}
		}
	}
	return usage
}
