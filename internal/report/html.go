package report

import (
	"fmt"
	"html/template"
	"os"
	"path/filepath"

	"github.com/DeusData/react-analyzer/internal/graph"
)

// filePageTemplate renders one page per exporting file: what it exports
// and who imports each binding.
var filePageTemplate = template.Must(template.New("file").Parse(`<!DOCTYPE html>
<html>
<head>
  <meta charset="utf-8">
  <title>{{.FileName}}</title>
</head>
<body>
  <h1>{{.FileName}}</h1>
  <table>
    <thead>
      <tr><th>Export</th><th>Imported by</th><th>Default</th></tr>
    </thead>
    <tbody>
    {{- range .Exports}}
      <tr><td>{{.Name}}</td><td>{{.Target}}</td><td>{{if .IsDefault}}yes{{else}}no{{end}}</td></tr>
    {{- end}}
    </tbody>
  </table>
</body>
</html>
`))

type filePage struct {
	FileName string
	Exports  []graph.Export
}

// WritePages renders one HTML page per FileExports entry under dir,
// mirroring each source's canonical path (src/App becomes
// dir/src/App.html).
func WritePages(dir string, exports []graph.FileExports) error {
	for _, fe := range exports {
		path := filepath.Join(dir, filepath.FromSlash(fe.Source)+".html")
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return fmt.Errorf("creating page directory: %w", err)
		}
		f, err := os.Create(path)
		if err != nil {
			return fmt.Errorf("creating page %s: %w", path, err)
		}
		err = filePageTemplate.Execute(f, filePage{FileName: fe.Source, Exports: fe.Exports})
		if cerr := f.Close(); err == nil {
			err = cerr
		}
		if err != nil {
			return fmt.Errorf("rendering page %s: %w", path, err)
		}
	}
	return nil
}
