package extract

// Import records one import statement found in a source file.
type Import struct {
	// Source is the raw specifier as written: relative path, alias, or
	// bare package name.
	Source string
	// FilePath is the canonical key of the importing file, needed to
	// resolve relative specifiers.
	FilePath  string
	Named     []string
	IsDefault bool
	Line      int
}

// Export records a local export or a re-export clause of a file.
// A non-empty Source marks a re-export-from clause.
type Export struct {
	FilePath string
	Named    []string
	Default  string
	Source   string
	Line     int
}

// ParsedFile is the extraction result for one source file. It is produced
// once, is immutable afterward, and is consumed only by the graph builder.
type ParsedFile struct {
	// Path is the canonical key: root-relative, slash-separated, with the
	// extension stripped (src/a.ts -> src/a).
	Path string
	// Name is the display name. Index files take the parent directory name,
	// so Component/index.tsx displays as Component.
	Name      string
	Extension string // without the leading dot
	LineCount int
	Hash      string // xxh3 of the source bytes
	Imports   []Import
	Exports   []Export
}

// TestFile is the extraction result for a test-pattern-matched file.
type TestFile struct {
	Path             string
	Name             string
	LineCount        int
	TestCount        int
	SkippedTestCount int
}
