package lang

// Language identifies a source language handled by the analyzer.
type Language string

const (
	JavaScript Language = "javascript"
	TypeScript Language = "typescript"
	TSX        Language = "tsx"
	// Unknown is the fallback for extensions with no registered spec.
	// Unknown files contribute a line count only: no imports, no exports.
	Unknown Language = "unknown"
)

// AllLanguages returns the languages with a registered spec.
func AllLanguages() []Language {
	return []Language{JavaScript, TypeScript, TSX}
}

// LanguageSpec describes how files of a language are recognized and scanned.
type LanguageSpec struct {
	Language       Language
	FileExtensions []string

	// TestCallNames lists callee identifiers counted as test declarations
	// (e.g. test("...") / it("...")). A member call on one of these with a
	// property in SkipProperties counts as a skipped test instead.
	TestCallNames  []string
	SkipProperties []string
}

// registry maps file extensions to language specs.
var registry = map[string]*LanguageSpec{}

// Register adds a LanguageSpec to the global registry.
func Register(spec *LanguageSpec) {
	for _, ext := range spec.FileExtensions {
		registry[ext] = spec
	}
}

// ForExtension returns the LanguageSpec for a file extension (e.g. ".ts"),
// or nil if the extension is not registered.
func ForExtension(ext string) *LanguageSpec {
	return registry[ext]
}

// ForLanguage returns the LanguageSpec for a language.
func ForLanguage(l Language) *LanguageSpec {
	for _, spec := range registry {
		if spec.Language == l {
			return spec
		}
	}
	return nil
}

// LanguageForExtension returns the Language for a file extension.
// Unregistered extensions return (Unknown, false).
func LanguageForExtension(ext string) (Language, bool) {
	spec := registry[ext]
	if spec == nil {
		return Unknown, false
	}
	return spec.Language, true
}
