package lang

func init() {
	Register(&LanguageSpec{
		Language:       TypeScript,
		FileExtensions: []string{".ts"},
		TestCallNames:  []string{"test", "it"},
		SkipProperties: []string{"skip"},
	})
}
