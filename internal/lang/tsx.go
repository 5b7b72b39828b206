package lang

func init() {
	Register(&LanguageSpec{
		Language:       TSX,
		FileExtensions: []string{".tsx"},
		TestCallNames:  []string{"test", "it"},
		SkipProperties: []string{"skip"},
	})
}
