package lang

func init() {
	Register(&LanguageSpec{
		Language:       JavaScript,
		FileExtensions: []string{".js", ".jsx", ".mjs", ".cjs"},
		TestCallNames:  []string{"test", "it"},
		SkipProperties: []string{"skip"},
	})
}
