package review

import "strings"

// languageComplexity scales the expected-review-time estimate per language.
// Used only for the expected-time target, not the minimum-time floor.
var languageComplexity = map[string]float64{
	"rust":       2.0,
	"cpp":        1.8,
	"c":          1.7,
	"scala":      1.7,
	"java":       1.6,
	"typescript": 1.5,
	"javascript": 1.5,
	"csharp":     1.5,
	"swift":      1.4,
	"kotlin":     1.4,
	"python":     1.4,
	"go":         1.4,
	"ruby":       1.3,
	"php":        1.2,
}

// defaultComplexity applies to languages not in the table.
const defaultComplexity = 1.0

// complexLanguages is the narrower set used by the minimum-review-time floor,
// which applies a flat multiplier instead of the graduated table above. The
// two tables serve different purposes (a floor versus a target) and are kept
// distinct on purpose.
var complexLanguages = map[string]struct{}{
	"typescript": {},
	"javascript": {},
	"python":     {},
	"java":       {},
	"cpp":        {},
	"rust":       {},
}

// complexLanguageMultiplier is the flat floor multiplier for complexLanguages.
const complexLanguageMultiplier = 1.5

// complexityFactorFor returns the graduated multiplier for a language.
func complexityFactorFor(language string) float64 {
	if f, ok := languageComplexity[strings.ToLower(language)]; ok {
		return f
	}
	return defaultComplexity
}

// isComplexLanguage reports membership in the floor set.
func isComplexLanguage(language string) bool {
	_, ok := complexLanguages[strings.ToLower(language)]
	return ok
}
