package matching

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// skillAliases maps common skill spellings to one canonical lower-case form.
var skillAliases = map[string]string{
	"golang":     "go",
	"go lang":    "go",
	"js":         "javascript",
	"ecmascript": "javascript",
	"ts":         "typescript",
	"k8s":        "kubernetes",
	"reactjs":    "react",
	"react.js":   "react",
	"vuejs":      "vue",
	"vue.js":     "vue",
	"nodejs":     "node.js",
	"node":       "node.js",
	"postgres":   "postgresql",
	"psql":       "postgresql",
	"py":         "python",
	"c sharp":    "c#",
	"csharp":     "c#",
}

// foldTerm lower-cases s, strips diacritics and collapses inner whitespace.
// A new transformer is built per call since transform chains carry state.
func foldTerm(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(t, s)
	if err != nil {
		folded = s
	}
	return strings.Join(strings.Fields(strings.ToLower(folded)), " ")
}

// NormalizeSkill returns the canonical comparison key of a skill name, or "" for blank input.
func NormalizeSkill(name string) string {
	key := foldTerm(name)
	if canonical, ok := skillAliases[key]; ok {
		return canonical
	}
	return key
}
