package matching

import (
	"slices"
	"strings"
	"unicode"
)

// contractAliases folds local contract names onto one vocabulary.
var contractAliases = map[string]string{
	"cdi":         "permanent",
	"full time":   "permanent",
	"cdd":         "fixed term",
	"temporary":   "fixed term",
	"contractor":  "freelance",
	"contract":    "freelance",
	"stage":       "internship",
	"intern":      "internship",
	"alternance":  "apprenticeship",
	"work study":  "apprenticeship",
	"apprentice":  "apprenticeship",
	"independant": "freelance",
}

func foldPlace(s string) string {
	return strings.Join(strings.Fields(strings.ReplaceAll(foldTerm(s), "-", " ")), " ")
}

func foldContract(s string) string {
	key := foldPlace(s)
	if alias, ok := contractAliases[key]; ok {
		return alias
	}
	return key
}

// candidateLocation is the declared location, else the first experience location on record.
func candidateLocation(c *CandidateProfile) string {
	if loc := strings.TrimSpace(c.Location); loc != "" {
		return loc
	}
	for _, e := range c.Experiences {
		if loc := strings.TrimSpace(e.Location); loc != "" {
			return loc
		}
	}
	return ""
}

// locationCompatible reports whether the offer location is acceptable for the candidate.
// Remote offers, offers without a location and candidates with an unknown location are never
// penalised. Otherwise the places match when the words of one appear as a contiguous run in the
// other ("Paris" and "Paris, France") or when their leading comma-separated parts agree.
// Partial words never match, so "Nice" is not "Venice".
func locationCompatible(c *CandidateProfile, r *JobRequirement) bool {
	if r.RemoteAllowed {
		return true
	}
	want := foldPlace(r.Location)
	have := foldPlace(candidateLocation(c))
	if want == "" || have == "" {
		return true
	}
	wantWords, haveWords := placeWords(want), placeWords(have)
	if containsRun(haveWords, wantWords) || containsRun(wantWords, haveWords) {
		return true
	}
	return leadingPart(want) == leadingPart(have)
}

func placeWords(place string) []string {
	return strings.FieldsFunc(place, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
}

// containsRun reports whether sub appears in words as consecutive whole words.
func containsRun(words, sub []string) bool {
	if len(sub) == 0 || len(sub) > len(words) {
		return false
	}
	for i := 0; i+len(sub) <= len(words); i++ {
		if slices.Equal(words[i:i+len(sub)], sub) {
			return true
		}
	}
	return false
}

func leadingPart(place string) string {
	head, _, _ := strings.Cut(place, ",")
	return strings.TrimSpace(head)
}

// contractCompatible reports whether the offer's contract type is among the candidate's
// preferences. No preference or no contract type is compatible.
func contractCompatible(c *CandidateProfile, r *JobRequirement) bool {
	want := foldContract(r.ContractType)
	if want == "" {
		return true
	}
	stated := false
	for _, pref := range c.ContractPreferences {
		p := foldContract(pref)
		if p == "" {
			continue
		}
		stated = true
		if p == want {
			return true
		}
	}
	return !stated
}
