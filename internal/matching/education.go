package matching

import "strings"

// educationRank orders education levels. Higher is more advanced.
var educationRank = map[string]int{
	"none":          0,
	"no degree":     0,
	"high school":   1,
	"highschool":    1,
	"secondary":     1,
	"bac":           1,
	"baccalaureat":  1,
	"associate":     2,
	"vocational":    2,
	"bts":           2,
	"dut":           2,
	"bac+2":         2,
	"bachelor":      3,
	"bachelors":     3,
	"undergraduate": 3,
	"licence":       3,
	"bac+3":         3,
	"master":        4,
	"masters":       4,
	"msc":           4,
	"mba":           4,
	"postgraduate":  4,
	"engineer":      4,
	"ingenieur":     4,
	"bac+5":         4,
	"doctorate":     5,
	"doctoral":      5,
	"doctorat":      5,
	"doctor":        5,
	"phd":           5,
	"bac+8":         5,
}

// EducationRank resolves an education label to its ordinal rank. Labels such as
// "Master of Science" or "High School Diploma" resolve through their longest known leading words.
func EducationRank(level string) (int, bool) {
	key := foldTerm(level)
	key = strings.NewReplacer("_", " ", "-", " ", ".", "", "'", "", "’", "").Replace(key)
	key = strings.TrimSuffix(key, " degree")
	key = strings.Join(strings.Fields(key), " ")
	if key == "" {
		return 0, false
	}
	if rank, ok := educationRank[key]; ok {
		return rank, true
	}
	words := strings.Fields(key)
	for n := len(words) - 1; n > 0; n-- {
		if rank, ok := educationRank[strings.Join(words[:n], " ")]; ok {
			return rank, true
		}
	}
	return 0, false
}

// highestEducation returns the highest recognised education entry of the candidate.
func highestEducation(c *CandidateProfile) (rank int, label string) {
	for _, e := range c.Education {
		if r, ok := EducationRank(e.Level); ok && (label == "" || r > rank) {
			rank, label = r, e.Level
		}
	}
	return rank, label
}

// educationScore compares the candidate's highest education with the requirement in discrete
// tiers. An absent or unrecognised requirement is neutral. A candidate without any recognised
// entry gets the floor against any requirement above "none".
func educationScore(c *CandidateProfile, r *JobRequirement) (score float64, have string, neutral bool) {
	haveRank, have := highestEducation(c)
	wantRank, ok := EducationRank(r.RequiredEducation)
	if !ok {
		return NeutralScore, have, true
	}
	if have == "" && wantRank > 0 {
		return EducationFloor, have, false
	}

	switch gap := wantRank - haveRank; {
	case gap <= 0:
		return 100, have, false
	case gap == 1:
		return EducationOneLevelBelow, have, false
	case gap == 2:
		return EducationTwoLevelsBelow, have, false
	default:
		return EducationFloor, have, false
	}
}
