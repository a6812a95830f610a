package matching

import (
	"strconv"
	"strings"
)

// experienceYears maps seniority labels to the years of experience they stand for.
var experienceYears = map[string]float64{
	"intern":       0,
	"internship":   0,
	"stage":        0,
	"entry":        1,
	"entry level":  1,
	"junior":       1,
	"debutant":     1,
	"mid":          3,
	"mid level":    3,
	"intermediate": 3,
	"confirme":     3,
	"senior":       5,
	"lead":         8,
	"staff":        8,
	"principal":    10,
	"expert":       10,
}

// RequiredYears resolves an experience requirement to years. It accepts seniority labels
// ("senior", "Mid-Level") and numeric forms ("3", "3+", "5 years", "2 ans").
func RequiredYears(level string) (float64, bool) {
	key := strings.ReplaceAll(foldTerm(level), "-", " ")
	if key == "" {
		return 0, false
	}
	if years, ok := experienceYears[key]; ok {
		return years, true
	}

	end := 0
	for end < len(key) && (key[end] == '.' || (key[end] >= '0' && key[end] <= '9')) {
		end++
	}
	if end == 0 {
		return 0, false
	}
	years, err := strconv.ParseFloat(key[:end], 64)
	if err != nil || years < 0 {
		return 0, false
	}
	return years, true
}

// candidateYears sums the durations of every experience entry. Negative durations are ignored.
func candidateYears(c *CandidateProfile) float64 {
	months := 0
	for _, e := range c.Experiences {
		if e.DurationMonths > 0 {
			months += e.DurationMonths
		}
	}
	return float64(months) / 12
}

// experienceScore compares total experience with the requirement. Meeting it yields 100; below it
// the score falls linearly to ExperienceFloor at zero years. An absent or unrecognised requirement
// is neutral.
func experienceScore(c *CandidateProfile, r *JobRequirement) (score, have, want float64, neutral bool) {
	years := candidateYears(c)
	have = round1(years)
	want, ok := RequiredYears(r.RequiredExperience)
	if !ok {
		return NeutralScore, have, 0, true
	}
	if want == 0 || years >= want {
		return 100, have, want, false
	}
	return round1(ExperienceFloor + (100-ExperienceFloor)*years/want), have, want, false
}
