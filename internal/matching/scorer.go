package matching

import (
	"fmt"
	"math"
)

// Score computes the compatibility of a candidate with a job requirement. It fails only when
// either argument is nil; missing or empty sub-fields contribute a neutral or floor score for
// their dimension.
func Score(c *CandidateProfile, r *JobRequirement) (*MatchResult, error) {
	if c == nil {
		return nil, fmt.Errorf("%w: candidate profile is nil", ErrInvalidInput)
	}
	if r == nil {
		return nil, fmt.Errorf("%w: job requirement is nil", ErrInvalidInput)
	}

	var neutral []string

	skills, matched, missing, skillsNeutral := skillsScore(c, r)
	if skillsNeutral {
		neutral = append(neutral, "skills")
	}
	experience, have, want, expNeutral := experienceScore(c, r)
	if expNeutral {
		neutral = append(neutral, "experience")
	}
	education, eduLabel, eduNeutral := educationScore(c, r)
	if eduNeutral {
		neutral = append(neutral, "education")
	}

	penalty := 0
	locationOK := locationCompatible(c, r)
	if !locationOK {
		penalty += LocationPenalty
	}
	contractOK := contractCompatible(c, r)
	if !contractOK {
		penalty += ContractPenalty
	}

	weighted := skills*SkillsWeight + experience*ExperienceWeight + education*EducationWeight

	return &MatchResult{
		MatchScore:      clampScore(weighted - float64(penalty)),
		SkillsMatch:     skills,
		ExperienceMatch: experience,
		EducationMatch:  education,
		Details: Details{
			MatchedSkills:      matched,
			MissingSkills:      missing,
			CandidateYears:     have,
			RequiredYears:      want,
			CandidateEducation: eduLabel,
			RequiredEducation:  r.RequiredEducation,
			LocationCompatible: locationOK,
			ContractCompatible: contractOK,
			Penalty:            penalty,
			Certifications:     len(c.Certifications),
			Badges:             len(c.Badges),
			AverageTestScore:   averageTestScore(c.TestResults),
			NeutralDimensions:  neutral,
		},
	}, nil
}

func clampScore(v float64) int {
	if math.IsNaN(v) || v <= 0 {
		return 0
	}
	rounded := int(math.Round(v))
	if rounded > MaxScore {
		return MaxScore
	}
	return rounded
}

func averageTestScore(results []TestResult) *float64 {
	if len(results) == 0 {
		return nil
	}
	sum := 0.0
	for _, t := range results {
		sum += t.Score
	}
	avg := round1(sum / float64(len(results)))
	return &avg
}
