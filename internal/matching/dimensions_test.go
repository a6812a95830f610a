package matching

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeSkill(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"Go", "go"},
		{"  Golang ", "go"},
		{"JS", "javascript"},
		{"React.js", "react"},
		{"Node", "node.js"},
		{"Machine   Learning", "machine learning"},
		{"Économétrie", "econometrie"},
		{"", ""},
		{"   ", ""},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeSkill(tt.in))
		})
	}
}

func TestSkillsScore_DuplicateRequirementsCountOnce(t *testing.T) {
	c := &CandidateProfile{Skills: []Skill{{Name: "Go"}}}
	r := &JobRequirement{RequiredSkills: []string{"Go", "golang", "GO", "Rust"}}

	score, matched, missing, neutral := skillsScore(c, r)

	assert.False(t, neutral)
	assert.Equal(t, 50.0, score)
	assert.Equal(t, []string{"Go"}, matched)
	assert.Equal(t, []string{"Rust"}, missing)
}

func TestSkillsScore_BlankRequirementsAreNeutral(t *testing.T) {
	score, matched, missing, neutral := skillsScore(&CandidateProfile{}, &JobRequirement{RequiredSkills: []string{" ", ""}})

	assert.True(t, neutral)
	assert.Equal(t, NeutralScore, score)
	assert.Empty(t, matched)
	assert.Empty(t, missing)
}

func TestRequiredYears(t *testing.T) {
	tests := []struct {
		in     string
		want   float64
		wantOK bool
	}{
		{"senior", 5, true},
		{"Senior", 5, true},
		{"Mid-Level", 3, true},
		{"junior", 1, true},
		{"Confirmé", 3, true},
		{"intern", 0, true},
		{"3", 3, true},
		{"3+", 3, true},
		{"5 years", 5, true},
		{"2 ans", 2, true},
		{"1.5", 1.5, true},
		{"", 0, false},
		{"wizard", 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := RequiredYears(tt.in)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestExperienceScore_LinearBelowRequirement(t *testing.T) {
	c := &CandidateProfile{Experiences: []Experience{{DurationMonths: 30}}}

	score, have, want, neutral := experienceScore(c, &JobRequirement{RequiredExperience: "senior"})

	assert.False(t, neutral)
	assert.Equal(t, 2.5, have)
	assert.Equal(t, 5.0, want)
	// halfway between the floor and full credit
	assert.Equal(t, 60.0, score)
}

func TestExperienceScore_UnknownLevelIsNeutral(t *testing.T) {
	score, _, _, neutral := experienceScore(&CandidateProfile{}, &JobRequirement{RequiredExperience: "rockstar"})

	assert.True(t, neutral)
	assert.Equal(t, NeutralScore, score)
}

func TestExperienceScore_InternNeedsNothing(t *testing.T) {
	score, _, _, neutral := experienceScore(&CandidateProfile{}, &JobRequirement{RequiredExperience: "internship"})

	assert.False(t, neutral)
	assert.Equal(t, 100.0, score)
}

func TestEducationRank(t *testing.T) {
	tests := []struct {
		in     string
		want   int
		wantOK bool
	}{
		{"Bachelor", 3, true},
		{"bachelor's degree", 3, true},
		{"Master's Degree", 4, true},
		{"Bac+5", 4, true},
		{"Ph.D.", 5, true},
		{"high_school", 1, true},
		{"Ingénieur", 4, true},
		{"none", 0, true},
		{"Master of Science", 4, true},
		{"Bachelor of Arts in History", 3, true},
		{"Doctor of Philosophy", 5, true},
		{"High School Diploma", 1, true},
		{"", 0, false},
		{"astronaut", 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := EducationRank(tt.in)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestEducationScore_Tiers(t *testing.T) {
	tests := []struct {
		name      string
		candidate []Education
		required  string
		want      float64
	}{
		{"meets", []Education{{Level: "master"}}, "master", 100},
		{"exceeds", []Education{{Level: "phd"}}, "bachelor", 100},
		{"one below", []Education{{Level: "bachelor"}}, "master", EducationOneLevelBelow},
		{"two below", []Education{{Level: "associate"}}, "master", EducationTwoLevelsBelow},
		{"far below", []Education{{Level: "high school"}}, "doctorate", EducationFloor},
		{"highest entry wins", []Education{{Level: "bachelor"}, {Level: "master"}, {Level: "bac"}}, "master", 100},
		{"no requirement", nil, "", NeutralScore},
		{"none required", nil, "none", 100},
		{"spelled out degree", []Education{{Level: "Master of Science"}}, "bachelor", 100},
		{"no education against high school", nil, "high school", EducationFloor},
		{"no education against associate", nil, "associate", EducationFloor},
		{"only unrecognised entries", []Education{{Level: "astronaut"}}, "associate", EducationFloor},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			score, _, _ := educationScore(&CandidateProfile{Education: tt.candidate}, &JobRequirement{RequiredEducation: tt.required})
			assert.Equal(t, tt.want, score)
		})
	}
}

func TestLocationCompatible(t *testing.T) {
	tests := []struct {
		name     string
		have     string
		expLoc   string
		want     string
		remote   bool
		expected bool
	}{
		{"remote", "Lyon", "", "Paris", true, true},
		{"unknown candidate", "", "", "Paris", false, true},
		{"no offer location", "Lyon", "", "", false, true},
		{"exact", "Paris", "", "paris", false, true},
		{"contains", "Paris, France", "", "Paris", false, true},
		{"accents and hyphens", "Île-de-France", "", "ile de france", false, true},
		{"leading part", "Paris, FR", "", "Paris, France", false, true},
		{"experience fallback", "", "Lyon", "Paris", false, false},
		{"mismatch", "Lyon", "", "Paris", false, false},
		{"partial word suffix", "Venice", "", "Nice", false, false},
		{"partial word prefix", "Romeo", "", "Rome", false, false},
		{"longer word", "Parisot", "", "Paris", false, false},
		{"offer is more precise", "Lyon", "", "Lyon 3e, France", false, true},
		{"multi word run", "Saint-Denis, France", "", "saint denis", false, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := &CandidateProfile{Location: tt.have}
			if tt.expLoc != "" {
				c.Experiences = []Experience{{Location: tt.expLoc}}
			}
			r := &JobRequirement{Location: tt.want, RemoteAllowed: tt.remote}
			assert.Equal(t, tt.expected, locationCompatible(c, r))
		})
	}
}

func TestContractCompatible(t *testing.T) {
	tests := []struct {
		name     string
		prefs    []string
		contract string
		expected bool
	}{
		{"no contract", []string{"freelance"}, "", true},
		{"no preferences", nil, "CDI", true},
		{"alias", []string{"permanent"}, "CDI", true},
		{"one of many", []string{"internship", "freelance"}, "contractor", true},
		{"mismatch", []string{"freelance"}, "CDD", false},
		{"blank preferences ignored", []string{" "}, "CDD", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := &CandidateProfile{ContractPreferences: tt.prefs}
			assert.Equal(t, tt.expected, contractCompatible(c, &JobRequirement{ContractType: tt.contract}))
		})
	}
}
