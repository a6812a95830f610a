package matching

// Weights of each sub-score in the final match score. They sum to 1.
const (
	SkillsWeight     = 0.5
	ExperienceWeight = 0.3
	EducationWeight  = 0.2
)

// Score points subtracted from the weighted sum when the offer's location or contract type is
// incompatible with the candidate.
const (
	LocationPenalty = 10
	ContractPenalty = 5
)

// NeutralScore is the sub-score of a dimension the offer places no requirement on.
const NeutralScore = 100.0

// ExperienceFloor is the experience sub-score of a candidate with no experience at all against a
// non-empty requirement. Partial experience degrades linearly from 100 down to this floor.
const ExperienceFloor = 20.0

// Education sub-scores by how many ordinal levels the candidate is below the requirement.
const (
	EducationOneLevelBelow  = 60.0
	EducationTwoLevelsBelow = 30.0
	EducationFloor          = 10.0
)

// MaxScore bounds the final match score.
const MaxScore = 100
