package matching

import "math"

// skillsScore returns the percentage of required skills the candidate covers. Certifications and
// badges whose names equal a required skill count as covering it. Duplicate or blank requirement
// entries are ignored; no requirement at all is neutral.
func skillsScore(c *CandidateProfile, r *JobRequirement) (score float64, matched, missing []string, neutral bool) {
	held := make(map[string]struct{}, len(c.Skills)+len(c.Certifications)+len(c.Badges))
	for _, s := range c.Skills {
		if key := NormalizeSkill(s.Name); key != "" {
			held[key] = struct{}{}
		}
	}
	for _, name := range c.Certifications {
		if key := NormalizeSkill(name); key != "" {
			held[key] = struct{}{}
		}
	}
	for _, name := range c.Badges {
		if key := NormalizeSkill(name); key != "" {
			held[key] = struct{}{}
		}
	}

	matched = []string{}
	missing = []string{}
	seen := make(map[string]struct{}, len(r.RequiredSkills))
	for _, name := range r.RequiredSkills {
		key := NormalizeSkill(name)
		if key == "" {
			continue
		}
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}

		if _, ok := held[key]; ok {
			matched = append(matched, name)
		} else {
			missing = append(missing, name)
		}
	}

	total := len(matched) + len(missing)
	if total == 0 {
		return NeutralScore, matched, missing, true
	}
	return round1(100 * float64(len(matched)) / float64(total)), matched, missing, false
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
