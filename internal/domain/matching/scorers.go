package matching

import (
	"strings"
)

// The four dimension scorers are pure functions mapping a
// (candidate, posting) aspect to a score in [0,1].

// SkillScore combines required-skill and preferred-skill coverage as
// 0.7*required + 0.3*preferred. A skill counts as covered when it and
// a candidate skill match as case-insensitive substrings in either
// direction. An empty candidate skill set scores 0 outright; an empty
// required set contributes 0 to the required term (not an error).
func SkillScore(candidateSkills, requiredSkills, preferredSkills []string) float64 {
	if len(candidateSkills) == 0 {
		return 0
	}

	cand := lowerAll(candidateSkills)

	requiredScore := coverage(lowerAll(requiredSkills), cand)
	preferredScore := coverage(lowerAll(preferredSkills), cand)

	total := requiredScore*0.7 + preferredScore*0.3
	if total > 1 {
		return 1
	}
	return total
}

func coverage(wanted, cand []string) float64 {
	if len(wanted) == 0 {
		return 0
	}
	matches := 0
	for _, w := range wanted {
		for _, c := range cand {
			if strings.Contains(c, w) || strings.Contains(w, c) {
				matches++
				break
			}
		}
	}
	return float64(matches) / float64(len(wanted))
}

func lowerAll(skills []string) []string {
	out := make([]string, 0, len(skills))
	for _, s := range skills {
		out = append(out, strings.ToLower(strings.TrimSpace(s)))
	}
	return out
}

// LocationScore: same city 1.0, same state 0.7, otherwise 0.3. No
// geographic distance modeling.
func LocationScore(candidateCity, candidateState, jobCity, jobState string) float64 {
	if strings.EqualFold(strings.TrimSpace(candidateCity), strings.TrimSpace(jobCity)) {
		return 1.0
	}
	if strings.EqualFold(strings.TrimSpace(candidateState), strings.TrimSpace(jobState)) {
		return 0.7
	}
	return 0.3
}

// SalaryScore measures overlap between the candidate's preferred range
// and the posting's range. Any unknown bound yields a neutral 0.5.
// Overlapping ranges score overlap width over the average range width;
// disjoint ranges decay with the gap relative to the larger maximum.
func SalaryScore(candidateMin, candidateMax, jobMin, jobMax *int) float64 {
	if candidateMin == nil || candidateMax == nil || jobMin == nil || jobMax == nil {
		return 0.5
	}

	cMin, cMax := float64(*candidateMin), float64(*candidateMax)
	jMin, jMax := float64(*jobMin), float64(*jobMax)

	overlapStart := cMin
	if jMin > overlapStart {
		overlapStart = jMin
	}
	overlapEnd := cMax
	if jMax < overlapEnd {
		overlapEnd = jMax
	}

	if overlapStart <= overlapEnd {
		avgRange := ((cMax - cMin) + (jMax - jMin)) / 2
		if avgRange <= 0 {
			// Both ranges are single points on the same value.
			return 1.0
		}
		score := (overlapEnd - overlapStart) / avgRange
		if score > 1 {
			return 1
		}
		return score
	}

	gap := overlapStart - overlapEnd
	maxSalary := cMax
	if jMax > maxSalary {
		maxSalary = jMax
	}
	if maxSalary <= 0 {
		return 0
	}
	score := 1 - gap/maxSalary
	if score < 0 {
		return 0
	}
	return score
}

// ExperienceScore gives full credit when the candidate meets the
// posting's requirement (or none is required) and partial credit with
// a 0.3 floor otherwise.
func ExperienceScore(candidateYears, requiredYears int) float64 {
	if requiredYears <= 0 {
		return 1.0
	}
	if candidateYears >= requiredYears {
		return 1.0
	}
	score := float64(candidateYears) / float64(requiredYears)
	if score < 0.3 {
		return 0.3
	}
	return score
}

// QualificationScore normalizes the diploma score when the candidate
// meets the posting's minimum; near-misses keep a 0.2 floor instead of
// zeroing out.
func QualificationScore(diplomaScore, minimumRequired float64) float64 {
	if minimumRequired <= 0 {
		minimumRequired = DefaultMinimumDiplomaScore
	}
	if diplomaScore >= minimumRequired {
		score := diplomaScore / 100.0
		if score > 1 {
			return 1
		}
		return score
	}
	score := diplomaScore / minimumRequired
	if score < 0.2 {
		return 0.2
	}
	return score
}
