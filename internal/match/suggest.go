package match

import "sort"

// minSuggestScore is the similarity below which a known name is not offered
// as a suggestion.
const minSuggestScore = 0.5

// Candidate is a known name scored against an unknown one.
type Candidate struct {
	Name  string
	Score float64
}

// CandidateList is sorted by descending score, then by name.
type CandidateList []Candidate

// RankCandidates scores every known name against target.
func RankCandidates(target string, known []string) CandidateList {
	list := make(CandidateList, 0, len(known))
	for _, name := range known {
		list = append(list, Candidate{Name: name, Score: NormalizedSimilarity(target, name)})
	}

	sort.Sort(list)

	return list
}

// Len implements sort.Interface.
func (c CandidateList) Len() int { return len(c) }

// Swap implements sort.Interface.
func (c CandidateList) Swap(i, j int) { c[i], c[j] = c[j], c[i] }

// Less implements sort.Interface.
func (c CandidateList) Less(i, j int) bool {
	if c[i].Score != c[j].Score {
		return c[i].Score > c[j].Score
	}

	return c[i].Name < c[j].Name
}

// Above returns the candidates scoring at least threshold.
func (c CandidateList) Above(threshold float64) CandidateList {
	for i, cand := range c {
		if cand.Score < threshold {
			return c[:i]
		}
	}

	return c
}

// Top returns at most n candidates.
func (c CandidateList) Top(n int) CandidateList {
	if n < len(c) {
		return c[:n]
	}

	return c
}

// Names returns the candidate names in order.
func (c CandidateList) Names() []string {
	out := make([]string, len(c))
	for i, cand := range c {
		out[i] = cand.Name
	}

	return out
}

// Suggest returns up to n known names that look like target.
func Suggest(target string, known []string, n int) []string {
	return RankCandidates(target, known).Above(minSuggestScore).Top(n).Names()
}
