package detector

import (
	"errors"
	"sort"
	"strings"
)

// ErrInvalidFuzzyInput is returned when FuzzySearch gets a nil candidate list.
// The fuzzy matcher is the one component that surfaces input-validation
// errors instead of degrading silently.
var ErrInvalidFuzzyInput = errors.New("fuzzy: candidate list must be non-nil")

// FuzzyMatch is one (query word, candidate) pair that met both thresholds.
type FuzzyMatch struct {
	Word      string  `json:"word"`      // query word that matched
	Candidate string  `json:"candidate"` // list entry it matched against
	Score     float64 `json:"score"`
	Distance  int     `json:"distance"`
}

// leetQueryMap is the lighter substitution table applied to both sides of a
// fuzzy comparison before measuring distance.
var leetQueryMap = map[rune]rune{
	'1': 'i', '2': 'z', '3': 'e', '4': 'a', '5': 's',
	'6': 'g', '7': 't', '8': 'b', '9': 'g', '0': 'o',
	'!': 'i', '&': 'e', '@': 'a', '#': 'h',
}

// FuzzySearch compares every whitespace-separated word of query against every
// candidate in list using a Damerau-Levenshtein (OSA) distance over
// leet-normalized, lowercased forms. Matches within maxDistance edits and at
// or above minScore are returned sorted by descending score. Pass zero for
// maxDistance or minScore to use the defaults (2 and 0.5).
func FuzzySearch(list []string, query string, maxDistance int, minScore float64) ([]FuzzyMatch, error) {
	if list == nil {
		return nil, ErrInvalidFuzzyInput
	}
	if maxDistance <= 0 {
		maxDistance = 2
	}
	if minScore <= 0 {
		minScore = 0.5
	}

	words := strings.Fields(query)
	if len(words) == 0 {
		return []FuzzyMatch{}, nil
	}

	var matches []FuzzyMatch
	for _, word := range words {
		normWord := normalizeLeetQuery(word)
		for _, candidate := range list {
			normCand := normalizeLeetQuery(candidate)
			if normCand == "" {
				continue
			}
			dist := damerauLevenshtein(normWord, normCand, maxDistance)
			if dist > maxDistance {
				continue
			}
			score := fuzzyScore(normWord, normCand, dist)
			if score < minScore {
				continue
			}
			matches = append(matches, FuzzyMatch{
				Word:      word,
				Candidate: candidate,
				Score:     score,
				Distance:  dist,
			})
		}
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Score > matches[j].Score
	})
	return matches, nil
}

func normalizeLeetQuery(s string) string {
	return strings.Map(func(r rune) rune {
		if mapped, ok := leetQueryMap[r]; ok {
			return mapped
		}
		return r
	}, strings.ToLower(s))
}

// fuzzyScore rewards closeness plus containment and prefix affinity, capped
// at 1.
func fuzzyScore(query, candidate string, dist int) float64 {
	maxLen := len([]rune(query))
	if l := len([]rune(candidate)); l > maxLen {
		maxLen = l
	}
	if maxLen == 0 {
		return 0
	}
	score := 1 - float64(dist)/float64(maxLen)
	if strings.Contains(candidate, query) {
		score += 0.1
	}
	if strings.HasPrefix(candidate, query) {
		score += 0.2
	}
	if score > 1 {
		score = 1
	}
	return score
}

// damerauLevenshtein computes the optimal-string-alignment edit distance with
// unit costs for insert, delete, substitute, and adjacent transposition. When
// the length difference alone exceeds maxDist it short-circuits to maxDist+1.
func damerauLevenshtein(a, b string, maxDist int) int {
	ra := []rune(a)
	rb := []rune(b)

	diff := len(ra) - len(rb)
	if diff < 0 {
		diff = -diff
	}
	if diff > maxDist {
		return maxDist + 1
	}

	if len(ra) == 0 {
		return len(rb)
	}
	if len(rb) == 0 {
		return len(ra)
	}

	prev2 := make([]int, len(rb)+1)
	prev := make([]int, len(rb)+1)
	curr := make([]int, len(rb)+1)
	for j := 0; j <= len(rb); j++ {
		prev[j] = j
	}

	for i := 1; i <= len(ra); i++ {
		curr[0] = i
		for j := 1; j <= len(rb); j++ {
			cost := 1
			if ra[i-1] == rb[j-1] {
				cost = 0
			}
			best := curr[j-1] + 1 // insertion
			if d := prev[j] + 1; d < best { // deletion
				best = d
			}
			if d := prev[j-1] + cost; d < best { // substitution
				best = d
			}
			if i > 1 && j > 1 && ra[i-1] == rb[j-2] && ra[i-2] == rb[j-1] {
				if d := prev2[j-2] + 1; d < best { // transposition
					best = d
				}
			}
			curr[j] = best
		}
		prev2, prev, curr = prev, curr, prev2
	}
	return prev[len(rb)]
}
