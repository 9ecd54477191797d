package services

import (
	"math"
	"sort"
	"strings"
)

// SimilarityScore returns a normalized similarity between a and b in the
// range [0,100]. Both inputs are lowercased, whitespace-trimmed and
// token-sorted before comparison, so letter case and word order never affect
// the score: "chicken breast" vs "BREAST  chicken" scores 100. The score is
// a Levenshtein ratio over the normalized forms and is commutative.
func SimilarityScore(a, b string) int {
	na := normalizeForMatch(a)
	nb := normalizeForMatch(b)
	if na == nb {
		if na == "" {
			return 0
		}
		return 100
	}
	if na == "" || nb == "" {
		return 0
	}

	ra := []rune(na)
	rb := []rune(nb)
	maxLen := len(ra)
	if len(rb) > maxLen {
		maxLen = len(rb)
	}

	dist := levenshteinDistance(ra, rb)
	return int(math.Round(100 * (1 - float64(dist)/float64(maxLen))))
}

// normalizeForMatch lowercases, splits on whitespace and re-joins the tokens
// in sorted order. Receipt lines frequently permute words ("POLLO PECHUGA"
// vs "pechuga pollo"); sorting tokens makes the edit distance blind to that.
func normalizeForMatch(s string) string {
	fields := strings.Fields(strings.ToLower(s))
	sort.Strings(fields)
	return strings.Join(fields, " ")
}

// levenshteinDistance computes the edit distance between two rune slices
// using the classic two-row dynamic programming formulation.
func levenshteinDistance(a, b []rune) int {
	if len(a) == 0 {
		return len(b)
	}
	if len(b) == 0 {
		return len(a)
	}

	prev := make([]int, len(b)+1)
	curr := make([]int, len(b)+1)
	for j := 0; j <= len(b); j++ {
		prev[j] = j
	}

	for i := 1; i <= len(a); i++ {
		curr[0] = i
		for j := 1; j <= len(b); j++ {
			cost := 1
			if a[i-1] == b[j-1] {
				cost = 0
			}
			curr[j] = minInt(
				prev[j]+1,      // deletion
				curr[j-1]+1,    // insertion
				prev[j-1]+cost, // substitution
			)
		}
		prev, curr = curr, prev
	}
	return prev[len(b)]
}

func minInt(values ...int) int {
	m := values[0]
	for _, v := range values[1:] {
		if v < m {
			m = v
		}
	}
	return m
}
