// Package keywords ranks the terms of a job posting into an ordered keyword list.
package keywords

import (
	"sort"
	"strings"

	"github.com/spigell/resume-lens/internal/job"
	"github.com/spigell/resume-lens/internal/textnorm"
)

// Documented call-site sizes for Extract.
const (
	DefaultMax = 25
	ScoringMax = 40
	DisplayMax = 12
)

// minTokenLen is the exclusive length floor for free-text candidates.
const minTokenLen = 2

type termCount struct {
	term  string
	count int
}

// Extract returns at most max keywords for the posting. Explicit requirements come
// first (normalized, kept whole), followed by free-text tokens ranked by descending
// frequency; ties keep first-appearance order. The result holds no duplicates.
func Extract(p job.Posting, max int) []string {
	if max <= 0 {
		return []string{}
	}

	source := p.Title + " " + p.Description + " " + strings.Join(p.Requirements, " ")
	ranked := rankByFrequency(textnorm.FilterTokens(textnorm.Tokenize(source), minTokenLen))

	seen := make(map[string]struct{}, len(p.Requirements)+len(ranked))
	out := make([]string, 0, max)
	add := func(term string) bool {
		if term == "" {
			return len(out) < max
		}
		if _, dup := seen[term]; dup {
			return len(out) < max
		}
		seen[term] = struct{}{}
		out = append(out, term)
		return len(out) < max
	}

	for _, req := range p.Requirements {
		if !add(textnorm.Normalize(req)) {
			return out
		}
	}
	for _, term := range ranked {
		if !add(term) {
			return out
		}
	}

	return out
}

func rankByFrequency(tokens []string) []string {
	index := make(map[string]int, len(tokens))
	counts := make([]termCount, 0, len(tokens))
	for _, t := range tokens {
		if i, ok := index[t]; ok {
			counts[i].count++
			continue
		}
		index[t] = len(counts)
		counts = append(counts, termCount{term: t, count: 1})
	}

	sort.SliceStable(counts, func(i, j int) bool {
		return counts[i].count > counts[j].count
	})

	ranked := make([]string, len(counts))
	for i, c := range counts {
		ranked[i] = c.term
	}
	return ranked
}
