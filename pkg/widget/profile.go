package widget

import (
	"fmt"
	"sort"
	"strings"
)

// Level is the engagement bucket derived from a lead score.
type Level string

const (
	LevelCold Level = "cold"
	LevelWarm Level = "warm"
	LevelHot  Level = "hot"
)

const (
	warmThreshold = 25
	hotThreshold  = 50
)

// LevelFor maps a score to its engagement level.
func LevelFor(score int) Level {
	switch {
	case score >= hotThreshold:
		return LevelHot
	case score >= warmThreshold:
		return LevelWarm
	default:
		return LevelCold
	}
}

// LeadProfile is the in-memory engagement signal of one visitor session.
type LeadProfile struct {
	Score     int
	Visited   map[string]struct{}
	Interests []string

	// bonus keys already granted, used by ScoringIdempotent
	awarded map[string]struct{}
}

func newLeadProfile() LeadProfile {
	return LeadProfile{
		Visited: make(map[string]struct{}),
		awarded: make(map[string]struct{}),
	}
}

// Level derives the engagement level from the current score.
func (p LeadProfile) Level() Level {
	return LevelFor(p.Score)
}

// HasVisited reports whether path is already in the visited set.
func (p LeadProfile) HasVisited(path string) bool {
	_, ok := p.Visited[path]
	return ok
}

// VisitedPages returns the visited set sorted for stable output.
func (p LeadProfile) VisitedPages() []string {
	pages := make([]string, 0, len(p.Visited))
	for path := range p.Visited {
		pages = append(pages, path)
	}
	sort.Strings(pages)
	return pages
}

func (p LeadProfile) clone() LeadProfile {
	out := LeadProfile{
		Score:     p.Score,
		Visited:   make(map[string]struct{}, len(p.Visited)),
		Interests: append([]string(nil), p.Interests...),
		awarded:   make(map[string]struct{}, len(p.awarded)),
	}
	for k := range p.Visited {
		out.Visited[k] = struct{}{}
	}
	for k := range p.awarded {
		out.awarded[k] = struct{}{}
	}
	return out
}

// ScoringMode selects how repeated recomputations treat bonuses.
type ScoringMode string

const (
	// ScoringIdempotent grants each bonus key at most once per profile.
	ScoringIdempotent ScoringMode = "idempotent"
	// ScoringCompat re-awards every matching bonus on every recomputation.
	ScoringCompat ScoringMode = "compat"
)

// ParseScoringMode accepts "idempotent" (or empty) and "compat".
func ParseScoringMode(s string) (ScoringMode, error) {
	switch ScoringMode(strings.ToLower(strings.TrimSpace(s))) {
	case "", ScoringIdempotent:
		return ScoringIdempotent, nil
	case ScoringCompat:
		return ScoringCompat, nil
	default:
		return "", fmt.Errorf("unknown scoring mode %q", s)
	}
}

const (
	highIntentBonus = 20
	solutionsBonus  = 10
	breadthBonus    = 15
	breadthPages    = 3
)

var highIntentPaths = []string{
	"/contact",
	"/demo-request",
	"/pricing",
	"/assessment",
}

const solutionsSegment = "/solutions"

// Scorer recomputes a lead score from the full profile.
type Scorer struct {
	Mode ScoringMode
}

// Rescore adds the bonuses the profile currently qualifies for to its score.
// The score never decreases.
func (s Scorer) Rescore(p *LeadProfile) {
	if p.awarded == nil {
		p.awarded = make(map[string]struct{})
	}

	grant := func(key string, points int) {
		if s.Mode != ScoringCompat {
			if _, done := p.awarded[key]; done {
				return
			}
			p.awarded[key] = struct{}{}
		}
		p.Score += points
	}

	solutions := false
	for _, path := range p.VisitedPages() {
		if isHighIntent(path) {
			grant("intent:"+path, highIntentBonus)
		}
		if strings.Contains(path, solutionsSegment) {
			solutions = true
		}
	}
	if solutions {
		grant("solutions", solutionsBonus)
	}
	if len(p.Visited) >= breadthPages {
		grant("breadth", breadthBonus)
	}
}

func isHighIntent(path string) bool {
	for _, marker := range highIntentPaths {
		if strings.Contains(path, marker) {
			return true
		}
	}
	return false
}
