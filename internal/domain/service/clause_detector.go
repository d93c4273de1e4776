package service

import (
	"fmt"
	"regexp"
	"sort"
	"unicode/utf8"

	"github.com/shopspring/decimal"

	"github.com/Pinizov/Credit-Guardian-AI-sub000/internal/domain/model"
	"github.com/Pinizov/Credit-Guardian-AI-sub000/internal/domain/valueobject"
	"github.com/Pinizov/Credit-Guardian-AI-sub000/internal/rules"
)

// DefaultSnippetContext is the number of context bytes kept on each side of
// a clause match in the audit snippet.
const DefaultSnippetContext = 50

type compiledClausePattern struct {
	id       string
	re       *regexp.Regexp
	basis    string
	severity valueobject.Severity
	impact   decimal.Decimal
}

// ClauseDetector scans contract text against the clause-pattern library.
// Matching is case- and diacritic-insensitive; reported snippets and offsets
// always refer to the original, verbatim text.
type ClauseDetector struct {
	patterns       []compiledClausePattern
	snippetContext int
}

// NewClauseDetector compiles the pattern library. snippetContext bounds the
// context window on each side of a match; values below 1 fall back to
// DefaultSnippetContext.
func NewClauseDetector(rs rules.RuleSet, snippetContext int) (*ClauseDetector, error) {
	if snippetContext < 1 {
		snippetContext = DefaultSnippetContext
	}

	compiled := make([]compiledClausePattern, 0, len(rs.ClausePatterns))
	for _, p := range rs.ClausePatterns {
		sev, err := p.ClauseSeverity()
		if err != nil {
			return nil, fmt.Errorf("clause pattern %q: %w", p.ID, err)
		}
		impact, err := p.Impact()
		if err != nil {
			return nil, fmt.Errorf("clause pattern %q: %w", p.ID, err)
		}
		re, err := regexp.Compile("(?s)" + p.Expr)
		if err != nil {
			return nil, fmt.Errorf("clause pattern %q: %w", p.ID, err)
		}
		compiled = append(compiled, compiledClausePattern{
			id:       p.ID,
			re:       re,
			basis:    p.LegalBasis,
			severity: sev,
			impact:   impact,
		})
	}

	return &ClauseDetector{patterns: compiled, snippetContext: snippetContext}, nil
}

type clauseCandidate struct {
	patternIndex int
	origStart    int
	origEnd      int
}

// Detect scans rawText and returns clause findings ordered by location
// ascending. When two patterns match overlapping spans, the higher-severity
// one is kept; ties keep the earlier-registered pattern.
func (d *ClauseDetector) Detect(rawText string) []model.DetectedClause {
	if rawText == "" {
		return nil
	}

	folded := foldText(rawText)

	var candidates []clauseCandidate
	for pi, p := range d.patterns {
		for _, loc := range p.re.FindAllStringIndex(folded.text, -1) {
			candidates = append(candidates, clauseCandidate{
				patternIndex: pi,
				origStart:    folded.origStart(loc[0]),
				origEnd:      folded.origEnd(loc[1]),
			})
		}
	}

	kept := d.resolveOverlaps(candidates)

	findings := make([]model.DetectedClause, 0, len(kept))
	for _, c := range kept {
		p := d.patterns[c.patternIndex]
		findings = append(findings, model.DetectedClause{
			PatternID:       p.id,
			Snippet:         d.snippet(rawText, c.origStart, c.origEnd),
			Location:        c.origStart,
			LegalBasis:      p.basis,
			Severity:        p.severity,
			EstimatedImpact: p.impact,
		})
	}

	sort.SliceStable(findings, func(i, j int) bool {
		return findings[i].Location < findings[j].Location
	})
	return findings
}

// resolveOverlaps greedily selects candidates in priority order: severity
// descending, then pattern registration order, then location. A candidate is
// dropped if its span overlaps one already kept.
func (d *ClauseDetector) resolveOverlaps(candidates []clauseCandidate) []clauseCandidate {
	ordered := append([]clauseCandidate(nil), candidates...)
	sort.SliceStable(ordered, func(i, j int) bool {
		a, b := ordered[i], ordered[j]
		ra := d.patterns[a.patternIndex].severity.Rank()
		rb := d.patterns[b.patternIndex].severity.Rank()
		if ra != rb {
			return ra > rb
		}
		if a.patternIndex != b.patternIndex {
			return a.patternIndex < b.patternIndex
		}
		return a.origStart < b.origStart
	})

	var kept []clauseCandidate
	for _, c := range ordered {
		overlaps := false
		for _, k := range kept {
			if c.origStart < k.origEnd && k.origStart < c.origEnd {
				overlaps = true
				break
			}
		}
		if !overlaps {
			kept = append(kept, c)
		}
	}
	return kept
}

// snippet slices the original text around [start, end) with the configured
// context window, aligned to rune boundaries so Cyrillic bytes are never cut.
func (d *ClauseDetector) snippet(text string, start, end int) string {
	from := start - d.snippetContext
	if from < 0 {
		from = 0
	}
	to := end + d.snippetContext
	if to > len(text) {
		to = len(text)
	}

	for from > 0 && !utf8.RuneStart(text[from]) {
		from--
	}
	for to < len(text) && !utf8.RuneStart(text[to]) {
		to++
	}

	return text[from:to]
}
