package domain

import (
	"slices"
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// JoinReport summarizes how observation regions line up with boundary regions.
// It is diagnostic only; the join itself stays an exact match.
type JoinReport struct {
	Matched int `json:"matched"`
	// MissingBoundary lists observation regions with no boundary feature.
	MissingBoundary []string `json:"missing_boundary"`
	// MissingData lists boundary regions with no observation.
	MissingData []string `json:"missing_data"`
	// Suggestions maps an unmatched observation region to a boundary region
	// that differs only in case or accents.
	Suggestions map[string]string `json:"suggestions"`
}

// Clean reports whether every region on both sides matched.
func (r JoinReport) Clean() bool {
	return len(r.MissingBoundary) == 0 && len(r.MissingData) == 0
}

// MatchRegions compares observation region names against boundary region names.
func MatchRegions(observed, boundaries []string) JoinReport {
	bset := make(map[string]struct{}, len(boundaries))
	folded := make(map[string]string, len(boundaries))
	for _, b := range boundaries {
		bset[b] = struct{}{}
		if _, ok := folded[foldName(b)]; !ok {
			folded[foldName(b)] = b
		}
	}

	report := JoinReport{
		MissingBoundary: []string{},
		MissingData:     []string{},
		Suggestions:     map[string]string{},
	}

	oset := make(map[string]struct{}, len(observed))
	for _, o := range observed {
		if _, dup := oset[o]; dup {
			continue
		}
		oset[o] = struct{}{}

		if _, ok := bset[o]; ok {
			report.Matched++
			continue
		}
		report.MissingBoundary = append(report.MissingBoundary, o)
		if candidate, ok := folded[foldName(o)]; ok {
			report.Suggestions[o] = candidate
		}
	}

	for b := range bset {
		if _, ok := oset[b]; !ok {
			report.MissingData = append(report.MissingData, b)
		}
	}

	slices.Sort(report.MissingBoundary)
	slices.Sort(report.MissingData)
	return report
}

// foldName strips surrounding space, diacritics and case so "Potosí " and
// "POTOSI" compare equal.
func foldName(s string) string {
	s = strings.TrimSpace(s)
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC, cases.Fold())
	out, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return out
}
