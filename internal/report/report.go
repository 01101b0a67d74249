// Package report groups canonicalized records by failure/warning code for
// the §6 "Error report": a machine-readable stream and a human-readable
// summary with counts, remediation text, and a top-N offender list.
package report

import (
	"fmt"
	"io"
	"sort"

	t "canonpipe/internal/types"
)

const topOffendersPerCode = 10

// CodeGroup is one code's aggregated occurrences across a run.
type CodeGroup struct {
	Code        t.Code
	Count       int
	Remediation string
	Offenders   []Offender
}

// Offender identifies one record that raised a given code.
type Offender struct {
	RecipeID     string
	LineNumber   int
	OriginalText string
}

// Summary is the full run report: total rows, successes, failures, and
// every warning/failure code observed, grouped and counted.
type Summary struct {
	TotalRows   int
	Succeeded   int
	Failed      int
	CodeGroups  []CodeGroup
}

// Build aggregates a batch of canonical records into a Summary. Record
// order in the input only affects which offenders are sampled first per
// code, not the final counts or code ordering (codes are sorted for
// deterministic output).
func Build(records []t.CanonicalRecord) Summary {
	groups := make(map[t.Code]*CodeGroup)
	summary := Summary{TotalRows: len(records)}

	for _, rec := range records {
		if rec.Succeeded() {
			summary.Succeeded++
		} else {
			summary.Failed++
		}
		for _, code := range rec.Warnings {
			g, ok := groups[code]
			if !ok {
				g = &CodeGroup{Code: code, Remediation: t.Remediation(code)}
				groups[code] = g
			}
			g.Count++
			if len(g.Offenders) < topOffendersPerCode {
				g.Offenders = append(g.Offenders, Offender{
					RecipeID:     rec.RecipeID,
					LineNumber:   rec.LineNumber,
					OriginalText: rec.OriginalText,
				})
			}
		}
	}

	codes := make([]t.Code, 0, len(groups))
	for code := range groups {
		codes = append(codes, code)
	}
	sort.Slice(codes, func(i, j int) bool { return codes[i] < codes[j] })

	summary.CodeGroups = make([]CodeGroup, 0, len(codes))
	for _, code := range codes {
		summary.CodeGroups = append(summary.CodeGroups, *groups[code])
	}
	return summary
}

// WriteHuman renders the summary as a human-readable text report.
func WriteHuman(w io.Writer, s Summary) error {
	if _, err := fmt.Fprintf(w, "rows: %d  succeeded: %d  failed: %d\n\n", s.TotalRows, s.Succeeded, s.Failed); err != nil {
		return err
	}
	for _, g := range s.CodeGroups {
		if _, err := fmt.Fprintf(w, "%s  (%d)\n", g.Code, g.Count); err != nil {
			return err
		}
		if g.Remediation != "" {
			if _, err := fmt.Fprintf(w, "  remediation: %s\n", g.Remediation); err != nil {
				return err
			}
		}
		for _, o := range g.Offenders {
			if _, err := fmt.Fprintf(w, "  - %s:%d  %q\n", o.RecipeID, o.LineNumber, o.OriginalText); err != nil {
				return err
			}
		}
		if _, err := fmt.Fprintln(w); err != nil {
			return err
		}
	}
	return nil
}
