package sanitize

import (
	"sort"
	"strings"

	"github.com/sergi/go-diff/diffmatchpatch"
)

// Learn discovers decoy sentences by differential analysis over repeated
// fetches of the same chapter. Legitimate content is identical across
// samples; injected decoys vary per session, so any line present in one
// sample but not another is a candidate. A candidate is accepted only
// when it shows up in at least two pairwise comparisons: one-off
// differences are formatting noise, not decoys, and admitting them would
// poison the corpus.
func Learn(samples []string) []string {
	if len(samples) < 2 {
		return nil
	}

	normalized := make([]string, len(samples))
	for i, s := range samples {
		normalized[i] = normalizeSample(s)
	}

	dmp := diffmatchpatch.New()
	hits := map[string]int{}

	for i := 1; i < len(normalized); i++ {
		pair := map[string]bool{}
		for _, frag := range diffFragments(dmp, normalized[i-1], normalized[i]) {
			pair[frag] = true
		}
		for frag := range pair {
			hits[frag]++
		}
	}

	var accepted []string
	for frag, n := range hits {
		if n >= 2 {
			accepted = append(accepted, frag)
		}
	}
	sort.Strings(accepted)
	return accepted
}

// diffFragments returns the lines that appear on only one side of a
// line-grained diff between two samples.
func diffFragments(dmp *diffmatchpatch.DiffMatchPatch, a, b string) []string {
	ca, cb, lines := dmp.DiffLinesToChars(a, b)
	diffs := dmp.DiffCharsToLines(dmp.DiffMain(ca, cb, false), lines)

	var out []string
	for _, d := range diffs {
		if d.Type == diffmatchpatch.DiffEqual {
			continue
		}
		for _, line := range strings.Split(d.Text, "\n") {
			line = strings.TrimSpace(line)
			if line != "" {
				out = append(out, line)
			}
		}
	}
	return out
}

// normalizeSample puts one sample into a stable line-per-sentence-block
// shape so the diff keys on content, not incidental formatting.
func normalizeSample(s string) string {
	var lines []string
	for _, line := range strings.Split(s, "\n") {
		line = strings.TrimSpace(spaceRun.ReplaceAllString(line, " "))
		if line != "" {
			lines = append(lines, line)
		}
	}
	return strings.Join(lines, "\n") + "\n"
}
