// Package sanitize strips anti-theft decoy sentences from chapter text.
//
// Some hosting sites inject session-varying sentences into served chapter
// bodies to watermark scraped copies. The corpus of known sentences per
// site is learned offline (see Learn) and applied here at parse time.
package sanitize

import (
	"regexp"
	"strings"
)

var spaceRun = regexp.MustCompile(`\s+`)

// Sanitize removes every known decoy sentence of the corpus from text.
// Matching is literal, whitespace-normalized substring matching: decoys
// come from a finite observed set, and anything fuzzier risks eating
// legitimate prose. Paragraphs left empty by removal are dropped. Text
// without any match comes back unchanged.
func Sanitize(text string, c *Corpus) string {
	if c == nil || c.Len() == 0 || text == "" {
		return text
	}

	paragraphs := strings.Split(text, "\n\n")
	out := make([]string, 0, len(paragraphs))
	changed := false

	for _, p := range paragraphs {
		clean := p
		for _, sentence := range c.sentences {
			clean = removeSentence(clean, sentence)
		}
		if clean != p {
			changed = true
			if strings.TrimSpace(clean) == "" {
				// removal emptied the paragraph, drop it entirely
				continue
			}
		}
		out = append(out, clean)
	}

	if !changed {
		return text
	}
	return strings.Join(out, "\n\n")
}

// removeSentence strips exact occurrences of sentence from p, tolerating
// whitespace variance on both sides of the match.
func removeSentence(p, sentence string) string {
	fields := strings.Fields(sentence)
	if len(fields) == 0 {
		return p
	}
	for i, f := range fields {
		fields[i] = regexp.QuoteMeta(f)
	}
	re, err := regexp.Compile(`\s*` + strings.Join(fields, `\s+`) + `\s*`)
	if err != nil {
		return p
	}
	if !re.MatchString(p) {
		return p
	}
	clean := re.ReplaceAllString(p, " ")
	return strings.TrimSpace(spaceRun.ReplaceAllStringFunc(clean, collapseSpaces))
}

// collapseSpaces keeps single newlines intact but folds horizontal runs,
// so paragraph-internal line structure survives sentence removal.
func collapseSpaces(run string) string {
	if strings.Contains(run, "\n") {
		return "\n"
	}
	return " "
}
