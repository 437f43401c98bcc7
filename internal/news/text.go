package news

import (
	"regexp"
	"strings"

	"golang.org/x/text/unicode/norm"
)

var whitespaceRE = regexp.MustCompile(`\s+`)

// sentenceRE splits on runs of sentence terminators.
var sentenceRE = regexp.MustCompile(`[.!?]+`)

// CleanText collapses all whitespace runs to single spaces, trims the
// result, and normalizes it to NFC. Vietnamese text arrives in mixed
// normalization forms depending on the site's CMS; NFC keeps the rune
// counts stable for the preview and summary truncation.
func CleanText(s string) string {
	s = whitespaceRE.ReplaceAllString(strings.TrimSpace(s), " ")
	return norm.NFC.String(s)
}

// Summarize builds a naive extractive summary: the first maxSentences
// sentences joined with ". ", truncated to 300 runes including a trailing
// "..." when longer.
func Summarize(text string, maxSentences int) string {
	if text == "" {
		return ""
	}

	parts := sentenceRE.Split(text, -1)
	sentences := make([]string, 0, maxSentences)
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		sentences = append(sentences, p)
		if len(sentences) == maxSentences {
			break
		}
	}

	summary := strings.Join(sentences, ". ")
	if runes := []rune(summary); len(runes) > 300 {
		summary = string(runes[:297]) + "..."
	}

	return summary
}

// Preview returns the first 200 runes of content with a "..." marker when
// the content is longer.
func Preview(content string) string {
	runes := []rune(content)
	if len(runes) > 200 {
		return string(runes[:200]) + "..."
	}
	return content
}
