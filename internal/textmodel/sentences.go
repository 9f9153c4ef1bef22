package textmodel

import (
	"strings"
)

// abbreviations never end a sentence even though they end in a period.
var abbreviations = map[string]bool{
	"e.g.": true, "i.e.": true, "etc.": true, "al.": true, "vs.": true,
	"fig.": true, "eq.": true, "sec.": true, "dr.": true, "mr.": true,
	"ms.": true, "approx.": true, "cf.": true, "no.": true,
}

// SplitSentences breaks text into sentences on terminal punctuation and blank lines.
func SplitSentences(text string) []string {
	var sentences []string
	for _, block := range strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n\n") {
		var current []string
		for _, word := range strings.Fields(block) {
			current = append(current, word)
			if endsSentence(word) {
				sentences = append(sentences, strings.Join(current, " "))
				current = nil
			}
		}
		if len(current) > 0 {
			sentences = append(sentences, strings.Join(current, " "))
		}
	}
	return sentences
}

func endsSentence(word string) bool {
	trimmed := strings.TrimRight(word, `"')]`)
	if trimmed == "" {
		return false
	}
	switch trimmed[len(trimmed)-1] {
	case '.', '!', '?':
	default:
		return false
	}
	if abbreviations[strings.ToLower(trimmed)] {
		return false
	}
	// single initials such as "J." in author lists
	if len(trimmed) == 2 && trimmed[1] == '.' && trimmed[0] >= 'A' && trimmed[0] <= 'Z' {
		return false
	}
	return true
}
