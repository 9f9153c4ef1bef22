package textmodel

import (
	"strings"
	"unicode"
)

// Tokenizer splits a sentence into chain tokens and joins tokens back into text.
type Tokenizer interface {
	Split(sentence string) []string
	Join(tokens []string) string
}

// WordTokenizer splits on whitespace.
type WordTokenizer struct{}

func (WordTokenizer) Split(sentence string) []string {
	return strings.Fields(sentence)
}

func (WordTokenizer) Join(tokens []string) string {
	return strings.Join(tokens, " ")
}

const tagSeparator = "::"

// TaggedTokenizer attaches a coarse lexical tag to every token ("Net::CAP"),
// so identical words used in different roles become distinct chain states.
// Tags are stripped again on Join.
type TaggedTokenizer struct{}

func (TaggedTokenizer) Split(sentence string) []string {
	words := strings.Fields(sentence)
	tokens := make([]string, len(words))
	for i, w := range words {
		tokens[i] = w + tagSeparator + lexicalTag(w)
	}
	return tokens
}

func (TaggedTokenizer) Join(tokens []string) string {
	words := make([]string, len(tokens))
	for i, t := range tokens {
		if idx := strings.LastIndex(t, tagSeparator); idx >= 0 {
			t = t[:idx]
		}
		words[i] = t
	}
	return strings.Join(words, " ")
}

func lexicalTag(word string) string {
	var letters, digits int
	for _, r := range word {
		switch {
		case unicode.IsLetter(r):
			letters++
		case unicode.IsDigit(r):
			digits++
		}
	}
	switch {
	case letters == 0 && digits == 0:
		return "PUNCT"
	case letters == 0:
		return "NUM"
	case digits > 0:
		return "ALNUM"
	case unicode.IsUpper([]rune(word)[0]):
		return "CAP"
	default:
		return "WORD"
	}
}
