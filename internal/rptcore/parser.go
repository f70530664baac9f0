package rptcore

import (
	"errors"
	"fmt"
	"strings"
)

// ErrNotEnoughWords is returned when a TextParser is constructed with an
// input that doesn't contain as many words as expected.
var ErrNotEnoughWords = errors.New("rptcore: not enough words to parse")

// ErrIndexOutOfRange is returned by TextParser.Word when the requested
// index is beyond the expected word count.
var ErrIndexOutOfRange = errors.New("rptcore: parsed word index out of range")

// TextParser splits an input string into N expected words separated by
// runs of ASCII spaces, leaving everything after the Nth word (including
// its leading separator run) as an "unparsed remainder". It is the sole
// parsing primitive shared by the RPTL and SER layers.
type TextParser struct {
	words     []string
	remainder string
}

// NewTextParser parses s expecting exactly n words. Leading spaces and
// runs of spaces between the first n words are trimmed; what follows the
// Nth word, including its leading separator run, forms the unparsed
// remainder once that one leading run is trimmed too.
func NewTextParser(s string, n int) (TextParser, error) {
	trimmed := strings.TrimLeft(s, " ")

	words := make([]string, 0, n)
	rest := trimmed

	for i := 0; i < n; i++ {
		rest = strings.TrimLeft(rest, " ")
		if rest == "" {
			return TextParser{}, fmt.Errorf("%w: expected %d words", ErrNotEnoughWords, n)
		}

		idx := strings.IndexByte(rest, ' ')
		if idx < 0 {
			words = append(words, rest)
			rest = ""
		} else {
			words = append(words, rest[:idx])
			rest = rest[idx:]
		}
	}

	if len(words) < n {
		return TextParser{}, fmt.Errorf("%w: expected %d words", ErrNotEnoughWords, n)
	}

	return TextParser{
		words:     words,
		remainder: strings.TrimLeft(rest, " "),
	}, nil
}

// Word returns the parsed word at index i.
func (p TextParser) Word(i int) (string, error) {
	if i < 0 || i >= len(p.words) {
		return "", fmt.Errorf("%w: index %d", ErrIndexOutOfRange, i)
	}
	return p.words[i], nil
}

// Remainder returns everything left unparsed after the Nth word.
func (p TextParser) Remainder() string {
	return p.remainder
}
