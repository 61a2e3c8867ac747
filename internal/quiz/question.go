// Package quiz turns generated quiz text into structured questions and back.
//
// Parsing runs in two stages: Classify tags each line with what it is, and
// Parse feeds those tags through a small accumulator that builds questions.
// The text layout is requested by package prompt.
package quiz

import (
	"strings"
	"unicode"
)

// Letter is an option letter, A through D.
type Letter byte

// NoLetter marks an absent letter.
const NoLetter Letter = 0

// Letters lists the valid option letters in order.
var Letters = []Letter{'A', 'B', 'C', 'D'}

// OptionCount is the number of options every question carries after parsing.
const OptionCount = 4

const (
	// PlaceholderText fills option slots the generator left out.
	PlaceholderText = "Option not provided"

	// NoExplanation is used when the generator gave no explanation.
	NoExplanation = "No explanation provided."

	// overflowTag tags a placeholder when every letter is already taken.
	overflowTag = "N/A"
)

func (l Letter) String() string {
	if l == NoLetter {
		return ""
	}
	return string(rune(l))
}

// Valid reports whether l is one of A-D.
func (l Letter) Valid() bool {
	return l >= 'A' && l <= 'D'
}

// ParseLetter converts a single character to a Letter, case-insensitively.
func ParseLetter(r rune) (Letter, bool) {
	l := Letter(unicode.ToUpper(r))
	if r > unicode.MaxASCII || !l.Valid() {
		return NoLetter, false
	}
	return l, true
}

// Question is one multiple-choice question.
type Question struct {
	Text string

	// Options holds exactly OptionCount entries, each "(X) text".
	Options []string

	// CorrectLetter is NoLetter when the generator did not name one.
	CorrectLetter Letter

	Explanation string

	// Repairs describes fixes applied while parsing or verifying. Not
	// serialized by Format.
	Repairs []string
}

// HasCorrectLetter reports whether the question names a correct letter.
func (q Question) HasCorrectLetter() bool {
	return q.CorrectLetter != NoLetter
}

// Option returns the option tagged with letter l.
func (q Question) Option(l Letter) (string, bool) {
	for _, opt := range q.Options {
		if got, ok := LetterOf(opt); ok && got == l {
			return opt, true
		}
	}
	return "", false
}

// CorrectOption returns the option carrying the correct letter.
func (q Question) CorrectOption() (string, bool) {
	if !q.HasCorrectLetter() {
		return "", false
	}
	return q.Option(q.CorrectLetter)
}

// LetterOf parses the leading "(X)" tag of an option or answer string.
// Whitespace around the string and inside the parentheses is ignored.
func LetterOf(s string) (Letter, bool) {
	s = strings.TrimLeftFunc(s, unicode.IsSpace)
	if !strings.HasPrefix(s, "(") {
		return NoLetter, false
	}
	s = strings.TrimLeftFunc(s[1:], unicode.IsSpace)

	var l Letter
	for i, r := range s {
		if i == 0 {
			var ok bool
			if l, ok = ParseLetter(r); !ok {
				return NoLetter, false
			}
			continue
		}
		if unicode.IsSpace(r) {
			continue
		}
		if r == ')' {
			return l, true
		}
		return NoLetter, false
	}
	return NoLetter, false
}

// OptionText returns an option string without its "(X)" tag.
func OptionText(opt string) string {
	s := strings.TrimSpace(opt)
	if !strings.HasPrefix(s, "(") {
		return s
	}
	if i := strings.IndexByte(s, ')'); i >= 0 {
		return strings.TrimSpace(s[i+1:])
	}
	return s
}

// makeOption renders a normalized "(X) text" option.
func makeOption(tag, text string) string {
	text = strings.TrimSpace(text)
	if text == "" {
		return "(" + tag + ")"
	}
	return "(" + tag + ") " + text
}
