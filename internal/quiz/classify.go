package quiz

import (
	"iter"
	"regexp"
	"strings"
)

// LineKind tags what a single line of quiz text is.
type LineKind int

const (
	KindBlank LineKind = iota
	KindPlain
	KindQuestionStart
	KindOption
	KindAnswer
	KindExplanation
)

func (k LineKind) String() string {
	switch k {
	case KindBlank:
		return "blank"
	case KindPlain:
		return "plain"
	case KindQuestionStart:
		return "question"
	case KindOption:
		return "option"
	case KindAnswer:
		return "answer"
	case KindExplanation:
		return "explanation"
	default:
		return "unknown"
	}
}

// Line is a cleaned, classified line.
type Line struct {
	Kind LineKind

	// Text is the cleaned line for Plain, or the payload after the marker
	// for QuestionStart, Option and Explanation.
	Text string

	// Letter is set for Option lines, and for Answer lines when a letter
	// could be found.
	Letter Letter
}

var (
	questionRe    = regexp.MustCompile(`(?i)^[#>\s]*question\s*\d+\s*:\s*(.*)$`)
	optionRe      = regexp.MustCompile(`^(?:[-•]\s*)?\(\s*([A-Da-d])\s*\)\s*(.*)$`)
	answerRe      = regexp.MustCompile(`(?i)^correct\s+answer\s*:\s*(.*)$`)
	explanationRe = regexp.MustCompile(`(?i)^explanation\s*:\s*(.*)$`)

	taggedLetterRe = regexp.MustCompile(`\(\s*([A-Da-d])\s*\)`)
	bareLetterRe   = regexp.MustCompile(`^([A-Da-d])(?:[^A-Za-z]|$)`)

	newlineRunRe = regexp.MustCompile(`\n+`)
)

// cleanLine drops emphasis markup and stray line breaks, then trims.
func cleanLine(s string) string {
	s = strings.ReplaceAll(s, "**", "")
	s = strings.ReplaceAll(s, ":\n", "")
	s = newlineRunRe.ReplaceAllString(s, "")
	return strings.TrimSpace(s)
}

// Classify cleans one raw line and tags it.
func Classify(raw string) Line {
	s := cleanLine(raw)
	if s == "" {
		return Line{Kind: KindBlank}
	}

	if m := questionRe.FindStringSubmatch(s); m != nil {
		return Line{Kind: KindQuestionStart, Text: strings.TrimSpace(m[1])}
	}
	if m := optionRe.FindStringSubmatch(s); m != nil {
		l, _ := ParseLetter(rune(m[1][0]))
		return Line{Kind: KindOption, Letter: l, Text: strings.TrimSpace(m[2])}
	}
	if m := answerRe.FindStringSubmatch(s); m != nil {
		return Line{Kind: KindAnswer, Letter: answerLetter(m[1]), Text: strings.TrimSpace(m[1])}
	}
	if m := explanationRe.FindStringSubmatch(s); m != nil {
		return Line{Kind: KindExplanation, Text: strings.TrimSpace(m[1])}
	}
	return Line{Kind: KindPlain, Text: s}
}

// answerLetter finds the letter in the body of a "Correct Answer:" line.
// The first parenthesized letter wins ("(B) 42", "All of the above (D)");
// otherwise a bare leading letter ("B", "c. 12").
func answerLetter(body string) Letter {
	m := taggedLetterRe.FindStringSubmatch(body)
	if m == nil {
		m = bareLetterRe.FindStringSubmatch(body)
	}
	if m == nil {
		return NoLetter
	}
	l, _ := ParseLetter(rune(m[1][0]))
	return l
}

// ClassifyAll streams the classified lines of text in order.
func ClassifyAll(text string) iter.Seq[Line] {
	return func(yield func(Line) bool) {
		for raw := range strings.SplitSeq(text, "\n") {
			if !yield(Classify(raw)) {
				return
			}
		}
	}
}
