package quiz

import (
	"fmt"
	"slices"
	"strings"
)

// parseState is the accumulator's position relative to the open question.
type parseState int

const (
	// stateIdle: no question is open.
	stateIdle parseState = iota
	// stateAccumulating: a question is open and no option has been seen, so
	// plain lines extend its text.
	stateAccumulating
	// stateOptions: the open question has at least one option.
	stateOptions
)

type parser struct {
	state     parseState
	current   Question
	textLines []string
	out       []Question
}

// Parse converts raw generated quiz text into questions, in the order they
// appear. It never fails: malformed blocks without options are dropped and
// short or inconsistent blocks are repaired (see Question.Repairs). Callers
// decide whether the count is enough.
func Parse(raw string) []Question {
	p := &parser{}
	for line := range ClassifyAll(raw) {
		p.feed(line)
	}
	p.commit()

	for i := range p.out {
		normalize(&p.out[i])
	}
	return p.out
}

func (p *parser) feed(line Line) {
	switch line.Kind {
	case KindQuestionStart:
		p.commit()
		p.current = Question{}
		p.textLines = p.textLines[:0]
		if line.Text != "" {
			p.textLines = append(p.textLines, line.Text)
		}
		p.state = stateAccumulating

	case KindPlain:
		if p.state == stateAccumulating {
			p.textLines = append(p.textLines, line.Text)
		}

	case KindOption:
		if p.state == stateIdle {
			return
		}
		if p.state == stateAccumulating {
			p.current.Text = questionText(p.textLines)
			p.state = stateOptions
		}
		p.current.Options = append(p.current.Options, makeOption(line.Letter.String(), line.Text))

	case KindAnswer:
		if p.state != stateIdle && line.Letter != NoLetter {
			p.current.CorrectLetter = line.Letter
		}

	case KindExplanation:
		if p.state != stateIdle {
			p.current.Explanation = line.Text
		}
	}
}

// commit appends the open question if it reached the options stage.
func (p *parser) commit() {
	if p.state == stateOptions && len(p.current.Options) > 0 {
		p.out = append(p.out, p.current)
	}
	p.state = stateIdle
	p.current = Question{}
}

// questionText joins accumulated lines and drops a trailing "Options:" marker.
func questionText(lines []string) string {
	text := strings.TrimSpace(strings.Join(lines, " "))
	const marker = "options:"
	if strings.HasSuffix(strings.ToLower(text), marker) {
		text = strings.TrimSpace(text[:len(text)-len(marker)])
	}
	return text
}

// normalize enforces the Question invariants and records each repair.
func normalize(q *Question) {
	if len(q.Options) > OptionCount {
		q.Repairs = append(q.Repairs, fmt.Sprintf("dropped %d extra options", len(q.Options)-OptionCount))
		q.Options = q.Options[:OptionCount]
	}

	if missing := OptionCount - len(q.Options); missing > 0 {
		for range missing {
			q.Options = append(q.Options, makeOption(freeTag(q.Options), PlaceholderText))
		}
		q.Repairs = append(q.Repairs, fmt.Sprintf("padded %d missing options", missing))
	}

	if strings.TrimSpace(q.Explanation) == "" {
		q.Explanation = NoExplanation
	}

	if q.HasCorrectLetter() {
		if _, ok := q.Option(q.CorrectLetter); !ok {
			q.Repairs = append(q.Repairs, fmt.Sprintf("correct letter %s matches no option", q.CorrectLetter))
			q.CorrectLetter = NoLetter
		}
	}
}

// freeTag returns the first letter not used by opts, or "N/A" when all four
// are taken.
func freeTag(opts []string) string {
	used := make([]Letter, 0, len(opts))
	for _, o := range opts {
		if l, ok := LetterOf(o); ok {
			used = append(used, l)
		}
	}
	for _, l := range Letters {
		if !slices.Contains(used, l) {
			return l.String()
		}
	}
	return overflowTag
}
