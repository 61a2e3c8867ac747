package quiz

import (
	"fmt"
	"math/big"
	"regexp"
	"slices"
	"strings"
)

// Solution is the solved form of a single-variable linear relation.
type Solution struct {
	Relation string
	Value    *big.Rat
}

// String renders the solution the way a synthesized option shows it.
func (s Solution) String() string {
	return fmt.Sprintf("x %s %s", s.Relation, formatRat(s.Value))
}

// linearRe matches "<coef?> x [+/- b] <rel> <c>", e.g. "2x = 10",
// "3x + 4 = 19", "-x >= 2", "0.5 * x - 1 < 3". Group 1 spans the whole
// relation.
var linearRe = regexp.MustCompile(
	`(?:^|[^A-Za-z0-9.])((-?\d+(?:\.\d+)?|-)?\s*\*?\s*[xX]\s*(?:([+-])\s*(\d+(?:\.\d+)?))?\s*(<=|>=|≤|≥|=|<|>)\s*(-?\d+(?:\.\d+)?))`,
)

// termBefore matches text ending in a number or operator, so the relation
// found after it is only part of a longer expression ("4 + 2x = 10").
var termBefore = regexp.MustCompile(`[0-9)+\-*/^=<>≤≥]\s*$`)

// termAfter matches text that continues the right-hand side ("5x + 6").
var termAfter = regexp.MustCompile(`^\s*(?:[xX*/^(0-9]|[+-]\s*[0-9xX(])`)

// solveCue is the word that marks a question as a solvable math problem.
const solveCue = "solve"

// ExtractLinear finds and solves the first linear relation in text.
func ExtractLinear(text string) (Solution, error) {
	idx := linearRe.FindStringSubmatchIndex(text)
	if idx == nil {
		return Solution{}, fmt.Errorf("no linear equation found")
	}
	start, end := idx[2], idx[3]
	if termBefore.MatchString(text[:start]) || termAfter.MatchString(text[end:]) {
		return Solution{}, fmt.Errorf("%q is part of a longer expression", text[start:end])
	}
	m := make([]string, len(idx)/2)
	for i := range m {
		if idx[2*i] >= 0 {
			m[i] = text[idx[2*i]:idx[2*i+1]]
		}
	}
	m = m[1:]

	a := big.NewRat(1, 1)
	switch m[1] {
	case "":
	case "-":
		a.SetInt64(-1)
	default:
		if _, ok := a.SetString(m[1]); !ok {
			return Solution{}, fmt.Errorf("bad coefficient %q", m[1])
		}
	}
	if a.Sign() == 0 {
		return Solution{}, fmt.Errorf("zero coefficient")
	}

	b := new(big.Rat)
	if m[3] != "" {
		if _, ok := b.SetString(m[3]); !ok {
			return Solution{}, fmt.Errorf("bad constant %q", m[3])
		}
		if m[2] == "-" {
			b.Neg(b)
		}
	}

	c, ok := new(big.Rat).SetString(m[5])
	if !ok {
		return Solution{}, fmt.Errorf("bad right-hand side %q", m[5])
	}

	// a*x + b REL c  =>  x REL' (c - b) / a
	value := new(big.Rat).Sub(c, b)
	value.Quo(value, a)

	rel := normalizeRelation(m[4])
	if a.Sign() < 0 {
		rel = flipRelation(rel)
	}
	return Solution{Relation: rel, Value: value}, nil
}

// VerifyMath checks a "solve" question against its own equation. When the
// solved value appears in no option, the last option is replaced with the
// solution (keeping its letter tag) and CorrectLetter is moved to it. The
// second return reports whether the question changed. Questions without the
// cue or without a solvable equation pass through unchanged.
func VerifyMath(q Question) (Question, bool) {
	if !strings.Contains(strings.ToLower(q.Text), solveCue) || len(q.Options) == 0 {
		return q, false
	}

	sol, err := ExtractLinear(q.Text)
	if err != nil {
		return q, false
	}

	forms := valueForms(sol.Value)
	for _, opt := range q.Options {
		for _, f := range forms {
			if strings.Contains(opt, f) {
				return q, false
			}
		}
	}

	out := q
	out.Options = slices.Clone(q.Options)
	out.Repairs = slices.Clone(q.Repairs)

	last := len(out.Options) - 1
	tag := optionTag(out.Options[last])
	out.Options[last] = makeOption(tag, sol.String())

	prev := q.CorrectLetter
	if l, ok := LetterOf(out.Options[last]); ok {
		out.CorrectLetter = l
	}
	out.Repairs = append(out.Repairs, fmt.Sprintf(
		"math: solved %s, replaced option %s and moved correct letter from %q to %q",
		sol, tag, prev.String(), out.CorrectLetter.String()))
	return out, true
}

// VerifyAll applies VerifyMath to every question and returns the result.
func VerifyAll(questions []Question) []Question {
	out := make([]Question, len(questions))
	for i, q := range questions {
		out[i], _ = VerifyMath(q)
	}
	return out
}

// valueForms lists the textual spellings an option may use for v.
func valueForms(v *big.Rat) []string {
	forms := []string{formatRat(v)}
	if !v.IsInt() {
		if rs := v.RatString(); !slices.Contains(forms, rs) {
			forms = append(forms, rs)
		}
	}
	return forms
}

// formatRat prints integers plainly, terminating fractions as decimals and
// everything else as p/q.
func formatRat(v *big.Rat) string {
	if v.IsInt() {
		return v.Num().String()
	}
	dec := strings.TrimRight(v.FloatString(6), "0")
	if back, ok := new(big.Rat).SetString(dec); ok && back.Cmp(v) == 0 {
		return dec
	}
	return v.RatString()
}

// optionTag returns the text inside an option's leading parentheses.
func optionTag(opt string) string {
	s := strings.TrimSpace(opt)
	if strings.HasPrefix(s, "(") {
		if i := strings.IndexByte(s, ')'); i > 0 {
			return strings.TrimSpace(s[1:i])
		}
	}
	return "D"
}

func normalizeRelation(rel string) string {
	switch rel {
	case "≤":
		return "<="
	case "≥":
		return ">="
	}
	return rel
}

func flipRelation(rel string) string {
	switch rel {
	case "<":
		return ">"
	case ">":
		return "<"
	case "<=":
		return ">="
	case ">=":
		return "<="
	}
	return rel
}
