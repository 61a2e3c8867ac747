package quiz

import "testing"

func TestClassify(t *testing.T) {
	tests := []struct {
		raw    string
		kind   LineKind
		text   string
		letter Letter
	}{
		{"", KindBlank, "", NoLetter},
		{"   ", KindBlank, "", NoLetter},
		{"Question 1: What is Go?", KindQuestionStart, "What is Go?", NoLetter},
		{"**Question 12:** Which year?", KindQuestionStart, "Which year?", NoLetter},
		{"## question 3:", KindQuestionStart, "", NoLetter},
		{"(A) A language", KindOption, "A language", 'A'},
		{"( b )  lower case", KindOption, "lower case", 'B'},
		{"- (C) bulleted", KindOption, "bulleted", 'C'},
		{"(E) out of range", KindPlain, "(E) out of range", NoLetter},
		{"Correct Answer: (B) 42", KindAnswer, "(B) 42", 'B'},
		{"correct answer: d", KindAnswer, "d", 'D'},
		{"Correct Answer: c. twelve", KindAnswer, "c. twelve", 'C'},
		{"Correct Answer: A triangle (C)", KindAnswer, "A triangle (C)", 'C'},
		{"Correct Answer: Always", KindAnswer, "Always", NoLetter},
		{"Explanation: Because.", KindExplanation, "Because.", NoLetter},
		{"Options:", KindPlain, "Options:", NoLetter},
		{"continued text", KindPlain, "continued text", NoLetter},
	}

	for _, tc := range tests {
		got := Classify(tc.raw)
		if got.Kind != tc.kind || got.Text != tc.text || got.Letter != tc.letter {
			t.Errorf("Classify(%q) = {%s %q %q}, want {%s %q %q}",
				tc.raw, got.Kind, got.Text, got.Letter, tc.kind, tc.text, tc.letter)
		}
	}
}

func TestClassifyAll_PreservesOrder(t *testing.T) {
	text := "Question 1: Q\n(A) a\n\nCorrect Answer: (A)"
	var kinds []LineKind
	for l := range ClassifyAll(text) {
		kinds = append(kinds, l.Kind)
	}
	want := []LineKind{KindQuestionStart, KindOption, KindBlank, KindAnswer}
	if len(kinds) != len(want) {
		t.Fatalf("got %d lines, want %d", len(kinds), len(want))
	}
	for i := range want {
		if kinds[i] != want[i] {
			t.Errorf("line %d: got %s, want %s", i, kinds[i], want[i])
		}
	}
}

func TestLetterOf(t *testing.T) {
	tests := []struct {
		in   string
		want Letter
		ok   bool
	}{
		{"(A) text", 'A', true},
		{"  ( d ) text", 'D', true},
		{"(B)", 'B', true},
		{"A) text", NoLetter, false},
		{"(E) text", NoLetter, false},
		{"(AB) text", NoLetter, false},
		{"(N/A) Option not provided", NoLetter, false},
		{"", NoLetter, false},
	}
	for _, tc := range tests {
		got, ok := LetterOf(tc.in)
		if got != tc.want || ok != tc.ok {
			t.Errorf("LetterOf(%q) = (%q, %v), want (%q, %v)", tc.in, got, ok, tc.want, tc.ok)
		}
	}
}

func TestOptionText(t *testing.T) {
	if got := OptionText("(A) Paris"); got != "Paris" {
		t.Errorf("OptionText = %q, want Paris", got)
	}
	if got := OptionText("no tag"); got != "no tag" {
		t.Errorf("OptionText = %q, want %q", got, "no tag")
	}
}
