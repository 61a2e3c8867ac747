package quiz

import (
	"fmt"
	"strings"
)

// Format serializes questions in the same layout the generator is asked to
// produce, so Parse(Format(qs)) yields equivalent questions. The one lossy
// case is an "(N/A)" placeholder: Parse only reads options tagged A-D, so the
// slot comes back as a placeholder under the first free letter.
func Format(questions []Question) string {
	var b strings.Builder
	for i, q := range questions {
		if i > 0 {
			b.WriteString("\n")
		}
		fmt.Fprintf(&b, "Question %d: %s\n", i+1, q.Text)
		b.WriteString("Options:\n")
		for _, opt := range q.Options {
			b.WriteString(opt)
			b.WriteString("\n")
		}
		if q.HasCorrectLetter() {
			answer := "(" + q.CorrectLetter.String() + ")"
			if opt, ok := q.CorrectOption(); ok {
				if text := OptionText(opt); text != "" {
					answer += " " + text
				}
			}
			fmt.Fprintf(&b, "Correct Answer: %s\n", answer)
		}
		fmt.Fprintf(&b, "Explanation: %s\n", q.Explanation)
	}
	return b.String()
}
