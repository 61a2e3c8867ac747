// Package report renders graded quizzes for display and export.
package report

import (
	"fmt"
	"strings"

	"github.com/abhisek/tubequiz/internal/quizsession"
)

const (
	// Title heads every exported report.
	Title = "Quiz Results"

	// DefaultResultsFile is the default export name for a graded quiz.
	DefaultResultsFile = "quiz_results.pdf"

	// DefaultSummaryFile is the default name for a saved summary.
	DefaultSummaryFile = "youtube_summary.txt"

	noAnswer = "No answer"
)

// Header returns the two-line score header.
func Header(r quizsession.GradeReport) string {
	return fmt.Sprintf("You got %d out of %d questions correct.\nYour score: %s",
		r.CorrectCount, r.TotalCount, quizsession.FormatScore(r.ScorePercent))
}

// Text renders the report for the terminal, marks included.
func Text(r quizsession.GradeReport) string {
	var b strings.Builder
	b.WriteString(Header(r))
	b.WriteString("\n")
	for _, res := range r.Results {
		b.WriteString("\n")
		b.WriteString(QuestionText(res))
	}
	return b.String()
}

// QuestionText renders one graded question.
func QuestionText(res quizsession.QuestionResult) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Question %d: %s\n", res.Number, res.Question)
	fmt.Fprintf(&b, "Your answer: %s\n", userAnswer(res))
	fmt.Fprintf(&b, "Result: %s\n", res.Result)
	b.WriteString("Options:\n")
	for _, opt := range res.AnnotatedOptions {
		b.WriteString(opt)
		b.WriteString("\n")
	}
	if res.Explanation != "" {
		fmt.Fprintf(&b, "Feedback: %s\n", res.Explanation)
	}
	return b.String()
}

func userAnswer(res quizsession.QuestionResult) string {
	if res.UserAnswer == "" {
		return noAnswer
	}
	return res.UserAnswer
}
