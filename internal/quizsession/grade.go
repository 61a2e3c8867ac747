package quizsession

import (
	"fmt"
	"math"

	"github.com/samber/lo"

	"github.com/abhisek/tubequiz/internal/quiz"
)

// Verdict is the outcome for one question.
type Verdict string

const (
	VerdictCorrect      Verdict = "correct"
	VerdictIncorrect    Verdict = "incorrect"
	VerdictUnanswerable Verdict = "unanswerable"
)

const (
	CorrectMark   = "✅"
	IncorrectMark = "❌"
)

// QuestionResult is the graded view of one question.
type QuestionResult struct {
	Number           int      `json:"number"`
	Question         string   `json:"question"`
	UserAnswer       string   `json:"user_answer"`
	CorrectLetter    string   `json:"correct_letter"`
	CorrectAnswer    string   `json:"correct_answer"`
	Verdict          Verdict  `json:"verdict"`
	Result           string   `json:"result"`
	AnnotatedOptions []string `json:"annotated_options"`
	Explanation      string   `json:"explanation"`
}

// GradeReport is the immutable outcome of a graded quiz.
type GradeReport struct {
	Results      []QuestionResult `json:"results"`
	CorrectCount int              `json:"correct_count"`
	TotalCount   int              `json:"total_count"`
	ScorePercent float64          `json:"score_percent"`
}

// Grade scores answers against questions. answers[i] is the option string
// chosen for questions[i], or "" when unanswered.
func Grade(questions []quiz.Question, answers []string) GradeReport {
	results := make([]QuestionResult, len(questions))
	for i, q := range questions {
		var answer string
		if i < len(answers) {
			answer = answers[i]
		}
		results[i] = gradeOne(i+1, q, answer)
	}

	correct := lo.CountBy(results, func(r QuestionResult) bool {
		return r.Verdict == VerdictCorrect
	})

	return GradeReport{
		Results:      results,
		CorrectCount: correct,
		TotalCount:   len(questions),
		ScorePercent: scorePercent(correct, len(questions)),
	}
}

func gradeOne(number int, q quiz.Question, answer string) QuestionResult {
	userLetter, userOK := quiz.LetterOf(answer)

	verdict := VerdictUnanswerable
	if userOK && q.HasCorrectLetter() {
		if userLetter == q.CorrectLetter {
			verdict = VerdictCorrect
		} else {
			verdict = VerdictIncorrect
		}
	}

	correctAnswer := q.CorrectLetter.String()
	if opt, ok := q.CorrectOption(); ok {
		correctAnswer = opt
	}

	annotated := lo.Map(q.Options, func(opt string, _ int) string {
		l, ok := quiz.LetterOf(opt)
		switch {
		case !ok:
			return opt
		case q.HasCorrectLetter() && l == q.CorrectLetter:
			return opt + " " + CorrectMark
		case verdict == VerdictIncorrect && l == userLetter:
			return opt + " " + IncorrectMark
		}
		return opt
	})

	return QuestionResult{
		Number:           number,
		Question:         q.Text,
		UserAnswer:       answer,
		CorrectLetter:    q.CorrectLetter.String(),
		CorrectAnswer:    correctAnswer,
		Verdict:          verdict,
		Result:           resultText(verdict, q.CorrectLetter),
		AnnotatedOptions: annotated,
		Explanation:      q.Explanation,
	}
}

func resultText(v Verdict, correct quiz.Letter) string {
	switch v {
	case VerdictCorrect:
		return "Correct! " + CorrectMark
	case VerdictIncorrect:
		return fmt.Sprintf("Incorrect %s. The correct answer is %s", IncorrectMark, correct)
	default:
		return "No answer selected or incorrect answer parsing"
	}
}

// scorePercent rounds half away from zero to two decimals.
func scorePercent(correct, total int) float64 {
	if total == 0 {
		return 0
	}
	return math.Round(float64(correct)/float64(total)*100*100) / 100
}

// FormatScore renders a score the way reports show it, e.g. "66.67%".
func FormatScore(p float64) string {
	return fmt.Sprintf("%.2f%%", p)
}
