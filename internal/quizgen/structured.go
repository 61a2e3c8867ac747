package quizgen

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/abhisek/tubequiz/internal/apperr"
	"github.com/abhisek/tubequiz/internal/llm"
	"github.com/abhisek/tubequiz/internal/quiz"
)

// QuizSchema is the response schema used in structured mode. Providers send
// it through their native structured-output mechanism.
var QuizSchema = &llm.Schema{
	Name:        "quiz-questions",
	Description: "A multiple-choice quiz about a video summary",
	Definition: map[string]any{
		"type":                 "object",
		"required":             []any{"questions"},
		"additionalProperties": false,
		"properties": map[string]any{
			"questions": map[string]any{
				"type": "array",
				"items": map[string]any{
					"type":                 "object",
					"required":             []any{"question", "options", "correct_answer", "explanation"},
					"additionalProperties": false,
					"properties": map[string]any{
						"question": map[string]any{"type": "string"},
						"options": map[string]any{
							"type":     "array",
							"items":    map[string]any{"type": "string"},
							"minItems": 1,
						},
						"correct_answer": map[string]any{"type": "string", "enum": []any{"A", "B", "C", "D"}},
						"explanation":    map[string]any{"type": "string"},
					},
				},
			},
		},
	},
}

type structuredQuiz struct {
	Questions []structuredQuestion `json:"questions"`
}

type structuredQuestion struct {
	Question      string   `json:"question"`
	Options       []string `json:"options"`
	CorrectAnswer string   `json:"correct_answer"`
	Explanation   string   `json:"explanation"`
}

// structuredText turns a JSON quiz into the text layout, so structured and
// text responses share one parser and the same repairs.
func structuredText(raw json.RawMessage) (string, error) {
	var sq structuredQuiz
	if err := json.Unmarshal(raw, &sq); err != nil {
		return "", fmt.Errorf("%w: decode quiz JSON: %v", apperr.ErrUnavailable, err)
	}

	questions := make([]quiz.Question, 0, len(sq.Questions))
	for _, q := range sq.Questions {
		out := quiz.Question{
			Text:        strings.TrimSpace(q.Question),
			Explanation: strings.TrimSpace(q.Explanation),
		}
		for i, opt := range q.Options {
			if i >= len(quiz.Letters) {
				break
			}
			opt = strings.TrimSpace(opt)
			if !strings.HasPrefix(opt, "(") {
				opt = "(" + quiz.Letters[i].String() + ") " + opt
			}
			out.Options = append(out.Options, opt)
		}
		if r := []rune(strings.Trim(strings.TrimSpace(q.CorrectAnswer), "()")); len(r) > 0 {
			out.CorrectLetter, _ = quiz.ParseLetter(r[0])
		}
		questions = append(questions, out)
	}
	return quiz.Format(questions), nil
}
