// Package prompt builds the instruction text sent to the language model for
// transcript summaries and quiz generation.
//
// The quiz layout requested here is parsed by package quiz. Changing one
// without the other breaks parsing; bump ContractVersion when the layout
// changes.
package prompt

import (
	"fmt"
	"strings"
)

// Kind selects which instruction set a prompt carries.
type Kind int

const (
	KindSummary Kind = iota
	KindQuiz
	// KindQuizJSON asks for the quiz as JSON; the layout comes from the
	// response schema instead of the prompt.
	KindQuizJSON
)

func (k Kind) String() string {
	switch k {
	case KindSummary:
		return "summary"
	case KindQuiz:
		return "quiz"
	case KindQuizJSON:
		return "quiz-json"
	default:
		return "unknown"
	}
}

// ContractVersion identifies the quiz text layout requested by KindQuiz.
const ContractVersion = "quiz-text/v1"

// QuizQuestionCount is how many questions a quiz prompt asks for.
const QuizQuestionCount = 10

const summarySystem = `You summarize video transcripts for students. Write plain text. Do not invent content that is not in the transcript.`

const quizSystem = `You write multiple-choice quizzes for students. Follow the requested layout exactly; it is parsed by a program.`

const quizJSONSystem = `You write multiple-choice quizzes for students. Answer only with JSON that matches the given schema.`

const summaryPolicy = `Based on the content in the following transcript, summarize appropriately, keeping in mind the type of content:

1. For conceptual content:
- Clearly explain the key concepts and ideas.
- Emphasize important points, definitions, and how they relate.
- Structure the summary logically so someone new to the topic can follow it.

2. For mathematical content:
- Include every relevant equation and the steps used to solve problems.
- Break each equation down step by step and explain the logic behind each step.
- Explain how to approach similar problems and why specific operations are used.
- Highlight formulas or rules that are critical to the solution.

3. Keep the summary realistic, with a natural flow.`

const quizPolicy = `Based on the following summary, generate %d multiple-choice questions with 4 options each.
The questions must be relevant to the video, and their style should follow the nature of the content:

1. For math-related content:
- Include mathematical expressions, equations, or problem-solving steps in the questions and options.
- Solve each math question step by step and use the evaluated result as the correct answer.
- The correct answer must be one of the four options, verified by evaluating the equation.
- Distractors should reflect common mistakes.
- The explanation must include every step needed to solve the problem.

2. For conceptual or non-math content:
- Write fact-based or conceptual questions that check understanding of the key points.
- Keep the questions accurate to the summary.
- Explain why the correct answer is right and why the others are wrong.

3. Evaluate every question and make sure its correct answer appears among the options.
4. Skip any question you could not evaluate or explain.`

const quizLayout = `Formatting. Use exactly this structure for every question, with nothing between questions except a blank line:

Question <N>: <question text or mathematical expression>
Options:
(A) <option text>
(B) <option text>
(C) <option text>
(D) <option text>
Correct Answer: (<letter>) <option text>
Explanation: <how to solve the problem or why the correct answer is best>`

const quizJSONLayout = `Return the questions as JSON. Give each option without a letter tag, list the options in order A to D, and set correct_answer to the letter of the correct option.`

// Build returns the complete user prompt for kind with fragment embedded
// verbatim.
func Build(kind Kind, fragment string) string {
	var b strings.Builder

	switch kind {
	case KindQuiz:
		fmt.Fprintf(&b, quizPolicy, QuizQuestionCount)
		b.WriteString("\n\n")
		b.WriteString(quizLayout)
		b.WriteString("\n\nHere is the summary of the video content to base the questions on:\n\n")
	case KindQuizJSON:
		fmt.Fprintf(&b, quizPolicy, QuizQuestionCount)
		b.WriteString("\n\n")
		b.WriteString(quizJSONLayout)
		b.WriteString("\n\nHere is the summary of the video content to base the questions on:\n\n")
	default:
		b.WriteString(summaryPolicy)
		b.WriteString("\n\nTranscript:\n\n")
	}

	b.WriteString(fragment)
	return b.String()
}

// SystemPrompt returns the short role line sent alongside a prompt of kind.
func SystemPrompt(kind Kind) string {
	switch kind {
	case KindQuiz:
		return quizSystem
	case KindQuizJSON:
		return quizJSONSystem
	}
	return summarySystem
}
