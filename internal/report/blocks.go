package report

import (
	"fmt"
	"strings"

	"github.com/abhisek/tubequiz/internal/quizsession"
)

// BlockKind selects how a sink lays out a block.
type BlockKind int

const (
	BlockScore BlockKind = iota // Bold summary line
	BlockBody                   // Wrapped paragraph
	BlockGap                    // Vertical space between questions
)

// Block is one export unit. Text is ASCII only.
type Block struct {
	Kind BlockKind
	Text string
}

// Blocks lays out a report for export. Marks are replaced with plain text
// and any other non-ASCII rune becomes '?', so every sink can encode it.
func Blocks(r quizsession.GradeReport) []Block {
	out := []Block{
		{Kind: BlockScore, Text: fmt.Sprintf("Total Correct: %d out of %d", r.CorrectCount, r.TotalCount)},
		{Kind: BlockScore, Text: "Score: " + quizsession.FormatScore(r.ScorePercent)},
		{Kind: BlockGap},
	}

	for _, res := range r.Results {
		head := fmt.Sprintf("Question %d: %s\nYour answer: %s\nResult: %s",
			res.Number, res.Question, userAnswer(res), res.Result)
		opts := "Options:\n" + strings.Join(res.AnnotatedOptions, "\n")
		feedback := "Feedback: " + res.Explanation

		out = append(out,
			Block{Kind: BlockBody, Text: ASCII(head)},
			Block{Kind: BlockBody, Text: ASCII(opts)},
			Block{Kind: BlockBody, Text: ASCII(feedback)},
			Block{Kind: BlockGap},
		)
	}
	return out
}

var markReplacer = strings.NewReplacer(
	" "+quizsession.CorrectMark, " [~]",
	quizsession.CorrectMark, "[~]",
	" "+quizsession.IncorrectMark, "",
	quizsession.IncorrectMark, "",
)

// ASCII replaces result marks and maps remaining non-ASCII runes to '?'.
func ASCII(s string) string {
	s = markReplacer.Replace(s)
	return strings.Map(func(r rune) rune {
		if r > 0x7e || (r < 0x20 && r != '\n' && r != '\t') {
			return '?'
		}
		return r
	}, s)
}
