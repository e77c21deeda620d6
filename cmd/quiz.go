/*
Copyright © 2025 Ambor <saltbo@foxmail.com>

Permission is hereby granted, free of charge, to any person obtaining a copy
of this software and associated documentation files (the "Software"), to deal
in the Software without restriction, including without limitation the rights
to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
copies of the Software, and to permit persons to whom the Software is
furnished to do so, subject to the following conditions:

The above copyright notice and this permission notice shall be included in
all copies or substantial portions of the Software.

THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
THE SOFTWARE.
*/
package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/eslsoft/studyengine/internal/entity"
	"github.com/eslsoft/studyengine/internal/usecase"
)

var quizCmd = &cobra.Command{
	Use:   "quiz <file|->",
	Short: "Take a practice test built from a deck",
	Long: `Build a multiple-choice test (or a mixed test with true/false and short
answer questions when --mixed is set) and answer it interactively. Options can
be answered by text or by number.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		// Stdin carries the answers.
		if args[0] == "-" {
			return fmt.Errorf("quiz needs a deck file, stdin is reserved for answers")
		}

		c, err := initContainer()
		if err != nil {
			return err
		}

		items, err := loadDeck(cmd, c, args[0])
		if err != nil {
			return err
		}

		var questions []entity.SynthesizedQuestion
		if c.Config.Quiz.Mixed {
			questions, err = c.Synthesizer.BuildMixedTest(items, c.Config.Quiz.Count)
		} else {
			questions, err = c.Synthesizer.BuildMultipleChoice(items, c.Config.Quiz.Count)
		}
		if err != nil {
			return fmt.Errorf("build test: %w", err)
		}

		res := runQuiz(newPrompter(cmd.InOrStdin(), cmd.OutOrStdout()), c.Synthesizer, questions)
		fmt.Fprintf(cmd.OutOrStdout(), "\nScore: %d/%d\n", res.Correct, res.Answered)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(quizCmd)

	quizCmd.Flags().IntP("count", "n", 0, "number of items to sample (default from quiz.count, 0 = whole deck)")
	quizCmd.Flags().Bool("mixed", false, "mix multiple choice, true/false and short answer questions")

	bindFlagToViper("quiz.count", quizCmd.Flags().Lookup("count"))
	bindFlagToViper("quiz.mixed", quizCmd.Flags().Lookup("mixed"))
}

type quizResult struct {
	Answered int
	Correct  int
}

func runQuiz(p *prompter, grader usecase.QuestionSynthesizer, questions []entity.SynthesizedQuestion) quizResult {
	var res quizResult
	for i, q := range questions {
		fmt.Fprintf(p.out, "\n[%d/%d] %s\n", i+1, len(questions), q.Prompt)
		switch q.Kind {
		case entity.QuestionMultipleChoice:
			printOptions(p.out, q.Options)
		case entity.QuestionTrueFalse:
			fmt.Fprintf(p.out, "  %s\n", q.Statement)
			printOptions(p.out, q.Options)
		}

		answer, ok := p.ask("> ")
		if !ok {
			break
		}
		res.Answered++
		if grader.Grade(q, answer) {
			res.Correct++
			fmt.Fprintln(p.out, "Correct!")
		} else {
			fmt.Fprintf(p.out, "Wrong, the answer is: %s\n", q.Answer())
		}
	}
	return res
}

func printOptions(w io.Writer, options []string) {
	for i, opt := range options {
		fmt.Fprintf(w, "  %d) %s\n", i+1, opt)
	}
}
