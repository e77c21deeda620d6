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
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/eslsoft/studyengine/internal/app"
	"github.com/eslsoft/studyengine/internal/entity"
	"github.com/eslsoft/studyengine/internal/infrastructure/autoplay"
	"github.com/eslsoft/studyengine/internal/usecase"
)

const studyWriteKey = "study.write"

var studyCmd = &cobra.Command{
	Use:   "study <file>",
	Short: "Run a spaced repetition session over a deck",
	Long: `Run a study session. Each card shows its front; flip it, then grade your
recall as again, hard, good or easy (or 0-3). Weak recalls come back later in
the session. With --write you type the answer and get a suggested grade from a
typo tolerant comparison. With --autoplay the session grades itself on a timer.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := initContainer()
		if err != nil {
			return err
		}

		items, err := loadDeck(cmd, c, args[0])
		if err != nil {
			return err
		}

		session, err := c.NewSession(items)
		if err != nil {
			return fmt.Errorf("start session: %w", err)
		}
		c.Logger.WithField("policy", session.Policy()).WithField("items", len(items)).Info("session started")

		out := cmd.OutOrStdout()
		if c.Config.Autoplay.Interval > 0 {
			if err := runAutoplay(cmd.Context(), c, session); err != nil {
				return err
			}
		} else {
			res := runStudy(newPrompter(cmd.InOrStdin(), out), session, viper.GetBool(studyWriteKey))
			if res.Aborted {
				fmt.Fprintln(out, "Session interrupted.")
			}
		}

		fmt.Fprintln(out)
		return writeSchedule(out, session)
	},
}

func init() {
	rootCmd.AddCommand(studyCmd)

	studyCmd.Flags().StringP("mode", "m", "", "session mode: traditional or adaptive")
	studyCmd.Flags().BoolP("write", "w", false, "type answers and judge them with typo tolerance")
	studyCmd.Flags().Int("again-offset", 0, "queue position for cards graded again (traditional mode)")
	studyCmd.Flags().Int("hard-offset", 0, "queue position for cards graded hard (traditional mode)")
	studyCmd.Flags().Duration("autoplay", 0, "grade the current card automatically at this interval")
	studyCmd.Flags().String("autoplay-grade", "", "grade used by autoplay")

	bindFlagToViper("study.mode", studyCmd.Flags().Lookup("mode"))
	bindFlagToViper(studyWriteKey, studyCmd.Flags().Lookup("write"))
	bindFlagToViper("study.again_offset", studyCmd.Flags().Lookup("again-offset"))
	bindFlagToViper("study.hard_offset", studyCmd.Flags().Lookup("hard-offset"))
	bindFlagToViper("autoplay.interval", studyCmd.Flags().Lookup("autoplay"))
	bindFlagToViper("autoplay.grade", studyCmd.Flags().Lookup("autoplay-grade"))
}

func runAutoplay(ctx context.Context, c *app.Container, session *usecase.SessionQueue) error {
	grade, err := entity.ParseGrade(c.Config.Autoplay.Grade)
	if err != nil {
		return err
	}
	driver, err := autoplay.New(session, grade, c.Config.Autoplay.Interval, c.Logger)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()
	if err := driver.Run(ctx); err != nil && ctx.Err() == nil {
		return fmt.Errorf("autoplay: %w", err)
	}
	return nil
}

type studyResult struct {
	Reviewed int
	Aborted  bool
}

func runStudy(p *prompter, session *usecase.SessionQueue, write bool) studyResult {
	var res studyResult
	for !session.IsSessionDone() {
		item, ok := session.CurrentItem()
		if !ok {
			session.Mark(entity.GradeGood)
			break
		}

		fmt.Fprintf(p.out, "\n(%d left) %s\n", session.Remaining(), item.Front)
		suggested := entity.GradeGood
		if write {
			answer, ok := p.ask("answer> ")
			if !ok {
				res.Aborted = true
				return res
			}
			if usecase.IsCorrectFuzzy(answer, item.Back) {
				fmt.Fprintln(p.out, "Correct!")
			} else {
				fmt.Fprintln(p.out, "Not quite.")
				suggested = entity.GradeAgain
			}
		} else if _, ok := p.ask("(enter to flip) "); !ok {
			res.Aborted = true
			return res
		}
		fmt.Fprintf(p.out, "  %s\n", item.Back)

		grade, ok := askGrade(p, suggested)
		if !ok {
			res.Aborted = true
			return res
		}
		session.Mark(grade)
		res.Reviewed++
	}
	return res
}

func askGrade(p *prompter, suggested entity.Grade) (entity.Grade, bool) {
	prompt := fmt.Sprintf("grade [again/hard/good/easy, enter = %s]> ", suggested)
	for {
		line, ok := p.ask(prompt)
		if !ok {
			return 0, false
		}
		if line == "" {
			return suggested, true
		}
		grade, err := entity.ParseGrade(line)
		if err == nil {
			return grade, true
		}
		fmt.Fprintln(p.out, err)
	}
}

func writeSchedule(w io.Writer, session *usecase.SessionQueue) error {
	states := session.States()
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "Front\tReps\tInterval\tEase\tNext review")
	for _, it := range session.Items() {
		st, ok := states[it.ID]
		if !ok {
			continue
		}
		fmt.Fprintf(tw, "%s\t%d\t%dd\t%.2f\t%s\n",
			it.Front, st.Repetitions, st.IntervalDays, st.Ease, st.DueDate.Local().Format(time.DateTime))
	}
	return tw.Flush()
}
