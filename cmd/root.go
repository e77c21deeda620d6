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
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "studyengine",
	Short: "Spaced repetition study sessions and quizzes from flashcard decks",
	Long: `studyengine imports flashcard decks from delimited text or spreadsheets,
runs spaced repetition study sessions over them and builds practice tests.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().String("log-level", "", "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().String("log-format", "", "log format (json or text)")
	rootCmd.PersistentFlags().Int64("seed", 0, "random seed for shuffles (0 = time based)")
	rootCmd.PersistentFlags().String("filter", "", `CEL filter over the deck, e.g. 'starred && "verbs" in tags'`)
	rootCmd.PersistentFlags().String("order-by", "", "deck order, e.g. 'front desc, back'")
	rootCmd.PersistentFlags().String("sheet", "", "worksheet to read from .xlsx decks (default: first sheet)")
	rootCmd.PersistentFlags().Bool("header", false, "skip the first row of .xlsx decks")

	bindFlagToViper("log.level", rootCmd.PersistentFlags().Lookup("log-level"))
	bindFlagToViper("log.format", rootCmd.PersistentFlags().Lookup("log-format"))
	bindFlagToViper("study.seed", rootCmd.PersistentFlags().Lookup("seed"))
	bindFlagToViper("study.filter", rootCmd.PersistentFlags().Lookup("filter"))
	bindFlagToViper("study.order_by", rootCmd.PersistentFlags().Lookup("order-by"))
	bindFlagToViper(deckSheetKey, rootCmd.PersistentFlags().Lookup("sheet"))
	bindFlagToViper(deckHeaderKey, rootCmd.PersistentFlags().Lookup("header"))
}
