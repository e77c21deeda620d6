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
	"bufio"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/eslsoft/studyengine/internal/adapter/sheet"
	"github.com/eslsoft/studyengine/internal/app"
	"github.com/eslsoft/studyengine/internal/entity"
	"github.com/eslsoft/studyengine/internal/infrastructure/config"
)

const (
	deckSheetKey  = "deck.sheet"
	deckHeaderKey = "deck.header"
)

func bindFlagToViper(key string, flag *pflag.Flag) {
	if flag == nil {
		return
	}
	cobra.CheckErr(viper.BindPFlag(key, flag))
}

func initContainer() (*app.Container, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	c, err := app.Initialize(cfg)
	if err != nil {
		return nil, fmt.Errorf("init app: %w", err)
	}
	return c, nil
}

// loadDeck reads path ("-" for stdin) and applies the configured filter and
// ordering.
func loadDeck(cmd *cobra.Command, c *app.Container, path string) ([]entity.LearnableItem, error) {
	source := c.Source
	if sheetName, header := viper.GetString(deckSheetKey), viper.GetBool(deckHeaderKey); sheetName != "" || header {
		source = c.Source.With(sheet.WithSheet(sheetName), sheet.WithHeader(header))
	}

	var (
		items []entity.LearnableItem
		err   error
	)
	if path == "-" {
		items, err = source.Read(cmd.InOrStdin())
	} else {
		items, err = source.Load(filepath.Clean(path))
	}
	if err != nil {
		return nil, err
	}

	selected, err := c.Selector.Select(items)
	if err != nil {
		return nil, fmt.Errorf("select deck: %w", err)
	}
	c.Logger.WithFields(logrus.Fields{"path": path, "imported": len(items), "selected": len(selected)}).Debug("deck loaded")
	return selected, nil
}

// prompter reads one answer per line.
type prompter struct {
	in  *bufio.Scanner
	out io.Writer
}

func newPrompter(in io.Reader, out io.Writer) *prompter {
	return &prompter{in: bufio.NewScanner(in), out: out}
}

// ask prints prompt and returns the next input line. ok is false at end of input.
func (p *prompter) ask(prompt string) (line string, ok bool) {
	fmt.Fprint(p.out, prompt)
	if !p.in.Scan() {
		fmt.Fprintln(p.out)
		return "", false
	}
	return strings.TrimSpace(p.in.Text()), true
}
