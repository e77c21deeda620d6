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
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/eslsoft/studyengine/internal/entity"
)

const importJSONKey = "import.json"

var importCmd = &cobra.Command{
	Use:   "import <file|->",
	Short: "Parse a deck and print the imported items",
	Long: `Parse a deck from a delimited text file, an .xlsx workbook or stdin ("-").
Each text line holds front and back separated by the first ';', tab or ','.
Lines without a delimiter or with a blank face are skipped.`,
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

		if viper.GetBool(importJSONKey) {
			return writeItemsJSON(cmd.OutOrStdout(), items)
		}
		return writeItemsTable(cmd.OutOrStdout(), items)
	},
}

func init() {
	rootCmd.AddCommand(importCmd)

	importCmd.Flags().Bool("json", false, "print items as JSON")

	bindFlagToViper(importJSONKey, importCmd.Flags().Lookup("json"))
}

type itemRecord struct {
	ID      string   `json:"id"`
	Front   string   `json:"front"`
	Back    string   `json:"back"`
	Tags    []string `json:"tags"`
	Media   string   `json:"media,omitempty"`
	Starred bool     `json:"starred,omitempty"`
}

func writeItemsJSON(w io.Writer, items []entity.LearnableItem) error {
	records := make([]itemRecord, len(items))
	for i, it := range items {
		records[i] = itemRecord(it)
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(records)
}

func writeItemsTable(w io.Writer, items []entity.LearnableItem) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tFront\tBack\tTags")
	for _, it := range items {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", it.ID, it.Front, it.Back, strings.Join(it.Tags, ", "))
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	_, err := fmt.Fprintf(w, "%d items imported\n", len(items))
	return err
}
