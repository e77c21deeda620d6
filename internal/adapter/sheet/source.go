// Package sheet loads learnable items from spreadsheets and delimited text
// files.
package sheet

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/eslsoft/studyengine/internal/entity"
	"github.com/eslsoft/studyengine/internal/usecase"
)

var workbookExts = map[string]bool{".xlsx": true, ".xlsm": true, ".xltx": true, ".xltm": true}

// Source reads files and hands their content to an ImportParser.
type Source struct {
	parser     usecase.ImportParser
	sheetName  string
	skipHeader bool
}

// Option customises a Source.
type Option func(*Source)

// WithSheet reads the named worksheet instead of the first one.
func WithSheet(name string) Option {
	return func(s *Source) { s.sheetName = name }
}

// WithHeader skips the first row of every worksheet.
func WithHeader(skip bool) Option {
	return func(s *Source) { s.skipHeader = skip }
}

// NewSource creates a Source around parser.
func NewSource(parser usecase.ImportParser, opts ...Option) *Source {
	s := &Source{parser: parser}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// With returns a copy of s with opts applied.
func (s *Source) With(opts ...Option) *Source {
	c := *s
	for _, opt := range opts {
		opt(&c)
	}
	return &c
}

// Load parses path as a workbook when its extension says so, and as
// delimited text otherwise.
func (s *Source) Load(path string) ([]entity.LearnableItem, error) {
	if workbookExts[strings.ToLower(filepath.Ext(path))] {
		return s.loadWorkbook(path)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return s.parse(path, string(data))
}

// Read parses delimited text from r.
func (s *Source) Read(r io.Reader) ([]entity.LearnableItem, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read input: %w", err)
	}
	return s.parse("input", string(data))
}

func (s *Source) parse(name, text string) ([]entity.LearnableItem, error) {
	items, err := s.parser.Parse(text)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", name, err)
	}
	return items, nil
}

func (s *Source) loadWorkbook(path string) ([]entity.LearnableItem, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open workbook %s: %w", path, err)
	}
	defer f.Close()

	sheet := s.sheetName
	if sheet == "" {
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return nil, fmt.Errorf("%w: workbook %s has no sheets", entity.ErrMalformedInput, path)
		}
		sheet = sheets[0]
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", sheet, err)
	}
	if s.skipHeader && len(rows) > 0 {
		rows = rows[1:]
	}

	items, err := s.parser.ParseRows(rows)
	if err != nil {
		return nil, fmt.Errorf("parse sheet %q: %w", sheet, err)
	}
	return items, nil
}
