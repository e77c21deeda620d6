package usecase

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/samber/lo"
	"github.com/sirupsen/logrus"

	"github.com/eslsoft/studyengine/internal/entity"
)

// importDelimiters separate front from back; the first one found on a line wins.
const importDelimiters = ";\t,"

// ImportParser turns delimited text or spreadsheet rows into learnable items.
type ImportParser interface {
	Parse(text string) ([]entity.LearnableItem, error)
	ParseRows(rows [][]string) ([]entity.LearnableItem, error)
}

// ImportOption customises an ImportParser.
type ImportOption func(*importParser)

// WithIDGenerator replaces the uuid-based item id generator.
func WithIDGenerator(gen func() string) ImportOption {
	return func(p *importParser) {
		if gen != nil {
			p.newID = gen
		}
	}
}

// WithImportLogger reports dropped lines at debug level.
func WithImportLogger(logger logrus.FieldLogger) ImportOption {
	return func(p *importParser) {
		if logger != nil {
			p.logger = logger
		}
	}
}

// NewImportParser builds a parser assigning random UUIDs to items.
func NewImportParser(opts ...ImportOption) ImportParser {
	p := &importParser{
		newID:  uuid.NewString,
		logger: discardLogger(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

type importParser struct {
	newID  func() string
	logger logrus.FieldLogger
}

// Parse splits text into lines and each line on its first delimiter. Lines
// without a delimiter or with a blank face are dropped; only a parse that
// yields nothing fails.
func (p *importParser) Parse(text string) ([]entity.LearnableItem, error) {
	lines := strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n")
	items := make([]entity.LearnableItem, 0, len(lines))
	for n, line := range lines {
		cut := strings.IndexAny(line, importDelimiters)
		if cut < 0 {
			p.drop(n+1, "no delimiter")
			continue
		}
		item, ok := p.newItem(line[:cut], line[cut+1:], nil)
		if !ok {
			p.drop(n+1, "blank face")
			continue
		}
		items = append(items, item)
	}
	return p.result(items, len(lines))
}

// ParseRows reads spreadsheet-style rows: the first two non-blank cells are
// front and back, an optional third cell holds comma-separated tags.
func (p *importParser) ParseRows(rows [][]string) ([]entity.LearnableItem, error) {
	items := make([]entity.LearnableItem, 0, len(rows))
	for n, row := range rows {
		cells := lo.Compact(lo.Map(row, func(cell string, _ int) string {
			return strings.TrimSpace(cell)
		}))
		if len(cells) < 2 {
			p.drop(n+1, "fewer than two cells")
			continue
		}
		var tags []string
		if len(cells) > 2 {
			tags = strings.Split(cells[2], ",")
		}
		item, ok := p.newItem(cells[0], cells[1], tags)
		if !ok {
			p.drop(n+1, "blank face")
			continue
		}
		items = append(items, item)
	}
	return p.result(items, len(rows))
}

func (p *importParser) newItem(front, back string, tags []string) (entity.LearnableItem, bool) {
	item := entity.LearnableItem{Front: front, Back: back, Tags: tags}
	item.Normalize()
	if item.Front == "" || item.Back == "" {
		return entity.LearnableItem{}, false
	}
	item.ID = p.newID()
	return item, true
}

func (p *importParser) drop(line int, reason string) {
	p.logger.WithFields(logrus.Fields{"line": line, "reason": reason}).Debug("import line dropped")
}

func (p *importParser) result(items []entity.LearnableItem, inspected int) ([]entity.LearnableItem, error) {
	if len(items) == 0 {
		return nil, fmt.Errorf("%w: %d lines inspected", entity.ErrMalformedInput, inspected)
	}
	return items, nil
}
