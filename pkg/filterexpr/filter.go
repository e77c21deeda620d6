package filterexpr

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/google/cel-go/cel"
)

// ValueKind describes the type a filter variable evaluates to.
type ValueKind string

const (
	KindString     ValueKind = "string"
	KindNumber     ValueKind = "number"
	KindBool       ValueKind = "bool"
	KindStringList ValueKind = "string_list"
)

// FilterField exposes one property of T to filter expressions.
type FilterField[T any] struct {
	Kind  ValueKind
	Value func(T) any
}

// OrderField makes one property of T usable in order_by.
type OrderField[T any] struct {
	Compare func(a, b T) int
}

// OrderSchema describes ordering defaults and whitelisted keys. An empty
// DefaultPrimary keeps the input order when order_by is blank.
type OrderSchema[T any] struct {
	DefaultPrimary     string
	DefaultPrimaryDesc bool
	FallbackKey        string
	FallbackDesc       bool
	Fields             map[string]OrderField[T]
}

// ResourceSchema aggregates filtering and ordering rules for a resource.
type ResourceSchema[T any] struct {
	Filter map[string]FilterField[T]
	Order  OrderSchema[T]
}

// Query is a compiled filter plus ordering over values of T.
type Query[T any] struct {
	schema ResourceSchema[T]
	prg    cel.Program
	order  orderParams
}

// Bind compiles filter and order_by against schema. Either may be blank.
func Bind[T any](filter, orderBy string, schema ResourceSchema[T]) (*Query[T], error) {
	prg, err := compileFilter(filter, schema.Filter)
	if err != nil {
		return nil, fmt.Errorf("filter: %w", err)
	}

	order, err := parseOrderBy(orderBy, schema.Order)
	if err != nil {
		return nil, fmt.Errorf("order_by: %w", err)
	}

	return &Query[T]{schema: schema, prg: prg, order: order}, nil
}

// Match reports whether v satisfies the filter. A query without filter
// matches everything.
func (q *Query[T]) Match(v T) (bool, error) {
	if q.prg == nil {
		return true, nil
	}

	vars := make(map[string]any, len(q.schema.Filter))
	for name, field := range q.schema.Filter {
		vars[name] = field.Value(v)
	}

	out, _, err := q.prg.Eval(vars)
	if err != nil {
		return false, fmt.Errorf("evaluate filter: %w", err)
	}
	matched, ok := out.Value().(bool)
	if !ok {
		return false, fmt.Errorf("filter evaluated to %T, want bool", out.Value())
	}
	return matched, nil
}

// Apply returns the matching values of in, stably sorted by the order keys.
// in is not modified.
func (q *Query[T]) Apply(in []T) ([]T, error) {
	out := make([]T, 0, len(in))
	for _, v := range in {
		ok, err := q.Match(v)
		if err != nil {
			return nil, err
		}
		if ok {
			out = append(out, v)
		}
	}

	if cmp := q.compare(); cmp != nil {
		slices.SortStableFunc(out, cmp)
	}
	return out, nil
}

type orderKey[T any] struct {
	field OrderField[T]
	desc  bool
}

func (q *Query[T]) compare() func(a, b T) int {
	if q.order.PrimaryKey == "" {
		return nil
	}
	keys := []orderKey[T]{{q.schema.Order.Fields[q.order.PrimaryKey], q.order.PrimaryDesc}}
	if q.order.SecondaryKey != "" {
		keys = append(keys, orderKey[T]{q.schema.Order.Fields[q.order.SecondaryKey], q.order.SecondaryDesc})
	}

	return func(a, b T) int {
		for _, k := range keys {
			c := k.field.Compare(a, b)
			if k.desc {
				c = -c
			}
			if c != 0 {
				return c
			}
		}
		return 0
	}
}

func compileFilter[T any](filter string, fields map[string]FilterField[T]) (cel.Program, error) {
	filter = strings.TrimSpace(filter)
	if filter == "" {
		return nil, nil
	}

	if len(fields) == 0 {
		return nil, errors.New("filter schema has no fields defined")
	}

	env, err := buildEnv(fields)
	if err != nil {
		return nil, err
	}

	ast, issues := env.Compile(filter)
	if issues != nil && issues.Err() != nil {
		return nil, fmt.Errorf("invalid filter: %w", issues.Err())
	}
	if !ast.OutputType().IsExactType(cel.BoolType) {
		return nil, fmt.Errorf("filter must evaluate to bool, got %s", ast.OutputType())
	}

	prg, err := env.Program(ast)
	if err != nil {
		return nil, fmt.Errorf("build program: %w", err)
	}
	return prg, nil
}

func buildEnv[T any](fields map[string]FilterField[T]) (*cel.Env, error) {
	opts := make([]cel.EnvOption, 0, len(fields)+1)
	for name, rule := range fields {
		if rule.Value == nil {
			return nil, fmt.Errorf("field %q has no value accessor", name)
		}
		celType, err := celTypeForKind(rule.Kind)
		if err != nil {
			return nil, fmt.Errorf("field %q: %w", name, err)
		}
		opts = append(opts, cel.Variable(name, celType))
	}
	opts = append(opts, cel.CrossTypeNumericComparisons(true))
	return cel.NewEnv(opts...)
}

func celTypeForKind(kind ValueKind) (*cel.Type, error) {
	switch kind {
	case KindString:
		return cel.StringType, nil
	case KindNumber:
		return cel.DoubleType, nil
	case KindBool:
		return cel.BoolType, nil
	case KindStringList:
		return cel.ListType(cel.StringType), nil
	default:
		return nil, fmt.Errorf("unsupported field kind %s", kind)
	}
}
